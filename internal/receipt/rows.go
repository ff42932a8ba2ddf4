package receipt

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gosher55/receipt-ledger/internal/ledger"
)

// Ledger column positions. The positional contract is the persisted schema.
const (
	colDate = iota
	colShopName
	colCategory
	colAddress
	colReceiptNo
	colPrice
	colDiscount
	colVAT
	colWHT
	colTotal
	colLink
	colNote
)

// Row renders the record as a ledger row in column order
func (r ReceiptRecord) Row() []string {
	row := make([]string, ledger.RowWidth)
	row[colDate] = r.Date
	row[colShopName] = r.ShopName
	row[colCategory] = r.Category
	row[colAddress] = r.Address
	row[colReceiptNo] = r.ReceiptNo
	row[colPrice] = formatAmount(r.Price)
	row[colDiscount] = formatAmount(r.Discount)
	row[colVAT] = formatAmount(r.VAT)
	row[colWHT] = formatAmount(r.WHT)
	row[colTotal] = formatAmount(r.Total)
	row[colLink] = r.Link
	row[colNote] = r.Note
	return row
}

// formatAmount writes a monetary cell. Zero renders as an empty cell, the
// way an untouched form field would.
func formatAmount(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseAmount reads a monetary cell defensively: anything that is not a
// number degrades to zero so one bad cell cannot break a listing or its
// aggregate.
func parseAmount(cell string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0
	}
	return v
}

// cell returns the i-th cell of a row, treating missing trailing cells as
// empty strings.
func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

var driveLinkID = regexp.MustCompile(`/d/([^/]+)/`)

// imageIDFromLink recovers the archive file id from a stored share link so
// the image proxy works for rows written before the id was tracked.
func imageIDFromLink(link string) string {
	m := driveLinkID.FindStringSubmatch(link)
	if m == nil {
		return ""
	}
	return m[1]
}

// ReconstructRecords converts raw ledger rows into view records, newest
// first. Rows with zero cells are dropped; short rows read missing trailing
// cells as absent. IDs are the rows' storage positions.
func ReconstructRecords(rows [][]string) []ReceiptRecord {
	records := make([]ReceiptRecord, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		link := cell(row, colLink)
		records = append(records, ReceiptRecord{
			ID:        i,
			Date:      cell(row, colDate),
			ShopName:  cell(row, colShopName),
			Category:  cell(row, colCategory),
			Address:   cell(row, colAddress),
			ReceiptNo: cell(row, colReceiptNo),
			Price:     parseAmount(cell(row, colPrice)),
			Discount:  parseAmount(cell(row, colDiscount)),
			VAT:       parseAmount(cell(row, colVAT)),
			WHT:       parseAmount(cell(row, colWHT)),
			Total:     parseAmount(cell(row, colTotal)),
			Link:      link,
			Note:      cell(row, colNote),
			ImageID:   imageIDFromLink(link),
		})
	}

	// Storage order is append order, oldest first; the view wants newest first
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records
}
