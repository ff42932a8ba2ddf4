package receipt

// ReceiptRecord is the canonical unit: one captured receipt. The ledger is
// the system of record; instances here are either ephemeral to one save
// operation or reconstructed view objects from a ledger read.
//
// Total is the document's final net amount - conceptually
// price - discount + vat - wht, but extraction reports it straight from the
// document and the components may individually be absent, so arithmetic
// consistency is never assumed.
type ReceiptRecord struct {
	// ID is assigned positionally per ledger read. Stable within one read,
	// not across reads or appends.
	ID        int     `json:"id"`
	Date      string  `json:"date"` // YYYY-MM-DD
	ShopName  string  `json:"shopName"`
	Category  string  `json:"category"`
	Address   string  `json:"address"`
	ReceiptNo string  `json:"receiptNo"`
	Price     float64 `json:"price"`
	Discount  float64 `json:"discount"`
	VAT       float64 `json:"vat"`
	WHT       float64 `json:"wht"`
	Total     float64 `json:"total"`
	Link      string  `json:"link"`
	Note      string  `json:"note"`
	// ImageID is the archive's identifier for the stored image. Not a
	// ledger column; on reads it is recovered from Link.
	ImageID string `json:"imageId,omitempty"`
}
