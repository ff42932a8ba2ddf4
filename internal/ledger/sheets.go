package ledger

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Scope is the Sheets access the ledger needs.
const Scope = sheets.SpreadsheetsScope

// Sheets implements the Ledger interface on a Google Sheets spreadsheet
type Sheets struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewSheets creates a Sheets ledger for one spreadsheet. The spreadsheet id
// is required configuration; its absence fails here, before any request.
func NewSheets(ctx context.Context, spreadsheetID, sheetName string, opts ...option.ClientOption) (*Sheets, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet id is required")
	}
	if sheetName == "" {
		sheetName = "Sheet1"
	}

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}

	return &Sheets{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// Append inserts one row after the last written row. The A:A range anchors
// the append at the first column so a stray value in a later column cannot
// shift new rows sideways.
func (s *Sheets) Append(ctx context.Context, row []string) error {
	values := make([]interface{}, len(row))
	for i, cell := range row {
		values[i] = cell
	}

	_, err := s.service.Spreadsheets.Values.Append(
		s.spreadsheetID,
		fmt.Sprintf("%s!A:A", s.sheetName),
		&sheets.ValueRange{Values: [][]interface{}{values}},
	).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return classify("appending to sheet", err)
	}

	return nil
}

// ReadAll returns every row in the A:K range in storage order, oldest first
func (s *Sheets) ReadAll(ctx context.Context) ([][]string, error) {
	resp, err := s.service.Spreadsheets.Values.Get(
		s.spreadsheetID,
		fmt.Sprintf("%s!A:K", s.sheetName),
	).Context(ctx).Do()
	if err != nil {
		return nil, classify("reading sheet", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			if str, ok := cell.(string); ok {
				row[i] = str
			} else {
				row[i] = fmt.Sprint(cell)
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// classify maps Sheets API failures onto the ledger error taxonomy while
// keeping the upstream message visible.
func classify(op string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%s: %s: %w", op, apiErr.Message, ErrUnauthorized)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
