// Package ledger is the append-only store of persisted receipt rows. The
// wire format is positional: a fixed-width ordered list of cells whose
// column order is the persisted schema. There is no header validation and
// no schema version; changing column order is a breaking change.
package ledger

import (
	"context"
	"errors"
)

// RowWidth is the number of cells in a ledger row:
// [date, shopName, category, address, receiptNo, price, discount, vat, wht, total, link, note]
const RowWidth = 12

// ErrUnauthorized indicates the ledger credential is absent or expired.
var ErrUnauthorized = errors.New("ledger: unauthorized")

// Ledger defines the interface for the receipt row store
type Ledger interface {
	// Append inserts one row after the last written row. Insert, not
	// update: existing rows are never touched.
	Append(ctx context.Context, row []string) error

	// ReadAll returns every row in storage order, oldest first. A row may
	// carry fewer than RowWidth cells when trailing cells were never
	// written; callers treat the missing cells as empty strings.
	ReadAll(ctx context.Context) ([][]string, error)
}
