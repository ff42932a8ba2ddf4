package scanning

import "errors"

// Categories a receipt may be labeled with. Extraction output outside this
// set is clamped to CategoryFallback.
var Categories = []string{"food", "transport", "shopping", "utilities", "medical", "other"}

// CategoryFallback labels receipts whose category could not be inferred.
const CategoryFallback = "other"

// ErrUnparseable marks model output that is not valid JSON after stripping
// markdown fencing. Retrying with the same image will not help. Upstream call
// failures (network, quota, model errors) are returned as ordinary wrapped
// errors instead and may be retried.
var ErrUnparseable = errors.New("model response is not parseable")

// ReceiptData contains the fields extracted from a receipt image. Numeric
// fields are pointers so that a value the model reported as null stays
// distinguishable from a genuine zero.
type ReceiptData struct {
	ShopName  string   `json:"shopName"`
	Date      string   `json:"date"` // YYYY-MM-DD
	Address   string   `json:"address"`
	ReceiptNo string   `json:"receiptNo"`
	Category  string   `json:"category"`
	Price     *float64 `json:"price"`
	Discount  *float64 `json:"discount"`
	VAT       *float64 `json:"vat"`
	WHT       *float64 `json:"wht"`
	Total     *float64 `json:"total"`
}

// Scanner defines the interface for receipt extraction backends
type Scanner interface {
	// ScanReceipt analyzes a receipt image/PDF and extracts its fields
	ScanReceipt(imageData []byte, contentType string) (*ReceiptData, error)
	// Close closes the scanner and releases resources
	Close() error
}

// receiptScanPrompt is the shared prompt used by all LLM providers for scanning receipts
const receiptScanPrompt = `Analyze this receipt image (Thai/English) and extract the following data into a strict JSON format (no markdown code blocks, just raw JSON).
If a field is missing, use null or empty string. Return numbers as numbers, not strings.

Fields:
- shopName: string (Name of the shop/vendor)
- date: string (Format YYYY-MM-DD. Convert Buddhist Era dates like 2567 to 2024)
- address: string (Full address)
- receiptNo: string (Invoice/Receipt number)
- category: string (One of: food, transport, shopping, utilities, medical, other. Infer from items.)
- price: number (Subtotal / Price BEFORE Tax / included price if no tax breakdown)
- discount: number (Total discount amount)
- vat: number (VAT amount)
- wht: number (Withholding tax amount)
- total: number (Grand Total / Net Amount / Final Payment. This must be the largest, final value found)

Key Rules:
- "total" MUST be the final Net Amount.
- "price" is the Subtotal before VAT/Discount.
- If a discount appears, extract its value.
- Trust the printed numbers. Do not recalculate manually unless necessary.
- Do not include any text before or after the JSON.`
