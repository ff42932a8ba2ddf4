package scanning

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// parseReceiptJSON parses the JSON response from the model into a candidate
// record. Anything that is not a JSON object after fence-stripping is an
// ErrUnparseable; a numeric field delivered as a string is also rejected
// rather than coerced.
func parseReceiptJSON(text string) (*ReceiptData, error) {
	text = stripCodeFence(text)

	// Find the JSON object boundaries - first { and last }
	startIdx := strings.Index(text, "{")
	endIdx := strings.LastIndex(text, "}")
	if startIdx == -1 || endIdx < startIdx {
		return nil, fmt.Errorf("no JSON object found in response: %w", ErrUnparseable)
	}
	text = text[startIdx : endIdx+1]

	var data ReceiptData
	if err := json.Unmarshal([]byte(text), &data); err != nil {
		return nil, fmt.Errorf("unmarshaling json (%v): %w", err, ErrUnparseable)
	}

	data.ShopName = strings.TrimSpace(data.ShopName)
	data.Address = strings.TrimSpace(data.Address)
	data.ReceiptNo = strings.TrimSpace(data.ReceiptNo)
	data.Date = normalizeDate(data.Date)
	data.Category = normalizeCategory(data.Category)

	return &data, nil
}

// stripCodeFence removes markdown code fences the model sometimes wraps its
// output in despite instructions not to.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// normalizeCategory lowercases the extracted label and clamps it to the
// known category set.
func normalizeCategory(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if slices.Contains(Categories, category) {
		return category
	}
	return CategoryFallback
}

// dateFormats are the layouts the model has been observed to emit when it
// ignores the YYYY-MM-DD instruction.
var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"02-01-2006",
	"02/01/2006",
}

// normalizeDate reformats the extracted date to YYYY-MM-DD and corrects
// Buddhist Era years the model failed to convert (BE 2567 is CE 2024).
// An empty date stays empty and an unrecognizable one is passed through
// untouched; both are left for the user to fix during review.
func normalizeDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}

	for _, format := range dateFormats {
		d, err := time.Parse(format, date)
		if err != nil {
			continue
		}
		if d.Year() >= 2400 {
			d = d.AddDate(-543, 0, 0)
		}
		return d.Format("2006-01-02")
	}
	return date
}
