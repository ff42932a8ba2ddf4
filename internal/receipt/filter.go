package receipt

import (
	"sort"
	"strings"
)

// FilterAll is the sentinel meaning "no filtering" for a filter dimension.
// An empty string means the same.
const FilterAll = "All"

// Filter selects a subset of records. Purely a function of the filter state
// and record set; no network effects.
type Filter struct {
	Search   string // case-insensitive substring match on shop name
	Category string // exact category name, or the sentinel
	Month    string // two-digit month as text ("01".."12"), or the sentinel
	Year     string // four-digit year as text, or the sentinel
}

func isAll(s string) bool {
	return s == "" || strings.EqualFold(s, FilterAll)
}

// Match reports whether a record passes every filter dimension. Month and
// year compare positional components of the date text, so malformed dates
// simply fail to match rather than erroring.
func (f Filter) Match(r ReceiptRecord) bool {
	if !strings.Contains(strings.ToLower(r.ShopName), strings.ToLower(f.Search)) {
		return false
	}
	if !isAll(f.Category) && r.Category != f.Category {
		return false
	}

	parts := strings.Split(r.Date, "-")
	year, month := parts[0], ""
	if len(parts) > 1 {
		month = parts[1]
	}
	if !isAll(f.Month) && month != f.Month {
		return false
	}
	if !isAll(f.Year) && year != f.Year {
		return false
	}
	return true
}

// Apply returns the records passing the filter, preserving order
func (f Filter) Apply(records []ReceiptRecord) []ReceiptRecord {
	filtered := make([]ReceiptRecord, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Total sums the net amounts over a record set. Absent or unparseable
// amounts were already degraded to zero during reconstruction.
func Total(records []ReceiptRecord) float64 {
	var sum float64
	for _, r := range records {
		sum += r.Total
	}
	return sum
}

// Years derives the year options to offer the user: the first component of
// each present date, deduplicated, kept only when exactly four characters,
// sorted descending.
func Years(records []ReceiptRecord) []string {
	seen := make(map[string]bool)
	years := make([]string, 0)
	for _, r := range records {
		if r.Date == "" {
			continue
		}
		year := strings.Split(r.Date, "-")[0]
		if len(year) != 4 || seen[year] {
			continue
		}
		seen[year] = true
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years
}
