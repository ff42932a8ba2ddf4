// Package category holds the user-editable category enumeration. The
// registry is local per installation and never synchronized to the ledger:
// historical rows keep their category name even after the entry is deleted,
// so color resolution must tolerate names with no matching entry.
package category

// DefaultColor is the neutral color for category names with no registry entry.
const DefaultColor = "#94a3b8"

// Category labels and colors receipts. Name is the join key against receipt
// records - string equality, nothing enforces it as a foreign key.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Registry defines the interface for category persistence
type Registry interface {
	// List returns all categories
	List() ([]Category, error)

	// Add creates a category with a generated id
	Add(name, color string) (*Category, error)

	// Remove deletes a category by id
	Remove(id string) error

	// Close closes the registry
	Close() error
}

// Defaults seed a fresh registry with the extraction label set.
func Defaults() []Category {
	return []Category{
		{Name: "food", Color: "#f97316"},
		{Name: "transport", Color: "#3b82f6"},
		{Name: "shopping", Color: "#a855f7"},
		{Name: "utilities", Color: "#eab308"},
		{Name: "medical", Color: "#ef4444"},
		{Name: "other", Color: DefaultColor},
	}
}

// ResolveColor returns the color for a category name, or DefaultColor when
// no entry matches.
func ResolveColor(categories []Category, name string) string {
	for _, c := range categories {
		if c.Name == name {
			return c.Color
		}
	}
	return DefaultColor
}
