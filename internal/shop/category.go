package shop

import "strings"

// Category is a browsable collection with a display label.
type Category struct {
	Label  string
	Handle string
}

// CollectionHandle derives a collection handle from a label: lower case,
// "&" spelled "and", spaces as hyphens.
func CollectionHandle(label string) string {
	h := strings.ToLower(strings.TrimSpace(label))
	h = strings.ReplaceAll(h, "&", "and")
	return strings.ReplaceAll(h, " ", "-")
}

// NewCategory builds a Category whose handle is derived from label.
func NewCategory(label string) Category {
	return Category{Label: label, Handle: CollectionHandle(label)}
}

// DefaultCategories are the collections offered on the home screen.
func DefaultCategories() []Category {
	return []Category{
		NewCategory("Jewelry"),
		{Label: "Home & Garden", Handle: "homeandgarden"},
		NewCategory("Clothing"),
		NewCategory("Snowboards"),
	}
}
