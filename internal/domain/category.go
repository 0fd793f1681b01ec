package domain

// Categories is the closed set of listing categories. Order matters:
// it is returned verbatim by the categories endpoint.
var Categories = []string{
	"Electronics",
	"Clothing",
	"Home & Garden",
	"Books",
	"Sports",
	"Beauty",
	"Food",
	"Other",
}

// ValidCategory reports whether c is one of the fixed categories.
// Matching is case-sensitive.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
