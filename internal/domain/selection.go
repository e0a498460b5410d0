package domain

// WildcardCategory is the category token meaning "every category in the catalog".
const WildcardCategory = "All"

// Selection is the raw category/location choice a user submits when creating
// or editing an itinerary. Categories may contain WildcardCategory.
type Selection struct {
	Categories  []string
	LocationIDs []int64
}

// HasWildcard reports whether categories contains WildcardCategory.
func HasWildcard(categories []string) bool {
	for _, c := range categories {
		if c == WildcardCategory {
			return true
		}
	}
	return false
}
