package domain

// Template is a pre-made itinerary offered to users as a starting point.
// Templates are catalog data: they seed new itineraries and are never
// persisted as itineraries themselves.
//
// Locations is a snapshot; each entry is re-checked against the live catalog
// by ID before it is linked.
type Template struct {
	ID          int
	Name        string
	Description string
	ImageURL    string
	Locations   []Location
}
