package domain

import "github.com/shopspring/decimal"

// ExportRow is a single row in the itinerary export.
// It is a flat, denormalized view: one row per linked location, with the
// itinerary fields repeated on every row. Itineraries with no links yield
// one row with zero values for the location fields.
type ExportRow struct {
	ItineraryID           string
	ItineraryName         string
	Date                  string // "2006-01-02"
	NumberOfPeople        int
	NumberOfPets          int
	TotalCostForAllPeople decimal.Decimal

	LocationID       int64 // 0 when the itinerary has no links
	LocationName     string
	LocationCategory string
	PricePerPerson   decimal.Decimal
	IsPetFriendly    bool
}
