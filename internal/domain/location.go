// Package domain contains the core data types for the itinerary planner.
// It is imported by every other internal package (repo, service, handler)
// and depends only on uuid and decimal value types.
package domain

import "github.com/shopspring/decimal"

// Location is a bookable catalog entry. The catalog is read-only from the
// planning workflow's point of view.
type Location struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	PricePerPerson decimal.Decimal `json:"price_per_person"`
	IsPetFriendly  bool            `json:"is_pet_friendly"`
}
