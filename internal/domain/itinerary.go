package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultNumberOfPeople is used when an itinerary is created without an
// explicit party size.
const DefaultNumberOfPeople = 1

// Link associates an itinerary with one catalog location. It has no identity
// beyond the (itinerary, location) pair. Location is always loaded eagerly
// by the repo layer so cost computation never depends on a lazy fetch.
type Link struct {
	LocationID int64
	Location   Location
}

// Itinerary is a user-owned collection of selected locations plus derived
// cost fields and trip metadata.
//
// After every Create, Edit and RecalculateCost:
//
//	TotalCostForAllLocations == Σ link.Location.PricePerPerson
//	TotalCostForAllPeople    == TotalCostForAllLocations * NumberOfPeople
type Itinerary struct {
	ID             uuid.UUID
	OwnerUserID    string
	Name           string
	Date           time.Time
	NumberOfPeople int
	NumberOfPets   int
	Links          []Link

	TotalCostPerItinerary    decimal.Decimal
	TotalCostForAllLocations decimal.Decimal
	TotalCostForAllPeople    decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Locations returns the catalog entries behind the itinerary's links, in link order.
func (it Itinerary) Locations() []Location {
	out := make([]Location, len(it.Links))
	for i, l := range it.Links {
		out[i] = l.Location
	}
	return out
}

// LinkLocations replaces the itinerary's links with one link per location.
func (it *Itinerary) LinkLocations(locs []Location) {
	it.Links = make([]Link, len(locs))
	for i, loc := range locs {
		it.Links[i] = Link{LocationID: loc.ID, Location: loc}
	}
}

// ApplyCosts recomputes all three totals from the current links and party size.
func (it *Itinerary) ApplyCosts() {
	it.SetCosts(ComputeCosts(it.Locations(), it.NumberOfPeople))
}

// SetCosts stores precomputed totals, e.g. those returned by the selection engine.
func (it *Itinerary) SetCosts(c Costs) {
	it.TotalCostForAllLocations = c.ForAllLocations
	it.TotalCostPerItinerary = c.PerItinerary
	it.TotalCostForAllPeople = c.ForAllPeople
}

// Recalculate sets a new party size and recomputes TotalCostForAllLocations
// and TotalCostForAllPeople from the current links. TotalCostPerItinerary is
// left as it was last stored by Create or Edit.
func (it *Itinerary) Recalculate(numberOfPeople int) {
	c := ComputeCosts(it.Locations(), numberOfPeople)
	it.NumberOfPeople = numberOfPeople
	it.TotalCostForAllLocations = c.ForAllLocations
	it.TotalCostForAllPeople = c.ForAllPeople
}

// Costs holds the derived totals for a set of locations and a party size.
type Costs struct {
	ForAllLocations decimal.Decimal
	PerItinerary    decimal.Decimal
	ForAllPeople    decimal.Decimal
}

// ComputeCosts sums PricePerPerson over locs with exact decimal arithmetic
// (no intermediate rounding) and multiplies by numberOfPeople.
func ComputeCosts(locs []Location, numberOfPeople int) Costs {
	sum := decimal.Zero
	for _, l := range locs {
		sum = sum.Add(l.PricePerPerson)
	}
	perParty := sum.Mul(decimal.NewFromInt(int64(numberOfPeople)))
	return Costs{
		ForAllLocations: sum,
		PerItinerary:    perParty,
		ForAllPeople:    perParty,
	}
}
