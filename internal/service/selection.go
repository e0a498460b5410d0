// Package service contains the business logic for the itinerary planner.
// Services validate inputs, enforce ownership and selection rules, and
// orchestrate repo calls. No SQL lives here; services depend on repo
// interfaces, not implementations.
package service

import (
	"cmp"
	"slices"

	"github.com/itinerary-designer/backend/internal/domain"
)

// Resolution is the outcome of resolving a Selection against the catalog.
type Resolution struct {
	// Locations is deduplicated and ordered by location id.
	Locations []domain.Location
	Costs     domain.Costs
}

// ResolveSelection turns a raw Selection into the concrete set of catalog
// locations it names and computes the derived totals for numberOfPeople.
//
// An entry is included only when its id is among the selected ids AND its
// category is among the selected categories. When the wildcard category is
// selected, the categories are replaced (once) by every distinct catalog
// category; if the wildcard is still present after that replacement, the ids
// are replaced by every catalog id as well.
//
// Empty categories or ids resolve to an empty set with zero totals.
// The catalog is never modified.
func ResolveSelection(catalog []domain.Location, sel domain.Selection, numberOfPeople int) Resolution {
	categories := sel.Categories
	ids := sel.LocationIDs

	if domain.HasWildcard(categories) {
		categories = distinctCategories(catalog)
		if domain.HasWildcard(categories) {
			ids = catalogIDs(catalog)
		}
	}

	wantCategory := make(map[string]bool, len(categories))
	for _, c := range categories {
		wantCategory[c] = true
	}
	wantID := make(map[int64]bool, len(ids))
	for _, id := range ids {
		wantID[id] = true
	}

	seen := make(map[int64]bool)
	locs := []domain.Location{}
	for _, loc := range catalog {
		if seen[loc.ID] || !wantID[loc.ID] || !wantCategory[loc.Category] {
			continue
		}
		seen[loc.ID] = true
		locs = append(locs, loc)
	}
	slices.SortFunc(locs, func(a, b domain.Location) int { return cmp.Compare(a.ID, b.ID) })

	return Resolution{
		Locations: locs,
		Costs:     domain.ComputeCosts(locs, numberOfPeople),
	}
}

// distinctCategories returns the catalog's categories, sorted, without duplicates.
func distinctCategories(catalog []domain.Location) []string {
	out := make([]string, 0, len(catalog))
	for _, loc := range catalog {
		out = append(out, loc.Category)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func catalogIDs(catalog []domain.Location) []int64 {
	out := make([]int64, len(catalog))
	for i, loc := range catalog {
		out[i] = loc.ID
	}
	return out
}
