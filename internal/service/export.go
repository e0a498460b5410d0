package service

import (
	"context"
	"fmt"
	"time"

	"github.com/itinerary-designer/backend/internal/domain"
	"github.com/itinerary-designer/backend/internal/repo"
)

// ExportService flattens a user's itineraries into export rows.
type ExportService struct {
	itineraries repo.ItineraryRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(itineraries repo.ItineraryRepo) *ExportService {
	return &ExportService{itineraries: itineraries}
}

// Export returns one row per linked location across all of ownerUserID's
// itineraries, in ListByOwner order. Itineraries without links contribute
// one row with empty location fields.
func (s *ExportService) Export(ctx context.Context, ownerUserID string) ([]domain.ExportRow, error) {
	its, err := s.itineraries.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := []domain.ExportRow{}
	for _, it := range its {
		base := domain.ExportRow{
			ItineraryID:           it.ID.String(),
			ItineraryName:         it.Name,
			Date:                  it.Date.Format(time.DateOnly),
			NumberOfPeople:        it.NumberOfPeople,
			NumberOfPets:          it.NumberOfPets,
			TotalCostForAllPeople: it.TotalCostForAllPeople,
		}
		if len(it.Links) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, l := range it.Links {
			row := base
			row.LocationID = l.Location.ID
			row.LocationName = l.Location.Name
			row.LocationCategory = l.Location.Category
			row.PricePerPerson = l.Location.PricePerPerson
			row.IsPetFriendly = l.Location.IsPetFriendly
			rows = append(rows, row)
		}
	}
	return rows, nil
}
