package service_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itinerary-designer/backend/internal/domain"
	"github.com/itinerary-designer/backend/internal/service"
)

func TestExportService_Export(t *testing.T) {
	store := newMemStore()
	lifecycle := service.NewItineraryService(store, store, venice(), templateRepo(), slog.New(slog.DiscardHandler))

	withLinks := validCreate()
	withLinks.Name = "A trip"
	withLinks.Selection = domain.Selection{Categories: []string{"Tour", "Food"}, LocationIDs: []int64{1, 5}}
	created := mustCreate(t, lifecycle, alice, withLinks)

	empty := validCreate()
	empty.Name = "B trip"
	empty.Selection = domain.Selection{}
	mustCreate(t, lifecycle, alice, empty)

	mustCreate(t, lifecycle, bob, withLinks)

	rows, err := service.NewExportService(store).Export(context.Background(), alice)

	require.NoError(t, err)
	require.Len(t, rows, 3, "two link rows plus one row for the empty itinerary")

	assert.Equal(t, created.ID.String(), rows[0].ItineraryID)
	assert.Equal(t, "2025-09-12", rows[0].Date)
	assert.Equal(t, int64(1), rows[0].LocationID)
	assert.Equal(t, int64(5), rows[1].LocationID)
	assert.True(t, rows[1].PricePerPerson.Equal(dec("65.50")))
	assert.True(t, rows[0].TotalCostForAllPeople.Equal(created.TotalCostForAllPeople))

	assert.Equal(t, "B trip", rows[2].ItineraryName)
	assert.Zero(t, rows[2].LocationID)
	assert.Empty(t, rows[2].LocationName)
}

func TestExportService_Export_NoItineraries(t *testing.T) {
	rows, err := service.NewExportService(newMemStore()).Export(context.Background(), alice)

	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}
