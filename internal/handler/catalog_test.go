package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itinerary-designer/backend/internal/domain"
	"github.com/itinerary-designer/backend/internal/handler"
)

func TestListCategories(t *testing.T) {
	svc := &mockCatalogServicer{
		categories: func(context.Context) ([]string, error) { return []string{"Boat", "Food", "Tour"}, nil },
	}

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(deps{catalog: svc}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, []string{"Boat", "Food", "Tour"}, got)
}

func TestListCategories_ServiceError_Returns500(t *testing.T) {
	svc := &mockCatalogServicer{
		categories: func(context.Context) ([]string, error) { return nil, errors.New("db down") },
	}

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(deps{catalog: svc}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal_error", errorCode(t, rec.Body))
}

func TestListLocations_PassesFiltersAndPagination(t *testing.T) {
	var gotCategory string
	var gotParams domain.PaginationParams
	svc := &mockCatalogServicer{
		locations: func(_ context.Context, category string, p domain.PaginationParams) (domain.Page[domain.Location], error) {
			gotCategory, gotParams = category, p
			return domain.Page[domain.Location]{
				Items: []domain.Location{{ID: 3, Name: "Doge's Palace", Category: "Museum", PricePerPerson: decimal.RequireFromString("30.00")}},
				Total: 7,
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/locations?category=Museum&page=2&limit=500", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(deps{catalog: svc}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Museum", gotCategory)
	assert.Equal(t, domain.PaginationParams{Page: 2, Limit: 100}, gotParams)

	var body handler.LocationList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, int64(3), body.Data[0].Id)
	assert.True(t, body.Data[0].PricePerPerson.Equal(decimal.RequireFromString("30")))
	assert.Equal(t, handler.Pagination{Page: 2, Limit: 100, Total: 7}, body.Pagination)
}

func TestListLocations_InvalidPage_Returns422(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/locations?page=first", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(deps{catalog: &mockCatalogServicer{}}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec.Body))
}

func TestListTemplates(t *testing.T) {
	svc := &mockCatalogServicer{
		templates: func(context.Context) ([]domain.Template, error) {
			return []domain.Template{{
				ID:        1,
				Name:      "Boat Trip",
				Locations: []domain.Location{{ID: 9, Name: "Murano Boat", Category: "Boat", PricePerPerson: decimal.RequireFromString("35")}},
			}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/templates", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(deps{catalog: svc}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got []handler.Template
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, "Boat Trip", got[0].Name)
	require.Len(t, got[0].Locations, 1)
	assert.Equal(t, int64(9), got[0].Locations[0].Id)
}
