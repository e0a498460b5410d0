package handler

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/itinerary-designer/backend/internal/domain"
)

// Wire types for the JSON API. They mirror the schemas in spec/openapi.yaml;
// money is always a decimal string so no precision is lost in transit.

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Selection is the category/location choice embedded in create and edit bodies.
type Selection struct {
	Categories  []string `json:"categories"`
	LocationIds []int64  `json:"location_ids"`
}

type CreateItineraryRequest struct {
	Name           string `json:"name"`
	Date           string `json:"date"`
	NumberOfPeople int    `json:"number_of_people"`
	NumberOfPets   int    `json:"number_of_pets"`
	Selection
}

type EditItineraryRequest struct {
	Name string `json:"name"`
	Date string `json:"date"`
	Selection
}

type CreateFromTemplatesRequest struct {
	TemplateIds []int `json:"template_ids"`
}

type RecalculateCostRequest struct {
	NumberOfPeople int `json:"number_of_people"`
}

type DeleteItinerariesRequest struct {
	Ids []openapi_types.UUID `json:"ids"`
}

type DeleteItinerariesResponse struct {
	Deleted int `json:"deleted"`
}

type Location struct {
	Id             int64           `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	PricePerPerson decimal.Decimal `json:"price_per_person"`
	IsPetFriendly  bool            `json:"is_pet_friendly"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type LocationList struct {
	Data       []Location `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type Template struct {
	Id          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	ImageUrl    string     `json:"image_url,omitempty"`
	Locations   []Location `json:"locations"`
}

type Itinerary struct {
	Id                       openapi_types.UUID `json:"id"`
	Name                     string             `json:"name"`
	Date                     openapi_types.Date `json:"date"`
	NumberOfPeople           int                `json:"number_of_people"`
	NumberOfPets             int                `json:"number_of_pets"`
	Locations                []Location         `json:"locations"`
	TotalCostPerItinerary    decimal.Decimal    `json:"total_cost_per_itinerary"`
	TotalCostForAllLocations decimal.Decimal    `json:"total_cost_for_all_locations"`
	TotalCostForAllPeople    decimal.Decimal    `json:"total_cost_for_all_people"`
	CreatedAt                time.Time          `json:"created_at"`
	UpdatedAt                time.Time          `json:"updated_at"`
}

// ExportRow is one row of GET /itineraries/export. Location fields are
// omitted for itineraries without links.
type ExportRow struct {
	ItineraryId           string             `json:"itinerary_id"`
	ItineraryName         string             `json:"itinerary_name"`
	Date                  openapi_types.Date `json:"date"`
	NumberOfPeople        int                `json:"number_of_people"`
	NumberOfPets          int                `json:"number_of_pets"`
	TotalCostForAllPeople decimal.Decimal    `json:"total_cost_for_all_people"`
	LocationId            *int64             `json:"location_id,omitempty"`
	LocationName          *string            `json:"location_name,omitempty"`
	LocationCategory      *string            `json:"location_category,omitempty"`
	PricePerPerson        *decimal.Decimal   `json:"price_per_person,omitempty"`
	IsPetFriendly         *bool              `json:"is_pet_friendly,omitempty"`
}

// --- mapping helpers --------------------------------------------------------

func locationToResponse(l domain.Location) Location {
	return Location{
		Id:             l.ID,
		Name:           l.Name,
		Category:       l.Category,
		PricePerPerson: l.PricePerPerson,
		IsPetFriendly:  l.IsPetFriendly,
	}
}

func locationsToResponse(locs []domain.Location) []Location {
	out := make([]Location, len(locs))
	for i, l := range locs {
		out[i] = locationToResponse(l)
	}
	return out
}

func templateToResponse(t domain.Template) Template {
	return Template{
		Id:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		ImageUrl:    t.ImageURL,
		Locations:   locationsToResponse(t.Locations),
	}
}

func itineraryToResponse(it domain.Itinerary) Itinerary {
	return Itinerary{
		Id:                       it.ID,
		Name:                     it.Name,
		Date:                     openapi_types.Date{Time: it.Date},
		NumberOfPeople:           it.NumberOfPeople,
		NumberOfPets:             it.NumberOfPets,
		Locations:                locationsToResponse(it.Locations()),
		TotalCostPerItinerary:    it.TotalCostPerItinerary,
		TotalCostForAllLocations: it.TotalCostForAllLocations,
		TotalCostForAllPeople:    it.TotalCostForAllPeople,
		CreatedAt:                it.CreatedAt,
		UpdatedAt:                it.UpdatedAt,
	}
}

func itinerariesToResponse(its []domain.Itinerary) []Itinerary {
	out := make([]Itinerary, len(its))
	for i, it := range its {
		out[i] = itineraryToResponse(it)
	}
	return out
}

func (s Selection) toDomain() domain.Selection {
	return domain.Selection{Categories: s.Categories, LocationIDs: s.LocationIds}
}
