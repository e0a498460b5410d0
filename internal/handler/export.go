// export.go implements GET /itineraries/export.
// Returns every itinerary and linked location of the caller as a flat table.
// Supports content negotiation via ?format=csv (CSV) or default (JSON).

package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/itinerary-designer/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"itinerary_id", "itinerary_name", "date", "number_of_people", "number_of_pets",
	"total_cost_for_all_people", "location_id", "location_name", "location_category",
	"price_per_person", "is_pet_friendly",
}

// GetExport handles GET /itineraries/export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	owner, ok := s.currentUser(w, r)
	if !ok {
		return
	}
	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		requestError(w, "invalid format: "+err.Error())
		return
	}
	if format != nil && *format != "csv" && *format != "json" {
		requestError(w, "format must be one of: csv, json")
		return
	}

	rows, err := s.export.Export(r.Context(), owner)
	if err != nil {
		s.serviceError(w, r, err, "")
		return
	}

	if format != nil && *format == "csv" {
		writeCSV(w, rows)
		return
	}
	out := make([]ExportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainRowToResponse(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="itineraries.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// domainRowToResponse maps a domain.ExportRow to the JSON wire type.
// Location fields become nil pointers when the itinerary has no links.
func domainRowToResponse(r domain.ExportRow) ExportRow {
	row := ExportRow{
		ItineraryId:           r.ItineraryID,
		ItineraryName:         r.ItineraryName,
		Date:                  mustParseDate(r.Date),
		NumberOfPeople:        r.NumberOfPeople,
		NumberOfPets:          r.NumberOfPets,
		TotalCostForAllPeople: r.TotalCostForAllPeople,
	}
	if r.LocationID != 0 {
		row.LocationId = &r.LocationID
		row.LocationName = &r.LocationName
		row.LocationCategory = &r.LocationCategory
		row.PricePerPerson = &r.PricePerPerson
		row.IsPetFriendly = &r.IsPetFriendly
	}
	return row
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Location columns are empty for itineraries without links.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	rec := []string{
		r.ItineraryID,
		r.ItineraryName,
		r.Date,
		strconv.Itoa(r.NumberOfPeople),
		strconv.Itoa(r.NumberOfPets),
		r.TotalCostForAllPeople.StringFixed(2),
		"", "", "", "", "",
	}
	if r.LocationID != 0 {
		rec[6] = strconv.FormatInt(r.LocationID, 10)
		rec[7] = r.LocationName
		rec[8] = r.LocationCategory
		rec[9] = r.PricePerPerson.StringFixed(2)
		rec[10] = strconv.FormatBool(r.IsPetFriendly)
	}
	return rec
}

// mustParseDate parses an "2006-01-02" string into an openapi_types.Date.
// Panics on malformed input; callers are expected to pass service-generated dates.
func mustParseDate(s string) openapi_types.Date {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic("handler: malformed date from service: " + s)
	}
	return openapi_types.Date{Time: t}
}
