package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itinerary-designer/backend/internal/domain"
	"github.com/itinerary-designer/backend/internal/repo"
)

func TestDefaultTemplateRepo_List(t *testing.T) {
	r, err := repo.NewDefaultTemplateRepo()
	require.NoError(t, err)

	templates, err := r.List(context.Background())

	require.NoError(t, err)
	require.Len(t, templates, 3)
	assert.Equal(t, "Boat Trip", templates[0].Name)
	assert.NotEmpty(t, templates[0].Locations)
}

func TestYAMLTemplateRepo_GetByID(t *testing.T) {
	r, err := repo.NewYAMLTemplateRepo([]byte(`
templates:
  - id: 7
    name: Quick Bite
    locations:
      - {id: 2, name: Cafe, category: Food, price_per_person: "12.50"}
`))
	require.NoError(t, err)

	got, err := r.GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "Quick Bite", got.Name)
	require.Len(t, got.Locations, 1)
	assert.Equal(t, "12.5", got.Locations[0].PricePerPerson.String())
}

func TestYAMLTemplateRepo_GetByID_NotFound(t *testing.T) {
	r, err := repo.NewYAMLTemplateRepo([]byte("templates: []"))
	require.NoError(t, err)

	_, err = r.GetByID(context.Background(), 1)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestYAMLTemplateRepo_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed yaml", "templates: [\n"},
		{"non-positive id", "templates:\n  - {id: 0, name: X}\n"},
		{"duplicate id", "templates:\n  - {id: 1, name: A}\n  - {id: 1, name: B}\n"},
		{"blank name", "templates:\n  - {id: 1, name: \"  \"}\n"},
		{"bad price", "templates:\n  - id: 1\n    name: A\n    locations:\n      - {id: 1, price_per_person: abc}\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.NewYAMLTemplateRepo([]byte(tc.doc))
			assert.Error(t, err)
		})
	}
}
