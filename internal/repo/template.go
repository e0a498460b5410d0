package repo

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/itinerary-designer/backend/internal/domain"
)

//go:embed templates.yaml
var defaultTemplates []byte

// TemplateRepo is the read-only catalog of pre-made itineraries.
type TemplateRepo interface {
	// List returns all templates in file order.
	List(ctx context.Context) ([]domain.Template, error)

	// GetByID returns one template. Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id int) (domain.Template, error)
}

type yamlTemplateFile struct {
	Templates []yamlTemplate `yaml:"templates"`
}

type yamlTemplate struct {
	ID          int            `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	ImageURL    string         `yaml:"image_url"`
	Locations   []yamlLocation `yaml:"locations"`
}

type yamlLocation struct {
	ID             int64  `yaml:"id"`
	Name           string `yaml:"name"`
	Category       string `yaml:"category"`
	PricePerPerson string `yaml:"price_per_person"`
	IsPetFriendly  bool   `yaml:"is_pet_friendly"`
}

// staticTemplateRepo holds templates decoded once at construction.
type staticTemplateRepo struct {
	templates []domain.Template
}

// NewDefaultTemplateRepo returns the templates embedded in the binary.
func NewDefaultTemplateRepo() (TemplateRepo, error) {
	return NewYAMLTemplateRepo(defaultTemplates)
}

// NewYAMLTemplateRepo decodes a templates document. Template ids must be
// unique and positive; names must be non-empty; prices must be decimal strings.
func NewYAMLTemplateRepo(data []byte) (TemplateRepo, error) {
	var file yamlTemplateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("repo.NewYAMLTemplateRepo: %w", err)
	}

	seen := make(map[int]bool, len(file.Templates))
	templates := make([]domain.Template, 0, len(file.Templates))
	for _, t := range file.Templates {
		if t.ID <= 0 {
			return nil, fmt.Errorf("repo.NewYAMLTemplateRepo: template %q: id must be positive", t.Name)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("repo.NewYAMLTemplateRepo: duplicate template id %d", t.ID)
		}
		if strings.TrimSpace(t.Name) == "" {
			return nil, fmt.Errorf("repo.NewYAMLTemplateRepo: template %d: name is required", t.ID)
		}
		seen[t.ID] = true

		locs := make([]domain.Location, 0, len(t.Locations))
		for _, l := range t.Locations {
			price, err := decimal.NewFromString(l.PricePerPerson)
			if err != nil {
				return nil, fmt.Errorf("repo.NewYAMLTemplateRepo: template %d location %d: price: %w", t.ID, l.ID, err)
			}
			locs = append(locs, domain.Location{
				ID:             l.ID,
				Name:           l.Name,
				Category:       l.Category,
				PricePerPerson: price,
				IsPetFriendly:  l.IsPetFriendly,
			})
		}
		templates = append(templates, domain.Template{
			ID:          t.ID,
			Name:        t.Name,
			Description: t.Description,
			ImageURL:    t.ImageURL,
			Locations:   locs,
		})
	}
	return &staticTemplateRepo{templates: templates}, nil
}

func (r *staticTemplateRepo) List(_ context.Context) ([]domain.Template, error) {
	out := make([]domain.Template, len(r.templates))
	copy(out, r.templates)
	return out, nil
}

func (r *staticTemplateRepo) GetByID(_ context.Context, id int) (domain.Template, error) {
	for _, t := range r.templates {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Template{}, fmt.Errorf("repo.TemplateRepo.GetByID: %w", domain.ErrNotFound)
}
