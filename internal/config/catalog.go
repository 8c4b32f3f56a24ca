package config

import (
	"fmt"
	"os"

	"visioncoach/internal/models"

	"gopkg.in/yaml.v3"
)

// Catalog is the static model and tab catalog. It ships with embedded
// defaults and can be overridden by a YAML file via CATALOG_PATH.
type Catalog struct {
	Models       []models.ModelInfo     `yaml:"models"`
	DefaultModel string                 `yaml:"default_model"`
	Temperature  float64                `yaml:"temperature"`
	MaxTokens    int                    `yaml:"max_tokens"`
	Tabs         []models.TabDescriptor `yaml:"tabs"`
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Models: []models.ModelInfo{
			{
				ID:          "stepfun/step-3.5-flash:free",
				Name:        "Step 3.5 Flash",
				Description: "Free fast model with strong performance",
			},
		},
		DefaultModel: "stepfun/step-3.5-flash:free",
		Temperature:  0.7,
		MaxTokens:    1000,
		Tabs: []models.TabDescriptor{
			{
				ID:      "self-exploration",
				LabelEn: "Self Exploration | Personal Master",
				LabelDe: "Selbsterforschung | Persönlicher Meister",
				Locked:  false,
			},
			{
				ID:      "multi-minds",
				LabelEn: "Multi Minds",
				LabelDe: "Multi Minds",
				Locked:  true,
			},
		},
	}
}

// LoadCatalog loads a catalog from a YAML file. Fields left empty in the file
// fall back to the embedded defaults so a partial override stays valid. An
// empty path means no override file is configured.
func LoadCatalog(filePath string) (*Catalog, error) {
	if filePath == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	catalog := DefaultCatalog()
	if err := yaml.Unmarshal(data, catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if len(catalog.Models) == 0 {
		return nil, fmt.Errorf("catalog file %s defines no models", filePath)
	}
	if len(catalog.Tabs) == 0 {
		return nil, fmt.Errorf("catalog file %s defines no tabs", filePath)
	}

	return catalog, nil
}

// DefaultTab returns the id of the first base-unlocked tab. Every catalog has
// one; the embedded default is "self-exploration".
func (c *Catalog) DefaultTab() string {
	for _, tab := range c.Tabs {
		if !tab.Locked {
			return tab.ID
		}
	}
	return c.Tabs[0].ID
}

// Tab returns the descriptor for id, or nil if the catalog has no such tab.
func (c *Catalog) Tab(id string) *models.TabDescriptor {
	for i := range c.Tabs {
		if c.Tabs[i].ID == id {
			return &c.Tabs[i]
		}
	}
	return nil
}
