package eventlog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogEntry describes one dataset offered to the dashboard.
type CatalogEntry struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// Catalog lists the datasets the dashboard offers.
type Catalog struct {
	Datasets []CatalogEntry `yaml:"datasets" json:"datasets"`
}

// DefaultCatalog returns the dataset generations known to the dashboard.
func DefaultCatalog() Catalog {
	ids := []string{"GEC2017", "GEC2018", "EYH2017", "EYH2018", "IDP2019", "IDP2020"}
	c := Catalog{Datasets: make([]CatalogEntry, 0, len(ids))}
	for _, id := range ids {
		c.Datasets = append(c.Datasets, CatalogEntry{ID: id, Label: id})
	}
	return c
}

// ParseCatalog decodes a YAML catalog. Entries without a label use their id.
func ParseCatalog(content []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(content, &c); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse dataset catalog: %w", err)
	}
	for i, entry := range c.Datasets {
		if entry.ID == "" {
			return Catalog{}, fmt.Errorf("dataset catalog entry %d has no id", i)
		}
		if entry.Label == "" {
			c.Datasets[i].Label = entry.ID
		}
	}
	return c, nil
}

// LoadCatalog reads a YAML catalog from path, or returns DefaultCatalog when
// path is empty.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read dataset catalog: %w", err)
	}
	return ParseCatalog(content)
}

// Contains reports whether the catalog lists the dataset id.
func (c Catalog) Contains(id string) bool {
	for _, entry := range c.Datasets {
		if entry.ID == id {
			return true
		}
	}
	return false
}

// Merge returns the catalog with the given dataset ids appended, skipping ids
// it already lists.
func (c Catalog) Merge(ids ...string) Catalog {
	out := Catalog{Datasets: append([]CatalogEntry(nil), c.Datasets...)}
	for _, id := range ids {
		if id == "" || out.Contains(id) {
			continue
		}
		out.Datasets = append(out.Datasets, CatalogEntry{ID: id, Label: id})
	}
	return out
}
