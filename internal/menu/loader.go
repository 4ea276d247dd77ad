package menu

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

type catalogDocument struct {
	Items []catalogEntry `yaml:"items"`
}

type catalogEntry struct {
	ID          int      `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Price       string   `yaml:"price"`
	Glyph       string   `yaml:"glyph"`
	Category    string   `yaml:"category"`
	Featured    bool     `yaml:"featured"`
	Rating      *float64 `yaml:"rating"`
}

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(bytes.NewReader(defaultCatalogYAML))
}

// LoadCatalogFile reads a YAML catalog from disk. An empty path selects the
// embedded default.
func LoadCatalogFile(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	return LoadCatalog(f)
}

// LoadCatalog decodes and validates a YAML catalog document.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc catalogDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	items := make([]MenuItem, 0, len(doc.Items))
	for _, e := range doc.Items {
		price, err := decimal.NewFromString(e.Price)
		if err != nil {
			return nil, fmt.Errorf("item %d: invalid price %q: %w", e.ID, e.Price, err)
		}

		items = append(items, MenuItem{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			UnitPrice:   price,
			Glyph:       e.Glyph,
			Category:    e.Category,
			Featured:    e.Featured,
			Rating:      e.Rating,
		})
	}

	return NewCatalog(items)
}
