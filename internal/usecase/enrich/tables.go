package enrich

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var keywordsYAML []byte

// CategoryRule maps any of its keywords to a category.
type CategoryRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Tables holds the ordered lookup tables driving enrichment.
// Order is significant everywhere: it is the tie-break.
type Tables struct {
	Categories      []CategoryRule `yaml:"categories"`
	DefaultCategory string         `yaml:"default_category"`
	Tags            []string       `yaml:"tags"`
	MaxTags         int            `yaml:"max_tags"`
	Trending        []string       `yaml:"trending"`
	Summary         struct {
		MaxLength int    `yaml:"max_length"`
		Delimiter string `yaml:"delimiter"`
		Ellipsis  string `yaml:"ellipsis"`
	} `yaml:"summary"`
}

// defaultTables is decoded once at init and never mutated afterwards.
var defaultTables = mustLoadTables(keywordsYAML)

// DefaultTables returns a copy of the embedded tables.
func DefaultTables() Tables {
	return defaultTables.clone()
}

// LoadTables decodes and validates a YAML table document.
func LoadTables(data []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tables{}, fmt.Errorf("decode enrichment tables: %w", err)
	}
	if err := t.normalize(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

func mustLoadTables(data []byte) Tables {
	t, err := LoadTables(data)
	if err != nil {
		panic(err)
	}
	return t
}

// normalize lower-cases keywords and checks the invariants the engine relies on.
func (t *Tables) normalize() error {
	if len(t.Categories) == 0 {
		return fmt.Errorf("enrichment tables: no categories")
	}
	if t.DefaultCategory == "" {
		return fmt.Errorf("enrichment tables: default_category is required")
	}
	for i := range t.Categories {
		if t.Categories[i].Name == "" || len(t.Categories[i].Keywords) == 0 {
			return fmt.Errorf("enrichment tables: category %d needs a name and keywords", i)
		}
		for j, kw := range t.Categories[i].Keywords {
			t.Categories[i].Keywords[j] = strings.ToLower(kw)
		}
	}
	for i, kw := range t.Trending {
		t.Trending[i] = strings.ToLower(kw)
	}
	if t.MaxTags <= 0 {
		return fmt.Errorf("enrichment tables: max_tags must be positive")
	}
	if t.Summary.MaxLength <= 0 || t.Summary.Delimiter == "" {
		return fmt.Errorf("enrichment tables: summary max_length and delimiter are required")
	}
	return nil
}

func (t Tables) clone() Tables {
	c := t
	c.Categories = make([]CategoryRule, len(t.Categories))
	for i, r := range t.Categories {
		c.Categories[i] = CategoryRule{Name: r.Name, Keywords: append([]string(nil), r.Keywords...)}
	}
	c.Tags = append([]string(nil), t.Tags...)
	c.Trending = append([]string(nil), t.Trending...)
	return c
}
