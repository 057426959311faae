package recipe

import (
	_ "embed"
	"errors"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"

	"github.com/yanqian/skyfetch/pkg/outline"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the immutable set of recipes served by the domain.
type Catalog struct {
	recipes []Recipe
}

// NewCatalog copies recipes into a catalog, rejecting duplicate ids.
func NewCatalog(recipes []Recipe) (*Catalog, error) {
	seen := make(map[int]struct{}, len(recipes))
	out := make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("duplicate recipe id %d", r.ID)
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return &Catalog{recipes: out}, nil
}

// LoadCatalog reads the catalog at path, or the embedded default when path is empty.
func LoadCatalog(cfg Config) (*Catalog, error) {
	data := defaultCatalog
	if path := strings.TrimSpace(cfg.CatalogPath); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read recipe catalog: %w", err)
		}
		data = raw
	}
	recipes, err := ParseCatalog(data)
	if err != nil {
		return nil, err
	}
	return NewCatalog(recipes)
}

// Recipes returns the catalog in its original order.
func (c *Catalog) Recipes() []Recipe {
	out := make([]Recipe, len(c.recipes))
	copy(out, c.recipes)
	return out
}

type catalogFile struct {
	Recipes []recipeWire `yaml:"recipes"`
}

type recipeWire struct {
	ID          int       `yaml:"id"`
	Title       string    `yaml:"title"`
	Category    string    `yaml:"category"`
	Minutes     int       `yaml:"minutes"`
	Ingredients []string  `yaml:"ingredients"`
	Steps       stepsWire `yaml:"steps"`
}

type stepsWire []outline.Item

func (s *stepsWire) UnmarshalYAML(node *yaml.Node) error {
	items, err := decodeSteps(node)
	if err != nil {
		return err
	}
	*s = items
	return nil
}

func decodeSteps(node *yaml.Node) ([]outline.Item, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: steps must be a list", node.Line)
	}
	items := make([]outline.Item, 0, len(node.Content))
	for _, child := range node.Content {
		switch child.Kind {
		case yaml.ScalarNode:
			items = append(items, outline.Text(child.Value))
		case yaml.SequenceNode:
			nested, err := decodeSteps(child)
			if err != nil {
				return nil, err
			}
			items = append(items, outline.Nest(nested...))
		default:
			return nil, fmt.Errorf("line %d: step must be text or a list of steps", child.Line)
		}
	}
	return items, nil
}

// ParseCatalog decodes a YAML catalog. Markup in any text field is stripped.
func ParseCatalog(data []byte) ([]Recipe, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse recipe catalog: %w", err)
	}
	policy := bluemonday.StrictPolicy()
	recipes := make([]Recipe, 0, len(file.Recipes))
	for _, w := range file.Recipes {
		title := plainText(policy, w.Title)
		if title == "" {
			return nil, errors.New("recipe title cannot be empty")
		}
		if w.Minutes < 0 {
			return nil, fmt.Errorf("recipe %q has negative minutes", title)
		}
		ingredients := make([]string, 0, len(w.Ingredients))
		for _, ing := range w.Ingredients {
			ingredients = append(ingredients, plainText(policy, ing))
		}
		recipes = append(recipes, Recipe{
			ID:          w.ID,
			Title:       title,
			Category:    plainText(policy, w.Category),
			Minutes:     w.Minutes,
			Ingredients: ingredients,
			Steps:       sanitizeSteps(policy, w.Steps),
		})
	}
	return recipes, nil
}

func sanitizeSteps(policy *bluemonday.Policy, items []outline.Item) []outline.Item {
	out := make([]outline.Item, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case outline.Leaf:
			out = append(out, outline.Text(plainText(policy, v.Text)))
		case outline.Group:
			out = append(out, outline.Nest(sanitizeSteps(policy, v.Children)...))
		default:
			panic(fmt.Sprintf("recipe: unsupported step item %T", item))
		}
	}
	return out
}

// plainText strips tags and returns unescaped text; escaping happens at render time.
func plainText(policy *bluemonday.Policy, s string) string {
	return strings.TrimSpace(html.UnescapeString(policy.Sanitize(s)))
}
