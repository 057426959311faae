package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/microcosm-cc/bluemonday"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/skyfetch/pkg/outline"
)

func TestParseCatalogNestedSteps(t *testing.T) {
	data := []byte(`
recipes:
  - id: 7
    title: Toast
    category: Snack
    minutes: 3
    ingredients: [Bread]
    steps:
      - Slice bread.
      - - Toast.
        - - Check colour.
      - Serve.
`)
	recipes, err := ParseCatalog(data)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	require.Equal(t, []outline.Item{
		outline.Text("Slice bread."),
		outline.Nest(outline.Text("Toast."), outline.Nest(outline.Text("Check colour."))),
		outline.Text("Serve."),
	}, recipes[0].Steps)
}

func TestParseCatalogStripsMarkup(t *testing.T) {
	data := []byte(`
recipes:
  - id: 1
    title: "<b>Salt & Pepper</b> Fries"
    category: Snack
    minutes: 5
    ingredients: ["<script>alert(1)</script>Potatoes"]
    steps:
      - "Fry <i>twice</i>."
`)
	recipes, err := ParseCatalog(data)
	require.NoError(t, err)
	require.Equal(t, "Salt & Pepper Fries", recipes[0].Title)
	require.Equal(t, []string{"Potatoes"}, recipes[0].Ingredients)
	require.Equal(t, []outline.Item{outline.Text("Fry twice.")}, recipes[0].Steps)
}

func TestParseCatalogRejectsMappingStep(t *testing.T) {
	data := []byte(`
recipes:
  - id: 1
    title: Bad
    steps:
      - {text: nope}
`)
	_, err := ParseCatalog(data)
	require.Error(t, err)
}

func TestParseCatalogRequiresTitle(t *testing.T) {
	_, err := ParseCatalog([]byte("recipes:\n  - id: 1\n    title: \"\"\n"))
	require.Error(t, err)
}

func TestNewCatalogRejectsDuplicateIDs(t *testing.T) {
	_, err := NewCatalog([]Recipe{{ID: 1, Title: "a"}, {ID: 1, Title: "b"}})
	require.Error(t, err)
}

func TestLoadCatalogFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recipes:\n  - id: 5\n    title: Tea\n    category: Drink\n    steps: [Boil water.]\n"), 0o600))

	catalog, err := LoadCatalog(Config{CatalogPath: path})
	require.NoError(t, err)
	require.Len(t, catalog.Recipes(), 1)
	require.Equal(t, "Tea", catalog.Recipes()[0].Title)

	_, err = LoadCatalog(Config{CatalogPath: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
}

func TestSanitizeStepsPanicsOnUnknownItem(t *testing.T) {
	policy := bluemonday.StrictPolicy()
	require.PanicsWithValue(t, "recipe: unsupported step item <nil>", func() {
		sanitizeSteps(policy, []outline.Item{outline.Text("ok"), nil})
	})
	require.Panics(t, func() {
		sanitizeSteps(policy, []outline.Item{outline.Nest(outline.Item(nil))})
	})
}
