package recipe

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/skyfetch/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	catalog, err := LoadCatalog(Config{})
	require.NoError(t, err)
	return NewService(catalog, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func titles(cards []Card) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Title)
	}
	return out
}

func TestListDefaultOrder(t *testing.T) {
	cards, err := newTestService(t).List(context.Background(), Query{})
	require.NoError(t, err)
	require.Equal(t, []string{"Spaghetti Bolognese", "Chicken Salad", "Pancakes", "Grilled Cheese Sandwich"}, titles(cards))
}

func TestListFilters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cards, err := svc.List(ctx, Query{Category: "Breakfast"})
	require.NoError(t, err)
	require.Equal(t, []string{"Pancakes"}, titles(cards))

	cards, err = svc.List(ctx, Query{Category: AllCategories, Search: "  CHEESE "})
	require.NoError(t, err)
	require.Equal(t, []string{"Grilled Cheese Sandwich"}, titles(cards))

	cards, err = svc.List(ctx, Query{Category: "Dinner", Search: "salad"})
	require.NoError(t, err)
	require.Empty(t, cards)
}

func TestListSorts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := map[string][]string{
		SortTimeAsc:   {"Grilled Cheese Sandwich", "Chicken Salad", "Pancakes", "Spaghetti Bolognese"},
		SortTimeDesc:  {"Spaghetti Bolognese", "Pancakes", "Chicken Salad", "Grilled Cheese Sandwich"},
		SortTitleAsc:  {"Chicken Salad", "Grilled Cheese Sandwich", "Pancakes", "Spaghetti Bolognese"},
		SortTitleDesc: {"Spaghetti Bolognese", "Pancakes", "Grilled Cheese Sandwich", "Chicken Salad"},
	}
	for order, want := range cases {
		cards, err := svc.List(ctx, Query{Sort: order})
		require.NoError(t, err, order)
		require.Equal(t, want, titles(cards), order)
	}
}

func TestListRejectsUnknownSort(t *testing.T) {
	_, err := newTestService(t).List(context.Background(), Query{Sort: "calories"})
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestGetRendersNestedSteps(t *testing.T) {
	card, err := newTestService(t).Get(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, "Pancakes", card.Title)
	require.Equal(t, 8, card.StepCount)
	require.Equal(t, 2, card.StepDepth)
	require.Len(t, card.Steps.Entries, 5)
	require.NotNil(t, card.Steps.Entries[1].Nested)
	require.Equal(t, "Add milk and eggs.", card.Steps.Entries[1].Nested.Entries[0].Text)
	require.Contains(t, card.StepsHTML, "<li><ol><li>Add milk and eggs.</li><li>Whisk until smooth.</li><li><ol><li>If batter")
}

func TestGetMissing(t *testing.T) {
	_, err := newTestService(t).Get(context.Background(), 99)
	require.True(t, apperrors.IsCode(err, "not_found"))
}

func TestCategories(t *testing.T) {
	cats, err := newTestService(t).Categories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Dinner", "Lunch", "Breakfast", "Snack"}, cats)
}
