package recipe

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	apperrors "github.com/yanqian/skyfetch/pkg/errors"
	"github.com/yanqian/skyfetch/pkg/outline"
)

// Service exposes the recipe viewer operations.
type Service interface {
	List(ctx context.Context, q Query) ([]Card, error)
	Get(ctx context.Context, id int) (Card, error)
	Categories(ctx context.Context) ([]string, error)
}

type service struct {
	cards  []Card
	logger *slog.Logger
}

// NewService renders every catalog entry once; cards are read-only afterwards.
func NewService(catalog *Catalog, logger *slog.Logger) Service {
	recipes := catalog.Recipes()
	cards := make([]Card, 0, len(recipes))
	for _, r := range recipes {
		cards = append(cards, toCard(r))
	}
	return &service{cards: cards, logger: logger.With("component", "recipe.service")}
}

func toCard(r Recipe) Card {
	ingredients := make([]string, len(r.Ingredients))
	copy(ingredients, r.Ingredients)
	return Card{
		ID:          r.ID,
		Title:       r.Title,
		Category:    r.Category,
		Minutes:     r.Minutes,
		Ingredients: ingredients,
		Steps:       outline.Build(r.Steps),
		StepsHTML:   outline.Render(r.Steps),
		StepCount:   outline.LeafCount(r.Steps),
		StepDepth:   outline.Depth(r.Steps),
	}
}

func (s *service) List(_ context.Context, q Query) ([]Card, error) {
	order := strings.TrimSpace(q.Sort)
	switch order {
	case SortNone, SortTimeAsc, SortTimeDesc, SortTitleAsc, SortTitleDesc:
	default:
		return nil, apperrors.Wrap("invalid_input", "unsupported sort order "+order, nil)
	}

	category := strings.TrimSpace(q.Category)
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]Card, 0, len(s.cards))
	for _, card := range s.cards {
		if category != "" && category != AllCategories && card.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(card.Title), search) {
			continue
		}
		out = append(out, card)
	}

	sortCards(out, order)
	return out, nil
}

func sortCards(cards []Card, order string) {
	switch order {
	case SortTimeAsc:
		sort.SliceStable(cards, func(i, j int) bool { return cards[i].Minutes < cards[j].Minutes })
	case SortTimeDesc:
		sort.SliceStable(cards, func(i, j int) bool { return cards[i].Minutes > cards[j].Minutes })
	case SortTitleAsc, SortTitleDesc:
		// Collators keep internal buffers, so one per call.
		col := collate.New(language.English)
		sort.SliceStable(cards, func(i, j int) bool {
			cmp := col.CompareString(cards[i].Title, cards[j].Title)
			if order == SortTitleDesc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
}

func (s *service) Get(_ context.Context, id int) (Card, error) {
	for _, card := range s.cards {
		if card.ID == id {
			return card, nil
		}
	}
	return Card{}, apperrors.Wrap("not_found", "recipe not found", nil)
}

func (s *service) Categories(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, card := range s.cards {
		if _, ok := seen[card.Category]; ok {
			continue
		}
		seen[card.Category] = struct{}{}
		out = append(out, card.Category)
	}
	return out, nil
}
