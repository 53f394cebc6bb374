package render

import (
	"math"

	"sitesearch/internal/models"
)

// Card is the display unit for one search hit. ShowHTML belongs to this
// card alone; toggling it never touches another card.
type Card struct {
	Result   models.SearchResult
	ShowHTML bool
}

func NewCard(r models.SearchResult) Card {
	return Card{Result: r.WithDefaults()}
}

// NewCards builds one card per result, preserving order.
func NewCards(results []models.SearchResult) []Card {
	cards := make([]Card, 0, len(results))
	for _, r := range results {
		cards = append(cards, NewCard(r))
	}
	return cards
}

func (c *Card) Toggle() { c.ShowHTML = !c.ShowHTML }

func (c Card) ToggleLabel() string {
	if c.ShowHTML {
		return "Hide HTML"
	}
	return "View HTML"
}

// ScorePercent rounds score*100 to the nearest integer, halves up. Scores
// outside [0,1] are clamped and NaN reads as 0.
func (c Card) ScorePercent() int {
	s := c.Result.Score
	switch {
	case math.IsNaN(s) || s < 0:
		s = 0
	case s > 1:
		s = 1
	}
	return int(math.Floor(s*100 + 0.5))
}
