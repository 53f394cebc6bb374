
package ranker

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"sitesearch/internal/models"
)

// Ranker scores blocks against a query by cosine similarity of their term
// frequency vectors. Scores fall in [0,1].
type Ranker struct{}

func New() *Ranker { return &Ranker{} }

// simple stopword list (extend as needed)
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "of": {}, "to": {}, "in": {}, "a": {}, "for": {}, "is": {}, "on": {}, "with": {}, "as": {},
	"by": {}, "at": {}, "from": {}, "that": {}, "this": {}, "it": {}, "an": {}, "be": {}, "or": {}, "are": {}, "was": {},
	"will": {}, "has": {}, "have": {}, "had": {}, "but": {}, "not": {}, "your": {}, "you": {}, "we": {}, "our": {},
}

type Match struct {
	Block models.Block
	Score float64
}

// Rank returns at most limit blocks with a positive score, best first. Equal
// scores keep document order. limit <= 0 means no limit.
func (r *Ranker) Rank(query string, blocks []models.Block, limit int) []Match {
	q := termFreq(query)
	if len(q) == 0 {
		return []Match{}
	}
	matches := make([]Match, 0, len(blocks))
	for _, b := range blocks {
		if s := cosine(q, termFreq(b.Text)); s > 0 {
			matches = append(matches, Match{Block: b, Score: s})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func Tokens(text string) []string {
	token := func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsNumber(r) }
	words := strings.FieldsFunc(strings.ToLower(text), token)

	out := words[:0]
	for _, w := range words {
		if len([]rune(w)) < 2 {
			continue
		}
		if _, stop := stopwords[w]; stop {
			continue
		}
		out = append(out, w)
	}
	return out
}

func termFreq(text string) map[string]float64 {
	freq := map[string]float64{}
	for _, w := range Tokens(text) {
		freq[w]++
	}
	return freq
}

func cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	var dot, na, nb float64
	for k, v := range a {
		na += v * v
		if w, ok := b[k]; ok {
			dot += v * w
		}
	}
	for _, w := range b {
		nb += w * w
	}
	s := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Min(s, 1)
}
