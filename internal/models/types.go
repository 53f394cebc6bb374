package models

// Fallbacks applied to result fields the backend leaves empty or zero.
const (
	DefaultTitle = "No title"
	DefaultPath  = "/unknown"
	DefaultScore = 0.8
)

type SearchRequest struct {
	URL   string `json:"url"`
	Query string `json:"query"`
}

type SearchResult struct {
	Result string  `json:"result"`
	Path   string  `json:"path"`
	Score  float64 `json:"score"`
	HTML   string  `json:"html"`
}

// WithDefaults fills empty or zero fields. A zero score counts as missing.
func (r SearchResult) WithDefaults() SearchResult {
	if r.Result == "" {
		r.Result = DefaultTitle
	}
	if r.Path == "" {
		r.Path = DefaultPath
	}
	if r.Score == 0 {
		r.Score = DefaultScore
	}
	return r
}

type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Error   string         `json:"error,omitempty"`
}

// Normalized returns the results with defaults applied, never nil.
func (r SearchResponse) Normalized() []SearchResult {
	out := make([]SearchResult, 0, len(r.Results))
	for _, res := range r.Results {
		out = append(out, res.WithDefaults())
	}
	return out
}

// Block is one heading paired with the first paragraph that follows it.
type Block struct {
	Heading string `json:"heading"`
	Anchor  string `json:"anchor,omitempty"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

type Page struct {
	Title    string  `json:"title,omitempty"`
	Language string  `json:"language,omitempty"`
	Blocks   []Block `json:"blocks"`
}
