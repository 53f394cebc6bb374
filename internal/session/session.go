// Package session holds the search form's field values and the
// loading/results/error state of one page view.
package session

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"sitesearch/internal/models"
)

var (
	ErrMissingFields = errors.New("all fields are required")
	ErrBusy          = errors.New("search already in progress")
)

const (
	MissingFieldsNotice = "All fields are required"
	FailureMessage      = "Search request failed"
)

type Searcher interface {
	Search(ctx context.Context, req models.SearchRequest) ([]models.SearchResult, error)
}

type State struct {
	Loading bool
	Results []models.SearchResult
	Error   string
}

type Controller struct {
	searcher Searcher
	logger   logrus.FieldLogger

	url   string
	query string
	state State
}

func New(searcher Searcher, logger logrus.FieldLogger) *Controller {
	return &Controller{searcher: searcher, logger: logger}
}

func (c *Controller) SetURL(v string)   { c.url = v }
func (c *Controller) SetQuery(v string) { c.query = v }
func (c *Controller) URL() string       { return c.url }
func (c *Controller) Query() string     { return c.query }

// State returns a copy; callers cannot mutate the controller's results.
// Results is never nil.
func (c *Controller) State() State {
	s := c.state
	s.Results = append(make([]models.SearchResult, 0, len(c.state.Results)), c.state.Results...)
	return s
}

// Begin validates the fields and moves to loading. The returned request is
// what the caller must send; Complete must follow exactly once.
func (c *Controller) Begin() (models.SearchRequest, error) {
	if c.url == "" || c.query == "" {
		return models.SearchRequest{}, ErrMissingFields
	}
	if c.state.Loading {
		return models.SearchRequest{}, ErrBusy
	}
	c.state = State{Loading: true}
	return models.SearchRequest{URL: c.url, Query: c.query}, nil
}

// Complete records the outcome of the request started by Begin. Every
// failure collapses to the same message.
func (c *Controller) Complete(results []models.SearchResult, err error) {
	if err != nil {
		if c.logger != nil {
			c.logger.WithError(err).WithField("url", c.url).Warn("search failed")
		}
		c.state = State{Error: FailureMessage}
		return
	}
	if results == nil {
		results = []models.SearchResult{}
	}
	c.state = State{Results: results}
}

// Submit runs one full search cycle. Only validation and busy errors are
// returned; request failures land in State().Error.
func (c *Controller) Submit(ctx context.Context) error {
	req, err := c.Begin()
	if err != nil {
		return err
	}
	results, err := c.searcher.Search(ctx, req)
	c.Complete(results, err)
	return nil
}

// ShowNoResults reports whether the "No results found." notice applies.
func (c *Controller) ShowNoResults() bool {
	return len(c.state.Results) == 0 && !c.state.Loading && c.url != "" && c.query != ""
}
