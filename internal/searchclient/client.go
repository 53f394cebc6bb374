package searchclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"sitesearch/internal/models"
)

const DefaultEndpoint = "http://localhost:8000/search"

// ErrSearchFailed wraps every failure: transport, non-2xx status or an
// undecodable body.
var ErrSearchFailed = errors.New("search request failed")

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client posts search requests to the backend. It sets no timeout and
// never retries.
type Client struct {
	endpoint string
	http     Doer
	logger   logrus.FieldLogger
}

type Option func(*Client)

func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) { c.logger = l }
}

func New(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{endpoint: endpoint, http: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Endpoint() string { return c.endpoint }

// Search returns the backend's results with defaults applied. A response
// without a results field yields an empty, non-nil slice.
func (c *Client) Search(ctx context.Context, sr models.SearchRequest) ([]models.SearchResult, error) {
	payload, err := json.Marshal(sr)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrSearchFailed, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: http status %d", ErrSearchFailed, resp.StatusCode)
	}

	var body models.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchFailed, err)
	}
	if body.Error != "" && c.logger != nil {
		c.logger.WithField("backend_error", body.Error).Warn("backend reported an error alongside results")
	}
	return body.Normalized(), nil
}
