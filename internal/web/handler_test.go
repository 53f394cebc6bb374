package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitesearch/internal/metrics"
	"sitesearch/internal/models"
	"sitesearch/pkg/logger"
)

type searcherStub struct {
	calls   int
	results []models.SearchResult
	err     error
}

func (s *searcherStub) Search(ctx context.Context, req models.SearchRequest) ([]models.SearchResult, error) {
	s.calls++
	return s.results, s.err
}

type harness struct {
	router   *gin.Engine
	searcher *searcherStub
	metrics  *metrics.Web
}

func setup(s *searcherStub) *harness {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	m := metrics.NewWeb(prometheus.NewRegistry())
	NewHandler(s, logger.Discard(), m).Register(router)
	return &harness{router: router, searcher: s, metrics: m}
}

func (h *harness) submit(u, q string) *httptest.ResponseRecorder {
	form := url.Values{"url": {u}, "query": {q}}
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	h.router.ServeHTTP(resp, req)
	return resp
}

func TestIndexRendersEmptyForm(t *testing.T) {
	h := setup(&searcherStub{})
	resp := httptest.NewRecorder()
	h.router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, "Website Content Search")
	assert.Contains(t, body, `placeholder="Enter Website URL"`)
	assert.NotContains(t, body, "No results found.")
	assert.NotContains(t, body, `class="card"`)
}

func TestSubmitMissingFieldShowsNoticeWithoutRequest(t *testing.T) {
	h := setup(&searcherStub{})

	resp := h.submit("https://example.com", "")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "All fields are required")
	assert.Contains(t, resp.Body.String(), `value="https://example.com"`)
	assert.Equal(t, 0, h.searcher.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Submissions.WithLabelValues("invalid")))
}

func TestSubmitRendersOneCardPerResultInOrder(t *testing.T) {
	h := setup(&searcherStub{results: []models.SearchResult{
		{Result: "Alpha", Path: "/a", Score: 0.91, HTML: "<h1>Alpha</h1>"},
		{Result: "Beta", Path: "/b", Score: 0.5},
		{Result: "Gamma"},
	}})

	resp := h.submit("https://example.com", "alpha")

	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Equal(t, 3, strings.Count(body, `<article class="card">`))
	a, b, g := strings.Index(body, "Alpha"), strings.Index(body, "Beta"), strings.Index(body, "Gamma")
	assert.True(t, a < b && b < g, "cards out of order")
	assert.Contains(t, body, "91% match")
	assert.Contains(t, body, "Path: /unknown")
	assert.NotContains(t, body, "No results found.")
}

func TestSubmitShowsRawHTMLAsText(t *testing.T) {
	h := setup(&searcherStub{results: []models.SearchResult{{Result: "x", HTML: `<script>alert(1)</script>`}}})

	body := h.submit("https://example.com", "x").Body.String()

	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.NotContains(t, body, "<details open>")
}

func TestSubmitFailureShowsGenericError(t *testing.T) {
	h := setup(&searcherStub{err: errors.New("http status 502")})

	resp := h.submit("https://example.com", "x")

	require.Equal(t, http.StatusOK, resp.Code)
	body := resp.Body.String()
	assert.Contains(t, body, "Search request failed")
	assert.NotContains(t, body, "502")
	assert.NotContains(t, body, `<article class="card">`)
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Submissions.WithLabelValues("failed")))
}

func TestSubmitEmptyResultsShowsNotice(t *testing.T) {
	h := setup(&searcherStub{results: []models.SearchResult{}})

	body := h.submit("https://example.com", "x").Body.String()

	assert.Contains(t, body, "No results found.")
	assert.Equal(t, 1.0, testutil.ToFloat64(h.metrics.Submissions.WithLabelValues("empty")))
}
