// Package searchapi serves POST /search: fetch the page, split it into
// heading/paragraph blocks and return the blocks that best match the query.
package searchapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sitesearch/internal/metrics"
	"sitesearch/internal/models"
	"sitesearch/internal/parser"
	"sitesearch/internal/ranker"
)

const DefaultLimit = 10

type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (io.ReadCloser, string, string, time.Duration, error)
}

type Handler struct {
	fetcher      Fetcher
	parser       *parser.Parser
	ranker       *ranker.Ranker
	limit        int
	fetchTimeout time.Duration
	logger       logrus.FieldLogger
	metrics      *metrics.Backend
}

func NewHandler(fetcher Fetcher, limit int, fetchTimeout time.Duration, logger logrus.FieldLogger, m *metrics.Backend) *Handler {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Handler{
		fetcher:      fetcher,
		parser:       parser.New(),
		ranker:       ranker.New(),
		limit:        limit,
		fetchTimeout: fetchTimeout,
		logger:       logger,
		metrics:      m,
	}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/search", h.Search)
}

func (h *Handler) Search(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" || strings.TrimSpace(req.Query) == "" {
		h.metrics.IncSearch("bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	ctx := c.Request.Context()
	if h.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.fetchTimeout)
		defer cancel()
	}

	body, finalURL, ct, fetchDur, err := h.fetcher.Fetch(ctx, strings.TrimSpace(req.URL))
	if err != nil {
		h.metrics.IncSearch("fetch_error")
		h.logger.WithFields(logrus.Fields{
			"url":   req.URL,
			"error": err.Error(),
		}).Warn("fetch failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch url: " + err.Error()})
		return
	}
	defer body.Close()
	h.metrics.ObserveFetch(fetchDur)

	page, err := h.parser.Extract(body, ct)
	if err != nil {
		h.metrics.IncSearch("parse_error")
		h.logger.WithError(err).WithField("url", finalURL).Warn("parse failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	matches := h.ranker.Rank(req.Query, page.Blocks, h.limit)
	basePath := pagePath(finalURL)
	results := make([]models.SearchResult, 0, len(matches))
	for _, m := range matches {
		path := basePath
		if m.Block.Anchor != "" {
			path += "#" + m.Block.Anchor
		}
		results = append(results, models.SearchResult{
			Result: m.Block.Text,
			Path:   path,
			Score:  m.Score,
			HTML:   m.Block.HTML,
		})
	}

	h.metrics.IncSearch("ok")
	fields := logrus.Fields{
		"url":      finalURL,
		"title":    page.Title,
		"language": page.Language,
		"blocks":   len(page.Blocks),
		"results":  len(results),
		"fetch_ms": fetchDur.Milliseconds(),
	}
	if len(matches) > 0 {
		fields["top_heading"] = matches[0].Block.Heading
	}
	h.logger.WithFields(fields).Info("search served")

	c.JSON(http.StatusOK, models.SearchResponse{Results: results})
}

func pagePath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}
