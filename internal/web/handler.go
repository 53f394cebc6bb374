// Package web is the browser shell: it renders the search form and result
// cards server-side, one fresh controller per submission.
package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sitesearch/internal/metrics"
	"sitesearch/internal/render"
	"sitesearch/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

type View struct {
	URL       string
	Query     string
	Loading   bool
	Notice    string
	Error     string
	Cards     []render.Card
	NoResults bool
}

type Handler struct {
	searcher session.Searcher
	logger   logrus.FieldLogger
	metrics  *metrics.Web
}

func NewHandler(searcher session.Searcher, logger logrus.FieldLogger, m *metrics.Web) *Handler {
	return &Handler{searcher: searcher, logger: logger, metrics: m}
}

func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// Register installs the templates on the engine and mounts the routes.
func (h *Handler) Register(r *gin.Engine) {
	r.SetHTMLTemplate(Templates())
	r.GET("/", h.Index)
	r.POST("/search", h.Submit)
}

func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", View{})
}

func (h *Handler) Submit(c *gin.Context) {
	ctrl := session.New(h.searcher, h.logger)
	ctrl.SetURL(c.PostForm("url"))
	ctrl.SetQuery(c.PostForm("query"))

	err := ctrl.Submit(c.Request.Context())
	view := viewOf(ctrl)
	switch {
	case errors.Is(err, session.ErrMissingFields):
		h.metrics.IncSubmission("invalid")
		view.Notice = session.MissingFieldsNotice
		c.HTML(http.StatusBadRequest, "index.html", view)
		return
	case err != nil:
		h.metrics.IncSubmission("error")
		h.logger.WithError(err).Error("submit failed")
		view.Error = session.FailureMessage
	case view.Error != "":
		h.metrics.IncSubmission("failed")
	case len(view.Cards) == 0:
		h.metrics.IncSubmission("empty")
	default:
		h.metrics.IncSubmission("ok")
	}
	c.HTML(http.StatusOK, "index.html", view)
}

func viewOf(ctrl *session.Controller) View {
	st := ctrl.State()
	return View{
		URL:       ctrl.URL(),
		Query:     ctrl.Query(),
		Loading:   st.Loading,
		Error:     st.Error,
		Cards:     render.NewCards(st.Results),
		NoResults: ctrl.ShowNoResults(),
	}
}
