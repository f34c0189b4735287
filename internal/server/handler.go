package server

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/jflowmap/jflowmap-demo/internal/viewlist"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var pageRendersTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "jflowmap_demo",
		Name:      "page_renders_total",
		Help:      "Number of rendered pages by mode",
	},
	[]string{"mode"},
)

func init() {
	_ = prometheus.DefaultRegisterer.Register(pageRendersTotal)
}

// PageHandler renders the view list page, or the applet page when the query
// names a view configuration.
type PageHandler struct {
	views    []viewlist.View
	opts     viewlist.DocumentOptions
	embedder viewlist.Embedder
}

// NewPageHandler creates a PageHandler over a loaded catalog. A nil embedder
// means viewlist.DeployJava.
func NewPageHandler(views []viewlist.View, opts viewlist.DocumentOptions, embedder viewlist.Embedder) *PageHandler {
	if embedder == nil {
		embedder = viewlist.DeployJava{}
	}
	return &PageHandler{views: views, opts: opts, embedder: embedder}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page, err := viewlist.Render(h.views, viewlist.Search(r.URL), h.embedder)
	if err != nil {
		log.Error().Err(err).Str("query", r.URL.RawQuery).Msg("error rendering page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := viewlist.WriteDocument(&buf, page, h.opts); err != nil {
		log.Error().Err(err).Msg("error writing document")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	pageRendersTotal.WithLabelValues(page.Mode).Inc()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(buf.Bytes())
}
