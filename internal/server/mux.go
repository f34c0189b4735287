package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/jflowmap/jflowmap-demo/internal/config"
	"github.com/jflowmap/jflowmap-demo/internal/health"
	"github.com/jflowmap/jflowmap-demo/internal/logging"
	"github.com/jflowmap/jflowmap-demo/internal/middleware"
	"github.com/jflowmap/jflowmap-demo/internal/viewlist"

	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// HandlerFlag is a bit mask of optional handlers enabled in mux.
type HandlerFlag int

const (
	// HandlerStatic serves applet files from the web root.
	HandlerStatic HandlerFlag = 1 << iota
	// HandlerPrometheus enables Prometheus handler.
	HandlerPrometheus
	// HandlerHealth enables Health check endpoint.
	HandlerHealth
)

var handlerText = map[HandlerFlag]string{
	HandlerStatic:     "static",
	HandlerPrometheus: "prometheus",
	HandlerHealth:     "health",
}

func (flags HandlerFlag) String() string {
	var endpoints []string
	for _, flag := range []HandlerFlag{HandlerStatic, HandlerPrometheus, HandlerHealth} {
		if flags&flag != 0 {
			endpoints = append(endpoints, handlerText[flag])
		}
	}
	return strings.Join(endpoints, ", ")
}

// Flags derives enabled handlers from configuration.
func Flags(cfg config.Config) HandlerFlag {
	var flags HandlerFlag
	if cfg.WebRoot != "" {
		flags |= HandlerStatic
	}
	if cfg.Prometheus.Enabled {
		flags |= HandlerPrometheus
	}
	if cfg.Health.Enabled {
		flags |= HandlerHealth
	}
	return flags
}

// staticPrefixes are the paths the applet page references relative to itself.
var staticPrefixes = []string{"/viewconf/", "/resources/", "/" + viewlist.AppletArchive}

// Mux returns a mux serving the page at "/" plus the handlers set in flags.
func Mux(cfg config.Config, views []viewlist.View, flags HandlerFlag) *http.ServeMux {
	mux := http.NewServeMux()

	var commonMiddlewares []alice.Constructor
	if logging.Enabled(zerolog.DebugLevel) {
		commonMiddlewares = append(commonMiddlewares, middleware.LogRequest)
	}
	if cfg.Prometheus.Enabled && cfg.Prometheus.InstrumentHTTPHandlers {
		commonMiddlewares = append(commonMiddlewares, middleware.HTTPServerInstrumentation)
	}
	basicChain := alice.New(commonMiddlewares...)
	readOnlyChain := basicChain.Append(middleware.ReadOnly)

	page := NewPageHandler(views, viewlist.DocumentOptions{
		Title:         cfg.Page.Title,
		DeployJavaURL: cfg.Page.DeployJavaURL,
	}, viewlist.DeployJava{})
	mux.Handle("/{$}", readOnlyChain.Then(page))

	if flags&HandlerStatic != 0 {
		files := http.FileServer(fileOnlyFS{http.Dir(filepath.Clean(cfg.WebRoot))})
		for _, prefix := range staticPrefixes {
			mux.Handle(prefix, readOnlyChain.Then(files))
		}
	}
	if flags&HandlerPrometheus != 0 {
		mux.Handle("/metrics", basicChain.Then(promhttp.Handler()))
	}
	if flags&HandlerHealth != 0 {
		mux.Handle("/health", basicChain.Then(health.NewHandler()))
	}
	return mux
}

// fileOnlyFS hides directories so the file server never lists web_root.
type fileOnlyFS struct {
	fs http.FileSystem
}

func (f fileOnlyFS) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	if st.IsDir() {
		_ = file.Close()
		return nil, os.ErrNotExist
	}
	return file, nil
}
