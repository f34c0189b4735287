package server

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jflowmap/jflowmap-demo/internal/config"
	"github.com/jflowmap/jflowmap-demo/internal/viewlist"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func testViews() []viewlist.View {
	return []viewlist.View{
		{
			Name: "Migration",
			Desc: viewlist.Text("Flows of people"),
			ViewConfs: []viewlist.ViewConf{
				{JFMV: "m1", Name: "Overview"},
				{JFMV: "m2", Name: "Europe"},
			},
		},
	}
}

func testConfig() config.Config {
	return config.Config{
		Catalog: "views.yaml",
		Page:    config.Page{Title: "jflowmap demo applets", DeployJavaURL: "https://www.java.com/js/deployJava.js"},
	}
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func hrefs(t *testing.T, body string) []string {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(body))
	require.NoError(t, err)
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key == "href" {
					out = append(out, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func TestPageHandlerIndex(t *testing.T) {
	ts := httptest.NewServer(Mux(testConfig(), testViews(), 0))
	defer ts.Close()

	res, body := get(t, ts.URL+"/")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "text/html; charset=utf-8", res.Header.Get("Content-Type"))
	require.Contains(t, body, "<h1>jflowmap demo applets</h1>")
	require.Contains(t, body, `<h3 class="view">Migration view</h3><p class="viewdesc">Flows of people</p>`)
	require.NotContains(t, body, "deployJava")
	require.Equal(t, []string{"?m1", "?m2"}, hrefs(t, body))
}

func TestPageHandlerDeploy(t *testing.T) {
	ts := httptest.NewServer(Mux(testConfig(), testViews(), 0))
	defer ts.Close()

	res, body := get(t, ts.URL+"/?m2")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, `<script src="https://www.java.com/js/deployJava.js"></script>`)
	require.Contains(t, body, `"viewConfig":"viewconf/m2.jfmv"`)
	require.NotContains(t, body, "<h1>")
	require.NotContains(t, body, `class="views"`)
}

func TestPageHandlerLinksRoundTrip(t *testing.T) {
	ts := httptest.NewServer(Mux(testConfig(), testViews(), 0))
	defer ts.Close()

	_, index := get(t, ts.URL+"/")
	for _, href := range hrefs(t, index) {
		_, body := get(t, ts.URL+"/"+href)
		require.Contains(t, body, `"viewConfig":"viewconf/`+strings.TrimPrefix(href, "?")+`.jfmv"`)
	}
}

func TestPageHandlerEmptyQueryIsIndex(t *testing.T) {
	ts := httptest.NewServer(Mux(testConfig(), testViews(), 0))
	defer ts.Close()

	_, body := get(t, ts.URL+"/?")
	require.Contains(t, body, "<h1>jflowmap demo applets</h1>")
}

func TestPageHandlerMethods(t *testing.T) {
	ts := httptest.NewServer(Mux(testConfig(), testViews(), 0))
	defer ts.Close()

	res, err := http.Post(ts.URL+"/", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	_ = res.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)

	res, err = http.Head(ts.URL + "/?m1")
	require.NoError(t, err)
	_ = res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.True(t, res.ContentLength > 0)
}

func TestMuxUnknownPath(t *testing.T) {
	ts := httptest.NewServer(Mux(testConfig(), testViews(), 0))
	defer ts.Close()

	res, _ := get(t, ts.URL+"/nope")
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	res, _ = get(t, ts.URL+"/health")
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestMuxOptionalHandlers(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "viewconf"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "viewconf", "m1.jfmv"), []byte("opaque"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "jflowmap.jar"), []byte("jar"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), []byte("secret"), 0o644))

	cfg := testConfig()
	cfg.WebRoot = root
	cfg.Health.Enabled = true
	cfg.Prometheus.Enabled = true
	flags := Flags(cfg)
	require.Equal(t, "static, prometheus, health", flags.String())

	ts := httptest.NewServer(Mux(cfg, testViews(), flags))
	defer ts.Close()

	res, body := get(t, ts.URL+"/viewconf/m1.jfmv")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "opaque", body)

	res, body = get(t, ts.URL+"/jflowmap.jar")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "jar", body)

	res, _ = get(t, ts.URL+"/secret.txt")
	require.Equal(t, http.StatusNotFound, res.StatusCode)

	res, body = get(t, ts.URL+"/health")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "application/json", res.Header.Get("Content-Type"))
	require.Equal(t, `{}`, body)

	_, _ = get(t, ts.URL+"/?m1")
	res, body = get(t, ts.URL+"/metrics")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, body, `jflowmap_demo_page_renders_total{mode="deploy"}`)
}

func TestMuxInstrumentsHTTPHandlers(t *testing.T) {
	cfg := testConfig()
	cfg.Prometheus.Enabled = true
	cfg.Prometheus.InstrumentHTTPHandlers = true

	ts := httptest.NewServer(Mux(cfg, testViews(), Flags(cfg)))
	defer ts.Close()

	res, _ := get(t, ts.URL+"/")
	require.Equal(t, http.StatusOK, res.StatusCode)
	res, err := http.Post(ts.URL+"/", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	_ = res.Body.Close()

	_, body := get(t, ts.URL+"/metrics")
	require.Contains(t, body, `jflowmap_demo_http_requests_total{method="GET",path="/",status="200"}`)
	require.Contains(t, body, `jflowmap_demo_http_requests_total{method="POST",path="/",status="405"}`)
}

func TestMuxStaticHidesDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "viewconf"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "resources"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "viewconf", "m1.jfmv"), []byte("opaque"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "resources", "loading.gif"), []byte("gif"), 0o644))

	cfg := testConfig()
	cfg.WebRoot = root
	ts := httptest.NewServer(Mux(cfg, testViews(), Flags(cfg)))
	defer ts.Close()

	for _, path := range []string{"/resources/", "/viewconf/"} {
		res, body := get(t, ts.URL+path)
		require.Equal(t, http.StatusNotFound, res.StatusCode, path)
		require.NotContains(t, body, "loading.gif")
		require.NotContains(t, body, "m1.jfmv")
	}

	res, body := get(t, ts.URL+"/resources/loading.gif")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "gif", body)
}

func TestMuxLogsRequestsAtDebugLevel(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	defer func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	}()
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	ts := httptest.NewServer(Mux(testConfig(), testViews(), 0))
	_, _ = get(t, ts.URL+"/")
	ts.Close()
	require.NotContains(t, buf.String(), "http request")

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	ts = httptest.NewServer(Mux(testConfig(), testViews(), 0))
	_, _ = get(t, ts.URL+"/?m1")
	ts.Close()
	require.Contains(t, buf.String(), `"message":"http request"`)
	require.Contains(t, buf.String(), `"query":"m1"`)
}
