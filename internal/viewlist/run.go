package viewlist

import (
	"strings"
	"time"

	enginereport "github.com/jflowmap/jflowmap-demo/internal/report"
)

const manifestSchemaVersion = "1.0.0"

func DefaultChecksumsPath(outJSONPath string) string {
	return enginereport.DefaultChecksumsPath(outJSONPath)
}

func DefaultRunLogPath(outJSONPath string) string {
	return enginereport.DefaultRunLogPath(outJSONPath)
}

// Run renders one page from a catalog file and writes it out together with
// a manifest, checksums and a run log.
func Run(cfg RenderConfig) (RenderResult, error) {
	if strings.TrimSpace(cfg.OutHTMLPath) == "" {
		cfg.OutHTMLPath = "index.html"
	}
	if strings.TrimSpace(cfg.OutJSONPath) == "" {
		cfg.OutJSONPath = "render.json"
	}
	if strings.TrimSpace(cfg.ChecksumsPath) == "" {
		cfg.ChecksumsPath = DefaultChecksumsPath(cfg.OutJSONPath)
	}
	if strings.TrimSpace(cfg.RunLogPath) == "" {
		cfg.RunLogPath = DefaultRunLogPath(cfg.OutJSONPath)
	}

	log, logErr := enginereport.NewRunLogger(cfg.RunLogPath)
	if logErr == nil {
		defer log.Close()
	}
	log.Info("run.start", map[string]interface{}{
		"catalog":   cfg.CatalogPath,
		"query":     cfg.Query,
		"out_html":  cfg.OutHTMLPath,
		"out_json":  cfg.OutJSONPath,
		"checksums": cfg.ChecksumsPath,
	})

	catalog, err := LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Warn("run.catalog.error", map[string]interface{}{"error": err.Error()})
		return RenderResult{}, err
	}
	log.Info("run.catalog.ok", map[string]interface{}{
		"views":     len(catalog.Views),
		"viewconfs": catalog.ViewConfCount(),
		"sha256":    catalog.Digest,
	})

	page, err := Render(catalog.Views, cfg.Query, DeployJava{})
	if err != nil {
		log.Warn("run.render.error", map[string]interface{}{"error": err.Error()})
		return RenderResult{}, err
	}
	log.Info("run.render.ok", map[string]interface{}{"mode": page.Mode, "viewconf": page.ViewConf})

	var doc strings.Builder
	if err := WriteDocument(&doc, page, DocumentOptions{Title: cfg.Title, DeployJavaURL: cfg.DeployJavaURL}); err != nil {
		return RenderResult{}, err
	}
	if err := enginereport.WriteFile(cfg.OutHTMLPath, []byte(doc.String())); err != nil {
		log.Warn("run.out_html.error", map[string]interface{}{"error": err.Error(), "path": cfg.OutHTMLPath})
		return RenderResult{}, err
	}

	result := RenderResult{
		SchemaVersion: manifestSchemaVersion,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		Mode:          page.Mode,
		ViewConf:      page.ViewConf,
		CatalogPath:   catalog.Path,
		CatalogDigest: catalog.Digest,
		ViewCount:     len(catalog.Views),
		ViewConfCount: catalog.ViewConfCount(),
		OutHTML:       cfg.OutHTMLPath,
	}
	if err := enginereport.WriteJSON(cfg.OutJSONPath, result); err != nil {
		log.Warn("run.out_json.error", map[string]interface{}{"error": err.Error(), "path": cfg.OutJSONPath})
		return RenderResult{}, err
	}
	if err := enginereport.WriteChecksums(cfg.ChecksumsPath, []string{cfg.OutHTMLPath, cfg.OutJSONPath}); err != nil {
		log.Warn("run.checksums.error", map[string]interface{}{"error": err.Error()})
		return RenderResult{}, err
	}
	log.Info("run.complete", map[string]interface{}{
		"mode":      result.Mode,
		"viewconf":  result.ViewConf,
		"out_html":  cfg.OutHTMLPath,
		"out_json":  cfg.OutJSONPath,
		"checksums": cfg.ChecksumsPath,
	})
	return result, nil
}
