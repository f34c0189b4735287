package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jflowmap/jflowmap-demo/internal/viewlist"

	"github.com/spf13/cobra"
)

// Render writes a single page to disk instead of serving it.
func Render() *cobra.Command {
	var cfg viewlist.RenderConfig
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the demo page to a file",
		Long:  `Render the view list page, or the applet page for --query, into a static HTML file with a manifest, checksums and a run log`,
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(render(cfg))
		},
	}
	cmd.Flags().StringVar(&cfg.CatalogPath, "catalog", "views.yaml", "path to the views catalog")
	cmd.Flags().StringVar(&cfg.Query, "query", "", `query string as a browser sees it, e.g. "?m1"; empty renders the view list`)
	cmd.Flags().StringVar(&cfg.Title, "title", viewlist.DefaultTitle, "document title")
	cmd.Flags().StringVar(&cfg.DeployJavaURL, "deploy-java-url", viewlist.DefaultJavaURL, "deployJava.js location")
	cmd.Flags().StringVar(&cfg.OutHTMLPath, "out-html", "index.html", "output HTML path")
	cmd.Flags().StringVar(&cfg.OutJSONPath, "out-json", "render.json", "output manifest path")
	cmd.Flags().StringVar(&cfg.ChecksumsPath, "checksums", "", "output checksums.sha256 path (default next to out-json)")
	cmd.Flags().StringVar(&cfg.RunLogPath, "run-log", "", "output run log path (default next to out-json)")
	return cmd
}

func render(cfg viewlist.RenderConfig) int {
	result, err := viewlist.Run(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "jflowmap-demo error:", err)
		return 2
	}
	checksumsPath := cfg.ChecksumsPath
	if strings.TrimSpace(checksumsPath) == "" {
		checksumsPath = viewlist.DefaultChecksumsPath(cfg.OutJSONPath)
	}
	runLogPath := cfg.RunLogPath
	if strings.TrimSpace(runLogPath) == "" {
		runLogPath = viewlist.DefaultRunLogPath(cfg.OutJSONPath)
	}
	fmt.Printf("mode=%s viewconf=%s views=%d viewconfs=%d html=%s manifest=%s checksums=%s run_log=%s\n",
		result.Mode, result.ViewConf, result.ViewCount, result.ViewConfCount, result.OutHTML, cfg.OutJSONPath, checksumsPath, runLogPath)
	return 0
}
