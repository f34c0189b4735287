package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/jflowmap/jflowmap-demo/internal/build"
	"github.com/jflowmap/jflowmap-demo/internal/config"
	"github.com/jflowmap/jflowmap-demo/internal/logging"
	"github.com/jflowmap/jflowmap-demo/internal/server"
	"github.com/jflowmap/jflowmap-demo/internal/viewlist"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

// Root is the jflowmap-demo command. Without a sub-command it serves the page.
func Root() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "jflowmap-demo",
		Short: "jflowmap demo applets",
		Long:  "jflowmap-demo serves the jflowmap demo page: a list of views and their view configurations, each deploying the applet",
		Run: func(cmd *cobra.Command, args []string) {
			serve(cmd, configFile)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "config.yaml", "path to config file")
	config.DefineFlags(cmd)
	cmd.AddCommand(Render(), CheckConfig(), Version())
	return cmd
}

func serve(cmd *cobra.Command, configFile string) {
	dotEnvUsed, err := config.LoadDotEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading .env file")
	}
	cfg, cfgMeta, err := config.GetConfig(cmd, configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting config")
	}
	logCloseFn := logging.Setup(cfg.Log)
	if logCloseFn != nil {
		defer logCloseFn()
	}
	if cfgMeta.FileNotFound {
		log.Warn().Msg("config file not found, continue using environment and flag options")
	} else {
		absConfPath, _ := filepath.Abs(configFile)
		log.Info().Str("path", absConfPath).Msg("using config file")
	}
	if dotEnvUsed {
		log.Info().Msg("environment variables have been loaded from .env file")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("error validating config")
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(s string, i ...interface{}) {
		log.Info().Msgf(strings.ToLower(s), i...)
	}))

	catalog, err := viewlist.LoadCatalog(cfg.Catalog)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading catalog")
	}
	flags := server.Flags(cfg)
	log.Info().
		Str("version", build.Version).
		Str("runtime", runtime.Version()).
		Int("pid", os.Getpid()).
		Str("catalog", catalog.Path).
		Int("views", len(catalog.Views)).
		Int("viewconfs", catalog.ViewConfCount()).
		Str("handlers", flags.String()).
		Msg("starting jflowmap-demo")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mux := server.Mux(cfg, catalog.Views, flags)
	if err := server.ListenAndServe(ctx, cfg.HTTP.Address, cfg.HTTP.Port, mux, cfg.HTTP.ShutdownTimeout); err != nil {
		log.Fatal().Err(err).Msg("HTTP server error")
	}
	log.Info().Msg("shutdown completed")
}
