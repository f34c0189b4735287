// Package config contains jflowmap-demo Config and the code to load it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override,
// e.g. JFLOWMAP_DEMO_HTTP_SERVER_PORT.
const EnvPrefix = "JFLOWMAP_DEMO"

type Config struct {
	// Catalog is a path to the YAML file listing views and their view configurations.
	Catalog string `mapstructure:"catalog" json:"catalog" yaml:"catalog"`
	// WebRoot is a directory holding jflowmap.jar, viewconf/ and resources/. Static
	// files are not served when empty.
	WebRoot string `mapstructure:"web_root" json:"web_root" yaml:"web_root"`
	// HTTP is a configuration for the HTTP server.
	HTTP HTTPServer `mapstructure:"http_server" json:"http_server" yaml:"http_server"`
	// Log is a configuration for logging.
	Log Log `mapstructure:"log" json:"log" yaml:"log"`
	// Page customizes the document around the rendered view list.
	Page Page `mapstructure:"page" json:"page" yaml:"page"`
	// Prometheus enables the /metrics endpoint.
	Prometheus Prometheus `mapstructure:"prometheus" json:"prometheus" yaml:"prometheus"`
	// Health enables the /health endpoint.
	Health Health `mapstructure:"health" json:"health" yaml:"health"`
}

type HTTPServer struct {
	Address         string        `mapstructure:"address" json:"address" yaml:"address"`
	Port            int           `mapstructure:"port" json:"port" yaml:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

type Log struct {
	Level string `mapstructure:"level" json:"level" yaml:"level"`
	File  string `mapstructure:"file" json:"file" yaml:"file"`
}

type Page struct {
	Title         string `mapstructure:"title" json:"title" yaml:"title"`
	DeployJavaURL string `mapstructure:"deploy_java_url" json:"deploy_java_url" yaml:"deploy_java_url"`
}

type Prometheus struct {
	Enabled                bool `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
	InstrumentHTTPHandlers bool `mapstructure:"instrument_http_handlers" json:"instrument_http_handlers" yaml:"instrument_http_handlers"`
}

type Health struct {
	Enabled bool `mapstructure:"enabled" json:"enabled" yaml:"enabled"`
}

// Meta describes how the config was obtained.
type Meta struct {
	FileNotFound bool
}

var defaults = map[string]interface{}{
	"catalog":                             "views.yaml",
	"web_root":                            "",
	"http_server.address":                 "",
	"http_server.port":                    8000,
	"http_server.shutdown_timeout":        "10s",
	"log.level":                           "info",
	"log.file":                            "",
	"page.title":                          "jflowmap demo applets",
	"page.deploy_java_url":                "https://www.java.com/js/deployJava.js",
	"prometheus.enabled":                  false,
	"prometheus.instrument_http_handlers": false,
	"health.enabled":                      false,
}

var bindPFlags = []string{
	"catalog", "web_root", "http_server.address", "http_server.port", "log.level", "log.file",
	"prometheus.enabled", "health.enabled",
}

// DefineFlags registers the flags GetConfig binds to config keys.
func DefineFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("catalog", "", "views.yaml", "path to the views catalog")
	cmd.Flags().StringP("web_root", "", "", "directory with jflowmap.jar, viewconf/ and resources/ to serve")
	cmd.Flags().StringP("http_server.address", "a", "", "interface address to listen on")
	cmd.Flags().IntP("http_server.port", "p", 8000, "port to bind HTTP server to")
	cmd.Flags().StringP("log.level", "", "info", "set the log level: trace, debug, info, warn, error, fatal or none")
	cmd.Flags().StringP("log.file", "", "", "optional log file - if not specified logs go to STDOUT")
	cmd.Flags().BoolP("prometheus.enabled", "", false, "enable Prometheus metrics endpoint")
	cmd.Flags().BoolP("health.enabled", "", false, "enable health check endpoint")
}

// LoadDotEnv loads a .env file from the working directory when one exists.
func LoadDotEnv() (bool, error) {
	if _, err := os.Stat(".env"); err != nil {
		return false, nil
	}
	if err := godotenv.Load(); err != nil {
		return false, fmt.Errorf("error loading .env file: %w", err)
	}
	return true, nil
}

// GetConfig merges defaults, the config file, environment and cmd flags.
func GetConfig(cmd *cobra.Command, configFile string) (Config, Meta, error) {
	v := viper.NewWithOptions(viper.WithDecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
	)))
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for _, flag := range bindPFlags {
			if f := cmd.Flags().Lookup(flag); f != nil {
				_ = v.BindPFlag(flag, f)
			}
		}
	}

	meta := Meta{}
	if configFile != "" {
		v.SetConfigFile(configFile)
		err := v.ReadInConfig()
		if err != nil {
			var pathErr *os.PathError
			if errors.As(err, &pathErr) {
				meta.FileNotFound = true
			} else {
				return Config{}, Meta{}, fmt.Errorf("error reading config file %s: %w", configFile, err)
			}
		}
	}

	conf := Config{}
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, Meta{}, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return conf, meta, nil
}

// Validate checks values that would make the server fail later.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Catalog) == "" {
		return errors.New("catalog path is required")
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http_server.port out of range: %d", c.HTTP.Port)
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return fmt.Errorf("http_server.shutdown_timeout must be positive, got %s", c.HTTP.ShutdownTimeout)
	}
	if c.WebRoot != "" {
		st, err := os.Stat(c.WebRoot)
		if err != nil {
			return fmt.Errorf("web_root: %w", err)
		}
		if !st.IsDir() {
			return fmt.Errorf("web_root %s is not a directory", c.WebRoot)
		}
	}
	return nil
}
