package cli

import (
	"os"

	"github.com/kagehara/sonarbridge/pkg/adapter"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// config holds configuration values. Assembled once at startup from flags,
// environment, and an optional config file; never re-read per call.
type config struct {
	// Upstream
	apiKey  string
	model   string
	baseURL string

	// Server
	port      int64
	transport string

	logLevel   string
	configFile string
}

// upstreamFlags returns flags for the upstream QA API with destination config
func upstreamFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "api-key",
			Usage:       "Perplexity API key (required for answer-producing calls)",
			Sources:     cli.EnvVars("PERPLEXITY_API_KEY"),
			Destination: &cfg.apiKey,
		},
		&cli.StringFlag{
			Name:        "model",
			Aliases:     []string{"m"},
			Usage:       "Upstream model identifier",
			Value:       adapter.DefaultModel,
			Sources:     cli.EnvVars("PERPLEXITY_MODEL"),
			Destination: &cfg.model,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Override the upstream API base URL",
			Sources:     cli.EnvVars("PERPLEXITY_BASE_URL"),
			Destination: &cfg.baseURL,
		},
	}
}

// serverFlags returns flags for the serving surface with destination config
func serverFlags(cfg *config) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "port",
			Aliases:     []string{"p"},
			Usage:       "Listening port for the HTTP transport",
			Value:       3000,
			Sources:     cli.EnvVars("PORT"),
			Destination: &cfg.port,
		},
		&cli.StringFlag{
			Name:        "transport",
			Aliases:     []string{"t"},
			Usage:       "Serving transport: http or stdio",
			Value:       "http",
			Destination: &cfg.transport,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("LOG_LEVEL"),
			Destination: &cfg.logLevel,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to YAML config file",
			Destination: &cfg.configFile,
		},
	}
}

// fileConfig is the YAML config file structure
type fileConfig struct {
	Port    int64  `yaml:"port"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// loadFileConfig reads and parses the YAML config file
func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file", goerr.V("path", path))
	}

	return &fc, nil
}

// applyFile merges config file values into cfg. Flags and environment
// variables win over the file; the file wins over built-in defaults.
func (cfg *config) applyFile(c *cli.Command) error {
	if cfg.configFile == "" {
		return nil
	}

	fc, err := loadFileConfig(cfg.configFile)
	if err != nil {
		return err
	}

	if fc.Port != 0 && !c.IsSet("port") {
		cfg.port = fc.Port
	}
	if fc.Model != "" && !c.IsSet("model") {
		cfg.model = fc.Model
	}
	if fc.BaseURL != "" && !c.IsSet("base-url") {
		cfg.baseURL = fc.BaseURL
	}

	return nil
}

// newSonar creates the upstream gateway. A missing API key is not an error
// here: serve must start without a credential, and only answer-producing
// calls fail.
func (cfg *config) newSonar() *adapter.SonarClient {
	opts := []adapter.SonarOption{
		adapter.WithModel(cfg.model),
	}
	if cfg.baseURL != "" {
		opts = append(opts, adapter.WithBaseURL(cfg.baseURL))
	}

	return adapter.NewSonar(cfg.apiKey, opts...)
}
