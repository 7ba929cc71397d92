package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/euer/internal/category"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"EÜR Helfer"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Chart struct {
		DefaultVariant string `envconfig:"CHART_DEFAULT_VARIANT" default:"skr03"`
		RemoteURL      string `envconfig:"CHART_REMOTE_URL"`
		RemoteRetries  uint64 `envconfig:"CHART_REMOTE_RETRIES" default:"3"`
	}

	EUER struct {
		FlatRate bool `envconfig:"EUER_FLAT_RATE" default:"false"`
	}
}

// DefaultVariant returns the configured fallback chart of accounts.
func (c *Config) DefaultVariant() category.Variant {
	return category.NormalizeVariant(c.Chart.DefaultVariant)
}

// ChartSource returns the source charts are loaded from: the remote
// server first when configured, then the tables built into the binary.
func (c *Config) ChartSource() category.Source {
	embedded := category.NewEmbeddedSource()
	if c.Chart.RemoteURL == "" {
		return embedded
	}

	return category.ChainSource{
		category.NewHTTPSource(c.Chart.RemoteURL, c.Chart.RemoteRetries),
		embedded,
	}
}

// Registry builds the chart of accounts cache.
func (c *Config) Registry() *category.Registry {
	return category.NewRegistry(c.ChartSource(), c.DefaultVariant())
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
