package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/euer/internal/category"
	"github.com/MrJamesThe3rd/euer/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "EÜR Helfer", cfg.App.Name)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, category.SKR03, cfg.DefaultVariant())
	assert.Equal(t, uint64(3), cfg.Chart.RemoteRetries)
	assert.False(t, cfg.EUER.FlatRate)

	_, embedded := cfg.ChartSource().(*category.EmbeddedSource)
	assert.True(t, embedded)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CHART_DEFAULT_VARIANT", "SKR04")
	t.Setenv("CHART_REMOTE_URL", "https://charts.example.com")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("EUER_FLAT_RATE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, category.SKR04, cfg.DefaultVariant())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.EUER.FlatRate)

	chain, ok := cfg.ChartSource().(category.ChainSource)
	require.True(t, ok)
	assert.Len(t, chain, 2)

	assert.Equal(t, category.SKR04, cfg.Registry().Fallback())
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := config.Load()
	assert.Error(t, err)
}
