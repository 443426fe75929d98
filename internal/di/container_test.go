package di

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listenupapp/bookshelf-server/internal/autotag"
	"github.com/listenupapp/bookshelf-server/internal/config"
	"github.com/listenupapp/bookshelf-server/internal/di/providers"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		App:    config.AppConfig{Environment: "development"},
		Logger: config.LoggerConfig{Level: "error"},
		Data:   config.DataConfig{Path: filepath.Join(t.TempDir(), "data")},
		Server: config.ServerConfig{
			Port:            "0",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			IdleTimeout:     5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Recommend: config.RecommendConfig{DefaultMax: 10},
		RateLimit: config.RateLimitConfig{Enabled: true, RPS: 100, Burst: 100},
	}
}

func TestBootstrap_ServesHealth(t *testing.T) {
	cfg := testConfig(t)
	injector := NewContainerWithConfig(cfg)

	require.NoError(t, Bootstrap(injector))

	srv := do.MustInvoke[*providers.HTTPServerHandle](injector)
	resp, err := http.Get("http://" + srv.ListenAddr() + "/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.FileExists(t, filepath.Join(cfg.Data.Path, "bookshelf.db"))

	assert.Nil(t, injector.Shutdown())

	_, err = http.Get("http://" + srv.ListenAddr() + "/health")
	assert.Error(t, err, "server should be closed")
}

func TestProvideTagger_LoadsOverrides(t *testing.T) {
	cfg := testConfig(t)
	tablesPath := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(tablesPath, []byte(`
genres:
  - name: Cozy Mystery
    keywords: [cozy mystery, amateur sleuth]
`), 0o600))
	cfg.Autotag.TablesPath = tablesPath

	injector := NewContainerWithConfig(cfg)
	t.Cleanup(func() { injector.Shutdown() })

	tagger := do.MustInvoke[*autotag.Tagger](injector)
	assert.Equal(t, "Cozy Mystery", tagger.SuggestGenre("An amateur sleuth in a small village"))
	// Tables not named in the file keep their defaults.
	assert.Len(t, tagger.Tables().Moods, len(autotag.DefaultTables().Moods))
}

func TestProvideRateLimiter_Disabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimit.Enabled = false

	injector := NewContainerWithConfig(cfg)
	t.Cleanup(func() { injector.Shutdown() })

	handle := do.MustInvoke[*providers.RateLimiterHandle](injector)
	assert.Nil(t, handle.Limiter)
	assert.NoError(t, handle.Shutdown())
}
