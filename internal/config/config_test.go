package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hush-backend/internal/core/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "hush.db", cfg.Database.Path)
	assert.True(t, cfg.Database.SeedMockData)
	assert.Equal(t, 0.1, cfg.Privacy.NoiseScale())
	assert.Equal(t, domain.DefaultInitialWeights, cfg.Model.InitialWeights)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "POSTGRES")
	t.Setenv("PRIVACY_EPSILON", "0.5")
	t.Setenv("PRIVACY_SENSITIVITY", "1")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 2.0, cfg.Privacy.NoiseScale())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Contains(t, cfg.Database.DSN(), "dbname=hush")
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hush.yaml")
	require.NoError(t, os.WriteFile(path, []byte("PRIVACY_NOISE_SCALE: 0.25\nMODEL_INITIAL_TEXT: 0.5\n"), 0o600))
	t.Setenv("HUSH_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.25, cfg.Privacy.NoiseScale())
	assert.Equal(t, 0.5, cfg.Model.InitialWeights.Text)
}

func TestLoad_InvalidClipBound(t *testing.T) {
	for _, v := range []string{"NaN", "+Inf", "-1"} {
		t.Setenv("PRIVACY_CLIP_BOUND", v)

		_, err := Load()
		assert.ErrorIs(t, err, domain.ErrInvalidClipBound, v)
	}
}

func TestLoad_UnsupportedDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mongo")

	_, err := Load()
	assert.ErrorIs(t, err, domain.ErrUnsupportedDriver)
}
