package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://forms.db")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite://forms.db", cfg.Database.URL)
	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, ":5000", cfg.Server.Addr())
	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, 30*time.Second, cfg.Upload.ExtractTimeout)
	assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
	assert.False(t, cfg.OCR.Enabled)
	assert.Equal(t, "tesseract", cfg.OCR.Tesseract)
	assert.Equal(t, "eng", cfg.OCR.Lang)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigEnvFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	body := "DATABASE_URL=postgres://forms@localhost/forms\nPORT=8081\nEXTRACT_TIMEOUT=5s\nOCR_ENABLED=true\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://forms@localhost/forms", cfg.Database.URL)
	assert.Equal(t, "9090", cfg.Server.Port, "environment wins over the file")
	assert.Equal(t, 5*time.Second, cfg.Upload.ExtractTimeout)
	assert.True(t, cfg.OCR.Enabled)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Database: DatabaseConfig{URL: "sqlite://x.db"},
			Server:   ServerConfig{Port: "5000"},
			Upload:   UploadConfig{MaxBytes: 1},
		}
	}

	require.NoError(t, base().Validate())

	cases := map[string]func(c *Config){
		"missing database url": func(c *Config) { c.Database.URL = "" },
		"missing port":         func(c *Config) { c.Server.Port = "" },
		"zero max bytes":       func(c *Config) { c.Upload.MaxBytes = 0 },
		"ocr without binary":   func(c *Config) { c.OCR.Enabled = true },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base()
			mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Equal(t, CodeConfig, CodeOf(err))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
