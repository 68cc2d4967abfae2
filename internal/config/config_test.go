package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"capotokeys/internal/domain"
)

var envKeys = []string{
	"DATA_DIR", "OUTPUT_CONFLICT_MODE", "LOG_LEVEL",
	"PDF_LEFT_MARGIN", "PDF_TOP_MARGIN", "PDF_BOTTOM_MARGIN", "PDF_TITLE_SIZE",
	"PDF_BODY_SIZE", "PDF_LINE_HEIGHT", "PDF_MAX_WIDTH_CHARS",
	"WEB_HOST", "WEB_PORT", "MAX_REQUEST_BYTES", "MAX_TEXT_LENGTH", "OUTPUT_LIST_LIMIT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, "suffix", cfg.ConflictMode)
	assert.Equal(t, domain.DefaultLayout(), cfg.PDF)
	assert.Equal(t, 4506, cfg.Web.Port)
	assert.Equal(t, 1_048_576, cfg.Web.MaxRequestBytes)
	assert.Equal(t, 200_000, cfg.Web.MaxTextLength)
	assert.Equal(t, 300, cfg.Web.OutputListLimit)
	assert.Equal(t, "0.0.0.0:4506", cfg.Addr())
	assert.Equal(t, filepath.Join("/data", "outputs"), cfg.OutputsDir())
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
data_dir: /srv/sheets
conflict_mode: overwrite
pdf:
  left_margin: 72
  max_width_chars: 5
web:
  port: 8080
  output_list_limit: 10000
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/sheets", cfg.DataDir)
	assert.Equal(t, domain.ConflictOverwrite, cfg.Conflict())
	assert.Equal(t, 72, cfg.PDF.LeftMargin)
	assert.Equal(t, 40, cfg.PDF.MaxWidthChars, "clamped to minimum")
	assert.Equal(t, 62, cfg.PDF.TopMargin, "unset keys keep defaults")
	assert.Equal(t, 8080, cfg.Web.Port)
	assert.Equal(t, 5_000, cfg.Web.OutputListLimit, "clamped to maximum")
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "web: [unclosed"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("env beats file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATA_DIR", "/env/data")
		t.Setenv("OUTPUT_CONFLICT_MODE", "OVERWRITE")
		t.Setenv("WEB_PORT", "9000")

		cfg, err := Load(writeConfig(t, "data_dir: /file/data\nweb:\n  port: 8080\n"))
		require.NoError(t, err)

		assert.Equal(t, "/env/data", cfg.DataDir)
		assert.Equal(t, "overwrite", cfg.ConflictMode)
		assert.Equal(t, 9000, cfg.Web.Port)
	})

	t.Run("bounded values clamp", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PDF_LEFT_MARGIN", "500")
		t.Setenv("PDF_BODY_SIZE", "1")
		t.Setenv("MAX_REQUEST_BYTES", "10")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, 200, cfg.PDF.LeftMargin)
		assert.Equal(t, 6, cfg.PDF.BodySize)
		assert.Equal(t, 1_024, cfg.Web.MaxRequestBytes)
	})

	t.Run("unparsable falls back to default", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PDF_LINE_HEIGHT", "tall")
		t.Setenv("MAX_TEXT_LENGTH", "lots")

		cfg := DefaultConfig()
		cfg.PDF.LineHeight = 20
		cfg.applyEnvOverrides()

		assert.Equal(t, 12, cfg.PDF.LineHeight)
		assert.Equal(t, 200_000, cfg.Web.MaxTextLength)
	})

	t.Run("unknown conflict mode becomes suffix", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("OUTPUT_CONFLICT_MODE", "replace")

		cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "suffix", cfg.ConflictMode)
	})
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "x", "y"), ExpandHome("~/x/y"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}
