package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"capotokeys/internal/domain"
)

const (
	DefaultConfigPath = "~/.config/capotokeys/config.yaml"
	DefaultDataDir    = "/data"
	DefaultHost       = "0.0.0.0"
	DefaultPort       = 4506
	DefaultLogLevel   = "info"
)

// Web limits
var (
	MaxRequestBytesBound = domain.Bound{Default: 1_048_576, Min: 1_024, Max: 20_000_000}
	MaxTextLengthBound   = domain.Bound{Default: 200_000, Min: 1_000, Max: 1_000_000}
	OutputListLimitBound = domain.Bound{Default: 300, Min: 1, Max: 5_000}
)

// Config holds every setting of a capotokeys process
type Config struct {
	DataDir      string        `yaml:"data_dir"`
	ConflictMode string        `yaml:"conflict_mode"`
	PDF          domain.Layout `yaml:"pdf"`
	Web          WebConfig     `yaml:"web"`
	Logging      LoggingConfig `yaml:"logging"`
}

// WebConfig configures the HTTP frontend
type WebConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	MaxRequestBytes int    `yaml:"max_request_bytes"`
	MaxTextLength   int    `yaml:"max_text_length"`
	OutputListLimit int    `yaml:"output_list_limit"`
}

// LoggingConfig configures logging
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		DataDir:      DefaultDataDir,
		ConflictMode: domain.ConflictSuffix.String(),
		PDF:          domain.DefaultLayout(),
		Web: WebConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			MaxRequestBytes: MaxRequestBytesBound.Default,
			MaxTextLength:   MaxTextLengthBound.Default,
			OutputListLimit: OutputListLimitBound.Default,
		},
		Logging: LoggingConfig{Level: DefaultLogLevel},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides and clamps every bounded value. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ExpandHome(path))
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.Normalize()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. Bounded
// integers that do not parse fall back to their default.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("DATA_DIR"); dir != "" {
		c.DataDir = dir
	}
	if mode := os.Getenv("OUTPUT_CONFLICT_MODE"); mode != "" {
		c.ConflictMode = mode
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}

	envBound(&c.PDF.LeftMargin, "PDF_LEFT_MARGIN", domain.LeftMarginBound)
	envBound(&c.PDF.TopMargin, "PDF_TOP_MARGIN", domain.TopMarginBound)
	envBound(&c.PDF.BottomMargin, "PDF_BOTTOM_MARGIN", domain.BottomMarginBound)
	envBound(&c.PDF.TitleSize, "PDF_TITLE_SIZE", domain.TitleSizeBound)
	envBound(&c.PDF.BodySize, "PDF_BODY_SIZE", domain.BodySizeBound)
	envBound(&c.PDF.LineHeight, "PDF_LINE_HEIGHT", domain.LineHeightBound)
	envBound(&c.PDF.MaxWidthChars, "PDF_MAX_WIDTH_CHARS", domain.MaxWidthCharsBound)

	if host := os.Getenv("WEB_HOST"); host != "" {
		c.Web.Host = host
	}
	if port, err := strconv.Atoi(strings.TrimSpace(os.Getenv("WEB_PORT"))); err == nil {
		c.Web.Port = port
	}
	envBound(&c.Web.MaxRequestBytes, "MAX_REQUEST_BYTES", MaxRequestBytesBound)
	envBound(&c.Web.MaxTextLength, "MAX_TEXT_LENGTH", MaxTextLengthBound)
	envBound(&c.Web.OutputListLimit, "OUTPUT_LIST_LIMIT", OutputListLimitBound)
}

func envBound(dst *int, name string, b domain.Bound) {
	if raw, ok := os.LookupEnv(name); ok && strings.TrimSpace(raw) != "" {
		*dst = b.Parse(raw)
	}
}

// Normalize clamps bounded values and fills blanks with defaults
func (c *Config) Normalize() {
	if strings.TrimSpace(c.DataDir) == "" {
		c.DataDir = DefaultDataDir
	}
	c.ConflictMode = domain.ParseConflictMode(c.ConflictMode).String()
	c.PDF = c.PDF.Clamp()

	if c.Web.Host == "" {
		c.Web.Host = DefaultHost
	}
	if c.Web.Port <= 0 || c.Web.Port > 65535 {
		c.Web.Port = DefaultPort
	}
	c.Web.MaxRequestBytes = MaxRequestBytesBound.Clamp(c.Web.MaxRequestBytes)
	c.Web.MaxTextLength = MaxTextLengthBound.Clamp(c.Web.MaxTextLength)
	c.Web.OutputListLimit = OutputListLimitBound.Clamp(c.Web.OutputListLimit)

	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
}

// OutputsDir is where generated artifacts are stored
func (c *Config) OutputsDir() string {
	return filepath.Join(ExpandHome(c.DataDir), "outputs")
}

// Conflict returns the configured conflict mode
func (c *Config) Conflict() domain.ConflictMode {
	return domain.ParseConflictMode(c.ConflictMode)
}

// Addr returns the host:port the web frontend listens on
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Web.Host, strconv.Itoa(c.Web.Port))
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
