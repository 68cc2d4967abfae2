package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"capotokeys/internal/adapters/filesystem"
	"capotokeys/internal/adapters/pdf"
	"capotokeys/internal/config"
	"capotokeys/internal/ports"
)

// version is set at build time with -ldflags "-X capotokeys/cmd/capotokeys/cmd.version=..."
var version = "dev"

var (
	configPath   string
	verbose      bool
	dataDir      string
	conflictMode string

	cfg      *config.Config
	logger   = zap.NewNop()
	repo     ports.OutputRepository
	renderer ports.DocumentRenderer
)

var rootCmd = &cobra.Command{
	Use:   "capotokeys",
	Short: "Transpose capo chord sheets into concert key",
	Long: `capotokeys rewrites the chords of a sheet written for a capoed guitar so
they sound in the same key without the capo, and keeps the results as
text and PDF files in an outputs directory.

Without a subcommand it behaves like "capotokeys transpose".`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runTranspose,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "path to the YAML config file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&dataDir, "data-dir", "", "data directory (outputs live in <data-dir>/outputs)")
	flags.StringVar(&conflictMode, "conflict", "", "existing file handling: suffix or overwrite")

	addTransposeFlags(rootCmd)
}

func setup(cmd *cobra.Command) error {
	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(config.ExpandHome(configPath)); err != nil {
			return fmt.Errorf("config file: %w", err)
		}
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dataDir != "" {
		loaded.DataDir = dataDir
	}
	if conflictMode != "" {
		loaded.ConflictMode = conflictMode
	}
	loaded.Normalize()
	cfg = loaded

	logger, err = newLogger(cfg.Logging.Level, verbose)
	if err != nil {
		return err
	}

	repo = filesystem.NewRepository(cfg.OutputsDir())
	renderer = pdf.NewRenderer()

	logger.Debug("configuration loaded",
		zap.String("outputs_dir", repo.Dir()),
		zap.String("conflict_mode", cfg.ConflictMode),
	)
	return nil
}

// newLogger builds a production logger writing JSON to stderr
func newLogger(level string, debug bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	if debug {
		lvl = zapcore.DebugLevel
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	zcfg.EncoderConfig.TimeKey = "time"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}

// GetRepo returns the initialized output repository
func GetRepo() ports.OutputRepository {
	return repo
}
