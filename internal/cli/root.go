// Package cli wires the evalmodels command tree.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"evalmodels/internal/catalog"
	"evalmodels/internal/config"
	"evalmodels/internal/registry"
)

// app carries state resolved once in PersistentPreRunE and shared by subcommands.
type app struct {
	configPath string
	flags      config.Config
	strictSet  bool
	cfg        config.Config
	log        zerolog.Logger
}

// Execute runs the command tree with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd constructs the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "evalmodels",
		Short:         "Model registrations for causal LM evaluation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file (.yaml, .json or .toml)")
	pf.StringVar(&a.flags.ModelsDir, "models-dir", "", "Directory of extra model entry files (defaults EVALMODELS_MODELS_DIR)")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "Log level: debug|info|warn|error (defaults EVALMODELS_LOG_LEVEL or info)")
	pf.StringVar(&a.flags.LogFormat, "log-format", "", "Log format: console|json")
	pf.BoolVar(&a.flags.Strict, "strict", false, "Reject unknown keys and invalid entries when loading files")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		a.strictSet = cmd.Flags().Changed("strict")
		return a.setup(cmd.ErrOrStderr())
	}

	root.AddCommand(
		newListCmd(a),
		newShowCmd(a),
		newExportCmd(a),
		newKindsCmd(),
		newPlanCmd(a),
		newValidateCmd(a),
		newRenderCmd(a),
		newServeCmd(a),
	)
	return root
}

// setup resolves configuration. Precedence: flags > config file > env > defaults.
func (a *app) setup(logOut io.Writer) error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg := config.FromEnv()
	if a.configPath != "" {
		fileCfg, err := config.Load(a.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = config.Merge(cfg, fileCfg)
	}
	cfg = config.Merge(cfg, a.flags)
	// Merge only carries true; an explicit --strict=false must win too.
	if a.strictSet {
		cfg.Strict = a.flags.Strict
	}
	a.cfg = cfg.WithDefaults()
	a.log = newLogger(logOut, a.cfg.LogLevel, a.cfg.LogFormat)
	return nil
}

func newLogger(w io.Writer, level, format string) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if format != "json" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	l := zerolog.New(w).With().Timestamp().Logger()
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		l.Warn().Str("level", level).Msg("unknown log level, using info")
		lvl = zerolog.InfoLevel
	}
	return l.Level(lvl)
}

// loadRegistry returns the built-in models followed by entries from the
// configured models directory.
func (a *app) loadRegistry() (*registry.Registry, error) {
	reg, err := catalog.Registry()
	if err != nil {
		return nil, err
	}
	if a.cfg.ModelsDir == "" {
		return reg, nil
	}
	extra, err := registry.LoadDir(a.cfg.ModelsDir, registry.Options{Strict: a.cfg.Strict})
	if err != nil {
		return nil, fmt.Errorf("load models dir: %w", err)
	}
	for _, e := range extra {
		if err := reg.Add(e); err != nil {
			return nil, err
		}
	}
	a.log.Debug().Str("dir", a.cfg.ModelsDir).Int("extra", len(extra)).Int("total", reg.Len()).Msg("registry loaded")
	return reg, nil
}
