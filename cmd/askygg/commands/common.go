// Package commands implements the askygg kong command tree.
package commands

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/askygg/internal/config"
	foundationerrors "git.home.luguber.info/inful/askygg/internal/foundation/errors"
	"git.home.luguber.info/inful/askygg/internal/layout"
	"git.home.luguber.info/inful/askygg/internal/logfields"
	"git.home.luguber.info/inful/askygg/internal/metrics"
	"git.home.luguber.info/inful/askygg/internal/process"
)

// Global carries the collaborators shared by every command and the exit
// status main reports once a command returns without error.
type Global struct {
	Logger  *slog.Logger
	Runner  process.Runner
	Spawner process.Spawner
	Stdout  io.Writer
	Stderr  io.Writer

	ExitCode int
}

// NewGlobal wires the real process collaborators and standard streams.
func NewGlobal() *Global {
	return &Global{
		Logger:  slog.Default(),
		Runner:  process.NewExecRunner(),
		Spawner: process.NewExecSpawner(),
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Harness configuration file path" default:"askygg.yaml" env:"ASKYGG_CONFIG"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Root    string           `help:"Directory holding the build directories (default: directory of this executable)" env:"ASKYGG_ROOT" type:"path"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Setup SetupCmd `cmd:"" help:"Configure and compile the debug and release builds"`
	Run   RunCmd   `cmd:"" help:"Launch a built target program with arguments from the settings file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	slog.SetDefault(config.LoggingConfig{Level: config.LogLevelInfo}.NewLogger(os.Stderr, c.Verbose))
	return nil
}

// loadConfig reads the harness configuration. The default path may be absent;
// an explicitly named file must exist.
func (c *CLI) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.Config == "" || c.Config == config.DefaultPath {
		cfg, err = config.LoadOptional(config.DefaultPath)
	} else {
		cfg, err = config.Load(c.Config)
	}
	if err != nil {
		builder := foundationerrors.ConfigError("load configuration")
		if errors.Is(err, config.ErrNotFound) {
			builder = foundationerrors.NotFoundError("load configuration")
		}
		return nil, builder.WithCause(err).WithContext(logfields.KeyPath, c.Config).Build()
	}
	return cfg, nil
}

// prepare loads configuration, applies its logging settings and resolves the
// layout root: --root, then root_dir, then the executable's directory.
func (c *CLI) prepare(g *Global) (*config.Config, layout.Layout, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, layout.Layout{}, err
	}

	logger := cfg.Logging.NewLogger(g.Stderr, c.Verbose)
	slog.SetDefault(logger)
	g.Logger = logger

	override := c.Root
	if override == "" {
		override = cfg.RootDir
	}
	root, err := layout.ResolveRoot(override)
	if err != nil {
		return nil, layout.Layout{}, foundationerrors.FileSystemError("resolve root directory").WithCause(err).Build()
	}
	g.Logger.Debug("Resolved layout", logfields.Path(root), slog.String("app_name", cfg.AppName))
	return cfg, layout.New(root, cfg.AppName), nil
}

// newRegistry returns a registry and recorder for one command invocation.
func newRegistry() (*prom.Registry, *metrics.PrometheusRecorder) {
	reg := prom.NewRegistry()
	return reg, metrics.NewPrometheusRecorder(reg)
}

// flushMetrics writes the textfile when configured. Failures are logged only.
func flushMetrics(g *Global, cfg *config.Config, reg *prom.Registry) {
	if cfg.Metrics.Textfile == "" {
		return
	}
	if err := metrics.WriteTextfile(cfg.Metrics.Textfile, reg); err != nil {
		g.Logger.Warn("Failed to write metrics textfile", logfields.Path(cfg.Metrics.Textfile), logfields.Error(err))
		return
	}
	g.Logger.Debug("Wrote metrics textfile", logfields.Path(cfg.Metrics.Textfile))
}
