package commands

import (
	"context"
	"errors"

	foundationerrors "git.home.luguber.info/inful/askygg/internal/foundation/errors"
	"git.home.luguber.info/inful/askygg/internal/launch"
	"git.home.luguber.info/inful/askygg/internal/logfields"
	"git.home.luguber.info/inful/askygg/internal/process"
	"git.home.luguber.info/inful/askygg/internal/profile"
	"git.home.luguber.info/inful/askygg/internal/settings"
)

// RunCmd implements the 'run' command.
type RunCmd struct {
	Mode      string `help:"Run mode of the target program" enum:"headless,editor" required:""`
	BuildType string `name:"build_type" help:"Which build to launch" enum:"debug,release" default:"release"`
	Settings  string `help:"Settings file with input_dir, output_dir and config_file" default:"settings.json" env:"ASKYGG_SETTINGS"`
}

// Run launches the target and records its exit status on g. Signals sent
// while the target runs are handled by the spawner, which relays termination
// requests to the child.
func (r *RunCmd) Run(g *Global, root *CLI) error {
	return r.run(context.Background(), g, root)
}

func (r *RunCmd) run(ctx context.Context, g *Global, root *CLI) error {
	mode, err := launch.ParseMode(r.Mode)
	if err != nil {
		return foundationerrors.ValidationError("invalid --mode").WithCause(err).Build()
	}
	buildType, err := profile.Parse(r.BuildType)
	if err != nil {
		return foundationerrors.ValidationError("invalid --build_type").WithCause(err).Build()
	}
	settingsPath := r.Settings
	if settingsPath == "" {
		settingsPath = settings.DefaultPath
	}

	cfg, l, err := root.prepare(g)
	if err != nil {
		return err
	}

	reg, recorder := newRegistry()
	defer flushMetrics(g, cfg, reg)

	launcher := launch.NewLauncher(g.Spawner, l).
		WithRecorder(recorder).
		WithLogger(g.Logger)

	code, err := launcher.Launch(ctx, mode, buildType, settingsPath)
	if err != nil {
		return classifyLaunchError(err)
	}
	g.Logger.Debug("Run finished", logfields.Mode(string(mode)), logfields.BuildType(string(buildType)), logfields.ExitStatus(code))
	g.ExitCode = code
	return nil
}

func classifyLaunchError(err error) error {
	le, ok := launch.AsError(err)
	if !ok {
		if errors.Is(err, process.ErrStart) {
			return foundationerrors.ProcessError("launch failed").WithCause(err).Build()
		}
		return foundationerrors.RuntimeError("launch failed").WithCause(err).Build()
	}

	fields := foundationerrors.ErrorContext{logfields.KeyPath: le.Path}
	switch le.Kind {
	case launch.KindExecutableNotFound:
		fields[logfields.KeyBuildType] = string(le.BuildType)
		return foundationerrors.NotFoundError("cannot launch").
			WithCause(err).
			WithContextMap(fields).
			Build()
	default:
		if le.Field != "" {
			fields["field"] = le.Field
		}
		return foundationerrors.ConfigError("invalid settings").
			WithCause(err).
			WithContextMap(fields).
			Build()
	}
}
