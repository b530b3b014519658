package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/askygg/internal/build"
	foundationerrors "git.home.luguber.info/inful/askygg/internal/foundation/errors"
	"git.home.luguber.info/inful/askygg/internal/logfields"
	"git.home.luguber.info/inful/askygg/internal/profile"
)

// SetupCmd implements the 'setup' command. It takes no flags: both profiles
// are always built, debug first.
type SetupCmd struct{}

func (s *SetupCmd) Run(g *Global, root *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return s.run(ctx, g, root)
}

func (s *SetupCmd) run(ctx context.Context, g *Global, root *CLI) error {
	cfg, l, err := root.prepare(g)
	if err != nil {
		return err
	}

	reg, recorder := newRegistry()
	defer flushMetrics(g, cfg, reg)

	orchestrator := build.NewOrchestrator(g.Runner, l, cfg.Toolchain).
		WithOutput(g.Stdout, g.Stderr).
		WithObserver(build.RecorderObserver{Recorder: recorder}).
		WithLogger(g.Logger)

	report, err := orchestrator.Orchestrate(ctx, profile.DefaultOrder())
	if err != nil {
		return classifySetupError(err)
	}
	g.Logger.Info("Build summary",
		logfields.RunID(report.RunID),
		logfields.Revision(report.Revision),
		logfields.Duration(report.Duration()),
		"phases", len(report.Phases))
	return nil
}

func classifySetupError(err error) error {
	f, ok := build.AsFailure(err)
	if !ok {
		return foundationerrors.FileSystemError("setup failed").WithCause(err).Build()
	}
	if f.Canceled() {
		return foundationerrors.RuntimeError("setup interrupted").
			WithCause(err).
			WithContext(logfields.KeyProfile, string(f.Profile)).
			WithContext(logfields.KeyPhase, string(f.Phase)).
			Build()
	}

	builder := foundationerrors.BuildError(fmt.Sprintf("%s build failed", f.Profile))
	if f.ExitStatus < 0 {
		builder = foundationerrors.ProcessError(fmt.Sprintf("%s build failed", f.Profile))
	}
	return builder.
		WithCause(err).
		WithContext(logfields.KeyProfile, string(f.Profile)).
		WithContext(logfields.KeyPhase, string(f.Phase)).
		WithContext(logfields.KeyExitStatus, f.ExitStatus).
		Build()
}
