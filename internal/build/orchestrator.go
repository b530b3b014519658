package build

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"git.home.luguber.info/inful/askygg/internal/layout"
	"git.home.luguber.info/inful/askygg/internal/logfields"
	"git.home.luguber.info/inful/askygg/internal/metrics"
	"git.home.luguber.info/inful/askygg/internal/process"
	"git.home.luguber.info/inful/askygg/internal/profile"
)

// Orchestrator drives configure and compile for a sequence of profiles.
type Orchestrator struct {
	runner    process.Runner
	layout    layout.Layout
	toolchain profile.Toolchain
	stdout    io.Writer
	stderr    io.Writer
	observer  Observer
	logger    *slog.Logger
}

// NewOrchestrator wires an orchestrator that prints tool output to the
// process's stdout/stderr and logs through slog.Default.
func NewOrchestrator(runner process.Runner, l layout.Layout, tc profile.Toolchain) *Orchestrator {
	return &Orchestrator{
		runner:    runner,
		layout:    l,
		toolchain: tc.WithDefaults(),
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		observer:  NoopObserver{},
		logger:    slog.Default(),
	}
}

// WithOutput sets where captured tool stdout and stderr are printed.
func (o *Orchestrator) WithOutput(stdout, stderr io.Writer) *Orchestrator {
	if stdout != nil {
		o.stdout = stdout
	}
	if stderr != nil {
		o.stderr = stderr
	}
	return o
}

// WithObserver installs a phase observer.
func (o *Orchestrator) WithObserver(obs Observer) *Orchestrator {
	if obs != nil {
		o.observer = obs
	}
	return o
}

// WithLogger replaces the structured logger.
func (o *Orchestrator) WithLogger(l *slog.Logger) *Orchestrator {
	if l != nil {
		o.logger = l
	}
	return o
}

type step struct {
	phase  Phase
	banner string
	cmd    process.Command
}

// Orchestrate builds each profile in order and stops at the first failure.
// The returned report is non-nil even on failure.
func (o *Orchestrator) Orchestrate(ctx context.Context, profiles []profile.Profile) (*Report, error) {
	report := newReport()
	report.Revision = SourceRevision(o.layout.Root)
	log := o.logger.With(logfields.RunID(report.RunID))
	log.Info("Starting setup",
		slog.Int("profiles", len(profiles)),
		logfields.Path(o.layout.Root),
		logfields.Revision(report.Revision))

	for _, p := range profiles {
		if !p.Valid() {
			return o.fail(report, log, fmt.Errorf("unknown build profile %q", p))
		}

		dir := o.layout.BuildDir(p)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return o.fail(report, log, fmt.Errorf("create build directory %s: %w", dir, err))
		}

		steps := []step{
			{PhaseConfigure, fmt.Sprintf("Configuring %s Build...", p.Title()), o.toolchain.ConfigureCommand(p, dir)},
			{PhaseCompile, fmt.Sprintf("Building %s Targets...", p.Title()), o.toolchain.CompileCommand(dir)},
		}
		for _, st := range steps {
			if err := o.runPhase(ctx, report, log, p, st); err != nil {
				return o.fail(report, log, err)
			}
		}
	}

	report.finish(metrics.BuildOutcomeSuccess)
	o.observer.OnBuildComplete(report)
	_, _ = fmt.Fprintln(o.stdout, "Build completed successfully.")
	log.Info("Setup completed", logfields.Duration(report.Duration()))
	return report, nil
}

func (o *Orchestrator) runPhase(ctx context.Context, report *Report, log *slog.Logger, p profile.Profile, st step) error {
	attrs := []any{logfields.Profile(string(p)), logfields.Phase(string(st.phase))}

	if err := ctx.Err(); err != nil {
		o.observer.OnPhaseComplete(p, st.phase, 0, metrics.ResultCanceled)
		return &Failure{Phase: st.phase, Profile: p, ExitStatus: -1, Err: err}
	}

	_, _ = fmt.Fprintln(o.stdout, st.banner)
	log.Debug("Running phase", append(attrs, logfields.Command(st.cmd.String()), logfields.Path(st.cmd.Dir))...)
	o.observer.OnPhaseStart(p, st.phase)

	res, runErr := o.runner.Run(ctx, st.cmd)
	report.record(p, st.phase, res.ExitStatus, res.Duration)
	o.printOutput(o.stdout, res.Stdout)

	switch {
	case ctx.Err() != nil:
		o.observer.OnPhaseComplete(p, st.phase, res.Duration, metrics.ResultCanceled)
		return &Failure{Phase: st.phase, Profile: p, ExitStatus: -1, Err: ctx.Err()}
	case runErr != nil:
		o.observer.OnPhaseComplete(p, st.phase, res.Duration, metrics.ResultFailed)
		return &Failure{Phase: st.phase, Profile: p, ExitStatus: -1, Err: runErr}
	case !res.Success():
		stderr := process.Decode(res.Stderr)
		o.printOutput(o.stderr, res.Stderr)
		o.observer.OnPhaseComplete(p, st.phase, res.Duration, metrics.ResultFailed)
		return &Failure{Phase: st.phase, Profile: p, ExitStatus: res.ExitStatus, Stderr: stderr}
	}

	o.observer.OnPhaseComplete(p, st.phase, res.Duration, metrics.ResultSuccess)
	log.Info("Phase completed", append(attrs, logfields.Duration(res.Duration))...)
	return nil
}

func (o *Orchestrator) fail(report *Report, log *slog.Logger, err error) (*Report, error) {
	outcome := metrics.BuildOutcomeFailed
	attrs := []any{logfields.Error(err)}
	if f, ok := AsFailure(err); ok {
		if f.Canceled() {
			outcome = metrics.BuildOutcomeCanceled
		}
		attrs = append(attrs,
			logfields.Profile(string(f.Profile)),
			logfields.Phase(string(f.Phase)),
			logfields.ExitStatus(f.ExitStatus))
	}
	report.finish(outcome)
	o.observer.OnBuildComplete(report)
	// The caller reports the returned error; keep this record at debug.
	log.Debug("Setup stopped", attrs...)
	return report, err
}

// printOutput writes decoded tool output, terminated by a newline.
func (o *Orchestrator) printOutput(w io.Writer, raw []byte) {
	text := process.Decode(raw)
	if text == "" {
		return
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	_, _ = io.WriteString(w, text)
}
