// Package launch resolves and starts the built target program.
package launch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/askygg/internal/foundation/normalization"
	"git.home.luguber.info/inful/askygg/internal/layout"
	"git.home.luguber.info/inful/askygg/internal/logfields"
	"git.home.luguber.info/inful/askygg/internal/metrics"
	"git.home.luguber.info/inful/askygg/internal/process"
	"git.home.luguber.info/inful/askygg/internal/profile"
	"git.home.luguber.info/inful/askygg/internal/settings"
)

// RunMode selects how the target program starts.
type RunMode string

const (
	ModeHeadless RunMode = "headless"
	ModeEditor   RunMode = "editor"
)

var modeNormalizer = normalization.NewNormalizer("mode", map[string]RunMode{
	"headless": ModeHeadless,
	"editor":   ModeEditor,
})

// ParseMode converts raw input into a RunMode, rejecting unknown names.
func ParseMode(raw string) (RunMode, error) {
	return modeNormalizer.Parse(raw)
}

// Flag is the switch passed to the target program, e.g. --editor.
func (m RunMode) Flag() string { return "--" + string(m) }

// Spec is a fully resolved invocation of the target program.
type Spec struct {
	Mode       RunMode
	BuildType  profile.Profile
	Executable string
	Settings   settings.Settings
}

// Args returns the argument vector, executable first.
func (s Spec) Args() []string {
	return []string{
		s.Executable,
		s.Mode.Flag(),
		"--input_dir", s.Settings.InputDir,
		"--output_dir", s.Settings.OutputDir,
		"--config_file", s.Settings.ConfigFile,
	}
}

// Command converts the spec into a process.Command.
func (s Spec) Command() process.Command {
	argv := s.Args()
	return process.Command{Name: argv[0], Args: argv[1:]}
}

// Launcher hands the terminal over to the target program.
type Launcher struct {
	spawner  process.Spawner
	layout   layout.Layout
	recorder metrics.Recorder
	logger   *slog.Logger
}

// NewLauncher returns a launcher resolving executables under l.
func NewLauncher(spawner process.Spawner, l layout.Layout) *Launcher {
	return &Launcher{
		spawner:  spawner,
		layout:   l,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
}

// WithRecorder installs a metrics recorder.
func (l *Launcher) WithRecorder(r metrics.Recorder) *Launcher {
	if r != nil {
		l.recorder = r
	}
	return l
}

// WithLogger replaces the structured logger.
func (l *Launcher) WithLogger(logger *slog.Logger) *Launcher {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// Resolve loads settings and locates the executable without spawning anything.
func (l *Launcher) Resolve(mode RunMode, buildType profile.Profile, settingsPath string) (Spec, error) {
	s, err := settings.Load(settingsPath)
	if err != nil {
		return Spec{}, settingsError(err)
	}

	exe := l.layout.ExecutablePath(buildType)
	info, err := os.Stat(exe)
	if err == nil && info.IsDir() {
		err = fmt.Errorf("%s is a directory", exe)
	}
	if err != nil {
		return Spec{}, &Error{
			Kind:      KindExecutableNotFound,
			Path:      exe,
			BuildType: buildType,
			Err:       errors.Join(ErrExecutableNotFound, err),
		}
	}

	return Spec{Mode: mode, BuildType: buildType, Executable: exe, Settings: *s}, nil
}

// Launch resolves the target program, runs it to completion and returns its
// exit status unchanged.
func (l *Launcher) Launch(ctx context.Context, mode RunMode, buildType profile.Profile, settingsPath string) (int, error) {
	spec, err := l.Resolve(mode, buildType, settingsPath)
	if err != nil {
		return -1, err
	}

	l.logger.Info("Launching target program",
		logfields.Mode(string(mode)),
		logfields.BuildType(string(buildType)),
		logfields.Path(spec.Executable))

	code, err := l.spawner.Spawn(ctx, spec.Command())
	if err != nil {
		return code, fmt.Errorf("launch %s: %w", spec.Executable, err)
	}
	l.recorder.IncLaunch(string(mode), string(buildType), code)
	l.logger.Debug("Target program exited", logfields.ExitStatus(code))
	return code, nil
}
