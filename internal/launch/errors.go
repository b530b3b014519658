package launch

import (
	"errors"
	"fmt"

	"git.home.luguber.info/inful/askygg/internal/profile"
	"git.home.luguber.info/inful/askygg/internal/settings"
)

// Sentinels matched with errors.Is. The settings kinds are shared with the
// settings package so either name works.
var (
	ErrSettingsMissing    = settings.ErrMissing
	ErrSettingsMalformed  = settings.ErrMalformed
	ErrSettingsIncomplete = settings.ErrIncomplete
	ErrExecutableNotFound = errors.New("target executable not found")
)

// ErrorKind classifies a launch failure.
type ErrorKind string

const (
	KindSettingsMissing    ErrorKind = "settings_missing"
	KindSettingsMalformed  ErrorKind = "settings_malformed"
	KindSettingsIncomplete ErrorKind = "settings_incomplete"
	KindExecutableNotFound ErrorKind = "executable_not_found"
)

// Error is returned for every failure that happens before the target program
// is spawned.
type Error struct {
	Kind      ErrorKind
	Path      string
	Field     string
	BuildType profile.Profile
	Err       error
}

func (e *Error) Error() string {
	if e.Kind == KindExecutableNotFound {
		return fmt.Sprintf("%s build of the target program not found at %s (run setup first)", e.BuildType, e.Path)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// AsError extracts a *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var le *Error
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

func settingsError(err error) *Error {
	le := &Error{Err: err}
	var se *settings.Error
	if errors.As(err, &se) {
		le.Path = se.Path
		le.Field = se.Field
	}
	switch {
	case errors.Is(err, settings.ErrMissing):
		le.Kind = KindSettingsMissing
	case errors.Is(err, settings.ErrIncomplete):
		le.Kind = KindSettingsIncomplete
	default:
		le.Kind = KindSettingsMalformed
	}
	return le
}
