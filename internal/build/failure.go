package build

import (
	"context"
	"errors"
	"fmt"

	"git.home.luguber.info/inful/askygg/internal/profile"
)

// Phase is one of the two steps of a profile build.
type Phase string

const (
	PhaseConfigure Phase = "configure"
	PhaseCompile   Phase = "compile"
)

// Failure reports the phase that stopped the run.
//
// ExitStatus is -1 when the tool never produced one (it could not be started,
// or the run was canceled); Err then carries the reason.
type Failure struct {
	Phase      Phase
	Profile    profile.Profile
	ExitStatus int
	Stderr     string
	Err        error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s %s failed: %v", f.Profile, f.Phase, f.Err)
	}
	return fmt.Sprintf("%s %s failed with exit status %d", f.Profile, f.Phase, f.ExitStatus)
}

func (f *Failure) Unwrap() error { return f.Err }

// Canceled reports whether the failure was caused by context cancellation.
func (f *Failure) Canceled() bool {
	return errors.Is(f.Err, context.Canceled) || errors.Is(f.Err, context.DeadlineExceeded)
}

// AsFailure extracts a *Failure from an error chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
