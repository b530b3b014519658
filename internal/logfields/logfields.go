package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyProfile    = "profile"
	KeyPhase      = "phase"
	KeyCommand    = "command"
	KeyExitStatus = "exit_status"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyMode       = "mode"
	KeyBuildType  = "build_type"
	KeyRevision   = "revision"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Profile(p string) slog.Attr      { return slog.String(KeyProfile, p) }
func Phase(p string) slog.Attr        { return slog.String(KeyPhase, p) }
func Command(c string) slog.Attr      { return slog.String(KeyCommand, c) }
func ExitStatus(code int) slog.Attr   { return slog.Int(KeyExitStatus, code) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Mode(m string) slog.Attr         { return slog.String(KeyMode, m) }
func BuildType(t string) slog.Attr    { return slog.String(KeyBuildType, t) }
func Revision(r string) slog.Attr     { return slog.String(KeyRevision, r) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}

// Duration converts d to the canonical millisecond field.
func Duration(d time.Duration) slog.Attr {
	return DurationMS(float64(d) / float64(time.Millisecond))
}
