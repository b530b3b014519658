package build

import (
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/askygg/internal/metrics"
	"git.home.luguber.info/inful/askygg/internal/profile"
)

// PhaseRecord is one executed phase.
type PhaseRecord struct {
	Profile    profile.Profile
	Phase      Phase
	ExitStatus int
	Duration   time.Duration
}

// Report summarizes a single setup run. It lives only as long as the run.
type Report struct {
	RunID    string
	Revision string
	Start    time.Time
	End      time.Time
	Phases   []PhaseRecord
	Outcome  metrics.BuildOutcomeLabel
}

func newReport() *Report {
	return &Report{RunID: uuid.NewString(), Start: time.Now()}
}

func (r *Report) record(p profile.Profile, phase Phase, exitStatus int, d time.Duration) {
	r.Phases = append(r.Phases, PhaseRecord{Profile: p, Phase: phase, ExitStatus: exitStatus, Duration: d})
}

func (r *Report) finish(outcome metrics.BuildOutcomeLabel) {
	r.End = time.Now()
	r.Outcome = outcome
}

// Duration is the wall time of the run.
func (r *Report) Duration() time.Duration {
	if r.End.IsZero() {
		return time.Since(r.Start)
	}
	return r.End.Sub(r.Start)
}
