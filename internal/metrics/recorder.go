package metrics

import "time"

// ResultLabel enumerates phase result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// BuildOutcomeLabel is the final status of a whole setup run.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess  BuildOutcomeLabel = "success"
	BuildOutcomeFailed   BuildOutcomeLabel = "failed"
	BuildOutcomeCanceled BuildOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for build phases and launches.
type Recorder interface {
	ObservePhaseDuration(profile, phase string, d time.Duration)
	IncPhaseResult(profile, phase string, result ResultLabel)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
	IncLaunch(mode, buildType string, exitStatus int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePhaseDuration(string, string, time.Duration) {}
func (NoopRecorder) IncPhaseResult(string, string, ResultLabel)         {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)                 {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)                  {}
func (NoopRecorder) IncLaunch(string, string, int)                      {}
