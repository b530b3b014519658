package build

import (
	"time"

	"git.home.luguber.info/inful/askygg/internal/metrics"
	"git.home.luguber.info/inful/askygg/internal/profile"
)

// Observer receives callbacks around phase execution and run completion.
type Observer interface {
	OnPhaseStart(p profile.Profile, phase Phase)
	OnPhaseComplete(p profile.Profile, phase Phase, d time.Duration, result metrics.ResultLabel)
	OnBuildComplete(report *Report)
}

// NoopObserver is a no-op implementation.
type NoopObserver struct{}

func (NoopObserver) OnPhaseStart(profile.Profile, Phase)                                    {}
func (NoopObserver) OnPhaseComplete(profile.Profile, Phase, time.Duration, metrics.ResultLabel) {}
func (NoopObserver) OnBuildComplete(*Report)                                                {}

// RecorderObserver adapts metrics.Recorder into an Observer.
type RecorderObserver struct{ Recorder metrics.Recorder }

func (r RecorderObserver) OnPhaseStart(profile.Profile, Phase) {}

func (r RecorderObserver) OnPhaseComplete(p profile.Profile, phase Phase, d time.Duration, result metrics.ResultLabel) {
	if r.Recorder == nil {
		return
	}
	r.Recorder.ObservePhaseDuration(string(p), string(phase), d)
	r.Recorder.IncPhaseResult(string(p), string(phase), result)
}

func (r RecorderObserver) OnBuildComplete(report *Report) {
	if r.Recorder == nil || report == nil {
		return
	}
	r.Recorder.ObserveBuildDuration(report.Duration())
	r.Recorder.IncBuildOutcome(report.Outcome)
}
