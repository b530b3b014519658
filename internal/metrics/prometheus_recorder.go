package metrics

import (
	"fmt"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	phaseDuration *prom.HistogramVec
	phaseResults  *prom.CounterVec
	buildDuration prom.Histogram
	buildOutcome  *prom.CounterVec
	launches      *prom.CounterVec
}

// buildBuckets covers a no-op ninja run through a cold release build.
var buildBuckets = []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1200, 2400}

// NewPrometheusRecorder constructs metrics and registers them with reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		phaseDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "askygg",
			Name:      "phase_duration_seconds",
			Help:      "Duration of configure and compile phases",
			Buckets:   buildBuckets,
		}, []string{"profile", "phase"}),
		phaseResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "askygg",
			Name:      "phase_results_total",
			Help:      "Phase result counts by outcome",
		}, []string{"profile", "phase", "result"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "askygg",
			Name:      "build_duration_seconds",
			Help:      "Total setup duration across all profiles",
			Buckets:   buildBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "askygg",
			Name:      "build_outcomes_total",
			Help:      "Setup outcomes by final status",
		}, []string{"outcome"}),
		launches: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "askygg",
			Name:      "launches_total",
			Help:      "Target program launches by mode, build type and exit status",
		}, []string{"mode", "build_type", "exit_status"}),
	}
	reg.MustRegister(pr.phaseDuration, pr.phaseResults, pr.buildDuration, pr.buildOutcome, pr.launches)
	return pr
}

func (p *PrometheusRecorder) ObservePhaseDuration(profile, phase string, d time.Duration) {
	if p == nil || p.phaseDuration == nil {
		return
	}
	p.phaseDuration.WithLabelValues(profile, phase).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncPhaseResult(profile, phase string, result ResultLabel) {
	if p == nil || p.phaseResults == nil {
		return
	}
	p.phaseResults.WithLabelValues(profile, phase, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) IncLaunch(mode, buildType string, exitStatus int) {
	if p == nil || p.launches == nil {
		return
	}
	p.launches.WithLabelValues(mode, buildType, fmt.Sprint(exitStatus)).Inc()
}
