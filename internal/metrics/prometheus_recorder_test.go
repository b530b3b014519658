package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObservePhaseDuration("debug", "configure", 150*time.Millisecond)
	pr.IncPhaseResult("debug", "configure", ResultSuccess)
	pr.IncPhaseResult("debug", "compile", ResultFailed)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncBuildOutcome(BuildOutcomeFailed)
	pr.IncLaunch("editor", "release", 3)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) == 0 {
		t.Fatalf("expected metrics, got none")
	}

	if got := testutil.ToFloat64(pr.phaseResults.WithLabelValues("debug", "compile", "failed")); got != 1 {
		t.Fatalf("expected 1 failed compile, got %v", got)
	}
	if got := testutil.ToFloat64(pr.launches.WithLabelValues("editor", "release", "3")); got != 1 {
		t.Fatalf("expected 1 launch with exit status 3, got %v", got)
	}
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObservePhaseDuration("debug", "configure", time.Second)
	pr.IncPhaseResult("debug", "configure", ResultSuccess)
	pr.ObserveBuildDuration(time.Second)
	pr.IncBuildOutcome(BuildOutcomeSuccess)
	pr.IncLaunch("headless", "debug", 0)
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.IncBuildOutcome(BuildOutcomeSuccess)

	path := filepath.Join(t.TempDir(), "nested", "askygg.prom")
	if err := WriteTextfile(path, reg); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), `askygg_build_outcomes_total{outcome="success"} 1`) {
		t.Fatalf("unexpected textfile content:\n%s", data)
	}

	if err := WriteTextfile("", reg); err != nil {
		t.Fatalf("empty path should be a no-op, got %v", err)
	}
}
