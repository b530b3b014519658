// Package metrics records build and launch metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics stay
// optional:
//
//	orch := build.NewOrchestrator(runner, layout, toolchain)
//	orch.WithObserver(build.RecorderObserver{Recorder: metrics.NewPrometheusRecorder(reg)})
//
// askygg is a short-lived CLI with no HTTP listener, so the Prometheus
// registry is exported with WriteTextfile when the command exits (for the
// node_exporter textfile collector or a CI artifact).
package metrics
