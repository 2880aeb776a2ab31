// Package metrics provides build observability via a Recorder interface.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so single-shot builds carry no metrics overhead. Watch mode
// swaps in PrometheusRecorder and exposes the registry over HTTP.
package metrics

import "time"

// Recorder receives build and stage measurements.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveBuildDuration(d time.Duration)
	IncStageResult(stage, result string)
	IncBuildOutcome(outcome string)
}

// NoopRecorder is the default Recorder; all methods do nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)         {}
func (NoopRecorder) IncStageResult(string, string)              {}
func (NoopRecorder) IncBuildOutcome(string)                     {}
