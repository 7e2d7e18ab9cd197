// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package metrics

import "time"

// RenderResult labels the outcome of one external render.
type RenderResult string

const (
	RenderSuccess   RenderResult = "success"
	RenderFailed    RenderResult = "failed"
	RenderCancelled RenderResult = "cancelled"
)

// Recorder receives build observations. Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveRender(variant, format string, result RenderResult, d time.Duration)
	IncTopicOutcome(outcome string)
	IncUpToDate()
	ObserveRunDuration(d time.Duration)
	SetWorkers(n int)
}

// NoopRecorder discards everything.
type NoopRecorder struct{}

func (NoopRecorder) ObserveRender(string, string, RenderResult, time.Duration) {}
func (NoopRecorder) IncTopicOutcome(string)                                   {}
func (NoopRecorder) IncUpToDate()                                             {}
func (NoopRecorder) ObserveRunDuration(time.Duration)                         {}
func (NoopRecorder) SetWorkers(int)                                           {}

// OrNoop returns r, or NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}

	return r
}
