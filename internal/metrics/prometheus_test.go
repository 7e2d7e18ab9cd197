// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	p := NewPrometheusRecorder(nil)

	p.ObserveRender("dark", "html", RenderSuccess, 2*time.Second)
	p.ObserveRender("dark", "pdf", RenderSuccess, 3*time.Second)
	p.ObserveRender("light", "pdf", RenderFailed, time.Second)
	p.ObserveRender("light", "html", RenderCancelled, 0)
	p.IncTopicOutcome("completed")
	p.IncTopicOutcome("completed")
	p.IncTopicOutcome("failed")
	p.IncUpToDate()
	p.SetWorkers(4)
	p.ObserveRunDuration(90 * time.Second)

	assert.InDelta(t, 1, testutil.ToFloat64(p.renders.WithLabelValues("light", "pdf", "failed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(p.renders.WithLabelValues("light", "html", "cancelled")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(p.topicOutcomes.WithLabelValues("completed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(p.upToDate), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(p.workers), 0)
	assert.InDelta(t, 90, testutil.ToFloat64(p.runDuration), 0)
	assert.Equal(t, 3, testutil.CollectAndCount(p.renderDuration), "cancelled renders are not timed")
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	p := NewPrometheusRecorder(nil)
	p.IncTopicOutcome("completed")

	path := filepath.Join(t.TempDir(), "decks.prom")
	require.NoError(t, p.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `decks_topic_outcomes_total{outcome="completed"} 1`)
}

func TestOrNoop(t *testing.T) {
	assert.Equal(t, NoopRecorder{}, OrNoop(nil))

	p := NewPrometheusRecorder(nil)
	assert.Same(t, p, OrNoop(p))
}
