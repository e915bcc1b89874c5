package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLLMStats_SnapshotPercentiles(t *testing.T) {
	stats := NewLLMStats(time.Hour)
	for _, ms := range []int64{300, 100, 500, 200, 400} {
		stats.Record(ms)
	}

	snap := stats.Snapshot()
	assert.Equal(t, 5, snap.Count)
	assert.Equal(t, int64(100), snap.MinMs)
	assert.Equal(t, int64(500), snap.MaxMs)
	assert.InDelta(t, 300, snap.AvgMs, 0.001)
	assert.InDelta(t, 300, snap.P50Ms, 0.001)
	assert.InDelta(t, 480, snap.P95Ms, 0.001)
	assert.InDelta(t, 496, snap.P99Ms, 0.001)
}

func TestLLMStats_ExpiresOldSamples(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	stats := NewLLMStats(10 * time.Minute)
	stats.now = func() time.Time { return now }

	stats.Record(100)
	now = now.Add(11 * time.Minute)
	assert.Equal(t, 0, stats.Snapshot().Count)

	stats.Record(200)
	snap := stats.Snapshot()
	assert.Equal(t, 1, snap.Count)
	assert.Equal(t, int64(200), snap.MinMs)
	assert.Equal(t, int64(200), snap.MaxMs)
}

func TestLLMStats_ClampsNegativeDuration(t *testing.T) {
	stats := NewLLMStats(time.Hour)
	stats.Record(-10)

	snap := stats.Snapshot()
	assert.Equal(t, 1, snap.Count)
	assert.Equal(t, int64(0), snap.MaxMs)
}

func TestLLMStats_Empty(t *testing.T) {
	assert.Equal(t, StatsSnapshot{}, NewLLMStats(0).Snapshot())
}
