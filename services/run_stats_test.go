package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunStatsRecordScrape(t *testing.T) {
	stats := NewRunStats()

	stats.RecordScrape(1, true, 10)
	stats.RecordScrape(1, true, 5)
	stats.RecordScrape(2, false, 0)
	stats.RecordScrape(3, true, 0)

	snap := stats.Snapshot()
	assert.Equal(t, 4, snap.Attempts)
	assert.Equal(t, 3, snap.Successes)
	assert.Equal(t, 1, snap.Failures)
	assert.Equal(t, 15, snap.ItemsFound)
	assert.Equal(t, 3, snap.ActiveTournaments)
	assert.InDelta(t, 75.0, snap.SuccessRate, 0.001)
}

func TestRunStatsEmptySnapshot(t *testing.T) {
	snap := NewRunStats().Snapshot()
	assert.Zero(t, snap.Attempts)
	assert.Zero(t, snap.SuccessRate)
	assert.Zero(t, snap.ActiveTournaments)
}

func TestRunStatsConcurrentRecording(t *testing.T) {
	stats := NewRunStats()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				stats.RecordScrape(id, true, 1)
			}
		}(i)
	}
	wg.Wait()

	snap := stats.Snapshot()
	assert.Equal(t, 1000, snap.Attempts)
	assert.Equal(t, 1000, snap.ItemsFound)
	assert.Equal(t, 10, snap.ActiveTournaments)
}
