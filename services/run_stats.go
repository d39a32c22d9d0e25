package services

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// RunStats tracks aggregate scraping statistics over the process lifetime.
// Safe for concurrent use; the poller records while handlers may read.
type RunStats struct {
	mu          sync.Mutex
	startTime   time.Time
	attempts    int
	successes   int
	failures    int
	itemsFound  int
	tournaments map[int]int
}

func NewRunStats() *RunStats {
	return &RunStats{
		startTime:   time.Now(),
		tournaments: make(map[int]int),
	}
}

func (s *RunStats) RecordScrape(tournamentID int, success bool, itemCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts++
	if success {
		s.successes++
		s.itemsFound += itemCount
	} else {
		s.failures++
	}
	s.tournaments[tournamentID]++
}

// RunStatsSnapshot is a point-in-time copy for logging and the API.
type RunStatsSnapshot struct {
	Uptime            string  `json:"uptime"`
	Attempts          int     `json:"attempts"`
	Successes         int     `json:"successes"`
	Failures          int     `json:"failures"`
	SuccessRate       float64 `json:"success_rate"`
	ItemsFound        int     `json:"items_found"`
	ActiveTournaments int     `json:"active_tournaments"`
}

func (s *RunStats) Snapshot() RunStatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	uptime := time.Since(s.startTime)
	snapshot := RunStatsSnapshot{
		Uptime: fmt.Sprintf("%dh %dm %ds",
			int(uptime.Hours()), int(uptime.Minutes())%60, int(uptime.Seconds())%60),
		Attempts:          s.attempts,
		Successes:         s.successes,
		Failures:          s.failures,
		ItemsFound:        s.itemsFound,
		ActiveTournaments: len(s.tournaments),
	}
	if s.attempts > 0 {
		snapshot.SuccessRate = float64(s.successes) / float64(s.attempts) * 100
	}
	return snapshot
}

func (s *RunStats) LogSummary(logger *slog.Logger) {
	snap := s.Snapshot()
	logger.Info("scraper statistics",
		slog.String("uptime", snap.Uptime),
		slog.Int("attempts", snap.Attempts),
		slog.Int("successes", snap.Successes),
		slog.Int("failures", snap.Failures),
		slog.String("success_rate", fmt.Sprintf("%.1f%%", snap.SuccessRate)),
		slog.Int("items_found", snap.ItemsFound),
		slog.Int("active_tournaments", snap.ActiveTournaments))
}
