package jobs

import (
	"fmt"
	"log"
	"time"

	genservice "github.com/GoSim-25-26J-441/charforge-backend/internal/character_generation/service"
	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron *cron.Cron
}

func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New(cron.WithSeconds())}
}

// AddMetricsReport logs generator metrics on the given six-field schedule.
// An empty spec disables the report.
func (s *Scheduler) AddMetricsReport(spec string) error {
	if spec == "" {
		return nil
	}
	if _, err := s.cron.AddFunc(spec, reportMetrics); err != nil {
		return fmt.Errorf("failed to create cron job: %w", err)
	}
	log.Printf("[info] metrics report scheduled (%s)", spec)
	return nil
}

// Evictor drops in-memory session state that has been idle too long.
type Evictor interface {
	EvictIdle(maxIdle time.Duration) int
}

// AddSessionEviction runs EvictIdle on every evictor on the given schedule.
// An empty spec disables eviction.
func (s *Scheduler) AddSessionEviction(spec string, maxIdle time.Duration, evictors map[string]Evictor) error {
	if spec == "" {
		return nil
	}
	if _, err := s.cron.AddFunc(spec, func() { evictSessions(maxIdle, evictors) }); err != nil {
		return fmt.Errorf("failed to create cron job: %w", err)
	}
	log.Printf("[info] session eviction scheduled (%s, idle %s)", spec, maxIdle)
	return nil
}

func evictSessions(maxIdle time.Duration, evictors map[string]Evictor) int {
	total := 0
	for name, e := range evictors {
		n := e.EvictIdle(maxIdle)
		if n > 0 {
			log.Printf("[info] operation=session_eviction store=%s evicted=%d", name, n)
		}
		total += n
	}
	return total
}

// Start runs scheduled jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Println("Cron scheduler started")
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func reportMetrics() {
	log.Println(MetricsLine(genservice.GetMetrics()))
}

func MetricsLine(m genservice.Metrics) string {
	return fmt.Sprintf(
		"[info] operation=metrics_report submissions=%d successes=%d soft_failures=%d transport_failures=%d application_failures=%d failure_rate=%.1f%% upstream_calls=%d avg_upstream_ms=%.1f",
		m.Submissions, m.Successes, m.SoftFailures, m.TransportFailures, m.ApplicationFailures,
		m.FailureRate(), m.UpstreamCalls, m.AverageUpstreamLatency(),
	)
}
