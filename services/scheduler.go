// services/scheduler.go
package services

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// StartRankingWarmer refreshes the ranking caches on an interval so the
// hour-long TTL entries stay warm between write-driven invalidations.
func (s *StatsService) StartRankingWarmer(interval time.Duration, limit int) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("[Scheduler] init failed, ranking warmer disabled: %v", err)
		return
	}
	sched.Start()

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			s.WarmRankings(ctx, limit)
			log.Printf("[Scheduler] ranking caches refreshed (limit=%d)", limit)
		}),
	)
	if err != nil {
		log.Printf("[Scheduler] ranking warmer job failed to register: %v", err)
	}
}
