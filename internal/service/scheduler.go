package service

import (
	"context"
	"time"

	"sensor_relay/internal/logger"
)

// SchedulerService re-runs Poll on a fixed interval.
type SchedulerService struct {
	refresher Refresher
	log       *logger.Logger
}

func NewSchedulerService(refresher Refresher, log *logger.Logger) *SchedulerService {
	if log == nil {
		log = logger.Nop()
	}
	return &SchedulerService{refresher: refresher, log: log}
}

// Run ticks at the given interval until ctx is canceled.
// A non-positive interval disables background polling.
func (s *SchedulerService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			// Poll logs and records its own failure.
			if _, err := s.refresher.Poll(ctx); err != nil && ctx.Err() != nil {
				return
			}
		}
	}
}
