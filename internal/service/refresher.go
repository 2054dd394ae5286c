package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sensor_relay/internal/cache"
	"sensor_relay/internal/logger"
	"sensor_relay/internal/metrics"
	"sensor_relay/internal/models"
	"sensor_relay/internal/repository"
	"sensor_relay/internal/satellite"
)

// RefresherService fetches every sensor reading sequentially and swaps the
// result into the cache once the whole cycle has completed.
type RefresherService struct {
	sat     SatelliteClient
	store   *cache.Store
	events  repository.EventRepo
	opts    RefreshOptions
	log     *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	// cycle is a one-slot semaphore: overlapping polls run one after the
	// other, and a caller gives up waiting when its ctx is done.
	cycle chan struct{}
}

func NewRefresherService(
	sat SatelliteClient,
	store *cache.Store,
	events repository.EventRepo,
	opts RefreshOptions,
	log *logger.Logger,
	m *metrics.Metrics,
) *RefresherService {
	if log == nil {
		log = logger.Nop()
	}
	return &RefresherService{
		sat:     sat,
		store:   store,
		events:  events,
		opts:    opts,
		log:     log,
		metrics: m,
		now:     time.Now,
		cycle:   make(chan struct{}, 1),
	}
}

// Refresh runs one refresh cycle without touching the cache.
// Readings keep the order of the satellite's id list. A sensor whose retries
// run out is listed in Snapshot.Failures and skipped.
func (s *RefresherService) Refresh(ctx context.Context) (models.Snapshot, error) {
	idsOut, err := satellite.RetryUntilOK(ctx, s.policy(satellite.EndpointSensorIDs, ""), s.sat.FetchSensorIDs)
	s.metrics.RetryAttempts(satellite.EndpointSensorIDs, idsOut.Attempts)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("fetch sensor id list: %w", err)
	}
	ids := idsOut.Payload
	s.log.Debugw("sensor_ids_fetched", "count", len(ids), "attempts", idsOut.Attempts)

	snap := models.Snapshot{Readings: make([]models.SensorReading, 0, len(ids))}
	for _, id := range ids {
		out, err := satellite.RetryUntilOK(ctx, s.policy(satellite.EndpointSensors, id),
			func(ctx context.Context) (satellite.Result[models.SensorReading], error) {
				return s.sat.FetchSensorData(ctx, id)
			})
		s.metrics.RetryAttempts(satellite.EndpointSensors, out.Attempts)

		var exhausted *satellite.ExhaustedError
		switch {
		case errors.As(err, &exhausted):
			s.skipSensor(ctx, id, out.Attempts, exhausted)
			snap.Failures = append(snap.Failures, models.SensorFailure{
				ID:       id,
				Attempts: out.Attempts,
				Reason:   exhausted.Error(),
			})
			continue
		case err != nil:
			return models.Snapshot{}, fmt.Errorf("fetch sensor %s: %w", id, err)
		}

		reading := out.Payload
		reading.Timestamp = s.now()
		snap.Readings = append(snap.Readings, reading)
	}
	snap.RefreshedAt = s.now()
	return snap, nil
}

// Poll runs a refresh cycle and installs its snapshot in the cache.
// The cache is left untouched when the cycle fails.
func (s *RefresherService) Poll(ctx context.Context) (models.Snapshot, error) {
	select {
	case s.cycle <- struct{}{}:
	case <-ctx.Done():
		s.log.Warnw("poll_abandoned", "err", ctx.Err())
		return models.Snapshot{}, fmt.Errorf("wait for running poll: %w", ctx.Err())
	}
	defer func() { <-s.cycle }()

	if s.opts.CycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.CycleTimeout)
		defer cancel()
	}

	start := time.Now()
	snap, err := s.Refresh(ctx)
	elapsed := time.Since(start)
	s.metrics.PollCycle(elapsed, err)
	if err != nil {
		s.log.Errorw("poll_failed", "err", err, "duration", elapsed)
		s.record(ctx, models.EventPollFailed, err.Error(), nil)
		return models.Snapshot{}, err
	}

	s.store.Swap(snap)
	s.metrics.SnapshotInstalled(len(snap.Readings), snap.RefreshedAt)
	s.log.Infow("poll_completed", "readings", len(snap.Readings), "failures", len(snap.Failures), "duration", elapsed)
	s.record(ctx, models.EventPoll, fmt.Sprintf("Cached %d sensor readings", len(snap.Readings)), map[string]any{
		"readings": len(snap.Readings),
		"failures": len(snap.Failures),
	})
	return snap, nil
}

func (s *RefresherService) policy(endpoint string, id models.SensorID) satellite.Policy {
	return satellite.Policy{
		Limit:    s.opts.RetryLimit,
		Deadline: s.opts.RetryDeadline,
		OnAttempt: func(attempt int, st satellite.Status) {
			s.log.Debugw("satellite_attempt",
				"endpoint", endpoint,
				"sensor_id", id,
				"attempt", attempt,
				"status_code", st.Code,
				"message", st.Message,
			)
		},
	}
}

func (s *RefresherService) skipSensor(ctx context.Context, id models.SensorID, attempts int, exhausted *satellite.ExhaustedError) {
	s.log.Warnw("sensor_retry_exhausted",
		"sensor_id", id,
		"attempts", attempts,
		"last_status", exhausted.Last.Code,
	)
	s.record(ctx, models.EventRetryExhausted, fmt.Sprintf("Sensor %s skipped: %s", id, exhausted.Error()), map[string]any{
		"sensor_id":   id,
		"attempts":    attempts,
		"last_status": exhausted.Last.Code,
	})
}

// record appends an audit event; failures are logged, never returned.
func (s *RefresherService) record(ctx context.Context, typ, desc string, meta map[string]any) {
	appendEvent(ctx, s.events, s.log, typ, desc, meta, s.now())
}
