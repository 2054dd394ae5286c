package service

import (
	"context"

	"sensor_relay/internal/cache"
	"sensor_relay/internal/models"
)

type MonitoringService struct {
	store *cache.Store
}

func NewMonitoringService(store *cache.Store) *MonitoringService {
	return &MonitoringService{store: store}
}

// Snapshot returns the latest installed snapshot.
// Before the first refresh it returns a baseline with an empty, non-nil
// readings list so callers can render it as [].
func (s *MonitoringService) Snapshot(_ context.Context) models.Snapshot {
	if s.store == nil {
		return baselineSnapshot()
	}
	snap := s.store.Load()
	if snap.Readings == nil {
		snap.Readings = []models.SensorReading{}
	}
	return snap
}

// Version reports how many snapshots have been installed; 0 means none yet.
func (s *MonitoringService) Version() uint64 {
	if s.store == nil {
		return 0
	}
	return s.store.Version()
}

func baselineSnapshot() models.Snapshot {
	return models.Snapshot{Readings: []models.SensorReading{}}
}
