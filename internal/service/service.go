package service

import (
	"context"
	"time"

	"sensor_relay/internal/cache"
	"sensor_relay/internal/logger"
	"sensor_relay/internal/metrics"
	"sensor_relay/internal/models"
	"sensor_relay/internal/repository"
	"sensor_relay/internal/satellite"
)

// SatelliteClient is the part of *satellite.Client the services depend on.
type SatelliteClient interface {
	FetchSensorIDs(ctx context.Context) (satellite.Result[[]models.SensorID], error)
	FetchSensorData(ctx context.Context, id models.SensorID) (satellite.Result[models.SensorReading], error)
	CreateSensor(ctx context.Context, frequency int) satellite.Status
}

// Refresher builds snapshots from the satellite and installs them in the cache.
type Refresher interface {
	Refresh(ctx context.Context) (models.Snapshot, error)
	Poll(ctx context.Context) (models.Snapshot, error)
}

// Monitoring exposes the cached snapshot read-only.
type Monitoring interface {
	Snapshot(ctx context.Context) models.Snapshot
	// Version counts installed snapshots; it changes whenever Snapshot does.
	Version() uint64
}

// Provisioning forwards sensor creation to the satellite.
type Provisioning interface {
	CreateSensor(ctx context.Context, frequency int) satellite.Status
}

// EventLog exposes the relay audit log with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.RelayEvent, error)
}

// Scheduler polls in the background until ctx is canceled.
type Scheduler interface {
	Run(ctx context.Context, interval time.Duration)
}

// Service aggregates all sub-services.
type Service struct {
	Refresher
	Monitoring
	Provisioning
	EventLog
	Scheduler
}

// Deps are the collaborators NewService wires together.
type Deps struct {
	Satellite SatelliteClient
	Cache     *cache.Store
	Repos     *repository.Repository
	Refresh   RefreshOptions
	Log       *logger.Logger
	Metrics   *metrics.Metrics
}

func NewService(d Deps) *Service {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	var events repository.EventRepo
	if d.Repos != nil {
		events = d.Repos.EventRepo
	}
	refresher := NewRefresherService(d.Satellite, d.Cache, events, d.Refresh, log, d.Metrics)
	return &Service{
		Refresher:    refresher,
		Monitoring:   NewMonitoringService(d.Cache),
		Provisioning: NewProvisioningService(d.Satellite, events, log),
		EventLog:     NewEventLogService(events),
		Scheduler:    NewSchedulerService(refresher, log),
	}
}
