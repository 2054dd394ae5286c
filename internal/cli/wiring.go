package cli

import (
	"database/sql"

	"sensor_relay/internal/cache"
	"sensor_relay/internal/metrics"
	"sensor_relay/internal/repository"
	"sensor_relay/internal/satellite"
	"sensor_relay/internal/service"
)

// newServices wires the relay services. db and m may be nil for one-shot
// commands that neither keep an audit log nor expose metrics.
func (a *app) newServices(db *sql.DB, m *metrics.Metrics) *service.Service {
	var repos *repository.Repository
	if db != nil {
		repos = repository.NewRepository(db)
	}
	client := satellite.New(a.cfg.Satellite.BaseURL, a.cfg.Satellite.RequestTimeout, satellite.WithMetrics(m))
	return service.NewService(service.Deps{
		Satellite: client,
		Cache:     cache.NewStore(),
		Repos:     repos,
		Refresh: service.RefreshOptions{
			RetryLimit:    a.cfg.Retry.Limit,
			RetryDeadline: a.cfg.Retry.Deadline,
			CycleTimeout:  a.cfg.Poll.CycleTimeout,
		},
		Log:     a.log,
		Metrics: m,
	})
}
