package service

import (
	"context"
	"fmt"
	"time"

	"sensor_relay/internal/logger"
	"sensor_relay/internal/models"
	"sensor_relay/internal/repository"
	"sensor_relay/internal/satellite"
)

type ProvisioningService struct {
	sat    SatelliteClient
	events repository.EventRepo
	log    *logger.Logger
	now    func() time.Time
}

func NewProvisioningService(sat SatelliteClient, events repository.EventRepo, log *logger.Logger) *ProvisioningService {
	if log == nil {
		log = logger.Nop()
	}
	return &ProvisioningService{sat: sat, events: events, log: log, now: time.Now}
}

// CreateSensor forwards the request once, without retry, and returns the
// satellite's status code as is.
func (s *ProvisioningService) CreateSensor(ctx context.Context, frequency int) satellite.Status {
	st := s.sat.CreateSensor(ctx, frequency)
	meta := map[string]any{"frequency": frequency, "status_code": st.Code}

	if st.Code >= 200 && st.Code < 300 {
		s.log.Infow("sensor_created", "frequency", frequency, "status_code", st.Code)
		appendEvent(ctx, s.events, s.log, models.EventSensorCreated,
			fmt.Sprintf("Sensor created with frequency %d", frequency), meta, s.now())
		return st
	}

	s.log.Warnw("sensor_create_failed", "frequency", frequency, "status_code", st.Code, "message", st.Message)
	if st.Message != "" {
		meta["message"] = st.Message
	}
	appendEvent(ctx, s.events, s.log, models.EventSensorCreateFailed,
		fmt.Sprintf("Satellite answered %d to create sensor", st.Code), meta, s.now())
	return st
}
