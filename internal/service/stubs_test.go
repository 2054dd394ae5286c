package service

import (
	"context"
	"net/http"
	"sync"
	"time"

	"sensor_relay/internal/models"
	"sensor_relay/internal/satellite"
)

// stubSatellite scripts satellite answers per sensor id. A sensor listed in
// failFor answers that status on every call; sensors in parseErr return a
// decode error.
type stubSatellite struct {
	mu sync.Mutex

	ids       []models.SensorID
	idsStatus []int // consumed one per FetchSensorIDs call; empty means 200
	readings  map[models.SensorID]models.SensorReading
	failFor   map[models.SensorID]int
	parseErr  map[models.SensorID]bool
	createSt  satellite.Status

	idsCalls    int
	dataCalls   map[models.SensorID]int
	createCalls []int
	block       chan struct{}
}

func newStubSatellite() *stubSatellite {
	ids := []models.SensorID{"1", "2", "3", "4"}
	readings := make(map[models.SensorID]models.SensorReading, len(ids))
	for i, id := range ids {
		readings[id] = models.SensorReading{
			ID:          id,
			Frequency:   1246 + i,
			Status:      models.StatusActive,
			Measurement: 46.634863434162725 + float64(i),
		}
	}
	return &stubSatellite{
		ids:       ids,
		readings:  readings,
		failFor:   map[models.SensorID]int{},
		parseErr:  map[models.SensorID]bool{},
		dataCalls: map[models.SensorID]int{},
		createSt:  satellite.Status{Code: http.StatusOK},
	}
}

func (s *stubSatellite) FetchSensorIDs(ctx context.Context) (satellite.Result[[]models.SensorID], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idsCalls++
	if len(s.idsStatus) > 0 {
		code := s.idsStatus[0]
		s.idsStatus = s.idsStatus[1:]
		if code != http.StatusOK {
			return satellite.Result[[]models.SensorID]{Status: satellite.Status{Code: code, Message: "busy"}}, nil
		}
	}
	ids := append([]models.SensorID(nil), s.ids...)
	return satellite.Result[[]models.SensorID]{Status: satellite.Status{Code: http.StatusOK}, Payload: ids}, nil
}

func (s *stubSatellite) FetchSensorData(ctx context.Context, id models.SensorID) (satellite.Result[models.SensorReading], error) {
	s.mu.Lock()
	s.dataCalls[id]++
	block := s.block
	code, failing := s.failFor[id]
	parse := s.parseErr[id]
	reading := s.readings[id]
	s.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return satellite.Result[models.SensorReading]{Status: satellite.Status{Code: http.StatusRequestTimeout}}, nil
		}
	}
	if parse {
		return satellite.Result[models.SensorReading]{Status: satellite.Status{Code: http.StatusOK}},
			&models.ParseError{Source: "sensor data", Field: "frequency"}
	}
	if failing {
		return satellite.Result[models.SensorReading]{Status: satellite.Status{Code: code, Message: "{}"}}, nil
	}
	return satellite.Result[models.SensorReading]{Status: satellite.Status{Code: http.StatusOK}, Payload: reading}, nil
}

func (s *stubSatellite) CreateSensor(ctx context.Context, frequency int) satellite.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.createCalls = append(s.createCalls, frequency)
	return s.createSt
}

func (s *stubSatellite) dataCallsFor(id models.SensorID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataCalls[id]
}

// recordingEventRepo keeps appended events in memory.
type recordingEventRepo struct {
	mu     sync.Mutex
	events []models.RelayEvent
	err    error
}

func (r *recordingEventRepo) Append(ctx context.Context, e models.RelayEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *recordingEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.RelayEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.RelayEvent
	for _, e := range r.events {
		if typ == "" || e.Type == typ {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *recordingEventRepo) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
