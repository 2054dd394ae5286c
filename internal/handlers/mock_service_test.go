package handlers

import (
	"context"
	"sync"
	"time"

	"sensor_relay/internal/models"
	"sensor_relay/internal/satellite"
	"sensor_relay/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockRefresher struct {
	snap      models.Snapshot
	err       error
	pollCalls int
}

func (m *mockRefresher) Refresh(ctx context.Context) (models.Snapshot, error) {
	return m.snap, m.err
}

func (m *mockRefresher) Poll(ctx context.Context) (models.Snapshot, error) {
	m.pollCalls++
	return m.snap, m.err
}

type mockMonitoring struct {
	mu      sync.Mutex
	snap    models.Snapshot
	version uint64
}

func (m *mockMonitoring) Snapshot(ctx context.Context) models.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

func (m *mockMonitoring) Version() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.version
}

func (m *mockMonitoring) set(s models.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = s
	m.version++
}

type mockProvisioning struct {
	status        satellite.Status
	lastFrequency int
	calls         int
}

func (m *mockProvisioning) CreateSensor(ctx context.Context, frequency int) satellite.Status {
	m.calls++
	m.lastFrequency = frequency
	return m.status
}

type mockEventLog struct {
	resp     []models.RelayEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.RelayEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
