package service

import (
	"context"
	"testing"
	"time"

	"sensor_relay/internal/cache"
	"sensor_relay/internal/models"
)

func TestMonitoringService_Snapshot(t *testing.T) {
	t.Parallel()

	refreshed := time.Date(2025, time.May, 2, 8, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		install    *models.Snapshot
		assertFunc func(t *testing.T, got models.Snapshot)
	}{
		{
			name: "baseline before first refresh",
			assertFunc: func(t *testing.T, got models.Snapshot) {
				if !got.IsZero() {
					t.Errorf("expected never-refreshed snapshot, got %+v", got)
				}
				if got.Readings == nil || len(got.Readings) != 0 {
					t.Errorf("expected empty non-nil readings, got %#v", got.Readings)
				}
			},
		},
		{
			name: "returns installed snapshot",
			install: &models.Snapshot{
				Readings:    []models.SensorReading{{ID: "1", Frequency: 1246, Status: models.StatusActive}},
				RefreshedAt: refreshed,
			},
			assertFunc: func(t *testing.T, got models.Snapshot) {
				if len(got.Readings) != 1 || got.Readings[0].ID != "1" {
					t.Errorf("unexpected readings: %+v", got.Readings)
				}
				if !got.RefreshedAt.Equal(refreshed) {
					t.Errorf("RefreshedAt = %v; want %v", got.RefreshedAt, refreshed)
				}
			},
		},
		{
			name:    "refreshed with zero sensors still renders as empty list",
			install: &models.Snapshot{RefreshedAt: refreshed},
			assertFunc: func(t *testing.T, got models.Snapshot) {
				if got.IsZero() {
					t.Errorf("expected refreshed snapshot")
				}
				if got.Readings == nil {
					t.Errorf("expected non-nil readings")
				}
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			store := cache.NewStore()
			if tc.install != nil {
				store.Swap(*tc.install)
			}
			svc := NewMonitoringService(store)
			tc.assertFunc(t, svc.Snapshot(context.Background()))
		})
	}
}

func TestMonitoringService_NilStore(t *testing.T) {
	t.Parallel()

	got := NewMonitoringService(nil).Snapshot(context.Background())
	if got.Readings == nil || !got.IsZero() {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestMonitoringService_Version(t *testing.T) {
	t.Parallel()

	store := cache.NewStore()
	svc := NewMonitoringService(store)
	if v := svc.Version(); v != 0 {
		t.Fatalf("Version before refresh = %d; want 0", v)
	}
	store.Swap(models.Snapshot{RefreshedAt: time.Now()})
	store.Swap(models.Snapshot{RefreshedAt: time.Now()})
	if v := svc.Version(); v != 2 {
		t.Fatalf("Version = %d; want 2", v)
	}
	if v := NewMonitoringService(nil).Version(); v != 0 {
		t.Fatalf("nil store Version = %d; want 0", v)
	}
}
