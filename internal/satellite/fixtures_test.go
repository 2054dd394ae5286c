package satellite

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// sensorFixtures mirror what the satellite serves for sensors 1..4.
var sensorFixtures = map[string]string{
	"1": `{"id": 1, "frequency": 1246, "status": "ACTIVE", "measurement": 46.634863434162725}`,
	"2": `{"id": 2, "frequency": 1247, "status": "ACTIVE", "measurement": 47.634863434162725}`,
	"3": `{"id": 3, "frequency": 1248, "status": "ACTIVE", "measurement": 48.634863434162725}`,
	"4": `{"id": 4, "frequency": 1249, "status": "ACTIVE", "measurement": 49.634863434162725}`,
}

// fakeSatellite is an in-process satellite. Sensor 5 always answers 400.
type fakeSatellite struct {
	mu          sync.Mutex
	created     []int
	createCode  int
	idsRequests int
}

func (f *fakeSatellite) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sensor-ids", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.idsRequests++
		f.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[1, 2, 3, 4]`)
	})
	mux.HandleFunc("GET /sensors/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "5" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{}`)
			return
		}
		body, ok := sensorFixtures[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	})
	mux.HandleFunc("POST /sensors", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Frequency int `json:"frequency"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.created = append(f.created, req.Frequency)
		code := f.createCode
		f.mu.Unlock()
		if code == 0 {
			code = http.StatusOK
		}
		w.WriteHeader(code)
		_, _ = io.WriteString(w, `"OK"`)
	})
	return mux
}

func newFakeSatellite(t *testing.T) (*fakeSatellite, *Client) {
	t.Helper()
	fake := &fakeSatellite{}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)
	return fake, New(srv.URL, time.Second)
}

// slowServer never answers before the client gives up.
func slowServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// deadURL returns the address of a server that is no longer listening.
func deadURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	u := srv.URL
	srv.Close()
	return u
}
