package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type satelliteStub struct {
	mu         sync.Mutex
	created    []int
	createCode int
}

func newSatelliteStub(t *testing.T) (*satelliteStub, string) {
	t.Helper()
	stub := &satelliteStub{createCode: http.StatusOK}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sensor-ids", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[1, 2]`)
	})
	mux.HandleFunc("GET /sensors/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id": 1, "frequency": 1246, "status": "ACTIVE", "measurement": 46.5}`)
	})
	mux.HandleFunc("GET /sensors/2", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{}`)
	})
	mux.HandleFunc("POST /sensors", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Frequency int `json:"frequency"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		stub.mu.Lock()
		stub.created = append(stub.created, req.Frequency)
		code := stub.createCode
		stub.mu.Unlock()
		w.WriteHeader(code)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return stub, srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestPollCommand_PrintsTableAndSkippedSensors(t *testing.T) {
	_, url := newSatelliteStub(t)
	t.Setenv("SATRELAY_SATELLITE_BASE_URL", url)
	t.Setenv("SATRELAY_RETRY_LIMIT", "3")

	out, err := run(t, "poll")
	require.NoError(t, err)

	assert.Contains(t, out, "1246")
	assert.Contains(t, out, "ACTIVE")
	assert.Contains(t, out, "sensor 2 skipped after 3 attempts: Try limit 3 reached")
	assert.Contains(t, out, "1 readings cached")
}

func TestCreateSensorCommand(t *testing.T) {
	stub, url := newSatelliteStub(t)
	t.Setenv("SATRELAY_SATELLITE_BASE_URL", url)

	out, err := run(t, "create-sensor", "--frequency", "1245")
	require.NoError(t, err)
	assert.Equal(t, "200", strings.TrimSpace(out))
	assert.Equal(t, []int{1245}, stub.created)

	stub.mu.Lock()
	stub.createCode = http.StatusConflict
	stub.mu.Unlock()

	_, err = run(t, "create-sensor", "-f", "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
}

func TestCreateSensorCommand_RequiresFrequency(t *testing.T) {
	_, url := newSatelliteStub(t)
	t.Setenv("SATRELAY_SATELLITE_BASE_URL", url)

	_, err := run(t, "create-sensor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "frequency")
}

func TestInvalidConfigIsReported(t *testing.T) {
	t.Setenv("SATRELAY_SATELLITE_BASE_URL", "not a url")

	_, err := run(t, "poll")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "satellite.base_url")
}
