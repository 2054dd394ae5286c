package satellite

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sensor_relay/internal/metrics"
	"sensor_relay/internal/models"
)

// Endpoint labels used for metrics and logs.
const (
	EndpointSensorIDs    = "sensor-ids"
	EndpointSensors      = "sensors"
	EndpointCreateSensor = "create-sensor"
)

const (
	msgTimeoutSensorList = "Timeout while fetching sensor list"
	msgTimeoutSensorData = "Timeout while fetching sensor data"
	msgTimeoutCreate     = "Timeout while creating sensor"
	msgTransportPrefix   = "Error while retrieving data: \n"

	maxBodyBytes = 1 << 20 // 1 MB
)

// HTTPClient is the subset of *http.Client the satellite client needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Status is the normalized outcome of one satellite call. Transport failures
// are folded in as 408 (timeout) or 503 (anything else).
type Status struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// OK reports whether the call counts as a success. Only 200 does.
func (s Status) OK() bool { return s.Code == http.StatusOK }

// Result is a Status plus the decoded payload of a successful call.
type Result[T any] struct {
	Status
	Payload T
}

// Client talks to the satellite service.
type Client struct {
	baseURL string
	http    HTTPClient
	metrics *metrics.Metrics
}

type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(hc HTTPClient) Option {
	return func(c *Client) { c.http = hc }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New returns a client for baseURL where every request is bounded by timeout.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchSensorIDs lists the sensor ids known to the satellite.
func (c *Client) FetchSensorIDs(ctx context.Context) (Result[[]models.SensorID], error) {
	st, body := c.get(ctx, EndpointSensorIDs, "/sensor-ids", msgTimeoutSensorList)
	res := Result[[]models.SensorID]{Status: st}
	if !st.OK() {
		return res, nil
	}
	ids, err := models.DecodeSensorIDs(body)
	if err != nil {
		return res, err
	}
	res.Payload = ids
	return res, nil
}

// FetchSensorData returns the current reading of one sensor.
func (c *Client) FetchSensorData(ctx context.Context, id models.SensorID) (Result[models.SensorReading], error) {
	path := "/sensors/" + url.PathEscape(id.String())
	st, body := c.get(ctx, EndpointSensors, path, msgTimeoutSensorData)
	res := Result[models.SensorReading]{Status: st}
	if !st.OK() {
		return res, nil
	}
	reading, err := models.DecodeSensorReading(body)
	if err != nil {
		return res, err
	}
	res.Payload = reading
	return res, nil
}

type createSensorRequest struct {
	Frequency int `json:"frequency"`
}

// CreateSensor asks the satellite to create a sensor sampling at frequency.
// The satellite's status code is returned verbatim; its body is discarded.
func (c *Client) CreateSensor(ctx context.Context, frequency int) Status {
	payload, err := json.Marshal(createSensorRequest{Frequency: frequency})
	if err != nil {
		return c.fail(EndpointCreateSensor, err, msgTimeoutCreate)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sensors", bytes.NewReader(payload))
	if err != nil {
		return c.fail(EndpointCreateSensor, err, msgTimeoutCreate)
	}
	req.Header.Set("Content-Type", "application/json")
	st, _ := c.do(EndpointCreateSensor, req, msgTimeoutCreate)
	return st
}

func (c *Client) get(ctx context.Context, endpoint, path, timeoutMsg string) (Status, []byte) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return c.fail(endpoint, err, timeoutMsg), nil
	}
	req.Header.Set("Accept", "application/json")
	return c.do(endpoint, req, timeoutMsg)
}

func (c *Client) do(endpoint string, req *http.Request, timeoutMsg string) (Status, []byte) {
	resp, err := c.http.Do(req)
	if err != nil {
		return c.fail(endpoint, err, timeoutMsg), nil
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return c.fail(endpoint, err, timeoutMsg), nil
	}

	st := Status{Code: resp.StatusCode}
	if !st.OK() {
		st.Message = strings.TrimSpace(string(body))
	}
	c.metrics.SatelliteRequest(endpoint, st.Code)
	return st, body
}

func (c *Client) fail(endpoint string, err error, timeoutMsg string) Status {
	st := failureStatus(err, timeoutMsg)
	c.metrics.SatelliteRequest(endpoint, st.Code)
	return st
}

func failureStatus(err error, timeoutMsg string) Status {
	if isTimeout(err) {
		return Status{Code: http.StatusRequestTimeout, Message: timeoutMsg}
	}
	return Status{Code: http.StatusServiceUnavailable, Message: msgTransportPrefix + err.Error()}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
