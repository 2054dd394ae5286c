package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"sensor_relay/internal/models"
	"sensor_relay/internal/satellite"

	"github.com/gin-gonic/gin"
)

// Response bodies clients match on.
const (
	statusOK        = "ok"
	msgHello        = "Hello world!"
	msgPollOK       = "OK"
	errFrequency    = `Field "frequency" must be a valid integer`
	errNoSensorData = "Unable to return sensor data, no JSON data found for sensors in all sensors"
	errPollFailed   = "failed to refresh sensor data"

	maxCreateBody = 1 << 16
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// CreateSensorRequest is the payload of POST /create-sensor.
type CreateSensorRequest struct {
	// Sensor frequency; must be a JSON integer.
	Frequency int `json:"frequency" example:"1245"`
}

// parseFrequency accepts only a JSON integer under "frequency".
// Strings, floats, null and missing fields are rejected.
func parseFrequency(body []byte) (int, bool) {
	var req map[string]json.RawMessage
	if err := json.Unmarshal(body, &req); err != nil {
		return 0, false
	}
	raw, ok := req["frequency"]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(string(bytes.TrimSpace(raw)))
	if err != nil {
		return 0, false
	}
	return n, true
}

// @Summary      Hello world
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string  "Hello world!"
// @Router       / [get]
func (h *Handler) helloWorld(c *gin.Context) {
	c.String(http.StatusOK, msgHello)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Create sensor
// @Description  Forwards the request to the satellite once and returns the satellite's status code as the body.
// @Tags         sensors
// @Accept       json
// @Produce      json
// @Param        body  body      CreateSensorRequest  true  "Sensor to create"
// @Success      200   {integer}  integer  "satellite status code"
// @Failure      400   {string}   string   "frequency missing or not an integer"
// @Router       /create-sensor [post]
func (h *Handler) createSensor(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxCreateBody))
	if err != nil {
		c.String(http.StatusBadRequest, errFrequency)
		return
	}
	frequency, ok := parseFrequency(body)
	if !ok {
		c.String(http.StatusBadRequest, errFrequency)
		return
	}

	st := h.services.Provisioning.CreateSensor(c.Request.Context(), frequency)
	c.JSON(http.StatusOK, st.Code)
}

// @Summary      Refresh sensor cache
// @Description  Runs one refresh cycle against the satellite and installs the result.
// @Tags         sensors
// @Produce      plain
// @Success      200  {string}  string  "OK"
// @Failure      404  {string}  string  "no JSON data found"
// @Failure      500  {object}  map[string]string  "Message (retry limit reached) or error"
// @Router       /poll [get]
func (h *Handler) poll(c *gin.Context) {
	_, err := h.services.Refresher.Poll(c.Request.Context())
	if err != nil {
		var perr *models.ParseError
		if errors.As(err, &perr) {
			if h.log != nil {
				h.log.Warnw("poll_parse_failed", "err", err, "field", perr.Field)
			}
			c.String(http.StatusNotFound, errNoSensorData)
			return
		}
		var exhausted *satellite.ExhaustedError
		if errors.As(err, &exhausted) {
			if h.log != nil {
				h.log.Errorw("poll_failed", "err", err, "limit", exhausted.Limit)
			}
			c.JSON(http.StatusInternalServerError, exhausted.Body())
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errPollFailed, "poll_failed", err)
		return
	}
	c.String(http.StatusOK, msgPollOK)
}

// @Summary      All cached sensor readings
// @Description  Readings of the last completed refresh, in satellite order. Empty list before the first refresh.
// @Tags         sensors
// @Produce      json
// @Success      200  {array}  models.SensorReading
// @Router       /all-sensors [get]
func (h *Handler) allSensors(c *gin.Context) {
	snap := h.services.Monitoring.Snapshot(c.Request.Context())
	readings := snap.Readings
	if readings == nil {
		readings = []models.SensorReading{}
	}
	c.JSON(http.StatusOK, readings)
}
