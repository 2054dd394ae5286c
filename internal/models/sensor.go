package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Known sensor statuses reported by the satellite.
const (
	StatusActive   SensorStatus = "ACTIVE"
	StatusInactive SensorStatus = "INACTIVE"
)

// SensorStatus is the satellite-owned status of a sensor (ACTIVE | INACTIVE | ...).
type SensorStatus string

// SensorID identifies a sensor on the satellite. It keeps the JSON form the
// satellite used: integer ids hold their digits, string ids hold their quoted
// JSON text, so both are written back exactly as they were received.
type SensorID string

// StringSensorID returns the id the satellite would send as the JSON string s.
func StringSensorID(s string) SensorID {
	b, _ := json.Marshal(s)
	return SensorID(b)
}

func (id SensorID) quoted() bool { return len(id) > 0 && id[0] == '"' }

// String returns the bare id, as used in the sensor URL path.
func (id SensorID) String() string {
	if id.quoted() {
		var s string
		if err := json.Unmarshal([]byte(id), &s); err == nil {
			return s
		}
	}
	return string(id)
}

// UnmarshalJSON accepts an integer or a non-empty string.
func (id *SensorID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			return errors.New("sensor id is empty")
		}
		*id = StringSensorID(s)
		return nil
	}
	if _, err := strconv.ParseInt(string(b), 10, 64); err != nil {
		return fmt.Errorf("sensor id must be an integer or a string, got %s", b)
	}
	*id = SensorID(b)
	return nil
}

func (id SensorID) MarshalJSON() ([]byte, error) {
	if id.quoted() && json.Valid([]byte(id)) {
		return []byte(id), nil
	}
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// SensorReading is one sensor record as served by the satellite, stamped with
// the local capture time once it has been fetched.
type SensorReading struct {
	ID          SensorID     `json:"id"`
	Frequency   int          `json:"frequency"`
	Status      SensorStatus `json:"status"`
	Measurement float64      `json:"measurement"`
	Timestamp   time.Time    `json:"timestamp,omitzero"`
}

// SensorFailure records a sensor whose fetch gave up during a refresh.
type SensorFailure struct {
	ID       SensorID `json:"id"`
	Attempts int      `json:"attempts"`
	Reason   string   `json:"reason"`
}

// Snapshot is the output of one completed refresh cycle.
// The zero value means no refresh has completed yet.
type Snapshot struct {
	Readings    []SensorReading `json:"readings"`
	Failures    []SensorFailure `json:"failures,omitempty"`
	RefreshedAt time.Time       `json:"refreshed_at,omitzero"`
}

// IsZero reports whether s is the never-refreshed state.
func (s Snapshot) IsZero() bool {
	return s.RefreshedAt.IsZero()
}

var errMissingField = errors.New("missing required field")

// ParseError is returned when a satellite payload does not match the expected shape.
type ParseError struct {
	Source string
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("parse %s: field %q: %v", e.Source, e.Field, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// rawReading mirrors SensorReading with pointers so missing fields can be told apart from zero values.
type rawReading struct {
	ID          *SensorID     `json:"id"`
	Frequency   *int          `json:"frequency"`
	Status      *SensorStatus `json:"status"`
	Measurement *float64      `json:"measurement"`
}

// DecodeSensorReading validates and decodes a single sensor payload.
func DecodeSensorReading(data []byte) (SensorReading, error) {
	const source = "sensor data"

	var raw rawReading
	if err := json.Unmarshal(data, &raw); err != nil {
		return SensorReading{}, newParseError(source, err)
	}
	switch {
	case raw.ID == nil:
		return SensorReading{}, &ParseError{Source: source, Field: "id", Err: errMissingField}
	case raw.Frequency == nil:
		return SensorReading{}, &ParseError{Source: source, Field: "frequency", Err: errMissingField}
	case raw.Status == nil || *raw.Status == "":
		return SensorReading{}, &ParseError{Source: source, Field: "status", Err: errMissingField}
	case raw.Measurement == nil:
		return SensorReading{}, &ParseError{Source: source, Field: "measurement", Err: errMissingField}
	}
	return SensorReading{
		ID:          *raw.ID,
		Frequency:   *raw.Frequency,
		Status:      *raw.Status,
		Measurement: *raw.Measurement,
	}, nil
}

// DecodeSensorIDs decodes the satellite's sensor id list.
func DecodeSensorIDs(data []byte) ([]SensorID, error) {
	var ids []SensorID
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, newParseError("sensor id list", err)
	}
	return ids, nil
}

func newParseError(source string, err error) *ParseError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &ParseError{Source: source, Field: typeErr.Field, Err: err}
	}
	return &ParseError{Source: source, Err: err}
}
