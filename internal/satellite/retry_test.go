package satellite

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sensor_relay/internal/models"
)

// scripted returns the given status codes in order, then repeats the last one.
func scripted(codes ...int) (Operation[string], *int) {
	calls := 0
	return func(ctx context.Context) (Result[string], error) {
		code := codes[len(codes)-1]
		if calls < len(codes) {
			code = codes[calls]
		}
		calls++
		return Result[string]{Status: Status{Code: code}, Payload: http.StatusText(code)}, nil
	}, &calls
}

func TestRetryUntilOK(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		codes        []int
		limit        int
		wantAttempts int
		wantPayload  string
		wantLimitErr bool
	}{
		{"first_try", []int{200}, 5, 1, "OK", false},
		{"succeeds_on_third", []int{503, 408, 200}, 5, 3, "OK", false},
		{"succeeds_on_last_allowed", []int{500, 500, 200}, 3, 3, "OK", false},
		{"unlimited_eventually_succeeds", []int{400, 400, 400, 400, 400, 400, 400, 200}, 0, 8, "OK", false},
		{"never_ok_limit_5", []int{400}, 5, 5, "", true},
		{"never_ok_limit_1", []int{404}, 1, 1, "", true},
		{"201_is_not_success", []int{201}, 2, 2, "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			op, calls := scripted(tc.codes...)

			out, err := RetryUntilOK(context.Background(), Policy{Limit: tc.limit}, op)

			assert.Equal(t, tc.wantAttempts, out.Attempts)
			assert.Equal(t, tc.wantAttempts, *calls)
			if tc.wantLimitErr {
				var exhausted *ExhaustedError
				require.True(t, errors.As(err, &exhausted), "err = %v", err)
				assert.Equal(t, tc.limit, exhausted.Limit)
				assert.Empty(t, out.Payload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantPayload, out.Payload)
		})
	}
}

func TestExhaustedError_Message(t *testing.T) {
	err := &ExhaustedError{Limit: 5}
	assert.Equal(t, "Try limit 5 reached", err.Error())
	assert.Equal(t, map[string]string{"Message": "Try limit 5 reached"}, err.Body())
}

func TestRetryUntilOK_SensorFiveAgainstSatellite(t *testing.T) {
	_, c := newFakeSatellite(t)

	out, err := RetryUntilOK(context.Background(), Policy{Limit: 5}, func(ctx context.Context) (Result[models.SensorReading], error) {
		return c.FetchSensorData(ctx, "5")
	})

	var exhausted *ExhaustedError
	require.True(t, errors.As(err, &exhausted))
	assert.Equal(t, 5, out.Attempts)
	assert.Equal(t, "Try limit 5 reached", err.Error())
	assert.Equal(t, http.StatusBadRequest, exhausted.Last.Code)
}

func TestRetryUntilOK_SensorOneAgainstSatellite(t *testing.T) {
	_, c := newFakeSatellite(t)

	out, err := RetryUntilOK(context.Background(), Policy{Limit: 5}, func(ctx context.Context) (Result[models.SensorReading], error) {
		return c.FetchSensorData(ctx, "1")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Attempts)
	assert.Equal(t, 1246, out.Payload.Frequency)
}

func TestRetryUntilOK_IDListWithLimit(t *testing.T) {
	_, c := newFakeSatellite(t)

	out, err := RetryUntilOK(context.Background(), Policy{Limit: 2}, c.FetchSensorIDs)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Attempts)
	assert.Len(t, out.Payload, 4)
}

func TestRetryUntilOK_ParseErrorStopsImmediately(t *testing.T) {
	calls := 0
	op := func(ctx context.Context) (Result[int], error) {
		calls++
		return Result[int]{Status: Status{Code: 200}}, &models.ParseError{Source: "sensor data", Err: errors.New("bad")}
	}

	out, err := RetryUntilOK(context.Background(), Policy{}, op)
	var perr *models.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, out.Attempts)
}

func TestRetryUntilOK_UnlimitedStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	op := func(ctx context.Context) (Result[int], error) {
		calls++
		if calls == 3 {
			cancel()
		}
		return Result[int]{Status: Status{Code: http.StatusServiceUnavailable}}, nil
	}

	out, err := RetryUntilOK(ctx, Policy{}, op)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, out.Attempts)
}

func TestRetryUntilOK_DeadlineBoundsUnlimitedLoop(t *testing.T) {
	op, _ := scripted(http.StatusServiceUnavailable)

	start := time.Now()
	_, err := RetryUntilOK(context.Background(), Policy{Deadline: 30 * time.Millisecond}, op)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRetryUntilOK_OnAttempt(t *testing.T) {
	op, _ := scripted(500, 200)
	var seen []int

	_, err := RetryUntilOK(context.Background(), Policy{
		OnAttempt: func(attempt int, st Status) { seen = append(seen, st.Code) },
	}, op)
	require.NoError(t, err)
	assert.Equal(t, []int{500, 200}, seen)
}
