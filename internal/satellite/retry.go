package satellite

import (
	"context"
	"fmt"
	"time"
)

// Operation is a single attempt of a satellite call.
type Operation[T any] func(ctx context.Context) (Result[T], error)

// Policy bounds a retry loop. Limit 0 retries until success; Deadline 0
// leaves the loop bounded only by the caller's context.
type Policy struct {
	Limit    int
	Deadline time.Duration
	// OnAttempt, when set, is called after every attempt with its 1-based ordinal.
	OnAttempt func(attempt int, st Status)
}

// Outcome is what a successful loop produced.
type Outcome[T any] struct {
	Attempts int
	Payload  T
	Last     Status
}

// ExhaustedError reports that Limit attempts ran without a 200.
type ExhaustedError struct {
	Limit int
	Last  Status
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("Try limit %d reached", e.Limit)
}

// Body renders the error the way the relay reports it to HTTP callers.
func (e *ExhaustedError) Body() map[string]string {
	return map[string]string{"Message": e.Error()}
}

// RetryUntilOK calls op until it reports status 200, the attempt limit is
// reached, or ctx is done. Attempts follow each other without delay.
// A non-nil error from op (an undecodable payload) stops the loop at once.
func RetryUntilOK[T any](ctx context.Context, p Policy, op Operation[T]) (Outcome[T], error) {
	if p.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Deadline)
		defer cancel()
	}

	var out Outcome[T]
	for {
		if err := ctx.Err(); err != nil {
			return out, fmt.Errorf("retry stopped after %d attempts: %w", out.Attempts, err)
		}

		res, err := op(ctx)
		out.Attempts++
		out.Last = res.Status
		if err != nil {
			return out, err
		}
		if p.OnAttempt != nil {
			p.OnAttempt(out.Attempts, res.Status)
		}
		if res.OK() {
			out.Payload = res.Payload
			return out, nil
		}
		if p.Limit > 0 && out.Attempts >= p.Limit {
			return out, &ExhaustedError{Limit: p.Limit, Last: res.Status}
		}
	}
}
