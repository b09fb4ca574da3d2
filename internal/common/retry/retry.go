// Package retry implements a bounded retry policy with a fixed delay schedule.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy describes how often an operation is attempted and how long to
// wait between attempts. Delays[i] is slept after attempt i+1 fails; a
// schedule shorter than MaxAttempts-1 repeats its last entry.
type Policy struct {
	MaxAttempts int
	Delays      []time.Duration
}

// DefaultAIPolicy matches the external icebreaker provider contract:
// 3 attempts total with 2s and 4s waits between them.
var DefaultAIPolicy = Policy{
	MaxAttempts: 3,
	Delays:      []time.Duration{2 * time.Second, 4 * time.Second},
}

// Do runs op until it succeeds, attempts are exhausted, or ctx is done.
// The returned error wraps the last failure.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		err = op(ctx)
		if err == nil {
			return nil
		}

		if attempt == p.MaxAttempts {
			break
		}

		select {
		case <-time.After(p.delayFor(attempt)):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return fmt.Errorf("exhausted %d attempts: %w", p.MaxAttempts, err)
}

func (p Policy) delayFor(attempt int) time.Duration {
	if len(p.Delays) == 0 {
		return 0
	}
	if attempt-1 < len(p.Delays) {
		return p.Delays[attempt-1]
	}
	return p.Delays[len(p.Delays)-1]
}
