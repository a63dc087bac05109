// Package analytics is the fire-and-forget event sink for the donation flow.
// Emitting an event must never block or fail the payment path: every sink
// error is logged and swallowed.
package analytics

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event names emitted by the donation flow.
const (
	EventPaymentInitiated  = "payment_initiated"
	EventPaymentSuccess    = "payment_success"
	EventDonationSubmitted = "donation_submitted"
	EventDonationSuccess   = "donation_success"
	EventDonationError     = "donation_error"
	EventDonationCancelled = "donation_cancelled"
)

// Tracker records named events with string fields.
type Tracker interface {
	Emit(name string, fields map[string]string)
}

// StreamName is the Redis stream analytics events are appended to.
const StreamName = "analytics:events"

// RedisTracker appends events to a Redis stream. A nil client makes every
// Emit a no-op, mirroring how the rest of the app treats Redis as optional.
type RedisTracker struct {
	rdb *redis.Client
}

func NewRedisTracker(rdb *redis.Client) *RedisTracker {
	return &RedisTracker{rdb: rdb}
}

func (t *RedisTracker) Emit(name string, fields map[string]string) {
	if t.rdb == nil {
		return
	}

	values := map[string]interface{}{
		"event": name,
		"at":    time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range fields {
		values[k] = v
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := t.rdb.XAdd(ctx, &redis.XAddArgs{
			Stream: StreamName,
			MaxLen: 10000,
			Approx: true,
			Values: values,
		}).Err(); err != nil {
			slog.Warn("Failed to emit analytics event", "event", name, "error", err)
		}
	}()
}

// Nop discards every event. Used when no sink is configured.
type Nop struct{}

func (Nop) Emit(string, map[string]string) {}
