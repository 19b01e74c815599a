// README: Best-effort ride event publishing over redis pub/sub.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Channel carries every ride lifecycle event. External collaborators (status
// dashboards, the event service) subscribe here; the dispatch core never
// depends on anyone listening.
const Channel = "ridedispatch:events"

const (
	TypeMatched   = "ride_matched"
	TypeCompleted = "ride_completed"
)

type Event struct {
	Type       string    `json:"type"`
	RequestID  int64     `json:"request_id"`
	UserID     string    `json:"user_id"`
	DriverID   string    `json:"driver_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher struct {
	redis *redis.Client
}

func NewPublisher(redis *redis.Client) *Publisher {
	return &Publisher{redis: redis}
}

// Publish emits an event. Callers treat failures as log-and-continue; an
// event must never abort the transaction that produced it.
func (p *Publisher) Publish(ctx context.Context, e Event) error {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.redis.Publish(ctx, Channel, b).Err()
}
