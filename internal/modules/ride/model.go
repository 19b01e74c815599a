// README: Ride request record and lifecycle statuses.
package ride

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusMatched   Status = "matched"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Request mirrors a row of the requests table. A request only ever moves
// forward: pending → matched → completed. The matching engine owns the first
// transition, the completion simulator the second; nothing in this repo moves
// a request backward or deletes it.
type Request struct {
	ID          int64
	UserID      string
	Source      string
	Destination string
	Status      Status
	CreatedAt   time.Time
	MatchedAt   *time.Time
	CompletedAt *time.Time
	DriverRef   *int64
}

// MatchedTrip is the lock-scoped view the completion simulator works from: a
// matched request joined to its assigned driver.
type MatchedTrip struct {
	RequestID   int64
	UserID      string
	Source      string
	Destination string
	DriverRef   int64
	DriverID    string
	MatchedAt   time.Time
}
