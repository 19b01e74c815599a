// README: Completion simulator; runs matched trips to completion on a timer.
package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"ridedispatch/internal/config"
	"ridedispatch/internal/modules/driver"
	"ridedispatch/internal/modules/events"
	"ridedispatch/internal/modules/ride"
	"ridedispatch/internal/modules/zone"
	"ridedispatch/internal/observability"
)

// Completer drains matched requests into completed state and returns their
// drivers to availability. The row is locked only for the brief claim and the
// brief completion commit; the simulated trip itself runs on a timer keyed by
// the request id, so a long ride never blocks other transactions on the row.
type Completer struct {
	db      *pgxpool.Pool
	rides   *ride.Store
	drivers *driver.Store
	pub     EventPublisher
	cfg     config.DispatchConfig
	log     zerolog.Logger

	mu       sync.Mutex
	inFlight map[int64]struct{}
}

func NewCompleter(db *pgxpool.Pool, rides *ride.Store, drivers *driver.Store, pub EventPublisher, cfg config.DispatchConfig, log zerolog.Logger) *Completer {
	return &Completer{
		db:       db,
		rides:    rides,
		drivers:  drivers,
		pub:      pub,
		cfg:      cfg,
		log:      log,
		inFlight: make(map[int64]struct{}),
	}
}

// Run polls until ctx is cancelled. Each claimed trip is simulated on its own
// goroutine; the poll loop keeps claiming, so several trips can be in flight
// at once. Trips interrupted by shutdown stay matched in the store and are
// re-claimed (with a recomputed duration) after restart.
func (c *Completer) Run(ctx context.Context) {
	for ctx.Err() == nil {
		trip, err := c.claimNext(ctx)
		if err != nil {
			observability.WorkerErrorsTotal.WithLabelValues("completer").Inc()
			c.log.Error().Err(err).Msg("completion claim rolled back")
			sleep(ctx, c.cfg.CompleteIdleInterval)
			continue
		}
		if trip == nil {
			sleep(ctx, c.cfg.CompleteIdleInterval)
			continue
		}
		go c.simulate(ctx, trip)
	}
}

// claimNext locks the oldest matched trip this worker is not already
// simulating, records it in the in-flight set, and releases the lock. The
// final completion is guarded on status, so even a duplicate claim by another
// completer instance cannot double-complete the trip or free the driver twice.
func (c *Completer) claimNext(ctx context.Context) (*ride.MatchedTrip, error) {
	tx, err := c.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	trip, err := c.rides.ClaimOldestMatched(ctx, tx, c.inFlightIDs())
	if err != nil {
		return nil, err
	}
	if trip == nil {
		return nil, nil
	}
	c.track(trip.RequestID)
	return trip, nil
}

func (c *Completer) simulate(ctx context.Context, trip *ride.MatchedTrip) {
	defer c.untrack(trip.RequestID)
	observability.TripsInFlight.Inc()
	defer observability.TripsInFlight.Dec()

	duration := zone.ServiceDuration(trip.Source, trip.Destination)
	c.log.Info().
		Int64("request_id", trip.RequestID).
		Str("user_id", trip.UserID).
		Str("driver_id", trip.DriverID).
		Str("source", trip.Source).
		Str("destination", trip.Destination).
		Dur("duration", duration).
		Msg("trip in progress")

	t := time.NewTimer(duration)
	defer t.Stop()
	select {
	case <-ctx.Done():
		// Trip stays matched; a later claim recomputes the duration.
		return
	case <-t.C:
	}

	if err := c.finish(ctx, trip); err != nil {
		observability.WorkerErrorsTotal.WithLabelValues("completer").Inc()
		c.log.Error().Err(err).Int64("request_id", trip.RequestID).Msg("completion rolled back, trip stays matched")
	}
}

// finish commits the matched → completed transition together with freeing the
// driver. Both mutations share one transaction.
func (c *Completer) finish(ctx context.Context, trip *ride.MatchedTrip) error {
	tx, err := c.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	done, err := c.rides.CompleteIfMatchedTx(ctx, tx, trip.RequestID)
	if err != nil {
		return err
	}
	if !done {
		// Another worker finished it first; nothing to mutate.
		c.log.Debug().Int64("request_id", trip.RequestID).Msg("trip already completed elsewhere")
		return nil
	}
	if err := c.drivers.SetStatusTx(ctx, tx, trip.DriverRef, driver.StatusAvailable); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	observability.CompletionsTotal.Inc()
	c.log.Info().
		Int64("request_id", trip.RequestID).
		Str("user_id", trip.UserID).
		Str("driver_id", trip.DriverID).
		Msg("trip completed, driver available again")

	if c.pub != nil {
		if err := c.pub.Publish(ctx, events.Event{
			Type:      events.TypeCompleted,
			RequestID: trip.RequestID,
			UserID:    trip.UserID,
			DriverID:  trip.DriverID,
		}); err != nil {
			c.log.Warn().Err(err).Msg("completion event not published")
		}
	}
	return nil
}

func (c *Completer) track(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight[id] = struct{}{}
}

func (c *Completer) untrack(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, id)
}

func (c *Completer) inFlightIDs() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int64, 0, len(c.inFlight))
	for id := range c.inFlight {
		out = append(out, id)
	}
	return out
}
