// README: Matching engine; claims the oldest pending request and books the nearest driver.
package dispatch

import (
	"context"
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

// EventPublisher decouples the workers from the redis-backed publisher so
// tests can run without redis.
type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}

type matchOutcome int

const (
	outcomeMatched matchOutcome = iota
	outcomeNoRequest
	outcomeNoDriver
)

// Engine runs the pending → matched transition. All state lives in the
// store, so any number of engines may run concurrently and an engine may be
// restarted at any point without coordination.
type Engine struct {
	db      *pgxpool.Pool
	rides   *ride.Store
	drivers *driver.Store
	pub     EventPublisher
	cfg     config.DispatchConfig
	log     zerolog.Logger
}

func NewEngine(db *pgxpool.Pool, rides *ride.Store, drivers *driver.Store, pub EventPublisher, cfg config.DispatchConfig, log zerolog.Logger) *Engine {
	return &Engine{db: db, rides: rides, drivers: drivers, pub: pub, cfg: cfg, log: log}
}

// Run polls until ctx is cancelled. A failed iteration rolls back, is logged,
// and the loop continues: one bad iteration never terminates the worker.
// There is no maximum-retry cutoff; an unmatchable request stays pending and
// is retried indefinitely.
func (e *Engine) Run(ctx context.Context) {
	for ctx.Err() == nil {
		outcome, err := e.matchOnce(ctx)
		if err != nil {
			observability.WorkerErrorsTotal.WithLabelValues("matcher").Inc()
			e.log.Error().Err(err).Msg("match iteration rolled back")
			sleep(ctx, e.cfg.MatchIdleInterval)
			continue
		}
		switch outcome {
		case outcomeMatched:
			// Drain the backlog without pausing.
		case outcomeNoRequest:
			sleep(ctx, e.cfg.MatchIdleInterval)
		case outcomeNoDriver:
			sleep(ctx, e.cfg.MatchRetryInterval)
		}
	}
}

// matchOnce performs one claim-select-commit cycle. The request claim, the
// driver scan, and both row mutations share a single transaction: either the
// request/driver pair transitions together or nothing changes.
func (e *Engine) matchOnce(ctx context.Context) (matchOutcome, error) {
	tx, err := e.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	req, err := e.rides.ClaimOldestPending(ctx, tx)
	if err != nil {
		return 0, err
	}
	if req == nil {
		return outcomeNoRequest, nil
	}

	cands, err := e.drivers.ClaimAvailable(ctx, tx)
	if err != nil {
		return 0, err
	}
	best, dist, ok := nearest(cands, req.Source)
	if !ok {
		// Rollback releases the request lock without mutation, so the row
		// stays pending and visible to the next iteration.
		observability.UnservicedTotal.Inc()
		e.log.Warn().
			Int64("request_id", req.ID).
			Str("user_id", req.UserID).
			Msg("no driver available, leaving request pending")
		return outcomeNoDriver, nil
	}

	if err := e.drivers.SetStatusTx(ctx, tx, best.ID, driver.StatusOnTrip); err != nil {
		return 0, err
	}
	if err := e.rides.MarkMatchedTx(ctx, tx, req.ID, best.ID); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}

	observability.MatchesTotal.Inc()
	e.log.Info().
		Int64("request_id", req.ID).
		Str("user_id", req.UserID).
		Str("driver_id", best.DriverID).
		Str("driver_location", best.Location).
		Int("distance", dist).
		Msg("request matched")

	if e.pub != nil {
		if err := e.pub.Publish(ctx, events.Event{
			Type:      events.TypeMatched,
			RequestID: req.ID,
			UserID:    req.UserID,
			DriverID:  best.DriverID,
		}); err != nil {
			e.log.Warn().Err(err).Msg("match event not published")
		}
	}
	return outcomeMatched, nil
}

// nearest picks the claimed driver with the minimum zone distance to source.
// Equidistant drivers tie-break on the lowest primary key. A driver whose
// zone is unknown counts as infinitely far, which disqualifies it without
// failing the attempt; ok is false when no driver qualifies.
func nearest(cands []driver.Driver, source string) (best driver.Driver, dist int, ok bool) {
	for _, d := range cands {
		dd, err := zone.Distance(source, d.Location)
		if err != nil {
			continue
		}
		if !ok || dd < dist || (dd == dist && d.ID < best.ID) {
			best, dist, ok = d, dd, true
		}
	}
	return best, dist, ok
}

// sleep waits for d or until ctx is cancelled, whichever comes first.
func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
