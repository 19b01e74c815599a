// README: Request store backed by PostgreSQL; skip-locked claims for the dispatch loop.
package ride

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("request not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Create inserts a pending request and returns its store-assigned id.
func (s *Store) Create(ctx context.Context, r *Request) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
        INSERT INTO requests (user_id, source, destination, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id`,
		r.UserID, r.Source, r.Destination, string(StatusPending),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*Request, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, user_id, source, destination, status,
               created_at, matched_at, completed_at, driver_ref
        FROM requests
        WHERE id = $1`, id,
	)
	var r Request
	err := row.Scan(
		&r.ID, &r.UserID, &r.Source, &r.Destination, &r.Status,
		&r.CreatedAt, &r.MatchedAt, &r.CompletedAt, &r.DriverRef,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ClaimOldestPending locks the single oldest pending request within tx, FIFO
// by creation time. A row locked by a concurrent matcher is skipped, so the
// next-oldest unlocked candidate is taken instead. Returns nil when no
// unlocked pending row exists.
func (s *Store) ClaimOldestPending(ctx context.Context, tx pgx.Tx) (*Request, error) {
	row := tx.QueryRow(ctx, `
        SELECT id, user_id, source, destination, status,
               created_at, matched_at, completed_at, driver_ref
        FROM requests
        WHERE status = $1
        ORDER BY created_at ASC
        LIMIT 1
        FOR UPDATE SKIP LOCKED`, string(StatusPending),
	)
	var r Request
	err := row.Scan(
		&r.ID, &r.UserID, &r.Source, &r.Destination, &r.Status,
		&r.CreatedAt, &r.MatchedAt, &r.CompletedAt, &r.DriverRef,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// MarkMatchedTx transitions a pending request to matched inside the caller's
// transaction, stamping matched_at and linking the winning driver.
func (s *Store) MarkMatchedTx(ctx context.Context, tx pgx.Tx, id, driverRef int64) error {
	tag, err := tx.Exec(ctx, `
        UPDATE requests
        SET status = $1, matched_at = NOW(), driver_ref = $2
        WHERE id = $3 AND status = $4`,
		string(StatusMatched), driverRef, id, string(StatusPending),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrNotFound
	}
	return nil
}

// ClaimOldestMatched locks the oldest matched request not in excluding, FIFO
// by match time, joined to its driver. Same skip-on-contention semantics as
// ClaimOldestPending. Returns nil when nothing is claimable.
func (s *Store) ClaimOldestMatched(ctx context.Context, tx pgx.Tx, excluding []int64) (*MatchedTrip, error) {
	if excluding == nil {
		excluding = []int64{}
	}
	row := tx.QueryRow(ctx, `
        SELECT r.id, r.user_id, r.source, r.destination, r.driver_ref, d.driver_id, r.matched_at
        FROM requests r
        JOIN drivers d ON r.driver_ref = d.id
        WHERE r.status = $1 AND NOT (r.id = ANY($2))
        ORDER BY r.matched_at ASC
        LIMIT 1
        FOR UPDATE OF r SKIP LOCKED`, string(StatusMatched), excluding,
	)
	var t MatchedTrip
	err := row.Scan(&t.RequestID, &t.UserID, &t.Source, &t.Destination, &t.DriverRef, &t.DriverID, &t.MatchedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CompleteIfMatchedTx finishes a trip, guarded on the row still being matched
// so a duplicate completion attempt becomes a no-op. Reports whether the row
// transitioned.
func (s *Store) CompleteIfMatchedTx(ctx context.Context, tx pgx.Tx, id int64) (bool, error) {
	tag, err := tx.Exec(ctx, `
        UPDATE requests
        SET status = $1, completed_at = NOW()
        WHERE id = $2 AND status = $3`,
		string(StatusCompleted), id, string(StatusMatched),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// CountByStatus supports the status-polling API and tests.
func (s *Store) CountByStatus(ctx context.Context, status Status) (int, error) {
	var n int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM requests WHERE status = $1`, string(status),
	).Scan(&n)
	return n, err
}
