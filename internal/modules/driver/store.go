// README: Driver store backed by PostgreSQL; claim methods are transaction-scoped.
package driver

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("driver not found")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Upsert registers a driver or refreshes an existing registration keyed by the
// external driver_id. Returns the store-assigned primary key.
func (s *Store) Upsert(ctx context.Context, d *Driver) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
        INSERT INTO drivers (driver_id, name, status, location)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (driver_id) DO UPDATE
        SET name = EXCLUDED.name,
            status = EXCLUDED.status,
            location = EXCLUDED.location
        RETURNING id`,
		d.DriverID, d.Name, string(d.Status), d.Location,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) GetByDriverID(ctx context.Context, driverID string) (*Driver, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, driver_id, name, status, location
        FROM drivers
        WHERE driver_id = $1`, driverID,
	)
	var d Driver
	err := row.Scan(&d.ID, &d.DriverID, &d.Name, &d.Status, &d.Location)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) ListByStatus(ctx context.Context, status Status) ([]Driver, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, driver_id, name, status, location
        FROM drivers
        WHERE status = $1
        ORDER BY id`, string(status),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Driver
	for rows.Next() {
		var d Driver
		if err := rows.Scan(&d.ID, &d.DriverID, &d.Name, &d.Status, &d.Location); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ClaimAvailable locks every currently lockable available driver within tx.
// Rows locked by a concurrent claimant are skipped, not waited on, so two
// matching workers never contend for the same driver. Ordered by primary key
// so the equidistant tie-break downstream is deterministic.
func (s *Store) ClaimAvailable(ctx context.Context, tx pgx.Tx) ([]Driver, error) {
	rows, err := tx.Query(ctx, `
        SELECT id, driver_id, name, status, location
        FROM drivers
        WHERE status = $1
        ORDER BY id
        FOR UPDATE SKIP LOCKED`, string(StatusAvailable),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Driver
	for rows.Next() {
		var d Driver
		if err := rows.Scan(&d.ID, &d.DriverID, &d.Name, &d.Status, &d.Location); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// SetStatusTx transitions a driver's availability inside the caller's
// transaction, so the paired request mutation commits or rolls back with it.
func (s *Store) SetStatusTx(ctx context.Context, tx pgx.Tx, id int64, status Status) error {
	tag, err := tx.Exec(ctx, `UPDATE drivers SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrNotFound
	}
	return nil
}
