// README: Ride service: the intake and status-polling path over the store.
package ride

import (
	"context"
	"errors"
)

var ErrBadRequest = errors.New("bad request")

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type CreateCommand struct {
	UserID      string
	Source      string
	Destination string
}

// Create inserts a pending request. Zone names are not validated here: an
// unknown zone is treated as worst-case distance by the matching engine, so
// the request simply stays pending rather than being rejected at intake.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (int64, error) {
	if cmd.UserID == "" || cmd.Source == "" || cmd.Destination == "" {
		return 0, ErrBadRequest
	}
	return s.store.Create(ctx, &Request{
		UserID:      cmd.UserID,
		Source:      cmd.Source,
		Destination: cmd.Destination,
	})
}

func (s *Service) Get(ctx context.Context, id int64) (*Request, error) {
	return s.store.Get(ctx, id)
}
