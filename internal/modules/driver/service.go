// README: Driver directory service; the supply side every read path consumes.
package driver

import (
	"context"
	"errors"

	"strada/internal/modules/zone"
	"strada/internal/types"
)

var ErrBadRequest = errors.New("bad request")

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) SetAvailability(ctx context.Context, u AvailabilityUpdate) error {
	if u.DriverID == "" {
		return ErrBadRequest
	}
	if !u.Online {
		return s.store.SetOffline(ctx, u.DriverID)
	}
	if u.Position == nil {
		return ErrBadRequest
	}
	return s.store.SetOnline(ctx, u.DriverID, *u.Position)
}

func (s *Service) UpdateLocation(ctx context.Context, u LocationUpdate) error {
	if u.DriverID == "" {
		return ErrBadRequest
	}
	return s.store.UpdatePosition(ctx, u.DriverID, u.Position)
}

// OnlineDrivers implements the zone metrics supply source.
func (s *Service) OnlineDrivers(ctx context.Context) ([]zone.OnlineDriver, error) {
	return s.store.OnlineDrivers(ctx)
}

// OnlineDriverCount implements the density fleet counter.
func (s *Service) OnlineDriverCount(ctx context.Context) (int, error) {
	return s.store.OnlineDriverCount(ctx)
}

// Position implements the guarantee trigger's driver locator.
func (s *Service) Position(ctx context.Context, id types.ID) (types.Point, bool, error) {
	return s.store.Position(ctx, id)
}
