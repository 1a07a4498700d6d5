// README: Driver directory store backed by Redis GEO.
package driver

import (
	"context"

	"github.com/redis/go-redis/v9"

	"strada/internal/modules/zone"
	"strada/internal/types"
)

// geoKey holds every online driver; membership is the online flag.
const geoKey = "dispatch:drivers:geo"

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

func (s *Store) SetOnline(ctx context.Context, id types.ID, pos types.Point) error {
	return s.redis.GeoAdd(ctx, geoKey, &redis.GeoLocation{
		Name:      string(id),
		Longitude: pos.Lng,
		Latitude:  pos.Lat,
	}).Err()
}

func (s *Store) SetOffline(ctx context.Context, id types.ID) error {
	return s.redis.ZRem(ctx, geoKey, string(id)).Err()
}

// UpdatePosition re-adds the member; a position update implies presence.
func (s *Store) UpdatePosition(ctx context.Context, id types.ID, pos types.Point) error {
	return s.SetOnline(ctx, id, pos)
}

func (s *Store) OnlineDriverCount(ctx context.Context) (int, error) {
	n, err := s.redis.ZCard(ctx, geoKey).Result()
	return int(n), err
}

// OnlineDrivers returns every online driver with its last known position.
func (s *Store) OnlineDrivers(ctx context.Context) ([]zone.OnlineDriver, error) {
	members, err := s.redis.ZRange(ctx, geoKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, nil
	}
	positions, err := s.redis.GeoPos(ctx, geoKey, members...).Result()
	if err != nil {
		return nil, err
	}
	drivers := make([]zone.OnlineDriver, 0, len(members))
	for i, m := range members {
		if i >= len(positions) || positions[i] == nil {
			continue
		}
		drivers = append(drivers, zone.OnlineDriver{
			ID:       types.ID(m),
			Position: types.Point{Lat: positions[i].Latitude, Lng: positions[i].Longitude},
		})
	}
	return drivers, nil
}

// Position looks up one driver's current position. The second return value
// reports presence; an offline or unknown driver is not an error.
func (s *Store) Position(ctx context.Context, id types.ID) (types.Point, bool, error) {
	positions, err := s.redis.GeoPos(ctx, geoKey, string(id)).Result()
	if err != nil {
		return types.Point{}, false, err
	}
	if len(positions) == 0 || positions[0] == nil {
		return types.Point{}, false, nil
	}
	return types.Point{Lat: positions[0].Latitude, Lng: positions[0].Longitude}, true, nil
}
