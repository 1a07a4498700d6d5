// README: Zone read store; recent rides from PostgreSQL.
package zone

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v5"
)

// DB is the subset of pgxpool.Pool the store needs; pgxmock satisfies it too.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type Store struct {
	db DB
}

func NewStore(db DB) *Store {
	return &Store{db: db}
}

// RecentRides returns every ride created at or after since, with pickup
// point, status, and accept time. Radius filtering happens in the service so
// the distance model stays in one place.
func (s *Store) RecentRides(ctx context.Context, since time.Time) ([]Ride, error) {
	rows, err := s.db.Query(ctx, `
        SELECT id, pickup_lat, pickup_lng, status, created_at, accepted_at
        FROM rides
        WHERE created_at >= $1`, since,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rides []Ride
	for rows.Next() {
		var r Ride
		var acceptedAt sql.NullTime
		if err := rows.Scan(&r.ID, &r.Pickup.Lat, &r.Pickup.Lng, &r.Status, &r.CreatedAt, &acceptedAt); err != nil {
			return nil, err
		}
		if acceptedAt.Valid {
			t := acceptedAt.Time
			r.AcceptedAt = &t
		}
		rides = append(rides, r)
	}
	return rides, rows.Err()
}

var _ RideReader = (*Store)(nil)
