// README: Density read store; ride counts from PostgreSQL.
package density

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

// DB is the subset of pgxpool.Pool the store needs; pgxmock satisfies it too.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	db DB
}

func NewStore(db DB) *Store {
	return &Store{db: db}
}

// CountRidesSince counts rides created at or after since.
func (s *Store) CountRidesSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT count(*) FROM rides WHERE created_at >= $1`, since).Scan(&n)
	return n, err
}

var _ RideCounter = (*Store)(nil)
