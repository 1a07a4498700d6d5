// README: Ride event store backed by PostgreSQL; append-only, insertion-ordered.
package rideevent

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"strada/internal/types"
)

// DB is the subset of pgxpool.Pool the store needs; pgxmock satisfies it too.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	db DB
}

func NewStore(db DB) *Store {
	return &Store{db: db}
}

const eventColumns = `id, ride_id, event_type, actor_id, actor_role, payload,
       previous_state, new_state, correlation_id, metadata, created_at`

// Append inserts one event. The caller has already generated the id; the
// insert either lands or the error comes back, nothing in between.
func (s *Store) Append(ctx context.Context, e *Event) error {
	payload, err := marshalJSONB(e.Payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	metadata, err := marshalJSONB(e.Metadata)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}
	_, err = s.db.Exec(ctx, `
        INSERT INTO ride_events (
            id, ride_id, event_type, actor_id, actor_role, payload,
            previous_state, new_state, correlation_id, metadata, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		string(e.ID),
		string(e.RideID),
		string(e.Type),
		idPtr(e.ActorID),
		rolePtr(e.ActorRole),
		payload,
		typePtr(e.PreviousState),
		typePtr(e.NewState),
		idPtr(e.CorrelationID),
		metadata,
		e.CreatedAt,
	)
	return err
}

// History returns a ride's events ordered by insertion (created_at, then id
// as the tie-break for writes landing on the same timestamp).
func (s *Store) History(ctx context.Context, rideID types.ID) ([]Event, error) {
	rows, err := s.db.Query(ctx, `
        SELECT `+eventColumns+`
        FROM ride_events
        WHERE ride_id = $1
        ORDER BY created_at ASC, id ASC`, string(rideID),
	)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func (s *Store) ByType(ctx context.Context, rideID types.ID, t Type) ([]Event, error) {
	rows, err := s.db.Query(ctx, `
        SELECT `+eventColumns+`
        FROM ride_events
        WHERE ride_id = $1 AND event_type = $2
        ORDER BY created_at ASC, id ASC`, string(rideID), string(t),
	)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

// StateAt returns the latest event at or before ts, or ErrNotFound when the
// ride has no event that early.
func (s *Store) StateAt(ctx context.Context, rideID types.ID, ts time.Time) (*Event, error) {
	rows, err := s.db.Query(ctx, `
        SELECT `+eventColumns+`
        FROM ride_events
        WHERE ride_id = $1 AND created_at <= $2
        ORDER BY created_at DESC, id DESC
        LIMIT 1`, string(rideID), ts,
	)
	if err != nil {
		return nil, err
	}
	events, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, ErrNotFound
	}
	return &events[0], nil
}

// ByCorrelation groups the events of one logical operation, possibly across
// rides (a rematch attempt touches the old and new assignment).
func (s *Store) ByCorrelation(ctx context.Context, correlationID types.ID) ([]Event, error) {
	rows, err := s.db.Query(ctx, `
        SELECT `+eventColumns+`
        FROM ride_events
        WHERE correlation_id = $1
        ORDER BY created_at ASC, id ASC`, string(correlationID),
	)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

// Recent returns the newest limit events fleet-wide, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Event, error) {
	rows, err := s.db.Query(ctx, `
        SELECT `+eventColumns+`
        FROM ride_events
        ORDER BY created_at DESC, id DESC
        LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]Event, error) {
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var actorID, actorRole, previousState, newState, correlationID sql.NullString
		var payload, metadata []byte

		err := rows.Scan(
			&e.ID, &e.RideID, &e.Type, &actorID, &actorRole, &payload,
			&previousState, &newState, &correlationID, &metadata, &e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		if actorID.Valid {
			v := types.ID(actorID.String)
			e.ActorID = &v
		}
		if actorRole.Valid {
			v := ActorRole(actorRole.String)
			e.ActorRole = &v
		}
		if previousState.Valid {
			v := Type(previousState.String)
			e.PreviousState = &v
		}
		if newState.Valid {
			v := Type(newState.String)
			e.NewState = &v
		}
		if correlationID.Valid {
			v := types.ID(correlationID.String)
			e.CorrelationID = &v
		}
		if err := unmarshalJSONB(payload, &e.Payload); err != nil {
			return nil, fmt.Errorf("decode payload for event %s: %w", e.ID, err)
		}
		if err := unmarshalJSONB(metadata, &e.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata for event %s: %w", e.ID, err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func marshalJSONB(m map[string]any) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func unmarshalJSONB(b []byte, dst *map[string]any) error {
	if len(b) == 0 {
		return nil
	}
	return json.Unmarshal(b, dst)
}

func idPtr(v *types.ID) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func rolePtr(v *ActorRole) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

func typePtr(v *Type) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
