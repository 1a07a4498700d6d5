// README: Ride event log service; the source of truth for ride lifecycle state.
package rideevent

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"strada/internal/types"
)

var (
	ErrBadRequest    = errors.New("bad request")
	ErrNotFound      = errors.New("event not found")
	ErrTerminalState = errors.New("transition out of terminal state")
)

// Log is the subset of the store the service depends on.
type Log interface {
	Append(ctx context.Context, e *Event) error
	History(ctx context.Context, rideID types.ID) ([]Event, error)
	ByType(ctx context.Context, rideID types.ID, t Type) ([]Event, error)
	StateAt(ctx context.Context, rideID types.ID, ts time.Time) (*Event, error)
	ByCorrelation(ctx context.Context, correlationID types.ID) ([]Event, error)
	Recent(ctx context.Context, limit int) ([]Event, error)
}

// Input is what callers hand to Record; ids and timestamps are assigned here.
type Input struct {
	RideID        types.ID
	Type          Type
	ActorID       *types.ID
	ActorRole     *ActorRole
	Payload       map[string]any
	PreviousState *Type
	NewState      *Type
	CorrelationID *types.ID
	Metadata      map[string]any
}

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 500
)

type Service struct {
	store Log
	log   zerolog.Logger
	now   func() time.Time
	newID func() types.ID
}

func NewService(store Log, log zerolog.Logger) *Service {
	return &Service{
		store: store,
		log:   log,
		now:   time.Now,
		newID: func() types.ID { return types.ID(uuid.NewString()) },
	}
}

// Record appends one event. The id is generated before the insert is
// attempted, but a failed insert surfaces the error: the returned id is only
// proof of durability when err is nil.
func (s *Service) Record(ctx context.Context, in Input) (types.ID, error) {
	if in.RideID == "" {
		return "", ErrBadRequest
	}
	if !in.Type.Known() {
		return "", ErrBadRequest
	}
	if in.ActorRole != nil {
		switch *in.ActorRole {
		case RoleRider, RoleDriver, RoleSystem, RoleAdmin:
		default:
			return "", ErrBadRequest
		}
	}

	e := &Event{
		ID:            s.newID(),
		RideID:        in.RideID,
		Type:          in.Type,
		ActorID:       in.ActorID,
		ActorRole:     in.ActorRole,
		Payload:       in.Payload,
		PreviousState: in.PreviousState,
		NewState:      in.NewState,
		CorrelationID: in.CorrelationID,
		Metadata:      in.Metadata,
		CreatedAt:     s.now(),
	}
	if err := s.store.Append(ctx, e); err != nil {
		s.log.Error().Err(err).
			Str("ride_id", string(e.RideID)).
			Str("event_id", string(e.ID)).
			Str("event_type", string(e.Type)).
			Msg("ride event append failed")
		return e.ID, err
	}
	return e.ID, nil
}

// History returns a ride's full event sequence in insertion order.
func (s *Service) History(ctx context.Context, rideID types.ID) ([]Event, error) {
	if rideID == "" {
		return nil, ErrBadRequest
	}
	return s.store.History(ctx, rideID)
}

func (s *Service) ByType(ctx context.Context, rideID types.ID, t Type) ([]Event, error) {
	if rideID == "" || !t.Known() {
		return nil, ErrBadRequest
	}
	return s.store.ByType(ctx, rideID, t)
}

// StateAt reconstructs point-in-time state: the latest event at or before ts.
func (s *Service) StateAt(ctx context.Context, rideID types.ID, ts time.Time) (*Event, error) {
	if rideID == "" {
		return nil, ErrBadRequest
	}
	return s.store.StateAt(ctx, rideID, ts)
}

func (s *Service) ByCorrelation(ctx context.Context, correlationID types.ID) ([]Event, error) {
	if correlationID == "" {
		return nil, ErrBadRequest
	}
	return s.store.ByCorrelation(ctx, correlationID)
}

func (s *Service) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	return s.store.Recent(ctx, limit)
}
