package rideevent

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"strada/internal/types"
)

// memLog is an in-memory Log double preserving insertion order.
type memLog struct {
	events    []Event
	appendErr error
}

func (m *memLog) Append(_ context.Context, e *Event) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.events = append(m.events, *e)
	return nil
}

func (m *memLog) History(_ context.Context, rideID types.ID) ([]Event, error) {
	var out []Event
	for _, e := range m.events {
		if e.RideID == rideID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memLog) ByType(ctx context.Context, rideID types.ID, t Type) ([]Event, error) {
	all, _ := m.History(ctx, rideID)
	var out []Event
	for _, e := range all {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memLog) StateAt(ctx context.Context, rideID types.ID, ts time.Time) (*Event, error) {
	all, _ := m.History(ctx, rideID)
	for i := len(all) - 1; i >= 0; i-- {
		if !all[i].CreatedAt.After(ts) {
			return &all[i], nil
		}
	}
	return nil, ErrNotFound
}

func (m *memLog) ByCorrelation(_ context.Context, correlationID types.ID) ([]Event, error) {
	var out []Event
	for _, e := range m.events {
		if e.CorrelationID != nil && *e.CorrelationID == correlationID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memLog) Recent(_ context.Context, limit int) ([]Event, error) {
	n := len(m.events)
	if limit > n {
		limit = n
	}
	out := make([]Event, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, m.events[i])
	}
	return out, nil
}

func newTestService(store Log) *Service {
	svc := NewService(store, zerolog.Nop())
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	n := 0
	svc.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
	return svc
}

func TestRecord_ReturnsID(t *testing.T) {
	log := &memLog{}
	svc := newTestService(log)

	id, err := svc.Record(context.Background(), Input{RideID: "r1", Type: TypeRequested})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated event id")
	}
	if len(log.events) != 1 || log.events[0].ID != id {
		t.Fatalf("event not appended with returned id: %+v", log.events)
	}
}

// TestRecord_WriteFailureSurfaces: a failed insert returns the pre-generated
// id together with the error, never a success-shaped result.
func TestRecord_WriteFailureSurfaces(t *testing.T) {
	svc := newTestService(&memLog{appendErr: errors.New("connection reset")})

	id, err := svc.Record(context.Background(), Input{RideID: "r1", Type: TypeRequested})
	if err == nil {
		t.Fatal("expected append failure to surface")
	}
	if id == "" {
		t.Error("id should still identify the attempted write")
	}
}

func TestRecord_Validation(t *testing.T) {
	svc := newTestService(&memLog{})
	ctx := context.Background()

	if _, err := svc.Record(ctx, Input{Type: TypeRequested}); err != ErrBadRequest {
		t.Errorf("missing ride id: %v", err)
	}
	if _, err := svc.Record(ctx, Input{RideID: "r1", Type: "teleported"}); err != ErrBadRequest {
		t.Errorf("unknown type: %v", err)
	}
	badRole := ActorRole("robot")
	if _, err := svc.Record(ctx, Input{RideID: "r1", Type: TypeRequested, ActorRole: &badRole}); err != ErrBadRequest {
		t.Errorf("unknown actor role: %v", err)
	}
}

// TestStateAt_Reconstruction: record requested then accepted, then ask for
// the state now; the accepted event wins.
func TestStateAt_Reconstruction(t *testing.T) {
	svc := newTestService(&memLog{})
	ctx := context.Background()

	if _, err := svc.Record(ctx, Input{RideID: "r1", Type: TypeRequested}); err != nil {
		t.Fatalf("record requested: %v", err)
	}
	prev, next := TypeRequested, TypeAccepted
	if _, err := svc.Record(ctx, Input{RideID: "r1", Type: TypeAccepted, PreviousState: &prev, NewState: &next}); err != nil {
		t.Fatalf("record accepted: %v", err)
	}

	e, err := svc.StateAt(ctx, "r1", time.Date(2026, 8, 1, 13, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("state at: %v", err)
	}
	if e.Type != TypeAccepted {
		t.Errorf("state = %s, want accepted", e.Type)
	}
	if e.PreviousState == nil || *e.PreviousState != TypeRequested {
		t.Errorf("previous state = %v, want requested", e.PreviousState)
	}
}

func TestStateAt_BeforeFirstEvent(t *testing.T) {
	svc := newTestService(&memLog{})
	ctx := context.Background()

	if _, err := svc.Record(ctx, Input{RideID: "r1", Type: TypeRequested}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := svc.StateAt(ctx, "r1", time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC)); err != ErrNotFound {
		t.Errorf("expected ErrNotFound before first event, got %v", err)
	}
}

// TestHistory_OrderAndFold: history comes back in non-decreasing createdAt
// order and folds without revisiting a terminal state.
func TestHistory_OrderAndFold(t *testing.T) {
	svc := newTestService(&memLog{})
	ctx := context.Background()

	seq := []Type{
		TypeRequested, TypeMatched, TypeAccepted, TypeDriverArriving,
		TypeDriverArrived, TypeStarted, TypeInProgress, TypeFareUpdated, TypeCompleted, TypeTipAdded,
	}
	for _, typ := range seq {
		if _, err := svc.Record(ctx, Input{RideID: "r1", Type: typ}); err != nil {
			t.Fatalf("record %s: %v", typ, err)
		}
	}

	events, err := svc.History(ctx, "r1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(events) != len(seq) {
		t.Fatalf("history length = %d, want %d", len(events), len(seq))
	}
	for i := 1; i < len(events); i++ {
		if events[i].CreatedAt.Before(events[i-1].CreatedAt) {
			t.Fatalf("history out of order at %d", i)
		}
	}
	state, err := Fold(events)
	if err != nil {
		t.Fatalf("fold: %v", err)
	}
	if state != TypeCompleted {
		t.Errorf("folded state = %s, want completed", state)
	}
}

func TestByCorrelation_GroupsAcrossRides(t *testing.T) {
	svc := newTestService(&memLog{})
	ctx := context.Background()

	corr := types.ID("rematch-42")
	if _, err := svc.Record(ctx, Input{RideID: "r1", Type: TypeRematchInitiated, CorrelationID: &corr}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := svc.Record(ctx, Input{RideID: "r2", Type: TypeRematchCompleted, CorrelationID: &corr}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := svc.Record(ctx, Input{RideID: "r1", Type: TypeETAUpdated}); err != nil {
		t.Fatalf("record: %v", err)
	}

	events, err := svc.ByCorrelation(ctx, corr)
	if err != nil {
		t.Fatalf("by correlation: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d correlated events, want 2", len(events))
	}
	if events[0].RideID != "r1" || events[1].RideID != "r2" {
		t.Errorf("correlated rides = %s, %s", events[0].RideID, events[1].RideID)
	}
}

func TestRecent_LimitClamping(t *testing.T) {
	log := &memLog{}
	svc := newTestService(log)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := svc.Record(ctx, Input{RideID: "r1", Type: TypeETAUpdated}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	events, err := svc.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 3 {
		t.Errorf("recent(3) = %d events", len(events))
	}
	// newest first
	if events[0].CreatedAt.Before(events[1].CreatedAt) {
		t.Error("recent not newest-first")
	}

	if _, err := svc.Recent(ctx, 0); err != nil {
		t.Errorf("recent with default limit: %v", err)
	}
}
