// README: Ride event definitions; the lifecycle state machine as data.
package rideevent

import (
	"time"

	"strada/internal/types"
)

// Type is the closed event-type enumeration. Transition types move the ride
// through its lifecycle; annotation types record facts without moving state.
type Type string

const (
	TypeRequested        Type = "requested"
	TypeMatched          Type = "matched"
	TypeAccepted         Type = "accepted"
	TypeDriverArriving   Type = "driver_arriving"
	TypeDriverArrived    Type = "driver_arrived"
	TypeStarted          Type = "started"
	TypeInProgress       Type = "in_progress"
	TypeCompleted        Type = "completed"
	TypeCancelledRider   Type = "cancelled_rider"
	TypeCancelledDriver  Type = "cancelled_driver"
	TypeCancelledSystem  Type = "cancelled_system"
	TypeRematchInitiated Type = "rematch_initiated"
	TypeRematchCompleted Type = "rematch_completed"

	TypeFareUpdated        Type = "fare_updated"
	TypeRouteDeviated      Type = "route_deviated"
	TypeETAUpdated         Type = "eta_updated"
	TypePaymentInitiated   Type = "payment_initiated"
	TypePaymentCompleted   Type = "payment_completed"
	TypePaymentFailed      Type = "payment_failed"
	TypeDisputeOpened      Type = "dispute_opened"
	TypeDisputeResolved    Type = "dispute_resolved"
	TypeTipAdded           Type = "tip_added"
	TypeRatingSubmitted    Type = "rating_submitted"
	TypeBlockchainRecorded Type = "blockchain_recorded"
)

// ActorRole identifies who emitted an event.
type ActorRole string

const (
	RoleRider  ActorRole = "rider"
	RoleDriver ActorRole = "driver"
	RoleSystem ActorRole = "system"
	RoleAdmin  ActorRole = "admin"
)

// AllowedTransitions represents the ride lifecycle diagram as code. Cancels
// are valid from every non-terminal state and are appended in init.
var AllowedTransitions = map[Type][]Type{
	TypeRequested:        {TypeMatched},
	TypeMatched:          {TypeAccepted, TypeRematchInitiated},
	TypeAccepted:         {TypeDriverArriving, TypeRematchInitiated},
	TypeDriverArriving:   {TypeDriverArrived, TypeRematchInitiated},
	TypeDriverArrived:    {TypeStarted},
	TypeStarted:          {TypeInProgress},
	TypeInProgress:       {TypeCompleted},
	TypeRematchInitiated: {TypeRematchCompleted},
	TypeRematchCompleted: {TypeMatched},
}

var terminalTypes = map[Type]bool{
	TypeCompleted:       true,
	TypeCancelledRider:  true,
	TypeCancelledDriver: true,
	TypeCancelledSystem: true,
}

var annotationTypes = map[Type]bool{
	TypeFareUpdated:        true,
	TypeRouteDeviated:      true,
	TypeETAUpdated:         true,
	TypePaymentInitiated:   true,
	TypePaymentCompleted:   true,
	TypePaymentFailed:      true,
	TypeDisputeOpened:      true,
	TypeDisputeResolved:    true,
	TypeTipAdded:           true,
	TypeRatingSubmitted:    true,
	TypeBlockchainRecorded: true,
}

var knownTypes = map[Type]bool{}

func init() {
	cancels := []Type{TypeCancelledRider, TypeCancelledDriver, TypeCancelledSystem}
	for from := range AllowedTransitions {
		AllowedTransitions[from] = append(AllowedTransitions[from], cancels...)
	}
	for from := range AllowedTransitions {
		knownTypes[from] = true
		for _, to := range AllowedTransitions[from] {
			knownTypes[to] = true
		}
	}
	for t := range annotationTypes {
		knownTypes[t] = true
	}
}

func (t Type) Known() bool      { return knownTypes[t] }
func (t Type) Terminal() bool   { return terminalTypes[t] }
func (t Type) Annotation() bool { return annotationTypes[t] }

func CanTransition(from, to Type) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Event is the one durable entity in this core. Once written it is never
// mutated or deleted; ride state is always a fold over the sequence ordered
// by CreatedAt.
type Event struct {
	ID            types.ID       `json:"id"`
	RideID        types.ID       `json:"ride_id"`
	Type          Type           `json:"event_type"`
	ActorID       *types.ID      `json:"actor_id,omitempty"`
	ActorRole     *ActorRole     `json:"actor_role,omitempty"`
	Payload       map[string]any `json:"payload,omitempty"`
	PreviousState *Type          `json:"previous_state,omitempty"`
	NewState      *Type          `json:"new_state,omitempty"`
	CorrelationID *types.ID      `json:"correlation_id,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Fold replays a ride's events in order and returns the lifecycle state they
// land on. Annotations never move state; a transition out of a terminal
// state is a corrupt log and reported as such. The zero Type means no
// transition event has been seen yet.
func Fold(events []Event) (Type, error) {
	var state Type
	for _, e := range events {
		if e.Type.Annotation() {
			continue
		}
		if state.Terminal() {
			return state, ErrTerminalState
		}
		state = e.Type
	}
	return state, nil
}
