// README: City density classifier; aggregates fleet-wide supply and demand volume.
package density

import (
	"context"
	"time"
)

// RideCounter counts ride requests created within a window.
type RideCounter interface {
	CountRidesSince(ctx context.Context, since time.Time) (int, error)
}

// FleetCounter reports how many drivers are currently online.
type FleetCounter interface {
	OnlineDriverCount(ctx context.Context) (int, error)
}

type Service struct {
	rides RideCounter
	fleet FleetCounter
	now   func() time.Time
}

func NewService(rides RideCounter, fleet FleetCounter) *Service {
	return &Service{rides: rides, fleet: fleet, now: time.Now}
}

// Classify computes the city-wide density tier. Low-density wins over
// high-density when both conditions somehow hold (tiny fleet with a burst of
// requests); the precedence is part of the contract.
func (s *Service) Classify(ctx context.Context) (Snapshot, error) {
	drivers, err := s.fleet.OnlineDriverCount(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	now := s.now()
	recent, err := s.rides.CountRidesSince(ctx, now.Add(-24*time.Hour))
	if err != nil {
		return Snapshot{}, err
	}
	hourly, err := s.rides.CountRidesSince(ctx, now.Add(-time.Hour))
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		ActiveDriverCount: drivers,
		RecentRideCount:   recent,
		HourlyRequestRate: hourly,
	}
	switch {
	case drivers < lowDriverCount || hourly < lowHourlyRate:
		snap.Tier = TierLow
	case drivers > highDriverCount || hourly > highHourlyRate:
		snap.Tier = TierHigh
	default:
		snap.Tier = TierDefault
	}
	return snap, nil
}
