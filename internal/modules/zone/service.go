// README: Zone metrics service derives supply/demand levels and guarantee tiers.
package zone

import (
	"context"
	"math"
	"time"

	"strada/internal/config"
	"strada/internal/types"
)

// RideReader supplies ride requests for demand and wait-time aggregation.
type RideReader interface {
	RecentRides(ctx context.Context, since time.Time) ([]Ride, error)
}

// DriverDirectory supplies every currently-online driver with a position.
type DriverDirectory interface {
	OnlineDrivers(ctx context.Context) ([]OnlineDriver, error)
}

// OnlineDriver is a directory entry as the metrics calculation sees it.
type OnlineDriver struct {
	ID       types.ID
	Position types.Point
}

type Service struct {
	rides   RideReader
	drivers DriverDirectory
	cfg     config.DispatchConfig
	now     func() time.Time
}

func NewService(rides RideReader, drivers DriverDirectory, cfg config.DispatchConfig) *Service {
	return &Service{rides: rides, drivers: drivers, cfg: cfg, now: time.Now}
}

// Metrics computes the supply/demand picture of the cell containing the query
// point. Read-only; every call re-derives from the current driver and ride
// snapshots, so results are only idempotent within a fixed snapshot.
func (s *Service) Metrics(ctx context.Context, lat, lng float64) (Metrics, error) {
	origin := types.Point{Lat: lat, Lng: lng}
	id := GridID(lat, lng)
	center, err := GridCenter(id)
	if err != nil {
		return Metrics{}, err
	}

	drivers, err := s.drivers.OnlineDrivers(ctx)
	if err != nil {
		return Metrics{}, err
	}
	driverCount := 0
	for _, d := range drivers {
		if approxDistanceKm(d.Position, origin) <= s.cfg.ZoneRadiusKm {
			driverCount++
		}
	}

	rides, err := s.rides.RecentRides(ctx, s.now().Add(-demandWindow))
	if err != nil {
		return Metrics{}, err
	}
	var zoneRides []Ride
	for _, r := range rides {
		if approxDistanceKm(r.Pickup, origin) <= s.cfg.ZoneRadiusKm {
			zoneRides = append(zoneRides, r)
		}
	}

	supply := math.Min(1, float64(driverCount)/supplyCapacity)
	demand := math.Min(1, float64(len(zoneRides))/demandCapacity)
	imbalance := demand - supply

	avgWait, samples := s.avgWaitMinutes(zoneRides)
	threshold, multiplier := s.guaranteeTier(imbalance)

	return Metrics{
		ZoneID:                   id,
		Center:                   center,
		SupplyLevel:              supply,
		DemandLevel:              demand,
		ImbalanceScore:           imbalance,
		AvgWaitMinutes:           avgWait,
		AvgAlignmentScore:        defaultAlignmentScore,
		GuaranteeThresholdMin:    threshold,
		PremiumMultiplier:        multiplier,
		OnlineDriverCount:        driverCount,
		RecentRideRequestCount:   len(zoneRides),
		CompletedRideSampleCount: samples,
	}, nil
}

// avgWaitMinutes averages acceptedAt−createdAt over completed zone rides,
// falling back to the configured default when no sample exists.
func (s *Service) avgWaitMinutes(rides []Ride) (float64, int) {
	var total float64
	samples := 0
	for _, r := range rides {
		if r.Status != rideStatusCompleted || r.AcceptedAt == nil {
			continue
		}
		total += r.AcceptedAt.Sub(r.CreatedAt).Minutes()
		samples++
	}
	if samples == 0 {
		return s.cfg.DefaultWaitMinutes, 0
	}
	return total / float64(samples), samples
}

// guaranteeTier maps an imbalance score to the wait guarantee threshold and
// fare premium multiplier. The surge branch is checked before the elevated
// branch; the first true branch wins and the ordering must be preserved.
func (s *Service) guaranteeTier(imbalance float64) (thresholdMin, multiplier float64) {
	switch {
	case imbalance > s.cfg.SurgeImbalance:
		return 25, 1.4
	case imbalance > s.cfg.ElevatedImbalance:
		return 20, 1.2
	case imbalance < -s.cfg.SlackImbalance:
		return 10, 0.9
	default:
		return 15, 1.0
	}
}
