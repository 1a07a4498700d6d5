// README: Zone metrics value object; computed fresh per query, never persisted.
package zone

import (
	"time"

	"strada/internal/types"
)

const (
	// supplyCapacity is the driver count at which a zone's supply level
	// saturates at 1.0.
	supplyCapacity = 10
	// demandCapacity is the recent-ride count at which demand saturates.
	demandCapacity = 20
	// demandWindow is how far back ride requests count toward demand.
	demandWindow = 60 * time.Minute

	// defaultAlignmentScore is a placeholder until per-zone alignment
	// telemetry exists.
	// TODO: derive from historical rider/driver alignment outcomes once the
	// matching flow reports them.
	defaultAlignmentScore = 0.75
)

// Metrics is the supply/demand picture of one grid cell at one instant.
// Two calls for the same coordinate at different times may disagree; the
// value has no identity beyond the cell key.
type Metrics struct {
	ZoneID                   string      `json:"zone_id"`
	Center                   types.Point `json:"center"`
	SupplyLevel              float64     `json:"supply_level"`
	DemandLevel              float64     `json:"demand_level"`
	ImbalanceScore           float64     `json:"imbalance_score"`
	AvgWaitMinutes           float64     `json:"avg_wait_minutes"`
	AvgAlignmentScore        float64     `json:"avg_alignment_score"`
	GuaranteeThresholdMin    float64     `json:"guarantee_threshold_minutes"`
	PremiumMultiplier        float64     `json:"premium_multiplier"`
	OnlineDriverCount        int         `json:"online_driver_count"`
	RecentRideRequestCount   int         `json:"recent_ride_request_count"`
	CompletedRideSampleCount int         `json:"completed_ride_sample_count"`
}

// Ride is the slice of the ride read store this module consumes: where the
// rider wanted to be picked up, when they asked, and how the ride went.
type Ride struct {
	ID         types.ID
	Pickup     types.Point
	Status     string
	CreatedAt  time.Time
	AcceptedAt *time.Time
}

const rideStatusCompleted = "completed"
