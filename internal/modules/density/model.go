// README: City-wide density tier definitions.
package density

// Tier classifies fleet-wide driver and request volume.
type Tier string

const (
	TierLow     Tier = "low_density"
	TierDefault Tier = "default"
	TierHigh    Tier = "high_density"
)

const (
	// lowDriverCount / lowHourlyRate: below either, the city is low density.
	lowDriverCount = 10
	lowHourlyRate  = 5
	// highDriverCount / highHourlyRate: above either, the city is high density.
	highDriverCount = 100
	highHourlyRate  = 50
)

// Snapshot is the fleet-wide aggregate at one instant. Computed fresh per
// query, never persisted.
type Snapshot struct {
	Tier              Tier `json:"tier"`
	ActiveDriverCount int  `json:"active_driver_count"`
	RecentRideCount   int  `json:"recent_ride_count"`
	HourlyRequestRate int  `json:"hourly_request_rate"`
}
