// README: Dispatch decision types and threshold policy table.
package dispatch

import (
	"strada/internal/modules/density"
	"strada/internal/types"
)

// Thresholds are the alignment cut-offs the matching flow consumes: above
// instant a pair matches immediately, above soft it is held briefly for a
// better option, and below compensationTrigger the platform owes the rider a
// make-good. Values are advisory floats; nothing clamps them after the
// imbalance adjustment.
type Thresholds struct {
	Instant             float64      `json:"instant"`
	SoftCommitment      float64      `json:"soft_commitment"`
	CompensationTrigger float64      `json:"compensation_trigger"`
	Tier                density.Tier `json:"tier"`
	ZoneID              string       `json:"zone_id"`
}

// baseThresholds keys the threshold triple on the city density tier.
var baseThresholds = map[density.Tier]Thresholds{
	density.TierLow:     {Instant: 0.70, SoftCommitment: 0.55, CompensationTrigger: 0.40},
	density.TierDefault: {Instant: 0.85, SoftCommitment: 0.70, CompensationTrigger: 0.50},
	density.TierHigh:    {Instant: 0.90, SoftCommitment: 0.75, CompensationTrigger: 0.55},
}

// demandPressureRelief is subtracted from instant and soft commitment when a
// zone's demand outruns supply, loosening matching to relieve the pressure.
// The compensation trigger is never adjusted.
const demandPressureRelief = 0.05

// GuaranteeDecision reports whether a driver's wait earned the payout.
// "Driver not found" is a normal negative decision, not an error.
type GuaranteeDecision struct {
	Triggered bool    `json:"triggered"`
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason"`
}

const (
	reasonDriverNotFound      = "Driver not found"
	reasonThresholdNotReached = "Threshold not reached"
)

// FlowRecommendation proposes a reposition target, or explains why staying
// put is fine.
type FlowRecommendation struct {
	RecommendedZone     *RecommendedZone `json:"recommended_zone,omitempty"`
	Reason              string           `json:"reason"`
	ExpectedImprovement float64          `json:"expected_improvement"`
}

// RecommendedZone is the winning neighbor cell.
type RecommendedZone struct {
	ZoneID          string      `json:"zone_id"`
	Center          types.Point `json:"center"`
	ImbalanceScore  float64     `json:"imbalance_score"`
	DriveETAMinutes *float64    `json:"drive_eta_minutes,omitempty"`
}

const (
	reasonBetterZoneNearby = "Higher demand detected nearby"
	reasonZoneOptimal      = "Current zone is optimal"
)
