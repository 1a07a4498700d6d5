// README: Wait-time guarantee evaluation and payout computation.
package dispatch

import (
	"context"
	"fmt"
	"math"

	"strada/internal/types"
)

// EvaluateGuarantee compares a driver's elapsed wait against their zone's
// guarantee threshold. An unknown or offline driver yields a negative
// decision with a nil error; only store failures are errors.
func (s *Service) EvaluateGuarantee(ctx context.Context, driverID types.ID, waitMinutes float64) (GuaranteeDecision, error) {
	pos, found, err := s.drivers.Position(ctx, driverID)
	if err != nil {
		return GuaranteeDecision{}, err
	}
	if !found {
		return GuaranteeDecision{Reason: reasonDriverNotFound}, nil
	}

	m, err := s.metrics.Metrics(ctx, pos.Lat, pos.Lng)
	if err != nil {
		return GuaranteeDecision{}, err
	}
	if waitMinutes < m.GuaranteeThresholdMin {
		return GuaranteeDecision{Reason: reasonThresholdNotReached}, nil
	}

	amount := round2(s.cfg.BaseGuaranteeAmount * m.PremiumMultiplier)
	return GuaranteeDecision{
		Triggered: true,
		Amount:    amount,
		Reason: fmt.Sprintf("Waited %.0f minutes, threshold %.0f minutes in zone %s",
			waitMinutes, m.GuaranteeThresholdMin, m.ZoneID),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
