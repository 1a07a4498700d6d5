// README: Adaptive matching thresholds from city tier and zone imbalance.
package dispatch

import "context"

// Thresholds combines the city density tier with the zone's imbalance into
// the three matching cut-offs. When the zone's demand outruns supply beyond
// the elevated margin, instant and soft commitment are loosened; the
// compensation trigger never moves.
func (s *Service) Thresholds(ctx context.Context, lat, lng float64) (Thresholds, error) {
	snap, err := s.density.Classify(ctx)
	if err != nil {
		return Thresholds{}, err
	}
	m, err := s.metrics.Metrics(ctx, lat, lng)
	if err != nil {
		return Thresholds{}, err
	}

	t := baseThresholds[snap.Tier]
	t.Tier = snap.Tier
	t.ZoneID = m.ZoneID
	if m.ImbalanceScore > s.cfg.ElevatedImbalance {
		t.Instant -= demandPressureRelief
		t.SoftCommitment -= demandPressureRelief
	}
	return t, nil
}
