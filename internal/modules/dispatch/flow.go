// README: Reposition recommendations via greedy one-hop neighbor search.
package dispatch

import (
	"context"

	"strada/internal/modules/zone"
	"strada/internal/types"
)

// RecommendFlow looks one cell step in each of the four axis directions for
// a materially better imbalance. Greedy local search: a neighbor must beat
// the best found so far by more than the configured margin, so the result is
// not a global optimum and is not meant to be.
func (s *Service) RecommendFlow(ctx context.Context, lat, lng float64) (FlowRecommendation, error) {
	origin, err := s.metrics.Metrics(ctx, lat, lng)
	if err != nil {
		return FlowRecommendation{}, err
	}

	var best *zone.Metrics
	bestScore := origin.ImbalanceScore
	for _, n := range zone.NeighborCenters(origin.Center) {
		m, err := s.metrics.Metrics(ctx, n.Lat, n.Lng)
		if err != nil {
			return FlowRecommendation{}, err
		}
		if m.ImbalanceScore > bestScore+s.cfg.FlowImprovementMargin {
			candidate := m
			best = &candidate
			bestScore = m.ImbalanceScore
		}
	}

	if best == nil {
		return FlowRecommendation{Reason: reasonZoneOptimal}, nil
	}

	rec := &RecommendedZone{
		ZoneID:         best.ZoneID,
		Center:         best.Center,
		ImbalanceScore: best.ImbalanceScore,
	}
	s.annotateETA(ctx, types.Point{Lat: lat, Lng: lng}, rec)
	return FlowRecommendation{
		RecommendedZone:     rec,
		Reason:              reasonBetterZoneNearby,
		ExpectedImprovement: (best.ImbalanceScore - origin.ImbalanceScore) * 100,
	}, nil
}

// annotateETA adds a drive-time estimate when a directions client is wired.
// Estimate failures degrade to no annotation; the recommendation stands.
func (s *Service) annotateETA(ctx context.Context, from types.Point, rec *RecommendedZone) {
	if s.eta == nil {
		return
	}
	minutes, err := s.eta.DriveMinutes(ctx, from, rec.Center)
	if err != nil {
		s.log.Warn().Err(err).Str("zone_id", rec.ZoneID).Msg("drive eta lookup failed")
		return
	}
	rec.DriveETAMinutes = &minutes
}
