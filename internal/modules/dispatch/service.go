// README: Dispatch service wires the density, zone, and driver reads behind
// the threshold, guarantee, and flow decisions.
package dispatch

import (
	"context"

	"github.com/rs/zerolog"

	"strada/internal/config"
	"strada/internal/modules/density"
	"strada/internal/modules/zone"
	"strada/internal/types"
)

// DensitySource classifies city-wide density.
type DensitySource interface {
	Classify(ctx context.Context) (density.Snapshot, error)
}

// MetricsSource computes per-zone supply/demand metrics.
type MetricsSource interface {
	Metrics(ctx context.Context, lat, lng float64) (zone.Metrics, error)
}

// DriverLocator resolves a driver's current position. The bool reports
// presence; absence is not an error.
type DriverLocator interface {
	Position(ctx context.Context, id types.ID) (types.Point, bool, error)
}

// ETAEstimator annotates flow recommendations with a drive time. Optional.
type ETAEstimator interface {
	DriveMinutes(ctx context.Context, from, to types.Point) (float64, error)
}

type Service struct {
	density DensitySource
	metrics MetricsSource
	drivers DriverLocator
	eta     ETAEstimator // may be nil
	cfg     config.DispatchConfig
	log     zerolog.Logger
}

func NewService(densitySrc DensitySource, metrics MetricsSource, drivers DriverLocator, eta ETAEstimator, cfg config.DispatchConfig, log zerolog.Logger) *Service {
	return &Service{
		density: densitySrc,
		metrics: metrics,
		drivers: drivers,
		eta:     eta,
		cfg:     cfg,
		log:     log,
	}
}
