// README: Pure geographic computation helpers.
package zone

import (
	"math"

	"strada/internal/types"
)

// kmPerDegree is the approximate ground distance of one degree at the
// equator. Supply/demand aggregation uses a flat-earth approximation on
// degrees rather than true haversine; at city scale (3 km radius) the error
// is well under the grid resolution.
const kmPerDegree = 111.0

// approxDistanceKm returns the Euclidean-on-degrees distance between two
// points, scaled to kilometres.
func approxDistanceKm(a, b types.Point) float64 {
	dLat := (a.Lat - b.Lat) * kmPerDegree
	dLng := (a.Lng - b.Lng) * kmPerDegree
	return math.Sqrt(dLat*dLat + dLng*dLng)
}
