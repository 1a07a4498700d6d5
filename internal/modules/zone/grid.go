// README: Pure cell mapping for the geospatial grid.
package zone

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"strada/internal/types"
)

// cellSizeDegrees is the side of one grid cell, roughly 3 km at the equator.
const cellSizeDegrees = 0.027

const gridIDSeparator = ":"

// GridID maps a coordinate to its cell key. Deterministic and total: any
// finite lat/lng lands in exactly one cell. Callers must not pass NaN.
func GridID(lat, lng float64) string {
	latCell := int(math.Floor(lat / cellSizeDegrees))
	lngCell := int(math.Floor(lng / cellSizeDegrees))
	return strconv.Itoa(latCell) + gridIDSeparator + strconv.Itoa(lngCell)
}

// GridCenter is the inverse of GridID, returning the midpoint of the cell.
func GridCenter(id string) (types.Point, error) {
	parts := strings.Split(id, gridIDSeparator)
	if len(parts) != 2 {
		return types.Point{}, fmt.Errorf("malformed zone id %q", id)
	}
	latCell, err := strconv.Atoi(parts[0])
	if err != nil {
		return types.Point{}, fmt.Errorf("malformed zone id %q", id)
	}
	lngCell, err := strconv.Atoi(parts[1])
	if err != nil {
		return types.Point{}, fmt.Errorf("malformed zone id %q", id)
	}
	return types.Point{
		Lat: (float64(latCell) + 0.5) * cellSizeDegrees,
		Lng: (float64(lngCell) + 0.5) * cellSizeDegrees,
	}, nil
}

// NeighborCenters returns the centers of the four axis-aligned neighboring
// cells, one cell step away in each direction. Diagonals are not included.
func NeighborCenters(p types.Point) []types.Point {
	return []types.Point{
		{Lat: p.Lat + cellSizeDegrees, Lng: p.Lng},
		{Lat: p.Lat - cellSizeDegrees, Lng: p.Lng},
		{Lat: p.Lat, Lng: p.Lng + cellSizeDegrees},
		{Lat: p.Lat, Lng: p.Lng - cellSizeDegrees},
	}
}
