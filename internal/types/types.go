// README: Common value objects shared across modules.
package types

// ID is an opaque identifier for drivers, riders, rides, and events.
type ID string

// Point is a WGS84 coordinate pair in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
