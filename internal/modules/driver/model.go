// README: Driver directory types.
package driver

import "strada/internal/types"

// AvailabilityUpdate toggles a driver's online flag, optionally with a
// starting position so the driver is searchable immediately.
type AvailabilityUpdate struct {
	DriverID types.ID
	Online   bool
	Position *types.Point
}

// LocationUpdate moves an online driver on the GEO index. Mobile clients
// send these on a fixed 3–15 second interval.
type LocationUpdate struct {
	DriverID types.ID
	Position types.Point
}
