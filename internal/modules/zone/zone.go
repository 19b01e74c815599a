// README: Closed zone table and the scalar proximity model shared by both workers.
package zone

import (
	"errors"
	"fmt"
	"time"
)

// Zone names are canonical strings as stored in request and driver rows.
const (
	DowntownCore    = "Downtown Core"
	CentralStation  = "Central Station"
	UniversityArea  = "University Area"
	TheSuburbs      = "The Suburbs"
	AirportTerminal = "Airport Terminal"
)

// coordinates maps each zone to the scalar used for relative distance.
// The table is immutable; matching and completion both read it.
var coordinates = map[string]int{
	DowntownCore:    10,
	CentralStation:  20,
	UniversityArea:  30,
	TheSuburbs:      40,
	AirportTerminal: 50,
}

const (
	// MinDuration is the floor added to every simulated trip so no ride
	// completes instantaneously.
	MinDuration = 2 * time.Second

	// FallbackDuration is used when either endpoint of a trip is not in the
	// zone table. The trip still completes, just with a fixed length.
	FallbackDuration = 10 * time.Second
)

var ErrUnknownZone = errors.New("unknown zone")

// Coordinate returns the scalar coordinate of a zone.
func Coordinate(name string) (int, error) {
	v, ok := coordinates[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownZone, name)
	}
	return v, nil
}

// Distance is the absolute difference between two zone coordinates.
func Distance(a, b string) (int, error) {
	va, err := Coordinate(a)
	if err != nil {
		return 0, err
	}
	vb, err := Coordinate(b)
	if err != nil {
		return 0, err
	}
	if va > vb {
		return va - vb, nil
	}
	return vb - va, nil
}

// ServiceDuration converts the distance between two zones into a simulated
// trip length: one second per coordinate unit plus MinDuration. Unknown zones
// degrade to FallbackDuration rather than failing the trip.
func ServiceDuration(source, destination string) time.Duration {
	d, err := Distance(source, destination)
	if err != nil {
		return FallbackDuration
	}
	return time.Duration(d)*time.Second + MinDuration
}

// Names returns every known zone name; useful for simulators and validation.
func Names() []string {
	out := make([]string, 0, len(coordinates))
	for name := range coordinates {
		out = append(out, name)
	}
	return out
}
