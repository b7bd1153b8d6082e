// Package clip cuts grid lines at zone edges by linear interpolation
// in lat/lon, so that every clipped line ends exactly on the edge value.
package clip

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/rotblauer/mgrsd/common"
	"github.com/rotblauer/mgrsd/gzd"
)

// Slope returns Δlat/Δlon of the segment a-b.
// Equal points have slope 0, and segments along a meridian NaN.
func Slope(a, b orb.Point) float64 {
	if a == b {
		return 0
	}
	if a.Lon() == b.Lon() {
		return math.NaN()
	}
	return (b.Lat() - a.Lat()) / (b.Lon() - a.Lon())
}

// AdjustedLatitude returns the latitude at lon of the line through p with the given slope.
func AdjustedLatitude(slope, lon float64, p orb.Point) float64 {
	if math.IsNaN(slope) {
		return p.Lat()
	}
	return p.Lat() + slope*(lon-p.Lon())
}

// AdjustedLongitude returns the longitude at lat of the line through p with the given slope.
// A horizontal line never reaches another latitude.
func AdjustedLongitude(slope, lat float64, p orb.Point) (float64, error) {
	if slope == 0 {
		return 0, fmt.Errorf("horizontal line to latitude %v: %w", lat, common.ErrGeometryIndeterminate)
	}
	if math.IsNaN(slope) {
		return p.Lon(), nil
	}
	return (lat - p.Lat() + slope*p.Lon()) / slope, nil
}

// Edge of a zone.
type Edge int

const (
	North Edge = iota
	South
	East
	West
)

func (e Edge) String() string {
	switch e {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}
	return fmt.Sprintf("Edge(%d)", int(e))
}

// ToEdge returns where the segment from inside to outside crosses edge e of c.
// The edge coordinate of the result is the edge value itself.
func ToEdge(c gzd.Corners, e Edge, inside, outside orb.Point) (orb.Point, error) {
	slope := Slope(outside, inside)
	switch e {
	case North, South:
		lat := c.North()
		if e == South {
			lat = c.South()
		}
		lon, err := AdjustedLongitude(slope, lat, inside)
		if err != nil {
			return orb.Point{}, err
		}
		return orb.Point{lon, lat}, nil
	case East, West:
		lon := c.East()
		if e == West {
			lon = c.West()
		}
		return orb.Point{lon, AdjustedLatitude(slope, lon, inside)}, nil
	}
	return orb.Point{}, fmt.Errorf("edge %v: %w", e, common.ErrGeometryIndeterminate)
}

// CrossedEdge returns the edge of c that pt lies beyond.
// North and south are checked before east and west.
func CrossedEdge(c gzd.Corners, pt orb.Point) (Edge, bool) {
	switch {
	case pt.Lat() > c.North():
		return North, true
	case pt.Lat() < c.South():
		return South, true
	case pt.Lon() > c.East():
		return East, true
	case pt.Lon() < c.West():
		return West, true
	}
	return 0, false
}

// norwayMeridian is where 31V stops and 32V begins.
const norwayMeridian = 3.0

var zone31V = gzd.MustParse("31V")

// ToBoundary clips the segment from inside to outside at the boundary of zone z.
// An outside point that is not outside is returned as is.
//
// Lines of a zone bordering 31V that would reach across its north or south
// edge into 31V west of 3°E are cut at 3°E instead, where 32V takes over.
func ToBoundary(z gzd.Zone, c gzd.Corners, inside, outside orb.Point) (orb.Point, error) {
	edge, ok := CrossedEdge(c, outside)
	if !ok {
		return outside, nil
	}
	pt, err := ToEdge(c, edge, inside, outside)
	if err != nil {
		return pt, fmt.Errorf("%s %v edge: %w", z, edge, err)
	}
	if edge == North || edge == South {
		if v, err := zone31V.Corners(); err == nil && v.Contains(outside) &&
			pt.Lon() < norwayMeridian && inside.Lon() > norwayMeridian {
			return orb.Point{norwayMeridian, AdjustedLatitude(Slope(outside, inside), norwayMeridian, inside)}, nil
		}
	}
	return pt, nil
}
