package gzd

import "github.com/paulmach/orb"

// Corner indices.
const (
	SW = iota
	NW
	NE
	SE
)

// Corners of a zone, in the order southwest, northwest, northeast, southeast.
type Corners [4]orb.Point

func (c Corners) West() float64  { return c[SW].Lon() }
func (c Corners) East() float64  { return c[NE].Lon() }
func (c Corners) North() float64 { return c[NW].Lat() }
func (c Corners) South() float64 { return c[SW].Lat() }

func (c Corners) Bound() orb.Bound {
	return orb.Bound{Min: c[SW], Max: c[NE]}
}

// Ring is the closed boundary, counter clockwise from the southwest corner.
func (c Corners) Ring() orb.Ring {
	return orb.Ring{c[SW], c[SE], c[NE], c[NW], c[SW]}
}

// Contains reports whether pt is inside or on the boundary.
func (c Corners) Contains(pt orb.Point) bool {
	return c.Bound().Contains(pt)
}
