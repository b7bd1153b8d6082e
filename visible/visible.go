// Package visible works out which grid zones a map viewport shows.
//
// Zones are found by sampling the zone of each viewport corner and filling
// in the zone numbers and bands between them. The irregular zones around
// Norway and Svalbard make corner sampling miss narrow neighbors, which a
// handful of named rules patch up. Combinations those rules do not cover
// are left alone and can be reported with Gaps.
package visible

import (
	"github.com/paulmach/orb"
	"github.com/rotblauer/mgrsd/gzd"
	"github.com/rotblauer/mgrsd/utm"
)

// Corners of a viewport.
type Corners struct {
	NW, NE, SE, SW orb.Point
}

// CornersOf returns the corners of a bound.
func CornersOf(b orb.Bound) Corners {
	return Corners{
		NW: orb.Point{b.Min.Lon(), b.Max.Lat()},
		NE: b.Max,
		SE: orb.Point{b.Max.Lon(), b.Min.Lat()},
		SW: b.Min,
	}
}

// Bound returns the bound of the corners.
// The east edge may be past 180 for a viewport across the antimeridian.
func (c Corners) Bound() orb.Bound {
	return orb.Bound{Min: c.SW, Max: c.NE}
}

// maxLatitude is just inside the northern edge of band X.
const maxLatitude = utm.MaxLatitude - 1e-9

// samplePoint moves pt onto the grid, clamping its latitude and wrapping
// its longitude.
func samplePoint(pt orb.Point) orb.Point {
	lon := pt.Lon()
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	lat := pt.Lat()
	if lat < utm.MinLatitude {
		lat = utm.MinLatitude
	}
	if lat > maxLatitude {
		lat = maxLatitude
	}
	return orb.Point{lon, lat}
}

// Resolve returns the zones visible in the viewport with corners c.
func Resolve(c Corners) ([]gzd.Zone, error) {
	var zones [4]gzd.Zone
	for i, pt := range []orb.Point{c.NW, c.NE, c.SE, c.SW} {
		z, err := gzd.At(samplePoint(pt))
		if err != nil {
			return nil, err
		}
		zones[i] = z
	}
	return Zones(zones[0], zones[1], zones[2], zones[3]), nil
}

// span is the working state of a resolution.
type span struct {
	nw, ne, se, sw gzd.Zone
	numbers        []int
	letters        []byte
	zones          []gzd.Zone
}

// Zones returns the zones covered by a viewport whose corners fall in the given zones.
func Zones(nw, ne, se, sw gzd.Zone) []gzd.Zone {
	if nw == se {
		return []gzd.Zone{nw}
	}
	s := &span{nw: nw, ne: ne, se: se, sw: sw}
	s.numbers = zoneNumbers(nw.Number, ne.Number)
	s.letters = bandLetters(sw.Band, nw.Band)

	ruleNorwayWest(s)
	s.expand()
	ruleSvalbardGaps(s)
	rule31WNeeds32V(s)
	rule32VNeeds31U(s)

	return dedupe(s.zones)
}

// zoneNumbers runs west to east from the zone of the west corner to the zone
// of the east corner, wrapping from 60 to 1 across the antimeridian.
// Around Norway and Svalbard the east zone number can be lower than the
// west one without any wrap, eg. 32V to 31W.
func zoneNumbers(west, east int) []int {
	if west == east {
		return []int{west}
	}
	if west > east && west-east < 30 {
		west, east = east, west
	}
	var numbers []int
	for n := west; ; n = n%60 + 1 {
		numbers = append(numbers, n)
		if n == east {
			break
		}
	}
	return numbers
}

// bandLetters steps through the band alphabet from south to north.
func bandLetters(south, north byte) []byte {
	from, to := utm.BandIndex(south), utm.BandIndex(north)
	if from < 0 || to < 0 {
		return nil
	}
	if from > to {
		from, to = to, from
	}
	letters := make([]byte, 0, to-from+1)
	for i := from; i <= to; i++ {
		letters = append(letters, utm.Bands[i])
	}
	return letters
}

// expand crosses the zone numbers with the band letters, one row of
// numbers per letter, south first.
func (s *span) expand() {
	s.zones = make([]gzd.Zone, 0, len(s.numbers)*len(s.letters))
	for _, l := range s.letters {
		for _, n := range s.numbers {
			s.zones = append(s.zones, gzd.Zone{Number: n, Band: l})
		}
	}
}

func (s *span) has(z gzd.Zone) bool {
	for _, v := range s.zones {
		if v == z {
			return true
		}
	}
	return false
}

func (s *span) add(z gzd.Zone) {
	if !s.has(z) {
		s.zones = append(s.zones, z)
	}
}

func dedupe(zones []gzd.Zone) []gzd.Zone {
	seen := make(map[gzd.Zone]bool, len(zones))
	out := zones[:0]
	for _, z := range zones {
		if seen[z] {
			continue
		}
		seen[z] = true
		out = append(out, z)
	}
	return out
}
