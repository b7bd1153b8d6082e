package visible

import (
	"github.com/paulmach/orb"
	"github.com/rotblauer/mgrsd/gzd"
	"github.com/rotblauer/mgrsd/utm"
)

// Gaps returns the zones that the viewport overlaps but that are missing
// from zones. They are reported, not added: corner sampling plus the named
// rules is the contract, and a gap is a known limitation of it.
func Gaps(c Corners, zones []gzd.Zone, idx *gzd.Index) []gzd.Zone {
	have := make(map[gzd.Zone]bool, len(zones))
	for _, z := range zones {
		have[z] = true
	}
	var gaps []gzd.Zone
	for _, b := range queryBounds(c) {
		for _, z := range idx.Intersecting(b) {
			if have[z] {
				continue
			}
			have[z] = true
			gaps = append(gaps, z)
		}
	}
	return gaps
}

// queryBounds clamps the viewport to the grid and splits it at the antimeridian.
func queryBounds(c Corners) []orb.Bound {
	south := max(c.SW.Lat(), utm.MinLatitude)
	north := min(c.NW.Lat(), utm.MaxLatitude)
	if south >= north {
		return nil
	}
	west := samplePoint(c.SW).Lon()
	east := samplePoint(c.NE).Lon()
	if c.NE.Lon()-c.SW.Lon() >= 360 {
		west, east = -180, 180
	}
	if west <= east {
		return []orb.Bound{{Min: orb.Point{west, south}, Max: orb.Point{east, north}}}
	}
	return []orb.Bound{
		{Min: orb.Point{west, south}, Max: orb.Point{180, north}},
		{Min: orb.Point{-180, south}, Max: orb.Point{east, north}},
	}
}
