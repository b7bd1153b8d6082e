package gzd

import (
	"sort"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/rotblauer/mgrsd/utm"
)

// indexedZone implements rtreego.Spatial.
type indexedZone struct {
	zone  Zone
	bound orb.Bound
}

func (e indexedZone) Bounds() rtreego.Rect {
	return boundRect(e.bound)
}

func boundRect(b orb.Bound) rtreego.Rect {
	point := rtreego.Point{b.Min.Lon(), b.Min.Lat()}
	lengths := []float64{
		b.Max.Lon() - b.Min.Lon(),
		b.Max.Lat() - b.Min.Lat(),
	}
	// rtreego refuses degenerate rects.
	for i := range lengths {
		if lengths[i] <= 0 {
			lengths[i] = 1e-9
		}
	}
	rect, _ := rtreego.NewRect(point, lengths)
	return rect
}

// Index is an R-tree over every zone's boundary.
type Index struct {
	rtree *rtreego.Rtree
}

// NewIndex builds the index of all zones.
func NewIndex() *Index {
	rtree := rtreego.NewTree(2, 25, 50)
	for _, z := range All() {
		c, err := z.Corners()
		if err != nil {
			continue
		}
		rtree.Insert(indexedZone{zone: z, bound: c.Bound()})
	}
	return &Index{rtree: rtree}
}

// Len returns the number of zones indexed.
func (idx *Index) Len() int {
	return idx.rtree.Size()
}

// Intersecting returns the zones whose boundary overlaps b with a
// positive area, sorted by zone number then band.
// Zones merely touching b along an edge are left out.
func (idx *Index) Intersecting(b orb.Bound) []Zone {
	var zones []Zone
	for _, s := range idx.rtree.SearchIntersect(boundRect(b)) {
		e := s.(indexedZone)
		if !overlaps(e.bound, b) {
			continue
		}
		zones = append(zones, e.zone)
	}
	sort.Slice(zones, func(i, j int) bool {
		if zones[i].Number != zones[j].Number {
			return zones[i].Number < zones[j].Number
		}
		return utm.BandIndex(zones[i].Band) < utm.BandIndex(zones[j].Band)
	})
	return zones
}

func overlaps(a, b orb.Bound) bool {
	return a.Min.Lon() < b.Max.Lon() && b.Min.Lon() < a.Max.Lon() &&
		a.Min.Lat() < b.Max.Lat() && b.Min.Lat() < a.Max.Lat()
}
