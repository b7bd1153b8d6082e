package lattice

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
	"github.com/rotblauer/mgrsd/common"
	"github.com/rotblauer/mgrsd/utm"
)

// Viewport is the part of the map on screen.
// The east edge of Bound may be past 180 when the view crosses the antimeridian.
type Viewport struct {
	Bound orb.Bound               `json:"bound"`
	Zoom  common.SlippyZoomLevelT `json:"zoom"`
}

// ParseBound reads a "west,south,east,north" bounding box.
// The east edge may pass 180 for a view across the antimeridian.
func ParseBound(s string) (orb.Bound, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("bbox %q: %w", s, common.ErrFormat)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("bbox %q: %w", s, common.ErrFormat)
		}
		v[i] = f
	}
	b := orb.Bound{Min: orb.Point{v[0], v[1]}, Max: orb.Point{v[2], v[3]}}
	if err := CheckBound(b); err != nil {
		return orb.Bound{}, fmt.Errorf("bbox %q: %w", s, err)
	}
	return b, nil
}

// CheckBound rejects an empty or inverted bound, or one outside the
// latitudes and the longitudes a map view can pan to.
func CheckBound(b orb.Bound) error {
	if b.Min.Lon() >= b.Max.Lon() || b.Min.Lat() >= b.Max.Lat() ||
		b.Min.Lat() < -90 || b.Max.Lat() > 90 || b.Min.Lon() < -180 || b.Max.Lon() > 540 {
		return common.ErrOutOfRange
	}
	return nil
}

// Clamped returns the viewport with its latitudes limited to the UTM grid.
func (vp Viewport) Clamped() Viewport {
	vp.Bound.Min[1] = common.Clamp(vp.Bound.Min.Lat(), utm.MinLatitude, utm.MaxLatitude)
	vp.Bound.Max[1] = common.Clamp(vp.Bound.Max.Lat(), utm.MinLatitude, utm.MaxLatitude)
	return vp
}

// Rect returns the viewport as an s2 rectangle, longitudes wrapped.
func (vp Viewport) Rect() s2.Rect {
	lat := r1.Interval{
		Lo: vp.Bound.Min.Lat() * math.Pi / 180,
		Hi: vp.Bound.Max.Lat() * math.Pi / 180,
	}
	if vp.Bound.Max.Lon()-vp.Bound.Min.Lon() >= 360 {
		return s2.Rect{Lat: lat, Lng: s1.FullInterval()}
	}
	lng := s1.IntervalFromEndpoints(
		wrapLongitude(vp.Bound.Min.Lon())*math.Pi/180,
		wrapLongitude(vp.Bound.Max.Lon())*math.Pi/180,
	)
	return s2.Rect{Lat: lat, Lng: lng}
}

// Contains reports whether pt is on screen.
func (vp Viewport) Contains(pt orb.Point) bool {
	return vp.Rect().ContainsLatLng(s2.LatLngFromDegrees(pt.Lat(), wrapLongitude(pt.Lon())))
}

func wrapLongitude(lon float64) float64 {
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}
	return lon
}

// Projector places geographic points on screen, in pixels.
type Projector interface {
	Project(orb.Point) orb.Point
}

// DefaultTileSize is the edge of a slippy map tile, in pixels.
const DefaultTileSize = 256

// MercatorProjector projects to the pixel space of a Web Mercator map.
type MercatorProjector struct {
	Zoom     common.SlippyZoomLevelT
	TileSize float64
}

func (p MercatorProjector) Project(pt orb.Point) orb.Point {
	size := p.TileSize
	if size <= 0 {
		size = DefaultTileSize
	}
	half := math.Pi * orb.EarthRadius
	scale := size * math.Exp2(float64(p.Zoom)) / (2 * half)
	m := project.WGS84.ToMercator(pt)
	return orb.Point{(m.X() + half) * scale, (half - m.Y()) * scale}
}

// MonospaceAdvance is the width of one character of the default 14px
// Courier New label font.
const MonospaceAdvance = 8.4

// MonospaceWidth measures label text set in the default font.
func MonospaceWidth(s string) float64 {
	n := 0
	for range s {
		n++
	}
	return float64(n) * MonospaceAdvance
}
