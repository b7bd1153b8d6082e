// Package lattice generates the MGRS grid lines and labels of a zone.
//
// A lattice is built in the zone's own UTM grid: easting and northing
// values at a fixed interval are converted back to lat/lon, and the lines
// through them are cut where they leave the zone (or the viewport, for
// the finer intervals). Labels name the 100 km squares, or the easting
// and northing values of the finer lines along the viewport edges.
package lattice

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/paulmach/orb"
	"github.com/rotblauer/mgrsd/clip"
	"github.com/rotblauer/mgrsd/common"
	"github.com/rotblauer/mgrsd/gzd"
	"github.com/rotblauer/mgrsd/utm"
)

// ErrTooDense is returned when a viewport asks for more lattice points
// than Options allow, eg. a 100 m grid over a whole zone.
var ErrTooDense = errors.New("too many lattice points")

// DefaultMaxPoints bounds the easting by northing product of one lattice.
const DefaultMaxPoints = 1 << 20

// cornerBuffer insets the corners projected to find the lattice range,
// so that they stay inside the zone.
const cornerBuffer = 0.00001

type Kind int

const (
	KindFine Kind = iota
	KindHundredKm
	KindDivider
)

func (k Kind) String() string {
	switch k {
	case KindFine:
		return "fine"
	case KindHundredKm:
		return "hundredKm"
	case KindDivider:
		return "divider"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Axis is what a line holds constant.
type Axis int

const (
	AxisEasting Axis = iota
	AxisNorthing
	AxisLatitude
	AxisLongitude
)

func (a Axis) String() string {
	switch a {
	case AxisEasting:
		return "easting"
	case AxisNorthing:
		return "northing"
	case AxisLatitude:
		return "latitude"
	case AxisLongitude:
		return "longitude"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

type Style int

const (
	GridLabel Style = iota
	HKLabel
	GZDLabel
)

func (s Style) String() string {
	switch s {
	case GridLabel:
		return "gridLabel"
	case HKLabel:
		return "hkLabel"
	case GZDLabel:
		return "gzdLabel"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// Line is a grid line. Value is the easting or northing in meters, or
// the latitude or longitude in degrees for zone dividers.
type Line struct {
	Points orb.LineString
	Kind   Kind
	Axis   Axis
	Value  float64
}

type Label struct {
	Text   string
	Anchor orb.Point
	Style  Style
}

// Lattice is the grid of one zone.
type Lattice struct {
	Zone     gzd.Zone
	Interval Interval
	Lines    []Line
	Labels   []Label
}

// Options tune label placement and guard against runaway lattices.
// The zero value uses a Web Mercator projector at the viewport zoom and
// the default monospace label font.
type Options struct {
	Projector Projector
	TextWidth func(string) float64
	MaxPoints int
}

func (o Options) projector(zoom common.SlippyZoomLevelT) Projector {
	if o.Projector != nil {
		return o.Projector
	}
	return MercatorProjector{Zoom: zoom, TileSize: DefaultTileSize}
}

func (o Options) textWidth() func(string) float64 {
	if o.TextWidth != nil {
		return o.TextWidth
	}
	return MonospaceWidth
}

func (o Options) maxPoints() int {
	if o.MaxPoints > 0 {
		return o.MaxPoints
	}
	return DefaultMaxPoints
}

// Generate builds the lattice of zone z at the given interval, limited to
// what the viewport shows. A zone out of view yields an empty lattice.
func Generate(z gzd.Zone, interval Interval, vp Viewport, opts Options) (*Lattice, error) {
	g, err := plan(z, interval, vp)
	if err != nil {
		return nil, err
	}
	l := &Lattice{Zone: z, Interval: interval}
	if g == nil {
		return l, nil
	}
	if n := g.size(); n > opts.maxPoints() {
		return nil, fmt.Errorf("%s at %v: %d points: %w", z, interval, n, ErrTooDense)
	}
	g.fill()

	l.Lines = append(g.eastingLines(), g.northingLines()...)
	if interval == HundredKm {
		l.Labels = g.squareLabels(vp, opts.projector(vp.Zoom), opts.textWidth())
	} else {
		l.Labels = g.valueLabels()
	}
	return l, nil
}

// Points is the number of lattice points Generate would compute for the
// same arguments, found without computing them.
func Points(z gzd.Zone, interval Interval, vp Viewport) (int, error) {
	g, err := plan(z, interval, vp)
	if err != nil || g == nil {
		return 0, err
	}
	return g.size(), nil
}

// plan finds the eastings and northings of a lattice. A nil grid means
// the zone is out of view.
func plan(z gzd.Zone, interval Interval, vp Viewport) (*grid, error) {
	if !interval.Valid() {
		return nil, fmt.Errorf("interval %v m: %w", float64(interval), common.ErrOutOfRange)
	}
	corners, err := z.Corners()
	if err != nil {
		return nil, err
	}
	eff, ok := effectiveBound(corners, interval, vp.Clamped().Bound)
	if !ok {
		return nil, nil
	}
	g := &grid{zone: z, corners: corners, eff: eff, interval: interval}
	if err := g.span(); err != nil {
		return nil, err
	}
	return g, nil
}

// effectiveBound is the part of the zone the lattice covers: the zone
// limited to the view's latitudes, and to its longitudes as well unless
// the whole width of the zone is wanted for 100 km squares.
func effectiveBound(c gzd.Corners, interval Interval, view orb.Bound) (orb.Bound, bool) {
	view = alignView(c, view)
	if view.Max.Lon() <= c.West() || view.Min.Lon() >= c.East() {
		return orb.Bound{}, false
	}
	b := c.Bound()
	b.Min[1] = math.Max(b.Min.Lat(), view.Min.Lat())
	b.Max[1] = math.Min(b.Max.Lat(), view.Max.Lat())
	if interval != HundredKm {
		b.Min[0] = math.Max(b.Min.Lon(), view.Min.Lon())
		b.Max[0] = math.Min(b.Max.Lon(), view.Max.Lon())
	}
	return b, b.Min.Lat() < b.Max.Lat() && b.Min.Lon() < b.Max.Lon()
}

// alignView shifts a view that crosses the antimeridian by a turn so
// that it lines up with the zone.
func alignView(c gzd.Corners, view orb.Bound) orb.Bound {
	shift := 0.0
	switch {
	case view.Max.Lon() > 180 && c.East() <= view.Min.Lon():
		shift = -360
	case view.Min.Lon() < -180 && c.West() >= view.Max.Lon():
		shift = 360
	}
	view.Min[0] += shift
	view.Max[0] += shift
	return view
}

// grid is the working state of one lattice.
type grid struct {
	zone     gzd.Zone
	corners  gzd.Corners
	eff      orb.Bound
	interval Interval

	eastings  []float64
	northings []float64
	// points[i][j] is the position of eastings[i], northings[j].
	points [][]orb.Point
}

// span finds the easting and northing values covering the effective bound,
// snapped outward to the interval.
func (g *grid) span() error {
	w, e := g.eff.Min.Lon()+cornerBuffer, g.eff.Max.Lon()-cornerBuffer
	s, n := g.eff.Min.Lat()+cornerBuffer, g.eff.Max.Lat()-cornerBuffer

	var sw, se, nw, ne utm.Coordinate
	for _, c := range []struct {
		dst      *utm.Coordinate
		lat, lon float64
	}{
		{&sw, s, w}, {&se, s, e}, {&nw, n, w}, {&ne, n, e},
	} {
		coord, err := utm.ForwardInZone(c.lat, c.lon, g.zone.Number)
		if err != nil {
			return fmt.Errorf("%s corner: %w", g.zone, err)
		}
		*c.dst = coord
	}

	step := float64(g.interval)
	g.eastings = steps(
		common.FloorTo(math.Min(sw.Easting, nw.Easting), step),
		common.CeilTo(math.Max(se.Easting, ne.Easting), step),
		step,
	)
	g.northings = steps(
		common.FloorTo(math.Min(sw.Northing, se.Northing), step),
		common.CeilTo(math.Max(nw.Northing, ne.Northing), step),
		step,
	)
	return nil
}

func (g *grid) size() int {
	return len(g.eastings) * len(g.northings)
}

func steps(from, to, step float64) []float64 {
	var out []float64
	for v := from; v <= to; v += step {
		out = append(out, v)
	}
	return out
}

func (g *grid) fill() {
	g.points = make([][]orb.Point, len(g.eastings))
	for i, e := range g.eastings {
		g.points[i] = make([]orb.Point, len(g.northings))
		for j, n := range g.northings {
			pt, err := utm.Inverse(utm.Coordinate{
				Easting:    e,
				Northing:   n,
				ZoneNumber: g.zone.Number,
				ZoneLetter: g.zone.Band,
			})
			if err != nil {
				pt = orb.Point{math.NaN(), math.NaN()}
			}
			g.points[i][j] = pt
		}
	}
}

func (g *grid) at(i, j int) orb.Point {
	return g.points[i][j]
}

func finite(pt orb.Point) bool {
	return !math.IsNaN(pt[0]) && !math.IsNaN(pt[1]) && !math.IsInf(pt[0], 0) && !math.IsInf(pt[1], 0)
}

// clampLat keeps an interpolated line end inside the zone's latitudes.
func clampLat(c gzd.Corners, lat float64) float64 {
	return common.Clamp(lat, c.South(), c.North())
}

func kindOf(v float64) Kind {
	if math.Mod(v, float64(HundredKm)) == 0 {
		return KindHundredKm
	}
	return KindFine
}

// eastingLines runs each easting north through the zone. Points past the
// zone's east or west edge are dropped, and the last point south and the
// first point north of it are clipped to the zone boundary.
func (g *grid) eastingLines() []Line {
	c := g.corners
	var lines []Line
	for i, e := range g.eastings {
		var ls orb.LineString
		for j := range g.northings {
			pt := g.at(i, j)
			if !finite(pt) || pt.Lon() > c.East() || pt.Lon() < c.West() {
				continue
			}
			var err error
			switch {
			case pt.Lat() < c.South():
				if j+1 == len(g.northings) {
					continue
				}
				next := g.at(i, j+1)
				if !finite(next) || next.Lat() < c.South() {
					continue
				}
				pt, err = clip.ToBoundary(g.zone, c, next, pt)
			case pt.Lat() > c.North():
				if j == 0 {
					continue
				}
				prev := g.at(i, j-1)
				if !finite(prev) || prev.Lat() > c.North() {
					continue
				}
				pt, err = clip.ToBoundary(g.zone, c, prev, pt)
			}
			if err != nil {
				slog.Debug("Skipping lattice point", "zone", g.zone, "easting", e, "error", err)
				continue
			}
			if !finite(pt) {
				continue
			}
			ls = append(ls, pt)
		}
		if len(ls) >= 2 {
			lines = append(lines, Line{Points: ls, Kind: kindOf(e), Axis: AxisEasting, Value: e})
		}
	}
	return lines
}

// northingLines runs each northing east through the effective bound.
// Points north or south of the zone are dropped. The line starts on the
// west edge and stops at the east edge, interpolating between lattice points.
func (g *grid) northingLines() []Line {
	c := g.corners
	west, east := g.eff.Min.Lon(), g.eff.Max.Lon()
	var lines []Line
	for j, n := range g.northings {
		var ls orb.LineString
		for i := range g.eastings {
			pt := g.at(i, j)
			if !finite(pt) || pt.Lat() > c.North() || pt.Lat() < c.South() {
				continue
			}
			if len(ls) == 0 {
				if pt.Lon() > east {
					break
				}
				if pt.Lon() < west {
					if i+1 == len(g.eastings) {
						break
					}
					next := g.at(i+1, j)
					if !finite(next) || next.Lon() < west {
						continue
					}
					pt = orb.Point{west, clampLat(c, clip.AdjustedLatitude(clip.Slope(pt, next), west, pt))}
				}
				ls = append(ls, pt)
				continue
			}
			if pt.Lon() > east {
				prev := g.at(i-1, j)
				if finite(prev) {
					ls = append(ls, orb.Point{east, clampLat(c, clip.AdjustedLatitude(clip.Slope(prev, pt), east, pt))})
				}
				break
			}
			ls = append(ls, pt)
		}
		if len(ls) >= 2 {
			lines = append(lines, Line{Points: ls, Kind: kindOf(n), Axis: AxisNorthing, Value: n})
		}
	}
	return lines
}
