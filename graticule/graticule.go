// Package graticule draws the MGRS grid for a map viewport: the zone
// dividers, and at closer zooms the lattice of every visible zone.
package graticule

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/paulmach/orb/geojson"
	"github.com/rotblauer/mgrsd/gzd"
	"github.com/rotblauer/mgrsd/lattice"
	"github.com/rotblauer/mgrsd/metrics"
	"github.com/rotblauer/mgrsd/params"
	"github.com/rotblauer/mgrsd/visible"
)

// Skip records a zone that could not be drawn.
type Skip struct {
	Zone gzd.Zone
	Err  error
}

func (s Skip) String() string {
	return fmt.Sprintf("%s: %v", s.Zone, s.Err)
}

// Result is a rendered graticule.
type Result struct {
	Viewport lattice.Viewport
	// Interval is zero when the zoom is too far out for a lattice.
	Interval lattice.Interval
	Zones    []gzd.Zone
	// Gaps are zones in view that Zones missed, found only when Render
	// was given an index.
	Gaps    []gzd.Zone
	Lines   []lattice.Line
	Labels  []lattice.Label
	Skipped []Skip

	style params.StyleConfig
}

type renderer struct {
	opts  lattice.Options
	index *gzd.Index
}

type Option func(*renderer)

// WithProjector places labels with p instead of the Web Mercator default.
func WithProjector(p lattice.Projector) Option {
	return func(r *renderer) {
		r.opts.Projector = p
	}
}

// WithTextWidth measures label text with fn.
func WithTextWidth(fn func(string) float64) Option {
	return func(r *renderer) {
		r.opts.TextWidth = fn
	}
}

// WithIndex has Render report gaps in the visible zones using idx.
func WithIndex(idx *gzd.Index) Option {
	return func(r *renderer) {
		r.index = idx
	}
}

// Render draws the graticule of the viewport. A zone that fails to
// draw is skipped and recorded in the result. Errors are returned for a
// bad config, and with lattice.ErrTooDense for a viewport whose zones
// together need more than cfg.MaxRenderPoints lattice points.
func Render(vp lattice.Viewport, cfg *params.GridConfig, opts ...Option) (*Result, error) {
	defer metrics.Timer("graticule/render").UpdateSince(time.Now())

	if err := cfg.Thresholds.Validate(); err != nil {
		return nil, err
	}
	r := &renderer{opts: lattice.Options{MaxPoints: cfg.MaxPoints}}
	for _, o := range opts {
		o(r)
	}

	res := &Result{Viewport: vp, style: cfg.Style}
	res.Lines, res.Labels = lattice.Dividers(vp)

	interval, ok := lattice.SelectInterval(vp.Zoom, cfg.Thresholds)
	if !ok {
		return res, nil
	}
	res.Interval = interval

	corners := visible.CornersOf(vp.Bound)
	zones, err := visible.Resolve(corners)
	if err != nil {
		return nil, err
	}
	res.Zones = zones
	if r.index != nil {
		res.Gaps = visible.Gaps(corners, zones, r.index)
	}

	if err := checkBudget(zones, interval, vp, cfg.MaxRenderPoints); err != nil {
		metrics.Counter("graticule/refused").Inc(1)
		return nil, err
	}

	for _, z := range zones {
		l, err := lattice.Generate(z, interval, vp, r.opts)
		if err != nil {
			slog.Debug("Skipping zone", "zone", z, "interval", interval, "error", err)
			metrics.Counter("graticule/skipped").Inc(1)
			res.Skipped = append(res.Skipped, Skip{Zone: z, Err: err})
			continue
		}
		res.Lines = append(res.Lines, l.Lines...)
		res.Labels = append(res.Labels, l.Labels...)
	}
	metrics.Counter("graticule/zones").Inc(int64(len(zones)))
	metrics.Counter("graticule/lines").Inc(int64(len(res.Lines)))
	metrics.Counter("graticule/labels").Inc(int64(len(res.Labels)))
	return res, nil
}

// checkBudget sums the lattice points of every zone before any is computed.
// Zones that fail to plan are left for Generate to skip.
func checkBudget(zones []gzd.Zone, interval lattice.Interval, vp lattice.Viewport, budget int) error {
	if budget <= 0 {
		budget = params.DefaultMaxRenderPoints
	}
	total := 0
	for _, z := range zones {
		n, err := lattice.Points(z, interval, vp)
		if err != nil {
			continue
		}
		total += n
		if total > budget {
			return fmt.Errorf("%v grid over %d zones: more than %d points: %w", interval, len(zones), budget, lattice.ErrTooDense)
		}
	}
	return nil
}

// FeatureCollection renders the result as GeoJSON, lines as LineStrings
// and labels as Points, each carrying its style.
func (r *Result) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, l := range r.Lines {
		f := geojson.NewFeature(l.Points)
		f.Properties["kind"] = l.Kind.String()
		f.Properties["axis"] = l.Axis.String()
		f.Properties["value"] = l.Value
		switch l.Kind {
		case lattice.KindDivider:
			f.Properties["color"] = r.style.Color
			f.Properties["dashArray"] = r.style.DashArray
			f.Properties["weight"] = r.style.Weight
		case lattice.KindHundredKm:
			f.Properties["color"] = r.style.HKColor
			f.Properties["dashArray"] = r.style.HKDashArray
		default:
			f.Properties["color"] = r.style.GridColor
			f.Properties["dashArray"] = r.style.GridDashArray
		}
		fc.Append(f)
	}
	for _, l := range r.Labels {
		f := geojson.NewFeature(l.Anchor)
		f.Properties["text"] = l.Text
		f.Properties["style"] = l.Style.String()
		if l.Style == lattice.GZDLabel {
			f.Properties["font"] = r.style.Font
			f.Properties["fontColor"] = r.style.FontColor
		} else {
			f.Properties["font"] = r.style.GridFont
			f.Properties["fontColor"] = r.style.GridFontColor
		}
		fc.Append(f)
	}

	zones := make([]string, len(r.Zones))
	for i, z := range r.Zones {
		zones[i] = z.String()
	}
	fc.ExtraMembers = geojson.Properties{
		"zoom":  int(r.Viewport.Zoom),
		"zones": zones,
	}
	if r.Interval > 0 {
		fc.ExtraMembers["interval"] = r.Interval.String()
	}
	fc.BBox = geojson.NewBBox(r.Viewport.Bound)
	return fc
}
