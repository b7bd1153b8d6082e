package lattice

import (
	"log/slog"
	"math"

	"github.com/paulmach/orb"
	orbclip "github.com/paulmach/orb/clip"
	"github.com/rotblauer/mgrsd/mgrs"
	"github.com/rotblauer/mgrsd/utm"
)

// bandHeight and zoneWidth are the regular GZD dimensions, in degrees.
const (
	bandHeight = 8.0
	zoneWidth  = 6.0
)

// segment is a piece of a zone meridian, offset from the 6° tick it belongs to.
type segment struct {
	offset       float64
	south, north float64
}

// meridianSegments breaks the meridian at tick around the wide zones of
// Norway (32V) and Svalbard (31X, 33X, 35X, 37X).
func meridianSegments(tick float64) []segment {
	switch tick {
	case 6:
		return []segment{{0, utm.MinLatitude, 56}, {-3, 56, 64}, {0, 64, 72}}
	case 12, 24, 36:
		return []segment{{0, utm.MinLatitude, 72}, {-3, 72, utm.MaxLatitude}}
	case 18, 30:
		return []segment{{0, utm.MinLatitude, 72}}
	}
	return []segment{{0, utm.MinLatitude, utm.MaxLatitude}}
}

// dividerLatitudes are the band edges; band X is 12° tall.
func dividerLatitudes() []float64 {
	var lats []float64
	for lat := utm.MinLatitude; lat <= 72; lat += bandHeight {
		lats = append(lats, lat)
	}
	return append(lats, utm.MaxLatitude)
}

// Dividers returns the GZD boundaries in the viewport and a label for each zone.
func Dividers(vp Viewport) ([]Line, []Label) {
	b := vp.Bound
	var lines []Line
	add := func(ls orb.LineString, axis Axis, v float64) {
		for _, piece := range orbclip.LineString(b, ls) {
			if len(piece) < 2 || piece[0] == piece[len(piece)-1] {
				continue
			}
			lines = append(lines, Line{Points: piece, Kind: KindDivider, Axis: axis, Value: v})
		}
	}

	for _, lat := range dividerLatitudes() {
		if lat < b.Min.Lat() || lat > b.Max.Lat() {
			continue
		}
		add(orb.LineString{{b.Min.Lon(), lat}, {b.Max.Lon(), lat}}, AxisLatitude, lat)
	}

	var labels []Label
	// Ticks one zone beyond each side of the view, for segments offset into it.
	first := math.Floor(b.Min.Lon()/zoneWidth)*zoneWidth - zoneWidth
	for tick := first; tick <= b.Max.Lon()+zoneWidth; tick += zoneWidth {
		nt := wrapTick(tick)
		for _, s := range meridianSegments(nt) {
			lon := tick + s.offset
			add(orb.LineString{{lon, s.south}, {lon, s.north}}, AxisLongitude, wrapLongitude(lon))
		}
		labels = append(labels, zoneLabels(vp, tick, nt)...)
	}
	return lines, labels
}

// wrapTick maps a tick onto [-180, 180).
func wrapTick(tick float64) float64 {
	t := math.Mod(tick+180, 360)
	if t < 0 {
		t += 360
	}
	return t - 180
}

// zoneLabels labels the zones east of the tick meridian, at the middle
// of each band. The widened zones are labeled at their own middle, and
// the Svalbard zones once rather than at every tick they cover.
func zoneLabels(vp Viewport, tick, nt float64) []Label {
	var labels []Label
	for lat := -76.0; lat <= 76; lat += bandHeight {
		lon := nt + zoneWidth/2
		switch {
		case lat == 60 && nt == 0:
			lon = 1.5
		case lat == 60 && nt == 6:
			lon = 7.5
		case lat == 76 && nt == 0:
			lon = 4.5
		case lat == 76 && nt == 12:
			lon = 15
		case lat == 76 && nt == 24:
			lon = 27
		case lat == 76 && nt == 36:
			lon = 37.5
		case lat == 76 && (nt == 6 || nt == 18 || nt == 30):
			continue
		}
		anchor := orb.Point{tick + lon - nt, lat}
		if !vp.Bound.Contains(anchor) {
			continue
		}
		text, err := mgrs.GZDOf(orb.Point{lon, lat})
		if err != nil {
			slog.Debug("Skipping zone label", "lon", lon, "lat", lat, "error", err)
			continue
		}
		labels = append(labels, Label{Text: text, Anchor: anchor, Style: GZDLabel})
	}
	return labels
}
