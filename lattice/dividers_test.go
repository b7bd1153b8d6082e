package lattice

import (
	"testing"

	"github.com/paulmach/orb"
)

// meridianSpans collects the latitude span of each divider meridian piece by longitude.
func meridianSpans(lines []Line) map[float64][][2]float64 {
	spans := map[float64][][2]float64{}
	for _, l := range lines {
		if l.Kind != KindDivider {
			continue
		}
		if l.Axis != AxisLongitude {
			continue
		}
		lo, hi := l.Points[0].Lat(), l.Points[len(l.Points)-1].Lat()
		if lo > hi {
			lo, hi = hi, lo
		}
		spans[l.Value] = append(spans[l.Value], [2]float64{lo, hi})
	}
	return spans
}

func parallels(lines []Line) map[float64]bool {
	lats := map[float64]bool{}
	for _, l := range lines {
		if l.Axis == AxisLatitude {
			lats[l.Value] = true
		}
	}
	return lats
}

func TestDividers_Norway(t *testing.T) {
	vp := Viewport{Bound: orb.Bound{Min: orb.Point{0, 50}, Max: orb.Point{20, 70}}, Zoom: 5}
	lines, _ := Dividers(vp)
	spans := meridianSpans(lines)

	if got := spans[3]; len(got) != 1 || got[0] != [2]float64{56, 64} {
		t.Errorf("3°E: %v", got)
	}
	if got := spans[6]; len(got) != 2 || got[0] != [2]float64{50, 56} || got[1] != [2]float64{64, 70} {
		t.Errorf("6°E: %v", got)
	}
	if got := spans[12]; len(got) != 1 || got[0] != [2]float64{50, 70} {
		t.Errorf("12°E: %v", got)
	}

	lats := parallels(lines)
	for _, lat := range []float64{56, 64} {
		if !lats[lat] {
			t.Errorf("missing the %v° band edge", lat)
		}
	}
	if len(lats) != 2 {
		t.Errorf("parallels %v", lats)
	}
}

func TestDividers_Svalbard(t *testing.T) {
	vp := Viewport{Bound: orb.Bound{Min: orb.Point{0, 70}, Max: orb.Point{40, 84}}, Zoom: 5}
	lines, labels := Dividers(vp)
	spans := meridianSpans(lines)

	for _, lon := range []float64{9, 21, 33} {
		if got := spans[lon]; len(got) != 1 || got[0] != [2]float64{72, 84} {
			t.Errorf("%v°E: %v", lon, got)
		}
	}
	for _, lon := range []float64{12, 18, 24, 30, 36} {
		if got := spans[lon]; len(got) != 1 || got[0] != [2]float64{70, 72} {
			t.Errorf("%v°E: %v", lon, got)
		}
	}

	lats := parallels(lines)
	if !lats[72] || !lats[84] || lats[80] {
		t.Errorf("parallels %v", lats)
	}

	want := map[string]orb.Point{
		"31X": {4.5, 76},
		"33X": {15, 76},
		"35X": {27, 76},
		"37X": {37.5, 76},
	}
	seen := map[string]int{}
	for _, l := range labels {
		if l.Style != GZDLabel {
			t.Errorf("unexpected style %v", l.Style)
		}
		if l.Anchor.Lat() != 76 {
			continue
		}
		seen[l.Text]++
		if pt, ok := want[l.Text]; !ok || pt != l.Anchor {
			t.Errorf("label %s at %v", l.Text, l.Anchor)
		}
	}
	for text := range want {
		if seen[text] != 1 {
			t.Errorf("%s labeled %d times", text, seen[text])
		}
	}
}

func TestDividers_NorwayLabels(t *testing.T) {
	vp := Viewport{Bound: orb.Bound{Min: orb.Point{-6, 56}, Max: orb.Point{18, 64}}, Zoom: 5}
	_, labels := Dividers(vp)
	got := map[string]orb.Point{}
	for _, l := range labels {
		got[l.Text] = l.Anchor
	}
	want := map[string]orb.Point{
		"30V": {-3, 60},
		"31V": {1.5, 60},
		"32V": {7.5, 60},
		"33V": {15, 60},
	}
	for text, pt := range want {
		if got[text] != pt {
			t.Errorf("%s at %v, want %v", text, got[text], pt)
		}
	}
	if len(got) != len(want) {
		t.Errorf("labels %v", got)
	}
}

func TestDividers_Antimeridian(t *testing.T) {
	vp := Viewport{Bound: orb.Bound{Min: orb.Point{177, -4}, Max: orb.Point{183, 4}}, Zoom: 6}
	lines, labels := Dividers(vp)
	if spans := meridianSpans(lines); len(spans[180]) != 1 {
		t.Errorf("antimeridian: %v", spans)
	}
	got := map[string]bool{}
	for _, l := range labels {
		got[l.Text] = true
	}
	// Band labels sit at ±4°, on the view's edges.
	if !got["60N"] || !got["1N"] || !got["60M"] || !got["1M"] {
		t.Errorf("labels %v", got)
	}
}
