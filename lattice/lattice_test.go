package lattice

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/paulmach/orb"
	"github.com/rotblauer/mgrsd/common"
	"github.com/rotblauer/mgrsd/gzd"
)

func TestSelectInterval(t *testing.T) {
	th := DefaultThresholds()
	cases := []struct {
		zoom common.SlippyZoomLevelT
		want Interval
		ok   bool
	}{
		{0, 0, false},
		{5, 0, false},
		{6, HundredKm, true},
		{7, TenKm, true},
		{9, TenKm, true},
		{10, OneKm, true},
		{12, OneKm, true},
		{13, HundredMeters, true},
		{15, HundredMeters, true},
		{20, HundredMeters, true},
	}
	for _, c := range cases {
		got, ok := SelectInterval(c.zoom, th)
		if got != c.want || ok != c.ok {
			t.Errorf("SelectInterval(%d) = %v, %v, want %v, %v", c.zoom, got, ok, c.want, c.ok)
		}
	}
}

func TestThresholds_Validate(t *testing.T) {
	if err := DefaultThresholds().Validate(); err != nil {
		t.Fatal(err)
	}
	bad := []Thresholds{
		{HundredKMinZoom: 9, TenKMinZoom: 6, OneKMinZoom: 12, HundredMMinZoom: 15},
		{HundredKMinZoom: -1, TenKMinZoom: 9, OneKMinZoom: 12, HundredMMinZoom: 15},
		{HundredKMinZoom: 6, TenKMinZoom: 9, OneKMinZoom: 12, HundredMMinZoom: 30},
	}
	for _, th := range bad {
		if err := th.Validate(); !errors.Is(err, common.ErrOutOfRange) {
			t.Errorf("%+v: got %v", th, err)
		}
	}
}

func TestInterval_String(t *testing.T) {
	for iv, want := range map[Interval]string{
		HundredMeters: "100 m",
		OneKm:         "1 km",
		TenKm:         "10 km",
		HundredKm:     "100 km",
	} {
		if got := iv.String(); got != want {
			t.Errorf("%v m: got %q, want %q", float64(iv), got, want)
		}
	}
}

func TestLabelText(t *testing.T) {
	cases := []struct {
		v        float64
		interval Interval
		want     string
	}{
		{583000, OneKm, "83"},
		{4507000, OneKm, "7"},
		{4510000, TenKm, "10"},
		{500000, TenKm, "0"},
		{583900, HundredMeters, "839"},
		{4500500, HundredMeters, "005"},
	}
	for _, c := range cases {
		if got := LabelText(c.v, c.interval); got != c.want {
			t.Errorf("LabelText(%v, %v) = %q, want %q", c.v, c.interval, got, c.want)
		}
	}
}

func TestViewport(t *testing.T) {
	vp := Viewport{Bound: orb.Bound{Min: orb.Point{170, -85}, Max: orb.Point{190, 88}}}
	c := vp.Clamped()
	if c.Bound.Min.Lat() != -80 || c.Bound.Max.Lat() != 84 {
		t.Errorf("Clamped = %v", c.Bound)
	}
	for _, pt := range []orb.Point{{175, 0}, {-175, 10}, {185, 10}} {
		if !vp.Contains(pt) {
			t.Errorf("%v should be in view", pt)
		}
	}
	for _, pt := range []orb.Point{{160, 0}, {-160, 0}} {
		if vp.Contains(pt) {
			t.Errorf("%v should be out of view", pt)
		}
	}
}

func TestMercatorProjector(t *testing.T) {
	p := MercatorProjector{Zoom: 0, TileSize: 256}
	center := p.Project(orb.Point{0, 0})
	if math.Abs(center.X()-128) > 1e-9 || math.Abs(center.Y()-128) > 1e-9 {
		t.Errorf("center at %v", center)
	}
	// One zoom level doubles pixel distances.
	a, b := orb.Point{-74, 40}, orb.Point{-73, 41}
	d0 := dist(MercatorProjector{Zoom: 6}, a, b)
	d1 := dist(MercatorProjector{Zoom: 7}, a, b)
	if math.Abs(d1/d0-2) > 1e-9 {
		t.Errorf("zoom 7 / zoom 6 distance = %v", d1/d0)
	}
}

func dist(p Projector, a, b orb.Point) float64 {
	pa, pb := p.Project(a), p.Project(b)
	return math.Hypot(pa.X()-pb.X(), pa.Y()-pb.Y())
}

var zone18T = gzd.MustParse("18T")

func wholeZone(zoom common.SlippyZoomLevelT) Viewport {
	return Viewport{
		Bound: orb.Bound{Min: orb.Point{-80, 38}, Max: orb.Point{-70, 50}},
		Zoom:  zoom,
	}
}

func TestGenerate_HundredKm(t *testing.T) {
	l, err := Generate(zone18T, HundredKm, wholeZone(7), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Lines) == 0 {
		t.Fatal("no lines")
	}
	c, _ := zone18T.Corners()

	var centralMeridian, fullWidth bool
	for _, line := range l.Lines {
		if line.Kind != KindHundredKm {
			t.Errorf("%v line %v is %v", line.Axis, line.Value, line.Kind)
		}
		for _, pt := range line.Points {
			if pt.Lat() < c.South() || pt.Lat() > c.North() {
				t.Errorf("%v line %v leaves the zone at %v", line.Axis, line.Value, pt)
			}
		}
		first, last := line.Points[0], line.Points[len(line.Points)-1]
		switch line.Axis {
		case AxisEasting:
			if line.Value == 500000 {
				centralMeridian = true
				if first != (orb.Point{-75, 40}) || last != (orb.Point{-75, 48}) {
					t.Errorf("central meridian runs %v to %v", first, last)
				}
			}
		case AxisNorthing:
			if first.Lon() < c.West() || last.Lon() > c.East() {
				t.Errorf("northing line %v runs %v to %v", line.Value, first, last)
			}
			if first.Lon() == c.West() && last.Lon() == c.East() {
				fullWidth = true
			}
		}
	}
	if !centralMeridian {
		t.Error("missing the 500000 easting line")
	}
	if !fullWidth {
		t.Error("no northing line spans the zone edge to edge")
	}

	var wl bool
	for _, label := range l.Labels {
		if label.Style != HKLabel || len(label.Text) != 2 {
			t.Errorf("unexpected label %+v", label)
		}
		if !c.Contains(label.Anchor) {
			t.Errorf("label %s outside the zone at %v", label.Text, label.Anchor)
		}
		wl = wl || label.Text == "WL"
	}
	if !wl {
		t.Error("missing the WL square around New York")
	}
}

func TestGenerate_SquareLabelsNeedRoom(t *testing.T) {
	l, err := Generate(zone18T, HundredKm, wholeZone(4), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Labels) != 0 {
		t.Errorf("got %d labels at zoom 4", len(l.Labels))
	}

	// A narrow font makes room again.
	l, err = Generate(zone18T, HundredKm, wholeZone(4), Options{TextWidth: func(string) float64 { return 1 }})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Labels) == 0 {
		t.Error("no labels with a narrow font")
	}
}

func TestGenerate_OneKm(t *testing.T) {
	vp := Viewport{
		Bound: orb.Bound{Min: orb.Point{-74.1, 40.6}, Max: orb.Point{-73.9, 40.8}},
		Zoom:  12,
	}
	l, err := Generate(zone18T, OneKm, vp, Options{})
	if err != nil {
		t.Fatal(err)
	}

	var startsWest, endsEast, hundredKm bool
	for _, line := range l.Lines {
		if line.Axis != AxisNorthing {
			continue
		}
		first, last := line.Points[0], line.Points[len(line.Points)-1]
		if first.Lon() < -74.1 || last.Lon() > -73.9 {
			t.Errorf("northing line %v runs %v to %v", line.Value, first, last)
		}
		startsWest = startsWest || first.Lon() == -74.1
		endsEast = endsEast || last.Lon() == -73.9
		switch line.Value {
		case 4500000:
			hundredKm = line.Kind == KindHundredKm
		case 4501000:
			if line.Kind != KindFine {
				t.Errorf("4501000 is %v", line.Kind)
			}
		}
	}
	if !startsWest || !endsEast {
		t.Errorf("northing lines not clipped to the view: west %v east %v", startsWest, endsEast)
	}
	if !hundredKm {
		t.Error("4500000 should be a 100 km line")
	}

	eastings := map[string]bool{}
	northings := map[string]bool{}
	for _, label := range l.Labels {
		if label.Style != GridLabel {
			t.Errorf("unexpected style %v", label.Style)
		}
		if _, err := strconv.Atoi(label.Text); err != nil {
			t.Errorf("label text %q", label.Text)
		}
		switch {
		case label.Anchor.Lat() == 40.6:
			if eastings[label.Text] {
				t.Errorf("easting %s labeled twice", label.Text)
			}
			eastings[label.Text] = true
		case label.Anchor.Lon() == -73.9:
			northings[label.Text] = true
		default:
			t.Errorf("label %s off the view edges at %v", label.Text, label.Anchor)
		}
	}
	// New York is at 583959E 4507350N.
	if !eastings["84"] || !northings["7"] {
		t.Errorf("eastings %v northings %v", eastings, northings)
	}
}

func TestGenerate_OutOfView(t *testing.T) {
	vp := Viewport{Bound: orb.Bound{Min: orb.Point{0, 40}, Max: orb.Point{10, 50}}, Zoom: 8}
	l, err := Generate(zone18T, TenKm, vp, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Lines) != 0 || len(l.Labels) != 0 {
		t.Errorf("got %d lines and %d labels", len(l.Lines), len(l.Labels))
	}
}

func TestGenerate_Antimeridian(t *testing.T) {
	vp := Viewport{Bound: orb.Bound{Min: orb.Point{170, -5}, Max: orb.Point{190, 5}}, Zoom: 6}
	l, err := Generate(gzd.MustParse("1N"), HundredKm, vp, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Lines) == 0 {
		t.Error("zone 1N should be drawn east of the antimeridian")
	}
}

// Northing lines of 37X bend north toward its east edge; their ends must
// stay at or below 84N.
func TestGenerate_StaysInZone(t *testing.T) {
	z := gzd.MustParse("37X")
	c, err := z.Corners()
	if err != nil {
		t.Fatal(err)
	}
	vp := Viewport{Bound: orb.Bound{Min: orb.Point{30, 70}, Max: orb.Point{45, 84}}, Zoom: 9}
	l, err := Generate(z, TenKm, vp, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Lines) == 0 {
		t.Fatal("no lines")
	}
	const eps = 1e-9
	for _, line := range l.Lines {
		for i, pt := range line.Points {
			if pt.Lat() > c.North()+eps || pt.Lat() < c.South()-eps {
				t.Errorf("%v line %v point %d/%d = %v outside %v", line.Axis, line.Value, i, len(line.Points), pt, c.Bound())
			}
		}
	}
}

func TestGenerate_Errors(t *testing.T) {
	if _, err := Generate(gzd.Zone{Number: 32, Band: 'X'}, HundredKm, wholeZone(6), Options{}); !errors.Is(err, common.ErrInvalidZone) {
		t.Errorf("32X: got %v", err)
	}
	if _, err := Generate(zone18T, 500, wholeZone(6), Options{}); !errors.Is(err, common.ErrOutOfRange) {
		t.Errorf("500 m: got %v", err)
	}
	if _, err := Generate(zone18T, HundredMeters, wholeZone(16), Options{}); !errors.Is(err, ErrTooDense) {
		t.Errorf("100 m over a zone: got %v", err)
	}
	if _, err := Generate(zone18T, OneKm, wholeZone(12), Options{MaxPoints: 1000}); !errors.Is(err, ErrTooDense) {
		t.Errorf("MaxPoints: got %v", err)
	}
}

func TestPoints(t *testing.T) {
	n, err := Points(zone18T, OneKm, wholeZone(12))
	if err != nil {
		t.Fatal(err)
	}
	if n <= 1000 {
		t.Fatalf("%d points", n)
	}
	if _, err := Generate(zone18T, OneKm, wholeZone(12), Options{MaxPoints: n - 1}); !errors.Is(err, ErrTooDense) {
		t.Errorf("MaxPoints %d: got %v", n-1, err)
	}
	out := Viewport{Bound: orb.Bound{Min: orb.Point{0, 40}, Max: orb.Point{10, 50}}, Zoom: 12}
	if n, err := Points(zone18T, OneKm, out); err != nil || n != 0 {
		t.Errorf("out of view: %d, %v", n, err)
	}
}

func TestParseBound(t *testing.T) {
	b, err := ParseBound("-75.5, 39,-72.5,42")
	if err != nil {
		t.Fatal(err)
	}
	if b != (orb.Bound{Min: orb.Point{-75.5, 39}, Max: orb.Point{-72.5, 42}}) {
		t.Errorf("got %v", b)
	}
	if _, err := ParseBound("170,-5,190,5"); err != nil {
		t.Errorf("antimeridian: %v", err)
	}
	for s, want := range map[string]error{
		"1,2,3":     common.ErrFormat,
		"a,b,c,d":   common.ErrFormat,
		"5,62,1,66": common.ErrOutOfRange,
		"0,-91,1,0": common.ErrOutOfRange,
	} {
		if _, err := ParseBound(s); !errors.Is(err, want) {
			t.Errorf("%q: got %v, want %v", s, err, want)
		}
	}
}
