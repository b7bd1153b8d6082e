package cmd

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/rotblauer/mgrsd/common"
	"github.com/rotblauer/mgrsd/testing/testdata"
)

func TestConvertLine_Conversions(t *testing.T) {
	conversions, err := testdata.Conversions()
	if err != nil {
		t.Fatal(err)
	}
	if len(conversions) == 0 {
		t.Fatal("no conversions")
	}
	for _, c := range conversions {
		lat := strconv.FormatFloat(c.Lat, 'f', -1, 64)
		lon := strconv.FormatFloat(c.Lon, 'f', -1, 64)
		for _, sep := range []string{" ", ",", "\t", ", "} {
			out, err := convertLine(lat+sep+lon, 5)
			if err != nil {
				t.Fatalf("%s: %v", c.Place, err)
			}
			fields := strings.Split(out, "\t")
			if len(fields) != 3 || fields[2] != c.MGRS {
				t.Errorf("%s: got %q, want %s", c.Place, out, c.MGRS)
			}
		}
	}
}

func TestConvertLine_Inverse(t *testing.T) {
	out, err := convertLine("18T WL 83959 07350", 5)
	if err != nil {
		t.Fatal(err)
	}
	t.Log(out)
	fields := strings.Split(out, "\t")
	if len(fields) != 5 {
		t.Fatalf("got %q", out)
	}
	lat, _ := strconv.ParseFloat(fields[1], 64)
	lon, _ := strconv.ParseFloat(fields[2], 64)
	if lat < 40.7127 || lat > 40.7129 || lon < -74.0061 || lon > -74.0059 {
		t.Errorf("center %v, %v", lat, lon)
	}
	if fields[3] != "1" {
		t.Errorf("accuracy %s", fields[3])
	}

	if _, err := convertLine("18TIL", 5); !errors.Is(err, common.ErrFormat) {
		t.Errorf("18TIL: got %v", err)
	}
	if _, err := convertLine("91 0", 5); !errors.Is(err, common.ErrOutOfRange) {
		t.Errorf("91 0: got %v", err)
	}
}

func TestZoneFeatures(t *testing.T) {
	fc, err := zoneFeatures([]string{"31V", " 32v "})
	if err != nil {
		t.Fatal(err)
	}
	if len(fc.Features) != 2 {
		t.Fatalf("%d features", len(fc.Features))
	}
	if got := fc.Features[1].Properties["gzd"]; got != "32V" {
		t.Errorf("gzd %v", got)
	}
	if b := fc.Features[1].Geometry.Bound(); b.Min.Lon() != 3 || b.Max.Lon() != 12 {
		t.Errorf("32V bound %v", b)
	}
	if _, err := zoneFeatures([]string{"34X"}); !errors.Is(err, common.ErrInvalidZone) {
		t.Errorf("34X: got %v", err)
	}
}

func TestRoundTripErrors(t *testing.T) {
	errs, failed := roundTripErrors(10, 5)
	if failed != 0 {
		t.Errorf("%d points failed", failed)
	}
	// 17 latitudes from -80 to 80, 37 longitudes from -180 to 180.
	if len(errs) != 17*37 {
		t.Errorf("%d points", len(errs))
	}
	for i, d := range errs {
		if d > 1.5 {
			t.Errorf("point %d off by %v m", i, d)
		}
	}

	// A 100 km square is far coarser.
	coarse, _ := roundTripErrors(10, 0)
	worst := 0.0
	for _, d := range coarse {
		worst = max(worst, d)
	}
	if worst < 1000 {
		t.Errorf("precision 0 worst error %v m", worst)
	}
}

func TestCheckBatchSize(t *testing.T) {
	for _, n := range []int{0, -1, -1000} {
		if err := checkBatchSize(n); !errors.Is(err, common.ErrOutOfRange) {
			t.Errorf("%d: got %v", n, err)
		}
	}
	for _, n := range []int{1, 1000} {
		if err := checkBatchSize(n); err != nil {
			t.Errorf("%d: %v", n, err)
		}
	}
}
