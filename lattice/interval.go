package lattice

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/rotblauer/mgrsd/common"
)

// Interval is the spacing of grid lines, in meters.
type Interval float64

const (
	HundredMeters Interval = 100
	OneKm         Interval = 1000
	TenKm         Interval = 10000
	HundredKm     Interval = 100000
)

// String renders the interval the way a map legend would, eg. "10 km".
func (i Interval) String() string {
	return humanize.SIWithDigits(float64(i), 0, "m")
}

// Valid reports whether i is one of the four grid intervals.
func (i Interval) Valid() bool {
	switch i {
	case HundredMeters, OneKm, TenKm, HundredKm:
		return true
	}
	return false
}

// Thresholds are the zoom levels at which each interval starts to be drawn.
type Thresholds struct {
	HundredKMinZoom common.SlippyZoomLevelT `json:"hundred_k_min_zoom"`
	TenKMinZoom     common.SlippyZoomLevelT `json:"ten_k_min_zoom"`
	OneKMinZoom     common.SlippyZoomLevelT `json:"one_k_min_zoom"`
	HundredMMinZoom common.SlippyZoomLevelT `json:"hundred_m_min_zoom"`
}

// DefaultThresholds fit a 256px tile map.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HundredKMinZoom: common.SlippyZoomLevel6,
		TenKMinZoom:     common.SlippyZoomLevel9,
		OneKMinZoom:     common.SlippyZoomLevel12,
		HundredMMinZoom: common.SlippyZoomLevel15,
	}
}

// Validate checks the thresholds are usable zoom levels in ascending order.
func (t Thresholds) Validate() error {
	levels := []common.SlippyZoomLevelT{t.HundredKMinZoom, t.TenKMinZoom, t.OneKMinZoom, t.HundredMMinZoom}
	for i, z := range levels {
		if !z.Valid() {
			return fmt.Errorf("threshold zoom %d: %w", z, common.ErrOutOfRange)
		}
		if i > 0 && z < levels[i-1] {
			return fmt.Errorf("threshold zoom %d below %d: %w", z, levels[i-1], common.ErrOutOfRange)
		}
	}
	return nil
}

// SelectInterval picks the grid interval for a zoom level.
// Each threshold is the last level of the coarser interval: the
// 100 km lattice is drawn only at HundredKMinZoom itself, 10 km above it,
// 1 km above TenKMinZoom and 100 m above OneKMinZoom.
// There is nothing finer than 100 m, so HundredMMinZoom only bounds the
// range callers are expected to ask about.
// It returns false below HundredKMinZoom, where no lattice is drawn.
func SelectInterval(zoom common.SlippyZoomLevelT, t Thresholds) (Interval, bool) {
	switch {
	case zoom < t.HundredKMinZoom:
		return 0, false
	case zoom > t.OneKMinZoom:
		return HundredMeters, true
	case zoom > t.TenKMinZoom:
		return OneKm, true
	case zoom > t.HundredKMinZoom:
		return TenKm, true
	}
	return HundredKm, true
}
