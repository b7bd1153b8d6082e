package params

import "github.com/rotblauer/mgrsd/lattice"

// GridConfig is what a graticule is drawn with.
type GridConfig struct {
	Thresholds lattice.Thresholds
	Style      StyleConfig

	// MaxPoints bounds the lattice of a single zone. Zero means the
	// lattice package default.
	MaxPoints int

	// MaxRenderPoints bounds the lattices of all zones in one render
	// together. Zero means DefaultMaxRenderPoints.
	MaxRenderPoints int
}

// DefaultMaxRenderPoints allows a 1 km grid over a few zones, or a
// 100 m grid over a city.
const DefaultMaxRenderPoints = 1 << 22

// StyleConfig is passed through to rendered features untouched.
// Color, Font, FontColor, DashArray and Weight apply to zone dividers and
// their labels, the Grid and HK fields to the lattice.
type StyleConfig struct {
	Color     string
	Font      string
	FontColor string
	DashArray []float64
	Weight    float64

	GridColor     string
	GridFont      string
	GridFontColor string
	GridDashArray []float64

	HKColor     string
	HKDashArray []float64
}

func DefaultStyleConfig() StyleConfig {
	return StyleConfig{
		Color:     "#888888",
		Font:      "14px Courier New",
		FontColor: "#ffffff",
		DashArray: []float64{4, 4},
		Weight:    1.5,

		GridColor:     "#000000",
		GridFont:      "14px Courier New",
		GridFontColor: "#ffffff",
		GridDashArray: []float64{},

		HKColor:     "#990000",
		HKDashArray: []float64{4, 4},
	}
}

func DefaultGridConfig() *GridConfig {
	return &GridConfig{
		Thresholds: lattice.DefaultThresholds(),
		Style:      DefaultStyleConfig(),
	}
}
