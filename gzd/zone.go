// Package gzd resolves Grid Zone Designators, the 6° by 8° cells
// (zone number plus latitude band letter) that partition the UTM grid,
// into their boundary polygons.
package gzd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/rotblauer/mgrsd/common"
	"github.com/rotblauer/mgrsd/mgrs"
	"github.com/rotblauer/mgrsd/utm"
)

const zoneWidth = 6.0

// Zone is a grid zone, eg. 31V.
type Zone struct {
	Number int
	Band   byte
}

func (z Zone) String() string {
	return strconv.Itoa(z.Number) + string(z.Band)
}

// MarshalText encodes the zone as its label.
func (z Zone) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

// Validate checks that the zone exists.
func (z Zone) Validate() error {
	if z.Number < 1 || z.Number > 60 {
		return fmt.Errorf("zone number %d: %w", z.Number, common.ErrOutOfRange)
	}
	if !utm.ValidBand(z.Band) {
		return fmt.Errorf("band %q: %w", z.Band, common.ErrOutOfRange)
	}
	// Svalbard, folded into 31X 33X 35X and 37X.
	if z.Band == 'X' && (z.Number == 32 || z.Number == 34 || z.Number == 36) {
		return fmt.Errorf("%s: %w", z, common.ErrInvalidZone)
	}
	return nil
}

// Parse reads a zone label like "31V".
func Parse(label string) (Zone, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	i := 0
	for i < len(label) && label[i] >= '0' && label[i] <= '9' {
		i++
	}
	n, err := strconv.Atoi(label[:i])
	if err != nil {
		return Zone{}, fmt.Errorf("zone %q: %w", label, common.ErrOutOfRange)
	}
	if len(label)-i != 1 {
		return Zone{}, fmt.Errorf("zone %q: band must be one letter: %w", label, common.ErrOutOfRange)
	}
	z := Zone{Number: n, Band: label[i]}
	if err := z.Validate(); err != nil {
		return Zone{}, err
	}
	return z, nil
}

// MustParse is Parse for labels known to be good.
func MustParse(label string) Zone {
	z, err := Parse(label)
	if err != nil {
		panic(err)
	}
	return z
}

// Corners returns the zone's boundary, including the Norway and
// Svalbard adjustments.
func (z Zone) Corners() (Corners, error) {
	if err := z.Validate(); err != nil {
		return Corners{}, err
	}
	west := -180 + float64(z.Number-1)*zoneWidth
	east := west + zoneWidth
	south, _ := utm.BandSouth(z.Band)
	north, _ := utm.BandNorth(z.Band)

	switch z.String() {
	// Norway, 32V grows 3° west at the expense of 31V.
	case "31V":
		east -= 3
	case "32V":
		west -= 3
	// Svalbard.
	case "31X":
		east += 3
	case "33X", "35X":
		west -= 3
		east += 3
	case "37X":
		west -= 3
	}

	return Corners{
		SW: orb.Point{west, south},
		NW: orb.Point{west, north},
		NE: orb.Point{east, north},
		SE: orb.Point{east, south},
	}, nil
}

// Boundary returns the corners of the zone with the given label.
func Boundary(label string) (Corners, error) {
	z, err := Parse(label)
	if err != nil {
		return Corners{}, err
	}
	return z.Corners()
}

// At returns the zone containing pt.
func At(pt orb.Point) (Zone, error) {
	label, err := mgrs.GZDOf(pt)
	if err != nil {
		return Zone{}, err
	}
	return Parse(label)
}

// All returns every zone, west to east and south to north within each
// zone number.
func All() []Zone {
	zones := make([]Zone, 0, 60*len(utm.Bands)-3)
	for n := 1; n <= 60; n++ {
		for _, b := range utm.Bands {
			z := Zone{Number: n, Band: b}
			if z.Validate() != nil {
				continue
			}
			zones = append(zones, z)
		}
	}
	return zones
}
