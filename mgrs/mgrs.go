// Package mgrs encodes and decodes Military Grid Reference System strings,
// eg. "18TWL8395907350": grid zone 18T, 100 km square WL, then easting and
// northing digits within the square.
package mgrs

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/rotblauer/mgrsd/common"
	"github.com/rotblauer/mgrsd/utm"
)

// MaxPrecision is the number of digits per axis in a 1 m reference.
const MaxPrecision = 5

// Encode formats a UTM coordinate as an MGRS reference with precision
// digits per axis, 0 (100 km square) to 5 (1 m).
func Encode(c utm.Coordinate, precision int) (string, error) {
	if precision < 0 || precision > MaxPrecision {
		return "", fmt.Errorf("precision %d: %w", precision, common.ErrFormat)
	}
	if c.ZoneNumber < 1 || c.ZoneNumber > 60 || !utm.ValidBand(c.ZoneLetter) {
		return "", fmt.Errorf("zone %s: %w", c.Zone(), common.ErrOutOfRange)
	}
	e := fmt.Sprintf("%05d", int64(math.Trunc(c.Easting))%100000)
	n := fmt.Sprintf("%05d", int64(math.Trunc(c.Northing))%100000)
	return c.Zone() + SquareID(c.Easting, c.Northing, c.ZoneNumber) + e[:precision] + n[:precision], nil
}

// Forward converts a geographic point to an MGRS reference.
func Forward(pt orb.Point, precision int) (string, error) {
	c, err := utm.Forward(pt.Lat(), pt.Lon())
	if err != nil {
		return "", err
	}
	return Encode(c, precision)
}

// Inverse returns the area an MGRS reference stands for.
func Inverse(ref string) (orb.Bound, error) {
	c, err := Decode(ref)
	if err != nil {
		return orb.Bound{}, err
	}
	box, err := utm.InverseBox(c)
	if err != nil {
		return orb.Bound{}, err
	}
	return box.Bound(), nil
}

// ToPoint returns the center of the area an MGRS reference stands for.
func ToPoint(ref string) (orb.Point, error) {
	b, err := Inverse(ref)
	if err != nil {
		return orb.Point{}, err
	}
	return b.Center(), nil
}

// GZDOf returns the grid zone designator of the zone containing pt, eg. "32V".
func GZDOf(pt orb.Point) (string, error) {
	ref, err := Forward(pt, 1)
	if err != nil {
		return "", err
	}
	r, err := Parse(ref)
	if err != nil {
		return "", err
	}
	return r.GZD, nil
}
