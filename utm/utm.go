// Package utm converts between WGS84 geographic coordinates and
// Universal Transverse Mercator coordinates using the 6th order
// series expansion common to the USNG/MGRS library lineage.
// Accuracy is on the order of centimeters inside a zone, which is
// plenty for grid drawing and meter-level references.
package utm

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/rotblauer/mgrsd/common"
)

const (
	// SemiMajorAxis of the WGS84 ellipsoid, in meters.
	SemiMajorAxis = 6378137.0
	// EccSquared is the WGS84 first eccentricity squared, to the
	// precision used by the MGRS reference implementations.
	EccSquared = 0.00669438
	// ScaleFactor at the central meridian.
	ScaleFactor = 0.9996
	// FalseEasting keeps eastings positive across a zone.
	FalseEasting = 500000.0
	// FalseNorthing is added to southern hemisphere northings.
	FalseNorthing = 10000000.0

	deg2rad = math.Pi / 180
	rad2deg = 180 / math.Pi

	eccPrimeSquared = EccSquared / (1 - EccSquared)
)

// Coordinate is a UTM position.
// Accuracy is the side of the square the position stands for, in meters.
// It is zero for exact positions and set by MGRS decoding.
type Coordinate struct {
	Easting    float64 `json:"easting"`
	Northing   float64 `json:"northing"`
	ZoneNumber int     `json:"zone_number"`
	ZoneLetter byte    `json:"zone_letter"`
	Accuracy   float64 `json:"accuracy,omitempty"`
}

// Zone returns the grid zone designator, eg. "18T".
func (c Coordinate) Zone() string {
	return fmt.Sprintf("%d%c", c.ZoneNumber, c.ZoneLetter)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%s %.0fE %.0fN", c.Zone(), c.Easting, c.Northing)
}

// Southern reports whether the coordinate carries the false northing.
func (c Coordinate) Southern() bool {
	return c.ZoneLetter < 'N'
}

// Box is the geographic extent of an inverse transform with accuracy.
type Box struct {
	Top, Right, Bottom, Left float64
}

// Bound converts the box to an orb.Bound.
func (b Box) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.Left, b.Bottom},
		Max: orb.Point{b.Right, b.Top},
	}
}

func checkLatLon(lat, lon float64) error {
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return fmt.Errorf("longitude %v: %w", lon, common.ErrOutOfRange)
	}
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v: %w", lat, common.ErrOutOfRange)
	}
	if lat < MinLatitude || lat > MaxLatitude {
		return fmt.Errorf("latitude %v outside the UTM grid: %w", lat, common.ErrOutOfRange)
	}
	return nil
}

// Forward converts a geographic position to UTM, with easting and
// northing truncated to whole meters.
func Forward(lat, lon float64) (Coordinate, error) {
	c, err := ForwardPrecise(lat, lon)
	if err != nil {
		return c, err
	}
	c.Easting = math.Trunc(c.Easting)
	c.Northing = math.Trunc(c.Northing)
	return c, nil
}

// ForwardPrecise is Forward without the truncation.
// Grid lines use it so that lattice corners do not drift by a meter.
func ForwardPrecise(lat, lon float64) (Coordinate, error) {
	if err := checkLatLon(lat, lon); err != nil {
		return Coordinate{}, err
	}
	letter, err := LetterDesignator(lat)
	if err != nil {
		return Coordinate{}, err
	}
	zone := ZoneNumber(lat, lon)
	e, n := project(lat, lon, zone)
	return Coordinate{
		Easting:    e,
		Northing:   n,
		ZoneNumber: zone,
		ZoneLetter: letter,
	}, nil
}

// ForwardInZone is ForwardPrecise projected onto the grid of the given zone
// rather than the zone the position falls in. Positions near a zone edge
// then line up with the zone's own lattice.
func ForwardInZone(lat, lon float64, zone int) (Coordinate, error) {
	if err := checkLatLon(lat, lon); err != nil {
		return Coordinate{}, err
	}
	if zone < 1 || zone > 60 {
		return Coordinate{}, fmt.Errorf("zone number %d: %w", zone, common.ErrOutOfRange)
	}
	letter, err := LetterDesignator(lat)
	if err != nil {
		return Coordinate{}, err
	}
	e, n := project(lat, lon, zone)
	return Coordinate{
		Easting:    e,
		Northing:   n,
		ZoneNumber: zone,
		ZoneLetter: letter,
	}, nil
}

func project(lat, lon float64, zone int) (easting, northing float64) {
	const a = SemiMajorAxis
	const e2 = EccSquared

	latRad := lat * deg2rad
	lonRad := lon * deg2rad
	originRad := CentralMeridian(zone) * deg2rad

	sinLat := math.Sin(latRad)
	cosLat := math.Cos(latRad)
	tanLat := math.Tan(latRad)

	n := a / math.Sqrt(1-e2*sinLat*sinLat)
	t := tanLat * tanLat
	c := eccPrimeSquared * cosLat * cosLat
	aa := cosLat * (lonRad - originRad)

	m := a * ((1-e2/4-3*e2*e2/64-5*e2*e2*e2/256)*latRad -
		(3*e2/8+3*e2*e2/32+45*e2*e2*e2/1024)*math.Sin(2*latRad) +
		(15*e2*e2/256+45*e2*e2*e2/1024)*math.Sin(4*latRad) -
		(35*e2*e2*e2/3072)*math.Sin(6*latRad))

	easting = ScaleFactor*n*(aa+(1-t+c)*aa*aa*aa/6+
		(5-18*t+t*t+72*c-58*eccPrimeSquared)*aa*aa*aa*aa*aa/120) + FalseEasting

	northing = ScaleFactor * (m + n*tanLat*(aa*aa/2+
		(5-t+9*c+4*c*c)*aa*aa*aa*aa/24+
		(61-58*t+t*t+600*c-330*eccPrimeSquared)*aa*aa*aa*aa*aa*aa/720))
	if lat < 0 {
		northing += FalseNorthing
	}
	return easting, northing
}

func checkZone(c Coordinate) error {
	if c.ZoneNumber < 1 || c.ZoneNumber > 60 {
		return fmt.Errorf("zone number %d: %w", c.ZoneNumber, common.ErrOutOfRange)
	}
	if !ValidBand(c.ZoneLetter) {
		return fmt.Errorf("zone letter %q: %w", c.ZoneLetter, common.ErrOutOfRange)
	}
	return nil
}

// Inverse converts a UTM coordinate to a geographic point.
// The band letter only decides the hemisphere.
func Inverse(c Coordinate) (orb.Point, error) {
	if err := checkZone(c); err != nil {
		return orb.Point{}, err
	}
	lat, lon := unproject(c.Easting, c.Northing, c.ZoneNumber, c.Southern())
	return orb.Point{lon, lat}, nil
}

// InverseBox converts a coordinate to the box it stands for,
// spanning Accuracy meters north and east of it.
// Without accuracy the box collapses to the point.
func InverseBox(c Coordinate) (Box, error) {
	sw, err := Inverse(c)
	if err != nil {
		return Box{}, err
	}
	ne := sw
	if c.Accuracy > 0 {
		c.Easting += c.Accuracy
		c.Northing += c.Accuracy
		ne, err = Inverse(c)
		if err != nil {
			return Box{}, err
		}
	}
	return Box{
		Top:    ne.Lat(),
		Right:  ne.Lon(),
		Bottom: sw.Lat(),
		Left:   sw.Lon(),
	}, nil
}

func unproject(easting, northing float64, zone int, southern bool) (lat, lon float64) {
	const a = SemiMajorAxis
	const e2 = EccSquared

	e1 := (1 - math.Sqrt(1-e2)) / (1 + math.Sqrt(1-e2))

	x := easting - FalseEasting
	y := northing
	if southern {
		y -= FalseNorthing
	}

	m := y / ScaleFactor
	mu := m / (a * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256))

	// Footprint latitude.
	phi1 := mu + (3*e1/2-27*e1*e1*e1/32)*math.Sin(2*mu) +
		(21*e1*e1/16-55*e1*e1*e1*e1/32)*math.Sin(4*mu) +
		(151*e1*e1*e1/96)*math.Sin(6*mu)

	sinPhi := math.Sin(phi1)
	tanPhi := math.Tan(phi1)
	cosPhi := math.Cos(phi1)

	n1 := a / math.Sqrt(1-e2*sinPhi*sinPhi)
	t1 := tanPhi * tanPhi
	c1 := eccPrimeSquared * cosPhi * cosPhi
	r1 := a * (1 - e2) / math.Pow(1-e2*sinPhi*sinPhi, 1.5)
	d := x / (n1 * ScaleFactor)

	lat = phi1 - (n1*tanPhi/r1)*(d*d/2-
		(5+3*t1+10*c1-4*c1*c1-9*eccPrimeSquared)*d*d*d*d/24+
		(61+90*t1+298*c1+45*t1*t1-252*eccPrimeSquared-3*c1*c1)*d*d*d*d*d*d/720)
	lat *= rad2deg

	lon = (d - (1+2*t1+c1)*d*d*d/6 +
		(5-2*c1+28*t1-3*c1*c1+8*eccPrimeSquared+24*t1*t1)*d*d*d*d*d/120) / cosPhi
	lon = CentralMeridian(zone) + lon*rad2deg
	return lat, lon
}
