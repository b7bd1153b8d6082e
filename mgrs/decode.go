package mgrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/rotblauer/mgrsd/common"
	"github.com/rotblauer/mgrsd/utm"
)

// Reference is an MGRS string split into its parts.
type Reference struct {
	GZD    string
	Square string
	Digits string
}

// Precision is the number of digits per axis.
func (r Reference) Precision() int {
	return len(r.Digits) / 2
}

func (r Reference) String() string {
	return r.GZD + r.Square + r.Digits
}

var referencePattern = regexp.MustCompile(`^([0-9]+[A-Z])([A-Z]{2})([0-9]*)$`)

// Parse splits a reference without decoding it.
func Parse(s string) (Reference, error) {
	s = normalize(s)
	m := referencePattern.FindStringSubmatch(s)
	if m == nil {
		return Reference{}, fmt.Errorf("%q: %w", s, common.ErrFormat)
	}
	return Reference{GZD: m[1], Square: m[2], Digits: m[3]}, nil
}

func normalize(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

func isUpper(c byte) bool {
	return c >= 'A' && c <= 'Z'
}

// Decode parses an MGRS reference into the UTM coordinate of the
// southwest corner of the area it stands for. Accuracy is the side
// of that area in meters.
func Decode(s string) (utm.Coordinate, error) {
	ref := normalize(s)
	bad := func(reason string) (utm.Coordinate, error) {
		return utm.Coordinate{}, fmt.Errorf("%q: %s: %w", s, reason, common.ErrFormat)
	}
	if ref == "" {
		return bad("empty")
	}

	i := 0
	for i < len(ref) && !isUpper(ref[i]) {
		if i >= 2 {
			return bad("zone number too long")
		}
		if ref[i] < '0' || ref[i] > '9' {
			return bad("zone number")
		}
		i++
	}
	if i == 0 || i+3 > len(ref) {
		return bad("too short")
	}
	zone, err := strconv.Atoi(ref[:i])
	if err != nil || zone < 1 || zone > 60 {
		return bad("zone number")
	}

	letter := ref[i]
	i++
	if !utm.ValidBand(letter) {
		return bad(fmt.Sprintf("zone letter %c", letter))
	}

	set := setForZone(zone)
	east100k, err := eastingFromColumn(ref[i], set)
	if err != nil {
		return bad(err.Error())
	}
	north100k, err := northingFromRow(ref[i+1], set)
	if err != nil {
		return bad(err.Error())
	}
	i += 2
	for min := minNorthing[utm.BandIndex(letter)]; north100k < min; {
		north100k += 2000000
	}

	digits := ref[i:]
	if len(digits)%2 != 0 {
		return bad("odd number of digits")
	}
	for j := 0; j < len(digits); j++ {
		if digits[j] < '0' || digits[j] > '9' {
			return bad("digits")
		}
	}
	sep := len(digits) / 2
	if sep > MaxPrecision {
		return bad("too many digits")
	}
	accuracy := 100000 / math.Pow(10, float64(sep))

	var east, north float64
	if sep > 0 {
		e, _ := strconv.ParseFloat(digits[:sep], 64)
		n, _ := strconv.ParseFloat(digits[sep:], 64)
		east = e * accuracy
		north = n * accuracy
	}

	return utm.Coordinate{
		Easting:    east + east100k,
		Northing:   north + north100k,
		ZoneNumber: zone,
		ZoneLetter: letter,
		Accuracy:   accuracy,
	}, nil
}
