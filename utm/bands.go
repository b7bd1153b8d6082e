package utm

import (
	"fmt"
	"math"

	"github.com/rotblauer/mgrsd/common"
)

// Bands are the latitude band letters from south to north.
// I and O are skipped to avoid confusion with 1 and 0.
var Bands = [20]byte{
	'C', 'D', 'E', 'F', 'G', 'H', 'J', 'K', 'L', 'M',
	'N', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X',
}

// bandIndex maps 'A'..'Z' to the index in Bands, -1 for unused letters.
var bandIndex = [26]int8{
	-1, -1, 0, 1, 2, 3, 4, 5, -1, 6, 7, 8, 9, // A..M
	10, -1, 11, 12, 13, 14, 15, 16, 17, 18, 19, -1, -1, // N..Z
}

const (
	// MinLatitude and MaxLatitude bound the UTM part of the grid.
	// The polar caps are UPS territory.
	MinLatitude = -80.0
	MaxLatitude = 84.0

	bandHeight = 8.0
)

// BandIndex returns the position of letter in Bands, or -1.
func BandIndex(letter byte) int {
	if letter < 'A' || letter > 'Z' {
		return -1
	}
	return int(bandIndex[letter-'A'])
}

func ValidBand(letter byte) bool {
	return BandIndex(letter) >= 0
}

// BandSouth returns the southern latitude limit of the band.
func BandSouth(letter byte) (float64, error) {
	i := BandIndex(letter)
	if i < 0 {
		return 0, fmt.Errorf("band %q: %w", letter, common.ErrOutOfRange)
	}
	return MinLatitude + bandHeight*float64(i), nil
}

// BandNorth returns the northern latitude limit of the band.
// X is 12 degrees tall.
func BandNorth(letter byte) (float64, error) {
	s, err := BandSouth(letter)
	if err != nil {
		return 0, err
	}
	if letter == 'X' {
		return MaxLatitude, nil
	}
	return s + bandHeight, nil
}

// LetterDesignator returns the latitude band letter of lat.
func LetterDesignator(lat float64) (byte, error) {
	if math.IsNaN(lat) || lat < MinLatitude || lat > MaxLatitude {
		return 0, fmt.Errorf("latitude %v: %w", lat, common.ErrOutOfRange)
	}
	if lat >= 72 {
		return 'X', nil
	}
	return Bands[int(math.Floor((lat-MinLatitude)/bandHeight))], nil
}
