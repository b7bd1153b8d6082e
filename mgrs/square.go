package mgrs

import (
	"fmt"
	"math"
)

// The 100 km square letters repeat every six zones.
const numSets = 6

// squareAlphabet holds the square letters, A to Z without I and O.
// Columns cycle through all 24, rows through the first 20 (A to V).
var squareAlphabet = [24]byte{
	'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'J', 'K', 'L', 'M',
	'N', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z',
}

const numRows = 20

// Columns per zone: eastings 100 km to 900 km.
const numColumns = 8

// Alphabet index of the column and row letters at the origin of each set.
var (
	setOriginColumns = [numSets]int{0, 8, 16, 0, 8, 16} // A, J, S
	setOriginRows    = [numSets]int{0, 5, 0, 5, 0, 5}   // A, F
)

func letterIndex(letter byte) int {
	for i, l := range squareAlphabet {
		if l == letter {
			return i
		}
	}
	return -1
}

// minNorthing is the lowest northing of each band, indexed like utm.Bands.
// Square rows only repeat every 2000 km, so decoding uses it to pick
// the right cycle.
var minNorthing = [20]float64{
	1100000, // C
	2000000, // D
	2800000, // E
	3700000, // F
	4600000, // G
	5500000, // H
	6400000, // J
	7300000, // K
	8200000, // L
	9100000, // M
	0,       // N
	800000,  // P
	1700000, // Q
	2600000, // R
	3500000, // S
	4400000, // T
	5300000, // U
	6200000, // V
	7000000, // W
	7900000, // X
}

func setForZone(zone int) int {
	set := zone % numSets
	if set == 0 {
		set = numSets
	}
	return set
}

// SquareID returns the two letter 100 km square identifier of a UTM position.
func SquareID(easting, northing float64, zone int) string {
	column := int(math.Floor(easting / 100000))
	row := (int(math.Floor(northing/100000))%20 + 20) % 20
	return squareLetters(column, row, setForZone(zone))
}

func squareLetters(column, row, set int) string {
	col := ((setOriginColumns[set-1]+column-1)%len(squareAlphabet) + len(squareAlphabet)) % len(squareAlphabet)
	r := (setOriginRows[set-1] + row) % numRows
	return string([]byte{squareAlphabet[col], squareAlphabet[r]})
}

// eastingFromColumn returns the easting of the west edge of the square
// in the given column letter of the set.
func eastingFromColumn(letter byte, set int) (float64, error) {
	i := letterIndex(letter)
	if i < 0 {
		return 0, fmt.Errorf("column letter %q", letter)
	}
	offset := (i - setOriginColumns[set-1] + len(squareAlphabet)) % len(squareAlphabet)
	if offset >= numColumns {
		return 0, fmt.Errorf("column letter %q not in set %d", letter, set)
	}
	return float64(offset+1) * 100000, nil
}

// northingFromRow is the row counterpart of eastingFromColumn.
// The result is only known modulo 2000 km.
func northingFromRow(letter byte, set int) (float64, error) {
	i := letterIndex(letter)
	if i < 0 || i >= numRows {
		return 0, fmt.Errorf("row letter %q", letter)
	}
	return float64((i-setOriginRows[set-1]+numRows)%numRows) * 100000, nil
}
