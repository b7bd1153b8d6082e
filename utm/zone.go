package utm

import "math"

// ZoneNumber returns the UTM zone of a point, including the Norway
// and Svalbard exceptions.
func ZoneNumber(lat, lon float64) int {
	if lon == 180 {
		return 60
	}
	zone := int(math.Floor((lon+180)/6)) + 1

	// Southwest Norway, 32V is widened to cover the coast.
	if lat >= 56 && lat < 64 && lon >= 3 && lon < 12 {
		return 32
	}

	// Svalbard, 32X 34X and 36X do not exist.
	if lat >= 72 && lat < 84 {
		switch {
		case lon >= 0 && lon < 9:
			return 31
		case lon >= 9 && lon < 21:
			return 33
		case lon >= 21 && lon < 33:
			return 35
		case lon >= 33 && lon < 42:
			return 37
		}
	}
	return zone
}

// CentralMeridian returns the longitude of the zone's central meridian, in degrees.
func CentralMeridian(zone int) float64 {
	return float64((zone-1)*6 - 180 + 3)
}
