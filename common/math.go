package common

import "math"

// https://stackoverflow.com/questions/18390266/how-can-we-truncate-float64-type-to-a-particular-precision
func Round(num float64) int {
	return int(num + math.Copysign(0.5, num))
}

func DecimalToFixed(num float64, precision int) float64 {
	output := math.Pow(10, float64(precision))
	return float64(Round(num*output)) / output
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// FloorTo rounds v down to a multiple of step.
func FloorTo(v, step float64) float64 {
	return math.Floor(v/step) * step
}

// CeilTo rounds v up to a multiple of step.
func CeilTo(v, step float64) float64 {
	return math.Ceil(v/step) * step
}
