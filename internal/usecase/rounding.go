package usecase

import "math"

// round2 rounds to 2 decimal places, half-up. Quantities and currency
// amounts in major units all round through here so line items and their
// sums cannot drift apart.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// toCents converts a major-unit amount to integer minor units, half-up.
func toCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// pctOfCents applies a fractional percentage to a minor-unit amount,
// rounding half-up.
func pctOfCents(cents int64, pct float64) int64 {
	return int64(math.Round(float64(cents) * pct))
}
