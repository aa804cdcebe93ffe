// Package mathutil holds the small numeric helpers shared by the scoring
// packages.
package mathutil

// SafeDiv returns num/den, or 0 when den is zero.
// The check happens before dividing so a zero numerator over a non-zero
// denominator still yields a true 0 and never NaN.
func SafeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Clamp01 limits v to the closed interval [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
