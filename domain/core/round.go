package core

import "math"

// Round2 rounds to two decimal places, half away from zero. All reported
// statistics in the workbench round this way so values survive a
// profile/export round trip unchanged.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
