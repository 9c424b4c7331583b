package device

import "math"

// mapRange linearly remaps v from [inMin, inMax] to [outMin, outMax].
// Inputs outside the range extrapolate; clamping is the caller's business.
func mapRange(v, inMin, inMax, outMin, outMax float64) float64 {
	return (v-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// pulseForDegrees converts a degree value into a pulse count.
func pulseForDegrees(deg float64, basePulse int, pulsePerDegree float64) int {
	return basePulse + int(math.Round(pulsePerDegree*deg))
}

// clampPulse limits a lid pulse to its travel range.
func clampPulse(pulse, min, max int) int {
	if pulse < min {
		return min
	}
	if pulse > max {
		return max
	}
	return pulse
}
