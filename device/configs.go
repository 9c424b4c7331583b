package device

import (
	"errors"
	"time"
)

// ServoOutput is the downstream PWM driver: set a channel to a pulse count
// out of the 12-bit resolution. Writes have no failure signal; implementations
// are expected to be best-effort.
type ServoOutput interface {
	SetPulse(channel, pulse int)
}

// Output channels on the PWM driver.
const (
	ChannelPan = iota
	ChannelTilt
	ChannelUpLid
	ChannelLowLid
	ChannelAltUpLid
	ChannelAltLowLid

	NumChannels = 6
)

// PulseResolution is the counts-per-cycle of the PWM driver (12-bit).
const PulseResolution = 4096

// RefreshHz is the PWM refresh frequency the pulse counts are calibrated for.
const RefreshHz = 60

// CalibrationConfig has values for the moving parts that depend on positioning
// and the servo/linkage specifics of the assembled mechanism.
type CalibrationConfig struct {
	// Degree ranges the normalized [-50, 50] gaze inputs map onto.
	XDegreeMin float64
	XDegreeMax float64
	YDegreeMin float64
	YDegreeMax float64

	// BasePulse is the pulse count at zero degrees; PulsePerDegree scales
	// a degree value into additional counts.
	BasePulse      int
	PulsePerDegree float64

	// Travel limits for the two primary lid channels. Lid pulses accumulate
	// from repeated relative adjustments and are hard-clamped to this range.
	LidPulseMin int
	LidPulseMax int

	// LidStepPulse is the pulse change for one unit of lid adjustment.
	LidStepPulse int

	// Closed-position pulses used during a blink. These are per-channel
	// hardware values, not derived from lid state: the mirrored pair sits on
	// the opposite end of the linkage and closes to different counts.
	BlinkUpPulse     int
	BlinkLowPulse    int
	BlinkAltUpPulse  int
	BlinkAltLowPulse int

	// BlinkHoldDelay is how long the lids stay closed during a blink.
	BlinkHoldDelay time.Duration
}

// DefaultCalibration returns the values tuned against the assembled mechanism.
func DefaultCalibration() CalibrationConfig {
	return CalibrationConfig{
		XDegreeMin:       -30,
		XDegreeMax:       30,
		YDegreeMin:       -25,
		YDegreeMax:       25,
		BasePulse:        375,
		PulsePerDegree:   2.5,
		LidPulseMin:      280,
		LidPulseMax:      470,
		LidStepPulse:     10,
		BlinkUpPulse:     410,
		BlinkLowPulse:    335,
		BlinkAltUpPulse:  330,
		BlinkAltLowPulse: 415,
		BlinkHoldDelay:   250 * time.Millisecond,
	}
}

// Validate checks the invariants the actuator math depends on.
func (c CalibrationConfig) Validate() error {
	if c.XDegreeMin >= c.XDegreeMax {
		return errors.New("x degree range: min must be less than max")
	}
	if c.YDegreeMin >= c.YDegreeMax {
		return errors.New("y degree range: min must be less than max")
	}
	if c.LidPulseMin >= c.LidPulseMax {
		return errors.New("lid pulse range: min must be less than max")
	}
	if c.PulsePerDegree <= 0 {
		return errors.New("pulse per degree must be positive")
	}
	return nil
}

// fullRange is the reflection constant for the mirrored lid pair. The -10 is
// an empirical calibration offset, not a midpoint: do not simplify it without
// re-validating against the physical linkage.
func (c CalibrationConfig) fullRange() int {
	return c.LidPulseMin + c.LidPulseMax - 10
}
