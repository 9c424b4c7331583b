package device

import (
	"errors"
	"time"
)

// Device drives the eye mechanism: two gaze servos and the four lid servos.
// It owns the lid pulse state; gaze positions are computed fresh from each
// command and never stored. Construct the ServoOutput before the Device.
type Device struct {
	out ServoOutput
	cfg CalibrationConfig

	// Current lid pulses. The alt pair mirrors the primary pair through the
	// fullRange reflection so both lid halves move together without separate
	// calibration state.
	upPulse     int
	lowPulse    int
	altUpPulse  int
	altLowPulse int

	verbose bool
}

// New validates the calibration, sets the lids to the fully-open pose and
// centers the gaze.
func New(out ServoOutput, cfg CalibrationConfig) (Device, error) {
	if out == nil {
		return Device{}, errors.New("servo output is required")
	}
	if err := cfg.Validate(); err != nil {
		return Device{}, errors.New("invalid calibration: " + err.Error())
	}

	d := Device{
		out:      out,
		cfg:      cfg,
		upPulse:  cfg.LidPulseMin,
		lowPulse: cfg.LidPulseMax,
	}
	d.altUpPulse = cfg.fullRange() - d.upPulse
	d.altLowPulse = cfg.fullRange() - d.lowPulse

	d.writeLids()
	d.PositionEye(0, 0)

	return d, nil
}

// PositionEye aims the eyeball. x and y are nominally in [-50, 50]; values
// outside extrapolate linearly. Lid travel accumulates and is clamped, but
// gaze pulses are recomputed from a bounded input each call and are written
// unclamped: keeping the eye inside safe travel is a calibration choice.
func (d *Device) PositionEye(x, y float64) {
	if d.verbose {
		println("PositionEye", x, y)
	}

	xDeg := mapRange(x, -50, 50, d.cfg.XDegreeMin, d.cfg.XDegreeMax)
	yDeg := mapRange(y, -50, 50, d.cfg.YDegreeMin, d.cfg.YDegreeMax)

	d.out.SetPulse(ChannelPan, pulseForDegrees(xDeg, d.cfg.BasePulse, d.cfg.PulsePerDegree))
	d.out.SetPulse(ChannelTilt, pulseForDegrees(yDeg, d.cfg.BasePulse, d.cfg.PulsePerDegree))
}

// AdjustLid moves the lids by delta relative steps. Positive delta opens:
// the up lid pulse decreases and the low lid pulse increases, those being the
// opening directions for the two members of the pair, while the mirrored pair
// follows through the fullRange reflection.
func (d *Device) AdjustLid(delta int) {
	if d.verbose {
		println("AdjustLid", delta)
	}

	step := delta * d.cfg.LidStepPulse

	d.upPulse = clampPulse(d.upPulse-step, d.cfg.LidPulseMin, d.cfg.LidPulseMax)
	d.altUpPulse = d.cfg.fullRange() - d.upPulse

	d.lowPulse = clampPulse(d.lowPulse+step, d.cfg.LidPulseMin, d.cfg.LidPulseMax)
	d.altLowPulse = d.cfg.fullRange() - d.lowPulse

	d.writeLids()
}

// Blink closes the lids, holds, and restores the previously set aperture.
// The closed pose comes from the hardcoded per-channel calibration values,
// not from lid state, so a blink never alters the stored pulses. This blocks
// the control loop for the hold duration; the protocol has no other
// time-sensitive traffic, so input queues in the receive buffer meanwhile.
func (d *Device) Blink() {
	if d.verbose {
		println("Blink")
	}

	d.out.SetPulse(ChannelUpLid, d.cfg.BlinkUpPulse)
	d.out.SetPulse(ChannelLowLid, d.cfg.BlinkLowPulse)
	d.out.SetPulse(ChannelAltUpLid, d.cfg.BlinkAltUpPulse)
	d.out.SetPulse(ChannelAltLowLid, d.cfg.BlinkAltLowPulse)

	time.Sleep(d.cfg.BlinkHoldDelay)

	d.writeLids()
}

// LidState returns the four current lid pulses.
func (d *Device) LidState() (up, low, altUp, altLow int) {
	return d.upPulse, d.lowPulse, d.altUpPulse, d.altLowPulse
}

// Verbose increases logging of dispatched actuations.
func (d *Device) Verbose() {
	d.verbose = true
}

// writeLids pushes all four lid channels so the pairs never desync.
func (d *Device) writeLids() {
	d.out.SetPulse(ChannelUpLid, d.upPulse)
	d.out.SetPulse(ChannelLowLid, d.lowPulse)
	d.out.SetPulse(ChannelAltUpLid, d.altUpPulse)
	d.out.SetPulse(ChannelAltLowLid, d.altLowPulse)
}
