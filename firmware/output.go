//go:build tinygo

package main

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers/servo"

	"github.com/xinwenxu/eyemech/device"
)

// ServoPairConfig has device-level values for one PWM peripheral driving two
// consecutive output channels.
type ServoPairConfig struct {
	PWM  servo.PWM
	PinA machine.Pin
	PinB machine.Pin
}

// periodMicroseconds is one PWM cycle at the mechanism's refresh frequency.
const periodMicroseconds = 1000000 / device.RefreshHz

// servoOutput adapts the PWM peripherals to the pulse-count interface the
// device logic is calibrated in.
type servoOutput struct {
	servos [device.NumChannels]servo.Servo
}

func newServoOutput(pairs [3]ServoPairConfig) (*servoOutput, error) {
	out := &servoOutput{}

	for i, cfg := range pairs {
		array, err := servo.NewArray(cfg.PWM)
		if err != nil {
			return nil, errors.New("error creating servo array: " + err.Error())
		}

		a, err := array.Add(cfg.PinA)
		if err != nil {
			return nil, errors.New("error adding servo to array: " + err.Error())
		}
		b, err := array.Add(cfg.PinB)
		if err != nil {
			return nil, errors.New("error adding servo to array: " + err.Error())
		}

		out.servos[2*i] = a
		out.servos[2*i+1] = b
	}

	return out, nil
}

// SetPulse converts a 12-bit pulse count into microseconds for the PWM
// peripheral. Out-of-range channels are ignored.
func (o *servoOutput) SetPulse(channel, pulse int) {
	if channel < 0 || channel >= device.NumChannels {
		return
	}

	us := int64(pulse) * periodMicroseconds / device.PulseResolution
	err := o.servos[channel].SetMicroseconds(int16(us))
	if err != nil {
		println("error setting servo pulse:", err.Error())
	}
}
