//go:build tinygo

package main

import (
	"machine"
	"time"

	"github.com/xinwenxu/eyemech/commands"
	"github.com/xinwenxu/eyemech/device"
)

// tick is the control loop yield between input drains.
const tick = 10 * time.Millisecond

func main() {
	pairs := [3]ServoPairConfig{
		{PWM: machine.PWM1, PinA: machine.GP2, PinB: machine.GP3}, // pan, tilt
		{PWM: machine.PWM2, PinA: machine.GP4, PinB: machine.GP5}, // up, low lid
		{PWM: machine.PWM3, PinA: machine.GP6, PinB: machine.GP7}, // mirrored lids
	}

	out, err := newServoOutput(pairs)
	if err != nil {
		panic(err)
	}

	d, err := device.New(out, device.DefaultCalibration())
	if err != nil {
		panic(err)
	}

	commands.Run(&d, machine.Serial, machine.Serial, tick)
}
