// Package pca9685 drives the eye mechanism servos through a PCA9685 16-channel
// PWM controller on an I2C bus.
package pca9685

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	driver "periph.io/x/devices/v3/pca9685"
	"periph.io/x/host/v3"

	"github.com/xinwenxu/eyemech/device"
)

// DefaultAddr is the PCA9685's default I2C address.
const DefaultAddr uint16 = driver.I2CAddr

// Sink implements device.ServoOutput on a PCA9685.
type Sink struct {
	bus i2c.BusCloser
	dev *driver.Dev
}

var _ device.ServoOutput = (*Sink)(nil)

// New opens busName ("" selects the first available bus) and configures the
// chip for the mechanism's refresh frequency.
func New(busName string, addr uint16) (*Sink, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("failed to open i2c bus: %w", err)
	}

	dev, err := driver.NewI2C(bus, addr)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to initialize pca9685: %w", err)
	}

	if err := dev.SetPwmFreq(device.RefreshHz * physic.Hertz); err != nil {
		bus.Close()
		return nil, fmt.Errorf("failed to set pwm frequency: %w", err)
	}

	return &Sink{bus: bus, dev: dev}, nil
}

// SetPulse sets a channel to a 12-bit pulse count. The output contract has no
// failure signal, so write errors are logged and dropped.
func (s *Sink) SetPulse(channel, pulse int) {
	if err := s.dev.SetPwm(channel, 0, gpio.Duty(pulse)); err != nil {
		log.Printf("pca9685: channel %d write failed: %v", channel, err)
	}
}

// Close releases the I2C bus.
func (s *Sink) Close() error {
	return s.bus.Close()
}
