package controller

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.bug.st/serial"

	"github.com/xinwenxu/eyemech"
)

// Controller is the host-side client for the eye mechanism. Commands are
// fire-and-forget: the device never acknowledges, it only emits best-effort
// diagnostic lines for malformed commands.
type Controller struct {
	conn io.ReadWriteCloser
}

// New opens the configured serial port and waits out the board reset that
// opening the port triggers.
func New(cfg Config) (*Controller, error) {
	if cfg.Port == "" {
		return nil, errors.New("serial port is required")
	}
	if cfg.BaudRate == 0 {
		cfg.BaudRate = eyemech.DefaultBaudRate
	}

	port, err := serial.Open(cfg.Port, &serial.Mode{BaudRate: cfg.BaudRate})
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Port, err)
	}

	// Opening the port resets the board; give it time to come back up.
	time.Sleep(2 * time.Second)

	return &Controller{conn: port}, nil
}

// NewFromEnv connects using $EYEMECH_PORT, falling back to the first
// available serial port.
func NewFromEnv() (*Controller, error) {
	port := os.Getenv("EYEMECH_PORT")
	if port == "" {
		ports, err := Ports()
		if err != nil {
			return nil, err
		}
		if len(ports) == 0 {
			return nil, errors.New("no serial ports found: set EYEMECH_PORT")
		}
		port = ports[0]
	}

	return New(Config{Port: port})
}

// Ports returns the available serial ports.
func Ports() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}
	return ports, nil
}

// Close closes the serial connection.
func (c *Controller) Close() error {
	return c.conn.Close()
}

// Send writes one raw command line to the device.
func (c *Controller) Send(cmd string) error {
	_, err := c.conn.Write([]byte(cmd + string(eyemech.Terminator)))
	if err != nil {
		return fmt.Errorf("failed to send command %q: %w", cmd, err)
	}
	return nil
}

// MoveEye aims the eye. x and y are percentages of the gaze range, [-50, 50].
func (c *Controller) MoveEye(x, y float64) error {
	return c.Send(fmt.Sprintf("%s %.2f %.2f", eyemech.CommandEye, x, y))
}

// ControlLid opens (positive) or closes (negative) the lids by delta steps.
func (c *Controller) ControlLid(delta int) error {
	return c.Send(fmt.Sprintf("%s %d", eyemech.CommandLid, delta))
}

// Blink triggers the close/hold/reopen sequence.
func (c *Controller) Blink() error {
	return c.Send(eyemech.CommandBlink)
}

// Run forwards command lines from in to the device and copies device
// diagnostics to out, until in is exhausted or ctx is canceled.
func (c *Controller) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	// Diagnostics are best-effort; the copy ends when the port closes.
	go func() {
		_, _ = io.Copy(out, c.conn)
	}()

	lines := bufio.NewScanner(in)
	for lines.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := strings.TrimSpace(lines.Text())
		if line == "" {
			continue
		}

		if err := c.Send(line); err != nil {
			return err
		}
	}

	return lines.Err()
}
