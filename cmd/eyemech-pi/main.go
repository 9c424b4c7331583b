// Command eyemech-pi runs the eye mechanism controller directly on a
// Raspberry Pi: command lines come in over a serial port (or stdin) and servo
// pulses go out through a PCA9685 on the I2C bus.
package main

import (
	"bufio"
	"flag"
	"io"
	"log"
	"os"

	"go.bug.st/serial"

	"github.com/xinwenxu/eyemech"
	"github.com/xinwenxu/eyemech/commands"
	"github.com/xinwenxu/eyemech/device"
	"github.com/xinwenxu/eyemech/output/pca9685"
)

func main() {
	var portName, busName string
	var addr uint
	var verbose bool
	flag.StringVar(&portName, "port", "-", "serial port to read commands from, or '-' for stdin")
	flag.StringVar(&busName, "bus", "", "I2C bus name (default: first available)")
	flag.UintVar(&addr, "addr", uint(pca9685.DefaultAddr), "PCA9685 I2C address")
	flag.BoolVar(&verbose, "verbose", false, "log dispatched actuations")
	flag.Parse()

	sink, err := pca9685.New(busName, uint16(addr))
	if err != nil {
		log.Fatalf("failed to set up servo output: %v", err)
	}
	defer sink.Close()

	d, err := device.New(sink, device.DefaultCalibration())
	if err != nil {
		log.Fatalf("failed to set up device: %v", err)
	}
	if verbose {
		d.Verbose()
	}

	in, diag, closeInput := openInput(portName)
	defer closeInput()

	run(&d, in, diag)
}

// openInput returns the command byte stream and the writer for malformed
// command diagnostics. Diagnostics go back over the serial link when one is
// used, mirroring the firmware behavior, and to stderr otherwise.
func openInput(portName string) (io.Reader, io.Writer, func()) {
	if portName == "-" {
		return os.Stdin, os.Stderr, func() {}
	}

	port, err := serial.Open(portName, &serial.Mode{BaudRate: eyemech.DefaultBaudRate})
	if err != nil {
		log.Fatalf("failed to open serial port %s: %v", portName, err)
	}

	return port, port, func() { port.Close() }
}

func run(ctrl commands.Controller, in io.Reader, diag io.Writer) {
	it := commands.NewInterpreter(ctrl, diag)
	r := bufio.NewReader(in)

	for {
		b, err := r.ReadByte()
		if err != nil {
			if err != io.EOF {
				log.Printf("error reading input: %v", err)
			}
			return
		}

		it.Feed(b)
		if it.Ready() {
			it.Process()
		}
	}
}
