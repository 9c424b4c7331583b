package commands

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xinwenxu/eyemech"
)

// Controller is the dispatch target for parsed commands.
type Controller interface {
	PositionEye(x, y float64)
	AdjustLid(delta int)
	Blink()
}

// ByteReader is the receive side of the serial link. ReadByte returns an
// error when no byte is buffered, matching machine.Serial.
type ByteReader interface {
	ReadByte() (byte, error)
}

// Interpreter accumulates serial input into a line buffer and dispatches
// complete lines to the Controller. At most one complete line is pending at
// a time; the buffer is consumed and reset before the next line accumulates.
type Interpreter struct {
	ctrl Controller
	diag io.Writer

	line     []byte
	complete bool
}

// NewInterpreter returns an Interpreter dispatching to ctrl. Malformed-command
// diagnostics are written to diag (the serial link itself on the device); a
// nil diag discards them.
func NewInterpreter(ctrl Controller, diag io.Writer) *Interpreter {
	return &Interpreter{ctrl: ctrl, diag: diag}
}

// Feed consumes one received byte: the terminator marks the buffered line
// complete, anything else is appended. Bytes fed while a line is pending
// still belong to that line's dispatch cycle, so callers stop feeding once
// Ready reports true and resume after Process.
func (it *Interpreter) Feed(b byte) {
	if b == eyemech.Terminator {
		it.complete = true
		return
	}
	it.line = append(it.line, b)
}

// Ready reports whether a complete line is pending dispatch.
func (it *Interpreter) Ready() bool {
	return it.complete
}

// Process parses and dispatches the pending line, then resets the buffer and
// the complete flag unconditionally so one bad line can never wedge the loop.
// Calling Process without a pending line does nothing.
func (it *Interpreter) Process() {
	if !it.complete {
		return
	}

	line := strings.TrimSpace(string(it.line))
	it.line = it.line[:0]
	it.complete = false

	switch {
	case line == eyemech.CommandBlink:
		it.ctrl.Blink()

	case strings.HasPrefix(line, eyemech.CommandLid):
		i := strings.IndexByte(line, ' ')
		if i < 0 {
			it.commandError(line)
			return
		}
		// Unparsable deltas degrade to 0: best-effort numeric conversion is
		// a deliberate protocol quirk, only a missing delimiter is an error.
		delta, _ := strconv.Atoi(line[i+1:])
		it.ctrl.AdjustLid(delta)

	default:
		// Anything else is assumed to be an eye command: first token is the
		// command word, the next two space-separated tokens are x and y.
		i := strings.IndexByte(line, ' ')
		if i < 0 {
			it.commandError(line)
			return
		}
		xs, ys, _ := strings.Cut(line[i+1:], " ")
		x, _ := strconv.ParseFloat(xs, 64)
		y, _ := strconv.ParseFloat(ys, 64)
		it.ctrl.PositionEye(x, y)
	}
}

// Pump drains the available input, stopping early once a line completes, and
// dispatches at most one command. Bytes left in the receive buffer keep for
// the next cycle, so nothing is dropped between lines.
func (it *Interpreter) Pump(in ByteReader) {
	for !it.complete {
		b, err := in.ReadByte()
		if err != nil {
			break
		}
		it.Feed(b)
	}

	it.Process()
}

func (it *Interpreter) commandError(line string) {
	if it.diag == nil {
		return
	}
	it.diag.Write([]byte("Command Error: " + line + "\r\n"))
}

// Run is the device control loop: one Pump per tick, with a short yield
// between ticks. A blink blocks the loop for its hold duration; bytes sent
// during that window queue in the hardware receive buffer.
func Run(ctrl Controller, in ByteReader, diag io.Writer, tick time.Duration) {
	it := NewInterpreter(ctrl, diag)
	for {
		it.Pump(in)
		time.Sleep(tick)
	}
}
