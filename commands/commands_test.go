package commands

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeController records dispatched commands.
type fakeController struct {
	eyeCalls [][2]float64
	lidCalls []int
	blinks   int
}

func (f *fakeController) PositionEye(x, y float64) {
	f.eyeCalls = append(f.eyeCalls, [2]float64{x, y})
}

func (f *fakeController) AdjustLid(delta int) {
	f.lidCalls = append(f.lidCalls, delta)
}

func (f *fakeController) Blink() {
	f.blinks++
}

var errNoData = errors.New("no data")

// byteQueue is a ByteReader that errors when drained, like a hardware
// receive buffer.
type byteQueue struct {
	data []byte
}

func (q *byteQueue) ReadByte() (byte, error) {
	if len(q.data) == 0 {
		return 0, errNoData
	}
	b := q.data[0]
	q.data = q.data[1:]
	return b, nil
}

func (q *byteQueue) push(s string) {
	q.data = append(q.data, s...)
}

func feedLine(it *Interpreter, line string) {
	for i := 0; i < len(line); i++ {
		it.Feed(line[i])
	}
	it.Feed('\n')
}

func TestProcess(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantEye   [][2]float64
		wantLid   []int
		wantBlink int
		wantDiag  string
	}{
		{name: "blink", line: "BLINK", wantBlink: 1},
		{name: "lid positive", line: "LID 3", wantLid: []int{3}},
		{name: "lid negative", line: "LID -2", wantLid: []int{-2}},
		{name: "lid garbage delta falls back to zero", line: "LID abc", wantLid: []int{0}},
		{name: "lid without argument", line: "LID", wantDiag: "Command Error: LID\r\n"},
		{name: "eye", line: "EYE 12.5 -3", wantEye: [][2]float64{{12.5, -3}}},
		{name: "eye missing y falls back to zero", line: "EYE 12.5", wantEye: [][2]float64{{12.5, 0}}},
		{name: "eye without argument", line: "EYE", wantDiag: "Command Error: EYE\r\n"},
		{name: "unknown word without space", line: "GARBAGE", wantDiag: "Command Error: GARBAGE\r\n"},
		{name: "unknown command parses as eye", line: "FOO BAR", wantEye: [][2]float64{{0, 0}}},
		{name: "blink with trailing token parses as eye", line: "BLINK NOW", wantEye: [][2]float64{{0, 0}}},
		{name: "surrounding whitespace trimmed", line: "  EYE 1 2  \r", wantEye: [][2]float64{{1, 2}}},
		{name: "empty line", line: "", wantDiag: "Command Error: \r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := &fakeController{}
			var diag bytes.Buffer
			it := NewInterpreter(ctrl, &diag)

			feedLine(it, tt.line)
			require.True(t, it.Ready())
			it.Process()

			assert.Equal(t, tt.wantEye, ctrl.eyeCalls)
			assert.Equal(t, tt.wantLid, ctrl.lidCalls)
			assert.Equal(t, tt.wantBlink, ctrl.blinks)
			assert.Equal(t, tt.wantDiag, diag.String())
			assert.False(t, it.Ready())
		})
	}
}

func TestPartialLineBuffering(t *testing.T) {
	ctrl := &fakeController{}
	it := NewInterpreter(ctrl, nil)

	for _, chunk := range []string{"EY", "E 1", " 2"} {
		for i := 0; i < len(chunk); i++ {
			it.Feed(chunk[i])
		}
		assert.False(t, it.Ready())
		it.Process()
		assert.Empty(t, ctrl.eyeCalls)
	}

	it.Feed('\n')
	require.True(t, it.Ready())
	it.Process()
	assert.Equal(t, [][2]float64{{1, 2}}, ctrl.eyeCalls)
}

func TestProcessResetsAfterMalformedLine(t *testing.T) {
	ctrl := &fakeController{}
	var diag bytes.Buffer
	it := NewInterpreter(ctrl, &diag)

	feedLine(it, "LID")
	it.Process()
	feedLine(it, "LID 4")
	it.Process()

	assert.Equal(t, "Command Error: LID\r\n", diag.String())
	assert.Equal(t, []int{4}, ctrl.lidCalls)
}

func TestPumpDispatchesOneLinePerCall(t *testing.T) {
	ctrl := &fakeController{}
	it := NewInterpreter(ctrl, nil)

	in := &byteQueue{}
	in.push("LID 1\nLID 2\n")

	it.Pump(in)
	assert.Equal(t, []int{1}, ctrl.lidCalls)

	it.Pump(in)
	assert.Equal(t, []int{1, 2}, ctrl.lidCalls)
}

func TestPumpAccumulatesAcrossCycles(t *testing.T) {
	ctrl := &fakeController{}
	it := NewInterpreter(ctrl, nil)

	in := &byteQueue{}
	in.push("EYE 1")
	it.Pump(in)
	assert.Empty(t, ctrl.eyeCalls)

	in.push("0 20\n")
	it.Pump(in)
	assert.Equal(t, [][2]float64{{10, 20}}, ctrl.eyeCalls)
}

func TestPumpOnEmptyInput(t *testing.T) {
	ctrl := &fakeController{}
	it := NewInterpreter(ctrl, nil)

	it.Pump(&byteQueue{})
	assert.Empty(t, ctrl.eyeCalls)
	assert.Empty(t, ctrl.lidCalls)
	assert.Zero(t, ctrl.blinks)
}
