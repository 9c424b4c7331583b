package controller

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn captures everything written to the device and serves canned
// device output.
type fakeConn struct {
	in     io.Reader
	out    strings.Builder
	closed bool
}

func (f *fakeConn) Read(p []byte) (int, error) {
	if f.in == nil {
		return 0, io.EOF
	}
	return f.in.Read(p)
}

func (f *fakeConn) Write(p []byte) (int, error) {
	return f.out.Write(p)
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func newTestController() (*Controller, *fakeConn) {
	conn := &fakeConn{}
	return &Controller{conn: conn}, conn
}

func TestCommandFormatting(t *testing.T) {
	tests := []struct {
		name string
		send func(*Controller) error
		want string
	}{
		{"move eye", func(c *Controller) error { return c.MoveEye(12.5, -3) }, "EYE 12.50 -3.00\n"},
		{"move eye truncates to two decimals", func(c *Controller) error { return c.MoveEye(33.333, -50) }, "EYE 33.33 -50.00\n"},
		{"lid open", func(c *Controller) error { return c.ControlLid(3) }, "LID 3\n"},
		{"lid close", func(c *Controller) error { return c.ControlLid(-1) }, "LID -1\n"},
		{"blink", func(c *Controller) error { return c.Blink() }, "BLINK\n"},
		{"raw send", func(c *Controller) error { return c.Send("EYE 0 0") }, "EYE 0 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, conn := newTestController()
			require.NoError(t, tt.send(c))
			assert.Equal(t, tt.want, conn.out.String())
		})
	}
}

func TestRunForwardsLines(t *testing.T) {
	c, conn := newTestController()

	in := strings.NewReader("BLINK\nLID 2\n\n  EYE 1 2  \n")
	err := c.Run(context.Background(), in, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "BLINK\nLID 2\nEYE 1 2\n", conn.out.String())
}

func TestRunStopsWhenCanceled(t *testing.T) {
	c, _ := newTestController()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Run(ctx, strings.NewReader("BLINK\n"), io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClose(t *testing.T) {
	c, conn := newTestController()
	require.NoError(t, c.Close())
	assert.True(t, conn.closed)
}
