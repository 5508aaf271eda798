// internal/link/link.go
package link

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Channel is a line-oriented duplex link to the fixture.
// Writes are unbuffered: every SendLine reaches the port before it returns.
type Channel struct {
	port io.ReadWriteCloser

	pending []byte // bytes read past the last returned line
	buf     []byte

	closed bool
}

// ErrClosed is returned by operations on a closed channel.
var ErrClosed = errors.New("link: closed")

// New wraps an already opened port.
func New(port io.ReadWriteCloser) *Channel {
	return &Channel{
		port: port,
		buf:  make([]byte, 64),
	}
}

// SendLine writes payload followed by "\n".
func (c *Channel) SendLine(payload string) error {
	if c == nil || c.port == nil || c.closed {
		return ErrClosed
	}

	frame := make([]byte, 0, len(payload)+1)
	frame = append(frame, payload...)
	frame = append(frame, '\n')

	for len(frame) > 0 {
		n, err := c.port.Write(frame)
		if err != nil {
			return fmt.Errorf("link: write %q: %w", payload, err)
		}
		if n == 0 {
			return fmt.Errorf("link: write %q: %w", payload, io.ErrShortWrite)
		}
		frame = frame[n:]
	}
	return nil
}

// ReceiveLine returns the next newline-delimited token with "\r\n" stripped.
//
// A read timeout is not an error: whatever arrived so far (often "") is
// returned with a nil error, and the caller decides what a short token means.
func (c *Channel) ReceiveLine() (string, error) {
	if c == nil || c.port == nil || c.closed {
		return "", ErrClosed
	}

	for {
		if i := bytes.IndexByte(c.pending, '\n'); i >= 0 {
			line := string(c.pending[:i])
			c.pending = c.pending[i+1:]
			return trimLine(line), nil
		}

		n, err := c.port.Read(c.buf)
		if n > 0 {
			c.pending = append(c.pending, c.buf[:n]...)
			continue
		}

		if err == nil || isTimeout(err) {
			// no progress within the port timeout
			line := string(c.pending)
			c.pending = c.pending[:0]
			return trimLine(line), nil
		}

		return "", fmt.Errorf("link: read: %w", err)
	}
}

// Close releases the port. Safe to call more than once.
func (c *Channel) Close() error {
	if c == nil || c.port == nil || c.closed {
		return nil
	}
	c.closed = true
	return c.port.Close()
}

func trimLine(s string) string {
	return strings.TrimRight(s, "\r\n")
}

func isTimeout(err error) bool {
	if errors.Is(err, errPortTimeout) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
