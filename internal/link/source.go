// internal/link/source.go
package link

import (
	"bufio"
	"fmt"
	"io"
)

// Sender is the write half of a fixture link.
type Sender interface {
	SendLine(payload string) error
}

// Receiver is the read half of a fixture link.
type Receiver interface {
	ReceiveLine() (string, error)
}

// LineReader reads responses from a plain stream, such as the host keyboard
// when the DUT enumerates as a USB HID and types into the terminal.
// Reads block with no timeout.
type LineReader struct {
	sc *bufio.Scanner
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{sc: bufio.NewScanner(r)}
}

func (r *LineReader) ReceiveLine() (string, error) {
	if r.sc.Scan() {
		return trimLine(r.sc.Text()), nil
	}
	if err := r.sc.Err(); err != nil {
		return "", fmt.Errorf("link: read input: %w", err)
	}
	return "", fmt.Errorf("link: read input: %w", io.EOF)
}

// Split sends stimuli on one link and collects responses from another.
type Split struct {
	Out Sender
	In  Receiver
}

func (s Split) SendLine(payload string) error { return s.Out.SendLine(payload) }

func (s Split) ReceiveLine() (string, error) { return s.In.ReceiveLine() }
