// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"

	"github.com/joshajohnson/sea-micro/internal/link"
	"github.com/joshajohnson/sea-micro/internal/status"
)

// CodeWriter is the delivery-only contract for host->fixture tokens.
// It writes a code verbatim. No acknowledgment is read back.
type CodeWriter interface {
	WriteStatus(c status.Code) error
	WriteStimulus(pin int) error
}

// lineCodeWriter is the concrete implementation used by the fixture run.
type lineCodeWriter struct {
	out link.Sender
}

// New builds a CodeWriter over a line link.
func New(out link.Sender) (CodeWriter, error) {
	if out == nil {
		return nil, errors.New("writer: link required")
	}
	return &lineCodeWriter{out: out}, nil
}

// WriteStatus sends one indicator status code. Pin-range values are refused
// so a status can never be mistaken for a stimulus.
func (w *lineCodeWriter) WriteStatus(c status.Code) error {
	if status.IsPin(c) {
		return fmt.Errorf("writer: %d is a pin stimulus, not a status code", int(c))
	}
	if err := w.out.SendLine(status.Encode(c)); err != nil {
		return fmt.Errorf("writer: status %s: %w", c, err)
	}
	return nil
}

// WriteStimulus asks the fixture to pull DUT pin low.
func (w *lineCodeWriter) WriteStimulus(pin int) error {
	c, err := status.Pin(pin)
	if err != nil {
		return fmt.Errorf("writer: %w", err)
	}
	if err := w.out.SendLine(status.Encode(c)); err != nil {
		return fmt.Errorf("writer: stimulus %s: %w", c, err)
	}
	return nil
}
