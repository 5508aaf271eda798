// internal/pintest/sequencer.go
package pintest

import (
	"errors"
	"fmt"

	"github.com/joshajohnson/sea-micro/internal/link"
	"github.com/joshajohnson/sea-micro/internal/status"
	"github.com/joshajohnson/sea-micro/internal/writer"
)

// Sequencer walks every DUT pin: stimulate, read the typed key, compare,
// retry once.
type Sequencer struct {
	codes    writer.CodeWriter
	in       link.Receiver
	observer Observer
	pins     int
}

// New creates a sequencer over the given code writer and response source.
// observer may be nil.
func New(codes writer.CodeWriter, in link.Receiver, observer Observer) (*Sequencer, error) {
	if codes == nil {
		return nil, errors.New("pintest: code writer required")
	}
	if in == nil {
		return nil, errors.New("pintest: response source required")
	}
	return &Sequencer{
		codes:    codes,
		in:       in,
		observer: observer,
		pins:     status.PinCount,
	}, nil
}

// Run exercises pins 1..18 in order.
//
// A pin that mismatches twice sends the error status, returns
// *MismatchError and stops: later pins are not stimulated. A link failure
// returns immediately without the error status; the caller owns that.
func (s *Sequencer) Run() (Report, error) {
	var rep Report

	for pin := 1; pin <= s.pins; pin++ {
		res, err := s.testPin(pin)
		rep.Pins = append(rep.Pins, res)
		if err != nil {
			return rep, err
		}
	}

	return rep, nil
}

func (s *Sequencer) testPin(pin int) (PinResult, error) {
	res := PinResult{
		Pin:      pin,
		Expected: status.ExpectedKey(pin),
	}

	for attempt := 0; attempt < 2; attempt++ {
		got, err := s.attempt(pin)
		if err != nil {
			res.Outcome = Failed
			return res, err
		}
		res.Received = append(res.Received, got)

		if s.observer != nil {
			s.observer.Attempt(pin, res.Expected, got, attempt > 0)
		}

		if got == res.Expected {
			if attempt == 0 {
				res.Outcome = PassFirst
			} else {
				res.Outcome = PassRetry
			}
			return res, nil
		}
	}

	res.Outcome = Failed
	mismatch := &MismatchError{
		Pin:      pin,
		Expected: res.Expected,
		Received: res.Received[len(res.Received)-1],
	}

	// best-effort: the mismatch is the error worth reporting
	_ = s.codes.WriteStatus(status.Error)

	return res, mismatch
}

func (s *Sequencer) attempt(pin int) (string, error) {
	if err := s.codes.WriteStimulus(pin); err != nil {
		return "", fmt.Errorf("pintest: pin %d: %w", pin, err)
	}
	got, err := s.in.ReceiveLine()
	if err != nil {
		return "", fmt.Errorf("pintest: pin %d: %w", pin, err)
	}
	return got, nil
}
