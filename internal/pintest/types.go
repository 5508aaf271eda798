// internal/pintest/types.go
package pintest

import "fmt"

// Outcome is the verdict for one pin.
type Outcome int

const (
	PassFirst Outcome = iota + 1
	PassRetry
	Failed
)

func (o Outcome) String() string {
	switch o {
	case PassFirst:
		return "pass"
	case PassRetry:
		return "pass-on-retry"
	case Failed:
		return "fail"
	}
	return "unknown"
}

// PinResult is the raw result of exercising one pin.
type PinResult struct {
	Pin      int
	Expected string
	Received []string // one entry per attempt, in order
	Outcome  Outcome
}

// Report is produced by one sequencer run. On failure it ends with the
// failing pin; pins after it were never stimulated.
type Report struct {
	Pins []PinResult
}

// Retried returns the pins that needed the retry attempt.
func (r Report) Retried() []int {
	var out []int
	for _, p := range r.Pins {
		if p.Outcome == PassRetry {
			out = append(out, p.Pin)
		}
	}
	return out
}

// MismatchError reports a pin whose retry also came back wrong.
type MismatchError struct {
	Pin      int
	Expected string
	Received string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("pin %d: not typing %q (received %q)", e.Pin, e.Expected, e.Received)
}

// Observer sees every attempt as it happens. Implementations must not block.
type Observer interface {
	Attempt(pin int, expected, received string, retry bool)
}
