// internal/fixture/errors.go
package fixture

import (
	"errors"
	"fmt"

	"github.com/joshajohnson/sea-micro/internal/pintest"
	"github.com/joshajohnson/sea-micro/internal/tool"
)

// Step names one stage of the run.
type Step string

const (
	StepIndicators Step = "reset-indicators"
	StepBootloader Step = "bootloader"
	StepFirmware   Step = "firmware"
	StepPinTest    Step = "pin-test"
	StepFinish     Step = "all-passed"
)

// Kind classifies a fatal failure.
type Kind int

const (
	// ToolInvocationFailure: a flashing subprocess exited outside its success set.
	ToolInvocationFailure Kind = iota + 1
	// PinMismatch: the DUT typed the wrong key twice for one pin.
	PinMismatch
	// LinkFailure: the fixture serial link could not be used.
	LinkFailure
)

func (k Kind) String() string {
	switch k {
	case ToolInvocationFailure:
		return "tool invocation failure"
	case PinMismatch:
		return "pin mismatch"
	case LinkFailure:
		return "link failure"
	}
	return "unknown failure"
}

// Error is the single terminal result of a failed run.
type Error struct {
	Step Step
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("fixture: %s step: %s: %v", e.Step, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// classify maps a step error onto the failure taxonomy without assuming the
// step knows it.
func classify(err error) Kind {
	var mm *pintest.MismatchError
	if errors.As(err, &mm) {
		return PinMismatch
	}
	var ee *tool.ExitError
	if errors.As(err, &ee) {
		return ToolInvocationFailure
	}
	return LinkFailure
}
