// internal/fixture/fixture.go
package fixture

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joshajohnson/sea-micro/internal/pintest"
	"github.com/joshajohnson/sea-micro/internal/reset"
	"github.com/joshajohnson/sea-micro/internal/status"
	"github.com/joshajohnson/sea-micro/internal/tool"
	"github.com/joshajohnson/sea-micro/internal/writer"
)

// Programmer writes the bootloader and fuses.
type Programmer interface {
	FlashBootloader(ctx context.Context) (tool.Status, error)
}

// Loader writes and restarts the test firmware.
type Loader interface {
	EraseFlashResetFirmware(ctx context.Context) (tool.Status, error)
	ForceHardReset(ctx context.Context) (tool.Status, error)
}

// PinTester runs the key mapping test.
type PinTester interface {
	Run() (pintest.Report, error)
}

// Reporter receives operator-facing progress.
type Reporter interface {
	Progress(msg string)
	Passed(msg string)
	Failed(msg string, detail string)
}

// Steps selects which stages run. Order is fixed regardless.
type Steps struct {
	Bootloader bool
	Firmware   bool
	PinTest    bool
}

// Config is the runtime config the orchestrator needs.
type Config struct {
	Steps Steps

	// Settle is the wait after each flashing step. It stands in for a
	// device-ready signal the hardware does not provide.
	Settle time.Duration
}

// Deps are the collaborators. Only those for selected steps are required.
type Deps struct {
	Codes      writer.CodeWriter
	Programmer Programmer
	Loader     Loader
	Pins       PinTester
	Reporter   Reporter

	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)
}

// Fixture sequences one test run against one DUT.
type Fixture struct {
	cfg     Config
	deps    Deps
	tracker *reset.Tracker
}

// New validates the wiring. tracker is owned by the Fixture from here on.
func New(cfg Config, deps Deps, tracker *reset.Tracker) (*Fixture, error) {
	if deps.Codes == nil {
		return nil, errors.New("fixture: code writer required")
	}
	if cfg.Steps.Bootloader && deps.Programmer == nil {
		return nil, errors.New("fixture: programmer required for bootloader step")
	}
	if cfg.Steps.Firmware && deps.Loader == nil {
		return nil, errors.New("fixture: loader required for firmware step")
	}
	if cfg.Steps.PinTest && deps.Pins == nil {
		return nil, errors.New("fixture: pin tester required for pin-test step")
	}
	if cfg.Settle < 0 {
		return nil, errors.New("fixture: settle must be >= 0")
	}
	if deps.Reporter == nil {
		deps.Reporter = nopReporter{}
	}
	if deps.Sleep == nil {
		deps.Sleep = time.Sleep
	}
	if tracker == nil {
		tracker = reset.NewTracker(false)
	}

	return &Fixture{cfg: cfg, deps: deps, tracker: tracker}, nil
}

// Ready reports the current reset state.
func (f *Fixture) Ready() bool { return f.tracker.IsReady() }

// Run executes the selected steps in order and stops at the first failure.
// The returned error, if any, is always *Error; the error status has
// already been sent.
func (f *Fixture) Run(ctx context.Context) error {
	if err := f.deps.Codes.WriteStatus(status.ResetIndicators); err != nil {
		return f.fail(StepIndicators, err)
	}

	if f.cfg.Steps.Bootloader {
		if err := f.bootloader(ctx); err != nil {
			return f.fail(StepBootloader, err)
		}
	}

	if f.cfg.Steps.Firmware {
		if err := f.firmware(ctx); err != nil {
			return f.fail(StepFirmware, err)
		}
	}

	if f.cfg.Steps.PinTest {
		if err := f.pinTest(); err != nil {
			return f.fail(StepPinTest, err)
		}
	}

	if err := f.deps.Codes.WriteStatus(status.AllPassed); err != nil {
		return f.fail(StepFinish, err)
	}

	f.deps.Reporter.Passed("ALL STEPS PASSED")
	return nil
}

// ---- steps ----

func (f *Fixture) bootloader(ctx context.Context) error {
	f.deps.Reporter.Progress("FLASHING BOOTLOADER")

	// the ISP write leaves the MCU in an unknown state whatever the outcome
	f.tracker.MarkNeedsReset()

	if _, err := f.deps.Programmer.FlashBootloader(ctx); err != nil {
		return err
	}

	f.deps.Reporter.Progress("BOOTLOADER FLASHED")
	f.settle()
	return nil
}

func (f *Fixture) firmware(ctx context.Context) error {
	if !f.tracker.IsReady() {
		f.deps.Reporter.Progress("RESETTING DUT")
		if _, err := f.deps.Loader.ForceHardReset(ctx); err != nil {
			return err
		}
		f.tracker.MarkReady()
	}

	f.deps.Reporter.Progress("ERASING, FLASHING AND RESETTING DUT")
	if _, err := f.deps.Loader.EraseFlashResetFirmware(ctx); err != nil {
		return err
	}
	f.tracker.MarkReady()

	f.deps.Reporter.Progress("TEST FIRMWARE FLASHED")
	f.settle()
	return nil
}

func (f *Fixture) pinTest() error {
	// One reset so the test firmware is running. The tracker is left alone:
	// nothing here proves the board came back.
	if !f.tracker.IsReady() {
		f.deps.Reporter.Progress("RESETTING DUT")
		if err := f.deps.Codes.WriteStatus(status.HardReset); err != nil {
			return err
		}
		f.settle()
	}

	f.deps.Reporter.Progress("TESTING KEYS")
	rep, err := f.deps.Pins.Run()
	if err != nil {
		return err
	}

	if retried := rep.Retried(); len(retried) > 0 {
		log.Printf("fixture: pins passed on retry: %v", retried)
	}
	f.deps.Reporter.Progress("KEYS TEST PASSED")
	return nil
}

// ---- failure path ----

func (f *Fixture) fail(step Step, err error) error {
	ferr := &Error{Step: step, Kind: classify(err), Err: err}

	// The sequencer signals its own mismatches.
	if ferr.Kind != PinMismatch {
		if serr := f.deps.Codes.WriteStatus(status.Error); serr != nil {
			log.Printf("fixture: error status not delivered (step=%s): %v", step, serr)
		}
	}

	f.deps.Reporter.Failed(failHeadline(ferr), err.Error())
	return ferr
}

func failHeadline(e *Error) string {
	switch e.Step {
	case StepBootloader:
		return "FAIL AT WRITING BOOTLOADER"
	case StepFirmware:
		return "FAIL AT FLASHING TEST FIRMWARE"
	case StepPinTest:
		var mm *pintest.MismatchError
		if errors.As(e.Err, &mm) {
			return "NOT TYPING " + mm.Expected
		}
		return "FAIL AT KEYS TEST"
	}
	return "FAIL AT " + string(e.Step)
}

func (f *Fixture) settle() {
	if f.cfg.Settle > 0 {
		f.deps.Sleep(f.cfg.Settle)
	}
}

type nopReporter struct{}

func (nopReporter) Progress(string)       {}
func (nopReporter) Passed(string)         {}
func (nopReporter) Failed(string, string) {}
