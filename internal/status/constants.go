// internal/status/constants.go
package status

// Fixture status codes.
// These values are burned into the fixture firmware and MUST NOT be configurable.

// Code is one host->fixture token. Pin stimuli and status codes share the link;
// they are told apart by value range only.
type Code int

// ---- STATUS CODES ----

// AllPassed lights the pass indicator.
const AllPassed Code = 32

// Error lights the fail indicator.
const Error Code = 33

// ResetIndicators clears both indicators at the start of a run.
const ResetIndicators Code = 34

// HardReset asks the fixture to pull the DUT reset line.
const HardReset Code = 255

// ---- PIN STIMULI ----

// PinCount is the number of DUT I/O pins the fixture can pull low.
const PinCount = 18

// FirstPin and LastPin bound the pin stimulus range (inclusive).
const FirstPin Code = 1
const LastPin Code = PinCount
