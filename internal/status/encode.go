// internal/status/encode.go
package status

import (
	"fmt"
	"strconv"
)

// Encode renders a code as its wire token (decimal text, no terminator).
// No IO. No side effects.
func Encode(c Code) string {
	return strconv.Itoa(int(c))
}

// IsPin reports whether c is a pin stimulus rather than a status code.
func IsPin(c Code) bool {
	return c >= FirstPin && c <= LastPin
}

// Pin returns the stimulus code for pin index i.
func Pin(i int) (Code, error) {
	c := Code(i)
	if !IsPin(c) {
		return 0, fmt.Errorf("status: pin %d out of range %d..%d", i, FirstPin, LastPin)
	}
	return c, nil
}

// ExpectedKey is the character the DUT types when pin i is pulled low:
// pin 1 is 'a', pin 2 is 'b' and so on.
func ExpectedKey(i int) string {
	return string(rune('a' + i - 1))
}

func (c Code) String() string {
	switch c {
	case AllPassed:
		return "all-passed"
	case Error:
		return "error"
	case ResetIndicators:
		return "reset-indicators"
	case HardReset:
		return "hard-reset"
	}
	if IsPin(c) {
		return "pin-" + Encode(c)
	}
	return "code-" + Encode(c)
}
