// internal/config/validate.go
package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}

	// ------------------------------------------------------------
	// FIXTURE
	// ------------------------------------------------------------

	if cfg.Fixture.SettleMs < 0 {
		return fmt.Errorf("fixture: settle_ms must be >= 0, got %d", cfg.Fixture.SettleMs)
	}

	switch cfg.Fixture.Responses {
	case ResponsesSerial, ResponsesStdin:
	default:
		return fmt.Errorf(
			"fixture: responses must be %q or %q, got %q",
			ResponsesSerial,
			ResponsesStdin,
			cfg.Fixture.Responses,
		)
	}

	// ------------------------------------------------------------
	// SERIAL
	// ------------------------------------------------------------

	if cfg.Serial.Port == "" {
		return fmt.Errorf("serial: port required")
	}
	if cfg.Serial.BaudRate <= 0 {
		return fmt.Errorf("serial: baud_rate must be > 0, got %d", cfg.Serial.BaudRate)
	}
	if cfg.Serial.TimeoutMs <= 0 {
		return fmt.Errorf("serial: timeout_ms must be > 0, got %d", cfg.Serial.TimeoutMs)
	}

	// ------------------------------------------------------------
	// PROGRAMMER
	// ------------------------------------------------------------

	p := cfg.Programmer
	for _, f := range []struct{ key, val string }{
		{"command", p.Command},
		{"part", p.Part},
		{"type", p.Type},
		{"connection", p.Connection},
		{"image", p.Image},
	} {
		if strings.TrimSpace(f.val) == "" {
			return fmt.Errorf("programmer: %s required", f.key)
		}
	}

	for _, f := range []struct{ key, val string }{
		{"low", p.Fuses.Low},
		{"high", p.Fuses.High},
		{"extended", p.Fuses.Extended},
	} {
		if f.val == "" {
			continue
		}
		if err := validateFuseByte(f.val); err != nil {
			return fmt.Errorf("programmer: fuses.%s: %w", f.key, err)
		}
	}

	// ------------------------------------------------------------
	// LOADER
	// ------------------------------------------------------------

	l := cfg.Loader
	for _, f := range []struct{ key, val string }{
		{"command", l.Command},
		{"part", l.Part},
		{"image", l.Image},
	} {
		if strings.TrimSpace(f.val) == "" {
			return fmt.Errorf("loader: %s required", f.key)
		}
	}

	return nil
}

// validateFuseByte accepts avrdude immediate literals in hex ("0x5E") or decimal.
func validateFuseByte(s string) error {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return fmt.Errorf("invalid fuse value %q", s)
	}
	if v > 0xFF {
		return fmt.Errorf("fuse value %q out of byte range", s)
	}
	return nil
}
