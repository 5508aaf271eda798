// internal/config/config.go
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Fixture    FixtureConfig    `yaml:"fixture"`
	Serial     SerialConfig     `yaml:"serial"`
	Programmer ProgrammerConfig `yaml:"programmer"`
	Loader     LoaderConfig     `yaml:"loader"`
}

// ---- FIXTURE ----

type FixtureConfig struct {
	// SettleMs is the wait after each flashing step before the DUT is
	// talked to again. There is no ready signal from the board.
	SettleMs int `yaml:"settle_ms"`

	// Responses selects where DUT key presses are read from.
	Responses string `yaml:"responses"`
}

const (
	ResponsesSerial = "serial"
	ResponsesStdin  = "stdin"
)

// ---- SERIAL ----

type SerialConfig struct {
	Port      string `yaml:"port"`
	BaudRate  int    `yaml:"baud_rate"`
	TimeoutMs int    `yaml:"timeout_ms"`
}

// ---- PROGRAMMER (bootloader + fuses over ISP) ----

type ProgrammerConfig struct {
	Command    string      `yaml:"command"`
	Part       string      `yaml:"part"`
	Type       string      `yaml:"type"`
	Connection string      `yaml:"connection"`
	Image      string      `yaml:"image"`
	Fuses      FusesConfig `yaml:"fuses"`
}

// FusesConfig holds fuse bytes as avrdude literals ("0x5E").
// An empty value leaves that fuse untouched.
type FusesConfig struct {
	Low      string `yaml:"low"`
	High     string `yaml:"high"`
	Extended string `yaml:"extended"`
}

// ---- LOADER (application firmware over DFU) ----

type LoaderConfig struct {
	Command string `yaml:"command"`
	Part    string `yaml:"part"`
	Image   string `yaml:"image"`
}

// Load reads a fixture profile. Keys not known to Config are rejected.
// The returned config is not normalized or validated.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config: path required")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// an empty file is a valid profile: all defaults
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return &cfg, nil
}
