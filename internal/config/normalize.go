// internal/config/normalize.go
package config

// Defaults for the sea-micro fixture. These match the bench setup:
// AVRISP mkII on the ISP header, Atmel DFU bootloader, fixture MCU on ttyACM0.
const (
	DefaultSettleMs  = 2000
	DefaultPort      = "/dev/ttyACM0"
	DefaultBaudRate  = 115200
	DefaultTimeoutMs = 1000

	DefaultPart = "atmega32u4"

	DefaultProgrammerCommand    = "avrdude"
	DefaultProgrammerType       = "avrispmkii"
	DefaultProgrammerConnection = "usb"
	DefaultBootloaderImage      = "ATMega32U4-dfu-bootloader.hex"

	DefaultLowFuse      = "0x5E"
	DefaultHighFuse     = "0xD9"
	DefaultExtendedFuse = "0xC3"

	DefaultLoaderCommand = "dfu-programmer"
	DefaultFirmwareImage = "sea_micro_test.hex"
)

// Default returns a fully populated configuration.
func Default() *Config {
	cfg := &Config{}
	Normalize(cfg)
	return cfg
}

// Normalize fills every unset field with its default.
// It is allowed to mutate configuration.
// Validate() must still be called afterwards.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// ------------------------------------------------------------
	// FIXTURE
	// ------------------------------------------------------------

	if cfg.Fixture.SettleMs == 0 {
		cfg.Fixture.SettleMs = DefaultSettleMs
	}
	if cfg.Fixture.Responses == "" {
		cfg.Fixture.Responses = ResponsesSerial
	}

	// ------------------------------------------------------------
	// SERIAL
	// ------------------------------------------------------------

	if cfg.Serial.Port == "" {
		cfg.Serial.Port = DefaultPort
	}
	if cfg.Serial.BaudRate == 0 {
		cfg.Serial.BaudRate = DefaultBaudRate
	}
	if cfg.Serial.TimeoutMs == 0 {
		cfg.Serial.TimeoutMs = DefaultTimeoutMs
	}

	// ------------------------------------------------------------
	// PROGRAMMER
	// ------------------------------------------------------------

	p := &cfg.Programmer
	if p.Command == "" {
		p.Command = DefaultProgrammerCommand
	}
	if p.Part == "" {
		p.Part = DefaultPart
	}
	if p.Type == "" {
		p.Type = DefaultProgrammerType
	}
	if p.Connection == "" {
		p.Connection = DefaultProgrammerConnection
	}
	if p.Image == "" {
		p.Image = DefaultBootloaderImage
	}

	// Fuses are all-or-nothing: a profile that sets any fuse owns all three.
	if p.Fuses == (FusesConfig{}) {
		p.Fuses = FusesConfig{
			Low:      DefaultLowFuse,
			High:     DefaultHighFuse,
			Extended: DefaultExtendedFuse,
		}
	}

	// ------------------------------------------------------------
	// LOADER
	// ------------------------------------------------------------

	l := &cfg.Loader
	if l.Command == "" {
		l.Command = DefaultLoaderCommand
	}
	if l.Part == "" {
		l.Part = DefaultPart
	}
	if l.Image == "" {
		l.Image = DefaultFirmwareImage
	}
}
