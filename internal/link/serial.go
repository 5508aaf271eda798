// internal/link/serial.go
package link

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/goburrow/serial"
)

// errPortTimeout is what the serial driver reports when a read sees no bytes.
var errPortTimeout = serial.ErrTimeout

// Config is minimal transport config.
type Config struct {
	Port     string
	BaudRate int
	Timeout  time.Duration
}

// Open connects to the fixture MCU (8N1) and wraps it in a Channel.
func Open(cfg Config) (*Channel, error) {
	if cfg.Port == "" {
		return nil, errors.New("link: port required")
	}
	if cfg.BaudRate <= 0 {
		return nil, fmt.Errorf("link: invalid baud rate %d", cfg.BaudRate)
	}

	port, err := serial.Open(&serial.Config{
		Address:  cfg.Port,
		BaudRate: cfg.BaudRate,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("link: open %s: %w", cfg.Port, err)
	}

	log.Printf("link: opened %s at %d baud (timeout=%s)", cfg.Port, cfg.BaudRate, cfg.Timeout)
	return New(port), nil
}
