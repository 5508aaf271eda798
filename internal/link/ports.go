// internal/link/ports.go
package link

import (
	"fmt"

	"go.bug.st/serial/enumerator"
)

// PortInfo describes one serial port visible to the host.
type PortInfo struct {
	Name    string
	IsUSB   bool
	VID     string
	PID     string
	Serial  string
	Product string
}

func (p PortInfo) String() string {
	if !p.IsUSB {
		return p.Name
	}
	s := fmt.Sprintf("%s [%s:%s]", p.Name, p.VID, p.PID)
	if p.Product != "" {
		s += " " + p.Product
	}
	if p.Serial != "" {
		s += " sn=" + p.Serial
	}
	return s
}

// listDetailed is swapped in tests.
var listDetailed = enumerator.GetDetailedPortsList

// ListPorts enumerates serial ports on the host.
func ListPorts() ([]PortInfo, error) {
	ports, err := listDetailed()
	if err != nil {
		return nil, fmt.Errorf("link: enumerate ports: %w", err)
	}

	out := make([]PortInfo, 0, len(ports))
	for _, p := range ports {
		if p == nil {
			continue
		}
		out = append(out, PortInfo{
			Name:    p.Name,
			IsUSB:   p.IsUSB,
			VID:     p.VID,
			PID:     p.PID,
			Serial:  p.SerialNumber,
			Product: p.Product,
		})
	}
	return out, nil
}
