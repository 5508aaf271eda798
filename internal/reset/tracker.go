// internal/reset/tracker.go
package reset

// Tracker records whether the DUT is known to be out of reset and ready for
// firmware operations. The zero value means "needs reset".
//
// Not safe for concurrent use. The run owns exactly one.
type Tracker struct {
	ready bool
}

// NewTracker seeds the tracker. Pass true only when the operator knows the
// board is already running the DFU bootloader or test firmware.
func NewTracker(ready bool) *Tracker {
	return &Tracker{ready: ready}
}

// MarkNeedsReset records that the DUT state is unknown again,
// e.g. after the ISP programmer has rewritten the bootloader.
func (t *Tracker) MarkNeedsReset() { t.ready = false }

// MarkReady records that the DUT has come out of a known reset.
func (t *Tracker) MarkReady() { t.ready = true }

func (t *Tracker) IsReady() bool { return t.ready }

func (t *Tracker) String() string {
	if t.ready {
		return "ready"
	}
	return "needs-reset"
}
