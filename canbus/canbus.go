// Package canbus implements the drive-by-wire control core for a vehicle: an
// authoritative driving-mode state machine, mode-gated actuation command
// dispatch, and a safety watchdog that forces an emergency fallback when the
// actuators stop acknowledging commands or report a fault.
//
// The bit-level frame layout and the physical transport live behind the
// Sender and MessageManager collaborators; vehicle-specific protocol
// behavior lives behind the Vehicle capability.
package canbus

// Axis identifies the actuation axes addressed by a response check.
type Axis uint8

const (
	// AxisSteer covers lateral control (steering).
	AxisSteer Axis = 1 << iota
	// AxisSpeed covers longitudinal control (throttle, brake, shift).
	AxisSpeed
)

// Has reports whether a includes every axis in other.
func (a Axis) Has(other Axis) bool { return a&other == other }

// A Sender transmits registered command frames onto the vehicle bus.
type Sender interface {
	// Register adds a command frame to the send table with the given
	// initial arm state. Registration is permanent for the lifetime of
	// the sender; registering a channel id twice is an error.
	Register(frame CommandFrame, enabled bool) error
	// Push transmits the current values of all enabled frames immediately
	// rather than waiting for the next periodic cycle.
	Push()
	// IsActive reports whether the send loop is running.
	IsActive() bool
	// Started returns a channel that is closed once the send loop has
	// begun running.
	Started() <-chan struct{}
}

// A MessageManager owns the command frames and the latest decoded state
// reported by the vehicle.
type MessageManager interface {
	// Resolve returns the command frame owned by the manager for the
	// given channel id.
	Resolve(id uint32) (CommandFrame, error)
	// LatestSensorState returns the most recent decoded vehicle reports.
	LatestSensorState() SensorState
	// ResetOutgoing disables and zeroes every outgoing command frame.
	ResetOutgoing()
}
