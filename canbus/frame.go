package canbus

// A CommandFrame is a single outgoing actuation command unit addressed by a
// numeric channel id. Implementations must be safe for concurrent use: the
// controller writes values on the caller's goroutine while the sender reads
// them for transmission.
type CommandFrame interface {
	// ID returns the frame's bus channel id.
	ID() uint32
	// SetEnabled arms or disarms the frame for transmission.
	SetEnabled(enabled bool)
	// Enabled reports whether the frame is armed.
	Enabled() bool
	// Reset disarms the frame and returns its payload to a neutral value.
	Reset()
}
