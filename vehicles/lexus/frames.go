package lexus

import (
	"sync"

	"github.com/edgedrive/dbw/canbus"
)

// Channel ids of the outgoing lexus command frames.
const (
	AccelCmdID      uint32 = 0x100
	BrakeCmdID      uint32 = 0x104
	ShiftCmdID      uint32 = 0x128
	SteeringCmdID   uint32 = 0x12C
	TurnSignalCmdID uint32 = 0x130
)

// AccelCmd is the throttle pedal command frame.
type AccelCmd struct {
	mu      sync.Mutex
	enabled bool
	pedal   float64
}

// ID returns the frame's bus channel id.
func (c *AccelCmd) ID() uint32 { return AccelCmdID }

// SetEnabled arms or disarms the frame.
func (c *AccelCmd) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

// Enabled reports whether the frame is armed.
func (c *AccelCmd) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Reset disarms the frame and releases the pedal.
func (c *AccelCmd) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = false
	c.pedal = 0
}

// SetPedal sets the commanded pedal position in percent.
func (c *AccelCmd) SetPedal(pct float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pedal = pct
}

// Pedal returns the commanded pedal position in percent.
func (c *AccelCmd) Pedal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pedal
}

// BrakeCmd is the brake pedal command frame.
type BrakeCmd struct {
	mu      sync.Mutex
	enabled bool
	pedal   float64
}

// ID returns the frame's bus channel id.
func (c *BrakeCmd) ID() uint32 { return BrakeCmdID }

// SetEnabled arms or disarms the frame.
func (c *BrakeCmd) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

// Enabled reports whether the frame is armed.
func (c *BrakeCmd) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Reset disarms the frame and releases the pedal.
func (c *BrakeCmd) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = false
	c.pedal = 0
}

// SetPedal sets the commanded pedal position in percent.
func (c *BrakeCmd) SetPedal(pct float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pedal = pct
}

// Pedal returns the commanded pedal position in percent.
func (c *BrakeCmd) Pedal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pedal
}

// ShiftCmd is the gear command frame.
type ShiftCmd struct {
	mu      sync.Mutex
	enabled bool
	target  canbus.GearPosition
}

// ID returns the frame's bus channel id.
func (c *ShiftCmd) ID() uint32 { return ShiftCmdID }

// SetEnabled arms or disarms the frame.
func (c *ShiftCmd) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

// Enabled reports whether the frame is armed.
func (c *ShiftCmd) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Reset disarms the frame and clears the gear target.
func (c *ShiftCmd) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = false
	c.target = canbus.GearNone
}

// SetTarget sets the commanded gear.
func (c *ShiftCmd) SetTarget(gear canbus.GearPosition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = gear
}

// Target returns the commanded gear.
func (c *ShiftCmd) Target() canbus.GearPosition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// SteeringCmd is the steering command frame.
type SteeringCmd struct {
	mu       sync.Mutex
	enabled  bool
	angleDeg float64
	rate     float64 // degrees per second
}

// ID returns the frame's bus channel id.
func (c *SteeringCmd) ID() uint32 { return SteeringCmdID }

// SetEnabled arms or disarms the frame.
func (c *SteeringCmd) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

// Enabled reports whether the frame is armed.
func (c *SteeringCmd) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Reset disarms the frame and centers the wheel command.
func (c *SteeringCmd) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = false
	c.angleDeg = 0
	c.rate = 0
}

// SetAngle sets the commanded wheel angle in degrees and the angular rate in
// degrees per second.
func (c *SteeringCmd) SetAngle(angleDeg, rateDegPerSec float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.angleDeg = angleDeg
	c.rate = rateDegPerSec
}

// Angle returns the commanded wheel angle in degrees and the angular rate.
func (c *SteeringCmd) Angle() (float64, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.angleDeg, c.rate
}

// TurnSignalCmd is the turn indicator command frame.
type TurnSignalCmd struct {
	mu      sync.Mutex
	enabled bool
	signal  canbus.TurnSignal
}

// ID returns the frame's bus channel id.
func (c *TurnSignalCmd) ID() uint32 { return TurnSignalCmdID }

// SetEnabled arms or disarms the frame.
func (c *TurnSignalCmd) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = enabled
}

// Enabled reports whether the frame is armed.
func (c *TurnSignalCmd) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enabled
}

// Reset disarms the frame and turns the indicators off.
func (c *TurnSignalCmd) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.enabled = false
	c.signal = canbus.TurnNone
}

// SetSignal sets the commanded indicator state.
func (c *TurnSignalCmd) SetSignal(signal canbus.TurnSignal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.signal = signal
}

// Signal returns the commanded indicator state.
func (c *TurnSignalCmd) Signal() canbus.TurnSignal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.signal
}
