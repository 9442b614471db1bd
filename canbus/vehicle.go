package canbus

// A Vehicle supplies the vehicle-specific half of the drive-by-wire
// protocol: which command frames exist, how they are armed, and how the
// actuators acknowledge commands. The controller stays vehicle-agnostic and
// takes a Vehicle as a constructor dependency.
type Vehicle interface {
	// Wire resolves the vehicle's command frames from the message manager.
	// Called once during controller initialization; a missing frame fails
	// the whole controller.
	Wire(mgr MessageManager) error
	// Frames returns every command frame the vehicle transmits, for
	// registration with the sender. Valid only after Wire.
	Frames() []CommandFrame

	// Arm enables the command frames governing the given axes and
	// disables the rest.
	Arm(axes Axis)
	// Disarm disables every command frame.
	Disarm()

	// SetThrottlePedal commands a throttle pedal position in percent.
	SetThrottlePedal(pct float64)
	// SetBrakePedal commands a brake pedal position in percent.
	SetBrakePedal(pct float64)
	// SetSteeringAngle commands a wheel angle in degrees, reached at the
	// given angular rate in degrees per second.
	SetSteeringAngle(angleDeg, rateDegPerSec float64)
	// SetGear commands a target gear.
	SetGear(gear GearPosition)

	SetParkingBrake(engaged bool)
	SetBeam(high, low bool)
	SetHorn(on bool)
	SetTurnSignal(signal TurnSignal)

	// CheckResponse reports whether the actuators on the given axes have
	// acknowledged the most recent command. When wait is true it may
	// block briefly for the first acknowledgment after an enable push;
	// when false it is a non-blocking poll.
	CheckResponse(axes Axis, wait bool) bool
	// CheckChassisFault reports whether the decoded state carries a
	// hardware fault.
	CheckChassisFault(state SensorState) bool
}
