package canbus

import "github.com/pkg/errors"

// DrivingMode is the controller's top-level state governing which actuation
// axes are authorized for autonomous command.
type DrivingMode int32

// The driving modes, exactly one of which is current at any instant.
const (
	Manual DrivingMode = iota
	CompleteAutoDrive
	AutoSteerOnly
	AutoSpeedOnly
	Emergency
)

func (m DrivingMode) String() string {
	switch m {
	case Manual:
		return "manual"
	case CompleteAutoDrive:
		return "complete_auto_drive"
	case AutoSteerOnly:
		return "auto_steer_only"
	case AutoSpeedOnly:
		return "auto_speed_only"
	case Emergency:
		return "emergency"
	default:
		return "unknown"
	}
}

// ParseDrivingMode converts a configuration string into a DrivingMode.
func ParseDrivingMode(s string) (DrivingMode, error) {
	for _, m := range []DrivingMode{Manual, CompleteAutoDrive, AutoSteerOnly, AutoSpeedOnly, Emergency} {
		if m.String() == s {
			return m, nil
		}
	}
	return Manual, errors.Errorf("unknown driving mode %q", s)
}

// steers reports whether the mode authorizes autonomous lateral control.
func (m DrivingMode) steers() bool {
	return m == CompleteAutoDrive || m == AutoSteerOnly
}

// speeds reports whether the mode authorizes autonomous longitudinal control.
func (m DrivingMode) speeds() bool {
	return m == CompleteAutoDrive || m == AutoSpeedOnly
}

// ErrorCode classifies the controller's current chassis error state.
type ErrorCode int32

const (
	// NoError means no chassis error is asserted.
	NoError ErrorCode = iota
	// ChassisError means the vehicle hardware reported a fault.
	ChassisError
	// ManualIntervention means the watchdog detected repeated actuator
	// non-acknowledgment on an autonomous axis.
	ManualIntervention
)

func (c ErrorCode) String() string {
	switch c {
	case NoError:
		return "no_error"
	case ChassisError:
		return "chassis_error"
	case ManualIntervention:
		return "manual_intervention"
	default:
		return "unknown"
	}
}

// GearPosition is a transmission gear target or report.
type GearPosition int32

// The gear positions.
const (
	GearNone GearPosition = iota
	GearNeutral
	GearDrive
	GearReverse
	GearParking
	GearLow
	GearInvalid
)

// TurnSignal is a turn indicator command or report.
type TurnSignal int32

// The turn signal states.
const (
	TurnNone TurnSignal = iota
	TurnLeft
	TurnRight
)

// Advice is the computed recommendation on whether it is currently safe to
// hand control to autonomous mode.
type Advice int32

const (
	// DisallowEngage means autonomous control must not be engaged.
	DisallowEngage Advice = iota
	// ReadyToEngage means the chassis is in a state safe to engage.
	ReadyToEngage
)

// EngageAdvice pairs an engage recommendation with a human-readable reason
// when engagement is disallowed.
type EngageAdvice struct {
	Advice Advice
	Reason string
}

const disallowEngageReason = "CANBUS not ready, firmware error or emergency button pressed!"

// SensorState is the latest decoded report set from the vehicle, normalized
// by the decode layer. Fields are pointers where the underlying report may
// not have been received yet.
type SensorState struct {
	SpeedMPS       *float64
	ThrottleOutput *float64
	BrakeOutput    *float64
	SteeringAngle  *float64 // degrees
	Gear           *GearPosition
	ParkingBrake   bool
	TurnSignal     TurnSignal

	// Per-channel actuator acknowledgment of autonomous control.
	SteerEnabled *bool
	AccelEnabled *bool
	BrakeEnabled *bool

	// Hardware fault flags reported by the actuators.
	SteerFault bool
	AccelFault bool
	BrakeFault bool
}

// Chassis is a freshly computed, normalized view of the vehicle's sensor and
// control state. It is never cached or partially mutated.
type Chassis struct {
	DrivingMode   DrivingMode
	ErrorCode     ErrorCode
	EngineStarted bool
	SpeedMPS      float64
	ThrottlePct   float64
	BrakePct      float64
	GearLocation  GearPosition
	SteeringPct   float64
	ParkingBrake  bool
	TurnSignal    TurnSignal
	ErrorMask     int32
	EngageAdvice  EngageAdvice
}

// buildChassis maps the latest decoded reports into a normalized chassis
// record. Missing reports map to zero values and GearNone.
func buildChassis(state SensorState, maxSteerAngleDeg float64) Chassis {
	ch := Chassis{
		EngineStarted: true,
		GearLocation:  GearNone,
		ParkingBrake:  state.ParkingBrake,
		TurnSignal:    state.TurnSignal,
	}
	if state.SpeedMPS != nil {
		ch.SpeedMPS = *state.SpeedMPS
	}
	if state.ThrottleOutput != nil {
		ch.ThrottlePct = *state.ThrottleOutput
	}
	if state.BrakeOutput != nil {
		ch.BrakePct = *state.BrakeOutput
	}
	if state.Gear != nil {
		ch.GearLocation = *state.Gear
	}
	if state.SteeringAngle != nil && maxSteerAngleDeg > 0 {
		ch.SteeringPct = *state.SteeringAngle * 100.0 / maxSteerAngleDeg
	}
	return ch
}

// engageAdvice computes whether the chassis is safe to hand to autonomous
// control: no error bits, parking brake released, throttle fully released
// and the brake actually applied.
func engageAdvice(ch Chassis) EngageAdvice {
	if ch.ErrorMask == 0 && !ch.ParkingBrake && ch.ThrottlePct == 0.0 && ch.BrakePct != 0.0 {
		return EngageAdvice{Advice: ReadyToEngage}
	}
	return EngageAdvice{Advice: DisallowEngage, Reason: disallowEngageReason}
}
