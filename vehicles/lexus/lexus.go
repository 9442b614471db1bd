// Package lexus implements the drive-by-wire vehicle capability for a
// PACMod-driven Lexus.
package lexus

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/edgedrive/dbw/canbus"
)

const (
	// responsePollInterval paces the blocking acknowledgment poll.
	responsePollInterval = 20 * time.Millisecond
	// responseTimeout bounds how long a blocking response check waits for
	// the first acknowledgment after an enable push.
	responseTimeout = 500 * time.Millisecond
)

// Lexus implements canbus.Vehicle. It holds typed references to its command
// frames, resolved once from the message manager during Wire.
type Lexus struct {
	logger golog.Logger
	clock  clock.Clock

	mgr      canbus.MessageManager
	accel    *AccelCmd
	brake    *BrakeCmd
	shift    *ShiftCmd
	steering *SteeringCmd
	turn     *TurnSignalCmd
}

var _ canbus.Vehicle = (*Lexus)(nil)

// NewVehicle returns an unwired lexus capability.
func NewVehicle(logger golog.Logger) *Lexus {
	return &Lexus{logger: logger, clock: clock.New()}
}

// Wire resolves the typed command frames from the message manager. A frame
// of the wrong channel or type is an error; there is no runtime downcast
// after this point.
func (l *Lexus) Wire(mgr canbus.MessageManager) error {
	l.mgr = mgr

	frame, err := mgr.Resolve(AccelCmdID)
	if err != nil {
		return err
	}
	accel, ok := frame.(*AccelCmd)
	if !ok {
		return errors.Errorf("channel %#x is not an accel command", AccelCmdID)
	}
	l.accel = accel

	frame, err = mgr.Resolve(BrakeCmdID)
	if err != nil {
		return err
	}
	brake, ok := frame.(*BrakeCmd)
	if !ok {
		return errors.Errorf("channel %#x is not a brake command", BrakeCmdID)
	}
	l.brake = brake

	frame, err = mgr.Resolve(ShiftCmdID)
	if err != nil {
		return err
	}
	shift, ok := frame.(*ShiftCmd)
	if !ok {
		return errors.Errorf("channel %#x is not a shift command", ShiftCmdID)
	}
	l.shift = shift

	frame, err = mgr.Resolve(SteeringCmdID)
	if err != nil {
		return err
	}
	steering, ok := frame.(*SteeringCmd)
	if !ok {
		return errors.Errorf("channel %#x is not a steering command", SteeringCmdID)
	}
	l.steering = steering

	frame, err = mgr.Resolve(TurnSignalCmdID)
	if err != nil {
		return err
	}
	turn, ok := frame.(*TurnSignalCmd)
	if !ok {
		return errors.Errorf("channel %#x is not a turn signal command", TurnSignalCmdID)
	}
	l.turn = turn

	return nil
}

// Frames returns every command frame the vehicle transmits.
func (l *Lexus) Frames() []canbus.CommandFrame {
	return []canbus.CommandFrame{l.accel, l.brake, l.shift, l.steering, l.turn}
}

// Arm enables the command frames governing the given axes and disables the
// rest.
func (l *Lexus) Arm(axes canbus.Axis) {
	l.steering.SetEnabled(axes.Has(canbus.AxisSteer))
	speed := axes.Has(canbus.AxisSpeed)
	l.accel.SetEnabled(speed)
	l.brake.SetEnabled(speed)
	l.shift.SetEnabled(speed)
}

// Disarm disables every command frame.
func (l *Lexus) Disarm() {
	for _, frame := range l.Frames() {
		frame.SetEnabled(false)
	}
}

// SetThrottlePedal commands a throttle pedal position in percent.
func (l *Lexus) SetThrottlePedal(pct float64) { l.accel.SetPedal(pct) }

// SetBrakePedal commands a brake pedal position in percent.
func (l *Lexus) SetBrakePedal(pct float64) { l.brake.SetPedal(pct) }

// SetSteeringAngle commands a wheel angle in degrees at the given rate.
func (l *Lexus) SetSteeringAngle(angleDeg, rateDegPerSec float64) {
	l.steering.SetAngle(angleDeg, rateDegPerSec)
}

// SetGear commands a target gear.
func (l *Lexus) SetGear(gear canbus.GearPosition) { l.shift.SetTarget(gear) }

// SetParkingBrake is not wired on this vehicle; the PACMod interface owns
// the parking brake.
func (l *Lexus) SetParkingBrake(engaged bool) {
	l.logger.Debugw("parking brake command has no frame on this vehicle", "engaged", engaged)
}

// SetBeam is not wired on this vehicle.
func (l *Lexus) SetBeam(high, low bool) {
	l.logger.Debugw("beam command has no frame on this vehicle", "high", high, "low", low)
}

// SetHorn is not wired on this vehicle.
func (l *Lexus) SetHorn(on bool) {
	l.logger.Debugw("horn command has no frame on this vehicle", "on", on)
}

// SetTurnSignal commands the turn indicators. The frame arms on first use
// and disarms on the next outgoing reset.
func (l *Lexus) SetTurnSignal(signal canbus.TurnSignal) {
	l.turn.SetSignal(signal)
	l.turn.SetEnabled(true)
}

// CheckResponse reports whether the actuators on the given axes acknowledge
// autonomous control. With wait set it polls until the first acknowledgment
// or the timeout.
func (l *Lexus) CheckResponse(axes canbus.Axis, wait bool) bool {
	if l.responseOK(axes) {
		return true
	}
	if !wait {
		return false
	}
	deadline := l.clock.Now().Add(responseTimeout)
	for l.clock.Now().Before(deadline) {
		l.clock.Sleep(responsePollInterval)
		if l.responseOK(axes) {
			return true
		}
	}
	l.logger.Errorw("actuators did not acknowledge within the response timeout", "axes", axes)
	return false
}

// responseOK checks the latest reports for acknowledgment on each requested
// axis. A missing report counts as no acknowledgment.
func (l *Lexus) responseOK(axes canbus.Axis) bool {
	state := l.mgr.LatestSensorState()
	if axes.Has(canbus.AxisSteer) {
		if state.SteerEnabled == nil || !*state.SteerEnabled {
			return false
		}
	}
	if axes.Has(canbus.AxisSpeed) {
		if state.AccelEnabled == nil || !*state.AccelEnabled {
			return false
		}
		if state.BrakeEnabled == nil || !*state.BrakeEnabled {
			return false
		}
	}
	return true
}

// CheckChassisFault reports whether any actuator reports a hardware fault.
func (l *Lexus) CheckChassisFault(state canbus.SensorState) bool {
	return state.SteerFault || state.AccelFault || state.BrakeFault
}
