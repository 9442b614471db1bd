package canbus

import (
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	goutils "go.viam.com/utils"
)

// Controller owns the authoritative driving mode of one vehicle, arbitrates
// transitions between manual and autonomous control, and dispatches
// mode-gated actuation commands through the vehicle's command frames.
//
// A Controller is wired once with Init, started once with Start and stopped
// with Stop; afterwards it is disposable. Callers must treat every mode read
// as a fresh snapshot: the watchdog may force Emergency at any time,
// including immediately after a successful enable.
type Controller struct {
	logger  golog.Logger
	vehicle Vehicle

	params Params
	sender Sender
	mgr    MessageManager

	state       driveState
	initialized atomic.Bool

	clock                   clock.Clock
	watchdogPeriod          time.Duration
	activeBackgroundWorkers sync.WaitGroup
}

// NewController returns a controller driving through the given vehicle
// capability. The controller is inert until Init wires it to its sender and
// message manager.
func NewController(vehicle Vehicle, logger golog.Logger) *Controller {
	return &Controller{
		logger:         logger,
		vehicle:        vehicle,
		clock:          clock.New(),
		watchdogPeriod: watchdogPeriod,
	}
}

// Init wires the controller to its collaborators, resolves every command
// frame the vehicle needs and registers them with the sender in disabled
// state. Registration is permanent for the controller's lifetime.
func (c *Controller) Init(params Params, sender Sender, mgr MessageManager) error {
	if c.initialized.Load() {
		c.logger.Info("controller has already been initialized")
		return errors.Wrap(ErrInitialization, "already initialized")
	}
	if params.DrivingMode == "" {
		return errors.Wrap(ErrInitialization, "vehicle params do not set a default driving mode")
	}
	mode, err := ParseDrivingMode(params.DrivingMode)
	if err != nil {
		return errors.Wrapf(ErrInitialization, "%s", err)
	}
	if sender == nil {
		return errors.Wrap(ErrInitialization, "sender is nil")
	}
	if mgr == nil {
		return errors.Wrap(ErrInitialization, "message manager is nil")
	}

	if err := c.vehicle.Wire(mgr); err != nil {
		return errors.Wrapf(ErrInitialization, "wiring vehicle frames: %s", err)
	}
	for _, frame := range c.vehicle.Frames() {
		if err := sender.Register(frame, false); err != nil {
			return errors.Wrapf(ErrInitialization, "registering frame %#x: %s", frame.ID(), err)
		}
	}

	c.params = params
	c.sender = sender
	c.mgr = mgr
	c.state.setDrivingMode(mode)
	c.initialized.Store(true)
	c.logger.Info("controller initialized")
	return nil
}

// Start spawns the safety watchdog and reports whether it did. It returns
// false with no side effect if the controller has not been initialized.
// Calling Start twice spawns two watchdogs; callers must not double-start.
func (c *Controller) Start() bool {
	if !c.initialized.Load() {
		c.logger.Error("controller has not been initialized")
		return false
	}
	c.activeBackgroundWorkers.Add(1)
	goutils.ManagedGo(c.watchdog, c.activeBackgroundWorkers.Done)
	return true
}

// Stop blocks until the watchdog has observed the sender go inactive and
// exited on its own. If the sender never stops reporting active, neither
// does Stop.
func (c *Controller) Stop() {
	if !c.initialized.Load() {
		c.logger.Warn("controller stopped without being initialized")
		return
	}
	c.activeBackgroundWorkers.Wait()
	c.logger.Info("controller stopped")
}

// EnableAutoMode hands both control axes to autonomous command.
func (c *Controller) EnableAutoMode() error {
	if c.DrivingMode() == CompleteAutoDrive {
		c.logger.Info("already in complete auto drive mode")
		return nil
	}
	return c.enable(CompleteAutoDrive, AxisSteer|AxisSpeed)
}

// EnableSteeringOnlyMode hands only the steering axis to autonomous command.
// Full auto drive already covers steering, so it is left untouched apart
// from the mode downgrade.
func (c *Controller) EnableSteeringOnlyMode() error {
	if mode := c.DrivingMode(); mode == CompleteAutoDrive || mode == AutoSteerOnly {
		c.state.setDrivingMode(AutoSteerOnly)
		c.logger.Info("already in auto steer only mode")
		return nil
	}
	return c.enable(AutoSteerOnly, AxisSteer)
}

// EnableSpeedOnlyMode hands only the speed axis to autonomous command.
func (c *Controller) EnableSpeedOnlyMode() error {
	if mode := c.DrivingMode(); mode == CompleteAutoDrive || mode == AutoSpeedOnly {
		c.state.setDrivingMode(AutoSpeedOnly)
		c.logger.Info("already in auto speed only mode")
		return nil
	}
	return c.enable(AutoSpeedOnly, AxisSpeed)
}

// enable arms the frames for the given axes, pushes the update and waits for
// the actuators to acknowledge before committing the mode.
func (c *Controller) enable(target DrivingMode, axes Axis) error {
	c.vehicle.Arm(axes)
	c.sender.Push()
	if !c.vehicle.CheckResponse(axes, true) {
		c.logger.Errorw("failed to switch driving mode", "target", target.String())
		c.Emergency()
		c.state.setErrorCode(ChassisError)
		return errors.Wrapf(ErrModeTransition, "no acknowledgment entering %s", target)
	}
	c.state.setDrivingMode(target)
	c.logger.Infow("switched driving mode", "target", target.String())
	return nil
}

// DisableAutoMode returns the vehicle to manual control, resetting all
// outgoing command frames and clearing the error code. It never fails.
func (c *Controller) DisableAutoMode() error {
	c.mgr.ResetOutgoing()
	c.sender.Push()
	c.state.setDrivingMode(Manual)
	c.state.setErrorCode(NoError)
	c.logger.Info("switched to manual mode")
	return nil
}

// Emergency unconditionally forces the emergency driving mode and resets all
// outgoing command frames so the actuators do not keep holding a stale
// autonomous command. Safe to call from any goroutine.
func (c *Controller) Emergency() {
	c.state.setDrivingMode(Emergency)
	c.mgr.ResetOutgoing()
}

// Gear commands a target gear. A no-op unless a speed-autonomous mode is
// active.
func (c *Controller) Gear(gear GearPosition) {
	if !c.DrivingMode().speeds() {
		c.logger.Info("current driving mode does not command gear")
		return
	}
	if gear == GearInvalid {
		c.logger.Error("invalid gear command")
		c.vehicle.SetGear(GearNone)
		return
	}
	c.vehicle.SetGear(gear)
}

// Brake commands a brake pedal position in percent. A no-op unless a
// speed-autonomous mode is active.
func (c *Controller) Brake(pedal float64) {
	if !c.DrivingMode().speeds() {
		c.logger.Info("current driving mode does not command brake")
		return
	}
	c.vehicle.SetBrakePedal(boundedValue(0, c.params.maxPedalPct(), pedal))
}

// Throttle commands a throttle pedal position in percent. A no-op unless a
// speed-autonomous mode is active.
func (c *Controller) Throttle(pedal float64) {
	if !c.DrivingMode().speeds() {
		c.logger.Info("current driving mode does not command throttle")
		return
	}
	c.vehicle.SetThrottlePedal(boundedValue(0, c.params.maxPedalPct(), pedal))
}

// Steer commands a steering angle as a percentage of the vehicle's physical
// range (left negative, right positive), at the vehicle's maximum angular
// rate. A no-op unless a steer-autonomous mode is active.
func (c *Controller) Steer(anglePct float64) {
	if !c.DrivingMode().steers() {
		c.logger.Info("current driving mode does not command steering")
		return
	}
	angle := c.params.MaxSteerAngle * boundedValue(-100, 100, anglePct) / 100.0
	c.vehicle.SetSteeringAngle(angle, c.params.MaxSteerAngleRate)
}

// SteerWithRate is Steer with the angular rate also given as a percentage of
// the vehicle's configured rate range.
func (c *Controller) SteerWithRate(anglePct, ratePct float64) {
	if !c.DrivingMode().steers() {
		c.logger.Info("current driving mode does not command steering")
		return
	}
	angle := c.params.MaxSteerAngle * boundedValue(-100, 100, anglePct) / 100.0
	rate := boundedValue(c.params.MinSteerAngleRate, c.params.MaxSteerAngleRate,
		c.params.MaxSteerAngleRate*boundedValue(0, 100, ratePct)/100.0)
	c.vehicle.SetSteeringAngle(angle, rate)
}

// SetEpbBrake engages or releases the electric parking brake.
func (c *Controller) SetEpbBrake(engaged bool) { c.vehicle.SetParkingBrake(engaged) }

// SetBeam commands the head light beams.
func (c *Controller) SetBeam(high, low bool) { c.vehicle.SetBeam(high, low) }

// SetHorn commands the horn.
func (c *Controller) SetHorn(on bool) { c.vehicle.SetHorn(on) }

// SetTurnSignal commands the turn indicators.
func (c *Controller) SetTurnSignal(signal TurnSignal) { c.vehicle.SetTurnSignal(signal) }

// Chassis builds a fresh snapshot of the vehicle's reported state from the
// latest decoded reports.
func (c *Controller) Chassis() Chassis {
	state := c.mgr.LatestSensorState()

	// Reading chassis state after an emergency clears the sticky error
	// code; a live fault reasserts it on the next watchdog cycle.
	if c.DrivingMode() == Emergency {
		c.state.setErrorCode(NoError)
	}

	ch := buildChassis(state, c.params.MaxSteerAngle)
	ch.DrivingMode = c.DrivingMode()
	ch.ErrorCode = c.ChassisErrorCode()
	ch.ErrorMask = c.ChassisErrorMask()
	ch.EngageAdvice = engageAdvice(ch)
	return ch
}

// DrivingMode returns the current driving mode.
func (c *Controller) DrivingMode() DrivingMode { return c.state.drivingMode() }

// ChassisErrorCode returns the current chassis error code.
func (c *Controller) ChassisErrorCode() ErrorCode { return c.state.errorCode() }

// SetChassisErrorCode sets the chassis error code.
func (c *Controller) SetChassisErrorCode(code ErrorCode) { c.state.setErrorCode(code) }

// ChassisErrorMask returns the asserted fault bits.
func (c *Controller) ChassisErrorMask() int32 { return c.state.errorMask() }

// SetChassisErrorMask sets the asserted fault bits.
func (c *Controller) SetChassisErrorMask(mask int32) { c.state.setErrorMask(mask) }

// boundedValue clamps v to [min, max].
func boundedValue(min, max, v float64) float64 {
	return math.Max(min, math.Min(max, v))
}
