package inject

import "github.com/edgedrive/dbw/canbus"

// Vehicle is an injectable canbus.Vehicle.
type Vehicle struct {
	canbus.Vehicle
	WireFunc              func(mgr canbus.MessageManager) error
	FramesFunc            func() []canbus.CommandFrame
	ArmFunc               func(axes canbus.Axis)
	DisarmFunc            func()
	SetThrottlePedalFunc  func(pct float64)
	SetBrakePedalFunc     func(pct float64)
	SetSteeringAngleFunc  func(angleDeg, rateDegPerSec float64)
	SetGearFunc           func(gear canbus.GearPosition)
	SetParkingBrakeFunc   func(engaged bool)
	SetBeamFunc           func(high, low bool)
	SetHornFunc           func(on bool)
	SetTurnSignalFunc     func(signal canbus.TurnSignal)
	CheckResponseFunc     func(axes canbus.Axis, wait bool) bool
	CheckChassisFaultFunc func(state canbus.SensorState) bool
}

// Wire calls the injected Wire or the real version.
func (v *Vehicle) Wire(mgr canbus.MessageManager) error {
	if v.WireFunc == nil {
		return v.Vehicle.Wire(mgr)
	}
	return v.WireFunc(mgr)
}

// Frames calls the injected Frames or the real version.
func (v *Vehicle) Frames() []canbus.CommandFrame {
	if v.FramesFunc == nil {
		return v.Vehicle.Frames()
	}
	return v.FramesFunc()
}

// Arm calls the injected Arm or the real version.
func (v *Vehicle) Arm(axes canbus.Axis) {
	if v.ArmFunc == nil {
		v.Vehicle.Arm(axes)
		return
	}
	v.ArmFunc(axes)
}

// Disarm calls the injected Disarm or the real version.
func (v *Vehicle) Disarm() {
	if v.DisarmFunc == nil {
		v.Vehicle.Disarm()
		return
	}
	v.DisarmFunc()
}

// SetThrottlePedal calls the injected SetThrottlePedal or the real version.
func (v *Vehicle) SetThrottlePedal(pct float64) {
	if v.SetThrottlePedalFunc == nil {
		v.Vehicle.SetThrottlePedal(pct)
		return
	}
	v.SetThrottlePedalFunc(pct)
}

// SetBrakePedal calls the injected SetBrakePedal or the real version.
func (v *Vehicle) SetBrakePedal(pct float64) {
	if v.SetBrakePedalFunc == nil {
		v.Vehicle.SetBrakePedal(pct)
		return
	}
	v.SetBrakePedalFunc(pct)
}

// SetSteeringAngle calls the injected SetSteeringAngle or the real version.
func (v *Vehicle) SetSteeringAngle(angleDeg, rateDegPerSec float64) {
	if v.SetSteeringAngleFunc == nil {
		v.Vehicle.SetSteeringAngle(angleDeg, rateDegPerSec)
		return
	}
	v.SetSteeringAngleFunc(angleDeg, rateDegPerSec)
}

// SetGear calls the injected SetGear or the real version.
func (v *Vehicle) SetGear(gear canbus.GearPosition) {
	if v.SetGearFunc == nil {
		v.Vehicle.SetGear(gear)
		return
	}
	v.SetGearFunc(gear)
}

// SetParkingBrake calls the injected SetParkingBrake or the real version.
func (v *Vehicle) SetParkingBrake(engaged bool) {
	if v.SetParkingBrakeFunc == nil {
		v.Vehicle.SetParkingBrake(engaged)
		return
	}
	v.SetParkingBrakeFunc(engaged)
}

// SetBeam calls the injected SetBeam or the real version.
func (v *Vehicle) SetBeam(high, low bool) {
	if v.SetBeamFunc == nil {
		v.Vehicle.SetBeam(high, low)
		return
	}
	v.SetBeamFunc(high, low)
}

// SetHorn calls the injected SetHorn or the real version.
func (v *Vehicle) SetHorn(on bool) {
	if v.SetHornFunc == nil {
		v.Vehicle.SetHorn(on)
		return
	}
	v.SetHornFunc(on)
}

// SetTurnSignal calls the injected SetTurnSignal or the real version.
func (v *Vehicle) SetTurnSignal(signal canbus.TurnSignal) {
	if v.SetTurnSignalFunc == nil {
		v.Vehicle.SetTurnSignal(signal)
		return
	}
	v.SetTurnSignalFunc(signal)
}

// CheckResponse calls the injected CheckResponse or the real version.
func (v *Vehicle) CheckResponse(axes canbus.Axis, wait bool) bool {
	if v.CheckResponseFunc == nil {
		return v.Vehicle.CheckResponse(axes, wait)
	}
	return v.CheckResponseFunc(axes, wait)
}

// CheckChassisFault calls the injected CheckChassisFault or the real version.
func (v *Vehicle) CheckChassisFault(state canbus.SensorState) bool {
	if v.CheckChassisFaultFunc == nil {
		return v.Vehicle.CheckChassisFault(state)
	}
	return v.CheckChassisFaultFunc(state)
}
