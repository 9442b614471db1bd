package canbus

import (
	"testing"

	"go.viam.com/test"
)

func TestParseDrivingMode(t *testing.T) {
	mode, err := ParseDrivingMode("complete_auto_drive")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, mode, test.ShouldEqual, CompleteAutoDrive)

	_, err = ParseDrivingMode("sideways")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBuildChassisDefaults(t *testing.T) {
	ch := buildChassis(SensorState{}, 470)
	test.That(t, ch.SpeedMPS, test.ShouldEqual, 0)
	test.That(t, ch.ThrottlePct, test.ShouldEqual, 0)
	test.That(t, ch.BrakePct, test.ShouldEqual, 0)
	test.That(t, ch.SteeringPct, test.ShouldEqual, 0)
	test.That(t, ch.GearLocation, test.ShouldEqual, GearNone)
	test.That(t, ch.EngineStarted, test.ShouldBeTrue)
}

func TestBuildChassisMapsReports(t *testing.T) {
	speed := 3.5
	throttle := 12.0
	brake := 40.0
	angle := 47.0
	gear := GearDrive
	state := SensorState{
		SpeedMPS:       &speed,
		ThrottleOutput: &throttle,
		BrakeOutput:    &brake,
		SteeringAngle:  &angle,
		Gear:           &gear,
		ParkingBrake:   true,
		TurnSignal:     TurnLeft,
	}

	ch := buildChassis(state, 470)
	test.That(t, ch.SpeedMPS, test.ShouldEqual, 3.5)
	test.That(t, ch.ThrottlePct, test.ShouldEqual, 12.0)
	test.That(t, ch.BrakePct, test.ShouldEqual, 40.0)
	test.That(t, ch.SteeringPct, test.ShouldAlmostEqual, 10.0)
	test.That(t, ch.GearLocation, test.ShouldEqual, GearDrive)
	test.That(t, ch.ParkingBrake, test.ShouldBeTrue)
	test.That(t, ch.TurnSignal, test.ShouldEqual, TurnLeft)
}

func TestEngageAdvice(t *testing.T) {
	ready := Chassis{ErrorMask: 0, ParkingBrake: false, ThrottlePct: 0.0, BrakePct: 30.0}
	advice := engageAdvice(ready)
	test.That(t, advice.Advice, test.ShouldEqual, ReadyToEngage)
	test.That(t, advice.Reason, test.ShouldEqual, "")

	t.Run("brake must be applied, not merely non-negative", func(t *testing.T) {
		noBrake := ready
		noBrake.BrakePct = 0.0
		test.That(t, engageAdvice(noBrake).Advice, test.ShouldEqual, DisallowEngage)
		test.That(t, engageAdvice(noBrake).Reason, test.ShouldEqual, disallowEngageReason)

		lightBrake := ready
		lightBrake.BrakePct = 0.001
		test.That(t, engageAdvice(lightBrake).Advice, test.ShouldEqual, ReadyToEngage)
	})

	t.Run("error mask disallows", func(t *testing.T) {
		masked := ready
		masked.ErrorMask = 0x4
		test.That(t, engageAdvice(masked).Advice, test.ShouldEqual, DisallowEngage)
	})

	t.Run("parking brake disallows", func(t *testing.T) {
		parked := ready
		parked.ParkingBrake = true
		test.That(t, engageAdvice(parked).Advice, test.ShouldEqual, DisallowEngage)
	})

	t.Run("throttle must be fully released", func(t *testing.T) {
		throttled := ready
		throttled.ThrottlePct = 0.5
		test.That(t, engageAdvice(throttled).Advice, test.ShouldEqual, DisallowEngage)
	})
}

func TestDriveState(t *testing.T) {
	var state driveState
	test.That(t, state.drivingMode(), test.ShouldEqual, Manual)
	test.That(t, state.errorCode(), test.ShouldEqual, NoError)
	test.That(t, state.errorMask(), test.ShouldEqual, 0)

	state.setDrivingMode(Emergency)
	state.setErrorCode(ManualIntervention)
	state.setErrorMask(0xff)
	test.That(t, state.drivingMode(), test.ShouldEqual, Emergency)
	test.That(t, state.errorCode(), test.ShouldEqual, ManualIntervention)
	test.That(t, state.errorMask(), test.ShouldEqual, 0xff)
}

func TestBoundedValue(t *testing.T) {
	test.That(t, boundedValue(0, 100, 150), test.ShouldEqual, 100.0)
	test.That(t, boundedValue(0, 100, -5), test.ShouldEqual, 0.0)
	test.That(t, boundedValue(-100, 100, 42), test.ShouldEqual, 42.0)
}
