package canbus_test

import (
	"sync"
	"testing"
	"time"

	"github.com/edaniels/golog"
	"go.viam.com/test"
	"go.viam.com/utils/testutils"

	"github.com/edgedrive/dbw/canbus"
	"github.com/edgedrive/dbw/cansender"
	"github.com/edgedrive/dbw/vehicles/lexus"
)

type recordingWriter struct {
	mu     sync.Mutex
	writes map[uint32]int
}

func (w *recordingWriter) WriteFrame(frame canbus.CommandFrame) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.writes == nil {
		w.writes = map[uint32]int{}
	}
	w.writes[frame.ID()]++
	return nil
}

func (w *recordingWriter) count(id uint32) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writes[id]
}

func allAcks() canbus.SensorState {
	ack := true
	return canbus.SensorState{
		SteerEnabled: &ack,
		AccelEnabled: &ack,
		BrakeEnabled: &ack,
	}
}

// TestFullStack drives a controller through a real sender and the lexus
// capability: enable, actuate, lose acknowledgment, watch the fallback.
func TestFullStack(t *testing.T) {
	logger := golog.NewTestLogger(t)
	mgr := lexus.NewManager()
	vehicle := lexus.NewVehicle(logger)
	writer := &recordingWriter{}
	sender := cansender.NewSender(writer, logger)

	controller := canbus.NewController(vehicle, logger)
	test.That(t, controller.Init(testParams, sender, mgr), test.ShouldBeNil)

	sender.Start()
	test.That(t, controller.Start(), test.ShouldBeTrue)

	// with the actuators acknowledging, full auto engages
	mgr.UpdateSensorState(allAcks())
	test.That(t, controller.EnableAutoMode(), test.ShouldBeNil)
	test.That(t, controller.DrivingMode(), test.ShouldEqual, canbus.CompleteAutoDrive)

	controller.Throttle(30)
	accelFrame, err := mgr.Resolve(lexus.AccelCmdID)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, accelFrame.Enabled(), test.ShouldBeTrue)
	test.That(t, accelFrame.(*lexus.AccelCmd).Pedal(), test.ShouldEqual, 30.0)

	// the armed frame flows onto the bus
	testutils.WaitForAssertionWithSleep(t, 10*time.Millisecond, 100, func(tb testing.TB) {
		tb.Helper()
		test.That(tb, writer.count(lexus.AccelCmdID), test.ShouldBeGreaterThan, 0)
	})

	// losing acknowledgment trips the watchdog into emergency mode
	mgr.UpdateSensorState(canbus.SensorState{})
	testutils.WaitForAssertionWithSleep(t, 50*time.Millisecond, 40, func(tb testing.TB) {
		tb.Helper()
		test.That(tb, controller.DrivingMode(), test.ShouldEqual, canbus.Emergency)
	})
	test.That(t, controller.ChassisErrorCode(), test.ShouldEqual, canbus.ManualIntervention)
	test.That(t, accelFrame.Enabled(), test.ShouldBeFalse)
	test.That(t, accelFrame.(*lexus.AccelCmd).Pedal(), test.ShouldEqual, 0.0)

	// recovery back to manual clears the error state
	test.That(t, controller.DisableAutoMode(), test.ShouldBeNil)
	test.That(t, controller.DrivingMode(), test.ShouldEqual, canbus.Manual)
	test.That(t, controller.ChassisErrorCode(), test.ShouldEqual, canbus.NoError)

	sender.Stop()
	controller.Stop()
}
