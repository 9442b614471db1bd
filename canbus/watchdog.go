package canbus

import "time"

const (
	// watchdogPeriod is the fixed cadence of the safety watchdog.
	watchdogPeriod = 50 * time.Millisecond
	// maxFailAttempts is how many consecutive unacknowledged cycles an
	// axis tolerates before the watchdog trips.
	maxFailAttempts = 10
)

// watchdog is the safety monitoring loop. It waits for the sender to
// activate, then polls actuator acknowledgment and chassis faults every
// cycle, forcing emergency mode on repeated failure. It exits only by
// observing the sender go inactive.
func (c *Controller) watchdog() {
	c.logger.Debug("watchdog waiting for sender")
	<-c.sender.Started()
	c.logger.Debug("watchdog running")

	ticker := c.clock.Ticker(c.watchdogPeriod)
	defer ticker.Stop()

	var horizontalFail, verticalFail int
	for c.sender.IsActive() {
		start := c.clock.Now()
		c.watchdogCycle(&horizontalFail, &verticalFail)
		if elapsed := c.clock.Since(start); elapsed > c.watchdogPeriod {
			c.logger.Errorw("watchdog cycle overran its period", "elapsed", elapsed.String())
			continue
		}
		<-ticker.C
	}
	c.logger.Debug("watchdog exited")
}

// watchdogCycle runs one monitoring pass and reports whether it tripped.
// The counters persist across cycles and reset whenever the corresponding
// axis acknowledges, or stops being autonomously controlled.
func (c *Controller) watchdogCycle(horizontalFail, verticalFail *int) bool {
	mode := c.DrivingMode()
	tripped := false

	if mode.steers() && !c.vehicle.CheckResponse(AxisSteer, false) {
		*horizontalFail++
		if *horizontalFail >= maxFailAttempts {
			tripped = true
			c.state.setErrorCode(ManualIntervention)
		}
	} else {
		*horizontalFail = 0
	}

	if mode.speeds() && !c.vehicle.CheckResponse(AxisSpeed, false) {
		*verticalFail++
		if *verticalFail >= maxFailAttempts {
			tripped = true
			c.state.setErrorCode(ManualIntervention)
		}
	} else {
		*verticalFail = 0
	}

	if c.vehicle.CheckChassisFault(c.mgr.LatestSensorState()) {
		c.state.setErrorCode(ChassisError)
		tripped = true
	}

	if tripped && mode != Emergency {
		c.logger.Errorw("watchdog tripped, forcing emergency mode", "mode", mode.String())
		c.state.setDrivingMode(Emergency)
		c.mgr.ResetOutgoing()
	}
	return tripped
}
