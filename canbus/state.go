package canbus

import "go.uber.org/atomic"

// driveState holds the mode and error state shared between the caller's
// goroutine and the watchdog. Each field is independently atomic: a reader
// always observes a written value, never a torn one, but read-compute-write
// sequences are not serialized and concurrent writers may lose updates.
type driveState struct {
	mode atomic.Int32
	code atomic.Int32
	mask atomic.Int32
}

func (s *driveState) drivingMode() DrivingMode { return DrivingMode(s.mode.Load()) }

func (s *driveState) setDrivingMode(m DrivingMode) { s.mode.Store(int32(m)) }

func (s *driveState) errorCode() ErrorCode { return ErrorCode(s.code.Load()) }

func (s *driveState) setErrorCode(c ErrorCode) { s.code.Store(int32(c)) }

func (s *driveState) errorMask() int32 { return s.mask.Load() }

func (s *driveState) setErrorMask(mask int32) { s.mask.Store(mask) }
