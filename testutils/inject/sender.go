// Package inject provides injectable mocks of the drive-by-wire
// collaborators for use in tests.
package inject

import "github.com/edgedrive/dbw/canbus"

// Sender is an injectable canbus.Sender.
type Sender struct {
	canbus.Sender
	RegisterFunc func(frame canbus.CommandFrame, enabled bool) error
	PushFunc     func()
	IsActiveFunc func() bool
	StartedFunc  func() <-chan struct{}
}

// Register calls the injected Register or the real version.
func (s *Sender) Register(frame canbus.CommandFrame, enabled bool) error {
	if s.RegisterFunc == nil {
		return s.Sender.Register(frame, enabled)
	}
	return s.RegisterFunc(frame, enabled)
}

// Push calls the injected Push or the real version.
func (s *Sender) Push() {
	if s.PushFunc == nil {
		s.Sender.Push()
		return
	}
	s.PushFunc()
}

// IsActive calls the injected IsActive or the real version.
func (s *Sender) IsActive() bool {
	if s.IsActiveFunc == nil {
		return s.Sender.IsActive()
	}
	return s.IsActiveFunc()
}

// Started calls the injected Started or the real version.
func (s *Sender) Started() <-chan struct{} {
	if s.StartedFunc == nil {
		return s.Sender.Started()
	}
	return s.StartedFunc()
}
