package lexus

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/edgedrive/dbw/canbus"
)

// Manager owns the lexus command frames and the latest decoded report state.
// It implements canbus.MessageManager. The decode layer feeds it through
// UpdateSensorState as report frames arrive.
type Manager struct {
	frames map[uint32]canbus.CommandFrame

	stateMu sync.Mutex
	state   canbus.SensorState
}

var _ canbus.MessageManager = (*Manager)(nil)

// NewManager returns a manager owning a full set of lexus command frames.
func NewManager() *Manager {
	frames := []canbus.CommandFrame{
		&AccelCmd{},
		&BrakeCmd{},
		&ShiftCmd{},
		&SteeringCmd{},
		&TurnSignalCmd{},
	}
	byID := make(map[uint32]canbus.CommandFrame, len(frames))
	for _, frame := range frames {
		byID[frame.ID()] = frame
	}
	return &Manager{frames: byID}
}

// Resolve returns the command frame owned by the manager for the given
// channel id.
func (m *Manager) Resolve(id uint32) (canbus.CommandFrame, error) {
	frame, ok := m.frames[id]
	if !ok {
		return nil, errors.Errorf("no command frame for channel %#x", id)
	}
	return frame, nil
}

// UpdateSensorState stores the latest decoded report state.
func (m *Manager) UpdateSensorState(state canbus.SensorState) {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	m.state = state
}

// LatestSensorState returns the most recent decoded vehicle reports.
func (m *Manager) LatestSensorState() canbus.SensorState {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return m.state
}

// ResetOutgoing disables and zeroes every outgoing command frame.
func (m *Manager) ResetOutgoing() {
	for _, frame := range m.frames {
		frame.Reset()
	}
}
