package inject

import "github.com/edgedrive/dbw/canbus"

// MessageManager is an injectable canbus.MessageManager.
type MessageManager struct {
	canbus.MessageManager
	ResolveFunc           func(id uint32) (canbus.CommandFrame, error)
	LatestSensorStateFunc func() canbus.SensorState
	ResetOutgoingFunc     func()
}

// Resolve calls the injected Resolve or the real version.
func (m *MessageManager) Resolve(id uint32) (canbus.CommandFrame, error) {
	if m.ResolveFunc == nil {
		return m.MessageManager.Resolve(id)
	}
	return m.ResolveFunc(id)
}

// LatestSensorState calls the injected LatestSensorState or the real version.
func (m *MessageManager) LatestSensorState() canbus.SensorState {
	if m.LatestSensorStateFunc == nil {
		return m.MessageManager.LatestSensorState()
	}
	return m.LatestSensorStateFunc()
}

// ResetOutgoing calls the injected ResetOutgoing or the real version.
func (m *MessageManager) ResetOutgoing() {
	if m.ResetOutgoingFunc == nil {
		m.MessageManager.ResetOutgoing()
		return
	}
	m.ResetOutgoingFunc()
}
