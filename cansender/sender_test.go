package cansender

import (
	"sync"
	"testing"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/test"
	"go.viam.com/utils/testutils"

	"github.com/edgedrive/dbw/canbus"
)

type fakeFrame struct {
	id      uint32
	mu      sync.Mutex
	enabled bool
}

func (f *fakeFrame) ID() uint32 { return f.id }

func (f *fakeFrame) SetEnabled(enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.enabled = enabled
}

func (f *fakeFrame) Enabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enabled
}

func (f *fakeFrame) Reset() { f.SetEnabled(false) }

type fakeWriter struct {
	mu     sync.Mutex
	writes []uint32
	errIDs map[uint32]bool
}

func (w *fakeWriter) WriteFrame(frame canbus.CommandFrame) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.errIDs[frame.ID()] {
		return errors.New("bus unavailable")
	}
	w.writes = append(w.writes, frame.ID())
	return nil
}

func (w *fakeWriter) written() []uint32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]uint32, len(w.writes))
	copy(out, w.writes)
	return out
}

func TestRegister(t *testing.T) {
	sender := NewSender(&fakeWriter{}, golog.NewTestLogger(t))
	frame := &fakeFrame{id: 0x100}
	test.That(t, sender.Register(frame, true), test.ShouldBeNil)
	test.That(t, frame.Enabled(), test.ShouldBeTrue)

	err := sender.Register(&fakeFrame{id: 0x100}, false)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "already registered")

	disabled := &fakeFrame{id: 0x104}
	test.That(t, sender.Register(disabled, false), test.ShouldBeNil)
	test.That(t, disabled.Enabled(), test.ShouldBeFalse)
}

func TestPeriodicTransmitOfEnabledFrames(t *testing.T) {
	writer := &fakeWriter{}
	sender := NewSender(writer, golog.NewTestLogger(t))
	sender.period = 5 * time.Millisecond

	armed := &fakeFrame{id: 0x100}
	idle := &fakeFrame{id: 0x104}
	test.That(t, sender.Register(armed, true), test.ShouldBeNil)
	test.That(t, sender.Register(idle, false), test.ShouldBeNil)

	test.That(t, sender.IsActive(), test.ShouldBeFalse)
	sender.Start()
	<-sender.Started()
	test.That(t, sender.IsActive(), test.ShouldBeTrue)

	testutils.WaitForAssertionWithSleep(t, 5*time.Millisecond, 100, func(tb testing.TB) {
		tb.Helper()
		test.That(tb, len(writer.written()), test.ShouldBeGreaterThan, 2)
	})
	for _, id := range writer.written() {
		test.That(t, id, test.ShouldEqual, 0x100)
	}

	sender.Stop()
	test.That(t, sender.IsActive(), test.ShouldBeFalse)
}

func TestPushTransmitsImmediately(t *testing.T) {
	writer := &fakeWriter{}
	sender := NewSender(writer, golog.NewTestLogger(t))
	sender.period = time.Hour

	frame := &fakeFrame{id: 0x12C}
	test.That(t, sender.Register(frame, true), test.ShouldBeNil)

	sender.Start()
	<-sender.Started()
	sender.Push()

	testutils.WaitForAssertionWithSleep(t, 5*time.Millisecond, 100, func(tb testing.TB) {
		tb.Helper()
		test.That(tb, writer.written(), test.ShouldResemble, []uint32{0x12C})
	})
	sender.Stop()
}

func TestTransmitAggregatesWriteErrors(t *testing.T) {
	writer := &fakeWriter{errIDs: map[uint32]bool{0x100: true, 0x104: true}}
	sender := NewSender(writer, golog.NewTestLogger(t))
	test.That(t, sender.Register(&fakeFrame{id: 0x100}, true), test.ShouldBeNil)
	test.That(t, sender.Register(&fakeFrame{id: 0x104}, true), test.ShouldBeNil)
	test.That(t, sender.Register(&fakeFrame{id: 0x128}, true), test.ShouldBeNil)

	err := sender.transmit()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "0x100")
	test.That(t, err.Error(), test.ShouldContainSubstring, "0x104")
	test.That(t, writer.written(), test.ShouldResemble, []uint32{0x128})
}
