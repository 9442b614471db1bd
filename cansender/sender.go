// Package cansender provides the periodic transmit loop that pushes enabled
// command frames onto the vehicle bus through a BusWriter.
package cansender

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"github.com/edgedrive/dbw/canbus"
)

// A BusWriter packs and transmits one command frame. Implementations own the
// bit-level signal layout and the physical transport.
type BusWriter interface {
	WriteFrame(frame canbus.CommandFrame) error
}

// defaultPeriod is the cadence of the periodic transmit loop.
const defaultPeriod = 10 * time.Millisecond

// Sender implements canbus.Sender over a BusWriter. Frames are transmitted
// on a fixed cadence while enabled; Push forces an immediate round.
type Sender struct {
	logger golog.Logger
	writer BusWriter
	period time.Duration
	clock  clock.Clock

	mu     sync.Mutex
	ids    map[uint32]bool
	frames []canbus.CommandFrame

	active  atomic.Bool
	started chan struct{}
	push    chan struct{}
	done    chan struct{}

	activeBackgroundWorkers sync.WaitGroup
}

var _ canbus.Sender = (*Sender)(nil)

// NewSender returns a sender transmitting through the given writer at the
// default cadence. It does not transmit until Start is called.
func NewSender(writer BusWriter, logger golog.Logger) *Sender {
	return &Sender{
		logger:  logger,
		writer:  writer,
		period:  defaultPeriod,
		clock:   clock.New(),
		ids:     map[uint32]bool{},
		started: make(chan struct{}),
		push:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Register adds a command frame to the send table with the given initial arm
// state. A channel id can be registered only once.
func (s *Sender) Register(frame canbus.CommandFrame, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ids[frame.ID()] {
		return errors.Errorf("frame %#x already registered", frame.ID())
	}
	s.ids[frame.ID()] = true
	s.frames = append(s.frames, frame)
	frame.SetEnabled(enabled)
	return nil
}

// Start spawns the periodic transmit loop. Must be called at most once.
func (s *Sender) Start() {
	s.active.Store(true)
	s.activeBackgroundWorkers.Add(1)
	goutils.ManagedGo(s.run, s.activeBackgroundWorkers.Done)
}

// Stop halts the transmit loop and waits for it to exit. Must be called at
// most once, after Start.
func (s *Sender) Stop() {
	s.active.Store(false)
	close(s.done)
	s.activeBackgroundWorkers.Wait()
	s.logger.Debug("sender stopped")
}

// Push transmits the current values of all enabled frames without waiting
// for the next periodic cycle.
func (s *Sender) Push() {
	select {
	case s.push <- struct{}{}:
	default:
	}
}

// IsActive reports whether the transmit loop is running.
func (s *Sender) IsActive() bool { return s.active.Load() }

// Started returns a channel that is closed once the transmit loop has begun.
func (s *Sender) Started() <-chan struct{} { return s.started }

func (s *Sender) run() {
	close(s.started)
	ticker := s.clock.Ticker(s.period)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-s.push:
		case <-ticker.C:
		}
		if err := s.transmit(); err != nil {
			s.logger.Errorw("failed to transmit command frames", "error", err)
		}
	}
}

// transmit writes one round of all currently enabled frames.
func (s *Sender) transmit() error {
	s.mu.Lock()
	frames := make([]canbus.CommandFrame, len(s.frames))
	copy(frames, s.frames)
	s.mu.Unlock()

	var result error
	for _, frame := range frames {
		if !frame.Enabled() {
			continue
		}
		if err := s.writer.WriteFrame(frame); err != nil {
			result = multierr.Combine(result, errors.Wrapf(err, "frame %#x", frame.ID()))
		}
	}
	return result
}
