// Package viewer wires the loaded dataset, the time control, the filter
// policies and the reconciler into one session driven by control moves.
package viewer

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/runnerr0/timemap/internal/classify"
	"github.com/runnerr0/timemap/internal/dataset"
	"github.com/runnerr0/timemap/internal/filter"
	"github.com/runnerr0/timemap/internal/metrics"
	"github.com/runnerr0/timemap/internal/render"
	"github.com/runnerr0/timemap/internal/timeline"
)

// Options configures a Session.
type Options struct {
	Mode        timeline.Mode
	Step        float64
	EventPolicy filter.Policy
	RoutePolicy filter.Policy
	Classes     *classify.Resolver
}

// Frame is the outcome of one control move.
type Frame struct {
	Position float64         `json:"position"`
	Time     float64         `json:"time"`
	Label    string          `json:"label"`
	Events   []dataset.Event `json:"-"`
	Routes   []dataset.Route `json:"-"`
	Result   render.Result   `json:"result"`
}

// Session owns the state of one map view. Moves are serialised, so a pass
// always completes before the next one starts.
type Session struct {
	mu sync.Mutex

	data       dataset.Dataset
	opts       Options
	control    *timeline.Control // nil when the domain is empty
	reconciler *render.Reconciler
	current    *Frame
}

// New builds the domain and control for data. An empty domain is not an
// error: the session is created disabled and every move is a no-op.
func New(data dataset.Dataset, port render.Port, opts Options) (*Session, error) {
	if opts.EventPolicy == nil || opts.RoutePolicy == nil {
		return nil, fmt.Errorf("event and route policies are required")
	}
	if opts.Classes == nil {
		return nil, fmt.Errorf("class resolver is required")
	}

	s := &Session{
		data:       data,
		opts:       opts,
		reconciler: render.NewReconciler(port, opts.Classes),
	}

	domain, err := timeline.Build(opts.Mode, data.Times()...)
	if errors.Is(err, timeline.ErrEmptyDomain) {
		log.Warn().Msg("no record has a finite time, time control disabled")
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	s.control, err = timeline.NewControl(domain, opts.Step)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Enabled reports whether the control has a non-empty domain.
func (s *Session) Enabled() bool { return s.control != nil }

// Control returns the bound control, or nil when disabled.
func (s *Session) Control() *timeline.Control { return s.control }

// Dataset returns the loaded records.
func (s *Session) Dataset() dataset.Dataset { return s.data }

// Options returns the session options.
func (s *Session) Options() Options { return s.opts }

// Start moves the control to its initial position.
func (s *Session) Start() (Frame, bool) {
	if !s.Enabled() {
		return Frame{}, false
	}
	return s.Move(s.control.Initial())
}

// Move sets the control to pos (a time in continuous mode, an index in
// discrete mode), filters both record kinds and reconciles the layers. It
// returns false when the control is disabled.
func (s *Session) Move(pos float64) (Frame, bool) {
	if !s.Enabled() {
		return Frame{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pass(pos), true
}

// MoveWith performs Move and calls fn with the frame before releasing the
// lock, so fn sees exactly the layers that frame attached.
func (s *Session) MoveWith(pos float64, fn func(Frame)) bool {
	if !s.Enabled() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fn(s.pass(pos))
	return true
}

func (s *Session) pass(pos float64) Frame {
	start := time.Now()
	defer func() { metrics.PassDuration.Observe(time.Since(start).Seconds()) }()

	t := s.control.TimeAt(pos)
	f := Frame{
		Position: pos,
		Time:     t,
		Label:    timeline.Label(t),
		Events:   filter.Select(s.data.Events, t, s.opts.EventPolicy),
		Routes:   filter.Select(s.data.Routes, t, s.opts.RoutePolicy),
	}
	f.Result = s.reconciler.Reconcile(f.Events, f.Routes)
	s.current = &f

	log.Debug().
		Float64("time", t).
		Int("events", f.Result.Events).
		Int("routes", f.Result.Routes).
		Int("skipped", f.Result.Skipped).
		Msg("reconciled")
	return f
}

// Current returns the frame of the latest move, if any.
func (s *Session) Current() (Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Frame{}, false
	}
	return *s.current, true
}

// CurrentWith calls fn with the latest frame while holding the lock. It
// returns false, without calling fn, when no move has happened yet.
func (s *Session) CurrentWith(fn func(Frame)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false
	}
	fn(*s.current)
	return true
}

// Replay moves through every control stop in order, calling fn after each
// pass. It stops early when fn returns an error, and refuses ranges with
// more than timeline.MaxStops stops.
func (s *Session) Replay(fn func(Frame) error) error {
	if !s.Enabled() {
		return timeline.ErrEmptyDomain
	}
	stops, err := s.control.Stops()
	if err != nil {
		return err
	}
	for i, t := range stops {
		pos := t
		if s.control.Domain().Mode == timeline.Discrete {
			pos = float64(i)
		}
		f, _ := s.Move(pos)
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

// With runs fn while holding the session lock, so it observes the layers
// of a completed pass only.
func (s *Session) With(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}
