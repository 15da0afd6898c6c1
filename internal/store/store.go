// Package store keeps loaded traces and their processing results in memory
// and notifies subscribers of changes over channels.
//
// A Store is created by the caller and passed to whatever needs it; there is
// no package-level instance.
package store

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/internal/logging"
	"github.com/satprobe/satdsp/internal/signalio"
)

var (
	ErrNotFound       = errors.New("store: trace not found")
	ErrLengthMismatch = errors.New("store: result length does not match trace")
)

// EventKind identifies a store notification.
type EventKind int

const (
	EventLoaded EventKind = iota + 1
	EventProcessed
	EventCurrentChanged
	EventCleared
)

func (k EventKind) String() string {
	switch k {
	case EventLoaded:
		return "loaded"
	case EventProcessed:
		return "processed"
	case EventCurrentChanged:
		return "current-changed"
	case EventCleared:
		return "cleared"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is delivered to subscribers. ID is NoID for EventCleared and for a
// current change to nothing.
type Event struct {
	Kind      EventKind
	ID        int
	Algorithm string
}

// NoID marks the absence of a trace.
const NoID = -1

// Entry is a snapshot of a stored trace. Slices are copies.
type Entry struct {
	ID      int
	Trace   signalio.Trace
	Results map[string][]float64
}

type entry struct {
	trace   signalio.Trace
	results map[string][]float64
}

// Store is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[int]*entry
	order   []int
	nextID  int
	current int

	subs    map[int]chan Event
	nextSub int
	dropped int

	log logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for dropped-event reports.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) {
		s.log = logging.OrNoOp(l)
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		entries: make(map[int]*entry),
		current: NoID,
		subs:    make(map[int]chan Event),
		log:     &logging.NoOpLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Add stores a copy of tr, makes it current and returns its ID.
func (s *Store) Add(tr signalio.Trace) (int, error) {
	if err := core.RequireSamples(tr.Voltage); err != nil {
		return NoID, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.entries[id] = &entry{trace: copyTrace(tr), results: make(map[string][]float64)}
	s.order = append(s.order, id)
	s.publishLocked(Event{Kind: EventLoaded, ID: id})
	s.setCurrentLocked(id)
	return id, nil
}

// Get returns a snapshot of the trace with the given ID.
func (s *Store) Get(id int) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(id)
}

// Current returns the current trace, if any.
func (s *Store) Current() (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(s.current)
}

// SetCurrent selects the current trace. Selecting the trace that is already
// current publishes nothing.
func (s *Store) SetCurrent(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	s.setCurrentLocked(id)
	return nil
}

// All returns snapshots of every trace in insertion order.
func (s *Store) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		e, _ := s.snapshotLocked(id)
		out = append(out, e)
	}
	return out
}

// Len returns the number of stored traces.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// AddResult stores a copy of the output of algorithm for trace id. The
// result must have one value per trace sample.
func (s *Store) AddResult(id int, algorithm string, data []float64) error {
	if algorithm == "" {
		return fmt.Errorf("%w: algorithm name is required", core.ErrInvalidParameter)
	}
	if err := core.RequireSamples(data); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if n := e.trace.Len(); len(data) != n {
		return fmt.Errorf("%w: %s produced %d samples, trace has %d", ErrLengthMismatch, algorithm, len(data), n)
	}
	e.results[algorithm] = append([]float64(nil), data...)
	s.publishLocked(Event{Kind: EventProcessed, ID: id, Algorithm: algorithm})
	return nil
}

// Clear removes every trace.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[int]*entry)
	s.order = nil
	s.current = NoID
	s.publishLocked(Event{Kind: EventCleared, ID: NoID})
}

// Subscribe returns a channel receiving future events and a function that
// cancels the subscription and closes the channel. Events that do not fit in
// the buffer are dropped rather than blocking the publisher.
func (s *Store) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 0 {
		buffer = 0
	}
	ch := make(chan Event, buffer)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Dropped returns the number of events dropped for slow subscribers.
func (s *Store) Dropped() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dropped
}

func (s *Store) setCurrentLocked(id int) {
	if s.current == id {
		return
	}
	s.current = id
	s.publishLocked(Event{Kind: EventCurrentChanged, ID: id})
}

func (s *Store) publishLocked(ev Event) {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		select {
		case s.subs[id] <- ev:
		default:
			s.dropped++
			s.log.Debug("dropped store event", logging.Fields{
				"event":      ev.Kind.String(),
				"trace":      ev.ID,
				"subscriber": id,
			})
		}
	}
}

func (s *Store) snapshotLocked(id int) (Entry, bool) {
	e, ok := s.entries[id]
	if !ok {
		return Entry{}, false
	}
	results := make(map[string][]float64, len(e.results))
	for k, v := range e.results {
		results[k] = append([]float64(nil), v...)
	}
	return Entry{ID: id, Trace: copyTrace(e.trace), Results: results}, true
}

func copyTrace(tr signalio.Trace) signalio.Trace {
	return signalio.Trace{
		Name:    tr.Name,
		Time:    append([]float64(nil), tr.Time...),
		Voltage: append([]float64(nil), tr.Voltage...),
	}
}
