package store

import (
	"errors"
	"sync"
	"testing"

	"github.com/satprobe/satdsp/dsp/core"
	"github.com/satprobe/satdsp/internal/signalio"
)

func trace(name string, n int) signalio.Trace {
	tr := signalio.Trace{Name: name, Time: make([]float64, n), Voltage: make([]float64, n)}
	for i := range tr.Voltage {
		tr.Time[i] = float64(i)
		tr.Voltage[i] = float64(i) * 0.5
	}
	return tr
}

func drain(ch <-chan Event) []Event {
	var out []Event
	for {
		select {
		case ev := <-ch:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestAddGetCurrent(t *testing.T) {
	s := New()
	events, cancel := s.Subscribe(16)
	defer cancel()

	a, err := s.Add(trace("a", 4))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	b, err := s.Add(trace("b", 3))
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	cur, ok := s.Current()
	if !ok || cur.ID != b || cur.Trace.Name != "b" {
		t.Fatalf("Current() = %+v, %v; want trace b", cur, ok)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	want := []Event{
		{Kind: EventLoaded, ID: a},
		{Kind: EventCurrentChanged, ID: a},
		{Kind: EventLoaded, ID: b},
		{Kind: EventCurrentChanged, ID: b},
	}
	got := drain(events)
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSnapshotsAreCopies(t *testing.T) {
	s := New()
	tr := trace("a", 3)
	id, err := s.Add(tr)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	tr.Voltage[0] = 99

	e, _ := s.Get(id)
	if e.Trace.Voltage[0] != 0 {
		t.Fatalf("store aliased caller slice")
	}
	e.Trace.Voltage[1] = 99
	again, _ := s.Get(id)
	if again.Trace.Voltage[1] != 0.5 {
		t.Fatalf("snapshot aliased store slice")
	}
}

func TestSetCurrent(t *testing.T) {
	s := New()
	a, _ := s.Add(trace("a", 2))
	_, _ = s.Add(trace("b", 2))
	events, cancel := s.Subscribe(4)
	defer cancel()

	if err := s.SetCurrent(a); err != nil {
		t.Fatalf("SetCurrent() error = %v", err)
	}
	if err := s.SetCurrent(a); err != nil {
		t.Fatalf("SetCurrent() error = %v", err)
	}
	if got := drain(events); len(got) != 1 || got[0] != (Event{Kind: EventCurrentChanged, ID: a}) {
		t.Fatalf("events = %v, want a single change", got)
	}
	if err := s.SetCurrent(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SetCurrent(42) error = %v, want ErrNotFound", err)
	}
}

func TestAddResult(t *testing.T) {
	s := New()
	id, _ := s.Add(trace("a", 3))
	events, cancel := s.Subscribe(4)
	defer cancel()

	if err := s.AddResult(id, "envelope", []float64{1, 2, 3}); err != nil {
		t.Fatalf("AddResult() error = %v", err)
	}
	e, _ := s.Get(id)
	if r := e.Results["envelope"]; len(r) != 3 || r[2] != 3 {
		t.Fatalf("Results = %v", e.Results)
	}
	if got := drain(events); len(got) != 1 || got[0] != (Event{Kind: EventProcessed, ID: id, Algorithm: "envelope"}) {
		t.Fatalf("events = %v", got)
	}

	if err := s.AddResult(id, "envelope", []float64{1}); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("AddResult(short) error = %v, want ErrLengthMismatch", err)
	}
	if err := s.AddResult(id, "", []float64{1, 2, 3}); !errors.Is(err, core.ErrInvalidParameter) {
		t.Fatalf("AddResult(no name) error = %v, want ErrInvalidParameter", err)
	}
	if err := s.AddResult(7, "x", []float64{1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("AddResult(unknown) error = %v, want ErrNotFound", err)
	}
	if err := s.AddResult(id, "x", nil); !errors.Is(err, core.ErrEmptyInput) {
		t.Fatalf("AddResult(nil) error = %v, want ErrEmptyInput", err)
	}
}

func TestAddEmptyTrace(t *testing.T) {
	if _, err := New().Add(signalio.Trace{}); !errors.Is(err, core.ErrEmptyInput) {
		t.Fatalf("Add(empty) error = %v, want ErrEmptyInput", err)
	}
}

func TestClear(t *testing.T) {
	s := New()
	_, _ = s.Add(trace("a", 2))
	events, cancel := s.Subscribe(1)
	defer cancel()

	s.Clear()
	if s.Len() != 0 || len(s.All()) != 0 {
		t.Fatalf("store not empty after Clear")
	}
	if _, ok := s.Current(); ok {
		t.Fatalf("Current() still set after Clear")
	}
	if got := drain(events); len(got) != 1 || got[0].Kind != EventCleared {
		t.Fatalf("events = %v, want cleared", got)
	}
}

func TestSlowSubscriberDropsEvents(t *testing.T) {
	s := New()
	events, cancel := s.Subscribe(1)
	defer cancel()

	for i := 0; i < 3; i++ {
		if _, err := s.Add(trace("t", 2)); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	// Each Add publishes two events; only the first fits.
	if got := drain(events); len(got) != 1 {
		t.Fatalf("received %d events, want 1", len(got))
	}
	if s.Dropped() != 5 {
		t.Fatalf("Dropped() = %d, want 5", s.Dropped())
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	s := New()
	events, cancel := s.Subscribe(0)
	cancel()
	cancel()
	if _, ok := <-events; ok {
		t.Fatalf("channel still open after cancel")
	}
	if _, err := s.Add(trace("a", 1)); err != nil {
		t.Fatalf("Add() after cancel error = %v", err)
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := New()
	events, cancel := s.Subscribe(8)
	defer cancel()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				id, err := s.Add(trace("c", 4))
				if err != nil {
					t.Errorf("Add() error = %v", err)
					return
				}
				if err := s.AddResult(id, "zero-offset", []float64{0, 0, 0, 0}); err != nil {
					t.Errorf("AddResult() error = %v", err)
					return
				}
				_, _ = s.Current()
			}
		}()
	}
	go func() {
		for range events {
		}
	}()
	wg.Wait()

	if s.Len() != 160 {
		t.Fatalf("Len() = %d, want 160", s.Len())
	}
}
