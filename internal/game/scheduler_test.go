package game

import (
	"reflect"
	"testing"
)

func TestScheduler_RunsInDueOrder(t *testing.T) {
	var s Scheduler
	var got []string
	s.After(0.3, "c", func() { got = append(got, "c") })
	s.After(0.1, "a", func() { got = append(got, "a") })
	s.After(0.1, "b", func() { got = append(got, "b") })

	s.Advance(0.05)
	if len(got) != 0 {
		t.Fatalf("ran early: %v", got)
	}
	s.Advance(0.3)
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
	if s.Len() != 0 {
		t.Fatalf("%d tasks left", s.Len())
	}
}

func TestScheduler_Cancel(t *testing.T) {
	var s Scheduler
	ran := false
	id := s.After(0.1, "x", func() { ran = true })
	if !s.Pending("x") {
		t.Fatal("task not pending")
	}
	if !s.Cancel(id) {
		t.Fatal("cancel reported not pending")
	}
	if s.Cancel(id) {
		t.Fatal("second cancel reported pending")
	}
	s.Advance(1)
	if ran {
		t.Fatal("cancelled task ran")
	}
}

func TestScheduler_CancelAllInsideBatch(t *testing.T) {
	var s Scheduler
	var got []string
	s.After(0.1, "first", func() {
		got = append(got, "first")
		s.CancelAll()
	})
	s.After(0.1, "second", func() { got = append(got, "second") })
	s.After(0.5, "later", func() { got = append(got, "later") })
	s.Advance(1)
	if !reflect.DeepEqual(got, []string{"first"}) {
		t.Fatalf("ran %v, want only first", got)
	}
}

func TestScheduler_ZeroDelayFromCallbackWaits(t *testing.T) {
	var s Scheduler
	count := 0
	s.After(0, "outer", func() {
		count++
		s.After(0, "inner", func() { count++ })
	})
	s.Advance(0.01)
	if count != 1 {
		t.Fatalf("count = %d after first advance, want 1", count)
	}
	s.Advance(0.01)
	if count != 2 {
		t.Fatalf("count = %d after second advance, want 2", count)
	}
}

func TestScheduler_ClockIsSimulationTime(t *testing.T) {
	var s Scheduler
	for i := 0; i < 60; i++ {
		s.Advance(TickDT)
	}
	if now := s.Now(); now < 0.999 || now > 1.001 {
		t.Fatalf("clock = %v after 60 ticks", now)
	}
}
