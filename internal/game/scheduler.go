package game

import "sort"

// TaskID identifies a scheduled callback.
type TaskID int

type task struct {
	id   TaskID
	name string
	due  float64
	fn   func()
	dead bool
}

// Scheduler runs callbacks after simulated delays. It is advanced by the
// match tick, so pacing delays follow simulation time, never wall-clock time.
// Callbacks must re-check their own preconditions when they fire.
type Scheduler struct {
	now     float64
	next    TaskID
	tasks   []*task
	running []*task // due batch of the current Advance
}

// After schedules fn to run once delay seconds of simulation have passed.
func (s *Scheduler) After(delay float64, name string, fn func()) TaskID {
	if delay < 0 {
		delay = 0
	}
	s.next++
	s.tasks = append(s.tasks, &task{id: s.next, name: name, due: s.now + delay, fn: fn})
	return s.next
}

// Cancel removes a pending task. It reports whether the task was pending.
func (s *Scheduler) Cancel(id TaskID) bool {
	for i, t := range s.tasks {
		if t.id == id {
			t.dead = true
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	for _, t := range s.running {
		if t.id == id && !t.dead {
			t.dead = true
			return true
		}
	}
	return false
}

// CancelAll drops every pending task, including the not yet run remainder of
// the batch currently being advanced.
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.dead = true
	}
	for _, t := range s.running {
		t.dead = true
	}
	s.tasks = s.tasks[:0]
}

// Pending reports whether a task with the given name is waiting.
func (s *Scheduler) Pending(name string) bool {
	for _, t := range s.tasks {
		if t.name == name {
			return true
		}
	}
	return false
}

// Len is the number of pending tasks.
func (s *Scheduler) Len() int { return len(s.tasks) }

// Now is the scheduler clock in seconds.
func (s *Scheduler) Now() float64 { return s.now }

// Advance moves the clock by dt and runs every task that came due, earliest
// first (ties in scheduling order). Tasks scheduled by a running callback wait
// for a later Advance even when their delay is zero.
func (s *Scheduler) Advance(dt float64) {
	s.now += dt
	var due []*task
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.due <= s.now {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	s.running = due
	for _, t := range due {
		if t.dead {
			continue
		}
		t.dead = true
		t.fn()
	}
	s.running = nil
}
