package puzzle

// TimerID identifies a scheduled callback.
type TimerID uint64

type timer struct {
	id  TimerID
	due uint64
	fn  func()
}

// Scheduler runs cancellable callbacks after a number of ticks.
// It replaces wall-clock coroutines with deterministic tick counting.
type Scheduler struct {
	now     uint64
	nextID  TimerID
	timers  []timer
	running []timer // callbacks due on the current tick
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run once, ticks ticks from now.
// A delay below 1 runs fn on the next Tick.
func (s *Scheduler) After(ticks int, fn func()) TimerID {
	if ticks < 1 {
		ticks = 1
	}
	s.nextID++
	s.timers = append(s.timers, timer{id: s.nextID, due: s.now + uint64(ticks), fn: fn})
	return s.nextID
}

// Cancel removes a pending callback. Returns false if it already ran.
func (s *Scheduler) Cancel(id TimerID) bool {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	for i, t := range s.running {
		if t.id == id && t.fn != nil {
			s.running[i].fn = nil
			return true
		}
	}
	return false
}

// Pending returns the number of callbacks waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Now returns the number of ticks elapsed.
func (s *Scheduler) Now() uint64 {
	return s.now
}

// Tick advances the clock and runs due callbacks in scheduling order.
// Callbacks scheduled while ticking wait for a later tick; callbacks
// cancelled by an earlier callback of the same tick do not run.
func (s *Scheduler) Tick() {
	s.now++
	var keep []timer
	s.running = s.running[:0]
	for _, t := range s.timers {
		if t.due <= s.now {
			s.running = append(s.running, t)
		} else {
			keep = append(keep, t)
		}
	}
	s.timers = keep
	for i := 0; i < len(s.running); i++ {
		fn := s.running[i].fn
		if fn == nil {
			continue
		}
		s.running[i].fn = nil
		fn()
	}
	s.running = s.running[:0]
}

// Reset drops every pending callback.
func (s *Scheduler) Reset() {
	s.timers = nil
	for i := range s.running {
		s.running[i].fn = nil
	}
}
