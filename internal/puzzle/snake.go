package puzzle

import "iter"

// InitialLength is the segment count of a freshly laid out snake.
const InitialLength = 3

// Snake is the ordered list of segment positions, head at index 0.
// At every committed state consecutive segments are orthogonal neighbors
// and the snake has at least InitialLength segments.
type Snake struct {
	segments      []Pos
	facing        Dir
	pendingGrowth bool
	propelled     bool
}

// NewSnake creates a snake laid out from start, see Initialize.
func NewSnake(start Pos, facing Dir) *Snake {
	s := &Snake{}
	s.Initialize(start, facing)
	return s
}

// Initialize lays out head, body and tail backward from start along the
// negative facing direction and resets the growth and propulsion flags.
func (s *Snake) Initialize(start Pos, facing Dir) {
	if !facing.IsUnit() {
		facing = Right
	}
	s.segments = s.segments[:0]
	p := start
	for range InitialLength {
		s.segments = append(s.segments, p)
		p = p.Add(facing.Reverse())
	}
	s.facing = facing
	s.pendingGrowth = false
	s.propelled = false
}

// Head returns the head position.
func (s *Snake) Head() Pos {
	return s.segments[0]
}

// Tail returns the last segment position.
func (s *Snake) Tail() Pos {
	return s.segments[len(s.segments)-1]
}

// Len returns the current segment count.
func (s *Snake) Len() int {
	return len(s.segments)
}

// Shape returns a restartable view over the segments, head first.
func (s *Snake) Shape() iter.Seq[Pos] {
	return func(yield func(Pos) bool) {
		for _, p := range s.segments {
			if !yield(p) {
				return
			}
		}
	}
}

// Segments returns a copy of the segment positions, head first.
func (s *Snake) Segments() []Pos {
	out := make([]Pos, len(s.segments))
	copy(out, s.segments)
	return out
}

// Facing returns the current movement direction.
func (s *Snake) Facing() Dir {
	return s.facing
}

// SetFacing changes the facing. Non-unit directions are ignored.
func (s *Snake) SetFacing(d Dir) {
	if d.IsUnit() {
		s.facing = d
	}
}

// PendingGrowth reports whether the next advance keeps the tail.
func (s *Snake) PendingGrowth() bool {
	return s.pendingGrowth
}

// GrowNextStep makes the next advance keep the tail.
func (s *Snake) GrowNextStep() {
	s.pendingGrowth = true
}

// Propelled reports whether a propulsion dash is moving the snake.
func (s *Snake) Propelled() bool {
	return s.propelled
}

func (s *Snake) setPropelled(v bool) {
	s.propelled = v
}

// Advance inserts newHead at the front. With pending growth the tail is kept
// and the flag clears, otherwise the tail is dropped.
func (s *Snake) Advance(newHead Pos) {
	s.segments = append(s.segments, Pos{})
	copy(s.segments[1:], s.segments[:len(s.segments)-1])
	s.segments[0] = newHead

	if s.pendingGrowth {
		s.pendingGrowth = false
		return
	}
	s.segments = s.segments[:len(s.segments)-1]
}

// Translate shifts every segment by d at once, keeping the shape.
func (s *Snake) Translate(d Dir) {
	for i := range s.segments {
		s.segments[i] = s.segments[i].Add(d)
	}
}

// Offsets returns each segment's position relative to the head.
func (s *Snake) Offsets() []Pos {
	head := s.Head()
	out := make([]Pos, len(s.segments))
	for i, p := range s.segments {
		out[i] = p.Offset(head)
	}
	return out
}

// Occupies reports whether any segment is at p.
func (s *Snake) Occupies(p Pos) bool {
	for _, seg := range s.segments {
		if seg == p {
			return true
		}
	}
	return false
}

// Blocks reports whether p is taken by a segment that stays put on the next
// advance. The tail vacates its cell unless growth is pending.
func (s *Snake) Blocks(p Pos) bool {
	n := len(s.segments)
	if !s.pendingGrowth {
		n--
	}
	for _, seg := range s.segments[:n] {
		if seg == p {
			return true
		}
	}
	return false
}

// Contiguous reports whether every segment neighbors the previous one.
func (s *Snake) Contiguous() bool {
	for i := 1; i < len(s.segments); i++ {
		if !s.segments[i-1].Adjacent(s.segments[i]) {
			return false
		}
	}
	return true
}

// Snapshot captures a deep copy of the snake state.
func (s *Snake) Snapshot() Snapshot {
	return Snapshot{
		Head:          s.Head(),
		Segments:      s.Segments(),
		Facing:        s.facing,
		PendingGrowth: s.pendingGrowth,
		Propelled:     s.propelled,
	}
}

// RestoreFrom replaces the whole snake state with the snapshot.
// It never touches the grid.
func (s *Snake) RestoreFrom(snap Snapshot) {
	s.segments = append(s.segments[:0], snap.Segments...)
	if len(s.segments) > 0 {
		s.segments[0] = snap.Head
	}
	if snap.Facing.IsUnit() {
		s.facing = snap.Facing
	}
	s.pendingGrowth = snap.PendingGrowth
	s.propelled = snap.Propelled
}
