package puzzle

// TileDelta records the object a cell held before a step changed it.
type TileDelta struct {
	Pos    Pos
	Object Object
}

// Snapshot is an immutable copy of the pre-move state of one committed step.
type Snapshot struct {
	Head          Pos
	Segments      []Pos
	Facing        Dir
	PendingGrowth bool
	Propelled     bool
	Tiles         []TileDelta // object-layer cells the step changed, in change order
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	c := s
	c.Segments = append([]Pos(nil), s.Segments...)
	c.Tiles = append([]TileDelta(nil), s.Tiles...)
	return c
}

// History is a LIFO stack of snapshots, one per committed move.
type History struct {
	stack []Snapshot
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Push records a snapshot. The history keeps its own copy.
func (h *History) Push(s Snapshot) {
	h.stack = append(h.stack, s.Clone())
}

// Pop removes and returns the most recent snapshot.
// Returns false if the history is empty.
func (h *History) Pop() (Snapshot, bool) {
	if len(h.stack) == 0 {
		return Snapshot{}, false
	}
	s := h.stack[len(h.stack)-1]
	h.stack[len(h.stack)-1] = Snapshot{}
	h.stack = h.stack[:len(h.stack)-1]
	return s, true
}

// Peek returns a copy of the most recent snapshot without removing it.
func (h *History) Peek() (Snapshot, bool) {
	if len(h.stack) == 0 {
		return Snapshot{}, false
	}
	return h.stack[len(h.stack)-1].Clone(), true
}

// Len returns the number of recorded snapshots.
func (h *History) Len() int {
	return len(h.stack)
}

// Clear drops all snapshots.
func (h *History) Clear() {
	clear(h.stack)
	h.stack = h.stack[:0]
}
