package puzzle

import "testing"

// buildLevel creates an all-grass level and places the given objects and ground.
func buildLevel(w, h int, start Pos, facing Dir, objects map[Pos]Object, ground map[Pos]Ground) Level {
	l := NewLevel("test", w, h, start, facing)
	for p, o := range objects {
		l.Objects[p.X][p.Y] = o
	}
	for p, g := range ground {
		l.Ground[p.X][p.Y] = g
	}
	return l
}

func newTestSession(t *testing.T, l Level, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithConfig(Config{Timing: InstantTiming(), UndoRestoresTiles: true})}, opts...)
	s := NewSession(opts...)
	if err := s.Reload(l); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	return s
}

func assertContiguous(t *testing.T, segs []Pos) {
	t.Helper()
	for i := 1; i < len(segs); i++ {
		if !segs[i-1].Adjacent(segs[i]) {
			t.Fatalf("segments %d and %d not adjacent: %v", i-1, i, segs)
		}
	}
}
