package puzzle

import (
	"errors"
	"testing"
)

func TestNewGridRejectsInconsistentSize(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *Level)
	}{
		{"short ground column", func(l *Level) { l.Ground[2] = l.Ground[2][:3] }},
		{"missing object column", func(l *Level) { l.Objects = l.Objects[:4] }},
		{"zero width", func(l *Level) { l.Width = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLevel("bad", 5, 5, P(2, 2), Right)
			tt.mutate(&l)
			_, err := NewGrid(l)
			if !errors.Is(err, ErrInconsistentGridSize) {
				t.Fatalf("expected ErrInconsistentGridSize, got %v", err)
			}
			var le *LevelError
			if !errors.As(err, &le) {
				t.Fatalf("expected *LevelError, got %T", err)
			}
		})
	}
}

func TestNewGridRejectsBadStart(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		code  string
	}{
		{"head outside", NewLevel("a", 5, 5, P(5, 2), Right), "START_OUT_OF_BOUNDS"},
		{"body on wall", buildLevel(5, 5, P(2, 2), Right, map[Pos]Object{P(1, 2): ObjectWall}, nil), "START_ON_WALL"},
		{"head on wall ground", buildLevel(5, 5, P(2, 2), Right, nil, map[Pos]Ground{P(2, 2): GroundWall}), "START_ON_WALL"},
		{"diagonal facing", NewLevel("c", 5, 5, P(2, 2), Dir{DX: 1, DY: 1}), "INVALID_FACING"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.level)
			var le *LevelError
			if !errors.As(err, &le) {
				t.Fatalf("expected *LevelError, got %v", err)
			}
			if le.Code != tt.code {
				t.Errorf("code = %s, want %s", le.Code, tt.code)
			}
			if !errors.Is(err, ErrInvalidStart) {
				t.Errorf("expected ErrInvalidStart, got %v", err)
			}
		})
	}
}

func TestGridStartTailMayBeOffGrid(t *testing.T) {
	if _, err := NewGrid(NewLevel("edge", 5, 5, P(1, 2), Right)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGridQueries(t *testing.T) {
	l := buildLevel(4, 3, P(2, 1), Right,
		map[Pos]Object{P(3, 0): ObjectBanana, P(0, 2): ObjectWall},
		map[Pos]Ground{P(3, 2): GroundPit, P(0, 0): GroundWall})
	g, err := NewGrid(l)
	if err != nil {
		t.Fatal(err)
	}

	if g.Width() != 4 || g.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", g.Width(), g.Height())
	}
	if !g.InBounds(P(3, 2)) || g.InBounds(P(4, 0)) || g.InBounds(P(0, -1)) {
		t.Error("InBounds disagrees with dimensions")
	}
	if g.ObjectAt(P(3, 0)) != ObjectBanana {
		t.Errorf("ObjectAt(3,0) = %v, want Banana", g.ObjectAt(P(3, 0)))
	}
	if g.ObjectAt(P(-1, 0)) != ObjectNone {
		t.Error("out-of-bounds object should be None")
	}
	if g.GroundAt(P(9, 9)) != GroundPit {
		t.Error("out-of-bounds ground should read as pit")
	}
	if !g.IsWall(P(0, 0)) || !g.IsWall(P(0, 2)) || g.IsWall(P(1, 1)) {
		t.Error("IsWall should cover both layers")
	}
	if g.IsSupported(P(3, 2)) || !g.IsSupported(P(1, 1)) {
		t.Error("IsSupported wrong for pit or grass")
	}
}

func TestGridObjectMutation(t *testing.T) {
	g, err := NewGrid(buildLevel(5, 5, P(2, 2), Right, map[Pos]Object{P(3, 3): ObjectSpicy}, nil))
	if err != nil {
		t.Fatal(err)
	}
	before := g.Clone()

	if !g.MoveObject(P(3, 3), P(4, 3)) {
		t.Fatal("MoveObject should succeed")
	}
	if g.ObjectAt(P(3, 3)) != ObjectNone || g.ObjectAt(P(4, 3)) != ObjectSpicy {
		t.Error("object not relocated")
	}
	if g.MoveObject(P(0, 0), P(1, 0)) {
		t.Error("moving from an empty cell should fail")
	}
	if g.Equal(before) {
		t.Error("mutated grid should differ from clone")
	}

	g.ClearObject(P(4, 3))
	g.SetObject(P(3, 3), ObjectSpicy)
	if !g.Equal(before) {
		t.Error("grid should equal clone after restoring")
	}
	if g.Count(ObjectSpicy) != 1 {
		t.Errorf("Count = %d, want 1", g.Count(ObjectSpicy))
	}
}
