package formats

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/snake-puzzle/internal/puzzle"
)

func TestParseYAML(t *testing.T) {
	data := []byte(`
id: t
name: Test
size: { w: 3, h: 2 }
start: { x: 2, y: 1 }
facing: up
ground:
  - "#._"
  - "..."
objects:
  - "bsE"
  - "..#"
`)
	lvl, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if lvl.Facing != puzzle.Up || lvl.Start != puzzle.P(2, 1) {
		t.Errorf("facing %v start %v", lvl.Facing, lvl.Start)
	}
	if lvl.ExitOpenSet {
		t.Error("exit_open was not in the file")
	}

	ground := []struct {
		x, y int
		want puzzle.Ground
	}{
		{0, 0, puzzle.GroundWall},
		{1, 0, puzzle.GroundGrass},
		{2, 0, puzzle.GroundPit},
	}
	for _, g := range ground {
		if got := lvl.Ground[g.x][g.y]; got != g.want {
			t.Errorf("ground(%d,%d) = %v, want %v", g.x, g.y, got, g.want)
		}
	}
	objects := []struct {
		x, y int
		want puzzle.Object
	}{
		{0, 0, puzzle.ObjectBanana},
		{1, 0, puzzle.ObjectSpicy},
		{2, 0, puzzle.ObjectExit},
		{2, 1, puzzle.ObjectWall},
		{0, 1, puzzle.ObjectNone},
	}
	for _, o := range objects {
		if got := lvl.Objects[o.x][o.y]; got != o.want {
			t.Errorf("object(%d,%d) = %v, want %v", o.x, o.y, got, o.want)
		}
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
		substr  string
	}{
		{"missing id", "size: {w: 2, h: 2}", nil, "missing level id"},
		{"bad facing", "id: x\nsize: {w: 2, h: 2}\nfacing: sideways", nil, "unknown facing"},
		{"zero size", "id: x\nsize: {w: 0, h: 2}", puzzle.ErrInconsistentGridSize, ""},
		{"short row", "id: x\nsize: {w: 3, h: 1}\nground: [\"..\"]", puzzle.ErrInconsistentGridSize, ""},
		{"missing row", "id: x\nsize: {w: 2, h: 2}\nobjects: [\"..\"]", puzzle.ErrInconsistentGridSize, ""},
		{"unknown char", "id: x\nsize: {w: 2, h: 1}\nobjects: [\".z\"]", nil, "unknown object"},
		{"bad yaml", "id: [", nil, "yaml unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAML([]byte(tt.data))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error %v does not wrap %v", err, tt.wantErr)
			}
			if tt.substr != "" && !strings.Contains(err.Error(), tt.substr) {
				t.Errorf("error %q does not mention %q", err, tt.substr)
			}
		})
	}
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	l := puzzle.NewLevel("rt", 4, 2, puzzle.P(3, 0), puzzle.Right)
	l.Ground[0][1] = puzzle.GroundPit
	l.Objects[1][1] = puzzle.ObjectSpicy
	l.ExitOpen = false

	data, err := MarshalYAML(l)
	if err != nil {
		t.Fatal(err)
	}
	back, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("re-parse failed: %v\n%s", err, data)
	}
	if back.Ground[0][1] != puzzle.GroundPit || back.Objects[1][1] != puzzle.ObjectSpicy || back.ExitOpen {
		t.Errorf("round trip lost data:\n%s", data)
	}
}
