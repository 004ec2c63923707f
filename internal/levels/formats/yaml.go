// Package formats provides level file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/snake-puzzle/internal/puzzle"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     YAMLSize          `yaml:"size"`
	Start    YAMLPos           `yaml:"start"`
	Facing   string            `yaml:"facing,omitempty"`
	ExitOpen *bool             `yaml:"exit_open,omitempty"`
	Ground   []string          `yaml:"ground,omitempty"`
	Objects  []string          `yaml:"objects,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLPos is a cell coordinate. Y grows downward, matching map rows.
type YAMLPos struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Level is a parsed level plus the file-level extras.
type Level struct {
	puzzle.Level
	ExitOpenSet bool // exit_open was present in the file
	Metadata    map[string]string
}

// Map characters. Rows are listed top to bottom, one character per cell.
const (
	CharGrass  = '.'
	CharWall   = '#'
	CharPit    = '_'
	CharNone   = '.'
	CharBanana = 'b'
	CharSpicy  = 's'
	CharExit   = 'E'
)

// ParseYAML parses a YAML level file. Omitted ground or object maps default
// to grass and empty cells. The result is not validated.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("missing level id")
	}

	facing := puzzle.Right
	if yl.Facing != "" {
		d, ok := puzzle.ParseDir(yl.Facing)
		if !ok {
			return Level{}, fmt.Errorf("level %q: unknown facing %q", yl.ID, yl.Facing)
		}
		facing = d
	}

	w, h := yl.Size.W, yl.Size.H
	if w <= 0 || h <= 0 {
		return Level{}, &puzzle.LevelError{
			Code:    "INVALID_SIZE",
			Message: fmt.Sprintf("level %q declares size %dx%d", yl.ID, w, h),
			Err:     puzzle.ErrInconsistentGridSize,
		}
	}

	lvl := puzzle.NewLevel(yl.ID, w, h, puzzle.P(yl.Start.X, yl.Start.Y), facing)
	if yl.Name != "" {
		lvl.Name = yl.Name
	}
	if yl.ExitOpen != nil {
		lvl.ExitOpen = *yl.ExitOpen
	}

	if yl.Ground != nil {
		if err := fillRows(yl.ID, "ground", yl.Ground, w, h, func(x, y int, c rune) error {
			g, ok := groundOf(c)
			if !ok {
				return fmt.Errorf("unknown ground %q", c)
			}
			lvl.Ground[x][y] = g
			return nil
		}); err != nil {
			return Level{}, err
		}
	}
	if yl.Objects != nil {
		if err := fillRows(yl.ID, "objects", yl.Objects, w, h, func(x, y int, c rune) error {
			o, ok := objectOf(c)
			if !ok {
				return fmt.Errorf("unknown object %q", c)
			}
			lvl.Objects[x][y] = o
			return nil
		}); err != nil {
			return Level{}, err
		}
	}

	return Level{Level: lvl, ExitOpenSet: yl.ExitOpen != nil, Metadata: yl.Metadata}, nil
}

// fillRows checks the map against the declared size and feeds each cell to set.
func fillRows(id, layer string, rows []string, w, h int, set func(x, y int, c rune) error) error {
	if len(rows) != h {
		return &puzzle.LevelError{
			Code:    "INCONSISTENT_GRID_SIZE",
			Message: fmt.Sprintf("level %q %s map has %d rows, declared height %d", id, layer, len(rows), h),
			Err:     puzzle.ErrInconsistentGridSize,
		}
	}
	for y, row := range rows {
		cells := []rune(row)
		if len(cells) != w {
			return &puzzle.LevelError{
				Code:    "INCONSISTENT_GRID_SIZE",
				Message: fmt.Sprintf("level %q %s row %d has %d cells, declared width %d", id, layer, y, len(cells), w),
				Err:     puzzle.ErrInconsistentGridSize,
			}
		}
		for x, c := range cells {
			if err := set(x, y, c); err != nil {
				return fmt.Errorf("level %q %s (%d,%d): %w", id, layer, x, y, err)
			}
		}
	}
	return nil
}

func groundOf(c rune) (puzzle.Ground, bool) {
	switch c {
	case CharGrass:
		return puzzle.GroundGrass, true
	case CharWall:
		return puzzle.GroundWall, true
	case CharPit:
		return puzzle.GroundPit, true
	}
	return 0, false
}

func objectOf(c rune) (puzzle.Object, bool) {
	switch c {
	case CharNone:
		return puzzle.ObjectNone, true
	case CharBanana:
		return puzzle.ObjectBanana, true
	case CharSpicy:
		return puzzle.ObjectSpicy, true
	case CharExit:
		return puzzle.ObjectExit, true
	case CharWall:
		return puzzle.ObjectWall, true
	}
	return 0, false
}

// MarshalYAML encodes a level back into the map format.
func MarshalYAML(l puzzle.Level) ([]byte, error) {
	yl := YAMLLevel{
		ID:     l.ID,
		Name:   l.Name,
		Size:   YAMLSize{W: l.Width, H: l.Height},
		Start:  YAMLPos{X: l.Start.X, Y: l.Start.Y},
		Facing: l.StartFacing().String(),
	}
	exitOpen := l.ExitOpen
	yl.ExitOpen = &exitOpen
	for y := range l.Height {
		ground := make([]rune, l.Width)
		objects := make([]rune, l.Width)
		for x := range l.Width {
			ground[x] = groundChar(l.Ground[x][y])
			objects[x] = objectChar(l.Objects[x][y])
		}
		yl.Ground = append(yl.Ground, string(ground))
		yl.Objects = append(yl.Objects, string(objects))
	}
	return yaml.Marshal(&yl)
}

func groundChar(g puzzle.Ground) rune {
	switch g {
	case puzzle.GroundWall:
		return CharWall
	case puzzle.GroundPit:
		return CharPit
	default:
		return CharGrass
	}
}

func objectChar(o puzzle.Object) rune {
	switch o {
	case puzzle.ObjectBanana:
		return CharBanana
	case puzzle.ObjectSpicy:
		return CharSpicy
	case puzzle.ObjectExit:
		return CharExit
	case puzzle.ObjectWall:
		return CharWall
	default:
		return CharNone
	}
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
