package puzzle

import "fmt"

// Level is the immutable description of one puzzle.
// Ground and Objects are indexed [x][y] and must be Width x Height.
type Level struct {
	ID       string
	Name     string
	Width    int
	Height   int
	Ground   [][]Ground
	Objects  [][]Object
	Start    Pos
	Facing   Dir
	ExitOpen bool
}

// NewLevel allocates an all-grass level with no objects.
func NewLevel(id string, w, h int, start Pos, facing Dir) Level {
	ground := make([][]Ground, w)
	objects := make([][]Object, w)
	for x := range w {
		ground[x] = make([]Ground, h)
		objects[x] = make([]Object, h)
	}
	return Level{
		ID:       id,
		Name:     id,
		Width:    w,
		Height:   h,
		Ground:   ground,
		Objects:  objects,
		Start:    start,
		Facing:   facing,
		ExitOpen: true,
	}
}

// Validate checks map dimensions and the snake start layout.
func (l Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return &LevelError{
			Code:    "INVALID_SIZE",
			Message: fmt.Sprintf("level %q declares size %dx%d", l.ID, l.Width, l.Height),
			Err:     ErrInconsistentGridSize,
		}
	}
	if err := checkColumns("ground", l.ID, len(l.Ground), l.Width, l.Height, func(x int) int { return len(l.Ground[x]) }); err != nil {
		return err
	}
	if err := checkColumns("object", l.ID, len(l.Objects), l.Width, l.Height, func(x int) int { return len(l.Objects[x]) }); err != nil {
		return err
	}

	facing := l.Facing
	if facing.IsZero() {
		facing = Right
	}
	if !facing.IsUnit() {
		return &LevelError{
			Code:    "INVALID_FACING",
			Message: fmt.Sprintf("level %q facing %s is not a unit direction", l.ID, facing),
			Err:     ErrInvalidStart,
		}
	}

	// Trailing segments may start off the grid and enter it as the snake moves.
	p := l.Start
	if !l.inBounds(p) {
		return &LevelError{
			Code:    "START_OUT_OF_BOUNDS",
			Message: fmt.Sprintf("level %q head start %s is outside %dx%d", l.ID, p, l.Width, l.Height),
			Err:     ErrInvalidStart,
		}
	}
	for i := range InitialLength {
		if l.inBounds(p) && (l.Ground[p.X][p.Y] == GroundWall || l.Objects[p.X][p.Y] == ObjectWall) {
			return &LevelError{
				Code:    "START_ON_WALL",
				Message: fmt.Sprintf("level %q snake segment %d at %s is on a wall", l.ID, i, p),
				Err:     ErrInvalidStart,
			}
		}
		p = p.Add(facing.Reverse())
	}
	return nil
}

// StartFacing returns the facing the snake starts with; Right when unset.
func (l Level) StartFacing() Dir {
	if l.Facing.IsZero() {
		return Right
	}
	return l.Facing
}

// Count returns how many cells initially hold the given object.
func (l Level) Count(o Object) int {
	n := 0
	for _, col := range l.Objects {
		for _, obj := range col {
			if obj == o {
				n++
			}
		}
	}
	return n
}

func (l Level) inBounds(p Pos) bool {
	return p.X >= 0 && p.X < l.Width && p.Y >= 0 && p.Y < l.Height
}

func checkColumns(layer, id string, cols, w, h int, colLen func(x int) int) error {
	if cols != w {
		return &LevelError{
			Code:    "INCONSISTENT_GRID_SIZE",
			Message: fmt.Sprintf("level %q %s map has %d columns, declared width %d", id, layer, cols, w),
			Err:     ErrInconsistentGridSize,
		}
	}
	for x := range cols {
		if n := colLen(x); n != h {
			return &LevelError{
				Code:    "INCONSISTENT_GRID_SIZE",
				Message: fmt.Sprintf("level %q %s map column %d has %d cells, declared height %d", id, layer, x, n, h),
				Err:     ErrInconsistentGridSize,
			}
		}
	}
	return nil
}
