// Package puzzle implements the deterministic simulation core of the snake
// fruit puzzle: the tile grid, the snake body, the interaction rules, the
// move resolver state machine, propulsion dashes and undo history.
//
// The package has no UI or timing dependencies. Time only advances when the
// caller invokes Tick, which keeps every run reproducible.
package puzzle

import "fmt"

// Pos is a cell position on the grid.
// X increases to the right, Y increases downward (screen coordinates).
type Pos struct {
	X int
	Y int
}

// P is a convenience constructor for Pos.
func P(x, y int) Pos {
	return Pos{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns the position one step away in direction d.
func (p Pos) Add(d Dir) Pos {
	return Pos{X: p.X + d.DX, Y: p.Y + d.DY}
}

// Offset returns the vector from origin to p.
func (p Pos) Offset(origin Pos) Pos {
	return Pos{X: p.X - origin.X, Y: p.Y - origin.Y}
}

// Plus returns the component-wise sum of two positions.
func (p Pos) Plus(o Pos) Pos {
	return Pos{X: p.X + o.X, Y: p.Y + o.Y}
}

// Adjacent reports whether o is an orthogonal unit-distance neighbor of p.
func (p Pos) Adjacent(o Pos) bool {
	dx, dy := p.X-o.X, p.Y-o.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

// Dir is a direction vector. Valid movement directions are the four
// orthogonal unit vectors; the zero vector is representable so that
// malformed input can be detected and rejected.
type Dir struct {
	DX int
	DY int
}

// The four movement directions. Up decreases Y.
var (
	Up    = Dir{DX: 0, DY: -1}
	Down  = Dir{DX: 0, DY: 1}
	Left  = Dir{DX: -1, DY: 0}
	Right = Dir{DX: 1, DY: 0}
)

// Directions lists the movement directions in a fixed order.
var Directions = []Dir{Up, Right, Down, Left}

// IsZero reports whether d is the zero vector.
func (d Dir) IsZero() bool {
	return d.DX == 0 && d.DY == 0
}

// IsUnit reports whether d is one of the four orthogonal unit vectors.
func (d Dir) IsUnit() bool {
	return d == Up || d == Down || d == Left || d == Right
}

// Reverse returns the opposite direction.
func (d Dir) Reverse() Dir {
	return Dir{DX: -d.DX, DY: -d.DY}
}

// String returns the direction name.
func (d Dir) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Dir{}:
		return "none"
	default:
		return fmt.Sprintf("dir(%d,%d)", d.DX, d.DY)
	}
}

// ParseDir parses a direction name ("up", "down", "left", "right").
func ParseDir(s string) (Dir, bool) {
	switch s {
	case "up", "u", "north":
		return Up, true
	case "down", "d", "south":
		return Down, true
	case "left", "l", "west":
		return Left, true
	case "right", "r", "east":
		return Right, true
	default:
		return Dir{}, false
	}
}

// Ground is the immutable terrain type of a cell.
type Ground uint8

const (
	GroundGrass Ground = iota
	GroundWall
	GroundPit
)

// String returns the ground type name.
func (g Ground) String() string {
	switch g {
	case GroundGrass:
		return "Grass"
	case GroundWall:
		return "Wall"
	case GroundPit:
		return "Pit"
	default:
		return "Unknown"
	}
}

// Object is the mutable occupant of a cell.
type Object uint8

const (
	ObjectNone Object = iota
	ObjectBanana
	ObjectSpicy
	ObjectExit
	ObjectWall
)

// String returns the object type name.
func (o Object) String() string {
	switch o {
	case ObjectNone:
		return "None"
	case ObjectBanana:
		return "Banana"
	case ObjectSpicy:
		return "Spicy"
	case ObjectExit:
		return "Exit"
	case ObjectWall:
		return "Wall"
	default:
		return "Unknown"
	}
}

// IsFruit reports whether the object can be pushed and consumed.
func (o Object) IsFruit() bool {
	return o == ObjectBanana || o == ObjectSpicy
}

// Face is the cosmetic expression of the snake head, exposed for renderers.
type Face uint8

const (
	FaceNormal Face = iota
	FacePropelled
	FaceEating
	FaceDead
	FaceFruitFell
	FaceWin
)

// String returns the face name.
func (f Face) String() string {
	switch f {
	case FaceNormal:
		return "normal"
	case FacePropelled:
		return "propelled"
	case FaceEating:
		return "eating"
	case FaceDead:
		return "dead"
	case FaceFruitFell:
		return "fruit_fell"
	case FaceWin:
		return "win"
	default:
		return "unknown"
	}
}
