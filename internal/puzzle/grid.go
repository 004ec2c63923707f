package puzzle

// Grid holds the two tile layers of a loaded level.
// The ground layer is read-only after load; only the object layer mutates.
// Cells are stored in row-major order: index = y*W + x.
type Grid struct {
	w       int
	h       int
	ground  []Ground
	objects []Object
}

// NewGrid builds a grid from a level, rejecting inconsistent map sizes.
func NewGrid(l Level) (*Grid, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	g := &Grid{
		w:       l.Width,
		h:       l.Height,
		ground:  make([]Ground, l.Width*l.Height),
		objects: make([]Object, l.Width*l.Height),
	}
	for x := range l.Width {
		for y := range l.Height {
			i := g.index(P(x, y))
			g.ground[i] = l.Ground[x][y]
			g.objects[i] = l.Objects[x][y]
		}
	}
	return g, nil
}

// Width returns the grid width.
func (g *Grid) Width() int {
	return g.w
}

// Height returns the grid height.
func (g *Grid) Height() int {
	return g.h
}

func (g *Grid) index(p Pos) int {
	return p.Y*g.w + p.X
}

// InBounds returns true if the position is within the grid boundaries.
// Positions are never wrapped.
func (g *Grid) InBounds(p Pos) bool {
	return p.X >= 0 && p.X < g.w && p.Y >= 0 && p.Y < g.h
}

// GroundAt returns the terrain at p.
// Returns GroundPit for out-of-bounds positions: nothing supports the snake there.
func (g *Grid) GroundAt(p Pos) Ground {
	if !g.InBounds(p) {
		return GroundPit
	}
	return g.ground[g.index(p)]
}

// ObjectAt returns the object at p, or ObjectNone if out of bounds.
func (g *Grid) ObjectAt(p Pos) Object {
	if !g.InBounds(p) {
		return ObjectNone
	}
	return g.objects[g.index(p)]
}

// IsWall reports whether p holds a permanent wall on either layer.
func (g *Grid) IsWall(p Pos) bool {
	if !g.InBounds(p) {
		return false
	}
	i := g.index(p)
	return g.ground[i] == GroundWall || g.objects[i] == ObjectWall
}

// IsSupported reports whether p has ground that can carry the snake.
func (g *Grid) IsSupported(p Pos) bool {
	return g.InBounds(p) && g.GroundAt(p) != GroundPit
}

// ClearObject empties the object layer at p. No-op if out of bounds.
func (g *Grid) ClearObject(p Pos) {
	if g.InBounds(p) {
		g.objects[g.index(p)] = ObjectNone
	}
}

// SetObject places an object at p. No-op if out of bounds.
func (g *Grid) SetObject(p Pos, o Object) {
	if g.InBounds(p) {
		g.objects[g.index(p)] = o
	}
}

// MoveObject relocates the object at from to to.
// Callers validate that to is in bounds. Returns false when from is empty.
func (g *Grid) MoveObject(from, to Pos) bool {
	o := g.ObjectAt(from)
	if o == ObjectNone {
		return false
	}
	g.objects[g.index(from)] = ObjectNone
	g.SetObject(to, o)
	return true
}

// Count returns the number of cells holding the given object.
func (g *Grid) Count(o Object) int {
	n := 0
	for _, obj := range g.objects {
		if obj == o {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	ground := make([]Ground, len(g.ground))
	copy(ground, g.ground)
	objects := make([]Object, len(g.objects))
	copy(objects, g.objects)
	return &Grid{w: g.w, h: g.h, ground: ground, objects: objects}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.w != other.w || g.h != other.h {
		return false
	}
	for i := range g.ground {
		if g.ground[i] != other.ground[i] || g.objects[i] != other.objects[i] {
			return false
		}
	}
	return true
}
