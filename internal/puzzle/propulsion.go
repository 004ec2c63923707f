package puzzle

// Propulsion runs the rigid dash triggered by eating a spicy fruit.
// Every advance shifts the whole snake one cell in the dash direction until
// any segment would leave the grid or enter a wall.
type Propulsion struct {
	grid  *Grid
	snake *Snake

	dir       Dir
	offsets   []Pos
	active    bool
	period    int
	countdown int
	steps     int
}

// NewPropulsion creates an idle propulsion engine for the given grid and snake.
func NewPropulsion(g *Grid, s *Snake) *Propulsion {
	return &Propulsion{grid: g, snake: s}
}

// Start begins a dash in direction d. The first advance happens after
// delay ticks, later ones every period ticks (minimum 1).
func (p *Propulsion) Start(d Dir, delay, period int) {
	if period < 1 {
		period = 1
	}
	if delay < 0 {
		delay = 0
	}
	p.dir = d
	p.offsets = p.snake.Offsets()
	p.active = true
	p.period = period
	p.countdown = delay
	p.steps = 0
	p.snake.setPropelled(true)
}

// Active reports whether a dash is running.
func (p *Propulsion) Active() bool {
	return p.active
}

// Dir returns the dash direction.
func (p *Propulsion) Dir() Dir {
	return p.dir
}

// Steps returns the number of cells moved by the current or last dash.
func (p *Propulsion) Steps() int {
	return p.steps
}

// Cancel stops a running dash, leaving the snake where it is.
func (p *Propulsion) Cancel() {
	p.stop()
}

// Tick advances the dash clock by one tick.
// It reports whether the snake moved and whether the dash has finished.
func (p *Propulsion) Tick() (moved, done bool) {
	if !p.active {
		return false, true
	}
	if p.countdown > 0 {
		p.countdown--
		return false, false
	}
	p.countdown = p.period - 1
	if !p.Advance() {
		return false, true
	}
	return true, false
}

// Advance performs one check-then-commit step. It returns false and ends the
// dash when any translated segment would be out of bounds or on a wall.
func (p *Propulsion) Advance() bool {
	if !p.active {
		return false
	}
	newHead := p.snake.Head().Add(p.dir)
	if !p.Clear(newHead) {
		p.stop()
		return false
	}
	p.snake.Translate(p.dir)
	p.steps++
	return true
}

// Clear reports whether the snake shape fits with its head at head.
func (p *Propulsion) Clear(head Pos) bool {
	for _, off := range p.offsets {
		c := head.Plus(off)
		if !p.grid.InBounds(c) || p.grid.IsWall(c) {
			return false
		}
	}
	return true
}

// Run advances until blocked and returns the number of cells moved.
// It never exceeds the grid's larger dimension.
func (p *Propulsion) Run() int {
	limit := max(p.grid.Width(), p.grid.Height())
	for range limit {
		if !p.Advance() {
			break
		}
	}
	p.stop()
	return p.steps
}

func (p *Propulsion) stop() {
	p.active = false
	p.countdown = 0
	p.snake.setPropelled(false)
}
