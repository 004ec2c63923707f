package snakepuzzle

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/snake-puzzle/internal/core"
	"github.com/vovakirdan/snake-puzzle/internal/puzzle"
)

// Board cells are two columns wide so the grid looks square in a terminal.
const cellW = 2

const (
	hudRows    = 2
	footerRows = 1
)

const footerHint = "arrows/wasd move  u undo  r restart  p pause  q quit"

// glyph is the two-column drawing of one board cell.
type glyph struct {
	left, right rune
	color       core.Color
}

var (
	glyphGrass  = glyph{'·', ' ', core.ColorDarkGray}
	glyphWall   = glyph{'█', '█', core.ColorGray}
	glyphPit    = glyph{' ', ' ', core.ColorDefault}
	glyphBanana = glyph{')', ' ', core.ColorYellow}
	glyphSpicy  = glyph{'*', ' ', core.ColorRed}
	glyphBlock  = glyph{'▓', '▓', core.ColorBrown}
	glyphBody   = glyph{'o', ' ', core.ColorGreen}
)

var faceRunes = map[puzzle.Face]rune{
	puzzle.FaceNormal:    '@',
	puzzle.FacePropelled: '&',
	puzzle.FaceEating:    'O',
	puzzle.FaceDead:      'x',
	puzzle.FaceFruitFell: '?',
	puzzle.FaceWin:       '$',
}

// boardSize returns the screen footprint of the board including its frame.
func (g *Game) boardSize() (int, int) {
	return g.session.Width()*cellW + 2, g.session.Height() + 2
}

func (g *Game) updateTooSmall() {
	w, h := g.boardSize()
	g.tooSmall = g.screenW < w || g.screenH < h+hudRows+footerRows
}

// Render draws the game to the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	if g.tooSmall {
		w, h := g.boardSize()
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", w, h+hudRows+footerRows))
		return
	}
	if g.allCleared {
		g.renderOverlay(dst, "All levels cleared", "Press R to play again")
		return
	}

	area := core.NewRect(0, hudRows, dst.Width(), dst.Height()-hudRows-footerRows)
	bw, bh := g.boardSize()
	frame := core.CenterIn(area, bw, bh)
	frameColor := core.ColorGray
	if g.session.ExitOpen() {
		frameColor = core.ColorCyan
	}
	dst.DrawBox(frame, frameColor)

	origin := frame.Inset(1)
	g.renderBoard(dst, origin)
	g.renderSnake(dst, origin)

	dst.DrawTextCentered(dst.Height()-1, footerHint, core.ColorDarkGray)

	switch {
	case g.levelCleared:
		g.renderOverlay(dst, "Level cleared!", g.pack[g.index].Name)
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	case g.session.State() == puzzle.StateDead:
		if g.session.Face() == puzzle.FaceFruitFell {
			g.renderOverlay(dst, "The fruit fell!", "Restarting...")
		} else {
			g.renderOverlay(dst, "You fell!", "Restarting...")
		}
	}
}

// renderHUD draws the status line and separator.
func (g *Game) renderHUD(dst *core.Screen) {
	lvl := g.pack[g.index]
	hud := fmt.Sprintf(" Snake Puzzle: %s  Level %d/%d  Moves: %d  Undos: %d  Fruit: %d",
		lvl.Name, g.index+1, len(g.pack), g.session.Moves(), g.session.Undos(), g.session.Remaining())
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─', core.ColorDefault)
}

func (g *Game) renderBoard(dst *core.Screen, origin core.Rect) {
	for y := range g.session.Height() {
		for x := range g.session.Width() {
			p := puzzle.P(x, y)
			drawGlyph(dst, origin, p, g.cellGlyph(p))
		}
	}
}

func (g *Game) cellGlyph(p puzzle.Pos) glyph {
	switch g.session.TileObjectAt(p) {
	case puzzle.ObjectBanana:
		return glyphBanana
	case puzzle.ObjectSpicy:
		return glyphSpicy
	case puzzle.ObjectWall:
		return glyphBlock
	case puzzle.ObjectExit:
		if g.session.ExitOpen() {
			return glyph{'[', ']', core.ColorMagenta}
		}
		return glyph{'[', ']', core.ColorDarkGray}
	}
	switch g.session.GroundAt(p) {
	case puzzle.GroundWall:
		return glyphWall
	case puzzle.GroundPit:
		return glyphPit
	}
	return glyphGrass
}

func (g *Game) renderSnake(dst *core.Screen, origin core.Rect) {
	body := glyphBody
	head := glyph{faceRunes[g.session.Face()], ' ', core.ColorBrightGreen}
	switch g.session.Face() {
	case puzzle.FaceDead, puzzle.FaceFruitFell:
		body.color = core.ColorRed
		head.color = core.ColorBrightRed
	case puzzle.FacePropelled:
		head.color = core.ColorOrange
	}

	segs := g.session.Segments()
	// Tail first so the head wins on overlapping cells.
	for i := len(segs) - 1; i >= 1; i-- {
		drawGlyph(dst, origin, segs[i], body)
	}
	if len(segs) > 0 {
		drawGlyph(dst, origin, segs[0], head)
	}
}

// drawGlyph draws one board cell. Cells outside the board are skipped.
func drawGlyph(dst *core.Screen, origin core.Rect, p puzzle.Pos, gl glyph) {
	sx := origin.X + p.X*cellW
	sy := origin.Y + p.Y
	if !origin.Contains(sx, sy) {
		return
	}
	dst.SetColored(sx, sy, gl.left, gl.color)
	dst.SetColored(sx+1, sy, gl.right, gl.color)
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(utf8.RuneCountInString(line1), utf8.RuneCountInString(line2)) + 4
	box := core.CenterIn(dst.Bounds(), boxW, 5)
	for y := box.Y; y < box.Bottom(); y++ {
		dst.DrawHLine(box.X, y, box.W, ' ', core.ColorDefault)
	}
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}
