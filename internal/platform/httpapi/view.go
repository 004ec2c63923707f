package httpapi

import (
	"github.com/vovakirdan/snake-puzzle/internal/levels"
	"github.com/vovakirdan/snake-puzzle/internal/puzzle"
)

// Point is a JSON grid position.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// LevelInfo describes a level of the pack.
type LevelInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	ExitOpen bool   `json:"exit_open"`
	Fruit    int    `json:"fruit"`
	Hint     string `json:"hint,omitempty"`
}

// SessionView is the JSON state of a session.
type SessionView struct {
	ID        string   `json:"id"`
	Player    string   `json:"player,omitempty"`
	LevelID   string   `json:"level_id"`
	State     string   `json:"state"`
	Face      string   `json:"face"`
	Head      Point    `json:"head"`
	Segments  []Point  `json:"segments"`
	Facing    string   `json:"facing"`
	Moves     int      `json:"moves"`
	Undos     int      `json:"undos"`
	Remaining int      `json:"remaining"`
	ExitOpen  bool     `json:"exit_open"`
	Ticks     uint64   `json:"ticks"`
	Outcome   string   `json:"outcome,omitempty"`
	Board     []string `json:"board"`
}

// MoveResponse is returned by the move endpoint.
type MoveResponse struct {
	Accepted bool        `json:"accepted"`
	Outcome  string      `json:"outcome"`
	Effect   string      `json:"effect,omitempty"`
	Reason   string      `json:"reason,omitempty"`
	Session  SessionView `json:"session"`
}

// UndoResponse is returned by the undo endpoint.
type UndoResponse struct {
	Undone  bool        `json:"undone"`
	Session SessionView `json:"session"`
}

func levelInfo(l levels.Level) LevelInfo {
	return LevelInfo{
		ID:       l.ID,
		Name:     l.Name,
		Width:    l.Width,
		Height:   l.Height,
		ExitOpen: l.ExitOpen,
		Fruit:    l.Count(puzzle.ObjectBanana) + l.Count(puzzle.ObjectSpicy),
		Hint:     l.Metadata["hint"],
	}
}

func point(p puzzle.Pos) Point {
	return Point{X: p.X, Y: p.Y}
}

// view must be called with e.mu held.
func (e *entry) view() SessionView {
	s := e.session
	segs := s.Segments()
	points := make([]Point, len(segs))
	for i, p := range segs {
		points[i] = point(p)
	}
	return SessionView{
		ID:        e.id,
		Player:    e.player,
		LevelID:   e.level.ID,
		State:     s.State().String(),
		Face:      s.Face().String(),
		Head:      point(s.HeadPosition()),
		Segments:  points,
		Facing:    s.Facing().String(),
		Moves:     s.Moves(),
		Undos:     s.Undos(),
		Remaining: s.Remaining(),
		ExitOpen:  s.ExitOpen(),
		Ticks:     s.Ticks(),
		Outcome:   string(e.outcome),
		Board:     board(s),
	}
}

// board draws the session as text rows: '#' wall, '_' pit, '.' grass,
// 'b' banana, 's' spicy, 'E' open exit, 'e' closed exit, 'X' wall object,
// '@' head and 'o' body.
func board(s *puzzle.Session) []string {
	w, h := s.Width(), s.Height()
	rows := make([][]byte, h)
	for y := range h {
		rows[y] = make([]byte, w)
		for x := range w {
			rows[y][x] = cellChar(s, puzzle.P(x, y))
		}
	}
	for i, p := range s.Segments() {
		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			continue
		}
		if i == 0 {
			rows[p.Y][p.X] = '@'
		} else if rows[p.Y][p.X] != '@' {
			rows[p.Y][p.X] = 'o'
		}
	}
	out := make([]string, h)
	for y, r := range rows {
		out[y] = string(r)
	}
	return out
}

func cellChar(s *puzzle.Session, p puzzle.Pos) byte {
	switch s.TileObjectAt(p) {
	case puzzle.ObjectBanana:
		return 'b'
	case puzzle.ObjectSpicy:
		return 's'
	case puzzle.ObjectWall:
		return 'X'
	case puzzle.ObjectExit:
		if s.ExitOpen() {
			return 'E'
		}
		return 'e'
	}
	switch s.GroundAt(p) {
	case puzzle.GroundWall:
		return '#'
	case puzzle.GroundPit:
		return '_'
	}
	return '.'
}
