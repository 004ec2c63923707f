package snakepuzzle

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/snake-puzzle/internal/config"
	"github.com/vovakirdan/snake-puzzle/internal/core"
	"github.com/vovakirdan/snake-puzzle/internal/levels"
	"github.com/vovakirdan/snake-puzzle/internal/puzzle"
	"github.com/vovakirdan/snake-puzzle/internal/registry"
)

func testConfig() config.PuzzleConfig {
	cfg := config.DefaultPuzzleConfig()
	cfg.Timing = config.TimingConfig{PropelTicks: 1, RestartDelayTicks: 1}
	cfg.Rules.UndoRestoresTiles = true
	return cfg
}

// corridor is a 6x3 grass level with the snake head at (2,1) facing right.
func corridor(id string, objects map[puzzle.Pos]puzzle.Object, ground map[puzzle.Pos]puzzle.Ground) levels.Level {
	l := puzzle.NewLevel(id, 6, 3, puzzle.P(2, 1), puzzle.Right)
	for p, o := range objects {
		l.Objects[p.X][p.Y] = o
	}
	for p, g := range ground {
		l.Ground[p.X][p.Y] = g
	}
	return levels.Level{Level: l}
}

func exitLevel(id string) levels.Level {
	return corridor(id, map[puzzle.Pos]puzzle.Object{puzzle.P(3, 1): puzzle.ObjectExit}, nil)
}

func newGame(t *testing.T, pack ...levels.Level) *Game {
	t.Helper()
	g, err := New(pack, testConfig(), nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	g.Reset(core.DefaultConfig())
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// run steps the game with an empty input n times and collects finished runs.
func run(g *Game, n int) []core.RunResult {
	var out []core.RunResult
	for range n {
		out = append(out, g.Step(frame()).Finished...)
	}
	return out
}

func TestNewRejectsEmptyPack(t *testing.T) {
	if _, err := New(nil, testConfig(), nil); !errors.Is(err, ErrEmptyPack) {
		t.Errorf("expected ErrEmptyPack, got %v", err)
	}
}

func TestWinAdvancesToNextLevel(t *testing.T) {
	g := newGame(t, exitLevel("first"), corridor("second", nil, nil))

	res := g.Step(frame(core.ActionRight))
	if len(res.Finished) != 1 {
		t.Fatalf("expected one finished run, got %v", res.Finished)
	}
	won := res.Finished[0]
	if won.Outcome != core.OutcomeWin || won.LevelID != "first" || won.Moves != 1 {
		t.Errorf("unexpected run result: %+v", won)
	}
	if s := g.Snapshot(); s.State != StateLevelCleared {
		t.Fatalf("expected level_cleared, got %s", s.State)
	}

	run(g, 3)
	s := g.Snapshot()
	if s.LevelID != "second" || s.Level != 2 {
		t.Errorf("expected second level, got %s (%d)", s.LevelID, s.Level)
	}
	if s.State != StatePlaying || s.Moves != 0 {
		t.Errorf("expected fresh level, got %+v", s)
	}
}

func TestAllLevelsCleared(t *testing.T) {
	g := newGame(t, exitLevel("only"))

	g.Step(frame(core.ActionRight))
	run(g, 3)

	if s := g.Snapshot(); s.State != StateAllCleared {
		t.Fatalf("expected all_cleared, got %s", s.State)
	}
	if st := g.State(); !st.Won || !st.GameOver {
		t.Errorf("expected won and game over, got %+v", st)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "All levels cleared") {
		t.Error("expected all-cleared overlay")
	}

	g.Step(frame(core.ActionRestart))
	if s := g.Snapshot(); s.State != StatePlaying || s.Level != 1 {
		t.Errorf("expected restart from level 1, got %+v", s)
	}
}

func TestDeathRecordsAndRestarts(t *testing.T) {
	g := newGame(t, corridor("pit", nil, map[puzzle.Pos]puzzle.Ground{puzzle.P(3, 1): puzzle.GroundPit}))

	finished := g.Step(frame(core.ActionRight)).Finished
	if s := g.Snapshot(); len(finished) == 0 && s.State != StateDead {
		t.Fatalf("expected dead after falling, got %s", s.State)
	}
	finished = append(finished, run(g, 5)...)

	if len(finished) != 1 || finished[0].Outcome != core.OutcomeDeath {
		t.Fatalf("expected one death, got %+v", finished)
	}
	s := g.Snapshot()
	if s.Head != puzzle.P(2, 1) || s.Moves != 0 || s.State != StatePlaying {
		t.Errorf("expected restarted level, got %+v", s)
	}
}

func TestFruitFellOutcome(t *testing.T) {
	g := newGame(t, corridor("drop",
		map[puzzle.Pos]puzzle.Object{puzzle.P(3, 1): puzzle.ObjectBanana},
		map[puzzle.Pos]puzzle.Ground{puzzle.P(4, 1): puzzle.GroundPit},
	))

	finished := g.Step(frame(core.ActionRight)).Finished
	finished = append(finished, run(g, 5)...)

	if len(finished) != 1 || finished[0].Outcome != core.OutcomeFruitFell {
		t.Fatalf("expected fruit_fell, got %+v", finished)
	}
	if got := g.Session().TileObjectAt(puzzle.P(3, 1)); got != puzzle.ObjectBanana {
		t.Errorf("expected banana restored by restart, got %v", got)
	}
}

func TestRestartRecordsAbandon(t *testing.T) {
	g := newGame(t, corridor("open", nil, nil))

	if res := g.Step(frame(core.ActionRestart)); len(res.Finished) != 0 {
		t.Errorf("restart without moves should not record, got %+v", res.Finished)
	}

	g.Step(frame(core.ActionRight))
	res := g.Step(frame(core.ActionRestart))
	if len(res.Finished) != 1 || res.Finished[0].Outcome != core.OutcomeAbandon || res.Finished[0].Moves != 1 {
		t.Fatalf("expected abandon after one move, got %+v", res.Finished)
	}
	if s := g.Snapshot(); s.Head != puzzle.P(2, 1) {
		t.Errorf("expected head back at start, got %v", s.Head)
	}
}

func TestAbandon(t *testing.T) {
	g := newGame(t, corridor("open", nil, nil))
	g.Step(frame(core.ActionDown))

	got := g.Abandon()
	if len(got) != 1 || got[0].Outcome != core.OutcomeAbandon {
		t.Errorf("expected abandon, got %+v", got)
	}
}

func TestUndoAction(t *testing.T) {
	g := newGame(t, corridor("open", nil, nil))

	g.Step(frame(core.ActionRight))
	if s := g.Snapshot(); s.Head != puzzle.P(3, 1) {
		t.Fatalf("expected head at (3,1), got %v", s.Head)
	}

	g.Step(frame(core.ActionUndo))
	s := g.Snapshot()
	if s.Head != puzzle.P(2, 1) {
		t.Errorf("expected head back at (2,1), got %v", s.Head)
	}
	if s.Undos != 1 || s.Moves != 1 {
		t.Errorf("expected 1 move and 1 undo, got %d/%d", s.Moves, s.Undos)
	}
}

func TestUndoTakesPriorityOverDirection(t *testing.T) {
	g := newGame(t, corridor("open", nil, nil))
	g.Step(frame(core.ActionRight))

	g.Step(frame(core.ActionUndo, core.ActionDown))
	if s := g.Snapshot(); s.Head != puzzle.P(2, 1) {
		t.Errorf("expected undo only, head at %v", s.Head)
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g := newGame(t, corridor("open", nil, nil))

	g.Step(frame(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	g.Step(frame(core.ActionRight))
	if s := g.Snapshot(); s.Head != puzzle.P(2, 1) || s.State != StatePaused {
		t.Errorf("input should be ignored while paused, got %+v", s)
	}

	g.Step(frame(core.ActionPause))
	g.Step(frame(core.ActionRight))
	if s := g.Snapshot(); s.Head != puzzle.P(3, 1) {
		t.Errorf("expected move after unpause, got %v", s.Head)
	}
}

func TestSelectLevel(t *testing.T) {
	g := newGame(t, corridor("a", nil, nil), corridor("b", nil, nil))

	if err := g.SelectLevel("b"); err != nil {
		t.Fatalf("SelectLevel failed: %v", err)
	}
	if s := g.Snapshot(); s.LevelID != "b" {
		t.Errorf("expected level b, got %s", s.LevelID)
	}
	if err := g.SelectLevel("missing"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestUpdateLevelReloadsCurrent(t *testing.T) {
	g := newGame(t, corridor("edit", nil, nil))
	g.Step(frame(core.ActionRight))

	edited := corridor("edit", map[puzzle.Pos]puzzle.Object{puzzle.P(4, 1): puzzle.ObjectBanana}, nil)
	if err := g.UpdateLevel(edited); err != nil {
		t.Fatalf("UpdateLevel failed: %v", err)
	}

	s := g.Snapshot()
	if s.Head != puzzle.P(2, 1) || s.Moves != 0 || s.Remaining != 1 {
		t.Errorf("expected reloaded level, got %+v", s)
	}

	if err := g.UpdateLevel(corridor("extra", nil, nil)); err != nil {
		t.Fatalf("UpdateLevel failed: %v", err)
	}
	if n := len(g.Levels()); n != 2 {
		t.Errorf("expected appended level, got %d levels", n)
	}
}

func TestTooSmallWindow(t *testing.T) {
	g := newGame(t, corridor("open", nil, nil))
	g.Reset(core.RuntimeConfig{ScreenW: 10, ScreenH: 5, TickRate: 60})

	if s := g.Snapshot(); s.State != StatePausedSmall {
		t.Fatalf("expected paused_small_window, got %s", s.State)
	}
	g.Step(frame(core.ActionRight))
	if s := g.Snapshot(); s.Head != puzzle.P(2, 1) {
		t.Errorf("input should be ignored in a small window, got %v", s.Head)
	}

	g.Resize(80, 24)
	if s := g.Snapshot(); s.State != StatePlaying {
		t.Errorf("expected playing after resize, got %s", s.State)
	}
}

func TestRender(t *testing.T) {
	g := newGame(t,
		corridor("look", map[puzzle.Pos]puzzle.Object{puzzle.P(4, 1): puzzle.ObjectSpicy}, nil),
		corridor("next", nil, nil),
	)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if hud := screen.Row(0); !strings.Contains(hud, "Level 1/2") || !strings.Contains(hud, "Fruit: 1") {
		t.Errorf("unexpected HUD: %q", hud)
	}
	out := screen.String()
	for _, want := range []string{"@", "*", "┌", footerHint} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestDeterminism(t *testing.T) {
	pack := []levels.Level{exitLevel("x"), corridor("y", nil, nil)}
	g1 := newGame(t, pack...)
	g2 := newGame(t, pack...)

	script := map[int]core.Action{3: core.ActionDown, 5: core.ActionRight, 7: core.ActionUndo, 9: core.ActionRight}
	for i := range 30 {
		in := frame()
		if a, ok := script[i]; ok {
			in.Set(a)
		}
		g1.Step(in)
		g2.Step(in)
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
		t.Errorf("snapshots diverged:\n%+v\n%+v", s1, s2)
	}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatal("snakepuzzle not registered")
	}
	game, err := registry.Create(GameID, registry.Options{Pace: "instant"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	g, ok := game.(*Game)
	if !ok {
		t.Fatalf("unexpected game type %T", game)
	}
	if len(g.Levels()) == 0 {
		t.Error("expected the built-in pack")
	}
}
