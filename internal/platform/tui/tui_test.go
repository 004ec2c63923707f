package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-puzzle/internal/config"
	"github.com/vovakirdan/snake-puzzle/internal/core"
	"github.com/vovakirdan/snake-puzzle/internal/games/snakepuzzle"
	"github.com/vovakirdan/snake-puzzle/internal/levels"
	"github.com/vovakirdan/snake-puzzle/internal/puzzle"
	"github.com/vovakirdan/snake-puzzle/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{runes("s"), core.ActionDown, false},
		{runes("a"), core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{runes("u"), core.ActionUndo, false},
		{tea.KeyMsg{Type: tea.KeyBackspace}, core.ActionUndo, false},
		{runes("r"), core.ActionRestart, false},
		{runes("p"), core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{runes("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runes("x"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runes("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionRuns},
		{runes("b"), MenuActionBack},
		{runes("q"), MenuActionQuit},
		{runes("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestPaletteRenderKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetColored(2, 0, '@', core.ColorBrightGreen)
	s.SetColored(3, 1, '#', core.ColorBrown)

	out := DefaultTheme().Board.Render(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, want := range []string{"ab", "@", "#"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestPaletteRenderSpans(t *testing.T) {
	s := core.NewScreen(5, 2)
	s.SetColored(1, 0, 'o', core.ColorGreen)
	s.SetColored(2, 0, 'o', core.ColorGreen)
	s.SetColored(3, 0, '@', core.ColorBrightGreen)
	s.SetColored(0, 1, ')', core.ColorYellow)

	tests := []struct {
		name    string
		palette Palette
	}{
		{"empty", Palette{}},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, want := tt.palette.Render(s), " oo@ \n)    "; got != want {
				t.Errorf("Render = %q, want %q", got, want)
			}
		})
	}
}

func TestDefaultPaletteCoversBoardColors(t *testing.T) {
	p := DefaultPalette()
	for _, c := range []core.Color{
		core.ColorGreen, core.ColorBrightGreen, core.ColorOrange, core.ColorBrightRed,
		core.ColorYellow, core.ColorRed, core.ColorMagenta,
		core.ColorDarkGray, core.ColorGray, core.ColorBrown, core.ColorCyan,
		core.ColorWhite, core.ColorBrightWhite,
	} {
		if _, ok := p[c]; !ok {
			t.Errorf("palette has no entry for color %d", c)
		}
	}
	if _, ok := p[core.ColorDefault]; ok {
		t.Error("default color should render unstyled")
	}
}

func testPack() []levels.Level {
	open := puzzle.NewLevel("open", 6, 3, puzzle.P(2, 1), puzzle.Right)
	exit := puzzle.NewLevel("exit", 6, 3, puzzle.P(2, 1), puzzle.Right)
	exit.Objects[3][1] = puzzle.ObjectExit
	return []levels.Level{
		{Level: open, Metadata: map[string]string{"hint": "walk around"}},
		{Level: exit},
	}
}

func testGame(t *testing.T) *snakepuzzle.Game {
	t.Helper()
	cfg := config.DefaultPuzzleConfig()
	cfg.Timing = config.TimingConfig{PropelTicks: 1, RestartDelayTicks: 1}
	g, err := snakepuzzle.New(testPack(), cfg, nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return g
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func step(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelSavesFinishedRuns(t *testing.T) {
	store := openStore(t)
	g := testGame(t)
	if err := g.SelectLevel("exit"); err != nil {
		t.Fatal(err)
	}

	m := NewModel(g, core.DefaultConfig(), Options{Store: store, Player: "tester"})
	m.Init()
	m = step(m, tea.KeyMsg{Type: tea.KeyRight})
	m = step(m, TickMsg{})

	runs, err := store.RecentRuns("exit", 10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Outcome != core.OutcomeWin || runs[0].Player != "tester" {
		t.Errorf("unexpected runs: %+v", runs)
	}
	if !strings.Contains(m.View(), "Level cleared") {
		t.Error("expected level cleared overlay")
	}
}

func TestModelBackRecordsAbandon(t *testing.T) {
	store := openStore(t)
	m := NewModel(testGame(t), core.DefaultConfig(), Options{Store: store})
	m.Init()
	m = step(m, tea.KeyMsg{Type: tea.KeyDown})
	m = step(m, TickMsg{})
	m = step(m, tea.KeyMsg{Type: tea.KeyEsc})

	if !m.BackToMenu() || m.IsQuitting() {
		t.Fatalf("expected back to menu")
	}
	runs, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Outcome != core.OutcomeAbandon || runs[0].Player != "local" {
		t.Errorf("unexpected runs: %+v", runs)
	}
}

func TestModelLevelChange(t *testing.T) {
	g := testGame(t)
	m := NewModel(g, core.DefaultConfig(), Options{})
	m.Init()

	edited := testPack()[0]
	edited.Objects[4][1] = puzzle.ObjectBanana
	m = step(m, LevelChangedMsg{Path: "levels/open.yaml", Level: edited})
	if got := g.Session().Remaining(); got != 1 {
		t.Errorf("expected reloaded level with one fruit, got %d", got)
	}
	if !strings.Contains(m.View(), "reloaded open") {
		t.Error("expected reload status line")
	}

	m = step(m, LevelChangedMsg{Path: "levels/bad.yaml", Err: errors.New("boom")})
	if !strings.Contains(m.View(), "bad.yaml: boom") {
		t.Error("expected error status line")
	}
}

func TestMenuModel(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveRun("p", core.RunResult{LevelID: "exit", Outcome: core.OutcomeWin, Moves: 1}); err != nil {
		t.Fatal(err)
	}

	m := NewMenuModel(testPack(), store, core.DefaultConfig())
	view := m.View()
	if !strings.Contains(view, "walk around") || !strings.Contains(view, "best 1") {
		t.Errorf("menu view missing hint or best result:\n%s", view)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Selected() != "exit" {
		t.Errorf("expected exit selected, got %q", m.Selected())
	}

	next, _ = NewMenuModel(testPack(), nil, core.DefaultConfig()).Update(tea.KeyMsg{Type: tea.KeyTab})
	if !next.(MenuModel).WantsRuns() {
		t.Error("expected tab to open runs")
	}
}

func TestRunsModel(t *testing.T) {
	store := openStore(t)
	for _, r := range []core.RunResult{
		{LevelID: "open", Outcome: core.OutcomeDeath, Moves: 3},
		{LevelID: "open", Outcome: core.OutcomeWin, Moves: 5},
		{LevelID: "other", Outcome: core.OutcomeAbandon, Moves: 2},
	} {
		if _, err := store.SaveRun("p", r); err != nil {
			t.Fatal(err)
		}
	}

	m := NewRunsModel(store, []string{"open", "exit"}, 100, 30, 60)
	if got := len(m.pages); got != 4 {
		t.Fatalf("expected overview plus 3 levels, got %v", m.pages)
	}
	if got := len(m.Rows()); got != 2 {
		t.Errorf("expected 2 overview rows, got %d", got)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RunsModel)
	rows := m.Rows()
	if len(rows) != 2 || rows[0][2] != string(core.OutcomeWin) {
		t.Errorf("expected newest run first, got %v", rows)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(RunsModel).IsGoingBack() {
		t.Error("expected esc to go back")
	}
}

func TestSessionModelFlow(t *testing.T) {
	cfg := config.DefaultPuzzleConfig()
	cfg.Timing = config.TimingConfig{PropelTicks: 1, RestartDelayTicks: 1}
	m := NewSessionModel(SessionDeps{Pack: testPack(), Puzzle: cfg}, core.DefaultConfig(), "guest")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SessionModel)
	if m.view != viewGame || m.game == nil {
		t.Fatal("expected game view after selecting a level")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(SessionModel)
	if m.view != viewMenu {
		t.Fatal("expected menu after back")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(SessionModel)
	if m.view != viewRuns || !strings.Contains(m.View(), "disabled") {
		t.Errorf("expected runs view without store, got view %d", m.view)
	}
}
