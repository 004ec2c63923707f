package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/snake-puzzle/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreate(t *testing.T) {
	var got Options
	Register(GameInfo{ID: "zz-stub", Title: "Stub"}, func(opts Options) (Game, error) {
		got = opts
		return &stubGame{id: "zz-stub"}, nil
	})

	if !Exists("zz-stub") {
		t.Fatal("registered game should exist")
	}
	g, err := Create("zz-stub", Options{StartLevel: "lvl"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if g.ID() != "zz-stub" || got.StartLevel != "lvl" {
		t.Errorf("factory not called with options: %+v", got)
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz-stub" && info.Title == "Stub" {
			found = true
		}
	}
	if !found {
		t.Error("List should include the registered game")
	}
}

func TestCreateErrors(t *testing.T) {
	if _, err := Create("no-such-game", Options{}); err == nil || !strings.Contains(err.Error(), "unknown game") {
		t.Errorf("unexpected error: %v", err)
	}

	boom := errors.New("boom")
	Register(GameInfo{ID: "zz-broken"}, func(Options) (Game, error) { return nil, boom })
	if _, err := Create("zz-broken", Options{}); !errors.Is(err, boom) {
		t.Errorf("factory error should be wrapped, got %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(GameInfo{ID: "zz-dup"}, func(Options) (Game, error) { return &stubGame{}, nil })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(GameInfo{ID: "zz-dup"}, func(Options) (Game, error) { return &stubGame{}, nil })
}
