package puzzle

import "testing"

func TestDecide(t *testing.T) {
	grass := Cell{InBounds: true}
	wall := Cell{InBounds: true, Ground: GroundWall}
	wallObj := Cell{InBounds: true, Object: ObjectWall}
	pit := Cell{InBounds: true, Ground: GroundPit}
	body := Cell{InBounds: true, Snake: true}
	banana := Cell{InBounds: true, Object: ObjectBanana}
	spicy := Cell{InBounds: true, Object: ObjectSpicy}
	exit := Cell{InBounds: true, Object: ObjectExit}

	tests := []struct {
		name     string
		at       Cell
		beyond   Cell
		exitOpen bool
		outcome  Outcome
		effect   Effect
	}{
		{"out of bounds", Cell{}, grass, true, OutcomeBlocked, EffectNone},
		{"wall ground", wall, grass, true, OutcomeBlocked, EffectNone},
		{"wall object", wallObj, grass, true, OutcomeBlocked, EffectNone},
		{"own body", body, grass, true, OutcomeBlocked, EffectNone},
		{"empty grass", grass, wall, true, OutcomeSimpleMove, EffectNone},
		{"pit", pit, grass, true, OutcomeFall, EffectNone},
		{"open exit", exit, grass, true, OutcomeWin, EffectNone},
		{"closed exit", exit, grass, false, OutcomeSimpleMove, EffectNone},
		{"push banana", banana, grass, true, OutcomePushFruit, EffectGrow},
		{"banana against wall", banana, wall, true, OutcomeConsumeInPlace, EffectGrow},
		{"banana against wall object", banana, wallObj, true, OutcomeConsumeInPlace, EffectGrow},
		{"spicy against wall", spicy, wall, true, OutcomeConsumeInPlace, EffectPropel},
		{"banana against fruit", banana, spicy, true, OutcomeBlocked, EffectNone},
		{"banana against exit", banana, exit, true, OutcomeBlocked, EffectNone},
		{"banana against body", banana, body, true, OutcomeBlocked, EffectNone},
		{"banana off grid", banana, Cell{}, true, OutcomeFruitFell, EffectGrow},
		{"banana into pit", banana, pit, true, OutcomeFruitFell, EffectGrow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := PushContext{Dir: Right, Target: P(2, 2), At: tt.at, Beyond: tt.beyond, ExitOpen: tt.exitOpen}
			d := Decide(ctx)
			if d.Outcome != tt.outcome {
				t.Errorf("outcome = %v, want %v", d.Outcome, tt.outcome)
			}
			if d.Effect != tt.effect {
				t.Errorf("effect = %v, want %v", d.Effect, tt.effect)
			}
			if d.Outcome == OutcomePushFruit && d.PushTo != P(3, 2) {
				t.Errorf("PushTo = %v, want (3,2)", d.PushTo)
			}
		})
	}
}

func TestReadContextTailVacates(t *testing.T) {
	g, err := NewGrid(NewLevel("loop", 5, 5, P(2, 2), Right))
	if err != nil {
		t.Fatal(err)
	}
	s := NewSnake(P(2, 2), Right)
	s.GrowNextStep()
	s.Advance(P(2, 3))
	s.Advance(P(1, 3))
	// segments: (1,3) (2,3) (2,2) (1,2); the tail at (1,2) moves away this step.
	ctx := ReadContext(g, s, Up, true)
	if ctx.Target != P(1, 2) {
		t.Fatalf("target = %v", ctx.Target)
	}
	if got := Decide(ctx).Outcome; got != OutcomeSimpleMove {
		t.Errorf("moving into the vacating tail: got %v, want SimpleMove", got)
	}

	s.GrowNextStep()
	if got := Decide(ReadContext(g, s, Up, true)).Outcome; got != OutcomeBlocked {
		t.Errorf("tail kept by growth should block: got %v", got)
	}
}

func TestEffectOf(t *testing.T) {
	if EffectOf(ObjectBanana) != EffectGrow || EffectOf(ObjectSpicy) != EffectPropel || EffectOf(ObjectExit) != EffectNone {
		t.Error("EffectOf mapping wrong")
	}
}
