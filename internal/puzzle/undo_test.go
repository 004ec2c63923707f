package puzzle

import "testing"

func TestHistoryLIFO(t *testing.T) {
	h := NewHistory()
	if _, ok := h.Pop(); ok {
		t.Fatal("Pop on empty history should fail")
	}

	s := NewSnake(P(2, 2), Right)
	first := s.Snapshot()
	h.Push(first)
	s.Advance(P(3, 2))
	h.Push(s.Snapshot())

	if h.Len() != 2 {
		t.Fatalf("Len = %d, want 2", h.Len())
	}
	got, _ := h.Pop()
	if got.Head != P(3, 2) {
		t.Errorf("first pop head = %v, want (3,2)", got.Head)
	}
	got, _ = h.Pop()
	if got.Head != P(2, 2) {
		t.Errorf("second pop head = %v, want (2,2)", got.Head)
	}
}

func TestHistoryKeepsOwnCopy(t *testing.T) {
	h := NewHistory()
	snap := NewSnake(P(2, 2), Right).Snapshot()
	snap.Tiles = []TileDelta{{Pos: P(1, 1), Object: ObjectBanana}}
	h.Push(snap)

	snap.Segments[0] = P(9, 9)
	snap.Tiles[0].Object = ObjectSpicy

	peek, ok := h.Peek()
	if !ok {
		t.Fatal("Peek failed")
	}
	if peek.Segments[0] != P(2, 2) || peek.Tiles[0].Object != ObjectBanana {
		t.Errorf("stored snapshot aliased caller data: %+v", peek)
	}

	h.Clear()
	if h.Len() != 0 {
		t.Errorf("Len after Clear = %d", h.Len())
	}
}
