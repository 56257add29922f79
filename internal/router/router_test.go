package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/grindstone/internal/screen"
)

type stubScreen struct {
	name   string
	inited bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.inited = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.name }
func (s *stubScreen) Title() string                           { return s.name }

func TestPushPop(t *testing.T) {
	a := &stubScreen{name: "a"}
	b := &stubScreen{name: "b"}

	r := New(a)
	if r.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", r.Depth())
	}

	r.Update(PushScreenMsg{Screen: b})
	if r.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", r.Depth())
	}
	if !b.inited {
		t.Error("pushed screen should be initialized")
	}
	if r.Active() != b {
		t.Error("active screen should be the pushed one")
	}

	r.Update(PopScreenMsg{})
	if r.Active() != a {
		t.Error("pop should restore the previous screen")
	}

	// Popping the last screen is a no-op.
	r.Update(PopScreenMsg{})
	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after popping the root, got %d", r.Depth())
	}
}

func TestResetDiscardsStack(t *testing.T) {
	a := &stubScreen{name: "a"}
	b := &stubScreen{name: "b"}
	c := &stubScreen{name: "c"}

	r := New(a)
	r.Push(b)

	r.Update(ResetScreenMsg{Screen: c})
	if r.Depth() != 1 {
		t.Fatalf("expected depth 1 after reset, got %d", r.Depth())
	}
	if r.Active() != c {
		t.Error("reset should install the new screen")
	}
	if !c.inited {
		t.Error("reset screen should be initialized")
	}
}
