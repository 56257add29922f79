package welcome

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/grindstone/internal/router"
	"github.com/abhisek/grindstone/internal/screen"
	"github.com/abhisek/grindstone/internal/track"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home" }
func (s *stubScreen) Title() string                           { return "Home" }

type recordingSelector struct {
	selected []track.ID
	err      error
}

func (r *recordingSelector) SelectTrack(id track.ID) error {
	if r.err != nil {
		return r.err
	}
	r.selected = append(r.selected, id)
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func TestSelectFirstTrack(t *testing.T) {
	sel := &recordingSelector{}
	w := New(sel, "", func() screen.Screen { return &stubScreen{} })

	_, cmd := w.Update(enter())
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}

	if len(sel.selected) != 1 || sel.selected[0] != track.All()[0].ID {
		t.Fatalf("expected first track selected, got %v", sel.selected)
	}

	msg := cmd()
	if _, ok := msg.(router.ResetScreenMsg); !ok {
		t.Fatalf("expected ResetScreenMsg, got %T", msg)
	}
}

func TestNavigateThenSelect(t *testing.T) {
	sel := &recordingSelector{}
	w := New(sel, "", func() screen.Screen { return &stubScreen{} })

	w.Update(keyPress('j'))
	w.Update(keyPress('j'))
	_, cmd := w.Update(enter())
	if cmd == nil {
		t.Fatal("expected a navigation command")
	}

	want := track.All()[2].ID
	if len(sel.selected) != 1 || sel.selected[0] != want {
		t.Fatalf("expected %s selected, got %v", want, sel.selected)
	}
}

func TestCurrentTrackPreselected(t *testing.T) {
	sel := &recordingSelector{}
	current := track.All()[3].ID
	w := New(sel, current, func() screen.Screen { return &stubScreen{} })

	if w.selected != 3 {
		t.Fatalf("expected cursor on index 3, got %d", w.selected)
	}
}

func TestSelectorErrorShown(t *testing.T) {
	sel := &recordingSelector{err: track.ErrUnknownTrack}
	w := New(sel, "", func() screen.Screen { return &stubScreen{} })

	_, cmd := w.Update(enter())
	if cmd != nil {
		t.Error("selection failure should not navigate")
	}

	view := w.View(100, 40)
	if !strings.Contains(view, track.ErrUnknownTrack.Error()) {
		t.Error("error message should be rendered")
	}
}

func TestViewListsAllTracks(t *testing.T) {
	w := New(&recordingSelector{}, "", func() screen.Screen { return &stubScreen{} })

	view := w.View(120, 40)
	for _, trk := range track.All() {
		if !strings.Contains(view, trk.Name) {
			t.Errorf("view missing track %s", trk.Name)
		}
	}
}
