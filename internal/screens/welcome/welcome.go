// Package welcome implements the career track picker shown on first run
// and whenever the user switches tracks.
package welcome

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grindstone/internal/router"
	"github.com/abhisek/grindstone/internal/screen"
	"github.com/abhisek/grindstone/internal/track"
	"github.com/abhisek/grindstone/internal/ui/layout"
	"github.com/abhisek/grindstone/internal/ui/theme"
)

// TrackSelector activates a chosen career track.
type TrackSelector interface {
	SelectTrack(id track.ID) error
}

// WelcomeScreen lets the user pick a career track, then replaces the
// screen stack with the screen produced by next.
type WelcomeScreen struct {
	selector TrackSelector
	next     func() screen.Screen
	tracks   []track.Track
	selected int
	errMsg   string
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. current preselects the active track when
// the picker is opened for a switch rather than first-run onboarding.
func New(selector TrackSelector, current track.ID, next func() screen.Screen) *WelcomeScreen {
	tracks := track.All()
	selected := 0
	for i, t := range tracks {
		if t.ID == current {
			selected = i
			break
		}
	}
	return &WelcomeScreen{
		selector: selector,
		next:     next,
		tracks:   tracks,
		selected: selected,
	}
}

func (w *WelcomeScreen) Title() string {
	return "Choose Your Path"
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return nil
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return w, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if w.selected > 0 {
			w.selected--
		}
	case "down", "j":
		if w.selected < len(w.tracks)-1 {
			w.selected++
		}
	case "enter":
		trk := w.tracks[w.selected]
		if err := w.selector.SelectTrack(trk.ID); err != nil {
			w.errMsg = err.Error()
			return w, nil
		}
		next := w.next()
		return w, func() tea.Msg {
			return router.ResetScreenMsg{Screen: next}
		}
	}
	return w, nil
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width))
	sections = append(sections, theme.Subtitle.Render("Earn your screen time. Pick the career you're grinding toward."))
	sections = append(sections, "")

	for i, t := range w.tracks {
		line := fmt.Sprintf("%s  %s", t.Icon, t.Name)
		if i == w.selected {
			line = "▸ " + line
			sections = append(sections,
				lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line))
			sections = append(sections,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render("    "+t.Description))
			sections = append(sections,
				lipgloss.NewStyle().Foreground(theme.Secondary).Render("    "+strings.Join(t.Skills, " · ")))
		} else {
			sections = append(sections,
				lipgloss.NewStyle().Foreground(theme.Text).Render("  "+line))
		}
	}

	if w.errMsg != "" {
		sections = append(sections, "")
		sections = append(sections,
			lipgloss.NewStyle().Foreground(theme.Error).Render(w.errMsg))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
