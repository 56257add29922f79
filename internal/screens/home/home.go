// Package home implements the main dashboard: daily quote, streaks,
// countdown to midnight, and navigation into the quiz, arcade and history.
package home

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/grindstone/internal/challenge"
	"github.com/abhisek/grindstone/internal/datetime"
	"github.com/abhisek/grindstone/internal/llm"
	"github.com/abhisek/grindstone/internal/motivation"
	"github.com/abhisek/grindstone/internal/router"
	"github.com/abhisek/grindstone/internal/screen"
	"github.com/abhisek/grindstone/internal/screens/arcade"
	"github.com/abhisek/grindstone/internal/screens/history"
	"github.com/abhisek/grindstone/internal/screens/quiz"
	"github.com/abhisek/grindstone/internal/screens/welcome"
	"github.com/abhisek/grindstone/internal/session"
	"github.com/abhisek/grindstone/internal/ui/components"
	"github.com/abhisek/grindstone/internal/wallet"
)

// Deps carries the services the dashboard and its child screens need.
type Deps struct {
	Engine     *challenge.Engine
	Wallet     *wallet.Wallet
	Motivation *motivation.Service
	Library    *session.Library
	Sessions   *session.Manager
	Clock      datetime.Clock
	Selector   welcome.TrackSelector
	Provider   llm.Provider
}

type quoteMsg struct {
	Quote string
}

// HomeScreen is the main dashboard.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string
	status     string
	statusGood bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the dashboard.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	h.menuLabels = []string{"DAILY QUIZ", "DSA CHALLENGE DONE", "ARCADE", "HISTORY", "SWITCH TRACK", "EXIT"}

	items := []components.MenuItem{
		{Label: h.menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: quiz.New(deps.Engine)}
			}
		}},
		{Label: h.menuLabels[1], Action: func() tea.Cmd {
			h.completeDSA()
			return nil
		}},
		{Label: h.menuLabels[2], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: arcade.New(deps.Library, deps.Sessions, deps.Wallet, deps.Provider),
				}
			}
		}},
		{Label: h.menuLabels[3], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.Wallet)}
			}
		}},
		{Label: h.menuLabels[4], Action: func() tea.Cmd {
			current := deps.Engine.Snapshot().Track.ID
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: welcome.New(deps.Selector, current, func() screen.Screen {
						return New(deps)
					}),
				}
			}
		}},
		{Label: h.menuLabels[5], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	return h
}

// completeDSA marks today's DSA challenge and records the outcome in the
// status line.
func (h *HomeScreen) completeDSA() {
	streak, err := h.deps.Engine.CompleteDSA()
	switch {
	case err == nil:
		h.status = fmt.Sprintf("+2 coins! DSA streak: %d day(s)", streak)
		h.statusGood = true
	case errors.Is(err, challenge.ErrAlreadyCompleted):
		h.status = "DSA challenge already completed today"
		h.statusGood = false
	default:
		h.status = err.Error()
		h.statusGood = false
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.deps.Motivation == nil || !h.deps.Motivation.NeedsRefresh() {
		return nil
	}
	m := h.deps.Motivation
	return func() tea.Msg {
		return quoteMsg{Quote: m.Refresh(context.Background())}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(quoteMsg); ok {
		// The quote lives in the motivation service; receiving the
		// message just triggers a re-render.
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	snap := h.deps.Engine.Snapshot()
	if !snap.HasTrack {
		return "Home"
	}
	return snap.Track.Icon + " " + snap.Track.Name
}
