package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grindstone/internal/router"
	"github.com/abhisek/grindstone/internal/screen"
	"github.com/abhisek/grindstone/internal/screens/home"
	"github.com/abhisek/grindstone/internal/screens/welcome"
	"github.com/abhisek/grindstone/internal/ui/layout"
)

// tickMsg drives the once-a-second housekeeping: day rollover, session
// expiry, and countdown rendering.
type tickMsg time.Time

// AppModel is the root Bubble Tea model.
type AppModel struct {
	svc    *Services
	router *router.Router
	width  int
	height int
}

// newAppModel routes first-run users to the track picker, everyone else
// straight to the dashboard.
func newAppModel(svc *Services) AppModel {
	deps := home.Deps{
		Engine:     svc.Engine,
		Wallet:     svc.Wallet,
		Motivation: svc.Motivation,
		Library:    svc.Library,
		Sessions:   svc.Sessions,
		Clock:      svc.Clock,
		Selector:   svc,
		Provider:   svc.Provider,
	}
	homeFactory := func() screen.Screen { return home.New(deps) }

	var initial screen.Screen
	if _, ok := svc.SelectedTrack(); ok {
		initial = homeFactory()
	} else {
		initial = welcome.New(svc, "", homeFactory)
	}

	return AppModel{
		svc:    svc,
		router: router.New(initial),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), tick())
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.svc.TickDay()
		m.svc.Sessions.CheckExpiry()
		// Forward so screens can react to the passing second, then
		// schedule the next wakeup.
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, tick())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscHandler); ok && h.HandlesEsc() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	snap := m.svc.Engine.Snapshot()
	header := layout.RenderHeader(title, m.svc.Wallet.Balance(), snap.DSAStreak, m.width)

	var footerHints []layout.KeyHint
	if provider, ok := active.(screen.KeyHintProvider); ok {
		footerHints = provider.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program over the wired services.
func Run(svc *Services) error {
	p := tea.NewProgram(newAppModel(svc))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
