// Package arcade implements the spend side of the coin economy: buying
// timed access to managed apps, stopping sessions, and maintaining the
// per-category app lists.
package arcade

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/grindstone/internal/llm"
	"github.com/abhisek/grindstone/internal/router"
	"github.com/abhisek/grindstone/internal/screen"
	"github.com/abhisek/grindstone/internal/session"
	"github.com/abhisek/grindstone/internal/ui/components"
	"github.com/abhisek/grindstone/internal/ui/layout"
	"github.com/abhisek/grindstone/internal/wallet"
)

type mode int

const (
	modeCategories mode = iota
	modeApps
	modeCoins
	modeManage
	modeAddName
	modeAddPath
)

type categorizedMsg struct {
	Applied bool
	Err     error
}

// ArcadeScreen is the coin-spending hub.
type ArcadeScreen struct {
	library  *session.Library
	sessions *session.Manager
	wallet   *wallet.Wallet
	provider llm.Provider

	mode     mode
	category session.Category
	selected int

	coinInput components.TextInput
	nameInput components.TextInput
	pathInput components.TextInput
	newName   string

	categorizing bool
	status       string
	statusGood   bool
}

var _ screen.Screen = (*ArcadeScreen)(nil)
var _ screen.KeyHintProvider = (*ArcadeScreen)(nil)
var _ screen.EscHandler = (*ArcadeScreen)(nil)

// New creates the arcade screen.
func New(library *session.Library, sessions *session.Manager, wal *wallet.Wallet, provider llm.Provider) *ArcadeScreen {
	return &ArcadeScreen{
		library:  library,
		sessions: sessions,
		wallet:   wal,
		provider: provider,
	}
}

func (a *ArcadeScreen) Title() string {
	return "Arcade"
}

// HandlesEsc claims escape for backing out of sub-modes; only the
// top-level category list lets escape pop the screen.
func (a *ArcadeScreen) HandlesEsc() bool {
	return a.mode != modeCategories
}

func (a *ArcadeScreen) KeyHints() []layout.KeyHint {
	switch a.mode {
	case modeManage:
		return []layout.KeyHint{
			{Key: "a", Description: "Add"},
			{Key: "d", Description: "Delete"},
			{Key: "Tab", Description: "Category"},
			{Key: "Esc", Description: "Back"},
		}
	case modeCoins, modeAddName, modeAddPath:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Cancel"},
		}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (a *ArcadeScreen) Init() tea.Cmd {
	// First visit triggers the one-time AI categorization of any apps
	// the user dumped in without sorting.
	if a.provider == nil {
		return nil
	}
	lib, provider, wal := a.library, a.provider, a.wallet
	return func() tea.Msg {
		applied, err := lib.AutoCategorize(context.Background(), provider, wal, false)
		return categorizedMsg{Applied: applied, Err: err}
	}
}

// categoryItems is the top-level menu: three categories, then actions.
func (a *ArcadeScreen) categoryItems() []string {
	items := make([]string, 0, 6)
	for _, c := range session.AllCategories() {
		items = append(items, fmt.Sprintf("%s %s (1 coin = %d min)", c.Icon(), c.DisplayName(), c.MinutesPerCoin()))
	}
	if a.sessions.Active() != nil {
		items = append(items, "⏹ STOP SESSION")
	}
	items = append(items, "🗂 MANAGE APPS")
	if a.provider != nil {
		items = append(items, "🤖 RE-CATEGORIZE APPS")
	}
	return items
}

func (a *ArcadeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case categorizedMsg:
		a.categorizing = false
		if msg.Err != nil {
			a.setStatus("Auto-categorize failed: "+msg.Err.Error(), false)
		} else if msg.Applied {
			a.setStatus("Apps sorted by AI", true)
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *ArcadeScreen) setStatus(s string, good bool) {
	a.status = s
	a.statusGood = good
}

func (a *ArcadeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch a.mode {
	case modeCategories:
		return a.updateCategories(key)
	case modeApps:
		return a.updateAppPicker(key)
	case modeCoins:
		return a.updateCoinEntry(msg, key)
	case modeManage:
		return a.updateManage(key)
	case modeAddName:
		return a.updateAddName(msg, key)
	case modeAddPath:
		return a.updateAddPath(msg, key)
	}
	return a, nil
}

func (a *ArcadeScreen) updateCategories(key string) (screen.Screen, tea.Cmd) {
	items := a.categoryItems()
	cats := session.AllCategories()

	switch key {
	case "esc":
		return a, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if a.selected > 0 {
			a.selected--
		}
	case "down", "j":
		if a.selected < len(items)-1 {
			a.selected++
		}
	case "enter":
		idx := a.selected
		if idx < len(cats) {
			a.category = cats[idx]
			if len(a.library.Apps(a.category)) == 0 {
				a.setStatus(fmt.Sprintf("No %s apps yet. Add one under MANAGE APPS.", a.category.DisplayName()), false)
				return a, nil
			}
			a.mode = modeApps
			a.selected = 0
			return a, nil
		}
		idx -= len(cats)
		if a.sessions.Active() != nil {
			if idx == 0 {
				a.sessions.Stop("Stopped by user")
				a.setStatus("Session stopped", true)
				a.selected = 0
				return a, nil
			}
			idx--
		}
		if idx == 0 {
			a.mode = modeManage
			a.selected = 0
			a.category = session.Game
			return a, nil
		}
		// Re-categorize
		if a.provider != nil && !a.categorizing {
			a.categorizing = true
			lib, provider, wal := a.library, a.provider, a.wallet
			return a, func() tea.Msg {
				applied, err := lib.AutoCategorize(context.Background(), provider, wal, true)
				return categorizedMsg{Applied: applied, Err: err}
			}
		}
	}
	return a, nil
}

func (a *ArcadeScreen) updateAppPicker(key string) (screen.Screen, tea.Cmd) {
	apps := a.library.Apps(a.category)

	switch key {
	case "esc":
		a.mode = modeCategories
		a.selected = 0
	case "up", "k":
		if a.selected > 0 {
			a.selected--
		}
	case "down", "j":
		if a.selected < len(apps)-1 {
			a.selected++
		}
	case "enter":
		if a.selected < len(apps) {
			a.coinInput = components.NewTextInput("coins", true, 4)
			a.mode = modeCoins
			return a, a.coinInput.Init()
		}
	}
	return a, nil
}

func (a *ArcadeScreen) updateCoinEntry(msg tea.KeyMsg, key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "esc":
		a.mode = modeApps
		return a, nil
	case "enter":
		coins, err := a.coinInput.NumericValue()
		if err != nil || coins <= 0 {
			a.setStatus("Enter a whole number of coins", false)
			return a, nil
		}
		apps := a.library.Apps(a.category)
		if a.selected >= len(apps) {
			a.mode = modeApps
			return a, nil
		}
		app := apps[a.selected]

		res, err := a.sessions.Start(a.category, float64(coins), app)
		if err != nil {
			a.setStatus(err.Error(), false)
			return a, nil
		}
		if res.LaunchErr != nil {
			a.setStatus(fmt.Sprintf("Session started (%d min) but launch failed: %v", res.Minutes, res.LaunchErr), false)
		} else {
			a.setStatus(fmt.Sprintf("%s unlocked for %d minutes. Enjoy!", app.Name, res.Minutes), true)
		}
		a.mode = modeCategories
		a.selected = 0
		return a, nil
	}

	var cmd tea.Cmd
	a.coinInput, cmd = a.coinInput.Update(msg)
	return a, cmd
}

func (a *ArcadeScreen) updateManage(key string) (screen.Screen, tea.Cmd) {
	apps := a.library.Apps(a.category)

	switch key {
	case "esc":
		a.mode = modeCategories
		a.selected = 0
	case "tab":
		cats := session.AllCategories()
		for i, c := range cats {
			if c == a.category {
				a.category = cats[(i+1)%len(cats)]
				break
			}
		}
		a.selected = 0
	case "up", "k":
		if a.selected > 0 {
			a.selected--
		}
	case "down", "j":
		if a.selected < len(apps)-1 {
			a.selected++
		}
	case "a":
		a.nameInput = components.NewTextInput("app name", false, 40)
		a.mode = modeAddName
		return a, a.nameInput.Init()
	case "d":
		if a.selected < len(apps) {
			a.library.Remove(a.category, apps[a.selected].ID)
			if a.selected > 0 {
				a.selected--
			}
		}
	}
	return a, nil
}

func (a *ArcadeScreen) updateAddName(msg tea.KeyMsg, key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "esc":
		a.mode = modeManage
		return a, nil
	case "enter":
		if a.nameInput.Value() == "" {
			return a, nil
		}
		a.newName = a.nameInput.Value()
		a.pathInput = components.NewTextInput("/path/to/executable (optional)", false, 120)
		a.mode = modeAddPath
		return a, a.pathInput.Init()
	}

	var cmd tea.Cmd
	a.nameInput, cmd = a.nameInput.Update(msg)
	return a, cmd
}

func (a *ArcadeScreen) updateAddPath(msg tea.KeyMsg, key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "esc":
		a.mode = modeManage
		return a, nil
	case "enter":
		if _, err := a.library.Add(a.category, a.newName, a.pathInput.Value()); err != nil {
			a.setStatus(err.Error(), false)
		} else {
			a.setStatus(fmt.Sprintf("Added %s to %s", a.newName, a.category.DisplayName()), true)
		}
		a.mode = modeManage
		return a, nil
	}

	var cmd tea.Cmd
	a.pathInput, cmd = a.pathInput.Update(msg)
	return a, cmd
}
