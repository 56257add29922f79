package arcade

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/grindstone/internal/ui/components"
	"github.com/abhisek/grindstone/internal/ui/layout"
	"github.com/abhisek/grindstone/internal/ui/theme"
)

func (a *ArcadeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Gold).Bold(true).Width(cw).Align(lipgloss.Center).
		Render(fmt.Sprintf("◉ %s coins available", layout.FormatCoins(a.wallet.Balance()))))

	if active := a.sessions.Active(); active != nil {
		remaining := active.Remaining(time.Now())
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Secondary).Width(cw).Align(lipgloss.Center).
			Render(fmt.Sprintf("Active: %s %s — %d:%02d left",
				strings.ToUpper(string(active.Category)), active.AppName,
				int(remaining.Minutes()), int(remaining.Seconds())%60)))
	}

	switch a.mode {
	case modeCategories:
		sections = append(sections, a.viewCategories(cw))
	case modeApps:
		sections = append(sections, a.viewAppPicker(cw))
	case modeCoins:
		sections = append(sections, a.viewCoinEntry(cw))
	case modeManage:
		sections = append(sections, a.viewManage(cw))
	case modeAddName:
		sections = append(sections, components.PanelCard(
			"New app name:\n\n"+a.nameInput.View(), cw))
	case modeAddPath:
		sections = append(sections, components.PanelCard(
			fmt.Sprintf("Executable path for %s:\n\n%s", a.newName, a.pathInput.View()), cw))
	}

	if a.categorizing {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.TextDim).Width(cw).Align(lipgloss.Center).
			Render("🤖 Auto-categorizing..."))
	}

	if a.status != "" {
		style := lipgloss.NewStyle().Foreground(theme.Error)
		if a.statusGood {
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		sections = append(sections, style.Width(cw).Align(lipgloss.Center).Render(a.status))
	}

	content := strings.Join(sections, "\n\n")
	return components.PanelFrame(content, width, height)
}

func (a *ArcadeScreen) viewCategories(cw int) string {
	var buttons []string
	for i, label := range a.categoryItems() {
		buttons = append(buttons, components.PanelButton(label, i == a.selected, 34))
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

func (a *ArcadeScreen) viewAppPicker(cw int) string {
	apps := a.library.Apps(a.category)
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("%s %s", a.category.Icon(), a.category.DisplayName())))
	lines = append(lines, "")
	for i, app := range apps {
		if i == a.selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Primary).Bold(true).Render("▸ "+app.Name))
		} else {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Text).Render("  "+app.Name))
		}
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func (a *ArcadeScreen) viewCoinEntry(cw int) string {
	apps := a.library.Apps(a.category)
	name := ""
	if a.selected < len(apps) {
		name = apps[a.selected].Name
	}

	perCoin := a.category.MinutesPerCoin()
	preview := ""
	if coins, err := a.coinInput.NumericValue(); err == nil && coins > 0 {
		preview = fmt.Sprintf("\n= %d minutes", coins*perCoin)
	}

	body := fmt.Sprintf("Spend coins on %s\n1 coin = %d min\n\n%s%s",
		name, perCoin, a.coinInput.View(), preview)
	return components.PanelCard(body, cw)
}

func (a *ArcadeScreen) viewManage(cw int) string {
	var lines []string
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render(fmt.Sprintf("Manage %s %s apps  (Tab to switch)", a.category.Icon(), a.category.DisplayName())))
	lines = append(lines, "")

	apps := a.library.Apps(a.category)
	if len(apps) == 0 {
		lines = append(lines, theme.Hint.Render("no apps — press a to add one"))
	}
	for i, app := range apps {
		label := app.Name
		if app.Path != "" {
			label += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + app.Path)
		}
		if i == a.selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Primary).Bold(true).Render("▸ ")+label)
		} else {
			lines = append(lines, "  "+label)
		}
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}
