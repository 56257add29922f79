package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/grindstone/internal/ui/components"
	"github.com/abhisek/grindstone/internal/ui/layout"
	"github.com/abhisek/grindstone/internal/ui/theme"
)

func (h *HomeScreen) View(width, height int) string {
	termHeight := height + layout.HeaderHeight + layout.FooterHeight + 2
	compact := termHeight < layout.CompactHeightThreshold || width < layout.CompactWidthThreshold

	cw := components.ContentWidth(width)
	snap := h.deps.Engine.Snapshot()

	var sections []string

	// Daily quote
	if !compact {
		if quote := h.deps.Motivation.Quote(); quote != "" {
			sections = append(sections, components.PanelCard(
				lipgloss.NewStyle().Foreground(theme.Text).Italic(true).Render("✨ "+quote), cw))
		} else if h.deps.Provider != nil {
			sections = append(sections, lipgloss.NewStyle().
				Foreground(theme.TextDim).Width(cw).Align(lipgloss.Center).
				Render("Fetching today's motivation..."))
		}
	}

	// Stats bar
	sections = append(sections, h.renderStatsBar(cw, compact))

	// Active session banner
	if active := h.deps.Sessions.Active(); active != nil {
		remaining := active.Remaining(h.deps.Clock.Now())
		mins := int(remaining.Minutes())
		secs := int(remaining.Seconds()) % 60
		banner := fmt.Sprintf("%s %s — %s  (%d:%02d left)",
			active.Category.Icon(), strings.ToUpper(string(active.Category)), active.AppName, mins, secs)
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Secondary).Width(cw).Align(lipgloss.Center).
			Render(banner))
	}

	// Daily challenge status line
	sections = append(sections, h.renderChallengeLine(snap.DSADoneToday, snap.QuizIsToday, len(snap.Answers), cw))

	// Menu
	sections = append(sections, h.renderMenu(cw, compact))

	// Status feedback from the last action
	if h.status != "" {
		style := lipgloss.NewStyle().Foreground(theme.Error)
		if h.statusGood {
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		sections = append(sections, style.Width(cw).Align(lipgloss.Center).Render(h.status))
	}

	if h.deps.Provider == nil {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Accent).Width(cw).Align(lipgloss.Center).
			Render("⚠ Set an LLM API key to enable quizzes (see grindstone --help)"))
	}

	content := strings.Join(sections, "\n\n")
	return components.PanelFrame(content, width, height)
}

func (h *HomeScreen) renderStatsBar(cw int, compact bool) string {
	snap := h.deps.Engine.Snapshot()
	coins := h.deps.Wallet.Balance()
	hours, mins := h.deps.Clock.UntilMidnight()

	coinStyle := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	dsaStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	mcqStyle := lipgloss.NewStyle().Foreground(theme.Cyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s %s",
			coinStyle.Render("◉"+layout.FormatCoins(coins)),
			dsaStyle.Render(fmt.Sprintf("🔥%d", snap.DSAStreak)),
			mcqStyle.Render(fmt.Sprintf("⚡%d", snap.MCQStreak)),
			dimStyle.Render(fmt.Sprintf("⏳%dh%02dm", hours, mins)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s  %s",
			coinStyle.Render(fmt.Sprintf("◉ %s COINS", layout.FormatCoins(coins))),
			dsaStyle.Render(fmt.Sprintf("🔥 DSA %d", snap.DSAStreak)),
			mcqStyle.Render(fmt.Sprintf("⚡ QUIZ %d", snap.MCQStreak)),
			dimStyle.Render(fmt.Sprintf("⏳ %dh %02dm to reset", hours, mins)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Cyan).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func (h *HomeScreen) renderChallengeLine(dsaDone, quizToday bool, answered int, cw int) string {
	okStyle := lipgloss.NewStyle().Foreground(theme.Success)
	todoStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	dsa := todoStyle.Render("○ DSA pending")
	if dsaDone {
		dsa = okStyle.Render("✓ DSA done")
	}

	mcq := todoStyle.Render("○ Quiz pending")
	if quizToday {
		if answered >= 15 {
			mcq = okStyle.Render("✓ Quiz done")
		} else {
			mcq = lipgloss.NewStyle().Foreground(theme.Secondary).
				Render(fmt.Sprintf("◐ Quiz %d/15", answered))
		}
	}

	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(dsa + "   " + mcq)
}

const buttonWidth = 24

func (h *HomeScreen) renderMenu(cw int, compact bool) string {
	if compact {
		var lines []string
		for i, label := range h.menuLabels {
			if i == h.menu.Selected {
				lines = append(lines, lipgloss.NewStyle().
					Foreground(theme.BgDark).Background(theme.Gold).Bold(true).
					Render(" ▸ "+label+" "))
			} else {
				lines = append(lines, lipgloss.NewStyle().
					Foreground(theme.Text).Render("   "+label))
			}
		}
		return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(strings.Join(lines, "\n"))
	}

	var buttons []string
	for i, label := range h.menuLabels {
		buttons = append(buttons, components.PanelButton(label, i == h.menu.Selected, buttonWidth))
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}
