// Package history renders the wallet ledger: coin earnings, spends, and
// informational events, newest first.
package history

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/grindstone/internal/router"
	"github.com/abhisek/grindstone/internal/screen"
	"github.com/abhisek/grindstone/internal/ui/layout"
	"github.com/abhisek/grindstone/internal/ui/theme"
	"github.com/abhisek/grindstone/internal/wallet"
)

const pageSize = 15

// HistoryScreen displays the coin ledger.
type HistoryScreen struct {
	wallet *wallet.Wallet
	offset int
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(wal *wallet.Wallet) *HistoryScreen {
	return &HistoryScreen{wallet: wal}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	entries := len(s.wallet.History())
	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		if s.offset < entries-pageSize {
			s.offset++
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	entries := s.wallet.History()

	if len(entries) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing yet. Complete a challenge to earn your first coins!")
	}

	var b strings.Builder
	b.WriteString("\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).
			Render(fmt.Sprintf("Balance: %s coins", layout.FormatCoins(s.wallet.Balance())))))
	b.WriteString("\n\n")

	end := s.offset + pageSize
	if end > len(entries) {
		end = len(entries)
	}

	for _, e := range entries[s.offset:end] {
		dateStr := e.At.Local().Format("Jan 02 15:04")

		var marker, amount string
		switch e.Kind {
		case wallet.KindEarn:
			marker = "+"
			amount = fmt.Sprintf("+%s", layout.FormatCoins(e.Amount))
		case wallet.KindSpend:
			marker = "−"
			amount = fmt.Sprintf("−%s", layout.FormatCoins(e.Amount))
		default:
			marker = "·"
			amount = ""
		}

		line := fmt.Sprintf("%s  %s  %-40s  %6s", marker, dateStr, truncate(e.Reason, 40), amount)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(kindColor(e.Kind)).Render(line)))
		b.WriteString("\n")
	}

	if len(entries) > pageSize {
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render(fmt.Sprintf("%d–%d of %d", s.offset+1, end, len(entries)))))
	}

	return b.String()
}

func kindColor(k wallet.EntryKind) color.Color {
	switch k {
	case wallet.KindEarn:
		return theme.Success
	case wallet.KindSpend:
		return theme.Error
	default:
		return theme.TextDim
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
