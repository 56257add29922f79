package quiz

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/grindstone/internal/challenge"
	"github.com/abhisek/grindstone/internal/ui/components"
	"github.com/abhisek/grindstone/internal/ui/theme"
)

func (q *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	if q.loading {
		content := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			"🤖 Generating today's quiz...\n\nThis takes a few seconds.")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	}

	if q.errMsg != "" {
		content := lipgloss.NewStyle().Foreground(theme.Error).Render(q.errMsg) +
			"\n\n" + theme.Hint.Render("press r to retry, Esc to go back")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	}

	if q.done {
		return q.viewComplete(width, height)
	}

	snap := q.engine.Snapshot()
	var sections []string

	// Progress
	answered := len(snap.Answers)
	bar := components.NewProgressBar(
		fmt.Sprintf("Question %d of %d", q.index+1, challenge.QuizSize),
		float64(answered)/float64(challenge.QuizSize),
		false, cw-4)
	sections = append(sections, bar.View())

	if q.index < len(snap.Questions) {
		diff := snap.Questions[q.index].Difficulty
		sections = append(sections, lipgloss.NewStyle().
			Foreground(difficultyColor(diff)).
			Render(strings.ToUpper(string(diff))))
	}

	sections = append(sections, q.choice.View())

	if q.result != nil {
		sections = append(sections, q.viewFeedback())
	}

	content := strings.Join(sections, "\n\n")
	boxed := lipgloss.NewStyle().Width(cw).Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, boxed)
}

func (q *QuizScreen) viewFeedback() string {
	if q.result.Record.Correct {
		msg := "✓ Correct! +0.2 coins"
		if q.result.Completed {
			msg += "\n\n" + lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).
				Render("Quiz complete! Press Enter for your score.")
		}
		return lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(msg)
	}
	msg := "✗ Wrong answer"
	if q.result.Completed {
		msg += "\n\n" + lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).
			Render("Quiz complete! Press Enter for your score.")
	}
	return lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(msg)
}

func (q *QuizScreen) viewComplete(width, height int) string {
	snap := q.engine.Snapshot()
	score := snap.Score

	grade := "Keep grinding!"
	gradeColor := theme.TextDim
	switch {
	case score.Percentage >= 90:
		grade = "Outstanding!"
		gradeColor = theme.Gold
	case score.Percentage >= 70:
		grade = "Great work!"
		gradeColor = theme.Success
	case score.Percentage >= 50:
		grade = "Solid effort."
		gradeColor = theme.Secondary
	}

	coins := float64(score.Correct) * 0.2

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("— TODAY'S QUIZ —"),
		"",
		fmt.Sprintf("Score: %d / %d  (%d%%)", score.Correct, score.Answered, score.Percentage),
		lipgloss.NewStyle().Foreground(theme.Gold).Render(fmt.Sprintf("Coins earned: %.1f", coins)),
		lipgloss.NewStyle().Foreground(theme.Cyan).Render(fmt.Sprintf("Quiz streak: %d day(s)", snap.MCQStreak)),
		"",
		lipgloss.NewStyle().Foreground(gradeColor).Bold(true).Render(grade),
		"",
		theme.Hint.Render("Come back after midnight for a new set."),
	}

	content := lipgloss.NewStyle().Align(lipgloss.Center).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func difficultyColor(d challenge.Difficulty) color.Color {
	switch d {
	case challenge.Easy:
		return theme.Success
	case challenge.Medium:
		return theme.Accent
	case challenge.Hard:
		return theme.Error
	default:
		return theme.TextDim
	}
}
