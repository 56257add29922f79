// Package quiz implements the daily 15-question MCQ challenge screen.
package quiz

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/grindstone/internal/challenge"
	"github.com/abhisek/grindstone/internal/router"
	"github.com/abhisek/grindstone/internal/screen"
	"github.com/abhisek/grindstone/internal/ui/components"
	"github.com/abhisek/grindstone/internal/ui/layout"
)

type quizReadyMsg struct {
	Err error
}

// QuizScreen drives one pass through today's question set. Answered
// questions are locked; a partially answered set resumes at the first
// open question.
type QuizScreen struct {
	engine *challenge.Engine

	choice components.MultiChoice
	index  int

	loading bool
	errMsg  string
	result  *challenge.AnswerResult
	done    bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the quiz screen for the engine's current question set.
func New(engine *challenge.Engine) *QuizScreen {
	return &QuizScreen{engine: engine}
}

func (q *QuizScreen) Title() string {
	return "Daily Quiz"
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	if q.done || q.errMsg != "" {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if q.result != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓/a-d", Description: "Choose"},
		{Key: "Enter", Description: "Answer"},
		{Key: "Esc", Description: "Back"},
	}
}

func (q *QuizScreen) Init() tea.Cmd {
	snap := q.engine.Snapshot()
	if snap.QuizIsToday && len(snap.Questions) > 0 {
		q.setup(snap)
		return nil
	}

	q.loading = true
	engine := q.engine
	return func() tea.Msg {
		_, err := engine.GenerateQuiz(context.Background())
		return quizReadyMsg{Err: err}
	}
}

// setup positions the screen at the first unanswered question, or the
// completion view when the set is finished.
func (q *QuizScreen) setup(snap challenge.Snapshot) {
	q.loading = false
	q.result = nil

	for i, question := range snap.Questions {
		if _, answered := snap.Answers[i]; !answered {
			q.index = i
			q.choice = components.NewMultiChoice(
				fmt.Sprintf("Q%d. %s", i+1, question.Text),
				question.Options, question.Correct)
			return
		}
	}
	q.done = true
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		q.loading = false
		if msg.Err != nil {
			if errors.Is(msg.Err, challenge.ErrGenerationBusy) {
				q.errMsg = "Quiz generation already in progress. Try again shortly."
			} else {
				q.errMsg = msg.Err.Error()
			}
			return q, nil
		}
		q.errMsg = ""
		q.setup(q.engine.Snapshot())
		return q, nil

	case tea.KeyMsg:
		return q.handleKey(msg)
	}
	return q, nil
}

func (q *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if key == "esc" {
		return q, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if q.loading || q.done {
		return q, nil
	}

	if q.errMsg != "" {
		if key == "r" {
			q.errMsg = ""
			return q, q.Init()
		}
		return q, nil
	}

	// Feedback shown, wait for advance.
	if q.result != nil {
		if key == "enter" || key == "n" {
			if q.result.Completed {
				q.done = true
				q.result = nil
				return q, nil
			}
			q.setup(q.engine.Snapshot())
		}
		return q, nil
	}

	q.choice, _ = q.choice.Update(msg)
	if q.choice.Submitted {
		res, err := q.engine.SelectAnswer(q.index, q.choice.ChosenIndex)
		if err != nil {
			q.errMsg = err.Error()
			return q, nil
		}
		q.result = &res
	}
	return q, nil
}
