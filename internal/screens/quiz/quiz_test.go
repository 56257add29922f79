package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/grindstone/internal/challenge"
	"github.com/abhisek/grindstone/internal/datetime"
	"github.com/abhisek/grindstone/internal/llm"
	"github.com/abhisek/grindstone/internal/router"
	"github.com/abhisek/grindstone/internal/store"
	"github.com/abhisek/grindstone/internal/track"
)

type nullLedger struct{}

func (nullLedger) Add(float64, string) {}
func (nullLedger) AddInfo(string)      {}

func fixedClock(t *testing.T) datetime.Clock {
	t.Helper()
	day, err := time.ParseInLocation("2006-01-02", "2026-03-14", time.Local)
	if err != nil {
		t.Fatal(err)
	}
	return datetime.NewFixed(day.Add(10 * time.Hour))
}

// quizJSON builds a canned fifteen-question response where question i has
// correct index i%4.
func quizJSON(t *testing.T) json.RawMessage {
	t.Helper()
	qs := make([]challenge.Question, challenge.QuizSize)
	for i := range qs {
		qs[i] = challenge.Question{
			Text:       fmt.Sprintf("Question %d?", i+1),
			Options:    []string{"A", "B", "C", "D"},
			Correct:    i % 4,
			Difficulty: challenge.Easy,
		}
	}
	raw, err := json.Marshal(qs)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func newEngine(t *testing.T, provider llm.Provider) *challenge.Engine {
	t.Helper()
	e := challenge.New(store.NewScoped(store.NewMemoryKV()), fixedClock(t), nullLedger{}, provider)
	if err := e.OnTrackActivated(track.SoftwareEng); err != nil {
		t.Fatal(err)
	}
	return e
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func TestInitGeneratesQuiz(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(t)})
	engine := newEngine(t, mock)
	q := New(engine)

	cmd := q.Init()
	if cmd == nil {
		t.Fatal("expected a generation command when no set exists")
	}
	if !q.loading {
		t.Error("screen should show the loading state while generating")
	}

	msg := cmd()
	ready, ok := msg.(quizReadyMsg)
	if !ok {
		t.Fatalf("expected quizReadyMsg, got %T", msg)
	}
	if ready.Err != nil {
		t.Fatalf("generation failed: %v", ready.Err)
	}

	q.Update(ready)
	if q.loading {
		t.Error("loading should clear once the set is ready")
	}
	if q.index != 0 {
		t.Errorf("expected first question, got index %d", q.index)
	}
	if view := q.View(100, 40); !strings.Contains(view, "Question 1?") {
		t.Error("first question should be rendered")
	}
}

func TestInitSkipsGenerationWhenSetExists(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(t)})
	engine := newEngine(t, mock)
	if _, err := engine.GenerateQuiz(context.Background()); err != nil {
		t.Fatal(err)
	}

	q := New(engine)
	if cmd := q.Init(); cmd != nil {
		t.Error("existing set for today must not trigger regeneration")
	}
	if mock.CallCount() != 1 {
		t.Errorf("provider called %d times, want 1", mock.CallCount())
	}
}

func TestResumesAtFirstUnanswered(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(t)})
	engine := newEngine(t, mock)
	if _, err := engine.GenerateQuiz(context.Background()); err != nil {
		t.Fatal(err)
	}
	engine.SelectAnswer(0, 0)
	engine.SelectAnswer(1, 1)

	q := New(engine)
	q.Init()
	if q.index != 2 {
		t.Errorf("expected resume at question 2, got %d", q.index)
	}
}

func TestAnswerShowsFeedbackThenAdvances(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(t)})
	engine := newEngine(t, mock)
	if _, err := engine.GenerateQuiz(context.Background()); err != nil {
		t.Fatal(err)
	}

	q := New(engine)
	q.Init()

	// Question 0 has correct index 0; answer with the direct key.
	q.Update(keyPress('a'))
	if q.result == nil {
		t.Fatal("expected feedback after answering")
	}
	if !q.result.Record.Correct {
		t.Error("option a should be correct for question 1")
	}
	if view := q.View(100, 40); !strings.Contains(view, "Correct") {
		t.Error("feedback should be rendered")
	}

	q.Update(enter())
	if q.result != nil {
		t.Error("feedback should clear on advance")
	}
	if q.index != 1 {
		t.Errorf("expected question 2 after advancing, got index %d", q.index)
	}
}

func TestWrongAnswerFeedback(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(t)})
	engine := newEngine(t, mock)
	if _, err := engine.GenerateQuiz(context.Background()); err != nil {
		t.Fatal(err)
	}

	q := New(engine)
	q.Init()

	q.Update(keyPress('d'))
	if q.result == nil {
		t.Fatal("expected feedback after answering")
	}
	if q.result.Record.Correct {
		t.Error("option d should be wrong for question 1")
	}
	if view := q.View(100, 40); !strings.Contains(view, "Wrong") {
		t.Error("wrong-answer feedback should be rendered")
	}
}

func TestCompletionView(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(t)})
	engine := newEngine(t, mock)
	if _, err := engine.GenerateQuiz(context.Background()); err != nil {
		t.Fatal(err)
	}
	// Answer everything but the last question outside the screen.
	for i := 0; i < challenge.QuizSize-1; i++ {
		if _, err := engine.SelectAnswer(i, i%4); err != nil {
			t.Fatalf("select %d: %v", i, err)
		}
	}

	q := New(engine)
	q.Init()
	if q.index != challenge.QuizSize-1 {
		t.Fatalf("expected resume at the last question, got %d", q.index)
	}

	q.Update(keyPress('c')) // correct index for question 15 is 14%4 = 2
	if q.result == nil || !q.result.Completed {
		t.Fatal("fifteenth answer should complete the quiz")
	}

	q.Update(enter())
	if !q.done {
		t.Error("advancing past the final feedback should show the summary")
	}
	view := q.View(100, 40)
	if !strings.Contains(view, "100%") {
		t.Errorf("summary should show the final score, got:\n%s", view)
	}
}

func TestGenerationFailureAndRetry(t *testing.T) {
	engine := newEngine(t, nil)
	q := New(engine)

	cmd := q.Init()
	if cmd == nil {
		t.Fatal("expected a generation command")
	}
	q.Update(cmd())
	if q.errMsg == "" {
		t.Fatal("missing provider should surface an error")
	}
	if view := q.View(100, 40); !strings.Contains(view, "retry") {
		t.Error("error view should offer a retry")
	}

	_, retry := q.Update(keyPress('r'))
	if retry == nil {
		t.Error("r should restart generation")
	}
	if !q.loading {
		t.Error("retry should re-enter the loading state")
	}
}

func TestEscPopsScreen(t *testing.T) {
	engine := newEngine(t, nil)
	q := New(engine)

	_, cmd := q.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should produce a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc should pop the screen")
	}
}
