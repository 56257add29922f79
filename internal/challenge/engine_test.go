package challenge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/grindstone/internal/datetime"
	"github.com/abhisek/grindstone/internal/llm"
	"github.com/abhisek/grindstone/internal/store"
	"github.com/abhisek/grindstone/internal/track"
)

// fakeLedger records credits without a real wallet.
type fakeLedger struct {
	earned  float64
	entries []string
	infos   []string
}

func (f *fakeLedger) Add(amount float64, reason string) {
	f.earned += amount
	f.entries = append(f.entries, reason)
}

func (f *fakeLedger) AddInfo(reason string) {
	f.infos = append(f.infos, reason)
}

func day(s string) datetime.Clock {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return datetime.NewFixed(t.Add(10 * time.Hour))
}

func quizJSON(t *testing.T, n int) json.RawMessage {
	t.Helper()
	qs := make([]Question, n)
	for i := range qs {
		diff := Easy
		switch {
		case i >= 12:
			diff = Hard
		case i >= 5:
			diff = Medium
		}
		qs[i] = Question{
			Text:       fmt.Sprintf("Question %d?", i+1),
			Options:    []string{"A", "B", "C", "D"},
			Correct:    i % 4,
			Difficulty: diff,
		}
	}
	raw, err := json.Marshal(qs)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func newTestEngine(clock datetime.Clock, provider llm.Provider) (*Engine, *fakeLedger, store.Scoped) {
	base := store.NewScoped(store.NewMemoryKV())
	ledger := &fakeLedger{}
	return New(base, clock, ledger, provider), ledger, base
}

func TestCompleteDSARequiresTrack(t *testing.T) {
	e, ledger, _ := newTestEngine(day("2026-03-14"), nil)

	_, err := e.CompleteDSA()
	if !errors.Is(err, ErrNoTrack) {
		t.Fatalf("expected ErrNoTrack, got %v", err)
	}
	if ledger.earned != 0 {
		t.Error("rejected action must not credit coins")
	}
}

func TestCompleteDSAFirstTime(t *testing.T) {
	e, ledger, _ := newTestEngine(day("2026-03-14"), nil)
	e.OnTrackActivated(track.SoftwareEng)

	streak, err := e.CompleteDSA()
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if streak != 1 {
		t.Errorf("first completion streak = %d, want 1", streak)
	}
	if ledger.earned != 2 {
		t.Errorf("earned %v coins, want 2", ledger.earned)
	}
}

func TestCompleteDSATwiceSameDay(t *testing.T) {
	e, ledger, _ := newTestEngine(day("2026-03-14"), nil)
	e.OnTrackActivated(track.SoftwareEng)

	if _, err := e.CompleteDSA(); err != nil {
		t.Fatalf("first complete: %v", err)
	}
	_, err := e.CompleteDSA()
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
	if ledger.earned != 2 {
		t.Errorf("second call credited coins: earned %v, want 2", ledger.earned)
	}
}

func TestDSAStreakIncrementsAfterYesterday(t *testing.T) {
	base := store.NewScoped(store.NewMemoryKV())
	ledger := &fakeLedger{}

	// Day 1: streak seeded at 4 by completing with prior state.
	scope := base.WithTrack(track.SoftwareEng)
	store.Write(scope, keyDSAStreak, 4)
	store.Write(scope, keyLastDSADate, "2026-03-13")

	e := New(base, day("2026-03-14"), ledger, nil)
	e.OnTrackActivated(track.SoftwareEng)

	streak, err := e.CompleteDSA()
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if streak != 5 {
		t.Errorf("streak = %d, want 5 (4 + today after yesterday)", streak)
	}
}

func TestDSAStreakRestartsAfterGap(t *testing.T) {
	base := store.NewScoped(store.NewMemoryKV())
	scope := base.WithTrack(track.SoftwareEng)
	store.Write(scope, keyDSAStreak, 4)
	store.Write(scope, keyLastDSADate, "2026-03-11") // 3 days ago

	e := New(base, day("2026-03-14"), &fakeLedger{}, nil)
	e.OnTrackActivated(track.SoftwareEng)

	streak, err := e.CompleteDSA()
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if streak != 1 {
		t.Errorf("streak = %d, want restart at 1 after gap", streak)
	}
}

func seedQuiz(t *testing.T, e *Engine, clock datetime.Clock) {
	t.Helper()
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(t, QuizSize)})
	e.provider = mock
	if _, err := e.GenerateQuiz(context.Background()); err != nil {
		t.Fatalf("seed quiz: %v", err)
	}
}

func TestSelectAnswerCreditsAndRecords(t *testing.T) {
	clock := day("2026-03-14")
	e, ledger, _ := newTestEngine(clock, nil)
	e.OnTrackActivated(track.DataScientist)
	seedQuiz(t, e, clock)

	// Question 0 has correct index 0.
	res, err := e.SelectAnswer(0, 0)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if !res.Record.Correct {
		t.Error("expected correct answer")
	}
	if ledger.earned != 0.2 {
		t.Errorf("earned %v, want 0.2", ledger.earned)
	}

	// Question 1 has correct index 1; answer wrong.
	res, err = e.SelectAnswer(1, 3)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if res.Record.Correct {
		t.Error("expected incorrect answer")
	}
	if len(ledger.infos) != 1 {
		t.Errorf("expected one info entry for the wrong answer, got %d", len(ledger.infos))
	}
}

func TestSelectAnswerIsWriteOnce(t *testing.T) {
	clock := day("2026-03-14")
	e, ledger, _ := newTestEngine(clock, nil)
	e.OnTrackActivated(track.DataScientist)
	seedQuiz(t, e, clock)

	first, err := e.SelectAnswer(0, 0)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	// Second attempt with a different option is a no-op.
	second, err := e.SelectAnswer(0, 2)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if !second.AlreadyAnswered {
		t.Error("expected AlreadyAnswered on repeat")
	}
	if second.Record != first.Record {
		t.Errorf("stored record changed: %+v -> %+v", first.Record, second.Record)
	}
	if ledger.earned != 0.2 {
		t.Errorf("repeat answer changed balance: earned %v, want 0.2", ledger.earned)
	}
}

func TestQuizCompletionScoreAndStreak(t *testing.T) {
	// A set generated yesterday with no answers survives rollover; finishing
	// it today exercises the increment arm of the streak rule.
	clock := day("2026-03-14")
	base := store.NewScoped(store.NewMemoryKV())
	scope := base.WithTrack(track.DataScientist)

	var qs []Question
	if err := json.Unmarshal(quizJSON(t, QuizSize), &qs); err != nil {
		t.Fatal(err)
	}
	store.Write(scope, keyMCQQuestions, qs)
	store.Write(scope, keyMCQStreak, 2)
	store.Write(scope, keyLastMCQDate, "2026-03-13")

	ledger := &fakeLedger{}
	e := New(base, clock, ledger, nil)
	e.OnTrackActivated(track.DataScientist)

	// Answer 9 correctly (correct index is i%4), 6 incorrectly.
	var last AnswerResult
	for i := 0; i < QuizSize; i++ {
		pick := i % 4
		if i >= 9 {
			pick = (i + 1) % 4
		}
		var err error
		last, err = e.SelectAnswer(i, pick)
		if err != nil {
			t.Fatalf("select %d: %v", i, err)
		}
	}

	if !last.Completed {
		t.Fatal("expected quiz to complete on the fifteenth answer")
	}
	if last.FinalScore != 60 {
		t.Errorf("final score = %d%%, want 60", last.FinalScore)
	}
	if last.Streak != 3 {
		t.Errorf("mcq streak = %d, want 3 (2 + today after yesterday)", last.Streak)
	}
}

func TestTrackSwitchRoundTripsState(t *testing.T) {
	clock := day("2026-03-14")
	base := store.NewScoped(store.NewMemoryKV())
	e := New(base, clock, &fakeLedger{}, nil)

	e.OnTrackActivated(track.SoftwareEng)
	seedQuiz(t, e, clock)
	e.CompleteDSA()
	e.SelectAnswer(0, 0)
	before := e.Snapshot()

	// Switch away: a different track starts from defaults.
	e.OnTrackActivated(track.DataEngineer)
	other := e.Snapshot()
	if other.DSAStreak != 0 || len(other.Questions) != 0 || len(other.Answers) != 0 {
		t.Errorf("fresh track inherited state: %+v", other)
	}

	// Switch back: everything restored exactly.
	e.OnTrackActivated(track.SoftwareEng)
	after := e.Snapshot()
	if after.DSAStreak != before.DSAStreak {
		t.Errorf("dsa streak lost: %d != %d", after.DSAStreak, before.DSAStreak)
	}
	if after.MCQStreak != before.MCQStreak {
		t.Errorf("mcq streak lost: %d != %d", after.MCQStreak, before.MCQStreak)
	}
	if len(after.Answers) != 1 || after.Answers[0] != before.Answers[0] {
		t.Errorf("answer records lost: %+v", after.Answers)
	}
	if len(after.Questions) != QuizSize {
		t.Errorf("question set lost: %d questions", len(after.Questions))
	}
}

func TestRolloverResetsStreakAfterGap(t *testing.T) {
	base := store.NewScoped(store.NewMemoryKV())
	scope := base.WithTrack(track.SoftwareEng)
	store.Write(scope, keyDSAStreak, 6)
	store.Write(scope, keyDSACompleted, true)
	store.Write(scope, keyLastDSADate, "2026-03-10")
	store.Write(scope, keyMCQStreak, 4)
	store.Write(scope, keyLastMCQDate, "2026-03-10")

	e := New(base, day("2026-03-14"), &fakeLedger{}, nil)
	e.OnTrackActivated(track.SoftwareEng)

	snap := e.Snapshot()
	if snap.DSAStreak != 0 {
		t.Errorf("dsa streak = %d, want 0 after multi-day gap", snap.DSAStreak)
	}
	if snap.MCQStreak != 0 {
		t.Errorf("mcq streak = %d, want 0 after multi-day gap", snap.MCQStreak)
	}
	if snap.DSADoneToday {
		t.Error("completion flag must clear on a new day")
	}
}

func TestRolloverPreservesStreakAfterYesterday(t *testing.T) {
	base := store.NewScoped(store.NewMemoryKV())
	scope := base.WithTrack(track.SoftwareEng)
	store.Write(scope, keyDSAStreak, 6)
	store.Write(scope, keyLastDSADate, "2026-03-13")

	e := New(base, day("2026-03-14"), &fakeLedger{}, nil)
	e.OnTrackActivated(track.SoftwareEng)

	if snap := e.Snapshot(); snap.DSAStreak != 6 {
		t.Errorf("dsa streak = %d, want 6 preserved when yesterday", snap.DSAStreak)
	}
}

func TestRolloverDiscardsStalePartialQuiz(t *testing.T) {
	clock := day("2026-03-14")
	base := store.NewScoped(store.NewMemoryKV())
	e := New(base, clock, &fakeLedger{}, nil)
	e.OnTrackActivated(track.DataScientist)
	seedQuiz(t, e, clock)
	e.SelectAnswer(0, 0)
	e.SelectAnswer(1, 1)

	// Next day: the partially answered set is discarded.
	e2 := New(base, day("2026-03-15"), &fakeLedger{}, nil)
	e2.OnTrackActivated(track.DataScientist)

	snap := e2.Snapshot()
	if len(snap.Questions) != 0 {
		t.Errorf("stale question set survived rollover: %d questions", len(snap.Questions))
	}
	if len(snap.Answers) != 0 {
		t.Errorf("stale answers survived rollover: %d answers", len(snap.Answers))
	}
	if !e2.NeedsQuiz() {
		t.Error("expected regeneration to be needed after discard")
	}
}

func TestRolloverKeepsUnansweredQuiz(t *testing.T) {
	clock := day("2026-03-14")
	base := store.NewScoped(store.NewMemoryKV())
	e := New(base, clock, &fakeLedger{}, nil)
	e.OnTrackActivated(track.DataScientist)
	seedQuiz(t, e, clock)

	// No answers recorded; the set is stale but untouched by the discard rule.
	e2 := New(base, day("2026-03-15"), &fakeLedger{}, nil)
	e2.OnTrackActivated(track.DataScientist)

	if snap := e2.Snapshot(); len(snap.Questions) != QuizSize {
		t.Errorf("unanswered stale set should survive until regeneration, got %d questions", len(snap.Questions))
	}
	// But a new set is still due today.
	if !e2.NeedsQuiz() {
		t.Error("expected NeedsQuiz on a new day")
	}
}
