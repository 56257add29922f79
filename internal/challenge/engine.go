package challenge

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/abhisek/grindstone/internal/datetime"
	"github.com/abhisek/grindstone/internal/llm"
	"github.com/abhisek/grindstone/internal/store"
	"github.com/abhisek/grindstone/internal/track"
)

// Validation rejections. Surfaced synchronously with zero state mutation;
// retry is always a fresh user action.
var (
	ErrNoTrack          = errors.New("no track selected")
	ErrAlreadyCompleted = errors.New("already completed today")
	ErrGenerationBusy   = errors.New("question generation already in flight")
	ErrTrackSwitched    = errors.New("track switched during generation, result discarded")
	ErrNoProvider       = errors.New("no LLM provider configured")
	ErrNoQuiz           = errors.New("no question set for today")
)

// Ledger is the currency surface the engine credits. Satisfied by
// *wallet.Wallet.
type Ledger interface {
	Add(amount float64, reason string)
	AddInfo(reason string)
}

// Coin rewards.
const (
	dsaReward    = 2.0
	answerReward = 0.2
)

// Engine owns the per-track DSA and MCQ challenge state machines. All state
// lives behind one mutex, so guard checks and their writes are atomic; no
// two CompleteDSA or SelectAnswer calls can both pass the same guard.
type Engine struct {
	mu       sync.Mutex
	base     store.Scoped
	scope    store.Scoped
	clock    datetime.Clock
	ledger   Ledger
	provider llm.Provider

	active     track.Track
	hasTrack   bool
	st         state
	generating bool
}

// New creates an Engine with no track selected. provider may be nil; quiz
// generation then fails with ErrNoProvider while DSA and answering keep
// working against any previously stored set.
func New(base store.Scoped, clock datetime.Clock, ledger Ledger, provider llm.Provider) *Engine {
	return &Engine{
		base:     base,
		scope:    base,
		clock:    clock,
		ledger:   ledger,
		provider: provider,
	}
}

// OnTrackActivated swaps all per-track state to the given track: a full
// reload under the new scope followed by daily-rollover reconciliation.
// Never a merge with the previous track's state.
func (e *Engine) OnTrackActivated(id track.ID) error {
	trk, ok := track.ByID(id)
	if !ok {
		return fmt.Errorf("unknown track %q", id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.active = trk
	e.hasTrack = true
	e.scope = e.base.WithTrack(id)
	e.st = loadState(e.scope)
	e.reconcile()
	return nil
}

// OnDailyRollover re-runs day-boundary reconciliation. Invoked by the
// coordinator on its periodic tick so streak resets and stale-set discards
// happen while the app is running, not only at startup.
func (e *Engine) OnDailyRollover() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.hasTrack {
		return
	}
	e.reconcile()
}

// reconcile applies the day-boundary rules for DSA and MCQ independently.
// Callers hold e.mu.
func (e *Engine) reconcile() {
	if e.st.LastDSADate != "" && !e.clock.IsToday(e.st.LastDSADate) {
		if !e.clock.WasYesterday(e.st.LastDSADate) {
			e.st.DSAStreak = 0
		}
		e.st.DSACompleted = false
		e.st.persistDSA(e.scope)
	}

	if e.st.LastMCQDate != "" && !e.clock.IsToday(e.st.LastMCQDate) {
		if !e.clock.WasYesterday(e.st.LastMCQDate) {
			e.st.MCQStreak = 0
		}
		// A stale answered set is discarded, not archived; the next
		// generation call rebuilds today's quiz.
		if e.st.MCQComplete > 0 && len(e.st.Questions) > 0 {
			e.st.Questions = nil
			e.st.Answers = map[int]AnswerRecord{}
			e.st.MCQComplete = 0
		}
		e.st.persistMCQ(e.scope)
	}
}

// CompleteDSA marks today's DSA challenge done, applies the streak rule and
// credits the fixed reward. Rejected when no track is selected or when
// today's challenge is already complete.
func (e *Engine) CompleteDSA() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.hasTrack {
		return 0, ErrNoTrack
	}
	if e.clock.IsToday(e.st.LastDSADate) {
		return 0, ErrAlreadyCompleted
	}

	e.st.DSAStreak = nextStreak(e.st.DSAStreak, e.clock.WasYesterday(e.st.LastDSADate))
	e.st.DSACompleted = true
	e.st.LastDSADate = e.clock.Today()
	e.st.persistDSA(e.scope)

	e.ledger.Add(dsaReward, "DSA Challenge Completed")
	return e.st.DSAStreak, nil
}

// SelectAnswer records the pick for one question. Write-once: a second call
// for an answered index is a no-op that returns the original record. The
// fifteenth answer closes the quiz, updating the streak and final score.
func (e *Engine) SelectAnswer(questionIndex, optionIndex int) (AnswerResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.hasTrack {
		return AnswerResult{}, ErrNoTrack
	}
	if questionIndex < 0 || questionIndex >= len(e.st.Questions) {
		return AnswerResult{}, fmt.Errorf("question index %d out of range", questionIndex)
	}

	if prior, ok := e.st.Answers[questionIndex]; ok {
		return AnswerResult{Record: prior, AlreadyAnswered: true}, nil
	}

	q := e.st.Questions[questionIndex]
	rec := AnswerRecord{
		Selected: optionIndex,
		Correct:  q.Correct == optionIndex,
	}
	e.st.Answers[questionIndex] = rec
	e.st.MCQComplete = len(e.st.Answers)

	if rec.Correct {
		e.ledger.Add(answerReward, fmt.Sprintf("MCQ %d - Correct", questionIndex+1))
	} else {
		e.ledger.AddInfo(fmt.Sprintf("MCQ %d - Incorrect", questionIndex+1))
	}

	res := AnswerResult{Record: rec}
	if e.st.MCQComplete == QuizSize {
		e.st.MCQStreak = nextStreak(e.st.MCQStreak, e.clock.WasYesterday(e.st.LastMCQDate))
		sc := e.st.score()
		res.Completed = true
		res.FinalScore = sc.Percentage
		res.Streak = e.st.MCQStreak
	}
	e.st.persistMCQ(e.scope)

	return res, nil
}

// Snapshot is a read-only copy of the engine state for presentation.
type Snapshot struct {
	Track        track.Track
	HasTrack     bool
	DSAStreak    int
	DSADoneToday bool
	Questions    []Question
	Answers      map[int]AnswerRecord
	MCQStreak    int
	QuizIsToday  bool
	Generating   bool
	Score        Score
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	answers := make(map[int]AnswerRecord, len(e.st.Answers))
	for k, v := range e.st.Answers {
		answers[k] = v
	}
	questions := make([]Question, len(e.st.Questions))
	copy(questions, e.st.Questions)

	return Snapshot{
		Track:        e.active,
		HasTrack:     e.hasTrack,
		DSAStreak:    e.st.DSAStreak,
		DSADoneToday: e.clock.IsToday(e.st.LastDSADate),
		Questions:    questions,
		Answers:      answers,
		MCQStreak:    e.st.MCQStreak,
		QuizIsToday:  e.clock.IsToday(e.st.LastMCQDate),
		Generating:   e.generating,
		Score:        e.st.score(),
	}
}

// NeedsQuiz reports whether the auto-trigger rule applies: a track is
// active, today's set is absent, and no generation is in flight.
func (e *Engine) NeedsQuiz() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.hasTrack || e.generating {
		return false
	}
	return !e.clock.IsToday(e.st.LastMCQDate) || len(e.st.Questions) == 0
}

// GenerateQuiz synthesizes today's question set. At most one generation may
// be outstanding; concurrent triggers are rejected, not queued. A response
// arriving after a track switch is discarded. On any failure the prior
// question set is left untouched.
func (e *Engine) GenerateQuiz(ctx context.Context) ([]Question, error) {
	e.mu.Lock()
	if !e.hasTrack {
		e.mu.Unlock()
		return nil, ErrNoTrack
	}
	if e.clock.IsToday(e.st.LastMCQDate) && len(e.st.Questions) > 0 {
		qs := e.st.Questions
		e.mu.Unlock()
		return qs, nil
	}
	if e.provider == nil {
		e.mu.Unlock()
		return nil, ErrNoProvider
	}
	if e.generating {
		e.mu.Unlock()
		return nil, ErrGenerationBusy
	}
	e.generating = true
	requested := e.active
	e.mu.Unlock()

	questions, err := generateQuestions(ctx, e.provider, requested)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.generating = false

	if err != nil {
		return nil, err
	}
	// Discard stale responses from a previous track.
	if !e.hasTrack || e.active.ID != requested.ID {
		return nil, ErrTrackSwitched
	}

	e.st.Questions = questions
	e.st.Answers = map[int]AnswerRecord{}
	e.st.MCQComplete = 0
	e.st.LastMCQDate = e.clock.Today()
	e.st.persistMCQ(e.scope)

	return questions, nil
}
