package challenge

import "github.com/abhisek/grindstone/internal/store"

// Storage keys for per-track challenge state. The store adapter resolves
// them against the active track.
const (
	keyDSAStreak    = "dsaStreak"
	keyDSACompleted = "dsaCompleted"
	keyLastDSADate  = "lastDsaDate"
	keyMCQQuestions = "mcqQuestions"
	keyMCQAnswers   = "mcqAnswers"
	keyMCQCompleted = "mcqCompleted"
	keyLastMCQDate  = "lastMcqDate"
	keyMCQStreak    = "mcqStreak"
)

// state is the per-track challenge state. One instance lives in the engine
// at a time; switching tracks replaces it wholesale.
type state struct {
	DSAStreak    int
	DSACompleted bool
	LastDSADate  string

	Questions   []Question
	Answers     map[int]AnswerRecord
	MCQComplete int
	LastMCQDate string
	MCQStreak   int
}

// loadState reads the full per-track state from scope, lazily defaulting
// every field. The cached answered count is recomputed from the answer map
// so a corrupted cache self-heals.
func loadState(scope store.Scoped) state {
	st := state{
		DSAStreak:    store.Read(scope, keyDSAStreak, 0),
		DSACompleted: store.Read(scope, keyDSACompleted, false),
		LastDSADate:  store.Read(scope, keyLastDSADate, ""),
		Questions:    store.Read(scope, keyMCQQuestions, []Question(nil)),
		Answers:      store.Read(scope, keyMCQAnswers, map[int]AnswerRecord{}),
		LastMCQDate:  store.Read(scope, keyLastMCQDate, ""),
		MCQStreak:    store.Read(scope, keyMCQStreak, 0),
	}
	if st.Answers == nil {
		st.Answers = map[int]AnswerRecord{}
	}
	st.MCQComplete = len(st.Answers)
	return st
}

func (s *state) persistDSA(scope store.Scoped) {
	store.Write(scope, keyDSAStreak, s.DSAStreak)
	store.Write(scope, keyDSACompleted, s.DSACompleted)
	store.Write(scope, keyLastDSADate, s.LastDSADate)
}

func (s *state) persistMCQ(scope store.Scoped) {
	store.Write(scope, keyMCQQuestions, s.Questions)
	store.Write(scope, keyMCQAnswers, s.Answers)
	store.Write(scope, keyMCQCompleted, s.MCQComplete)
	store.Write(scope, keyLastMCQDate, s.LastMCQDate)
	store.Write(scope, keyMCQStreak, s.MCQStreak)
}

// score computes quiz progress over the current answer records.
func (s *state) score() Score {
	sc := Score{Answered: len(s.Answers)}
	for _, a := range s.Answers {
		if a.Correct {
			sc.Correct++
		}
	}
	if sc.Answered > 0 {
		sc.Percentage = int(float64(sc.Correct)/float64(sc.Answered)*100 + 0.5)
	}
	return sc
}

// nextStreak applies the consecutive-day rule: increment when the last
// completion was yesterday, otherwise restart at 1. "Never completed" and
// "gap of two or more days" both collapse to the restart case.
func nextStreak(current int, wasYesterday bool) int {
	if wasYesterday {
		return current + 1
	}
	return 1
}
