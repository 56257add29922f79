package challenge

// QuizSize is the number of questions in a daily MCQ set.
const QuizSize = 15

// Difficulty labels a quiz question. The daily set asks for 5 easy,
// 7 medium, and 3 hard questions.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Question is a single generated multiple-choice question. Immutable once
// generated.
type Question struct {
	Text       string     `json:"question"`
	Options    []string   `json:"options"`
	Correct    int        `json:"correct"`
	Difficulty Difficulty `json:"difficulty"`
}

// AnswerRecord stores the learner's pick for one question. Write-once per
// question index.
type AnswerRecord struct {
	Selected int  `json:"selected"`
	Correct  bool `json:"correct"`
}

// Score summarizes quiz progress.
type Score struct {
	Correct    int
	Answered   int
	Percentage int
}

// AnswerResult reports the outcome of a SelectAnswer call.
type AnswerResult struct {
	Record AnswerRecord

	// AlreadyAnswered is true when the question index had a prior record;
	// the call was a no-op and Record holds the original answer.
	AlreadyAnswered bool

	// Completed is true when this answer was the fifteenth.
	Completed bool

	// FinalScore is set when Completed: the percentage over all records.
	FinalScore int

	// Streak is the updated MCQ streak when Completed.
	Streak int
}
