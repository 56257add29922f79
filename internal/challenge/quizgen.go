package challenge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/grindstone/internal/llm"
	"github.com/abhisek/grindstone/internal/track"
)

const quizSystemPrompt = `You are creating a daily career-skills quiz for a learning app.

Rules:
- Generate exactly 15 multiple-choice questions for the given career track.
- Difficulty mix: 5 easy, 7 medium, 3 hard.
- Each question has exactly 4 options and exactly one correct answer.
- Questions should be practical and relevant to real work in the field.
- The "correct" field is the index (0-3) of the correct option.
- Return ONLY valid JSON. No markdown, no backticks, no preamble.`

// QuizSchema constrains the generated question set: a 15-element array of
// four-option questions.
var QuizSchema = &llm.Schema{
	Name:        "daily-quiz",
	Description: "A daily set of 15 multiple-choice career questions",
	Definition: map[string]any{
		"type":     "array",
		"minItems": QuizSize,
		"maxItems": QuizSize,
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"question": map[string]any{
					"type":        "string",
					"description": "The question text",
				},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 4,
					"maxItems": 4,
				},
				"correct": map[string]any{
					"type":        "integer",
					"minimum":     0,
					"maximum":     3,
					"description": "Index of the correct option",
				},
				"difficulty": map[string]any{
					"type": "string",
					"enum": []any{"easy", "medium", "hard"},
				},
			},
			"required":             []any{"question", "options", "correct", "difficulty"},
			"additionalProperties": false,
		},
	},
}

// buildQuizPrompt constructs the user message for a track's daily quiz.
func buildQuizPrompt(trk track.Track) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create today's quiz for aspiring %ss.\n\n", trk.Name)
	fmt.Fprintf(&b, "Career: %s\n", trk.Name)
	fmt.Fprintf(&b, "Key skills: %s\n\n", strings.Join(trk.Skills, ", "))

	b.WriteString(`Requirements:
1. Mix of difficulty levels (5 easy, 7 medium, 3 hard)
2. Cover different aspects of the day-to-day work
3. Each question has 4 options (A, B, C, D)
4. Only ONE correct answer per question

Return a JSON array of exactly 15 objects in this format:
[
  {
    "question": "Question text here?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correct": 0,
    "difficulty": "easy"
  }
]

Generate all 15 questions now.`)

	return b.String()
}

// generateQuestions calls the LLM and parses the strict-JSON response into
// a validated question set. Any failure returns an error without partial
// results.
func generateQuestions(ctx context.Context, provider llm.Provider, trk track.Track) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, "quiz-gen")

	req := llm.Request{
		System: quizSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuizPrompt(trk)},
		},
		Schema:    QuizSchema,
		MaxTokens: 12000,
	}

	resp, err := provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	return parseQuestions(resp.Content)
}

// parseQuestions decodes a question set from raw LLM output, stripping any
// code-fence wrapping first.
func parseQuestions(raw json.RawMessage) ([]Question, error) {
	text := llm.StripFences(string(raw))

	var questions []Question
	if err := json.Unmarshal([]byte(text), &questions); err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}

	if len(questions) != QuizSize {
		return nil, fmt.Errorf("expected %d questions, got %d", QuizSize, len(questions))
	}
	for i, q := range questions {
		if len(q.Options) != 4 {
			return nil, fmt.Errorf("question %d has %d options, want 4", i+1, len(q.Options))
		}
		if q.Correct < 0 || q.Correct > 3 {
			return nil, fmt.Errorf("question %d correct index %d out of range", i+1, q.Correct)
		}
		if strings.TrimSpace(q.Text) == "" {
			return nil, fmt.Errorf("question %d has empty text", i+1)
		}
	}

	return questions, nil
}
