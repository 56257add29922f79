package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/grindstone/internal/llm"
	"github.com/abhisek/grindstone/internal/store"
)

const keyAutoCategorized = "autoCategorized"

const categorizeSystemPrompt = `You are an app categorization assistant. You sort desktop applications into "games", "music", or "social" buckets and return strict JSON.`

// CategorySchema constrains the categorization response to three string
// arrays of app names.
var CategorySchema = &llm.Schema{
	Name:        "app-categories",
	Description: "Application names sorted into games, music, and social buckets",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"games":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"music":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"social": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required":             []any{"games", "music", "social"},
		"additionalProperties": false,
	},
}

type categorization struct {
	Games  []string `json:"games"`
	Music  []string `json:"music"`
	Social []string `json:"social"`
}

func buildCategorizePrompt(apps []App) string {
	names := make([]string, len(apps))
	for i, a := range apps {
		names[i] = a.Name
	}

	var b strings.Builder
	b.WriteString("Categorize the following apps into three categories: \"games\", \"music\", or \"social\".\n\n")
	fmt.Fprintf(&b, "Apps to categorize: %s\n\n", strings.Join(names, ", "))
	b.WriteString(`Return ONLY a valid JSON object in this exact format (no markdown, no backticks):
{
  "games": ["app1", "app2"],
  "music": ["app3"],
  "social": ["app4", "app5"]
}

Rules:
- "games": Video games, gaming applications, game launchers
- "music": Music players, streaming services, audio editing tools
- "social": Everything else (social media, messengers, browsers, etc.)

Use the exact app names provided. Return only the JSON object.`)

	return b.String()
}

// InfoLedger records zero-amount history entries.
type InfoLedger interface {
	AddInfo(reason string)
}

// AutoCategorize sorts every managed app into categories using the LLM.
// It runs at most once unless force is set: a failure still marks the run
// as done so startup does not hammer the provider. Returns true when a
// categorization was applied.
func (l *Library) AutoCategorize(ctx context.Context, provider llm.Provider, ledger InfoLedger, force bool) (bool, error) {
	apps := l.All()
	if len(apps) == 0 {
		store.Write(l.scope, keyAutoCategorized, true)
		return false, nil
	}
	if !force && store.Read(l.scope, keyAutoCategorized, false) {
		return false, nil
	}

	ctx = llm.WithPurpose(ctx, "app-categorize")
	resp, err := provider.Generate(ctx, llm.Request{
		System: categorizeSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildCategorizePrompt(apps)},
		},
		Schema:    CategorySchema,
		MaxTokens: 2000,
	})
	if err != nil {
		store.Write(l.scope, keyAutoCategorized, true)
		return false, fmt.Errorf("categorize apps: %w", err)
	}

	var cat categorization
	if err := json.Unmarshal([]byte(llm.StripFences(string(resp.Content))), &cat); err != nil {
		store.Write(l.scope, keyAutoCategorized, true)
		return false, fmt.Errorf("parse categorization: %w", err)
	}

	games := toSet(cat.Games)
	music := toSet(cat.Music)

	lists := map[Category][]App{}
	for _, a := range apps {
		switch {
		case games[a.Name]:
			lists[Game] = append(lists[Game], a)
		case music[a.Name]:
			lists[Music] = append(lists[Music], a)
		default:
			lists[Social] = append(lists[Social], a)
		}
	}

	l.replaceAll(lists)
	store.Write(l.scope, keyAutoCategorized, true)
	if ledger != nil {
		ledger.AddInfo(fmt.Sprintf("Auto-categorized %d apps using AI", len(apps)))
	}
	return true, nil
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}
