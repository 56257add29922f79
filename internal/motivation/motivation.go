// Package motivation fetches a daily motivational quote tailored to the
// selected career track. One quote per track per day; a provider failure
// degrades to a canned fallback so the home screen is never empty.
package motivation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/abhisek/grindstone/internal/datetime"
	"github.com/abhisek/grindstone/internal/llm"
	"github.com/abhisek/grindstone/internal/store"
	"github.com/abhisek/grindstone/internal/track"
)

const (
	keyQuote     = "motivationQuote"
	keyQuoteDate = "lastMotivationDate"
)

const motivationMaxTokens = 500

// Service owns the per-track daily quote. State is track-scoped.
type Service struct {
	mu       sync.Mutex
	scope    store.Scoped
	clock    datetime.Clock
	provider llm.Provider

	active   track.Track
	hasTrack bool
	quote    string
	lastDate string
}

// New creates a Service with no track selected.
func New(base store.Scoped, clock datetime.Clock, provider llm.Provider) *Service {
	return &Service{scope: base, clock: clock, provider: provider}
}

// OnTrackActivated switches the service to the given track and loads its
// persisted quote state.
func (s *Service) OnTrackActivated(trk track.Track) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = trk
	s.hasTrack = true
	s.scope = s.scope.WithTrack(trk.ID)
	s.quote = store.Read(s.scope, keyQuote, "")
	s.lastDate = store.Read(s.scope, keyQuoteDate, "")
}

// Quote returns the current quote, which may be empty before the first
// fetch completes.
func (s *Service) Quote() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quote
}

// NeedsRefresh reports whether today's quote has not been fetched yet.
func (s *Service) NeedsRefresh() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasTrack && !s.clock.IsToday(s.lastDate)
}

// Refresh fetches today's quote from the provider. A provider failure
// falls back to a canned track-specific quote and still marks the day
// done, so a flaky provider is asked once per day at most.
func (s *Service) Refresh(ctx context.Context) string {
	s.mu.Lock()
	if !s.hasTrack {
		s.mu.Unlock()
		return ""
	}
	trk := s.active
	provider := s.provider
	s.mu.Unlock()

	quote := Fallback(trk)
	if provider != nil {
		if q, err := fetchQuote(ctx, provider, trk); err == nil {
			quote = q
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// The user may have switched tracks mid-flight; keep the response
	// only if it still belongs to the active track.
	if !s.hasTrack || s.active.ID != trk.ID {
		return s.quote
	}
	s.quote = quote
	s.lastDate = s.clock.Today()
	store.Write(s.scope, keyQuote, s.quote)
	store.Write(s.scope, keyQuoteDate, s.lastDate)
	return s.quote
}

// Fallback returns the canned quote used when the provider is missing
// or failing.
func Fallback(trk track.Track) string {
	return fmt.Sprintf("Every expert %s was once a beginner. Keep learning, keep building, and trust the process. Your consistent effort today shapes your expertise tomorrow.", trk.Name)
}

func buildMotivationPrompt(trk track.Track) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate a single powerful, personalized motivational quote for someone pursuing a career as a %s.\n\n", trk.Name)
	b.WriteString("Context:\n")
	fmt.Fprintf(&b, "- Career: %s\n", trk.Name)
	fmt.Fprintf(&b, "- Key skills they're building: %s\n", strings.Join(trk.Skills, ", "))
	fmt.Fprintf(&b, "- Inspirational figures in their field: %s\n\n", strings.Join(trk.Achievers, ", "))
	fmt.Fprintf(&b, `Generate ONE motivational quote (2-3 sentences max) that:
1. Is specific to the %s career path
2. Encourages consistent learning and practice
3. Relates to their key skills or the journey ahead
4. Is inspiring but realistic

Return ONLY the quote, nothing else. No quotation marks, no preamble.`, trk.Name)
	return b.String()
}

func fetchQuote(ctx context.Context, provider llm.Provider, trk track.Track) (string, error) {
	ctx = llm.WithPurpose(ctx, "motivation")

	resp, err := provider.Generate(ctx, llm.Request{
		System: fmt.Sprintf("You are a motivational coach for aspiring %ss.", trk.Name),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildMotivationPrompt(trk)},
		},
		MaxTokens:   motivationMaxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	quote := decodeQuote(resp.Content)
	if quote == "" {
		return "", fmt.Errorf("empty motivation response")
	}
	return quote, nil
}

// decodeQuote extracts plain text from the response, which may arrive as a
// JSON-encoded string or as raw text.
func decodeQuote(raw json.RawMessage) string {
	text := llm.StripFences(string(raw))
	var s string
	if err := json.Unmarshal([]byte(text), &s); err == nil {
		text = s
	}
	return strings.Trim(strings.TrimSpace(text), `"`)
}
