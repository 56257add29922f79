package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/abhisek/grindstone/internal/track"
)

// Scoped namespaces every read and write by a track identifier. When no
// track is selected the base key is used as-is. Key resolution lives here
// and nowhere else; callers only ever see base keys.
type Scoped struct {
	kv      KV
	trackID track.ID
}

// NewScoped creates a Scoped adapter over kv with no track selected.
func NewScoped(kv KV) Scoped {
	return Scoped{kv: kv}
}

// WithTrack returns a copy of s scoped to the given track.
func (s Scoped) WithTrack(id track.ID) Scoped {
	return Scoped{kv: s.kv, trackID: id}
}

// TrackID returns the track this adapter is scoped to, or "" when unscoped.
func (s Scoped) TrackID() track.ID {
	return s.trackID
}

func (s Scoped) resolve(base string) string {
	if s.trackID == "" {
		return base
	}
	return fmt.Sprintf("%s@%s", base, s.trackID)
}

// Read unmarshals the stored JSON for base into a value of type T.
// Absent or malformed data yields def; a read never fails.
func Read[T any](s Scoped, base string, def T) T {
	raw, ok, err := s.kv.Get(s.resolve(base))
	if err != nil || !ok {
		return def
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return def
	}
	return v
}

// Write marshals v to JSON and stores it under base. Writes are
// fire-and-forget: a failure is reported on stderr and otherwise swallowed.
func Write(s Scoped, base string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: marshal %q: %v\n", base, err)
		return
	}
	if err := s.kv.Set(s.resolve(base), string(raw)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: persist %q: %v\n", base, err)
	}
}

// Clear removes the stored value for base in the current scope.
func (s Scoped) Clear(base string) {
	if err := s.kv.Delete(s.resolve(base)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: clear %q: %v\n", base, err)
	}
}
