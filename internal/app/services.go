package app

import (
	"github.com/abhisek/grindstone/internal/challenge"
	"github.com/abhisek/grindstone/internal/datetime"
	"github.com/abhisek/grindstone/internal/llm"
	"github.com/abhisek/grindstone/internal/motivation"
	"github.com/abhisek/grindstone/internal/session"
	"github.com/abhisek/grindstone/internal/store"
	"github.com/abhisek/grindstone/internal/track"
	"github.com/abhisek/grindstone/internal/wallet"
)

const keySelectedTrack = "selectedTrack"

// Services bundles every domain service the TUI screens draw on. Wallet,
// app library and sessions are global; challenge and motivation state is
// scoped to the selected track.
type Services struct {
	Base       store.Scoped
	Clock      datetime.Clock
	Wallet     *wallet.Wallet
	Engine     *challenge.Engine
	Motivation *motivation.Service
	Library    *session.Library
	Sessions   *session.Manager
	Provider   llm.Provider

	selected track.Track
	hasTrack bool
	today    string
}

// NewServices wires the domain services over an open store. provider and
// launcher may be nil: the app then runs with AI features and app
// launching disabled. The persisted track selection, if any, is activated
// before returning.
func NewServices(st *store.Store, provider llm.Provider, launcher session.Launcher, clock datetime.Clock) *Services {
	base := store.NewScoped(st.KV())
	wal := wallet.New(base, clock.Now)

	s := &Services{
		Base:       base,
		Clock:      clock,
		Wallet:     wal,
		Engine:     challenge.New(base, clock, wal, provider),
		Motivation: motivation.New(base, clock, provider),
		Library:    session.NewLibrary(base),
		Sessions:   session.NewManager(base, wal, launcher, clock.Now),
		Provider:   provider,
		today:      clock.Today(),
	}

	if id := store.Read(base, keySelectedTrack, track.ID("")); id != "" {
		if trk, ok := track.ByID(id); ok {
			s.activate(trk)
		}
	}
	return s
}

// SelectTrack persists the choice and propagates it to every track-scoped
// service. Selecting the already-active track is a no-op.
func (s *Services) SelectTrack(id track.ID) error {
	trk, ok := track.ByID(id)
	if !ok {
		return track.ErrUnknownTrack
	}
	if s.hasTrack && s.selected.ID == id {
		return nil
	}
	store.Write(s.Base, keySelectedTrack, id)
	s.activate(trk)
	return nil
}

func (s *Services) activate(trk track.Track) {
	s.selected = trk
	s.hasTrack = true
	s.Engine.OnTrackActivated(trk.ID)
	s.Motivation.OnTrackActivated(trk)
}

// SelectedTrack returns the active track, if one has been chosen.
func (s *Services) SelectedTrack() (track.Track, bool) {
	return s.selected, s.hasTrack
}

// TickDay checks whether the calendar day has changed since the last call
// and, if so, runs the daily rollover. Returns true on a day change.
func (s *Services) TickDay() bool {
	today := s.Clock.Today()
	if today == s.today {
		return false
	}
	s.today = today
	s.Engine.OnDailyRollover()
	return true
}

// Close releases background resources.
func (s *Services) Close() {
	s.Sessions.Close()
}
