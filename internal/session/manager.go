package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/grindstone/internal/store"
	"github.com/abhisek/grindstone/internal/wallet"
)

// Session is the single active timed-access grant. At most one exists
// process-wide.
type Session struct {
	Category  Category  `json:"category"`
	AppID     string    `json:"appId"`
	AppName   string    `json:"appName"`
	AppPath   string    `json:"appPath"`
	StartedAt time.Time `json:"startedAt"`
	EndsAt    time.Time `json:"endsAt"`
}

// Remaining returns the time left until expiry at the given instant,
// clamped at zero.
func (s Session) Remaining(now time.Time) time.Duration {
	d := s.EndsAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// ErrZeroDuration rejects a spend that buys no time.
var ErrZeroDuration = errors.New("session duration must be positive")

const keySession = "activeSession"

// StartResult reports a successful session start. LaunchErr carries a
// best-effort launch failure: the coins are spent and the clock is running
// regardless, the user is just told the app did not come up.
type StartResult struct {
	Session   Session
	Minutes   int
	LaunchErr error
}

// Manager owns the active session. Spending goes through the wallet;
// launching goes through an optional Launcher. Expiry runs off a single
// timer scheduled for EndsAt rather than per-second polling.
type Manager struct {
	mu       sync.Mutex
	scope    store.Scoped
	wal      *wallet.Wallet
	launcher Launcher
	now      func() time.Time

	active *Session
	timer  *time.Timer

	// OnExpired, when set, is called (on the timer goroutine) after a
	// session is auto-stopped at expiry.
	OnExpired func(Session)
}

// NewManager loads any persisted session and resumes its expiry watch.
// launcher may be nil for bookkeeping-only mode.
func NewManager(scope store.Scoped, wal *wallet.Wallet, launcher Launcher, now func() time.Time) *Manager {
	if now == nil {
		now = time.Now
	}
	m := &Manager{scope: scope, wal: wal, launcher: launcher, now: now}

	if s := store.Read(scope, keySession, (*Session)(nil)); s != nil {
		m.active = s
		if s.EndsAt.After(m.now()) {
			m.scheduleLocked()
		} else {
			// Expired while the app was closed.
			m.stopLocked("Time expired")
		}
	}
	return m
}

// Active returns a copy of the running session, or nil.
func (m *Manager) Active() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return nil
	}
	s := *m.active
	return &s
}

// Start converts coins into a timed session for app. The spend is the sole
// admission gate; an already-running session is stopped best-effort and
// replaced. A launch failure is reported in the result but does not roll
// back the debit or cancel the session.
func (m *Manager) Start(category Category, coins float64, app App) (StartResult, error) {
	minutes := int(coins * float64(category.MinutesPerCoin()))
	if minutes <= 0 {
		return StartResult{}, ErrZeroDuration
	}

	reason := fmt.Sprintf("%s - %s (%dm)", strings.ToUpper(string(category)), app.Name, minutes)
	if err := m.wal.Spend(coins, reason); err != nil {
		return StartResult{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Replace any running session; its app is stopped best-effort.
	if m.active != nil && m.launcher != nil {
		m.launcher.Stop()
	}
	m.cancelTimerLocked()

	now := m.now()
	s := Session{
		Category:  category,
		AppID:     app.ID,
		AppName:   app.Name,
		AppPath:   app.Path,
		StartedAt: now,
		EndsAt:    now.Add(time.Duration(minutes) * time.Minute),
	}
	m.active = &s
	store.Write(m.scope, keySession, m.active)
	m.scheduleLocked()

	res := StartResult{Session: s, Minutes: minutes}
	if m.launcher != nil && app.Path != "" {
		if err := m.launcher.Start(app.Path); err != nil {
			// The clock keeps running; the debit stands.
			res.LaunchErr = err
		}
	}
	return res, nil
}

// Stop ends the active session: best-effort app stop, one info ledger
// entry, session cleared. No-op without an active session.
func (m *Manager) Stop(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked(reason)
}

// stopLocked implements Stop. Callers hold m.mu.
func (m *Manager) stopLocked(reason string) {
	if m.active == nil {
		return
	}
	if m.launcher != nil {
		m.launcher.Stop()
	}
	m.wal.AddInfo(fmt.Sprintf("Session ended: %s - %s (%s)",
		strings.ToUpper(string(m.active.Category)), m.active.AppName, reason))

	m.active = nil
	m.cancelTimerLocked()
	m.scope.Clear(keySession)
}

// CheckExpiry stops the session if its end time has passed. The timer makes
// this redundant in steady state; the coordinator also calls it on its
// periodic tick as a belt against missed or slept-through timers.
func (m *Manager) CheckExpiry() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil {
		return
	}
	if !m.now().Before(m.active.EndsAt) {
		m.stopLocked("Time expired")
	}
}

// Close cancels the expiry timer without stopping the session; the
// persisted session resumes on the next start.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelTimerLocked()
}

// scheduleLocked arms the expiry timer for the active session. Callers
// hold m.mu.
func (m *Manager) scheduleLocked() {
	if m.active == nil {
		return
	}
	ends := m.active.EndsAt
	m.timer = time.AfterFunc(ends.Sub(m.now()), func() {
		m.mu.Lock()
		// The session may have been stopped or replaced since arming.
		if m.active == nil || !m.active.EndsAt.Equal(ends) {
			m.mu.Unlock()
			return
		}
		s := *m.active
		m.stopLocked("Time expired")
		m.mu.Unlock()

		if m.OnExpired != nil {
			m.OnExpired(s)
		}
	})
}

func (m *Manager) cancelTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
