package wallet

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/abhisek/grindstone/internal/store"
)

// EntryKind classifies a ledger entry.
type EntryKind string

const (
	KindEarn  EntryKind = "earn"
	KindSpend EntryKind = "spend"
	KindInfo  EntryKind = "info"
)

// Entry is one row of the append-only history ledger. Info entries carry a
// zero amount.
type Entry struct {
	Kind   EntryKind `json:"type"`
	Reason string    `json:"reason"`
	Amount float64   `json:"amount"`
	At     time.Time `json:"ts"`
}

// ErrInsufficientCoins is returned by Spend when the balance cannot cover
// the requested amount.
var ErrInsufficientCoins = errors.New("insufficient coins")

const (
	keyBalance = "coins"
	keyHistory = "history"
)

// Wallet owns the global coin balance and the history ledger. Coins are
// fractional (a correct quiz answer is worth 0.2), so the balance is a
// float compared with a small epsilon. Wallet state is not track-scoped.
type Wallet struct {
	mu      sync.Mutex
	scope   store.Scoped
	now     func() time.Time
	balance float64
	history []Entry // newest first
}

// New loads wallet state from the unscoped store. Missing or corrupted
// state degrades to an empty wallet.
func New(scope store.Scoped, now func() time.Time) *Wallet {
	if now == nil {
		now = time.Now
	}
	return &Wallet{
		scope:   scope,
		now:     now,
		balance: store.Read(scope, keyBalance, 0.0),
		history: store.Read(scope, keyHistory, []Entry(nil)),
	}
}

// Balance returns the current coin balance.
func (w *Wallet) Balance() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.balance
}

// History returns a copy of the ledger, newest first.
func (w *Wallet) History() []Entry {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Entry, len(w.history))
	copy(out, w.history)
	return out
}

// Add credits amount coins with an earn ledger entry. Non-positive amounts
// are ignored.
func (w *Wallet) Add(amount float64, reason string) {
	if amount <= 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	w.balance = roundCoins(w.balance + amount)
	w.prepend(Entry{Kind: KindEarn, Reason: reason, Amount: amount, At: w.now()})
	w.persist()
}

// Spend debits amount coins with a spend ledger entry. It fails with
// ErrInsufficientCoins and no state change when the balance cannot cover
// the amount. This is the sole admission gate for starting a session.
func (w *Wallet) Spend(amount float64, reason string) error {
	if amount <= 0 {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if amount > w.balance+coinEpsilon {
		return ErrInsufficientCoins
	}

	w.balance = roundCoins(w.balance - amount)
	w.prepend(Entry{Kind: KindSpend, Reason: reason, Amount: amount, At: w.now()})
	w.persist()
	return nil
}

// AddInfo appends a zero-amount info entry to the ledger.
func (w *Wallet) AddInfo(reason string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.prepend(Entry{Kind: KindInfo, Reason: reason, At: w.now()})
	w.persist()
}

// prepend inserts e at the head of the ledger. Callers hold w.mu.
func (w *Wallet) prepend(e Entry) {
	w.history = append([]Entry{e}, w.history...)
}

func (w *Wallet) persist() {
	store.Write(w.scope, keyBalance, w.balance)
	store.Write(w.scope, keyHistory, w.history)
}

// coinEpsilon absorbs float drift from repeated 0.2-coin credits.
const coinEpsilon = 1e-9

// roundCoins keeps the balance tidy at two decimal places.
func roundCoins(v float64) float64 {
	return math.Round(v*100) / 100
}
