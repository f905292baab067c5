package squad

import (
	"fmt"
	"sync"

	"github.com/fplmate/fpl-companion/internal/domain/player"
)

// Snapshot is an immutable view of the ledger state.
type Snapshot struct {
	Players   []Player `json:"players"`
	Bank      float64  `json:"bank"`
	BankSet   bool     `json:"bank_set"`
	TeamValue float64  `json:"team_value"`
	Size      int      `json:"size"`
	Complete  bool     `json:"complete"`
}

// Ledger owns the squad's mutable state: the player list and the bank
// balance. Every mutation validates fully before committing, so a rejected
// call leaves both untouched. The bank starts uninitialized and is derived
// from the budget minus squad valuation the first time it is needed.
//
// Subscribers receive a snapshot after every committed mutation; a reactive
// UI layer hangs off these notifications instead of owning the state itself.
type Ledger struct {
	mu          sync.Mutex
	rules       Rules
	totalBudget float64
	players     []Player
	bank        float64
	bankSet     bool
	subscribers map[int]func(Snapshot)
	nextSubID   int
}

func NewLedger(rules Rules) *Ledger {
	return &Ledger{
		rules:       rules,
		totalBudget: TotalBudget,
		subscribers: make(map[int]func(Snapshot)),
	}
}

// Subscribe registers a change listener and returns its cancel func.
// Listeners run synchronously inside the mutating call, after commit.
func (l *Ledger) Subscribe(fn func(Snapshot)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextSubID
	l.nextSubID++
	l.subscribers[id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subscribers, id)
	}
}

func (l *Ledger) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.snapshotLocked()
}

// IsComplete reports whether the squad has its full 15 players.
func (l *Ledger) IsComplete() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.players) == l.rules.SquadSize
}

// Add buys a player into the squad. The committed bank drops by the
// player's current price.
func (l *Ledger) Add(rec player.Player) (Player, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.players) >= l.rules.SquadSize {
		return Player{}, ErrSquadComplete
	}

	sp, err := FromRecord(rec)
	if err != nil {
		return Player{}, fmt.Errorf("format player record: %w", err)
	}

	if err := l.rules.CanAdd(sp, l.players); err != nil {
		return Player{}, err
	}

	bank := l.effectiveBankLocked()
	if sp.Price > bank {
		return Player{}, fmt.Errorf("%w to add this player: price=%.1f bank=%.1f", ErrInsufficientBudget, sp.Price, bank)
	}

	l.players = append(l.players, sp)
	l.bank = Round1(bank - sp.Price)
	l.bankSet = true
	l.notifyLocked()

	return sp, nil
}

// Remove sells a player out of the squad, refunding the selling value.
// Removing an absent id is a no-op and reports false.
func (l *Ledger) Remove(id int64) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOfLocked(id)
	if idx < 0 {
		return false, nil
	}

	refund := l.players[idx].SellValue()
	bank := l.effectiveBankLocked()

	l.players = append(l.players[:idx], l.players[idx+1:]...)
	l.bank = Round1(bank + refund)
	l.bankSet = true
	l.notifyLocked()

	return true, nil
}

// Swap sells the outgoing player and buys the incoming record in one atomic
// move, returning the new bank balance. The transfer budget is the bank plus
// the outgoing player's selling value.
func (l *Ledger) Swap(outgoingID int64, rec player.Player) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	idx := l.indexOfLocked(outgoingID)
	if idx < 0 {
		return 0, fmt.Errorf("%w: id=%d", ErrPlayerNotFound, outgoingID)
	}
	outgoing := l.players[idx]

	incoming, err := FromRecord(rec)
	if err != nil {
		return 0, fmt.Errorf("format player record: %w", err)
	}
	// A just-acquired player starts with no profit, whatever the record says.
	incoming.SellingPrice = incoming.Price

	if err := l.rules.CanReplace(outgoing, incoming, l.players); err != nil {
		return 0, err
	}

	outgoingValue := outgoing.SellValue()
	bank := l.effectiveBankLocked()
	available := Round1(bank + outgoingValue)
	if incoming.Price > available {
		return 0, fmt.Errorf("%w for this transfer: price=%.1f available=%.1f", ErrInsufficientBudget, incoming.Price, available)
	}

	l.players[idx] = incoming
	l.bank = Round1(bank + outgoingValue - incoming.Price)
	l.bankSet = true
	l.notifyLocked()

	return l.bank, nil
}

// Clear resets the squad to empty with the bank back to uninitialized.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.players = nil
	l.bank = 0
	l.bankSet = false
	l.notifyLocked()
}

// Import bulk-replaces the squad from an external source whose prices are
// already resolved. The source is trusted to satisfy quotas; prices and bank
// are taken as-is, not recomputed.
func (l *Ledger) Import(players []Player, bank float64) error {
	if len(players) > l.rules.SquadSize {
		return fmt.Errorf("%w: import carries %d players", ErrSquadComplete, len(players))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.players = append([]Player(nil), players...)
	l.bank = Round1(bank)
	l.bankSet = true
	l.notifyLocked()

	return nil
}

// Restore rehydrates ledger state from a persisted snapshot without
// re-running pricing. Used when a session is loaded from storage.
func (l *Ledger) Restore(players []Player, bank float64, bankSet bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.players = append([]Player(nil), players...)
	l.bank = Round1(bank)
	l.bankSet = bankSet
}

func (l *Ledger) indexOfLocked(id int64) int {
	for i, p := range l.players {
		if p.ID == id {
			return i
		}
	}

	return -1
}

// effectiveBankLocked derives the bank from the budget when it has not been
// initialized yet; it does not persist the derived value.
func (l *Ledger) effectiveBankLocked() float64 {
	if l.bankSet {
		return l.bank
	}

	return Round1(l.totalBudget - Valuation(l.players))
}

func (l *Ledger) snapshotLocked() Snapshot {
	players := append([]Player(nil), l.players...)

	return Snapshot{
		Players:   players,
		Bank:      l.effectiveBankLocked(),
		BankSet:   l.bankSet,
		TeamValue: Valuation(players),
		Size:      len(players),
		Complete:  len(players) == l.rules.SquadSize,
	}
}

func (l *Ledger) notifyLocked() {
	if len(l.subscribers) == 0 {
		return
	}

	snap := l.snapshotLocked()
	for _, fn := range l.subscribers {
		fn(snap)
	}
}
