package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fplmate/fpl-companion/internal/domain/player"
	"github.com/fplmate/fpl-companion/internal/domain/squad"
	"github.com/fplmate/fpl-companion/internal/platform/logging"
)

// SquadService owns one squad ledger per session. Ledgers live in memory for
// the session's lifetime and are mirrored to the squad repository after each
// committed mutation so a restart does not lose them.
type SquadService struct {
	mu      sync.Mutex
	ledgers map[string]*squad.Ledger

	rules      squad.Rules
	playerRepo player.Repository
	squadRepo  squad.Repository
	source     GameDataSource
	events     *EventTracker
	logger     *logging.Logger
}

func NewSquadService(
	rules squad.Rules,
	playerRepo player.Repository,
	squadRepo squad.Repository,
	source GameDataSource,
	events *EventTracker,
	logger *logging.Logger,
) *SquadService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SquadService{
		ledgers:    make(map[string]*squad.Ledger),
		rules:      rules,
		playerRepo: playerRepo,
		squadRepo:  squadRepo,
		source:     source,
		events:     events,
		logger:     logger,
	}
}

func (s *SquadService) GetSquad(ctx context.Context, sessionID string) (squad.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.GetSquad")
	defer span.End()

	ledger, err := s.ledgerFor(ctx, sessionID)
	if err != nil {
		return squad.Snapshot{}, err
	}

	return ledger.Snapshot(), nil
}

// AddPlayer buys the given player into the session's squad.
func (s *SquadService) AddPlayer(ctx context.Context, sessionID string, playerID int64) (squad.Player, squad.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.AddPlayer")
	defer span.End()

	ledger, err := s.ledgerFor(ctx, sessionID)
	if err != nil {
		return squad.Player{}, squad.Snapshot{}, err
	}

	rec, err := s.playerRecord(ctx, playerID)
	if err != nil {
		return squad.Player{}, squad.Snapshot{}, err
	}

	added, err := ledger.Add(rec)
	if err != nil {
		return squad.Player{}, squad.Snapshot{}, err
	}

	snap := ledger.Snapshot()
	s.persist(ctx, sessionID, snap)
	return added, snap, nil
}

// RemovePlayer sells the given player out of the session's squad. Removing a
// player who is not in the squad is a no-op.
func (s *SquadService) RemovePlayer(ctx context.Context, sessionID string, playerID int64) (bool, squad.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.RemovePlayer")
	defer span.End()

	ledger, err := s.ledgerFor(ctx, sessionID)
	if err != nil {
		return false, squad.Snapshot{}, err
	}

	removed, err := ledger.Remove(playerID)
	if err != nil {
		return false, squad.Snapshot{}, err
	}

	snap := ledger.Snapshot()
	if removed {
		s.persist(ctx, sessionID, snap)
	}
	return removed, snap, nil
}

// Transfer swaps one squad player for one universe player atomically and
// returns the bank balance after the move.
func (s *SquadService) Transfer(ctx context.Context, sessionID string, outgoingID, incomingID int64) (float64, squad.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.Transfer")
	defer span.End()

	if outgoingID == incomingID {
		return 0, squad.Snapshot{}, fmt.Errorf("%w: outgoing and incoming player are the same", ErrInvalidInput)
	}

	ledger, err := s.ledgerFor(ctx, sessionID)
	if err != nil {
		return 0, squad.Snapshot{}, err
	}

	rec, err := s.playerRecord(ctx, incomingID)
	if err != nil {
		return 0, squad.Snapshot{}, err
	}

	newBank, err := ledger.Swap(outgoingID, rec)
	if err != nil {
		return 0, squad.Snapshot{}, err
	}

	snap := ledger.Snapshot()
	s.persist(ctx, sessionID, snap)
	return newBank, snap, nil
}

// ClearSquad resets the session's squad to empty.
func (s *SquadService) ClearSquad(ctx context.Context, sessionID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.ClearSquad")
	defer span.End()

	ledger, err := s.ledgerFor(ctx, sessionID)
	if err != nil {
		return err
	}

	ledger.Clear()
	if err := s.squadRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete squad state: %w", err)
	}
	return nil
}

// ImportEntry replaces the session's squad with an FPL manager's picks for
// the given gameweek, zero meaning the active one. Prices come from the
// local player universe; the provider's bank is taken as-is.
func (s *SquadService) ImportEntry(ctx context.Context, sessionID string, entryID int64, event int) (squad.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.ImportEntry")
	defer span.End()

	if entryID <= 0 {
		return squad.Snapshot{}, fmt.Errorf("%w: entry id must be greater than zero", ErrInvalidInput)
	}
	if event <= 0 {
		event = s.events.Current()
	}

	ledger, err := s.ledgerFor(ctx, sessionID)
	if err != nil {
		return squad.Snapshot{}, err
	}

	picks, err := s.source.FetchEntryPicks(ctx, entryID, event)
	if err != nil {
		return squad.Snapshot{}, err
	}
	if len(picks.Picks) == 0 {
		return squad.Snapshot{}, fmt.Errorf("%w: entry=%d has no picks for event=%d", ErrNotFound, entryID, event)
	}

	ids := make([]int64, 0, len(picks.Picks))
	for _, p := range picks.Picks {
		ids = append(ids, p.ElementID)
	}
	records, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return squad.Snapshot{}, fmt.Errorf("resolve picked players: %w", err)
	}
	recordByID := make(map[int64]player.Player, len(records))
	for _, rec := range records {
		recordByID[rec.ID] = rec
	}

	players := make([]squad.Player, 0, len(picks.Picks))
	for _, pick := range picks.Picks {
		rec, ok := recordByID[pick.ElementID]
		if !ok {
			return squad.Snapshot{}, fmt.Errorf("%w: picked player=%d is not in the local universe, sync first", ErrNotFound, pick.ElementID)
		}
		sp, err := squad.FromRecord(rec)
		if err != nil {
			return squad.Snapshot{}, fmt.Errorf("format picked player=%d: %w", pick.ElementID, err)
		}
		sp.PositionInTeam = pick.SlotPosition
		sp.IsCaptain = pick.IsCaptain
		sp.IsViceCaptain = pick.IsViceCaptain
		players = append(players, sp)
	}
	sort.SliceStable(players, func(i, j int) bool { return players[i].PositionInTeam < players[j].PositionInTeam })

	bank := squad.Round1(float64(picks.BankTenths) / 10)
	if err := ledger.Import(players, bank); err != nil {
		return squad.Snapshot{}, err
	}

	snap := ledger.Snapshot()
	s.persist(ctx, sessionID, snap)
	s.logger.InfoContext(ctx, "squad imported",
		"session_id", sessionID,
		"entry_id", entryID,
		"event", event,
		"players", snap.Size,
		"bank", snap.Bank,
	)
	return snap, nil
}

// SnapshotIfExists returns the session's squad without creating a ledger for
// an unknown session.
func (s *SquadService) SnapshotIfExists(ctx context.Context, sessionID string) (squad.Snapshot, bool, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return squad.Snapshot{}, false, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}

	s.mu.Lock()
	ledger, ok := s.ledgers[sessionID]
	s.mu.Unlock()
	if ok {
		return ledger.Snapshot(), true, nil
	}

	state, found, err := s.squadRepo.Get(ctx, sessionID)
	if err != nil {
		return squad.Snapshot{}, false, fmt.Errorf("load squad state: %w", err)
	}
	if !found {
		return squad.Snapshot{}, false, nil
	}

	ledger = s.restoreLedger(sessionID, state)
	return ledger.Snapshot(), true, nil
}

func (s *SquadService) ledgerFor(ctx context.Context, sessionID string) (*squad.Ledger, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}

	s.mu.Lock()
	if ledger, ok := s.ledgers[sessionID]; ok {
		s.mu.Unlock()
		return ledger, nil
	}
	s.mu.Unlock()

	// Load outside the lock; restoreLedger re-checks for a racing creation.
	state, found, err := s.squadRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load squad state: %w", err)
	}
	if !found {
		state = squad.State{SessionID: sessionID}
	}

	return s.restoreLedger(sessionID, state), nil
}

func (s *SquadService) restoreLedger(sessionID string, state squad.State) *squad.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ledger, ok := s.ledgers[sessionID]; ok {
		return ledger
	}

	ledger := squad.NewLedger(s.rules)
	if len(state.Players) > 0 || state.BankSet {
		ledger.Restore(state.Players, state.Bank, state.BankSet)
	}
	s.ledgers[sessionID] = ledger
	return ledger
}

func (s *SquadService) playerRecord(ctx context.Context, playerID int64) (player.Player, error) {
	if playerID <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}

	items, err := s.playerRepo.GetByIDs(ctx, []int64{playerID})
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if len(items) == 0 {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}

	return items[0], nil
}

// persist mirrors the committed snapshot to storage. A storage failure is
// logged rather than surfaced: the mutation already committed in memory and
// the next successful mutation will re-save the full state.
func (s *SquadService) persist(ctx context.Context, sessionID string, snap squad.Snapshot) {
	state := squad.State{
		SessionID: sessionID,
		Players:   snap.Players,
		Bank:      snap.Bank,
		BankSet:   snap.BankSet,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.squadRepo.Save(ctx, state); err != nil {
		s.logger.WarnContext(ctx, "persist squad state failed", "session_id", sessionID, "error", err)
	}
}
