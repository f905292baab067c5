package postgres

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/fplmate/fpl-companion/internal/domain/squad"
)

// SquadRepository persists one squad state per session. The player list is
// stored as a JSONB document: squads are read and written whole, never
// queried by player.
type SquadRepository struct {
	db *sqlx.DB
}

func NewSquadRepository(db *sqlx.DB) *SquadRepository {
	return &SquadRepository{db: db}
}

func (r *SquadRepository) Get(ctx context.Context, sessionID string) (squad.State, bool, error) {
	const query = `
SELECT session_id, players, bank, bank_set, updated_at
FROM squad_sessions
WHERE session_id = $1`

	var row struct {
		SessionID string    `db:"session_id"`
		Players   []byte    `db:"players"`
		Bank      float64   `db:"bank"`
		BankSet   bool      `db:"bank_set"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	if err := r.db.GetContext(ctx, &row, query, sessionID); err != nil {
		if isNotFound(err) {
			return squad.State{}, false, nil
		}
		return squad.State{}, false, fmt.Errorf("get squad session: %w", err)
	}

	var players []squad.Player
	if len(row.Players) > 0 {
		if err := sonic.Unmarshal(row.Players, &players); err != nil {
			return squad.State{}, false, fmt.Errorf("decode squad players session=%s: %w", sessionID, err)
		}
	}

	return squad.State{
		SessionID: row.SessionID,
		Players:   players,
		Bank:      row.Bank,
		BankSet:   row.BankSet,
		UpdatedAt: row.UpdatedAt,
	}, true, nil
}

func (r *SquadRepository) Save(ctx context.Context, state squad.State) error {
	payload, err := sonic.Marshal(state.Players)
	if err != nil {
		return fmt.Errorf("encode squad players session=%s: %w", state.SessionID, err)
	}

	const query = `
INSERT INTO squad_sessions (session_id, players, bank, bank_set, updated_at)
VALUES (:session_id, :players, :bank, :bank_set, :updated_at)
ON CONFLICT (session_id)
DO UPDATE SET
    players = EXCLUDED.players,
    bank = EXCLUDED.bank,
    bank_set = EXCLUDED.bank_set,
    updated_at = EXCLUDED.updated_at`

	updatedAt := state.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	bound, args, err := sqlx.Named(query, map[string]any{
		"session_id": state.SessionID,
		"players":    payload,
		"bank":       state.Bank,
		"bank_set":   state.BankSet,
		"updated_at": updatedAt,
	})
	if err != nil {
		return fmt.Errorf("bind upsert squad session query: %w", err)
	}
	bound = r.db.Rebind(bound)

	if _, err := r.db.ExecContext(ctx, bound, args...); err != nil {
		return fmt.Errorf("upsert squad session: %w", err)
	}

	return nil
}

func (r *SquadRepository) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM squad_sessions WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("delete squad session: %w", err)
	}

	return nil
}
