package squad

import (
	"context"
	"time"
)

// State is the persistable part of a session's ledger.
type State struct {
	SessionID string    `json:"session_id"`
	Players   []Player  `json:"players"`
	Bank      float64   `json:"bank"`
	BankSet   bool      `json:"bank_set"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Repository stores squad state per session so a squad survives restarts.
type Repository interface {
	Get(ctx context.Context, sessionID string) (State, bool, error)
	Save(ctx context.Context, state State) error
	Delete(ctx context.Context, sessionID string) error
}
