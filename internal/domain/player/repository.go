package player

import "context"

// Repository provides read/write access to the synced player universe.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Player, error)
	ReplaceAll(ctx context.Context, players []Player) error
}
