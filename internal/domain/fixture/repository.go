package fixture

import "context"

// Repository provides read/write access to the synced fixture list.
type Repository interface {
	ListByEvent(ctx context.Context, event int) ([]Fixture, error)
	ListUpcoming(ctx context.Context, fromEvent, count int) ([]Fixture, error)
	ReplaceAll(ctx context.Context, fixtures []Fixture) error
}
