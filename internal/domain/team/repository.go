package team

import "context"

// Repository provides read/write access to the synced club list.
type Repository interface {
	List(ctx context.Context) ([]Club, error)
	ReplaceAll(ctx context.Context, clubs []Club) error
}
