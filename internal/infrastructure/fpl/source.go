package fpl

import (
	"context"
	"fmt"

	crerr "github.com/cockroachdb/errors"

	"github.com/fplmate/fpl-companion/internal/domain/fixture"
	"github.com/fplmate/fpl-companion/internal/usecase"
)

// Source adapts the raw API client to the usecase port.
type Source struct {
	client *Client
}

func NewSource(client *Client) *Source {
	return &Source{client: client}
}

func (s *Source) FetchBootstrap(ctx context.Context) (usecase.ExternalBootstrap, error) {
	payload, err := s.client.FetchBootstrap(ctx)
	if err != nil {
		return usecase.ExternalBootstrap{}, err
	}

	return usecase.ExternalBootstrap{
		Players:      payload.Players,
		Clubs:        payload.Teams,
		CurrentEvent: payload.CurrentEvent(),
	}, nil
}

func (s *Source) FetchFixtures(ctx context.Context) ([]fixture.Fixture, error) {
	return s.client.FetchFixtures(ctx)
}

func (s *Source) FetchEntryPicks(ctx context.Context, entryID int64, event int) (usecase.ExternalEntryPicks, error) {
	payload, err := s.client.FetchEntryPicks(ctx, entryID, event)
	if err != nil {
		if crerr.Is(err, ErrEntryNotFound) {
			return usecase.ExternalEntryPicks{}, fmt.Errorf("%w: entry=%d event=%d", usecase.ErrNotFound, entryID, event)
		}
		return usecase.ExternalEntryPicks{}, err
	}

	picks := make([]usecase.ExternalPick, 0, len(payload.Picks))
	for _, p := range payload.Picks {
		picks = append(picks, usecase.ExternalPick{
			ElementID:     p.Element,
			SlotPosition:  p.Position,
			IsCaptain:     p.IsCaptain,
			IsViceCaptain: p.IsViceCaptain,
		})
	}

	return usecase.ExternalEntryPicks{
		Event:      payload.EntryHistory.Event,
		BankTenths: payload.EntryHistory.Bank,
		Picks:      picks,
	}, nil
}
