package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fplmate/fpl-companion/internal/domain/player"
	qb "github.com/fplmate/fpl-companion/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"code",
	"web_name",
	"first_name",
	"second_name",
	"team_id",
	"element_type",
	"now_cost",
	"total_points",
	"goals_scored",
	"assists",
	"clean_sheets",
	"minutes",
	"form",
	"chance_of_playing",
	"updated_at",
}

var playerInsertColumns = playerSelectColumns[:len(playerSelectColumns)-1]

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		OrderBy("total_points DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, ids []int64) ([]player.Player, error) {
	if len(ids) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.In("id", int64SliceToAny(ids))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PlayerRepository) ReplaceAll(ctx context.Context, players []player.Player) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for player replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM players`); err != nil {
		return fmt.Errorf("clear players: %w", err)
	}

	for _, chunk := range chunkRows(players, insertChunkSize) {
		builder := qb.InsertInto("players").Columns(playerInsertColumns...)
		for _, p := range chunk {
			builder.Values(
				p.ID,
				p.Code,
				p.WebName,
				p.FirstName,
				p.SecondName,
				p.TeamID,
				p.ElementType,
				p.NowCost,
				p.TotalPoints,
				p.GoalsScored,
				p.Assists,
				p.CleanSheets,
				p.Minutes,
				p.Form,
				p.ChanceOfPlayingNextRound,
			)
		}

		query, args, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert players query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert players: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player replace tx: %w", err)
	}

	return nil
}

func int64SliceToAny(items []int64) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
