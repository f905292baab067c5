package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fplmate/fpl-companion/internal/domain/fixture"
	qb "github.com/fplmate/fpl-companion/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

type fixtureTableModel struct {
	ID             int64      `db:"id"`
	Event          int        `db:"event"`
	HomeTeamID     int64      `db:"team_h"`
	AwayTeamID     int64      `db:"team_a"`
	HomeDifficulty int        `db:"team_h_difficulty"`
	AwayDifficulty int        `db:"team_a_difficulty"`
	KickoffTime    *time.Time `db:"kickoff_time"`
	Finished       bool       `db:"finished"`
}

var fixtureColumns = []string{
	"id",
	"event",
	"team_h",
	"team_a",
	"team_h_difficulty",
	"team_a_difficulty",
	"kickoff_time",
	"finished",
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) ListByEvent(ctx context.Context, event int) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(fixtureColumns...).From("fixtures").
		Where(qb.Eq("event", event)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by event query: %w", err)
	}

	return r.selectFixtures(ctx, query, args)
}

func (r *FixtureRepository) ListUpcoming(ctx context.Context, fromEvent, count int) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(fixtureColumns...).From("fixtures").
		Where(qb.Expr("event >= ? AND event < ?", fromEvent, fromEvent+count)).
		OrderBy("event", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select upcoming fixtures query: %w", err)
	}

	return r.selectFixtures(ctx, query, args)
}

func (r *FixtureRepository) selectFixtures(ctx context.Context, query string, args []any) ([]fixture.Fixture, error) {
	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixture.Fixture{
			ID:             row.ID,
			Event:          row.Event,
			HomeTeamID:     row.HomeTeamID,
			AwayTeamID:     row.AwayTeamID,
			HomeDifficulty: row.HomeDifficulty,
			AwayDifficulty: row.AwayDifficulty,
			KickoffTime:    row.KickoffTime,
			Finished:       row.Finished,
		})
	}

	return out, nil
}

func (r *FixtureRepository) ReplaceAll(ctx context.Context, fixtures []fixture.Fixture) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for fixture replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fixtures`); err != nil {
		return fmt.Errorf("clear fixtures: %w", err)
	}

	for _, chunk := range chunkRows(fixtures, insertChunkSize) {
		builder := qb.InsertInto("fixtures").Columns(fixtureColumns...)
		for _, f := range chunk {
			builder.Values(
				f.ID,
				f.Event,
				f.HomeTeamID,
				f.AwayTeamID,
				f.HomeDifficulty,
				f.AwayDifficulty,
				f.KickoffTime,
				f.Finished,
			)
		}

		query, args, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert fixtures query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert fixtures: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit fixture replace tx: %w", err)
	}

	return nil
}
