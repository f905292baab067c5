package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fplmate/fpl-companion/internal/domain/team"
	qb "github.com/fplmate/fpl-companion/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

type clubTableModel struct {
	ID                  int64  `db:"id"`
	Name                string `db:"name"`
	ShortName           string `db:"short_name"`
	StrengthOverallHome int    `db:"strength_overall_home"`
	StrengthOverallAway int    `db:"strength_overall_away"`
	StrengthAttackHome  int    `db:"strength_attack_home"`
	StrengthAttackAway  int    `db:"strength_attack_away"`
	StrengthDefenceHome int    `db:"strength_defence_home"`
	StrengthDefenceAway int    `db:"strength_defence_away"`
}

var clubColumns = []string{
	"id",
	"name",
	"short_name",
	"strength_overall_home",
	"strength_overall_away",
	"strength_attack_home",
	"strength_attack_away",
	"strength_defence_home",
	"strength_defence_away",
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Club, error) {
	query, args, err := qb.Select(clubColumns...).From("clubs").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select clubs query: %w", err)
	}

	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select clubs: %w", err)
	}

	out := make([]team.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Club{
			ID:                  row.ID,
			Name:                row.Name,
			ShortName:           row.ShortName,
			StrengthOverallHome: row.StrengthOverallHome,
			StrengthOverallAway: row.StrengthOverallAway,
			StrengthAttackHome:  row.StrengthAttackHome,
			StrengthAttackAway:  row.StrengthAttackAway,
			StrengthDefenceHome: row.StrengthDefenceHome,
			StrengthDefenceAway: row.StrengthDefenceAway,
		})
	}

	return out, nil
}

func (r *TeamRepository) ReplaceAll(ctx context.Context, clubs []team.Club) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for club replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM clubs`); err != nil {
		return fmt.Errorf("clear clubs: %w", err)
	}

	for _, chunk := range chunkRows(clubs, insertChunkSize) {
		builder := qb.InsertInto("clubs").Columns(clubColumns...)
		for _, c := range chunk {
			builder.Values(
				c.ID,
				c.Name,
				c.ShortName,
				c.StrengthOverallHome,
				c.StrengthOverallAway,
				c.StrengthAttackHome,
				c.StrengthAttackAway,
				c.StrengthDefenceHome,
				c.StrengthDefenceAway,
			)
		}

		query, args, err := builder.ToSQL()
		if err != nil {
			return fmt.Errorf("build insert clubs query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert clubs: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit club replace tx: %w", err)
	}

	return nil
}
