package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dfsline/contest-tracker/internal/domain/result"
	qb "github.com/dfsline/contest-tracker/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) UpsertResult(ctx context.Context, res result.Result) error {
	if err := res.Validate(); err != nil {
		return err
	}

	insertModel := resultInsertModel{
		EntryDKID:   res.EntryDKID,
		ContestDKID: res.ContestDKID,
		Name:        res.Name,
		Rank:        nullInt(res.Rank),
		Points:      nullFloat(res.Points),
	}
	query, args, err := qb.InsertModel("contest_results", insertModel, `ON CONFLICT (entry_dk_id)
DO UPDATE SET
    contest_dk_id = EXCLUDED.contest_dk_id,
    name = EXCLUDED.name,
    rank = EXCLUDED.rank,
    points = EXCLUDED.points`)
	if err != nil {
		return fmt.Errorf("build upsert result query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert result: %w", err)
	}
	return nil
}

func (r *ResultRepository) UpsertOwnership(ctx context.Context, o result.Ownership) error {
	if err := o.Validate(); err != nil {
		return err
	}

	insertModel := ownershipInsertModel{
		ContestDKID:   o.ContestDKID,
		PlayerID:      o.PlayerID,
		Ownership:     o.Ownership,
		FantasyPoints: o.FantasyPoints,
	}
	query, args, err := qb.InsertModel("contest_ownership", insertModel, `ON CONFLICT (contest_dk_id, player_id)
DO UPDATE SET
    ownership = EXCLUDED.ownership,
    fantasy_points = EXCLUDED.fantasy_points`)
	if err != nil {
		return fmt.Errorf("build upsert ownership query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert ownership: %w", err)
	}
	return nil
}

func (r *ResultRepository) ListByContest(ctx context.Context, contestDKID string) ([]result.Result, error) {
	query, args, err := qb.Select("id", "entry_dk_id", "contest_dk_id", "name", "rank", "points").
		From("contest_results").
		Where(qb.Eq("contest_dk_id", contestDKID)).
		OrderBy("rank").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select results query: %w", err)
	}

	var rows []resultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select results: %w", err)
	}

	out := make([]result.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, result.Result{
			EntryDKID:   row.EntryDKID,
			ContestDKID: row.ContestDKID,
			Name:        row.Name,
			Rank:        nullIntPtr(row.Rank),
			Points:      nullFloatPtr(row.Points),
		})
	}
	return out, nil
}

func (r *ResultRepository) ListOwnershipByContest(ctx context.Context, contestDKID string) ([]result.Ownership, error) {
	query, args, err := qb.Select("id", "contest_dk_id", "player_id", "ownership", "fantasy_points").
		From("contest_ownership").
		Where(qb.Eq("contest_dk_id", contestDKID)).
		OrderBy("ownership DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select ownership query: %w", err)
	}

	var rows []ownershipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select ownership: %w", err)
	}

	out := make([]result.Ownership, 0, len(rows))
	for _, row := range rows {
		out = append(out, result.Ownership{
			ContestDKID:   row.ContestDKID,
			PlayerID:      row.PlayerID,
			Ownership:     row.Ownership,
			FantasyPoints: row.FantasyPoints,
		})
	}
	return out, nil
}

func (r *ResultRepository) CountByContest(ctx context.Context, contestDKID string) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("contest_results").
		Where(qb.Eq("contest_dk_id", contestDKID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count results query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return count, nil
}
