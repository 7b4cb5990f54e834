package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dfsline/contest-tracker/internal/domain/contest"
	qb "github.com/dfsline/contest-tracker/internal/platform/querybuilder"
)

type ContestRepository struct {
	db *sqlx.DB
}

var contestSelectColumns = []string{
	"id",
	"dk_id",
	"date",
	"start_at",
	"sport",
	"name",
	"total_prizes",
	"entries",
	"entry_fee",
	"positions_paid",
	"draft_group_id",
}

func NewContestRepository(db *sqlx.DB) *ContestRepository {
	return &ContestRepository{db: db}
}

// Upsert creates or enriches a contest by dk_id. COALESCE on the conflict
// branch keeps previously stored values when the incoming field is null, so a
// source reporting less detail never erases what another source saw.
func (r *ContestRepository) Upsert(ctx context.Context, c contest.Contest) error {
	if err := c.Validate(); err != nil {
		return err
	}

	insertModel := contestInsertModel{
		DKID:          c.DKID,
		Date:          nullTime(c.Date),
		StartAt:       nullTime(c.StartAt),
		Sport:         nullString(c.Sport),
		Name:          nullString(c.Name),
		TotalPrizes:   nullFloat(c.TotalPrizes),
		Entries:       nullInt(c.Entries),
		EntryFee:      nullFloat(c.EntryFee),
		PositionsPaid: nullInt(c.PositionsPaid),
		DraftGroupID:  nullInt(c.DraftGroupID),
	}
	query, args, err := qb.InsertModel("contests", insertModel, `ON CONFLICT (dk_id)
DO UPDATE SET
    date = COALESCE(EXCLUDED.date, contests.date),
    start_at = COALESCE(EXCLUDED.start_at, contests.start_at),
    sport = COALESCE(EXCLUDED.sport, contests.sport),
    name = COALESCE(EXCLUDED.name, contests.name),
    total_prizes = COALESCE(EXCLUDED.total_prizes, contests.total_prizes),
    entries = COALESCE(EXCLUDED.entries, contests.entries),
    entry_fee = COALESCE(EXCLUDED.entry_fee, contests.entry_fee),
    positions_paid = COALESCE(EXCLUDED.positions_paid, contests.positions_paid),
    draft_group_id = COALESCE(EXCLUDED.draft_group_id, contests.draft_group_id),
    updated_at = now()`)
	if err != nil {
		return fmt.Errorf("build upsert contest query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert contest: %w", err)
	}
	return nil
}

func (r *ContestRepository) Ensure(ctx context.Context, dkID string) (contest.Contest, error) {
	if err := r.Upsert(ctx, contest.Contest{DKID: dkID}); err != nil {
		return contest.Contest{}, err
	}
	c, ok, err := r.GetByDKID(ctx, dkID)
	if err != nil {
		return contest.Contest{}, err
	}
	if !ok {
		return contest.Contest{}, fmt.Errorf("contest %s missing after ensure", dkID)
	}
	return c, nil
}

func (r *ContestRepository) GetByDKID(ctx context.Context, dkID string) (contest.Contest, bool, error) {
	query, args, err := qb.Select(contestSelectColumns...).From("contests").
		Where(qb.Eq("dk_id", dkID)).
		ToSQL()
	if err != nil {
		return contest.Contest{}, false, fmt.Errorf("build select contest query: %w", err)
	}

	var row contestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return contest.Contest{}, false, nil
		}
		return contest.Contest{}, false, fmt.Errorf("select contest: %w", err)
	}
	return mapContestRow(row), true, nil
}

func (r *ContestRepository) SetEntryFee(ctx context.Context, dkID string, entryFee float64) error {
	query, args, err := qb.Update("contests").
		Set("entry_fee", entryFee).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("dk_id", dkID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update contest entry fee query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update contest entry fee: %w", err)
	}
	return nil
}

func (r *ContestRepository) UpsertPayout(ctx context.Context, p contest.Payout) error {
	if err := p.Validate(); err != nil {
		return err
	}

	insertModel := payoutInsertModel{
		ContestDKID: p.ContestDKID,
		UpperRank:   p.UpperRank,
		LowerRank:   p.LowerRank,
		Payout:      p.Payout,
	}
	query, args, err := qb.InsertModel("contest_payouts", insertModel, `ON CONFLICT (contest_dk_id, upper_rank, lower_rank)
DO UPDATE SET payout = EXCLUDED.payout`)
	if err != nil {
		return fmt.Errorf("build upsert payout query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert payout: %w", err)
	}
	return nil
}

func (r *ContestRepository) ListPayouts(ctx context.Context, dkID string) ([]contest.Payout, error) {
	query, args, err := qb.Select("id", "contest_dk_id", "upper_rank", "lower_rank", "payout").
		From("contest_payouts").
		Where(qb.Eq("contest_dk_id", dkID)).
		OrderBy("upper_rank").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select payouts query: %w", err)
	}

	var rows []payoutTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select payouts: %w", err)
	}

	out := make([]contest.Payout, 0, len(rows))
	for _, row := range rows {
		out = append(out, contest.Payout{
			ContestDKID: row.ContestDKID,
			UpperRank:   row.UpperRank,
			LowerRank:   row.LowerRank,
			Payout:      row.Payout,
		})
	}
	return out, nil
}

func (r *ContestRepository) ListSince(ctx context.Context, sport string, since time.Time) ([]contest.Contest, error) {
	query, args, err := qb.Select(contestSelectColumns...).From("contests").
		Where(
			qb.Eq("sport", sport),
			qb.Expr("date >= ?", since),
		).
		OrderBy("date DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select contests since query: %w", err)
	}

	var rows []contestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select contests since: %w", err)
	}

	out := make([]contest.Contest, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapContestRow(row))
	}
	return out, nil
}

func mapContestRow(row contestTableModel) contest.Contest {
	return contest.Contest{
		DKID:          row.DKID,
		Date:          nullTimePtr(row.Date),
		StartAt:       nullTimePtr(row.StartAt),
		Sport:         row.Sport.String,
		Name:          row.Name.String,
		TotalPrizes:   nullFloatPtr(row.TotalPrizes),
		Entries:       nullIntPtr(row.Entries),
		EntryFee:      nullFloatPtr(row.EntryFee),
		PositionsPaid: nullIntPtr(row.PositionsPaid),
		DraftGroupID:  nullIntPtr(row.DraftGroupID),
	}
}
