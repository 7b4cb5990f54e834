package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dfsline/contest-tracker/internal/domain/salary"
	qb "github.com/dfsline/contest-tracker/internal/platform/querybuilder"
)

type SalaryRepository struct {
	db *sqlx.DB
}

func NewSalaryRepository(db *sqlx.DB) *SalaryRepository {
	return &SalaryRepository{db: db}
}

func (r *SalaryRepository) GetOrCreate(ctx context.Context, s salary.Salary) (salary.Salary, bool, error) {
	if err := s.Validate(); err != nil {
		return salary.Salary{}, false, err
	}

	query, args, err := qb.Select("id", "player_id", "sport", "draft_group_id", "contest_type_id", "date", "amount").
		From("salaries").
		Where(
			qb.Eq("player_id", s.PlayerID),
			qb.Eq("draft_group_id", s.DraftGroupID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return salary.Salary{}, false, fmt.Errorf("build select salary query: %w", err)
	}

	var row salaryTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err == nil {
		return mapSalaryRow(row), false, nil
	} else if !isNotFound(err) {
		return salary.Salary{}, false, fmt.Errorf("select salary: %w", err)
	}

	insertModel := salaryInsertModel{
		PlayerID:      s.PlayerID,
		Sport:         nullString(s.Sport),
		DraftGroupID:  s.DraftGroupID,
		ContestTypeID: sql.NullInt64{Int64: int64(s.ContestTypeID), Valid: s.ContestTypeID != 0},
		Date:          nullTime(s.Date),
		Amount:        sql.NullInt64{Int64: int64(s.Amount), Valid: true},
	}
	query, args, err = qb.InsertModel("salaries", insertModel, `ON CONFLICT (player_id, draft_group_id)
DO NOTHING
RETURNING id, player_id, sport, draft_group_id, contest_type_id, date, amount`)
	if err != nil {
		return salary.Salary{}, false, fmt.Errorf("build insert salary query: %w", err)
	}
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			// Lost a race with another write; the stored row wins.
			return r.GetOrCreate(ctx, s)
		}
		return salary.Salary{}, false, fmt.Errorf("insert salary: %w", err)
	}

	return mapSalaryRow(row), true, nil
}

func mapSalaryRow(row salaryTableModel) salary.Salary {
	return salary.Salary{
		PlayerID:      row.PlayerID,
		Sport:         row.Sport.String,
		DraftGroupID:  row.DraftGroupID,
		ContestTypeID: int(row.ContestTypeID.Int64),
		Date:          nullTimePtr(row.Date),
		Amount:        int(row.Amount.Int64),
	}
}
