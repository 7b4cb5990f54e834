package postgres

import "database/sql"

type salaryTableModel struct {
	ID            int64          `db:"id"`
	PlayerID      int64          `db:"player_id"`
	Sport         sql.NullString `db:"sport"`
	DraftGroupID  int            `db:"draft_group_id"`
	ContestTypeID sql.NullInt64  `db:"contest_type_id"`
	Date          sql.NullTime   `db:"date"`
	Amount        sql.NullInt64  `db:"amount"`
}

type salaryInsertModel struct {
	PlayerID      int64          `db:"player_id"`
	Sport         sql.NullString `db:"sport"`
	DraftGroupID  int            `db:"draft_group_id"`
	ContestTypeID sql.NullInt64  `db:"contest_type_id"`
	Date          sql.NullTime   `db:"date"`
	Amount        sql.NullInt64  `db:"amount"`
}
