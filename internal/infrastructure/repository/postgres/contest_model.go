package postgres

import "database/sql"

type contestTableModel struct {
	ID            int64           `db:"id"`
	DKID          string          `db:"dk_id"`
	Date          sql.NullTime    `db:"date"`
	StartAt       sql.NullTime    `db:"start_at"`
	Sport         sql.NullString  `db:"sport"`
	Name          sql.NullString  `db:"name"`
	TotalPrizes   sql.NullFloat64 `db:"total_prizes"`
	Entries       sql.NullInt64   `db:"entries"`
	EntryFee      sql.NullFloat64 `db:"entry_fee"`
	PositionsPaid sql.NullInt64   `db:"positions_paid"`
	DraftGroupID  sql.NullInt64   `db:"draft_group_id"`
}

type contestInsertModel struct {
	DKID          string          `db:"dk_id"`
	Date          sql.NullTime    `db:"date"`
	StartAt       sql.NullTime    `db:"start_at"`
	Sport         sql.NullString  `db:"sport"`
	Name          sql.NullString  `db:"name"`
	TotalPrizes   sql.NullFloat64 `db:"total_prizes"`
	Entries       sql.NullInt64   `db:"entries"`
	EntryFee      sql.NullFloat64 `db:"entry_fee"`
	PositionsPaid sql.NullInt64   `db:"positions_paid"`
	DraftGroupID  sql.NullInt64   `db:"draft_group_id"`
}

type payoutTableModel struct {
	ID          int64   `db:"id"`
	ContestDKID string  `db:"contest_dk_id"`
	UpperRank   int     `db:"upper_rank"`
	LowerRank   int     `db:"lower_rank"`
	Payout      float64 `db:"payout"`
}

type payoutInsertModel struct {
	ContestDKID string  `db:"contest_dk_id"`
	UpperRank   int     `db:"upper_rank"`
	LowerRank   int     `db:"lower_rank"`
	Payout      float64 `db:"payout"`
}
