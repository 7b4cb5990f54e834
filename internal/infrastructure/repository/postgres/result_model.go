package postgres

import "database/sql"

type resultTableModel struct {
	ID          int64           `db:"id"`
	EntryDKID   string          `db:"entry_dk_id"`
	ContestDKID string          `db:"contest_dk_id"`
	Name        string          `db:"name"`
	Rank        sql.NullInt64   `db:"rank"`
	Points      sql.NullFloat64 `db:"points"`
}

type resultInsertModel struct {
	EntryDKID   string          `db:"entry_dk_id"`
	ContestDKID string          `db:"contest_dk_id"`
	Name        string          `db:"name"`
	Rank        sql.NullInt64   `db:"rank"`
	Points      sql.NullFloat64 `db:"points"`
}

type ownershipTableModel struct {
	ID            int64   `db:"id"`
	ContestDKID   string  `db:"contest_dk_id"`
	PlayerID      int64   `db:"player_id"`
	Ownership     float64 `db:"ownership"`
	FantasyPoints float64 `db:"fantasy_points"`
}

type ownershipInsertModel struct {
	ContestDKID   string  `db:"contest_dk_id"`
	PlayerID      int64   `db:"player_id"`
	Ownership     float64 `db:"ownership"`
	FantasyPoints float64 `db:"fantasy_points"`
}
