package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID         int64          `db:"id"`
	Name       string         `db:"name"`
	Position   sql.NullString `db:"position"`
	DKPosition sql.NullString `db:"dk_position"`
	Sport      sql.NullString `db:"sport"`
	TeamAbbv   sql.NullString `db:"team_abbv"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

type playerInsertModel struct {
	Name       string         `db:"name"`
	Position   sql.NullString `db:"position"`
	DKPosition sql.NullString `db:"dk_position"`
	Sport      sql.NullString `db:"sport"`
	TeamAbbv   sql.NullString `db:"team_abbv"`
}
