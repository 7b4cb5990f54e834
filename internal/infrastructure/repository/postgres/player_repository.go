package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dfsline/contest-tracker/internal/domain/player"
	qb "github.com/dfsline/contest-tracker/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"name",
	"position",
	"dk_position",
	"sport",
	"team_abbv",
	"created_at",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) ListBySport(ctx context.Context, sport string) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("sport", sport)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by sport query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by sport: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapPlayerRow(row))
	}
	return out, nil
}

func (r *PlayerRepository) GetOrCreate(ctx context.Context, p player.Player) (player.Player, bool, error) {
	if err := p.Validate(); err != nil {
		return player.Player{}, false, err
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.Eq("name", p.Name),
			qb.Eq("sport", p.Sport),
			qb.Eq("team_abbv", p.TeamAbbv),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err == nil {
		return mapPlayerRow(row), false, nil
	} else if !isNotFound(err) {
		return player.Player{}, false, fmt.Errorf("select player: %w", err)
	}

	insertModel := playerInsertModel{
		Name:       p.Name,
		Position:   nullString(p.Position),
		DKPosition: nullString(p.DKPosition),
		Sport:      nullString(p.Sport),
		TeamAbbv:   nullString(p.TeamAbbv),
	}
	query, args, err = qb.InsertModel("players", insertModel, `ON CONFLICT (name, sport, team_abbv)
DO UPDATE SET updated_at = now()
RETURNING id, name, position, dk_position, sport, team_abbv, created_at, updated_at`)
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build insert player query: %w", err)
	}
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return player.Player{}, false, fmt.Errorf("insert player: %w", err)
	}

	return mapPlayerRow(row), true, nil
}

func (r *PlayerRepository) UpdateDKPosition(ctx context.Context, playerID int64, dkPosition string) error {
	query, args, err := qb.Update("players").
		Set("dk_position", dkPosition).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player dk position query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update player dk position: %w", err)
	}
	return nil
}

func mapPlayerRow(row playerTableModel) player.Player {
	return player.Player{
		ID:         row.ID,
		Name:       row.Name,
		Position:   row.Position.String,
		DKPosition: row.DKPosition.String,
		Sport:      row.Sport.String,
		TeamAbbv:   row.TeamAbbv.String,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
