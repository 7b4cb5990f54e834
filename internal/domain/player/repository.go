package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	ListBySport(ctx context.Context, sport string) ([]Player, error)
	// GetOrCreate looks a player up by (name, sport, team_abbv) and creates it
	// when absent. The bool reports whether a row was created.
	GetOrCreate(ctx context.Context, p Player) (Player, bool, error)
	UpdateDKPosition(ctx context.Context, playerID int64, dkPosition string) error
}
