package player

import (
	"fmt"
	"time"
)

// Player is an athlete referenced by salary and standings feeds. The operator
// publishes no stable external player id, so identity is name-based within a
// sport and resolved by best-effort matching.
type Player struct {
	ID         int64
	Name       string
	Position   string
	DKPosition string
	Sport      string
	TeamAbbv   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p Player) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Sport == "" {
		return fmt.Errorf("player sport is required")
	}
	return nil
}
