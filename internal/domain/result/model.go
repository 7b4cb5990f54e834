package result

import "fmt"

// Result is one tracked entrant's final standing in a contest. Rank and points
// are pointers because older exports lack one or both columns.
type Result struct {
	EntryDKID   string
	ContestDKID string
	Name        string
	Rank        *int
	Points      *float64
}

func (r Result) Validate() error {
	if r.EntryDKID == "" {
		return fmt.Errorf("result entry dk id is required")
	}
	if r.ContestDKID == "" {
		return fmt.Errorf("result contest dk id is required")
	}
	return nil
}

// Ownership is the fraction of a contest's entrants that rostered a player,
// plus the player's fantasy points in that contest. One row per
// (contest, player) pair.
type Ownership struct {
	ContestDKID   string
	PlayerID      int64
	Ownership     float64
	FantasyPoints float64
}

func (o Ownership) Validate() error {
	if o.ContestDKID == "" {
		return fmt.Errorf("ownership contest dk id is required")
	}
	if o.PlayerID <= 0 {
		return fmt.Errorf("ownership player id is required")
	}
	if o.Ownership < 0 || o.Ownership > 1 {
		return fmt.Errorf("ownership fraction %f is out of range", o.Ownership)
	}
	return nil
}
