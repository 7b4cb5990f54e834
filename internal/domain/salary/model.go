package salary

import (
	"fmt"
	"time"
)

// Salary is one player's cost in one draft group. Unique per
// (player, draft_group_id); salaries are assumed identical across draft
// groups on the same day.
type Salary struct {
	PlayerID      int64
	Sport         string
	DraftGroupID  int
	ContestTypeID int
	Date          *time.Time
	Amount        int
}

func (s Salary) Validate() error {
	if s.PlayerID <= 0 {
		return fmt.Errorf("salary player id is required")
	}
	if s.DraftGroupID <= 0 {
		return fmt.Errorf("salary draft group id is required")
	}
	return nil
}
