package contest

import (
	"fmt"
	"time"
)

// Contest is the aggregate root for everything ingested about one operator
// contest. It is created on first reference by any data source and enriched
// incrementally; unknown fields stay nil and are never overwritten with nulls.
type Contest struct {
	DKID          string
	Date          *time.Time
	StartAt       *time.Time
	Sport         string
	Name          string
	TotalPrizes   *float64
	Entries       *int
	EntryFee      *float64
	PositionsPaid *int
	DraftGroupID  *int
}

func (c Contest) Validate() error {
	if c.DKID == "" {
		return fmt.Errorf("contest dk id is required")
	}
	return nil
}

// Payout is the prize amount for a contiguous rank range of one contest.
// A single paid place has UpperRank == LowerRank.
type Payout struct {
	ContestDKID string
	UpperRank   int
	LowerRank   int
	Payout      float64
}

func (p Payout) Validate() error {
	if p.ContestDKID == "" {
		return fmt.Errorf("payout contest dk id is required")
	}
	if p.UpperRank <= 0 || p.LowerRank < p.UpperRank {
		return fmt.Errorf("payout rank range %d-%d is invalid", p.UpperRank, p.LowerRank)
	}
	return nil
}
