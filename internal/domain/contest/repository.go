package contest

import (
	"context"
	"time"
)

// Repository describes contest persistence needs from use cases. All writes
// are idempotent upserts keyed by business identifiers.
type Repository interface {
	// Upsert creates or enriches a contest by dk_id. Nil fields never clobber
	// previously stored values.
	Upsert(ctx context.Context, c Contest) error
	// Ensure creates a bare contest row on first reference.
	Ensure(ctx context.Context, dkID string) (Contest, error)
	GetByDKID(ctx context.Context, dkID string) (Contest, bool, error)
	SetEntryFee(ctx context.Context, dkID string, entryFee float64) error
	UpsertPayout(ctx context.Context, p Payout) error
	ListPayouts(ctx context.Context, dkID string) ([]Payout, error)
	// ListSince returns contests for a sport dated on or after the cutoff,
	// newest first.
	ListSince(ctx context.Context, sport string, since time.Time) ([]Contest, error)
}
