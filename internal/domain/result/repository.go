package result

import "context"

// Repository describes standings persistence needs from use cases.
type Repository interface {
	UpsertResult(ctx context.Context, r Result) error
	UpsertOwnership(ctx context.Context, o Ownership) error
	// ListByContest returns tracked results ordered by rank ascending.
	ListByContest(ctx context.Context, contestDKID string) ([]Result, error)
	// ListOwnershipByContest returns ownership rows ordered by fraction descending.
	ListOwnershipByContest(ctx context.Context, contestDKID string) ([]Ownership, error)
	CountByContest(ctx context.Context, contestDKID string) (int, error)
}
