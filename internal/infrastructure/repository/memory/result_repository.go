package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/dfsline/contest-tracker/internal/domain/result"
)

type ownershipKey struct {
	dkID     string
	playerID int64
}

type ResultRepository struct {
	mu        sync.RWMutex
	results   map[string]result.Result
	ownership map[ownershipKey]result.Ownership
}

func NewResultRepository() *ResultRepository {
	return &ResultRepository{
		results:   make(map[string]result.Result),
		ownership: make(map[ownershipKey]result.Ownership),
	}
}

func (r *ResultRepository) UpsertResult(_ context.Context, res result.Result) error {
	if err := res.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.results[res.EntryDKID] = res
	return nil
}

func (r *ResultRepository) UpsertOwnership(_ context.Context, o result.Ownership) error {
	if err := o.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.ownership[ownershipKey{dkID: o.ContestDKID, playerID: o.PlayerID}] = o
	return nil
}

func (r *ResultRepository) ListByContest(_ context.Context, contestDKID string) ([]result.Result, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.Result, 0)
	for _, res := range r.results {
		if res.ContestDKID == contestDKID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := 0, 0
		if out[i].Rank != nil {
			ri = *out[i].Rank
		}
		if out[j].Rank != nil {
			rj = *out[j].Rank
		}
		return ri < rj
	})
	return out, nil
}

func (r *ResultRepository) ListOwnershipByContest(_ context.Context, contestDKID string) ([]result.Ownership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]result.Ownership, 0)
	for key, o := range r.ownership {
		if key.dkID == contestDKID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ownership > out[j].Ownership })
	return out, nil
}

func (r *ResultRepository) CountByContest(_ context.Context, contestDKID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, res := range r.results {
		if res.ContestDKID == contestDKID {
			count++
		}
	}
	return count, nil
}
