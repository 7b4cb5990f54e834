package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dfsline/contest-tracker/internal/domain/contest"
)

type payoutKey struct {
	dkID  string
	upper int
	lower int
}

type ContestRepository struct {
	mu       sync.RWMutex
	contests map[string]contest.Contest
	payouts  map[payoutKey]contest.Payout
}

func NewContestRepository() *ContestRepository {
	return &ContestRepository{
		contests: make(map[string]contest.Contest),
		payouts:  make(map[payoutKey]contest.Payout),
	}
}

func (r *ContestRepository) Upsert(_ context.Context, c contest.Contest) error {
	if err := c.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.contests[c.DKID]
	if !ok {
		r.contests[c.DKID] = c
		return nil
	}
	r.contests[c.DKID] = mergeContest(existing, c)
	return nil
}

// mergeContest keeps stored values wherever the incoming contest is silent,
// mirroring the COALESCE behavior of the Postgres repository.
func mergeContest(stored, incoming contest.Contest) contest.Contest {
	out := stored
	if incoming.Date != nil {
		out.Date = incoming.Date
	}
	if incoming.StartAt != nil {
		out.StartAt = incoming.StartAt
	}
	if incoming.Sport != "" {
		out.Sport = incoming.Sport
	}
	if incoming.Name != "" {
		out.Name = incoming.Name
	}
	if incoming.TotalPrizes != nil {
		out.TotalPrizes = incoming.TotalPrizes
	}
	if incoming.Entries != nil {
		out.Entries = incoming.Entries
	}
	if incoming.EntryFee != nil {
		out.EntryFee = incoming.EntryFee
	}
	if incoming.PositionsPaid != nil {
		out.PositionsPaid = incoming.PositionsPaid
	}
	if incoming.DraftGroupID != nil {
		out.DraftGroupID = incoming.DraftGroupID
	}
	return out
}

func (r *ContestRepository) Ensure(ctx context.Context, dkID string) (contest.Contest, error) {
	if err := r.Upsert(ctx, contest.Contest{DKID: dkID}); err != nil {
		return contest.Contest{}, err
	}
	c, ok, err := r.GetByDKID(ctx, dkID)
	if err != nil {
		return contest.Contest{}, err
	}
	if !ok {
		return contest.Contest{}, fmt.Errorf("contest %s missing after ensure", dkID)
	}
	return c, nil
}

func (r *ContestRepository) GetByDKID(_ context.Context, dkID string) (contest.Contest, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.contests[dkID]
	return c, ok, nil
}

func (r *ContestRepository) SetEntryFee(_ context.Context, dkID string, entryFee float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.contests[dkID]
	if !ok {
		return nil
	}
	c.EntryFee = &entryFee
	r.contests[dkID] = c
	return nil
}

func (r *ContestRepository) UpsertPayout(_ context.Context, p contest.Payout) error {
	if err := p.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.payouts[payoutKey{dkID: p.ContestDKID, upper: p.UpperRank, lower: p.LowerRank}] = p
	return nil
}

func (r *ContestRepository) ListPayouts(_ context.Context, dkID string) ([]contest.Payout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contest.Payout, 0)
	for key, p := range r.payouts {
		if key.dkID == dkID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpperRank < out[j].UpperRank })
	return out, nil
}

func (r *ContestRepository) ListSince(_ context.Context, sport string, since time.Time) ([]contest.Contest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]contest.Contest, 0)
	for _, c := range r.contests {
		if c.Sport != sport || c.Date == nil || c.Date.Before(since) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(*out[j].Date) })
	return out, nil
}
