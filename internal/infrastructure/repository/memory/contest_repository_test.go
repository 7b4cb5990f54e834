package memory

import (
	"context"
	"testing"
	"time"

	"github.com/dfsline/contest-tracker/internal/domain/contest"
)

func TestContestUpsert_MergeKeepsStoredValues(t *testing.T) {
	repo := NewContestRepository()
	ctx := context.Background()

	fee := 3.0
	if err := repo.Upsert(ctx, contest.Contest{DKID: "123", Sport: "nba", Name: "Double Up", EntryFee: &fee}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	entries := 38314
	if err := repo.Upsert(ctx, contest.Contest{DKID: "123", Entries: &entries}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	stored, ok, err := repo.GetByDKID(ctx, "123")
	if err != nil || !ok {
		t.Fatalf("get: ok=%t err=%v", ok, err)
	}
	if stored.Name != "Double Up" || stored.Sport != "nba" {
		t.Fatalf("stored fields clobbered: %+v", stored)
	}
	if stored.EntryFee == nil || *stored.EntryFee != 3 {
		t.Fatalf("entry fee clobbered: %+v", stored.EntryFee)
	}
	if stored.Entries == nil || *stored.Entries != 38314 {
		t.Fatalf("entries not merged: %+v", stored.Entries)
	}
}

func TestContestUpsertPayout_Idempotent(t *testing.T) {
	repo := NewContestRepository()
	ctx := context.Background()

	p := contest.Payout{ContestDKID: "123", UpperRank: 12, LowerRank: 15, Payout: 100}
	if err := repo.UpsertPayout(ctx, p); err != nil {
		t.Fatalf("upsert payout: %v", err)
	}
	p.Payout = 120
	if err := repo.UpsertPayout(ctx, p); err != nil {
		t.Fatalf("re-upsert payout: %v", err)
	}

	payouts, err := repo.ListPayouts(ctx, "123")
	if err != nil {
		t.Fatalf("list payouts: %v", err)
	}
	if len(payouts) != 1 {
		t.Fatalf("unexpected payout count: got=%d want=1", len(payouts))
	}
	if payouts[0].Payout != 120 {
		t.Fatalf("payout not replaced: got=%f want=120", payouts[0].Payout)
	}
}

func TestContestListSince(t *testing.T) {
	repo := NewContestRepository()
	ctx := context.Background()

	newer := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC)
	ancient := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	for dkID, date := range map[string]time.Time{"1": older, "2": newer, "3": ancient} {
		d := date
		if err := repo.Upsert(ctx, contest.Contest{DKID: dkID, Sport: "nba", Date: &d}); err != nil {
			t.Fatalf("upsert %s: %v", dkID, err)
		}
	}

	since := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	contests, err := repo.ListSince(ctx, "nba", since)
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(contests) != 2 {
		t.Fatalf("unexpected count: got=%d want=2", len(contests))
	}
	if contests[0].DKID != "2" || contests[1].DKID != "1" {
		t.Fatalf("not ordered newest first: got=%s,%s", contests[0].DKID, contests[1].DKID)
	}
}
