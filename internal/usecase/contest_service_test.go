package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dfsline/contest-tracker/external/draftkings"
	"github.com/dfsline/contest-tracker/internal/infrastructure/repository/memory"
	"github.com/dfsline/contest-tracker/internal/platform/logging"
)

type fakeLobby struct {
	page draftkings.LobbyPage
}

func (f *fakeLobby) Lobby(_ context.Context, _ string) (draftkings.LobbyPage, error) {
	return f.page, nil
}

func lobbyContest(id int64, fee float64, entries, maxEntries int, doubleUp, guaranteed bool) draftkings.LobbyContest {
	return draftkings.LobbyContest{
		ID:            id,
		Name:          "Double Up",
		StartDateRaw:  "/Date(1449619200000)/",
		DraftGroupID:  7555,
		TotalPrizes:   1000,
		Entries:       entries,
		EntryFee:      fee,
		MaxEntryCount: maxEntries,
		Attributes: map[string]any{
			"IsDoubleUp":   doubleUp,
			"IsGuaranteed": guaranteed,
		},
	}
}

func TestFindNewContests_PicksLargestPerTier(t *testing.T) {
	fetcher := &fakeLobby{page: draftkings.LobbyPage{Contests: []draftkings.LobbyContest{
		lobbyContest(1, 10, 500, 1, true, true),
		lobbyContest(2, 10, 9000, 1, true, true),
		lobbyContest(3, 25, 2000, 1, true, true),
	}}}
	contests := memory.NewContestRepository()
	svc := NewContestService(fetcher, contests, logging.NewNop())

	ids, err := svc.FindNewContests(context.Background(), "nba")
	require.NoError(t, err)
	require.Equal(t, []string{"2", "3"}, ids)

	stored, found, err := contests.GetByDKID(context.Background(), "2")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 9000, *stored.Entries)
	require.InDelta(t, 10, *stored.EntryFee, 1e-9)
	require.Equal(t, 7555, *stored.DraftGroupID)

	want := time.UnixMilli(1449619200000).UTC()
	require.True(t, stored.StartAt.Equal(want))
}

func TestFindNewContests_FiltersCriteria(t *testing.T) {
	fetcher := &fakeLobby{page: draftkings.LobbyPage{Contests: []draftkings.LobbyContest{
		lobbyContest(1, 10, 9000, 20, true, true),
		lobbyContest(2, 10, 9000, 1, false, true),
		lobbyContest(3, 10, 9000, 1, true, false),
		lobbyContest(4, 7, 9000, 1, true, true),
	}}}
	svc := NewContestService(fetcher, memory.NewContestRepository(), logging.NewNop())

	ids, err := svc.FindNewContests(context.Background(), "nba")
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestFindNewContests_NFLFeeTiers(t *testing.T) {
	fetcher := &fakeLobby{page: draftkings.LobbyPage{Contests: []draftkings.LobbyContest{
		lobbyContest(1, 5, 9000, 1, true, true),
		lobbyContest(2, 50, 4000, 1, true, true),
	}}}
	svc := NewContestService(fetcher, memory.NewContestRepository(), logging.NewNop())

	ids, err := svc.FindNewContests(context.Background(), "nfl")
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2"}, ids)
}

func TestFindNewContests_SportIsCaseInsensitive(t *testing.T) {
	fetcher := &fakeLobby{page: draftkings.LobbyPage{Contests: []draftkings.LobbyContest{
		lobbyContest(1, 5, 9000, 1, true, true),
	}}}
	contests := memory.NewContestRepository()
	svc := NewContestService(fetcher, contests, logging.NewNop())

	ids, err := svc.FindNewContests(context.Background(), "NFL")
	require.NoError(t, err)
	require.Equal(t, []string{"1"}, ids, "the $5 tier only exists for nfl")

	stored, found, err := contests.GetByDKID(context.Background(), "1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "nfl", stored.Sport)
}

func TestFindNewContests_RequiresSport(t *testing.T) {
	svc := NewContestService(&fakeLobby{}, memory.NewContestRepository(), logging.NewNop())

	_, err := svc.FindNewContests(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidInput)
}
