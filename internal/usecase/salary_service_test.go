package usecase

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dfsline/contest-tracker/external/draftkings"
	"github.com/dfsline/contest-tracker/internal/domain/player"
	"github.com/dfsline/contest-tracker/internal/domain/salary"
	"github.com/dfsline/contest-tracker/internal/infrastructure/repository/memory"
	"github.com/dfsline/contest-tracker/internal/platform/logging"
)

type fakeSalaryFetcher struct {
	page draftkings.LobbyPage
	csv  map[int][]byte

	fetchedGroups []int
}

func (f *fakeSalaryFetcher) Lobby(_ context.Context, _ string) (draftkings.LobbyPage, error) {
	return f.page, nil
}

func (f *fakeSalaryFetcher) SalaryCSV(_ context.Context, draftGroupID, _ int) ([]byte, error) {
	f.fetchedGroups = append(f.fetchedGroups, draftGroupID)
	return f.csv[draftGroupID], nil
}

func featuredGroup(id int) draftkings.LobbyDraftGroup {
	return draftkings.LobbyDraftGroup{
		DraftGroupID:  id,
		ContestTypeID: 5,
		StartDateEst:  "2016-01-17T13:00:00.0000000",
		Tag:           "Featured",
	}
}

const salaryCSVFixture = `Position,Name + ID,Name,ID,Roster Position,Salary,Game Info,TeamAbbrev,AvgPointsPerGame
PG,Kevin Durant (12345),Kevin Durant,12345,PG,10500,GSW@LAL 7:00PM ET,GSW,55.2
PF,Kevin Love (23456),Kevin Love,23456,PF,7200,CLE@BOS 8:00PM ET,CLE,38.1
`

func newSalaryFixture(t *testing.T, fetcher *fakeSalaryFetcher) (*SalaryService, *memory.PlayerRepository, *memory.SalaryRepository, string) {
	t.Helper()
	players := memory.NewPlayerRepository(nil)
	salaries := memory.NewSalaryRepository()
	dir := t.TempDir()
	svc := NewSalaryService(fetcher, players, salaries, dir, logging.NewNop())
	return svc, players, salaries, dir
}

func TestSalaryRun_IngestsFeaturedGroup(t *testing.T) {
	fetcher := &fakeSalaryFetcher{
		page: draftkings.LobbyPage{DraftGroups: []draftkings.LobbyDraftGroup{featuredGroup(7555)}},
		csv:  map[int][]byte{7555: []byte(salaryCSVFixture)},
	}
	svc, players, salaries, _ := newSalaryFixture(t, fetcher)

	require.NoError(t, svc.Run(context.Background(), "nba", false))

	roster, err := players.ListBySport(context.Background(), "nba")
	require.NoError(t, err)
	require.Len(t, roster, 2)

	var durant player.Player
	for _, p := range roster {
		if p.Name == "Kevin Durant" {
			durant = p
		}
	}
	require.NotZero(t, durant.ID)
	require.Equal(t, "PG", durant.Position)
	require.Equal(t, "GSW", durant.TeamAbbv)

	stored, created, err := salaries.GetOrCreate(context.Background(), salary.Salary{
		PlayerID:     durant.ID,
		Sport:        "nba",
		DraftGroupID: 7555,
		Amount:       99999,
	})
	require.NoError(t, err)
	require.False(t, created, "salary should already exist")
	require.Equal(t, 10500, stored.Amount, "stored salary must not be overwritten")
}

func TestSalaryRun_SkipsUnusableGroups(t *testing.T) {
	tiers := featuredGroup(2)
	tiers.Suffix = "(Tiers: Late Night)"
	singleGame := featuredGroup(3)
	singleGame.Suffix = "(GSW vs LAL)"
	showdown := featuredGroup(4)
	showdown.Tag = "Showdown"

	fetcher := &fakeSalaryFetcher{
		page: draftkings.LobbyPage{DraftGroups: []draftkings.LobbyDraftGroup{
			featuredGroup(1), tiers, singleGame, showdown,
		}},
		csv: map[int][]byte{1: []byte(salaryCSVFixture)},
	}
	svc, _, _, _ := newSalaryFixture(t, fetcher)

	require.NoError(t, svc.Run(context.Background(), "nba", false))
	require.Equal(t, []int{1}, fetcher.fetchedGroups)
}

func TestSalaryRun_NFLContestTypeFilter(t *testing.T) {
	accepted := featuredGroup(1)
	accepted.ContestTypeID = 21
	rejected := featuredGroup(2)
	rejected.ContestTypeID = 96

	fetcher := &fakeSalaryFetcher{
		page: draftkings.LobbyPage{DraftGroups: []draftkings.LobbyDraftGroup{accepted, rejected}},
		csv:  map[int][]byte{1: []byte(salaryCSVFixture)},
	}
	svc, _, _, _ := newSalaryFixture(t, fetcher)

	require.NoError(t, svc.Run(context.Background(), "nfl", false))
	require.Equal(t, []int{1}, fetcher.fetchedGroups)
}

func TestSalaryRun_UpdatesRosterPosition(t *testing.T) {
	fetcher := &fakeSalaryFetcher{
		page: draftkings.LobbyPage{DraftGroups: []draftkings.LobbyDraftGroup{featuredGroup(7555)}},
		csv:  map[int][]byte{7555: []byte(salaryCSVFixture)},
	}
	svc, players, _, _ := newSalaryFixture(t, fetcher)

	seeded, _, err := players.GetOrCreate(context.Background(), player.Player{
		Name:       "Kevin Durant",
		Position:   "PG",
		DKPosition: "SG",
		Sport:      "nba",
		TeamAbbv:   "GSW",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Run(context.Background(), "nba", false))

	roster, err := players.ListBySport(context.Background(), "nba")
	require.NoError(t, err)
	for _, p := range roster {
		if p.ID == seeded.ID {
			require.Equal(t, "PG", p.DKPosition)
		}
	}
}

func TestSalaryRun_WritesCombinedCSV(t *testing.T) {
	second := featuredGroup(7556)
	fetcher := &fakeSalaryFetcher{
		page: draftkings.LobbyPage{DraftGroups: []draftkings.LobbyDraftGroup{featuredGroup(7555), second}},
		csv: map[int][]byte{
			7555: []byte(salaryCSVFixture),
			7556: []byte(salaryCSVFixture),
		},
	}
	svc, _, _, dir := newSalaryFixture(t, fetcher)

	require.NoError(t, svc.Run(context.Background(), "nba", true))

	content, err := os.ReadFile(filepath.Join(dir, "dk_nba_salaries_2016-01-17.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 3, "duplicate players across groups must collapse")
	require.Equal(t, "Name,Position,Salary,TeamAbbrev,AvgPointsPerGame", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "Kevin Durant,"), "rows sorted by salary descending: %q", lines[1])
}
