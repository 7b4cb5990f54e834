package usecase

import (
	"context"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/dfsline/contest-tracker/external/draftkings"
	"github.com/dfsline/contest-tracker/internal/domain/contest"
	"github.com/dfsline/contest-tracker/internal/platform/logging"
)

var feeTiersBySport = map[string][]float64{
	"nfl": {5, 10, 25, 50},
}

var defaultFeeTiers = []float64{10, 25}

type lobbyFetcher interface {
	Lobby(ctx context.Context, sport string) (draftkings.LobbyPage, error)
}

// ContestService discovers upcoming contests worth tracking from the lobby
// feed: single-entry guaranteed double-ups at the watched fee tiers, largest
// field per tier.
type ContestService struct {
	fetcher  lobbyFetcher
	contests contest.Repository
	logger   *logging.Logger
}

func NewContestService(fetcher lobbyFetcher, contests contest.Repository, logger *logging.Logger) *ContestService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ContestService{fetcher: fetcher, contests: contests, logger: logger}
}

// FindNewContests scans the lobby and upserts the pick for each fee tier.
// Returns the ids it stored.
func (s *ContestService) FindNewContests(ctx context.Context, sport string) ([]string, error) {
	sport = strings.ToLower(strings.TrimSpace(sport))
	if sport == "" {
		return nil, crerr.WithDetail(ErrInvalidInput, "sport is required")
	}

	page, err := s.fetcher.Lobby(ctx, sport)
	if err != nil {
		return nil, err
	}

	var stored []string
	for _, fee := range feeTiers(sport) {
		pick, found := pickContest(page.Contests, fee)
		if !found {
			s.logger.Info("no lobby contest matched tier", "sport", sport, "entry_fee", fee)
			continue
		}

		startAt, err := pick.StartTime()
		if err != nil {
			return nil, crerr.Wrapf(err, "contest %s start time", pick.DKID())
		}
		date := startAt.Truncate(24 * time.Hour)

		entryFee := pick.EntryFee
		prizes := pick.TotalPrizes
		entries := pick.Entries
		draftGroupID := pick.DraftGroupID
		if err := s.contests.Upsert(ctx, contest.Contest{
			DKID:         pick.DKID(),
			Date:         &date,
			StartAt:      &startAt,
			Sport:        sport,
			Name:         pick.Name,
			TotalPrizes:  &prizes,
			Entries:      &entries,
			EntryFee:     &entryFee,
			DraftGroupID: &draftGroupID,
		}); err != nil {
			return nil, err
		}

		s.logger.Info("tracked lobby contest",
			"sport", sport,
			"contest_id", pick.DKID(),
			"name", pick.Name,
			"entry_fee", fee,
			"entries", pick.Entries,
		)
		stored = append(stored, pick.DKID())
	}
	return stored, nil
}

func feeTiers(sport string) []float64 {
	if tiers, ok := feeTiersBySport[sport]; ok {
		return tiers
	}
	return defaultFeeTiers
}

// pickContest chooses the largest single-entry guaranteed double-up at one
// fee tier.
func pickContest(contests []draftkings.LobbyContest, fee float64) (draftkings.LobbyContest, bool) {
	var best draftkings.LobbyContest
	found := false
	for _, c := range contests {
		if c.MaxEntryCount != 1 || c.EntryFee != fee {
			continue
		}
		if !c.IsDoubleUp() || !c.IsGuaranteed() {
			continue
		}
		if !found || c.Entries > best.Entries {
			best = c
			found = true
		}
	}
	return best, found
}
