package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/dfsline/contest-tracker/external/draftkings"
	"github.com/dfsline/contest-tracker/internal/domain/contest"
	"github.com/dfsline/contest-tracker/internal/domain/player"
	"github.com/dfsline/contest-tracker/internal/domain/result"
	"github.com/dfsline/contest-tracker/internal/platform/logging"
)

const (
	standingsFilePattern = "contest-standings-%s.csv"
	parseProgressEvery   = 5000
	emptyContestWindow   = 7 * 24 * time.Hour
)

type resultsFetcher interface {
	ContestPage(ctx context.Context, contestID string) ([]byte, error)
	PayoutPage(ctx context.Context, contestID string) ([]byte, error)
	ExportStandings(ctx context.Context, contestID string) (draftkings.ExportPayload, error)
}

// ResultsService drives the per-contest ingestion pipeline: detail sync,
// standings download and standings parse. Contests are independent, so one
// failing contest is logged and skipped rather than aborting the batch.
type ResultsService struct {
	fetcher      resultsFetcher
	contests     contest.Repository
	results      result.Repository
	players      player.Repository
	standingsDir string
	vipEntrants  map[string]struct{}
	logger       *logging.Logger
	now          func() time.Time
}

type ResultsServiceConfig struct {
	Fetcher      resultsFetcher
	Contests     contest.Repository
	Results      result.Repository
	Players      player.Repository
	StandingsDir string
	VIPEntrants  []string
	Logger       *logging.Logger
}

func NewResultsService(cfg ResultsServiceConfig) *ResultsService {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	vip := make(map[string]struct{}, len(cfg.VIPEntrants))
	for _, name := range cfg.VIPEntrants {
		name = strings.TrimSpace(name)
		if name != "" {
			vip[name] = struct{}{}
		}
	}
	if len(vip) == 0 {
		logger.Warn("tracked entrant list is empty, standings rows will be ownership-only")
	}

	return &ResultsService{
		fetcher:      cfg.Fetcher,
		contests:     cfg.Contests,
		results:      cfg.Results,
		players:      cfg.Players,
		standingsDir: cfg.StandingsDir,
		vipEntrants:  vip,
		logger:       logger,
		now:          time.Now,
	}
}

// RunOptions selects pipeline stages. Zero value runs nothing.
type RunOptions struct {
	Detail   bool
	Download bool
	Parse    bool
}

// Run executes the selected stages for every contest id in order. The player
// roster is loaded once up front and shared across all parses.
func (s *ResultsService) Run(ctx context.Context, sport string, contestIDs []string, opts RunOptions) error {
	sport = strings.ToLower(strings.TrimSpace(sport))
	if sport == "" {
		return crerr.WithDetail(ErrInvalidInput, "sport is required")
	}

	var resolver *PlayerResolver
	if opts.Parse {
		var err error
		resolver, err = NewPlayerResolver(ctx, s.players, sport)
		if err != nil {
			return err
		}
	}

	for _, contestID := range contestIDs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.runOne(ctx, sport, contestID, resolver, opts); err != nil {
			s.logger.Error("contest ingestion failed", "contest_id", contestID, "error", err)
		}
	}
	return nil
}

func (s *ResultsService) runOne(ctx context.Context, sport, contestID string, resolver *PlayerResolver, opts RunOptions) error {
	if opts.Detail {
		if err := s.SyncContestDetail(ctx, sport, contestID); err != nil {
			return err
		}
	}
	if opts.Download {
		saved, err := s.DownloadStandings(ctx, contestID)
		if err != nil {
			return err
		}
		if !saved && opts.Parse {
			return nil
		}
	}
	if opts.Parse {
		if err := s.ParseStandings(ctx, contestID, resolver); err != nil {
			return err
		}
	}
	return nil
}

// SyncContestDetail scrapes the contest detail and payout pages and persists
// what they hold. Contests still running are skipped; their figures are not
// final. Retired contests serve a stripped page and are skipped the same way.
func (s *ResultsService) SyncContestDetail(ctx context.Context, sport, contestID string) error {
	page, err := s.fetcher.ContestPage(ctx, contestID)
	if err != nil {
		return err
	}

	detail, err := draftkings.ParseContestPage(page)
	if crerr.Is(err, draftkings.ErrPageLayout) {
		s.logger.Warn("contest page has no detail region, skipping", "contest_id", contestID)
		return nil
	}
	if err != nil {
		return err
	}
	if !detail.Completed() {
		s.logger.Info("contest not completed yet, skipping", "contest_id", contestID, "status", detail.Status)
		return nil
	}

	date, err := draftkings.ParseContestDate(detail.DateRaw, s.now())
	if err != nil {
		return crerr.Wrapf(err, "contest %s date", contestID)
	}

	entries := detail.Entries
	positionsPaid := detail.PositionsPaid
	prizes := detail.TotalPrizes
	if err := s.contests.Upsert(ctx, contest.Contest{
		DKID:          contestID,
		Date:          &date,
		Sport:         sport,
		Name:          detail.Name,
		TotalPrizes:   &prizes,
		Entries:       &entries,
		PositionsPaid: &positionsPaid,
	}); err != nil {
		return err
	}

	return s.syncPayouts(ctx, contestID)
}

func (s *ResultsService) syncPayouts(ctx context.Context, contestID string) error {
	page, err := s.fetcher.PayoutPage(ctx, contestID)
	if err != nil {
		return err
	}

	table, err := draftkings.ParsePayoutPage(page)
	if crerr.Is(err, draftkings.ErrPageLayout) {
		s.logger.Warn("payout page has no table, skipping", "contest_id", contestID)
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.contests.SetEntryFee(ctx, contestID, table.EntryFee); err != nil {
		return err
	}
	for _, row := range table.Rows {
		payout := contest.Payout{
			ContestDKID: contestID,
			UpperRank:   row.UpperRank,
			LowerRank:   row.LowerRank,
			Payout:      row.Amount,
		}
		if err := payout.Validate(); err != nil {
			return crerr.Wrap(err, "payout row")
		}
		if err := s.contests.UpsertPayout(ctx, payout); err != nil {
			return err
		}
	}

	s.logger.Info("synced contest payouts", "contest_id", contestID, "rows", len(table.Rows))
	return nil
}

// DownloadStandings fetches the standings export and writes it under the
// standings directory. Returns false when the operator served nothing usable,
// which is routine for very recent or cancelled contests.
func (s *ResultsService) DownloadStandings(ctx context.Context, contestID string) (bool, error) {
	payload, err := s.fetcher.ExportStandings(ctx, contestID)
	if err != nil {
		return false, err
	}

	switch payload.Kind {
	case draftkings.ExportCSV:
		return true, s.writeStandingsFile(contestID, payload.Body)
	case draftkings.ExportZip:
		entries, err := draftkings.UnpackArchive(payload.Body)
		if err != nil {
			return false, err
		}
		for name, content := range entries {
			if err := s.writeFile(name, content); err != nil {
				return false, err
			}
		}
		return true, nil
	case draftkings.ExportEmpty:
		s.logger.Info("standings export empty", "contest_id", contestID)
		return false, nil
	default:
		s.logger.Warn("standings export unrecognized",
			"contest_id", contestID, "content_type", payload.Note)
		return false, nil
	}
}

func (s *ResultsService) writeStandingsFile(contestID string, content []byte) error {
	return s.writeFile(fmt.Sprintf(standingsFilePattern, contestID), content)
}

func (s *ResultsService) writeFile(name string, content []byte) error {
	if err := os.MkdirAll(s.standingsDir, 0o755); err != nil {
		return crerr.Wrap(err, "create standings dir")
	}
	target := filepath.Join(s.standingsDir, filepath.Base(name))
	if err := os.WriteFile(target, content, 0o644); err != nil {
		return crerr.Wrap(err, "write standings file")
	}
	s.logger.Info("saved standings file", "file", target, "bytes", len(content))
	return nil
}

// ParseStandings reads a downloaded standings CSV into result and ownership
// rows. Tracked entrant rows are stored with rank and points; every row's
// ownership columns feed the per-player exposure table. An unresolvable
// player name aborts the file so a roster gap is fixed before re-running.
func (s *ResultsService) ParseStandings(ctx context.Context, contestID string, resolver *PlayerResolver) error {
	name := filepath.Join(s.standingsDir, fmt.Sprintf(standingsFilePattern, contestID))
	file, err := os.Open(name)
	if os.IsNotExist(err) {
		s.logger.Warn("standings file missing, skipping parse", "contest_id", contestID, "file", name)
		return nil
	}
	if err != nil {
		return crerr.Wrap(err, "open standings file")
	}
	defer file.Close()

	if _, err := s.contests.Ensure(ctx, contestID); err != nil {
		return err
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var rows, resultRows, ownershipRows int
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return crerr.Wrapf(err, "read standings row %d", rows+1)
		}
		rows++
		if rows == 1 {
			continue
		}

		stored, err := s.parseResultRow(ctx, contestID, record)
		if err != nil {
			return err
		}
		if stored {
			resultRows++
		}

		stored, err = s.parseOwnershipRow(ctx, contestID, record, resolver)
		if err != nil {
			return err
		}
		if stored {
			ownershipRows++
		}

		if rows%parseProgressEvery == 0 {
			s.logger.Info("parsing standings", "contest_id", contestID, "rows", rows)
		}
	}

	s.logger.Info("parsed standings",
		"contest_id", contestID,
		"rows", rows,
		"results", resultRows,
		"ownership", ownershipRows,
	)
	return nil
}

// parseResultRow stores one entrant row when the entrant is tracked. The
// allow-list matches the full entry name, so a multi-entry name like
// "alice (2/5)" is listed with its suffix; only the leading username token is
// what gets stored.
func (s *ResultsService) parseResultRow(ctx context.Context, contestID string, record []string) (bool, error) {
	if len(record) < 5 || strings.TrimSpace(record[1]) == "" {
		return false, nil
	}

	entryName := strings.TrimSpace(record[2])
	if _, ok := s.vipEntrants[entryName]; !ok {
		return false, nil
	}
	tokens := strings.Fields(entryName)
	if len(tokens) == 0 {
		return false, nil
	}

	res := result.Result{
		EntryDKID:   strings.TrimSpace(record[1]),
		ContestDKID: contestID,
		Name:        tokens[0],
	}
	if rank, err := strconv.Atoi(strings.TrimSpace(record[0])); err == nil {
		res.Rank = &rank
	}
	if points, err := strconv.ParseFloat(strings.TrimSpace(record[4]), 64); err == nil {
		res.Points = &points
	}

	if err := res.Validate(); err != nil {
		return false, crerr.Wrap(err, "standings entrant row")
	}
	return true, s.results.UpsertResult(ctx, res)
}

// parseOwnershipRow stores the per-player exposure columns that run alongside
// the entrant columns. The tuple is (player, position, drafted, points) in
// columns 7 through 10; rows past the last listed player leave all four
// blank, and a tuple that is only partly populated is malformed.
func (s *ResultsService) parseOwnershipRow(ctx context.Context, contestID string, record []string, resolver *PlayerResolver) (bool, error) {
	tuple := make([]string, 4)
	for i := range tuple {
		if 7+i < len(record) {
			tuple[i] = strings.TrimSpace(record[7+i])
		}
	}
	if tuple[0] == "" && tuple[1] == "" && tuple[2] == "" && tuple[3] == "" {
		return false, nil
	}
	if len(record) < 11 {
		return false, crerr.Newf("ownership columns truncated: %d fields", len(record))
	}

	playerName := tuple[0]
	drafted := tuple[2]
	points := tuple[3]

	playerID, err := resolver.Resolve(playerName)
	if err != nil {
		return false, err
	}

	fraction, err := parseOwnershipPercent(drafted)
	if err != nil {
		return false, crerr.Wrapf(err, "ownership for %q", playerName)
	}
	fantasyPoints, err := strconv.ParseFloat(points, 64)
	if err != nil {
		return false, crerr.Wrapf(err, "fantasy points for %q", playerName)
	}

	own := result.Ownership{
		ContestDKID:   contestID,
		PlayerID:      playerID,
		Ownership:     fraction,
		FantasyPoints: fantasyPoints,
	}
	if err := own.Validate(); err != nil {
		return false, crerr.Wrap(err, "standings ownership row")
	}
	return true, s.results.UpsertOwnership(ctx, own)
}

func parseOwnershipPercent(raw string) (float64, error) {
	percent, err := strconv.ParseFloat(strings.TrimSuffix(raw, "%"), 64)
	if err != nil {
		return 0, crerr.Wrapf(err, "parse percent %q", raw)
	}
	return percent / 100, nil
}

// EmptyContestIDs lists recent contests with no stored results, the default
// work set for an update run. The window is short because exports older than
// a few days rarely appear late.
func (s *ResultsService) EmptyContestIDs(ctx context.Context, sport string) ([]string, error) {
	since := s.now().Add(-emptyContestWindow)
	contests, err := s.contests.ListSince(ctx, sport, since)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, c := range contests {
		count, err := s.results.CountByContest(ctx, c.DKID)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			ids = append(ids, c.DKID)
		}
	}
	return ids, nil
}
