package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/dfsline/contest-tracker/external/draftkings"
	"github.com/dfsline/contest-tracker/internal/domain/player"
	"github.com/dfsline/contest-tracker/internal/domain/salary"
	"github.com/dfsline/contest-tracker/internal/platform/logging"
)

// Draft groups whose start-time suffix names a head-to-head pairing cover a
// single game, not a full slate, and carry partial salary lists.
var singleGameSuffixRegex = regexp.MustCompile(`[A-Z]{2,} vs [A-Z]{2,}`)

var acceptedContestTypesBySport = map[string][]int{
	"nfl": {21},
}

type salaryFetcher interface {
	Lobby(ctx context.Context, sport string) (draftkings.LobbyPage, error)
	SalaryCSV(ctx context.Context, draftGroupID, contestTypeID int) ([]byte, error)
}

// SalaryService ingests player salaries from the lobby's draft groups. Each
// full-slate group's CSV is parsed into player and salary rows; optionally
// the day's groups are merged into one combined CSV on disk.
type SalaryService struct {
	fetcher     salaryFetcher
	players     player.Repository
	salaries    salary.Repository
	salariesDir string
	logger      *logging.Logger
}

func NewSalaryService(fetcher salaryFetcher, players player.Repository, salaries salary.Repository, salariesDir string, logger *logging.Logger) *SalaryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SalaryService{
		fetcher:     fetcher,
		players:     players,
		salaries:    salaries,
		salariesDir: salariesDir,
		logger:      logger,
	}
}

type salaryRow struct {
	Name     string
	Position string
	Salary   int
	TeamAbbv string
	PPG      string
}

// Run ingests salaries for every usable draft group in the sport's lobby.
// When writeCSV is set, each slate date additionally gets a merged salary
// file on disk.
func (s *SalaryService) Run(ctx context.Context, sport string, writeCSV bool) error {
	sport = strings.ToLower(strings.TrimSpace(sport))
	if sport == "" {
		return crerr.WithDetail(ErrInvalidInput, "sport is required")
	}

	page, err := s.fetcher.Lobby(ctx, sport)
	if err != nil {
		return err
	}

	rowsByDate := make(map[string]map[string]salaryRow)
	for _, group := range page.DraftGroups {
		if reason, skip := skipDraftGroup(sport, group); skip {
			s.logger.Debug("skipping draft group",
				"draft_group_id", group.DraftGroupID, "reason", reason)
			continue
		}

		date, err := group.StartDate()
		if err != nil {
			s.logger.Warn("draft group has no start date, skipping",
				"draft_group_id", group.DraftGroupID, "error", err)
			continue
		}

		rows, err := s.ingestDraftGroup(ctx, sport, group, date)
		if err != nil {
			s.logger.Error("draft group ingestion failed",
				"draft_group_id", group.DraftGroupID, "error", err)
			continue
		}

		if writeCSV {
			key := date.Format("2006-01-02")
			if rowsByDate[key] == nil {
				rowsByDate[key] = make(map[string]salaryRow)
			}
			for _, row := range rows {
				rowsByDate[key][row.Name] = row
			}
		}
	}

	if writeCSV {
		for date, rows := range rowsByDate {
			if err := s.writeCombinedCSV(sport, date, rows); err != nil {
				return err
			}
		}
	}
	return nil
}

// skipDraftGroup filters out groups that do not carry a full main-slate
// salary list.
func skipDraftGroup(sport string, group draftkings.LobbyDraftGroup) (string, bool) {
	if group.Tag != "Featured" {
		return "tag " + group.Tag, true
	}
	if strings.Contains(group.Suffix, "Tiers") {
		return "tiers slate", true
	}
	if singleGameSuffixRegex.MatchString(group.Suffix) {
		return "single game slate", true
	}
	if accepted, ok := acceptedContestTypesBySport[sport]; ok {
		match := false
		for _, id := range accepted {
			if group.ContestTypeID == id {
				match = true
				break
			}
		}
		if !match {
			return fmt.Sprintf("contest type %d", group.ContestTypeID), true
		}
	}
	return "", false
}

func (s *SalaryService) ingestDraftGroup(ctx context.Context, sport string, group draftkings.LobbyDraftGroup, date time.Time) ([]salaryRow, error) {
	body, err := s.fetcher.SalaryCSV(ctx, group.DraftGroupID, group.ContestTypeID)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(strings.NewReader(string(body)))
	reader.FieldsPerRecord = -1

	var rows []salaryRow
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, crerr.Wrapf(err, "read salary row %d", line+1)
		}
		line++
		if line == 1 || len(record) < 9 {
			continue
		}

		row, err := s.ingestSalaryRow(ctx, sport, group, date, record)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	s.logger.Info("ingested draft group salaries",
		"sport", sport,
		"draft_group_id", group.DraftGroupID,
		"date", date.Format("2006-01-02"),
		"players", len(rows),
	)
	return rows, nil
}

// Salary CSV columns: position, name+id, name, id, roster position, salary,
// game info, team, avg points per game. The stored roster position comes
// from its dedicated column; the first column is the stats position and can
// differ for flex-eligible players.
func (s *SalaryService) ingestSalaryRow(ctx context.Context, sport string, group draftkings.LobbyDraftGroup, date time.Time, record []string) (salaryRow, error) {
	name := strings.TrimSpace(record[2])
	position := strings.TrimSpace(record[0])
	dkPosition := strings.TrimSpace(record[4])
	teamAbbv := strings.TrimSpace(record[7])

	amount, err := strconv.Atoi(strings.TrimSpace(record[5]))
	if err != nil {
		return salaryRow{}, crerr.Wrapf(err, "salary amount for %q", name)
	}

	stored, _, err := s.players.GetOrCreate(ctx, player.Player{
		Name:       name,
		Position:   position,
		DKPosition: dkPosition,
		Sport:      sport,
		TeamAbbv:   teamAbbv,
	})
	if err != nil {
		return salaryRow{}, err
	}
	if stored.DKPosition != dkPosition && dkPosition != "" {
		s.logger.Info("updating player roster position",
			"player", name, "from", stored.DKPosition, "to", dkPosition)
		if err := s.players.UpdateDKPosition(ctx, stored.ID, dkPosition); err != nil {
			return salaryRow{}, err
		}
	}

	existing, created, err := s.salaries.GetOrCreate(ctx, salary.Salary{
		PlayerID:      stored.ID,
		Sport:         sport,
		DraftGroupID:  group.DraftGroupID,
		ContestTypeID: group.ContestTypeID,
		Date:          &date,
		Amount:        amount,
	})
	if err != nil {
		return salaryRow{}, err
	}
	if !created && existing.Amount != amount {
		s.logger.Warn("stored salary differs from feed, keeping stored value",
			"player", name,
			"draft_group_id", group.DraftGroupID,
			"stored", existing.Amount,
			"feed", amount,
		)
	}

	return salaryRow{
		Name:     name,
		Position: position,
		Salary:   amount,
		TeamAbbv: teamAbbv,
		PPG:      strings.TrimSpace(record[8]),
	}, nil
}

// writeCombinedCSV merges one date's draft groups into a single file, sorted
// by salary descending then name.
func (s *SalaryService) writeCombinedCSV(sport, date string, byName map[string]salaryRow) error {
	rows := make([]salaryRow, 0, len(byName))
	for _, row := range byName {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Salary != rows[j].Salary {
			return rows[i].Salary > rows[j].Salary
		}
		return rows[i].Name < rows[j].Name
	})

	if err := os.MkdirAll(s.salariesDir, 0o755); err != nil {
		return crerr.Wrap(err, "create salaries dir")
	}
	target := filepath.Join(s.salariesDir, fmt.Sprintf("dk_%s_salaries_%s.csv", sport, date))
	file, err := os.Create(target)
	if err != nil {
		return crerr.Wrap(err, "create combined salary file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"Name", "Position", "Salary", "TeamAbbrev", "AvgPointsPerGame"}); err != nil {
		return crerr.Wrap(err, "write combined salary header")
	}
	for _, row := range rows {
		record := []string{row.Name, row.Position, strconv.Itoa(row.Salary), row.TeamAbbv, row.PPG}
		if err := writer.Write(record); err != nil {
			return crerr.Wrap(err, "write combined salary row")
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return crerr.Wrap(err, "flush combined salary file")
	}

	s.logger.Info("wrote combined salary file", "file", target, "players", len(rows))
	return nil
}
