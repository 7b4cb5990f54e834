package draftkings

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

var timestampMillisRegex = regexp.MustCompile(`[^\d]*(\d+)[^\d]*`)

// LobbyContest is one contest row of the lobby feed. Field names mirror the
// feed's terse keys.
type LobbyContest struct {
	ID            int64          `json:"id"`
	Name          string         `json:"n"`
	StartDateRaw  string         `json:"sd"`
	DraftGroupID  int            `json:"dg"`
	TotalPrizes   float64        `json:"po"`
	Entries       int            `json:"m"`
	EntryFee      float64        `json:"a"`
	EntryCount    int            `json:"ec"`
	MaxEntryCount int            `json:"mec"`
	Attributes    map[string]any `json:"attr"`
}

func (c LobbyContest) DKID() string {
	return strconv.FormatInt(c.ID, 10)
}

func (c LobbyContest) IsDoubleUp() bool {
	return attrBool(c.Attributes, "IsDoubleUp")
}

func (c LobbyContest) IsGuaranteed() bool {
	return attrBool(c.Attributes, "IsGuaranteed")
}

// StartTime extracts the epoch-millis timestamp wrapped in the feed's
// "/Date(1449619200000)/" strings.
func (c LobbyContest) StartTime() (time.Time, error) {
	match := timestampMillisRegex.FindStringSubmatch(c.StartDateRaw)
	if len(match) < 2 {
		return time.Time{}, crerr.Newf("no timestamp in %q", c.StartDateRaw)
	}
	millis, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return time.Time{}, crerr.Wrapf(err, "parse timestamp %q", c.StartDateRaw)
	}
	return time.UnixMilli(millis).UTC(), nil
}

func attrBool(attrs map[string]any, key string) bool {
	value, ok := attrs[key]
	if !ok {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(strings.TrimSpace(v), "true")
	default:
		return false
	}
}

// LobbyDraftGroup is one draft-group row of the lobby feed.
type LobbyDraftGroup struct {
	DraftGroupID  int    `json:"DraftGroupId"`
	ContestTypeID int    `json:"ContestTypeId"`
	StartDateEst  string `json:"StartDateEst"`
	Tag           string `json:"DraftGroupTag"`
	Suffix        string `json:"ContestStartTimeSuffix"`
}

// StartDate reads the date half of StartDateEst ("2016-01-17T13:00:00").
func (g LobbyDraftGroup) StartDate() (time.Time, error) {
	datePart := strings.SplitN(strings.TrimSpace(g.StartDateEst), "T", 2)[0]
	date, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return time.Time{}, crerr.Wrapf(err, "parse draft group date %q", g.StartDateEst)
	}
	return date, nil
}

// LobbyPage is the decoded lobby feed for one sport.
type LobbyPage struct {
	Contests    []LobbyContest
	DraftGroups []LobbyDraftGroup
}

// Lobby fetches and decodes the lobby feed for a sport.
func (c *Client) Lobby(ctx context.Context, sport string) (LobbyPage, error) {
	body, _, err := c.get(ctx, "/lobby/getcontests", map[string]string{"sport": sport})
	if err != nil {
		return LobbyPage{}, fmt.Errorf("fetch lobby sport=%s: %w", sport, err)
	}

	page, err := decodeLobby(body)
	if err != nil {
		return LobbyPage{}, fmt.Errorf("decode lobby sport=%s: %w", sport, err)
	}
	return page, nil
}

type lobbyEnvelope struct {
	Contests    []LobbyContest    `json:"Contests"`
	DraftGroups []LobbyDraftGroup `json:"DraftGroups"`
}

// decodeLobby accepts both shapes the feed has served over time: a bare
// contest array and an object envelope with Contests/DraftGroups keys.
func decodeLobby(raw []byte) (LobbyPage, error) {
	trimmed := strings.TrimSpace(string(raw))
	switch {
	case strings.HasPrefix(trimmed, "["):
		var contests []LobbyContest
		if err := sonic.Unmarshal(raw, &contests); err != nil {
			return LobbyPage{}, crerr.Wrap(err, "decode lobby contest list")
		}
		return LobbyPage{Contests: contests}, nil
	case strings.HasPrefix(trimmed, "{"):
		var envelope lobbyEnvelope
		if err := sonic.Unmarshal(raw, &envelope); err != nil {
			return LobbyPage{}, crerr.Wrap(err, "decode lobby envelope")
		}
		return LobbyPage{Contests: envelope.Contests, DraftGroups: envelope.DraftGroups}, nil
	default:
		return LobbyPage{}, crerr.New("lobby response is neither a list nor an object")
	}
}
