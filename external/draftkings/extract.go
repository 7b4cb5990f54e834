package draftkings

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"
)

var digitsRegex = regexp.MustCompile(`\d+`)

// ContestDetail is the scalar region of a gamecenter page. DateRaw is left
// unparsed because yearless dates need a reference day (see ParseContestDate).
type ContestDetail struct {
	Status        string
	Name          string
	TotalPrizes   float64
	DateRaw       string
	Entries       int
	PositionsPaid int
}

func (d ContestDetail) Completed() bool {
	return strings.EqualFold(strings.TrimSpace(d.Status), "completed")
}

// ParseContestPage reads the fixed header region of a contest detail page.
// Retired contests serve a page without that region; this returns
// ErrPageLayout so the caller can skip the contest without failing the batch.
func ParseContestPage(body []byte) (ContestDetail, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ContestDetail{}, crerr.Wrap(err, "parse contest page html")
	}

	top := doc.Find(".top").First()
	if top.Length() == 0 {
		return ContestDetail{}, crerr.WithDetail(ErrPageLayout, "missing .top region")
	}
	headers := top.Find("h4")
	spans := top.Find(".info-header span")
	if headers.Length() < 2 || spans.Length() < 5 {
		return ContestDetail{}, crerr.WithDetail(ErrPageLayout, "incomplete contest header")
	}

	prizes, err := parseDollars(headers.Eq(1).Text())
	if err != nil {
		return ContestDetail{}, crerr.Wrap(err, "parse total prizes")
	}
	entries, err := strconv.Atoi(strings.TrimSpace(spans.Eq(2).Text()))
	if err != nil {
		return ContestDetail{}, crerr.Wrap(err, "parse entries")
	}
	positionsPaid, err := strconv.Atoi(strings.TrimSpace(spans.Eq(4).Text()))
	if err != nil {
		return ContestDetail{}, crerr.Wrap(err, "parse positions paid")
	}

	return ContestDetail{
		Status:        strings.TrimSpace(spans.Eq(3).Text()),
		Name:          strings.TrimSpace(headers.Eq(0).Text()),
		TotalPrizes:   prizes,
		DateRaw:       strings.TrimSpace(spans.Eq(0).Text()),
		Entries:       entries,
		PositionsPaid: positionsPaid,
	}, nil
}

type PayoutRow struct {
	UpperRank int
	LowerRank int
	Amount    float64
}

type PayoutTable struct {
	EntryFee float64
	Rows     []PayoutRow
}

// ParsePayoutPage reads the payout table and entry fee from the details
// popup. Soft-fails with ErrPageLayout like ParseContestPage.
func ParsePayoutPage(body []byte) (PayoutTable, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return PayoutTable{}, crerr.Wrap(err, "parse payout page html")
	}

	table := doc.Find("#payouts-table").First()
	if table.Length() == 0 {
		return PayoutTable{}, crerr.WithDetail(ErrPageLayout, "missing payouts table")
	}

	heading := doc.Find("h2").First().Text()
	parts := strings.Split(heading, "|")
	if len(parts) < 3 {
		return PayoutTable{}, crerr.WithDetail(ErrPageLayout, "missing entry fee heading")
	}
	// The third segment reads "$3.00 Entry Fee"; only the leading amount matters.
	feeFields := strings.Fields(parts[2])
	if len(feeFields) == 0 {
		return PayoutTable{}, crerr.WithDetail(ErrPageLayout, "empty entry fee heading")
	}
	entryFee, err := parseDollars(feeFields[0])
	if err != nil {
		return PayoutTable{}, crerr.Wrap(err, "parse entry fee")
	}

	out := PayoutTable{EntryFee: entryFee}
	var rowErr error
	table.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return true
		}

		upper, lower, err := parseRankRange(cells.Eq(0).Text())
		if err != nil {
			rowErr = err
			return false
		}
		amount, err := parseDollars(cells.Eq(1).Text())
		if err != nil {
			rowErr = err
			return false
		}
		out.Rows = append(out.Rows, PayoutRow{UpperRank: upper, LowerRank: lower, Amount: amount})
		return true
	})
	if rowErr != nil {
		return PayoutTable{}, rowErr
	}

	return out, nil
}

// parseRankRange expands "12-15" to (12, 15) and a lone "7th" to (7, 7).
func parseRankRange(raw string) (int, int, error) {
	parts := strings.Split(raw, "-")
	places := make([]int, 0, 2)
	for _, part := range parts {
		match := digitsRegex.FindString(part)
		if match == "" {
			return 0, 0, crerr.Newf("no rank in %q", raw)
		}
		place, err := strconv.Atoi(match)
		if err != nil {
			return 0, 0, crerr.Wrapf(err, "parse rank %q", raw)
		}
		places = append(places, place)
	}

	switch len(places) {
	case 1:
		return places[0], places[0], nil
	case 2:
		return places[0], places[1], nil
	default:
		return 0, 0, crerr.Newf("unexpected rank range %q", raw)
	}
}

func parseDollars(raw string) (float64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, crerr.Wrapf(err, "parse dollar amount %q", raw)
	}
	return value, nil
}
