package draftkings

import (
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
)

var monthsByAbbrev = map[string]time.Month{
	"jan": time.January,
	"feb": time.February,
	"mar": time.March,
	"apr": time.April,
	"may": time.May,
	"jun": time.June,
	"jul": time.July,
	"aug": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

// ParseYearlessDate reads "<Mon> <day>" (e.g. "Nov 29"), assuming the
// current year and rolling back one year when the result lands after today.
// Keeps December contests parsed in early January on the correct side of the
// year boundary.
func ParseYearlessDate(raw string, today time.Time) (time.Time, error) {
	fields := strings.Fields(strings.TrimSpace(raw))
	if len(fields) != 2 {
		return time.Time{}, crerr.Newf("expected month and day in %q", raw)
	}

	month, ok := monthsByAbbrev[strings.ToLower(fields[0])]
	if !ok {
		return time.Time{}, crerr.Newf("unknown month in %q", raw)
	}
	day, err := strconv.Atoi(fields[1])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, crerr.Newf("invalid day in %q", raw)
	}

	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	date := time.Date(today.Year(), month, day, 0, 0, 0, 0, time.UTC)
	if date.After(todayDate) {
		date = time.Date(today.Year()-1, month, day, 0, 0, 0, 0, time.UTC)
	}
	return date, nil
}

// ParseContestDate reads the free-text date of a detail page, which comes in
// two shapes: "NOV 29, 6:00 PM EST" and "02/18 7:00 PM EST". Both omit the
// year, so the yearless rollback rule applies.
func ParseContestDate(raw string, today time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.Contains(trimmed, ",") {
		return ParseYearlessDate(strings.SplitN(trimmed, ",", 2)[0], today)
	}

	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return time.Time{}, crerr.Newf("empty contest date %q", raw)
	}
	parts := strings.SplitN(fields[0], "/", 2)
	if len(parts) != 2 {
		return time.Time{}, crerr.Newf("unrecognized contest date %q", raw)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, crerr.Newf("invalid month in %q", raw)
	}

	abbrev := time.Date(2000, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Format("Jan")
	return ParseYearlessDate(abbrev+" "+parts[1], today)
}
