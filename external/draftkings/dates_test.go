package draftkings

import (
	"testing"
	"time"
)

func TestParseYearlessDate_RollsBackAcrossYearBoundary(t *testing.T) {
	today := time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC)

	got, err := ParseYearlessDate("Dec 31", today)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected date: got=%s want=%s", got, want)
	}
}

func TestParseYearlessDate_KeepsCurrentYear(t *testing.T) {
	today := time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC)

	got, err := ParseYearlessDate("Jan 02", today)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected date: got=%s want=%s", got, want)
	}
}

func TestParseYearlessDate_TodayIsNotRolledBack(t *testing.T) {
	today := time.Date(2024, time.March, 15, 23, 59, 0, 0, time.UTC)

	got, err := ParseYearlessDate("Mar 15", today)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Year() != 2024 {
		t.Fatalf("unexpected year: got=%d want=2024", got.Year())
	}
}

func TestParseYearlessDate_Invalid(t *testing.T) {
	today := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	for _, raw := range []string{"", "Dec", "Blorp 12", "Dec 40", "Dec 1 2024"} {
		if _, err := ParseYearlessDate(raw, today); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParseContestDate_BothShapes(t *testing.T) {
	today := time.Date(2016, time.January, 5, 0, 0, 0, 0, time.UTC)

	got, err := ParseContestDate("NOV 29, 6:00 PM EST", today)
	if err != nil {
		t.Fatalf("parse comma shape: %v", err)
	}
	want := time.Date(2015, time.November, 29, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected date: got=%s want=%s", got, want)
	}

	got, err = ParseContestDate("01/03 7:00 PM EST", today)
	if err != nil {
		t.Fatalf("parse slash shape: %v", err)
	}
	want = time.Date(2016, time.January, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected date: got=%s want=%s", got, want)
	}
}
