package draftkings

import (
	"testing"

	crerr "github.com/cockroachdb/errors"
)

const contestPageFixture = `<html><body>
<div class="top">
  <h4>NBA $100K Sharpshooter</h4>
  <h4>$100,000.00</h4>
  <div class="info-header">
    <span>NOV 29, 6:00 PM EST</span>
    <span>$3</span>
    <span>38314</span>
    <span>Completed</span>
    <span>7720</span>
  </div>
</div>
</body></html>`

func TestParseContestPage(t *testing.T) {
	detail, err := ParseContestPage([]byte(contestPageFixture))
	if err != nil {
		t.Fatalf("parse contest page: %v", err)
	}

	if detail.Name != "NBA $100K Sharpshooter" {
		t.Fatalf("unexpected name: got=%q", detail.Name)
	}
	if detail.TotalPrizes != 100000 {
		t.Fatalf("unexpected prizes: got=%f want=100000", detail.TotalPrizes)
	}
	if detail.DateRaw != "NOV 29, 6:00 PM EST" {
		t.Fatalf("unexpected date: got=%q", detail.DateRaw)
	}
	if detail.Entries != 38314 {
		t.Fatalf("unexpected entries: got=%d want=38314", detail.Entries)
	}
	if detail.PositionsPaid != 7720 {
		t.Fatalf("unexpected positions paid: got=%d want=7720", detail.PositionsPaid)
	}
	if !detail.Completed() {
		t.Fatalf("expected completed status, got %q", detail.Status)
	}
}

func TestParseContestPage_LiveContestIsNotCompleted(t *testing.T) {
	page := []byte(`<html><body><div class="top">
<h4>NBA Contest</h4><h4>$500.00</h4>
<div class="info-header">
<span>NOV 29, 6:00 PM EST</span><span>$3</span><span>100</span><span>LIVE</span><span>20</span>
</div></div></body></html>`)

	detail, err := ParseContestPage(page)
	if err != nil {
		t.Fatalf("parse contest page: %v", err)
	}
	if detail.Completed() {
		t.Fatalf("live contest reported as completed")
	}
}

func TestParseContestPage_RetiredLayout(t *testing.T) {
	_, err := ParseContestPage([]byte(`<html><body><p>Contest not available</p></body></html>`))
	if !crerr.Is(err, ErrPageLayout) {
		t.Fatalf("expected ErrPageLayout, got %v", err)
	}
}

const payoutPageFixture = `<html><body>
<h2>NBA $100K Sharpshooter | 38314 Entries | $3.00 Entry Fee</h2>
<table id="payouts-table">
  <tr><th>Place</th><th>Payout</th></tr>
  <tr><td>1st</td><td>$10,000.00</td></tr>
  <tr><td>7th</td><td>$500.00</td></tr>
  <tr><td>12th - 15th</td><td>$100.00</td></tr>
</table>
</body></html>`

func TestParsePayoutPage(t *testing.T) {
	table, err := ParsePayoutPage([]byte(payoutPageFixture))
	if err != nil {
		t.Fatalf("parse payout page: %v", err)
	}

	if table.EntryFee != 3 {
		t.Fatalf("unexpected entry fee: got=%f want=3", table.EntryFee)
	}
	if len(table.Rows) != 3 {
		t.Fatalf("unexpected row count: got=%d want=3", len(table.Rows))
	}

	want := []PayoutRow{
		{UpperRank: 1, LowerRank: 1, Amount: 10000},
		{UpperRank: 7, LowerRank: 7, Amount: 500},
		{UpperRank: 12, LowerRank: 15, Amount: 100},
	}
	for i, row := range table.Rows {
		if row != want[i] {
			t.Fatalf("unexpected row %d: got=%+v want=%+v", i, row, want[i])
		}
	}
}

func TestParsePayoutPage_MissingTable(t *testing.T) {
	_, err := ParsePayoutPage([]byte(`<html><body><h2>a | b | $3</h2></body></html>`))
	if !crerr.Is(err, ErrPageLayout) {
		t.Fatalf("expected ErrPageLayout, got %v", err)
	}
}

func TestParseRankRange(t *testing.T) {
	cases := []struct {
		raw   string
		upper int
		lower int
	}{
		{"1st", 1, 1},
		{"7", 7, 7},
		{"12 - 15", 12, 15},
		{"12th-15th", 12, 15},
	}
	for _, tc := range cases {
		upper, lower, err := parseRankRange(tc.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.raw, err)
		}
		if upper != tc.upper || lower != tc.lower {
			t.Fatalf("unexpected range for %q: got=(%d,%d) want=(%d,%d)", tc.raw, upper, lower, tc.upper, tc.lower)
		}
	}

	if _, _, err := parseRankRange("first"); err == nil {
		t.Fatalf("expected error for non-numeric rank")
	}
}
