package draftkings

import (
	"testing"
	"time"
)

func TestDecodeLobby_ContestList(t *testing.T) {
	raw := []byte(`[
		{"id": 9876543, "n": "NBA $50K Double Up", "sd": "/Date(1449619200000)/",
		 "dg": 7555, "po": 50000, "m": 11000, "a": 25, "ec": 3000, "mec": 1,
		 "attr": {"IsDoubleUp": "true", "IsGuaranteed": true}}
	]`)

	page, err := decodeLobby(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page.Contests) != 1 {
		t.Fatalf("unexpected contest count: got=%d want=1", len(page.Contests))
	}

	c := page.Contests[0]
	if c.DKID() != "9876543" {
		t.Fatalf("unexpected dk id: got=%q", c.DKID())
	}
	if !c.IsDoubleUp() || !c.IsGuaranteed() {
		t.Fatalf("attr flags not decoded: double_up=%t guaranteed=%t", c.IsDoubleUp(), c.IsGuaranteed())
	}

	start, err := c.StartTime()
	if err != nil {
		t.Fatalf("start time: %v", err)
	}
	want := time.UnixMilli(1449619200000).UTC()
	if !start.Equal(want) {
		t.Fatalf("unexpected start: got=%s want=%s", start, want)
	}
}

func TestDecodeLobby_Envelope(t *testing.T) {
	raw := []byte(`{
		"Contests": [{"id": 1, "n": "c", "mec": 1}],
		"DraftGroups": [
			{"DraftGroupId": 7555, "ContestTypeId": 21,
			 "StartDateEst": "2016-01-17T13:00:00.0000000",
			 "DraftGroupTag": "Featured", "ContestStartTimeSuffix": ""}
		]
	}`)

	page, err := decodeLobby(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page.Contests) != 1 || len(page.DraftGroups) != 1 {
		t.Fatalf("unexpected counts: contests=%d draft_groups=%d", len(page.Contests), len(page.DraftGroups))
	}

	date, err := page.DraftGroups[0].StartDate()
	if err != nil {
		t.Fatalf("start date: %v", err)
	}
	want := time.Date(2016, time.January, 17, 0, 0, 0, 0, time.UTC)
	if !date.Equal(want) {
		t.Fatalf("unexpected date: got=%s want=%s", date, want)
	}
}

func TestDecodeLobby_Unrecognized(t *testing.T) {
	if _, err := decodeLobby([]byte("<html>login</html>")); err == nil {
		t.Fatalf("expected error for non-json body")
	}
}

func TestAttrBool(t *testing.T) {
	attrs := map[string]any{
		"IsDoubleUp":   "True",
		"IsGuaranteed": false,
		"Multiplier":   3.0,
	}

	if !attrBool(attrs, "IsDoubleUp") {
		t.Fatalf("string true not recognized")
	}
	if attrBool(attrs, "IsGuaranteed") {
		t.Fatalf("false bool reported true")
	}
	if attrBool(attrs, "Multiplier") {
		t.Fatalf("numeric attr reported true")
	}
	if attrBool(attrs, "Missing") {
		t.Fatalf("missing attr reported true")
	}
}
