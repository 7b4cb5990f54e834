package draftkings

import (
	"archive/zip"
	"bytes"
	"net/http"
	"testing"

	crerr "github.com/cockroachdb/errors"
)

func TestClassifyExport(t *testing.T) {
	csvBody := []byte("Rank,EntryId,EntryName\n1,42,alice\n")

	cases := []struct {
		name        string
		contentType string
		length      string
		body        []byte
		want        ExportKind
	}{
		{"csv", "text/csv", "", csvBody, ExportCSV},
		{"zip content type", "application/zip", "", []byte("PK\x03\x04data"), ExportZip},
		{"octet stream", "application/octet-stream", "", []byte("PK\x03\x04data"), ExportZip},
		{"zip magic without content type", "", "", []byte("PK\x03\x04data"), ExportZip},
		{"declared empty", "text/csv", "0", nil, ExportEmpty},
		{"empty body", "text/csv", "", nil, ExportEmpty},
		{"html error page", "text/html; charset=utf-8", "", []byte("<html>oops</html>"), ExportEmpty},
		{"unexpected", "application/json", "", []byte("{}"), ExportUnexpected},
	}

	for _, tc := range cases {
		header := http.Header{}
		if tc.contentType != "" {
			header.Set("Content-Type", tc.contentType)
		}
		if tc.length != "" {
			header.Set("Content-Length", tc.length)
		}

		payload := ClassifyExport(header, tc.body)
		if payload.Kind != tc.want {
			t.Fatalf("%s: unexpected kind: got=%s want=%s", tc.name, payload.Kind, tc.want)
		}
		if tc.want == ExportCSV && !bytes.Equal(payload.Body, tc.body) {
			t.Fatalf("%s: csv body not carried through", tc.name)
		}
	}
}

func TestUnpackArchive(t *testing.T) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	entry, err := writer.Create("exports/contest-standings-123.csv")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := entry.Write([]byte("Rank,EntryId\n1,42\n")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	files, err := UnpackArchive(buf.Bytes())
	if err != nil {
		t.Fatalf("unpack: %v", err)
	}
	content, ok := files["contest-standings-123.csv"]
	if !ok {
		t.Fatalf("entry not keyed by base name: got=%v", files)
	}
	if string(content) != "Rank,EntryId\n1,42\n" {
		t.Fatalf("unexpected content: got=%q", content)
	}
}

func TestUnpackArchive_Malformed(t *testing.T) {
	_, err := UnpackArchive([]byte("PK this is not a zip"))
	if !crerr.Is(err, ErrBadArchive) {
		t.Fatalf("expected ErrBadArchive, got %v", err)
	}
}
