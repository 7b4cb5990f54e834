package draftkings

import (
	"archive/zip"
	"bytes"
	"io"
	"net/http"
	"path"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

type ExportKind int

const (
	ExportCSV ExportKind = iota + 1
	ExportZip
	ExportEmpty
	ExportUnexpected
)

func (k ExportKind) String() string {
	switch k {
	case ExportCSV:
		return "csv"
	case ExportZip:
		return "zip"
	case ExportEmpty:
		return "empty"
	case ExportUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// ExportPayload is the classified standings export. Exactly one variant
// applies; Note carries the content type for the Unexpected case.
type ExportPayload struct {
	Kind ExportKind
	Body []byte
	Note string
}

// ClassifyExport maps one export response onto a payload variant. An HTML
// body is an operator error page, not data, so it classifies as empty just
// like a zero-length response.
func ClassifyExport(header http.Header, body []byte) ExportPayload {
	if header.Get("Content-Length") == "0" || len(body) == 0 {
		return ExportPayload{Kind: ExportEmpty}
	}

	contentType := strings.ToLower(header.Get("Content-Type"))
	switch {
	case strings.Contains(contentType, "text/html"):
		return ExportPayload{Kind: ExportEmpty, Note: contentType}
	case strings.Contains(contentType, "text/csv"):
		return ExportPayload{Kind: ExportCSV, Body: body}
	case strings.Contains(contentType, "zip"),
		strings.Contains(contentType, "octet-stream"),
		bytes.HasPrefix(body, []byte("PK")):
		return ExportPayload{Kind: ExportZip, Body: body}
	default:
		return ExportPayload{Kind: ExportUnexpected, Body: body, Note: contentType}
	}
}

// UnpackArchive extracts every entry of a ZIP export, keyed by base filename.
func UnpackArchive(body []byte) (map[string][]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, crerr.WithDetail(ErrBadArchive, err.Error())
	}

	out := make(map[string][]byte, len(reader.File))
	for _, entry := range reader.File {
		file, err := entry.Open()
		if err != nil {
			return nil, crerr.WithDetail(ErrBadArchive, err.Error())
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, crerr.WithDetail(ErrBadArchive, err.Error())
		}
		out[path.Base(entry.Name)] = content
	}
	return out, nil
}
