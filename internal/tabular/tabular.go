// Package tabular decodes raw statement uploads (CSV or spreadsheet) into an
// ordered sequence of loosely-typed, string-keyed records. It knows nothing
// about banks; the mapper package interprets the records.
package tabular

import (
	"strings"
	"unicode"

	"finflow/statement-ingest/internal/ingesterror"
)

// Supported content types.
const (
	ContentTypeCSV  = "text/csv"
	ContentTypeXLS  = "application/vnd.ms-excel"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Record is one row of the uploaded file, keyed by the camel-cased header of
// each column. No identity, no ordering inside the record; row order is
// carried by the enclosing slice.
type Record map[string]string

// Parse decodes the raw bytes of an uploaded statement into records, picking
// the decoding strategy from the declared content type. The returned slice
// preserves the file's row order, which later stages rely on.
func Parse(data []byte, contentType string) ([]Record, error) {
	switch normalizeContentType(contentType) {
	case ContentTypeCSV:
		return parseCSV(data)
	case ContentTypeXLS:
		return parseXLS(data)
	case ContentTypeXLSX:
		return parseXLSX(data)
	default:
		return nil, &ingesterror.UnsupportedFileTypeError{ContentType: contentType}
	}
}

// normalizeContentType strips MIME parameters such as "; charset=utf-8".
func normalizeContentType(contentType string) string {
	base, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

// camelKey converts a raw header cell into its record key: non-alphanumeric
// runs are treated as word boundaries, subsequent words are capitalized and
// the first letter is lowered. "Started Date" -> "startedDate",
// "Transactiondate" -> "transactiondate".
func camelKey(header string) string {
	var b strings.Builder
	upperNext := false
	first := true
	for _, r := range strings.TrimSpace(header) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upperNext = !first
			continue
		}
		switch {
		case first:
			b.WriteRune(unicode.ToLower(r))
			first = false
		case upperNext:
			b.WriteRune(unicode.ToUpper(r))
			upperNext = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// rowsToRecords converts a header row plus data rows into records. Rows whose
// cells are all blank are skipped; a row with a different cell count than the
// header is a hard failure, never padded or truncated.
func rowsToRecords(format string, rows [][]string) ([]Record, error) {
	if len(rows) == 0 {
		return []Record{}, nil
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = camelKey(h)
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		if len(row) != len(headers) {
			return nil, &ingesterror.ParseError{
				Format: format,
				Row:    i + 1,
				Err:    errFieldCount(len(headers), len(row)),
			}
		}
		rec := make(Record, len(headers))
		for j, cell := range row {
			rec[headers[j]] = strings.TrimSpace(cell)
		}
		records = append(records, rec)
	}
	return records, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
