package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"finflow/statement-ingest/internal/ingesterror"
)

// parseCSV reads the buffer as comma-separated values, first row as headers.
// Field counts are checked per row so that a ragged row surfaces as a typed
// parse error with its row number instead of the csv package's generic one.
func parseCSV(data []byte) ([]Record, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ingesterror.ParseError{Format: "csv", Err: err}
		}
		rows = append(rows, row)
	}

	return rowsToRecords("csv", rows)
}

func errFieldCount(want, got int) error {
	return fmt.Errorf("expected %d fields, got %d", want, got)
}
