package sink

import (
	"context"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"finflow/statement-ingest/internal/models"
)

// csvHeaders is the standardized output column order, matching
// models.CategorizedTransaction.MarshalCSV.
var csvHeaders = []string{"StartedAt", "CompletedAt", "Description", "Amount", "Currency", "Category"}

// CSVSink writes categorized transactions as CSV rows to a writer.
type CSVSink struct {
	w         io.Writer
	delimiter rune
}

// NewCSVSink creates a sink writing to w. A zero delimiter means comma.
func NewCSVSink(w io.Writer, delimiter rune) *CSVSink {
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVSink{w: w, delimiter: delimiter}
}

// Save renders every transaction through its MarshalCSV row, preceded by the
// standard header row.
func (s *CSVSink) Save(_ context.Context, txs []models.CategorizedTransaction) error {
	writer := gocsv.DefaultCSVWriter(s.w)
	writer.Comma = s.delimiter

	if err := writer.Write(csvHeaders); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for i := range txs {
		row, err := txs[i].MarshalCSV()
		if err != nil {
			return fmt.Errorf("serializing transaction %d: %w", i, err)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing transaction %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
