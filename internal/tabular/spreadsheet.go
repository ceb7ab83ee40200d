package tabular

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"finflow/statement-ingest/internal/ingesterror"
)

// maxXLSRows bounds how many rows are read from a legacy XLS workbook.
const maxXLSRows = 65536

// biffRow is one populated row of a legacy worksheet. FirstCol and LastCol
// delimit the half-open column range holding cells.
type biffRow interface {
	FirstCol() int
	LastCol() int
	Col(int) string
}

// biffSheet is the slice of the legacy worksheet API the cell extraction
// reads: a row count and per-index row access, where absent rows are nil.
type biffSheet interface {
	rowCount() int
	row(int) biffRow
}

// worksheetAdapter exposes an extrame/xls worksheet as a biffSheet.
type worksheetAdapter struct {
	ws *xls.WorkSheet
}

func (a worksheetAdapter) rowCount() int { return int(a.ws.MaxRow) + 1 }

func (a worksheetAdapter) row(i int) biffRow {
	if r := a.ws.Row(i); r != nil {
		return r
	}
	return nil
}

// parseXLS decodes a legacy BIFF (.xls) workbook. Only the first sheet is
// read; an empty sheet yields an empty sequence.
func parseXLS(data []byte) ([]Record, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, &ingesterror.ParseError{
			Format: "xls",
			Err:    fmt.Errorf("opening workbook: %w", err),
		}
	}

	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return []Record{}, nil
	}

	return squareRows("xls", biffRows(worksheetAdapter{ws: sheet}))
}

// biffRows extracts the cell grid of a legacy worksheet. Absent rows are kept
// as nil so the blank-row skip sees them; columns before a row's first
// populated cell stay empty.
func biffRows(sheet biffSheet) [][]string {
	count := sheet.rowCount()
	if count > maxXLSRows {
		count = maxXLSRows
	}
	rows := make([][]string, 0, count)
	for i := 0; i < count; i++ {
		row := sheet.row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, row.LastCol())
		for j := row.FirstCol(); j < row.LastCol(); j++ {
			cells[j] = row.Col(j)
		}
		rows = append(rows, cells)
	}
	return rows
}

// parseXLSX decodes an OOXML (.xlsx) workbook via excelize. Only the first
// sheet is read; an empty sheet yields an empty sequence.
func parseXLSX(data []byte) ([]Record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ingesterror.ParseError{
			Format: "xlsx",
			Err:    fmt.Errorf("opening workbook: %w", err),
		}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []Record{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ingesterror.ParseError{
			Format: "xlsx",
			Err:    fmt.Errorf("reading sheet %s: %w", sheets[0], err),
		}
	}

	return squareRows("xlsx", rows)
}

// squareRows pads short spreadsheet rows with empty cells before the shared
// record conversion. Spreadsheet libraries legitimately drop trailing empty
// cells, so unlike CSV a short row here is not malformed; rows longer than
// the header still are.
func squareRows(format string, rows [][]string) ([]Record, error) {
	if len(rows) == 0 {
		return []Record{}, nil
	}
	width := len(rows[0])
	squared := make([][]string, len(rows))
	for i, row := range rows {
		if i > 0 && len(row) < width && !isBlankRow(row) {
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		}
		squared[i] = row
	}
	return rowsToRecords(format, squared)
}
