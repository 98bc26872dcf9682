package doc

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	odf "github.com/logicossoftware/go-odf"
)

// SpreadsheetData is a bounded window over a spreadsheet's cells.
type SpreadsheetData struct {
	SheetName string     `json:"sheet_name"`
	Data      [][]string `json:"data"`
	RowCount  int        `json:"row_count"`
	ColCount  int        `json:"col_count"`
}

// DefaultMaxRows bounds Spreadsheet reads when the caller gives no limit.
const DefaultMaxRows = 100

// Spreadsheet reads up to maxRows rows from the spreadsheet at path by
// converting it to CSV. The converter exports the active sheet only;
// sheetName is recorded in the result but cannot select a sheet without
// driving the office suite's document model.
func (e *Extractor) Spreadsheet(ctx context.Context, path, sheetName string, maxRows int) (SpreadsheetData, error) {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return SpreadsheetData{}, fmt.Errorf("%w: %s", odf.ErrNotFound, path)
		}
		return SpreadsheetData{}, fmt.Errorf("%w: %v", odf.ErrIO, err)
	}
	if e.Conv == nil {
		return SpreadsheetData{}, fmt.Errorf("%w: spreadsheet reading needs the office converter", odf.ErrConversion)
	}

	dir, err := os.MkdirTemp("", "odfmcp-sheet-")
	if err != nil {
		return SpreadsheetData{}, fmt.Errorf("%w: %v", odf.ErrIO, err)
	}
	defer os.RemoveAll(dir)

	out, err := e.Conv.Convert(ctx, path, dir, "csv")
	if err != nil {
		return SpreadsheetData{}, err
	}
	f, err := os.Open(out)
	if err != nil {
		return SpreadsheetData{}, fmt.Errorf("%w: %v", odf.ErrIO, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are normal in exported sheets
	var data [][]string
	for len(data) < maxRows {
		rec, err := r.Read()
		if err != nil {
			break
		}
		data = append(data, rec)
	}

	cols := 0
	for _, row := range data {
		cols = max(cols, len(row))
	}
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	return SpreadsheetData{
		SheetName: sheetName,
		Data:      data,
		RowCount:  len(data),
		ColCount:  cols,
	}, nil
}
