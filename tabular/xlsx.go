package tabular

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/csm-adapt/karon/sample"
	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the sheets of an Excel workbook, each one a table with a
// header row, and returns their records sheet after sheet. Cells are read
// unformatted, so numbers keep their precision. Integral numbers read back
// as ints, as Excel does not tell them from floats.
func ReadXLSX(r io.Reader, opts ...Option) ([]Record, error) {
	o := newOptions(opts)
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("cannot open workbook: %w", err)
	}
	defer f.Close()
	sheets := o.sheets
	if len(sheets) == 0 {
		sheets = f.GetSheetList()
	}
	var records []Record
	for _, sheet := range sheets {
		if !slices.Contains(f.GetSheetList(), sheet) {
			return records, fmt.Errorf("workbook has no sheet %q", sheet)
		}
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return records, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		i := 0
		next := func() ([]string, error) {
			if i >= len(rows) {
				return nil, io.EOF
			}
			i++
			return rows[i-1], nil
		}
		recs, err := readTable(next, o)
		if err != nil {
			return records, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		tracer().Debugf("sheet %q: %d records", sheet, len(recs))
		records = append(records, recs...)
	}
	return records, nil
}

// SheetName is the name of the sheet WriteXLSX writes to.
const SheetName = "Samples"

// WriteXLSX writes samples as a workbook with a single sheet. Columns are
// laid out as with WriteCSV. Numbers, booleans and strings are stored as
// typed cells, lists as their text.
func WriteXLSX(w io.Writer, samples []*sample.Sample, leading ...string) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}
	columns := columnsOf(samples, leading)
	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}
	for r, s := range samples {
		row := make([]any, len(columns))
		for i, c := range columns {
			row[i] = cellValue(s.Fields[c])
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", r+2, err)
		}
	}
	tracer().Debugf("wrote %d samples with %d columns to workbook", len(samples), len(columns))
	return f.Write(w)
}

func cellValue(v any) any {
	switch x := v.(type) {
	case nil, string, bool, int, int64:
		return x
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	}
	return Format(v)
}
