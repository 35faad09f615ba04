/*
Package tabular reads sample records from and writes them to tables, either
CSV files or Excel workbooks.

One row of a table, by default the first, names the columns. Every further
row is a record; rows above the header are skipped.
Cells are converted to the most specific value they spell: integers, floats,
booleans, and literal lists such as "[1, 2.5, foo]" or "(a, b)". Anything
else stays a string, and empty cells are left out of a record.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
Copyright © 2026 The karon Authors

*/
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/csm-adapt/karon/sample"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// tracer traces with key 'karon.tabular'.
func tracer() tracing.Trace {
	return tracing.Select("karon.tabular")
}

// Record is a row of a table. Keys holds the column names present in the
// row, in column order.
type Record struct {
	Keys   []string
	Values map[string]any
}

// Get returns the value of column key.
func (r Record) Get(key string) (any, bool) {
	v, ok := r.Values[key]
	return v, ok
}

// Fields returns a copy of the values of r.
func (r Record) Fields() map[string]any {
	return maps.Clone(r.Values)
}

type tag struct {
	key   string
	value any
}

type options struct {
	comma  rune
	raw    bool
	header int
	sheets []string
	tags   []tag
}

func newOptions(opts []Option) options {
	o := options{comma: ',', header: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures reading a table.
type Option func(*options)

// Comma sets the field delimiter of CSV tables. The default is ','.
func Comma(r rune) Option {
	return func(o *options) { o.comma = r }
}

// Raw turns off the conversion of cells: every value is a string.
func Raw() Option {
	return func(o *options) { o.raw = true }
}

// Header sets the 1-based number of the row naming the columns. Rows above
// it are skipped. The default is 1.
func Header(row int) Option {
	return func(o *options) { o.header = max(row, 1) }
}

// Sheets restricts reading a workbook to the named sheets, in this order.
// By default all sheets are read.
func Sheets(names ...string) Option {
	return func(o *options) { o.sheets = names }
}

// Tag sets column key to value in every record read, replacing what the
// table holds. It is used to mark records with their source, e.g. the
// contact who provided a file.
func Tag(key string, value any) Option {
	return func(o *options) { o.tags = append(o.tags, tag{key, value}) }
}

// ReadCSV reads a table with a header row.
func ReadCSV(r io.Reader, opts ...Option) ([]Record, error) {
	o := newOptions(opts)
	cr := csv.NewReader(r)
	cr.Comma = o.comma
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := readTable(cr.Read, o)
	tracer().Debugf("read %d CSV records", len(records))
	return records, err
}

// readTable collects records from the rows returned by next, until it
// returns io.EOF.
func readTable(next func() ([]string, error), o options) ([]Record, error) {
	var header []string
	var records []Record
	for line := 1; ; line++ {
		row, err := next()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return records, fmt.Errorf("cannot read table row %d: %w", line, err)
		}
		if line < o.header {
			continue
		} else if line == o.header {
			header = make([]string, len(row))
			for i, h := range row {
				header[i] = strings.TrimSpace(h)
			}
			continue
		}
		if rec, ok := record(line, header, row, o); ok {
			records = append(records, rec)
		}
	}
	if header == nil {
		tracer().Infof("table has no header row %d", o.header)
	}
	return records, nil
}

func record(line int, header, row []string, o options) (Record, bool) {
	rec := Record{Values: make(map[string]any, len(header))}
	set := func(key string, v any) {
		if _, dup := rec.Values[key]; !dup {
			rec.Keys = append(rec.Keys, key)
		}
		rec.Values[key] = v
	}
	for i, cell := range row {
		if i >= len(header) || header[i] == "" {
			if strings.TrimSpace(cell) != "" {
				tracer().Infof("row %d: ignoring cell %d without column name", line, i+1)
			}
			continue
		}
		if strings.TrimSpace(cell) == "" {
			continue
		}
		var v any = cell
		if !o.raw {
			v = Convert(cell)
		}
		set(header[i], v)
	}
	if len(rec.Keys) == 0 {
		return rec, false
	}
	for _, t := range o.tags {
		set(t.key, t.value)
	}
	return rec, true
}

// Convert maps the text of a cell to an int, float64, bool or []any value,
// if it spells one. Otherwise the trimmed text is returned.
func Convert(cell string) any {
	s := strings.TrimSpace(cell)
	if s == "" {
		return s
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		if i >= math.MinInt && i <= math.MaxInt {
			return int(i)
		}
		return i
	}
	if strings.ContainsAny(s, "0123456789") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if list, ok := literalList(s); ok {
		return list
	}
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// literalList parses "[a, b]" or "(a, b)" as a YAML flow sequence.
func literalList(s string) ([]any, bool) {
	switch {
	case strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]"):
	case strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")"):
		s = "[" + s[1:len(s)-1] + "]"
	default:
		return nil, false
	}
	var items []any
	if err := yaml.Unmarshal([]byte(s), &items); err != nil {
		return nil, false
	}
	if items == nil {
		items = []any{}
	}
	return items, true
}

// Samples creates a sample for every record.
func Samples(records []Record, opts ...sample.Option) ([]*sample.Sample, error) {
	samples := make([]*sample.Sample, 0, len(records))
	for i, rec := range records {
		s, err := sample.New(rec.Values, opts...)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// columnsOf returns the union of all sample fields: leading columns first, the
// rest sorted by name.
func columnsOf(samples []*sample.Sample, leading []string) []string {
	columns := slices.Clone(leading)
	rest := make(map[string]struct{})
	for _, s := range samples {
		for k := range s.Fields {
			if !slices.Contains(leading, k) {
				rest[k] = struct{}{}
			}
		}
	}
	return append(columns, slices.Sorted(maps.Keys(rest))...)
}

// WriteCSV writes samples as a table. The columns are the union of all
// sample fields: leading columns first, the rest sorted by name. Missing
// fields are written as empty cells.
func WriteCSV(w io.Writer, samples []*sample.Sample, leading ...string) error {
	columns := columnsOf(samples, leading)
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	row := make([]string, len(columns))
	for _, s := range samples {
		for i, c := range columns {
			row[i] = Format(s.Fields[c])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Format renders a value as cell text such that Convert reads it back.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		s := strconv.FormatFloat(x, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEn") {
			s += ".0" // keep it a float
		}
		return s
	case float32:
		return Format(float64(x))
	case []any:
		items := make([]string, len(x))
		for i, item := range x {
			items[i] = Format(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	}
	return fmt.Sprint(v)
}
