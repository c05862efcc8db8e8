// Package report holds benchmark result tables and renders them as
// markdown, grid, CSV or plain terminal text.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// NotApplicable is the text shown for statistics that need more samples.
const NotApplicable = "NA"

var (
	// ErrUnknownField is returned when a sort or display field does not
	// name a column of the table.
	ErrUnknownField = errors.New("unknown field")

	// ErrHeaderMismatch is returned when the header labels do not match
	// the displayed fields one to one.
	ErrHeaderMismatch = errors.New("header does not match order")
)

// Field names accepted by SortBy and Options.Order.
const (
	FieldName     = "name"
	FieldRuns     = "runs"
	FieldMean     = "mean"
	FieldTotal    = "total"
	FieldSOSQ     = "sosq"
	FieldVariance = "var"
	FieldStdev    = "stdev"
	FieldRank     = "rank"
	FieldBaseline = "baseline"
)

var aliases = map[string]string{
	"sumOfSquares":   FieldSOSQ,
	"sum_of_squares": FieldSOSQ,
	"variance":       FieldVariance,
}

// Fields returns every field name in canonical column order.
func Fields() []string {
	return []string{
		FieldName, FieldRuns, FieldMean, FieldTotal, FieldSOSQ,
		FieldVariance, FieldStdev, FieldRank, FieldBaseline,
	}
}

// DefaultOrder is the column selection used when none is given.
func DefaultOrder() []string {
	return []string{
		FieldName, FieldRank, FieldRuns, FieldMean, FieldStdev, FieldBaseline,
	}
}

// CanonicalField resolves aliases and reports whether name is a field.
func CanonicalField(name string) (string, bool) {
	if a, ok := aliases[name]; ok {
		name = a
	}

	for _, f := range Fields() {
		if f == name {
			return name, true
		}
	}

	return "", false
}

// Cell is one typed value of a row. Numeric cells go through the number
// format when rendered; text cells are printed as they are.
type Cell struct {
	Text    string
	Num     float64
	Numeric bool
}

// Number returns a numeric cell.
func Number(v float64) Cell { return Cell{Num: v, Numeric: true} }

// Text returns a text cell.
func Text(s string) Cell { return Cell{Text: s} }

// Format renders the cell, applying numberFormat to numeric cells. An
// integer verb truncates the value toward zero.
func (c Cell) Format(numberFormat string) string {
	if !c.Numeric {
		return c.Text
	}

	verb, err := numberVerb(numberFormat)
	if err == nil && strings.IndexByte(integerVerbs, verb) >= 0 && finite(c.Num) {
		return fmt.Sprintf(numberFormat, int64(c.Num))
	}

	return fmt.Sprintf(numberFormat, c.Num)
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// less orders numeric cells before text cells.
func (c Cell) less(o Cell) bool {
	switch {
	case c.Numeric && o.Numeric:
		return c.Num < o.Num
	case c.Numeric != o.Numeric:
		return c.Numeric
	default:
		return c.Text < o.Text
	}
}

// Row is the derived result line of one routine. Times are in seconds.
type Row struct {
	Name         string
	Runs         int
	Mean         float64
	Total        float64
	SumOfSquares float64
	// HasVariance is false when Runs < 2; Variance and Stdev are then
	// not applicable.
	HasVariance bool
	Variance    float64
	Stdev       float64
	Rank        int
	Baseline    float64
}

// Cell returns the typed value of field.
func (r Row) Cell(field string) (Cell, error) {
	canon, ok := CanonicalField(field)
	if !ok {
		return Cell{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	switch canon {
	case FieldName:
		return Text(r.Name), nil
	case FieldRuns:
		return Number(float64(r.Runs)), nil
	case FieldMean:
		return Number(r.Mean), nil
	case FieldTotal:
		return Number(r.Total), nil
	case FieldSOSQ:
		return Number(r.SumOfSquares), nil
	case FieldVariance:
		if !r.HasVariance {
			return Text(NotApplicable), nil
		}
		return Number(r.Variance), nil
	case FieldStdev:
		if !r.HasVariance {
			return Text(NotApplicable), nil
		}
		return Number(r.Stdev), nil
	case FieldRank:
		return Number(float64(r.Rank)), nil
	default:
		return Number(r.Baseline), nil
	}
}

// Table is an ordered list of rows. Rows can be resorted by any field
// after the fact; ranks stay as they were assigned.
type Table struct {
	Rows []Row
}

// NewTable wraps rows in a Table.
func NewTable(rows []Row) *Table {
	return &Table{Rows: rows}
}

// SortBy stably sorts the rows ascending by field.
func (t *Table) SortBy(field string) error {
	if _, ok := CanonicalField(field); !ok {
		return fmt.Errorf("sort by: %w: %q", ErrUnknownField, field)
	}

	sort.SliceStable(t.Rows, func(i, j int) bool {
		a, _ := t.Rows[i].Cell(field)
		b, _ := t.Rows[j].Cell(field)

		return a.less(b)
	})

	return nil
}

// Render sorts the table as requested and renders it.
func (t *Table) Render(opts Options) (string, error) {
	opts = opts.withDefaults()

	if err := CheckNumberFormat(opts.NumberFormat); err != nil {
		return "", err
	}

	if err := t.SortBy(opts.SortBy); err != nil {
		return "", err
	}

	header := opts.Header
	if len(header) == 0 {
		header = opts.Order
	}

	if len(header) != len(opts.Order) {
		return "", fmt.Errorf("%w: %d labels for %d fields",
			ErrHeaderMismatch, len(header), len(opts.Order))
	}

	cells, err := t.project(opts.Order, opts.NumberFormat)
	if err != nil {
		return "", err
	}

	return ParseFormat(opts.Format).render(header, cells), nil
}

func (t *Table) project(order []string, numberFormat string) ([][]string, error) {
	out := make([][]string, 0, len(t.Rows))

	for _, r := range t.Rows {
		line := make([]string, len(order))

		for i, field := range order {
			c, err := r.Cell(field)
			if err != nil {
				return nil, fmt.Errorf("order: %w", err)
			}
			line[i] = c.Format(numberFormat)
		}

		out = append(out, line)
	}

	return out, nil
}

type jsonRow struct {
	Name         string   `json:"name"`
	Runs         int      `json:"runs"`
	Mean         float64  `json:"mean"`
	Total        float64  `json:"total"`
	SumOfSquares float64  `json:"sosq"`
	Variance     *float64 `json:"var"`
	Stdev        *float64 `json:"stdev"`
	Rank         int      `json:"rank"`
	Baseline     *float64 `json:"baseline"`
}

// MarshalJSON encodes not applicable statistics and an infinite
// baseline as null.
func (r Row) MarshalJSON() ([]byte, error) {
	out := jsonRow{
		Name:         r.Name,
		Runs:         r.Runs,
		Mean:         r.Mean,
		Total:        r.Total,
		SumOfSquares: r.SumOfSquares,
		Rank:         r.Rank,
	}

	if finite(r.Baseline) {
		b := r.Baseline
		out.Baseline = &b
	}

	if r.HasVariance {
		v, sd := r.Variance, r.Stdev
		out.Variance = &v
		out.Stdev = &sd
	}

	return json.Marshal(out)
}

// Section is one suite's table inside a multi-suite report.
type Section struct {
	Title string `json:"title"`
	Runs  int    `json:"total_runs"`
	Rows  []Row  `json:"rows"`
}

// GenerateJSON writes sections as indented JSON to w.
func GenerateJSON(w io.Writer, sections []Section) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(sections)
}

// Heading renders a report heading of the given level (1 or 2) in the
// style of format.
func Heading(format, text string, level int) string {
	switch ParseFormat(format) {
	case FormatMarkdown:
		if level == 1 {
			return "# " + text
		}
		return "## " + text
	case FormatCSV:
		return text
	case FormatPlain:
		return bold + text + reset
	default:
		underline := "-"
		if level == 1 {
			underline = "="
		}
		return text + "\n" + strings.Repeat(underline, utf8.RuneCountInString(text))
	}
}
