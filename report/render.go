package report

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultNumberFormat prints numbers with four significant digits.
const DefaultNumberFormat = "%-.4g"

// ErrNumberFormat is returned for a number format that does not hold
// exactly one numeric printf verb.
var ErrNumberFormat = errors.New("invalid number format")

const (
	integerVerbs = "bdoxX"
	floatVerbs   = "eEfFgG"
)

const (
	bold  = "\033[1m"
	reset = "\033[0m"
)

// Options select how a table is rendered.
type Options struct {
	// Format is markdown, csv (or comma), plain; anything else is grid.
	Format string
	// SortBy is the field the rows are sorted by before rendering.
	SortBy string
	// Order lists the fields to display.
	Order []string
	// Header lists the column labels; defaults to Order.
	Header []string
	// NumberFormat is a printf verb applied to numeric cells.
	NumberFormat string
}

// CheckNumberFormat reports whether format holds exactly one integer
// (%d %b %o %x %X) or float (%e %f %g and upper case) verb, with
// optional flags, width and precision. "%%" is a literal percent.
func CheckNumberFormat(format string) error {
	_, err := numberVerb(format)
	return err
}

func numberVerb(format string) (byte, error) {
	var (
		verb  byte
		verbs int
	)

	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}

		i++
		for i < len(format) && strings.IndexByte("+-# 0", format[i]) >= 0 {
			i++
		}
		for i < len(format) && (isDigit(format[i]) || format[i] == '.') {
			i++
		}

		if i == len(format) {
			return 0, fmt.Errorf("%w: %q: missing verb", ErrNumberFormat, format)
		}
		if format[i] == '%' {
			continue
		}

		if strings.IndexByte(integerVerbs+floatVerbs, format[i]) < 0 {
			return 0, fmt.Errorf("%w: %q: verb %%%c is not numeric",
				ErrNumberFormat, format, format[i])
		}

		verb = format[i]
		verbs++
	}

	if verbs != 1 {
		return 0, fmt.Errorf("%w: %q: want one verb, got %d", ErrNumberFormat, format, verbs)
	}

	return verb, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (o Options) withDefaults() Options {
	if o.SortBy == "" {
		o.SortBy = FieldMean
	}
	if len(o.Order) == 0 {
		o.Order = DefaultOrder()
	}
	if o.NumberFormat == "" {
		o.NumberFormat = DefaultNumberFormat
	}

	return o
}

// Format is a table layout.
type Format int

// Supported layouts.
const (
	FormatGrid Format = iota
	FormatMarkdown
	FormatCSV
	FormatPlain
)

// ParseFormat maps a case-insensitive name to a layout. Unrecognized
// names fall back to FormatGrid.
func ParseFormat(name string) Format {
	switch strings.ToLower(name) {
	case "markdown":
		return FormatMarkdown
	case "csv", "comma":
		return FormatCSV
	case "plain":
		return FormatPlain
	default:
		return FormatGrid
	}
}

func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	case FormatCSV:
		return "csv"
	case FormatPlain:
		return "plain"
	default:
		return "grid"
	}
}

func (f Format) render(header []string, rows [][]string) string {
	switch f {
	case FormatMarkdown:
		return asMarkdown(header, rows)
	case FormatCSV:
		return asCSV(header, rows)
	case FormatPlain:
		return asPlain(header, rows)
	default:
		return asGrid(header, rows)
	}
}

// columnWidths returns, per column, the widest of the header label and
// every cell.
func columnWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = utf8.RuneCountInString(h)
	}

	for _, row := range rows {
		for i, v := range row {
			if n := utf8.RuneCountInString(v); n > widths[i] {
				widths[i] = n
			}
		}
	}

	return widths
}

func rjust(s string, width int) string {
	pad := width - utf8.RuneCountInString(s)
	if pad <= 0 {
		return s
	}

	return strings.Repeat(" ", pad) + s
}

func justify(values []string, widths []int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = rjust(v, widths[i])
	}

	return out
}

func fill(ch string, widths []int) []string {
	out := make([]string, len(widths))
	for i, w := range widths {
		out[i] = strings.Repeat(ch, w)
	}

	return out
}

func asMarkdown(header []string, rows [][]string) string {
	widths := columnWidths(header, rows)

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines,
		strings.Join(justify(header, widths), " | "),
		strings.Join(fill("-", widths), "-|-"),
	)

	for _, row := range rows {
		lines = append(lines, strings.Join(justify(row, widths), " | "))
	}

	return strings.Join(lines, "\n")
}

func asGrid(header []string, rows [][]string) string {
	widths := columnWidths(header, rows)
	sep := "+-" + strings.Join(fill("-", widths), "-+-") + "-+"

	lines := make([]string, 0, 2*len(rows)+3)
	lines = append(lines,
		sep,
		"| "+strings.Join(justify(header, widths), " | ")+" |",
		"+="+strings.Join(fill("=", widths), "=+=")+"=+",
	)

	for _, row := range rows {
		lines = append(lines,
			"| "+strings.Join(justify(row, widths), " | ")+" |",
			sep,
		)
	}

	return strings.Join(lines, "\n")
}

func asCSV(header []string, rows [][]string) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(header, ","))

	for _, row := range rows {
		lines = append(lines, strings.Join(row, ","))
	}

	return strings.Join(lines, "\n")
}

func asPlain(header []string, rows [][]string) string {
	widths := columnWidths(header, rows)

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, bold+strings.Join(justify(header, widths), "  ")+reset)

	for _, row := range rows {
		lines = append(lines, strings.Join(justify(row, widths), "  "))
	}

	return strings.Join(lines, "\n")
}
