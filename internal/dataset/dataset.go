package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind classifies a column for narrative and reporting purposes.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindDatetime    Kind = "datetime"
	KindCategorical Kind = "categorical"
)

// Column is a named, typed column of raw cell values. Empty cells are missing.
type Column struct {
	Name  string
	Kind  Kind
	Cells []string
}

// Dataset is an immutable table of rows by named columns. The insight
// pipeline only reads it; loaders own construction.
type Dataset struct {
	Name    string
	Columns []Column
	rows    int
}

// Rows returns the number of data rows (header excluded).
func (d *Dataset) Rows() int { return d.rows }

// Cols returns the number of columns.
func (d *Dataset) Cols() int { return len(d.Columns) }

// New builds a Dataset from a header and records, inferring each column's
// kind from its non-empty cells. Short records are padded with empty cells.
func New(name string, header []string, records [][]string) *Dataset {
	ncol := len(header)
	cols := make([]Column, ncol)
	for j := range header {
		cols[j] = Column{
			Name:  strings.TrimSpace(header[j]),
			Cells: make([]string, 0, len(records)),
		}
	}
	for _, rec := range records {
		for j := 0; j < ncol; j++ {
			v := ""
			if j < len(rec) {
				v = strings.TrimSpace(rec[j])
			}
			cols[j].Cells = append(cols[j].Cells, v)
		}
	}
	for j := range cols {
		cols[j].Kind = inferKind(cols[j].Cells)
	}
	return &Dataset{Name: name, Columns: cols, rows: len(records)}
}

// Numbers parses the column's cells as floats. Missing or unparseable cells
// yield NaN so callers can filter pairwise.
func (c *Column) Numbers() []float64 {
	out := make([]float64, len(c.Cells))
	for i, v := range c.Cells {
		if x, ok := ParseNumeric(v); ok {
			out[i] = x
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// inferKind classifies a column: numeric when every non-empty cell parses as
// a number, datetime when every non-empty cell parses as a date, otherwise
// categorical. A column with no values at all is categorical.
func inferKind(cells []string) Kind {
	var num, dt, txt int
	for _, v := range cells {
		if v == "" {
			continue
		}
		if _, ok := ParseNumeric(v); ok {
			num++
			continue
		}
		if _, ok := parseTimeMaybe(v); ok {
			dt++
			continue
		}
		txt++
	}
	switch {
	case num > 0 && dt == 0 && txt == 0:
		return KindNumeric
	case dt > 0 && num == 0 && txt == 0:
		return KindDatetime
	default:
		return KindCategorical
	}
}

// ParseNumeric parses a cell as a float, tolerating percent signs and
// thousands separators ("1,234.5").
func ParseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	raw = strings.ReplaceAll(raw, "%", "")
	raw = strings.TrimSpace(raw)
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f, true
	}
	if strings.Contains(raw, ",") {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func parseTimeMaybe(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
		"2006-01-02 15:04", "2006-01-02 15:04:05",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
