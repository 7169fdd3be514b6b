package insight

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/datavista/datavista-cli/internal/dataset"
)

// Correlation filter bounds. Pairs with |r| at or below the lower bound are
// noise; pairs at or above the upper bound are a column against itself or a
// near-duplicate. Fixed configuration constants.
const (
	corrLowerBound = 0.4
	corrUpperBound = 0.999
)

// topValueLimit caps how many category values a profile records.
const topValueLimit = 3

// Correlation names the strongest surviving pairwise relationship.
type Correlation struct {
	ColumnA     string
	ColumnB     string
	Coefficient float64
}

// ValueCount is a categorical value and how often it occurs.
type ValueCount struct {
	Value string
	Count int
}

// ColumnProfile holds per-column descriptive statistics for reporting.
type ColumnProfile struct {
	Name  string
	Kind  dataset.Kind
	Count int // non-missing cells
	// Numeric columns
	Mean float64
	Std  float64
	Min  float64
	Max  float64
	// Categorical columns
	TopValues []ValueCount
}

// Snapshot is the immutable statistics computed once per pipeline run.
type Snapshot struct {
	RowCount           int
	ColumnCount        int
	MissingCount       int
	MissingRatio       float64
	DuplicateCount     int
	NumericColumns     []string
	CategoricalColumns []string
	TopCorrelation     *Correlation
	Profiles           []ColumnProfile
}

// Extract computes a Snapshot from a dataset. Pure: it never mutates the
// dataset and yields identical output for identical input.
func Extract(ds *dataset.Dataset) Snapshot {
	snap := Snapshot{
		RowCount:    ds.Rows(),
		ColumnCount: ds.Cols(),
	}

	for _, c := range ds.Columns {
		for _, v := range c.Cells {
			if v == "" {
				snap.MissingCount++
			}
		}
		if c.Kind == dataset.KindNumeric {
			snap.NumericColumns = append(snap.NumericColumns, c.Name)
		} else {
			// Datetime columns are treated as categorical for narrative purposes.
			snap.CategoricalColumns = append(snap.CategoricalColumns, c.Name)
		}
		snap.Profiles = append(snap.Profiles, profileColumn(c))
	}

	if total := snap.RowCount * snap.ColumnCount; total > 0 {
		snap.MissingRatio = float64(snap.MissingCount) / float64(total)
	}
	snap.DuplicateCount = countDuplicates(ds)
	snap.TopCorrelation = topCorrelation(ds)
	return snap
}

func profileColumn(c dataset.Column) ColumnProfile {
	p := ColumnProfile{Name: c.Name, Kind: c.Kind}
	if c.Kind == dataset.KindNumeric {
		vals := make([]float64, 0, len(c.Cells))
		for _, x := range c.Numbers() {
			if !math.IsNaN(x) {
				vals = append(vals, x)
			}
		}
		p.Count = len(vals)
		if len(vals) == 0 {
			return p
		}
		p.Mean, p.Std = stat.MeanStdDev(vals, nil)
		if math.IsNaN(p.Std) { // single observation
			p.Std = 0
		}
		p.Min, p.Max = vals[0], vals[0]
		for _, x := range vals[1:] {
			if x < p.Min {
				p.Min = x
			}
			if x > p.Max {
				p.Max = x
			}
		}
		return p
	}

	counts := make(map[string]int)
	for _, v := range c.Cells {
		if v == "" {
			continue
		}
		p.Count++
		counts[v]++
	}
	for v, n := range counts {
		p.TopValues = append(p.TopValues, ValueCount{Value: v, Count: n})
	}
	sort.Slice(p.TopValues, func(i, j int) bool {
		if p.TopValues[i].Count != p.TopValues[j].Count {
			return p.TopValues[i].Count > p.TopValues[j].Count
		}
		return p.TopValues[i].Value < p.TopValues[j].Value
	})
	if len(p.TopValues) > topValueLimit {
		p.TopValues = p.TopValues[:topValueLimit]
	}
	return p
}

func countDuplicates(ds *dataset.Dataset) int {
	if ds.Rows() == 0 || ds.Cols() == 0 {
		return 0
	}
	seen := make(map[string]bool, ds.Rows())
	dups := 0
	var b strings.Builder
	for i := 0; i < ds.Rows(); i++ {
		b.Reset()
		for j := range ds.Columns {
			b.WriteString(ds.Columns[j].Cells[i])
			b.WriteByte(0x1f)
		}
		key := b.String()
		if seen[key] {
			dups++
		}
		seen[key] = true
	}
	return dups
}

// topCorrelation scans numeric column pairs in column order and returns the
// pair with the largest coefficient magnitude inside the filter bounds, or
// nil when fewer than two numeric columns exist or no pair survives. Ties go
// to the first-encountered pair.
func topCorrelation(ds *dataset.Dataset) *Correlation {
	var numeric []dataset.Column
	for _, c := range ds.Columns {
		if c.Kind == dataset.KindNumeric {
			numeric = append(numeric, c)
		}
	}
	if len(numeric) < 2 {
		return nil
	}

	series := make([][]float64, len(numeric))
	for i, c := range numeric {
		series[i] = c.Numbers()
	}

	var best *Correlation
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			r, ok := pairwiseCorrelation(series[i], series[j])
			if !ok {
				continue
			}
			abs := math.Abs(r)
			if abs <= corrLowerBound || abs >= corrUpperBound {
				continue
			}
			if best == nil || abs > math.Abs(best.Coefficient) {
				best = &Correlation{
					ColumnA:     numeric[i].Name,
					ColumnB:     numeric[j].Name,
					Coefficient: r,
				}
			}
		}
	}
	return best
}

// pairwiseCorrelation computes Pearson r over rows where both values are
// present. Needs at least two complete pairs.
func pairwiseCorrelation(a, b []float64) (float64, bool) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for k := 0; k < n; k++ {
		if math.IsNaN(a[k]) || math.IsNaN(b[k]) {
			continue
		}
		xs = append(xs, a[k])
		ys = append(ys, b[k])
	}
	if len(xs) < 2 {
		return 0, false
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, true
}
