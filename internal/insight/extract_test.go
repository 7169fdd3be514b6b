package insight

import (
	"fmt"
	"math"
	"testing"

	"github.com/datavista/datavista-cli/internal/dataset"
)

func TestMissingRatio(t *testing.T) {
	ds := dataset.New("t", []string{"a", "b"}, [][]string{
		{"1", "x"},
		{"", "y"},
		{"3", ""},
	})
	snap := Extract(ds)
	if snap.MissingCount != 2 {
		t.Fatalf("missing = %d, want 2", snap.MissingCount)
	}
	want := 2.0 / 6.0
	if snap.MissingRatio != want {
		t.Errorf("ratio = %v, want %v", snap.MissingRatio, want)
	}
	if snap.MissingRatio < 0 || snap.MissingRatio > 1 {
		t.Errorf("ratio %v outside [0,1]", snap.MissingRatio)
	}
}

func TestMissingRatioEmptyDataset(t *testing.T) {
	cases := []*dataset.Dataset{
		dataset.New("no-rows", []string{"a"}, nil),
		dataset.New("no-cols", nil, nil),
	}
	for _, ds := range cases {
		snap := Extract(ds)
		if snap.MissingRatio != 0 {
			t.Errorf("%s: ratio = %v, want 0", ds.Name, snap.MissingRatio)
		}
	}
}

func TestDuplicateRows(t *testing.T) {
	ds := dataset.New("t", []string{"a", "b"}, [][]string{
		{"1", "x"},
		{"1", "x"},
		{"1", "x"},
		{"2", "y"},
	})
	snap := Extract(ds)
	if snap.DuplicateCount != 2 {
		t.Fatalf("duplicates = %d, want 2", snap.DuplicateCount)
	}
}

// correlatedRecords builds three numeric columns where y tracks target
// strongly, w weakly, and both stay inside the correlation filter bounds.
func correlatedRecords(n int) [][]string {
	recs := make([][]string, n)
	for i := 0; i < n; i++ {
		x := float64(i)
		sign := 1.0
		if i%2 == 1 {
			sign = -1
		}
		y := x + sign*5         // strong, not near-duplicate
		w := 50 + sign*25 + x/4 // weak-to-moderate
		recs[i] = []string{
			fmt.Sprintf("%g", x),
			fmt.Sprintf("%g", y),
			fmt.Sprintf("%g", w),
		}
	}
	return recs
}

func TestTopCorrelationPicksStrongestPair(t *testing.T) {
	ds := dataset.New("t", []string{"x", "y", "w"}, correlatedRecords(100))
	snap := Extract(ds)
	if snap.TopCorrelation == nil {
		t.Fatal("expected a top correlation")
	}
	c := snap.TopCorrelation
	if c.ColumnA != "x" || c.ColumnB != "y" {
		t.Errorf("pair = %s~%s, want x~y", c.ColumnA, c.ColumnB)
	}
	abs := math.Abs(c.Coefficient)
	if abs <= corrLowerBound || abs >= corrUpperBound {
		t.Errorf("coefficient %v outside filter bounds", c.Coefficient)
	}
}

func TestTopCorrelationDeterministic(t *testing.T) {
	ds := dataset.New("t", []string{"x", "y", "w"}, correlatedRecords(100))
	a := Extract(ds)
	b := Extract(ds)
	if *a.TopCorrelation != *b.TopCorrelation {
		t.Errorf("correlation differs across runs: %+v vs %+v", a.TopCorrelation, b.TopCorrelation)
	}
}

func TestTopCorrelationExcludesNearDuplicates(t *testing.T) {
	// y == x exactly: r = 1.0 is at/above the upper bound and must be filtered.
	recs := make([][]string, 50)
	for i := range recs {
		recs[i] = []string{fmt.Sprintf("%d", i), fmt.Sprintf("%d", i)}
	}
	ds := dataset.New("t", []string{"x", "y"}, recs)
	snap := Extract(ds)
	if snap.TopCorrelation != nil {
		t.Errorf("expected no correlation for identical columns, got %+v", snap.TopCorrelation)
	}
}

func TestTopCorrelationNeedsTwoNumericColumns(t *testing.T) {
	ds := dataset.New("t", []string{"x", "c"}, [][]string{{"1", "a"}, {"2", "b"}})
	if snap := Extract(ds); snap.TopCorrelation != nil {
		t.Errorf("expected nil correlation, got %+v", snap.TopCorrelation)
	}
}

func TestColumnGrouping(t *testing.T) {
	ds := dataset.New("t", []string{"n", "c", "d"}, [][]string{
		{"1", "a", "2020-01-02"},
		{"2", "b", "2021-01-02"},
	})
	snap := Extract(ds)
	if len(snap.NumericColumns) != 1 || snap.NumericColumns[0] != "n" {
		t.Errorf("numeric = %v", snap.NumericColumns)
	}
	// Datetime columns count as categorical in the snapshot.
	if len(snap.CategoricalColumns) != 2 {
		t.Errorf("categorical = %v", snap.CategoricalColumns)
	}
}

func TestProfiles(t *testing.T) {
	ds := dataset.New("t", []string{"n", "c"}, [][]string{
		{"1", "a"},
		{"2", "a"},
		{"3", "b"},
		{"", "b"},
	})
	snap := Extract(ds)
	np := snap.Profiles[0]
	if np.Count != 3 || np.Min != 1 || np.Max != 3 || np.Mean != 2 {
		t.Errorf("numeric profile = %+v", np)
	}
	cp := snap.Profiles[1]
	if cp.Count != 4 || len(cp.TopValues) != 2 {
		t.Fatalf("categorical profile = %+v", cp)
	}
	// ties broken by value order
	if cp.TopValues[0].Value != "a" || cp.TopValues[0].Count != 2 {
		t.Errorf("top value = %+v", cp.TopValues[0])
	}
}
