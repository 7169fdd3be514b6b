package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/datavista/datavista-cli/internal/dataset"
	"github.com/datavista/datavista-cli/internal/insight"
	"github.com/datavista/datavista-cli/internal/summarize"
)

// scenarioDataset builds 100 rows and 5 columns (3 numeric, 2 categorical)
// with 10 missing values, 2 duplicate rows, and two strongly correlated
// numeric columns.
func scenarioDataset() *dataset.Dataset {
	header := []string{"x", "y", "w", "city", "label"}
	var recs [][]string
	for i := 0; i < 98; i++ {
		x := float64(i)
		sign := 1.0
		if i%2 == 1 {
			sign = -1
		}
		label := fmt.Sprintf("L%d", i%7)
		if i >= 10 && i < 20 {
			label = "" // 10 missing values
		}
		recs = append(recs, []string{
			fmt.Sprintf("%g", x),
			fmt.Sprintf("%g", x+sign*5),
			fmt.Sprintf("%g", 50+sign*25+x/4),
			fmt.Sprintf("c%d", i%3),
			label,
		})
	}
	// two duplicate rows
	recs = append(recs, append([]string(nil), recs[0]...))
	recs = append(recs, append([]string(nil), recs[0]...))
	return dataset.New("scenario.csv", header, recs)
}

func TestPipelineEndToEndWithForcedFallback(t *testing.T) {
	ds := scenarioDataset()
	p := New(summarize.Passthrough{}, nil)
	res := p.Run(context.Background(), ds)

	if res.ID == "" {
		t.Error("run id not assigned")
	}

	snap := res.Snapshot
	if snap.RowCount != 100 || snap.ColumnCount != 5 {
		t.Fatalf("shape = %dx%d, want 100x5", snap.RowCount, snap.ColumnCount)
	}
	if snap.MissingCount != 10 {
		t.Errorf("missing = %d, want 10", snap.MissingCount)
	}
	if want := 10.0 / 500.0; snap.MissingRatio != want {
		t.Errorf("ratio = %v, want %v", snap.MissingRatio, want)
	}
	if snap.DuplicateCount != 2 {
		t.Errorf("duplicates = %d, want 2", snap.DuplicateCount)
	}
	if len(snap.NumericColumns) != 3 || len(snap.CategoricalColumns) != 2 {
		t.Errorf("column groups = %v / %v", snap.NumericColumns, snap.CategoricalColumns)
	}
	if snap.TopCorrelation == nil {
		t.Fatal("expected a top correlation")
	}
	if c := snap.TopCorrelation; c.ColumnA != "x" || c.ColumnB != "y" {
		t.Errorf("pair = %s~%s, want x~y", c.ColumnA, c.ColumnB)
	}
	if r := math.Abs(snap.TopCorrelation.Coefficient); r <= 0.4 || r >= 0.999 {
		t.Errorf("coefficient %v outside filter bounds", snap.TopCorrelation.Coefficient)
	}

	// Narrative carries all four markers in order.
	text := res.Narrative.Text()
	last := -1
	for _, m := range []string{
		insight.MarkerOverview, insight.MarkerNumeric,
		insight.MarkerCategorical, insight.MarkerHealth,
	} {
		i := strings.Index(text, m)
		if i <= last {
			t.Fatalf("marker %q missing or out of order", m)
		}
		last = i
	}

	// Forced fallback returns the narrative unchanged.
	if res.Summary.Source != summarize.SourceFallback {
		t.Fatalf("source = %s, want fallback", res.Summary.Source)
	}
	if res.Summary.Text != text {
		t.Error("fallback text differs from composed narrative")
	}

	// Parser recovers exactly the four narrative sections.
	if len(res.Sections.Sections) != 4 {
		t.Fatalf("sections = %d, want 4", len(res.Sections.Sections))
	}
}

func TestPipelineRunReportWritesPDF(t *testing.T) {
	ds := scenarioDataset()
	p := New(summarize.Passthrough{}, nil)

	var buf bytes.Buffer
	if _, err := p.RunReport(context.Background(), ds, &buf); err != nil {
		t.Fatalf("RunReport: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatalf("output is not a PDF (%d bytes)", buf.Len())
	}
}
