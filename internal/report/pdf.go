package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/datavista/datavista-cli/internal/dataset"
	"github.com/datavista/datavista-cli/internal/insight"
)

const reportTitle = "DataVista - AI Insight Report"

// statColumnLimit caps how many columns the Statistical Summary covers and
// how many names the Data Types Analysis lists.
const statColumnLimit = 5

// Renderer emits the paginated report document. One Render call per export
// request; the caller owns the destination.
type Renderer struct {
	Title string
	now   func() time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{Title: reportTitle, now: time.Now}
}

// Render writes the report as a PDF byte stream: header, overview derived
// fresh from the snapshot (so exported numbers stay exact even if the
// backend paraphrased them), the parsed narrative, column type analysis,
// per-column statistics, and a date-stamped footer. All text passes through
// Sanitize, so characters outside the substitution table never fail the
// render.
func (r *Renderer) Render(snap insight.Snapshot, parsed ParsedReport, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 16)
		pdf.SetTextColor(26, 188, 156)
		pdf.CellFormat(0, 10, Sanitize(r.Title), "", 1, "C", false, 0, "")
		pdf.Ln(10)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(169, 169, 169)
		stamp := "Generated on " + r.now().Format("January 2, 2006")
		pdf.CellFormat(0, 10, stamp, "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	addSection(pdf, "Dataset Overview", overviewText(snap))
	addSection(pdf, "AI-Generated Insights", insightsText(parsed))
	addSection(pdf, "Data Types Analysis", dataTypesText(snap))
	addSection(pdf, "Statistical Summary", statsText(snap))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func addSection(pdf *gofpdf.Fpdf, title, body string) {
	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(0, 191, 166)
	pdf.CellFormat(0, 10, Sanitize(title), "", 1, "L", false, 0, "")
	pdf.Ln(3)
	pdf.SetFont("Arial", "", 11)
	pdf.SetTextColor(50, 50, 50)
	pdf.MultiCell(0, 8, Sanitize(body), "", "L", false)
	pdf.Ln(5)
}

func overviewText(snap insight.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total Records: %d\n", snap.RowCount)
	fmt.Fprintf(&b, "Total Features: %d\n", snap.ColumnCount)
	fmt.Fprintf(&b, "Missing Values: %d (%.2f%% of data)\n", snap.MissingCount, snap.MissingRatio*100)
	fmt.Fprintf(&b, "Duplicate Rows: %d", snap.DuplicateCount)
	if c := snap.TopCorrelation; c != nil {
		fmt.Fprintf(&b, "\nStrongest Correlation: %s ~ %s (r = %.2f)", c.ColumnA, c.ColumnB, c.Coefficient)
	}
	return b.String()
}

func insightsText(parsed ParsedReport) string {
	parts := make([]string, 0, len(parsed.Sections))
	for _, s := range parsed.Sections {
		parts = append(parts, s.Title+"\n"+s.Body)
	}
	return strings.Join(parts, "\n\n")
}

func dataTypesText(snap insight.Snapshot) string {
	return fmt.Sprintf("Numeric Features (%d):\n%s\n\nCategorical Features (%d):\n%s",
		len(snap.NumericColumns), listNames(snap.NumericColumns),
		len(snap.CategoricalColumns), listNames(snap.CategoricalColumns))
}

func listNames(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	if len(names) <= statColumnLimit {
		return strings.Join(names, ", ")
	}
	return strings.Join(names[:statColumnLimit], ", ") + "..."
}

func statsText(snap insight.Snapshot) string {
	profiles := snap.Profiles
	if len(profiles) > statColumnLimit {
		profiles = profiles[:statColumnLimit]
	}
	var parts []string
	for _, p := range profiles {
		var b strings.Builder
		fmt.Fprintf(&b, "%s:\n- count: %d", p.Name, p.Count)
		if p.Kind == dataset.KindNumeric {
			fmt.Fprintf(&b, "\n- mean: %.2f", p.Mean)
			fmt.Fprintf(&b, "\n- std: %.2f", p.Std)
			fmt.Fprintf(&b, "\n- min: %.2f", p.Min)
			fmt.Fprintf(&b, "\n- max: %.2f", p.Max)
		} else if len(p.TopValues) > 0 {
			tops := make([]string, 0, len(p.TopValues))
			for _, tv := range p.TopValues {
				tops = append(tops, fmt.Sprintf("%s (%d)", tv.Value, tv.Count))
			}
			fmt.Fprintf(&b, "\n- top: %s", strings.Join(tops, ", "))
		}
		parts = append(parts, b.String())
	}
	if len(parts) == 0 {
		return "(no columns)"
	}
	return strings.Join(parts, "\n\n")
}
