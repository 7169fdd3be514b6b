package pipeline

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/datavista/datavista-cli/internal/dataset"
	"github.com/datavista/datavista-cli/internal/insight"
	"github.com/datavista/datavista-cli/internal/report"
	"github.com/datavista/datavista-cli/internal/summarize"
)

// Pipeline runs one insight generation end to end: extract statistics,
// compose the narrative, enhance it through the configured backend, parse
// the result into sections, and optionally render the PDF document. It runs
// synchronously; the backend call is the only stage that may block for a
// non-trivial duration, and callers wanting a ceiling should pass a context
// with a timeout.
type Pipeline struct {
	backend  summarize.Backend
	renderer *report.Renderer
	logger   *slog.Logger
}

func New(backend summarize.Backend, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{backend: backend, renderer: report.NewRenderer(), logger: logger}
}

// RunResult carries everything one pipeline invocation produced.
type RunResult struct {
	ID        string
	Snapshot  insight.Snapshot
	Narrative insight.Narrative
	Summary   summarize.Result
	Sections  report.ParsedReport
}

// Run executes extract, compose, summarize, and parse. It cannot fail:
// every backend and parse problem degrades to a usable result.
func (p *Pipeline) Run(ctx context.Context, ds *dataset.Dataset) RunResult {
	res := RunResult{ID: uuid.NewString()}
	res.Snapshot = insight.Extract(ds)
	p.logger.Debug("statistics extracted",
		"run_id", res.ID,
		"rows", res.Snapshot.RowCount,
		"columns", res.Snapshot.ColumnCount,
		"missing", res.Snapshot.MissingCount,
		"duplicates", res.Snapshot.DuplicateCount)

	res.Narrative = insight.Compose(res.Snapshot)
	res.Summary = p.backend.Summarize(ctx, res.Narrative.Text())
	res.Sections = report.Parse(res.Summary)
	p.logger.Info("insight generated",
		"run_id", res.ID,
		"source", string(res.Summary.Source),
		"sections", len(res.Sections.Sections))
	return res
}

// RunReport runs the pipeline and renders the report document to w.
func (p *Pipeline) RunReport(ctx context.Context, ds *dataset.Dataset, w io.Writer) (RunResult, error) {
	res := p.Run(ctx, ds)
	if err := p.renderer.Render(res.Snapshot, res.Sections, w); err != nil {
		return res, err
	}
	return res, nil
}
