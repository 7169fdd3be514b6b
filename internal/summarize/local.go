package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
)

const (
	// localAttempts is the retry budget for transient inference failures.
	localAttempts = 3
	// minSummaryTokens/maxSummaryTokens bound the summary length.
	minSummaryTokens = 80
	maxSummaryTokens = 160
)

// ModelRuntime is the local inference surface the Local backend depends on.
// OllamaClient satisfies it.
type ModelRuntime interface {
	Ping(ctx context.Context) error
	Chat(ctx context.Context, model, prompt string, numPredict int) (string, error)
}

// Local wraps a local summarization model runtime. The runtime is probed
// once at construction; if that fails, every Summarize call short-circuits
// to fallback without attempting inference again.
type Local struct {
	runtime ModelRuntime
	model   string
	logger  *slog.Logger

	initErr error
	// The underlying inference call is not guaranteed to be re-entrant, so
	// invocations are serialized.
	mu sync.Mutex
}

// NewLocal probes the runtime and returns a backend. A failed probe is not
// an error: the backend stays usable and degrades every call to fallback.
func NewLocal(ctx context.Context, runtime ModelRuntime, model string, logger *slog.Logger) *Local {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Local{runtime: runtime, model: model, logger: logger}
	if err := runtime.Ping(ctx); err != nil {
		l.initErr = err
		logger.Warn("local model unavailable, summaries will fall back", "model", model, "error", err)
	}
	return l
}

// Summarize runs the local model with deterministic decoding and a bounded
// length budget, retrying transient failures up to localAttempts times.
// It never fails: exhausted retries return the narrative unchanged.
func (l *Local) Summarize(ctx context.Context, narrative string) Result {
	if l.initErr != nil {
		return fallback(narrative)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	prompt := localPrompt(narrative)
	var lastErr error
	for attempt := 1; attempt <= localAttempts; attempt++ {
		if ctx.Err() != nil {
			lastErr = ctx.Err()
			break
		}
		out, err := l.runtime.Chat(ctx, l.model, prompt, maxSummaryTokens)
		if err == nil && strings.TrimSpace(out) != "" {
			return Result{Text: out, Source: SourceModel}
		}
		if err == nil {
			err = fmt.Errorf("empty model output")
		}
		lastErr = err
		l.logger.Warn("local summarization attempt failed",
			"attempt", attempt, "max_attempts", localAttempts, "error", err)
	}
	l.logger.Warn("local summarization failed, falling back to standard narrative", "error", lastErr)
	return fallback(narrative)
}

func localPrompt(narrative string) string {
	return fmt.Sprintf(
		"Summarize the following dataset statistics in a human-readable, structured format, in %d to %d words. Keep the section headings.\n\n%s",
		minSummaryTokens, maxSummaryTokens, narrative)
}
