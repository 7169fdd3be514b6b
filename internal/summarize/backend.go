package summarize

import (
	"context"
	"errors"
)

// Source tells which path produced a Result.
type Source string

const (
	// SourceModel marks output from the local model runtime.
	SourceModel Source = "model"
	// SourceAPI marks output from the remote chat completions API.
	SourceAPI Source = "api"
	// SourceFallback marks the original narrative returned unmodified
	// because the backend was unavailable or failed after all retries.
	SourceFallback Source = "fallback"
)

// Result is what a backend hands back to the pipeline.
type Result struct {
	Text   string
	Source Source
}

// Backend enhances a narrative. Summarize never fails: every backend error
// is absorbed and degrades to a fallback Result carrying the input text
// unchanged, so the pipeline always has usable output.
type Backend interface {
	Summarize(ctx context.Context, narrative string) Result
}

// ErrMissingAPIKey is a configuration error surfaced before any network
// call; it is never converted into a fallback.
var ErrMissingAPIKey = errors.New("api key is missing (set api_key in config or DATAVISTA_API_KEY)")

func fallback(narrative string) Result {
	return Result{Text: narrative, Source: SourceFallback}
}

// Passthrough returns every narrative unchanged. It backs the "none"
// provider for offline use; the result is marked fallback so the
// fixed-marker section parser applies downstream.
type Passthrough struct{}

func (Passthrough) Summarize(_ context.Context, narrative string) Result {
	return fallback(narrative)
}
