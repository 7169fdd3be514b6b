package summarize

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sashabaranov/go-openai"
)

// Fixed generation parameters for the remote variant.
const (
	remoteDefaultModel = "gpt-4o-mini"
	remoteMaxTokens    = 512
	remoteTemperature  = 0.7
	remoteTopP         = 0.9
)

// remoteSystemPrompt also instructs the model to emit the heading delimiter
// the section parser splits on.
const remoteSystemPrompt = "Summarize dataset statistics in a human-readable, structured format. " +
	"Start each section with a line beginning with '## ' followed by the section title."

// Remote sends the narrative to a remote chat completions API. Exactly one
// attempt is made per call; any network or HTTP failure degrades to
// fallback.
type Remote struct {
	client *openai.Client
	model  string
	logger *slog.Logger
}

// NewRemote builds the remote backend. A missing credential is a
// configuration error returned to the caller before any network activity.
// baseURL overrides the API endpoint (used in tests); empty means the
// provider default.
func NewRemote(apiKey, model, baseURL string, logger *slog.Logger) (*Remote, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = remoteDefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Remote{client: openai.NewClientWithConfig(cfg), model: model, logger: logger}, nil
}

// Summarize makes a single non-streaming chat completion request with the
// fixed generation parameters. It never fails: errors and non-success
// statuses are logged and resolve to fallback.
func (r *Remote) Summarize(ctx context.Context, narrative string) Result {
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: remoteSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: narrative},
		},
		MaxTokens:        remoteMaxTokens,
		Temperature:      remoteTemperature,
		TopP:             remoteTopP,
		FrequencyPenalty: 0,
		PresencePenalty:  0,
		Stream:           false,
	})
	if err != nil {
		r.logger.Warn("remote summarization failed, falling back to standard narrative",
			"model", r.model, "error", err)
		return fallback(narrative)
	}
	if len(resp.Choices) == 0 {
		r.logger.Warn("remote summarization returned no choices, falling back", "model", r.model)
		return fallback(narrative)
	}
	return Result{Text: resp.Choices[0].Message.Content, Source: SourceAPI}
}

// IsConfigError reports whether err is a configuration problem the caller
// must fix rather than a transient failure.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrMissingAPIKey)
}
