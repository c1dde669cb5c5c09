package generation

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI generates text through the chat completions API of OpenAI or any
// compatible endpoint (set BaseURL).
type OpenAI struct {
	client openai.Client
}

// NewOpenAI builds a client with SDK retries disabled.
func NewOpenAI(cfg *Config) *OpenAI {
	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAI{client: openai.NewClient(opts...)}
}

func (o *OpenAI) Name() string {
	return ProviderOpenAI
}

func (o *OpenAI) Generate(ctx context.Context, prompt Prompt, opts Options) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(opts.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
		Temperature: openai.Float(opts.Temperature),
	})
	if err != nil {
		return "", unavailable(ProviderOpenAI, err)
	}
	if len(resp.Choices) == 0 {
		return "", unavailable(ProviderOpenAI, errors.New("empty choices"))
	}
	return resp.Choices[0].Message.Content, nil
}
