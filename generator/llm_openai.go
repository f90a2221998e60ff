package generator

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAILLM implements LLMClient using the official openai-go SDK (chat completions).
type OpenAILLM struct {
	Model string
	Opts  []option.RequestOption
}

func NewOpenAILLMFromConfig(cfg *LLMSettings) (*OpenAILLM, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: llm settings are nil", ErrConfiguration)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai api key missing; set OPENAI_API_KEY or llm.api_key", ErrConfiguration)
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAILLM{Model: cfg.Model, Opts: opts}, nil
}

func (o *OpenAILLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	client := openai.NewClient(o.Opts...)

	model, err := o.pickModel(ctx, client)
	if err != nil {
		return "", err
	}

	msgs := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(prompt.System),
		openai.UserMessage(prompt.User),
	}

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       model,
		Messages:    msgs,
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(800),
	})
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %v", ErrProvider, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", ErrProvider)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// pickModel asks the live model catalog whether the preferred id is currently
// served and falls back to the larger default when it is not. The lookup runs
// on every call; nothing is cached between runs.
func (o *OpenAILLM) pickModel(ctx context.Context, client openai.Client) (openai.ChatModel, error) {
	preferred := openai.ChatModelGPT4oMini
	if o.Model != "" {
		preferred = openai.ChatModel(o.Model)
	}
	page, err := client.Models.List(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: list models: %v", ErrProvider, err)
	}
	for _, m := range page.Data {
		if m.ID == string(preferred) {
			return preferred, nil
		}
	}
	return openai.ChatModelGPT4o, nil
}
