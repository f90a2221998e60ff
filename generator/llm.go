package generator

import "context"

// LLMClient abstracts the text-generation backend so the pipeline can swap
// providers (or a mock) without changing callers.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings carries the provider-agnostic knobs a concrete client needs.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}
