package generator

import (
	"context"
	"fmt"
)

// Agent runs the single-pass pipeline: build the prompt, call the provider,
// normalize the output.
type Agent struct {
	llm LLMClient
}

func NewAgent(llm LLMClient) (*Agent, error) {
	if llm == nil {
		return nil, fmt.Errorf("%w: llm client is required", ErrConfiguration)
	}
	return &Agent{llm: llm}, nil
}

// Generate produces one normalized post for the given spec. Errors from the
// provider or the normalizer propagate unchanged; there is no retry.
func (a *Agent) Generate(ctx context.Context, spec Spec) (Post, error) {
	prompt := BuildPostPrompt(spec)
	raw, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		return Post{}, err
	}
	return PostProcess(raw)
}
