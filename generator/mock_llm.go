package generator

import (
	"context"
	"strings"
)

// MockLLM is a stand-in client for local runs and tests; it never touches the
// network and echoes the user prompt inside a fixed post skeleton.
type MockLLM struct{}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	var sb strings.Builder
	sb.WriteString("# Sample Post Title\n\n")
	sb.WriteString("A short introduction that previews the advice below.\n\n")
	sb.WriteString("## What You Actually Need\n\n")
	sb.WriteString("A few essentials beat a pile of gadgets.\n\n")
	sb.WriteString("## Where To Save\n\n")
	sb.WriteString("Buy used where safety allows, new where it does not.\n\n")
	sb.WriteString("## Mistakes To Skip\n\n")
	sb.WriteString("Requested via:\n\n")
	sb.WriteString("```\n")
	sb.WriteString(prompt.User)
	sb.WriteString("\n```\n")
	return sb.String(), nil
}
