package generator

import (
	"fmt"
	"strings"
)

// DefaultAffiliateURL is the placeholder used when no affiliate link is
// configured.
const DefaultAffiliateURL = "https://example.com/affiliate"

// Prompt is the message pair sent to the model. Providers that only accept a
// single input string concatenate the two parts.
type Prompt struct {
	System string
	User   string
}

// Render flattens the prompt for single-input providers.
func (p Prompt) Render() string {
	if p.System == "" {
		return p.User
	}
	return p.System + "\n" + p.User
}

// BuildPostPrompt renders the instruction for one blog post. Pure: same spec,
// same prompt.
func BuildPostPrompt(spec Spec) Prompt {
	link := spec.AffiliateURL
	if link == "" {
		link = DefaultAffiliateURL
	}

	var sb strings.Builder
	sb.WriteString("You are an assistant that writes a clear, helpful 450-700 word blog post for humans.\n")
	sb.WriteString("Output format:\n")
	sb.WriteString("YAML frontmatter with title and date, then markdown body.\n")
	sb.WriteString("Include an H1 title, short intro, 3 subheadings (H2), one short conclusion, ")
	sb.WriteString(fmt.Sprintf("and one simple call-to-action line at the end that links to %s.\n", link))
	sb.WriteString("Be concise, avoid made-up facts, and keep it practical.")

	user := fmt.Sprintf("Niche: %s\nWrite the complete post now.", spec.Niche)

	return Prompt{
		System: sb.String(),
		User:   user,
	}
}
