package generator

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// DefaultTitle is used when the model output contains no heading line.
const DefaultTitle = "Auto Generated Post"

// PostProcess normalizes raw model output into a Post: extract a title and
// make sure the document starts with frontmatter. The body itself is passed
// through untouched, whatever whitespace the provider left in it.
func PostProcess(raw string) (Post, error) {
	if strings.TrimSpace(raw) == "" {
		return Post{}, fmt.Errorf("%w: model returned empty output", ErrProvider)
	}
	title := ExtractTitle(raw)
	return Post{
		Title:    title,
		Markdown: EnsureFrontmatter(raw, title, time.Now()),
	}, nil
}

// ExtractTitle returns the first heading line with its markers stripped, or
// DefaultTitle when no line starts with '#'.
func ExtractTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "# "))
		}
	}
	return DefaultTitle
}

// EnsureFrontmatter prepends a minimal title/date block unless the text
// already opens with one. Existing frontmatter is trusted as-is; the title it
// carries is not reconciled with the extracted one.
func EnsureFrontmatter(text, title string, date time.Time) string {
	if strings.HasPrefix(strings.TrimLeftFunc(text, unicode.IsSpace), "---") {
		return text
	}
	front := fmt.Sprintf("---\ntitle: %q\ndate: %s\n---\n\n", title, date.Format("2006-01-02"))
	return front + text
}
