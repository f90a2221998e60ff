package generator

// Spec describes the post to generate before any provider is called.
type Spec struct {
	// Niche is free text steering the content. It is never validated, it
	// only shapes the prompt.
	Niche string
	// AffiliateURL is the link placed in the closing call-to-action.
	AffiliateURL string
}

// Post is the normalized artifact: markdown guaranteed to start with a
// frontmatter block, plus the title extracted from it.
type Post struct {
	Title    string
	Markdown string
}
