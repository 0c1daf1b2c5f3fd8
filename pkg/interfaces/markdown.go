package interfaces

// MarkdownRenderer converts raw markdown into sanitized HTML plus the
// derived metadata the portal surfaces (search snippets, preview images).
type MarkdownRenderer interface {
	Render(markdown string) (*Rendered, error)
}

// Rendered bundles the sanitized document body with its derived metadata.
type Rendered struct {
	// HTML is the sanitized rendering of the source markdown. Empty input
	// yields empty output, never an error.
	HTML string
	// Excerpt is a plain-text summary: markdown syntax and link targets
	// stripped, truncated to the excerpt limit with a trailing ellipsis
	// only when truncation occurred.
	Excerpt string
	// FirstImage is the first embedded image URL found in the source, or
	// the renderer's configured default when the document has none.
	FirstImage string
}
