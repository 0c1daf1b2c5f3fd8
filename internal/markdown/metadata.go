package markdown

import (
	"regexp"
	"strings"
)

const defaultExcerptLimit = 160

var (
	imageSyntaxRe    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkSyntaxRe     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	markdownMarksRe  = regexp.MustCompile("[#*`>_~]")
	whitespaceRunsRe = regexp.MustCompile(`\s+`)

	markdownImageRe = regexp.MustCompile(`!\[[^\]]*\]\(([^)\s]+)[^)]*\)`)
	htmlImageRe     = regexp.MustCompile(`(?i)<img[^>]*?src=["']([^"']+)["']`)
)

// excerpt flattens markdown into a single line of plain text: images are
// dropped, links keep their text, syntax marks and newlines go away. The
// result is capped at limit characters with an ellipsis only when the source
// was actually longer.
func excerpt(content string, limit int) string {
	text := imageSyntaxRe.ReplaceAllString(content, "")
	text = linkSyntaxRe.ReplaceAllString(text, "$1")
	text = markdownMarksRe.ReplaceAllString(text, "")
	text = whitespaceRunsRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit])) + "..."
}

// firstImage extracts the first embedded image URL, trying markdown image
// syntax before raw <img> tags, and skipping video URLs since those do not
// render as preview images. Falls back to the configured default.
func firstImage(content, fallback string) string {
	for _, match := range markdownImageRe.FindAllStringSubmatch(content, -1) {
		if url := strings.TrimSpace(match[1]); url != "" && !IsVideoURL(url) {
			return url
		}
	}
	for _, match := range htmlImageRe.FindAllStringSubmatch(content, -1) {
		if url := strings.TrimSpace(match[1]); url != "" && !IsVideoURL(url) {
			return url
		}
	}
	return fallback
}
