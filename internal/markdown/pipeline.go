// Package markdown implements the rendering pipeline: goldmark parsing with
// GFM and math extensions, client-rendered mermaid diagrams, media-aware
// image rendering, and bluemonday sanitation of the final output. Content
// originates from a trusted authoring console but is treated as hostile
// anyway; stored-markup injection must not survive the pipeline.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	mathjax "github.com/litao91/goldmark-mathjax"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
	"go.abhg.dev/goldmark/mermaid"

	"github.com/goliatone/go-docs/pkg/interfaces"
)

// diagramFailure is the inline placeholder for a diagram block whose
// description did not survive sanitation. It is plain markdown so it flows
// through the rest of the pipeline like any other content.
const diagramFailure = "*Diagram failed to render.*"

// Pipeline is a reusable, stateless markdown renderer.
type Pipeline struct {
	engine       goldmark.Markdown
	policy       *bluemonday.Policy
	defaultImage string
	excerptLimit int
}

// Option configures the pipeline.
type Option func(*Pipeline)

// WithDefaultImage sets the preview image used when a document embeds none.
func WithDefaultImage(url string) Option {
	return func(p *Pipeline) {
		p.defaultImage = strings.TrimSpace(url)
	}
}

// WithExcerptLimit overrides the excerpt length. Defaults to 160 characters.
func WithExcerptLimit(limit int) Option {
	return func(p *Pipeline) {
		if limit > 0 {
			p.excerptLimit = limit
		}
	}
}

// NewPipeline constructs the renderer. The engine allows raw HTML through
// goldmark (html.WithUnsafe) because sanitation happens once, on the final
// output, rather than per stage.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		policy:       newPolicy(),
		excerptLimit: defaultExcerptLimit,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.engine = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
			extension.TaskList,
			mathjax.MathJax,
			&mermaid.Extender{
				RenderMode: mermaid.RenderModeClient,
				NoScript:   true,
			},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			renderer.WithNodeRenderers(
				util.Prioritized(newMediaRenderer(), 500),
			),
		),
	)

	return p
}

// Render satisfies interfaces.MarkdownRenderer. Empty content renders to
// empty output, not an error.
func (p *Pipeline) Render(markdown string) (*interfaces.Rendered, error) {
	if strings.TrimSpace(markdown) == "" {
		return &interfaces.Rendered{FirstImage: p.defaultImage}, nil
	}

	prepared := guardDiagramBlocks(markdown)

	var buf bytes.Buffer
	if err := p.engine.Convert([]byte(prepared), &buf); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}

	return &interfaces.Rendered{
		HTML:       string(p.policy.SanitizeBytes(buf.Bytes())),
		Excerpt:    excerpt(markdown, p.excerptLimit),
		FirstImage: firstImage(markdown, p.defaultImage),
	}, nil
}

var mermaidFenceRe = regexp.MustCompile("(?s)```mermaid[ \t]*\n(.*?)\n?```")

// guardDiagramBlocks sanitizes mermaid descriptions before they reach the
// diagram engine. A description carrying markup (or nothing at all) is
// replaced with a visible failure placeholder instead of aborting the
// document.
func guardDiagramBlocks(src string) string {
	return mermaidFenceRe.ReplaceAllStringFunc(src, func(block string) string {
		match := mermaidFenceRe.FindStringSubmatch(block)
		// Mermaid syntax uses ">" in arrows, so only "<" marks foreign markup.
		body := strings.TrimSpace(match[1])
		if body == "" || strings.Contains(body, "<") {
			return diagramFailure
		}
		return block
	})
}

// newPolicy builds the sanitation policy: bluemonday's UGC baseline plus the
// containers the pipeline itself emits (mermaid blocks, math spans, heading
// anchors, video players). Executable content stays stripped.
func newPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()

	policy.AllowAttrs("class").
		Matching(regexp.MustCompile(`^(language-[a-zA-Z0-9+-]+|mermaid|math(\s+(inline|display))?)$`)).
		OnElements("pre", "code", "span", "div")

	policy.AllowAttrs("id").
		Matching(regexp.MustCompile(`^[a-zA-Z0-9\-_]+$`)).
		OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	policy.AllowElements("video", "source")
	policy.AllowAttrs("controls", "playsinline").
		Matching(regexp.MustCompile(`^[a-z]*$`)).
		OnElements("video")
	policy.AllowAttrs("src").OnElements("source")
	policy.AllowAttrs("type").
		Matching(regexp.MustCompile(`^[a-z0-9/+.-]+$`)).
		OnElements("source")

	// GFM task lists render disabled checkboxes.
	policy.AllowAttrs("type", "checked", "disabled").
		Matching(regexp.MustCompile(`^[a-z]*$`)).
		OnElements("input")

	return policy
}
