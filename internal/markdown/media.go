package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// videoExtensions are the file extensions rendered as playable video instead
// of an image tag. Matching tolerates query strings and fragments.
var videoExtensions = []string{".mp4", ".webm", ".ogg", ".mov"}

// mediaHTMLRenderer replaces goldmark's image renderer. Image syntax whose
// destination (or alt text, for imports that stored the URL there) points at
// a video file renders as an HTML5 player; everything else renders as a
// regular image.
type mediaHTMLRenderer struct {
	html.Config
}

func newMediaRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &mediaHTMLRenderer{
		Config: html.NewConfig(),
	}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *mediaHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindImage, r.renderImage)
}

func (r *mediaHTMLRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	dest := string(n.Destination)
	alt := string(n.Text(source))

	if IsVideoURL(dest) || IsVideoURL(alt) {
		src := dest
		if !IsVideoURL(src) {
			src = alt
		}
		_, _ = w.WriteString(`<video controls="controls" playsinline="playsinline"><source src="`)
		_, _ = w.Write(util.EscapeHTML(util.URLEscape([]byte(src), true)))
		_, _ = w.WriteString(`"></video>`)
		return ast.WalkSkipChildren, nil
	}

	_, _ = w.WriteString(`<img src="`)
	if r.Unsafe || !html.IsDangerousURL(n.Destination) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	}
	_, _ = w.WriteString(`" alt="`)
	_, _ = w.Write(util.EscapeHTML([]byte(alt)))
	_ = w.WriteByte('"')
	if n.Title != nil {
		_, _ = w.WriteString(` title="`)
		r.Writer.Write(w, n.Title)
		_ = w.WriteByte('"')
	}
	if r.XHTML {
		_, _ = w.WriteString(" />")
	} else {
		_, _ = w.WriteString(">")
	}
	return ast.WalkSkipChildren, nil
}

// IsVideoURL reports whether a URL points at a video file, ignoring any
// query string or fragment after the path.
func IsVideoURL(raw string) bool {
	candidate := strings.ToLower(strings.TrimSpace(raw))
	if candidate == "" {
		return false
	}
	if i := strings.IndexAny(candidate, "?#"); i >= 0 {
		candidate = candidate[:i]
	}
	for _, ext := range videoExtensions {
		if strings.HasSuffix(candidate, ext) {
			return true
		}
	}
	return false
}
