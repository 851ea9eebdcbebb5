// Package markdown converts Markdown documents to HTML fragments.
package markdown

import (
	"bytes"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Options controls rendering.
type Options struct {
	// ImagePrefix is joined in front of relative image destinations.
	ImagePrefix string
	// Sanitize runs the output through a UGC policy.
	Sanitize bool
}

// Renderer converts Markdown to HTML. It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New creates a Renderer with GitHub Flavored Markdown, heading IDs, raw
// HTML pass-through and class-based syntax highlighting.
func New(opts Options) *Renderer {
	parserOpts := []parser.Option{
		parser.WithAutoHeadingID(),
	}
	if opts.ImagePrefix != "" {
		parserOpts = append(parserOpts, parser.WithASTTransformers(
			util.Prioritized(&imagePrefixer{prefix: opts.ImagePrefix}, 100),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(parserOpts...),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	r := &Renderer{md: md}
	if opts.Sanitize {
		r.policy = newPolicy()
	}
	return r
}

// Render converts src to an HTML fragment.
func (r *Renderer) Render(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	if r.policy != nil {
		return string(r.policy.SanitizeBytes(buf.Bytes())), nil
	}
	return buf.String(), nil
}

// newPolicy is the UGC policy plus the attributes the page scripts and the
// highlighter rely on.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	return p
}
