package markdown

import (
	"path"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// imagePrefixer rewrites relative image destinations so they resolve from
// the bundled output file instead of the Markdown source directory.
type imagePrefixer struct {
	prefix string
}

func (p *imagePrefixer) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if img, ok := n.(*ast.Image); ok {
			img.Destination = []byte(PrefixImage(p.prefix, string(img.Destination)))
		}
		return ast.WalkContinue, nil
	})
}

// PrefixImage joins prefix and dest when dest is a relative path. URLs with
// a scheme, rooted paths and fragments are returned unchanged.
func PrefixImage(prefix, dest string) string {
	if prefix == "" || dest == "" || !isRelative(dest) {
		return dest
	}
	return path.Join(strings.ReplaceAll(prefix, "\\", "/"), dest)
}

func isRelative(dest string) bool {
	if strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "\\") {
		return false
	}
	// A colon before the first slash marks a scheme (https:, data:, mailto:).
	if i := strings.IndexByte(dest, ':'); i >= 0 {
		if j := strings.IndexByte(dest, '/'); j < 0 || i < j {
			return false
		}
	}
	return true
}
