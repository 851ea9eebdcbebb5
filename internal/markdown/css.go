package markdown

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// DarkScope is the selector the page sets while the dark theme is active.
const DarkScope = "body.dark-mode"

// HighlightCSS returns the stylesheet for highlighted code: the light style
// unscoped, followed by the dark style scoped under DarkScope.
func HighlightCSS(light, dark string) (string, error) {
	lightCSS, err := styleCSS(light)
	if err != nil {
		return "", err
	}
	darkCSS, err := styleCSS(dark)
	if err != nil {
		return "", err
	}
	return lightCSS + scopeCSS(darkCSS, DarkScope), nil
}

func styleCSS(name string) (string, error) {
	style, err := lookupStyle(name)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("writing %s stylesheet: %w", name, err)
	}
	return buf.String(), nil
}

func lookupStyle(name string) (*chroma.Style, error) {
	style, ok := styles.Registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown highlight style %q", name)
	}
	return style, nil
}

// scopeCSS prefixes every selector of a one-rule-per-line stylesheet with
// scope. Leading /* comments */ are dropped.
func scopeCSS(css, scope string) string {
	var out strings.Builder
	sc := bufio.NewScanner(strings.NewReader(css))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "/*") {
			if end := strings.Index(line, "*/"); end >= 0 {
				line = strings.TrimSpace(line[end+2:])
			}
		}
		brace := strings.IndexByte(line, '{')
		if brace <= 0 {
			continue
		}
		selectors := strings.Split(line[:brace], ",")
		for i, sel := range selectors {
			selectors[i] = scope + " " + strings.TrimSpace(sel)
		}
		out.WriteString(strings.Join(selectors, ", "))
		out.WriteString(" ")
		out.WriteString(line[brace:])
		out.WriteString("\n")
	}
	return out.String()
}
