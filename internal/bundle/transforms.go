package bundle

import (
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// SecretMasker replaces the code block that directly follows a heading
// with a masked secret widget. Build one per heading and reuse it across
// documents.
type SecretMasker struct {
	re     *regexp.Regexp
	maxLen int
}

// NewSecretMasker returns a masker for headings whose text is heading
// (case-insensitive). The mask shows one '*' per character, up to maxLen.
// An empty heading masks nothing.
func NewSecretMasker(heading string, maxLen int) *SecretMasker {
	m := &SecretMasker{maxLen: maxLen}
	if heading = strings.TrimSpace(heading); heading != "" {
		m.re = regexp.MustCompile(`(?is)(<h[1-6][^>]*>\s*` + regexp.QuoteMeta(heading) +
			`\s*</h[1-6]>\s*)<pre[^>]*>\s*<code[^>]*>(.*?)</code>\s*</pre>`)
	}
	return m
}

// Mask rewrites every secret block of htmlContent. Other code blocks are
// left alone.
func (m *SecretMasker) Mask(htmlContent string) string {
	if m.re == nil {
		return htmlContent
	}
	return m.re.ReplaceAllStringFunc(htmlContent, func(match string) string {
		sub := m.re.FindStringSubmatch(match)
		secret := strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(sub[2], "")))
		return sub[1] + secretWidget(secret, m.maxLen)
	})
}

// MaskSecrets masks the secrets of a single document. See SecretMasker.
func MaskSecrets(htmlContent, heading string, maxLen int) string {
	return NewSecretMasker(heading, maxLen).Mask(htmlContent)
}

func secretWidget(secret string, maxLen int) string {
	n := utf8.RuneCountInString(secret)
	if n > maxLen {
		n = maxLen
	}
	escaped := html.EscapeString(secret)

	var b strings.Builder
	b.WriteString(`<div class="password-wrapper">` + "\n")
	b.WriteString(`  <div class="password-display">` + "\n")
	fmt.Fprintf(&b, `    <span class="password-masked">%s</span>`+"\n", strings.Repeat("*", n))
	fmt.Fprintf(&b, `    <span class="password-real" hidden>%s</span>`+"\n", escaped)
	b.WriteString(`  </div>` + "\n")
	b.WriteString(`  <button type="button" class="password-toggle" title="表示/非表示">👁</button>` + "\n")
	b.WriteString(`  <button type="button" class="password-copy" title="コピー">Copy</button>` + "\n")
	fmt.Fprintf(&b, `  <input type="hidden" class="password-value" value="%s">`+"\n", escaped)
	b.WriteString(`</div>`)
	return b.String()
}

// SectionID returns the element id of a document's section.
func SectionID(title string) string {
	return "doc-" + strings.Join(strings.Fields(title), "-")
}

// SectionIDs assigns every title its section id, in order. Titles whose
// ids collide, such as "a b" and "a-b", get a numeric suffix from the
// second occurrence on.
func SectionIDs(titles []string) map[string]string {
	ids := make(map[string]string, len(titles))
	used := make(map[string]bool, len(titles))
	for _, title := range titles {
		if _, ok := ids[title]; ok {
			continue
		}
		id := SectionID(title)
		if used[id] {
			n := 2
			for used[fmt.Sprintf("%s-%d", id, n)] {
				n++
			}
			id = fmt.Sprintf("%s-%d", id, n)
		}
		used[id] = true
		ids[title] = id
	}
	return ids
}

// WrapSection wraps a document's HTML in a collapsible section headed by
// its title.
func WrapSection(title, htmlContent string, open bool) string {
	return wrapSection(SectionID(title), title, htmlContent, open)
}

func wrapSection(id, title, htmlContent string, open bool) string {
	escaped := html.EscapeString(title)
	attrs := fmt.Sprintf(`class="file-section" id="%s" data-section="%s"`, html.EscapeString(id), escaped)
	if open {
		attrs += " open"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<details %s>\n", attrs)
	fmt.Fprintf(&b, "  <summary><h1>%s</h1></summary>\n", escaped)
	b.WriteString(`  <div class="file-content">` + "\n")
	b.WriteString(htmlContent)
	b.WriteString("\n  </div>\n</details>")
	return b.String()
}

var docLinkPattern = regexp.MustCompile(`href="([^"/:#?]+)\.md(#[^"]*)?"`)

// rewriteDocLinks points links to other bundled documents at their
// sections. ids maps titles to section ids; links to files that are not
// part of the bundle are kept.
func rewriteDocLinks(htmlContent string, ids map[string]string) string {
	return docLinkPattern.ReplaceAllStringFunc(htmlContent, func(match string) string {
		m := docLinkPattern.FindStringSubmatch(match)
		title, err := url.PathUnescape(html.UnescapeString(m[1]))
		id, ok := ids[title]
		if err != nil || !ok {
			return match
		}
		return `href="#` + html.EscapeString(id) + `"`
	})
}
