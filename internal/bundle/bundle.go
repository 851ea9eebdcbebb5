// Package bundle combines a directory of Markdown documents into a single
// self-contained HTML page.
package bundle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/docbundle/internal/config"
	"github.com/ziadkadry99/docbundle/internal/holiday"
	"github.com/ziadkadry99/docbundle/internal/markdown"
	"github.com/ziadkadry99/docbundle/internal/progress"
	"github.com/ziadkadry99/docbundle/internal/walker"
)

// ErrNoDocuments is returned when the docs directory has no Markdown file
// to bundle.
var ErrNoDocuments = errors.New("no markdown documents found")

// Result describes a written bundle.
type Result struct {
	Output   string // Path of the written file.
	Sections int    // Number of bundled documents.
	Bytes    int    // Size of the written file.
}

// Bundler builds bundles from a configuration.
type Bundler struct {
	cfg      *config.Config
	logger   *zap.Logger
	reporter progress.Reporter
	today    holiday.Date
	version  string
	cache    *holiday.Cache
	masker   *SecretMasker
}

// Option configures a Bundler.
type Option func(*Bundler)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(b *Bundler) { b.logger = l }
}

// WithReporter sets the progress reporter. The default is progress.Nop.
func WithReporter(r progress.Reporter) Option {
	return func(b *Bundler) { b.reporter = r }
}

// WithToday sets the date the pre-rendered calendar is built for.
func WithToday(d holiday.Date) Option {
	return func(b *Bundler) { b.today = d }
}

// WithVersion sets the version recorded in the page's generator tag.
func WithVersion(v string) Option {
	return func(b *Bundler) { b.version = v }
}

// NewBundler creates a Bundler for cfg.
func NewBundler(cfg *config.Config, opts ...Option) *Bundler {
	b := &Bundler{
		cfg:      cfg,
		logger:   zap.NewNop(),
		reporter: progress.Nop,
		today:    holiday.DateOf(time.Now()),
		version:  "dev",
		cache:    holiday.NewCache(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if cfg.Mask.Enabled {
		b.masker = NewSecretMasker(cfg.Mask.Heading, cfg.Mask.MaxLength)
	}
	return b
}

// Build renders the bundle and writes it to the configured output file.
func (b *Bundler) Build(ctx context.Context) (*Result, error) {
	var buf bytes.Buffer
	n, err := b.Render(ctx, &buf)
	if err != nil {
		return nil, err
	}

	out := b.cfg.Output
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output dir: %w", err)
		}
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", out, err)
	}

	b.logger.Info("bundle written",
		zap.String("output", out),
		zap.Int("sections", n),
		zap.Int("bytes", buf.Len()),
	)
	return &Result{Output: out, Sections: n, Bytes: buf.Len()}, nil
}

// Render writes the bundle to w and returns the number of bundled
// documents. Nothing is written when an error is returned.
func (b *Bundler) Render(ctx context.Context, w io.Writer) (int, error) {
	docs, err := walker.ListMarkdown(walker.ListConfig{
		Dir:     b.cfg.DocsDir,
		Include: b.cfg.Include,
		Exclude: b.cfg.Exclude,
		Order:   walker.Order(b.cfg.Order),
	})
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, fmt.Errorf("%w in %s", ErrNoDocuments, b.cfg.DocsDir)
	}
	b.logger.Debug("documents listed", zap.String("dir", b.cfg.DocsDir), zap.Int("count", len(docs)))

	sections, err := b.renderSections(ctx, docs)
	if err != nil {
		return 0, err
	}

	tmpl, err := loadAssets()
	if err != nil {
		return 0, fmt.Errorf("loading page assets: %w", err)
	}
	data, err := b.pageData(sections)
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return 0, fmt.Errorf("rendering page: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return 0, err
	}
	return len(sections), nil
}

func (b *Bundler) renderSections(ctx context.Context, docs []walker.Document) ([]Section, error) {
	renderer := markdown.New(markdown.Options{
		ImagePrefix: b.imagePrefix(),
		Sanitize:    b.cfg.Sanitize,
	})

	titles := make([]string, len(docs))
	for i, doc := range docs {
		titles[i] = doc.Title
	}
	ids := SectionIDs(titles)

	b.reporter.Start(len(docs))
	defer b.reporter.Finish()

	sections := make([]Section, 0, len(docs))
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		src, err := walker.ReadDocument(doc, string(b.cfg.Encoding))
		if err != nil {
			return nil, err
		}
		body, err := renderer.Render(src)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", doc.Name, err)
		}
		if b.masker != nil {
			body = b.masker.Mask(body)
		}
		body = rewriteDocLinks(body, ids)

		id := ids[doc.Title]
		sections = append(sections, Section{
			Title: doc.Title,
			ID:    id,
			HTML:  template.HTML(wrapSection(id, doc.Title, body, b.cfg.Sections.Open)),
		})

		b.reporter.Update(i+1, doc.Name)
		b.logger.Debug("document rendered",
			zap.String("file", doc.Name),
			zap.String("sha256", doc.ContentHash),
			zap.Int64("size", doc.Size),
		)
	}
	return sections, nil
}

// imagePrefix is the docs directory as seen from the output file, unless
// configured explicitly.
func (b *Bundler) imagePrefix() string {
	if b.cfg.ImagePrefix != "" {
		return b.cfg.ImagePrefix
	}
	docs, err := filepath.Abs(b.cfg.DocsDir)
	if err != nil {
		return filepath.ToSlash(b.cfg.DocsDir)
	}
	out, err := filepath.Abs(b.cfg.Output)
	if err != nil {
		return filepath.ToSlash(b.cfg.DocsDir)
	}
	rel, err := filepath.Rel(filepath.Dir(out), docs)
	if err != nil {
		return filepath.ToSlash(docs)
	}
	return filepath.ToSlash(rel)
}
