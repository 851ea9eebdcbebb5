// Package walker lists and reads the Markdown files of a docs directory.
package walker

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned by ReadDocument for an encoding name it
// cannot decode.
var ErrUnknownEncoding = errors.New("walker: unknown encoding")

// Order is the order documents are returned in.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document holds metadata about a single Markdown file.
type Document struct {
	Name        string // File name, e.g. "2024-05-01.md".
	Path        string // Absolute path on disk.
	Title       string // File name without the .md suffix.
	Size        int64  // File size in bytes.
	ContentHash string // SHA-256 hex digest of the raw file content.
}

// ListConfig controls the behaviour of ListMarkdown.
type ListConfig struct {
	Dir     string   // Directory to list. Subdirectories are not entered.
	Include []string // Glob patterns on the file name (default "*.md").
	Exclude []string // Glob patterns on the file name.
	Order   Order    // Name order; empty means OrderDesc.
}

// ListMarkdown returns the Markdown files directly inside cfg.Dir that pass
// filtering, ordered by file name.
func ListMarkdown(cfg ListConfig) ([]Document, error) {
	root, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve dir: %w", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("walker: read dir %s: %w", cfg.Dir, err)
	}

	var docs []Document
	for _, entry := range entries {
		name := entry.Name()

		if !entry.Type().IsRegular() || isHidden(name) {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".md") {
			continue
		}
		if !MatchesInclude(name, cfg.Include) || MatchesExclude(name, cfg.Exclude) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		path := filepath.Join(root, name)
		hash, err := hashFile(path)
		if err != nil {
			return nil, fmt.Errorf("walker: hash %s: %w", name, err)
		}

		docs = append(docs, Document{
			Name:        name,
			Path:        path,
			Title:       strings.TrimSuffix(name, filepath.Ext(name)),
			Size:        info.Size(),
			ContentHash: hash,
		})
	}

	sort.Slice(docs, func(i, j int) bool {
		if cfg.Order == OrderAsc {
			return docs[i].Name < docs[j].Name
		}
		return docs[i].Name > docs[j].Name
	})

	return docs, nil
}

// ReadDocument reads a document and returns its content as UTF-8. Input in
// shift_jis or euc-jp is decoded; a leading UTF-8 byte order mark is
// dropped.
func ReadDocument(doc Document, enc string) ([]byte, error) {
	decoder, err := decoderFor(enc)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(doc.Path)
	if err != nil {
		return nil, fmt.Errorf("walker: open %s: %w", doc.Name, err)
	}
	defer f.Close()

	var r io.Reader = f
	if decoder != nil {
		r = transform.NewReader(f, decoder.NewDecoder())
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("walker: read %s: %w", doc.Name, err)
	}
	return bytes.TrimPrefix(data, utf8BOM), nil
}

// decoderFor maps an encoding name to its decoder. UTF-8 needs none.
func decoderFor(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "shift_jis", "shift-jis", "sjis":
		return japanese.ShiftJIS, nil
	case "euc-jp", "eucjp":
		return japanese.EUCJP, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// hashFile computes the SHA-256 digest of the given file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
