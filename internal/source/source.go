// Package source turns uploaded brief files into the page-marked text the
// brief engine consumes.
package source

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedFormat is returned by ForFile for unknown extensions.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyText is returned when a file decodes but carries no text.
	ErrEmptyText = errors.New("no extractable text")
)

// Extractor converts raw document bytes into page text.
type Extractor interface {
	Extract(r io.Reader, filename string) (*Document, error)
}

// Options tune extractor behaviour.
type Options struct {
	// PDFFallback enables the pdftotext fallback when the PDF library fails.
	PDFFallback bool
}

// Document is the decoded text of one file, one entry per page.
type Document struct {
	Title string
	Pages []string
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string, opts Options) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{FallbackPdftotext: opts.PDFFallback}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// PageMarker is the separator written before each page's text.
func PageMarker(n int) string {
	return fmt.Sprintf("\n\n=== PAGE %d ===\n", n)
}

// Text concatenates the first maxPages pages, each prefixed with its page
// marker. maxPages <= 0 means no cap. truncated reports dropped pages.
func (d *Document) Text(maxPages int) (text string, truncated bool) {
	pages := d.Pages
	if maxPages > 0 && len(pages) > maxPages {
		pages = pages[:maxPages]
		truncated = true
	}
	var b strings.Builder
	for i, p := range pages {
		b.WriteString(PageMarker(i + 1))
		b.WriteString(p)
	}
	return b.String(), truncated
}

// PageCount returns the number of decoded pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// finish trims pages and rejects documents with no text at all.
func finish(title string, pages []string) (*Document, error) {
	doc := &Document{Title: title}
	var found bool
	for _, p := range pages {
		p = strings.TrimSpace(p)
		if p != "" {
			found = true
		}
		doc.Pages = append(doc.Pages, p)
	}
	if !found {
		return nil, ErrEmptyText
	}
	return doc, nil
}

func trimExt(filename string, exts ...string) string {
	base := filepath.Base(filename)
	for _, ext := range exts {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			return base[:len(base)-len(ext)]
		}
	}
	return base
}
