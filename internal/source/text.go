package source

import (
	"io"
	"strings"
)

// TextExtractor handles plain text files. Form feeds split pages, so text
// saved from pdftotext keeps its page boundaries.
type TextExtractor struct{}

func (p *TextExtractor) Extract(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return finish(trimExt(filename, ".txt"), strings.Split(string(src), "\f"))
}
