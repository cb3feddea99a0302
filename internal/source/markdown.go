package source

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor handles Markdown files using goldmark. Markup is dropped
// and each top-level block becomes one paragraph.
type MarkdownExtractor struct{}

func (p *MarkdownExtractor) Extract(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var paras []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		var t string
		if h, ok := n.(*ast.Heading); ok {
			t = strings.TrimSpace(string(h.Text(src)))
		} else {
			t = extractText(n, src)
		}
		if t != "" {
			paras = append(paras, t)
		}
	}
	return finish(trimExt(filename, ".md", ".markdown"), []string{strings.Join(paras, "\n\n")})
}

// extractText gets the text content of a goldmark AST node. Leaf blocks
// such as code fences carry their text in Lines; everything else is read
// from inline children.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && !n.HasChildren() {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			buf.Write(node.Value(src))
			if node.HardLineBreak() || node.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.AutoLink:
			buf.Write(node.Label(src))
		default:
			buf.WriteString(extractText(c, src))
			if c.Type() == ast.TypeBlock {
				buf.WriteByte('\n')
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
