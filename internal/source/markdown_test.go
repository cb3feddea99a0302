package source

import (
	"errors"
	"strings"
	"testing"
)

func TestMarkdownExtractor_FlattensBlocks(t *testing.T) {
	input := "# Event Brief\n\n## CONTACT INFORMATION\n\nEVENT SITE: Grand Hall\n123 Main St\n\nNotes: **bring badge** at noon\n\n- Ann Lee, Producer\n- <ann@acme.com>\n\n```\nAA 1234 Seat 12A\n```\n"
	doc, err := (&MarkdownExtractor{}).Extract(strings.NewReader(input), "brief.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}
	text := doc.Pages[0]
	for _, want := range []string{"Event Brief", "CONTACT INFORMATION", "EVENT SITE: Grand Hall\n123 Main St", "Ann Lee, Producer", "ann@acme.com", "AA 1234 Seat 12A", "Notes: bring badge at noon"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected text to contain %q, got %q", want, text)
		}
	}
	if strings.Contains(text, "**") || strings.Contains(text, "```") {
		t.Errorf("expected markup to be dropped, got %q", text)
	}
	if strings.Count(text, "123 Main St") != 1 {
		t.Errorf("expected paragraph text once, got %q", text)
	}
}

func TestMarkdownExtractor_EmptyInput(t *testing.T) {
	_, err := (&MarkdownExtractor{}).Extract(strings.NewReader(""), "empty.md")
	if !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
}

func TestMarkdownExtractor_TitleStripping(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"dir/plain.md", "plain"},
	}
	p := &MarkdownExtractor{}
	for _, tt := range tests {
		doc, err := p.Extract(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if doc.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, doc.Title)
		}
	}
}
