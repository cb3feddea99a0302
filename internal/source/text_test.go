package source

import (
	"errors"
	"strings"
	"testing"
)

func TestTextExtractor_SinglePage(t *testing.T) {
	input := "Booking # 1\n\nCONTACT INFORMATION\nEVENT SITE: Hall"
	doc, err := (&TextExtractor{}).Extract(strings.NewReader(input), "brief.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "brief" {
		t.Errorf("expected title %q, got %q", "brief", doc.Title)
	}
	if len(doc.Pages) != 1 || doc.Pages[0] != input {
		t.Errorf("expected the text as one page, got %q", doc.Pages)
	}
}

func TestTextExtractor_FormFeedPages(t *testing.T) {
	doc, err := (&TextExtractor{}).Extract(strings.NewReader("first\fsecond"), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.PageCount() != 2 {
		t.Fatalf("expected 2 pages, got %d", doc.PageCount())
	}
	if doc.Pages[1] != "second" {
		t.Errorf("expected %q, got %q", "second", doc.Pages[1])
	}
}

func TestTextExtractor_EmptyInput(t *testing.T) {
	_, err := (&TextExtractor{}).Extract(strings.NewReader("  \n"), "empty.txt")
	if !errors.Is(err, ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
}
