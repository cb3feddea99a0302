package source

import (
	"bytes"
	"testing"

	"github.com/fumiama/go-docx"
)

func TestDOCXExtractor(t *testing.T) {
	w := docx.New().WithDefaultTheme()
	w.AddParagraph().AddText("CONTACT INFORMATION")
	w.AddParagraph().AddText("EVENT SITE: Grand Hall")
	w.AddParagraph()
	w.AddParagraph().AddText("Phone: (555) 123-4567")

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}

	doc, err := (&DOCXExtractor{}).Extract(&buf, "brief.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "brief" {
		t.Errorf("expected title %q, got %q", "brief", doc.Title)
	}
	want := "CONTACT INFORMATION\n\nEVENT SITE: Grand Hall\n\nPhone: (555) 123-4567"
	if len(doc.Pages) != 1 || doc.Pages[0] != want {
		t.Errorf("expected %q, got %q", want, doc.Pages)
	}
}
