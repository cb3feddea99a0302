package brief

import (
	"regexp"
	"testing"
)

func deref(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func TestExtractors(t *testing.T) {
	tests := []struct {
		name string
		got  *string
		want string
	}{
		{"phone formatted", ExtractPhone("Call (555) 123-4567 now"), "(555) 123-4567"},
		{"phone loose", ExtractPhone("Cell 555.123.4567"), "555.123.4567"},
		{"phone missing", ExtractPhone("Room 12"), "<nil>"},
		{"email", ExtractEmail("Email: jane.doe@acme.com."), "jane.doe@acme.com"},
		{"email missing", ExtractEmail("no at sign"), "<nil>"},
		{"date", ExtractDate("Arrive 6/1/2024 late"), "6/1/2024"},
		{"confirmation hash", ExtractConfirmation("Confirmation #: H12345"), "H12345"},
		{"confirmation number", ExtractConfirmation("Confirmation Number: 88812"), "88812"},
		{"booking", ExtractBookingNumber("Booking # 123456"), "123456"},
		{"booking colon", ExtractBookingNumber("BOOKING NUMBER: 42-77"), "42-77"},
		{"booking notes", ExtractBookingNumber("Booking Notes: none"), "<nil>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deref(tt.got); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestExtract_WholeMatchWithoutGroup(t *testing.T) {
	got := Extract("abc 123", regexp.MustCompile(`\d+`))
	if deref(got) != "123" {
		t.Errorf("expected %q, got %q", "123", deref(got))
	}
}

func TestExtract_BlankMatchIsAbsent(t *testing.T) {
	got := Extract("Rate:   ", regexp.MustCompile(`Rate:(\s*)`))
	if got != nil {
		t.Errorf("expected nil for blank capture, got %q", *got)
	}
}

func TestExtractInt(t *testing.T) {
	if n := ExtractInt("Nights: 3", reNights); n == nil || *n != 3 {
		t.Errorf("expected 3, got %v", n)
	}
	if n := ExtractInt("Nights: three", reNights); n != nil {
		t.Errorf("expected nil for malformed nights, got %d", *n)
	}
	if n := ExtractInt("no nights here", reNights); n != nil {
		t.Errorf("expected nil for missing nights, got %d", *n)
	}
}

func TestContentLines_DropsPageMarkers(t *testing.T) {
	lines := contentLines(" a \n\n=== PAGE 2 ===\nb")
	if len(lines) != 2 || lines[0] != "a" || lines[1] != "b" {
		t.Errorf("expected [a b], got %q", lines)
	}
}
