package schema

import (
	"strings"
	"testing"

	"github.com/dgallion1/briefgest/internal/brief"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New()
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return v
}

func TestValidate_ParsedBriefs(t *testing.T) {
	v := newValidator(t)
	inputs := []string{
		"",
		"Booking # 999999",
		"Booking # 123456\nJane Doe\nAcme Corp\nAnnual Gala\nFriday, June 1, 2024\nCONTACT INFORMATION\nEVENT SITE: Grand Hall\n123 Main St\nHOTEL SITE: Inn\nNights: 2\nTALENT: Jane Doe, Speaker\nJane will be accompanied by Bob Roe\nBob's Cell: (555) 333-4444\nSCHEDULE OF EVENTS\nAA 1234 Seat 12A",
	}
	for _, in := range inputs {
		if _, err := v.Validate(brief.Parse(in).Brief); err != nil {
			t.Errorf("input %q: %v", in, err)
		}
	}
}

func TestValidateJSON_RejectsEmptyString(t *testing.T) {
	v := newValidator(t)
	data, err := v.Validate(brief.Parse("Booking # 1").Brief)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	bad := strings.Replace(string(data), `"bookingNumber":"1"`, `"bookingNumber":""`, 1)
	if err := v.ValidateJSON([]byte(bad)); err == nil {
		t.Error("expected an empty string to be rejected")
	}
}

func TestValidateJSON_RejectsMissingKey(t *testing.T) {
	v := newValidator(t)
	data, _ := v.Validate(brief.Parse("Booking # 1").Brief)
	bad := strings.Replace(string(data), `"schedule":null,`, ``, 1)
	if bad == string(data) {
		t.Fatal("test setup: schedule key not found")
	}
	if err := v.ValidateJSON([]byte(bad)); err == nil {
		t.Error("expected a missing key to be rejected")
	}
}

func TestValidateJSON_BadJSON(t *testing.T) {
	if err := newValidator(t).ValidateJSON([]byte("{")); err == nil {
		t.Error("expected malformed JSON to fail")
	}
}
