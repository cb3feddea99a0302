package brief

import (
	"regexp"
	"strconv"
	"strings"
)

const fieldLabelNames = `check[\s\-]?in|check[\s\-]?out|room\s*type|confirmation(?:\s*number|\s*#|\s*no\.?)?|reservation\s*code|office(?:\s*phone)?|cell(?:\s*phone)?|mobile(?:\s*phone)?|phone|tel|e-?mail|fax|nights|number of nights|# of nights|(?:room\s*)?rate|address`

// Field patterns. Each is used with first-capture-group-or-whole-match semantics.
var (
	rePhone        = regexp.MustCompile(`\(\d{3}\) ?\d{3}-\d{4}|\+?[\d()][\d() .\-]{5,}\d`)
	reEmail        = regexp.MustCompile(`[^\s@<>(),;:"]+@[^\s@<>(),;:"]+\.[A-Za-z]{2,}`)
	reDate         = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)
	reConfirmation = regexp.MustCompile(`(?i)confirmation\s*(?:number|no\b\.?|#)?\s*:?\s*([A-Z0-9][A-Z0-9\-]*)`)
	reBooking      = regexp.MustCompile(`(?i)booking\s*(?:#|no\b\.?|number)\s*:?\s*([A-Z0-9][A-Z0-9\-]*)`)

	reLabeledPhone  = regexp.MustCompile(`(?i)\b(?:phone|tel|telephone)\s*(?:#|number)?\s*:?\s*(` + rePhone.String() + `)`)
	reOfficePhone   = regexp.MustCompile(`(?i)\boffice\s*(?:phone|#)?\s*:?\s*(` + rePhone.String() + `)`)
	reCellPhone     = regexp.MustCompile(`(?i)\b(?:cell|mobile)\s*(?:phone|#)?\s*:?\s*(` + rePhone.String() + `)`)
	reCheckIn       = regexp.MustCompile(`(?i)check[\s\-]?in(?:\s*date)?\s*:?\s*(\d{1,2}/\d{1,2}/\d{4})`)
	reCheckOut      = regexp.MustCompile(`(?i)check[\s\-]?out(?:\s*date)?\s*:?\s*(\d{1,2}/\d{1,2}/\d{4})`)
	reRoomType      = regexp.MustCompile(`(?i)\broom\s*type\s*:`)
	reNights        = regexp.MustCompile(`(?i)(?:number of nights|# of nights|nights)\s*:\s*(\S+)`)
	reRate          = regexp.MustCompile(`(?i)\b(?:room\s*)?rate\s*:`)
	reReservation   = regexp.MustCompile(`(?i)reservation\s*(?:code|number|#)?\s*:?\s*([A-Z0-9]{5,8})\b`)
	reSeat          = regexp.MustCompile(`(?i)\bseat\s*(?:#|number)?\s*:?\s*(\d{1,3}[A-K])\b`)
	reFieldLabel    = regexp.MustCompile(`(?i)^(?:` + fieldLabelNames + `)\s*:`)
	rePageMarker    = regexp.MustCompile(`^=== PAGE \d+ ===$`)
	reSeparatorLine = regexp.MustCompile(`^[\-–—_=*~. ]+$`)

	// reInlineLabel is a field label anywhere on a line, preceded by a
	// separator so it never matches inside a word.
	reInlineLabel = regexp.MustCompile(`(?i)(?:^|[\s,;])(?:` + fieldLabelNames + `)\s*:`)
)

// Extract applies the first-capture-group-or-whole-match rule and trims the
// result. A blank or missing match is nil.
func Extract(text string, re *regexp.Regexp) *string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v := m[0]
	if len(m) > 1 {
		v = m[1]
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

// ExtractFreeText returns the text after the first match of label, ending at
// the next field label on the same line or at the end of the line.
func ExtractFreeText(text string, label *regexp.Regexp) *string {
	loc := label.FindStringIndex(text)
	if loc == nil {
		return nil
	}
	rest := text[loc[1]:]
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	return cutAtInlineLabel(rest)
}

// cutAtInlineLabel trims s at its first field label. Nothing left is nil.
func cutAtInlineLabel(s string) *string {
	if m := reInlineLabel.FindStringIndex(s); m != nil {
		s = s[:m[0]]
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ExtractPhone returns the first phone-looking run in text.
func ExtractPhone(text string) *string { return Extract(text, rePhone) }

// ExtractEmail returns the first email-looking token in text.
func ExtractEmail(text string) *string { return Extract(text, reEmail) }

// ExtractDate returns the first M/D/YYYY date in text.
func ExtractDate(text string) *string { return Extract(text, reDate) }

// ExtractConfirmation returns the alphanumeric run after a "Confirmation" label.
func ExtractConfirmation(text string) *string { return Extract(text, reConfirmation) }

// ExtractBookingNumber returns the value after a "Booking #" label.
func ExtractBookingNumber(text string) *string { return Extract(text, reBooking) }

// ExtractInt parses an extracted value as an integer. A malformed value is
// absent, not an error.
func ExtractInt(text string, re *regexp.Regexp) *int {
	v := Extract(text, re)
	if v == nil {
		return nil
	}
	n, err := strconv.Atoi(*v)
	if err != nil {
		return nil
	}
	return &n
}

// digitsOnly keeps the digits of a phone value for comparisons.
func digitsOnly(v *string) string {
	if v == nil {
		return ""
	}
	var b strings.Builder
	for _, r := range *v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// contentLines returns trimmed non-empty lines, dropping page markers.
func contentLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || rePageMarker.MatchString(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func isFieldLine(line string) bool {
	return reFieldLabel.MatchString(line)
}
