package brief

import (
	"regexp"
	"strings"
)

var (
	reCompanion     = regexp.MustCompile(`[Ww]ill be accompanied by\s+((?:[A-Z][A-Za-z'\-]+|[A-Z]\.)(?:[ \t]+(?:[A-Z][A-Za-z'\-]+|[A-Z]\.))*)`)
	rePossessiveTag = regexp.MustCompile(`(?i)(?:'s|’s)\s+(?:cell|mobile)`)
	reNotAName      = regexp.MustCompile(`(?i)^(?:office|cell|mobile|phone|tel|e-?mail|fax)\b`)
)

// personSpan is the lines of one candidate person in block order. head is
// the index of the line that carries the name.
type personSpan struct {
	lines []string
	head  int
}

// splitPersons groups block lines into person spans. A line accepted by
// isNewPerson opens a span; lines before the first such line stay in front
// of it inside the first span. Without any match the whole block is one
// person named by its first line.
func splitPersons(lines []string, isNewPerson func(string) bool) []personSpan {
	var spans []personSpan
	var preamble []string
	for _, line := range lines {
		switch {
		case isNewPerson(line):
			spans = append(spans, personSpan{lines: []string{line}})
		case len(spans) == 0:
			preamble = append(preamble, line)
		default:
			last := &spans[len(spans)-1]
			last.lines = append(last.lines, line)
		}
	}
	if len(spans) == 0 {
		if len(preamble) == 0 {
			return nil
		}
		return []personSpan{{lines: preamble}}
	}
	if len(preamble) > 0 {
		spans[0].head = len(preamble)
		spans[0].lines = append(preamble, spans[0].lines...)
	}
	return spans
}

// splitNameTitle splits a name line on its first comma. Both parts end at
// the first field label sharing the line.
func splitNameTitle(line string) (name, title *string) {
	if reNotAName.MatchString(line) || strings.Contains(line, "@") {
		return nil, nil
	}
	before, after, found := strings.Cut(line, ",")
	name = cutAtInlineLabel(before)
	if found {
		title = cutAtInlineLabel(after)
	}
	return name, title
}

// parsePerson applies the field extractors to one person span.
func parsePerson(group string, span personSpan) (Contact, bool) {
	body := strings.Join(span.lines, "\n")
	c := Contact{Group: group, Raw: body}
	c.Name, c.Title = splitNameTitle(span.lines[span.head])

	if group == GroupTalent {
		body = dropPossessiveLines(span.lines)
	}
	c.Office = Extract(body, reOfficePhone)
	c.Cell = Extract(body, reCellPhone)
	c.Email = ExtractEmail(body)

	if c.Name == nil && c.Office == nil && c.Cell == nil && c.Email == nil {
		return c, false
	}
	return c, true
}

// dropPossessiveLines removes "<Name>'s Cell:" lines so a companion's number
// is never read as the talent's own.
func dropPossessiveLines(lines []string) string {
	var kept []string
	for _, line := range lines {
		if !rePossessiveTag.MatchString(line) {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// parseCompanion finds the "will be accompanied by <name>" clause and the
// companion's own "'s Cell:" number.
func parseCompanion(text string) (Contact, bool) {
	m := reCompanion.FindStringSubmatchIndex(text)
	if m == nil {
		return Contact{}, false
	}
	name := strings.TrimSpace(text[m[2]:m[3]])
	c := Contact{Group: GroupTalentCompanion, Name: &name, Raw: clauseLine(text, m[0])}

	candidates := []string{name}
	if first, _, ok := strings.Cut(name, " "); ok {
		candidates = append(candidates, first)
	}
	for _, n := range candidates {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(n) + `(?:'s|’s)\s+(?:cell|mobile)(?:\s*phone)?\s*:?\s*(` + rePhone.String() + `)`)
		if cell := Extract(text, re); cell != nil {
			c.Cell = cell
			break
		}
	}
	return c, true
}

// clauseLine returns the full line containing offset i.
func clauseLine(text string, i int) string {
	start := strings.LastIndexByte(text[:i], '\n') + 1
	end := strings.IndexByte(text[i:], '\n')
	if end < 0 {
		return strings.TrimSpace(text[start:])
	}
	return strings.TrimSpace(text[start : i+end])
}

// parseContacts turns one contact block into person records.
func parseContacts(group, text string, isNewPerson func(string) bool) []Contact {
	var out []Contact
	for _, span := range splitPersons(contentLines(text), isNewPerson) {
		if c, ok := parsePerson(group, span); ok {
			out = append(out, c)
		}
	}
	if group == GroupTalent {
		if c, ok := parseCompanion(text); ok {
			out = append(out, c)
		}
	}
	return out
}

type contactKey struct {
	group, name, email, cell, office string
}

func keyOf(c Contact) contactKey {
	k := contactKey{group: c.Group, cell: digitsOnly(c.Cell), office: digitsOnly(c.Office)}
	if c.Name != nil {
		k.name = strings.ToLower(*c.Name)
	}
	if c.Email != nil {
		k.email = strings.ToLower(*c.Email)
	}
	return k
}

// dedupeContacts keeps the first contact for each composite key.
func dedupeContacts(contacts []Contact) []Contact {
	seen := make(map[contactKey]bool, len(contacts))
	out := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		k := keyOf(c)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}
