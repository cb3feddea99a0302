package brief

import "regexp"

var (
	reDateKeyword = regexp.MustCompile(`(?i)\b(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b` +
		`|\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sept?(?:ember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+\d{1,2}\b` +
		`|\b\d{1,2}/\d{1,2}/\d{2,4}\b`)
	reBriefTitle = regexp.MustCompile(`(?i)^event brief$`)
)

// isDateLine reports whether a header line reads like the event date.
func isDateLine(line string) bool {
	return reDateKeyword.MatchString(line)
}

// isHeaderNoise drops lines that never carry a positional header fact.
func isHeaderNoise(line string) bool {
	return reBooking.MatchString(line) ||
		reSeparatorLine.MatchString(line) ||
		reBriefTitle.MatchString(line)
}

// parseHeader assigns talent, client and title positionally from the lines of
// the header block. The first date-looking line is the event date; without
// one, the fourth positional line is.
func parseHeader(block string) HeaderFacts {
	var lines []string
	for _, line := range contentLines(block) {
		if !isHeaderNoise(line) {
			lines = append(lines, line)
		}
	}

	var h HeaderFacts
	dateIdx := -1
	for i, line := range lines {
		if isDateLine(line) {
			dateIdx = i
			break
		}
	}

	var positional []string
	for i, line := range lines {
		if i != dateIdx {
			positional = append(positional, line)
		}
	}
	slots := []**string{&h.TalentName, &h.ClientName, &h.EventTitle}
	for i, slot := range slots {
		if i < len(positional) {
			*slot = strPtr(positional[i])
		}
	}

	switch {
	case dateIdx >= 0:
		h.EventDateText = strPtr(lines[dateIdx])
	case len(positional) > 3:
		h.EventDateText = strPtr(positional[3])
	}
	return h
}

func (h HeaderFacts) present() int {
	n := 0
	for _, v := range []*string{h.TalentName, h.ClientName, h.EventTitle, h.EventDateText} {
		if v != nil {
			n++
		}
	}
	return n
}
