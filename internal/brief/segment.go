package brief

import (
	"regexp"
	"sort"
)

// occurrence is one marker match in a text. order breaks offset ties by
// vocabulary position.
type occurrence struct {
	name  string
	start int
	end   int
	order int
}

// Sections maps a canonical heading name to its spans in document order.
// A heading that never occurs has no entry.
type Sections map[string][]RawSpan

// First returns the first span of a heading, for positional "first wins" use.
func (s Sections) First(name string) (RawSpan, bool) {
	spans := s[name]
	if len(spans) == 0 {
		return RawSpan{}, false
	}
	return spans[0], true
}

type markerSet struct {
	names    []string
	patterns []*regexp.Regexp
}

func compileHeadings(headings []Heading) markerSet {
	var ms markerSet
	for _, h := range headings {
		for _, sp := range h.Spellings {
			ms.names = append(ms.names, h.Name)
			ms.patterns = append(ms.patterns, regexp.MustCompile(`(?i)\b`+spellingPattern(sp)+`\b`))
		}
	}
	return ms
}

func compileLabels(labels []Label) markerSet {
	var ms markerSet
	for _, l := range labels {
		for _, sp := range l.Spellings {
			ms.names = append(ms.names, l.Category)
			ms.patterns = append(ms.patterns, regexp.MustCompile(`(?i)\b`+spellingPattern(sp)+`\s*:`))
		}
	}
	return ms
}

// find merges every occurrence of every pattern into one offset-sorted list.
func (ms markerSet) find(text string) []occurrence {
	var occ []occurrence
	for i, re := range ms.patterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			occ = append(occ, occurrence{name: ms.names[i], start: loc[0], end: loc[1], order: i})
		}
	}
	sort.SliceStable(occ, func(a, b int) bool {
		if occ[a].start != occ[b].start {
			return occ[a].start < occ[b].start
		}
		return occ[a].order < occ[b].order
	})
	return occ
}

// spanEnd is the start of the next occurrence that begins at or after the end
// of occ[i], so overlapping matches are segmented independently.
func spanEnd(occ []occurrence, i, textLen int) int {
	for j := i + 1; j < len(occ); j++ {
		if occ[j].start >= occ[i].end {
			return occ[j].start
		}
	}
	return textLen
}

// Segment splits canonical text into heading sections.
func Segment(text string, headings []Heading) Sections {
	return sectionsFrom(text, compileHeadings(headings).find(text))
}

// sectionSpan is one heading occurrence and its span.
type sectionSpan struct {
	heading string
	span    RawSpan
}

// orderedSpans returns every heading occurrence's span in document order.
func orderedSpans(text string, occ []occurrence) []sectionSpan {
	out := make([]sectionSpan, 0, len(occ))
	for i, o := range occ {
		end := spanEnd(occ, i, len(text))
		out = append(out, sectionSpan{heading: o.name, span: RawSpan{Text: text[o.end:end], Start: o.end, End: end}})
	}
	return out
}

func sectionsFrom(text string, occ []occurrence) Sections {
	return groupSpans(orderedSpans(text, occ))
}

func groupSpans(spans []sectionSpan) Sections {
	out := Sections{}
	for _, s := range spans {
		out[s.heading] = append(out[s.heading], s.span)
	}
	return out
}

// headerEnd is where the header block stops: the first CONTACT INFORMATION
// heading, else the first heading of any kind.
func headerEnd(occ []occurrence) (int, bool) {
	for _, o := range occ {
		if o.name == HeadingContactInformation {
			return o.start, true
		}
	}
	if len(occ) > 0 {
		return occ[0].start, true
	}
	return 0, false
}
