// Package brief recovers a structured record from the extracted text of an
// Event Brief. Every function here is pure; an Engine holds only compiled
// patterns and is safe for concurrent use.
package brief

// Engine parses briefs with one compiled set of rules.
type Engine struct {
	rules    Rules
	headings markerSet
	labels   markerSet
}

// New compiles rules into an Engine. Nil predicates fall back to the defaults.
func New(rules Rules) *Engine {
	if rules.IsNewPerson == nil {
		rules.IsNewPerson = IsNewPersonLine
	}
	if rules.FlightAnchors == nil {
		rules.FlightAnchors = FindFlightAnchors
	}
	return &Engine{
		rules:    rules,
		headings: compileHeadings(rules.Headings),
		labels:   compileLabels(rules.Labels),
	}
}

var defaultEngine = New(DefaultRules())

// Parse normalizes raw text and parses it with the default rules.
func Parse(raw string) Result {
	return defaultEngine.Parse(raw)
}

// Parse normalizes raw text and returns both the canonical text and the record.
func (e *Engine) Parse(raw string) Result {
	canonical := Normalize(raw)
	return Result{Canonical: canonical, Brief: e.ParseCanonical(canonical)}
}

// Sections segments canonical text with the engine's heading vocabulary.
func (e *Engine) Sections(canonical string) Sections {
	return sectionsFrom(canonical, e.headings.find(canonical))
}

// ParseCanonical builds the record from already-normalized text. It never
// fails: missing structure yields absent fields.
func (e *Engine) ParseCanonical(text string) *ParsedBrief {
	occ := e.headings.find(text)
	ordered := orderedSpans(text, occ)
	sections := groupSpans(ordered)

	b := &ParsedBrief{
		BookingNumber: ExtractBookingNumber(text),
		Sites:         []Site{},
		Contacts:      []Contact{},
	}
	if end, ok := headerEnd(occ); ok {
		b.Header = parseHeader(text[:end])
	}

	// Sites only come from the contact section; contact-role labels are
	// honored under any heading and deduplicated across them.
	var contacts []Contact
	for _, s := range ordered {
		for _, blk := range sliceLabels(s.span.Text, e.labels, e.rules.TrimUnknownLabels) {
			if isSiteCategory(blk.Category) {
				if s.heading == HeadingContactInformation {
					b.Sites = append(b.Sites, parseSite(blk.Category, blk.Text))
				}
				continue
			}
			contacts = append(contacts, parseContacts(blk.Category, blk.Text, e.rules.IsNewPerson)...)
		}
	}
	b.Contacts = dedupeContacts(contacts)

	if spans, ok := sections[HeadingScheduleOfEvents]; ok {
		sched := &Schedule{Flights: []FlightLeg{}}
		for _, span := range spans {
			sched.Flights = append(sched.Flights, parseFlights(span.Text, e.rules.FlightAnchors)...)
		}
		b.Schedule = sched
	}

	b.Sections = make(map[string][]RawSpan, len(e.rules.Headings))
	for _, h := range e.rules.Headings {
		b.Sections[h.Name] = sections[h.Name]
	}
	b.Confidence = Score(b)
	return b
}
