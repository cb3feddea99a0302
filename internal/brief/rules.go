package brief

import (
	"regexp"
	"strings"
)

// Canonical heading names.
const (
	HeadingContactInformation = "CONTACT INFORMATION"
	HeadingScheduleOfEvents   = "SCHEDULE OF EVENTS"
	HeadingEventDetails       = "EVENT DETAILS"
	HeadingClientDetails      = "CLIENT DETAILS"
	HeadingTalentIntroduction = "TALENT INTRODUCTION"
	HeadingEmergencyTravel    = "EMERGENCY TRAVEL NUMBERS"
	HeadingGroundTransport    = "GROUND TRANSPORTATION"
	HeadingAudioVisual        = "AUDIO VISUAL REQUIREMENTS"
)

// Heading is one recognized section heading and the spellings that resolve to it.
type Heading struct {
	Name      string
	Spellings []string
}

// Label is an inline marker inside a section. Category is a site type or a
// contact group.
type Label struct {
	Category  string
	Spellings []string
}

// Rules is the template vocabulary the engine runs with. A zero Rules is not
// useful; start from DefaultRules and override.
type Rules struct {
	Headings []Heading
	Labels   []Label

	// IsNewPerson reports whether a line opens a new person inside a contact block.
	IsNewPerson func(line string) bool

	// FlightAnchors returns [start, end, airlineStart, airlineEnd, numberStart, numberEnd]
	// index groups for every flight anchor in text, in order.
	FlightAnchors func(text string) [][]int

	// TrimUnknownLabels enables the secondary cut at the first all-caps
	// "LABEL:" line the label vocabulary does not know.
	TrimUnknownLabels bool
}

// DefaultRules returns the vocabulary for the known Event Brief template family.
func DefaultRules() Rules {
	return Rules{
		Headings: []Heading{
			{Name: HeadingContactInformation, Spellings: []string{"CONTACT INFORMATION"}},
			{Name: HeadingScheduleOfEvents, Spellings: []string{"SCHEDULE OF EVENTS", "TRAVEL ITINERARY"}},
			{Name: HeadingEventDetails, Spellings: []string{"EVENT DETAILS"}},
			{Name: HeadingClientDetails, Spellings: []string{"CLIENT DETAILS"}},
			{Name: HeadingTalentIntroduction, Spellings: []string{"TALENT INTRODUCTION", "SPEAKER INTRODUCTION"}},
			{Name: HeadingEmergencyTravel, Spellings: []string{"EMERGENCY TRAVEL NUMBERS"}},
			{Name: HeadingGroundTransport, Spellings: []string{"GROUND TRANSPORTATION"}},
			{Name: HeadingAudioVisual, Spellings: []string{"AUDIO VISUAL REQUIREMENTS", "AUDIO/VISUAL REQUIREMENTS"}},
		},
		Labels: []Label{
			{Category: SiteEvent, Spellings: []string{"EVENT SITE", "EVENT/HOTEL SITE", "EVENT LOCATION"}},
			{Category: SiteHotel, Spellings: []string{"HOTEL SITE", "HOTEL ACCOMMODATIONS"}},
			{Category: GroupClientOnsite, Spellings: []string{"CLIENT ONSITE CONTACT", "CLIENT ONSITE CONTACTS", "CLIENT ON-SITE CONTACT", "CLIENT ON-SITE CONTACTS"}},
			{Category: GroupLAIOnsite, Spellings: []string{"LAI ONSITE CONTACT", "LAI ONSITE CONTACTS", "LAI ON-SITE CONTACT", "LAI ON-SITE CONTACTS"}},
			{Category: GroupLAIContacts, Spellings: []string{"LAI CONTACTS", "LAI CONTACT", "LAI OFFICE CONTACTS"}},
			{Category: GroupTalent, Spellings: []string{"TALENT CONTACT", "TALENT"}},
		},
		IsNewPerson:       IsNewPersonLine,
		FlightAnchors:     FindFlightAnchors,
		TrimUnknownLabels: true,
	}
}

// spellingPattern turns a literal spelling into a case-insensitive,
// word-bounded pattern that tolerates a line wrap between words.
func spellingPattern(spelling string) string {
	words := strings.Fields(spelling)
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(words, `\s+`)
}

var rePersonLine = regexp.MustCompile(`^[A-Z][A-Za-z.'\-]*(?: [A-Z][A-Za-z.'\-]*)*, \S`)

// IsNewPersonLine matches "<Capitalized Name>, " at line start.
func IsNewPersonLine(line string) bool {
	return rePersonLine.MatchString(line)
}

var reFlightAnchor = regexp.MustCompile(`\b([A-Z]{2}|[A-Z][0-9]|[0-9][A-Z]|[A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)*)[ \t]*(\d{2,5})\b`)

// FindFlightAnchors finds airline + flight number pairs. A number directly
// followed by ':' is a clock time, not a flight.
func FindFlightAnchors(text string) [][]int {
	all := reFlightAnchor.FindAllStringSubmatchIndex(text, -1)
	out := all[:0]
	for _, m := range all {
		if m[1] < len(text) && text[m[1]] == ':' {
			continue
		}
		out = append(out, m)
	}
	return out
}
