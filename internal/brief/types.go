package brief

// Site types.
const (
	SiteEvent = "event"
	SiteHotel = "hotel"
)

// Contact groups.
const (
	GroupClientOnsite    = "client_onsite"
	GroupLAIOnsite       = "lai_onsite"
	GroupLAIContacts     = "lai_contacts"
	GroupTalent          = "talent"
	GroupTalentCompanion = "talent_companion"
)

// ParsedBrief is the root record recovered from one Event Brief.
// Absent values are nil and serialize as null; no key is ever omitted.
type ParsedBrief struct {
	BookingNumber *string              `json:"bookingNumber"`
	Header        HeaderFacts          `json:"header"`
	Sites         []Site               `json:"sites"`
	Contacts      []Contact            `json:"contacts"`
	Schedule      *Schedule            `json:"schedule"`
	Sections      map[string][]RawSpan `json:"sections"`
	Confidence    Confidence           `json:"confidence"`
}

// HeaderFacts are the positional facts above the first contact heading.
type HeaderFacts struct {
	TalentName    *string `json:"talentName"`
	ClientName    *string `json:"clientName"`
	EventTitle    *string `json:"eventTitle"`
	EventDateText *string `json:"eventDateText"`
}

// Site is a venue or hotel listed in the contact section.
type Site struct {
	Type         string        `json:"type"`
	Name         *string       `json:"name"`
	Address      *string       `json:"address"`
	Phone        *string       `json:"phone"`
	Email        *string       `json:"email"`
	HotelDetails *HotelDetails `json:"hotelDetails"`
}

// HotelDetails only exist on hotel sites.
type HotelDetails struct {
	CheckIn      *string `json:"checkIn"`
	CheckOut     *string `json:"checkOut"`
	Confirmation *string `json:"confirmation"`
	RoomType     *string `json:"roomType"`
	Nights       *int    `json:"nights"`
	Rate         *string `json:"rate"`
}

// Contact is one person recovered from a contact sub-block.
type Contact struct {
	Group  string  `json:"group"`
	Name   *string `json:"name"`
	Title  *string `json:"title"`
	Office *string `json:"office"`
	Cell   *string `json:"cell"`
	Email  *string `json:"email"`
	Raw    string  `json:"raw"`
}

// Schedule holds the travel legs found under the schedule heading.
type Schedule struct {
	Flights []FlightLeg `json:"flights"`
}

// FlightLeg is one airline + flight number match and its trailing context.
type FlightLeg struct {
	Airline         string  `json:"airline"`
	FlightNumber    string  `json:"flightNumber"`
	ReservationCode *string `json:"reservationCode"`
	Seat            *string `json:"seat"`
	Raw             string  `json:"raw"`
}

// Confidence is the fixed-checklist coverage score.
type Confidence struct {
	Overall          int  `json:"overall"`
	HasBookingNumber bool `json:"hasBookingNumber"`
	HasHeader        bool `json:"hasHeader"`
	HasSites         bool `json:"hasSites"`
	HasContacts      bool `json:"hasContacts"`
}

// RawSpan is an untransformed slice of canonical text. Start and End are
// byte offsets into the canonical text; Text == canonical[Start:End].
type RawSpan struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Result carries the two independently requestable outputs of a parse.
type Result struct {
	Canonical string
	Brief     *ParsedBrief
}

func strPtr(s string) *string {
	return &s
}
