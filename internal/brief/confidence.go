package brief

import "math"

// confidenceDenominator is the fixed checklist size: booking number, four
// header facts, any site, any contact.
const confidenceDenominator = 7

// Score computes the coverage heuristic for a brief.
func Score(b *ParsedBrief) Confidence {
	points := b.Header.present()
	c := Confidence{
		HasBookingNumber: b.BookingNumber != nil,
		HasHeader:        points > 0,
		HasSites:         len(b.Sites) > 0,
		HasContacts:      len(b.Contacts) > 0,
	}
	for _, ok := range []bool{c.HasBookingNumber, c.HasSites, c.HasContacts} {
		if ok {
			points++
		}
	}
	c.Overall = int(math.Round(float64(points) * 100 / confidenceDenominator))
	return c
}
