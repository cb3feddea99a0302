package brief

import (
	"sort"
	"strings"
)

// parseFlights extracts one leg per flight anchor in schedule text. A leg's
// raw context runs from its anchor to the next blank line, the next anchor,
// or the end of text, whichever comes first.
func parseFlights(text string, anchors func(string) [][]int) []FlightLeg {
	matches := orderAnchors(anchors(text), len(text))
	legs := make([]FlightLeg, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		if blank := strings.Index(text[m[1]:end], "\n\n"); blank >= 0 {
			end = m[1] + blank
		}
		raw := strings.TrimSpace(text[m[0]:end])
		legs = append(legs, FlightLeg{
			Airline:         strings.TrimSpace(text[m[2]:m[3]]),
			FlightNumber:    text[m[4]:m[5]],
			ReservationCode: Extract(raw, reReservation),
			Seat:            Extract(raw, reSeat),
			Raw:             raw,
		})
	}
	return legs
}

// orderAnchors sorts anchors by start and drops malformed ones and any that
// overlap an earlier anchor, so a custom predicate cannot produce
// inverted slices.
func orderAnchors(anchors [][]int, textLen int) [][]int {
	valid := make([][]int, 0, len(anchors))
	for _, m := range anchors {
		if validAnchor(m, textLen) {
			valid = append(valid, m)
		}
	}
	sort.SliceStable(valid, func(a, b int) bool { return valid[a][0] < valid[b][0] })

	out := valid[:0]
	prevEnd := 0
	for _, m := range valid {
		if m[0] < prevEnd {
			continue
		}
		out = append(out, m)
		prevEnd = m[1]
	}
	return out
}

// validAnchor checks the match and both groups lie in order inside the text.
func validAnchor(m []int, textLen int) bool {
	if len(m) < 6 || m[0] < 0 || m[0] > m[1] || m[1] > textLen {
		return false
	}
	for g := 2; g < 6; g += 2 {
		if m[g] < m[0] || m[g] > m[g+1] || m[g+1] > m[1] {
			return false
		}
	}
	return true
}
