package brief

import "testing"

func TestParseFlights(t *testing.T) {
	text := "\nAA 1234 Reservation Code: ABCDEF Seat 12A\nDepart 10:30 from JFK\nDelta 455 Seat 3C\n\nNotes follow\nAA 1234 return"
	legs := parseFlights(text, FindFlightAnchors)
	if len(legs) != 3 {
		t.Fatalf("expected 3 legs, got %d: %+v", len(legs), legs)
	}

	first := legs[0]
	if first.Airline != "AA" || first.FlightNumber != "1234" {
		t.Errorf("expected AA 1234, got %s %s", first.Airline, first.FlightNumber)
	}
	if deref(first.ReservationCode) != "ABCDEF" || deref(first.Seat) != "12A" {
		t.Errorf("expected ABCDEF/12A, got %s/%s", deref(first.ReservationCode), deref(first.Seat))
	}
	if first.Raw != "AA 1234 Reservation Code: ABCDEF Seat 12A\nDepart 10:30 from JFK" {
		t.Errorf("unexpected raw %q", first.Raw)
	}

	second := legs[1]
	if second.Airline != "Delta" || second.FlightNumber != "455" {
		t.Errorf("expected Delta 455, got %s %s", second.Airline, second.FlightNumber)
	}
	if second.Raw != "Delta 455 Seat 3C" {
		t.Errorf("expected raw to stop at the blank line, got %q", second.Raw)
	}
	if second.ReservationCode != nil {
		t.Errorf("expected no reservation code, got %q", *second.ReservationCode)
	}
	if deref(second.Seat) != "3C" {
		t.Errorf("expected seat 3C, got %s", deref(second.Seat))
	}

	if legs[2].FlightNumber != "1234" || legs[2].Raw != "AA 1234 return" {
		t.Errorf("expected the repeated leg to be kept, got %+v", legs[2])
	}
}

func TestParseFlights_None(t *testing.T) {
	legs := parseFlights("Depart 10:30\nArrive 14:05", FindFlightAnchors)
	if legs == nil || len(legs) != 0 {
		t.Errorf("expected an empty non-nil list, got %+v", legs)
	}
}

func TestFindFlightAnchors_CustomPredicate(t *testing.T) {
	only := func(text string) [][]int {
		if len(text) < 6 {
			return nil
		}
		return [][]int{{0, 6, 0, 2, 3, 6}}
	}
	legs := parseFlights("ZZ 999 charter", only)
	if len(legs) != 1 || legs[0].Airline != "ZZ" || legs[0].FlightNumber != "999" {
		t.Errorf("expected the swapped predicate to drive parsing, got %+v", legs)
	}
}

func TestParseFlights_UnorderedAnchors(t *testing.T) {
	text := "UA 55 Seat 3C\nDL 77 Seat 9F"
	scrambled := func(string) [][]int {
		return [][]int{
			{14, 19, 14, 16, 17, 19}, // DL 77
			{0, 5, 0, 2, 3, 5},       // UA 55
			{1, 6, 1, 3, 4, 6},       // overlaps UA 55
			{2, 1, 0, 0, 0, 0},       // inverted
			{0, 99, 0, 2, 3, 5},      // past the end
			{0, 5},                   // missing groups
		}
	}
	legs := parseFlights(text, scrambled)
	if len(legs) != 2 {
		t.Fatalf("expected 2 legs, got %d: %+v", len(legs), legs)
	}
	if legs[0].FlightNumber != "55" || legs[1].FlightNumber != "77" {
		t.Errorf("expected legs in text order, got %q then %q", legs[0].FlightNumber, legs[1].FlightNumber)
	}
	if deref(legs[0].Seat) != "3C" || deref(legs[1].Seat) != "9F" {
		t.Errorf("unexpected seats %q, %q", deref(legs[0].Seat), deref(legs[1].Seat))
	}
}
