package brief

import "testing"

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		b    ParsedBrief
		want Confidence
	}{
		{"empty", ParsedBrief{}, Confidence{}},
		{"booking only", ParsedBrief{BookingNumber: strPtr("1")}, Confidence{Overall: 14, HasBookingNumber: true}},
		{
			"full",
			ParsedBrief{
				BookingNumber: strPtr("1"),
				Header: HeaderFacts{
					TalentName: strPtr("a"), ClientName: strPtr("b"),
					EventTitle: strPtr("c"), EventDateText: strPtr("d"),
				},
				Sites:    []Site{{Type: SiteEvent}},
				Contacts: []Contact{{Group: GroupTalent}},
			},
			Confidence{Overall: 100, HasBookingNumber: true, HasHeader: true, HasSites: true, HasContacts: true},
		},
		{"one header fact", ParsedBrief{Header: HeaderFacts{EventTitle: strPtr("x")}}, Confidence{Overall: 14, HasHeader: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(&tt.b); got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestScore_Monotonic(t *testing.T) {
	base := "Jane Doe\nAcme Corp\nAnnual Gala\nCONTACT INFORMATION\nEVENT SITE: Hall"
	without := Parse(base).Brief.Confidence
	with := Parse("Booking # 77\n" + base).Brief.Confidence

	if without.Overall != 57 {
		t.Errorf("expected 57 without booking, got %d", without.Overall)
	}
	if with.Overall != 71 {
		t.Errorf("expected 71 with booking, got %d", with.Overall)
	}
	if with.Overall < without.Overall {
		t.Errorf("adding a fact lowered confidence: %d -> %d", without.Overall, with.Overall)
	}
}
