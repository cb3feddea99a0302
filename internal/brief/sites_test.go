package brief

import "testing"

func TestParseSite_Hotel(t *testing.T) {
	text := " Hilton Downtown\n500 Elm St\nSpringfield, IL\nPhone: (555) 444-5555\nCheck In: 6/1/2024\nCheck Out: 6/3/2024\nConfirmation #: HX9981\nRoom Type: King Suite\nNights: 2\nRate: $199/night\nreservations@hilton.com"
	site := parseSite(SiteHotel, text)

	if deref(site.Name) != "Hilton Downtown" {
		t.Errorf("expected name %q, got %q", "Hilton Downtown", deref(site.Name))
	}
	if deref(site.Address) != "500 Elm St, Springfield, IL" {
		t.Errorf("unexpected address %q", deref(site.Address))
	}
	if deref(site.Phone) != "(555) 444-5555" {
		t.Errorf("unexpected phone %q", deref(site.Phone))
	}
	if deref(site.Email) != "reservations@hilton.com" {
		t.Errorf("unexpected email %q", deref(site.Email))
	}

	hd := site.HotelDetails
	if hd == nil {
		t.Fatal("expected hotel details")
	}
	checks := map[string][2]string{
		"checkIn":      {"6/1/2024", deref(hd.CheckIn)},
		"checkOut":     {"6/3/2024", deref(hd.CheckOut)},
		"confirmation": {"HX9981", deref(hd.Confirmation)},
		"roomType":     {"King Suite", deref(hd.RoomType)},
		"rate":         {"$199/night", deref(hd.Rate)},
	}
	for field, pair := range checks {
		if pair[0] != pair[1] {
			t.Errorf("%s: expected %q, got %q", field, pair[0], pair[1])
		}
	}
	if hd.Nights == nil || *hd.Nights != 2 {
		t.Errorf("expected 2 nights, got %v", hd.Nights)
	}
}

func TestParseSite_MalformedNights(t *testing.T) {
	site := parseSite(SiteHotel, " Inn\nNights: two\nConfirmation #: C77")
	if site.HotelDetails == nil {
		t.Fatal("expected hotel details")
	}
	if site.HotelDetails.Nights != nil {
		t.Errorf("expected malformed nights to be absent, got %d", *site.HotelDetails.Nights)
	}
	if deref(site.HotelDetails.Confirmation) != "C77" {
		t.Errorf("expected the rest of the record to survive, got %q", deref(site.HotelDetails.Confirmation))
	}
}

func TestParseSite_EventWithoutLabelledPhone(t *testing.T) {
	site := parseSite(SiteEvent, " Grand Hall\n1 Main St\n555-123-4567")
	if site.HotelDetails != nil {
		t.Error("expected no hotel details on an event site")
	}
	if deref(site.Address) != "1 Main St" {
		t.Errorf("unexpected address %q", deref(site.Address))
	}
	if deref(site.Phone) != "555-123-4567" {
		t.Errorf("unexpected phone %q", deref(site.Phone))
	}
}

func TestParseSite_FieldFirstLine(t *testing.T) {
	site := parseSite(SiteEvent, " Phone: (555) 123-4567")
	if site.Name != nil {
		t.Errorf("expected no name, got %q", *site.Name)
	}
	if deref(site.Phone) != "(555) 123-4567" {
		t.Errorf("unexpected phone %q", deref(site.Phone))
	}
}

func TestParseSite_Empty(t *testing.T) {
	site := parseSite(SiteEvent, "  ")
	if site.Type != SiteEvent || site.Name != nil || site.Address != nil {
		t.Errorf("expected an empty event site, got %+v", site)
	}
}

func TestParseSite_LabelsShareLine(t *testing.T) {
	site := parseSite(SiteHotel, " Hilton Downtown\n100 Main St\nRoom Type: King Nights: 2 Rate: $199")
	hd := site.HotelDetails
	if hd == nil {
		t.Fatal("expected hotel details")
	}
	if deref(hd.RoomType) != "King" {
		t.Errorf("expected room type %q, got %q", "King", deref(hd.RoomType))
	}
	if deref(hd.Rate) != "$199" {
		t.Errorf("expected rate %q, got %q", "$199", deref(hd.Rate))
	}
	if hd.Nights == nil || *hd.Nights != 2 {
		t.Errorf("expected 2 nights, got %v", hd.Nights)
	}
}

func TestParseSite_EmptyFreeTextIsAbsent(t *testing.T) {
	site := parseSite(SiteHotel, " Inn\nRoom Type: Rate: $120")
	if site.HotelDetails.RoomType != nil {
		t.Errorf("expected absent room type, got %q", *site.HotelDetails.RoomType)
	}
	if deref(site.HotelDetails.Rate) != "$120" {
		t.Errorf("expected rate %q, got %q", "$120", deref(site.HotelDetails.Rate))
	}
}

func TestParseSite_ConfirmationIsNotPhone(t *testing.T) {
	site := parseSite(SiteHotel, " Hilton Downtown\n100 Main St\nConfirmation: 83920174")
	if site.Phone != nil {
		t.Errorf("expected no phone, got %q", *site.Phone)
	}
	if deref(site.HotelDetails.Confirmation) != "83920174" {
		t.Errorf("expected confirmation 83920174, got %q", deref(site.HotelDetails.Confirmation))
	}

	site = parseSite(SiteEvent, " Grand Hall\n1 Park Ave\nMain desk (555) 123-4567 Fax: 555-999-0000")
	if deref(site.Phone) != "(555) 123-4567" {
		t.Errorf("expected the unlabeled desk number, got %q", deref(site.Phone))
	}
}
