package brief

import "strings"

// maxAddressLines and maxAddressLineLen bound the "short line run" that
// follows a site name.
const (
	maxAddressLines   = 3
	maxAddressLineLen = 80
)

func isSiteCategory(category string) bool {
	return category == SiteEvent || category == SiteHotel
}

// parseSite builds a site from one label block. The first line is the name,
// the short non-field lines after it are the address.
func parseSite(category, text string) Site {
	site := Site{Type: category}
	lines := contentLines(text)
	if len(lines) == 0 {
		return site
	}

	rest := lines
	if !isFieldLine(lines[0]) {
		site.Name = strPtr(lines[0])
		rest = lines[1:]
	}

	var addr []string
	for _, line := range rest {
		if len(addr) == maxAddressLines || len(line) > maxAddressLineLen ||
			isFieldLine(line) || rePhone.MatchString(line) || reEmail.MatchString(line) {
			break
		}
		addr = append(addr, line)
	}
	if len(addr) > 0 {
		site.Address = strPtr(strings.Join(addr, ", "))
	}

	site.Phone = Extract(text, reLabeledPhone)
	if site.Phone == nil {
		site.Phone = ExtractPhone(unlabeledText(rest))
	}
	site.Email = ExtractEmail(text)

	if category == SiteHotel {
		site.HotelDetails = &HotelDetails{
			CheckIn:      Extract(text, reCheckIn),
			CheckOut:     Extract(text, reCheckOut),
			Confirmation: ExtractConfirmation(text),
			RoomType:     ExtractFreeText(text, reRoomType),
			Nights:       ExtractInt(text, reNights),
			Rate:         ExtractFreeText(text, reRate),
		}
	}
	return site
}

// unlabeledText keeps the parts of lines that sit outside any field label, so
// a confirmation or rate value is never read as a bare phone number.
func unlabeledText(lines []string) string {
	var kept []string
	for _, line := range lines {
		if isFieldLine(line) {
			continue
		}
		if v := cutAtInlineLabel(line); v != nil {
			kept = append(kept, *v)
		}
	}
	return strings.Join(kept, "\n")
}
