// Package export renders a parsed brief as an XLSX workbook.
package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/dgallion1/briefgest/internal/brief"
)

// Sheet names, in workbook order.
const (
	SheetSummary  = "Summary"
	SheetSites    = "Sites"
	SheetContacts = "Contacts"
	SheetFlights  = "Flights"
)

type sheet struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]any
}

// Workbook returns the XLSX bytes for b. title labels the summary sheet.
func Workbook(title string, b *brief.ParsedBrief) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []sheet{summarySheet(title, b), sitesSheet(b), contactsSheet(b), flightsSheet(b)}
	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, fmt.Errorf("new sheet %s: %w", sh.name, err)
		}
		if err := writeSheet(f, sh); err != nil {
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sh sheet) error {
	header := make([]any, len(sh.headers))
	for i, h := range sh.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sh.name, "A1", &header); err != nil {
		return fmt.Errorf("write %s header: %w", sh.name, err)
	}
	for i, row := range sh.rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sh.name, i+2, err)
		}
	}
	for i, w := range sh.widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sh.name, col, col, w)
	}
	return nil
}

func summarySheet(title string, b *brief.ParsedBrief) sheet {
	c := b.Confidence
	return sheet{
		name:    SheetSummary,
		headers: []string{"Field", "Value"},
		widths:  []float64{22, 48},
		rows: [][]any{
			{"Document", title},
			{"Booking Number", str(b.BookingNumber)},
			{"Talent", str(b.Header.TalentName)},
			{"Client", str(b.Header.ClientName)},
			{"Event", str(b.Header.EventTitle)},
			{"Date", str(b.Header.EventDateText)},
			{"Confidence", c.Overall},
			{"Sites", len(b.Sites)},
			{"Contacts", len(b.Contacts)},
		},
	}
}

func sitesSheet(b *brief.ParsedBrief) sheet {
	sh := sheet{
		name: SheetSites,
		headers: []string{"Type", "Name", "Address", "Phone", "Email",
			"Check In", "Check Out", "Confirmation", "Room Type", "Nights", "Rate"},
		widths: []float64{8, 28, 40, 16, 28, 12, 12, 16, 18, 8, 16},
	}
	for _, s := range b.Sites {
		row := []any{s.Type, str(s.Name), str(s.Address), str(s.Phone), str(s.Email)}
		if hd := s.HotelDetails; hd != nil {
			row = append(row, str(hd.CheckIn), str(hd.CheckOut), str(hd.Confirmation), str(hd.RoomType), num(hd.Nights), str(hd.Rate))
		}
		sh.rows = append(sh.rows, row)
	}
	return sh
}

func contactsSheet(b *brief.ParsedBrief) sheet {
	sh := sheet{
		name:    SheetContacts,
		headers: []string{"Group", "Name", "Title", "Office", "Cell", "Email"},
		widths:  []float64{16, 24, 24, 16, 16, 28},
	}
	for _, c := range b.Contacts {
		sh.rows = append(sh.rows, []any{c.Group, str(c.Name), str(c.Title), str(c.Office), str(c.Cell), str(c.Email)})
	}
	return sh
}

func flightsSheet(b *brief.ParsedBrief) sheet {
	sh := sheet{
		name:    SheetFlights,
		headers: []string{"Airline", "Flight", "Reservation", "Seat", "Details"},
		widths:  []float64{14, 8, 12, 6, 60},
	}
	if b.Schedule == nil {
		return sh
	}
	for _, l := range b.Schedule.Flights {
		sh.rows = append(sh.rows, []any{l.Airline, l.FlightNumber, str(l.ReservationCode), str(l.Seat), l.Raw})
	}
	return sh
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func num(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
