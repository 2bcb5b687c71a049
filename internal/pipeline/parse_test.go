package pipeline

import (
	"encoding/json"
	"errors"
	"testing"

	"escala/internal"
)

// fakeOpener decodes a JSON-encoded page list instead of a real PDF, so the
// pipeline can be driven without the layout library.
type fakeOpener struct{}

func (fakeOpener) Open(data []byte) (PageSource, error) {
	var pages [][]internal.TextFragment
	if err := json.Unmarshal(data, &pages); err != nil {
		return nil, err
	}
	return &fakeDoc{pages: pages}, nil
}

type fakeDoc struct {
	pages [][]internal.TextFragment
}

func (d *fakeDoc) NumPages() int { return len(d.pages) }

func (d *fakeDoc) PageFragments(page int) ([]internal.TextFragment, error) {
	return d.pages[page-1], nil
}

func (d *fakeDoc) Close() error { return nil }

func encodePages(t *testing.T, pages ...[]internal.TextFragment) []byte {
	t.Helper()
	data, err := json.Marshal(pages)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

// rosterPage lays out a typical PMMG page: header date, one duty block with a
// time range, then the personnel lines.
func rosterPage(date, turno string, names ...string) []internal.TextFragment {
	y := 800.0
	frags := []internal.TextFragment{}
	add := func(text string) {
		frags = append(frags, internal.TextFragment{Text: text, X: 10, Y: y})
		y -= 20
	}
	if date != "" {
		add(date)
	}
	if turno != "" {
		add(turno)
	}
	for _, n := range names {
		add(n)
	}
	return frags
}

func newTestParser() *Parser {
	return NewParser(fakeOpener{}, DefaultTemplate())
}

func TestParseRostersBasic(t *testing.T) {
	doc := RosterPDF{Name: "escala_marco.pdf", Data: encodePages(t,
		rosterPage("DATA: 15/03/2024", "TURNO: 07:00 AS 17:00",
			"SD 12345-6 JOAO DA SILVA (987654) - Condutor",
			"CB PEDRO ALVES"),
	)}

	result, err := newTestParser().ParseRosters([]RosterPDF{doc}, "silva")
	if err != nil {
		t.Fatal(err)
	}

	if result.TargetSearch != "SILVA" {
		t.Fatalf("targetSearch=%q", result.TargetSearch)
	}
	if result.DetectedName != "JOAO DA SILVA" {
		t.Fatalf("detectedName=%q", result.DetectedName)
	}

	month := result.Months["03/2024"]
	if month == nil {
		t.Fatalf("missing month bucket, got %v", result.Months)
	}
	if len(month.Shifts) != 1 || month.TotalHours != 10 {
		t.Fatalf("month=%+v", month)
	}
	shift := month.Shifts[0]
	if shift.Date != "15/03/2024" || shift.StartTime != "07:00" || shift.EndTime != "17:00" {
		t.Fatalf("shift=%+v", shift)
	}
	if shift.IsManual || shift.FileName != "escala_marco.pdf" || shift.ID == "" {
		t.Fatalf("shift=%+v", shift)
	}
}

func TestParseRostersDeduplicates(t *testing.T) {
	page := rosterPage("DATA: 15/03/2024", "TURNO: 07:00 AS 17:00", "SD JOAO DA SILVA")

	// Same shift on two pages of one file and again in a second file.
	docs := []RosterPDF{
		{Name: "a.pdf", Data: encodePages(t, page, page)},
		{Name: "b.pdf", Data: encodePages(t, page)},
	}

	result, err := newTestParser().ParseRosters(docs, "SILVA")
	if err != nil {
		t.Fatal(err)
	}

	month := result.Months["03/2024"]
	if month == nil || len(month.Shifts) != 1 {
		t.Fatalf("expected a single deduplicated shift, got %+v", month)
	}
	if month.TotalHours != 10 {
		t.Fatalf("totalHours=%v", month.TotalHours)
	}
}

func TestParseRostersMultipleMonths(t *testing.T) {
	docs := []RosterPDF{{Name: "a.pdf", Data: encodePages(t,
		rosterPage("DATA: 15/03/2024", "TURNO: 07:00 AS 17:00", "SD JOAO DA SILVA"),
		rosterPage("DATA: 01/01/2025", "TURNO: 22:00 AS 06:00", "SD JOAO DA SILVA"),
	)}}

	result, err := newTestParser().ParseRosters(docs, "SILVA")
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Months) != 2 {
		t.Fatalf("months=%v", result.Months)
	}
	if m := result.Months["03/2024"]; m == nil || m.TotalHours != 10 {
		t.Fatalf("03/2024=%+v", m)
	}
	if m := result.Months["01/2025"]; m == nil || m.TotalHours != 8 {
		t.Fatalf("01/2025=%+v", m)
	}
}

func TestParseRostersNoMatch(t *testing.T) {
	docs := []RosterPDF{{Name: "a.pdf", Data: encodePages(t,
		rosterPage("DATA: 15/03/2024", "TURNO: 07:00 AS 17:00", "SD JOAO DA SILVA"),
	)}}

	result, err := newTestParser().ParseRosters(docs, "FULANO INEXISTENTE")
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Months) != 0 {
		t.Fatalf("expected empty result, got %v", result.Months)
	}
	if result.DetectedName != "" {
		t.Fatalf("detectedName=%q", result.DetectedName)
	}
}

func TestParseRostersDateFallback(t *testing.T) {
	// No DATA: label anywhere; a bare date near the top of the page still
	// attributes the page's shifts.
	docs := []RosterPDF{{Name: "a.pdf", Data: encodePages(t,
		rosterPage("ESCALA DE SERVICO 10/05/2024", "TURNO: 07:00 AS 17:00", "SD JOAO DA SILVA"),
	)}}

	result, err := newTestParser().ParseRosters(docs, "SILVA")
	if err != nil {
		t.Fatal(err)
	}
	if m := result.Months["05/2024"]; m == nil || len(m.Shifts) != 1 {
		t.Fatalf("months=%v", result.Months)
	}
}

func TestParseRostersStateResetsPerPage(t *testing.T) {
	// Page one establishes date and shift; page two mentions the target with
	// neither. The page-two mention must record nothing.
	docs := []RosterPDF{{Name: "a.pdf", Data: encodePages(t,
		rosterPage("DATA: 15/03/2024", "TURNO: 07:00 AS 17:00", "CB PEDRO ALVES"),
		rosterPage("", "", "SD JOAO DA SILVA"),
	)}}

	result, err := newTestParser().ParseRosters(docs, "SILVA")
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Months) != 0 {
		t.Fatalf("shift context leaked across pages: %v", result.Months)
	}
}

func TestParseRostersLayoutFailureAbortsBatch(t *testing.T) {
	good := RosterPDF{Name: "a.pdf", Data: encodePages(t,
		rosterPage("DATA: 15/03/2024", "TURNO: 07:00 AS 17:00", "SD JOAO DA SILVA"),
	)}
	bad := RosterPDF{Name: "b.pdf", Data: []byte("not pages")}

	result, err := newTestParser().ParseRosters([]RosterPDF{good, bad}, "SILVA")
	if !errors.Is(err, ErrLayout) {
		t.Fatalf("err=%v", err)
	}
	if result != nil {
		t.Fatal("partial result returned on failure")
	}
}

func TestParseFilesMissingFile(t *testing.T) {
	_, err := newTestParser().ParseFiles([]string{"/does/not/exist.pdf"}, "SILVA")
	if !errors.Is(err, ErrFileRead) {
		t.Fatalf("err=%v", err)
	}
}

func TestMonthKey(t *testing.T) {
	if got := monthKey("15/03/2024"); got != "03/2024" {
		t.Fatalf("got %q", got)
	}
	if got := monthKey("01/01/2025"); got != "01/2025" {
		t.Fatalf("got %q", got)
	}
	if got := monthKey("2024"); got != "Geral" {
		t.Fatalf("got %q", got)
	}
}
