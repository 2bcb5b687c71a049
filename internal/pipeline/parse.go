package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"escala/internal"
)

var (
	// ErrFileRead marks inputs whose bytes could not be obtained.
	ErrFileRead = errors.New("roster file unreadable")
	// ErrLayout marks inputs the text-layout provider rejected.
	ErrLayout = errors.New("roster layout unreadable")
)

// PageSource is one opened document from the text-layout provider. Pages are
// numbered from 1, matching the provider's convention.
type PageSource interface {
	NumPages() int
	PageFragments(page int) ([]internal.TextFragment, error)
	Close() error
}

// Opener turns raw PDF bytes into a PageSource.
type Opener interface {
	Open(data []byte) (PageSource, error)
}

type Parser struct {
	opener Opener
	tpl    Template
}

func NewParser(opener Opener, tpl Template) *Parser {
	return &Parser{opener: opener, tpl: tpl}
}

// ParseFiles runs the whole batch sequentially and folds every file into one
// result set. Any read or layout failure aborts the batch; no partial result
// comes back. A target that matches nothing is a valid empty result.
func (p *Parser) ParseFiles(paths []string, targetName string) (*internal.ProcessResult, error) {
	docs := []RosterPDF{}
	for _, path := range paths {
		loaded, err := LoadRosterFiles(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFileRead, path, err)
		}
		docs = append(docs, loaded...)
	}
	return p.ParseRosters(docs, targetName)
}

// ParseRosters is ParseFiles for already-loaded PDF payloads.
func (p *Parser) ParseRosters(docs []RosterPDF, targetName string) (*internal.ProcessResult, error) {
	target := strings.ToUpper(strings.TrimSpace(targetName))
	result := internal.NewProcessResult(target)
	sc := &scanner{tpl: p.tpl, target: target}

	for _, doc := range docs {
		if err := p.parseDocument(result, sc, doc); err != nil {
			return nil, err
		}
	}

	result.DetectedName = sc.detectedName
	return result, nil
}

func (p *Parser) parseDocument(result *internal.ProcessResult, sc *scanner, doc RosterPDF) error {
	src, err := p.opener.Open(doc.Data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLayout, doc.Name, err)
	}
	defer src.Close()

	for page := 1; page <= src.NumPages(); page++ {
		fragments, err := src.PageFragments(page)
		if err != nil {
			return fmt.Errorf("%w: %s page %d: %v", ErrLayout, doc.Name, page, err)
		}
		p.parsePage(result, sc, fragments, doc.Name)
	}
	return nil
}

// parsePage folds the per-line rules over one page. The page date is seeded
// from the first date token anywhere in the raw page text, so rosters that
// print the date once near the top still attribute their shifts.
func (p *Parser) parsePage(result *internal.ProcessResult, sc *scanner, fragments []internal.TextFragment, fileName string) {
	st := pageState{date: p.tpl.findDate(joinFragments(fragments))}
	for _, line := range reconstructLines(fragments) {
		if hit := sc.line(&st, line); hit != nil {
			recordShift(result, hit, fileName)
		}
	}
}

// recordShift appends a hit to its month bucket unless an extracted shift
// with the same date and time range is already there. The dedupe set spans
// the whole batch, so the same physical shift seen in two uploaded files (or
// on two pages of one file) lands only once.
func recordShift(result *internal.ProcessResult, hit *shiftHit, fileName string) {
	key := monthKey(hit.date)
	bucket := result.Months[key]
	if bucket == nil {
		bucket = &internal.MonthData{MonthYear: key}
		result.Months[key] = bucket
	}

	for _, s := range bucket.Shifts {
		if !s.IsManual && s.Date == hit.date && s.StartTime == hit.start && s.EndTime == hit.end {
			return
		}
	}

	bucket.Shifts = append(bucket.Shifts, internal.Shift{
		ID:        uuid.NewString(),
		Date:      hit.date,
		StartTime: hit.start,
		EndTime:   hit.end,
		Hours:     hit.hours,
		FileName:  fileName,
	})
	bucket.TotalHours = sumHours(bucket.Shifts)
}

// monthKey derives the MM/YYYY bucket key from a DD/MM/YYYY date. Anything
// that does not split into exactly three parts falls back to the catch-all
// "Geral" bucket.
func monthKey(date string) string {
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return "Geral"
	}
	return parts[1] + "/" + parts[2]
}

func sumHours(shifts []internal.Shift) float64 {
	total := 0.0
	for _, s := range shifts {
		total += s.Hours
	}
	return total
}
