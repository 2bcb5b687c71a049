package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// Template is the vocabulary the parser keys on: label tokens, time-range
// connectors and the rank abbreviations stripped from detected names. The
// defaults cover the PMMG roster layout; a different roster format is
// supported by swapping the table, not the logic.
type Template struct {
	DateLabel  string   `toml:"date_label"`
	ShiftLabel string   `toml:"shift_label"`
	Connectors []string `toml:"connectors"`
	RankTokens []string `toml:"rank_tokens"`

	timeRange *regexp.Regexp
	date      *regexp.Regexp
}

var dateTokenRe = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)

func DefaultTemplate() Template {
	tpl := Template{
		DateLabel:  "DATA:",
		ShiftLabel: "TURNO:",
		Connectors: []string{"AS", "ÀS", "-", "A"},
		RankTokens: []string{
			"SD", "CB", "SGT", "TEN", "CAP", "MAJ", "CEL", "SUB",
			"1 CL", "2 CL", "3 CL", "CL", "1º", "2º", "3º",
			"AL", "CHO", "CFS",
		},
	}
	tpl.compile()
	return tpl
}

// LoadTemplate reads a TOML override file on top of the defaults. Fields left
// out of the file keep their default values.
func LoadTemplate(path string) (Template, error) {
	tpl := DefaultTemplate()
	if _, err := toml.DecodeFile(path, &tpl); err != nil {
		return Template{}, fmt.Errorf("load roster template %s: %w", path, err)
	}
	tpl.compile()
	return tpl, nil
}

func (t *Template) compile() {
	alts := make([]string, 0, len(t.Connectors))
	for _, c := range t.Connectors {
		alts = append(alts, regexp.QuoteMeta(c))
	}
	// A leading parenthesized time is a secondary annotation, e.g.
	// "(06:30:00)07:00:00 - 17:00:00", and is skipped.
	t.timeRange = regexp.MustCompile(
		`(?i)(?:\([\d:]{5,8}\))?(\d{2}[:h]\d{2}(?::\d{2})?)\s*(?:` +
			strings.Join(alts, "|") +
			`)\s*(\d{2}[:h]\d{2}(?::\d{2})?)`)
	t.date = dateTokenRe
}

func (t Template) findDate(line string) string {
	return t.date.FindString(line)
}

func (t Template) findTimeRange(line string) (start, end string, ok bool) {
	m := t.timeRange.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return normalizeClock(m[1]), normalizeClock(m[2]), true
}

// normalizeClock truncates seconds and maps the "07h00" spelling to "07:00".
func normalizeClock(raw string) string {
	if len(raw) > 5 {
		raw = raw[:5]
	}
	return strings.Replace(raw, "h", ":", 1)
}
