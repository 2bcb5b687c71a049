package pipeline

import (
	"regexp"
	"strings"
)

var (
	parenGroupRe   = regexp.MustCompile(`\([^)]*\)`)
	registrationRe = regexp.MustCompile(`^\d[\d\-./]*$`)
)

// cleanName derives a display name from a roster line mentioning the target:
// registration numbers in parentheses go, a trailing " - role" annotation is
// cut, rank abbreviations and residual numerals are dropped token-wise, and
// the rest is collapsed to single-spaced uppercase.
func cleanName(line string, rankTokens []string) string {
	s := parenGroupRe.ReplaceAllString(line, " ")
	if i := strings.Index(s, " - "); i >= 0 {
		s = s[:i]
	}
	fields := strings.Fields(strings.ToUpper(s))

	single := map[string]struct{}{}
	var multi [][]string
	for _, tok := range rankTokens {
		parts := strings.Fields(strings.ToUpper(tok))
		switch len(parts) {
		case 0:
		case 1:
			single[parts[0]] = struct{}{}
		default:
			multi = append(multi, parts)
		}
	}

	kept := make([]string, 0, len(fields))
	for i := 0; i < len(fields); i++ {
		if n := multiRankAt(fields, i, multi); n > 0 {
			i += n - 1
			continue
		}
		if _, ok := single[fields[i]]; ok {
			continue
		}
		if registrationRe.MatchString(fields[i]) {
			continue
		}
		kept = append(kept, fields[i])
	}

	return strings.Join(kept, " ")
}

func multiRankAt(fields []string, i int, multi [][]string) int {
	for _, seq := range multi {
		if i+len(seq) > len(fields) {
			continue
		}
		match := true
		for j, part := range seq {
			if fields[i+j] != part {
				match = false
				break
			}
		}
		if match {
			return len(seq)
		}
	}
	return 0
}
