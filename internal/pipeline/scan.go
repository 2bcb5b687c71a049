package pipeline

import (
	"strconv"
	"strings"
)

// shiftContext is the most recently parsed duty time-range on the current
// page. It carries forward across lines until a later TURNO line replaces it.
type shiftContext struct {
	start string
	end   string
	hours float64
}

// pageState is the parsing context threaded through the line fold of a single
// page. It never survives a page boundary.
type pageState struct {
	date  string
	shift *shiftContext
}

// shiftHit is a target match that had both an active shift context and a
// known date, ready for aggregation.
type shiftHit struct {
	date  string
	start string
	end   string
	hours float64
}

// scanner applies the per-line rules for one parse run. detectedName is
// filled from the first line that matches the target and kept as-is after.
type scanner struct {
	tpl          Template
	target       string
	detectedName string
}

func (s *scanner) line(st *pageState, text string) *shiftHit {
	upper := strings.ToUpper(text)

	if date := s.tpl.findDate(text); date != "" {
		if strings.Contains(upper, s.tpl.DateLabel) {
			// An explicit date annotation starts a new date region and
			// overrides whatever was in effect before it.
			st.date = date
		} else if st.date == "" {
			st.date = date
		}
	}

	if strings.Contains(upper, s.tpl.ShiftLabel) {
		if start, end, ok := s.tpl.findTimeRange(text); ok {
			st.shift = &shiftContext{start: start, end: end, hours: elapsedHours(start, end)}
		}
		// A TURNO line that fails the pattern keeps the prior context.
	}

	if s.target != "" && strings.Contains(upper, s.target) {
		if s.detectedName == "" {
			s.detectedName = cleanName(text, s.tpl.RankTokens)
		}
		if st.shift != nil && st.date != "" {
			return &shiftHit{date: st.date, start: st.shift.start, end: st.shift.end, hours: st.shift.hours}
		}
	}

	return nil
}

// elapsedHours is the decimal-hour span between two HH:MM clock times. A
// non-positive span means the shift crosses midnight and gains a day; equal
// times count as a full 24h service.
func elapsedHours(start, end string) float64 {
	h1, m1 := splitClock(start)
	h2, m2 := splitClock(end)
	diff := (float64(h2) + float64(m2)/60) - (float64(h1) + float64(m1)/60)
	if diff <= 0 {
		diff += 24
	}
	return diff
}

func splitClock(v string) (int, int) {
	parts := strings.SplitN(v, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m := 0
	if len(parts) > 1 {
		m, _ = strconv.Atoi(parts[1])
	}
	return h, m
}
