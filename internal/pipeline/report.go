package pipeline

import (
	"sort"
	"strconv"
	"strings"

	"escala/internal"
)

// MonthReport is one month bucket with its quota balance attached.
type MonthReport struct {
	internal.MonthData
	Goal    float64
	Balance float64
}

// BuildReport orders the result's months newest first (the Geral catch-all
// sorts last) and computes the credit/debit balance of each against the
// monthly goal.
func BuildReport(result *internal.ProcessResult, goalHours float64) []MonthReport {
	out := make([]MonthReport, 0, len(result.Months))
	for _, month := range result.Months {
		out = append(out, MonthReport{
			MonthData: *month,
			Goal:      goalHours,
			Balance:   month.TotalHours - goalHours,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return monthSortKey(out[i].MonthYear) > monthSortKey(out[j].MonthYear)
	})
	return out
}

// monthSortKey linearizes MM/YYYY for ordering; unparseable keys get zero
// and end up last in the newest-first order.
func monthSortKey(monthYear string) int {
	parts := strings.Split(monthYear, "/")
	if len(parts) != 2 {
		return 0
	}
	m, err1 := strconv.Atoi(parts[0])
	y, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return 0
	}
	return y*12 + m
}
