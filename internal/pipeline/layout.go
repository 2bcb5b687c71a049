package pipeline

import (
	"math"
	"sort"
	"strings"

	"escala/internal"
)

// reconstructLines rebuilds the visual rows of a page from its unordered text
// fragments. Fragments whose vertical coordinate rounds to the same integer
// belong to one row; rows come out top to bottom (PDF y grows upward), and
// fragments within a row left to right. Two distinct rows landing in the same
// rounded bucket on very dense layouts get merged; that is an accepted
// limitation of the heuristic.
func reconstructLines(fragments []internal.TextFragment) []string {
	buckets := map[int][]internal.TextFragment{}
	for _, f := range fragments {
		y := int(math.Round(f.Y))
		buckets[y] = append(buckets[y], f)
	}

	ys := make([]int, 0, len(buckets))
	for y := range buckets {
		ys = append(ys, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	out := make([]string, 0, len(ys))
	for _, y := range ys {
		row := buckets[y]
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		parts := make([]string, 0, len(row))
		for _, f := range row {
			parts = append(parts, f.Text)
		}
		out = append(out, strings.Join(parts, " "))
	}
	return out
}

// joinFragments concatenates fragment strings in provider order, used for the
// whole-page date scan before any row ordering is applied.
func joinFragments(fragments []internal.TextFragment) string {
	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		parts = append(parts, f.Text)
	}
	return strings.Join(parts, " ")
}
