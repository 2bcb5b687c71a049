package util

import (
	"fmt"
	"math"
)

// FormatHours renders a decimal hour count as "8h 30min", keeping the sign.
func FormatHours(hours float64) string {
	sign := ""
	if hours < 0 {
		sign = "-"
	}
	abs := math.Abs(hours)
	h := int(abs)
	m := int(math.Round((abs - float64(h)) * 60))
	if m == 60 {
		h++
		m = 0
	}
	return fmt.Sprintf("%s%dh %dmin", sign, h, m)
}

func StringPtr(v string) *string { return &v }

func FloatPtr(v float64) *float64 { return &v }
