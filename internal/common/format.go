// Package common provides shared utilities for AShareScope
package common

import (
	"fmt"
	"math"
	"strconv"
)

// SignedPct formats a percentage with an explicit sign, e.g. "+5.20%".
func SignedPct(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// GroupInt rounds v to the nearest integer and formats it with comma
// grouping, e.g. 12345678.9 -> "12,345,679".
func GroupInt(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}

	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		var out []byte
		for i, c := range []byte(s) {
			if i > 0 && (len(s)-i)%3 == 0 {
				out = append(out, ',')
			}
			out = append(out, c)
		}
		s = string(out)
	}

	if neg {
		return "-" + s
	}
	return s
}

// TruncateRunes shortens s to at most n runes. Sheet names carry
// multi-byte characters, so byte slicing would split them.
func TruncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
