package analytics

import (
	"math"
	"strconv"
)

// safeAmount is the single coercion point for monetary values read from
// upstream rows. NULLs scan as 0 already; NaN, infinities and negative
// amounts are clamped to 0 so that no aggregate ever sees a bogus value.
func safeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// formatFC renders an amount the way the registration desk reads it:
// thousands grouped with spaces, no decimals, FC suffix ("1 200 FC").
func formatFC(v float64) string {
	return groupThousands(v) + " FC"
}

func groupThousands(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.FormatInt(n, 10)

	var out []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, d)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
