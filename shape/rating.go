package shape

import (
	"math"
	"strconv"
	"strings"
)

// NormalizeRating5 maps a raw rating string onto the [0, 5] scale. The
// source data carries ratings on a 0-5, 0-10, or 0-100 scale without
// documenting which, so the scale is detected by threshold: values at most
// 5 pass through, values at most 10 are halved, values at most 100 are
// scaled by 5/100. The result is clamped into range. The mapping is
// monotonic within each detected scale but discontinuous at the scale
// boundaries (6 maps to 3, below 5's mapping of 5). This is a best-effort
// heuristic pending clarification of the upstream scale.
//
// A non-numeric value returns ok == false, meaning "no rating": callers
// omit the stars entirely rather than drawing them empty.
func NormalizeRating5(raw string) (rating float64, ok bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	switch {
	case v <= 5:
		// unchanged
	case v <= 10:
		v /= 2
	case v <= 100:
		v *= 5.0 / 100
	default:
		v = 5
	}

	return math.Max(0, math.Min(5, v)), true
}
