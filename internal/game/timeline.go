package game

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// timelineSize is how many decisions the end-of-game recap shows.
const timelineSize = 8

// Timeline picks the most impactful decisions from log: the top entries by
// summed absolute effect magnitude, then re-ordered by turn for display.
// Ties keep log order.
func Timeline(log []DecisionEntry) []DecisionEntry {
	ranked := slices.Clone(log)
	slices.SortStableFunc(ranked, func(a, b DecisionEntry) int {
		return cmp.Compare(ImpactMagnitude(b.Impact), ImpactMagnitude(a.Impact))
	})
	if len(ranked) > timelineSize {
		ranked = ranked[:timelineSize]
	}
	slices.SortStableFunc(ranked, func(a, b DecisionEntry) int {
		return cmp.Compare(a.Turn, b.Turn)
	})
	return ranked
}

// ImpactMagnitude sums |delta| over an impact string such as
// "Money -25, Stress +5". Unparseable parts count as zero.
func ImpactMagnitude(impact string) int {
	total := 0
	for _, part := range strings.Split(impact, ",") {
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		n, err := strconv.Atoi(fields[len(fields)-1])
		if err != nil {
			continue
		}
		if n < 0 {
			n = -n
		}
		total += n
	}
	return total
}
