// Package rank orders tallies by descending total and truncates to the
// requested size.
package rank

import (
	"sort"

	"github.com/okian/orbit/internal/domain/scoring"
)

// Top sorts tallies by total descending and returns at most max of
// them. Equal totals break ties by ascending account id so repeated
// runs over identical inputs produce identical output. A max larger
// than the input returns everything; a non-positive max returns an
// empty slice. The input slice is not modified.
func Top(tallies []scoring.Tally, max int) []scoring.Tally {
	if max <= 0 {
		return []scoring.Tally{}
	}

	sorted := make([]scoring.Tally, len(tallies))
	copy(sorted, tallies)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Total != sorted[j].Total {
			return sorted[i].Total > sorted[j].Total
		}
		return sorted[i].ID < sorted[j].ID
	})

	if max > len(sorted) {
		max = len(sorted)
	}
	return sorted[:max]
}
