// Package tier slices a ranked sequence into the requested layer sizes.
package tier

import (
	"github.com/okian/orbit/internal/domain/scoring"
)

// Partition consumes entries from the front of the ranked sequence,
// one layer at a time, in the order the sizes are given. When entries
// run short a layer receives fewer than requested, down to empty;
// partitioning never fails. Rank order is preserved within each layer
// and across layers.
func Partition(entries []scoring.Tally, sizes []int) [][]scoring.Tally {
	layers := make([][]scoring.Tally, len(sizes))
	cursor := 0
	for i, size := range sizes {
		if size < 0 {
			size = 0
		}
		end := cursor + size
		if end > len(entries) {
			end = len(entries)
		}
		layer := make([]scoring.Tally, end-cursor)
		copy(layer, entries[cursor:end])
		layers[i] = layer
		cursor = end
	}
	return layers
}

// Sum returns the total entry count a layer request asks for.
func Sum(sizes []int) int {
	total := 0
	for _, size := range sizes {
		total += size
	}
	return total
}
