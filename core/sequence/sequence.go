// Package sequence linearizes text lines across source regions into the
// single reading order of the output document.
package sequence

import (
	"sort"

	"github.com/federicogaviriaz/PGM-XIII-AMS76/core/annot"
)

// Lines returns the lines sorted by the composite key
// (RegionOrder, LineOrder, ID) ascending. Regions and lines without a
// declared reading-order index carry annot.Unordered and therefore sort
// after all declared ones. The sort is stable and the input slice is not
// mutated.
func Lines(lines []annot.TextLine) []annot.TextLine {
	out := make([]annot.TextLine, len(lines))
	copy(out, lines)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RegionOrder != out[j].RegionOrder {
			return out[i].RegionOrder < out[j].RegionOrder
		}
		if out[i].LineOrder != out[j].LineOrder {
			return out[i].LineOrder < out[j].LineOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}
