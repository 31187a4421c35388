// SPDX-License-Identifier: MIT

package grid

import "slices"

// RelatedParts groups the parts connected through neighbor boxes, in either
// direction. Each group lists part numbers in increasing order; groups are
// ordered by their smallest part. A part without neighbors forms its own
// group.
//
// Time:   O(P + N) for P parts and N neighbor declarations.
// Memory: O(P + N).
func (t *Topology) RelatedParts() [][]int {
	adj := make([][]int, t.NParts)
	for _, n := range t.Neighbors {
		adj[n.Part] = append(adj[n.Part], n.NborPart)
		adj[n.NborPart] = append(adj[n.NborPart], n.Part)
	}

	seen := make([]bool, t.NParts)
	var groups [][]int
	for p0 := 0; p0 < t.NParts; p0++ {
		if seen[p0] {
			continue
		}
		// BFS to collect the group
		queue := []int{p0}
		seen[p0] = true
		for qi := 0; qi < len(queue); qi++ {
			for _, q := range adj[queue[qi]] {
				if !seen[q] {
					seen[q] = true
					queue = append(queue, q)
				}
			}
		}
		slices.Sort(queue)
		groups = append(groups, queue)
	}

	return groups
}
