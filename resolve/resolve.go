// Package resolve turns a traversal cursor into a sorted-array index,
// using the layout's rank map to seed a lower bound and a short
// forward scan over the retained sorted keys to settle duplicate runs
// and block-boundary off-by-ones.
package resolve

import "github.com/TomTonic/blocktree/traverse"

// Predecessor converts cur into the sorted-array index of the largest
// key <= q. rank and keys are the layout's rank map and retained
// sorted key copy; n is the key count. The scan only moves forward, so
// the result is the predecessor only for K[0] <= q < K[n-1]; the caller
// handles the two boundary cases first, as Tree.SearchPredecessor does.
func Predecessor(cur traverse.Cursor, rank []int32, keys []int32, n int, q int32) int64 {
	var initial int64
	var maxSteps int

	switch cur.BlockType {
	case traverse.SIMDBlock:
		o := cur.Offset
		switch cur.ChildIndex {
		case 0:
			initial = int64(rank[o+1]) - 1
		case 1:
			initial = int64(rank[o+1])
		case 2:
			initial = int64(rank[o])
		case 3:
			initial = int64(rank[o+2])
		}
		maxSteps = 3
	case traverse.SingleBlock:
		o := cur.Offset
		switch cur.ChildIndex {
		case 0:
			initial = int64(rank[o]) - 1
		case 1:
			initial = int64(rank[o])
		}
		maxSteps = 2
	}

	if initial < -1 {
		initial = -1
	}
	if initial > int64(n-1) {
		initial = int64(n - 1)
	}

	for step := 0; step < maxSteps; step++ {
		next := initial + 1
		if next >= int64(n) {
			break
		}
		if keys[next] <= q {
			initial = next
		} else {
			break
		}
	}

	return initial
}
