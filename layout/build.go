package layout

import "fmt"

// Layout is the result of Build: the padded, hierarchically blocked
// memory image, the rank map tying layout positions back to sorted
// indices, and the retained sorted key copy the resolver needs for its
// bounded forward scan.
type Layout struct {
	Image []int32 // length T, owned by buf
	Rank  []int32 // length T, parallel to Image; Rank[p] == N means padded
	Keys  []int32 // length N, the retained sorted key copy
	Depth int     // D
	N     int

	buf *AlignedBuffer
}

// Close releases the layout image's backing allocation.
func (l *Layout) Close() error {
	if l.buf == nil {
		return nil
	}
	return l.buf.Close()
}

// Build lays out the sorted key sequence keys into the hierarchically
// blocked permutation described in the package doc comment. keys must
// be non-decreasing; Build does not verify this (out of contract).
func Build(keys []int32) (lay *Layout, err error) {
	n := len(keys)
	if n == 0 {
		return nil, fmt.Errorf("layout: empty key sequence")
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("layout: allocation failed: %v", r)
			lay = nil
		}
	}()

	depth := TreeDepth(n)
	t := PaddedCount(depth)
	pageDepth := PageDepth(systemPageSize())

	buf, err := NewAlignedBuffer(t, depth)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	keysCopy := make([]int32, n)
	copy(keysCopy, keys)

	rank := make([]int32, t)
	ranks := inOrderRanks(depth)

	emit(topLevel(depth, pageDepth), 0, depth, 0, pageDepth, buf.Int32, rank, ranks, keysCopy, n)

	return &Layout{
		Image: buf.Int32,
		Rank:  rank,
		Keys:  keysCopy,
		Depth: depth,
		N:     n,
		buf:   buf,
	}, nil
}

// inOrderRanks computes, for every BFS index b in [0, 2^depth-1), the
// in-order rank of b within the conceptual complete binary tree of the
// given depth. This is a pure function of the tree's shape: it does
// not know about real keys vs. sentinel padding, only about the shape
// invariant "in-order traversal visits 0, 1, 2, ... in order."
func inOrderRanks(depth int) []int32 {
	t := PaddedCount(depth)
	out := make([]int32, t)
	counter := int32(0)
	var walk func(b int)
	walk = func(b int) {
		if b >= t {
			return
		}
		walk(2*b + 1)
		out[b] = counter
		counter++
		walk(2*b + 2)
	}
	walk(0)
	return out
}

// emit recursively writes the subtree rooted at the BFS index root,
// which has the given remaining depth, into img/rnk starting at pos.
// lvl names the current blocking level; pageDepth is d_P for this
// build. ranks maps BFS index to conceptual in-order rank; keys/n are
// the sorted input.
func emit(lvl Level, root, depth, pos, pageDepth int, img []int32, rnk []int32, ranks []int32, keys []int32, n int) {
	if depth <= DepthSIMD {
		emitBase(root, depth, pos, img, rnk, ranks, keys, n)
		return
	}

	delta := subDepth(lvl, pageDepth)
	if delta > depth {
		delta = depth
	}

	emit(finer(lvl), root, delta, pos, pageDepth, img, rnk, ranks, keys, n)

	topSize := PaddedCount(delta)
	childDepth := depth - delta
	if childDepth == 0 {
		return
	}
	childSize := PaddedCount(childDepth)
	numChildren := 1 << uint(delta)
	p := pos + topSize
	for k := 0; k < numChildren; k++ {
		childRoot := (root+1)<<uint(delta) - 1 + k
		emit(lvl, childRoot, childDepth, p, pageDepth, img, rnk, ranks, keys, n)
		p += childSize
	}
}

// emitBase writes a subtree of depth 0, 1, or 2 (the SIMD block's
// terminal case: 0, 1, or 3 nodes in BFS order) directly.
func emitBase(root, depth, pos int, img []int32, rnk []int32, ranks []int32, keys []int32, n int) {
	switch depth {
	case 0:
		return
	case 1:
		writeNode(root, pos, img, rnk, ranks, keys, n)
	case 2:
		writeNode(root, pos, img, rnk, ranks, keys, n)
		writeNode(2*root+1, pos+1, img, rnk, ranks, keys, n)
		writeNode(2*root+2, pos+2, img, rnk, ranks, keys, n)
	}
}

func writeNode(bfsIdx, pos int, img []int32, rnk []int32, ranks []int32, keys []int32, n int) {
	r := int(ranks[bfsIdx])
	if r < n {
		img[pos] = keys[r]
		rnk[pos] = int32(r)
	} else {
		img[pos] = Sentinel
		rnk[pos] = int32(n)
	}
}
