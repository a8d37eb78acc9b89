// Package blocktree is an in-memory, immutable ordered search
// structure over a static, sorted []int32. It answers predecessor
// queries ("largest key <= q") and lower-bound queries ("smallest key
// >= q") by mapping the query to an index into the original sorted
// array.
//
// The key set is bulk-built once via New and then queried many times.
// Query latency is dominated by cache and TLB behavior rather than
// comparison cost: New lays the keys out into a hierarchically
// blocked memory image (package layout) so that a predecessor query
// walks that image top-down using one branch-free comparison per two
// tree levels (package traverse) and finishes with a bounded forward
// scan (package resolve) instead of a second full binary search.
//
// Concurrency: a *Tree is immutable after New returns. Multiple
// goroutines may call its query methods concurrently without
// synchronization, provided the program has a happens-before edge
// between New and the first query (true of any data-race-free Go
// program).
package blocktree

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/TomTonic/blocktree/layout"
	"github.com/TomTonic/blocktree/resolve"
	"github.com/TomTonic/blocktree/traverse"
)

// ErrInvalidInput is returned by New when the input key sequence is
// empty.
var ErrInvalidInput = errors.New("blocktree: input key sequence is empty")

// ErrOutOfMemory is returned by New when the layout image, rank map,
// or sorted key copy could not be allocated.
var ErrOutOfMemory = errors.New("blocktree: allocation failed")

// Tree is an immutable ordered search structure over a sorted
// []int32. The zero value is not usable; construct one with New.
type Tree struct {
	lay *layout.Layout

	closeOnce sync.Once
}

// New bulk-builds a Tree over the sorted key sequence keys. keys must
// be non-decreasing (duplicates are permitted); ill-ordered input is
// out of contract and not detected. New fails with ErrInvalidInput if
// keys is empty, or with ErrOutOfMemory if any of the tree's three
// owned allocations (layout image, rank map, sorted key copy) could
// not be satisfied. On failure no partial state is retained.
func New(keys []int32) (*Tree, error) {
	if len(keys) == 0 {
		return nil, ErrInvalidInput
	}

	lay, err := layout.Build(keys)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutOfMemory, err)
	}

	t := &Tree{lay: lay}
	runtime.SetFinalizer(t, func(t *Tree) { t.Close() })
	return t, nil
}

// Close releases the Tree's owned allocations (notably the layout
// image, which may be backed by an OS mapping rather than GC-managed
// memory). It is safe to call Close more than once; only the first
// call has effect.
func (t *Tree) Close() error {
	var err error
	t.closeOnce.Do(func() {
		err = t.lay.Close()
		runtime.SetFinalizer(t, nil)
	})
	return err
}

// Size returns N, the number of keys in the tree.
func (t *Tree) Size() int {
	return t.lay.N
}

// KeyAt returns K[i], the i-th key of the original sorted sequence.
// i must be in [0, Size()).
func (t *Tree) KeyAt(i int) int32 {
	return t.lay.Keys[i]
}

// SearchPredecessor returns the largest index r such that K[r] <= q,
// or -1 if q < K[0]. Query results are a deterministic function of the
// tree and q alone; SearchPredecessor allocates nothing and performs
// no I/O.
func (t *Tree) SearchPredecessor(q int32) int64 {
	n := t.lay.N
	keys := t.lay.Keys

	// Boundary short-circuit: avoids handing the resolver edge cases
	// the sentinel-padded tree already implies.
	if q < keys[0] {
		return -1
	}
	if q >= keys[n-1] {
		return int64(n - 1)
	}

	cur := traverse.Walk(t.lay.Image, t.lay.Depth, q)
	return resolve.Predecessor(cur, t.lay.Rank, keys, n, q)
}

// SearchLowerBound returns the smallest index r such that K[r] >= q,
// or N if q > K[N-1]. This performs a plain binary search over the
// retained sorted key copy rather than routing through the blocked
// traversal: the predecessor path pays for the blocked layout's cache
// locality on large trees, but lower-bound is a derivative operation
// where the simpler code path is preferred.
func (t *Tree) SearchLowerBound(q int32) int64 {
	keys := t.lay.Keys
	i := sort.Search(len(keys), func(i int) bool { return keys[i] >= q })
	return int64(i)
}
