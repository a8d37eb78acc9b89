package layout

import "math/bits"

// Level names the blocking granularity currently being emitted.
type Level byte

const (
	LevelSIMD Level = iota
	LevelCacheLine
	LevelPage
)

func (l Level) String() string {
	switch l {
	case LevelSIMD:
		return "SIMD"
	case LevelCacheLine:
		return "CacheLine"
	case LevelPage:
		return "Page"
	default:
		return "Unknown"
	}
}

// subDepth returns delta_l, the characteristic depth of one block at
// level l. pageDepth is d_P, computed once per Build call from the
// runtime page size.
func subDepth(l Level, pageDepth int) int {
	switch l {
	case LevelCacheLine:
		return DepthCacheLine
	case LevelPage:
		return pageDepth
	default:
		return DepthSIMD
	}
}

// finer returns the next finer blocking level (page -> cache-line ->
// SIMD). SIMD has no finer level; finer(SIMD) is never dereferenced
// because the depth<=DepthSIMD base case is always checked first.
func finer(l Level) Level {
	switch l {
	case LevelPage:
		return LevelCacheLine
	case LevelCacheLine:
		return LevelSIMD
	default:
		return LevelSIMD
	}
}

// topLevel picks the coarsest blocking level that still fits a tree of
// the given depth: SIMD if depth <= d_K, cache-line if depth <= d_L,
// page otherwise.
func topLevel(depth, pageDepth int) Level {
	switch {
	case depth <= DepthSIMD:
		return LevelSIMD
	case depth <= DepthCacheLine:
		return LevelCacheLine
	default:
		return LevelPage
	}
}

// TreeDepth returns D = ceil(log2(n+1)), the depth of the padded
// complete binary tree needed to hold n keys.
func TreeDepth(n int) int {
	if n <= 0 {
		return 0
	}
	return bits.Len(uint(n))
}

// PaddedCount returns T = 2^depth - 1, the node count of a complete
// binary tree of the given depth.
func PaddedCount(depth int) int {
	if depth <= 0 {
		return 0
	}
	return (1 << uint(depth)) - 1
}

// PageDepth returns the largest d_P such that (2^d_P - 1) * 4 bytes
// fits within pageSize: the page block depth derived from the
// runtime page size (d_P = 10 for 4KiB pages, 19 for 2MiB huge pages).
func PageDepth(pageSize int) int {
	d := DepthCacheLine
	for ((1<<uint(d+1))-1)*4 <= pageSize {
		d++
	}
	return d
}
