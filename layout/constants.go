// Package layout builds the hierarchically blocked memory image a
// blocktree.Tree queries against: a padded complete binary tree over a
// sorted key sequence, permuted so that SIMD-block, cache-line-block and
// page-block subtrees each occupy a single contiguous run of slots.
package layout

import "math"

const (
	// DepthSIMD is d_K: the depth of a SIMD block (2 tree levels).
	DepthSIMD = 2
	// KeysPerSIMDBlock is N_K = 2^DepthSIMD - 1.
	KeysPerSIMDBlock = (1 << DepthSIMD) - 1

	// DepthCacheLine is d_L: the depth of a cache-line block (4 tree levels).
	DepthCacheLine = 4
	// KeysPerCacheLineBlock is N_L = 2^DepthCacheLine - 1.
	KeysPerCacheLineBlock = (1 << DepthCacheLine) - 1

	// cacheLineBytes is the size a cache-line block must fit within.
	cacheLineBytes = 64

	// Sentinel pads incomplete subtrees. It compares greater than any
	// real int32 key, so traversal never selects a padded slot as a
	// predecessor.
	Sentinel int32 = math.MaxInt32
)
