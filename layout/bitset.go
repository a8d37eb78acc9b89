package layout

import "math/bits"

// Bitset is a dynamic-length presence bitmap: one bit per index,
// stored as 64-bit words. It is not on the query path; the builder's
// tests use it, one bit per sorted index, to confirm that the rank map
// written by build.go names every sorted index exactly once.
type Bitset struct {
	words []uint64
	n     int
}

// NewBitset allocates a Bitset able to address indices [0, n).
func NewBitset(n int) *Bitset {
	return &Bitset{
		words: make([]uint64, (n+63)/64),
		n:     n,
	}
}

func (b *Bitset) Get(i int) bool {
	return (b.words[i>>6] & (1 << uint(i&0x3F))) != 0
}

func (b *Bitset) Set(i int) {
	b.words[i>>6] |= 1 << uint(i&0x3F)
}

func (b *Bitset) Clear(i int) {
	b.words[i>>6] &^= 1 << uint(i&0x3F)
}

// Len returns the number of addressable indices.
func (b *Bitset) Len() int { return b.n }

// PopCount returns the number of set bits.
func (b *Bitset) PopCount() int {
	count := 0
	for _, w := range b.words {
		count += bits.OnesCount64(w)
	}
	return count
}

// AllSet reports whether every index in [0, Len()) is set.
func (b *Bitset) AllSet() bool {
	return b.PopCount() == b.n
}
