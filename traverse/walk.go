package traverse

const (
	depthSIMD        = 2
	keysPerSIMDBlock = (1 << depthSIMD) - 1
)

// Walk traverses image (a layout image of the given tree depth) for
// query q, processing one SIMD block per two tree levels and one
// single-key node for a final odd level. It performs at most
// ceil(depth/depthSIMD) iterations and touches no memory outside
// image.
//
// Callers are expected to have already handled the boundary
// short-circuit (q below the first key, or at/above the last) before
// calling Walk; the traversal engine only ever sees the layout image,
// never the original key sequence.
func Walk(image []int32, depth int, q int32) Cursor {
	offset := 0
	remaining := depth

	for {
		if remaining >= depthSIMD {
			root, left, right := image[offset], image[offset+1], image[offset+2]
			c := classify(q, root, left, right)

			next := remaining - depthSIMD
			if next == 0 {
				return Cursor{Offset: offset, ChildIndex: c, BlockType: SIMDBlock}
			}
			offset = offset + keysPerSIMDBlock + int(c)*((1<<uint(next))-1)
			remaining = next
			continue
		}

		// remaining == 1: single-key step.
		var c int8
		if q > image[offset] {
			c = 1
		}
		return Cursor{Offset: offset, ChildIndex: c, BlockType: SingleBlock}
	}
}
