package layout

import (
	"fmt"
	"os"
	"unsafe"

	mmap "github.com/edsrzf/mmap-go"
)

// trailingBytes pads every allocation so that an unaligned 128-bit
// load from any SIMD-block position stays in bounds.
const trailingBytes = 16

// AlignedBuffer owns the backing allocation for a layout image: either
// a page-aligned mapping of a temporary file (via mmap-go, for trees deep enough
// to contain a page block) or a heap slice manually trimmed to a
// 64-byte boundary. Int32 is the usable view; Close releases whatever
// was allocated underneath it.
type AlignedBuffer struct {
	Int32 []int32

	mm   mmap.MMap
	file *os.File
	raw  []byte
}

// NewAlignedBuffer allocates room for count int32 slots, aligned to a
// page boundary when depth exceeds DepthCacheLine (i.e. the tree
// contains at least one page block), else to a 64-byte boundary.
func NewAlignedBuffer(count, depth int) (*AlignedBuffer, error) {
	if depth > DepthCacheLine {
		if buf, err := newPageAlignedBuffer(count); err == nil {
			return buf, nil
		}
		// Page-granularity allocation unavailable on this platform;
		// degrade silently to 64-byte alignment.
	}
	return newCacheLineAlignedBuffer(count)
}

func newPageAlignedBuffer(count int) (*AlignedBuffer, error) {
	size := count*4 + trailingBytes
	f, err := os.CreateTemp("", "blocktree-layout-*")
	if err != nil {
		return nil, fmt.Errorf("create backing file: %w", err)
	}
	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("size backing file: %w", err)
	}
	m, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("mmap backing file: %w", err)
	}
	return &AlignedBuffer{
		Int32: unsafe.Slice((*int32)(unsafe.Pointer(&m[0])), count),
		mm:    m,
		file:  f,
	}, nil
}

func newCacheLineAlignedBuffer(count int) (*AlignedBuffer, error) {
	size := count*4 + trailingBytes
	raw := make([]byte, size+cacheLineBytes-1)
	start := uintptr(unsafe.Pointer(&raw[0]))
	pad := (cacheLineBytes - int(start%cacheLineBytes)) % cacheLineBytes
	return &AlignedBuffer{
		Int32: unsafe.Slice((*int32)(unsafe.Pointer(&raw[pad])), count),
		raw:   raw,
	}, nil
}

// Close releases the backing allocation. Safe to call once; a second
// call is a no-op.
func (b *AlignedBuffer) Close() error {
	if b.mm == nil {
		return nil
	}
	mm, file := b.mm, b.file
	b.mm, b.file, b.Int32 = nil, nil, nil
	if err := mm.Unmap(); err != nil {
		file.Close()
		os.Remove(file.Name())
		return fmt.Errorf("unmap layout image: %w", err)
	}
	if err := file.Close(); err != nil {
		os.Remove(file.Name())
		return fmt.Errorf("close layout backing file: %w", err)
	}
	return os.Remove(file.Name())
}
