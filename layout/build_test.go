package layout

import (
	"testing"
)

func sortedKeys(n int) []int32 {
	keys := make([]int32, n)
	for i := range keys {
		keys[i] = int32(i * 2)
	}
	return keys
}

func TestBuildRankMapIsBijection(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 7, 8, 15, 16, 17, 100, 1023, 1024} {
		t.Run("", func(t *testing.T) {
			keys := sortedKeys(n)
			lay, err := Build(keys)
			if err != nil {
				t.Fatalf("Build(%d keys) failed: %v", n, err)
			}
			defer lay.Close()

			seen := NewBitset(n)
			padded := 0
			for _, r := range lay.Rank {
				if int(r) == n {
					padded++
					continue
				}
				if seen.Get(int(r)) {
					t.Fatalf("rank %d reported by more than one layout position", r)
				}
				seen.Set(int(r))
			}
			if !seen.AllSet() {
				t.Fatalf("rank map does not cover every sorted index for n=%d", n)
			}
			if want := PaddedCount(lay.Depth) - n; padded != want {
				t.Fatalf("padded slot count = %d, want %d", padded, want)
			}
		})
	}
}

func TestBuildImageMatchesKeysAtRealRanks(t *testing.T) {
	for _, n := range []int{1, 3, 4, 15, 16, 100, 1023} {
		keys := sortedKeys(n)
		lay, err := Build(keys)
		if err != nil {
			t.Fatalf("Build(%d keys) failed: %v", n, err)
		}
		for p, r := range lay.Rank {
			if int(r) == n {
				if lay.Image[p] != Sentinel {
					t.Fatalf("n=%d: padded position %d holds %d, want Sentinel", n, p, lay.Image[p])
				}
				continue
			}
			if lay.Image[p] != keys[r] {
				t.Fatalf("n=%d: position %d holds %d, want K[%d]=%d", n, p, lay.Image[p], r, keys[r])
			}
		}
		lay.Close()
	}
}

func TestBuildRejectsEmptyInput(t *testing.T) {
	if _, err := Build(nil); err == nil {
		t.Fatalf("Build(nil) should fail")
	}
}

func TestBuildCompactnessAcrossBlockBoundaries(t *testing.T) {
	// Sizes one below/above each block-depth boundary.
	for _, n := range []int{3, 4, 15, 16} {
		keys := sortedKeys(n)
		lay, err := Build(keys)
		if err != nil {
			t.Fatalf("Build(%d keys) failed: %v", n, err)
		}
		if got := len(lay.Image); got != PaddedCount(lay.Depth) {
			t.Fatalf("n=%d: image length = %d, want %d", n, got, PaddedCount(lay.Depth))
		}
		if got := len(lay.Rank); got != len(lay.Image) {
			t.Fatalf("n=%d: rank map length %d != image length %d", n, got, len(lay.Image))
		}
		lay.Close()
	}
}
