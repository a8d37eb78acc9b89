package layout

import "testing"

func TestTreeDepth(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{1, 1}, {2, 2}, {3, 2}, {4, 3}, {7, 3}, {8, 4}, {15, 4}, {16, 5},
		{1023, 10}, {1024, 11}, {524287, 19}, {524288, 20},
	}
	for _, c := range cases {
		if got := TreeDepth(c.n); got != c.want {
			t.Fatalf("TreeDepth(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestPaddedCount(t *testing.T) {
	if got := PaddedCount(4); got != 15 {
		t.Fatalf("PaddedCount(4) = %d, want 15", got)
	}
	if got := PaddedCount(0); got != 0 {
		t.Fatalf("PaddedCount(0) = %d, want 0", got)
	}
}

func TestPageDepth(t *testing.T) {
	if got := PageDepth(4096); got != 10 {
		t.Fatalf("PageDepth(4096) = %d, want 10", got)
	}
	if got := PageDepth(2 * 1024 * 1024); got != 19 {
		t.Fatalf("PageDepth(2MiB) = %d, want 19", got)
	}
}

func TestTopLevelSelection(t *testing.T) {
	pageDepth := 10
	if got := topLevel(2, pageDepth); got != LevelSIMD {
		t.Fatalf("topLevel(2) = %v, want SIMD", got)
	}
	if got := topLevel(4, pageDepth); got != LevelCacheLine {
		t.Fatalf("topLevel(4) = %v, want CacheLine", got)
	}
	if got := topLevel(5, pageDepth); got != LevelPage {
		t.Fatalf("topLevel(5) = %v, want Page", got)
	}
}
