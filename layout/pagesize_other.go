//go:build !unix

package layout

// systemPageSize degrades to the common 4KiB page size on platforms
// without a page-granularity allocation primitive. The tree stays
// correct; only the page-block alignment assumption becomes a
// conservative guess.
func systemPageSize() int {
	return 4096
}
