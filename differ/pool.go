package differ

import "sync"

// Largest LCS table kept for reuse (about a 1000 x 1000 line diff).
const maxPooledTable = 1 << 20

var tablePool = sync.Pool{
	New: func() any {
		s := make([]int, 0, 1024)
		return &s
	},
}

// getTable returns a zeroed table of length size.
func getTable(size int) *[]int {
	s := tablePool.Get().(*[]int)
	if cap(*s) < size {
		*s = make([]int, size)
		return s
	}
	*s = (*s)[:size]
	clear(*s)
	return s
}

func putTable(s *[]int) {
	if s == nil || cap(*s) > maxPooledTable {
		return
	}
	tablePool.Put(s)
}
