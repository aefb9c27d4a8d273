package server

import (
	"github.com/puzpuzpuz/xsync/v4"
)

// Operation names for request counters and stats output.
const (
	opTree         = "tree"
	opCreateFolder = "create_folder"
	opDeleteFolder = "delete_folder"
	opAddFile      = "add_file"
	opDeleteFile   = "delete_file"
	opLookupFile   = "lookup_file"
	opSearch       = "search"
	opListBin      = "list_recycle_bin"
	opRestore      = "restore"
	opPurge        = "purge"
	opEmptyBin     = "empty_recycle_bin"
	opStatsRead    = "stats"
)

var opNames = []string{
	opTree, opCreateFolder, opDeleteFolder, opAddFile, opDeleteFile,
	opLookupFile, opSearch, opListBin, opRestore, opPurge, opEmptyBin,
	opStatsRead,
}

// opStats tracks per-operation request counts. Counters are bumped outside
// the catalog lock on every request, so they use xsync's striped counters
// instead of piggybacking on the catalog's mutex.
type opStats struct {
	ops *xsync.Map[string, *xsync.Counter]
}

func newOpStats() *opStats {
	ops := xsync.NewMap[string, *xsync.Counter]()
	for _, name := range opNames {
		ops.Store(name, xsync.NewCounter())
	}
	return &opStats{ops: ops}
}

func (s *opStats) inc(op string) {
	if c, ok := s.ops.Load(op); ok {
		c.Inc()
	}
}

func (s *opStats) snapshot() map[string]int64 {
	out := make(map[string]int64, len(opNames))
	s.ops.Range(func(name string, c *xsync.Counter) bool {
		out[name] = c.Value()
		return true
	})
	return out
}
