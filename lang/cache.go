package lang

import (
	"sync"

	"github.com/zeebo/xxh3"
)

// progCache memoizes successful parses keyed by a content hash of the
// source. Programs are never mutated after parsing, so sharing one across
// callers is safe.
type progCache struct {
	m sync.Map // xxh3 hash -> *Program
}

var parseCache progCache

func (c *progCache) lookup(source string) (*Program, bool) {
	v, ok := c.m.Load(xxh3.HashString(source))
	if !ok {
		return nil, false
	}

	return v.(*Program), true
}

func (c *progCache) store(source string, prog *Program) {
	c.m.Store(xxh3.HashString(source), prog)
}

// ClearParseCache drops all memoized parse results.
func ClearParseCache() {
	parseCache.m.Clear()
}
