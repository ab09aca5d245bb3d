package subset

import (
	"encoding/binary"
	"sync"

	"github.com/npillmayer/outline/ot"
)

// TableCache holds sanitized copies of the raw tables of a source font.
// Tables are checked once, on first access. A TableCache may be shared
// between concurrent subsetting runs of the same source font.
type TableCache struct {
	mu     sync.Mutex
	font   *ot.Font
	tables map[ot.Tag]cachedTable
}

type cachedTable struct {
	data []byte
	ok   bool
}

// NewTableCache creates a table cache for a source font.
func NewTableCache(font *ot.Font) *TableCache {
	return &TableCache{
		font:   font,
		tables: make(map[ot.Tag]cachedTable),
	}
}

// Font returns the source font of the cache.
func (c *TableCache) Font() *ot.Font {
	return c.font
}

// Table returns the bytes of a table of the source font. It returns false
// if the font has no such table or if the table did not pass sanitizing.
// Clients must not modify the returned bytes.
func (c *TableCache) Table(tag ot.Tag) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tables[tag]; ok {
		return t.data, t.ok
	}
	var t cachedTable
	if c.font != nil {
		if table := c.font.Table(tag); table != nil {
			t.data = table.Binary()
			t.ok = sanitize(tag, t.data)
			if !t.ok {
				tracer().Infof("table %s of source font failed sanitizing", tag)
				t.data = nil
			}
		}
	}
	c.tables[tag] = t
	return t.data, t.ok
}

// Len returns the number of tables looked up so far.
func (c *TableCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tables)
}

const headMagicNumber = 0x5F0F3CF5

// sanitize checks the minimum size of the tables a subsetting run patches
// in place.
func sanitize(tag ot.Tag, data []byte) bool {
	switch tag {
	case ot.T("head"):
		return len(data) >= 54 && binary.BigEndian.Uint32(data[12:]) == headMagicNumber
	case ot.T("maxp"):
		if len(data) < 6 {
			return false
		}
		return binary.BigEndian.Uint32(data) != 0x00010000 || len(data) >= 32
	case ot.T("hhea"), ot.T("vhea"):
		return len(data) >= 36
	case ot.T("post"):
		return len(data) >= 32
	case ot.T("OS/2"):
		return len(data) >= 78
	}
	return len(data) > 0
}
