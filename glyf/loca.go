package glyf

import (
	"encoding/binary"
	"fmt"
)

// Range is a byte range [Start, End) within the glyph data table.
type Range struct {
	Start, End uint32
}

// Len returns the number of bytes covered by r.
func (r Range) Len() int {
	return int(r.End - r.Start)
}

func (r Range) String() string {
	return fmt.Sprintf("[%d:%d]", r.Start, r.End)
}

// IndexTable interprets the binary data of a 'loca' table.
//
// Short tables store offset/2 as uint16, long tables store the offset as uint32.
// A table for n glyphs has n+1 entries; entry i+1 marks the end of glyph i.
type IndexTable struct {
	data []byte
	long bool
}

// NewIndexTable wraps loca table data. Trailing bytes not forming a
// complete entry are ignored.
func NewIndexTable(data []byte, long bool) IndexTable {
	return IndexTable{data: data, long: long}
}

// IsLong returns true if entries are 32 bit.
func (t IndexTable) IsLong() bool {
	return t.long
}

// EntrySize is 2 or 4.
func (t IndexTable) EntrySize() int {
	if t.long {
		return 4
	}
	return 2
}

// Len returns the number of entries.
func (t IndexTable) Len() int {
	return len(t.data) / t.EntrySize()
}

// Offset returns the byte offset stored in entry i, converted from the
// short format if necessary.
func (t IndexTable) Offset(i int) (uint32, bool) {
	if i < 0 || i >= t.Len() {
		return 0, false
	}
	if t.long {
		return binary.BigEndian.Uint32(t.data[i*4:]), true
	}
	return uint32(binary.BigEndian.Uint16(t.data[i*2:])) * 2, true
}

// Range returns the byte range for glyph i, without checking it against
// the glyph data.
func (t IndexTable) Range(i int) (Range, bool) {
	start, ok := t.Offset(i)
	if !ok {
		return Range{}, false
	}
	end, ok := t.Offset(i + 1)
	if !ok {
		return Range{}, false
	}
	return Range{Start: start, End: end}, true
}

// EncodeIndexTable writes loca table data for a sequence of offsets.
// For short tables, offsets must be even and not exceed 2*0xFFFF.
func EncodeIndexTable(offsets []uint32, long bool) []byte {
	if long {
		b := make([]byte, 0, 4*len(offsets))
		for _, o := range offsets {
			b = binary.BigEndian.AppendUint32(b, o)
		}
		return b
	}
	b := make([]byte, 0, 2*len(offsets))
	for _, o := range offsets {
		b = binary.BigEndian.AppendUint16(b, uint16(o>>1))
	}
	return b
}
