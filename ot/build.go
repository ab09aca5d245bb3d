package ot

import (
	"bytes"
	"errors"

	"seehuhn.de/go/sfnt/header"
)

// ErrNoTables is returned by FontBuilder.Build if no table has been added.
var ErrNoTables = errors.New("font builder has no tables")

// FontBuilder assembles tables into a TrueType font binary.
//
// The table directory is sorted by tag and table data is laid out in the
// recommended TrueType order. Build calculates the table checksums and, if a
// 'head' table is present, the font-wide checkSumAdjustment. The 'head' data
// handed to AddTable is never modified.
type FontBuilder struct {
	fontType uint32
	tables   map[Tag][]byte
}

// NewFontBuilder creates a builder for a font with TrueType outlines.
func NewFontBuilder() *FontBuilder {
	return &FontBuilder{
		fontType: 0x00010000,
		tables:   make(map[Tag][]byte),
	}
}

// AddTable adds or replaces a table. A nil data slice is stored as an empty
// table.
func (fb *FontBuilder) AddTable(tag Tag, data []byte) {
	if data == nil {
		data = []byte{}
	}
	fb.tables[tag] = data
}

// HasTable reports whether a table with the given tag has been added.
func (fb *FontBuilder) HasTable(tag Tag) bool {
	_, ok := fb.tables[tag]
	return ok
}

// Build writes the font binary.
func (fb *FontBuilder) Build() ([]byte, error) {
	if len(fb.tables) == 0 {
		return nil, ErrNoTables
	}
	tables := make(map[string][]byte, len(fb.tables))
	for tag, data := range fb.tables {
		if tag == T("head") {
			// the checksum adjustment is patched in place
			data = bytes.Clone(data)
			if len(data) < HeadCheckSumAdjustmentOffset+4 {
				return nil, errFontFormat("head table too short")
			}
		}
		tables[tag.String()] = data
	}
	var buf bytes.Buffer
	if _, err := header.Write(&buf, fb.fontType, tables); err != nil {
		return nil, err
	}
	tracer().Debugf("font builder wrote %d tables in %d bytes", len(tables), buf.Len())
	return buf.Bytes(), nil
}
