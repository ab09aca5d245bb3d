package ot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Code comments often cite passages from the OpenType docs;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

// checkedMulInt checks for overflow in multiplication of two non-negative integers
func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a < 0 || b < 0 || a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}

// checkedAddUint32 checks for overflow in addition of two uint32 values
func checkedAddUint32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// ---------------------------------------------------------------------------

// RequiredTables lists the tables without which a font is refused.
// Outline tables are not required: a font without 'glyf' or 'loca' will
// parse, but will have no outlines.
var RequiredTables = []string{
	"head", "maxp",
}

// Parse parses an OpenType font from a byte slice.
// An ot.Font needs ongoing access to the font's byte-data after the Parse function returns.
// Its elements are assumed immutable while the ot.Font remains in use.
func Parse(font []byte) (*Font, error) {
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	r := bytes.NewReader(font)
	h := FontHeader{}
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return nil, err
	}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, Tag(h.FontType).String())
	ec := &errorCollector{}
	if !(h.FontType == 0x00010000 || // TrueType
		h.FontType == 0x74727565 || // true
		h.FontType == 0x4f54544f) { // OTTO
		return nil, ec.fail(0, "Header", fmt.Sprintf("font type not supported: %x", h.FontType), 0)
	}
	otf := &Font{Header: &h, tables: make(map[Tag]Table), binary: font}
	src := binarySegm(font)
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.
	tableRecordsSize, err := checkedMulInt(16, int(h.TableCount))
	if err != nil {
		return nil, ec.fail(0, "TableRecords", fmt.Sprintf("table count too large: %v", err), 12)
	}
	buf, err := src.view(12, tableRecordsSize)
	if err != nil {
		return nil, ec.fail(0, "TableRecords", "table record entries", 12)
	}
	for b, prevTag := buf, Tag(0); len(b) > 0; b = b[16:] {
		tag := MakeTag(b)
		if tag < prevTag {
			// fonts in the wild sometimes violate the ordering; this is harmless for us
			ec.addWarning(tag, "table records not sorted by tag", 12)
		}
		prevTag = tag
		off, size := u32(b[8:12]), u32(b[12:16])
		if off&3 != 0 { // "all tables must begin on four byte boundaries"
			ec.addWarning(tag, "table offset not 4-byte aligned", off)
		}
		tableEnd, err := checkedAddUint32(off, size)
		if err != nil {
			return nil, ec.fail(tag, "Size", fmt.Sprintf("size calculation overflow: %v", err), off)
		}
		if off > uint32(len(src)) || tableEnd > uint32(len(src)) {
			return nil, ec.fail(tag, "Bounds",
				fmt.Sprintf("bounds [%d:%d] exceed font size %d", off, tableEnd, len(src)), off)
		}
		otf.tables[tag], err = parseTable(tag, src[off:tableEnd], off, size, ec)
		if err != nil {
			return nil, err
		}
		if otf.tables[tag] == nil {
			delete(otf.tables, tag)
		}
	}
	if err := extractOutlineInfo(otf, ec); err != nil {
		return nil, err
	}
	otf.parseErrors = ec.errors
	otf.parseWarnings = ec.warnings
	return otf, nil
}

// extractOutlineInfo checks for required tables, sets shortcuts to typed tables
// and resolves the dependencies between tables.
func extractOutlineInfo(otf *Font, ec *errorCollector) error {
	for _, tag := range RequiredTables {
		if otf.tables[T(tag)] == nil {
			return ec.fail(T(tag), "Missing", "missing required table", 0)
		}
	}
	otf.Head = otf.tables[T("head")].Self().AsHead()
	otf.MaxP = otf.tables[T("maxp")].Self().AsMaxP()
	numGlyphs := otf.MaxP.NumGlyphs
	if t := otf.Table(T("hhea")); t != nil {
		otf.HHea = t.Self().AsHHea()
	}
	if t := otf.Table(T("vhea")); t != nil {
		otf.VHea = t.Self().AsVHea()
	}
	if t := otf.Table(T("gvar")); t != nil {
		otf.GVar = t.Self().AsGVar()
	}
	// Dependencies (taken from Apple Developer page about TrueType):
	// The value of the numOfLongHorMetrics field is found in the 'hhea' table.
	// Fonts that lack an 'hhea' table must not have an 'hmtx' table.
	if t := otf.Table(T("hmtx")); t != nil && otf.HHea != nil {
		hmtx := t.Self().AsHMtx()
		if err := hmtx.parseAll(numGlyphs, otf.HHea.NumberOfLongMetrics); err != nil {
			ec.addError(T("hmtx"), "Size", err.Error(), SeverityMajor, hmtx.offset)
		} else {
			otf.HMtx = hmtx
		}
	}
	if t := otf.Table(T("vmtx")); t != nil && otf.VHea != nil {
		vmtx := t.Self().AsVMtx()
		if err := vmtx.parseAll(numGlyphs, otf.VHea.NumberOfLongMetrics); err != nil {
			ec.addError(T("vmtx"), "Size", err.Error(), SeverityMajor, vmtx.offset)
		} else {
			otf.VMtx = vmtx
		}
	}
	// The size of entries in the 'loca' table must be appropriate for the value of the
	// indexToLocFormat field of the 'head' table. The number of entries must be the same
	// as the numGlyphs field of the 'maxp' table, plus one.
	// We do not refuse fonts with a mismatch: outline access clamps the glyph count
	// and validates every glyph location lazily.
	if t := otf.Table(T("loca")); t != nil {
		loca := t.Self().AsLoca()
		switch otf.Head.IndexToLocFormat {
		case 0:
		case 1:
			loca.Long = true
		default:
			ec.addError(T("head"), "IndexToLocFormat",
				fmt.Sprintf("invalid value: %d (must be 0 or 1)", otf.Head.IndexToLocFormat),
				SeverityMajor, otf.Head.offset)
		}
		if loca.Entries() != numGlyphs+1 {
			ec.addWarning(T("loca"), fmt.Sprintf("table has %d entries for %d glyphs",
				loca.Entries(), numGlyphs), loca.offset)
		}
	}
	if otf.GVar != nil && otf.GVar.GlyphCount != numGlyphs {
		ec.addWarning(T("gvar"), fmt.Sprintf("glyph count %d differs from maxp (%d)",
			otf.GVar.GlyphCount, numGlyphs), otf.GVar.offset)
	}
	return nil
}

func parseTable(t Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	switch t {
	case T("head"):
		return parseHead(t, b, offset, size, ec)
	case T("maxp"):
		return parseMaxP(t, b, offset, size, ec)
	case T("hhea"):
		return parseHHea(t, b, offset, size, ec)
	case T("vhea"):
		return parseVHea(t, b, offset, size, ec)
	case T("hmtx"):
		return parseHMtx(t, b, offset, size, ec)
	case T("vmtx"):
		return parseVMtx(t, b, offset, size, ec)
	case T("loca"):
		return parseLoca(t, b, offset, size, ec)
	case T("gvar"):
		return parseGVar(t, b, offset, size, ec)
	case T("glyf"):
		// Glyph data is interpreted lazily, glyph by glyph, by package glyf.
		return newTable(t, b, offset, size), nil
	}
	tracer().Debugf("font contains table (%s), will not be interpreted", t)
	return newTable(t, b, offset, size), nil
}

// --- Head table ------------------------------------------------------------

func parseHead(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 54 {
		return nil, ec.fail(tag, "Size", fmt.Sprintf("head table too small: %d bytes (need 54)", size), offset)
	}
	t := newHeadTable(tag, b, offset, size)
	t.Flags, _ = b.u16(16)
	t.UnitsPerEm, _ = b.u16(18)
	t.XMin, _ = b.i16(36)
	t.YMin, _ = b.i16(38)
	t.XMax, _ = b.i16(40)
	t.YMax, _ = b.i16(42)
	t.IndexToLocFormat, _ = b.u16(HeadIndexToLocFormatOffset)
	t.GlyphDataFormat, _ = b.u16(52)
	if t.UnitsPerEm < 16 || t.UnitsPerEm > 16384 {
		ec.addWarning(tag, fmt.Sprintf("units per em out of range: %d", t.UnitsPerEm), offset+18)
	}
	return t, nil
}

// --- MaxP table ------------------------------------------------------------

// This table establishes the memory requirements for this font. Fonts with CFF data
// must use Version 0.5 of this table, specifying only the numGlyphs field. Fonts
// with TrueType outlines must use Version 1.0 of this table, where all data is required.
func parseMaxP(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 6 {
		return nil, ec.fail(tag, "Size", "maxp table too small", offset)
	}
	t := newMaxPTable(tag, b, offset, size)
	n, _ := b.u16(4)
	t.NumGlyphs = int(n)
	return t, nil
}

// --- HHea and VHea tables --------------------------------------------------

// Tables 'hhea' and 'vhea' share their layout: 36 bytes, with the number of
// long metrics as the last field.
func parseMetricsHeader(b binarySegm, size uint32) (MetricsHeader, bool) {
	h := MetricsHeader{}
	if size < 36 {
		return h, false
	}
	h.Ascender, _ = b.i16(4)
	h.Descender, _ = b.i16(6)
	h.LineGap, _ = b.i16(8)
	h.AdvanceMax, _ = b.u16(10)
	h.MinLeadingBearing, _ = b.i16(12)
	h.MinTrailingBearing, _ = b.i16(14)
	h.MaxExtent, _ = b.i16(16)
	h.CaretSlopeRise, _ = b.i16(18)
	h.CaretSlopeRun, _ = b.i16(20)
	h.CaretOffset, _ = b.i16(22)
	n, _ := b.u16(34)
	h.NumberOfLongMetrics = int(n)
	return h, true
}

func parseHHea(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	h, ok := parseMetricsHeader(b, size)
	if !ok {
		return nil, ec.fail(tag, "Size", fmt.Sprintf("table too small: %d bytes (need 36)", size), offset)
	}
	t := &HHeaTable{MetricsHeader: h}
	t.tableBase = makeTableBase(tag, b, offset, size)
	t.self = t
	return t, nil
}

func parseVHea(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	h, ok := parseMetricsHeader(b, size)
	if !ok {
		ec.addError(tag, "Size", fmt.Sprintf("table too small: %d bytes (need 36)", size), SeverityMinor, offset)
		return nil, nil
	}
	t := &VHeaTable{MetricsHeader: h}
	t.tableBase = makeTableBase(tag, b, offset, size)
	t.self = t
	return t, nil
}

// --- HMtx and VMtx tables --------------------------------------------------

// Metric records are decoded after all tables are known, as their count
// depends on tables 'maxp' and 'hhea' or 'vhea', respectively.
func parseHMtx(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size == 0 {
		return nil, nil
	}
	t := &HMtxTable{}
	t.tableBase = makeTableBase(tag, b, offset, size)
	t.self = t
	return t, nil
}

func parseVMtx(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size == 0 {
		return nil, nil
	}
	t := &VMtxTable{}
	t.tableBase = makeTableBase(tag, b, offset, size)
	t.self = t
	return t, nil
}

// --- Loca table ------------------------------------------------------------

// The 'loca' table is most intimately dependent upon the contents of the 'glyf' table
// and vice versa. Changes to the 'loca' table must not be made unless appropriate
// changes to the 'glyf' table are simultaneously made.
func parseLoca(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	return newLocaTable(tag, b, offset, size), nil
}

// --- GVar table ------------------------------------------------------------

// The gvar header is 20 bytes: version (4), axisCount (2), sharedTupleCount (2),
// sharedTuplesOffset (4), glyphCount (2), flags (2), glyphVariationDataArrayOffset (4).
func parseGVar(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < 20 {
		ec.addError(tag, "Size", "gvar header incomplete", SeverityMinor, offset)
		return nil, nil
	}
	t := newGVarTable(tag, b, offset, size)
	if major, _ := b.u16(0); major != 1 {
		ec.addError(tag, "Version", fmt.Sprintf("unsupported gvar version %d", major), SeverityMinor, offset)
		return nil, nil
	}
	n, _ := b.u16(4)
	t.AxisCount = int(n)
	n, _ = b.u16(12)
	t.GlyphCount = int(n)
	return t, nil
}
