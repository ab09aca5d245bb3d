package ot

import (
	"sort"
)

// Font represents the table structure of a TrueType-flavored OpenType font.
//
// Font keeps the binary data handed to Parse; every table is a view into it.
type Font struct {
	Header        *FontHeader
	tables        map[Tag]Table
	binary        []byte
	Head          *HeadTable // typed access to head
	MaxP          *MaxPTable // typed access to maxp
	HHea          *HHeaTable // typed access to hhea, may be nil
	HMtx          *HMtxTable // typed access to hmtx, may be nil
	VHea          *VHeaTable // typed access to vhea, may be nil
	VMtx          *VMtxTable // typed access to vmtx, may be nil
	GVar          *GVarTable // typed access to gvar, may be nil
	parseErrors   []FontError
	parseWarnings []FontWarning
}

// FontHeader is the offset table at the start of an SFNT font file.
//
// OpenType fonts that contain TrueType outlines should use the value of 0x00010000
// for the FontType. The Apple specification for TrueType fonts allows for 'true'.
type FontHeader struct {
	FontType      uint32
	TableCount    uint16
	SearchRange   uint16
	EntrySelector uint16
	RangeShift    uint16
}

// Table returns the font table for a given tag. If a table for a tag cannot
// be found in the font, nil is returned.
//
// For example to receive the `loca` table, clients may call
//
//	loca := otf.Table(ot.T("loca")).Self().AsLoca()
func (otf *Font) Table(tag Tag) Table {
	if otf == nil {
		return nil
	}
	if t, ok := otf.tables[tag]; ok {
		return t
	}
	return nil
}

// TableTags returns a list of tags, one for each table contained in the font,
// in ascending order.
func (otf *Font) TableTags() []Tag {
	var tags = make([]Tag, 0, len(otf.tables))
	for tag := range otf.tables {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Binary returns the font's binary data as handed to Parse.
func (otf *Font) Binary() []byte {
	return otf.binary
}

// NumGlyphs returns the number of glyphs as stated by table 'maxp'.
func (otf *Font) NumGlyphs() int {
	if otf == nil || otf.MaxP == nil {
		return 0
	}
	return otf.MaxP.NumGlyphs
}

// UnitsPerEm returns the font's design units per em, or 1000 if the
// font header does not carry a valid value.
func (otf *Font) UnitsPerEm() uint16 {
	if otf == nil || otf.Head == nil || otf.Head.UnitsPerEm == 0 {
		return 1000
	}
	return otf.Head.UnitsPerEm
}

// Errors returns all errors encountered during font parsing.
// These errors represent issues that were found but did not prevent parsing from completing.
func (otf *Font) Errors() []FontError {
	if otf.parseErrors == nil {
		return []FontError{}
	}
	return otf.parseErrors
}

// Warnings returns all warnings encountered during font parsing.
func (otf *Font) Warnings() []FontWarning {
	if otf.parseWarnings == nil {
		return []FontWarning{}
	}
	return otf.parseWarnings
}

// HasCriticalErrors returns true if any critical errors were encountered during parsing.
func (otf *Font) HasCriticalErrors() bool {
	for _, err := range otf.parseErrors {
		if err.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// --- Tag -------------------------------------------------------------------

// Tag is defined by OpenType as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
// If b is shorter or longer, it will be silently extended or cut as appropriate
//
//	MakeTag([]byte("glyf"))
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// --- Table -----------------------------------------------------------------

// Table represents one of the OpenType font tables.
//
// For TrueType outline fonts the following tables are of interest to us:
// 'glyf' (Glyph data), 'loca' (Index to location), 'head' (Font header),
// 'maxp' (Maximum profile), 'hhea'/'hmtx' (Horizontal header and metrics),
// 'vhea'/'vmtx' (Vertical header and metrics), 'gvar' (Glyph variations).
// Hinting tables 'cvt ', 'fpgm', 'prep' and 'gasp' are carried along as
// generic tables.
type Table interface {
	Extent() (uint32, uint32) // offset and byte size within the font's binary data
	Binary() []byte           // the bytes of this table; should be treated as read-only by clients
	Self() TableSelf          // reference to itself
}

func newTable(tag Tag, b binarySegm, offset, size uint32) *genericTable {
	t := &genericTable{}
	t.tableBase = makeTableBase(tag, b, offset, size)
	t.self = t
	return t
}

type genericTable struct {
	tableBase
}

// tableBase is a common parent for all kinds of OpenType tables.
type tableBase struct {
	data   binarySegm // a table is a slice of font data
	name   Tag        // 4-byte name as an integer
	offset uint32     // from offset
	length uint32     // to offset + length
	self   any
}

func makeTableBase(tag Tag, b binarySegm, offset, size uint32) tableBase {
	return tableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	}
}

// Extent returns offset and byte size of this table within the OpenType font.
func (tb *tableBase) Extent() (uint32, uint32) {
	return tb.offset, tb.length
}

// Binary returns the bytes of this table. Should be treated as read-only by
// clients, as it is a view into the original data.
func (tb *tableBase) Binary() []byte {
	return tb.data
}

func (tb *tableBase) Self() TableSelf {
	return TableSelf{tableBase: tb}
}

// TableSelf is a reference to a table. Its primary use is for converting
// a generic table to a concrete table flavour, and for reproducing the
// name tag of a table.
type TableSelf struct {
	tableBase *tableBase
}

// NameTag returns the 4-letter name of a table.
func (tself TableSelf) NameTag() Tag {
	if tself.tableBase == nil {
		return 0
	}
	return tself.tableBase.name
}

func safeSelf(tself TableSelf) any {
	if tself.tableBase == nil || tself.tableBase.self == nil {
		return TableSelf{}
	}
	return tself.tableBase.self
}

// AsLoca returns this table as a loca table, or nil.
func (tself TableSelf) AsLoca() *LocaTable {
	if k, ok := safeSelf(tself).(*LocaTable); ok {
		return k
	}
	return nil
}

// AsMaxP returns this table as a maxp table, or nil.
func (tself TableSelf) AsMaxP() *MaxPTable {
	if k, ok := safeSelf(tself).(*MaxPTable); ok {
		return k
	}
	return nil
}

// AsHead returns this table as a head table, or nil.
func (tself TableSelf) AsHead() *HeadTable {
	if k, ok := safeSelf(tself).(*HeadTable); ok {
		return k
	}
	return nil
}

// AsHHea returns this table as a hhea table, or nil.
func (tself TableSelf) AsHHea() *HHeaTable {
	if k, ok := safeSelf(tself).(*HHeaTable); ok {
		return k
	}
	return nil
}

// AsVHea returns this table as a vhea table, or nil.
func (tself TableSelf) AsVHea() *VHeaTable {
	if k, ok := safeSelf(tself).(*VHeaTable); ok {
		return k
	}
	return nil
}

// AsHMtx returns this table as a hmtx table, or nil.
func (tself TableSelf) AsHMtx() *HMtxTable {
	if k, ok := safeSelf(tself).(*HMtxTable); ok {
		return k
	}
	return nil
}

// AsVMtx returns this table as a vmtx table, or nil.
func (tself TableSelf) AsVMtx() *VMtxTable {
	if k, ok := safeSelf(tself).(*VMtxTable); ok {
		return k
	}
	return nil
}

// AsGVar returns this table as a gvar table, or nil.
func (tself TableSelf) AsGVar() *GVarTable {
	if k, ok := safeSelf(tself).(*GVarTable); ok {
		return k
	}
	return nil
}

// --- Concrete table implementations ----------------------------------------

// HeadTable gives global information about the font.
// Only the fields needed for outline processing are made public. Clients
// needing other fields may decode them from Binary(); see package otquery.
type HeadTable struct {
	tableBase
	Flags            uint16 // see https://docs.microsoft.com/en-us/typography/opentype/spec/head
	UnitsPerEm       uint16 // values 16 … 16384 are valid
	XMin, YMin       int16  // bounding box over all glyphs
	XMax, YMax       int16
	IndexToLocFormat uint16 // 0 for short offsets, 1 for long
	GlyphDataFormat  uint16 // 0 for current format
}

// Byte offsets of fields within table 'head' which are patched by font writers.
const (
	HeadCheckSumAdjustmentOffset = 8
	HeadIndexToLocFormatOffset   = 50
)

func newHeadTable(tag Tag, b binarySegm, offset, size uint32) *HeadTable {
	t := &HeadTable{}
	t.tableBase = makeTableBase(tag, b, offset, size)
	t.self = t
	return t
}

// LocaTable stores the offsets to the locations of the glyphs in the font,
// relative to the beginning of the glyph data table.
//
// LocaTable does not interpret its entries; see package glyf for this.
// Long is set from the 'head' table's IndexToLocFormat.
type LocaTable struct {
	tableBase
	Long bool // entries are 32 bit
}

// EntrySize returns the byte size of an entry, i.e. 2 or 4.
func (t *LocaTable) EntrySize() int {
	if t.Long {
		return 4
	}
	return 2
}

// Entries returns the number of entries contained in the table.
func (t *LocaTable) Entries() int {
	return len(t.data) / t.EntrySize()
}

func newLocaTable(tag Tag, b binarySegm, offset, size uint32) *LocaTable {
	t := &LocaTable{}
	t.tableBase = makeTableBase(tag, b, offset, size)
	t.self = t
	return t
}

// MaxPTable establishes the memory requirements for this font.
// The 'maxp' table contains a count for the number of glyphs in the font.
// Whenever this value changes, other tables which depend on it should also be updated.
type MaxPTable struct {
	tableBase
	NumGlyphs int
}

func newMaxPTable(tag Tag, b binarySegm, offset, size uint32) *MaxPTable {
	t := &MaxPTable{}
	t.tableBase = makeTableBase(tag, b, offset, size)
	t.self = t
	return t
}

// MetricsHeader holds the fields shared by tables 'hhea' and 'vhea'.
// For 'vhea', Ascender and Descender hold vertTypoAscender and vertTypoDescender.
type MetricsHeader struct {
	Ascender            int16
	Descender           int16
	LineGap             int16
	AdvanceMax          uint16
	MinLeadingBearing   int16
	MinTrailingBearing  int16
	MaxExtent           int16
	CaretSlopeRise      int16
	CaretSlopeRun       int16
	CaretOffset         int16
	NumberOfLongMetrics int // numberOfHMetrics or numOfLongVerMetrics
}

// HHeaTable contains information for horizontal layout.
type HHeaTable struct {
	tableBase
	MetricsHeader
}

// VHeaTable contains information for vertical layout.
type VHeaTable struct {
	tableBase
	MetricsHeader
}

// MetricRecord is one long metric record of table hmtx or vmtx.
type MetricRecord struct {
	Advance uint16
	Bearing int16
}

// metricsTable is the common implementation of hmtx and vmtx.
// Each table holds an array of long metrics, optionally followed by an
// array of bearings. Glyphs beyond the long metrics share the advance
// of the last long metric.
type metricsTable struct {
	tableBase
	numGlyphs   int
	longMetrics []MetricRecord
	bearings    []int16
}

// HMtxTable contains metric information for the horizontal layout of each of the
// glyphs in the font. The number of long metrics is taken from table 'hhea'.
type HMtxTable struct {
	metricsTable
}

// VMtxTable contains metric information for the vertical layout of each of the
// glyphs in the font. The number of long metrics is taken from table 'vhea'.
type VMtxTable struct {
	metricsTable
}

func (t *metricsTable) parseAll(numGlyphs, numberOfLongMetrics int) error {
	if numGlyphs < 0 {
		return errFontFormat("invalid glyph count")
	}
	if numberOfLongMetrics <= 0 || numberOfLongMetrics > numGlyphs {
		return errFontFormat("invalid number of long metrics")
	}
	required := numberOfLongMetrics*4 + (numGlyphs-numberOfLongMetrics)*2
	if required > len(t.data) {
		return errFontFormat("metrics table too small")
	}
	t.longMetrics = make([]MetricRecord, numberOfLongMetrics)
	for i := range numberOfLongMetrics {
		t.longMetrics[i] = MetricRecord{
			Advance: u16(t.data[i*4:]),
			Bearing: int16(u16(t.data[i*4+2:])),
		}
	}
	n := numGlyphs - numberOfLongMetrics
	t.bearings = make([]int16, n)
	base := numberOfLongMetrics * 4
	for i := range n {
		t.bearings[i] = int16(u16(t.data[base+i*2:]))
	}
	t.numGlyphs = numGlyphs
	return nil
}

// Metrics returns the advance and side bearing for a glyph.
func (t *metricsTable) Metrics(g GlyphIndex) (uint16, int16, bool) {
	if t == nil || int(g) >= t.numGlyphs || len(t.longMetrics) == 0 {
		return 0, 0, false
	}
	if int(g) < len(t.longMetrics) {
		m := t.longMetrics[g]
		return m.Advance, m.Bearing, true
	}
	i := int(g) - len(t.longMetrics)
	if i >= len(t.bearings) {
		return 0, 0, false
	}
	return t.longMetrics[len(t.longMetrics)-1].Advance, t.bearings[i], true
}

// GlyphCount returns the glyph count used when decoding this table.
func (t *metricsTable) GlyphCount() int {
	if t == nil {
		return 0
	}
	return t.numGlyphs
}

// LongMetricsCount returns the number of long metric records.
func (t *metricsTable) LongMetricsCount() int {
	if t == nil {
		return 0
	}
	return len(t.longMetrics)
}

// HMetrics returns the advance width and left side bearing for a glyph.
func (t *HMtxTable) HMetrics(g GlyphIndex) (uint16, int16, bool) {
	if t == nil {
		return 0, 0, false
	}
	return t.Metrics(g)
}

// VMetrics returns the advance height and top side bearing for a glyph.
func (t *VMtxTable) VMetrics(g GlyphIndex) (uint16, int16, bool) {
	if t == nil {
		return 0, 0, false
	}
	return t.Metrics(g)
}

// GVarTable holds the header of table 'gvar'. Decoding of glyph variation
// data is left to clients; we need the axis count to decide whether a set of
// variation coordinates fits the font.
type GVarTable struct {
	tableBase
	AxisCount  int
	GlyphCount int
}

func newGVarTable(tag Tag, b binarySegm, offset, size uint32) *GVarTable {
	t := &GVarTable{}
	t.tableBase = makeTableBase(tag, b, offset, size)
	t.self = t
	return t
}
