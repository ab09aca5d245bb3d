package otquery

import (
	"time"

	"github.com/npillmayer/outline/ot"
)

// HeadTableInfo is a typed query view over OpenType table 'head'.
// Values are decoded directly from the raw table bytes.
type HeadTableInfo struct {
	MajorVersion       uint16
	MinorVersion       uint16
	FontRevision       uint32 // 16.16 fixed point
	CheckSumAdjustment uint32
	MagicNumber        uint32
	Flags              uint16
	UnitsPerEm         uint16
	Created            int64 // seconds since 1904-01-01 00:00 UTC
	Modified           int64
	XMin, YMin         int16
	XMax, YMax         int16
	MacStyle           uint16
	LowestRecPPEM      uint16
	FontDirectionHint  int16
	IndexToLocFormat   int16
	GlyphDataFormat    int16
}

const (
	headTableSize   = 54
	headMagicNumber = 0x5F0F3CF5
)

// HeadInfo decodes table 'head'.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func HeadInfo(otf *ot.Font) (HeadTableInfo, bool) {
	var info HeadTableInfo
	b, ok := rawTable(otf, "head", headTableSize)
	if !ok {
		return info, false
	}
	info.MajorVersion, info.MinorVersion = u16(b[0:]), u16(b[2:])
	info.FontRevision = u32(b[4:])
	info.CheckSumAdjustment = u32(b[8:])
	info.MagicNumber = u32(b[12:])
	info.Flags = u16(b[16:])
	info.UnitsPerEm = u16(b[18:])
	info.Created = int64(u64(b[20:]))
	info.Modified = int64(u64(b[28:]))
	info.XMin, info.YMin = i16(b[36:]), i16(b[38:])
	info.XMax, info.YMax = i16(b[40:]), i16(b[42:])
	info.MacStyle = u16(b[44:])
	info.LowestRecPPEM = u16(b[46:])
	info.FontDirectionHint = i16(b[48:])
	info.IndexToLocFormat = i16(b[ot.HeadIndexToLocFormatOffset:])
	info.GlyphDataFormat = i16(b[52:])
	return info, true
}

// IsValid reports whether the table carries the magic number of 'head'.
func (h HeadTableInfo) IsValid() bool {
	return h.MagicNumber == headMagicNumber
}

// HasLongLoca reports whether table 'loca' uses 32-bit offsets.
func (h HeadTableInfo) HasLongLoca() bool {
	return h.IndexToLocFormat == 1
}

var epoch1904 = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// CreatedAt returns the creation date of the font.
func (h HeadTableInfo) CreatedAt() time.Time {
	return epoch1904.Add(time.Duration(h.Created) * time.Second)
}

// ModifiedAt returns the modification date of the font.
func (h HeadTableInfo) ModifiedAt() time.Time {
	return epoch1904.Add(time.Duration(h.Modified) * time.Second)
}
