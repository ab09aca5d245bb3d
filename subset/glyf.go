package subset

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/outline/glyf"
	"github.com/npillmayer/outline/ot"
)

// maxShortLocaSize is the size limit of table 'glyf' for short loca, where
// offsets are stored divided by 2 in 16 bits.
const maxShortLocaSize = 0x1FFFE

var (
	// ErrGlyfTooLarge is returned if the output glyph data cannot be
	// addressed by table 'loca'.
	ErrGlyfTooLarge = errors.New("glyph data exceeds 32-bit offsets")
	// ErrTableRejected is returned if a plan rejects an output table.
	ErrTableRejected = errors.New("plan rejected output table")
	errNoHead        = errors.New("source font has no valid 'head' table")
)

// SerializeGlyf writes tables 'glyf' and 'loca' for the glyphs of a plan,
// and a copy of the source 'head' table with its index-to-location format
// patched. The tables are handed to the plan with AddTable.
//
// Short loca is used whenever the padded glyph data is small enough.
func SerializeGlyf(plan Plan, accel *glyf.Accelerator, head []byte) error {
	if len(head) <= ot.HeadIndexToLocFormatOffset+1 {
		return errNoHead
	}
	glyphs := populateGlyphs(plan, accel)
	var paddedTotal, total uint64
	for _, sg := range glyphs {
		paddedTotal += uint64(sg.PaddedSize())
		total += uint64(sg.Length())
	}
	short := paddedTotal < maxShortLocaSize
	if !short && total > math.MaxUint32 {
		return fmt.Errorf("%w: %d bytes", ErrGlyfTooLarge, total)
	}
	size := total
	if short {
		size = paddedTotal
	}
	tracer().Debugf("glyf: %d glyphs, %d bytes, short loca = %v", len(glyphs), size, short)
	out := make([]byte, 0, max(size, 1))
	offsets := make([]uint32, 0, len(glyphs)+1)
	for _, sg := range glyphs {
		offsets = append(offsets, uint32(len(out)))
		out = sg.Serialize(out, short, plan)
	}
	offsets = append(offsets, uint32(len(out)))
	if len(out) == 0 {
		// table 'glyf' must not be empty
		out = append(out, 0)
	}
	loca := glyf.EncodeIndexTable(offsets, !short)
	headOut := make([]byte, len(head))
	copy(headOut, head)
	var format uint16
	if !short {
		format = 1
	}
	binary.BigEndian.PutUint16(headOut[ot.HeadIndexToLocFormatOffset:], format)
	for _, t := range []struct {
		tag  string
		data []byte
	}{{"glyf", out}, {"loca", loca}, {"head", headOut}} {
		if !plan.AddTable(ot.T(t.tag), t.data) {
			return fmt.Errorf("%w: %s", ErrTableRejected, t.tag)
		}
	}
	return nil
}
