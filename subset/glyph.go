package subset

import (
	"fmt"

	"github.com/npillmayer/outline/glyf"
	"github.com/npillmayer/outline/ot"
)

// SubsetGlyph is a glyph of the output font, referencing the bytes of its
// source glyph. The bytes of the output record are Start followed by End.
// End is non-empty only for simple glyphs with hinting stripped, where it
// holds the point data following the instructions.
type SubsetGlyph struct {
	NewGID ot.GlyphIndex
	OldGID ot.GlyphIndex
	Source glyf.Glyph
	Start  []byte
	End    []byte
}

// Length is the number of bytes of the output record.
func (sg SubsetGlyph) Length() int {
	return len(sg.Start) + len(sg.End)
}

// Padding returns the number of padding bytes following the record.
// Under short loca, records have to start at even offsets.
func (sg SubsetGlyph) Padding(shortLoca bool) int {
	if shortLoca && sg.Length()%2 == 1 {
		return 1
	}
	return 0
}

// PaddedSize is the number of bytes a record occupies in table 'glyf'
// under short loca.
func (sg SubsetGlyph) PaddedSize() int {
	return sg.Length() + sg.Padding(true)
}

func (sg SubsetGlyph) String() string {
	return fmt.Sprintf("subset-glyph(%d→%d, %d bytes)", sg.OldGID, sg.NewGID, sg.Length())
}

// Serialize appends the output record to buf and returns the extended buffer.
// The appended copy is rewritten for the output font: component references
// are mapped to new glyph indices, hinting is stripped and the overlaps flag
// is set according to the flags of plan.
func (sg SubsetGlyph) Serialize(buf []byte, shortLoca bool, plan Plan) []byte {
	start := len(buf)
	buf = append(buf, sg.Start...)
	buf = append(buf, sg.End...)
	if sg.Padding(shortLoca) > 0 {
		buf = append(buf, 0)
	}
	if sg.Length() == 0 {
		return buf
	}
	dest := glyf.Editable(buf[start : start+sg.Length()])
	if unmapped := dest.RemapComponents(plan.NewGIDForOldGID); unmapped > 0 {
		tracer().Errorf("glyph %d references %d components not contained in subset", sg.OldGID, unmapped)
	}
	flags := plan.Flags()
	if flags&FlagNoHinting != 0 {
		dest.DropHints()
	}
	if flags&FlagSetOverlapsFlag != 0 {
		dest.SetOverlapsFlag()
	}
	return buf
}

// populateGlyphs collects the output glyphs of a plan, in the order of new
// glyph indices.
func populateGlyphs(plan Plan, accel *glyf.Accelerator) []SubsetGlyph {
	n := plan.NumOutputGlyphs()
	flags := plan.Flags()
	glyphs := make([]SubsetGlyph, n)
	for i := range n {
		sg := &glyphs[i]
		sg.NewGID = ot.GlyphIndex(i)
		old, ok := plan.OldGIDForNewGID(sg.NewGID)
		if !ok {
			// holes in a plan retaining glyph indices
			tracer().Debugf("output glyph %d has no source glyph", i)
			continue
		}
		sg.OldGID = old
		if i == 0 && flags&FlagNotdefOutline == 0 {
			continue
		}
		sg.Source = accel.GlyphTrimmed(old)
		if flags&FlagNoHinting != 0 {
			sg.Start, sg.End = sg.Source.HintSplit()
		} else {
			sg.Start = sg.Source.Bytes()
		}
	}
	return glyphs
}
