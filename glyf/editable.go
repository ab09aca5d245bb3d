package glyf

import (
	"encoding/binary"
	"iter"

	"github.com/npillmayer/outline/ot"
)

// Editable is a glyph record in a buffer owned by the caller, which may be
// modified in place. Edits never change the length of the record.
type Editable []byte

// Kind returns the kind of the glyph record.
func (e Editable) Kind() Kind {
	return kindOf(e)
}

// Components iterates over the component records of a composite glyph.
func (e Editable) Components() iter.Seq[Component] {
	return ParseGlyph(0, e).Components()
}

// RemapComponents rewrites the glyph index of every component of a composite
// glyph. Components for which mapping returns false keep their glyph index.
// RemapComponents returns the number of components left unchanged this way.
func (e Editable) RemapComponents(mapping func(ot.GlyphIndex) (ot.GlyphIndex, bool)) int {
	if e.Kind() != Composite {
		return 0
	}
	unmapped := 0
	for c := range componentsOf(e) {
		gid, ok := mapping(c.GlyphIndex)
		if !ok {
			unmapped++
			continue
		}
		binary.BigEndian.PutUint16(e[c.Offset+2:], uint16(gid))
	}
	return unmapped
}

// DropHints disables the hinting instructions of the glyph. For simple glyphs
// the instruction length is set to zero, which requires the instruction bytes
// to have been removed before (see Glyph.HintSplit). For composite glyphs the
// instructions flag is cleared from all components.
func (e Editable) DropHints() {
	switch e.Kind() {
	case Simple:
		off := instructionLengthOffset(e)
		if off+2 > len(e) {
			return
		}
		binary.BigEndian.PutUint16(e[off:], 0)
	case Composite:
		for c := range componentsOf(e) {
			binary.BigEndian.PutUint16(e[c.Offset:], c.Flags&^WeHaveInstructions)
		}
	}
}

// SetOverlapsFlag marks the glyph as containing overlapping contours:
// OVERLAP_SIMPLE in the first point flag of a simple glyph, or
// OVERLAP_COMPOUND in the first component record of a composite glyph.
func (e Editable) SetOverlapsFlag() {
	switch e.Kind() {
	case Simple:
		off := instructionLengthOffset(e)
		if off+2 > len(e) {
			return
		}
		p := off + 2 + int(binary.BigEndian.Uint16(e[off:]))
		if p >= len(e) {
			return
		}
		e[p] |= FlagOverlapSimple
	case Composite:
		if c, ok := parseComponent(e, headerSize); ok {
			binary.BigEndian.PutUint16(e[c.Offset:], c.Flags|OverlapCompound)
		}
	}
}
