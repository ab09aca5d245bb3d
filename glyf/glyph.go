package glyf

import (
	"encoding/binary"
	"fmt"

	"github.com/npillmayer/outline/ot"
)

// Kind classifies a glyph record.
type Kind uint8

const (
	// Empty glyphs have no outline, e.g. a space. Records shorter than a
	// glyph header and records with zero contours are empty.
	Empty Kind = iota
	// Simple glyphs define contours of points.
	Simple
	// Composite glyphs reference other glyphs as components.
	Composite
)

func (k Kind) String() string {
	switch k {
	case Empty:
		return "empty"
	case Simple:
		return "simple"
	case Composite:
		return "composite"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// headerSize is the size of a glyph header in bytes.
const headerSize = 10

// Header is the header every non-empty glyph record starts with.
// A negative number of contours marks a composite glyph.
type Header struct {
	NumberOfContours int16
	XMin, YMin       int16
	XMax, YMax       int16
}

func decodeHeader(b []byte) Header {
	if len(b) < headerSize {
		return Header{}
	}
	return Header{
		NumberOfContours: int16(binary.BigEndian.Uint16(b[0:])),
		XMin:             int16(binary.BigEndian.Uint16(b[2:])),
		YMin:             int16(binary.BigEndian.Uint16(b[4:])),
		XMax:             int16(binary.BigEndian.Uint16(b[6:])),
		YMax:             int16(binary.BigEndian.Uint16(b[8:])),
	}
}

func kindOf(b []byte) Kind {
	h := decodeHeader(b)
	switch {
	case h.NumberOfContours > 0:
		return Simple
	case h.NumberOfContours < 0:
		return Composite
	}
	return Empty
}

// Glyph is a view over the record of a single glyph. The zero value is an
// empty glyph.
//
// Glyph does not copy its data and must not be used to modify it;
// see Editable for this.
type Glyph struct {
	data []byte
	gid  ot.GlyphIndex
	kind Kind
}

// ParseGlyph classifies glyph record data for glyph gid.
func ParseGlyph(gid ot.GlyphIndex, data []byte) Glyph {
	g := Glyph{data: data, gid: gid, kind: kindOf(data)}
	if g.kind == Empty && len(data) > 0 {
		tracer().Debugf("glyph %d has %d bytes of data but is empty", gid, len(data))
	}
	return g
}

// GID returns the glyph index.
func (g Glyph) GID() ot.GlyphIndex {
	return g.gid
}

// Kind returns the kind of the glyph.
func (g Glyph) Kind() Kind {
	return g.kind
}

// IsEmpty is true for glyphs without an outline.
func (g Glyph) IsEmpty() bool {
	return g.kind == Empty
}

// Bytes returns the glyph's record data.
func (g Glyph) Bytes() []byte {
	return g.data
}

// Header returns the glyph header. Empty glyphs return a zero header, even
// if their data contains a header with zero contours.
func (g Glyph) Header() Header {
	if g.kind == Empty {
		return Header{}
	}
	return decodeHeader(g.data)
}

func (g Glyph) String() string {
	return fmt.Sprintf("glyph(%d, %s, %d bytes)", g.gid, g.kind, len(g.data))
}

// TrimPadding removes bytes following the coordinate data of a simple glyph.
// If the data does not hold as many flags and coordinates as the glyph
// declares, the result is an empty glyph. Other kinds of glyphs are returned
// unchanged.
func (g Glyph) TrimPadding() Glyph {
	if g.kind != Simple {
		return g
	}
	n, err := simpleGlyphLength(g.data)
	if err != nil {
		tracer().Infof("glyph %d: %v", g.gid, err)
		return Glyph{gid: g.gid}
	}
	g.data = g.data[:n:n]
	return g
}

// HintSplit splits the glyph's data around its hinting instructions.
// Concatenating start and end yields the glyph without instructions; the
// instruction length field of simple glyphs is kept and has to be zeroed
// by the caller (see Editable.DropHints). Empty glyphs return two nil slices.
func (g Glyph) HintSplit() (start, end []byte) {
	switch g.kind {
	case Simple:
		off := instructionLengthOffset(g.data)
		n := simpleInstructionsLength(g.data)
		glyphLen := min(off+2+n, len(g.data))
		return g.data[:glyphLen-n], g.data[glyphLen:]
	case Composite:
		k := len(g.data) - compositeInstructionsLength(g.data)
		return g.data[:k:k], nil
	}
	return nil, nil
}

// Instructions returns the glyph's hinting instruction bytes, if any.
func (g Glyph) Instructions() []byte {
	switch g.kind {
	case Simple:
		off := instructionLengthOffset(g.data)
		n := simpleInstructionsLength(g.data)
		if n == 0 {
			return nil
		}
		return g.data[off+2 : off+2+n]
	case Composite:
		n := compositeInstructionsLength(g.data)
		if n < 2 {
			return nil
		}
		b := g.data[len(g.data)-n:]
		l := int(binary.BigEndian.Uint16(b))
		return b[2:min(len(b), 2+l)]
	}
	return nil
}
