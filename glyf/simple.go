package glyf

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Flags of the points of simple glyphs.
const (
	FlagOnCurve         = 0x01
	flagXShort          = 0x02
	flagYShort          = 0x04
	flagRepeat          = 0x08
	flagXSameOrPositive = 0x10
	flagYSameOrPositive = 0x20
	FlagOverlapSimple   = 0x40
)

var errGlyphBounds = errors.New("glyph data truncated")

// errMalformed reports an inconsistency within a glyph record.
func errMalformed(format string, args ...any) error {
	return fmt.Errorf("malformed glyph: "+format, args...)
}

// A simple glyph record is laid out as follows:
//
//	header             10 bytes
//	endPtsOfContours   uint16[numberOfContours]
//	instructionLength  uint16
//	instructions       uint8[instructionLength]
//	flags              uint8[], run-length encoded with flagRepeat
//	xCoordinates       uint8 or int16 deltas
//	yCoordinates       uint8 or int16 deltas

func instructionLengthOffset(data []byte) int {
	return headerSize + 2*int(decodeHeader(data).NumberOfContours)
}

// simpleInstructionsLength returns the length of the instructions of a simple
// glyph, or 0 if the length field is missing or exceeds the record.
func simpleInstructionsLength(data []byte) int {
	off := instructionLengthOffset(data)
	if off+2 > len(data) {
		return 0
	}
	n := int(binary.BigEndian.Uint16(data[off:]))
	if off+2+n > len(data) {
		return 0
	}
	return n
}

// simpleGlyphLength walks the flags of a simple glyph and returns the length
// of the record without trailing padding.
func simpleGlyphLength(data []byte) (int, error) {
	p := instructionLengthOffset(data)
	if p+2 >= len(data) {
		return 0, errGlyphBounds
	}
	numPoints := int(binary.BigEndian.Uint16(data[p-2:])) + 1
	p += 2 + int(binary.BigEndian.Uint16(data[p:]))
	coordBytes, covered := 0, 0
	for p < len(data) {
		flag := data[p]
		p++
		repeat := 1
		if flag&flagRepeat != 0 {
			if p >= len(data) {
				return 0, errGlyphBounds
			}
			repeat = int(data[p]) + 1
			p++
		}
		coordBytes += (coordSize(flag, flagXShort, flagXSameOrPositive) +
			coordSize(flag, flagYShort, flagYSameOrPositive)) * repeat
		covered += repeat
		if covered >= numPoints {
			break
		}
	}
	if covered != numPoints {
		return 0, errMalformed("flags cover %d of %d points", covered, numPoints)
	}
	return min(p+coordBytes, len(data)), nil
}

func coordSize(flag, short, same uint8) int {
	if flag&short != 0 {
		return 1
	} else if flag&same == 0 {
		return 2
	}
	return 0
}

// decodeSimplePoints decodes the points of a simple glyph. The result has
// capacity for the four phantom points to be appended.
//
// With phantomOnly set, only the number of points and the contour ends are
// determined, coordinates and flags stay zero.
func decodeSimplePoints(data []byte, phantomOnly bool) ([]ContourPoint, error) {
	numContours := int(decodeHeader(data).NumberOfContours)
	p := instructionLengthOffset(data)
	if numContours <= 0 || p+2 > len(data) {
		return nil, errGlyphBounds
	}
	numPoints := int(binary.BigEndian.Uint16(data[p-2:])) + 1
	points := make([]ContourPoint, numPoints, numPoints+PhantomCount)
	for i := range numContours {
		end := int(binary.BigEndian.Uint16(data[headerSize+2*i:]))
		if end >= numPoints {
			return nil, errMalformed("contour end %d exceeds point count %d", end, numPoints)
		}
		points[end].EndPoint = true
	}
	if phantomOnly {
		return points, nil
	}
	p += 2 + int(binary.BigEndian.Uint16(data[p:]))
	for i := 0; i < numPoints; {
		if p >= len(data) {
			return nil, errGlyphBounds
		}
		flag := data[p]
		p++
		points[i].Flag = flag
		i++
		if flag&flagRepeat != 0 {
			if p >= len(data) {
				return nil, errGlyphBounds
			}
			repeat := int(data[p])
			p++
			for ; repeat > 0 && i < numPoints; repeat-- {
				points[i].Flag = flag
				i++
			}
		}
	}
	var err error
	if p, err = decodeCoordinates(data, p, points, flagXShort, flagXSameOrPositive, false); err != nil {
		return nil, err
	}
	if _, err = decodeCoordinates(data, p, points, flagYShort, flagYSameOrPositive, true); err != nil {
		return nil, err
	}
	return points, nil
}

// decodeCoordinates reads one coordinate array starting at p. Coordinates are
// stored as deltas to the previous point.
func decodeCoordinates(data []byte, p int, points []ContourPoint, short, same uint8, isY bool) (int, error) {
	var v int32
	for i := range points {
		flag := points[i].Flag
		if flag&short != 0 {
			if p >= len(data) {
				return p, errGlyphBounds
			}
			if flag&same != 0 {
				v += int32(data[p])
			} else {
				v -= int32(data[p])
			}
			p++
		} else if flag&same == 0 {
			if p+2 > len(data) {
				return p, errGlyphBounds
			}
			v += int32(int16(binary.BigEndian.Uint16(data[p:])))
			p += 2
		}
		if isY {
			points[i].Y = float32(v)
		} else {
			points[i].X = float32(v)
		}
	}
	return p, nil
}
