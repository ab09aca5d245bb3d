package subset

import (
	"encoding/binary"

	"github.com/npillmayer/outline/ot"
)

// Offsets of fields patched in tables 'hhea'/'vhea' and 'maxp'.
const (
	metricsAdvanceMaxOffset     = 10
	metricsNumLongOffset        = 34
	maxpNumGlyphsOffset         = 4
	maxpMaxZonesOffset          = 14
	maxpMaxTwilightPointsOffset = 16
	maxpMaxSizeOfInstrOffset    = 26
)

// metricsFunc returns the advance and side bearing of a source glyph.
type metricsFunc func(ot.GlyphIndex) (uint16, int16, bool)

// subsetMetrics writes a metrics table ('hmtx' or 'vmtx') for the output
// glyphs of plan, together with a copy of its header table ('hhea' or
// 'vhea'). Runs of equal advances at the end of the table are stored as
// bearings only.
func subsetMetrics(plan Plan, metrics metricsFunc, header []byte) (hea, mtx []byte) {
	n := plan.NumOutputGlyphs()
	advances := make([]uint16, n)
	bearings := make([]int16, n)
	var advanceMax uint16
	for i := range n {
		old, ok := plan.OldGIDForNewGID(ot.GlyphIndex(i))
		if !ok {
			continue
		}
		advances[i], bearings[i], _ = metrics(old)
		advanceMax = max(advanceMax, advances[i])
	}
	numLong := n
	for numLong > 1 && advances[numLong-1] == advances[numLong-2] {
		numLong--
	}
	mtx = make([]byte, 0, 4*numLong+2*(n-numLong))
	for i := range numLong {
		mtx = binary.BigEndian.AppendUint16(mtx, advances[i])
		mtx = binary.BigEndian.AppendUint16(mtx, uint16(bearings[i]))
	}
	for i := numLong; i < n; i++ {
		mtx = binary.BigEndian.AppendUint16(mtx, uint16(bearings[i]))
	}
	hea = make([]byte, len(header))
	copy(hea, header)
	binary.BigEndian.PutUint16(hea[metricsAdvanceMaxOffset:], advanceMax)
	binary.BigEndian.PutUint16(hea[metricsNumLongOffset:], uint16(numLong))
	return hea, mtx
}

// subsetMaxP copies table 'maxp' with the glyph count of the output font.
// Without hinting, the limits concerning instructions of a version 1.0
// table are reset.
func subsetMaxP(maxp []byte, numGlyphs int, noHinting bool) []byte {
	out := make([]byte, len(maxp))
	copy(out, maxp)
	binary.BigEndian.PutUint16(out[maxpNumGlyphsOffset:], uint16(numGlyphs))
	if noHinting && binary.BigEndian.Uint32(out) == 0x00010000 && len(out) >= 32 {
		binary.BigEndian.PutUint16(out[maxpMaxZonesOffset:], 1)
		for off := maxpMaxTwilightPointsOffset; off <= maxpMaxSizeOfInstrOffset; off += 2 {
			binary.BigEndian.PutUint16(out[off:], 0)
		}
	}
	return out
}
