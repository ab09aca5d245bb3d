package subset

import (
	"bytes"
	"encoding/binary"
	"slices"

	"github.com/npillmayer/outline/ot"
	"seehuhn.de/go/sfnt/cmap"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/post"
)

// buildCmap creates a 'cmap' table with a single format 12 subtable, which
// is referenced for Unicode (platform 0, encoding 4) and Windows full
// Unicode (platform 3, encoding 10).
func buildCmap(unicodes map[rune]ot.GlyphIndex) []byte {
	runes := make([]rune, 0, len(unicodes))
	for r := range unicodes {
		runes = append(runes, r)
	}
	slices.Sort(runes)
	var sub cmap.Format12
	for _, r := range runes {
		gid := glyph.ID(unicodes[r])
		if k := len(sub) - 1; k >= 0 {
			seg := &sub[k]
			if uint32(r) == seg.EndCharCode+1 &&
				uint32(gid) == uint32(seg.StartGlyphID)+uint32(r)-seg.StartCharCode {
				seg.EndCharCode = uint32(r)
				continue
			}
		}
		sub = append(sub, cmap.Format12Segment{
			StartCharCode: uint32(r),
			EndCharCode:   uint32(r),
			StartGlyphID:  gid,
		})
	}
	data := sub.Encode(0)
	table := cmap.Table{
		{PlatformID: 0, EncodingID: 4}:  data,
		{PlatformID: 3, EncodingID: 10}: data,
	}
	return table.Encode()
}

// subsetPost creates a version 3.0 'post' table, which carries no glyph
// names, from the header of the source table.
func subsetPost(src []byte) []byte {
	hdr := bytes.Clone(src[:32])
	binary.BigEndian.PutUint32(hdr, 0x00030000)
	info, err := post.Read(bytes.NewReader(hdr))
	if err != nil {
		tracer().Infof("cannot decode 'post' header: %v", err)
		info = &post.Info{}
	}
	info.Names = nil
	return info.Encode()
}

// passThroughTables are copied unchanged to the output font.
var passThroughTables = []ot.Tag{
	ot.T("name"), ot.T("OS/2"), ot.T("gasp"),
}

// hintingTables are copied unless hinting is stripped.
var hintingTables = []ot.Tag{
	ot.T("cvt "), ot.T("fpgm"), ot.T("prep"),
}
