package subset

import (
	"github.com/npillmayer/outline/glyf"
	"github.com/npillmayer/outline/ot"
)

// closeOverComponents adds the components of composite glyphs in set to set,
// recursively. Component references outside the font are ignored, cyclic
// references terminate as every glyph is visited once.
func closeOverComponents(accel *glyf.Accelerator, set map[ot.GlyphIndex]struct{}) {
	queue := make([]ot.GlyphIndex, 0, len(set))
	for gid := range set {
		queue = append(queue, gid)
	}
	count := accel.GlyphCount()
	for len(queue) > 0 {
		gid := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		g := accel.Glyph(gid)
		if g.Kind() != glyf.Composite {
			continue
		}
		for c := range g.Components() {
			if int(c.GlyphIndex) >= count {
				tracer().Infof("glyph %d references component %d outside of font", gid, c.GlyphIndex)
				continue
			}
			if _, ok := set[c.GlyphIndex]; ok {
				continue
			}
			set[c.GlyphIndex] = struct{}{}
			queue = append(queue, c.GlyphIndex)
		}
	}
}
