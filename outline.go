package outline

import (
	"github.com/npillmayer/outline/glyf"
	"github.com/npillmayer/outline/ot"
	"github.com/npillmayer/outline/subset"
)

// Path returns the outline of the glyph for a code point, for an instance of
// the font. inst may be nil for the default instance in font units.
func (f *Font) Path(r rune, inst *glyf.Instance) (*glyf.Path, bool) {
	gid, ok := f.GlyphIndex(r)
	if !ok {
		return nil, false
	}
	return f.Accel.Path(inst, gid)
}

// Advance returns the horizontal advance of the glyph for a code point, in
// font units.
func (f *Font) Advance(r rune, inst *glyf.Instance) (uint32, bool) {
	gid, ok := f.GlyphIndex(r)
	if !ok {
		return 0, false
	}
	return f.Accel.AdvanceVar(inst, gid, false), true
}

// SubsetGlyphs creates a font containing the given glyphs, together with
// glyph 0 and the components of composite glyphs.
func (f *Font) SubsetGlyphs(gids []ot.GlyphIndex, flags subset.Flags) ([]byte, error) {
	plan, err := subset.NewPlan(f.OT, gids, f.planOptions(flags)...)
	if err != nil {
		return nil, err
	}
	return subset.Subset(plan)
}

// SubsetText creates a font containing the glyphs needed to display text.
// The output font maps the code points of text to their glyphs.
func (f *Font) SubsetText(text string, flags subset.Flags) ([]byte, error) {
	plan, err := subset.PlanForText(f.OT, text, f.planOptions(flags)...)
	if err != nil {
		return nil, err
	}
	return subset.Subset(plan)
}

func (f *Font) planOptions(flags subset.Flags) []subset.Option {
	return []subset.Option{
		subset.WithFlags(flags),
		subset.WithTableCache(f.cache),
		subset.WithAccelerator(f.Accel),
	}
}
