package subset

import (
	"fmt"
	"slices"

	"github.com/npillmayer/outline/internal/fontload"
	"github.com/npillmayer/outline/ot"
	"golang.org/x/text/unicode/norm"
)

// PlanForText creates a plan for the glyphs needed to display a text. The
// text is normalized to NFC and mapped to glyphs with the source font's
// 'cmap' table. Code points without a glyph are skipped. The mapped code
// points are retained in the 'cmap' table of the output font.
func PlanForText(source *ot.Font, text string, opts ...Option) (*GlyphPlan, error) {
	if source == nil {
		return nil, ErrNoSource
	}
	sf, err := fontload.ParseOpenTypeFont(source.Binary())
	if err != nil {
		return nil, fmt.Errorf("cannot read character map: %w", err)
	}
	runes := []rune(norm.NFC.String(text))
	slices.Sort(runes)
	runes = slices.Compact(runes)
	unicodes := make(map[rune]ot.GlyphIndex, len(runes))
	gids := make([]ot.GlyphIndex, 0, len(runes))
	for _, r := range runes {
		gid, err := sf.GlyphIndex(r)
		if err != nil {
			tracer().Infof("no glyph for %U: %v", r, err)
			continue
		}
		unicodes[r] = gid
		gids = append(gids, gid)
	}
	plan, err := NewPlan(source, gids, opts...)
	if err != nil {
		return nil, err
	}
	plan.RetainUnicodes(unicodes)
	return plan, nil
}

// RetainUnicodes adds code point mappings of the source font to a plan.
// Mappings to glyphs outside the plan are ignored.
func (p *GlyphPlan) RetainUnicodes(unicodes map[rune]ot.GlyphIndex) {
	for r, old := range unicodes {
		if _, ok := p.oldToNew[old]; ok {
			p.unicodes[r] = old
		}
	}
}
