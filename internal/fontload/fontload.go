package fontload

import (
	"errors"
	"os"

	"github.com/npillmayer/outline/ot"
	"golang.org/x/image/font/sfnt"
)

// ErrNoGlyph is returned by GlyphIndex if the font does not map a rune.
var ErrNoGlyph = errors.New("font has no glyph for rune")

// ScalableFont is a parsed scalable font with original bytes and SFNT view.
type ScalableFont struct {
	Fontname string
	Filepath string
	Binary   []byte
	SFNT     *sfnt.Font
	buf      sfnt.Buffer
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
// A missing full name is not an error.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	f.Fontname, _ = f.SFNT.Name(&f.buf, sfnt.NameIDFull)
	return f, nil
}

// GlyphIndex maps a rune to a glyph through the font's cmap.
// Not safe for concurrent use.
func (f *ScalableFont) GlyphIndex(r rune) (ot.GlyphIndex, error) {
	x, err := f.SFNT.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0, err
	}
	if x == 0 {
		return 0, ErrNoGlyph
	}
	return ot.GlyphIndex(x), nil
}

// GlyphName returns the PostScript name of a glyph, if the font carries one.
func (f *ScalableFont) GlyphName(gid ot.GlyphIndex) string {
	name, err := f.SFNT.GlyphName(&f.buf, sfnt.GlyphIndex(gid))
	if err != nil {
		return ""
	}
	return name
}
