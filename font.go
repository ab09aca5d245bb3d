/*
Package outline gives access to the glyph outlines of TrueType fonts and
creates subsets of them.

The heavy lifting is done by the sub-packages:

▪︎ ot parses the SFNT container and the tables describing glyph data and
metrics.

▪︎ glyf decodes glyph records into points and paths and computes glyph
metrics, for the default instance of a font as well as for variable
instances.

▪︎ subset writes fonts containing a subset of the glyphs of a source font.

▪︎ otquery answers questions about a font, decoding values from the raw
table bytes.

This package bundles them for the most common use-cases:

	font, err := outline.LoadFont("myfont.ttf")
	...
	path, ok := font.Path('A', nil)
	subsetFont, err := font.SubsetText("Hello", subset.FlagNoHinting)

# Status

Font collections (*.ttc) and CFF outlines are not supported.

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package outline

import (
	"errors"
	"os"
	"sync"

	"github.com/npillmayer/outline/glyf"
	"github.com/npillmayer/outline/internal/fontload"
	"github.com/npillmayer/outline/ot"
	"github.com/npillmayer/outline/otquery"
	"github.com/npillmayer/outline/subset"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'outline'
func tracer() tracing.Trace {
	return tracing.Select("outline")
}

// ErrNoOutlines is returned for fonts without TrueType outlines.
var ErrNoOutlines = errors.New("font has no TrueType outlines")

// Font is a parsed TrueType font, prepared for outline access and
// subsetting. A Font is safe for concurrent use.
type Font struct {
	Fontname string
	Filepath string
	OT       *ot.Font
	Accel    *glyf.Accelerator
	cache    *subset.TableCache
	mx       sync.Mutex // guards cmap
	cmap     *fontload.ScalableFont
}

// LoadFont loads a TrueType font from a file.
func LoadFont(fontfile string) (*Font, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := FromBinary(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// FromBinary parses raw font bytes. The input is expected to contain a
// complete single-font SFNT stream. It must not change after parsing for
// the font to be usable.
func FromBinary(data []byte) (*Font, error) {
	otf, err := ot.Parse(data)
	if err != nil {
		return nil, err
	}
	f := &Font{
		OT:    otf,
		Accel: glyf.New(otf),
		cache: subset.NewTableCache(otf),
	}
	if f.Accel.GlyphCount() == 0 {
		return nil, ErrNoOutlines
	}
	if f.cmap, err = fontload.ParseOpenTypeFont(data); err != nil {
		tracer().Infof("font has no usable character map: %v", err)
	} else {
		f.Fontname = f.cmap.Fontname
	}
	tracer().Debugf("loaded font %q with %d glyphs", f.Fontname, f.Accel.GlyphCount())
	return f, nil
}

// FamilyName extracts family and subfamily names from a font's `name` table.
//
// Returned values are empty if no matching records exist or if records cannot be
// decoded by the current name-table reader.
func (f *Font) FamilyName() (family, subfamily string) {
	names := otquery.NameInfo(f.OT)
	return names["family"], names["subfamily"]
}

// GlyphIndex maps a code point to a glyph. It returns false if the font
// has no glyph for r.
func (f *Font) GlyphIndex(r rune) (ot.GlyphIndex, bool) {
	if f.cmap == nil {
		return 0, false
	}
	f.mx.Lock()
	defer f.mx.Unlock()
	gid, err := f.cmap.GlyphIndex(r)
	return gid, err == nil
}
