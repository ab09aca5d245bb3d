/*
Package ot provides access to the tables of a TrueType-flavored OpenType font.

Package ot parses the table directory of an SFNT container and exposes the
tables needed to work with glyph outlines:

▪︎ 'head' (font header), including the index-to-location format

▪︎ 'maxp' (glyph count)

▪︎ 'hhea'/'hmtx' and 'vhea'/'vmtx' (static horizontal and vertical metrics)

▪︎ 'loca' and 'glyf' (index table and glyph outline data)

▪︎ 'gvar' (header only: the axis count of the font's variation store)

Every other table is kept as a generic table, i.e. no table information
will be dropped. As with package x/image/font/sfnt, the font's binary data is
kept in memory and tables are views into it. Clients must not modify the
bytes handed to Parse while the font is in use.

Package ot does not interpret outlines; this is the job of package glyf.
Bugs in fonts are a fact of life. Wherever possible, parsing will record
an issue (see FontError and FontWarning) and continue, instead of refusing
the font.

Package ot is also able to write fonts: type FontBuilder assembles a set of
tables into a new SFNT binary via seehuhn.de/go/sfnt/header, calculating table
checksums and the font-wide checksum adjustment in table 'head'.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}
