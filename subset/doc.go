/*
Package subset produces TrueType fonts containing a subset of the glyphs of
a source font.

A subsetting run is driven by a Plan, which maps glyph indices of the source
font (old GIDs) to glyph indices of the output font (new GIDs), carries
option flags and collects the tables produced by the run:

	plan, err := subset.NewPlan(otf, []ot.GlyphIndex{36, 37, 38}, subset.WithFlags(subset.FlagNoHinting))
	...
	font, err := subset.Subset(plan)

The glyph closure of a plan always contains glyph 0 ('.notdef') and every
glyph referenced as a component of a composite glyph in the subset.
PlanForText creates a plan for the glyphs needed to display a text.

Tables 'glyf', 'loca' and 'head' are written by SerializeGlyf, which may be
used with any implementation of interface Plan. Subset additionally writes
the metrics tables, 'maxp', 'cmap' and 'post', passes a few glyph-independent
tables through, and assembles the output font. Tables depending on glyph
indices which are not rewritten by this package, e.g. 'GSUB', 'GPOS', 'kern'
or 'gvar', are not part of the output.

Plans are not safe for concurrent use. Runs on different plans may share a
TableCache and the glyf.Accelerator of a source font.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package subset

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'outline.subset'
func tracer() tracing.Trace {
	return tracing.Select("outline.subset")
}
