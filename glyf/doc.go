/*
Package glyf provides read access to TrueType glyph outlines.

A TrueType font stores its outlines in table 'glyf', indexed by table 'loca'.
This package locates the record of a glyph, decodes simple and composite
glyphs into contour points, assembles the points of composite glyphs
(including the four phantom points carrying the glyph's metrics), and drives
a Pen with the resulting quadratic outline.

The central type is Accelerator, a read-only view over a parsed font:

	otf, _ := ot.Parse(fontBinary)
	acc := glyf.New(otf)
	path, ok := acc.Path(nil, gid)

An Accelerator may be used by any number of goroutines concurrently.
Variation deltas are not computed by this package; clients with a glyph
variation engine plug it in with an Instance's DeltaApplier.

Glyph records may be copied and modified with type Editable, which is used by
package subset to rewrite glyph data.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'outline.glyf'
func tracer() tracing.Trace {
	return tracing.Select("outline.glyf")
}
