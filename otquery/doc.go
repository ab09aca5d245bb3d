/*
Package otquery answers questions about fonts, decoding values directly from
the raw bytes of their tables.

Queries are read-only and safe for concurrent use. Glyph-level queries go
through a glyf.Accelerator, which clients create once per font.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'outline.query'
func tracer() tracing.Trace {
	return tracing.Select("outline.query")
}
