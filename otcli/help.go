package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "loca", "glyf":
		pterm.Info.Println("glyf / loca")
		pterm.Println(`
	Table 'glyf' holds the outline records of all glyphs, one after the other.
	Table 'loca' holds n+1 offsets into 'glyf' for n glyphs:
	+----------+----------+-----+----------+
	| offset 0 | offset 1 | ... | offset n |
	+----------+----------+-----+----------+
	Glyph i spans [offset i, offset i+1). Equal offsets denote an empty glyph.

	Short offsets (head.indexToLocFormat = 0) are 16 bit and store offset/2,
	long offsets (indexToLocFormat = 1) are 32 bit.
	`)
	case "composite", "components":
		pterm.Info.Println("Composite Glyphs")
		pterm.Println(`
	A composite glyph has numberOfContours < 0 and consists of component records:
	+-------+-------------+------------+-----------+
	| flags | glyph index | arg1, arg2 | transform |
	+-------+-------------+------------+-----------+
	arg1/arg2 are x/y offsets, or point numbers if ARGS_ARE_XY_VALUES is unset.
	The last record clears MORE_COMPONENTS. Instructions follow if any record
	sets WE_HAVE_INSTRUCTIONS.
	`)
	case "subset", "flags":
		pterm.Info.Println("Subsetting")
		pterm.Println(`
	subset:<text>     creates a font for the glyphs of <text> ('_' for space)
	save[:<file>]     writes the last subset font (default subset.ttf)
	flags[:<flag>]    toggles a subset flag, 'flags:none' clears all
	                  flags are no-hinting, set-overlaps, notdef-outline, retain-gids
	Glyph 0 (.notdef) and the components of composite glyphs are always kept.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	info                  font names, metrics and outline tables
	table[:<tag>[:hex]]   select a table, optionally dumping its bytes
	loca                  glyph storage statistics
	glyph[:<gid>]         select a glyph by index and print its metrics
	char:<c>              select the glyph for a character
	points                contour points of the current glyph
	path[:<ppem>]         outline path of the current glyph
	components            components of a composite glyph
	subset:<text>, save, flags (see 'help:subset')
	quit                  leave (or <ctrl>D)

	Commands may be chained, separated by spaces: 'char:A path points'.
	Help topics: loca, composite, subset
	`)
	}
}
