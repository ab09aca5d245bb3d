package main

import (
	"fmt"

	"github.com/npillmayer/outline"
	"github.com/npillmayer/outline/ot"
	"github.com/npillmayer/outline/otquery"
	"github.com/thatisuday/commando"
	"golang.org/x/text/unicode/runenames"
)

func runGlyphCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	f := mustLoadFont(fontArg(args))
	showPoints := mustFlagBool(flags["points"], "points")
	showPath := mustFlagBool(flags["path"], "path")

	gids, err := parseGlyphIndices(flags["gids"])
	if err != nil {
		fatalf("%v", err)
	}
	if len(gids) > 0 {
		for _, gid := range gids {
			printGlyph(f, gid, showPoints, showPath)
		}
		return
	}
	input, err := parseInput(args["text"], flags["codepoints"])
	if err != nil {
		fatalf("%v", err)
	}
	if input == "" {
		fatalf("input text is empty")
	}
	for _, r := range input {
		gid, ok := f.GlyphIndex(r)
		fmt.Printf("U+%04X %s", r, runenames.Name(r))
		if !ok {
			fmt.Println(": no glyph")
			continue
		}
		fmt.Println()
		printGlyph(f, gid, showPoints, showPath)
	}
}

func printGlyph(f *outline.Font, gid ot.GlyphIndex, showPoints, showPath bool) {
	if int(gid) >= f.Accel.GlyphCount() {
		fmt.Printf("  glyph %d: out of range (glyphs: %d)\n", gid, f.Accel.GlyphCount())
		return
	}
	m := otquery.GlyphMetrics(f.Accel, gid)
	fmt.Printf("  glyph %d: %v\n", gid, m)
	switch {
	case m.Components > 0:
		fmt.Printf("  components:")
		for c := range f.Accel.Glyph(gid).Components() {
			fmt.Printf(" %d", c.GlyphIndex)
		}
		fmt.Println()
	case m.Contours > 0:
		fmt.Printf("  contours=%d points=%d\n", m.Contours, m.Points)
	}
	if instr := f.Accel.Glyph(gid).Instructions(); len(instr) > 0 {
		fmt.Printf("  instructions: %d bytes\n", len(instr))
	}
	if showPoints {
		points, _ := f.Accel.Points(nil, gid)
		for i, p := range points {
			on := "off"
			if p.OnCurve() {
				on = "on"
			}
			end := ""
			if p.EndPoint {
				end = " end"
			}
			fmt.Printf("  %4d: (%g, %g) %s%s\n", i, p.X, p.Y, on, end)
		}
	}
	if showPath {
		if path, ok := f.Accel.Path(nil, gid); ok {
			fmt.Printf("  path: %s\n", path)
		}
	}
}
