package main

import (
	"errors"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/npillmayer/outline/glyf"
	"github.com/npillmayer/outline/ot"
	"github.com/npillmayer/outline/otquery"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/runenames"
)

func glyphOp(intp *Intp, op *Op) (err error, stop bool) {
	if op.noArg() {
		var gid ot.GlyphIndex
		if gid, err = intp.checkGlyph(); err == nil {
			printGlyphMetrics(intp, gid)
		}
		return
	}
	n, err := strconv.Atoi(op.arg)
	if err != nil {
		return fmt.Errorf("glyph index not numeric: %v", op.arg), false
	}
	if n < 0 || n >= intp.font.Accel.GlyphCount() {
		return fmt.Errorf("glyph index out of range: %d", n), false
	}
	intp.gid = n
	printGlyphMetrics(intp, ot.GlyphIndex(n))
	return
}

func charOp(intp *Intp, op *Op) (error, bool) {
	r, size := utf8.DecodeRuneInString(op.arg)
	if size == 0 || size != len(op.arg) {
		return errors.New("char needs a single character, e.g. char:A"), false
	}
	gid, ok := intp.font.GlyphIndex(r)
	if !ok {
		return fmt.Errorf("font has no glyph for %q", r), false
	}
	pterm.Printf("%q (U+%04X %s) maps to glyph %d\n", r, r, runenames.Name(r), gid)
	intp.gid = int(gid)
	printGlyphMetrics(intp, gid)
	return nil, false
}

func printGlyphMetrics(intp *Intp, gid ot.GlyphIndex) {
	m := otquery.GlyphMetrics(intp.font.Accel, gid)
	data := [][]string{
		{"Glyph", "Kind", "Advance", "LSB", "RSB", "BBox", "Contours", "Points", "Components"},
		{
			strconv.Itoa(int(gid)), m.Kind.String(),
			strconv.Itoa(int(m.Advance)), strconv.Itoa(int(m.LSB)), strconv.Itoa(int(m.RSB)),
			m.BBox.String(),
			strconv.Itoa(m.Contours), strconv.Itoa(m.Points), strconv.Itoa(m.Components),
		},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func pointsOp(intp *Intp, op *Op) (err error, stop bool) {
	var gid ot.GlyphIndex
	if gid, err = intp.checkGlyph(); err != nil {
		return
	}
	points, ok := intp.font.Accel.Points(nil, gid)
	if !ok {
		return fmt.Errorf("cannot decode glyph %d", gid), false
	}
	data := [][]string{{"#", "X", "Y", "On curve", "End"}}
	for i, p := range points {
		name := strconv.Itoa(i)
		if i >= len(points)-glyf.PhantomCount {
			name = fmt.Sprintf("phantom %d", i-len(points)+glyf.PhantomCount)
		}
		end := ""
		if p.EndPoint {
			end = "end"
		}
		data = append(data, []string{
			name,
			strconv.FormatFloat(float64(p.X), 'g', -1, 32),
			strconv.FormatFloat(float64(p.Y), 'g', -1, 32),
			strconv.FormatBool(p.OnCurve()),
			end,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return
}

func pathOp(intp *Intp, op *Op) (err error, stop bool) {
	var gid ot.GlyphIndex
	if gid, err = intp.checkGlyph(); err != nil {
		return
	}
	var inst *glyf.Instance
	if ppem, ok := op.hasArg(); ok { // path:<ppem>
		n, err := strconv.Atoi(ppem)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid ppem: %v", ppem), false
		}
		inst = &glyf.Instance{XScale: float32(n), YScale: float32(n)}
	}
	path, ok := intp.font.Accel.Path(inst, gid)
	if !ok {
		return fmt.Errorf("cannot decode glyph %d", gid), false
	}
	if len(path.Segments) == 0 {
		pterm.Println("glyph has an empty outline")
		return
	}
	pterm.Println(path.String())
	if lo, hi, ok := path.Bounds(); ok {
		pterm.Printf("bounds: (%g,%g)-(%g,%g)\n", lo.X, lo.Y, hi.X, hi.Y)
	}
	return
}

func componentsOp(intp *Intp, op *Op) (err error, stop bool) {
	var gid ot.GlyphIndex
	if gid, err = intp.checkGlyph(); err != nil {
		return
	}
	g := intp.font.Accel.Glyph(gid)
	if g.Kind() != glyf.Composite {
		pterm.Printf("glyph %d is %s, not composite\n", gid, g.Kind())
		return
	}
	data := [][]string{{"Component", "Flags", "Placement", "Instructions"}}
	for c := range g.Components() {
		placement := fmt.Sprintf("offset (%d,%d)", c.Arg1, c.Arg2)
		if c.IsAnchored() {
			parent, child := c.AnchorPoints()
			placement = fmt.Sprintf("anchor %d↔%d", parent, child)
		}
		data = append(data, []string{
			strconv.Itoa(int(c.GlyphIndex)),
			fmt.Sprintf("0x%04x", c.Flags),
			placement,
			strconv.FormatBool(c.HasInstructions()),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return
}
