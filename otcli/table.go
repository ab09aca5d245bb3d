package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/outline/ot"
	"github.com/npillmayer/outline/otquery"
	"github.com/npillmayer/outline/subset"
	"github.com/pterm/pterm"
)

func tableOp(intp *Intp, op *Op) (error, bool) {
	tag, ok := op.hasArg()
	if !ok {
		if err := intp.checkTable(); err != nil {
			return err, false
		}
		tag = intp.table.Self().NameTag().String()
	}
	if intp.table = intp.font.OT.Table(ot.T(tag)); intp.table == nil {
		return errors.New("table not found in font"), false
	}
	tracer().Infof("setting table: %v", tag)
	off, size := intp.table.Extent()
	pterm.Printf("table %s at offset %d holds %d bytes\n", tag, off, size)
	if op.format == "hex" {
		b := intp.table.Binary()
		if len(b) > 256 {
			b = b[:256]
		}
		pterm.Print(hex.Dump(b))
	}
	return nil, false
}

func infoOp(intp *Intp, op *Op) (error, bool) {
	otf := intp.font.OT
	data := [][]string{
		{"Property", "Value"},
		{"Type", otquery.FontType(otf)},
	}
	names := otquery.NameInfo(otf)
	for _, key := range []string{"family", "subfamily", "version", "postscript"} {
		if v := names[key]; v != "" {
			data = append(data, []string{key, v})
		}
	}
	m := otquery.FontMetrics(otf)
	data = append(data,
		[]string{"units/em", strconv.Itoa(int(m.UnitsPerEm))},
		[]string{"ascent/descent", fmt.Sprintf("%d / %d", m.Ascent, m.Descent)},
		[]string{"line gap", strconv.Itoa(int(m.LineGap))},
		[]string{"outline tables", strings.Join(otquery.OutlineTables(otf), ",")},
	)
	if maxp, ok := otquery.MaxPInfo(otf); ok {
		data = append(data, []string{"glyphs", strconv.Itoa(int(maxp.NumGlyphs))})
		if maxp.HasExtendedProfile {
			data = append(data, []string{"hinted", strconv.FormatBool(maxp.UsesHinting())})
		}
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func locaOp(intp *Intp, op *Op) (error, bool) {
	info, ok := otquery.LocaInfo(intp.font.OT, intp.font.Accel)
	if !ok {
		return errors.New("font has no accessible glyph outlines"), false
	}
	format := "short (16 bit)"
	if info.Long {
		format = "long (32 bit)"
	}
	data := [][]string{
		{"Entries", "Format", "glyf bytes", "Simple", "Composite", "Empty"},
		{
			strconv.Itoa(info.Entries), format, strconv.Itoa(info.GlyfSize),
			strconv.Itoa(info.Simple), strconv.Itoa(info.Composite), strconv.Itoa(info.Empty),
		},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

// --- Subsetting -------------------------------------------------------

var flagNames = map[string]subset.Flags{
	"no-hinting":     subset.FlagNoHinting,
	"set-overlaps":   subset.FlagSetOverlapsFlag,
	"notdef-outline": subset.FlagNotdefOutline,
	"retain-gids":    subset.FlagRetainGIDs,
}

// flagsOp toggles a subset flag, or clears all flags for argument "none".
func flagsOp(intp *Intp, op *Op) (error, bool) {
	if name, ok := op.hasArg(); ok {
		if name == "none" {
			intp.flags = 0
		} else if f, ok := flagNames[strings.ToLower(name)]; ok {
			intp.flags ^= f
		} else {
			return fmt.Errorf("unknown subset flag: %s", name), false
		}
	}
	pterm.Printf("subset flags: %s\n", intp.flags)
	return nil, false
}

func subsetOp(intp *Intp, op *Op) (error, bool) {
	text, ok := op.hasArg()
	if !ok {
		return errors.New("subset needs a text, e.g. subset:Hello"), false
	}
	// spaces separate command steps
	text = strings.ReplaceAll(text, "_", " ")
	plan, err := subset.PlanForText(intp.font.OT, text,
		subset.WithFlags(intp.flags),
		subset.WithAccelerator(intp.font.Accel))
	if err != nil {
		return err, false
	}
	out, err := subset.Subset(plan)
	if err != nil {
		return err, false
	}
	intp.subset = out
	data := [][]string{{"Old GID", "New GID"}}
	for _, old := range plan.OldGIDs() {
		gid, _ := plan.NewGIDForOldGID(old)
		data = append(data, []string{strconv.Itoa(int(old)), strconv.Itoa(int(gid))})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Printf("subset font has %d glyphs and %d bytes (source: %d bytes)\n",
		plan.NumOutputGlyphs(), len(out), len(intp.font.OT.Binary()))
	return nil, false
}

func saveOp(intp *Intp, op *Op) (error, bool) {
	if intp.subset == nil {
		return errors.New("no subset font created yet"), false
	}
	path, ok := op.hasArg()
	if !ok {
		path = "subset.ttf"
	}
	if err := os.WriteFile(path, intp.subset, 0o644); err != nil {
		return err, false
	}
	pterm.Info.Printf("wrote %s\n", path)
	return nil, false
}
