package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/outline/ot"
	"github.com/npillmayer/outline/otquery"
	"github.com/thatisuday/commando"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	f := mustLoadFont(fontArg(args))
	otf := f.OT

	fmt.Printf("Path: %s\n", args["font"].Value)
	fmt.Printf("Type: %s\n", otquery.FontType(otf))
	names := otquery.NameInfo(otf)
	for _, key := range []string{"family", "subfamily", "version", "postscript"} {
		if value := names[key]; value != "" {
			fmt.Printf("%s: %s\n", strings.ToUpper(key[:1])+key[1:], value)
		}
	}
	if head, ok := otquery.HeadInfo(otf); ok {
		fmt.Printf("Units/em: %d, created %s, modified %s\n", head.UnitsPerEm,
			head.CreatedAt().Format("2006-01-02"), head.ModifiedAt().Format("2006-01-02"))
	}
	m := otquery.FontMetrics(otf)
	fmt.Printf("Metrics: ascent=%d descent=%d line-gap=%d max-advance=%d\n",
		m.Ascent, m.Descent, m.LineGap, m.MaxAdvance)

	tags := otf.TableTags()
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	fmt.Printf("Tables (%d):", len(tags))
	for _, tag := range tags {
		fmt.Printf(" %s", tag.String())
	}
	fmt.Println()
	fmt.Printf("Outline: %s\n", strings.Join(otquery.OutlineTables(otf), ","))

	if loca, ok := otquery.LocaInfo(otf, f.Accel); ok {
		format := "short"
		if loca.Long {
			format = "long"
		}
		fmt.Printf("Glyphs: %d (simple=%d composite=%d empty=%d), loca %s with %d entries, glyf %d bytes\n",
			loca.GlyphCount, loca.Simple, loca.Composite, loca.Empty, format, loca.Entries, loca.GlyfSize)
	}
	if maxp, ok := otquery.MaxPInfo(otf); ok && maxp.HasExtendedProfile {
		fmt.Printf("Hinting: %v (max instructions %d bytes)\n", maxp.UsesHinting(), maxp.MaxSizeOfInstructions)
	}

	errs := otf.Errors()
	warns := otf.Warnings()
	fmt.Printf("Issues: errors=%d warnings=%d critical=%v\n", len(errs), len(warns), otf.HasCriticalErrors())

	if len(args["tables"].Value) > 0 {
		printSelectedTables(otf, args["tables"].Value)
	}
	if mustFlagBool(flags["errors"], "errors") {
		for _, e := range errs {
			fmt.Printf("error: %s\n", e.Error())
		}
		for _, w := range warns {
			fmt.Printf("warning: %s\n", w.String())
		}
	}
}

func printSelectedTables(otf *ot.Font, raw string) {
	requested := splitCSVSpace(raw)
	for _, t := range requested {
		tagName := strings.TrimSpace(t)
		if tagName == "" {
			continue
		}
		table := otf.Table(ot.T(tagName))
		if table == nil {
			fmt.Printf("table %s: missing\n", tagName)
			continue
		}
		off, size := table.Extent()
		fmt.Printf("table %s: offset=%d size=%d\n", tagName, off, size)
	}
}
