package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/outline/ot"
	"github.com/npillmayer/outline/subset"
	"github.com/thatisuday/commando"
)

func runSubsetCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	f := mustLoadFont(fontArg(args))

	outPath := strings.TrimSpace(mustFlagString(flags["output"], "output"))
	if outPath == "" {
		fatalf("output path is empty")
	}
	var sflags subset.Flags
	for name, flag := range map[string]subset.Flags{
		"no-hinting":  subset.FlagNoHinting,
		"retain-gids": subset.FlagRetainGIDs,
		"notdef":      subset.FlagNotdefOutline,
		"overlaps":    subset.FlagSetOverlapsFlag,
	} {
		if mustFlagBool(flags[name], name) {
			sflags |= flag
		}
	}
	input, err := parseInput(args["text"], flags["codepoints"])
	if err != nil {
		fatalf("%v", err)
	}
	gids, err := parseGlyphIndices(flags["gids"])
	if err != nil {
		fatalf("%v", err)
	}
	if input == "" && len(gids) == 0 {
		fatalf("neither text nor glyph indices given")
	}
	opts := []subset.Option{
		subset.WithFlags(sflags),
		subset.WithAccelerator(f.Accel),
	}
	var plan *subset.GlyphPlan
	if input != "" {
		plan, err = subset.PlanForText(f.OT, input, opts...)
		if err == nil && len(gids) > 0 {
			plan, err = extendPlan(f.OT, plan, gids, opts)
		}
	} else {
		plan, err = subset.NewPlan(f.OT, gids, opts...)
	}
	if err != nil {
		fatalf("cannot plan subset: %v", err)
	}
	out, err := subset.Subset(plan)
	if err != nil {
		fatalf("subset failed: %v", err)
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatalf("cannot create output directory: %v", err)
		}
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		fatalf("cannot write %s: %v", outPath, err)
	}
	fmt.Printf("wrote %s (glyphs=%d of %d, flags=%s, %d bytes)\n",
		outPath, plan.NumOutputGlyphs(), f.Accel.GlyphCount(), sflags, len(out))
}

// extendPlan creates a plan for the glyphs of plan together with gids. The
// character map of plan is kept.
func extendPlan(otf *ot.Font, plan *subset.GlyphPlan, gids []ot.GlyphIndex, opts []subset.Option) (*subset.GlyphPlan, error) {
	all := append(plan.OldGIDs(), gids...)
	extended, err := subset.NewPlan(otf, all, opts...)
	if err != nil {
		return nil, err
	}
	unicodes := make(map[rune]ot.GlyphIndex)
	for r, gid := range plan.Unicodes() {
		old, ok := plan.OldGIDForNewGID(gid)
		if ok {
			unicodes[r] = old
		}
	}
	extended.RetainUnicodes(unicodes)
	return extended, nil
}
