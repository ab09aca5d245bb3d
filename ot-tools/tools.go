package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/outline"
	"github.com/npillmayer/outline/ot"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/thatisuday/commando"
	"golang.org/x/image/font/gofont/goregular"
)

// tracer traces with key 'outline'
func tracer() tracing.Trace {
	return tracing.Select("outline")
}

func main() {
	commando.
		SetExecutableName("ot-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for TrueType outline diagnostics and font subsetting.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("font").
		SetDescription("Print diagnostics and table information for a TrueType font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "TrueType font file path ('go' for the built-in Go Regular)", "").
		AddArgument("tables...", "optional list of table tags (e.g. glyf,loca,head)", "").
		AddFlag("errors,e", "print parse errors and warnings", commando.Bool, nil).
		SetAction(runFontCommand)

	commando.
		Register("glyph").
		SetDescription("Print metrics and outlines of the glyphs for a text.").
		SetShortDescription("glyph diagnostics").
		AddArgument("font", "TrueType font file path ('go' for the built-in Go Regular)", "").
		AddArgument("text...", "text to look up glyphs for", "").
		AddFlag("codepoints,c", "codepoints instead of text (comma/space separated, e.g. U+0041,U+00E9)", commando.String, "-").
		AddFlag("gids,g", "glyph indices instead of text (comma/space separated)", commando.String, "-").
		AddFlag("points,P", "print contour points", commando.Bool, nil).
		AddFlag("path", "print outline path", commando.Bool, nil).
		SetAction(runGlyphCommand)

	commando.
		Register("view").
		SetDescription("Render the glyphs for a text to a PNG image.").
		SetShortDescription("glyphs to image").
		AddArgument("font", "TrueType font file path ('go' for the built-in Go Regular)", "").
		AddArgument("text...", "text to render", "").
		AddFlag("codepoints,c", "codepoints instead of text (comma/space separated, e.g. U+0041,U+00E9)", commando.String, "-").
		AddFlag("output,o", "output PNG file", commando.String, "ot-tools-view.png").
		AddFlag("show-bboxes,B", "draw red bounding-box outlines per rendered glyph", commando.Bool, nil).
		AddFlag("ppem,p", "render scale in pixels-per-em", commando.Int, 96).
		AddFlag("width,W", "image width in pixels", commando.Int, 320).
		AddFlag("height,H", "image height in pixels", commando.Int, 240).
		SetAction(runViewCommand)

	commando.
		Register("subset").
		SetDescription("Write a font containing the glyphs for a text.").
		SetShortDescription("subset a font").
		AddArgument("font", "TrueType font file path ('go' for the built-in Go Regular)", "").
		AddArgument("text...", "text to keep glyphs for", "").
		AddFlag("codepoints,c", "codepoints instead of text (comma/space separated, e.g. U+0041,U+00E9)", commando.String, "-").
		AddFlag("gids,g", "additional glyph indices (comma/space separated)", commando.String, "-").
		AddFlag("output,o", "output font file", commando.String, "ot-tools-subset.ttf").
		AddFlag("no-hinting,n", "strip hinting instructions", commando.Bool, nil).
		AddFlag("retain-gids,r", "keep glyph indices of the source font", commando.Bool, nil).
		AddFlag("notdef,N", "keep the outline of glyph 0", commando.Bool, nil).
		AddFlag("overlaps", "set the overlaps flag of every glyph", commando.Bool, nil).
		SetAction(runSubsetCommand)

	commando.Parse(nil)
}

// setupTracing routes tracing output to the Go logger. Levels are Error,
// or Info with --verbose.
func setupTracing(flags map[string]commando.FlagValue) {
	level := "Error"
	if verbose, err := flags["verbose"].GetBool(); err == nil && verbose {
		level = "Info"
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":      "go",
		"trace.outline":        level,
		"trace.outline.glyf":   level,
		"trace.outline.subset": level,
		"trace.outline.query":  level,
		"trace.font.opentype":  level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Fprintf(os.Stderr, "ot-tools: cannot configure tracing: %v\n", err)
		return
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

// mustLoadFont loads a font from a file, or the built-in Go Regular font
// for path "go".
func mustLoadFont(path string) *outline.Font {
	var f *outline.Font
	var err error
	if path == "go" {
		f, err = outline.FromBinary(goregular.TTF)
	} else {
		f, err = outline.LoadFont(path)
	}
	if err != nil {
		fatalf("cannot load font %s: %v", path, err)
	}
	return f
}

func fontArg(args map[string]commando.ArgValue) string {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	return fontPath
}

// parseInput returns the text to process, either from the text argument or
// from a list of code points.
func parseInput(textArg commando.ArgValue, cpFlag commando.FlagValue) (string, error) {
	cpSpec, err := cpFlag.GetString()
	if err != nil {
		return "", fmt.Errorf("invalid --codepoints flag: %w", err)
	}
	cpSpec = strings.TrimSpace(cpSpec)
	if cpSpec != "" && cpSpec != "-" {
		runes, err := parseCodepoints(cpSpec)
		if err != nil {
			return "", err
		}
		return string(runes), nil
	}
	// commando joins variadic argument parts by comma
	return strings.ReplaceAll(textArg.Value, ",", " "), nil
}

func parseCodepoints(spec string) ([]rune, error) {
	var runes []rune
	for _, token := range splitCSVSpace(spec) {
		r, err := parseCodepointToken(token)
		if err != nil {
			return nil, err
		}
		runes = append(runes, r)
	}
	return runes, nil
}

func parseCodepointToken(token string) (rune, error) {
	t := strings.TrimSpace(token)
	upper := strings.ToUpper(t)
	base := 10
	switch {
	case strings.HasPrefix(upper, "U+"):
		t, base = t[2:], 16
	case strings.HasPrefix(upper, "0X"):
		t, base = t[2:], 16
	}
	n, err := strconv.ParseUint(t, base, 32)
	if err != nil || n > 0x10FFFF {
		return 0, fmt.Errorf("invalid code point %q", token)
	}
	return rune(n), nil
}

func parseGlyphIndices(flag commando.FlagValue) ([]ot.GlyphIndex, error) {
	spec, err := flag.GetString()
	if err != nil {
		return nil, fmt.Errorf("invalid --gids flag: %w", err)
	}
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "-" {
		return nil, nil
	}
	var gids []ot.GlyphIndex
	for _, token := range splitCSVSpace(spec) {
		n, err := strconv.ParseUint(token, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid glyph index %q", token)
		}
		gids = append(gids, ot.GlyphIndex(n))
	}
	return gids, nil
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return s
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "ot-tools: "+format+"\n", args...)
	os.Exit(1)
}
