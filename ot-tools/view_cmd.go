package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/outline"
	"github.com/npillmayer/outline/glyf"
	"github.com/thatisuday/commando"
	"golang.org/x/image/vector"
)

func runViewCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	setupTracing(flags)
	f := mustLoadFont(fontArg(args))

	input, err := parseInput(args["text"], flags["codepoints"])
	if err != nil {
		fatalf("%v", err)
	}
	if input == "" {
		fatalf("input text is empty")
	}
	outPath := strings.TrimSpace(mustFlagString(flags["output"], "output"))
	if outPath == "" {
		fatalf("output path is empty")
	}
	ppem := mustFlagInt(flags["ppem"], "ppem")
	width := mustFlagInt(flags["width"], "width")
	height := mustFlagInt(flags["height"], "height")
	showBBoxes := mustFlagBool(flags["show-bboxes"], "show-bboxes")
	if ppem <= 0 {
		fatalf("--ppem must be > 0")
	}
	if width <= 0 || height <= 0 {
		fatalf("--width and --height must be > 0")
	}
	n, err := renderTextPNG(f, input, outPath, width, height, ppem, showBBoxes)
	if err != nil {
		fatalf("render failed: %v", err)
	}
	fmt.Printf("wrote %s (glyphs=%d)\n", outPath, n)
}

// rasterPen draws glyph outlines to a vector rasterizer. Glyph coordinates
// have y pointing upwards, image coordinates have y pointing downwards.
type rasterPen struct {
	rast   *vector.Rasterizer
	dx, dy float32
}

func (p *rasterPen) MoveTo(x, y float32) {
	p.rast.MoveTo(p.dx+x, p.dy-y)
}

func (p *rasterPen) LineTo(x, y float32) {
	p.rast.LineTo(p.dx+x, p.dy-y)
}

func (p *rasterPen) QuadTo(cx, cy, x, y float32) {
	p.rast.QuadTo(p.dx+cx, p.dy-cy, p.dx+x, p.dy-y)
}

func (p *rasterPen) ClosePath() {
	p.rast.ClosePath()
}

var _ glyf.Pen = (*rasterPen)(nil)

type glyphPath struct {
	path   *glyf.Path
	penX   float32
	lo, hi glyf.Point
	inked  bool
}

// renderTextPNG lays out the glyphs for text on a single line, centered in
// the image, and writes the image as PNG. It returns the number of glyphs
// rendered.
func renderTextPNG(f *outline.Font, text string, outPath string, width, height, ppem int, showBBoxes bool) (int, error) {
	upem := float32(f.OT.UnitsPerEm())
	if upem <= 0 {
		return 0, errors.New("invalid units-per-em")
	}
	inst := &glyf.Instance{XScale: float32(ppem), YScale: float32(ppem)}
	scale := float32(ppem) / upem

	var paths []glyphPath
	var penX float32
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := -minX, -minY
	for _, r := range text {
		gid, ok := f.GlyphIndex(r)
		if !ok {
			tracer().Infof("no glyph for %q, using .notdef", r)
		}
		path, ok := f.Accel.Path(inst, gid)
		if !ok {
			continue
		}
		gp := glyphPath{path: path, penX: penX}
		gp.lo, gp.hi, gp.inked = path.Bounds()
		if gp.inked {
			minX, maxX = min(minX, penX+gp.lo.X), max(maxX, penX+gp.hi.X)
			minY, maxY = min(minY, gp.lo.Y), max(maxY, gp.hi.Y)
		}
		paths = append(paths, gp)
		penX += float32(f.Accel.AdvanceVar(nil, gid, false)) * scale
	}
	if len(paths) == 0 || minX > maxX {
		return 0, errors.New("no drawable glyph paths found")
	}
	// baseline position, such that the union box is centered
	shiftX := (float32(width)-(maxX-minX))/2 - minX
	baseY := (float32(height)+(maxY-minY))/2 + minY

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)

	rast := vector.NewRasterizer(width, height)
	rast.DrawOp = draw.Over
	for _, gp := range paths {
		gp.path.Draw(&rasterPen{rast: rast, dx: shiftX + gp.penX, dy: baseY})
	}
	rast.Draw(img, img.Bounds(), image.Black, image.Point{})
	if showBBoxes {
		for _, gp := range paths {
			if !gp.inked {
				continue
			}
			x0 := shiftX + gp.penX
			drawRectOutline(img,
				int(math.Floor(float64(x0+gp.lo.X))), int(math.Floor(float64(baseY-gp.hi.Y))),
				int(math.Ceil(float64(x0+gp.hi.X))), int(math.Ceil(float64(baseY-gp.lo.Y))),
				color.RGBA{255, 0, 0, 255})
		}
	}
	if err := writePNG(img, outPath); err != nil {
		return 0, err
	}
	return len(paths), nil
}

func writePNG(img image.Image, outPath string) error {
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}

func drawRectOutline(img *image.RGBA, minX int, minY int, maxX int, maxY int, c color.RGBA) {
	if img == nil {
		return
	}
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	b := img.Bounds()
	minX, minY = max(minX, b.Min.X), max(minY, b.Min.Y)
	maxX, maxY = min(maxX, b.Max.X), min(maxY, b.Max.Y)
	if minX >= maxX || minY >= maxY {
		return
	}
	// top and bottom
	for x := minX; x < maxX; x++ {
		img.SetRGBA(x, minY, c)
		img.SetRGBA(x, maxY-1, c)
	}
	// left and right
	for y := minY; y < maxY; y++ {
		img.SetRGBA(minX, y, c)
		img.SetRGBA(maxX-1, y, c)
	}
}
