package glyf

import (
	"errors"
	"fmt"

	"github.com/npillmayer/outline/ot"
)

// ContourPoint is a point of a glyph outline in font units.
type ContourPoint struct {
	X, Y     float32
	Flag     uint8 // point flags as stored in the glyph, see FlagOnCurve
	EndPoint bool  // last point of a contour
}

// OnCurve is true for points on the outline, false for control points.
func (p ContourPoint) OnCurve() bool {
	return p.Flag&FlagOnCurve != 0
}

func (p ContourPoint) String() string {
	c := "off"
	if p.OnCurve() {
		c = "on"
	}
	if p.EndPoint {
		c += ",end"
	}
	return fmt.Sprintf("(%g,%g %s)", p.X, p.Y, c)
}

// Every glyph's point list is followed by four phantom points, carrying
// the glyph's horizontal and vertical metrics.
const (
	PhantomLeft = iota
	PhantomRight
	PhantomTop
	PhantomBottom
	PhantomCount
)

// Composite glyphs may nest components up to this depth.
const maxNestingLevel = 6

var errNestingTooDeep = errors.New("composite glyph nesting too deep")

// A single query resolves at most this many components, counting each
// occurrence of a shared subtree.
const maxComponentOperations = 4096

var errTooManyComponents = errors.New("composite glyph has too many components")

var errDeltasFailed = errors.New("cannot apply variation deltas")

// DeltaApplier adds glyph variation deltas to the points of a glyph.
// Points include the four phantom points; for composite glyphs there is one
// point per component, the delta of which translates the component.
//
// ApplyDeltas returns false if the deltas for gid cannot be computed; the
// points of the glyph are then treated as unavailable.
type DeltaApplier interface {
	ApplyDeltas(gid ot.GlyphIndex, coords []float32, points []ContourPoint) bool
}

// Instance selects the scale and variation coordinates outlines and metrics
// are computed for. A nil *Instance denotes the default instance in font units.
type Instance struct {
	XScale, YScale float32      // output units per em; zero means font units
	Coords         []float32    // normalized variation coordinates, one per axis
	Deltas         DeltaApplier // may be nil
}

// scale returns the factors to convert font units to output units.
func (inst *Instance) scale(upem uint16) (sx, sy float32) {
	if inst == nil || upem == 0 {
		return 1, 1
	}
	sx, sy = 1, 1
	if inst.XScale != 0 {
		sx = inst.XScale / float32(upem)
	}
	if inst.YScale != 0 {
		sy = inst.YScale / float32(upem)
	}
	return sx, sy
}
