package subset

import (
	"errors"
	"slices"
	"strings"

	"github.com/npillmayer/outline/glyf"
	"github.com/npillmayer/outline/ot"
)

// Flags are options of a subsetting run.
type Flags uint32

const (
	// FlagNoHinting strips hinting instructions from glyphs and drops the
	// hinting tables.
	FlagNoHinting Flags = 1 << iota
	// FlagSetOverlapsFlag marks every glyph as possibly containing overlaps.
	FlagSetOverlapsFlag
	// FlagNotdefOutline keeps the outline of glyph 0. Without it, glyph 0
	// of the output is empty.
	FlagNotdefOutline
	// FlagRetainGIDs keeps the glyph indices of the source font. Glyphs not
	// in the subset are left empty.
	FlagRetainGIDs
)

func (f Flags) String() string {
	var names []string
	for _, n := range []struct {
		flag Flags
		name string
	}{
		{FlagNoHinting, "no-hinting"},
		{FlagSetOverlapsFlag, "set-overlaps"},
		{FlagNotdefOutline, "notdef-outline"},
		{FlagRetainGIDs, "retain-gids"},
	} {
		if f&n.flag != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// Plan is the interface a subsetting run uses to map glyphs and to deliver
// its output tables.
type Plan interface {
	// NewGIDForOldGID maps a glyph of the source font to the output font.
	NewGIDForOldGID(old ot.GlyphIndex) (ot.GlyphIndex, bool)
	// OldGIDForNewGID maps a glyph of the output font to the source font.
	OldGIDForNewGID(newGID ot.GlyphIndex) (ot.GlyphIndex, bool)
	// NumOutputGlyphs is the number of glyphs of the output font.
	NumOutputGlyphs() int
	// Flags returns the options of the run.
	Flags() Flags
	// AddTable takes ownership of an output table. It returns false if the
	// table could not be accepted.
	AddTable(tag ot.Tag, data []byte) bool
}

var (
	// ErrNoSource is returned when creating a plan without a source font.
	ErrNoSource = errors.New("subset plan without source font")
	// ErrNoOutlines is returned for source fonts without usable TrueType outlines.
	ErrNoOutlines = errors.New("source font has no usable TrueType outlines")
)

// GlyphPlan is the Plan implementation of this package.
type GlyphPlan struct {
	source    *ot.Font
	accel     *glyf.Accelerator
	cache     *TableCache
	flags     Flags
	oldToNew  map[ot.GlyphIndex]ot.GlyphIndex
	newToOld  map[ot.GlyphIndex]ot.GlyphIndex
	numOutput int
	unicodes  map[rune]ot.GlyphIndex // code point → old GID
	tables    map[ot.Tag][]byte
}

var _ Plan = (*GlyphPlan)(nil)

// Option configures a GlyphPlan.
type Option func(*GlyphPlan)

// WithFlags sets the flags of a plan.
func WithFlags(flags Flags) Option {
	return func(p *GlyphPlan) {
		p.flags |= flags
	}
}

// WithTableCache lets a plan read source tables from a shared cache. The
// cache must have been created for the plan's source font.
func WithTableCache(cache *TableCache) Option {
	return func(p *GlyphPlan) {
		p.cache = cache
	}
}

// WithAccelerator lets a plan use an existing outline accelerator of the
// source font.
func WithAccelerator(accel *glyf.Accelerator) Option {
	return func(p *GlyphPlan) {
		p.accel = accel
	}
}

// NewPlan creates a plan for a set of glyphs of a source font. The set is
// extended by glyph 0 and by the components of composite glyphs. Glyph
// indices outside the font are ignored.
func NewPlan(source *ot.Font, gids []ot.GlyphIndex, opts ...Option) (*GlyphPlan, error) {
	if source == nil {
		return nil, ErrNoSource
	}
	p := &GlyphPlan{
		source:   source,
		oldToNew: make(map[ot.GlyphIndex]ot.GlyphIndex),
		newToOld: make(map[ot.GlyphIndex]ot.GlyphIndex),
		unicodes: make(map[rune]ot.GlyphIndex),
		tables:   make(map[ot.Tag][]byte),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.accel == nil {
		p.accel = glyf.New(source)
	}
	if p.cache == nil {
		p.cache = NewTableCache(source)
	}
	count := p.accel.GlyphCount()
	if count == 0 {
		return nil, ErrNoOutlines
	}
	set := map[ot.GlyphIndex]struct{}{0: {}}
	for _, gid := range gids {
		if int(gid) >= count {
			tracer().Infof("glyph %d is not contained in source font, ignored", gid)
			continue
		}
		set[gid] = struct{}{}
	}
	closeOverComponents(p.accel, set)
	old := make([]ot.GlyphIndex, 0, len(set))
	for gid := range set {
		old = append(old, gid)
	}
	slices.Sort(old)
	for i, gid := range old {
		newGID := ot.GlyphIndex(i)
		if p.flags&FlagRetainGIDs != 0 {
			newGID = gid
		}
		p.oldToNew[gid] = newGID
		p.newToOld[newGID] = gid
	}
	p.numOutput = len(old)
	if p.flags&FlagRetainGIDs != 0 {
		p.numOutput = int(old[len(old)-1]) + 1
	}
	tracer().Debugf("subset plan with %d glyphs, %d output glyphs, flags %s",
		len(old), p.numOutput, p.flags)
	return p, nil
}

// NewGIDForOldGID maps a glyph of the source font to the output font.
func (p *GlyphPlan) NewGIDForOldGID(old ot.GlyphIndex) (ot.GlyphIndex, bool) {
	gid, ok := p.oldToNew[old]
	return gid, ok
}

// OldGIDForNewGID maps a glyph of the output font to the source font.
func (p *GlyphPlan) OldGIDForNewGID(newGID ot.GlyphIndex) (ot.GlyphIndex, bool) {
	gid, ok := p.newToOld[newGID]
	return gid, ok
}

// NumOutputGlyphs is the number of glyphs of the output font.
func (p *GlyphPlan) NumOutputGlyphs() int {
	return p.numOutput
}

// Flags returns the options of the plan.
func (p *GlyphPlan) Flags() Flags {
	return p.flags
}

// AddTable stores an output table.
func (p *GlyphPlan) AddTable(tag ot.Tag, data []byte) bool {
	if data == nil {
		return false
	}
	p.tables[tag] = data
	return true
}

// Table returns an output table added to the plan.
func (p *GlyphPlan) Table(tag ot.Tag) ([]byte, bool) {
	data, ok := p.tables[tag]
	return data, ok
}

// Source returns the source font.
func (p *GlyphPlan) Source() *ot.Font {
	return p.source
}

// Accelerator returns the outline accelerator of the source font.
func (p *GlyphPlan) Accelerator() *glyf.Accelerator {
	return p.accel
}

// Cache returns the table cache of the source font.
func (p *GlyphPlan) Cache() *TableCache {
	return p.cache
}

// GlyphCount returns the number of glyphs in the subset, which is less than
// NumOutputGlyphs if glyph indices are retained.
func (p *GlyphPlan) GlyphCount() int {
	return len(p.oldToNew)
}

// OldGIDs returns the glyphs of the subset in the order of their new
// glyph indices.
func (p *GlyphPlan) OldGIDs() []ot.GlyphIndex {
	gids := make([]ot.GlyphIndex, 0, len(p.oldToNew))
	for old := range p.oldToNew {
		gids = append(gids, old)
	}
	slices.Sort(gids)
	return gids
}

// Unicodes returns the code points retained by the plan, mapped to new
// glyph indices.
func (p *GlyphPlan) Unicodes() map[rune]ot.GlyphIndex {
	m := make(map[rune]ot.GlyphIndex, len(p.unicodes))
	for r, old := range p.unicodes {
		if gid, ok := p.oldToNew[old]; ok {
			m[r] = gid
		}
	}
	return m
}
