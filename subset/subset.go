package subset

import (
	"errors"
	"fmt"
	"slices"

	"github.com/npillmayer/outline/ot"
)

// ErrSubsetFailed is returned if a subsetting run could not produce all of
// its tables. No table is added to the plan in this case.
var ErrSubsetFailed = errors.New("subsetting failed")

// staging collects the tables of a run and hides them from the plan until
// the run has succeeded.
type staging struct {
	Plan
	tables map[ot.Tag][]byte
}

func (s *staging) AddTable(tag ot.Tag, data []byte) bool {
	if data == nil {
		return false
	}
	s.tables[tag] = data
	return true
}

// run is a single subsetting run over a plan.
type run struct {
	plan    *GlyphPlan
	stage   *staging
	success bool
	err     error
}

func newRun(plan *GlyphPlan) *run {
	return &run{
		plan:    plan,
		stage:   &staging{Plan: plan, tables: make(map[ot.Tag][]byte)},
		success: true,
	}
}

// check records the outcome of a step. The first failure is kept.
func (r *run) check(ok bool, err error) bool {
	if !ok && r.success {
		r.success = false
		r.err = err
		tracer().Errorf("subset: %v", err)
	}
	return r.success
}

func (r *run) table(tag string) ([]byte, bool) {
	return r.plan.cache.Table(ot.T(tag))
}

func (r *run) add(tag ot.Tag, data []byte) {
	r.check(r.stage.AddTable(tag, data), fmt.Errorf("%w: %s", ErrTableRejected, tag))
}

func (r *run) glyf() {
	head, ok := r.table("head")
	if !r.check(ok, errNoHead) {
		return
	}
	err := SerializeGlyf(r.stage, r.plan.accel, head)
	r.check(err == nil, err)
}

func (r *run) maxp() {
	maxp, ok := r.table("maxp")
	if !r.check(ok, errors.New("source font has no valid 'maxp' table")) {
		return
	}
	noHinting := r.plan.flags&FlagNoHinting != 0
	r.add(ot.T("maxp"), subsetMaxP(maxp, r.plan.NumOutputGlyphs(), noHinting))
}

func (r *run) metrics() {
	src := r.plan.source
	if header, ok := r.table("hhea"); ok && src.HMtx != nil {
		hea, mtx := subsetMetrics(r.stage, src.HMtx.HMetrics, header)
		r.add(ot.T("hhea"), hea)
		r.add(ot.T("hmtx"), mtx)
	}
	if header, ok := r.table("vhea"); ok && src.VMtx != nil {
		hea, mtx := subsetMetrics(r.stage, src.VMtx.VMetrics, header)
		r.add(ot.T("vhea"), hea)
		r.add(ot.T("vmtx"), mtx)
	}
}

func (r *run) cmapAndPost() {
	r.add(ot.T("cmap"), buildCmap(r.plan.Unicodes()))
	if post, ok := r.table("post"); ok {
		r.add(ot.T("post"), subsetPost(post))
	}
}

func (r *run) passThrough() {
	tags := passThroughTables
	if r.plan.flags&FlagNoHinting == 0 {
		tags = append(slices.Clone(tags), hintingTables...)
	}
	for _, tag := range tags {
		if data, ok := r.plan.cache.Table(tag); ok {
			r.add(tag, slices.Clone(data))
		}
	}
}

// commit hands the staged tables to the plan, in tag order.
func (r *run) commit() {
	tags := make([]ot.Tag, 0, len(r.stage.tables))
	for tag := range r.stage.tables {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	for _, tag := range tags {
		r.plan.AddTable(tag, r.stage.tables[tag])
	}
}

// Subset performs a subsetting run for a plan and returns the binary of the
// output font. The output tables are added to the plan as well.
//
// Either all tables are produced or the run fails with ErrSubsetFailed,
// wrapping the cause, and the plan is left unchanged.
func Subset(plan *GlyphPlan) ([]byte, error) {
	if plan == nil {
		return nil, ErrNoSource
	}
	r := newRun(plan)
	for _, step := range []func(){r.glyf, r.maxp, r.metrics, r.cmapAndPost, r.passThrough} {
		if !r.success {
			break
		}
		step()
	}
	if !r.success {
		return nil, fmt.Errorf("%w: %w", ErrSubsetFailed, r.err)
	}
	r.commit()
	fb := ot.NewFontBuilder()
	for tag, data := range r.stage.tables {
		fb.AddTable(tag, data)
	}
	font, err := fb.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubsetFailed, err)
	}
	tracer().Infof("subset font with %d glyphs, %d tables, %d bytes",
		plan.NumOutputGlyphs(), len(r.stage.tables), len(font))
	return font, nil
}
