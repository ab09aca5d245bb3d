package ot

import (
	"encoding/binary"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	tag := Tag(0x676c7966)
	if tag.String() != "glyf" {
		t.Errorf("expected tag 0x676c7966 to be 'glyf', is %s", tag.String())
	}
	tag = MakeTag([]byte("loca"))
	if tag.String() != "loca" {
		t.Errorf("expected tag MakeTag(loca) to be 'loca', is %s", tag.String())
	}
	tag = T("cvt ")
	if tag.String() != "cvt " {
		t.Errorf("expected tag T(cvt ) to be 'cvt ', is %q", tag.String())
	}
}

func TestTableName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	tb := tableBase{}
	tb.name = 0x6c6f6361
	s := tb.Self().NameTag().String()
	if s != "loca" {
		t.Errorf("expected table name to be loca, is %v", s)
	}
}

func TestErrorSeverity(t *testing.T) {
	tests := []struct {
		severity ErrorSeverity
		expected string
	}{
		{SeverityCritical, "CRITICAL"},
		{SeverityMajor, "MAJOR"},
		{SeverityMinor, "MINOR"},
		{ErrorSeverity(999), "UNKNOWN"},
	}
	for _, tt := range tests {
		if result := tt.severity.String(); result != tt.expected {
			t.Errorf("ErrorSeverity(%d).String() = %q; want %q", tt.severity, result, tt.expected)
		}
	}
}

func TestFontError(t *testing.T) {
	err := FontError{
		Table:    T("loca"),
		Section:  "Entries",
		Issue:    "offsets not ascending",
		Severity: SeverityMajor,
		Offset:   1234,
	}
	expected := "[MAJOR] loca/Entries at offset 1234: offsets not ascending"
	if err.Error() != expected {
		t.Errorf("FontError.Error() = %q; want %q", err.Error(), expected)
	}
	w := FontWarning{Table: T("gvar"), Issue: "glyph count differs"}
	if w.String() != "[WARNING] gvar: glyph count differs" {
		t.Errorf("unexpected warning format: %q", w.String())
	}
}

func TestErrorCollectorFail(t *testing.T) {
	ec := &errorCollector{}
	err := ec.fail(T("head"), "Size", "table too small", 12)
	if err == nil {
		t.Fatalf("expected fail to return an error")
	}
	if len(ec.errors) != 1 || ec.errors[0].Severity != SeverityCritical {
		t.Errorf("expected one critical error, have %v", ec.errors)
	}
}

func TestMetricsTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	// 2 long metrics, 2 trailing bearings
	b := make([]byte, 12)
	putU16(b, 0, 500)
	putU16(b, 2, 10)
	putU16(b, 4, 600)
	putU16(b, 6, 20)
	putU16(b, 8, 30)
	putU16(b, 10, uint16(0xFFFB)) // -5
	hmtx := &HMtxTable{}
	hmtx.data = b
	if err := hmtx.parseAll(4, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cases := []struct {
		gid     GlyphIndex
		advance uint16
		bearing int16
		ok      bool
	}{
		{0, 500, 10, true},
		{1, 600, 20, true},
		{2, 600, 30, true},
		{3, 600, -5, true},
		{4, 0, 0, false},
	}
	for _, c := range cases {
		adv, lsb, ok := hmtx.HMetrics(c.gid)
		if adv != c.advance || lsb != c.bearing || ok != c.ok {
			t.Errorf("glyph %d: expected (%d,%d,%v), have (%d,%d,%v)", c.gid,
				c.advance, c.bearing, c.ok, adv, lsb, ok)
		}
	}
	if err := hmtx.parseAll(5, 2); err == nil {
		t.Errorf("expected table to be too small for 5 glyphs")
	}
	var missing *VMtxTable
	if _, _, ok := missing.VMetrics(0); ok {
		t.Errorf("expected nil vmtx to have no metrics")
	}
}

func putU16(b []byte, offset int, v uint16) {
	binary.BigEndian.PutUint16(b[offset:], v)
}
