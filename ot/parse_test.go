package ot_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/npillmayer/outline/internal/fonttest"
	"github.com/npillmayer/outline/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/image/font/gofont/goregular"
)

func syntheticFont(long bool) fonttest.Font {
	return fonttest.Font{
		Glyphs: [][]byte{
			nil,
			fonttest.SimpleGlyph([][]fonttest.Point{fonttest.Square(10, 0, 100)}, nil),
			fonttest.SimpleGlyph([][]fonttest.Point{fonttest.Square(0, 0, 50)}, []byte{0xb0, 0x01}),
		},
		Advances: []uint16{500, 600, 700},
		LongLoca: long,
		Vertical: []uint16{1000, 1000, 1000},
	}
}

func TestParseSynthetic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	for _, long := range []bool{false, true} {
		otf, err := ot.Parse(syntheticFont(long).Build())
		if err != nil {
			t.Fatalf("cannot parse synthetic font (long=%v): %v", long, err)
		}
		if otf.NumGlyphs() != 3 {
			t.Errorf("expected 3 glyphs, have %d", otf.NumGlyphs())
		}
		if otf.UnitsPerEm() != 1000 {
			t.Errorf("expected upem of 1000, have %d", otf.UnitsPerEm())
		}
		loca := otf.Table(ot.T("loca")).Self().AsLoca()
		if loca == nil || loca.Long != long {
			t.Fatalf("expected loca table with long=%v", long)
		}
		if loca.Entries() != 4 {
			t.Errorf("expected 4 loca entries, have %d", loca.Entries())
		}
		if adv, lsb, ok := otf.HMtx.HMetrics(1); !ok || adv != 600 || lsb != 10 {
			t.Errorf("expected hmetrics (600,10) for glyph 1, have (%d,%d,%v)", adv, lsb, ok)
		}
		if adv, _, ok := otf.VMtx.VMetrics(2); !ok || adv != 1000 {
			t.Errorf("expected vertical advance 1000 for glyph 2, have %d", adv)
		}
		if len(otf.Errors()) != 0 || len(otf.Warnings()) != 0 {
			t.Errorf("expected clean parse, have %v / %v", otf.Errors(), otf.Warnings())
		}
	}
}

func TestParseGoRegular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf, err := ot.Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("cannot parse Go Regular: %v", err)
	}
	if otf.HasCriticalErrors() {
		t.Errorf("expected no critical errors, have %v", otf.Errors())
	}
	if otf.NumGlyphs() == 0 || otf.HMtx == nil {
		t.Errorf("expected glyphs and horizontal metrics")
	}
	for _, tag := range []string{"glyf", "loca", "head", "maxp", "hhea", "hmtx", "cmap", "name", "post"} {
		if otf.Table(ot.T(tag)) == nil {
			t.Errorf("expected table %s to be present", tag)
		}
	}
	tags := otf.TableTags()
	for i := 1; i < len(tags); i++ {
		if tags[i-1] >= tags[i] {
			t.Errorf("table tags not sorted: %v", tags)
			break
		}
	}
}

func TestParseMalformed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	t.Run("truncated header", func(t *testing.T) {
		if _, err := ot.Parse([]byte{0, 1, 0}); err == nil {
			t.Errorf("expected error for truncated font header")
		}
	})
	t.Run("unsupported type", func(t *testing.T) {
		b := syntheticFont(false).Build()
		copy(b, "wOFF")
		if _, err := ot.Parse(b); err == nil {
			t.Errorf("expected error for WOFF signature")
		}
	})
	t.Run("missing head", func(t *testing.T) {
		fb := ot.NewFontBuilder()
		fb.AddTable(ot.T("maxp"), fonttest.MaxP(1))
		b, err := fb.Build()
		if err != nil {
			t.Fatal(err)
		}
		if _, err := ot.Parse(b); err == nil {
			t.Errorf("expected error for missing head table")
		}
	})
	t.Run("table out of bounds", func(t *testing.T) {
		b := syntheticFont(false).Build()
		if _, err := ot.Parse(b[:len(b)/2]); err == nil {
			t.Errorf("expected error for truncated table data")
		}
	})
	t.Run("short hmtx", func(t *testing.T) {
		f := syntheticFont(false)
		f.Extra = map[ot.Tag][]byte{ot.T("hmtx"): {0, 1}}
		otf, err := ot.Parse(f.Build())
		if err != nil {
			t.Fatalf("expected short hmtx to be tolerated, have %v", err)
		}
		if otf.HMtx != nil {
			t.Errorf("expected hmtx to be disabled")
		}
		if len(otf.Errors()) == 0 {
			t.Errorf("expected an error to be recorded for hmtx")
		}
	})
}

func TestFontBuilderRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	otf, err := ot.Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	fb := ot.NewFontBuilder()
	for _, tag := range otf.TableTags() {
		data := append([]byte(nil), otf.Table(tag).Binary()...)
		fb.AddTable(tag, data)
	}
	b, err := fb.Build()
	if err != nil {
		t.Fatal(err)
	}
	if sum := fontChecksum(b); sum != 0xB1B0AFBA {
		t.Errorf("expected font checksum 0xB1B0AFBA, have %#x", sum)
	}
	rebuilt, err := ot.Parse(b)
	if err != nil {
		t.Fatalf("cannot parse rebuilt font: %v", err)
	}
	if rebuilt.NumGlyphs() != otf.NumGlyphs() || len(rebuilt.TableTags()) != len(otf.TableTags()) {
		t.Errorf("rebuilt font differs in glyph or table count")
	}
	if _, err := ot.NewFontBuilder().Build(); err != ot.ErrNoTables {
		t.Errorf("expected ErrNoTables for empty builder, have %v", err)
	}
}

func TestFontBuilderKeepsHead(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.opentype")
	defer teardown()
	//
	head := fonttest.Head(1000, false)
	binary.BigEndian.PutUint32(head[ot.HeadCheckSumAdjustmentOffset:], 0x12345678)
	orig := bytes.Clone(head)
	fb := ot.NewFontBuilder()
	fb.AddTable(ot.T("head"), head)
	fb.AddTable(ot.T("maxp"), fonttest.MaxP(1))
	b, err := fb.Build()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(head, orig) {
		t.Errorf("expected head table handed to builder to stay unchanged")
	}
	if sum := fontChecksum(b); sum != 0xB1B0AFBA {
		t.Errorf("expected font checksum 0xB1B0AFBA, have %#x", sum)
	}
	if _, err := fb.Build(); err != nil {
		t.Errorf("expected builder to be reusable, have %v", err)
	}
}

// fontChecksum sums the big-endian uint32 words of b, padding with zeros.
func fontChecksum(b []byte) uint32 {
	var sum uint32
	for i := 0; i < len(b); i += 4 {
		var w [4]byte
		copy(w[:], b[i:])
		sum += binary.BigEndian.Uint32(w[:])
	}
	return sum
}
