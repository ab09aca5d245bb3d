package otquery

import (
	"iter"

	"github.com/npillmayer/outline/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Table 'name' starts with format, count and storage offset, followed by
// count records of 6 uint16 fields each.
const (
	nameHeaderSize = 6
	nameRecordSize = 12
)

// PlatformID is the platform of a name record.
type PlatformID uint16

const (
	PlatformIDUnicode   PlatformID = 0
	PlatformIDMacintosh PlatformID = 1
	PlatformIDWindows   PlatformID = 3
)

// EncodingID is the platform-specific encoding of a name record.
type EncodingID uint16

const (
	EncodingIDMacRoman      EncodingID = 0 // with PlatformIDMacintosh
	EncodingIDWindowsSymbol EncodingID = 0 // with PlatformIDWindows; not supported
	EncodingIDWindowsBMP    EncodingID = 1
	EncodingIDUnicodeBMP    EncodingID = 3
	EncodingIDUnicodeFull   EncodingID = 4
	EncodingIDWindowsFull   EncodingID = 10
)

// NameRecord is a decoded entry of table 'name'.
type NameRecord struct {
	Platform PlatformID
	Encoding EncodingID
	Language uint16
	Name     sfnt.NameID // see https://pkg.go.dev/golang.org/x/image/font/sfnt#NameID
	Value    string
}

// NameRecords yields the records of a font's 'name' table in table order.
// Records with unsupported encodings, out-of-bounds strings or empty values
// are skipped.
func NameRecords(otf *ot.Font) iter.Seq[NameRecord] {
	b := nameTable(otf)
	return func(yield func(NameRecord) bool) {
		if b == nil {
			return
		}
		count, storage := int(u16(b[2:])), int(u16(b[4:]))
		for i := range count {
			rec := b[nameHeaderSize+i*nameRecordSize:]
			r := NameRecord{
				Platform: PlatformID(u16(rec[0:])),
				Encoding: EncodingID(u16(rec[2:])),
				Language: u16(rec[4:]),
				Name:     sfnt.NameID(u16(rec[6:])),
			}
			dec := nameDecoder(r.Platform, r.Encoding)
			if dec == nil {
				continue
			}
			start := storage + int(u16(rec[10:]))
			end := start + int(u16(rec[8:]))
			if end > len(b) {
				tracer().Debugf("name record %d out of bounds", i)
				continue
			}
			s, err := dec.NewDecoder().Bytes(b[start:end])
			if err != nil || len(s) == 0 {
				continue
			}
			r.Value = string(s)
			if !yield(r) {
				return
			}
		}
	}
}

// NamesRange yields decoded `(nameID, value)` pairs from a font's `name`
// table.
func NamesRange(otf *ot.Font) iter.Seq2[sfnt.NameID, string] {
	return func(yield func(sfnt.NameID, string) bool) {
		for r := range NameRecords(otf) {
			if !yield(r.Name, r.Value) {
				return
			}
		}
	}
}

// nameTable returns the bytes of table 'name' if its header and record
// array are in bounds, nil otherwise.
func nameTable(otf *ot.Font) []byte {
	b, ok := rawTable(otf, "name", nameHeaderSize)
	if !ok {
		return nil
	}
	count, storage := int(u16(b[2:])), int(u16(b[4:]))
	if storage > len(b) || nameHeaderSize+count*nameRecordSize > len(b) {
		tracer().Debugf("name table header inconsistent: count=%d storage=%d size=%d", count, storage, len(b))
		return nil
	}
	return b
}

func nameDecoder(platform PlatformID, enc EncodingID) encoding.Encoding {
	utf16be := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	switch platform {
	case PlatformIDUnicode:
		if enc <= EncodingIDUnicodeFull {
			return utf16be
		}
	case PlatformIDWindows:
		if enc == EncodingIDWindowsBMP || enc == EncodingIDWindowsFull {
			return utf16be
		}
	case PlatformIDMacintosh:
		if enc == EncodingIDMacRoman {
			return charmap.Macintosh
		}
	}
	return nil
}

var nameKeys = map[sfnt.NameID]string{
	sfnt.NameIDFamily:            "family",
	sfnt.NameIDSubfamily:         "subfamily",
	sfnt.NameIDFull:              "full",
	sfnt.NameIDVersion:           "version",
	sfnt.NameIDPostScript:        "postscript",
	sfnt.NameIDTypographicFamily: "typographic-family",
}

// NameInfo returns selected names of a font, keyed by "family", "subfamily",
// "full", "version", "postscript" and "typographic-family". Windows and
// Unicode records take precedence over Macintosh records; otherwise the
// first record wins.
func NameInfo(otf *ot.Font) map[string]string {
	info := make(map[string]string)
	fromMac := make(map[string]bool)
	for r := range NameRecords(otf) {
		key, ok := nameKeys[r.Name]
		if !ok {
			continue
		}
		isMac := r.Platform == PlatformIDMacintosh
		if _, seen := info[key]; !seen || (fromMac[key] && !isMac) {
			info[key] = r.Value
			fromMac[key] = isMac
		}
	}
	return info
}
