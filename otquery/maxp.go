package otquery

import (
	"github.com/npillmayer/outline/ot"
)

// MaxPTableInfo is a typed query view over OpenType table 'maxp'.
// For version 1.0 tables, extended profile fields are decoded if present.
type MaxPTableInfo struct {
	VersionFixed uint32
	NumGlyphs    uint16

	// TrueType profile fields (version 1.0 only)
	HasExtendedProfile    bool
	MaxPoints             uint16
	MaxContours           uint16
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

const (
	maxpMinSize = 6
	maxpV10Size = 32
)

// MaxPInfo decodes table 'maxp'.
// Returns (info, true) on success, or (zero, false) if table is missing/too short.
func MaxPInfo(otf *ot.Font) (MaxPTableInfo, bool) {
	var info MaxPTableInfo
	b, ok := rawTable(otf, "maxp", maxpMinSize)
	if !ok {
		return info, false
	}
	info.VersionFixed = u32(b)
	info.NumGlyphs = u16(b[4:])
	if info.VersionFixed != 0x00010000 || len(b) < maxpV10Size {
		return info, true
	}
	info.HasExtendedProfile = true
	fields := []*uint16{
		&info.MaxPoints, &info.MaxContours,
		&info.MaxCompositePoints, &info.MaxCompositeContours,
		&info.MaxZones, &info.MaxTwilightPoints, &info.MaxStorage,
		&info.MaxFunctionDefs, &info.MaxInstructionDefs, &info.MaxStackElements,
		&info.MaxSizeOfInstructions,
		&info.MaxComponentElements, &info.MaxComponentDepth,
	}
	for i, f := range fields {
		*f = u16(b[6+2*i:])
	}
	return info, true
}

// UsesHinting reports whether the profile reserves resources for
// hinting instructions.
func (m MaxPTableInfo) UsesHinting() bool {
	return m.HasExtendedProfile && (m.MaxFunctionDefs > 0 || m.MaxSizeOfInstructions > 0 ||
		m.MaxStorage > 0 || m.MaxTwilightPoints > 0)
}
