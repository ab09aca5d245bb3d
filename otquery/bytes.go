package otquery

import "github.com/npillmayer/outline/ot"

func u16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])<<0
}

func i16(b []byte) int16 {
	return int16(b[0])<<8 | int16(b[1])<<0
}

func u32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])<<0
}

func u64(b []byte) uint64 {
	return uint64(u32(b))<<32 | uint64(u32(b[4:]))
}

// rawTable returns the bytes of a table if it holds at least size bytes.
func rawTable(otf *ot.Font, tag string, size int) ([]byte, bool) {
	if otf == nil {
		return nil, false
	}
	table := otf.Table(ot.T(tag))
	if table == nil {
		return nil, false
	}
	b := table.Binary()
	if len(b) < size {
		tracer().Debugf("table %s too short: %d bytes", tag, len(b))
		return nil, false
	}
	return b, true
}
