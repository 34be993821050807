package trace

import "strconv"

// Stamp is a compact logical timestamp: which CPU produced an event, and
// that CPU's local sequence number at the time. It is the adapted
// equivalent of a race detector's Epoch — cheap to copy and compare, used
// for the common case where two events only need comparing against a
// single CPU's progress rather than the full Clock.
type Stamp uint64

const cpuIDBits = 16

// NewStamp packs a CPU id and a local sequence counter into one Stamp.
func NewStamp(cpuID int, seq uint32) Stamp {
	return Stamp(uint64(uint16(cpuID))<<32 | uint64(seq))
}

// Decode extracts the CPU id and sequence number packed into s.
func (s Stamp) Decode() (cpuID int, seq uint32) {
	cpuID = int(uint16(s >> 32))
	seq = uint32(s)
	return
}

// String renders a Stamp as "seq@cpu", matching the "clock@tid" convention
// this was adapted from.
func (s Stamp) String() string {
	cpuID, seq := s.Decode()
	return strconv.FormatUint(uint64(seq), 10) + "@" + strconv.Itoa(cpuID)
}
