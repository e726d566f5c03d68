// arena.go: the byte arena backing serialized entry payloads
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package membuf

// arena is a contiguous byte buffer storing serialized entry payloads
// back-to-back with optional gaps. All offsets into it are absolute
// and multiples of ItemAlignment, so the layout is position-independent
// (a prerequisite for any future shared-memory placement; this package
// does not itself implement that).
//
// An arena has no free-list of its own: free space is always implied
// by the directory's used-list (see core.go), never tracked here.
type arena struct {
	data []byte
}

func newArena(size uint64) *arena {
	return &arena{data: make([]byte, size)}
}

func (a *arena) len() uint64 { return uint64(len(a.data)) }

// write copies payload into the arena at offset. The caller must
// already have established offset+len(payload) <= len(arena).
func (a *arena) write(offset uint64, payload []byte) {
	copy(a.data[offset:offset+uint64(len(payload))], payload)
}

// read returns a read-only view of length bytes at offset. The
// returned slice aliases the arena and is only valid until the next
// structural mutation (write/relocate) of that range; callers inside
// the core's critical section must not let it escape past the lock
// (see facade.go's deserialize call, which happens while still
// holding the lock for exactly this reason).
func (a *arena) read(offset, length uint64) []byte {
	return a.data[offset : offset+length]
}

// relocate byte-copies length bytes from src to dst, handling overlap
// as memmove (Go's built-in copy already does this for byte slices).
func (a *arena) relocate(dst, src, length uint64) {
	copy(a.data[dst:dst+length], a.data[src:src+length])
}
