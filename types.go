// types.go: entry slot and group layout
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package membuf

// fingerprint is the 128-bit digest standing in for a full cache key.
// Equality of fingerprints is treated as equality of keys; there is no
// fallback key comparison (see digest.go). It is an alias, not a
// defined type, so external Hasher implementations can speak plain
// [16]byte.
type fingerprint = [16]byte

// slot is a single directory entry: the unit of occupancy in the
// cache. All fields other than the fingerprint are only meaningful
// while offset != sentinel.
//
// Field ordering carries no alignment requirement (every field is
// only ever touched under the core's mutex), so it is ordered for
// readability.
type slot struct {
	key      fingerprint
	offset   uint32 // absolute byte offset into the arena, or sentinel if unused
	size     uint32 // serialized payload length in bytes
	hitCount uint32 // incremented on get, halved on window survival
	prev     uint32 // directory index of the previous used slot by offset, or sentinel
	next     uint32 // directory index of the next used slot by offset, or sentinel
}

func (s *slot) used() bool { return s.offset != sentinel }

// group is GroupSize entry slots sharing one hash-derived group
// index; fully associative within the group.
type group [GroupSize]slot

// idx packs a (group index, slot-in-group index) pair into a single
// directory-wide index, and back. This mirrors the original's
// get_index/get_entry pointer arithmetic without relying on raw
// pointers into the directory slice.
func idx(groupIndex, slotIndex int) uint32 {
	return uint32(groupIndex*GroupSize + slotIndex)
}

func splitIdx(i uint32) (groupIndex, slotIndex int) {
	return int(i) / GroupSize, int(i) % GroupSize
}
