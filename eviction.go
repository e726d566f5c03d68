// eviction.go: slot acquisition, the used-list, and the randomized-LFU
// sliding insertion window.
//
// This file follows the original membuffer cache's drop_entry/
// insert_entry/find_entry/move_entry/ensure_data_insertable; every
// function here has a named counterpart there.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package membuf

// fastRand advances the Core's xorshift64 state and returns the next
// pseudo-random value. Not cryptographic: the eviction engine only
// needs a cheap, well-distributed draw for its survive/evict
// threshold, the same role math.random()/rand() plays in the original.
func (c *Core) fastRand() uint64 {
	x := c.rngState
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	c.rngState = x
	return x
}

// dropEntry unlinks slot si from the used-list and marks it unused.
// Valid for any used slot; mirrors drop_entry exactly, including its
// insertion-window-extension special cases.
func (c *Core) dropEntry(si uint32) {
	s := c.dir.slot(si)

	c.usedEntries--
	c.totalHitCount -= uint64(s.hitCount)
	c.totalPayloadBytes -= uint64(s.size)

	if si == c.windowNext {
		c.windowNext = s.next
	} else if s.next == c.windowNext {
		if s.prev == sentinel {
			c.currentData = 0
		} else {
			prev := c.dir.slot(s.prev)
			c.currentData = alignUp(uint64(prev.offset) + uint64(prev.size))
		}
	}

	if s.prev == sentinel {
		c.head = s.next
	} else {
		c.dir.slot(s.prev).next = s.next
	}
	if s.next == sentinel {
		c.tail = s.prev
	} else {
		c.dir.slot(s.next).prev = s.prev
	}

	s.offset = sentinel
}

// insertEntry links slot si, whose offset/size are already set to the
// start of the insertion window, into the used-list and advances the
// window past it. Mirrors insert_entry.
func (c *Core) insertEntry(si uint32) {
	s := c.dir.slot(si)

	c.currentData = alignUp(uint64(s.offset) + uint64(s.size))

	s.next = c.windowNext
	switch {
	case c.head == sentinel:
		s.prev = sentinel
		c.head = si
		c.tail = si
	case c.windowNext == sentinel:
		s.prev = c.tail
		c.dir.slot(c.tail).next = si
		c.tail = si
	default:
		next := c.dir.slot(c.windowNext)
		s.prev = next.prev
		next.prev = si
		if s.prev != sentinel {
			c.dir.slot(s.prev).next = si
		} else {
			c.head = si
		}
	}
}

// acquire returns a directory-wide slot index in group groupIdx ready
// to receive fp: either the slot already holding fp (dropped first),
// a free slot, or, if the group is saturated, the coldest slot,
// evicted after halving every sibling's hit count. Mirrors find_entry
// called with find_empty = true. The returned slot's key is set to fp
// and its offset is sentinel; the caller fills offset/size and calls
// insertEntry.
func (c *Core) acquire(groupIdx int, fp fingerprint) uint32 {
	if si, ok := c.dir.findInGroup(groupIdx, fp); ok {
		c.dropEntry(si)
		c.dir.slot(si).key = fp
		return si
	}

	if si, ok := c.dir.freeInGroup(groupIdx); ok {
		c.dir.slot(si).key = fp
		return si
	}

	victim := c.dir.coldestInGroup(groupIdx)
	for gs := 0; gs < GroupSize; gs++ {
		si := idx(groupIdx, gs)
		if si == victim {
			continue
		}
		s := c.dir.slot(si)
		before := s.hitCount
		s.hitCount >>= 1
		c.totalHitCount -= uint64(before - s.hitCount)
	}
	c.dropEntry(victim)
	c.recordEviction()
	c.logger.Debug("evicted coldest slot in saturated group", "group", groupIdx, "slot", victim)
	c.dir.slot(victim).key = fp
	return victim
}

// ensureInsertable enlarges the insertion window until it can hold at
// least size bytes, looping the randomized-LFU survive/evict decision
// over entries at the tail of the window until enough space opens up.
// Mirrors ensure_data_insertable. Callers must have already rejected
// size > arena length / 4 so this loop is guaranteed to terminate.
func (c *Core) ensureInsertable(size uint64) {
	for {
		var end uint64
		if c.windowNext == sentinel {
			end = c.are.len()
		} else {
			end = uint64(c.dir.slot(c.windowNext).offset)
		}

		if end-c.currentData >= size {
			return
		}

		if c.windowNext == sentinel {
			// Wrapped past the end of the arena; restart scanning
			// from the beginning of the used-list.
			c.currentData = 0
			c.windowNext = c.head
			continue
		}

		avg := c.totalHitCount / c.usedEntries
		if avg < 1 {
			avg = 1
		}
		threshold := c.fastRand() % (2 * avg)

		si := c.windowNext
		s := c.dir.slot(si)
		if uint64(s.hitCount) >= threshold {
			c.surviveEntry(si)
		} else {
			c.recordEviction()
			c.logger.Debug("evicted from insertion window", "slot", si, "hitCount", s.hitCount, "threshold", threshold)
			c.dropEntry(si)
		}
	}
}

// surviveEntry halves the hit count of a slot that survived an
// eviction pass and, if it isn't already at the front of the window,
// relocates its payload there so the arena stays compact. Mirrors
// move_entry.
func (c *Core) surviveEntry(si uint32) {
	s := c.dir.slot(si)

	before := s.hitCount
	s.hitCount >>= 1
	c.totalHitCount -= uint64(before - s.hitCount)

	if uint64(s.offset) != c.currentData {
		c.are.relocate(c.currentData, uint64(s.offset), uint64(s.size))
		s.offset = uint32(c.currentData)
	}

	c.currentData = alignUp(uint64(s.offset) + uint64(s.size))
	c.windowNext = s.next
}
