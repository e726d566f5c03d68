// core.go: the Core cache: directory, arena and eviction engine,
// guarded by a single mutex.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package membuf

import (
	"sync"
)

// Core is the shared, byte-serialized membuffer cache: a directory of
// groups indexing a single byte arena, evicted by a randomized-LFU
// sliding insertion window. Core speaks in raw full keys and
// already-serialized payloads; Cache (facade.go) adds per-client
// prefixing and typed serialization on top of it.
//
// Many Cache facades may share one Core, the same way many
// svn_cache__t instances shared one membuffer_cache_t in the
// original; this is what makes the prefix in facade.go necessary.
type Core struct {
	mu sync.Mutex // guards every field below

	dir   *directory
	are   *arena
	hash  Hasher
	clock TimeProvider

	// used-list state, by arena offset order
	head, tail, windowNext uint32
	currentData            uint64

	usedEntries       uint64
	totalPayloadBytes uint64
	totalHitCount     uint64

	totalReads, totalWrites, totalHits uint64

	rngState uint64 // xorshift64 state for the eviction engine's threshold draws

	singleThreaded bool
	degenerate     bool // true when constructed in the OOM fallback state

	logger  Logger
	metrics MetricsCollector
}

// NewCore constructs a Core, clamping the sizing inputs to workable
// minimums. It returns a degenerate, 1-group, zero-arena Core (Set
// silently discards, Get always misses) only when the clamped sizes
// leave the arena no room for one aligned item, which the clamps below
// rule out. Allocation failure is not caught: make panics on it.
func NewCore(cfg Config) *Core {
	cfg.applyDefaults()

	totalBytes := cfg.TotalBytes
	if totalBytes < 2*groupSizeBytes {
		totalBytes = 2 * groupSizeBytes
	}
	dirBytes := cfg.DirectoryBytes
	if dirBytes > totalBytes-groupSizeBytes {
		dirBytes = totalBytes - groupSizeBytes
	}
	if dirBytes < groupSizeBytes {
		dirBytes = groupSizeBytes
	}

	groupCount := int(dirBytes / groupSizeBytes)
	if groupCount < 1 {
		groupCount = 1
	}
	arenaBytes := totalBytes - dirBytes
	if arenaBytes <= ItemAlignment {
		// Degenerate: not even room for one aligned item after slack.
		return newDegenerateCore(cfg)
	}
	arenaBytes -= ItemAlignment

	c := &Core{
		dir:            newDirectory(groupCount),
		are:            newArena(arenaBytes),
		hash:           cfg.Hasher,
		clock:          cfg.TimeProvider,
		head:           sentinel,
		tail:           sentinel,
		windowNext:     sentinel,
		singleThreaded: cfg.SingleThreaded,
		logger:         cfg.Logger,
		metrics:        cfg.MetricsCollector,
		rngState:       uint64(cfg.TimeProvider.Now()) | 1,
	}
	return c
}

// groupSizeBytes is sizeof(group) in the original's terms: GroupSize
// slots, each a fixed-width fingerprint+offset+size+hitCount+prev+next
// record. The exact byte count doesn't need to match a C struct layout
// (there is no on-disk format here); it only needs to be the unit the
// directory-sizing arithmetic divides by.
const groupSizeBytes = uint64(GroupSize) * 32

func newDegenerateCore(cfg Config) *Core {
	cfg.Logger.Debug("falling back to degenerate cache", "totalBytes", cfg.TotalBytes, "directoryBytes", cfg.DirectoryBytes)
	return &Core{
		dir:            newDirectory(1),
		are:            newArena(0),
		hash:           cfg.Hasher,
		clock:          cfg.TimeProvider,
		head:           sentinel,
		tail:           sentinel,
		windowNext:     sentinel,
		singleThreaded: cfg.SingleThreaded,
		logger:         cfg.Logger,
		metrics:        cfg.MetricsCollector,
		degenerate:     true,
	}
}

func (c *Core) lock() {
	if !c.singleThreaded {
		c.mu.Lock()
	}
}

func (c *Core) unlock() {
	if !c.singleThreaded {
		c.mu.Unlock()
	}
}

// Get looks up fullKey and, on a hit, invokes deserialize with a view
// of the stored payload while still holding the lock, bounding lock
// hold time by deserializer cost rather than allocating a copy on
// every hit. The view is valid only for the duration of deserialize.
func (c *Core) Get(fullKey []byte, deserialize func(payload []byte) error) (found bool, err error) {
	fp, ok := c.hash.Fingerprint(fullKey)
	if !ok {
		c.logger.Warn("digest failed on get", "error", newErrDigestFailed(string(fullKey)))
		return false, nil // digest failure: treated as a miss, never surfaced
	}

	start := c.clock.Now()
	c.lock()
	defer c.unlock()

	c.totalReads++

	if c.degenerate || c.dir.groupCount() == 0 {
		c.recordGet(start, false)
		return false, nil
	}

	gi := groupIndex(fp, c.dir.groupCount())
	si, ok := c.dir.findInGroup(gi, fp)
	if !ok {
		c.recordGet(start, false)
		return false, nil
	}

	s := c.dir.slot(si)
	s.hitCount++
	c.totalHitCount++
	c.totalHits++

	payload := c.are.read(uint64(s.offset), uint64(s.size))
	derr := deserialize(payload)

	c.recordGet(start, derr == nil)
	if derr != nil {
		return false, derr
	}
	return true, nil
}

// Set stores payload under fullKey. Oversize payloads (size > arena
// length / 4) are rejected, but any existing mapping for fullKey is
// still dropped first, exactly the original's membuffer_cache_set
// ordering (serialization happens before the lock in the caller; the
// arena/directory mutation below happens entirely inside it).
func (c *Core) Set(fullKey []byte, payload []byte) {
	fp, ok := c.hash.Fingerprint(fullKey)
	if !ok {
		c.logger.Warn("digest failed on set", "error", newErrDigestFailed(string(fullKey)))
		return // digest failure: set is a no-op
	}

	start := c.clock.Now()
	c.lock()
	defer c.unlock()
	defer func() { c.recordSet(start) }()

	if c.degenerate || c.dir.groupCount() == 0 || c.are.len() == 0 {
		return
	}

	gi := groupIndex(fp, c.dir.groupCount())
	size := uint64(len(payload))

	if size > c.are.len()/4 {
		// Still evict any prior mapping for this key; admit nothing.
		if si, ok := c.dir.findInGroup(gi, fp); ok {
			c.dropEntry(si)
		}
		return
	}

	c.ensureInsertable(size)

	si := c.acquire(gi, fp)
	s := c.dir.slot(si)
	s.offset = uint32(c.currentData)
	s.size = uint32(size)
	s.hitCount = 0

	if size > 0 {
		c.are.write(c.currentData, payload)
	}
	c.insertEntry(si) // advances currentData past the new payload

	c.usedEntries++
	c.totalPayloadBytes += size
	c.totalWrites++
}

func (c *Core) recordGet(start int64, hit bool) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordGet(c.clock.Now()-start, hit)
}

func (c *Core) recordSet(start int64) {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordSet(c.clock.Now() - start)
}

func (c *Core) recordEviction() {
	if c.metrics == nil {
		return
	}
	c.metrics.RecordEviction()
}

// Stats is a snapshot of the cache-level profiling counters. Like the
// original, these exist purely for observability; nothing in the
// cache's behavior depends on them being read.
type Stats struct {
	UsedEntries       uint64
	TotalPayloadBytes uint64
	TotalHitCount     uint64
	TotalReads        uint64
	TotalWrites       uint64
	TotalHits         uint64
	GroupCount        int
	ArenaBytes        uint64
}

// Stats returns a consistent snapshot of the cache's counters, taken
// under the same lock that guards mutation.
func (c *Core) Stats() Stats {
	c.lock()
	defer c.unlock()
	return Stats{
		UsedEntries:       c.usedEntries,
		TotalPayloadBytes: c.totalPayloadBytes,
		TotalHitCount:     c.totalHitCount,
		TotalReads:        c.totalReads,
		TotalWrites:       c.totalWrites,
		TotalHits:         c.totalHits,
		GroupCount:        c.dir.groupCount(),
		ArenaBytes:        c.are.len(),
	}
}
