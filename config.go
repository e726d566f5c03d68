// config.go: configuration for the membuffer cache
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package membuf

import (
	"github.com/agilira/go-timecache"
)

// Config holds the construction-time parameters of a Core. There is
// no MaxSize or TTL here: this cache sizes itself in bytes, not in
// entry count, and has no expiration concept at all.
type Config struct {
	// TotalBytes is the combined size, in bytes, of the directory and
	// the arena. Must be large enough for at least two groups; smaller
	// values are clamped up. Default: DefaultTotalBytes.
	TotalBytes uint64

	// DirectoryBytes is the portion of TotalBytes given to the
	// directory of groups; the remainder (minus alignment slack)
	// becomes the arena. Clamped into [sizeof(group), TotalBytes -
	// sizeof(group)]. Default: DefaultDirectoryRatio * TotalBytes.
	DirectoryBytes uint64

	// SingleThreaded skips the internal mutex. The zero value (false)
	// is the safe default: Core takes its lock on every call. Set
	// true only when the caller already serializes all access, e.g. a
	// single-goroutine embedding that wants to shave lock overhead.
	SingleThreaded bool

	// Hasher derives the 128-bit key fingerprint. If nil, an
	// MD5-based Hasher is used, matching the original's choice.
	Hasher Hasher

	// Logger receives structural events (degenerate fallback and
	// evictions at Debug, digest failures at Warn). If nil, NoOpLogger
	// is used.
	Logger Logger

	// TimeProvider supplies timestamps for latency metrics. If nil, a
	// go-timecache-backed provider is used.
	TimeProvider TimeProvider

	// MetricsCollector receives Get/Set/eviction counters. If nil,
	// NoOpMetricsCollector is used (zero overhead).
	MetricsCollector MetricsCollector
}

// applyDefaults normalizes a Config in place. There is nothing here a
// caller can get outright wrong (every numeric field has a sane
// clamp), so there is no error return; NewCore documents the clamping
// behavior instead.
func (c *Config) applyDefaults() {
	if c.TotalBytes == 0 {
		c.TotalBytes = DefaultTotalBytes
	}
	if c.DirectoryBytes == 0 {
		c.DirectoryBytes = uint64(float64(c.TotalBytes) * DefaultDirectoryRatio)
	}
	if c.Hasher == nil {
		c.Hasher = md5Hasher{}
	}
	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}
	if c.TimeProvider == nil {
		c.TimeProvider = &systemTimeProvider{}
	}
	if c.MetricsCollector == nil {
		c.MetricsCollector = NoOpMetricsCollector{}
	}
}

// DefaultConfig returns a Config with every field set to its default:
// a thread-safe, 64 MiB cache with a 10% directory, MD5 fingerprints,
// and no-op logging/metrics.
func DefaultConfig() Config {
	cfg := Config{
		TotalBytes: DefaultTotalBytes,
	}
	cfg.applyDefaults()
	return cfg
}

// systemTimeProvider is the default TimeProvider, backed by
// go-timecache's cached clock rather than time.Now() on every call.
type systemTimeProvider struct{}

func (systemTimeProvider) Now() int64 {
	return timecache.CachedTimeNano()
}
