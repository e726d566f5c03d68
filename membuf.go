// membuf.go: package constants and version
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package membuf

const (
	// Version of the membuf cache library.
	Version = "v0.1.0-dev"

	// GroupSize is the number of entry slots per directory group (4-way
	// associative). Changing this value changes the in-memory layout
	// of a group; it is a compile-time constant for a reason.
	GroupSize = 4

	// ItemAlignment is the byte alignment enforced for every arena
	// offset, chosen for efficient copies.
	ItemAlignment = 16

	// DefaultTotalBytes is the default size of the whole cache (data +
	// directory) when Config.TotalBytes is not set.
	DefaultTotalBytes = 64 << 20 // 64 MiB

	// DefaultDirectoryRatio is the fraction of TotalBytes given to the
	// directory when Config.DirectoryBytes is not set.
	DefaultDirectoryRatio = 0.1

	// sentinel marks a slot as unused, or the absence of a directory
	// neighbor. It is never a valid arena offset or directory index.
	sentinel = ^uint32(0)
)

// alignUp rounds addr up to the next multiple of ItemAlignment.
func alignUp(addr uint64) uint64 {
	const mask = uint64(ItemAlignment - 1)
	return (addr + mask) &^ mask
}
