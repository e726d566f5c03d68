// membufctl: a small demo CLI around a membuf.Cache.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package main

import (
	"fmt"
	"os"

	flashflags "github.com/agilira/flash-flags"
	"github.com/agilira/membuf"
)

func main() {
	flags := flashflags.New("membufctl")

	totalBytes := flags.Int("total-bytes", int(membuf.DefaultTotalBytes), "total cache size in bytes")
	dirBytes := flags.Int("directory-bytes", 0, "directory size in bytes (0 = derive from total-bytes)")
	singleThreaded := flags.Bool("single-threaded", false, "skip internal locking (caller must serialize access)")
	clientID := flags.String("client", "membufctl", "client ID used to prefix keys")
	setKey := flags.String("set", "", "key to set")
	setValue := flags.String("value", "", "value to store alongside -set")
	getKey := flags.String("get", "", "key to fetch and print")
	showStats := flags.Bool("stats", false, "print cache statistics and exit")

	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "membufctl:", err)
		os.Exit(1)
	}

	cfg := membuf.DefaultConfig()
	if *totalBytes > 0 {
		cfg.TotalBytes = uint64(*totalBytes)
	}
	if *dirBytes > 0 {
		cfg.DirectoryBytes = uint64(*dirBytes)
	}
	cfg.SingleThreaded = *singleThreaded

	core := membuf.NewCore(cfg)
	cache := membuf.NewCache[string, string](core, *clientID, nil)

	switch {
	case *setKey != "":
		if err := cache.Set(*setKey, *setValue); err != nil {
			fmt.Fprintln(os.Stderr, "membufctl: set failed:", err)
			os.Exit(1)
		}
		fmt.Printf("set %q\n", *setKey)
	case *getKey != "":
		value, found, err := cache.Get(*getKey)
		if err != nil {
			fmt.Fprintln(os.Stderr, "membufctl: get failed:", err)
			os.Exit(1)
		}
		if !found {
			fmt.Printf("%q: miss\n", *getKey)
			return
		}
		fmt.Printf("%q: %q\n", *getKey, value)
	case *showStats:
		printStats(cache.Stats())
	default:
		fmt.Println("membufctl: nothing to do, pass -set/-get/-stats (see -help)")
	}
}

func printStats(s membuf.Stats) {
	fmt.Printf("used entries:   %d\n", s.UsedEntries)
	fmt.Printf("payload bytes:  %d\n", s.TotalPayloadBytes)
	fmt.Printf("reads:          %d\n", s.TotalReads)
	fmt.Printf("writes:         %d\n", s.TotalWrites)
	fmt.Printf("hits:           %d\n", s.TotalHits)
	fmt.Printf("total hit count:%d\n", s.TotalHitCount)
}
