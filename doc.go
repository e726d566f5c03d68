// Package membuf provides an in-memory, set-associative, randomized-LFU
// cache of serialized byte payloads backed by a single shared arena.
//
// # Overview
//
// membuf is a port of the design behind Subversion's in-process
// membuffer cache: a fixed directory of fully-associative groups
// indexes entries into a contiguous byte arena, evicted by a sliding
// insertion window whose survive/evict decision is a randomized draw
// weighted by hit count. There is no per-entry heap allocation for
// cached values and no classical LRU list to mutate on every read.
//
//   - Core: the shared, byte-oriented engine (directory + arena +
//     eviction). Safe for concurrent use unless constructed with
//     Config.SingleThreaded.
//   - Cache[K, V]: a typed, per-client facade over a Core, adding key
//     prefixing and (de)serialization via a Codec.
//   - Supervisor: Argus-backed hot reload that rebuilds and swaps a
//     Core when its sizing configuration changes on disk.
//
// # Quick Start
//
//	import "github.com/agilira/membuf"
//
//	type User struct {
//	    ID   int
//	    Name string
//	}
//
//	func main() {
//	    core := membuf.NewCore(membuf.DefaultConfig())
//	    cache := membuf.NewCache[string, User](core, "my-service", nil)
//
//	    if err := cache.Set("user:123", User{ID: 123, Name: "Alice"}); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    if user, found, err := cache.Get("user:123"); err == nil && found {
//	        fmt.Printf("User: %s\n", user.Name)
//	    }
//
//	    stats := cache.Stats()
//	    fmt.Printf("Used entries: %d / hits: %d\n", stats.UsedEntries, stats.TotalHits)
//	}
//
// # Eviction
//
// Unlike a classical LRU or W-TinyLFU cache, membuf never moves an
// entry in response to a hit. A single counter is bumped. Structural
// work, deciding what survives, happens only when the sliding
// insertion window must advance to make room for a new entry:
//
//   - the entry at the tail of the window is compared against a
//     random threshold in [0, 2*average_hit_count)
//   - entries scoring at or above the threshold survive, get their hit
//     count halved, and are compacted to the front of the window
//   - entries scoring below are evicted outright
//
// This amortizes eviction bookkeeping across Set calls instead of
// paying for list maintenance on every Get.
//
// # Concurrency Model
//
// A single mutex guards the whole Core: the directory, the arena,
// and every counter. Hashing, serialization, and deserialization of
// the client value happen outside this critical section wherever
// possible; a Get's deserializer runs inside it, trading a marginally
// longer lock hold for never copying the arena bytes out first. See
// Core.Get.
//
// # Observability
//
// Core accepts a Logger and a MetricsCollector (default NoOpLogger /
// NoOpMetricsCollector, zero overhead). An OpenTelemetry-backed
// MetricsCollector is available as a separate module:
//
//	import membufotel "github.com/agilira/membuf/otel"
//
//	collector, _ := membufotel.NewOTelMetricsCollector(provider)
//	cfg := membuf.DefaultConfig()
//	cfg.MetricsCollector = collector
//	core := membuf.NewCore(cfg)
//
// Metrics exposed: get/set latency histograms and hit/miss/eviction
// counters. There is no delete or expiration metric because this
// cache has neither operation.
//
// # Non-goals
//
// This cache has no TTL, no Delete, and no iteration: the directory
// stores only a 128-bit fingerprint of each key, never the key
// itself, so there is nothing to enumerate or look up except by
// recomputing the fingerprint. Callers needing expiration or
// enumeration should layer it on top of Cache, the way the original
// Subversion cache left those concerns to its callers.
package membuf
