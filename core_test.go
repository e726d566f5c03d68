// core_test.go: unit tests for Core construction, Get, and Set
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package membuf

import "testing"

func TestNewCore_DefaultConfig(t *testing.T) {
	c := NewCore(DefaultConfig())
	if c.degenerate {
		t.Error("DefaultConfig should not produce a degenerate core")
	}
	if c.dir.groupCount() < 1 {
		t.Error("expected at least one group")
	}
}

func TestNewCore_TinyTotalBytesClampsUp(t *testing.T) {
	c := NewCore(Config{TotalBytes: 4})
	if c.degenerate {
		t.Fatal("a tiny TotalBytes should clamp up to a minimal working core, not degenerate")
	}
	if c.dir.groupCount() < 1 || c.are.len() == 0 {
		t.Fatalf("clamped core = %d groups, %d arena bytes; want a usable minimum",
			c.dir.groupCount(), c.are.len())
	}

	c.Set([]byte("k"), []byte("tiny"))
	found, err := c.Get([]byte("k"), func([]byte) error { return nil })
	if err != nil || !found {
		t.Errorf("Get on clamped-up core = (%v, %v), want (true, nil)", found, err)
	}
}

func TestDegenerateCore_GetMissesSetNoOps(t *testing.T) {
	// The degenerate state is only entered on allocation failure,
	// which the public constructor cannot simulate; build it directly.
	cfg := Config{}
	cfg.applyDefaults()
	c := newDegenerateCore(cfg)

	found, err := c.Get([]byte("anything"), func([]byte) error { return nil })
	if err != nil || found {
		t.Errorf("degenerate Get = (%v, %v), want (false, nil)", found, err)
	}

	c.Set([]byte("anything"), []byte("payload"))
	found, err = c.Get([]byte("anything"), func([]byte) error { return nil })
	if err != nil || found {
		t.Error("degenerate Set should be a silent no-op")
	}
}

func TestNewCore_ClampsDirectoryBytes(t *testing.T) {
	c := NewCore(Config{TotalBytes: 1 << 20, DirectoryBytes: 1 << 30})
	if c.dir.groupCount() < 1 {
		t.Error("oversized DirectoryBytes should clamp, not break construction")
	}
	if c.are.len() == 0 {
		t.Error("clamping directory bytes should leave room for the arena")
	}
}

func TestCore_SetThenGet_RoundTrips(t *testing.T) {
	c := NewCore(Config{TotalBytes: 1 << 16})
	key := []byte("round-trip-key")
	payload := []byte("round-trip-value")

	c.Set(key, payload)

	var got []byte
	found, err := c.Get(key, func(p []byte) error {
		got = append([]byte(nil), p...)
		return nil
	})
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if !found {
		t.Fatal("expected a hit immediately after Set")
	}
	if string(got) != string(payload) {
		t.Errorf("got %q, want %q", got, payload)
	}
}

func TestCore_Get_MissOnUnknownKey(t *testing.T) {
	c := NewCore(Config{TotalBytes: 1 << 16})
	found, err := c.Get([]byte("never-set"), func([]byte) error { return nil })
	if err != nil || found {
		t.Errorf("Get on unknown key = (%v, %v), want (false, nil)", found, err)
	}
}

func TestCore_Get_DeserializeErrorSurfaces(t *testing.T) {
	c := NewCore(Config{TotalBytes: 1 << 16})
	c.Set([]byte("k"), []byte("v"))

	boom := errBoom{}
	found, err := c.Get([]byte("k"), func([]byte) error { return boom })
	if err != boom {
		t.Errorf("Get error = %v, want the deserializer's error", err)
	}
	if found {
		t.Error("a deserialize failure should report found=false")
	}
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func TestCore_Set_OversizeRejectedButDropsPriorMapping(t *testing.T) {
	// A=256 total arena bytes: oversize threshold is 256/4 = 64 bytes.
	c := NewCore(Config{TotalBytes: 528, DirectoryBytes: 256})
	key := []byte("k")

	c.Set(key, make([]byte, 32))
	found, _ := c.Get(key, func([]byte) error { return nil })
	if !found {
		t.Fatal("expected the initial 32-byte Set to be admitted")
	}

	c.Set(key, make([]byte, 80)) // 80 > 64: rejected
	found, _ = c.Get(key, func([]byte) error { return nil })
	if found {
		t.Error("oversize Set should drop the prior mapping and admit nothing")
	}
}

func TestCore_Stats_ReflectsWrites(t *testing.T) {
	c := NewCore(Config{TotalBytes: 1 << 16})
	c.Set([]byte("a"), []byte("1"))
	c.Set([]byte("b"), []byte("22"))
	_, _ = c.Get([]byte("a"), func([]byte) error { return nil })
	_, _ = c.Get([]byte("missing"), func([]byte) error { return nil })

	stats := c.Stats()
	if stats.TotalWrites != 2 {
		t.Errorf("TotalWrites = %d, want 2", stats.TotalWrites)
	}
	if stats.TotalReads != 2 {
		t.Errorf("TotalReads = %d, want 2", stats.TotalReads)
	}
	if stats.TotalHits != 1 {
		t.Errorf("TotalHits = %d, want 1", stats.TotalHits)
	}
	if stats.UsedEntries != 2 {
		t.Errorf("UsedEntries = %d, want 2", stats.UsedEntries)
	}
}

type digestFailsHasher struct{}

func (digestFailsHasher) Fingerprint([]byte) (fingerprint, bool) { return fingerprint{}, false }

func TestCore_DigestFailure_GetMissesSetNoOps(t *testing.T) {
	c := NewCore(Config{TotalBytes: 1 << 16, Hasher: digestFailsHasher{}})

	c.Set([]byte("k"), []byte("v"))
	found, err := c.Get([]byte("k"), func([]byte) error {
		t.Error("deserialize should never be invoked when the digest fails")
		return nil
	})
	if err != nil || found {
		t.Errorf("Get after digest failure = (%v, %v), want (false, nil)", found, err)
	}
}
