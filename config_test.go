// config_test.go: unit tests for membuf configuration
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package membuf

import "testing"

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.applyDefaults()

	if cfg.TotalBytes != DefaultTotalBytes {
		t.Errorf("TotalBytes = %d, want %d", cfg.TotalBytes, DefaultTotalBytes)
	}
	totalBytes := uint64(DefaultTotalBytes)
	wantDir := uint64(float64(totalBytes) * DefaultDirectoryRatio)
	if cfg.DirectoryBytes != wantDir {
		t.Errorf("DirectoryBytes = %d, want %d", cfg.DirectoryBytes, wantDir)
	}
	if cfg.Hasher == nil {
		t.Error("Hasher defaulted to nil")
	}
	if _, ok := cfg.Hasher.(md5Hasher); !ok {
		t.Errorf("Hasher default type = %T, want md5Hasher", cfg.Hasher)
	}
	if cfg.Logger == nil {
		t.Error("Logger defaulted to nil")
	}
	if cfg.TimeProvider == nil {
		t.Error("TimeProvider defaulted to nil")
	}
	if cfg.MetricsCollector == nil {
		t.Error("MetricsCollector defaulted to nil")
	}
}

func TestConfig_ApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := Config{
		TotalBytes:     1 << 20,
		DirectoryBytes: 1 << 16,
		SingleThreaded: true,
	}
	cfg.applyDefaults()

	if cfg.TotalBytes != 1<<20 {
		t.Errorf("TotalBytes overwritten: got %d", cfg.TotalBytes)
	}
	if cfg.DirectoryBytes != 1<<16 {
		t.Errorf("DirectoryBytes overwritten: got %d", cfg.DirectoryBytes)
	}
	if !cfg.SingleThreaded {
		t.Error("SingleThreaded lost its explicit true value")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.TotalBytes != DefaultTotalBytes {
		t.Errorf("TotalBytes = %d, want %d", cfg.TotalBytes, DefaultTotalBytes)
	}
	if cfg.SingleThreaded {
		t.Error("DefaultConfig should be thread-safe by default")
	}
	if _, ok := cfg.MetricsCollector.(NoOpMetricsCollector); !ok {
		t.Errorf("MetricsCollector = %T, want NoOpMetricsCollector", cfg.MetricsCollector)
	}
}

func TestSystemTimeProvider_Monotonic(t *testing.T) {
	p := &systemTimeProvider{}
	first := p.Now()
	second := p.Now()
	if second < first {
		t.Errorf("Now() went backwards: %d then %d", first, second)
	}
}
