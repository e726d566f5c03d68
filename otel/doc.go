// Package otel provides OpenTelemetry integration for membuf cache metrics.
//
// # Overview
//
// This package implements the membuf.MetricsCollector interface using
// OpenTelemetry, enabling percentile-aware latency observability and
// multi-backend export (Prometheus, Jaeger, DataDog, Grafana).
//
// It is a separate module so the membuf core carries no OTEL
// dependency: applications that don't configure a MetricsCollector
// don't pay for one.
//
// # Quick Start
//
//	import (
//	    "github.com/agilira/membuf"
//	    membufotel "github.com/agilira/membuf/otel"
//	    "go.opentelemetry.io/otel/exporters/prometheus"
//	    "go.opentelemetry.io/otel/sdk/metric"
//	)
//
//	exporter, _ := prometheus.New()
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//	defer provider.Shutdown(context.Background())
//
//	collector, err := membufotel.NewOTelMetricsCollector(provider)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg := membuf.DefaultConfig()
//	cfg.MetricsCollector = collector
//	core := membuf.NewCore(cfg)
//
// # Metrics Exposed
//
// Histograms:
//   - membuf_get_latency_ns
//   - membuf_set_latency_ns
//
// Counters:
//   - membuf_get_hits_total
//   - membuf_get_misses_total
//   - membuf_evictions_total
//
// There is no delete or expiration metric: this cache has neither
// operation.
//
// # Prometheus Queries
//
//	histogram_quantile(0.95, rate(membuf_get_latency_ns_bucket[5m]))
//	rate(membuf_get_hits_total[5m]) /
//	  (rate(membuf_get_hits_total[5m]) + rate(membuf_get_misses_total[5m]))
//	rate(membuf_evictions_total[1m]) * 60
package otel
