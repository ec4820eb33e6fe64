// Package eventlog records start/success/warning/failure notices for
// filesystem operations.
//
// Events are append-only and safe for concurrent use. The sink is pluggable:
//   - ZapSink: structured output via uber/zap (console or JSON)
//   - FileSink: one line per event in a plain text file
//   - MemorySink: in-memory capture for tests
//   - MetricsSink: Prometheus counters per operation and level
//
// A process-wide default log is created at startup and can be replaced with
// SetDefault for dependency injection in tests.
//
// Example Usage:
//
//	log := eventlog.New(eventlog.NewMemorySink())
//	log.Start("export", "/home/user/proj")
//	log.Warning("export", "max_files limit reached (500)")
package eventlog
