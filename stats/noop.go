// Package stats provides the default StatsSink: a no-op sink. A concrete
// SQL-backed sink is deliberately not built here; see DESIGN.md for why
// alicebob/sqlittle, the one SQL-shaped candidate available, is the
// wrong tool for it (a read-only SQLite reader, not a writer).
package stats

import cdcl "github.com/crillab/cdclsat"

// NopSink implements cdcl.StatsSink by discarding every record, the
// default StatsSink installed when the caller has no external stats
// database: an optional sink that is unavailable is simply not
// consulted, and NopSink is always available and always a no-op.
type NopSink struct{}

// New returns a NopSink.
func New() NopSink { return NopSink{} }

// RecordConflict implements cdcl.StatsSink.
func (NopSink) RecordConflict(cdcl.Stats) {}

// Close implements cdcl.StatsSink.
func (NopSink) Close() error { return nil }

var _ cdcl.StatsSink = NopSink{}
