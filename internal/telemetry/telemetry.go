// Package telemetry builds the structured logger the executor uses to
// report one record per command (SPEC_FULL.md §2, item 8: "kind, target
// table, outcome, timing"). It wraps github.com/sokkalf/slog-seq so every
// record carries a monotonic sequence number, which is what lets the
// CLI (or a future outer layer) reconstruct command order from a log
// stream even when multiple processes write to the same sink.
package telemetry

import (
	"io"
	"log/slog"

	slogseq "github.com/sokkalf/slog-seq"
)

// New builds a *slog.Logger that writes sequenced, structured records to
// w. A nil w defaults to io.Discard, giving callers a logger that costs
// almost nothing when telemetry isn't wanted.
func New(w io.Writer, level slog.Level) *slog.Logger {
	if w == nil {
		w = io.Discard
	}
	handler := slogseq.NewHandler(w, &slogseq.Options{
		Level: level,
	})
	return slog.New(handler)
}

// Discard is the zero-cost logger used when the caller never configured
// an output sink.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
