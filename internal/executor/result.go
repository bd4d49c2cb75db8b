package executor

import "memdb/internal/value"

// ResultKind tags which variant of Result is populated, per spec.md §6.
type ResultKind int

const (
	// Ack is returned by Create, Insert, Delete, DumpTo, LoadFrom, SaveAs.
	Ack ResultKind = iota
	// Rows is returned by Select.
	Rows
	// DeferredScript is returned by ReadFrom: the caller is expected to
	// read the named file and re-enter the parse/execute loop itself.
	DeferredScript
)

// Result is the outcome of a single successful Execute call.
type Result struct {
	Kind ResultKind

	// Ack
	Message string

	// Rows
	Columns []string
	Values  [][]value.Value

	// DeferredScript
	Path string
}
