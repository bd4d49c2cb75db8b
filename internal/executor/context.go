package executor

// Context is the file-system and history capability an executor needs to
// carry out DumpTo/LoadFrom/SaveAs/ReadFrom, per spec.md §6 ("ctx supplies
// the file system capability... and, for SaveAs, the history buffer").
// Kept as an interface so callers can inject an in-memory fake for tests
// without touching the real filesystem.
type Context interface {
	ReadBytes(path string) ([]byte, error)
	WriteBytes(path string, data []byte) error

	// RecordStatement appends statement to the session's accepted-statement
	// history, per spec.md §4.4's "record accepted statement" hook. It is
	// called by the caller (not the executor itself) once a statement has
	// been successfully parsed and executed; SaveAs flushes whatever has
	// accumulated to a file.
	RecordStatement(statement string)
	History() []string
}
