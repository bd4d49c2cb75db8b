package main

import (
	"log/slog"
	"os"
)

// fileContext is the concrete executor.Context used by the CLI: real
// filesystem reads/writes plus an in-process history buffer, matching
// spec.md §6's "ctx supplies the file system capability... and, for
// SaveAs, the history buffer".
type fileContext struct {
	history []string
}

func newFileContext() *fileContext {
	return &fileContext{}
}

func (c *fileContext) ReadBytes(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (c *fileContext) WriteBytes(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

// ReadText reads path as UTF-8 script text, the text-mode counterpart to
// ReadBytes used for the run script and READ_FROM's source files. It is a
// CLI-side method; executor.Context does not include it.
func (c *fileContext) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *fileContext) RecordStatement(statement string) {
	c.history = append(c.history, statement)
}

func (c *fileContext) History() []string {
	return c.history
}

func slogLevel() slog.Level {
	return slog.LevelInfo
}
