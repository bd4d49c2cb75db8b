// Package apperrors defines memdb's flat error taxonomy. Every error the
// parser or executor can return is a *Error carrying a Kind plus whatever
// context (source span, table/column name, file path) is meaningful for
// that kind, following the teacher's *ValidationError shape
// (Entity/Name/Field/Message) generalized to a tagged Kind.
package apperrors

import "fmt"

// Kind identifies one of the error variants from spec.md §7. Kinds are not
// organized into a hierarchy; each is a distinct, flat leaf.
type Kind string

const (
	// Parse errors.
	UnexpectedToken    Kind = "UnexpectedToken"
	UnterminatedString Kind = "UnterminatedString"
	InvalidInteger     Kind = "InvalidInteger"
	InvalidType        Kind = "InvalidType"
	UnknownKeyword     Kind = "UnknownKeyword"

	// Schema errors.
	TableExists       Kind = "TableExists"
	UnknownTable      Kind = "UnknownTable"
	UnknownColumn     Kind = "UnknownColumn"
	DuplicateColumn   Kind = "DuplicateColumn"
	UnknownKeyColumn  Kind = "UnknownKeyColumn"
	InvalidIdentifier Kind = "InvalidIdentifier"

	// Insert/Delete errors.
	MissingColumn        Kind = "MissingColumn"
	DuplicateAssignment  Kind = "DuplicateAssignment"
	DuplicateKey         Kind = "DuplicateKey"
	KeyNotFound          Kind = "KeyNotFound"

	// Evaluation errors.
	TypeMismatch   Kind = "TypeMismatch"
	DivisionByZero Kind = "DivisionByZero"
	InvalidLimit   Kind = "InvalidLimit"

	// Persistence errors.
	IoError     Kind = "IoError"
	EncodeError Kind = "EncodeError"
	DecodeError Kind = "DecodeError"
)

// Span is a 1-based line/column range in source text, attached to every
// parse error.
type Span struct {
	StartLine, StartCol int
	EndLine, EndCol      int
}

func (s Span) String() string {
	if s.StartLine == 0 {
		return ""
	}
	return fmt.Sprintf("%d:%d-%d:%d", s.StartLine, s.StartCol, s.EndLine, s.EndCol)
}

// Error is the single concrete error type for every Kind in this package.
// Only the fields relevant to a given Kind are populated; the zero value
// of the rest is simply omitted from Error().
type Error struct {
	Kind Kind

	Span Span

	Table  string
	Column string
	Value  string

	Path   string
	Offset int64

	Message string

	Wrapped error
}

func (e *Error) Error() string {
	var loc string
	if e.Span.StartLine != 0 {
		loc = fmt.Sprintf(" at %s", e.Span)
	} else if e.Path != "" && e.Offset != 0 {
		loc = fmt.Sprintf(" (%s, offset %d)", e.Path, e.Offset)
	} else if e.Path != "" {
		loc = fmt.Sprintf(" (%s)", e.Path)
	}

	ctx := ""
	switch {
	case e.Table != "" && e.Column != "":
		ctx = fmt.Sprintf(" [table=%s column=%s]", e.Table, e.Column)
	case e.Table != "":
		ctx = fmt.Sprintf(" [table=%s]", e.Table)
	case e.Column != "":
		ctx = fmt.Sprintf(" [column=%s]", e.Column)
	}

	msg := e.Message
	if msg == "" && e.Wrapped != nil {
		msg = e.Wrapped.Error()
	}
	if msg == "" {
		msg = string(e.Kind)
	}

	return fmt.Sprintf("%s: %s%s%s", e.Kind, msg, ctx, loc)
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is reports whether err is an *Error of the given Kind, the idiomatic hook
// for errors.Is(err, apperrors.New(kind, ...)) style checks in tests.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds a bare *Error of the given kind with a message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds a bare *Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithSpan returns a copy of e with Span set, for parse errors.
func (e *Error) WithSpan(s Span) *Error {
	c := *e
	c.Span = s
	return &c
}

// WithTable returns a copy of e with Table set.
func (e *Error) WithTable(name string) *Error {
	c := *e
	c.Table = name
	return &c
}

// WithColumn returns a copy of e with Column set.
func (e *Error) WithColumn(name string) *Error {
	c := *e
	c.Column = name
	return &c
}

// WithPath returns a copy of e with Path set, for persistence errors.
func (e *Error) WithPath(path string) *Error {
	c := *e
	c.Path = path
	return &c
}

// WithOffset returns a copy of e with Offset set, for DecodeError.
func (e *Error) WithOffset(off int64) *Error {
	c := *e
	c.Offset = off
	return &c
}

// WithWrapped returns a copy of e wrapping cause.
func (e *Error) WithWrapped(cause error) *Error {
	c := *e
	c.Wrapped = cause
	return &c
}

// KindOf extracts the Kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if ok := asError(err, &e); ok {
		return e.Kind, true
	}
	return "", false
}

func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
