// Package lexer tokenizes memdb statement text for the parser. Structured
// the way freeeve-machparse's token/lexer split is: a fixed token-kind
// enum plus a hand-written scanner, since this grammar needs none of a
// general SQL dialect's lookahead.
package lexer

import "memdb/internal/apperrors"

// Kind identifies the lexical class of a Token.
type Kind int

const (
	EOF Kind = iota
	Ident
	Int
	Str
	Keyword

	// Punctuation / operators.
	Semicolon
	Comma
	Colon
	LParen
	RParen
	Star
	Plus
	Minus
	Slash
	Percent
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
)

// Token is one lexical unit together with its source span.
type Token struct {
	Kind  Kind
	Text  string // source text (Ident spelling as written, Keyword spelling upper-cased, or unescaped string contents for Str)
	Int   int64  // populated when Kind == Int
	Span  apperrors.Span
}

// keywords is the set of case-insensitive reserved words recognized by the
// grammar in spec.md §4.2. A token whose upper-cased text matches one of
// these is classified Keyword instead of Ident.
var keywords = map[string]bool{
	"CREATE": true, "KEY": true, "FIELDS": true,
	"INT": true, "STRING": true, "BOOLEAN": true,
	"INSERT": true, "INTO": true,
	"DELETE": true, "FROM": true,
	"SELECT": true, "WHERE": true, "ORDER": true, "ORDER_BY": true, "BY": true,
	"ASC": true, "DESC": true, "LIMIT": true,
	"AND": true, "OR": true, "NOT": true,
	"TRUE": true, "FALSE": true,
	"DUMP_TO": true, "LOAD_FROM": true, "SAVE_AS": true, "READ_FROM": true,
}

// IsKeyword reports whether the upper-cased spelling of text is reserved.
func IsKeyword(upper string) bool { return keywords[upper] }
