package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memdb/internal/apperrors"
	"memdb/internal/lexer"
)

func kinds(toks []lexer.Token) []lexer.Kind {
	out := make([]lexer.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeCreateStatement(t *testing.T) {
	toks, err := lexer.Tokenize(`CREATE users KEY id FIELDS id: INT, name: STRING;`)
	require.NoError(t, err)
	assert.Equal(t, []lexer.Kind{
		lexer.Keyword, lexer.Ident, lexer.Keyword, lexer.Ident, lexer.Keyword,
		lexer.Ident, lexer.Colon, lexer.Keyword, lexer.Comma,
		lexer.Ident, lexer.Colon, lexer.Keyword, lexer.Semicolon, lexer.EOF,
	}, kinds(toks))
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	toks, err := lexer.Tokenize(`select`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, lexer.Keyword, toks[0].Kind)
	assert.Equal(t, "SELECT", toks[0].Text)
}

func TestStringEscape(t *testing.T) {
	toks, err := lexer.Tokenize(`"a\"b"`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, `a"b`, toks[0].Text)
}

func TestUnterminatedString(t *testing.T) {
	_, err := lexer.Tokenize(`"unterminated`)
	require.Error(t, err)
	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.UnterminatedString, kind)
}

func TestComparisonOperators(t *testing.T) {
	toks, err := lexer.Tokenize(`!= <= >= <> < >`)
	require.NoError(t, err)
	assert.Equal(t, []lexer.Kind{
		lexer.Ne, lexer.Le, lexer.Ge, lexer.Ne, lexer.Lt, lexer.Gt, lexer.EOF,
	}, kinds(toks))
}

func TestUnexpectedCharacter(t *testing.T) {
	_, err := lexer.Tokenize(`@`)
	require.Error(t, err)
	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.UnexpectedToken, kind)
}
