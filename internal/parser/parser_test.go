package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memdb/internal/apperrors"
	"memdb/internal/ast"
	"memdb/internal/parser"
)

func TestParseCreate(t *testing.T) {
	cmd, err := parser.Parse(`CREATE users KEY id FIELDS id: INT, name: STRING;`)
	require.NoError(t, err)
	assert.Equal(t, ast.CmdCreate, cmd.Kind)
	assert.Equal(t, "users", cmd.TableName)
	assert.Equal(t, "id", cmd.KeyColumn)
	require.Len(t, cmd.Columns, 2)
	assert.Equal(t, "name", cmd.Columns[1].Name)
}

func TestParseInsert(t *testing.T) {
	cmd, err := parser.Parse(`INSERT id = 1, name = "alice" INTO users;`)
	require.NoError(t, err)
	assert.Equal(t, ast.CmdInsert, cmd.Kind)
	require.Len(t, cmd.Assignments, 2)
	assert.Equal(t, int64(1), cmd.Assignments[0].Value.Literal.Int())
}

func TestParseInsertNegativeLiteral(t *testing.T) {
	cmd, err := parser.Parse(`INSERT id = -3 INTO users;`)
	require.NoError(t, err)
	assert.Equal(t, int64(-3), cmd.Assignments[0].Value.Literal.Int())
}

func TestParseDelete(t *testing.T) {
	cmd, err := parser.Parse(`DELETE 42 FROM users;`)
	require.NoError(t, err)
	assert.Equal(t, ast.CmdDelete, cmd.Kind)
	assert.Equal(t, int64(42), cmd.Key.Literal.Int())
}

func TestParseSelectWithWhereOrderLimit(t *testing.T) {
	cmd, err := parser.Parse(`SELECT id, name FROM users WHERE id > 1 ORDER BY name DESC LIMIT 5;`)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, cmd.Projection)
	require.NotNil(t, cmd.Where)
	require.NotNil(t, cmd.Order)
	assert.Equal(t, "name", cmd.Order.Column)
	assert.Equal(t, ast.Descending, cmd.Order.Direction)
	require.NotNil(t, cmd.Limit)
	assert.Equal(t, 5, *cmd.Limit)
}

func TestParseSelectOrderBySynonym(t *testing.T) {
	cmd, err := parser.Parse(`SELECT * FROM users ORDER_BY id ASC;`)
	require.NoError(t, err)
	require.NotNil(t, cmd.Order)
	assert.Equal(t, ast.Ascending, cmd.Order.Direction)
}

func TestParseFileCommands(t *testing.T) {
	cmd, err := parser.Parse(`DUMP_TO "snapshot.bin";`)
	require.NoError(t, err)
	assert.Equal(t, ast.CmdDumpTo, cmd.Kind)
	assert.Equal(t, "snapshot.bin", cmd.Path)
}

func TestParseUnknownKeyword(t *testing.T) {
	_, err := parser.Parse(`FROBNICATE users;`)
	require.Error(t, err)
	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.UnknownKeyword, kind)
}

func TestParseTrailingGarbageIsUnexpectedToken(t *testing.T) {
	_, err := parser.Parse(`SELECT * FROM users garbage`)
	require.Error(t, err)
	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.UnexpectedToken, kind)
}

// TestRenderRoundTrip exercises spec.md §8's canonical-form property:
// parsing a statement, rendering it, and re-parsing the rendered text
// must yield an equal Command tree.
func TestRenderRoundTrip(t *testing.T) {
	stmts := []string{
		`CREATE users KEY id FIELDS id: INT, name: STRING, active: BOOLEAN;`,
		`INSERT id = 1, name = "alice", active = TRUE INTO users;`,
		`DELETE 1 FROM users;`,
		`SELECT id, name FROM users WHERE (id > 0) AND (active = TRUE) ORDER BY name DESC LIMIT 10;`,
		`DUMP_TO "snap.bin";`,
		`LOAD_FROM "snap.bin";`,
		`SAVE_AS "history.log";`,
		`READ_FROM "script.txt";`,
	}

	for _, src := range stmts {
		cmd, err := parser.Parse(src)
		require.NoError(t, err, src)

		rendered := parser.Render(cmd)
		again, err := parser.Parse(rendered)
		require.NoError(t, err, rendered)

		assert.Equal(t, cmd, again, "round-trip mismatch for %q -> %q", src, rendered)
	}
}
