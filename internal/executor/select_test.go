package executor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memdb/internal/apperrors"
	"memdb/internal/ast"
	"memdb/internal/executor"
	"memdb/internal/value"
)

func seedUsers(t *testing.T, e *executor.Executor) {
	t.Helper()
	rows := []struct {
		id   int64
		name string
	}{
		{3, "carol"}, {1, "alice"}, {2, "bob"},
	}
	for _, r := range rows {
		_, err := e.Execute(&ast.Command{
			Kind: ast.CmdInsert, TableName: "users",
			Assignments: []ast.Assignment{
				{Column: "id", Value: ast.Lit(value.MakeInt(r.id))},
				{Column: "name", Value: ast.Lit(value.MakeString(r.name))},
			},
		})
		require.NoError(t, err)
	}
}

func TestSelectStarReturnsSchemaOrder(t *testing.T) {
	db := usersTable(t)
	e := executor.New(db, nil, nil)
	seedUsers(t, e)

	res, err := e.Execute(&ast.Command{Kind: ast.CmdSelect, TableName: "users"})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, res.Columns)
	assert.Len(t, res.Values, 3)
}

func TestSelectOnEmptyTable(t *testing.T) {
	db := usersTable(t)
	e := executor.New(db, nil, nil)

	res, err := e.Execute(&ast.Command{Kind: ast.CmdSelect, TableName: "users"})
	require.NoError(t, err)
	assert.Empty(t, res.Values)
}

func TestSelectWhereFilters(t *testing.T) {
	db := usersTable(t)
	e := executor.New(db, nil, nil)
	seedUsers(t, e)

	res, err := e.Execute(&ast.Command{
		Kind: ast.CmdSelect, TableName: "users",
		Where: ast.Cmp(ast.OpGt, ast.Col("id"), ast.Lit(value.MakeInt(1))),
	})
	require.NoError(t, err)
	assert.Len(t, res.Values, 2)
}

func TestSelectWhereNonBoolIsTypeMismatch(t *testing.T) {
	db := usersTable(t)
	e := executor.New(db, nil, nil)
	seedUsers(t, e)

	_, err := e.Execute(&ast.Command{
		Kind: ast.CmdSelect, TableName: "users",
		Where: ast.Col("id"),
	})
	require.Error(t, err)
	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.TypeMismatch, kind)
}

func TestSelectOrderByAscending(t *testing.T) {
	db := usersTable(t)
	e := executor.New(db, nil, nil)
	seedUsers(t, e)

	res, err := e.Execute(&ast.Command{
		Kind: ast.CmdSelect, TableName: "users",
		Order: &ast.OrderBy{Column: "id", Direction: ast.Ascending},
	})
	require.NoError(t, err)
	require.Len(t, res.Values, 3)
	assert.Equal(t, int64(1), res.Values[0][0].Int())
	assert.Equal(t, int64(2), res.Values[1][0].Int())
	assert.Equal(t, int64(3), res.Values[2][0].Int())
}

func TestSelectOrderByDescending(t *testing.T) {
	db := usersTable(t)
	e := executor.New(db, nil, nil)
	seedUsers(t, e)

	res, err := e.Execute(&ast.Command{
		Kind: ast.CmdSelect, TableName: "users",
		Order: &ast.OrderBy{Column: "name", Direction: ast.Descending},
	})
	require.NoError(t, err)
	require.Len(t, res.Values, 3)
	assert.Equal(t, "carol", res.Values[0][1].Str())
	assert.Equal(t, "bob", res.Values[1][1].Str())
	assert.Equal(t, "alice", res.Values[2][1].Str())
}

func TestSelectLimitZero(t *testing.T) {
	db := usersTable(t)
	e := executor.New(db, nil, nil)
	seedUsers(t, e)

	zero := 0
	res, err := e.Execute(&ast.Command{Kind: ast.CmdSelect, TableName: "users", Limit: &zero})
	require.NoError(t, err)
	assert.Empty(t, res.Values)
}

func TestSelectNegativeLimitIsInvalid(t *testing.T) {
	db := usersTable(t)
	e := executor.New(db, nil, nil)
	seedUsers(t, e)

	neg := -1
	_, err := e.Execute(&ast.Command{Kind: ast.CmdSelect, TableName: "users", Limit: &neg})
	require.Error(t, err)
	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.InvalidLimit, kind)
}

func TestSelectUnknownProjectionColumn(t *testing.T) {
	db := usersTable(t)
	e := executor.New(db, nil, nil)

	_, err := e.Execute(&ast.Command{
		Kind: ast.CmdSelect, TableName: "users", Projection: []string{"ghost"},
	})
	require.Error(t, err)
	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.UnknownColumn, kind)
}
