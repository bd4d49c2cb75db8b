package executor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memdb/internal/apperrors"
	"memdb/internal/ast"
	"memdb/internal/executor"
	"memdb/internal/model"
	"memdb/internal/value"
)

func usersTable(t *testing.T) *model.Database {
	t.Helper()
	db := model.NewDatabase()
	tbl, err := model.NewTable("users", []model.Column{
		{Name: "id", Type: value.Int},
		{Name: "name", Type: value.String},
	}, "id")
	require.NoError(t, err)
	require.NoError(t, db.CreateTable(tbl))
	return db
}

func TestExecInsertBuildsRecordInSchemaOrder(t *testing.T) {
	db := usersTable(t)
	e := executor.New(db, nil, nil)

	cmd := &ast.Command{
		Kind:      ast.CmdInsert,
		TableName: "users",
		Assignments: []ast.Assignment{
			{Column: "name", Value: ast.Lit(value.MakeString("alice"))},
			{Column: "id", Value: ast.Lit(value.MakeInt(1))},
		},
	}
	res, err := e.Execute(cmd)
	require.NoError(t, err)
	assert.Equal(t, executor.Ack, res.Kind)

	tbl, _ := db.Table("users")
	rec, ok := tbl.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "alice", rec.Values[1].Str())
}

func TestExecInsertMissingColumn(t *testing.T) {
	db := usersTable(t)
	e := executor.New(db, nil, nil)

	cmd := &ast.Command{
		Kind:      ast.CmdInsert,
		TableName: "users",
		Assignments: []ast.Assignment{
			{Column: "id", Value: ast.Lit(value.MakeInt(1))},
		},
	}
	_, err := e.Execute(cmd)
	require.Error(t, err)
	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.MissingColumn, kind)
}

func TestExecInsertDuplicateAssignment(t *testing.T) {
	db := usersTable(t)
	e := executor.New(db, nil, nil)

	cmd := &ast.Command{
		Kind:      ast.CmdInsert,
		TableName: "users",
		Assignments: []ast.Assignment{
			{Column: "id", Value: ast.Lit(value.MakeInt(1))},
			{Column: "id", Value: ast.Lit(value.MakeInt(2))},
			{Column: "name", Value: ast.Lit(value.MakeString("x"))},
		},
	}
	_, err := e.Execute(cmd)
	require.Error(t, err)
	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.DuplicateAssignment, kind)
}

func TestExecInsertTypeMismatchDoesNotMutate(t *testing.T) {
	db := usersTable(t)
	e := executor.New(db, nil, nil)

	cmd := &ast.Command{
		Kind:      ast.CmdInsert,
		TableName: "users",
		Assignments: []ast.Assignment{
			{Column: "id", Value: ast.Lit(value.MakeString("not an int"))},
			{Column: "name", Value: ast.Lit(value.MakeString("x"))},
		},
	}
	_, err := e.Execute(cmd)
	require.Error(t, err)
	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.TypeMismatch, kind)

	tbl, _ := db.Table("users")
	assert.Equal(t, 0, tbl.Len())
}

func TestExecDelete(t *testing.T) {
	db := usersTable(t)
	e := executor.New(db, nil, nil)

	_, err := e.Execute(&ast.Command{
		Kind: ast.CmdInsert, TableName: "users",
		Assignments: []ast.Assignment{
			{Column: "id", Value: ast.Lit(value.MakeInt(1))},
			{Column: "name", Value: ast.Lit(value.MakeString("alice"))},
		},
	})
	require.NoError(t, err)

	res, err := e.Execute(&ast.Command{Kind: ast.CmdDelete, TableName: "users", Key: ast.Lit(value.MakeInt(1))})
	require.NoError(t, err)
	assert.Equal(t, executor.Ack, res.Kind)

	tbl, _ := db.Table("users")
	assert.Equal(t, 0, tbl.Len())
}

func TestExecDeleteKeyNotFound(t *testing.T) {
	db := usersTable(t)
	e := executor.New(db, nil, nil)

	_, err := e.Execute(&ast.Command{Kind: ast.CmdDelete, TableName: "users", Key: ast.Lit(value.MakeInt(99))})
	require.Error(t, err)
	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.KeyNotFound, kind)
}

func TestExecDeleteNonIntKeyTypeMismatch(t *testing.T) {
	db := usersTable(t)
	e := executor.New(db, nil, nil)

	_, err := e.Execute(&ast.Command{Kind: ast.CmdDelete, TableName: "users", Key: ast.Lit(value.MakeString("x"))})
	require.Error(t, err)
	kind, _ := apperrors.KindOf(err)
	assert.Equal(t, apperrors.TypeMismatch, kind)
}
