package executor

import (
	"memdb/internal/apperrors"
	"memdb/internal/ast"
	"memdb/internal/model"
	"memdb/internal/value"
)

// execInsert builds the full record in schema order, validating that
// every declared column is assigned exactly once and that every assigned
// value's tag matches the column's declared type, before ever touching
// the table (spec.md §4.3's Insert algorithm; grounded in
// LeeNgari-JoyDb's executeInsert column-by-column conversion loop).
func (e *Executor) execInsert(cmd *ast.Command) (*Result, error) {
	table, err := e.DB.MustTable(cmd.TableName)
	if err != nil {
		return nil, err
	}

	byCol := make(map[string]*ast.Expr, len(cmd.Assignments))
	for _, a := range cmd.Assignments {
		if _, dup := byCol[a.Column]; dup {
			return nil, apperrors.New(apperrors.DuplicateAssignment, "column assigned more than once").
				WithTable(cmd.TableName).WithColumn(a.Column)
		}
		if _, ok := table.Column(a.Column); !ok {
			return nil, apperrors.New(apperrors.UnknownColumn, "no such column").
				WithTable(cmd.TableName).WithColumn(a.Column)
		}
		byCol[a.Column] = a.Value
	}

	values := make([]value.Value, len(table.Schema))
	for i, col := range table.Schema {
		expr, ok := byCol[col.Name]
		if !ok {
			return nil, apperrors.New(apperrors.MissingColumn, "column not assigned").
				WithTable(cmd.TableName).WithColumn(col.Name)
		}
		v, err := Eval(expr, model.Record{})
		if err != nil {
			return nil, err
		}
		if v.Tag() != col.Type.Tag {
			return nil, apperrors.Newf(apperrors.TypeMismatch, "column %q expects %s, got %s", col.Name, col.Type, v.Type()).
				WithTable(cmd.TableName).WithColumn(col.Name)
		}
		values[i] = v
	}

	rec := model.Record{Schema: table.Schema, Values: values}
	if err := table.Insert(rec); err != nil {
		return nil, err
	}
	return &Result{Kind: Ack, Message: "1 row inserted"}, nil
}

// execDelete looks the primary-key literal up in the table's key map and
// removes the matching record (spec.md §4.3's Delete algorithm).
func (e *Executor) execDelete(cmd *ast.Command) (*Result, error) {
	table, err := e.DB.MustTable(cmd.TableName)
	if err != nil {
		return nil, err
	}

	keyVal, err := Eval(cmd.Key, model.Record{})
	if err != nil {
		return nil, err
	}
	if keyVal.Tag() != value.TagInt {
		return nil, apperrors.Newf(apperrors.TypeMismatch, "key value must be Int, got %s", keyVal.Type()).
			WithTable(cmd.TableName).WithColumn(table.KeyColumn)
	}

	if err := table.Delete(keyVal.Int()); err != nil {
		return nil, err
	}
	return &Result{Kind: Ack, Message: "1 row deleted"}, nil
}
