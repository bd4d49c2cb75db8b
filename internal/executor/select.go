package executor

import (
	"sort"

	"memdb/internal/apperrors"
	"memdb/internal/ast"
	"memdb/internal/model"
	"memdb/internal/value"
)

// execSelect implements the five-step pipeline from spec.md §4.3: resolve
// table, filter, order, limit, project.
func (e *Executor) execSelect(cmd *ast.Command) (*Result, error) {
	table, err := e.DB.MustTable(cmd.TableName)
	if err != nil {
		return nil, err
	}

	projection := cmd.Projection
	if projection == nil {
		projection = table.ColumnNames()
	} else {
		for _, col := range projection {
			if _, ok := table.Column(col); !ok {
				return nil, apperrors.New(apperrors.UnknownColumn, "no such column").
					WithTable(cmd.TableName).WithColumn(col)
			}
		}
	}

	recs := table.Records()

	if cmd.Where != nil {
		filtered := recs[:0:0]
		for _, r := range recs {
			keep, err := evalPredicate(cmd.Where, r)
			if err != nil {
				return nil, err
			}
			if keep {
				filtered = append(filtered, r)
			}
		}
		recs = filtered
	}

	if cmd.Order != nil {
		if _, ok := table.Column(cmd.Order.Column); !ok {
			return nil, apperrors.New(apperrors.UnknownColumn, "no such column").
				WithTable(cmd.TableName).WithColumn(cmd.Order.Column)
		}
		var sortErr error
		sort.SliceStable(recs, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			vi, _ := recs[i].Get(cmd.Order.Column)
			vj, _ := recs[j].Get(cmd.Order.Column)
			cmp, ok := value.Compare(vi, vj)
			if !ok {
				sortErr = apperrors.Newf(apperrors.TypeMismatch, "cannot order %s against %s", vi.Type(), vj.Type())
				return false
			}
			if cmd.Order.Direction == ast.Descending {
				return cmp > 0
			}
			return cmp < 0
		})
		if sortErr != nil {
			return nil, sortErr
		}
	}

	if cmd.Limit != nil {
		if *cmd.Limit < 0 {
			return nil, apperrors.New(apperrors.InvalidLimit, "LIMIT must be non-negative")
		}
		if *cmd.Limit < len(recs) {
			recs = recs[:*cmd.Limit]
		}
	}

	rows := make([][]value.Value, len(recs))
	for i, r := range recs {
		rows[i] = r.Project(projection)
	}

	return &Result{Kind: Rows, Columns: projection, Values: rows}, nil
}

// evalPredicate evaluates where against rec and requires a Bool result
// (spec.md §4.3 step 2: "A non-Bool final result aborts the whole query
// with TypeMismatch").
func evalPredicate(where *ast.Expr, rec model.Record) (bool, error) {
	v, err := Eval(where, rec)
	if err != nil {
		return false, err
	}
	if v.Tag() != value.TagBool {
		return false, apperrors.New(apperrors.TypeMismatch, "WHERE clause must evaluate to a Bool")
	}
	return v.Bool(), nil
}
