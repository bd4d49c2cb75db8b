// Package executor evaluates a parsed ast.Command against a model.Database,
// implementing the per-command contracts and the Select query pipeline
// from spec.md §4.3. Its validate-before-mutate shape is grounded in the
// teacher's internal/apply.Applier (preflight checks before Apply); the
// per-row evaluation loop is grounded in LeeNgari-JoyDb's executeInsert.
package executor

import (
	"memdb/internal/apperrors"
	"memdb/internal/ast"
	"memdb/internal/model"
	"memdb/internal/value"
)

// Eval evaluates expr against rec, returning its Value or a TypeMismatch /
// UnknownColumn / DivisionByZero error.
func Eval(expr *ast.Expr, rec model.Record) (value.Value, error) {
	switch expr.Kind {
	case ast.ExprLiteral:
		return expr.Literal, nil

	case ast.ExprColumnRef:
		v, ok := rec.Get(expr.Column)
		if !ok {
			return value.Value{}, apperrors.New(apperrors.UnknownColumn, "unknown column").WithColumn(expr.Column)
		}
		return v, nil

	case ast.ExprUnary:
		operand, err := Eval(expr.Operand, rec)
		if err != nil {
			return value.Value{}, err
		}
		switch expr.UnaryOp {
		case ast.OpNeg:
			if operand.Tag() != value.TagInt {
				return value.Value{}, apperrors.New(apperrors.TypeMismatch, "unary '-' requires an Int operand")
			}
			return value.MakeInt(-operand.Int()), nil
		default: // OpNot
			if operand.Tag() != value.TagBool {
				return value.Value{}, apperrors.New(apperrors.TypeMismatch, "NOT requires a Bool operand")
			}
			return value.MakeBool(!operand.Bool()), nil
		}

	case ast.ExprBinary:
		return evalBinary(expr, rec)

	case ast.ExprCompare:
		return evalCompare(expr, rec)

	case ast.ExprLogical:
		return evalLogical(expr, rec)

	default:
		return value.Value{}, apperrors.New(apperrors.TypeMismatch, "unevaluable expression")
	}
}

func evalBinary(expr *ast.Expr, rec model.Record) (value.Value, error) {
	left, err := Eval(expr.Left, rec)
	if err != nil {
		return value.Value{}, err
	}
	right, err := Eval(expr.Right, rec)
	if err != nil {
		return value.Value{}, err
	}
	if left.Tag() != value.TagInt || right.Tag() != value.TagInt {
		return value.Value{}, apperrors.New(apperrors.TypeMismatch, "arithmetic requires Int operands")
	}
	a, b := left.Int(), right.Int()
	switch expr.BinOp {
	case ast.OpAdd:
		return value.MakeInt(a + b), nil
	case ast.OpSub:
		return value.MakeInt(a - b), nil
	case ast.OpMul:
		return value.MakeInt(a * b), nil
	case ast.OpDiv:
		if b == 0 {
			return value.Value{}, apperrors.New(apperrors.DivisionByZero, "division by zero")
		}
		return value.MakeInt(a / b), nil
	default: // OpMod
		if b == 0 {
			return value.Value{}, apperrors.New(apperrors.DivisionByZero, "modulo by zero")
		}
		return value.MakeInt(a % b), nil
	}
}

func evalCompare(expr *ast.Expr, rec model.Record) (value.Value, error) {
	left, err := Eval(expr.Left, rec)
	if err != nil {
		return value.Value{}, err
	}
	right, err := Eval(expr.Right, rec)
	if err != nil {
		return value.Value{}, err
	}
	cmp, ok := value.Compare(left, right)
	if !ok {
		return value.Value{}, apperrors.Newf(apperrors.TypeMismatch, "cannot compare %s to %s", left.Type(), right.Type())
	}

	var result bool
	switch expr.CmpOp {
	case ast.OpEq:
		result = cmp == 0
	case ast.OpNe:
		result = cmp != 0
	case ast.OpLt:
		result = cmp < 0
	case ast.OpLe:
		result = cmp <= 0
	case ast.OpGt:
		result = cmp > 0
	default: // OpGe
		result = cmp >= 0
	}
	return value.MakeBool(result), nil
}

func evalLogical(expr *ast.Expr, rec model.Record) (value.Value, error) {
	left, err := Eval(expr.Left, rec)
	if err != nil {
		return value.Value{}, err
	}
	if left.Tag() != value.TagBool {
		return value.Value{}, apperrors.New(apperrors.TypeMismatch, "logical operator requires Bool operands")
	}
	right, err := Eval(expr.Right, rec)
	if err != nil {
		return value.Value{}, err
	}
	if right.Tag() != value.TagBool {
		return value.Value{}, apperrors.New(apperrors.TypeMismatch, "logical operator requires Bool operands")
	}
	switch expr.LogOp {
	case ast.OpAnd:
		return value.MakeBool(left.Bool() && right.Bool()), nil
	default: // OpOr
		return value.MakeBool(left.Bool() || right.Bool()), nil
	}
}
