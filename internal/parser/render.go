package parser

import (
	"fmt"
	"strings"

	"memdb/internal/ast"
	"memdb/internal/value"
)

// Render produces the canonical textual form of cmd: the same statement
// the grammar in spec.md §4.2 accepts, with keywords upper-cased and
// deterministic spacing. Render(cmd) fed back through Parse yields an
// equal Command tree (spec.md §8's round-trip property) as long as no
// string literal or path contains a control character such as a newline
// or tab: strings are quoted with Go's %q escaping, and the lexer accepts
// \" as its only escape, so such strings do not re-parse. It is distinct
// from the verbatim accepted-statement text SAVE_AS records, which is
// whatever the caller originally typed.
func Render(cmd *ast.Command) string {
	var sb strings.Builder
	switch cmd.Kind {
	case ast.CmdCreate:
		fmt.Fprintf(&sb, "CREATE %s KEY %s FIELDS ", cmd.TableName, cmd.KeyColumn)
		parts := make([]string, len(cmd.Columns))
		for i, c := range cmd.Columns {
			parts[i] = fmt.Sprintf("%s: %s", c.Name, c.Type)
		}
		sb.WriteString(strings.Join(parts, ", "))
	case ast.CmdInsert:
		sb.WriteString("INSERT ")
		parts := make([]string, len(cmd.Assignments))
		for i, a := range cmd.Assignments {
			parts[i] = fmt.Sprintf("%s = %s", a.Column, renderLiteral(a.Value))
		}
		sb.WriteString(strings.Join(parts, ", "))
		fmt.Fprintf(&sb, " INTO %s", cmd.TableName)
	case ast.CmdDelete:
		fmt.Fprintf(&sb, "DELETE %s FROM %s", renderLiteral(cmd.Key), cmd.TableName)
	case ast.CmdSelect:
		sb.WriteString("SELECT ")
		if cmd.Projection == nil {
			sb.WriteString("*")
		} else {
			sb.WriteString(strings.Join(cmd.Projection, ", "))
		}
		fmt.Fprintf(&sb, " FROM %s", cmd.TableName)
		if cmd.Where != nil {
			fmt.Fprintf(&sb, " WHERE %s", renderExpr(cmd.Where))
		}
		if cmd.Order != nil {
			dir := "ASC"
			if cmd.Order.Direction == ast.Descending {
				dir = "DESC"
			}
			fmt.Fprintf(&sb, " ORDER BY %s %s", cmd.Order.Column, dir)
		}
		if cmd.Limit != nil {
			fmt.Fprintf(&sb, " LIMIT %d", *cmd.Limit)
		}
	case ast.CmdDumpTo:
		fmt.Fprintf(&sb, "DUMP_TO %q", cmd.Path)
	case ast.CmdLoadFrom:
		fmt.Fprintf(&sb, "LOAD_FROM %q", cmd.Path)
	case ast.CmdSaveAs:
		fmt.Fprintf(&sb, "SAVE_AS %q", cmd.Path)
	case ast.CmdReadFrom:
		fmt.Fprintf(&sb, "READ_FROM %q", cmd.Path)
	}
	sb.WriteString(";")
	return sb.String()
}

func renderLiteral(e *ast.Expr) string {
	return renderValue(e.Literal)
}

func renderValue(v value.Value) string {
	switch v.Tag() {
	case value.TagString:
		return fmt.Sprintf("%q", v.Str())
	default:
		return v.String()
	}
}

func renderExpr(e *ast.Expr) string {
	switch e.Kind {
	case ast.ExprLiteral:
		return renderValue(e.Literal)
	case ast.ExprColumnRef:
		return e.Column
	case ast.ExprUnary:
		switch e.UnaryOp {
		case ast.OpNeg:
			return fmt.Sprintf("-%s", renderExpr(e.Operand))
		default:
			return fmt.Sprintf("NOT %s", renderExpr(e.Operand))
		}
	case ast.ExprBinary:
		return fmt.Sprintf("(%s %s %s)", renderExpr(e.Left), binSymbol(e.BinOp), renderExpr(e.Right))
	case ast.ExprCompare:
		return fmt.Sprintf("(%s %s %s)", renderExpr(e.Left), cmpSymbol(e.CmpOp), renderExpr(e.Right))
	case ast.ExprLogical:
		op := "AND"
		if e.LogOp == ast.OpOr {
			op = "OR"
		}
		return fmt.Sprintf("(%s %s %s)", renderExpr(e.Left), op, renderExpr(e.Right))
	default:
		return "?"
	}
}

func binSymbol(op ast.BinaryOp) string {
	switch op {
	case ast.OpAdd:
		return "+"
	case ast.OpSub:
		return "-"
	case ast.OpMul:
		return "*"
	case ast.OpDiv:
		return "/"
	default:
		return "%"
	}
}

func cmpSymbol(op ast.CompareOp) string {
	switch op {
	case ast.OpEq:
		return "="
	case ast.OpNe:
		return "!="
	case ast.OpLt:
		return "<"
	case ast.OpLe:
		return "<="
	case ast.OpGt:
		return ">"
	default:
		return ">="
	}
}
