// Package parser implements the grammar-driven, recursive-descent
// transformation of statement text into an *ast.Command, per spec.md
// §4.2. Structurally grounded in freeeve-machparse's lexer→parser→ast
// split (token stream, precedence-climbing expression parser); the
// grammar itself is original since this is not a standard-SQL dialect
// (CREATE...KEY...FIELDS, DUMP_TO, SAVE_AS, READ_FROM are this spec's
// own vocabulary, not MySQL/Postgres/SQLite syntax).
package parser

import (
	"memdb/internal/apperrors"
	"memdb/internal/ast"
	"memdb/internal/lexer"
	"memdb/internal/value"
)

// Parser consumes a token stream and builds a single Command.
type Parser struct {
	toks []lexer.Token
	pos  int
}

// Parse tokenizes and parses a single statement, accepting (and
// discarding) a trailing ";" per spec.md §4.2.
func Parse(text string) (*ast.Command, error) {
	toks, err := lexer.Tokenize(text)
	if err != nil {
		return nil, err
	}
	p := &Parser{toks: toks}
	return p.parseCommand()
}

func (p *Parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *Parser) atEnd() bool       { return p.cur().Kind == lexer.EOF }

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) check(k lexer.Kind) bool { return p.cur().Kind == k }

func (p *Parser) checkKeyword(kw string) bool {
	return p.cur().Kind == lexer.Keyword && p.cur().Text == kw
}

func (p *Parser) expect(k lexer.Kind, what string) (lexer.Token, error) {
	if !p.check(k) {
		return lexer.Token{}, p.unexpected(what)
	}
	return p.advance(), nil
}

func (p *Parser) expectKeyword(kw string) error {
	if !p.checkKeyword(kw) {
		return p.unexpected(kw)
	}
	p.advance()
	return nil
}

func (p *Parser) unexpected(what string) error {
	t := p.cur()
	text := t.Text
	if t.Kind == lexer.EOF {
		text = "<end of input>"
	}
	return apperrors.Newf(apperrors.UnexpectedToken, "expected %s, found %q", what, text).WithSpan(t.Span)
}

func (p *Parser) parseCommand() (*ast.Command, error) {
	if p.check(lexer.Ident) {
		return nil, apperrors.Newf(apperrors.UnknownKeyword, "unknown statement keyword %q", p.cur().Text).WithSpan(p.cur().Span)
	}
	if !p.check(lexer.Keyword) {
		return nil, p.unexpected("a statement keyword")
	}

	var cmd *ast.Command
	var err error
	switch p.cur().Text {
	case "CREATE":
		cmd, err = p.parseCreate()
	case "INSERT":
		cmd, err = p.parseInsert()
	case "DELETE":
		cmd, err = p.parseDelete()
	case "SELECT":
		cmd, err = p.parseSelect()
	case "DUMP_TO":
		cmd, err = p.parseFileCommand(ast.CmdDumpTo, "DUMP_TO")
	case "LOAD_FROM":
		cmd, err = p.parseFileCommand(ast.CmdLoadFrom, "LOAD_FROM")
	case "SAVE_AS":
		cmd, err = p.parseFileCommand(ast.CmdSaveAs, "SAVE_AS")
	case "READ_FROM":
		cmd, err = p.parseFileCommand(ast.CmdReadFrom, "READ_FROM")
	default:
		return nil, apperrors.Newf(apperrors.UnknownKeyword, "unknown statement keyword %q", p.cur().Text).WithSpan(p.cur().Span)
	}
	if err != nil {
		return nil, err
	}

	if p.check(lexer.Semicolon) {
		p.advance()
	}
	if !p.atEnd() {
		return nil, p.unexpected("end of statement")
	}
	return cmd, nil
}

func (p *Parser) parseIdent() (string, error) {
	t, err := p.expect(lexer.Ident, "an identifier")
	if err != nil {
		return "", err
	}
	return t.Text, nil
}

func (p *Parser) parseString() (string, error) {
	t, err := p.expect(lexer.Str, "a string literal")
	if err != nil {
		return "", err
	}
	return t.Text, nil
}

// --- CREATE ---

func (p *Parser) parseCreate() (*ast.Command, error) {
	p.advance() // CREATE
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("KEY"); err != nil {
		return nil, err
	}
	key, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("FIELDS"); err != nil {
		return nil, err
	}

	var cols []ast.ColumnDecl
	for {
		col, err := p.parseColumnDecl()
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
		if p.check(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}

	return &ast.Command{Kind: ast.CmdCreate, TableName: name, Columns: cols, KeyColumn: key}, nil
}

func (p *Parser) parseColumnDecl() (ast.ColumnDecl, error) {
	name, err := p.parseIdent()
	if err != nil {
		return ast.ColumnDecl{}, err
	}
	if _, err := p.expect(lexer.Colon, `":"`); err != nil {
		return ast.ColumnDecl{}, err
	}
	if !p.check(lexer.Keyword) {
		return ast.ColumnDecl{}, p.unexpected("a type keyword (INT, STRING, or BOOLEAN)")
	}
	kw := p.advance().Text
	dt, ok := value.TypeForKeyword(kw)
	if !ok {
		return ast.ColumnDecl{}, apperrors.Newf(apperrors.InvalidType, "unknown type %q", kw).WithSpan(p.cur().Span)
	}
	return ast.ColumnDecl{Name: name, Type: dt}, nil
}

// --- INSERT ---

func (p *Parser) parseInsert() (*ast.Command, error) {
	p.advance() // INSERT

	var assigns []ast.Assignment
	for {
		a, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		assigns = append(assigns, a)
		if p.check(lexer.Comma) {
			p.advance()
			continue
		}
		break
	}

	if err := p.expectKeyword("INTO"); err != nil {
		return nil, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	return &ast.Command{Kind: ast.CmdInsert, TableName: name, Assignments: assigns}, nil
}

func (p *Parser) parseAssignment() (ast.Assignment, error) {
	name, err := p.parseIdent()
	if err != nil {
		return ast.Assignment{}, err
	}
	if _, err := p.expect(lexer.Eq, `"="`); err != nil {
		return ast.Assignment{}, err
	}
	lit, err := p.parseLiteralExpr()
	if err != nil {
		return ast.Assignment{}, err
	}
	return ast.Assignment{Column: name, Value: lit}, nil
}

// --- DELETE ---

func (p *Parser) parseDelete() (*ast.Command, error) {
	p.advance() // DELETE
	key, err := p.parseLiteralExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	return &ast.Command{Kind: ast.CmdDelete, TableName: name, Key: key}, nil
}

// --- SELECT ---

func (p *Parser) parseSelect() (*ast.Command, error) {
	p.advance() // SELECT

	var projection []string
	if p.check(lexer.Star) {
		p.advance()
	} else {
		for {
			name, err := p.parseIdent()
			if err != nil {
				return nil, err
			}
			projection = append(projection, name)
			if p.check(lexer.Comma) {
				p.advance()
				continue
			}
			break
		}
	}

	if err := p.expectKeyword("FROM"); err != nil {
		return nil, err
	}
	table, err := p.parseIdent()
	if err != nil {
		return nil, err
	}

	cmd := &ast.Command{Kind: ast.CmdSelect, TableName: table, Projection: projection}

	if p.checkKeyword("WHERE") {
		p.advance()
		where, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		cmd.Where = where
	}

	if p.checkKeyword("ORDER_BY") {
		p.advance()
		ob, err := p.parseOrderByTail()
		if err != nil {
			return nil, err
		}
		cmd.Order = ob
	} else if p.checkKeyword("ORDER") {
		p.advance()
		if err := p.expectKeyword("BY"); err != nil {
			return nil, err
		}
		ob, err := p.parseOrderByTail()
		if err != nil {
			return nil, err
		}
		cmd.Order = ob
	}

	if p.checkKeyword("LIMIT") {
		p.advance()
		t, err := p.expect(lexer.Int, "an integer")
		if err != nil {
			return nil, err
		}
		n := int(t.Int)
		cmd.Limit = &n
	}

	return cmd, nil
}

func (p *Parser) parseOrderByTail() (*ast.OrderBy, error) {
	col, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	dir := ast.Ascending
	if p.checkKeyword("ASC") {
		p.advance()
	} else if p.checkKeyword("DESC") {
		p.advance()
		dir = ast.Descending
	}
	return &ast.OrderBy{Column: col, Direction: dir}, nil
}

// --- file commands ---

func (p *Parser) parseFileCommand(kind ast.CommandKind, keyword string) (*ast.Command, error) {
	p.advance() // the keyword
	path, err := p.parseString()
	if err != nil {
		return nil, err
	}
	return &ast.Command{Kind: kind, Path: path}, nil
}

// --- expressions ---

// parseLiteralExpr parses the restricted "literal" production used by
// INSERT assignments and DELETE's key: an optionally sign-prefixed
// integer, a string, or a boolean — never a column reference or an
// arithmetic expression (spec.md §4.1).
func (p *Parser) parseLiteralExpr() (*ast.Expr, error) {
	neg := false
	if p.check(lexer.Minus) {
		p.advance()
		neg = true
	} else if p.check(lexer.Plus) {
		p.advance()
	}

	switch {
	case p.check(lexer.Int):
		t := p.advance()
		n := t.Int
		if neg {
			n = -n
		}
		return ast.Lit(value.MakeInt(n)), nil
	case p.check(lexer.Str):
		if neg {
			return nil, apperrors.New(apperrors.InvalidType, "unary '-' is not valid on a string literal").WithSpan(p.cur().Span)
		}
		t := p.advance()
		return ast.Lit(value.MakeString(t.Text)), nil
	case p.checkKeyword("TRUE"):
		if neg {
			return nil, apperrors.New(apperrors.InvalidType, "unary '-' is not valid on a boolean literal").WithSpan(p.cur().Span)
		}
		p.advance()
		return ast.Lit(value.MakeBool(true)), nil
	case p.checkKeyword("FALSE"):
		if neg {
			return nil, apperrors.New(apperrors.InvalidType, "unary '-' is not valid on a boolean literal").WithSpan(p.cur().Span)
		}
		p.advance()
		return ast.Lit(value.MakeBool(false)), nil
	default:
		return nil, p.unexpected("a literal")
	}
}

func (p *Parser) parseExpr() (*ast.Expr, error) { return p.parseOr() }

func (p *Parser) parseOr() (*ast.Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.checkKeyword("OR") {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.Log(ast.OpOr, left, right)
	}
	return left, nil
}

func (p *Parser) parseAnd() (*ast.Expr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.checkKeyword("AND") {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = ast.Log(ast.OpAnd, left, right)
	}
	return left, nil
}

func (p *Parser) parseNot() (*ast.Expr, error) {
	if p.checkKeyword("NOT") {
		p.advance()
		inner, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return ast.Un(ast.OpNot, inner), nil
	}
	return p.parseCmp()
}

var cmpOps = map[lexer.Kind]ast.CompareOp{
	lexer.Eq: ast.OpEq, lexer.Ne: ast.OpNe,
	lexer.Lt: ast.OpLt, lexer.Le: ast.OpLe,
	lexer.Gt: ast.OpGt, lexer.Ge: ast.OpGe,
}

func (p *Parser) parseCmp() (*ast.Expr, error) {
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	if op, ok := cmpOps[p.cur().Kind]; ok {
		p.advance()
		right, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		return ast.Cmp(op, left, right), nil
	}
	return left, nil
}

func (p *Parser) parseAdd() (*ast.Expr, error) {
	left, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.Plus) || p.check(lexer.Minus) {
		op := ast.OpAdd
		if p.check(lexer.Minus) {
			op = ast.OpSub
		}
		p.advance()
		right, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		left = ast.Bin(op, left, right)
	}
	return left, nil
}

func (p *Parser) parseMul() (*ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.check(lexer.Star) || p.check(lexer.Slash) || p.check(lexer.Percent) {
		var op ast.BinaryOp
		switch p.cur().Kind {
		case lexer.Star:
			op = ast.OpMul
		case lexer.Slash:
			op = ast.OpDiv
		default:
			op = ast.OpMod
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.Bin(op, left, right)
	}
	return left, nil
}

func (p *Parser) parseUnary() (*ast.Expr, error) {
	if p.check(lexer.Minus) {
		p.advance()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.Un(ast.OpNeg, inner), nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (*ast.Expr, error) {
	switch {
	case p.check(lexer.Int):
		t := p.advance()
		return ast.Lit(value.MakeInt(t.Int)), nil
	case p.check(lexer.Str):
		t := p.advance()
		return ast.Lit(value.MakeString(t.Text)), nil
	case p.checkKeyword("TRUE"):
		p.advance()
		return ast.Lit(value.MakeBool(true)), nil
	case p.checkKeyword("FALSE"):
		p.advance()
		return ast.Lit(value.MakeBool(false)), nil
	case p.check(lexer.Ident):
		t := p.advance()
		return ast.Col(t.Text), nil
	case p.check(lexer.LParen):
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen, `")"`); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, p.unexpected("a literal, column reference, or '('")
	}
}
