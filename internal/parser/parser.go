package parser

import (
	"fmt"
	"strconv"

	"github.com/smallcc/smallcc/internal/ast"
	"github.com/smallcc/smallcc/internal/lexer"
)

// ParseError reports the construct the parser expected and the token it
// found instead.
type ParseError struct {
	Expected string
	Tok      lexer.Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: expected %s, found %s",
		e.Tok.Line, e.Tok.Col, e.Expected, e.Tok)
}

type Parser struct {
	lx  *lexer.Lexer
	tok lexer.Token
}

// ParseFile lexes and parses one source file into a program. Lexer errors
// surface as-is; everything else is a *ParseError.
func ParseFile(src string) (*ast.Program, error) {
	p := &Parser{lx: lexer.New(src)}
	if err := p.next(); err != nil {
		return nil, err
	}
	fn, err := p.parseFunction()
	if err != nil {
		return nil, err
	}
	if !p.tok.Is(lexer.EOF) {
		return nil, p.errorf("end of file after function body")
	}
	return &ast.Program{Function: fn}, nil
}

func (p *Parser) next() error {
	tok, err := p.lx.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) errorf(format string, args ...any) error {
	return &ParseError{Expected: fmt.Sprintf(format, args...), Tok: p.tok}
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if !p.tok.Is(tt) {
		return lexer.Token{}, p.errorf("%v", tt)
	}
	t := p.tok
	if err := p.next(); err != nil {
		return lexer.Token{}, err
	}
	return t, nil
}

// function := "int" IDENT "(" "void" ")" "{" { statement } "}"
func (p *Parser) parseFunction() (*ast.Function, error) {
	if _, err := p.expect(lexer.KW_INT); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KW_VOID); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var body []ast.Stmt
	// Stop at EOF too, so a missing brace is reported as the '}' it is.
	for !p.tok.Is(lexer.RBRACE) && !p.tok.Is(lexer.EOF) {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		body = append(body, s)
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.Function{Name: nameTok.Lex, Body: body}, nil
}

// statement := "return" expression ";"
func (p *Parser) parseStmt() (ast.Stmt, error) {
	if !p.tok.Is(lexer.KW_RETURN) {
		return nil, p.errorf("statement")
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	e, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return &ast.ReturnStmt{Expr: e}, nil
}

// Binding powers, loosest to tightest. All binary operators are
// left-associative.
var binaryPrec = map[lexer.TokenType]int{
	lexer.OROR:    5,
	lexer.ANDAND:  10,
	lexer.EQEQ:    30,
	lexer.NEQ:     30,
	lexer.LT:      35,
	lexer.LE:      35,
	lexer.GT:      35,
	lexer.GE:      35,
	lexer.PLUS:    45,
	lexer.MINUS:   45,
	lexer.STAR:    50,
	lexer.SLASH:   50,
	lexer.PERCENT: 50,
}

var binaryOps = map[lexer.TokenType]ast.BinaryOp{
	lexer.OROR:    ast.OpLOr,
	lexer.ANDAND:  ast.OpLAnd,
	lexer.EQEQ:    ast.OpEq,
	lexer.NEQ:     ast.OpNe,
	lexer.LT:      ast.OpLt,
	lexer.LE:      ast.OpLe,
	lexer.GT:      ast.OpGt,
	lexer.GE:      ast.OpGe,
	lexer.PLUS:    ast.OpAdd,
	lexer.MINUS:   ast.OpSub,
	lexer.STAR:    ast.OpMul,
	lexer.SLASH:   ast.OpDiv,
	lexer.PERCENT: ast.OpRem,
}

// parseExpr is precedence climbing: consume operators binding at least as
// tightly as minPrec, recursing at one level tighter for the right operand.
func (p *Parser) parseExpr(minPrec int) (ast.Expr, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		prec, ok := binaryPrec[p.tok.Type]
		if !ok || prec < minPrec {
			return left, nil
		}
		op := binaryOps[p.tok.Type]
		if err := p.next(); err != nil {
			return nil, err
		}
		right, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
}

// factor := INT | unary-op factor | "(" expression ")"
func (p *Parser) parseFactor() (ast.Expr, error) {
	switch p.tok.Type {
	case lexer.INT:
		v, err := strconv.ParseInt(p.tok.Lex, 10, 32)
		if err != nil {
			return nil, p.errorf("constant in int range")
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		return &ast.IntLit{Value: v}, nil
	case lexer.MINUS, lexer.TILDE, lexer.BANG:
		var op ast.UnaryOp
		switch p.tok.Type {
		case lexer.MINUS:
			op = ast.OpNeg
		case lexer.TILDE:
			op = ast.OpBitNot
		case lexer.BANG:
			op = ast.OpNot
		}
		if err := p.next(); err != nil {
			return nil, err
		}
		x, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Op: op, X: x}, nil
	case lexer.LPAREN:
		if err := p.next(); err != nil {
			return nil, err
		}
		e, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.MINUS2:
		return nil, p.errorf("expression ('--' is not supported)")
	default:
		return nil, p.errorf("expression")
	}
}
