package lexer

import (
	"fmt"
	"unicode"
)

// LexError reports an unrecognized character or malformed literal together
// with its source position.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

type Lexer struct {
	src  []rune
	i    int
	ch   rune
	line int
	col  int
}

func New(src string) *Lexer {
	l := &Lexer{src: []rune(src), line: 1}
	l.read()
	return l
}

func (l *Lexer) read() {
	if l.i >= len(l.src) {
		l.ch = 0
		return
	}
	l.ch = l.src[l.i]
	l.i++
	if l.ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
}

func (l *Lexer) peek() rune {
	if l.i >= len(l.src) {
		return 0
	}
	return l.src[l.i]
}

func (l *Lexer) errorf(line, col int, format string, args ...any) error {
	return &LexError{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}
}

// single emits a one-character token and advances.
func (l *Lexer) single(tok *Token, tt TokenType) {
	tok.Type, tok.Lex = tt, string(l.ch)
	l.read()
}

// twoIf emits the two-character token when the next rune matches, the
// one-character token otherwise. Longest match always wins, so "<=" never
// lexes as '<' '=' and "&&" never as two '&'.
func (l *Lexer) twoIf(tok *Token, next rune, two, one TokenType) {
	first := l.ch
	l.read()
	if l.ch == next {
		tok.Type, tok.Lex = two, string(first)+string(l.ch)
		l.read()
		return
	}
	tok.Type, tok.Lex = one, string(first)
}

// Next returns the next token, or an error for input the lexer cannot
// tokenize. After EOF it keeps returning EOF.
func (l *Lexer) Next() (Token, error) {
	// skip spaces and comments
	for {
		for unicode.IsSpace(l.ch) {
			l.read()
		}
		if l.ch == '/' && l.peek() == '/' {
			for l.ch != 0 && l.ch != '\n' {
				l.read()
			}
			continue
		}
		if l.ch == '/' && l.peek() == '*' {
			l.read()
			l.read()
			for l.ch != 0 {
				if l.ch == '*' && l.peek() == '/' {
					l.read()
					l.read()
					break
				}
				l.read()
			}
			continue
		}
		break
	}
	tok := Token{Line: l.line, Col: l.col}
	switch ch := l.ch; ch {
	case 0:
		tok.Type = EOF
	case '(':
		l.single(&tok, LPAREN)
	case ')':
		l.single(&tok, RPAREN)
	case '{':
		l.single(&tok, LBRACE)
	case '}':
		l.single(&tok, RBRACE)
	case ';':
		l.single(&tok, SEMI)
	case '+':
		l.single(&tok, PLUS)
	case '*':
		l.single(&tok, STAR)
	case '/':
		l.single(&tok, SLASH)
	case '%':
		l.single(&tok, PERCENT)
	case '~':
		l.single(&tok, TILDE)
	case '-':
		l.twoIf(&tok, '-', MINUS2, MINUS)
	case '!':
		l.twoIf(&tok, '=', NEQ, BANG)
	case '=':
		l.twoIf(&tok, '=', EQEQ, ASSIGN)
	case '<':
		l.twoIf(&tok, '=', LE, LT)
	case '>':
		l.twoIf(&tok, '=', GE, GT)
	case '&':
		l.twoIf(&tok, '&', ANDAND, AMP)
	case '|':
		l.twoIf(&tok, '|', OROR, PIPE)
	default:
		switch {
		case unicode.IsLetter(ch) || ch == '_':
			ident := []rune{ch}
			l.read()
			for unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch) || l.ch == '_' {
				ident = append(ident, l.ch)
				l.read()
			}
			lex := string(ident)
			switch lex {
			case "int":
				tok.Type = KW_INT
			case "void":
				tok.Type = KW_VOID
			case "return":
				tok.Type = KW_RETURN
			default:
				tok.Type = IDENT
			}
			tok.Lex = lex
		case unicode.IsDigit(ch):
			num := []rune{ch}
			l.read()
			for unicode.IsDigit(l.ch) {
				num = append(num, l.ch)
				l.read()
			}
			// A constant running straight into an identifier character is
			// one malformed token, not two adjacent ones.
			if unicode.IsLetter(l.ch) || l.ch == '_' {
				return tok, l.errorf(tok.Line, tok.Col,
					"invalid character %q in constant", l.ch)
			}
			tok.Type, tok.Lex = INT, string(num)
		default:
			return tok, l.errorf(tok.Line, tok.Col,
				"unrecognized character %q", ch)
		}
	}
	return tok, nil
}

// Tokenize drains the lexer, returning every token up to and including EOF.
func Tokenize(src string) ([]Token, error) {
	l := New(src)
	var toks []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks, nil
		}
	}
}
