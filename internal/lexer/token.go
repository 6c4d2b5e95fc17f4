package lexer

type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Identifiers + literals
	IDENT
	INT

	// Keywords
	KW_INT
	KW_VOID
	KW_RETURN

	// Symbols
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }
	SEMI   // ;

	// Operators
	PLUS    // +
	MINUS   // -
	MINUS2  // --
	STAR    // *
	SLASH   // /
	PERCENT // %
	TILDE   // ~
	BANG    // !
	AMP     // &
	PIPE    // |
	ANDAND  // &&
	OROR    // ||
	ASSIGN  // =
	EQEQ    // ==
	NEQ     // !=
	LT      // <
	LE      // <=
	GT      // >
	GE      // >=
)

var tokenNames = map[TokenType]string{
	EOF:       "end of file",
	IDENT:     "identifier",
	INT:       "constant",
	KW_INT:    "'int'",
	KW_VOID:   "'void'",
	KW_RETURN: "'return'",
	LPAREN:    "'('",
	RPAREN:    "')'",
	LBRACE:    "'{'",
	RBRACE:    "'}'",
	SEMI:      "';'",
	PLUS:      "'+'",
	MINUS:     "'-'",
	MINUS2:    "'--'",
	STAR:      "'*'",
	SLASH:     "'/'",
	PERCENT:   "'%'",
	TILDE:     "'~'",
	BANG:      "'!'",
	AMP:       "'&'",
	PIPE:      "'|'",
	ANDAND:    "'&&'",
	OROR:      "'||'",
	ASSIGN:    "'='",
	EQEQ:      "'=='",
	NEQ:       "'!='",
	LT:        "'<'",
	LE:        "'<='",
	GT:        "'>'",
	GE:        "'>='",
}

func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return "unknown token"
}

type Token struct {
	Type TokenType
	Lex  string
	Line int
	Col  int
}

func (t Token) Is(tt TokenType) bool { return t.Type == tt }

// String renders the token for diagnostics: the literal text when there is
// one, the token-type description otherwise (EOF carries no text).
func (t Token) String() string {
	if t.Lex == "" {
		return t.Type.String()
	}
	return "'" + t.Lex + "'"
}
