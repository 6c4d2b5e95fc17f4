package lexer

import (
	"errors"
	"testing"
)

func tokenTypes(t *testing.T, src string) []TokenType {
	t.Helper()
	toks, err := Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", src, err)
	}
	types := make([]TokenType, 0, len(toks))
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	return types
}

func TestTokenizeProgram(t *testing.T) {
	src := "int main(void) { return 2; }"
	want := []TokenType{
		KW_INT, IDENT, LPAREN, KW_VOID, RPAREN,
		LBRACE, KW_RETURN, INT, SEMI, RBRACE, EOF,
	}
	got := tokenTypes(t, src)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLongestMatch(t *testing.T) {
	tests := []struct {
		src  string
		want []TokenType
	}{
		{"<=", []TokenType{LE, EOF}},
		{"< =", []TokenType{LT, ASSIGN, EOF}},
		{">=", []TokenType{GE, EOF}},
		{"==", []TokenType{EQEQ, EOF}},
		{"=", []TokenType{ASSIGN, EOF}},
		{"!=", []TokenType{NEQ, EOF}},
		{"!", []TokenType{BANG, EOF}},
		{"&&", []TokenType{ANDAND, EOF}},
		{"&", []TokenType{AMP, EOF}},
		{"& &", []TokenType{AMP, AMP, EOF}},
		{"||", []TokenType{OROR, EOF}},
		{"|", []TokenType{PIPE, EOF}},
		{"--", []TokenType{MINUS2, EOF}},
		{"- -", []TokenType{MINUS, MINUS, EOF}},
		{"<<=", []TokenType{LT, LE, EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := tokenTypes(t, tt.src)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCommentsAndWhitespace(t *testing.T) {
	src := "  // line comment\n/* block\ncomment */ 42\t"
	toks, err := Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(toks) != 2 || toks[0].Type != INT || toks[0].Lex != "42" {
		t.Errorf("got %v, want [42 EOF]", toks)
	}
}

func TestMalformedConstant(t *testing.T) {
	for _, src := range []string{"123abc", "return 1foo;", "9_"} {
		t.Run(src, func(t *testing.T) {
			_, err := Tokenize(src)
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("Tokenize(%q): got %v, want *LexError", src, err)
			}
		})
	}
}

func TestUnrecognizedCharacter(t *testing.T) {
	_, err := Tokenize("int main(void) { return 1 $ 2; }")
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("got %v, want *LexError", err)
	}
	if lexErr.Line != 1 || lexErr.Col != 27 {
		t.Errorf("error at %d:%d, want 1:27", lexErr.Line, lexErr.Col)
	}
}

func TestPositions(t *testing.T) {
	toks, err := Tokenize("int x\n  <= 3")
	if err != nil {
		t.Fatal(err)
	}
	wantPos := []struct{ line, col int }{
		{1, 1}, // int
		{1, 5}, // x
		{2, 3}, // <=
		{2, 6}, // 3
	}
	for i, want := range wantPos {
		if toks[i].Line != want.line || toks[i].Col != want.col {
			t.Errorf("token %d (%v) at %d:%d, want %d:%d",
				i, toks[i], toks[i].Line, toks[i].Col, want.line, want.col)
		}
	}
}

func TestEOFIsSticky(t *testing.T) {
	l := New("1")
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		if err != nil {
			t.Fatal(err)
		}
		if i > 0 && tok.Type != EOF {
			t.Fatalf("call %d: got %v, want EOF", i, tok.Type)
		}
	}
}
