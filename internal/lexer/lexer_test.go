package lexer

import (
	"testing"

	"github.com/dfrs-lang/dfrsc/internal/token"
)

func TestTokenize_Basic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			name:  "empty event",
			input: "@Join {}",
			want:  []token.Kind{token.AT, token.IDENT, token.LBRACE, token.RBRACE, token.EOF},
		},
		{
			name:  "cancelled event marker",
			input: "@EntityDamage! {}",
			want:  []token.Kind{token.AT, token.IDENT, token.BANG, token.LBRACE, token.RBRACE, token.EOF},
		},
		{
			name:  "action call with text literal",
			input: "p:SendMessage('Hello')",
			want:  []token.Kind{token.IDENT, token.COLON, token.IDENT, token.LPAREN, token.TEXTLIT, token.RPAREN, token.EOF},
		},
		{
			name:  "variable literal",
			input: "%count",
			want:  []token.Kind{token.VARIABLE, token.EOF},
		},
		{
			name:  "comparison operators",
			input: "< > <= >= != ==",
			want:  []token.Kind{token.LT, token.GT, token.LE, token.GE, token.NE, token.EQEQ, token.EOF},
		},
		{
			name:  "line comment skipped",
			input: "p:A() // trailing comment\np:B()",
			want: []token.Kind{
				token.IDENT, token.COLON, token.IDENT, token.LPAREN, token.RPAREN,
				token.IDENT, token.COLON, token.IDENT, token.LPAREN, token.RPAREN,
				token.EOF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			if len(toks) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d: %v", len(toks), len(tt.want), toks)
			}
			for i, k := range tt.want {
				if toks[i].Kind != k {
					t.Errorf("token %d: got %v, want %v", i, toks[i].Kind, k)
				}
			}
		})
	}
}

func TestTokenize_Positions(t *testing.T) {
	toks, err := Tokenize("p:A(\n  'x'\n)")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	// 'x' literal starts on line 2.
	var lit token.Token
	for _, tk := range toks {
		if tk.Kind == token.TEXTLIT {
			lit = tk
		}
	}
	if lit.Start.Line != 2 {
		t.Errorf("text literal line = %d, want 2", lit.Start.Line)
	}
}

func TestTokenize_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  ErrorKind
	}{
		{"invalid number", "1.2.3", InvalidNumber},
		{"invalid token", "p:A(#)", InvalidToken},
		{"unterminated string", `"abc`, UnterminatedString},
		{"unterminated text", `'abc`, UnterminatedText},
		{"unterminated string newline", "\"abc\nxyz", UnterminatedString},
		{"unterminated variable", "%", UnterminatedVariable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			if err == nil {
				t.Fatalf("Tokenize() error = nil, want %v", tt.kind)
			}
			if err.Kind != tt.kind {
				t.Errorf("error kind = %v, want %v", err.Kind, tt.kind)
			}
		})
	}
}

func TestTokenize_UnescapesIdentically(t *testing.T) {
	toks, err := Tokenize(`"a\"b\\c\nd" 'a\'b\\c\nd'`)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	want := "a\"b\\c\nd"
	if toks[0].Literal != want {
		t.Errorf("string literal = %q, want %q", toks[0].Literal, want)
	}
	wantText := "a'b\\c\nd"
	if toks[1].Literal != wantText {
		t.Errorf("text literal = %q, want %q", toks[1].Literal, wantText)
	}
}

func TestTokenize_BOMStripped(t *testing.T) {
	toks, err := Tokenize("\xEF\xBB\xBF@Join {}")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if toks[0].Kind != token.AT || toks[0].Start.Column != 1 {
		t.Errorf("first token = %+v, want AT at column 1", toks[0])
	}
}
