package parser

import "testing"

func lex(input string) []Token {
	lexer := NewLexer([]byte(input), "test.d")
	var tokens []Token
	for {
		tok := lexer.NextToken()
		switch tok.Kind {
		case TokenWhitespace, TokenComment, TokenLineComment, TokenNestingComment:
			continue
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"module", []TokenKind{TokenModule, TokenEOF}},
		{"foreach_reverse", []TokenKind{TokenForeachReverse, TokenEOF}},
		{"__gshared", []TokenKind{TokenGShared, TokenEOF}},
		{"__traits", []TokenKind{TokenTraits, TokenEOF}},
		{"x", []TokenKind{TokenIdent, TokenEOF}},
		{"_x1", []TokenKind{TokenIdent, TokenEOF}},
		{"bodyguard", []TokenKind{TokenIdent, TokenEOF}},
		{"123", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"123_456", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"0x1F", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"0b1010", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"42UL", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"3.14", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{"1e10", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{"1.5e-3", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{"2f", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{"0x1.8p3", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{"1..2", []TokenKind{TokenIntLiteral, TokenDotDot, TokenIntLiteral, TokenEOF}},
		{"1.max", []TokenKind{TokenIntLiteral, TokenDot, TokenIdent, TokenEOF}},
		{`"hello"`, []TokenKind{TokenStringLiteral, TokenEOF}},
		{`"hi"c`, []TokenKind{TokenStringLiteral, TokenEOF}},
		{`r"raw\no"`, []TokenKind{TokenStringLiteral, TokenEOF}},
		{"`back\\tick`", []TokenKind{TokenStringLiteral, TokenEOF}},
		{"'a'", []TokenKind{TokenCharLiteral, TokenEOF}},
		{`'\n'`, []TokenKind{TokenCharLiteral, TokenEOF}},
		{"// line\nx", []TokenKind{TokenIdent, TokenEOF}},
		{"/* block */ x", []TokenKind{TokenIdent, TokenEOF}},
		{"/+ nest /+ inner +/ +/ x", []TokenKind{TokenIdent, TokenEOF}},
		{"+ - * / %", []TokenKind{TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent, TokenEOF}},
		{"== != < <= > >=", []TokenKind{TokenEQ, TokenNE, TokenLT, TokenLE, TokenGT, TokenGE, TokenEOF}},
		{"&& || !", []TokenKind{TokenAndAnd, TokenOrOr, TokenNot, TokenEOF}},
		{"<< >> >>>", []TokenKind{TokenShl, TokenShr, TokenUShr, TokenEOF}},
		{"^^ ^^=", []TokenKind{TokenPow, TokenPowAssign, TokenEOF}},
		{">>>=", []TokenKind{TokenUShrAssign, TokenEOF}},
		{"~ ~=", []TokenKind{TokenTilde, TokenTildeAssign, TokenEOF}},
		{"++ --", []TokenKind{TokenIncrement, TokenDecrement, TokenEOF}},
		{"=>", []TokenKind{TokenFatArrow, TokenEOF}},
		{". .. ...", []TokenKind{TokenDot, TokenDotDot, TokenEllipsis, TokenEOF}},
		{"@ $ ?", []TokenKind{TokenAt, TokenDollar, TokenQuestion, TokenEOF}},
		{"a!b", []TokenKind{TokenIdent, TokenNot, TokenIdent, TokenEOF}},
		{"#", []TokenKind{TokenError, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := lex(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d tokens, want %d", len(got), len(tt.expected))
			}
			for i := range got {
				if got[i].Kind != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i].Kind, tt.expected[i])
				}
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	tokens := lex("int x;\nint y;")
	// int x ; int y ; EOF
	if len(tokens) != 7 {
		t.Fatalf("got %d tokens, want 7", len(tokens))
	}
	x := tokens[1]
	if x.Span.Start.Line != 1 || x.Span.Start.Column != 5 {
		t.Errorf("x position: got %d:%d, want 1:5", x.Span.Start.Line, x.Span.Start.Column)
	}
	y := tokens[4]
	if y.Span.Start.Line != 2 || y.Span.Start.Column != 5 {
		t.Errorf("y position: got %d:%d, want 2:5", y.Span.Start.Line, y.Span.Start.Column)
	}
	if y.Span.Start.Offset != 11 {
		t.Errorf("y offset: got %d, want 11", y.Span.Start.Offset)
	}
}

func TestIsDocComment(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"/// doc", true},
		{"// plain", false},
		{"/** doc */", true},
		{"/* plain */", false},
		{"/++ doc +/", true},
		{"/+ plain +/", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.d")
			tok := lexer.NextToken()
			if got := IsDocComment(tok); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenizeAttachesDocComments(t *testing.T) {
	tokens := Tokenize([]byte("/// The answer.\nint x;"), "test.d")
	if len(tokens) == 0 || tokens[0].Kind != TokenInt {
		t.Fatal("unexpected token stream")
	}
	if tokens[0].Comment == "" {
		t.Error("doc comment not attached to following token")
	}
	// Plain comments vanish entirely.
	tokens = Tokenize([]byte("// nothing\nint x;"), "test.d")
	if tokens[0].Comment != "" {
		t.Errorf("plain comment attached: %q", tokens[0].Comment)
	}
}

func TestTokenizeAlwaysEndsWithEOF(t *testing.T) {
	for _, input := range []string{"", "int", "/* unterminated", `"unterminated`} {
		tokens := Tokenize([]byte(input), "test.d")
		if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenEOF {
			t.Errorf("stream for %q does not end with EOF", input)
		}
	}
}
