package parser

import (
	"unicode"
	"unicode/utf8"
)

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) NextToken() Token {
	startPos := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	if ch == '/' && l.peekN(1) == '/' {
		return l.scanLineComment(startPos)
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment(startPos)
	}
	if ch == '/' && l.peekN(1) == '+' {
		return l.scanNestingComment(startPos)
	}

	if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
		return l.scanWhitespace(startPos)
	}

	if ch == 'r' && l.peekN(1) == '"' {
		return l.scanWysiwygString(startPos, '"', true)
	}
	if ch == '`' {
		return l.scanWysiwygString(startPos, '`', false)
	}

	if isIdentStart(ch) {
		return l.scanIdentOrKeyword(startPos)
	}

	if isDigit(ch) {
		return l.scanNumber(startPos)
	}
	if ch == '.' && isDigit(l.peekN(1)) {
		return l.scanNumber(startPos)
	}

	if ch == '\'' {
		return l.scanCharLiteral(startPos)
	}
	if ch == '"' {
		return l.scanString(startPos)
	}

	return l.scanOperator(startPos)
}

func (l *Lexer) span(start Position) Span {
	return Span{Start: start, End: l.Position()}
}

func (l *Lexer) literal(start Position) string {
	return string(l.input[start.Offset:l.pos])
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
		} else {
			break
		}
	}
	return Token{Kind: TokenWhitespace, Span: l.span(start)}
}

func (l *Lexer) scanLineComment(start Position) Token {
	for l.pos < len(l.input) && l.peek() != '\n' {
		l.advance()
	}
	return Token{Kind: TokenLineComment, Span: l.span(start), Literal: l.literal(start)}
}

func (l *Lexer) scanBlockComment(start Position) Token {
	l.advanceN(2)
	for l.pos < len(l.input) {
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			break
		}
		l.advance()
	}
	return Token{Kind: TokenComment, Span: l.span(start), Literal: l.literal(start)}
}

func (l *Lexer) scanNestingComment(start Position) Token {
	l.advanceN(2)
	depth := 1
	for l.pos < len(l.input) && depth > 0 {
		if l.peek() == '/' && l.peekN(1) == '+' {
			depth++
			l.advanceN(2)
		} else if l.peek() == '+' && l.peekN(1) == '/' {
			depth--
			l.advanceN(2)
		} else {
			l.advance()
		}
	}
	return Token{Kind: TokenNestingComment, Span: l.span(start), Literal: l.literal(start)}
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for l.pos < len(l.input) && isIdentPart(l.peek()) {
		if l.peek() >= utf8.RuneSelf {
			r, size := utf8.DecodeRune(l.input[l.pos:])
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				break
			}
			l.advanceN(size)
			continue
		}
		l.advance()
	}
	lit := l.literal(start)
	kind := LookupKeyword(lit)
	return Token{Kind: kind, Span: l.span(start), Literal: lit}
}

func (l *Lexer) scanNumber(start Position) Token {
	kind := TokenIntLiteral

	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		l.advanceN(2)
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		if l.peek() == '.' && isHexDigit(l.peekN(1)) {
			kind = TokenFloatLiteral
			l.advance()
			for isHexDigit(l.peek()) || l.peek() == '_' {
				l.advance()
			}
		}
		if l.peek() == 'p' || l.peek() == 'P' {
			kind = TokenFloatLiteral
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			for isDigit(l.peek()) {
				l.advance()
			}
		}
		l.scanNumberSuffix(&kind)
		return Token{Kind: kind, Span: l.span(start), Literal: l.literal(start)}
	}

	if l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		l.advanceN(2)
		for l.peek() == '0' || l.peek() == '1' || l.peek() == '_' {
			l.advance()
		}
		l.scanNumberSuffix(&kind)
		return Token{Kind: kind, Span: l.span(start), Literal: l.literal(start)}
	}

	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}

	// A trailing ".." is a range operator, not a fractional part.
	if l.peek() == '.' && l.peekN(1) != '.' && !isIdentStart(l.peekN(1)) {
		kind = TokenFloatLiteral
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		next := l.peekN(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekN(2))) {
			kind = TokenFloatLiteral
			l.advance()
			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}
			for isDigit(l.peek()) || l.peek() == '_' {
				l.advance()
			}
		}
	}

	l.scanNumberSuffix(&kind)
	return Token{Kind: kind, Span: l.span(start), Literal: l.literal(start)}
}

func (l *Lexer) scanNumberSuffix(kind *TokenKind) {
	for {
		switch l.peek() {
		case 'L', 'u', 'U':
			l.advance()
		case 'f', 'F':
			*kind = TokenFloatLiteral
			l.advance()
		case 'i':
			*kind = TokenFloatLiteral
			l.advance()
			return
		default:
			return
		}
	}
}

func (l *Lexer) scanCharLiteral(start Position) Token {
	l.advance()
	for l.pos < len(l.input) && l.peek() != '\'' {
		if l.peek() == '\\' {
			l.advance()
		}
		if l.peek() == '\n' {
			break
		}
		l.advance()
	}
	if l.peek() == '\'' {
		l.advance()
	}
	return Token{Kind: TokenCharLiteral, Span: l.span(start), Literal: l.literal(start)}
}

func (l *Lexer) scanString(start Position) Token {
	l.advance()
	for l.pos < len(l.input) && l.peek() != '"' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == '"' {
		l.advance()
	}
	l.scanStringSuffix()
	return Token{Kind: TokenStringLiteral, Span: l.span(start), Literal: l.literal(start)}
}

func (l *Lexer) scanWysiwygString(start Position, quote byte, skipPrefix bool) Token {
	if skipPrefix {
		l.advance()
	}
	l.advance()
	for l.pos < len(l.input) && l.peek() != quote {
		l.advance()
	}
	if l.peek() == quote {
		l.advance()
	}
	l.scanStringSuffix()
	return Token{Kind: TokenStringLiteral, Span: l.span(start), Literal: l.literal(start)}
}

func (l *Lexer) scanStringSuffix() {
	switch l.peek() {
	case 'c', 'w', 'd':
		// Only a suffix when not followed by more identifier characters.
		if !isIdentPart(l.peekN(1)) {
			l.advance()
		}
	}
}

func (l *Lexer) scanOperator(start Position) Token {
	type opEntry struct {
		text string
		kind TokenKind
	}
	// Longest match first.
	ops := []opEntry{
		{">>>=", TokenUShrAssign},
		{"^^=", TokenPowAssign},
		{"<<=", TokenShlAssign},
		{">>=", TokenShrAssign},
		{">>>", TokenUShr},
		{"...", TokenEllipsis},
		{"^^", TokenPow},
		{"<<", TokenShl},
		{">>", TokenShr},
		{"<=", TokenLE},
		{">=", TokenGE},
		{"==", TokenEQ},
		{"!=", TokenNE},
		{"&&", TokenAndAnd},
		{"||", TokenOrOr},
		{"++", TokenIncrement},
		{"--", TokenDecrement},
		{"+=", TokenPlusAssign},
		{"-=", TokenMinusAssign},
		{"*=", TokenStarAssign},
		{"/=", TokenSlashAssign},
		{"%=", TokenPercentAssign},
		{"&=", TokenAmpAssign},
		{"|=", TokenPipeAssign},
		{"^=", TokenCaretAssign},
		{"~=", TokenTildeAssign},
		{"=>", TokenFatArrow},
		{"..", TokenDotDot},
		{"(", TokenLParen},
		{")", TokenRParen},
		{"{", TokenLBrace},
		{"}", TokenRBrace},
		{"[", TokenLBracket},
		{"]", TokenRBracket},
		{";", TokenSemicolon},
		{":", TokenColon},
		{",", TokenComma},
		{".", TokenDot},
		{"?", TokenQuestion},
		{"@", TokenAt},
		{"$", TokenDollar},
		{"=", TokenAssign},
		{"<", TokenLT},
		{">", TokenGT},
		{"!", TokenNot},
		{"&", TokenAmp},
		{"|", TokenPipe},
		{"^", TokenCaret},
		{"~", TokenTilde},
		{"+", TokenPlus},
		{"-", TokenMinus},
		{"*", TokenStar},
		{"/", TokenSlash},
		{"%", TokenPercent},
	}

	rest := l.input[l.pos:]
	for _, op := range ops {
		if len(rest) >= len(op.text) && string(rest[:len(op.text)]) == op.text {
			l.advanceN(len(op.text))
			return Token{Kind: op.kind, Span: l.span(start), Literal: op.text}
		}
	}

	l.advance()
	return Token{Kind: TokenError, Span: l.span(start), Literal: l.literal(start)}
}

// IsDocComment reports whether a comment token carries documentation:
// ///, /** ... */ or /++ ... +/ forms, excluding the empty /**/ and /++/.
func IsDocComment(tok Token) bool {
	lit := tok.Literal
	switch tok.Kind {
	case TokenLineComment:
		return len(lit) >= 3 && lit[2] == '/'
	case TokenComment:
		return len(lit) >= 5 && lit[2] == '*'
	case TokenNestingComment:
		return len(lit) >= 5 && lit[2] == '+'
	}
	return false
}

func isIdentStart(ch byte) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch >= utf8.RuneSelf
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}
