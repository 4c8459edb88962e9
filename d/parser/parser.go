package parser

import "os"

// Option configures a Parser before it runs.
type Option func(*Parser)

// WithFile sets the file name used in positions and diagnostics.
func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithAllocator routes all node allocation through a.
func WithAllocator(a Allocator) Option {
	return func(p *Parser) {
		p.alloc = a
	}
}

// WithDiagnostics delivers diagnostics to sink instead of the default
// textual writer. Diagnostics are streamed in source order as they are
// found.
func WithDiagnostics(sink DiagnosticSink) Option {
	return func(p *Parser) {
		p.sink = sink
	}
}

// Parser converts a token stream into a syntax tree. One Parser performs
// one parse; it holds no state that survives the top-level call and must
// not be shared across goroutines.
type Parser struct {
	file   string
	tokens []Token
	pos    int
	alloc  Allocator
	sink   DiagnosticSink

	// Diagnostic state. suppressionDepth counts open bookmarks; while it
	// is positive, errors go to suppressedCount instead of the sink.
	suppressionDepth int
	errorCount       int
	warningCount     int
	suppressedCount  int

	// The most recently seen doc comment, waiting for the next
	// declaration. Cleared as soon as one consumes it.
	pendingComment string
}

// NewParser returns a parser over an already-lexed token stream. The
// stream is borrowed, never mutated, and must end with a TokenEOF entry.
func NewParser(tokens []Token, opts ...Option) *Parser {
	p := &Parser{
		tokens: tokens,
		alloc:  heapAllocator{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.sink == nil {
		p.sink = writerSink(os.Stderr)
	}
	return p
}

// ParseTokens parses a token stream into a Module node. A Module is
// always returned, even for malformed input; check Errors afterwards to
// know whether the tree is trustworthy.
func ParseTokens(tokens []Token, opts ...Option) (*Node, *Parser) {
	p := NewParser(tokens, opts...)
	return p.parseModule(), p
}

// ParseModule lexes src and parses it into a Module node.
func ParseModule(src []byte, opts ...Option) (*Node, *Parser) {
	p := NewParser(nil, opts...)
	p.tokens = Tokenize(src, p.file)
	return p.parseModule(), p
}

// ParseExpressionSource lexes src and parses a single expression.
func ParseExpressionSource(src []byte, opts ...Option) (*Node, *Parser) {
	p := NewParser(nil, opts...)
	p.tokens = Tokenize(src, p.file)
	return p.parseExpression(), p
}

// ParseStatementSource lexes src and parses a single statement.
func ParseStatementSource(src []byte, opts ...Option) (*Node, *Parser) {
	p := NewParser(nil, opts...)
	p.tokens = Tokenize(src, p.file)
	return p.parseStatement(), p
}

// Tokenize runs the lexer over src, drops whitespace and comments, and
// attaches doc comment text to the following token. The result always
// ends with a TokenEOF entry, so "index past length" is a well-defined
// check for the parser.
func Tokenize(src []byte, file string) []Token {
	lexer := NewLexer(src, file)
	var tokens []Token
	pendingDoc := ""
	for {
		tok := lexer.NextToken()
		switch tok.Kind {
		case TokenWhitespace:
			continue
		case TokenComment, TokenLineComment, TokenNestingComment:
			if IsDocComment(tok) {
				pendingDoc = tok.Literal
			}
			continue
		}
		if pendingDoc != "" {
			tok.Comment = pendingDoc
			pendingDoc = ""
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens
		}
	}
}

// Errors returns the number of errors reported outside speculative
// regions.
func (p *Parser) Errors() int { return p.errorCount }

// Warnings returns the number of warnings reported.
func (p *Parser) Warnings() int { return p.warningCount }

func (p *Parser) moreTokens() bool {
	return p.pos < len(p.tokens) && p.tokens[p.pos].Kind != TokenEOF
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// startsWith reports whether the stream at the cursor begins with exactly
// the given kinds, without consuming anything.
func (p *Parser) startsWith(kinds ...TokenKind) bool {
	for i, kind := range kinds {
		if p.peekN(i).Kind != kind {
			return false
		}
	}
	return true
}

// expect asserts that the current token has the given kind and consumes
// it. On mismatch it reports an error, resynchronizes, and returns nil.
func (p *Parser) expect(kind TokenKind) *Token {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()
		return &tok
	}
	p.error("expected " + kind.String() + ", found " + tok.Kind.String())
	return nil
}

func (p *Parser) expectIdentifier() *Token {
	return p.expect(TokenIdent)
}

// mustProgress returns a function that checks if the parser has advanced.
// Call it at the start of a loop iteration, then call the returned function
// at the end to break if no progress was made.
func (p *Parser) mustProgress() func() bool {
	saved := p.pos
	return func() bool {
		if p.pos == saved {
			if p.moreTokens() {
				p.advance()
			}
			return false
		}
		return true
	}
}

// peekPastParens returns the index of the token immediately after the
// balanced paren group starting at the cursor, or -1 when the stream ends
// first.
func (p *Parser) peekPastParens() int {
	return p.peekPast(TokenLParen, TokenRParen)
}

func (p *Parser) peekPastBrackets() int {
	return p.peekPast(TokenLBracket, TokenRBracket)
}

func (p *Parser) peekPastBraces() int {
	return p.peekPast(TokenLBrace, TokenRBrace)
}

func (p *Parser) peekPast(open, close TokenKind) int {
	if p.peek().Kind != open {
		return -1
	}
	i := p.pos
	depth := 0
	for i < len(p.tokens) && p.tokens[i].Kind != TokenEOF {
		switch p.tokens[i].Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
	return -1
}

// Bookmark is a saved cursor position for speculative parsing. Every
// setBookmark call must be resolved by exactly one goToBookmark or
// abandonBookmark call; diagnostics raised in between are suppressed and
// discarded once the outermost bookmark resolves.
type Bookmark struct {
	pos        int
	suppressed int
}

func (p *Parser) setBookmark() Bookmark {
	p.suppressionDepth++
	return Bookmark{pos: p.pos, suppressed: p.suppressedCount}
}

// goToBookmark rolls the cursor back and forgets the errors found during
// the speculation, so a failed probe leaves no trace in the error count
// of its caller.
func (p *Parser) goToBookmark(b Bookmark) {
	p.pos = b.pos
	p.suppressedCount = b.suppressed
	p.resolveBookmark()
}

func (p *Parser) abandonBookmark(b Bookmark) {
	p.resolveBookmark()
}

// errorsSince reports whether any diagnostics were suppressed since the
// bookmark was set. Read it before resolving the bookmark.
func (p *Parser) errorsSince(b Bookmark) bool {
	return p.suppressedCount > b.suppressed
}

func (p *Parser) resolveBookmark() {
	if p.suppressionDepth <= 0 {
		panic("parser: unbalanced bookmark")
	}
	p.suppressionDepth--
	if p.suppressionDepth == 0 {
		p.suppressedCount = 0
	}
}
