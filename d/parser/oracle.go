package parser

// This file holds the lookahead predicates that decide between grammar
// alternatives the next token alone cannot separate. The cheap ones
// inspect a fixed number of tokens; the expensive ones run a bookmarked
// trial parse and roll back, so they never move the cursor and never
// emit diagnostics.

// isDeclaration decides whether the cursor starts a declaration rather
// than a statement. Ties break toward declaration: T x; always wins over
// an expression reading.
func (p *Parser) isDeclaration() bool {
	if !p.moreTokens() {
		return false
	}

	kind := p.peek().Kind
	switch kind {
	case TokenFinal:
		// final switch is a statement, every other final is a
		// declaration attribute.
		return p.peekN(1).Kind != TokenSwitch
	case TokenDebug, TokenVersion:
		// version = v; is a specification; version (v) dispatches as a
		// conditional statement so both branches stay statements.
		return p.peekN(1).Kind == TokenAssign
	case TokenSynchronized, TokenScope:
		// synchronized (expr) and scope (exit) are statements.
		return p.peekN(1).Kind != TokenLParen
	case TokenStatic:
		switch p.peekN(1).Kind {
		case TokenIf, TokenForeach, TokenForeachReverse:
			return false
		}
		return true
	case TokenAbstract, TokenAlias, TokenAlign, TokenAuto, TokenClass,
		TokenDeprecated, TokenEnum, TokenExport, TokenExtern,
		TokenGShared, TokenImport, TokenInterface, TokenInvariant,
		TokenNothrow, TokenOverride, TokenPackage, TokenPragma,
		TokenPrivate, TokenProtected, TokenPublic, TokenPure,
		TokenRef, TokenStruct, TokenTemplate, TokenUnion,
		TokenUnittest, TokenAt:
		return true
	case TokenConst, TokenImmutable, TokenInout, TokenShared:
		return true
	case TokenIf, TokenElse, TokenWhile, TokenDo, TokenFor,
		TokenForeach, TokenForeachReverse, TokenSwitch, TokenCase,
		TokenDefault, TokenReturn, TokenBreak, TokenContinue,
		TokenGoto, TokenWith, TokenTry, TokenThrow, TokenAsm,
		TokenDelete, TokenAssert, TokenNew, TokenCast, TokenTypeid,
		TokenThis, TokenSuper, TokenFunction, TokenDelegate,
		TokenLBrace, TokenLParen, TokenLBracket, TokenNot, TokenAmp,
		TokenStar, TokenPlus, TokenMinus, TokenTilde, TokenIncrement,
		TokenDecrement, TokenDollar, TokenIntLiteral, TokenFloatLiteral,
		TokenCharLiteral, TokenStringLiteral, TokenTrue, TokenFalse,
		TokenNull:
		return false
	}

	if kind.IsBasicType() {
		// int.max and int(5) are expressions; everything else a basic
		// type starts is a declaration.
		switch p.peekN(1).Kind {
		case TokenDot, TokenLParen:
			return false
		}
		return true
	}

	// The remaining starters (identifiers, typeof, mixin) need a trial
	// parse: T x; and x = 5; look identical one token at a time.
	b := p.setBookmark()
	node := p.parseDeclaration()
	ok := node != nil && !p.errorsSince(b)
	p.goToBookmark(b)
	return ok
}

// isType reports whether the cursor starts a type in a position where an
// expression would also be grammatical. A trial parse alone is not
// enough: every identifier parses as a type, so the token after the
// parsed type has to be one a type can precede in the surrounding
// context.
func (p *Parser) isType() bool {
	if !p.moreTokens() {
		return false
	}
	b := p.setBookmark()
	t := p.parseType()
	ok := t != nil && !p.errorsSince(b)
	if ok {
		switch p.peek().Kind {
		case TokenComma, TokenRParen, TokenRBracket, TokenRBrace,
			TokenLBrace, TokenSemicolon, TokenAssign, TokenColon,
			TokenDotDot, TokenEOF:
		default:
			ok = false
		}
	}
	p.goToBookmark(b)
	return ok
}

// isExpression runs a trial expression parse without moving the cursor.
func (p *Parser) isExpression() bool {
	if !p.moreTokens() {
		return false
	}
	b := p.setBookmark()
	e := p.parseExpression()
	ok := e != nil && !p.errorsSince(b)
	p.goToBookmark(b)
	return ok
}

// isCastQualifier decides between cast(const) and cast(const(C)) with
// the cursor on the token after the opening paren. Fixed lookahead only:
// a qualifier run is at most two type constructor keywords followed
// directly by the closing paren.
func (p *Parser) isCastQualifier() bool {
	if !p.peek().Kind.IsTypeConstructor() {
		return false
	}
	if p.peekN(1).Kind == TokenRParen {
		return true
	}
	return p.peekN(1).Kind.IsTypeConstructor() && p.peekN(2).Kind == TokenRParen
}

// isAssociativeArrayLiteral decides, with the cursor on the opening
// bracket, between [key : value, ...] and a plain array literal. The
// first element is trial-parsed so that a colon buried in it, as in
// [x ? y : z], cannot masquerade as the key separator.
func (p *Parser) isAssociativeArrayLiteral() bool {
	if !p.check(TokenLBracket) {
		return false
	}
	b := p.setBookmark()
	p.advance()
	e := p.parseAssignExpression()
	ok := e != nil && !p.errorsSince(b) && p.check(TokenColon)
	p.goToBookmark(b)
	return ok
}

// hasMagicDelimiter reports whether the sentinel token appears directly
// inside the balanced group opened by the token at the cursor, before
// the group closes. Nested parens, brackets, and braces hide their
// contents.
func (p *Parser) hasMagicDelimiter(open, sentinel TokenKind) bool {
	if p.peek().Kind != open {
		return false
	}
	depth := 0
	for i := p.pos; i < len(p.tokens) && p.tokens[i].Kind != TokenEOF; i++ {
		switch p.tokens[i].Kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			depth--
			if depth == 0 {
				return false
			}
		case sentinel:
			if depth == 1 {
				return true
			}
		}
	}
	return false
}

// isFunctionLiteral decides whether the cursor starts a lambda or
// literal rather than a parenthesized expression. (x) => x is a lambda;
// (x) + y is not.
func (p *Parser) isFunctionLiteral() bool {
	switch p.peek().Kind {
	case TokenFunction, TokenDelegate, TokenLBrace:
		return true
	case TokenIdent:
		return p.peekN(1).Kind == TokenFatArrow
	case TokenLParen:
	default:
		return false
	}

	idx := p.peekPastParens()
	if idx < 0 {
		return false
	}
	// Skip attributes between the parameter list and the arrow:
	// (x) pure => x.
	for idx < len(p.tokens) {
		switch p.tokens[idx].Kind {
		case TokenPure, TokenNothrow, TokenConst, TokenImmutable,
			TokenInout, TokenShared, TokenScope, TokenReturn:
			idx++
		case TokenAt:
			idx += 2
		case TokenFatArrow, TokenLBrace:
			return true
		default:
			return false
		}
	}
	return false
}

// looksLikeTemplateInstance distinguishes name!arg from the negated
// operators: a !is b and a !in b keep their expression reading.
func (p *Parser) looksLikeTemplateInstance() bool {
	if !p.check(TokenIdent) || p.peekN(1).Kind != TokenNot {
		return false
	}
	switch p.peekN(2).Kind {
	case TokenIs, TokenIn:
		return false
	}
	return true
}
