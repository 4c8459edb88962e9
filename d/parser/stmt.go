package parser

// parseStatement dispatches on the leading token to one of the statement
// rules. Statements that can also begin declarations are only reached
// when isDeclaration said no.
func (p *Parser) parseStatement() *Node {
	switch p.peek().Kind {
	case TokenLBrace:
		return p.parseBlockStatement()
	case TokenSemicolon:
		node := p.startNode(KindEmptyStatement)
		p.advance()
		return p.finishNode(node)
	case TokenIf:
		return p.parseIfStatement()
	case TokenWhile:
		return p.parseWhileStatement()
	case TokenDo:
		return p.parseDoStatement()
	case TokenFor:
		return p.parseForStatement()
	case TokenForeach, TokenForeachReverse:
		return p.parseForeachStatement()
	case TokenSwitch:
		return p.parseSwitchStatement(false)
	case TokenFinal:
		if p.peekN(1).Kind == TokenSwitch {
			return p.parseSwitchStatement(true)
		}
	case TokenCase:
		return p.parseCaseStatement()
	case TokenDefault:
		return p.parseDefaultStatement()
	case TokenReturn:
		return p.parseReturnStatement()
	case TokenBreak:
		return p.parseBreakStatement()
	case TokenContinue:
		return p.parseContinueStatement()
	case TokenGoto:
		return p.parseGotoStatement()
	case TokenWith:
		return p.parseWithStatement()
	case TokenSynchronized:
		return p.parseSynchronizedStatement()
	case TokenTry:
		return p.parseTryStatement()
	case TokenThrow:
		return p.parseThrowStatement()
	case TokenScope:
		if p.peekN(1).Kind == TokenLParen {
			return p.parseScopeGuardStatement()
		}
	case TokenAsm:
		return p.parseAsmStatement()
	case TokenVersion, TokenDebug:
		return p.parseConditionalStatement()
	case TokenStatic:
		switch p.peekN(1).Kind {
		case TokenIf:
			return p.parseConditionalStatement()
		case TokenForeach, TokenForeachReverse:
			return p.parseStaticForeachStatement()
		case TokenAssert:
			return p.parseStaticAssertStatement()
		}
	case TokenMixin:
		if p.peekN(1).Kind == TokenLParen {
			return p.parseMixinStatement()
		}
	case TokenIdent:
		if p.peekN(1).Kind == TokenColon {
			return p.parseLabeledStatement()
		}
	}

	return p.parseExpressionStatement()
}

func (p *Parser) parseExpressionStatement() *Node {
	node := p.startNode(KindExpressionStatement)
	expr := p.parseExpression()
	if expr == nil {
		p.error("expected statement, found " + p.peek().Kind.String())
		return p.abandonNode(node)
	}
	node.AddChild(expr)
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

// parseBlockStatement parses { DeclarationOrStatement* }. A missing
// close brace produces one error and a partial node holding whatever was
// parsed before the end of the stream.
func (p *Parser) parseBlockStatement() *Node {
	node := p.startNode(KindBlockStatement)
	if p.expect(TokenLBrace) == nil {
		return p.abandonNode(node)
	}

	for !p.check(TokenRBrace) && p.moreTokens() {
		progress := p.mustProgress()
		node.AddChild(p.parseDeclarationOrStatement())
		if !progress() {
			continue
		}
	}

	p.expect(TokenRBrace)
	return p.finishNode(node)
}

// parseDeclarationOrStatement decides declaration vs. statement freshly
// for every block element. Ambiguities resolve in favor of declaration.
func (p *Parser) parseDeclarationOrStatement() *Node {
	node := p.startNode(KindDeclarationOrStatement)
	if p.isDeclaration() {
		node.AddChild(p.parseDeclaration())
	} else {
		node.AddChild(p.parseStatement())
	}
	if len(node.Children) == 0 {
		return p.abandonNode(node)
	}
	return p.finishNode(node)
}

func (p *Parser) parseIfStatement() *Node {
	node := p.startNode(KindIfStatement)
	p.expect(TokenIf)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}
	node.AddChild(p.parseIfCondition())
	p.expect(TokenRParen)

	then := p.parseDeclarationOrStatement()
	node.AddChild(then)

	if p.check(TokenElse) {
		p.advance()
		node.AddChild(p.parseDeclarationOrStatement())
	}

	return p.finishNode(node)
}

// parseIfCondition handles the declaration forms if (auto x = e) and
// if (T x = e) alongside the plain expression condition.
func (p *Parser) parseIfCondition() *Node {
	node := p.startNode(KindIfCondition)

	if p.check(TokenAuto) && p.peekN(1).Kind == TokenIdent && p.peekN(2).Kind == TokenAssign {
		p.advance()
		tok := p.advance()
		node.Token = &tok
		p.advance()
		node.AddChild(p.parseExpression())
		return p.finishNode(node)
	}

	b := p.setBookmark()
	t := p.parseType()
	declForm := t != nil && !p.errorsSince(b) && p.check(TokenIdent) && p.peekN(1).Kind == TokenAssign
	p.goToBookmark(b)

	if declForm {
		node.AddChild(p.parseType())
		tok := p.advance()
		node.Token = &tok
		p.advance()
		node.AddChild(p.parseExpression())
		return p.finishNode(node)
	}

	expr := p.parseExpression()
	if expr == nil {
		return p.abandonNode(node)
	}
	node.AddChild(expr)
	return p.finishNode(node)
}

func (p *Parser) parseWhileStatement() *Node {
	node := p.startNode(KindWhileStatement)
	p.expect(TokenWhile)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}
	node.AddChild(p.parseIfCondition())
	p.expect(TokenRParen)
	node.AddChild(p.parseDeclarationOrStatement())
	return p.finishNode(node)
}

func (p *Parser) parseDoStatement() *Node {
	node := p.startNode(KindDoStatement)
	p.expect(TokenDo)
	body := p.parseDeclarationOrStatement()
	if body == nil {
		return p.abandonNode(node)
	}
	node.AddChild(body)
	p.expect(TokenWhile)
	if p.expect(TokenLParen) == nil {
		return p.finishNode(node)
	}
	node.AddChild(p.parseExpression())
	p.expect(TokenRParen)
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseForStatement() *Node {
	node := p.startNode(KindForStatement)
	p.expect(TokenFor)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}

	if p.check(TokenSemicolon) {
		p.advance()
	} else {
		node.AddChild(p.parseDeclarationOrStatement())
	}

	if p.check(TokenSemicolon) {
		p.advance()
	} else {
		node.AddChild(p.parseExpressionStatement())
	}

	if !p.check(TokenRParen) {
		node.AddChild(p.parseExpression())
	}
	p.expect(TokenRParen)

	node.AddChild(p.parseDeclarationOrStatement())
	return p.finishNode(node)
}

func (p *Parser) parseForeachStatement() *Node {
	node := p.startNode(KindForeachStatement)
	tok := p.advance()
	node.Token = &tok
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}

	for {
		ft := p.parseForeachType()
		if ft == nil {
			return p.abandonNode(node)
		}
		node.AddChild(ft)
		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}

	if p.expect(TokenSemicolon) == nil {
		return p.finishNode(node)
	}

	low := p.parseExpression()
	if low == nil {
		return p.finishNode(node)
	}
	node.AddChild(low)
	if p.check(TokenDotDot) {
		p.advance()
		node.AddChild(p.parseExpression())
	}
	p.expect(TokenRParen)

	node.AddChild(p.parseDeclarationOrStatement())
	return p.finishNode(node)
}

// parseForeachType parses one loop variable: attributes, an optional
// type, and the name.
func (p *Parser) parseForeachType() *Node {
	node := p.startNode(KindForeachType)

	for p.match(TokenRef, TokenScope, TokenEnum) ||
		(p.peek().Kind.IsTypeConstructor() && p.peekN(1).Kind != TokenLParen && p.peekN(1).Kind == TokenIdent && (p.peekN(2).Kind == TokenSemicolon || p.peekN(2).Kind == TokenComma)) {
		tok := p.advance()
		node.AddChild(p.leaf(KindAttribute, tok))
	}

	if p.check(TokenIdent) && (p.peekN(1).Kind == TokenSemicolon || p.peekN(1).Kind == TokenComma) {
		tok := p.advance()
		node.Token = &tok
		return p.finishNode(node)
	}

	t := p.parseType()
	if t == nil {
		return p.abandonNode(node)
	}
	node.AddChild(t)
	tok := p.expectIdentifier()
	if tok == nil {
		return p.finishNode(node)
	}
	node.Token = tok
	return p.finishNode(node)
}

func (p *Parser) parseSwitchStatement(isFinal bool) *Node {
	kind := KindSwitchStatement
	if isFinal {
		kind = KindFinalSwitchStatement
	}
	node := p.startNode(kind)
	if isFinal {
		p.advance()
	}
	p.expect(TokenSwitch)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}
	node.AddChild(p.parseExpression())
	p.expect(TokenRParen)
	node.AddChild(p.parseDeclarationOrStatement())
	return p.finishNode(node)
}

// parseCaseStatement parses case a, b: and the range form case a: .. case b:,
// each owning the statements up to the next label or close brace.
func (p *Parser) parseCaseStatement() *Node {
	node := p.startNode(KindCaseStatement)
	p.expect(TokenCase)

	first := p.parseAssignExpression()
	if first == nil {
		return p.abandonNode(node)
	}
	node.AddChild(first)

	for p.check(TokenComma) {
		p.advance()
		if p.check(TokenColon) {
			break
		}
		node.AddChild(p.parseAssignExpression())
	}

	if p.expect(TokenColon) == nil {
		return p.finishNode(node)
	}

	if p.check(TokenDotDot) {
		node.Kind = KindCaseRangeStatement
		p.advance()
		p.expect(TokenCase)
		node.AddChild(p.parseAssignExpression())
		p.expect(TokenColon)
	}

	p.parseCaseBody(node)
	return p.finishNode(node)
}

func (p *Parser) parseDefaultStatement() *Node {
	node := p.startNode(KindDefaultStatement)
	p.expect(TokenDefault)
	if p.expect(TokenColon) == nil {
		return p.finishNode(node)
	}
	p.parseCaseBody(node)
	return p.finishNode(node)
}

func (p *Parser) parseCaseBody(node *Node) {
	for p.moreTokens() && !p.match(TokenCase, TokenDefault, TokenRBrace) {
		progress := p.mustProgress()
		node.AddChild(p.parseDeclarationOrStatement())
		if !progress() {
			continue
		}
	}
}

func (p *Parser) parseReturnStatement() *Node {
	node := p.startNode(KindReturnStatement)
	p.expect(TokenReturn)
	if !p.check(TokenSemicolon) {
		expr := p.parseExpression()
		if expr == nil {
			return p.finishNode(node)
		}
		node.AddChild(expr)
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseBreakStatement() *Node {
	node := p.startNode(KindBreakStatement)
	p.expect(TokenBreak)
	if p.check(TokenIdent) {
		tok := p.advance()
		node.Token = &tok
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseContinueStatement() *Node {
	node := p.startNode(KindContinueStatement)
	p.expect(TokenContinue)
	if p.check(TokenIdent) {
		tok := p.advance()
		node.Token = &tok
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

// parseGotoStatement parses goto label;, goto case expr; and goto default;.
func (p *Parser) parseGotoStatement() *Node {
	node := p.startNode(KindGotoStatement)
	p.expect(TokenGoto)
	switch p.peek().Kind {
	case TokenIdent:
		tok := p.advance()
		node.Token = &tok
	case TokenDefault:
		tok := p.advance()
		node.Token = &tok
	case TokenCase:
		tok := p.advance()
		node.Token = &tok
		if !p.check(TokenSemicolon) {
			node.AddChild(p.parseExpression())
		}
	default:
		p.error("expected label, case or default after goto")
		return p.finishNode(node)
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseWithStatement() *Node {
	node := p.startNode(KindWithStatement)
	p.expect(TokenWith)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}
	if p.isType() {
		node.AddChild(p.parseType())
	} else {
		node.AddChild(p.parseExpression())
	}
	p.expect(TokenRParen)
	node.AddChild(p.parseDeclarationOrStatement())
	return p.finishNode(node)
}

func (p *Parser) parseSynchronizedStatement() *Node {
	node := p.startNode(KindSynchronizedStatement)
	p.expect(TokenSynchronized)
	if p.check(TokenLParen) {
		p.advance()
		node.AddChild(p.parseExpression())
		p.expect(TokenRParen)
	}
	node.AddChild(p.parseDeclarationOrStatement())
	return p.finishNode(node)
}

func (p *Parser) parseTryStatement() *Node {
	node := p.startNode(KindTryStatement)
	p.expect(TokenTry)
	body := p.parseDeclarationOrStatement()
	if body == nil {
		return p.abandonNode(node)
	}
	node.AddChild(body)

	for p.check(TokenCatch) {
		node.AddChild(p.parseCatch())
	}

	if p.check(TokenFinally) {
		fin := p.startNode(KindFinally)
		p.advance()
		fin.AddChild(p.parseDeclarationOrStatement())
		node.AddChild(p.finishNode(fin))
	}

	return p.finishNode(node)
}

func (p *Parser) parseCatch() *Node {
	if p.peekN(1).Kind != TokenLParen {
		node := p.startNode(KindLastCatch)
		p.expect(TokenCatch)
		node.AddChild(p.parseDeclarationOrStatement())
		return p.finishNode(node)
	}

	node := p.startNode(KindCatch)
	p.expect(TokenCatch)
	p.expect(TokenLParen)
	t := p.parseType()
	if t == nil {
		return p.abandonNode(node)
	}
	node.AddChild(t)
	if p.check(TokenIdent) {
		tok := p.advance()
		node.Token = &tok
	}
	p.expect(TokenRParen)
	node.AddChild(p.parseDeclarationOrStatement())
	return p.finishNode(node)
}

func (p *Parser) parseThrowStatement() *Node {
	node := p.startNode(KindThrowStatement)
	p.expect(TokenThrow)
	expr := p.parseExpression()
	if expr == nil {
		return p.finishNode(node)
	}
	node.AddChild(expr)
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseScopeGuardStatement() *Node {
	node := p.startNode(KindScopeGuardStatement)
	p.expect(TokenScope)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}
	tok := p.expectIdentifier()
	if tok == nil {
		return p.abandonNode(node)
	}
	switch tok.Literal {
	case "exit", "success", "failure":
	default:
		p.errorNoResync("expected exit, success or failure, found " + tok.Literal)
	}
	node.Token = tok
	p.expect(TokenRParen)
	node.AddChild(p.parseDeclarationOrStatement())
	return p.finishNode(node)
}

// parseAsmStatement captures an asm block as a run of instruction nodes,
// one per semicolon-terminated run of verbatim tokens. The instructions
// are not interpreted further.
func (p *Parser) parseAsmStatement() *Node {
	node := p.startNode(KindAsmStatement)
	p.expect(TokenAsm)
	for {
		attr := p.parseMemberFunctionAttribute()
		if attr == nil {
			break
		}
		node.AddChild(attr)
	}
	if p.expect(TokenLBrace) == nil {
		return p.abandonNode(node)
	}

	for p.moreTokens() && !p.check(TokenRBrace) {
		inst := p.startNode(KindAsmInstruction)
		depth := 0
		for p.moreTokens() {
			kind := p.peek().Kind
			if depth == 0 && (kind == TokenSemicolon || kind == TokenRBrace) {
				break
			}
			switch kind {
			case TokenLBrace:
				depth++
			case TokenRBrace:
				depth--
			}
			tok := p.advance()
			inst.AddChild(p.leaf(KindIdentifier, tok))
		}
		if p.check(TokenSemicolon) {
			p.advance()
		}
		node.AddChild(p.finishNode(inst))
	}

	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseLabeledStatement() *Node {
	node := p.startNode(KindLabeledStatement)
	tok := p.advance()
	node.Token = &tok
	p.expect(TokenColon)
	if !p.match(TokenRBrace, TokenCase, TokenDefault) && p.moreTokens() {
		node.AddChild(p.parseDeclarationOrStatement())
	}
	return p.finishNode(node)
}

func (p *Parser) parseMixinStatement() *Node {
	node := p.startNode(KindMixinDeclaration)
	expr := p.parseMixinExpression()
	if expr == nil {
		return p.abandonNode(node)
	}
	node.AddChild(expr)
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

// parseConditionalStatement parses version(...), debug(...) and
// static if(...) when they appear in statement position.
func (p *Parser) parseConditionalStatement() *Node {
	node := p.startNode(KindConditionalStatement)
	cond := p.parseCompileCondition()
	if cond == nil {
		return p.abandonNode(node)
	}
	node.AddChild(cond)

	node.AddChild(p.parseDeclarationOrStatement())

	if p.check(TokenElse) {
		p.advance()
		node.AddChild(p.parseDeclarationOrStatement())
	}

	return p.finishNode(node)
}

// parseCompileCondition parses the condition head shared by conditional
// declarations and statements.
func (p *Parser) parseCompileCondition() *Node {
	switch p.peek().Kind {
	case TokenVersion:
		node := p.startNode(KindVersionCondition)
		p.advance()
		if p.expect(TokenLParen) == nil {
			return p.abandonNode(node)
		}
		switch p.peek().Kind {
		case TokenIdent, TokenIntLiteral, TokenUnittest, TokenAssert:
			tok := p.advance()
			node.Token = &tok
		default:
			p.error("expected version condition, found " + p.peek().Kind.String())
			return p.finishNode(node)
		}
		p.expect(TokenRParen)
		return p.finishNode(node)
	case TokenDebug:
		node := p.startNode(KindDebugCondition)
		p.advance()
		if p.check(TokenLParen) {
			p.advance()
			switch p.peek().Kind {
			case TokenIdent, TokenIntLiteral:
				tok := p.advance()
				node.Token = &tok
			default:
				p.error("expected debug condition, found " + p.peek().Kind.String())
				return p.finishNode(node)
			}
			p.expect(TokenRParen)
		}
		return p.finishNode(node)
	case TokenStatic:
		node := p.startNode(KindStaticIfCondition)
		p.advance()
		p.expect(TokenIf)
		if p.expect(TokenLParen) == nil {
			return p.abandonNode(node)
		}
		expr := p.parseAssignExpression()
		if expr == nil {
			return p.abandonNode(node)
		}
		node.AddChild(expr)
		p.expect(TokenRParen)
		return p.finishNode(node)
	}
	p.error("expected version, debug or static if")
	return nil
}

func (p *Parser) parseStaticForeachStatement() *Node {
	node := p.startNode(KindStaticForeachStatement)
	p.expect(TokenStatic)
	fe := p.parseForeachStatement()
	if fe == nil {
		return p.abandonNode(node)
	}
	node.AddChild(fe)
	return p.finishNode(node)
}

func (p *Parser) parseStaticAssertStatement() *Node {
	node := p.startNode(KindStaticAssertStatement)
	p.expect(TokenStatic)
	expr := p.parseAssertExpression()
	if expr == nil {
		return p.abandonNode(node)
	}
	node.AddChild(expr)
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}
