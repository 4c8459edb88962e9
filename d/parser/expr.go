package parser

// parseExpression parses a full expression including the comma operator.
func (p *Parser) parseExpression() *Node {
	if p.tooManyErrors() {
		return nil
	}
	left := p.parseAssignExpression()
	if left == nil || !p.check(TokenComma) {
		return left
	}
	node := p.alloc.NewNode(KindCommaExpression)
	node.Span.Start = left.Span.Start
	node.AddChild(left)
	for p.check(TokenComma) {
		p.advance()
		next := p.parseAssignExpression()
		if next == nil {
			break
		}
		node.AddChild(next)
	}
	return p.finishNode(node)
}

// parseAssignExpression parses the right-associative assignment level.
func (p *Parser) parseAssignExpression() *Node {
	if p.tooManyErrors() {
		return nil
	}
	if p.isFunctionLiteral() {
		return p.parseFunctionLiteral()
	}

	left := p.parseTernaryExpression()
	if left == nil {
		return nil
	}

	if p.peek().Kind.IsAssignOperator() {
		node := p.alloc.NewNode(KindAssignExpression)
		node.Span.Start = left.Span.Start
		node.AddChild(left)
		tok := p.advance()
		node.Token = &tok
		right := p.parseAssignExpression()
		if right == nil {
			return p.finishNode(node)
		}
		node.AddChild(right)
		return p.finishNode(node)
	}

	return left
}

func (p *Parser) parseTernaryExpression() *Node {
	cond := p.parseOrOrExpression()
	if cond == nil {
		return nil
	}

	if p.check(TokenQuestion) {
		node := p.alloc.NewNode(KindTernaryExpression)
		node.Span.Start = cond.Span.Start
		node.AddChild(cond)
		p.advance()
		node.AddChild(p.parseExpression())
		p.expect(TokenColon)
		node.AddChild(p.parseTernaryExpression())
		return p.finishNode(node)
	}

	return cond
}

// parseLeftAssoc builds one left-leaning chain level of the precedence
// ladder: parse an operand of the tighter level, then loop while the
// current token is one of the accepted operators.
func (p *Parser) parseLeftAssoc(kind NodeKind, next func(*Parser) *Node, ops ...TokenKind) *Node {
	left := next(p)
	if left == nil {
		return nil
	}

	for p.match(ops...) {
		node := p.alloc.NewNode(kind)
		node.Span.Start = left.Span.Start
		node.AddChild(left)
		tok := p.advance()
		node.Token = &tok
		right := next(p)
		if right == nil {
			return p.finishNode(node)
		}
		node.AddChild(right)
		left = p.finishNode(node)
	}

	return left
}

func (p *Parser) parseOrOrExpression() *Node {
	return p.parseLeftAssoc(KindOrOrExpression, (*Parser).parseAndAndExpression, TokenOrOr)
}

func (p *Parser) parseAndAndExpression() *Node {
	return p.parseLeftAssoc(KindAndAndExpression, (*Parser).parseOrExpression, TokenAndAnd)
}

func (p *Parser) parseOrExpression() *Node {
	return p.parseLeftAssoc(KindOrExpression, (*Parser).parseXorExpression, TokenPipe)
}

func (p *Parser) parseXorExpression() *Node {
	return p.parseLeftAssoc(KindXorExpression, (*Parser).parseAndExpression, TokenCaret)
}

func (p *Parser) parseAndExpression() *Node {
	return p.parseLeftAssoc(KindAndExpression, (*Parser).parseEqualityExpression, TokenAmp)
}

// parseEqualityExpression covers ==, !=, is, !is, in and !in, which all
// share a precedence level between & and the relational operators.
func (p *Parser) parseEqualityExpression() *Node {
	left := p.parseRelationalExpression()
	if left == nil {
		return nil
	}

	for {
		var kind NodeKind
		negated := false
		switch {
		case p.match(TokenEQ, TokenNE):
			kind = KindEqualityExpression
		case p.check(TokenIs):
			kind = KindIdentityExpression
		case p.check(TokenIn):
			kind = KindInExpression
		case p.check(TokenNot) && p.peekN(1).Kind == TokenIs:
			kind = KindIdentityExpression
			negated = true
		case p.check(TokenNot) && p.peekN(1).Kind == TokenIn:
			kind = KindInExpression
			negated = true
		default:
			return left
		}

		node := p.alloc.NewNode(kind)
		node.Span.Start = left.Span.Start
		node.AddChild(left)
		if negated {
			p.advance()
		}
		tok := p.advance()
		node.Token = &tok
		right := p.parseRelationalExpression()
		if right == nil {
			return p.finishNode(node)
		}
		node.AddChild(right)
		left = p.finishNode(node)
	}
}

func (p *Parser) parseRelationalExpression() *Node {
	return p.parseLeftAssoc(KindRelationalExpression, (*Parser).parseShiftExpression,
		TokenLT, TokenLE, TokenGT, TokenGE)
}

func (p *Parser) parseShiftExpression() *Node {
	return p.parseLeftAssoc(KindShiftExpression, (*Parser).parseAddExpression,
		TokenShl, TokenShr, TokenUShr)
}

func (p *Parser) parseAddExpression() *Node {
	return p.parseLeftAssoc(KindAddExpression, (*Parser).parseMulExpression,
		TokenPlus, TokenMinus, TokenTilde)
}

func (p *Parser) parseMulExpression() *Node {
	return p.parseLeftAssoc(KindMulExpression, (*Parser).parsePowExpression,
		TokenStar, TokenSlash, TokenPercent)
}

// parsePowExpression is the one right-associative level in the ladder.
func (p *Parser) parsePowExpression() *Node {
	left := p.parseUnaryExpression()
	if left == nil {
		return nil
	}

	if p.check(TokenPow) {
		node := p.alloc.NewNode(KindPowExpression)
		node.Span.Start = left.Span.Start
		node.AddChild(left)
		tok := p.advance()
		node.Token = &tok
		right := p.parsePowExpression()
		if right == nil {
			return p.finishNode(node)
		}
		node.AddChild(right)
		return p.finishNode(node)
	}

	return left
}

func (p *Parser) parseUnaryExpression() *Node {
	if p.tooManyErrors() {
		return nil
	}

	switch p.peek().Kind {
	case TokenAmp, TokenStar, TokenPlus, TokenMinus, TokenTilde,
		TokenIncrement, TokenDecrement:
		node := p.startNode(KindUnaryExpression)
		tok := p.advance()
		node.Token = &tok
		operand := p.parseUnaryExpression()
		if operand == nil {
			return p.abandonNode(node)
		}
		node.AddChild(operand)
		return p.finishNode(node)
	case TokenNot:
		// "!is"/"!in" never reach here; they bind at equality level.
		node := p.startNode(KindUnaryExpression)
		tok := p.advance()
		node.Token = &tok
		operand := p.parseUnaryExpression()
		if operand == nil {
			return p.abandonNode(node)
		}
		node.AddChild(operand)
		return p.finishNode(node)
	case TokenCast:
		return p.parsePostfixOps(p.parseCastExpression())
	case TokenNew:
		return p.parsePostfixOps(p.parseNewExpression())
	case TokenDelete:
		node := p.startNode(KindDeleteExpression)
		p.warn("the delete keyword is deprecated")
		p.advance()
		operand := p.parseUnaryExpression()
		if operand == nil {
			return p.abandonNode(node)
		}
		node.AddChild(operand)
		return p.finishNode(node)
	}

	return p.parsePostfixOps(p.parsePrimaryExpression())
}

// parsePostfixOps applies the postfix chain: member access, calls,
// indexing, slicing and ++/--.
func (p *Parser) parsePostfixOps(left *Node) *Node {
	if left == nil {
		return nil
	}

	for {
		switch p.peek().Kind {
		case TokenDot:
			node := p.alloc.NewNode(KindDotExpression)
			node.Span.Start = left.Span.Start
			node.AddChild(left)
			p.advance()
			switch p.peek().Kind {
			case TokenIdent:
				node.AddChild(p.parseIdentifierOrTemplateInstance())
			case TokenNew:
				node.AddChild(p.parseNewExpression())
			case TokenThis:
				tok := p.advance()
				node.AddChild(p.leaf(KindThisExpression, tok))
			default:
				p.errorNoResync("expected identifier after '.', found " + p.peek().Kind.String())
				return p.finishNode(node)
			}
			left = p.finishNode(node)
		case TokenLParen:
			node := p.alloc.NewNode(KindFunctionCallExpression)
			node.Span.Start = left.Span.Start
			node.AddChild(left)
			node.AddChild(p.parseArguments())
			left = p.finishNode(node)
		case TokenLBracket:
			left = p.parseIndexOrSlice(left)
			if left == nil {
				return nil
			}
		case TokenIncrement, TokenDecrement:
			node := p.alloc.NewNode(KindPostfixExpression)
			node.Span.Start = left.Span.Start
			node.AddChild(left)
			tok := p.advance()
			node.Token = &tok
			left = p.finishNode(node)
		default:
			return left
		}
	}
}

func (p *Parser) parseIndexOrSlice(left *Node) *Node {
	if p.peekN(1).Kind == TokenRBracket {
		node := p.alloc.NewNode(KindSliceExpression)
		node.Span.Start = left.Span.Start
		node.AddChild(left)
		p.advance()
		p.advance()
		return p.finishNode(node)
	}

	if p.hasMagicDelimiter(TokenLBracket, TokenDotDot) {
		node := p.alloc.NewNode(KindSliceExpression)
		node.Span.Start = left.Span.Start
		node.AddChild(left)
		p.advance()
		node.AddChild(p.parseAssignExpression())
		p.expect(TokenDotDot)
		node.AddChild(p.parseAssignExpression())
		p.expect(TokenRBracket)
		return p.finishNode(node)
	}

	node := p.alloc.NewNode(KindIndexExpression)
	node.Span.Start = left.Span.Start
	node.AddChild(left)
	p.advance()
	for _, arg := range p.parseCommaSeparated((*Parser).parseAssignExpression, TokenRBracket) {
		node.AddChild(arg)
	}
	p.expect(TokenRBracket)
	return p.finishNode(node)
}

func (p *Parser) parseArguments() *Node {
	node := p.startNode(KindArguments)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}
	if !p.check(TokenRParen) {
		for _, arg := range p.parseCommaSeparated((*Parser).parseAssignExpression, TokenRParen) {
			node.AddChild(arg)
		}
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parsePrimaryExpression() *Node {
	if p.tooManyErrors() {
		return nil
	}

	tok := p.peek()
	switch tok.Kind {
	case TokenIdent:
		if p.looksLikeTemplateInstance() {
			return p.parseTemplateInstance()
		}
		p.advance()
		return p.leaf(KindIdentifier, tok)
	case TokenThis:
		p.advance()
		return p.leaf(KindThisExpression, tok)
	case TokenSuper:
		p.advance()
		return p.leaf(KindSuperExpression, tok)
	case TokenDollar:
		p.advance()
		return p.leaf(KindDollarExpression, tok)
	case TokenLParen:
		node := p.startNode(KindParenExpression)
		p.advance()
		inner := p.parseExpression()
		if inner == nil {
			return p.abandonNode(node)
		}
		node.AddChild(inner)
		p.expect(TokenRParen)
		return p.finishNode(node)
	case TokenLBracket:
		return p.parseArrayOrAssocLiteral()
	case TokenAssert:
		return p.parseAssertExpression()
	case TokenMixin:
		return p.parseMixinExpression()
	case TokenImport:
		return p.parseImportExpression()
	case TokenTypeid:
		return p.parseTypeidExpression()
	case TokenTypeof:
		return p.parseTypeofExpression()
	case TokenIs:
		return p.parseIsExpression()
	case TokenTraits:
		return p.parseTraitsExpression()
	case TokenFunction, TokenDelegate, TokenLBrace:
		return p.parseFunctionLiteral()
	case TokenDot:
		// Module-scope lookup: .name
		node := p.startNode(KindDotExpression)
		p.advance()
		node.AddChild(p.parseIdentifierOrTemplateInstance())
		return p.finishNode(node)
	}

	if tok.Kind.IsBasicType() {
		// A basic type in expression position: int.max, uint(x).
		node := p.startNode(KindBaseType)
		p.advance()
		node.Token = &tok
		return p.finishNode(node)
	}

	if tok.Kind.IsLiteral() {
		p.advance()
		return p.leaf(KindLiteral, tok)
	}

	p.errorNoResync("expected expression, found " + tok.Kind.String())
	return nil
}

func (p *Parser) parseArrayOrAssocLiteral() *Node {
	if p.isAssociativeArrayLiteral() {
		node := p.startNode(KindAssocArrayLiteral)
		p.advance()
		for _, pair := range p.parseCommaSeparated((*Parser).parseKeyValuePair, TokenRBracket) {
			node.AddChild(pair)
		}
		p.expect(TokenRBracket)
		return p.finishNode(node)
	}

	node := p.startNode(KindArrayLiteral)
	p.advance()
	if !p.check(TokenRBracket) {
		for _, item := range p.parseCommaSeparated((*Parser).parseAssignExpression, TokenRBracket) {
			node.AddChild(item)
		}
	}
	p.expect(TokenRBracket)
	return p.finishNode(node)
}

func (p *Parser) parseKeyValuePair() *Node {
	node := p.startNode(KindKeyValuePair)
	key := p.parseAssignExpression()
	if key == nil {
		return p.abandonNode(node)
	}
	node.AddChild(key)
	if p.expect(TokenColon) == nil {
		return p.finishNode(node)
	}
	value := p.parseAssignExpression()
	if value == nil {
		return p.finishNode(node)
	}
	node.AddChild(value)
	return p.finishNode(node)
}

func (p *Parser) parseAssertExpression() *Node {
	node := p.startNode(KindAssertExpression)
	p.expect(TokenAssert)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}
	cond := p.parseAssignExpression()
	if cond == nil {
		return p.abandonNode(node)
	}
	node.AddChild(cond)
	if p.check(TokenComma) {
		p.advance()
		if !p.check(TokenRParen) {
			node.AddChild(p.parseAssignExpression())
		}
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseMixinExpression() *Node {
	node := p.startNode(KindMixinExpression)
	p.expect(TokenMixin)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}
	for _, arg := range p.parseCommaSeparated((*Parser).parseAssignExpression, TokenRParen) {
		node.AddChild(arg)
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseImportExpression() *Node {
	node := p.startNode(KindImportExpression)
	p.expect(TokenImport)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}
	arg := p.parseAssignExpression()
	if arg == nil {
		return p.abandonNode(node)
	}
	node.AddChild(arg)
	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseTypeidExpression() *Node {
	node := p.startNode(KindTypeidExpression)
	p.expect(TokenTypeid)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}
	if p.isType() {
		node.AddChild(p.parseType())
	} else {
		node.AddChild(p.parseExpression())
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

// parseIsExpression parses the is(...) introspection form: is(T),
// is(T ident), is(T == Spec) and is(T : Spec), optionally followed by
// template parameters.
func (p *Parser) parseIsExpression() *Node {
	node := p.startNode(KindIsExpression)
	p.expect(TokenIs)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}

	t := p.parseType()
	if t == nil {
		return p.abandonNode(node)
	}
	node.AddChild(t)

	if p.check(TokenIdent) {
		tok := p.advance()
		node.Token = &tok
	}

	if p.check(TokenEQ) || p.check(TokenColon) {
		op := p.advance()
		spec := p.startNode(KindTemplateArgument)
		spec.Token = &op
		switch {
		case p.match(TokenStruct, TokenUnion, TokenClass, TokenInterface,
			TokenEnum, TokenFunction, TokenDelegate, TokenSuper,
			TokenConst, TokenImmutable, TokenInout, TokenShared,
			TokenReturn, TokenParameters, TokenModule, TokenPackage):
			kw := p.advance()
			spec.AddChild(p.leaf(KindIdentifier, kw))
		default:
			st := p.parseType()
			if st == nil {
				p.abandonNode(spec)
				return p.finishNode(node)
			}
			spec.AddChild(st)
		}
		node.AddChild(p.finishNode(spec))
	}

	if p.check(TokenComma) {
		p.advance()
		for _, param := range p.parseCommaSeparated((*Parser).parseTemplateParameter, TokenRParen) {
			node.AddChild(param)
		}
	}

	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseTraitsExpression() *Node {
	node := p.startNode(KindTraitsExpression)
	p.expect(TokenTraits)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}
	tok := p.expectIdentifier()
	if tok == nil {
		return p.abandonNode(node)
	}
	node.Token = tok
	for p.check(TokenComma) {
		p.advance()
		if p.check(TokenRParen) {
			break
		}
		node.AddChild(p.parseTemplateArgument())
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseNewExpression() *Node {
	node := p.startNode(KindNewExpression)
	p.expect(TokenNew)

	if p.check(TokenClass) {
		anon := p.startNode(KindNewAnonClassExpression)
		p.advance()
		if p.check(TokenLParen) {
			anon.AddChild(p.parseArguments())
		}
		if !p.check(TokenLBrace) {
			anon.AddChild(p.parseBaseClassList())
		}
		anon.AddChild(p.parseStructBody())
		node.AddChild(p.finishNode(anon))
		return p.finishNode(node)
	}

	t := p.parseType()
	if t == nil {
		return p.abandonNode(node)
	}
	node.AddChild(t)

	if p.check(TokenLParen) {
		node.AddChild(p.parseArguments())
	}

	return p.finishNode(node)
}

// parseCastExpression parses cast(Type)expr and the qualifier-only form
// cast(const)expr.
func (p *Parser) parseCastExpression() *Node {
	node := p.startNode(KindCastExpression)
	p.expect(TokenCast)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}

	if p.check(TokenRParen) {
		// cast() removes all qualifiers.
		p.advance()
	} else if p.isCastQualifier() {
		qual := p.startNode(KindCastQualifier)
		for p.peek().Kind.IsTypeConstructor() {
			tok := p.advance()
			qual.AddChild(p.leaf(KindIdentifier, tok))
		}
		node.AddChild(p.finishNode(qual))
		p.expect(TokenRParen)
	} else {
		t := p.parseType()
		if t == nil {
			return p.abandonNode(node)
		}
		node.AddChild(t)
		p.expect(TokenRParen)
	}

	operand := p.parseUnaryExpression()
	if operand == nil {
		return p.finishNode(node)
	}
	node.AddChild(operand)
	return p.finishNode(node)
}

// parseFunctionLiteral parses the lambda arrow forms, bare block
// literals and the function/delegate keyword forms.
func (p *Parser) parseFunctionLiteral() *Node {
	node := p.startNode(KindFunctionLiteral)

	if p.check(TokenFunction) || p.check(TokenDelegate) {
		tok := p.advance()
		node.Token = &tok
		// Whatever sits between the keyword and the parameter list or
		// body is the return type.
		if !p.match(TokenLParen, TokenLBrace, TokenFatArrow) {
			node.AddChild(p.parseType())
		}
		if p.check(TokenLParen) {
			node.AddChild(p.parseParameters())
		}
		for {
			attr := p.parseMemberFunctionAttribute()
			if attr == nil {
				break
			}
			node.AddChild(attr)
		}
		if p.check(TokenFatArrow) {
			p.advance()
			node.AddChild(p.parseAssignExpression())
			return p.finishNode(node)
		}
		node.AddChild(p.parseBlockStatement())
		return p.finishNode(node)
	}

	if p.check(TokenIdent) && p.peekN(1).Kind == TokenFatArrow {
		lambda := p.startNode(KindLambdaExpression)
		tok := p.advance()
		lambda.Token = &tok
		p.advance()
		body := p.parseAssignExpression()
		if body == nil {
			p.abandonNode(lambda)
			return p.abandonNode(node)
		}
		lambda.AddChild(body)
		node.AddChild(p.finishNode(lambda))
		return p.finishNode(node)
	}

	if p.check(TokenLParen) {
		node.AddChild(p.parseParameters())
		for {
			attr := p.parseMemberFunctionAttribute()
			if attr == nil {
				break
			}
			node.AddChild(attr)
		}
		if p.check(TokenFatArrow) {
			p.advance()
			body := p.parseAssignExpression()
			if body == nil {
				return p.finishNode(node)
			}
			node.AddChild(body)
			return p.finishNode(node)
		}
		node.AddChild(p.parseBlockStatement())
		return p.finishNode(node)
	}

	node.AddChild(p.parseBlockStatement())
	return p.finishNode(node)
}
