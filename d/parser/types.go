package parser

// parseType parses a full type: optional qualifier prefix, a base type,
// and a trailing run of suffixes applied left to right.
func (p *Parser) parseType() *Node {
	node := p.startNode(KindType)

	for p.peek().Kind.IsTypeConstructor() && p.peekN(1).Kind != TokenLParen {
		tok := p.advance()
		ctor := p.alloc.NewNode(KindTypeConstructor)
		ctor.Span = tok.Span
		ctor.Token = &tok
		node.AddChild(ctor)
	}

	base := p.parseBaseType()
	if base == nil {
		return p.abandonNode(node)
	}
	node.AddChild(base)

	for {
		suffix := p.parseTypeSuffix()
		if suffix == nil {
			break
		}
		node.AddChild(suffix)
	}

	return p.finishNode(node)
}

func (p *Parser) parseBaseType() *Node {
	node := p.startNode(KindBaseType)

	switch p.peek().Kind {
	case TokenTypeof:
		node.AddChild(p.parseTypeofExpression())
		if p.check(TokenDot) {
			p.advance()
			node.AddChild(p.parseIdentifierOrTemplateChain())
		}
	case TokenVector:
		node.AddChild(p.parseVector())
	case TokenConst, TokenImmutable, TokenInout, TokenShared:
		// Qualifier applied to a parenthesized type: const(int).
		tok := p.advance()
		ctor := p.startNode(KindTypeConstructor)
		ctor.Token = &tok
		if p.expect(TokenLParen) == nil {
			p.abandonNode(ctor)
			return p.abandonNode(node)
		}
		inner := p.parseType()
		if inner == nil {
			p.abandonNode(ctor)
			return p.abandonNode(node)
		}
		ctor.AddChild(inner)
		p.expect(TokenRParen)
		node.AddChild(p.finishNode(ctor))
	case TokenDot:
		p.advance()
		node.AddChild(p.parseIdentifierOrTemplateChain())
	case TokenIdent:
		node.AddChild(p.parseIdentifierOrTemplateChain())
	default:
		if p.peek().Kind.IsBasicType() {
			tok := p.advance()
			node.Token = &tok
			break
		}
		p.errorNoResync("expected type, found " + p.peek().Kind.String())
		return p.abandonNode(node)
	}

	return p.finishNode(node)
}

// parseTypeSuffix parses one trailing type suffix, or returns nil when
// the current token does not begin one. Suffixes compose left to right:
// int*[3] is "array of three pointers to int".
func (p *Parser) parseTypeSuffix() *Node {
	switch p.peek().Kind {
	case TokenStar:
		node := p.startNode(KindTypeSuffix)
		tok := p.advance()
		node.Token = &tok
		return p.finishNode(node)
	case TokenLBracket:
		return p.parseBracketTypeSuffix()
	case TokenDelegate, TokenFunction:
		node := p.startNode(KindTypeSuffix)
		tok := p.advance()
		node.Token = &tok
		params := p.parseParameters()
		if params == nil {
			return p.abandonNode(node)
		}
		node.AddChild(params)
		for {
			attr := p.parseMemberFunctionAttribute()
			if attr == nil {
				break
			}
			node.AddChild(attr)
		}
		return p.finishNode(node)
	}
	return nil
}

func (p *Parser) parseBracketTypeSuffix() *Node {
	node := p.startNode(KindTypeSuffix)
	tok := p.advance()
	node.Token = &tok

	if p.check(TokenRBracket) {
		p.advance()
		return p.finishNode(node)
	}

	// A type between the brackets makes an associative array; an
	// expression makes a static array or a slice-of-range suffix.
	if p.isType() {
		keyType := p.parseType()
		if keyType == nil {
			return p.abandonNode(node)
		}
		node.AddChild(keyType)
	} else {
		low := p.parseAssignExpression()
		if low == nil {
			return p.abandonNode(node)
		}
		node.AddChild(low)
		if p.check(TokenDotDot) {
			p.advance()
			high := p.parseAssignExpression()
			if high == nil {
				return p.abandonNode(node)
			}
			node.AddChild(high)
		}
	}

	p.expect(TokenRBracket)
	return p.finishNode(node)
}

func (p *Parser) parseTypeofExpression() *Node {
	node := p.startNode(KindTypeofExpression)
	p.expect(TokenTypeof)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}
	if p.check(TokenReturn) {
		tok := p.advance()
		node.Token = &tok
	} else {
		expr := p.parseExpression()
		if expr == nil {
			return p.abandonNode(node)
		}
		node.AddChild(expr)
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseVector() *Node {
	node := p.startNode(KindVector)
	p.expect(TokenVector)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}
	inner := p.parseType()
	if inner == nil {
		return p.abandonNode(node)
	}
	node.AddChild(inner)
	p.expect(TokenRParen)
	return p.finishNode(node)
}

// parseIdentifierChain parses a plain dotted name: a.b.c.
func (p *Parser) parseIdentifierChain() *Node {
	node := p.startNode(KindIdentifierChain)

	tok := p.expectIdentifier()
	if tok == nil {
		return p.abandonNode(node)
	}
	node.AddChild(p.leaf(KindIdentifier, *tok))

	for p.check(TokenDot) && p.peekN(1).Kind == TokenIdent {
		p.advance()
		id := p.advance()
		node.AddChild(p.leaf(KindIdentifier, id))
	}

	return p.finishNode(node)
}

// parseIdentifierOrTemplateChain parses a dotted name whose parts may be
// template instances: a.b!(c).d.
func (p *Parser) parseIdentifierOrTemplateChain() *Node {
	node := p.startNode(KindIdentifierOrTemplateChain)

	part := p.parseIdentifierOrTemplateInstance()
	if part == nil {
		return p.abandonNode(node)
	}
	node.AddChild(part)

	for p.check(TokenDot) && p.peekN(1).Kind == TokenIdent {
		p.advance()
		part := p.parseIdentifierOrTemplateInstance()
		if part == nil {
			break
		}
		node.AddChild(part)
	}

	return p.finishNode(node)
}

func (p *Parser) parseIdentifierOrTemplateInstance() *Node {
	node := p.startNode(KindIdentifierOrTemplateInstance)

	if p.looksLikeTemplateInstance() {
		inst := p.parseTemplateInstance()
		if inst == nil {
			return p.abandonNode(node)
		}
		node.AddChild(inst)
		return p.finishNode(node)
	}

	tok := p.expectIdentifier()
	if tok == nil {
		return p.abandonNode(node)
	}
	node.Token = tok
	return p.finishNode(node)
}

// parseTemplateInstance parses name!(args) or the single-token shorthand
// name!arg.
func (p *Parser) parseTemplateInstance() *Node {
	node := p.startNode(KindTemplateInstance)

	tok := p.expectIdentifier()
	if tok == nil {
		return p.abandonNode(node)
	}
	node.Token = tok

	if p.expect(TokenNot) == nil {
		return p.abandonNode(node)
	}

	args := p.parseTemplateArguments()
	if args == nil {
		return p.abandonNode(node)
	}
	node.AddChild(args)

	return p.finishNode(node)
}

func (p *Parser) parseTemplateArguments() *Node {
	node := p.startNode(KindTemplateArguments)

	if p.check(TokenLParen) {
		p.advance()
		if !p.check(TokenRParen) {
			for _, arg := range p.parseCommaSeparated((*Parser).parseTemplateArgument, TokenRParen) {
				node.AddChild(arg)
			}
		}
		p.expect(TokenRParen)
		return p.finishNode(node)
	}

	// Shorthand: a single token after the bang.
	single := p.startNode(KindTemplateSingleArgument)
	switch {
	case p.peek().Kind.IsBasicType(), p.peek().Kind.IsLiteral(),
		p.check(TokenIdent), p.check(TokenThis):
		tok := p.advance()
		single.Token = &tok
	default:
		p.errorNoResync("expected template argument, found " + p.peek().Kind.String())
		p.abandonNode(single)
		return p.abandonNode(node)
	}
	node.AddChild(p.finishNode(single))
	return p.finishNode(node)
}

// parseTemplateArgument parses one argument: a type when one fits, an
// assign expression otherwise.
func (p *Parser) parseTemplateArgument() *Node {
	node := p.startNode(KindTemplateArgument)
	if p.isType() {
		t := p.parseType()
		if t == nil {
			return p.abandonNode(node)
		}
		node.AddChild(t)
	} else {
		e := p.parseAssignExpression()
		if e == nil {
			return p.abandonNode(node)
		}
		node.AddChild(e)
	}
	return p.finishNode(node)
}

func (p *Parser) parseTemplateParameters() *Node {
	node := p.startNode(KindTemplateParameters)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}
	if !p.check(TokenRParen) {
		for _, param := range p.parseCommaSeparated((*Parser).parseTemplateParameter, TokenRParen) {
			node.AddChild(param)
		}
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseTemplateParameter() *Node {
	switch p.peek().Kind {
	case TokenAlias:
		return p.parseTemplateAliasParameter()
	case TokenThis:
		node := p.startNode(KindTemplateThisParameter)
		p.advance()
		tok := p.expectIdentifier()
		if tok == nil {
			return p.abandonNode(node)
		}
		node.Token = tok
		return p.finishNode(node)
	case TokenIdent:
		if p.peekN(1).Kind == TokenEllipsis {
			node := p.startNode(KindTemplateTupleParameter)
			tok := p.advance()
			node.Token = &tok
			p.advance()
			return p.finishNode(node)
		}
		switch p.peekN(1).Kind {
		case TokenComma, TokenRParen, TokenColon, TokenAssign:
			return p.parseTemplateTypeParameter()
		}
	}
	return p.parseTemplateValueParameter()
}

func (p *Parser) parseTemplateTypeParameter() *Node {
	node := p.startNode(KindTemplateTypeParameter)
	tok := p.expectIdentifier()
	if tok == nil {
		return p.abandonNode(node)
	}
	node.Token = tok
	if p.check(TokenColon) {
		p.advance()
		spec := p.parseType()
		if spec != nil {
			node.AddChild(spec)
		}
	}
	if p.check(TokenAssign) {
		p.advance()
		def := p.parseType()
		if def != nil {
			node.AddChild(def)
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseTemplateValueParameter() *Node {
	node := p.startNode(KindTemplateValueParameter)
	t := p.parseType()
	if t == nil {
		return p.abandonNode(node)
	}
	node.AddChild(t)
	tok := p.expectIdentifier()
	if tok == nil {
		return p.abandonNode(node)
	}
	node.Token = tok
	if p.check(TokenColon) {
		p.advance()
		spec := p.parseAssignExpression()
		if spec != nil {
			node.AddChild(spec)
		}
	}
	if p.check(TokenAssign) {
		p.advance()
		def := p.parseAssignExpression()
		if def != nil {
			node.AddChild(def)
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseTemplateAliasParameter() *Node {
	node := p.startNode(KindTemplateAliasParameter)
	p.expect(TokenAlias)
	tok := p.expectIdentifier()
	if tok == nil {
		return p.abandonNode(node)
	}
	node.Token = tok
	if p.check(TokenColon) {
		p.advance()
		if p.isType() {
			node.AddChild(p.parseType())
		} else {
			node.AddChild(p.parseAssignExpression())
		}
	}
	if p.check(TokenAssign) {
		p.advance()
		if p.isType() {
			node.AddChild(p.parseType())
		} else {
			node.AddChild(p.parseAssignExpression())
		}
	}
	return p.finishNode(node)
}

// parseParameters parses a function parameter list including variadics
// and defaults.
func (p *Parser) parseParameters() *Node {
	node := p.startNode(KindParameters)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}
	if !p.check(TokenRParen) {
		for _, param := range p.parseCommaSeparated((*Parser).parseParameter, TokenRParen) {
			node.AddChild(param)
		}
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseParameter() *Node {
	node := p.startNode(KindParameter)

	for p.isParameterStorageClass() {
		if p.check(TokenAt) {
			node.AddChild(p.parseUserDefinedAttribute())
			continue
		}
		tok := p.advance()
		attr := p.alloc.NewNode(KindAttribute)
		attr.Span = tok.Span
		attr.Token = &tok
		node.AddChild(attr)
	}

	if p.check(TokenEllipsis) {
		tok := p.advance()
		node.Token = &tok
		return p.finishNode(node)
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

	if p.check(TokenAssign) {
		p.advance()
		def := p.parseAssignExpression()
		if def != nil {
			node.AddChild(def)
		}
	}

	if p.check(TokenEllipsis) {
		p.advance()
	}

	return p.finishNode(node)
}

func (p *Parser) isParameterStorageClass() bool {
	switch p.peek().Kind {
	case TokenIn, TokenOut, TokenRef, TokenLazy, TokenScope, TokenAuto,
		TokenFinal, TokenReturn:
		return true
	case TokenConst, TokenImmutable, TokenInout, TokenShared:
		return p.peekN(1).Kind != TokenLParen
	case TokenAt:
		return p.peekN(1).Kind == TokenIdent
	}
	return false
}
