package parser

// parseModule is the top-level entry. It always returns a Module node;
// error recovery keeps the loop going until the stream runs out.
func (p *Parser) parseModule() *Node {
	node := p.startNode(KindModule)

	if p.startsModuleDeclaration() {
		node.AddChild(p.parseModuleDeclaration())
	}

	for p.moreTokens() {
		progress := p.mustProgress()
		node.AddChild(p.parseDeclaration())
		if !progress() {
			continue
		}
	}

	return p.finishNode(node)
}

func (p *Parser) startsModuleDeclaration() bool {
	if p.check(TokenModule) {
		return true
	}
	if !p.check(TokenDeprecated) {
		return false
	}
	if p.peekN(1).Kind == TokenModule {
		return true
	}
	if p.peekN(1).Kind == TokenLParen {
		idx := p.pos + 1
		depth := 0
		for idx < len(p.tokens) && p.tokens[idx].Kind != TokenEOF {
			switch p.tokens[idx].Kind {
			case TokenLParen:
				depth++
			case TokenRParen:
				depth--
				if depth == 0 {
					return p.tokens[idx+1].Kind == TokenModule
				}
			}
			idx++
		}
	}
	return false
}

func (p *Parser) parseModuleDeclaration() *Node {
	node := p.startNode(KindModuleDeclaration)
	node.Comment = p.declComment()

	if p.check(TokenDeprecated) {
		node.AddChild(p.parseDeprecated())
	}

	p.expect(TokenModule)
	name := p.parseIdentifierChain()
	if name == nil {
		return p.finishNode(node)
	}
	node.AddChild(name)
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

// declComment pulls the doc comment attached to the token at the cursor
// into the pending slot and consumes the slot. The slot guarantees a
// comment attaches to the syntactically next declaration only.
func (p *Parser) declComment() string {
	if c := p.peek().Comment; c != "" {
		p.pendingComment = c
	}
	c := p.pendingComment
	p.pendingComment = ""
	return c
}

// errorNode reports an error, resynchronizes, and returns a node that
// keeps the damage visible in the tree.
func (p *Parser) errorNode(message string) *Node {
	tok := p.peek()
	n := p.alloc.NewNode(KindError)
	n.Span = tok.Span
	n.Error = &Error{Message: message, Got: &tok}
	p.error(message)
	return n
}

// parseCommaSeparated parses items separated by commas up to (but not
// consuming) the closing delimiter. A trailing comma before the closer
// is tolerated. Parsing short-circuits past the error cutoff.
func (p *Parser) parseCommaSeparated(item func(*Parser) *Node, closer TokenKind) []*Node {
	var items []*Node
	for !p.check(closer) && p.moreTokens() {
		if p.tooManyErrors() {
			break
		}
		progress := p.mustProgress()
		if n := item(p); n != nil {
			items = append(items, n)
		}
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progress() {
			break
		}
	}
	return p.alloc.OwnNodes(items)
}

// parseDeclaration is the selector rule: leading attributes, then a
// multi-way dispatch on the current token. The returned Declaration node
// holds exactly one concrete alternative, or none when recovery gave up.
func (p *Parser) parseDeclaration() *Node {
	node := p.startNode(KindDeclaration)
	node.Comment = p.declComment()

	for p.isAttributeStart() {
		attr := p.parseAttribute()
		if attr == nil {
			break
		}
		node.AddChild(attr)

		// Attribute label: private: applies to the rest of the scope.
		if p.check(TokenColon) {
			p.advance()
			node.Kind = KindAttributeDeclaration
			return p.finishNode(node)
		}
	}

	if len(node.Children) > 0 && p.check(TokenLBrace) {
		// Attribute block: extern(C) { ... }
		p.advance()
		for !p.check(TokenRBrace) && p.moreTokens() {
			progress := p.mustProgress()
			node.AddChild(p.parseDeclaration())
			if !progress() {
				continue
			}
		}
		p.expect(TokenRBrace)
		return p.finishNode(node)
	}

	switch p.peek().Kind {
	case TokenSemicolon:
		p.advance()
		return p.finishNode(node)
	case TokenClass:
		node.AddChild(p.parseClassDeclaration())
	case TokenInterface:
		node.AddChild(p.parseInterfaceDeclaration())
	case TokenStruct:
		node.AddChild(p.parseAggregateDeclaration(KindStructDeclaration))
	case TokenUnion:
		node.AddChild(p.parseAggregateDeclaration(KindUnionDeclaration))
	case TokenEnum:
		node.AddChild(p.parseEnumLedDeclaration())
	case TokenAlias:
		node.AddChild(p.parseAliasDeclaration())
	case TokenImport:
		node.AddChild(p.parseImportDeclaration())
	case TokenTemplate:
		node.AddChild(p.parseTemplateDeclaration())
	case TokenMixin:
		switch p.peekN(1).Kind {
		case TokenTemplate:
			p.advance()
			node.AddChild(p.parseTemplateDeclaration())
		case TokenLParen:
			node.AddChild(p.parseMixinStatement())
		default:
			node.AddChild(p.parseTemplateMixinDeclaration())
		}
	case TokenUnittest:
		node.AddChild(p.parseUnittest())
	case TokenInvariant:
		node.AddChild(p.parseInvariant())
	case TokenThis:
		node.AddChild(p.parseConstructor())
	case TokenTilde:
		node.AddChild(p.parseDestructor(KindDestructor))
	case TokenShared:
		switch {
		case p.startsWith(TokenShared, TokenStatic, TokenThis):
			p.advance()
			node.AddChild(p.parseStaticConstructor(KindSharedStaticConstructor))
		case p.startsWith(TokenShared, TokenStatic, TokenTilde):
			p.advance()
			node.AddChild(p.parseStaticDestructor(KindSharedStaticDestructor))
		default:
			node.AddChild(p.parseTypeLedDeclaration())
		}
	case TokenStatic:
		switch p.peekN(1).Kind {
		case TokenThis:
			node.AddChild(p.parseStaticConstructor(KindStaticConstructor))
		case TokenTilde:
			node.AddChild(p.parseStaticDestructor(KindStaticDestructor))
		case TokenIf:
			node.AddChild(p.parseConditionalDeclaration())
		case TokenForeach, TokenForeachReverse:
			node.AddChild(p.parseStaticForeachDeclaration())
		case TokenAssert:
			node.AddChild(p.parseStaticAssertDeclaration())
		default:
			node.AddChild(p.errorNode("unexpected static"))
		}
	case TokenVersion:
		if p.peekN(1).Kind == TokenAssign {
			node.AddChild(p.parseVersionSpecification())
		} else {
			node.AddChild(p.parseConditionalDeclaration())
		}
	case TokenDebug:
		if p.peekN(1).Kind == TokenAssign {
			node.AddChild(p.parseDebugSpecification())
		} else {
			node.AddChild(p.parseConditionalDeclaration())
		}
	case TokenPragma:
		node.AddChild(p.parsePragmaDeclaration())
	case TokenIdent:
		if p.peekN(1).Kind == TokenAssign && len(node.Children) > 0 {
			node.AddChild(p.parseAutoDeclaration())
		} else {
			node.AddChild(p.parseTypeLedDeclaration())
		}
	case TokenEOF:
		p.errorNoResync("unexpected end of input")
		return p.finishNode(node)
	default:
		node.AddChild(p.parseTypeLedDeclaration())
	}

	return p.finishNode(node)
}

// isAttributeStart reports whether the current token begins a leading
// attribute rather than the declaration proper.
func (p *Parser) isAttributeStart() bool {
	switch p.peek().Kind {
	case TokenAt, TokenAlign, TokenDeprecated, TokenExtern,
		TokenPrivate, TokenProtected, TokenPublic, TokenExport,
		TokenAbstract, TokenFinal, TokenOverride, TokenPure,
		TokenNothrow, TokenRef, TokenAuto, TokenGShared:
		return true
	case TokenPackage:
		// Either the visibility attribute or package(name).
		return true
	case TokenScope, TokenSynchronized:
		return p.peekN(1).Kind != TokenLParen
	case TokenStatic:
		switch p.peekN(1).Kind {
		case TokenIf, TokenForeach, TokenForeachReverse, TokenAssert,
			TokenThis, TokenTilde:
			return false
		}
		return true
	case TokenConst, TokenImmutable, TokenInout:
		return p.peekN(1).Kind != TokenLParen
	case TokenShared:
		if p.peekN(1).Kind == TokenLParen {
			return false
		}
		if p.peekN(1).Kind == TokenStatic {
			switch p.peekN(2).Kind {
			case TokenThis, TokenTilde:
				return false
			}
		}
		return true
	}
	return false
}

func (p *Parser) parseAttribute() *Node {
	switch p.peek().Kind {
	case TokenAt:
		return p.parseUserDefinedAttribute()
	case TokenExtern:
		if p.peekN(1).Kind == TokenLParen {
			return p.parseLinkageAttribute()
		}
		tok := p.advance()
		return p.leaf(KindAttribute, tok)
	case TokenAlign:
		return p.parseAlignAttribute()
	case TokenDeprecated:
		return p.parseDeprecated()
	case TokenPackage:
		node := p.startNode(KindAttribute)
		tok := p.advance()
		node.Token = &tok
		if p.check(TokenLParen) {
			p.advance()
			node.AddChild(p.parseIdentifierChain())
			p.expect(TokenRParen)
		}
		return p.finishNode(node)
	default:
		tok := p.advance()
		return p.leaf(KindAttribute, tok)
	}
}

// parseUserDefinedAttribute parses @ident, @ident(args), @Template!arg
// and @(args).
func (p *Parser) parseUserDefinedAttribute() *Node {
	node := p.startNode(KindUserDefinedAttribute)
	p.expect(TokenAt)

	switch p.peek().Kind {
	case TokenIdent:
		node.AddChild(p.parseIdentifierOrTemplateInstance())
		if p.check(TokenLParen) {
			node.AddChild(p.parseArguments())
		}
	case TokenLParen:
		node.AddChild(p.parseArguments())
	default:
		p.errorNoResync("expected identifier after @, found " + p.peek().Kind.String())
		return p.finishNode(node)
	}

	return p.finishNode(node)
}

// parseLinkageAttribute parses extern(C), extern(C++), and
// extern(C++, ns.sub).
func (p *Parser) parseLinkageAttribute() *Node {
	node := p.startNode(KindLinkageAttribute)
	p.expect(TokenExtern)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}
	tok := p.expectIdentifier()
	if tok == nil {
		return p.finishNode(node)
	}
	node.Token = tok
	if p.check(TokenIncrement) {
		p.advance()
	}
	for p.check(TokenComma) {
		p.advance()
		node.AddChild(p.parseIdentifierChain())
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseAlignAttribute() *Node {
	node := p.startNode(KindAlignAttribute)
	p.expect(TokenAlign)
	if p.check(TokenLParen) {
		p.advance()
		node.AddChild(p.parseAssignExpression())
		p.expect(TokenRParen)
	}
	return p.finishNode(node)
}

func (p *Parser) parseDeprecated() *Node {
	node := p.startNode(KindDeprecated)
	p.expect(TokenDeprecated)
	if p.check(TokenLParen) {
		p.advance()
		node.AddChild(p.parseAssignExpression())
		p.expect(TokenRParen)
	}
	return p.finishNode(node)
}

func (p *Parser) parseImportDeclaration() *Node {
	node := p.startNode(KindImportDeclaration)
	p.expect(TokenImport)

	single := p.parseSingleImport()
	if single == nil {
		return p.finishNode(node)
	}
	node.AddChild(single)

	for p.check(TokenComma) {
		p.advance()
		next := p.parseSingleImport()
		if next == nil {
			break
		}
		node.AddChild(next)
	}

	if p.check(TokenColon) {
		bindings := p.startNode(KindImportBindings)
		p.advance()
		for _, bind := range p.parseCommaSeparated((*Parser).parseImportBind, TokenSemicolon) {
			bindings.AddChild(bind)
		}
		node.AddChild(p.finishNode(bindings))
	}

	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseSingleImport() *Node {
	node := p.startNode(KindSingleImport)
	if p.check(TokenIdent) && p.peekN(1).Kind == TokenAssign {
		tok := p.advance()
		node.Token = &tok
		p.advance()
	}
	chain := p.parseIdentifierChain()
	if chain == nil {
		return p.abandonNode(node)
	}
	node.AddChild(chain)
	return p.finishNode(node)
}

func (p *Parser) parseImportBind() *Node {
	node := p.startNode(KindImportBind)
	tok := p.expectIdentifier()
	if tok == nil {
		return p.abandonNode(node)
	}
	node.Token = tok
	if p.check(TokenAssign) {
		p.advance()
		id := p.expectIdentifier()
		if id != nil {
			node.AddChild(p.leaf(KindIdentifier, *id))
		}
	}
	return p.finishNode(node)
}

// parseAliasDeclaration parses the modern alias name = Type form, the
// alias name this form, and the legacy alias Type name form, which is
// accepted with a warning.
func (p *Parser) parseAliasDeclaration() *Node {
	node := p.startNode(KindAliasDeclaration)
	p.expect(TokenAlias)

	if p.check(TokenIdent) && p.peekN(1).Kind == TokenThis {
		node.Kind = KindAliasThisDeclaration
		tok := p.advance()
		node.Token = &tok
		p.advance()
		p.expect(TokenSemicolon)
		return p.finishNode(node)
	}

	if p.check(TokenIdent) && p.peekN(1).Kind == TokenAssign {
		for {
			init := p.parseAliasInitializer()
			if init == nil {
				break
			}
			node.AddChild(init)
			if !p.check(TokenComma) {
				break
			}
			p.advance()
		}
		p.expect(TokenSemicolon)
		return p.finishNode(node)
	}

	p.warn("legacy alias syntax, use alias name = type instead")
	t := p.parseType()
	if t == nil {
		return p.finishNode(node)
	}
	node.AddChild(t)
	tok := p.expectIdentifier()
	if tok != nil {
		node.Token = tok
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseAliasInitializer() *Node {
	node := p.startNode(KindAliasInitializer)
	tok := p.expectIdentifier()
	if tok == nil {
		return p.abandonNode(node)
	}
	node.Token = tok
	if p.expect(TokenAssign) == nil {
		return p.finishNode(node)
	}
	if p.isType() {
		node.AddChild(p.parseType())
	} else {
		node.AddChild(p.parseAssignExpression())
	}
	return p.finishNode(node)
}

func (p *Parser) parseClassDeclaration() *Node {
	node := p.startNode(KindClassDeclaration)
	node.Comment = p.declComment()
	p.expect(TokenClass)
	return p.parseClassLikeRest(node)
}

func (p *Parser) parseInterfaceDeclaration() *Node {
	node := p.startNode(KindInterfaceDeclaration)
	node.Comment = p.declComment()
	p.expect(TokenInterface)
	return p.parseClassLikeRest(node)
}

func (p *Parser) parseClassLikeRest(node *Node) *Node {
	tok := p.expectIdentifier()
	if tok == nil {
		return p.finishNode(node)
	}
	node.Token = tok

	if p.check(TokenLParen) {
		node.AddChild(p.parseTemplateParameters())
	}
	if p.check(TokenIf) {
		node.AddChild(p.parseConstraint())
	}
	if p.check(TokenColon) {
		p.advance()
		node.AddChild(p.parseBaseClassList())
	}
	if p.check(TokenIf) {
		node.AddChild(p.parseConstraint())
	}

	if p.check(TokenSemicolon) {
		p.advance()
		return p.finishNode(node)
	}

	node.AddChild(p.parseStructBody())
	return p.finishNode(node)
}

func (p *Parser) parseBaseClassList() *Node {
	node := p.startNode(KindBaseClassList)
	for {
		base := p.startNode(KindBaseClass)
		t := p.parseBaseType()
		if t == nil {
			p.abandonNode(base)
			break
		}
		base.AddChild(t)
		node.AddChild(p.finishNode(base))
		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}
	return p.finishNode(node)
}

// parseAggregateDeclaration handles struct and union, named or
// anonymous.
func (p *Parser) parseAggregateDeclaration(kind NodeKind) *Node {
	node := p.startNode(kind)
	node.Comment = p.declComment()
	keyword := p.advance()

	if p.check(TokenIdent) {
		tok := p.advance()
		node.Token = &tok
		if p.check(TokenLParen) {
			node.AddChild(p.parseTemplateParameters())
		}
		if p.check(TokenIf) {
			node.AddChild(p.parseConstraint())
		}
	} else {
		// Nameless struct { } or union { } member. The keyword token
		// keeps the two forms apart.
		node.Kind = KindAnonymousAggregate
		node.Token = &keyword
	}

	if p.check(TokenSemicolon) {
		p.advance()
		return p.finishNode(node)
	}

	node.AddChild(p.parseStructBody())
	return p.finishNode(node)
}

func (p *Parser) parseStructBody() *Node {
	node := p.startNode(KindStructBody)
	if p.expect(TokenLBrace) == nil {
		return p.finishNode(node)
	}
	for !p.check(TokenRBrace) && p.moreTokens() {
		progress := p.mustProgress()
		node.AddChild(p.parseDeclaration())
		if !progress() {
			continue
		}
	}
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

// parseEnumLedDeclaration distinguishes a proper enum declaration from
// the manifest-constant use of enum as a storage class.
func (p *Parser) parseEnumLedDeclaration() *Node {
	if p.peekN(1).Kind == TokenIdent {
		switch p.peekN(2).Kind {
		case TokenLBrace, TokenColon, TokenSemicolon:
			return p.parseEnumDeclaration()
		case TokenAssign:
			// enum x = value; is a manifest constant.
			node := p.startNode(KindAutoDeclaration)
			tok := p.advance()
			node.AddChild(p.leaf(KindAttribute, tok))
			p.parseAutoDeclarationParts(node)
			return p.finishNode(node)
		}
	}
	if p.peekN(1).Kind == TokenLBrace || p.peekN(1).Kind == TokenColon {
		return p.parseEnumDeclaration()
	}

	// enum T x = value; is a typed manifest constant.
	node := p.startNode(KindVariableDeclaration)
	tok := p.advance()
	node.AddChild(p.leaf(KindAttribute, tok))
	t := p.parseType()
	if t == nil {
		return p.finishNode(node)
	}
	node.AddChild(t)
	p.parseDeclarators(node)
	return p.finishNode(node)
}

func (p *Parser) parseEnumDeclaration() *Node {
	node := p.startNode(KindEnumDeclaration)
	node.Comment = p.declComment()
	p.expect(TokenEnum)

	if p.check(TokenIdent) {
		tok := p.advance()
		node.Token = &tok
	} else {
		node.Kind = KindAnonymousEnumDeclaration
	}

	if p.check(TokenColon) {
		p.advance()
		base := p.parseType()
		if base != nil {
			node.AddChild(base)
		}
	}

	if p.check(TokenSemicolon) {
		p.advance()
		return p.finishNode(node)
	}

	node.AddChild(p.parseEnumBody())
	return p.finishNode(node)
}

func (p *Parser) parseEnumBody() *Node {
	node := p.startNode(KindEnumBody)
	if p.expect(TokenLBrace) == nil {
		return p.finishNode(node)
	}
	for _, member := range p.parseCommaSeparated((*Parser).parseEnumMember, TokenRBrace) {
		node.AddChild(member)
	}
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseEnumMember() *Node {
	node := p.startNode(KindEnumMember)
	node.Comment = p.declComment()
	tok := p.expectIdentifier()
	if tok == nil {
		return p.abandonNode(node)
	}
	node.Token = tok
	if p.check(TokenAssign) {
		p.advance()
		value := p.parseAssignExpression()
		if value != nil {
			node.AddChild(value)
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseTemplateDeclaration() *Node {
	node := p.startNode(KindTemplateDeclaration)
	node.Comment = p.declComment()
	p.expect(TokenTemplate)

	tok := p.expectIdentifier()
	if tok == nil {
		return p.finishNode(node)
	}
	node.Token = tok

	params := p.parseTemplateParameters()
	if params == nil {
		return p.finishNode(node)
	}
	node.AddChild(params)

	if p.check(TokenIf) {
		node.AddChild(p.parseConstraint())
	}

	if p.expect(TokenLBrace) == nil {
		return p.finishNode(node)
	}
	for !p.check(TokenRBrace) && p.moreTokens() {
		progress := p.mustProgress()
		node.AddChild(p.parseDeclaration())
		if !progress() {
			continue
		}
	}
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseConstraint() *Node {
	node := p.startNode(KindConstraint)
	p.expect(TokenIf)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}
	expr := p.parseExpression()
	if expr == nil {
		return p.abandonNode(node)
	}
	node.AddChild(expr)
	p.expect(TokenRParen)
	return p.finishNode(node)
}

// parseTemplateMixinDeclaration parses mixin Name!(args) ident; — the
// instantiation of a mixin template.
func (p *Parser) parseTemplateMixinDeclaration() *Node {
	node := p.startNode(KindTemplateMixinDeclaration)
	p.expect(TokenMixin)

	chain := p.parseIdentifierOrTemplateChain()
	if chain == nil {
		return p.finishNode(node)
	}
	node.AddChild(chain)

	if p.check(TokenIdent) {
		tok := p.advance()
		node.Token = &tok
	}

	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseUnittest() *Node {
	node := p.startNode(KindUnittest)
	node.Comment = p.declComment()
	p.expect(TokenUnittest)
	body := p.parseBlockStatement()
	if body == nil {
		return p.finishNode(node)
	}
	node.AddChild(body)
	return p.finishNode(node)
}

func (p *Parser) parseInvariant() *Node {
	node := p.startNode(KindInvariant)
	p.expect(TokenInvariant)
	if p.check(TokenLParen) {
		if p.peekN(1).Kind == TokenRParen {
			p.advance()
			p.advance()
		} else {
			p.advance()
			node.AddChild(p.parseAssertExpressionBody())
			p.expect(TokenRParen)
			p.expect(TokenSemicolon)
			return p.finishNode(node)
		}
	}
	node.AddChild(p.parseBlockStatement())
	return p.finishNode(node)
}

// parseAssertExpressionBody parses the condition-with-optional-message
// argument form shared by invariant(...) and the contract shorthands.
func (p *Parser) parseAssertExpressionBody() *Node {
	node := p.startNode(KindAssertExpression)
	cond := p.parseAssignExpression()
	if cond == nil {
		return p.abandonNode(node)
	}
	node.AddChild(cond)
	if p.check(TokenComma) {
		p.advance()
		node.AddChild(p.parseAssignExpression())
	}
	return p.finishNode(node)
}

// parseConstructor parses this(...) including the postblit this(this)
// form and templated constructors.
func (p *Parser) parseConstructor() *Node {
	if p.startsWith(TokenThis, TokenLParen, TokenThis, TokenRParen) {
		node := p.startNode(KindPostblit)
		p.advance()
		p.advance()
		p.advance()
		p.advance()
		p.parseFunctionTail(node)
		return p.finishNode(node)
	}

	node := p.startNode(KindConstructor)
	node.Comment = p.declComment()
	p.expect(TokenThis)

	if idx := p.peekPastParens(); idx >= 0 && idx < len(p.tokens) && p.tokens[idx].Kind == TokenLParen {
		node.AddChild(p.parseTemplateParameters())
	}

	params := p.parseParameters()
	if params == nil {
		return p.finishNode(node)
	}
	node.AddChild(params)

	p.parseFunctionTail(node)
	return p.finishNode(node)
}

func (p *Parser) parseDestructor(kind NodeKind) *Node {
	node := p.startNode(kind)
	p.expect(TokenTilde)
	p.expect(TokenThis)
	p.expect(TokenLParen)
	p.expect(TokenRParen)
	p.parseFunctionTail(node)
	return p.finishNode(node)
}

func (p *Parser) parseStaticConstructor(kind NodeKind) *Node {
	node := p.startNode(kind)
	p.expect(TokenStatic)
	p.expect(TokenThis)
	p.expect(TokenLParen)
	p.expect(TokenRParen)
	p.parseFunctionTail(node)
	return p.finishNode(node)
}

func (p *Parser) parseStaticDestructor(kind NodeKind) *Node {
	node := p.startNode(kind)
	p.expect(TokenStatic)
	p.expect(TokenTilde)
	p.expect(TokenThis)
	p.expect(TokenLParen)
	p.expect(TokenRParen)
	p.parseFunctionTail(node)
	return p.finishNode(node)
}

// parseFunctionTail parses the attributes, constraint, and body (or
// semicolon) that end every function-like declaration.
func (p *Parser) parseFunctionTail(node *Node) {
	for {
		attr := p.parseMemberFunctionAttribute()
		if attr == nil {
			break
		}
		node.AddChild(attr)
	}

	if p.check(TokenIf) {
		node.AddChild(p.parseConstraint())
	}

	if p.check(TokenSemicolon) {
		p.advance()
		return
	}

	node.AddChild(p.parseFunctionBody())
}

// parseMemberFunctionAttribute parses one attribute allowed after a
// parameter list, or returns nil.
func (p *Parser) parseMemberFunctionAttribute() *Node {
	switch p.peek().Kind {
	case TokenConst, TokenImmutable, TokenInout, TokenShared,
		TokenPure, TokenNothrow, TokenReturn, TokenScope, TokenRef:
		node := p.startNode(KindMemberFunctionAttribute)
		tok := p.advance()
		node.Token = &tok
		return p.finishNode(node)
	case TokenAt:
		node := p.startNode(KindMemberFunctionAttribute)
		node.AddChild(p.parseUserDefinedAttribute())
		return p.finishNode(node)
	}
	return nil
}

// parseFunctionBody parses contracts followed by a do/body block, a
// plain block, or nothing at all when the body is missing. A missing
// body still yields a partial node so outline tooling keeps working on
// files mid-edit.
func (p *Parser) parseFunctionBody() *Node {
	node := p.startNode(KindFunctionBody)

	for {
		switch p.peek().Kind {
		case TokenIn:
			node.AddChild(p.parseInContract())
			continue
		case TokenOut:
			node.AddChild(p.parseOutContract())
			continue
		case TokenDo, TokenBody:
			body := p.startNode(KindBodyStatement)
			if p.check(TokenBody) {
				p.warn("the body keyword is deprecated, use do instead")
			}
			p.advance()
			body.AddChild(p.parseBlockStatement())
			node.AddChild(p.finishNode(body))
			return p.finishNode(node)
		case TokenLBrace:
			node.AddChild(p.parseBlockStatement())
			return p.finishNode(node)
		case TokenSemicolon:
			p.advance()
			return p.finishNode(node)
		default:
			p.errorNoResync("expected function body, found " + p.peek().Kind.String())
			return p.finishNode(node)
		}
	}
}

func (p *Parser) parseInContract() *Node {
	node := p.startNode(KindInContract)
	p.expect(TokenIn)
	if p.check(TokenLParen) {
		p.advance()
		node.AddChild(p.parseAssertExpressionBody())
		p.expect(TokenRParen)
		return p.finishNode(node)
	}
	node.AddChild(p.parseBlockStatement())
	return p.finishNode(node)
}

// parseOutContract handles out (ident) { ... }, out (; expr),
// out (ident; expr) and the bare block form.
func (p *Parser) parseOutContract() *Node {
	node := p.startNode(KindOutContract)
	p.expect(TokenOut)

	if p.check(TokenLParen) {
		p.advance()
		if p.check(TokenIdent) {
			tok := p.advance()
			node.Token = &tok
		}
		if p.check(TokenSemicolon) {
			p.advance()
			node.AddChild(p.parseAssertExpressionBody())
			p.expect(TokenRParen)
			return p.finishNode(node)
		}
		p.expect(TokenRParen)
	}

	node.AddChild(p.parseBlockStatement())
	return p.finishNode(node)
}

// parseTypeLedDeclaration parses declarations that begin with a type:
// variables and functions. The token after the name decides which.
func (p *Parser) parseTypeLedDeclaration() *Node {
	t := p.parseType()
	if t == nil {
		return p.errorNode("expected declaration, found " + p.peek().Kind.String())
	}

	nameTok := p.expectIdentifier()
	if nameTok == nil {
		return nil
	}

	if p.check(TokenLParen) {
		return p.parseFunctionDeclaration(t, nameTok)
	}

	node := p.alloc.NewNode(KindVariableDeclaration)
	node.Span.Start = t.Span.Start
	node.Comment = p.declComment()
	node.AddChild(t)
	p.parseDeclaratorsNamed(node, nameTok)
	return p.finishNode(node)
}

func (p *Parser) parseDeclarators(node *Node) {
	nameTok := p.expectIdentifier()
	if nameTok == nil {
		return
	}
	p.parseDeclaratorsNamed(node, nameTok)
}

func (p *Parser) parseDeclaratorsNamed(node *Node, first *Token) {
	decl := p.parseDeclaratorRest(first)
	node.AddChild(decl)

	for p.check(TokenComma) {
		p.advance()
		tok := p.expectIdentifier()
		if tok == nil {
			break
		}
		node.AddChild(p.parseDeclaratorRest(tok))
	}

	p.expect(TokenSemicolon)
}

func (p *Parser) parseDeclaratorRest(name *Token) *Node {
	node := p.alloc.NewNode(KindDeclarator)
	node.Span = name.Span
	node.Token = name

	// C-style array declarator: int x[3];
	for p.check(TokenLBracket) {
		p.warn("C-style array declaration, use the type suffix form instead")
		suffix := p.parseBracketTypeSuffix()
		if suffix == nil {
			break
		}
		node.AddChild(suffix)
	}

	if p.check(TokenAssign) {
		p.advance()
		node.AddChild(p.parseInitializer())
	}

	return p.finishNode(node)
}

func (p *Parser) parseInitializer() *Node {
	if p.check(TokenVoid) && (p.peekN(1).Kind == TokenSemicolon || p.peekN(1).Kind == TokenComma) {
		node := p.startNode(KindVoidInitializer)
		p.advance()
		return p.finishNode(node)
	}
	node := p.startNode(KindInitializer)
	expr := p.parseAssignExpression()
	if expr == nil {
		return p.abandonNode(node)
	}
	node.AddChild(expr)
	return p.finishNode(node)
}

// parseAutoDeclaration parses name = value pairs after a run of storage
// classes that carried no explicit type.
func (p *Parser) parseAutoDeclaration() *Node {
	node := p.startNode(KindAutoDeclaration)
	node.Comment = p.declComment()
	p.parseAutoDeclarationParts(node)
	return p.finishNode(node)
}

func (p *Parser) parseAutoDeclarationParts(node *Node) {
	for {
		part := p.startNode(KindAutoDeclarationPart)
		tok := p.expectIdentifier()
		if tok == nil {
			p.abandonNode(part)
			break
		}
		part.Token = tok
		if p.check(TokenLParen) {
			part.AddChild(p.parseTemplateParameters())
		}
		if p.expect(TokenAssign) == nil {
			node.AddChild(p.finishNode(part))
			break
		}
		part.AddChild(p.parseInitializer())
		node.AddChild(p.finishNode(part))
		if !p.check(TokenComma) {
			break
		}
		p.advance()
	}
	p.expect(TokenSemicolon)
}

// parseFunctionDeclaration parses the remainder of a function once the
// return type and name are known. A second parameter list means the
// first was template parameters.
func (p *Parser) parseFunctionDeclaration(returnType *Node, name *Token) *Node {
	node := p.alloc.NewNode(KindFunctionDeclaration)
	node.Span.Start = returnType.Span.Start
	node.Comment = p.declComment()
	node.AddChild(returnType)
	node.Token = name

	if idx := p.peekPastParens(); idx >= 0 && idx < len(p.tokens) && p.tokens[idx].Kind == TokenLParen {
		node.AddChild(p.parseTemplateParameters())
	}

	params := p.parseParameters()
	if params == nil {
		return p.finishNode(node)
	}
	node.AddChild(params)

	p.parseFunctionTail(node)
	return p.finishNode(node)
}

func (p *Parser) parsePragmaDeclaration() *Node {
	node := p.startNode(KindPragmaDeclaration)
	expr := p.parsePragmaExpression()
	if expr == nil {
		return p.finishNode(node)
	}
	node.AddChild(expr)

	if p.check(TokenSemicolon) {
		p.advance()
		return p.finishNode(node)
	}
	node.AddChild(p.parseDeclaration())
	return p.finishNode(node)
}

func (p *Parser) parsePragmaExpression() *Node {
	node := p.startNode(KindPragmaExpression)
	p.expect(TokenPragma)
	if p.expect(TokenLParen) == nil {
		return p.abandonNode(node)
	}
	tok := p.expectIdentifier()
	if tok == nil {
		return p.finishNode(node)
	}
	node.Token = tok
	for p.check(TokenComma) {
		p.advance()
		node.AddChild(p.parseAssignExpression())
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

// parseConditionalDeclaration parses version/debug/static if applied to
// declarations, with single, braced, and colon bodies.
func (p *Parser) parseConditionalDeclaration() *Node {
	node := p.startNode(KindConditionalDeclaration)
	cond := p.parseCompileCondition()
	if cond == nil {
		return p.finishNode(node)
	}
	node.AddChild(cond)

	p.parseConditionalBody(node)

	if p.check(TokenElse) {
		p.advance()
		p.parseConditionalBody(node)
	}

	return p.finishNode(node)
}

func (p *Parser) parseConditionalBody(node *Node) {
	switch p.peek().Kind {
	case TokenLBrace:
		p.advance()
		for !p.check(TokenRBrace) && p.moreTokens() {
			progress := p.mustProgress()
			node.AddChild(p.parseDeclaration())
			if !progress() {
				continue
			}
		}
		p.expect(TokenRBrace)
	case TokenColon:
		p.advance()
		for !p.check(TokenRBrace) && !p.check(TokenElse) && p.moreTokens() {
			progress := p.mustProgress()
			node.AddChild(p.parseDeclaration())
			if !progress() {
				continue
			}
		}
	default:
		node.AddChild(p.parseDeclaration())
	}
}

func (p *Parser) parseVersionSpecification() *Node {
	node := p.startNode(KindVersionSpecification)
	p.expect(TokenVersion)
	p.expect(TokenAssign)
	switch p.peek().Kind {
	case TokenIdent, TokenIntLiteral:
		tok := p.advance()
		node.Token = &tok
	default:
		p.error("expected identifier or integer after version =")
		return p.finishNode(node)
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseDebugSpecification() *Node {
	node := p.startNode(KindDebugSpecification)
	p.expect(TokenDebug)
	p.expect(TokenAssign)
	switch p.peek().Kind {
	case TokenIdent, TokenIntLiteral:
		tok := p.advance()
		node.Token = &tok
	default:
		p.error("expected identifier or integer after debug =")
		return p.finishNode(node)
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseStaticForeachDeclaration() *Node {
	node := p.startNode(KindStaticForeachDeclaration)
	p.expect(TokenStatic)
	fe := p.parseForeachStatement()
	if fe == nil {
		return p.finishNode(node)
	}
	node.AddChild(fe)
	return p.finishNode(node)
}

func (p *Parser) parseStaticAssertDeclaration() *Node {
	node := p.startNode(KindStaticAssertDeclaration)
	stmt := p.parseStaticAssertStatement()
	if stmt == nil {
		return p.finishNode(node)
	}
	node.AddChild(stmt)
	return p.finishNode(node)
}
