// Package outline extracts a symbol tree from a parsed module. The tree
// mirrors what an editor shows in its outline view: one entry per named
// declaration, nested the way the source nests them. Error nodes and
// half-parsed declarations are skipped, not fatal, so an outline is
// available even while the file is being edited.
package outline

import (
	"strings"

	"github.com/virens/dlt/d/parser"
)

type SymbolKind int

const (
	SymbolModule SymbolKind = iota
	SymbolClass
	SymbolInterface
	SymbolStruct
	SymbolUnion
	SymbolEnum
	SymbolMember
	SymbolFunction
	SymbolVariable
	SymbolTemplate
	SymbolAlias
	SymbolUnittest
)

var symbolKindNames = map[SymbolKind]string{
	SymbolModule:    "module",
	SymbolClass:     "class",
	SymbolInterface: "interface",
	SymbolStruct:    "struct",
	SymbolUnion:     "union",
	SymbolEnum:      "enum",
	SymbolMember:    "member",
	SymbolFunction:  "function",
	SymbolVariable:  "variable",
	SymbolTemplate:  "template",
	SymbolAlias:     "alias",
	SymbolUnittest:  "unittest",
}

func (k SymbolKind) String() string {
	if name, ok := symbolKindNames[k]; ok {
		return name
	}
	return "unknown"
}

type Symbol struct {
	Name     string      `json:"name"`
	Detail   string      `json:"detail,omitempty"`
	Kind     SymbolKind  `json:"-"`
	KindName string      `json:"kind"`
	Span     parser.Span `json:"span"`
	Children []*Symbol   `json:"children,omitempty"`
}

// Build walks a Module node into its symbol tree. src is the source the
// module was parsed from; details are sliced out of it by span.
func Build(src []byte, module *parser.Node) []*Symbol {
	if module == nil {
		return nil
	}
	b := &builder{src: src}
	return b.declarations(module.Children)
}

type builder struct {
	src []byte
}

func (b *builder) declarations(nodes []*parser.Node) []*Symbol {
	var symbols []*Symbol
	for _, n := range nodes {
		symbols = append(symbols, b.declaration(n)...)
	}
	return symbols
}

// declaration maps one declaration node to zero or more symbols. A
// Declaration wrapper and a ConditionalDeclaration are transparent: the
// symbols of their children surface at the current level.
func (b *builder) declaration(n *parser.Node) []*Symbol {
	if n == nil {
		return nil
	}

	switch n.Kind {
	case parser.KindDeclaration:
		return b.declarations(n.Children)

	case parser.KindConditionalDeclaration:
		return b.declarations(n.Children)

	case parser.KindModuleDeclaration:
		name := "module"
		if chain := n.FirstChildOfKind(parser.KindIdentifierChain); chain != nil {
			name = chainName(chain)
		}
		return []*Symbol{b.symbol(name, "", SymbolModule, n, nil)}

	case parser.KindClassDeclaration:
		return b.aggregate(n, SymbolClass)
	case parser.KindInterfaceDeclaration:
		return b.aggregate(n, SymbolInterface)
	case parser.KindStructDeclaration:
		return b.aggregate(n, SymbolStruct)
	case parser.KindUnionDeclaration:
		return b.aggregate(n, SymbolUnion)

	case parser.KindAnonymousAggregate:
		// Members of an anonymous struct or union land in the
		// enclosing scope.
		if body := n.FirstChildOfKind(parser.KindStructBody); body != nil {
			return b.declarations(body.Children)
		}
		return nil

	case parser.KindEnumDeclaration:
		children := b.enumMembers(n)
		return []*Symbol{b.symbol(n.TokenLiteral(), "", SymbolEnum, n, children)}

	case parser.KindAnonymousEnumDeclaration:
		// Members of an anonymous enum live in the enclosing scope.
		return b.enumMembers(n)

	case parser.KindTemplateDeclaration:
		children := b.declarations(n.Children)
		detail := ""
		if params := n.FirstChildOfKind(parser.KindTemplateParameters); params != nil {
			detail = b.text(params)
		}
		return []*Symbol{b.symbol(n.TokenLiteral(), detail, SymbolTemplate, n, children)}

	case parser.KindFunctionDeclaration:
		return []*Symbol{b.symbol(n.TokenLiteral(), b.functionDetail(n), SymbolFunction, n, nil)}

	case parser.KindConstructor:
		return []*Symbol{b.symbol("this", b.functionDetail(n), SymbolFunction, n, nil)}
	case parser.KindPostblit:
		return []*Symbol{b.symbol("this(this)", "", SymbolFunction, n, nil)}
	case parser.KindDestructor:
		return []*Symbol{b.symbol("~this", "", SymbolFunction, n, nil)}
	case parser.KindStaticConstructor:
		return []*Symbol{b.symbol("static this", "", SymbolFunction, n, nil)}
	case parser.KindStaticDestructor:
		return []*Symbol{b.symbol("static ~this", "", SymbolFunction, n, nil)}
	case parser.KindSharedStaticConstructor:
		return []*Symbol{b.symbol("shared static this", "", SymbolFunction, n, nil)}
	case parser.KindSharedStaticDestructor:
		return []*Symbol{b.symbol("shared static ~this", "", SymbolFunction, n, nil)}
	case parser.KindInvariant:
		return []*Symbol{b.symbol("invariant", "", SymbolFunction, n, nil)}

	case parser.KindUnittest:
		return []*Symbol{b.symbol("unittest", "", SymbolUnittest, n, nil)}

	case parser.KindVariableDeclaration:
		return b.variables(n)

	case parser.KindAutoDeclaration:
		var symbols []*Symbol
		for _, part := range n.ChildrenOfKind(parser.KindAutoDeclarationPart) {
			symbols = append(symbols, b.symbol(part.TokenLiteral(), "", SymbolVariable, part, nil))
		}
		return symbols

	case parser.KindAliasDeclaration:
		return b.aliases(n)
	case parser.KindAliasThisDeclaration:
		return []*Symbol{b.symbol(n.TokenLiteral()+" this", "", SymbolAlias, n, nil)}
	}

	return nil
}

func (b *builder) aggregate(n *parser.Node, kind SymbolKind) []*Symbol {
	name := n.TokenLiteral()
	if name == "" {
		return nil
	}
	var children []*Symbol
	if body := n.FirstChildOfKind(parser.KindStructBody); body != nil {
		children = b.declarations(body.Children)
	}
	detail := ""
	if params := n.FirstChildOfKind(parser.KindTemplateParameters); params != nil {
		detail = b.text(params)
	}
	return []*Symbol{b.symbol(name, detail, kind, n, children)}
}

func (b *builder) enumMembers(n *parser.Node) []*Symbol {
	body := n.FirstChildOfKind(parser.KindEnumBody)
	if body == nil {
		return nil
	}
	var symbols []*Symbol
	for _, member := range body.ChildrenOfKind(parser.KindEnumMember) {
		symbols = append(symbols, b.symbol(member.TokenLiteral(), "", SymbolMember, member, nil))
	}
	return symbols
}

func (b *builder) variables(n *parser.Node) []*Symbol {
	detail := ""
	if t := n.FirstChildOfKind(parser.KindType); t != nil {
		detail = b.text(t)
	}
	var symbols []*Symbol
	for _, decl := range n.ChildrenOfKind(parser.KindDeclarator) {
		if decl.TokenLiteral() == "" {
			continue
		}
		symbols = append(symbols, b.symbol(decl.TokenLiteral(), detail, SymbolVariable, decl, nil))
	}
	return symbols
}

func (b *builder) aliases(n *parser.Node) []*Symbol {
	var symbols []*Symbol
	for _, init := range n.ChildrenOfKind(parser.KindAliasInitializer) {
		detail := ""
		if len(init.Children) > 0 {
			detail = b.text(init.Children[0])
		}
		symbols = append(symbols, b.symbol(init.TokenLiteral(), detail, SymbolAlias, init, nil))
	}
	if len(symbols) > 0 {
		return symbols
	}
	// Legacy alias Type name; form: the name sits on the declaration.
	if n.TokenLiteral() != "" {
		detail := ""
		if t := n.FirstChildOfKind(parser.KindType); t != nil {
			detail = b.text(t)
		}
		return []*Symbol{b.symbol(n.TokenLiteral(), detail, SymbolAlias, n, nil)}
	}
	return nil
}

func (b *builder) functionDetail(n *parser.Node) string {
	var parts []string
	if t := n.FirstChildOfKind(parser.KindType); t != nil {
		parts = append(parts, b.text(t))
	}
	if params := n.FirstChildOfKind(parser.KindParameters); params != nil {
		parts = append(parts, b.text(params))
	}
	return strings.Join(parts, " ")
}

func (b *builder) symbol(name, detail string, kind SymbolKind, n *parser.Node, children []*Symbol) *Symbol {
	return &Symbol{
		Name:     name,
		Detail:   detail,
		Kind:     kind,
		KindName: kind.String(),
		Span:     n.Span,
		Children: children,
	}
}

// text slices the verbatim source covered by a node's span, collapsed
// to a single line for display.
func (b *builder) text(n *parser.Node) string {
	start := n.Span.Start.Offset
	end := n.Span.End.Offset
	if start < 0 || end > len(b.src) || start >= end {
		return ""
	}
	return strings.Join(strings.Fields(string(b.src[start:end])), " ")
}

func chainName(chain *parser.Node) string {
	var parts []string
	for _, id := range chain.ChildrenOfKind(parser.KindIdentifier) {
		parts = append(parts, id.TokenLiteral())
	}
	return strings.Join(parts, ".")
}
