package parser

type NodeKind int

const (
	KindError NodeKind = iota

	// Module level
	KindModule
	KindModuleDeclaration
	KindImportDeclaration
	KindSingleImport
	KindImportBindings
	KindImportBind
	KindDeclaration
	KindAttributeDeclaration
	KindAttribute
	KindLinkageAttribute
	KindAlignAttribute
	KindDeprecated
	KindPragmaDeclaration
	KindPragmaExpression
	KindUserDefinedAttribute
	KindIdentifierChain

	// Compile-time conditionals
	KindVersionCondition
	KindDebugCondition
	KindStaticIfCondition
	KindConditionalDeclaration
	KindConditionalStatement
	KindVersionSpecification
	KindDebugSpecification
	KindStaticAssertDeclaration
	KindStaticAssertStatement
	KindStaticForeachDeclaration
	KindStaticForeachStatement

	// Aggregates
	KindClassDeclaration
	KindInterfaceDeclaration
	KindStructDeclaration
	KindUnionDeclaration
	KindBaseClassList
	KindBaseClass
	KindStructBody
	KindAnonymousAggregate
	KindEnumDeclaration
	KindEnumBody
	KindEnumMember
	KindAnonymousEnumDeclaration
	KindAliasThisDeclaration

	// Templates
	KindTemplateDeclaration
	KindTemplateParameters
	KindTemplateTypeParameter
	KindTemplateValueParameter
	KindTemplateAliasParameter
	KindTemplateTupleParameter
	KindTemplateThisParameter
	KindTemplateArguments
	KindTemplateArgument
	KindTemplateSingleArgument
	KindTemplateInstance
	KindConstraint
	KindTemplateMixinDeclaration
	KindMixinDeclaration

	// Functions and members
	KindFunctionDeclaration
	KindParameters
	KindParameter
	KindFunctionBody
	KindInContract
	KindOutContract
	KindBodyStatement
	KindConstructor
	KindDestructor
	KindPostblit
	KindStaticConstructor
	KindStaticDestructor
	KindSharedStaticConstructor
	KindSharedStaticDestructor
	KindInvariant
	KindUnittest
	KindMemberFunctionAttribute

	// Variables and aliases
	KindVariableDeclaration
	KindDeclarator
	KindInitializer
	KindVoidInitializer
	KindAutoDeclaration
	KindAutoDeclarationPart
	KindAliasDeclaration
	KindAliasInitializer

	// Statements
	KindBlockStatement
	KindDeclarationOrStatement
	KindExpressionStatement
	KindEmptyStatement
	KindIfStatement
	KindIfCondition
	KindWhileStatement
	KindDoStatement
	KindForStatement
	KindForeachStatement
	KindForeachType
	KindSwitchStatement
	KindFinalSwitchStatement
	KindCaseStatement
	KindCaseRangeStatement
	KindDefaultStatement
	KindReturnStatement
	KindBreakStatement
	KindContinueStatement
	KindGotoStatement
	KindWithStatement
	KindSynchronizedStatement
	KindTryStatement
	KindCatch
	KindLastCatch
	KindFinally
	KindThrowStatement
	KindScopeGuardStatement
	KindAsmStatement
	KindAsmInstruction
	KindLabeledStatement

	// Types
	KindType
	KindBaseType
	KindTypeConstructor
	KindTypeSuffix
	KindTypeofExpression
	KindVector
	KindIdentifierOrTemplateChain
	KindIdentifierOrTemplateInstance

	// Expressions
	KindCommaExpression
	KindAssignExpression
	KindTernaryExpression
	KindOrOrExpression
	KindAndAndExpression
	KindOrExpression
	KindXorExpression
	KindAndExpression
	KindEqualityExpression
	KindIdentityExpression
	KindInExpression
	KindRelationalExpression
	KindShiftExpression
	KindAddExpression
	KindMulExpression
	KindPowExpression
	KindUnaryExpression
	KindPostfixExpression
	KindCastExpression
	KindCastQualifier
	KindNewExpression
	KindNewAnonClassExpression
	KindDeleteExpression
	KindFunctionCallExpression
	KindArguments
	KindIndexExpression
	KindSliceExpression
	KindDotExpression
	KindIdentifier
	KindLiteral
	KindParenExpression
	KindArrayLiteral
	KindAssocArrayLiteral
	KindKeyValuePair
	KindFunctionLiteral
	KindLambdaExpression
	KindAssertExpression
	KindMixinExpression
	KindImportExpression
	KindTypeidExpression
	KindIsExpression
	KindTraitsExpression
	KindThisExpression
	KindSuperExpression
	KindDollarExpression
)

var nodeKindNames = map[NodeKind]string{
	KindError:                        "Error",
	KindModule:                       "Module",
	KindModuleDeclaration:            "ModuleDeclaration",
	KindImportDeclaration:            "ImportDeclaration",
	KindSingleImport:                 "SingleImport",
	KindImportBindings:               "ImportBindings",
	KindImportBind:                   "ImportBind",
	KindDeclaration:                  "Declaration",
	KindAttributeDeclaration:         "AttributeDeclaration",
	KindAttribute:                    "Attribute",
	KindLinkageAttribute:             "LinkageAttribute",
	KindAlignAttribute:               "AlignAttribute",
	KindDeprecated:                   "Deprecated",
	KindPragmaDeclaration:            "PragmaDeclaration",
	KindPragmaExpression:             "PragmaExpression",
	KindUserDefinedAttribute:         "UserDefinedAttribute",
	KindIdentifierChain:              "IdentifierChain",
	KindVersionCondition:             "VersionCondition",
	KindDebugCondition:               "DebugCondition",
	KindStaticIfCondition:            "StaticIfCondition",
	KindConditionalDeclaration:       "ConditionalDeclaration",
	KindConditionalStatement:         "ConditionalStatement",
	KindVersionSpecification:         "VersionSpecification",
	KindDebugSpecification:           "DebugSpecification",
	KindStaticAssertDeclaration:      "StaticAssertDeclaration",
	KindStaticAssertStatement:        "StaticAssertStatement",
	KindStaticForeachDeclaration:     "StaticForeachDeclaration",
	KindStaticForeachStatement:       "StaticForeachStatement",
	KindClassDeclaration:             "ClassDeclaration",
	KindInterfaceDeclaration:         "InterfaceDeclaration",
	KindStructDeclaration:            "StructDeclaration",
	KindUnionDeclaration:             "UnionDeclaration",
	KindBaseClassList:                "BaseClassList",
	KindBaseClass:                    "BaseClass",
	KindStructBody:                   "StructBody",
	KindAnonymousAggregate:           "AnonymousAggregate",
	KindEnumDeclaration:              "EnumDeclaration",
	KindEnumBody:                     "EnumBody",
	KindEnumMember:                   "EnumMember",
	KindAnonymousEnumDeclaration:     "AnonymousEnumDeclaration",
	KindAliasThisDeclaration:         "AliasThisDeclaration",
	KindTemplateDeclaration:          "TemplateDeclaration",
	KindTemplateParameters:           "TemplateParameters",
	KindTemplateTypeParameter:        "TemplateTypeParameter",
	KindTemplateValueParameter:       "TemplateValueParameter",
	KindTemplateAliasParameter:       "TemplateAliasParameter",
	KindTemplateTupleParameter:       "TemplateTupleParameter",
	KindTemplateThisParameter:        "TemplateThisParameter",
	KindTemplateArguments:            "TemplateArguments",
	KindTemplateArgument:             "TemplateArgument",
	KindTemplateSingleArgument:       "TemplateSingleArgument",
	KindTemplateInstance:             "TemplateInstance",
	KindConstraint:                   "Constraint",
	KindTemplateMixinDeclaration:     "TemplateMixinDeclaration",
	KindMixinDeclaration:             "MixinDeclaration",
	KindFunctionDeclaration:          "FunctionDeclaration",
	KindParameters:                   "Parameters",
	KindParameter:                    "Parameter",
	KindFunctionBody:                 "FunctionBody",
	KindInContract:                   "InContract",
	KindOutContract:                  "OutContract",
	KindBodyStatement:                "BodyStatement",
	KindConstructor:                  "Constructor",
	KindDestructor:                   "Destructor",
	KindPostblit:                     "Postblit",
	KindStaticConstructor:            "StaticConstructor",
	KindStaticDestructor:             "StaticDestructor",
	KindSharedStaticConstructor:      "SharedStaticConstructor",
	KindSharedStaticDestructor:       "SharedStaticDestructor",
	KindInvariant:                    "Invariant",
	KindUnittest:                     "Unittest",
	KindMemberFunctionAttribute:      "MemberFunctionAttribute",
	KindVariableDeclaration:          "VariableDeclaration",
	KindDeclarator:                   "Declarator",
	KindInitializer:                  "Initializer",
	KindVoidInitializer:              "VoidInitializer",
	KindAutoDeclaration:              "AutoDeclaration",
	KindAutoDeclarationPart:          "AutoDeclarationPart",
	KindAliasDeclaration:             "AliasDeclaration",
	KindAliasInitializer:             "AliasInitializer",
	KindBlockStatement:               "BlockStatement",
	KindDeclarationOrStatement:       "DeclarationOrStatement",
	KindExpressionStatement:          "ExpressionStatement",
	KindEmptyStatement:               "EmptyStatement",
	KindIfStatement:                  "IfStatement",
	KindIfCondition:                  "IfCondition",
	KindWhileStatement:               "WhileStatement",
	KindDoStatement:                  "DoStatement",
	KindForStatement:                 "ForStatement",
	KindForeachStatement:             "ForeachStatement",
	KindForeachType:                  "ForeachType",
	KindSwitchStatement:              "SwitchStatement",
	KindFinalSwitchStatement:         "FinalSwitchStatement",
	KindCaseStatement:                "CaseStatement",
	KindCaseRangeStatement:           "CaseRangeStatement",
	KindDefaultStatement:             "DefaultStatement",
	KindReturnStatement:              "ReturnStatement",
	KindBreakStatement:               "BreakStatement",
	KindContinueStatement:            "ContinueStatement",
	KindGotoStatement:                "GotoStatement",
	KindWithStatement:                "WithStatement",
	KindSynchronizedStatement:        "SynchronizedStatement",
	KindTryStatement:                 "TryStatement",
	KindCatch:                        "Catch",
	KindLastCatch:                    "LastCatch",
	KindFinally:                      "Finally",
	KindThrowStatement:               "ThrowStatement",
	KindScopeGuardStatement:          "ScopeGuardStatement",
	KindAsmStatement:                 "AsmStatement",
	KindAsmInstruction:               "AsmInstruction",
	KindLabeledStatement:             "LabeledStatement",
	KindType:                         "Type",
	KindBaseType:                     "BaseType",
	KindTypeConstructor:              "TypeConstructor",
	KindTypeSuffix:                   "TypeSuffix",
	KindTypeofExpression:             "TypeofExpression",
	KindVector:                       "Vector",
	KindIdentifierOrTemplateChain:    "IdentifierOrTemplateChain",
	KindIdentifierOrTemplateInstance: "IdentifierOrTemplateInstance",
	KindCommaExpression:              "CommaExpression",
	KindAssignExpression:             "AssignExpression",
	KindTernaryExpression:            "TernaryExpression",
	KindOrOrExpression:               "OrOrExpression",
	KindAndAndExpression:             "AndAndExpression",
	KindOrExpression:                 "OrExpression",
	KindXorExpression:                "XorExpression",
	KindAndExpression:                "AndExpression",
	KindEqualityExpression:           "EqualityExpression",
	KindIdentityExpression:           "IdentityExpression",
	KindInExpression:                 "InExpression",
	KindRelationalExpression:         "RelationalExpression",
	KindShiftExpression:              "ShiftExpression",
	KindAddExpression:                "AddExpression",
	KindMulExpression:                "MulExpression",
	KindPowExpression:                "PowExpression",
	KindUnaryExpression:              "UnaryExpression",
	KindPostfixExpression:            "PostfixExpression",
	KindCastExpression:               "CastExpression",
	KindCastQualifier:                "CastQualifier",
	KindNewExpression:                "NewExpression",
	KindNewAnonClassExpression:       "NewAnonClassExpression",
	KindDeleteExpression:             "DeleteExpression",
	KindFunctionCallExpression:       "FunctionCallExpression",
	KindArguments:                    "Arguments",
	KindIndexExpression:              "IndexExpression",
	KindSliceExpression:              "SliceExpression",
	KindDotExpression:                "DotExpression",
	KindIdentifier:                   "Identifier",
	KindLiteral:                      "Literal",
	KindParenExpression:              "ParenExpression",
	KindArrayLiteral:                 "ArrayLiteral",
	KindAssocArrayLiteral:            "AssocArrayLiteral",
	KindKeyValuePair:                 "KeyValuePair",
	KindFunctionLiteral:              "FunctionLiteral",
	KindLambdaExpression:             "LambdaExpression",
	KindAssertExpression:             "AssertExpression",
	KindMixinExpression:              "MixinExpression",
	KindImportExpression:             "ImportExpression",
	KindTypeidExpression:             "TypeidExpression",
	KindIsExpression:                 "IsExpression",
	KindTraitsExpression:             "TraitsExpression",
	KindThisExpression:               "ThisExpression",
	KindSuperExpression:              "SuperExpression",
	KindDollarExpression:             "DollarExpression",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Error struct {
	Message  string
	Expected []TokenKind
	Got      *Token
}

// Node is the single node representation for the whole tree: one NodeKind
// per nonterminal, children in document order. Token holds the verbatim
// leaf token where one exists (identifiers, literals, operators). Comment
// carries the doc comment attached to a declaration node.
type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
	Comment  string
	Error    *Error
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

func (n *Node) String() string {
	return n.stringIndent(0, false)
}

func (n *Node) StringWithPositions() string {
	return n.stringIndent(0, true)
}

func (n *Node) stringIndent(indent int, showPositions bool) string {
	prefix := ""
	for i := 0; i < indent; i++ {
		prefix += "  "
	}

	result := prefix + n.Kind.String()
	if showPositions {
		result += " [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]"
	}
	if n.Token != nil {
		result += " " + n.Token.Literal
	}
	if n.Error != nil {
		result += " ERROR: " + n.Error.Message
	}
	result += "\n"

	for _, child := range n.Children {
		result += child.stringIndent(indent+1, showPositions)
	}
	return result
}
