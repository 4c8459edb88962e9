package parser

import "strconv"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenLineComment
	TokenNestingComment

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral

	// Keywords
	TokenAbstract
	TokenAlias
	TokenAlign
	TokenAsm
	TokenAssert
	TokenAuto
	TokenBody
	TokenBool
	TokenBreak
	TokenByte
	TokenCase
	TokenCast
	TokenCatch
	TokenChar
	TokenClass
	TokenConst
	TokenContinue
	TokenDChar
	TokenDebug
	TokenDefault
	TokenDelegate
	TokenDelete
	TokenDeprecated
	TokenDo
	TokenDouble
	TokenElse
	TokenEnum
	TokenExport
	TokenExtern
	TokenFalse
	TokenFinal
	TokenFinally
	TokenFloat
	TokenFor
	TokenForeach
	TokenForeachReverse
	TokenFunction
	TokenGoto
	TokenIf
	TokenImmutable
	TokenImport
	TokenIn
	TokenInout
	TokenInt
	TokenInterface
	TokenInvariant
	TokenIs
	TokenLazy
	TokenLong
	TokenMixin
	TokenModule
	TokenNew
	TokenNothrow
	TokenNull
	TokenOut
	TokenOverride
	TokenPackage
	TokenPragma
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenPure
	TokenReal
	TokenRef
	TokenReturn
	TokenScope
	TokenShared
	TokenShort
	TokenStatic
	TokenStruct
	TokenSuper
	TokenSwitch
	TokenSynchronized
	TokenTemplate
	TokenThis
	TokenThrow
	TokenTrue
	TokenTry
	TokenTypeid
	TokenTypeof
	TokenUByte
	TokenUInt
	TokenULong
	TokenUnion
	TokenUnittest
	TokenUShort
	TokenVersion
	TokenVoid
	TokenWChar
	TokenWhile
	TokenWith
	TokenFile
	TokenFileFullPath
	TokenModuleKw
	TokenLine
	TokenFunctionKw
	TokenPrettyFunction
	TokenGShared
	TokenTraits
	TokenVector
	TokenParameters

	// Operators and punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenColon
	TokenComma
	TokenDot
	TokenDotDot
	TokenEllipsis
	TokenQuestion
	TokenAt
	TokenDollar

	TokenAssign
	TokenEQ
	TokenNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenAndAnd
	TokenOrOr
	TokenNot
	TokenAmp
	TokenPipe
	TokenCaret
	TokenTilde
	TokenShl
	TokenShr
	TokenUShr
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenPow
	TokenIncrement
	TokenDecrement
	TokenFatArrow
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAmpAssign
	TokenPipeAssign
	TokenCaretAssign
	TokenTildeAssign
	TokenPowAssign
	TokenShlAssign
	TokenShrAssign
	TokenUShrAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:            "EOF",
	TokenError:          "Error",
	TokenWhitespace:     "Whitespace",
	TokenComment:        "Comment",
	TokenLineComment:    "LineComment",
	TokenNestingComment: "NestingComment",
	TokenIdent:          "Identifier",
	TokenIntLiteral:     "IntLiteral",
	TokenFloatLiteral:   "FloatLiteral",
	TokenCharLiteral:    "CharLiteral",
	TokenStringLiteral:  "StringLiteral",
	TokenAbstract:       "abstract",
	TokenAlias:          "alias",
	TokenAlign:          "align",
	TokenAsm:            "asm",
	TokenAssert:         "assert",
	TokenAuto:           "auto",
	TokenBody:           "body",
	TokenBool:           "bool",
	TokenBreak:          "break",
	TokenByte:           "byte",
	TokenCase:           "case",
	TokenCast:           "cast",
	TokenCatch:          "catch",
	TokenChar:           "char",
	TokenClass:          "class",
	TokenConst:          "const",
	TokenContinue:       "continue",
	TokenDChar:          "dchar",
	TokenDebug:          "debug",
	TokenDefault:        "default",
	TokenDelegate:       "delegate",
	TokenDelete:         "delete",
	TokenDeprecated:     "deprecated",
	TokenDo:             "do",
	TokenDouble:         "double",
	TokenElse:           "else",
	TokenEnum:           "enum",
	TokenExport:         "export",
	TokenExtern:         "extern",
	TokenFalse:          "false",
	TokenFinal:          "final",
	TokenFinally:        "finally",
	TokenFloat:          "float",
	TokenFor:            "for",
	TokenForeach:        "foreach",
	TokenForeachReverse: "foreach_reverse",
	TokenFunction:       "function",
	TokenGoto:           "goto",
	TokenIf:             "if",
	TokenImmutable:      "immutable",
	TokenImport:         "import",
	TokenIn:             "in",
	TokenInout:          "inout",
	TokenInt:            "int",
	TokenInterface:      "interface",
	TokenInvariant:      "invariant",
	TokenIs:             "is",
	TokenLazy:           "lazy",
	TokenLong:           "long",
	TokenMixin:          "mixin",
	TokenModule:         "module",
	TokenNew:            "new",
	TokenNothrow:        "nothrow",
	TokenNull:           "null",
	TokenOut:            "out",
	TokenOverride:       "override",
	TokenPackage:        "package",
	TokenPragma:         "pragma",
	TokenPrivate:        "private",
	TokenProtected:      "protected",
	TokenPublic:         "public",
	TokenPure:           "pure",
	TokenReal:           "real",
	TokenRef:            "ref",
	TokenReturn:         "return",
	TokenScope:          "scope",
	TokenShared:         "shared",
	TokenShort:          "short",
	TokenStatic:         "static",
	TokenStruct:         "struct",
	TokenSuper:          "super",
	TokenSwitch:         "switch",
	TokenSynchronized:   "synchronized",
	TokenTemplate:       "template",
	TokenThis:           "this",
	TokenThrow:          "throw",
	TokenTrue:           "true",
	TokenTry:            "try",
	TokenTypeid:         "typeid",
	TokenTypeof:         "typeof",
	TokenUByte:          "ubyte",
	TokenUInt:           "uint",
	TokenULong:          "ulong",
	TokenUnion:          "union",
	TokenUnittest:       "unittest",
	TokenUShort:         "ushort",
	TokenVersion:        "version",
	TokenVoid:           "void",
	TokenWChar:          "wchar",
	TokenWhile:          "while",
	TokenWith:           "with",
	TokenFile:           "__FILE__",
	TokenFileFullPath:   "__FILE_FULL_PATH__",
	TokenModuleKw:       "__MODULE__",
	TokenLine:           "__LINE__",
	TokenFunctionKw:     "__FUNCTION__",
	TokenPrettyFunction: "__PRETTY_FUNCTION__",
	TokenGShared:        "__gshared",
	TokenTraits:         "__traits",
	TokenVector:         "__vector",
	TokenParameters:     "__parameters",
	TokenLParen:         "(",
	TokenRParen:         ")",
	TokenLBrace:         "{",
	TokenRBrace:         "}",
	TokenLBracket:       "[",
	TokenRBracket:       "]",
	TokenSemicolon:      ";",
	TokenColon:          ":",
	TokenComma:          ",",
	TokenDot:            ".",
	TokenDotDot:         "..",
	TokenEllipsis:       "...",
	TokenQuestion:       "?",
	TokenAt:             "@",
	TokenDollar:         "$",
	TokenAssign:         "=",
	TokenEQ:             "==",
	TokenNE:             "!=",
	TokenLT:             "<",
	TokenLE:             "<=",
	TokenGT:             ">",
	TokenGE:             ">=",
	TokenAndAnd:         "&&",
	TokenOrOr:           "||",
	TokenNot:            "!",
	TokenAmp:            "&",
	TokenPipe:           "|",
	TokenCaret:          "^",
	TokenTilde:          "~",
	TokenShl:            "<<",
	TokenShr:            ">>",
	TokenUShr:           ">>>",
	TokenPlus:           "+",
	TokenMinus:          "-",
	TokenStar:           "*",
	TokenSlash:          "/",
	TokenPercent:        "%",
	TokenPow:            "^^",
	TokenIncrement:      "++",
	TokenDecrement:      "--",
	TokenFatArrow:       "=>",
	TokenPlusAssign:     "+=",
	TokenMinusAssign:    "-=",
	TokenStarAssign:     "*=",
	TokenSlashAssign:    "/=",
	TokenPercentAssign:  "%=",
	TokenAmpAssign:      "&=",
	TokenPipeAssign:     "|=",
	TokenCaretAssign:    "^=",
	TokenTildeAssign:    "~=",
	TokenPowAssign:      "^^=",
	TokenShlAssign:      "<<=",
	TokenShrAssign:      ">>=",
	TokenUShrAssign:     ">>>=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is one element of the stream the parser consumes. Comment carries
// the text of a doc comment that immediately preceded the token, if any.
type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
	Comment string
}

var keywords = map[string]TokenKind{
	"abstract":            TokenAbstract,
	"alias":               TokenAlias,
	"align":               TokenAlign,
	"asm":                 TokenAsm,
	"assert":              TokenAssert,
	"auto":                TokenAuto,
	"body":                TokenBody,
	"bool":                TokenBool,
	"break":               TokenBreak,
	"byte":                TokenByte,
	"case":                TokenCase,
	"cast":                TokenCast,
	"catch":               TokenCatch,
	"char":                TokenChar,
	"class":               TokenClass,
	"const":               TokenConst,
	"continue":            TokenContinue,
	"dchar":               TokenDChar,
	"debug":               TokenDebug,
	"default":             TokenDefault,
	"delegate":            TokenDelegate,
	"delete":              TokenDelete,
	"deprecated":          TokenDeprecated,
	"do":                  TokenDo,
	"double":              TokenDouble,
	"else":                TokenElse,
	"enum":                TokenEnum,
	"export":              TokenExport,
	"extern":              TokenExtern,
	"false":               TokenFalse,
	"final":               TokenFinal,
	"finally":             TokenFinally,
	"float":               TokenFloat,
	"for":                 TokenFor,
	"foreach":             TokenForeach,
	"foreach_reverse":     TokenForeachReverse,
	"function":            TokenFunction,
	"goto":                TokenGoto,
	"if":                  TokenIf,
	"immutable":           TokenImmutable,
	"import":              TokenImport,
	"in":                  TokenIn,
	"inout":               TokenInout,
	"int":                 TokenInt,
	"interface":           TokenInterface,
	"invariant":           TokenInvariant,
	"is":                  TokenIs,
	"lazy":                TokenLazy,
	"long":                TokenLong,
	"mixin":               TokenMixin,
	"module":              TokenModule,
	"new":                 TokenNew,
	"nothrow":             TokenNothrow,
	"null":                TokenNull,
	"out":                 TokenOut,
	"override":            TokenOverride,
	"package":             TokenPackage,
	"pragma":              TokenPragma,
	"private":             TokenPrivate,
	"protected":           TokenProtected,
	"public":              TokenPublic,
	"pure":                TokenPure,
	"real":                TokenReal,
	"ref":                 TokenRef,
	"return":              TokenReturn,
	"scope":               TokenScope,
	"shared":              TokenShared,
	"short":               TokenShort,
	"static":              TokenStatic,
	"struct":              TokenStruct,
	"super":               TokenSuper,
	"switch":              TokenSwitch,
	"synchronized":        TokenSynchronized,
	"template":            TokenTemplate,
	"this":                TokenThis,
	"throw":               TokenThrow,
	"true":                TokenTrue,
	"try":                 TokenTry,
	"typeid":              TokenTypeid,
	"typeof":              TokenTypeof,
	"ubyte":               TokenUByte,
	"uint":                TokenUInt,
	"ulong":               TokenULong,
	"union":               TokenUnion,
	"unittest":            TokenUnittest,
	"ushort":              TokenUShort,
	"version":             TokenVersion,
	"void":                TokenVoid,
	"wchar":               TokenWChar,
	"while":               TokenWhile,
	"with":                TokenWith,
	"__FILE__":            TokenFile,
	"__FILE_FULL_PATH__":  TokenFileFullPath,
	"__MODULE__":          TokenModuleKw,
	"__LINE__":            TokenLine,
	"__FUNCTION__":        TokenFunctionKw,
	"__PRETTY_FUNCTION__": TokenPrettyFunction,
	"__gshared":           TokenGShared,
	"__traits":            TokenTraits,
	"__vector":            TokenVector,
	"__parameters":        TokenParameters,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

// IsBasicType reports whether the kind names one of the built-in types.
func (k TokenKind) IsBasicType() bool {
	switch k {
	case TokenBool, TokenByte, TokenUByte, TokenShort, TokenUShort,
		TokenInt, TokenUInt, TokenLong, TokenULong,
		TokenChar, TokenWChar, TokenDChar,
		TokenFloat, TokenDouble, TokenReal, TokenVoid:
		return true
	}
	return false
}

// IsTypeConstructor reports whether the kind is one of the qualifier
// keywords that can wrap a type, as in immutable(char)[].
func (k TokenKind) IsTypeConstructor() bool {
	switch k {
	case TokenConst, TokenImmutable, TokenInout, TokenShared:
		return true
	}
	return false
}

// IsLiteral reports whether the kind is a literal token class, including
// the keyword literals.
func (k TokenKind) IsLiteral() bool {
	switch k {
	case TokenIntLiteral, TokenFloatLiteral, TokenCharLiteral,
		TokenStringLiteral, TokenTrue, TokenFalse, TokenNull,
		TokenFile, TokenFileFullPath, TokenModuleKw, TokenLine,
		TokenFunctionKw, TokenPrettyFunction:
		return true
	}
	return false
}

// IsAssignOperator reports whether the kind is one of the assignment
// operators, simple or compound.
func (k TokenKind) IsAssignOperator() bool {
	switch k {
	case TokenAssign, TokenPlusAssign, TokenMinusAssign, TokenStarAssign,
		TokenSlashAssign, TokenPercentAssign, TokenAmpAssign,
		TokenPipeAssign, TokenCaretAssign, TokenTildeAssign,
		TokenPowAssign, TokenShlAssign, TokenShrAssign, TokenUShrAssign:
		return true
	}
	return false
}
