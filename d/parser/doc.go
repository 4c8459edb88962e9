// Package parser provides an error-tolerant recursive descent parser for
// D source code.
//
// # Overview
//
// The parser consumes a complete token slice and produces a syntax tree
// whose shape follows the D grammar one node kind per nonterminal. It is
// written for IDE-like tooling where incomplete or malformed input is the
// normal case: a parse always yields a Module node, and damage is kept
// local through resynchronization instead of aborting the file.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Source    │────▶│   Lexer     │────▶│   Parser    │
//	│  (bytes)    │     │  (tokens)   │     │   (AST)     │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                           │                   │
//	                           ▼                   ▼
//	                    ┌─────────────┐     ┌─────────────┐
//	                    │ Doc comment │     │  Bookmarks  │
//	                    │ attachment  │     │  + oracle   │
//	                    └─────────────┘     └─────────────┘
//
// # Entry Points
//
//	// ParseModule tokenizes and parses a whole file.
//	func ParseModule(src []byte, opts ...Option) (*Node, *Parser)
//
//	// ParseTokens parses an already tokenized file.
//	func ParseTokens(tokens []Token, opts ...Option) (*Node, *Parser)
//
//	// ParseExpressionSource and ParseStatementSource parse snippets,
//	// for REPL-style tooling and tests.
//	func ParseExpressionSource(src []byte, opts ...Option) (*Node, *Parser)
//	func ParseStatementSource(src []byte, opts ...Option) (*Node, *Parser)
//
// The returned Parser carries the diagnostic counters; the returned Node
// is never nil for ParseModule and ParseTokens.
//
// # Disambiguation
//
// D cannot be parsed with fixed lookahead. Statement versus declaration,
// type versus expression, lambda versus parenthesized expression, and
// associative versus ordinary array literals are decided by a set of
// predicates that either inspect a bounded token window or run a
// bookmarked trial parse:
//
//	setBookmark   saves the cursor and silences diagnostics
//	goToBookmark  rolls back, discarding everything since the save
//	abandonBookmark  keeps the cursor, committing the speculation
//
// Rolled-back speculation is invisible: no diagnostics escape and the
// cursor is exactly where it was. Ties between a declaration and an
// expression reading resolve toward the declaration, matching the
// language definition.
//
// # Error Recovery
//
// Errors never panic and never stop the parse. The reporting path skips
// ahead to the next ;, }, ), or ] so one mistake produces one message,
// and rules that lose their footing return partial nodes so outlines
// keep working on files mid-edit. Error nodes carry the message and the
// offending token:
//
//	Module
//	├── Declaration
//	│   └── ClassDeclaration        class C {   <- unclosed
//	│       └── StructBody
//	└── Error("expected }, found end of file")
//
// # Node Structure
//
// The tree uses a uniform node shape:
//
//	type Node struct {
//	    Kind     NodeKind // e.g. KindModule, KindIfStatement
//	    Span     Span     // source range, half open
//	    Children []*Node  // ordered child nodes
//	    Token    *Token   // name or operator token, when one applies
//	    Comment  string   // attached documentation comment
//	    Error    *Error   // non-nil for error nodes
//	}
//
// Documentation comments (///, /** */, /++ +/) attach to the declaration
// that follows them and to nothing else.
//
// # Allocation
//
// Node allocation goes through the Allocator interface. The default
// allocates from the heap; an Arena is provided for callers that parse
// many files and want to release each tree in one step:
//
//	arena := parser.NewArena()
//	tree, _ := parser.ParseModule(src, parser.WithAllocator(arena))
//	... use tree ...
//	arena.Reset()
//
// Nodes from an Arena are invalid after Reset; never mix trees and
// resets.
//
// # Thread Safety
//
// A Parser instance is not safe for concurrent use, and neither is an
// Arena. Parse different files on different goroutines with separate
// instances; the package itself keeps no global state.
package parser
