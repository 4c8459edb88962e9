package parser

import (
	"strings"
	"testing"
)

func discard(file string, line, column int, message string, isError bool) {}

func parseTestModule(t *testing.T, src string) (*Node, *Parser) {
	t.Helper()
	return ParseModule([]byte(src), WithFile("test.d"), WithDiagnostics(discard))
}

func TestParseExpression(t *testing.T) {
	tests := []struct {
		input string
		kind  NodeKind
	}{
		{"42", KindLiteral},
		{"3.14", KindLiteral},
		{`"hello"`, KindLiteral},
		{"true", KindLiteral},
		{"null", KindLiteral},
		{"x", KindIdentifier},
		{"this", KindThisExpression},
		{"super", KindSuperExpression},
		{"x + y", KindAddExpression},
		{"x * y + z", KindAddExpression},
		{"a ~ b", KindAddExpression},
		{"x * y", KindMulExpression},
		{"x ^^ y", KindPowExpression},
		{"a << b", KindShiftExpression},
		{"a >>> b", KindShiftExpression},
		{"a < b", KindRelationalExpression},
		{"a == b", KindEqualityExpression},
		{"a is b", KindIdentityExpression},
		{"a !is b", KindIdentityExpression},
		{"a in b", KindInExpression},
		{"a !in b", KindInExpression},
		{"a & b", KindAndExpression},
		{"a ^ b", KindXorExpression},
		{"a | b", KindOrExpression},
		{"a && b", KindAndAndExpression},
		{"a || b", KindOrOrExpression},
		{"-x", KindUnaryExpression},
		{"!x", KindUnaryExpression},
		{"*p", KindUnaryExpression},
		{"++x", KindUnaryExpression},
		{"x++", KindPostfixExpression},
		{"x--", KindPostfixExpression},
		{"a ? b : c", KindTernaryExpression},
		{"x = 5", KindAssignExpression},
		{"x += 1", KindAssignExpression},
		{"x ~= y", KindAssignExpression},
		{"x >>>= 1", KindAssignExpression},
		{"(x)", KindParenExpression},
		{"(x) + y", KindAddExpression},
		{"obj.field", KindDotExpression},
		{".name", KindDotExpression},
		{"obj.method()", KindFunctionCallExpression},
		{"f(1, 2)", KindFunctionCallExpression},
		{"arr[0]", KindIndexExpression},
		{"arr[]", KindSliceExpression},
		{"arr[1 .. 2]", KindSliceExpression},
		{"arr[$ - 1]", KindIndexExpression},
		{"[1, 2, 3]", KindArrayLiteral},
		{`[1: "a", 2: "b"]`, KindAssocArrayLiteral},
		{"a!b", KindTemplateInstance},
		{"a!b(c)", KindFunctionCallExpression},
		{"a!(b, c)", KindTemplateInstance},
		{"cast(int)x", KindCastExpression},
		{"cast(const)x", KindCastExpression},
		{"cast()x", KindCastExpression},
		{"new C(1)", KindNewExpression},
		{"assert(x)", KindAssertExpression},
		{`assert(x, "message")`, KindAssertExpression},
		{`mixin("x")`, KindMixinExpression},
		{`import("file.txt")`, KindImportExpression},
		{"typeid(int)", KindTypeidExpression},
		{"is(T == int)", KindIsExpression},
		{"is(typeof(x) : long)", KindIsExpression},
		{"__traits(compiles, x)", KindTraitsExpression},
		{"x => x + 1", KindFunctionLiteral},
		{"(a, b) => a + b", KindFunctionLiteral},
		{"(int a) { return a; }", KindFunctionLiteral},
		{"function int(int a) { return a; }", KindFunctionLiteral},
		{"delegate() {}", KindFunctionLiteral},
		{"a, b", KindCommaExpression},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, p := ParseExpressionSource([]byte(tt.input), WithDiagnostics(discard))
			if node == nil {
				t.Fatal("got nil node")
			}
			if node.Kind != tt.kind {
				t.Errorf("got %v, want %v", node.Kind, tt.kind)
			}
			if p.Errors() > 0 {
				t.Errorf("unexpected errors parsing %q", tt.input)
			}
		})
	}
}

func TestParseStatement(t *testing.T) {
	tests := []struct {
		input string
		kind  NodeKind
	}{
		{"{}", KindBlockStatement},
		{";", KindEmptyStatement},
		{"x = 1;", KindExpressionStatement},
		{"f();", KindExpressionStatement},
		{"if (x) {}", KindIfStatement},
		{"if (x) {} else {}", KindIfStatement},
		{"while (x) {}", KindWhileStatement},
		{"do {} while (x);", KindDoStatement},
		{"for (;;) {}", KindForStatement},
		{"foreach (x; arr) {}", KindForeachStatement},
		{"foreach (i, v; arr) {}", KindForeachStatement},
		{"foreach (i; 0 .. 10) {}", KindForeachStatement},
		{"foreach_reverse (i; 0 .. 10) {}", KindForeachStatement},
		{"switch (x) { case 1: break; default: break; }", KindSwitchStatement},
		{"final switch (x) {}", KindFinalSwitchStatement},
		{"return;", KindReturnStatement},
		{"return x + 1;", KindReturnStatement},
		{"break;", KindBreakStatement},
		{"break outer;", KindBreakStatement},
		{"continue;", KindContinueStatement},
		{"goto done;", KindGotoStatement},
		{"goto case 5;", KindGotoStatement},
		{"with (obj) {}", KindWithStatement},
		{"synchronized {}", KindSynchronizedStatement},
		{"synchronized (lock) {}", KindSynchronizedStatement},
		{"try {} catch (Exception e) {}", KindTryStatement},
		{"try {} finally {}", KindTryStatement},
		{"throw new Exception(\"boom\");", KindThrowStatement},
		{"scope (exit) close();", KindScopeGuardStatement},
		{"scope (failure) rollback();", KindScopeGuardStatement},
		{"asm { }", KindAsmStatement},
		{"loop: x++;", KindLabeledStatement},
		{"version (Posix) {}", KindConditionalStatement},
		{"debug writeln(x);", KindConditionalStatement},
		{"static if (x) {}", KindConditionalStatement},
		{"static assert(x);", KindStaticAssertStatement},
		{"static foreach (i; 0 .. 4) {}", KindStaticForeachStatement},
		{`mixin("x = 1;");`, KindMixinDeclaration},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, p := ParseStatementSource([]byte(tt.input), WithDiagnostics(discard))
			if node == nil {
				t.Fatal("got nil node")
			}
			if node.Kind != tt.kind {
				t.Errorf("got %v, want %v", node.Kind, tt.kind)
			}
			if p.Errors() > 0 {
				t.Errorf("unexpected errors parsing %q", tt.input)
			}
		})
	}
}

func TestParseModuleDeclarations(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"module declaration", "module a.b.c;"},
		{"deprecated module", "deprecated module old.api;"},
		{"import", "import std.stdio;"},
		{"renamed import", "import io = std.stdio;"},
		{"selective import", "import std.stdio : writeln, wl = writefln;"},
		{"multiple imports", "import std.stdio, std.string;"},
		{"variable", "int x;"},
		{"variable with initializer", "int x = 1, y = 2;"},
		{"pointer variable", "int* p;"},
		{"array variable", "int[3] a;"},
		{"assoc array variable", "int[string] aa;"},
		{"qualified type", "immutable(char)[] s;"},
		{"function pointer", "void function(int) fp;"},
		{"delegate variable", "int delegate(int) dg;"},
		{"auto declaration", "auto x = 5;"},
		{"const inferred", "const pi = 3.14;"},
		{"manifest constant", "enum answer = 42;"},
		{"typed manifest constant", "enum int answer = 42;"},
		{"function", "int add(int a, int b) { return a + b; }"},
		{"template function", "T max(T)(T a, T b) { return a > b ? a : b; }"},
		{"function with constraint", "void f(T)(T x) if (isNumeric!T) {}"},
		{"function with default", "void f(int x = 3) {}"},
		{"variadic function", "void f(int[] xs...) {}"},
		{"ref return", "ref int f() { return x; }"},
		{"member attributes", "int f() const pure nothrow { return 1; }"},
		{"uda attributes", "@safe pure int f() { return 1; }"},
		{"contracts", "void f() in { assert(true); } out { } do { }"},
		{"expression contracts", "void f(int x) in (x > 0) out (r; r > 0) { }"},
		{"legacy body keyword", "void f() in { } body { }"},
		{"abstract method", "abstract void f();"},
		{"class", "class C {}"},
		{"class with bases", "class C : Base, I {}"},
		{"template class", "class Box(T) {}"},
		{"interface", "interface I { void f(); }"},
		{"struct", "struct S { int x; }"},
		{"anonymous struct", "struct { int x; }"},
		{"union", "union U { int i; float f; }"},
		{"enum", "enum Color { Red, Green, Blue }"},
		{"enum with base", "enum Flag : ubyte { A, B }"},
		{"anonymous enum", "enum { A, B, C }"},
		{"enum with values", "enum E { A = 1, B = 2, }"},
		{"opaque enum", "enum Opaque;"},
		{"alias", "alias Int = int;"},
		{"alias list", "alias A = int, B = long;"},
		{"legacy alias", "alias int Int;"},
		{"alias this", "alias x this;"},
		{"template", "template T(U) { U x; }"},
		{"mixin template", "mixin template M() { int x; }"},
		{"mixin instantiation", "mixin M!();"},
		{"named mixin instantiation", "mixin M!() m;"},
		{"string mixin", `mixin("int x;");`},
		{"constructor", "this(int x) {}"},
		{"templated constructor", "this(T)(T x) {}"},
		{"postblit", "this(this) {}"},
		{"destructor", "~this() {}"},
		{"static constructor", "static this() {}"},
		{"static destructor", "static ~this() {}"},
		{"shared static constructor", "shared static this() {}"},
		{"shared static destructor", "shared static ~this() {}"},
		{"invariant block", "invariant { assert(x > 0); }"},
		{"invariant expression", "invariant(x > 0);"},
		{"unittest", "unittest { assert(1 == 1); }"},
		{"version block", "version (Posix) { int p; } else { int w; }"},
		{"version specification", "version = Extra;"},
		{"debug specification", "debug = 2;"},
		{"static if", "static if (size > 4) { alias T = long; }"},
		{"static assert", "static assert(1 == 1);"},
		{"static foreach", "static foreach (i; 0 .. 4) {}"},
		{"pragma", `pragma(msg, "hi");`},
		{"pragma on declaration", "pragma(inline, true) int f() { return 1; }"},
		{"linkage attribute", "extern (C) void cf();"},
		{"linkage cpp namespace", "extern (C++, ns) { void g(); }"},
		{"attribute block", "private { int x; int y; }"},
		{"attribute label", "private:"},
		{"align", "align(16) struct A { int x; }"},
		{"deprecated with message", `deprecated("use g") void f();`},
		{"storage classes", "static shared int counter;"},
		{"gshared", "__gshared int global;"},
		{"empty declaration", ";"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, p := parseTestModule(t, tt.input)
			if node.Kind != KindModule {
				t.Fatalf("got %v, want Module", node.Kind)
			}
			if p.Errors() > 0 {
				t.Errorf("unexpected errors parsing %q", tt.input)
			}
			if hasError(node) {
				t.Errorf("error node in tree for %q", tt.input)
				printErrors(t, node, 0)
			}
		})
	}
}

func TestModuleDeclarationName(t *testing.T) {
	node, _ := parseTestModule(t, "module a.b.c;\nint x;")
	decl := node.FirstChildOfKind(KindModuleDeclaration)
	if decl == nil {
		t.Fatal("no module declaration")
	}
	chain := decl.FirstChildOfKind(KindIdentifierChain)
	if chain == nil {
		t.Fatal("no identifier chain")
	}
	if len(chain.Children) != 3 {
		t.Fatalf("got %d name parts, want 3", len(chain.Children))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got := chain.Children[i].TokenLiteral(); got != want {
			t.Errorf("part %d: got %q, want %q", i, got, want)
		}
	}
}

func TestVariableDeclarators(t *testing.T) {
	node, _ := parseTestModule(t, "int x = 1, y = 2;")
	v := findNode(node, KindVariableDeclaration)
	if v == nil {
		t.Fatal("no variable declaration")
	}
	decls := v.ChildrenOfKind(KindDeclarator)
	if len(decls) != 2 {
		t.Fatalf("got %d declarators, want 2", len(decls))
	}
	if decls[0].TokenLiteral() != "x" || decls[1].TokenLiteral() != "y" {
		t.Errorf("got %q and %q, want x and y", decls[0].TokenLiteral(), decls[1].TokenLiteral())
	}
	if decls[0].FirstChildOfKind(KindInitializer) == nil {
		t.Error("first declarator has no initializer")
	}
}

func TestDeclarationStatementAmbiguity(t *testing.T) {
	// Each body element must land on the side the language definition
	// prescribes: a declaration reading wins every genuine tie.
	tests := []struct {
		name  string
		input string
		kind  NodeKind
	}{
		{"variable wins tie", "T y;", KindVariableDeclaration},
		{"assignment is expression", "x = 5;", KindExpressionStatement},
		{"call is expression", "f(3);", KindExpressionStatement},
		{"template call is expression", "a!b(c);", KindExpressionStatement},
		{"template type is declaration", "a!b c;", KindVariableDeclaration},
		{"basic type member is expression", "int.max.writeln;", KindExpressionStatement},
		{"final switch is statement", "final switch (x) {}", KindFinalSwitchStatement},
		{"scope guard is statement", "scope (exit) f();", KindScopeGuardStatement},
		{"scope variable is declaration", "scope C c;", KindVariableDeclaration},
		{"synchronized block is statement", "synchronized (m) {}", KindSynchronizedStatement},
		{"pointer declaration wins", "T* p;", KindVariableDeclaration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "void f() {\n" + tt.input + "\n}"
			node, p := parseTestModule(t, src)
			if p.Errors() > 0 {
				t.Fatalf("unexpected errors parsing %q", src)
			}
			if findNode(node, tt.kind) == nil {
				t.Errorf("no %v in tree for %q", tt.kind, tt.input)
			}
		})
	}
}

func TestSpeculationLeavesNoTrace(t *testing.T) {
	// Every element below forces a bookmarked trial parse. None of the
	// rolled back attempts may surface diagnostics.
	src := `void f() {
	(x) + y;
	a !is b;
	a !in b;
	c = [1: "x"];
	d = [1, 2];
	T u = g();
	e = (a, b) => a + b;
	h!i(j);
}`
	_, p := parseTestModule(t, src)
	if p.Errors() != 0 {
		t.Errorf("got %d errors, want 0", p.Errors())
	}
	if p.Warnings() != 0 {
		t.Errorf("got %d warnings, want 0", p.Warnings())
	}
}

func TestErrorRecovery(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantErrors int
		wantKind   NodeKind
	}{
		{"unclosed class", "class C {", 1, KindClassDeclaration},
		{"missing initializer", "int x = ;\nint y = 2;", 1, KindVariableDeclaration},
		{"garbage then declaration", "+++;\nint x;", 1, KindVariableDeclaration},
		{"missing paren", "void f() { if (x {} }", 1, KindIfStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, p := parseTestModule(t, tt.input)
			if node.Kind != KindModule {
				t.Fatalf("got %v, want Module", node.Kind)
			}
			if p.Errors() < tt.wantErrors {
				t.Errorf("got %d errors, want at least %d", p.Errors(), tt.wantErrors)
			}
			if findNode(node, tt.wantKind) == nil {
				t.Errorf("recovery lost the %v node", tt.wantKind)
			}
		})
	}
}

func TestUnclosedClassSingleError(t *testing.T) {
	var messages []string
	sink := func(file string, line, column int, message string, isError bool) {
		if isError {
			messages = append(messages, message)
		}
	}
	node, _ := ParseModule([]byte("class C {"), WithFile("test.d"), WithDiagnostics(sink))
	if len(messages) != 1 {
		t.Fatalf("got %d errors, want exactly 1: %v", len(messages), messages)
	}
	if findNode(node, KindClassDeclaration) == nil {
		t.Error("no partial class declaration in tree")
	}
}

func TestRecoveryAlwaysTerminates(t *testing.T) {
	inputs := []string{
		"%%%%%%%%",
		"((((((((",
		"))))))))",
		"class class class",
		"if if if if",
		"int x = = = ;",
		"} } } }",
		"\"unterminated",
		"/+ unterminated",
	}
	for _, input := range inputs {
		node, _ := ParseModule([]byte(input), WithFile("test.d"), WithDiagnostics(discard))
		if node == nil || node.Kind != KindModule {
			t.Errorf("no module for %q", input)
		}
	}
}

func TestDocCommentAttachment(t *testing.T) {
	src := `/// Frobs the widget.
void frob() {}

void quux() {}

/** Block doc. */
int x;
`
	node, _ := parseTestModule(t, src)
	decls := node.ChildrenOfKind(KindDeclaration)
	if len(decls) != 3 {
		t.Fatalf("got %d declarations, want 3", len(decls))
	}
	if !strings.Contains(decls[0].Comment, "Frobs") {
		t.Errorf("first declaration comment: got %q", decls[0].Comment)
	}
	if decls[1].Comment != "" {
		t.Errorf("second declaration should have no comment, got %q", decls[1].Comment)
	}
	if !strings.Contains(decls[2].Comment, "Block doc") {
		t.Errorf("third declaration comment: got %q", decls[2].Comment)
	}
}

func TestPositionTracking(t *testing.T) {
	src := "module m;\nint x;\n"
	node, _ := parseTestModule(t, src)
	if node.Span.Start.Line != 1 {
		t.Errorf("module start line: got %d, want 1", node.Span.Start.Line)
	}
	v := findNode(node, KindVariableDeclaration)
	if v == nil {
		t.Fatal("no variable declaration")
	}
	if v.Span.Start.Line != 2 {
		t.Errorf("variable start line: got %d, want 2", v.Span.Start.Line)
	}
	if v.Span.Start.Column != 1 {
		t.Errorf("variable start column: got %d, want 1", v.Span.Start.Column)
	}
}

// TestSpanCoverage checks the tree against the token stream it came
// from: every consumed token falls inside some declaration-level span,
// and every child span nests inside its parent's.
func TestSpanCoverage(t *testing.T) {
	src := `module app;

import std.stdio : writeln;

class Widget {
    private int width;

    this(int w) { width = w; }

    int area() { return width * width; }
}

enum Color { Red, Green }

void main() {
    auto items = [1, 2, 3];
    foreach (i; items) {
        writeln(i);
    }
}
`
	tokens := Tokenize([]byte(src), "test.d")
	node, p := ParseTokens(tokens, WithFile("test.d"), WithDiagnostics(discard))
	if p.Errors() != 0 {
		t.Fatalf("%d errors, want 0", p.Errors())
	}

	covers := func(n *Node, tok Token) bool {
		return n.Span.Start.Offset <= tok.Span.Start.Offset &&
			tok.Span.End.Offset <= n.Span.End.Offset
	}

	for _, tok := range tokens {
		if tok.Kind == TokenEOF {
			continue
		}
		found := false
		for _, child := range node.Children {
			if covers(child, tok) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("token %s %q at %s covered by no declaration span",
				tok.Kind, tok.Literal, tok.Span.Start)
		}
	}

	var checkNesting func(n *Node)
	checkNesting = func(n *Node) {
		for _, child := range n.Children {
			if child.Span.Start.Offset < n.Span.Start.Offset ||
				child.Span.End.Offset > n.Span.End.Offset {
				t.Errorf("%s [%d-%d] outside parent %s [%d-%d]",
					child.Kind, child.Span.Start.Offset, child.Span.End.Offset,
					n.Kind, n.Span.Start.Offset, n.Span.End.Offset)
			}
			checkNesting(child)
		}
	}
	checkNesting(node)
}

func TestIfConditionDeclarationForm(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantVar string
	}{
		{"auto form", "void f() { if (auto r = g()) {} }", "r"},
		{"typed form", "void f() { if (Widget w = find()) {} }", "w"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, p := parseTestModule(t, tt.input)
			if p.Errors() > 0 {
				t.Fatalf("unexpected errors parsing %q", tt.input)
			}
			cond := findNode(node, KindIfCondition)
			if cond == nil {
				t.Fatal("no if condition")
			}
			if cond.TokenLiteral() != tt.wantVar {
				t.Errorf("bound name: got %q, want %q", cond.TokenLiteral(), tt.wantVar)
			}
		})
	}
}

func TestCaseRangeStatement(t *testing.T) {
	src := "void f() { switch (x) { case 1: .. case 9: break; default: break; } }"
	node, p := parseTestModule(t, src)
	if p.Errors() > 0 {
		t.Fatal("unexpected errors")
	}
	if findNode(node, KindCaseRangeStatement) == nil {
		t.Error("no case range statement")
	}
}

func TestDeprecationWarnings(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"legacy alias", "alias int Int;"},
		{"body keyword", "void f() in { } body { }"},
		{"c style array", "int x[3];"},
		{"delete expression", "void f() { delete p; }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, p := parseTestModule(t, tt.input)
			if p.Warnings() == 0 {
				t.Errorf("no warning for %q", tt.input)
			}
			if p.Errors() > 0 {
				t.Errorf("unexpected errors for %q", tt.input)
			}
		})
	}
}

func TestComplexModule(t *testing.T) {
	src := `
module app.widgets;

import std.algorithm : map, filter;
import std.range;

/// A widget with a size.
struct Widget {
    private int size_;

    this(int size) {
        size_ = size;
    }

    @property int size() const pure nothrow {
        return size_;
    }

    int opCmp(const Widget other) const {
        return size_ - other.size_;
    }
}

enum Limit : int {
    Low = 1,
    High = 100,
}

T clamp(T)(T value, T lo, T hi) if (is(T : long)) {
    return value < lo ? lo : value > hi ? hi : value;
}

version (unittest) {
    import std.exception;
}

unittest {
    auto w = Widget(5);
    assert(w.size == 5);
    static foreach (i; 0 .. 3) {
        assert(clamp(i, 1, 2) >= 1);
    }
}

void main(string[] args) {
    auto widgets = [Widget(3), Widget(1), Widget(2)];
    foreach (i, w; widgets) {
        if (w.size > 1) {
            continue;
        }
        final switch (w.size) {
        case 1:
            break;
        }
    }
    scope (exit) cleanup();
}
`
	node, p := parseTestModule(t, src)
	if p.Errors() > 0 {
		t.Errorf("got %d errors, want 0", p.Errors())
	}
	if hasError(node) {
		t.Error("error node in tree")
		printErrors(t, node, 0)
	}
	if findNode(node, KindStructDeclaration) == nil {
		t.Error("no struct declaration")
	}
	if findNode(node, KindTemplateParameters) == nil {
		t.Error("no template parameters")
	}
	if findNode(node, KindForeachStatement) == nil {
		t.Error("no foreach statement")
	}
}

func TestAnonymousAggregate(t *testing.T) {
	node, p := parseTestModule(t, "struct S { union { int i; float f; } }")
	if p.Errors() != 0 {
		t.Fatalf("%d errors, want 0", p.Errors())
	}
	anon := findNode(node, KindAnonymousAggregate)
	if anon == nil {
		t.Fatal("no anonymous aggregate node")
	}
	if anon.TokenLiteral() != "union" {
		t.Errorf("keyword = %q, want %q", anon.TokenLiteral(), "union")
	}
	body := anon.FirstChildOfKind(KindStructBody)
	if body == nil {
		t.Fatal("anonymous aggregate has no body")
	}
	if len(body.Children) != 2 {
		t.Errorf("body has %d declarations, want 2", len(body.Children))
	}
	if s := findNode(node, KindStructDeclaration); s == nil || s.TokenLiteral() != "S" {
		t.Error("enclosing struct lost its name")
	}
}

func TestArrayLiteralWithTernaryElement(t *testing.T) {
	node, p := parseTestModule(t, "void f() { auto a = [x ? y : z]; }")
	if p.Errors() != 0 {
		t.Fatalf("%d errors, want 0", p.Errors())
	}
	if findNode(node, KindAssocArrayLiteral) != nil {
		t.Error("ternary element misread as key : value")
	}
	lit := findNode(node, KindArrayLiteral)
	if lit == nil {
		t.Fatal("missing array literal")
	}
	if findNode(lit, KindTernaryExpression) == nil {
		t.Error("missing ternary inside the literal")
	}
}

func findNode(node *Node, kind NodeKind) *Node {
	if node == nil {
		return nil
	}
	if node.Kind == kind {
		return node
	}
	for _, child := range node.Children {
		if found := findNode(child, kind); found != nil {
			return found
		}
	}
	return nil
}

func hasError(node *Node) bool {
	if node == nil {
		return false
	}
	if node.Kind == KindError {
		return true
	}
	for _, child := range node.Children {
		if hasError(child) {
			return true
		}
	}
	return false
}

func printErrors(t *testing.T, node *Node, depth int) {
	if node == nil {
		return
	}
	if node.Kind == KindError && node.Error != nil {
		t.Logf("%s error: %s at line %d", strings.Repeat("  ", depth), node.Error.Message, node.Span.Start.Line)
	}
	for _, child := range node.Children {
		printErrors(t, child, depth+1)
	}
}
