package outline

import (
	"testing"

	"github.com/virens/dlt/d/parser"
)

func buildOutline(t *testing.T, src string) []*Symbol {
	t.Helper()
	discard := func(file string, line, column int, message string, isError bool) {}
	module, _ := parser.ParseModule([]byte(src), parser.WithDiagnostics(discard))
	return Build([]byte(src), module)
}

func findSymbol(symbols []*Symbol, name string) *Symbol {
	for _, s := range symbols {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func TestOutlineModule(t *testing.T) {
	src := `module app.widgets;

import std.stdio;

/// A widget.
class Widget {
    int width;
    int height;

    this(int w, int h) {}

    int area() { return width * height; }
}

enum Color { Red, Green, Blue }

struct Point { double x, y; }

template Pair(T) {
    T first;
    T second;
}

alias Size = int;

unittest {
    assert(true);
}
`
	symbols := buildOutline(t, src)

	want := []struct {
		name string
		kind SymbolKind
	}{
		{"app.widgets", SymbolModule},
		{"Widget", SymbolClass},
		{"Color", SymbolEnum},
		{"Point", SymbolStruct},
		{"Pair", SymbolTemplate},
		{"Size", SymbolAlias},
		{"unittest", SymbolUnittest},
	}
	for _, w := range want {
		s := findSymbol(symbols, w.name)
		if s == nil {
			t.Errorf("missing top-level symbol %q", w.name)
			continue
		}
		if s.Kind != w.kind {
			t.Errorf("symbol %q: kind = %s, want %s", w.name, s.Kind, w.kind)
		}
	}

	widget := findSymbol(symbols, "Widget")
	if widget == nil {
		t.Fatal("missing Widget")
	}
	for _, member := range []string{"width", "height", "this", "area"} {
		if findSymbol(widget.Children, member) == nil {
			t.Errorf("Widget: missing member %q", member)
		}
	}

	color := findSymbol(symbols, "Color")
	if color == nil {
		t.Fatal("missing Color")
	}
	if len(color.Children) != 3 {
		t.Fatalf("Color: %d members, want 3", len(color.Children))
	}
	if color.Children[0].Name != "Red" || color.Children[0].Kind != SymbolMember {
		t.Errorf("Color first member = %s %s", color.Children[0].Name, color.Children[0].Kind)
	}

	point := findSymbol(symbols, "Point")
	if point == nil {
		t.Fatal("missing Point")
	}
	x := findSymbol(point.Children, "x")
	if x == nil {
		t.Fatal("Point: missing x")
	}
	if x.Detail != "double" {
		t.Errorf("Point.x detail = %q, want %q", x.Detail, "double")
	}
	if findSymbol(point.Children, "y") == nil {
		t.Error("Point: missing y")
	}
}

func TestOutlineFunctionDetail(t *testing.T) {
	symbols := buildOutline(t, "int add(int a, int b) { return a + b; }")
	add := findSymbol(symbols, "add")
	if add == nil {
		t.Fatal("missing add")
	}
	if add.Kind != SymbolFunction {
		t.Fatalf("add kind = %s, want function", add.Kind)
	}
	if add.Detail != "int (int a, int b)" {
		t.Errorf("add detail = %q", add.Detail)
	}
}

func TestOutlineConditionalIsTransparent(t *testing.T) {
	src := `version (Posix) {
    int fd;
} else {
    void* handle;
}`
	symbols := buildOutline(t, src)
	if findSymbol(symbols, "fd") == nil {
		t.Error("missing fd from version block")
	}
	if findSymbol(symbols, "handle") == nil {
		t.Error("missing handle from else block")
	}
}

func TestOutlineAnonymousEnumMembersSurface(t *testing.T) {
	symbols := buildOutline(t, "enum { max = 100, min = 0 }")
	for _, name := range []string{"max", "min"} {
		s := findSymbol(symbols, name)
		if s == nil {
			t.Errorf("missing member %q", name)
			continue
		}
		if s.Kind != SymbolMember {
			t.Errorf("%q kind = %s, want member", name, s.Kind)
		}
	}
}

func TestOutlineSpecialFunctions(t *testing.T) {
	src := `struct S {
    this(this) {}
    ~this() {}
    invariant { }
}
static this() {}
shared static ~this() {}
`
	symbols := buildOutline(t, src)
	s := findSymbol(symbols, "S")
	if s == nil {
		t.Fatal("missing S")
	}
	for _, name := range []string{"this(this)", "~this", "invariant"} {
		if findSymbol(s.Children, name) == nil {
			t.Errorf("S: missing %q", name)
		}
	}
	for _, name := range []string{"static this", "shared static ~this"} {
		if findSymbol(symbols, name) == nil {
			t.Errorf("missing top-level %q", name)
		}
	}
}

func TestOutlineAnonymousAggregateMembersSurface(t *testing.T) {
	symbols := buildOutline(t, "struct S { union { int i; float f; } }")
	s := findSymbol(symbols, "S")
	if s == nil {
		t.Fatal("missing S")
	}
	for _, name := range []string{"i", "f"} {
		member := findSymbol(s.Children, name)
		if member == nil {
			t.Errorf("S: missing %q from anonymous union", name)
			continue
		}
		if member.Kind != SymbolVariable {
			t.Errorf("%q kind = %s, want variable", name, member.Kind)
		}
	}
}

func TestOutlineAutoDeclarations(t *testing.T) {
	symbols := buildOutline(t, "auto x = 1, y = 2;\nenum limit = 10;")
	for _, name := range []string{"x", "y", "limit"} {
		s := findSymbol(symbols, name)
		if s == nil {
			t.Errorf("missing %q", name)
			continue
		}
		if s.Kind != SymbolVariable {
			t.Errorf("%q kind = %s, want variable", name, s.Kind)
		}
	}
}

func TestOutlineToleratesErrors(t *testing.T) {
	src := `module broken;

int x = ;

class Ok {
    int good;
}
`
	symbols := buildOutline(t, src)
	if findSymbol(symbols, "broken") == nil {
		t.Error("missing module symbol despite later errors")
	}
	ok := findSymbol(symbols, "Ok")
	if ok == nil {
		t.Fatal("missing class after error recovery")
	}
	if findSymbol(ok.Children, "good") == nil {
		t.Error("Ok: missing member good")
	}
}

func TestOutlineNilModule(t *testing.T) {
	if got := Build(nil, nil); got != nil {
		t.Errorf("Build(nil) = %v, want nil", got)
	}
}
