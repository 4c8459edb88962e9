package parser

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNodeKindString(t *testing.T) {
	tests := []struct {
		kind NodeKind
		want string
	}{
		{KindModule, "Module"},
		{KindClassDeclaration, "ClassDeclaration"},
		{KindAddExpression, "AddExpression"},
		{KindError, "Error"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("got %q, want %q", got, tt.want)
		}
	}
}

func TestNodeAddChild(t *testing.T) {
	n := &Node{Kind: KindModule}
	n.AddChild(&Node{Kind: KindDeclaration})
	n.AddChild(nil)
	n.AddChild(&Node{Kind: KindDeclaration})
	if len(n.Children) != 2 {
		t.Errorf("got %d children, want 2; nil must be skipped", len(n.Children))
	}
}

func TestNodeChildLookup(t *testing.T) {
	n := &Node{Kind: KindModule}
	a := &Node{Kind: KindDeclaration}
	b := &Node{Kind: KindImportDeclaration}
	c := &Node{Kind: KindDeclaration}
	n.AddChild(a)
	n.AddChild(b)
	n.AddChild(c)

	if got := n.FirstChildOfKind(KindDeclaration); got != a {
		t.Error("FirstChildOfKind returned wrong node")
	}
	if got := n.FirstChildOfKind(KindClassDeclaration); got != nil {
		t.Error("FirstChildOfKind should return nil for absent kind")
	}
	if got := n.ChildrenOfKind(KindDeclaration); len(got) != 2 {
		t.Errorf("got %d, want 2", len(got))
	}
}

func TestNodeString(t *testing.T) {
	node, _ := parseTestModule(t, "int x;")
	s := node.String()
	if !strings.Contains(s, "Module") {
		t.Errorf("missing Module in %q", s)
	}
	if !strings.Contains(s, "VariableDeclaration") {
		t.Errorf("missing VariableDeclaration in %q", s)
	}
	if !strings.Contains(s, "x") {
		t.Errorf("missing declarator name in %q", s)
	}

	sp := node.StringWithPositions()
	if !strings.Contains(sp, "[") {
		t.Error("StringWithPositions lacks position markers")
	}
}

func TestNodeJSON(t *testing.T) {
	node, _ := parseTestModule(t, "module m;\nint x;")
	data, err := json.Marshal(node)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{`"kind":"Module"`, `"ModuleDeclaration"`, `"span"`, `"offset"`, `"token":"x"`} {
		if !strings.Contains(s, want) {
			t.Errorf("missing %s in %s", want, s)
		}
	}
}

func TestErrorNodeShape(t *testing.T) {
	node, _ := parseTestModule(t, "+++;")
	errNode := findNode(node, KindError)
	if errNode == nil {
		t.Fatal("no error node")
	}
	if errNode.Error == nil || errNode.Error.Message == "" {
		t.Error("error node carries no message")
	}
	if errNode.Error.Got == nil {
		t.Error("error node carries no offending token")
	}
}
