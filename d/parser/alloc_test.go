package parser

import "testing"

func countNodes(n *Node) int {
	if n == nil {
		return 0
	}
	total := 1
	for _, child := range n.Children {
		total += countNodes(child)
	}
	return total
}

func TestArenaAllocation(t *testing.T) {
	arena := NewArena()
	node, p := ParseModule([]byte("module m;\nint x = 1;\nvoid f() { x++; }"),
		WithFile("test.d"), WithAllocator(arena), WithDiagnostics(discard))
	if p.Errors() != 0 {
		t.Fatalf("got %d errors, want 0", p.Errors())
	}
	if node.Kind != KindModule {
		t.Fatalf("got %v, want Module", node.Kind)
	}
	if arena.Len() < countNodes(node) {
		t.Errorf("arena holds %d nodes, tree has %d", arena.Len(), countNodes(node))
	}

	arena.Reset()
	if arena.Len() != 0 {
		t.Errorf("after Reset: got %d live nodes, want 0", arena.Len())
	}
}

func TestArenaFreeRecyclesLast(t *testing.T) {
	arena := NewArena()
	a := arena.NewNode(KindIdentifier)
	b := arena.NewNode(KindLiteral)
	arena.Free(b)
	if arena.Len() != 1 {
		t.Errorf("got %d, want 1", arena.Len())
	}
	c := arena.NewNode(KindModule)
	if c != b {
		t.Error("freed slot was not reused")
	}
	// Freeing a non-last node is a no-op.
	arena.Free(a)
	if arena.Len() != 2 {
		t.Errorf("got %d, want 2", arena.Len())
	}
}

func TestArenaSpansChunks(t *testing.T) {
	arena := NewArena()
	seen := make(map[*Node]bool)
	for i := 0; i < arenaChunkSize*3+10; i++ {
		n := arena.NewNode(KindIdentifier)
		if seen[n] {
			t.Fatal("arena returned the same node twice")
		}
		seen[n] = true
	}
	if arena.Len() != arenaChunkSize*3+10 {
		t.Errorf("got %d, want %d", arena.Len(), arenaChunkSize*3+10)
	}
}

func TestArenaTreeMatchesHeapTree(t *testing.T) {
	src := "struct S { int x; }\nvoid f() { auto s = S(1); }"
	heapTree, _ := ParseModule([]byte(src), WithDiagnostics(discard))
	arenaTree, _ := ParseModule([]byte(src), WithAllocator(NewArena()), WithDiagnostics(discard))
	if heapTree.String() != arenaTree.String() {
		t.Error("arena-backed tree differs from heap-backed tree")
	}
}
