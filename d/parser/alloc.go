package parser

// Allocator is the narrow contract the parser needs for node storage.
// The default is plain heap allocation; an Arena can be injected to make
// a whole tree releasable in one call. One allocator serves one parse at
// a time; there is no internal locking.
type Allocator interface {
	// NewNode returns a zeroed node of the given kind.
	NewNode(kind NodeKind) *Node
	// Free releases a node previously returned by NewNode. Only the
	// rule that allocated a node and is aborting it may call Free;
	// a node handed to a parent is owned by that parent.
	Free(n *Node)
	// OwnNodes freezes a transient child buffer into the storage kept
	// on a finished node.
	OwnNodes(items []*Node) []*Node
}

type heapAllocator struct{}

func (heapAllocator) NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

func (heapAllocator) Free(n *Node) {}

func (heapAllocator) OwnNodes(items []*Node) []*Node {
	return items
}

// Arena is a chunked bump allocator for nodes. Individual Free calls
// recycle only the most recent allocation; Reset releases everything at
// once. Useful when a caller parses many files and wants tree lifetime
// tied to a single release point.
type Arena struct {
	chunks [][]Node
	used   int
}

const arenaChunkSize = 256

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

func (a *Arena) NewNode(kind NodeKind) *Node {
	if len(a.chunks) == 0 || a.used == arenaChunkSize {
		a.chunks = append(a.chunks, make([]Node, arenaChunkSize))
		a.used = 0
	}
	chunk := a.chunks[len(a.chunks)-1]
	n := &chunk[a.used]
	a.used++
	n.Kind = kind
	return n
}

// Free recycles n if it was the last node handed out; otherwise the slot
// is simply abandoned until Reset.
func (a *Arena) Free(n *Node) {
	if len(a.chunks) == 0 || a.used == 0 {
		return
	}
	chunk := a.chunks[len(a.chunks)-1]
	if n == &chunk[a.used-1] {
		chunk[a.used-1] = Node{}
		a.used--
	}
}

func (a *Arena) OwnNodes(items []*Node) []*Node {
	if len(items) == cap(items) {
		return items
	}
	owned := make([]*Node, len(items))
	copy(owned, items)
	return owned
}

// Reset drops every node the arena handed out. Trees built from it must
// not be used afterwards.
func (a *Arena) Reset() {
	a.chunks = a.chunks[:0]
	a.used = 0
}

// Len returns the number of live allocations, for tests and stats.
func (a *Arena) Len() int {
	if len(a.chunks) == 0 {
		return 0
	}
	return (len(a.chunks)-1)*arenaChunkSize + a.used
}

// startNode allocates a node of the given kind whose span starts at the
// cursor.
func (p *Parser) startNode(kind NodeKind) *Node {
	n := p.alloc.NewNode(kind)
	n.Span = Span{Start: p.peek().Span.Start}
	return n
}

// leaf allocates a node wrapping one verbatim token.
func (p *Parser) leaf(kind NodeKind, tok Token) *Node {
	n := p.alloc.NewNode(kind)
	n.Span = tok.Span
	n.Token = &tok
	return n
}

// finishNode closes the span at the previous token and freezes the child
// list.
func (p *Parser) finishNode(n *Node) *Node {
	if p.pos > 0 && p.pos <= len(p.tokens) {
		n.Span.End = p.tokens[p.pos-1].Span.End
	} else if len(p.tokens) > 0 {
		n.Span.End = p.tokens[len(p.tokens)-1].Span.End
	}
	n.Children = p.alloc.OwnNodes(n.Children)
	return n
}

// abandonNode releases a partially built node on a failure path. The
// children previously added are owned by n, so they go back too.
func (p *Parser) abandonNode(n *Node) *Node {
	for i := len(n.Children) - 1; i >= 0; i-- {
		p.alloc.Free(n.Children[i])
	}
	p.alloc.Free(n)
	return nil
}
