// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package green

import (
	"fmt"

	"github.com/creachadair/jcst"
)

// A Builder constructs a green tree bottom-up from a well-nested sequence of
// calls to StartNode, Token, and FinishNode. Each StartNode opens a frame on
// an internal stack; Token appends a leaf to the innermost open frame; and
// FinishNode closes the innermost frame, sealing its accumulated children into
// a Node that becomes a child of the enclosing frame.
//
// Unbalanced calls are a programming error, and cause a panic.
// A zero Builder is ready for use, and does not deduplicate.
type Builder struct {
	cache    *Cache
	parents  []frame   // open frames, innermost last
	children []Element // children of all open frames, in order
}

// A frame records an open node: its kind and the index in the children stack
// of its first child.
type frame struct {
	kind  jcst.Kind
	first int
}

// NewBuilder constructs a Builder that deduplicates tokens and small nodes
// through c. If c == nil, no deduplication is performed.
func NewBuilder(c *Cache) *Builder { return &Builder{cache: c} }

// A Checkpoint marks a position among the children of the currently open
// node, to which a node may later be started with StartNodeAt.
type Checkpoint int

// StartNode opens a new node of the given kind. Subsequent tokens and nodes
// are added as its children until the matching FinishNode.
func (b *Builder) StartNode(kind jcst.Kind) {
	if !kind.IsNode() {
		panic(fmt.Sprintf("green: StartNode with non-node kind %v", kind))
	}
	b.parents = append(b.parents, frame{kind: kind, first: len(b.children)})
}

// Token adds a leaf token to the innermost open node.
func (b *Builder) Token(kind jcst.Kind, text string) {
	if !kind.IsToken() {
		panic(fmt.Sprintf("green: Token with non-token kind %v", kind))
	}
	b.children = append(b.children, b.cache.token(kind, text))
}

// FinishNode closes the innermost open node. It panics if no node is open.
func (b *Builder) FinishNode() {
	n := len(b.parents)
	if n == 0 {
		panic("green: FinishNode without a matching StartNode")
	}
	top := b.parents[n-1]
	b.parents = b.parents[:n-1]

	kids := make([]Element, len(b.children)-top.first)
	copy(kids, b.children[top.first:])
	clear(b.children[top.first:])
	b.children = append(b.children[:top.first], b.cache.node(top.kind, kids))
}

// Checkpoint returns a mark for the current position within the innermost
// open node. See StartNodeAt.
func (b *Builder) Checkpoint() Checkpoint { return Checkpoint(len(b.children)) }

// StartNodeAt opens a new node of the given kind whose children begin at the
// position marked by cp, so that elements added since cp become children of
// the new node. The checkpoint must have been taken within the node that is
// currently innermost, or StartNodeAt panics.
func (b *Builder) StartNodeAt(cp Checkpoint, kind jcst.Kind) {
	if !kind.IsNode() {
		panic(fmt.Sprintf("green: StartNodeAt with non-node kind %v", kind))
	}
	pos := int(cp)
	if pos > len(b.children) {
		panic("green: checkpoint is no longer valid")
	}
	if n := len(b.parents); n > 0 && pos < b.parents[n-1].first {
		panic("green: checkpoint precedes the innermost open node")
	}
	b.parents = append(b.parents, frame{kind: kind, first: pos})
}

// Depth reports the number of currently open nodes.
func (b *Builder) Depth() int { return len(b.parents) }

// Finish returns the completed tree. It panics unless every opened node has
// been finished and the result is exactly one node.
func (b *Builder) Finish() *Node {
	if len(b.parents) != 0 {
		panic(fmt.Sprintf("green: Finish with %d unfinished nodes", len(b.parents)))
	} else if len(b.children) != 1 {
		panic(fmt.Sprintf("green: Finish with %d top-level elements, want 1", len(b.children)))
	}
	root, ok := b.children[0].(*Node)
	if !ok {
		panic("green: Finish with a token at the top level")
	}
	b.children = b.children[:0]
	return root
}
