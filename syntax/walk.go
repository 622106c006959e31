// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package syntax

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// Event distinguishes entering an element from leaving it.
type Event bool

const (
	Enter Event = true
	Leave Event = false
)

func (e Event) String() string {
	if e == Enter {
		return "Enter"
	}
	return "Leave"
}

// A WalkEvent is reported by a preorder traversal on entering and on leaving
// each element.
type WalkEvent struct {
	Event   Event
	Element Element
}

func (w WalkEvent) String() string {
	return fmt.Sprintf("%v %v@%v", w.Event, w.Element.Kind(), w.Element.Span())
}

// Preorder returns a sequence of enter and leave events for a depth-first,
// left-to-right traversal of the nodes of the subtree rooted at n, including n
// itself. Tokens are omitted; see PreorderWithTokens. The sequence may be
// traversed any number of times.
func (n *Node) Preorder() iter.Seq[WalkEvent] {
	return func(yield func(WalkEvent) bool) { n.walk(false, yield) }
}

// PreorderWithTokens is like Preorder, but also reports an enter and a leave
// event for each token.
func (n *Node) PreorderWithTokens() iter.Seq[WalkEvent] {
	return func(yield func(WalkEvent) bool) { n.walk(true, yield) }
}

func (n *Node) walk(tokens bool, yield func(WalkEvent) bool) bool {
	if !yield(WalkEvent{Enter, n}) {
		return false
	}
	for c := range n.ChildrenWithTokens() {
		switch t := c.(type) {
		case *Node:
			if !t.walk(tokens, yield) {
				return false
			}
		case *Token:
			if tokens && !(yield(WalkEvent{Enter, t}) && yield(WalkEvent{Leave, t})) {
				return false
			}
		}
	}
	return yield(WalkEvent{Leave, n})
}

// Dump returns a multi-line description of the subtree rooted at e, one
// element per line, indented two spaces per level of depth. A node is written
// as its kind and span; a token also includes its quoted text:
//
//	Root@0..3
//	  Number@0..3 "123"
func Dump(e Element) string {
	var sb strings.Builder
	depth := 0
	line := func(e Element) {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(e.Kind().String())
		sb.WriteByte('@')
		sb.WriteString(e.Span().String())
		if t, ok := e.(*Token); ok {
			sb.WriteByte(' ')
			sb.WriteString(strconv.Quote(t.Text()))
		}
		sb.WriteByte('\n')
	}
	switch t := e.(type) {
	case *Token:
		line(t)
	case *Node:
		for ev := range t.PreorderWithTokens() {
			if ev.Event == Leave {
				if _, ok := ev.Element.(*Node); ok {
					depth--
				}
				continue
			}
			line(ev.Element)
			if _, ok := ev.Element.(*Node); ok {
				depth++
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
