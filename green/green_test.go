// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package green_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/creachadair/jcst"
	"github.com/creachadair/jcst/green"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

// build constructs the tree for {"a": [1]} by hand.
func build(b *green.Builder) *green.Node {
	b.StartNode(jcst.Root)
	b.StartNode(jcst.Object)
	b.Token(jcst.LBrace, "{")
	b.Token(jcst.String, `"a"`)
	b.Token(jcst.Colon, ":")
	b.Token(jcst.Whitespace, " ")
	b.StartNode(jcst.Array)
	b.Token(jcst.LSquare, "[")
	b.Token(jcst.Number, "1")
	b.Token(jcst.RSquare, "]")
	b.FinishNode()
	b.Token(jcst.RBrace, "}")
	b.FinishNode()
	b.FinishNode()
	return b.Finish()
}

func kinds(n *green.Node) []jcst.Kind {
	var out []jcst.Kind
	for _, c := range n.Children() {
		out = append(out, c.Kind())
	}
	return out
}

func TestBuilder(t *testing.T) {
	const want = `{"a": [1]}`
	var b green.Builder // the zero value is ready for use
	root := build(&b)

	if got := root.Text(); got != want {
		t.Errorf("Text: got %#q, want %#q", got, want)
	}
	if got := root.TextLen(); got != len(want) {
		t.Errorf("TextLen: got %d, want %d", got, len(want))
	}
	if root.Kind() != jcst.Root || root.NumChildren() != 1 {
		t.Fatalf("Root: got %v, want Root with one child", root)
	}
	obj := root.Child(0).(*green.Node)
	if diff := cmp.Diff([]jcst.Kind{
		jcst.LBrace, jcst.String, jcst.Colon, jcst.Whitespace, jcst.Array, jcst.RBrace,
	}, kinds(obj)); diff != "" {
		t.Errorf("Object children (-want, +got):\n%s", diff)
	}

	// Every node's length is the sum of its children's lengths.
	var check func(*green.Node)
	check = func(n *green.Node) {
		var sum int
		for _, c := range n.Children() {
			sum += c.TextLen()
			if cn, ok := c.(*green.Node); ok {
				check(cn)
			}
		}
		if sum != n.TextLen() {
			t.Errorf("%v: TextLen is %d, children sum to %d", n.Kind(), n.TextLen(), sum)
		}
	}
	check(root)

	var toks []string
	for tok := range root.Tokens() {
		toks = append(toks, tok.Text())
	}
	if diff := cmp.Diff([]string{"{", `"a"`, ":", " ", "[", "1", "]", "}"}, toks); diff != "" {
		t.Errorf("Tokens (-want, +got):\n%s", diff)
	}

	var sb strings.Builder
	if n, err := root.WriteTo(&sb); err != nil || n != int64(len(want)) {
		t.Errorf("WriteTo: got (%d, %v), want (%d, nil)", n, err, len(want))
	} else if sb.String() != want {
		t.Errorf("WriteTo: got %#q, want %#q", sb.String(), want)
	}

	// The builder can be reused after Finish.
	if got := build(&b).Text(); got != want {
		t.Errorf("Reuse: got %#q, want %#q", got, want)
	}
}

func TestCheckpoint(t *testing.T) {
	b := green.NewBuilder(nil)
	b.StartNode(jcst.Root)
	cp := b.Checkpoint()
	b.Token(jcst.Number, "1")
	b.Token(jcst.Whitespace, " ")
	b.StartNodeAt(cp, jcst.Bad)
	b.Token(jcst.Number, "2")
	b.FinishNode()
	if got := b.Depth(); got != 1 {
		t.Errorf("Depth: got %d, want 1", got)
	}
	b.FinishNode()
	root := b.Finish()

	if diff := cmp.Diff([]jcst.Kind{jcst.Bad}, kinds(root)); diff != "" {
		t.Errorf("Root children (-want, +got):\n%s", diff)
	}
	bad := root.Child(0).(*green.Node)
	if diff := cmp.Diff([]jcst.Kind{jcst.Number, jcst.Whitespace, jcst.Number}, kinds(bad)); diff != "" {
		t.Errorf("Bad children (-want, +got):\n%s", diff)
	}
	if got := root.Text(); got != "1 2" {
		t.Errorf("Text: got %#q, want %#q", got, "1 2")
	}
}

func TestBuilderMisuse(t *testing.T) {
	t.Run("FinishNodeEmpty", func(t *testing.T) {
		mtest.MustPanic(t, func() { green.NewBuilder(nil).FinishNode() })
	})
	t.Run("FinishOpen", func(t *testing.T) {
		b := green.NewBuilder(nil)
		b.StartNode(jcst.Root)
		mtest.MustPanic(t, func() { b.Finish() })
	})
	t.Run("FinishEmpty", func(t *testing.T) {
		mtest.MustPanic(t, func() { green.NewBuilder(nil).Finish() })
	})
	t.Run("FinishToken", func(t *testing.T) {
		b := green.NewBuilder(nil)
		b.Token(jcst.Number, "1")
		mtest.MustPanic(t, func() { b.Finish() })
	})
	t.Run("FinishMany", func(t *testing.T) {
		b := green.NewBuilder(nil)
		b.StartNode(jcst.Root)
		b.FinishNode()
		b.StartNode(jcst.Root)
		b.FinishNode()
		mtest.MustPanic(t, func() { b.Finish() })
	})
	t.Run("NodeKindToken", func(t *testing.T) {
		mtest.MustPanic(t, func() { green.NewBuilder(nil).Token(jcst.Object, "{}") })
	})
	t.Run("TokenKindNode", func(t *testing.T) {
		mtest.MustPanic(t, func() { green.NewBuilder(nil).StartNode(jcst.Comma) })
	})
	t.Run("StaleCheckpoint", func(t *testing.T) {
		b := green.NewBuilder(nil)
		b.StartNode(jcst.Root)
		cp := b.Checkpoint()
		b.Token(jcst.LSquare, "[")
		b.StartNode(jcst.Array)
		mtest.MustPanic(t, func() { b.StartNodeAt(cp, jcst.Bad) })
	})
	t.Run("Constructors", func(t *testing.T) {
		mtest.MustPanic(t, func() { green.NewToken(jcst.Root, "") })
		mtest.MustPanic(t, func() { green.NewToken(jcst.EOF, "") })
		mtest.MustPanic(t, func() { green.NewNode(jcst.String, nil) })
	})
}

func TestNewNode(t *testing.T) {
	n := green.NewNode(jcst.Array, []green.Element{
		green.NewToken(jcst.LSquare, "["),
		green.NewNode(jcst.Object, []green.Element{
			green.NewToken(jcst.LBrace, "{"),
			green.NewToken(jcst.RBrace, "}"),
		}),
		green.NewToken(jcst.RSquare, "]"),
	})
	if got := n.Text(); got != "[{}]" {
		t.Errorf("Text: got %#q, want %#q", got, "[{}]")
	}
	if got := n.String(); got != "Array(len=4, children=3)" {
		t.Errorf("String: got %q", got)
	}
	if got := n.Child(0).(*green.Token).String(); got != `LSquare "["` {
		t.Errorf("Token string: got %q", got)
	}
}

func TestCache(t *testing.T) {
	c := green.NewCache()

	var wg sync.WaitGroup
	roots := make([]*green.Node, 8)
	for i := range roots {
		wg.Add(1)
		go func() {
			defer wg.Done()
			roots[i] = build(green.NewBuilder(c))
		}()
	}
	wg.Wait()

	// Identical small subtrees built through the same cache are shared.
	array := func(r *green.Node) green.Element { return r.Child(0).(*green.Node).Child(4) }
	for i, r := range roots {
		if got := r.Text(); got != `{"a": [1]}` {
			t.Errorf("Root %d: text is %#q", i, got)
		}
		if array(r) != array(roots[0]) {
			t.Errorf("Root %d: array is not shared", i)
		}
	}
	st := c.Stats()
	if st.Tokens != 8 {
		t.Errorf("Stats: got %d tokens, want 8", st.Tokens)
	}
	if st.Hits == 0 {
		t.Error("Stats: got no cache hits")
	}

	// Nodes with too many children are not cached, but their tokens are.
	b := green.NewBuilder(c)
	b.StartNode(jcst.Root)
	b.Token(jcst.Number, "1")
	b.Token(jcst.Whitespace, " ")
	b.Token(jcst.Number, "1")
	b.Token(jcst.Whitespace, " ")
	b.FinishNode()
	r := b.Finish()
	if r.Child(0) != r.Child(2) {
		t.Error("Identical tokens are not shared")
	}

	var nc *green.Cache
	if st := nc.Stats(); st != (green.CacheStats{}) {
		t.Errorf("Nil cache stats: got %+v, want zero", st)
	}

	// A zero Cache is ready for use.
	var zc green.Cache
	r1 := build(green.NewBuilder(&zc))
	r2 := build(green.NewBuilder(&zc))
	if array(r1) != array(r2) {
		t.Error("Zero cache: array is not shared")
	}
	if st := zc.Stats(); st.Tokens != 8 || st.Misses == 0 {
		t.Errorf("Zero cache stats: got %+v", st)
	}
}
