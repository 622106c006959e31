// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package green

import (
	"strings"
	"sync"

	"github.com/creachadair/jcst"
)

// maxCachedChildren is the largest number of children a node may have to be
// eligible for deduplication. Larger nodes are rarely repeated.
const maxCachedChildren = 3

// A Cache deduplicates green tokens and small green nodes, so that identical
// subtrees are shared by reference. Two tokens are identical if they have the
// same kind and text; two nodes are identical if they have the same kind and
// the same (identical) children.
//
// A Cache may be shared by several builders, including builders running
// concurrently. The zero value is ready for use. A nil *Cache is valid and
// performs no deduplication.
type Cache struct {
	mu     sync.Mutex
	tokens map[tokenKey]*Token
	nodes  map[nodeKey]*Node

	hits, misses int
}

type tokenKey struct {
	kind jcst.Kind
	text string
}

type nodeKey struct {
	kind jcst.Kind
	n    int
	kids [maxCachedChildren]Element
}

// NewCache constructs a new empty cache.
func NewCache() *Cache { return new(Cache) }

// token returns a token of the given kind and text, reusing a previously
// cached token if possible.
func (c *Cache) token(kind jcst.Kind, text string) *Token {
	if c == nil {
		return &Token{kind: kind, text: text}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	key := tokenKey{kind, text}
	if t, ok := c.tokens[key]; ok {
		c.hits++
		return t
	}
	c.misses++
	if c.tokens == nil {
		c.tokens = make(map[tokenKey]*Token)
	}

	// Copy the text, so that the cache does not pin a large input buffer
	// through a small substring of it.
	t := &Token{kind: kind, text: strings.Clone(text)}
	key.text = t.text
	c.tokens[key] = t
	return t
}

// node returns a node of the given kind and children, reusing a previously
// cached node if possible.
func (c *Cache) node(kind jcst.Kind, kids []Element) *Node {
	if c == nil || len(kids) > maxCachedChildren {
		return NewNode(kind, kids)
	}
	key := nodeKey{kind: kind, n: len(kids)}
	copy(key.kids[:], kids)

	c.mu.Lock()
	defer c.mu.Unlock()
	if n, ok := c.nodes[key]; ok {
		c.hits++
		return n
	}
	c.misses++
	if c.nodes == nil {
		c.nodes = make(map[nodeKey]*Node)
	}
	n := NewNode(kind, kids)
	c.nodes[key] = n
	return n
}

// CacheStats records the effectiveness of a Cache.
type CacheStats struct {
	Tokens int // distinct tokens stored
	Nodes  int // distinct nodes stored
	Hits   int // lookups satisfied by an existing element
	Misses int // lookups that stored a new element
}

// Stats reports statistics about c.
func (c *Cache) Stats() CacheStats {
	if c == nil {
		return CacheStats{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheStats{
		Tokens: len(c.tokens),
		Nodes:  len(c.nodes),
		Hits:   c.hits,
		Misses: c.misses,
	}
}
