// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package lsp

import (
	"strconv"

	"github.com/creachadair/jcst"
	"github.com/creachadair/jcst/syntax"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Position converts a byte offset to a protocol position, whose character
// offset is measured in UTF-16 code units.
func Position(idx *jcst.LineIndex, offset int) protocol.Position {
	lc := idx.LineCol(offset)
	return protocol.Position{
		Line:      protocol.UInteger(lc.Line - 1),
		Character: protocol.UInteger(idx.UTF16Column(offset)),
	}
}

// Range converts a span to a protocol range.
func Range(idx *jcst.LineIndex, span jcst.Span) protocol.Range {
	return protocol.Range{Start: Position(idx, span.Pos), End: Position(idx, span.End)}
}

// Diagnostics converts syntax errors to protocol diagnostics.
func Diagnostics(idx *jcst.LineIndex, errs []*jcst.SyntaxError) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(errs))
	sev := protocol.DiagnosticSeverityError
	src := serverName
	for _, e := range errs {
		out = append(out, protocol.Diagnostic{
			Range:    Range(idx, e.Span),
			Severity: &sev,
			Source:   &src,
			Message:  e.Message,
		})
	}
	return out
}

// DocumentSymbols returns an outline of the document rooted at root. Each
// member of an object is a symbol named by its key, and each element of an
// array is a symbol named by its index. A scalar document has no symbols.
func DocumentSymbols(idx *jcst.LineIndex, root *syntax.Node) []protocol.DocumentSymbol {
	v, ok := syntax.Value(root).(*syntax.Node)
	if !ok {
		return nil
	}
	return childSymbols(idx, v)
}

func childSymbols(idx *jcst.LineIndex, n *syntax.Node) []protocol.DocumentSymbol {
	var out []protocol.DocumentSymbol
	switch n.Kind() {
	case jcst.Object:
		for m := range syntax.Members(n) {
			sym := protocol.DocumentSymbol{
				Name:           m.Name(),
				Kind:           protocol.SymbolKindKey,
				Range:          Range(idx, m.Key.Span()),
				SelectionRange: Range(idx, m.Key.Span()),
			}
			if m.Value != nil && m.Value.Kind() != jcst.Bad {
				fillSymbol(idx, &sym, m.Value)
				sym.Range = Range(idx, jcst.Span{Pos: m.Key.Span().Pos, End: m.Value.Span().End})
			}
			out = append(out, sym)
		}
	case jcst.Array:
		var i int
		for e := range syntax.Values(n) {
			if e.Kind() == jcst.Bad {
				continue
			}
			sym := protocol.DocumentSymbol{
				Name:           strconv.Itoa(i),
				Range:          Range(idx, e.Span()),
				SelectionRange: Range(idx, e.Span()),
			}
			fillSymbol(idx, &sym, e)
			out = append(out, sym)
			i++
		}
	}
	return out
}

// fillSymbol populates the kind, detail, and children of sym from the value
// element e.
func fillSymbol(idx *jcst.LineIndex, sym *protocol.DocumentSymbol, e syntax.Element) {
	switch e.Kind() {
	case jcst.Object:
		sym.Kind = protocol.SymbolKindObject
	case jcst.Array:
		sym.Kind = protocol.SymbolKindArray
	case jcst.String:
		sym.Kind = protocol.SymbolKindString
	case jcst.Number:
		sym.Kind = protocol.SymbolKindNumber
	case jcst.True, jcst.False:
		sym.Kind = protocol.SymbolKindBoolean
	case jcst.Null:
		sym.Kind = protocol.SymbolKindNull
	}
	if n, ok := e.(*syntax.Node); ok {
		sym.Children = childSymbols(idx, n)
	} else {
		detail := e.Text()
		sym.Detail = &detail
	}
}

// FoldingRanges returns a folding range for each object and array that spans
// more than one line.
func FoldingRanges(idx *jcst.LineIndex, root *syntax.Node) []protocol.FoldingRange {
	var out []protocol.FoldingRange
	for n := range root.Descendants() {
		if k := n.Kind(); k != jcst.Object && k != jcst.Array {
			continue
		}
		sp := n.Span()
		first, last := idx.LineCol(sp.Pos).Line, idx.LineCol(sp.End).Line
		if first < last {
			out = append(out, protocol.FoldingRange{
				StartLine: protocol.UInteger(first - 1),
				EndLine:   protocol.UInteger(last - 1),
			})
		}
	}
	return out
}

// ApplyChange returns the result of applying a content change event to text.
// A change without a range replaces the whole text.
func ApplyChange(text string, change any) string {
	switch c := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return c.Text
	case protocol.TextDocumentContentChangeEvent:
		if c.Range == nil {
			return c.Text
		}
		idx := jcst.NewLineIndex(text)
		start := idx.Offset(int(c.Range.Start.Line), int(c.Range.Start.Character))
		end := max(idx.Offset(int(c.Range.End.Line), int(c.Range.End.Character)), start)
		return text[:start] + c.Text + text[end:]
	}
	return text
}
