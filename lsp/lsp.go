// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package lsp implements a language server for JSON documents.
//
// The server keeps a concrete syntax tree for each open document, reparsing
// the document on every change. It publishes the syntax errors of each parse
// as diagnostics, and answers document symbol and folding range requests from
// the tree. Because the tree is lossless, the server works on documents that
// are incomplete or invalid, as they usually are while being edited.
package lsp

import (
	"sync"

	"github.com/creachadair/jcst"
	"github.com/creachadair/jcst/green"
	"github.com/creachadair/jcst/parser"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const serverName = "jcst"

var log = commonlog.GetLogger("jcst.lsp")

// A Server is a JSON language server.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	cache   *green.Cache // shared by the parses of all documents

	mu   sync.Mutex
	docs map[protocol.DocumentUri]*Document
}

// A Document is the most recent parse of an open document.
type Document struct {
	Version protocol.Integer
	Text    string
	Index   *jcst.LineIndex
	Result  *parser.Result
}

func newDocument(version protocol.Integer, text string, c *green.Cache) *Document {
	return &Document{
		Version: version,
		Text:    text,
		Index:   jcst.NewLineIndex(text),
		Result:  parser.Parse(text, parser.WithCache(c)),
	}
}

// NewServer constructs a new language server reporting the given version.
func NewServer(version string) *Server {
	s := &Server{
		version: version,
		cache:   green.NewCache(),
		docs:    make(map[protocol.DocumentUri]*Document),
	}
	s.handler = protocol.Handler{
		Initialize:                 s.initialize,
		Initialized:                s.initialized,
		Shutdown:                   s.shutdown,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.textDocumentDidOpen,
		TextDocumentDidChange:      s.textDocumentDidChange,
		TextDocumentDidClose:       s.textDocumentDidClose,
		TextDocumentDocumentSymbol: s.textDocumentDocumentSymbol,
		TextDocumentFoldingRange:   s.textDocumentFoldingRange,
	}
	s.server = server.NewServer(&s.handler, serverName, false)
	return s
}

// RunStdio runs the server on the standard input and output streams until
// the client disconnects.
func (s *Server) RunStdio() error { return s.server.RunStdio() }

// Handler returns the protocol handler of s, whose methods dispatch client
// requests and notifications.
func (s *Server) Handler() *protocol.Handler { return &s.handler }

// Document returns the current state of the document at uri, or nil if that
// document is not open.
func (s *Server) Document(uri protocol.DocumentUri) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[uri]
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	caps := s.handler.CreateServerCapabilities()
	openClose := true
	change := protocol.TextDocumentSyncKindIncremental
	caps.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &openClose,
		Change:    &change,
	}
	if params.ClientInfo != nil {
		log.Infof("initialize: client %s", params.ClientInfo.Name)
	}
	return protocol.InitializeResult{
		Capabilities: caps,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	td := params.TextDocument
	doc := newDocument(td.Version, td.Text, s.cache)
	s.mu.Lock()
	s.docs[td.URI] = doc
	s.mu.Unlock()

	log.Debugf("open %s: %d bytes, %d errors", td.URI, len(td.Text), len(doc.Result.Errors))
	s.publish(ctx, td.URI, doc)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	old, ok := s.docs[uri]
	if !ok {
		s.mu.Unlock()
		log.Warningf("change to unopened document %s", uri)
		return nil
	}
	text := old.Text
	for _, change := range params.ContentChanges {
		text = ApplyChange(text, change)
	}
	doc := newDocument(params.TextDocument.Version, text, s.cache)
	s.docs[uri] = doc
	s.mu.Unlock()

	log.Debugf("change %s (v%d): %d errors", uri, doc.Version, len(doc.Result.Errors))
	s.publish(ctx, uri, doc)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	delete(s.docs, uri)
	s.mu.Unlock()

	// Clear any diagnostics the client is still showing.
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (s *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := s.Document(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	return DocumentSymbols(doc.Index, doc.Result.Syntax()), nil
}

func (s *Server) textDocumentFoldingRange(ctx *glsp.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	doc := s.Document(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	return FoldingRanges(doc.Index, doc.Result.Syntax()), nil
}

func (s *Server) publish(ctx *glsp.Context, uri protocol.DocumentUri, doc *Document) {
	version := protocol.UInteger(doc.Version)
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Version:     &version,
		Diagnostics: Diagnostics(doc.Index, doc.Result.Errors),
	})
}
