// Package lsp exposes the language service to editors over the Language
// Server Protocol. Documents are synced whole (full text on every
// change), mirroring the wholesale-replacement contract of the document
// binding: each change revalidates the full text and republishes the
// complete diagnostic set.
package lsp

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"sync"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"

	"github.com/featlab/featlab/internal/language"
)

const serverName = "featlab-ls"

// Notifier sends a server-to-client notification. In production it is
// backed by the jsonrpc2 connection.
type Notifier func(ctx context.Context, method string, params any) error

type Server struct {
	service *language.Service
	logger  *zap.Logger
	notify  Notifier

	mu         sync.Mutex
	docs       map[protocol.DocumentURI]string
	session    *language.Session
	sessionURI protocol.DocumentURI
}

func NewServer(service *language.Service, logger *zap.Logger) *Server {
	return &Server{
		service: service,
		logger:  logger,
		notify:  func(context.Context, string, any) error { return nil },
		docs:    make(map[protocol.DocumentURI]string),
	}
}

// SetNotifier wires the server to its client connection.
func (s *Server) SetNotifier(n Notifier) {
	s.notify = n
}

func (s *Server) Initialize(_ context.Context, _ *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	s.logger.Info("initializing")
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
			CompletionProvider: &protocol.CompletionOptions{
				TriggerCharacters: []string{" "},
			},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    serverName,
			Version: "0.1.0",
		},
	}, nil
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.setDocument(params.TextDocument.URI, params.TextDocument.Text)
	s.bindSession(params.TextDocument.URI, params.TextDocument.Text)
	s.publishDiagnostics(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	// full sync: the last change carries the whole document
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.setDocument(params.TextDocument.URI, text)
	s.mu.Lock()
	if s.session != nil && s.sessionURI == params.TextDocument.URI {
		s.session.SetText(text)
	}
	s.mu.Unlock()
	s.publishDiagnostics(ctx, params.TextDocument.URI, text)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	if s.session != nil && s.sessionURI == params.TextDocument.URI {
		s.session.Close()
		s.session = nil
		s.sessionURI = ""
	}
	s.mu.Unlock()
	// clear markers for the closed document
	return s.notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
}

func (s *Server) Completion(_ context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return &protocol.CompletionList{Items: []protocol.CompletionItem{}}, nil
	}

	prefix := linePrefix(text, params.Position)
	items := s.service.Complete(prefix)

	out := make([]protocol.CompletionItem, 0, len(items))
	for _, item := range items {
		ci := protocol.CompletionItem{
			Label:      item.Label,
			Kind:       protocol.CompletionItemKindSnippet,
			InsertText: item.InsertText,
		}
		if item.IsSnippet {
			ci.InsertTextFormat = protocol.InsertTextFormatSnippet
		} else {
			ci.InsertTextFormat = protocol.InsertTextFormatPlainText
		}
		out = append(out, ci)
	}
	return &protocol.CompletionList{IsIncomplete: false, Items: out}, nil
}

func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info("shutting down")
	return nil
}

func (s *Server) setDocument(docURI protocol.DocumentURI, text string) {
	s.mu.Lock()
	s.docs[docURI] = text
	s.mu.Unlock()
}

// bindSession opens a language session for the document; opening a new
// document tears down the previous session.
func (s *Server) bindSession(docURI protocol.DocumentURI, text string) {
	s.mu.Lock()
	s.session = s.service.Open(documentPath(docURI), text)
	s.sessionURI = docURI
	s.mu.Unlock()
}

// documentPath maps a file URI to its filesystem path; non-file URIs
// (untitled buffers) fall back to the raw URI string.
func documentPath(docURI protocol.DocumentURI) string {
	if parsed, err := url.Parse(string(docURI)); err == nil && parsed.Scheme == uri.FileScheme {
		return docURI.Filename()
	}
	return string(docURI)
}

func (s *Server) document(docURI protocol.DocumentURI) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.docs[docURI]
	return text, ok
}

func (s *Server) publishDiagnostics(ctx context.Context, docURI protocol.DocumentURI, text string) {
	diags := s.service.Diagnostics(text)
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		line := uint32(d.Line - 1)
		out = append(out, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: line, Character: 0},
				End:   protocol.Position{Line: line, Character: uint32(lineLength(text, d.Line))},
			},
			Severity: protocol.DiagnosticSeverityError,
			Source:   serverName,
			Message:  d.Message,
		})
	}
	if err := s.notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: out,
	}); err != nil {
		s.logger.Warn("publishing diagnostics", zap.Error(err))
	}
}

// linePrefix returns the text of the cursor's line up to the cursor.
func linePrefix(text string, pos protocol.Position) string {
	lines := strings.Split(text, "\n")
	if int(pos.Line) >= len(lines) {
		return ""
	}
	line := lines[pos.Line]
	if int(pos.Character) < len(line) {
		return line[:pos.Character]
	}
	return line
}

func lineLength(text string, line1 int) int {
	lines := strings.Split(text, "\n")
	if line1 < 1 || line1 > len(lines) {
		return 0
	}
	return len(lines[line1-1])
}

// Handler dispatches incoming jsonrpc2 requests to the typed methods.
func (s *Server) Handler() jsonrpc2.Handler {
	return func(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
		switch req.Method() {
		case protocol.MethodInitialize:
			var params protocol.InitializeParams
			if err := json.Unmarshal(req.Params(), &params); err != nil {
				return reply(ctx, nil, err)
			}
			result, err := s.Initialize(ctx, &params)
			return reply(ctx, result, err)

		case protocol.MethodInitialized:
			return reply(ctx, nil, nil)

		case protocol.MethodTextDocumentDidOpen:
			var params protocol.DidOpenTextDocumentParams
			if err := json.Unmarshal(req.Params(), &params); err != nil {
				return reply(ctx, nil, err)
			}
			return reply(ctx, nil, s.DidOpen(ctx, &params))

		case protocol.MethodTextDocumentDidChange:
			var params protocol.DidChangeTextDocumentParams
			if err := json.Unmarshal(req.Params(), &params); err != nil {
				return reply(ctx, nil, err)
			}
			return reply(ctx, nil, s.DidChange(ctx, &params))

		case protocol.MethodTextDocumentDidClose:
			var params protocol.DidCloseTextDocumentParams
			if err := json.Unmarshal(req.Params(), &params); err != nil {
				return reply(ctx, nil, err)
			}
			return reply(ctx, nil, s.DidClose(ctx, &params))

		case protocol.MethodTextDocumentCompletion:
			var params protocol.CompletionParams
			if err := json.Unmarshal(req.Params(), &params); err != nil {
				return reply(ctx, nil, err)
			}
			result, err := s.Completion(ctx, &params)
			return reply(ctx, result, err)

		case protocol.MethodShutdown:
			return reply(ctx, nil, s.Shutdown(ctx))

		case protocol.MethodExit:
			return nil

		default:
			return reply(ctx, nil, jsonrpc2.ErrMethodNotFound)
		}
	}
}
