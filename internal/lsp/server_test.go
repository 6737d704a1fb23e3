package lsp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/featlab/featlab/internal/catalog"
	"github.com/featlab/featlab/internal/language"
)

type published struct {
	method string
	params *protocol.PublishDiagnosticsParams
}

func newTestServer(patterns ...string) (*Server, *[]published) {
	store := catalog.NewStore()
	store.Replace(patterns)
	srv := NewServer(language.NewService(store), zap.NewNop())

	var sent []published
	srv.SetNotifier(func(_ context.Context, method string, params any) error {
		if p, ok := params.(*protocol.PublishDiagnosticsParams); ok {
			sent = append(sent, published{method: method, params: p})
		}
		return nil
	})
	return srv, &sent
}

func TestInitialize_AdvertisesFullSyncAndCompletion(t *testing.T) {
	srv, _ := newTestServer()

	result, err := srv.Initialize(context.Background(), &protocol.InitializeParams{})

	require.NoError(t, err)
	sync, ok := result.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	require.True(t, ok)
	assert.Equal(t, protocol.TextDocumentSyncKindFull, sync.Change)
	require.NotNil(t, result.Capabilities.CompletionProvider)
}

func TestDidOpen_PublishesDiagnostics(t *testing.T) {
	srv, sent := newTestServer()

	err := srv.DidOpen(context.Background(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:  "file:///specs/x.feature",
			Text: "Feature: X\nScenario: S\n  When click\n",
		},
	})

	require.NoError(t, err)
	require.Len(t, *sent, 1)
	diags := (*sent)[0].params.Diagnostics
	require.Len(t, diags, 1)
	assert.Equal(t, uint32(2), diags[0].Range.Start.Line)
	assert.Equal(t, "When step cannot appear before a Given step.", diags[0].Message)
	assert.Equal(t, protocol.DiagnosticSeverityError, diags[0].Severity)
}

func TestDidChange_RepublishesFullSet(t *testing.T) {
	srv, sent := newTestServer()
	uri := protocol.DocumentURI("file:///specs/x.feature")

	require.NoError(t, srv.DidOpen(context.Background(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "Feature: X\nScenario: S\n  When click\n"},
	}))
	require.NoError(t, srv.DidChange(context.Background(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri}},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{
			{Text: "Feature: X\nScenario: S\n  Given a\n  When click\n"},
		},
	}))

	require.Len(t, *sent, 2)
	assert.Empty(t, (*sent)[1].params.Diagnostics)
}

func TestDidClose_ClearsDiagnostics(t *testing.T) {
	srv, sent := newTestServer()
	uri := protocol.DocumentURI("file:///specs/x.feature")

	require.NoError(t, srv.DidOpen(context.Background(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "Scenario: S\n"},
	}))
	require.NoError(t, srv.DidClose(context.Background(), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))

	require.Len(t, *sent, 2)
	assert.Empty(t, (*sent)[1].params.Diagnostics)
}

func TestDidOpen_BindsSessionToFilePath(t *testing.T) {
	srv, _ := newTestServer()

	require.NoError(t, srv.DidOpen(context.Background(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: "file:///specs/x.feature", Text: "Feature: X\n"},
	}))

	require.NotNil(t, srv.session)
	assert.Equal(t, "/specs/x.feature", srv.session.Document().Path)

	require.NoError(t, srv.DidClose(context.Background(), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///specs/x.feature"},
	}))
	assert.Nil(t, srv.session)
}

func TestCompletion_ReturnsSnippetItems(t *testing.T) {
	srv, _ := newTestServer("a {string} value of {int}")
	uri := protocol.DocumentURI("file:///specs/x.feature")

	require.NoError(t, srv.DidOpen(context.Background(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Text: "Feature: X\nScenario: S\n  Given val"},
	}))

	list, err := srv.Completion(context.Background(), &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 2, Character: 11},
		},
	})

	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "a {string} value of {int}", list.Items[0].Label)
	assert.Equal(t, `Given a "${1:value}" value of ${2:0}`, list.Items[0].InsertText)
	assert.Equal(t, protocol.InsertTextFormatSnippet, list.Items[0].InsertTextFormat)
}

func TestCompletion_UnknownDocumentEmpty(t *testing.T) {
	srv, _ := newTestServer("a user")

	list, err := srv.Completion(context.Background(), &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///missing.feature"},
		},
	})

	require.NoError(t, err)
	assert.Empty(t, list.Items)
}
