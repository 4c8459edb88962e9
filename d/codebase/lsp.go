package codebase

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/virens/dlt/d/outline"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "dlt"

type LSPServer struct {
	codebase *Codebase
	watcher  *FileWatcher
	handler  protocol.Handler
	server   *server.Server
	version  string
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	config, err := LoadConfig(rootDir)
	if err != nil {
		config = DefaultConfig()
	}
	ls.codebase = New(rootDir, config)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.DocumentSymbolProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.codebase.ScanAll()
	ls.watcher = NewFileWatcher(ls.codebase)
	ls.watcher.Start()
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publishDiagnostics(ctx, params.TextDocument.URI, path)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.codebase.UpdateFile(path, []byte(textChange.Text))
			ls.publishDiagnostics(ctx, params.TextDocument.URI, path)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	// Clear stale squiggles for the closed document.
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else {
		ls.codebase.ScanFile(path)
	}
	ls.publishDiagnostics(ctx, params.TextDocument.URI, path)
	return nil
}

func (ls *LSPServer) publishDiagnostics(ctx *glsp.Context, uri string, path string) {
	file := ls.codebase.Lookup(path)
	if file == nil {
		return
	}

	diagnostics := make([]protocol.Diagnostic, 0, len(file.Diagnostics))
	source := lsName
	for _, d := range file.Diagnostics {
		severity := protocol.DiagnosticSeverityWarning
		if d.IsError {
			severity = protocol.DiagnosticSeverityError
		}
		pos := protocol.Position{
			Line:      uinteger(d.Line - 1),
			Character: uinteger(d.Column - 1),
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    protocol.Range{Start: pos, End: pos},
			Severity: &severity,
			Source:   &source,
			Message:  d.Message,
		})
	}

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	file := ls.codebase.Lookup(path)
	if file == nil {
		if err := ls.codebase.ScanFile(path); err != nil {
			return nil, nil
		}
		file = ls.codebase.Lookup(path)
	}
	if file == nil {
		return nil, nil
	}

	return toDocumentSymbols(file.Outline), nil
}

func toDocumentSymbols(symbols []*outline.Symbol) []protocol.DocumentSymbol {
	var result []protocol.DocumentSymbol
	for _, s := range symbols {
		span := protocol.Range{
			Start: protocol.Position{
				Line:      uinteger(s.Span.Start.Line - 1),
				Character: uinteger(s.Span.Start.Column - 1),
			},
			End: protocol.Position{
				Line:      uinteger(s.Span.End.Line - 1),
				Character: uinteger(s.Span.End.Column - 1),
			},
		}
		ds := protocol.DocumentSymbol{
			Name:           s.Name,
			Kind:           toProtocolSymbolKind(s.Kind),
			Range:          span,
			SelectionRange: span,
			Children:       toDocumentSymbols(s.Children),
		}
		if s.Detail != "" {
			detail := s.Detail
			ds.Detail = &detail
		}
		result = append(result, ds)
	}
	return result
}

func toProtocolSymbolKind(kind outline.SymbolKind) protocol.SymbolKind {
	switch kind {
	case outline.SymbolModule:
		return protocol.SymbolKindModule
	case outline.SymbolClass:
		return protocol.SymbolKindClass
	case outline.SymbolInterface:
		return protocol.SymbolKindInterface
	case outline.SymbolStruct, outline.SymbolUnion:
		return protocol.SymbolKindStruct
	case outline.SymbolEnum:
		return protocol.SymbolKindEnum
	case outline.SymbolMember:
		return protocol.SymbolKindEnumMember
	case outline.SymbolFunction, outline.SymbolUnittest:
		return protocol.SymbolKindFunction
	case outline.SymbolVariable:
		return protocol.SymbolKindVariable
	case outline.SymbolTemplate:
		return protocol.SymbolKindNamespace
	case outline.SymbolAlias:
		return protocol.SymbolKindTypeParameter
	default:
		return protocol.SymbolKindObject
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func uinteger(v int) protocol.UInteger {
	if v < 0 {
		v = 0
	}
	return protocol.UInteger(v)
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
