package codebase

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "modinfo"

type LSPServer struct {
	codebase  *Codebase
	cacheSize int
	watch     time.Duration
	watcher   *FileWatcher
	handler   protocol.Handler
	server    *server.Server
	version   string

	mu     sync.Mutex
	notify glsp.NotifyFunc
	// published remembers which files were last sent non-empty
	// diagnostics, so removals can clear them.
	published map[string]bool
}

// NewLSPServer returns a language server for module-info.java files. A
// positive watch interval polls the workspace for changes made outside
// the editor.
func NewLSPServer(version string, cacheSize int, watch time.Duration) *LSPServer {
	ls := &LSPServer{
		version:   version,
		cacheSize: cacheSize,
		watch:     watch,
		published: make(map[string]bool),
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentCompletion: ls.textDocumentCompletion,
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

	ls.codebase = New(rootDir, ls.cacheSize)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{" ", ","},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.mu.Lock()
	ls.notify = ctx.Notify
	ls.mu.Unlock()

	if err := ls.codebase.ScanAll(); err != nil {
		log.Errorf("scan %s: %v", ls.codebase.RootDir(), err)
	}
	ls.publishAll()

	if ls.watch > 0 {
		ls.watcher = NewFileWatcher(ls.codebase, ls.watch, func(string, bool) { ls.publishAll() })
		ls.watcher.Start()
	}
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
	return ls.update(params.TextDocument.URI, []byte(params.TextDocument.Text))
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		return ls.update(params.TextDocument.URI, []byte(textChange.Text))
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if err := ls.codebase.ScanFile(path); err != nil {
		ls.codebase.RemoveFile(path)
	}
	ls.publishAll()
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		return ls.update(params.TextDocument.URI, []byte(*params.Text))
	}
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if err := ls.codebase.ScanFile(path); err != nil {
		log.Warningf("rescan %s: %v", path, err)
	}
	ls.publishAll()
	return nil
}

func (ls *LSPServer) update(uri string, content []byte) error {
	path, err := uriToPath(uri)
	if err != nil || !IsModuleInfo(path) {
		return nil
	}
	ls.codebase.UpdateFile(path, content)
	ls.publishAll()
	return nil
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	line := int(params.Position.Line) + 1
	col := int(params.Position.Character)

	completions := ls.codebase.CompletionsAtPoint(path, line, col)
	if len(completions) == 0 {
		return nil, nil
	}

	var items []protocol.CompletionItem
	for _, c := range completions {
		kind := toProtocolKind(c.Kind)
		detail := c.Detail
		insertText := c.InsertText
		items = append(items, protocol.CompletionItem{
			Label:      c.Label,
			Kind:       &kind,
			Detail:     &detail,
			InsertText: &insertText,
		})
	}

	return items, nil
}

// publishAll sends the problems of every tracked file, grouped by file,
// and clears diagnostics of files that no longer have any.
func (ls *LSPServer) publishAll() {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.notify == nil {
		return
	}

	byPath := DiagnosticsByPath(ls.codebase.Problems())
	for path := range ls.published {
		if _, ok := byPath[path]; !ok {
			byPath[path] = []protocol.Diagnostic{}
		}
	}

	for path, diagnostics := range byPath {
		ls.notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
			URI:         pathToURI(path),
			Diagnostics: diagnostics,
		})
		if len(diagnostics) > 0 {
			ls.published[path] = true
		} else {
			delete(ls.published, path)
		}
	}
}

// DiagnosticsByPath converts problems to LSP diagnostics keyed by file.
func DiagnosticsByPath(problems []Problem) map[string][]protocol.Diagnostic {
	out := make(map[string][]protocol.Diagnostic)
	for _, p := range problems {
		out[p.Path] = append(out[p.Path], toDiagnostic(p))
	}
	return out
}

func toDiagnostic(p Problem) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	if p.Severity == SeverityWarning {
		severity = protocol.DiagnosticSeverityWarning
	}
	source := lsName
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocolPosition(p.Line, p.Column),
			End:   protocolPosition(p.EndLine, p.EndColumn),
		},
		Severity: &severity,
		Source:   &source,
		Message:  p.Message,
	}
}

func protocolPosition(line, column int) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(max(line-1, 0)),
		Character: protocol.UInteger(max(column, 0)),
	}
}

func toProtocolKind(kind CompletionKind) protocol.CompletionItemKind {
	switch kind {
	case CompletionKindModule:
		return protocol.CompletionItemKindModule
	case CompletionKindKeyword:
		return protocol.CompletionItemKindKeyword
	default:
		return protocol.CompletionItemKindText
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

func pathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
