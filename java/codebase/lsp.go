package codebase

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/polydoc/java"
)

const lsName = "polydoc"

// maxSymbols bounds workspace/symbol answers for substring queries.
const maxSymbols = 200

type LSPServer struct {
	workspace *Workspace
	watcher   *FileWatcher
	opts      []Option
	handler   protocol.Handler
	server    *server.Server
	version   string
}

// NewLSPServer returns a server whose workspace is created on
// initialize with opts.
func NewLSPServer(version string, opts ...Option) *LSPServer {
	ls := &LSPServer{
		version: version,
		opts:    opts,
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
		TextDocumentHover:      ls.textDocumentHover,
		TextDocumentDefinition: ls.textDocumentDefinition,
		TextDocumentCompletion: ls.textDocumentCompletion,
		WorkspaceSymbol:        ls.workspaceSymbol,
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

	ls.workspace = New([]string{rootDir}, ls.opts...)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.HoverProvider = true
	capabilities.DefinitionProvider = true
	capabilities.WorkspaceSymbolProvider = true
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"#"},
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
	if err := ls.workspace.ScanAll(); err != nil {
		log.Errorf("%s", err)
	}
	ls.watcher = NewFileWatcher(ls.workspace)
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
	ls.workspace.UpdateFile(path, []byte(params.TextDocument.Text))
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
			ls.workspace.UpdateFile(path, []byte(textChange.Text))
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.workspace.UpdateFile(path, []byte(*params.Text))
	} else if err := ls.workspace.ScanFile(path); err != nil {
		log.Warningf("%s", err)
	}
	return nil
}

// snapshot logs a failed rebuild and falls back to the last good one.
func (ls *LSPServer) snapshot() *Snapshot {
	snap, err := ls.workspace.Snapshot(context.Background())
	if err != nil {
		log.Errorf("%s", err)
	}
	return snap
}

// resolveAt resolves the reference under the cursor.
func (ls *LSPServer) resolveAt(uri string, pos protocol.Position) (*Snapshot, java.Element) {
	path, err := uriToPath(uri)
	if err != nil {
		return nil, nil
	}
	content, ok := ls.workspace.GetFile(path)
	if !ok {
		return nil, nil
	}
	snap := ls.snapshot()
	if snap == nil {
		return nil, nil
	}

	line := int(pos.Line) + 1
	text := ReferenceAt(lineAt(content, line), int(pos.Character))
	if text == "" {
		return snap, nil
	}
	e, err := snap.Resolve(path, line, text)
	if err != nil {
		log.Debugf("%s:%d: %s", path, line, err)
		return snap, nil
	}
	return snap, e
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	snap, e := ls.resolveAt(params.TextDocument.URI, params.Position)
	if e == nil {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: snap.Describe(e),
		},
	}, nil
}

func (ls *LSPServer) textDocumentDefinition(ctx *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	snap, e := ls.resolveAt(params.TextDocument.URI, params.Position)
	if e == nil {
		return nil, nil
	}
	loc, ok := location(snap, e)
	if !ok {
		return nil, nil
	}
	return loc, nil
}

// workspaceSymbol resolves the query as a reference from nowhere. When
// that fails, it lists the types whose qualified name contains it.
func (ls *LSPServer) workspaceSymbol(ctx *glsp.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	snap := ls.snapshot()
	if snap == nil || params.Query == "" {
		return nil, nil
	}

	var matches []java.Element
	if e, err := snap.Signatures.Resolve(nil, params.Query); err == nil && e != nil {
		matches = append(matches, e)
	} else {
		for _, t := range snap.Universe.Types() {
			if strings.Contains(t.QualifiedName(), params.Query) {
				matches = append(matches, t)
			}
			if len(matches) == maxSymbols {
				break
			}
		}
	}

	var out []protocol.SymbolInformation
	for _, e := range matches {
		loc, ok := location(snap, e)
		if !ok {
			continue
		}
		info := protocol.SymbolInformation{
			Name:     e.QualifiedName(),
			Kind:     symbolKind(e),
			Location: loc,
		}
		if q, ok := snap.Classifier.Qualities(e); ok && q.Deprecation.IsDeprecated() {
			info.Deprecated = boolPtr(true)
		}
		out = append(out, info)
	}
	return out, nil
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	content, ok := ls.workspace.GetFile(path)
	if !ok {
		return nil, nil
	}
	snap := ls.snapshot()
	if snap == nil {
		return nil, nil
	}

	line := int(params.Position.Line) + 1
	completions := snap.MemberCompletions(path, line, lineAt(content, line), int(params.Position.Character))
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

func location(snap *Snapshot, e java.Element) (protocol.Location, bool) {
	path, line := snap.Location(e)
	if path == "" {
		return protocol.Location{}, false
	}
	pos := protocol.Position{}
	if line > 0 {
		pos.Line = protocol.UInteger(line - 1)
	}
	return protocol.Location{
		URI:   pathToURI(path),
		Range: protocol.Range{Start: pos, End: pos},
	}, true
}

func symbolKind(e java.Element) protocol.SymbolKind {
	switch e := e.(type) {
	case *java.Module:
		return protocol.SymbolKindModule
	case *java.Package:
		return protocol.SymbolKindPackage
	case *java.Type:
		switch e.TypeKind {
		case java.ClassKindInterface, java.ClassKindAnnotation:
			return protocol.SymbolKindInterface
		case java.ClassKindEnum:
			return protocol.SymbolKindEnum
		}
		return protocol.SymbolKindClass
	case *java.Field:
		if e.EnumConst {
			return protocol.SymbolKindEnumMember
		}
		return protocol.SymbolKindField
	case *java.Constructor:
		return protocol.SymbolKindConstructor
	}
	return protocol.SymbolKindMethod
}

func toProtocolKind(kind CompletionKind) protocol.CompletionItemKind {
	switch kind {
	case CompletionKindMethod:
		return protocol.CompletionItemKindMethod
	case CompletionKindField:
		return protocol.CompletionItemKindField
	case CompletionKindClass:
		return protocol.CompletionItemKindClass
	case CompletionKindConstructor:
		return protocol.CompletionItemKindConstructor
	default:
		return protocol.CompletionItemKindText
	}
}

func lineAt(content []byte, line int) string {
	lines := strings.Split(string(content), "\n")
	if line <= 0 || line > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[line-1], "\r")
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
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
