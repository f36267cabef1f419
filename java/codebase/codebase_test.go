package codebase

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/polydoc/java"
)

const baseJava = `package p;

/**
 * The base.
 */
public class Base {
    /**
     * Runs it.
     * @see #stop()
     */
    public void run() {}

    /** Stops it. */
    public void stop() {}

    /** @deprecated use {@link #run()} */
    @Deprecated
    public void halt() {}
}
`

const childJava = `package p;

/** A child, see {@link Base#run()}. */
public class Child extends Base {
    @Override
    public void run() {}
}
`

func newWorkspace(t *testing.T) (*Workspace, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "p"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "p", "Base.java"), []byte(baseJava), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "p", "Child.java"), []byte(childJava), 0o644))
	return New([]string{dir}, WithWorkers(2)), dir
}

func snapshot(t *testing.T, w *Workspace) *Snapshot {
	t.Helper()
	snap, err := w.Snapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	return snap
}

func TestWorkspaceSnapshot(t *testing.T) {
	t.Parallel()
	w, dir := newWorkspace(t)
	require.NoError(t, w.ScanAll())

	snap := snapshot(t, w)
	require.NotNil(t, snap.Universe.FindType(nil, "p.Child"))
	assert.Same(t, snap, snapshot(t, w), "unchanged workspaces are not rebuilt")

	w.UpdateFile(filepath.Join(dir, "p", "Extra.java"), []byte("package p;\npublic class Extra {}\n"))
	next := snapshot(t, w)
	assert.NotSame(t, snap, next)
	assert.NotNil(t, next.Universe.FindType(nil, "p.Extra"))
	assert.Nil(t, snap.Universe.FindType(nil, "p.Extra"), "snapshots do not change")
}

func TestWorkspaceKeepsLastGoodSnapshot(t *testing.T) {
	t.Parallel()
	w, dir := newWorkspace(t)
	require.NoError(t, w.ScanAll())
	good := snapshot(t, w)

	w.UpdateFile(filepath.Join(dir, "p", "A.java"), []byte("package p;\npublic class A extends B {}\n"))
	w.UpdateFile(filepath.Join(dir, "p", "B.java"), []byte("package p;\npublic class B extends A {}\n"))
	snap, err := w.Snapshot(context.Background())
	assert.Error(t, err)
	assert.Same(t, good, snap)
}

func TestElementAt(t *testing.T) {
	t.Parallel()
	w, dir := newWorkspace(t)
	require.NoError(t, w.ScanAll())
	snap := snapshot(t, w)
	path := filepath.Join(dir, "p", "Base.java")

	tests := []struct {
		line int
		want string
	}{
		{1, "p.Base"},
		{9, "p.Base"},
		{11, "p.Base#run()"},
		{13, "p.Base#run()"},
		{14, "p.Base#stop()"},
		{30, "p.Base#halt()"},
	}
	for _, tt := range tests {
		e := snap.ElementAt(path, tt.line)
		require.NotNil(t, e, tt.line)
		assert.Equal(t, tt.want, e.QualifiedName(), tt.line)
	}
	assert.Nil(t, snap.ElementAt(filepath.Join(dir, "nowhere.java"), 1))
}

func TestResolveAndDescribe(t *testing.T) {
	t.Parallel()
	w, dir := newWorkspace(t)
	require.NoError(t, w.ScanAll())
	snap := snapshot(t, w)

	e, err := snap.Resolve(filepath.Join(dir, "p", "Base.java"), 9, "#stop()")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, "p.Base#stop()", e.QualifiedName())

	run, err := snap.Resolve(filepath.Join(dir, "p", "Child.java"), 3, "#run()")
	require.NoError(t, err)
	require.NotNil(t, run)
	text := snap.Describe(run)
	assert.True(t, strings.HasPrefix(text, "**method** `p.Child#run()`"), text)
	assert.Contains(t, text, "Runs it.")

	halt := snap.Universe.FindType(nil, "p.Base").Methods[2]
	assert.Contains(t, snap.Describe(halt), "deprecated (advised)")

	path, line := snap.Location(run)
	assert.Equal(t, filepath.Join(dir, "p", "Child.java"), path)
	assert.Equal(t, run.(*java.Method).Line, line)
}

func TestReferenceAt(t *testing.T) {
	t.Parallel()
	tests := []struct {
		line string
		at   string
		want string
	}{
		{" * @see #stop()", "stop", "#stop()"},
		{"/** A child, see {@link Base#run()}. */", "Base", "Base#run()"},
		{" * {@link Map#put(Object, Object) put}", "put(", "Map#put(Object, Object)"},
		{" * {@link Map#put(Object, Object) put}", "link", "Map#put(Object, Object)"},
		{"    Base b = null;", "Base", "Base"},
		{"    java.util.List list;", "util", "java.util.List"},
		{"    int x = 42;", "42", ""},
	}
	for _, tt := range tests {
		col := strings.Index(tt.line, tt.at)
		require.GreaterOrEqual(t, col, 0, tt.line)
		assert.Equal(t, tt.want, ReferenceAt(tt.line, col+1), tt.line)
	}
}

func TestMemberCompletions(t *testing.T) {
	t.Parallel()
	w, dir := newWorkspace(t)
	require.NoError(t, w.ScanAll())
	snap := snapshot(t, w)
	child := filepath.Join(dir, "p", "Child.java")

	text := " * {@link Base#st"
	items := snap.MemberCompletions(child, 3, text, len(text))
	require.Len(t, items, 1)
	assert.Equal(t, "stop()", items[0].InsertText)
	assert.Equal(t, CompletionKindMethod, items[0].Kind)

	text = " * {@link #"
	var labels []string
	for _, item := range snap.MemberCompletions(child, 3, text, len(text)) {
		labels = append(labels, item.Label)
	}
	assert.ElementsMatch(t, []string{"run()", "stop()", "halt()"}, labels)

	assert.Empty(t, snap.MemberCompletions(child, 3, " * no hash here", 10))
}

func TestWatcherScan(t *testing.T) {
	t.Parallel()
	w, dir := newWorkspace(t)
	fw := NewFileWatcher(w)

	assert.True(t, fw.scan())
	require.NotNil(t, snapshot(t, w).Universe.FindType(nil, "p.Child"))
	assert.False(t, fw.scan())

	require.NoError(t, os.Remove(filepath.Join(dir, "p", "Child.java")))
	assert.True(t, fw.scan())
	assert.Nil(t, snapshot(t, w).Universe.FindType(nil, "p.Child"))
}

func TestLSPHoverAndSymbols(t *testing.T) {
	t.Parallel()
	w, dir := newWorkspace(t)
	require.NoError(t, w.ScanAll())
	ls := NewLSPServer("test")
	ls.workspace = w

	child := filepath.Join(dir, "p", "Child.java")
	line := strings.Split(childJava, "\n")[2]
	hover, err := ls.textDocumentHover(nil, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: pathToURI(child)},
			Position:     protocol.Position{Line: 2, Character: protocol.UInteger(strings.Index(line, "Base#"))},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)
	content := hover.Contents.(protocol.MarkupContent)
	assert.Contains(t, content.Value, "`p.Base#run()`")
	assert.Contains(t, content.Value, "Runs it.")

	symbols, err := ls.workspaceSymbol(nil, &protocol.WorkspaceSymbolParams{Query: "p.Base#halt()"})
	require.NoError(t, err)
	require.Len(t, symbols, 1)
	assert.Equal(t, protocol.SymbolKindMethod, symbols[0].Kind)
	require.NotNil(t, symbols[0].Deprecated)
	assert.True(t, *symbols[0].Deprecated)

	symbols, err = ls.workspaceSymbol(nil, &protocol.WorkspaceSymbolParams{Query: "Chi"})
	require.NoError(t, err)
	require.Len(t, symbols, 1)
	assert.Equal(t, "p.Child", symbols[0].Name)
	assert.Equal(t, protocol.SymbolKindClass, symbols[0].Kind)
}
