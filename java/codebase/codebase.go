// Package codebase keeps a workspace of Java sources together with the
// universe and resolvers built from them. Any change marks the
// workspace dirty; the next Snapshot rebuilds everything at once and is
// read-only afterwards.
package codebase

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/polydoc/java"
	"github.com/dhamidi/polydoc/java/classify"
	"github.com/dhamidi/polydoc/java/inherit"
	"github.com/dhamidi/polydoc/java/signature"
	"github.com/dhamidi/polydoc/java/source"
)

var log = commonlog.GetLogger("polydoc.codebase")

type Workspace struct {
	mu    sync.RWMutex
	roots []string
	files map[string][]byte
	snap  *Snapshot
	dirty bool

	workers        int
	implicit       string
	excludeTag     string
	constructorTag string
	summaryTags    []string
}

type Option func(*Workspace)

func WithWorkers(n int) Option {
	return func(w *Workspace) {
		if n > 0 {
			w.workers = n
		}
	}
}

func WithImplicitPackage(name string) Option {
	return func(w *Workspace) {
		w.implicit = name
	}
}

func WithExcludeTag(name string) Option {
	return func(w *Workspace) {
		w.excludeTag = name
	}
}

func WithConstructorTag(name string) Option {
	return func(w *Workspace) {
		w.constructorTag = name
	}
}

func WithSummaryTags(names ...string) Option {
	return func(w *Workspace) {
		w.summaryTags = names
	}
}

// New returns an empty workspace over roots. Nothing is read until
// ScanAll or UpdateFile.
func New(roots []string, opts ...Option) *Workspace {
	w := &Workspace{
		files:          make(map[string][]byte),
		dirty:          true,
		workers:        runtime.GOMAXPROCS(0),
		implicit:       java.DefaultImplicitPackage,
		excludeTag:     classify.DefaultExcludeTag,
		constructorTag: classify.DefaultConstructorTag,
		summaryTags:    inherit.DefaultSummaryTags,
	}
	for _, root := range roots {
		w.roots = append(w.roots, filepath.Clean(root))
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workspace) Roots() []string {
	return w.roots
}

// ScanAll reads every .java file below the roots, skipping hidden
// directories.
func (w *Workspace) ScanAll() error {
	for _, root := range w.roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == ".java" {
				return w.ScanFile(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("scan %s: %w", root, err)
		}
	}
	return nil
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, content)
	return nil
}

// UpdateFile replaces the content of path, which need not exist on disk.
func (w *Workspace) UpdateFile(path string, content []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = content
	w.dirty = true
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.files[path]; ok {
		delete(w.files, path)
		w.dirty = true
	}
}

func (w *Workspace) GetFile(path string) ([]byte, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	content, ok := w.files[path]
	return content, ok
}

// Snapshot returns the model of the current files, rebuilding it if
// anything changed since the last call. When a rebuild fails the error
// is returned together with the previous snapshot, which may be nil.
func (w *Workspace) Snapshot(ctx context.Context) (*Snapshot, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.dirty && w.snap != nil {
		return w.snap, nil
	}
	snap, err := w.build(ctx)
	if err != nil {
		return w.snap, err
	}
	w.snap = snap
	w.dirty = false
	return snap, nil
}

func (w *Workspace) build(ctx context.Context) (*Snapshot, error) {
	loader := source.NewLoader(source.WithWorkers(w.workers))
	for _, group := range w.groups() {
		if err := loader.AddFiles(ctx, group); err != nil {
			return nil, fmt.Errorf("parse sources: %w", err)
		}
	}

	u, err := java.NewUniverse(loader.Modules(), java.WithImplicitPackage(w.implicit))
	if err != nil {
		return nil, fmt.Errorf("build universe: %w", err)
	}
	c, err := classify.Build(u,
		classify.WithExcludeTag(w.excludeTag),
		classify.WithConstructorTag(w.constructorTag))
	if err != nil {
		return nil, fmt.Errorf("classify: %w", err)
	}

	sigs := signature.NewResolver(u)
	undoc := inherit.NewUndocumented()
	snap := &Snapshot{
		Universe:     u,
		Classifier:   c,
		Signatures:   sigs,
		Docs:         inherit.NewResolver(inherit.NewEngine(u), sigs, inherit.WithSummaryTags(w.summaryTags...), inherit.WithUndocumented(undoc)),
		Undocumented: undoc,
		byFile:       indexFiles(u),
	}
	log.Infof("built workspace: %d files, %d types", len(w.files), len(u.Types()))
	return snap, nil
}

// groups splits the files by the root they live under, so that each
// root can carry its own module-info.java. Files outside every root
// form a last group.
func (w *Workspace) groups() []map[string][]byte {
	byRoot := make(map[string]map[string][]byte)
	for path, content := range w.files {
		root := w.rootOf(path)
		if byRoot[root] == nil {
			byRoot[root] = make(map[string][]byte)
		}
		byRoot[root][path] = content
	}

	keys := make([]string, 0, len(byRoot))
	for root := range byRoot {
		keys = append(keys, root)
	}
	sort.Slice(keys, func(i, j int) bool {
		if (keys[i] == "") != (keys[j] == "") {
			return keys[j] == ""
		}
		return keys[i] < keys[j]
	})
	out := make([]map[string][]byte, len(keys))
	for i, root := range keys {
		out[i] = byRoot[root]
	}
	return out
}

func (w *Workspace) rootOf(path string) string {
	best := ""
	for _, root := range w.roots {
		rel, err := filepath.Rel(root, path)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		if len(root) > len(best) {
			best = root
		}
	}
	return best
}

// Snapshot is one consistent build of the workspace.
type Snapshot struct {
	Universe     *java.Universe
	Classifier   *classify.Classifier
	Signatures   *signature.Resolver
	Docs         *inherit.Resolver
	Undocumented *inherit.Undocumented

	// byFile lists the types and members declared in each file, ordered
	// by line.
	byFile map[string][]java.Element
}

func indexFiles(u *java.Universe) map[string][]java.Element {
	out := make(map[string][]java.Element)
	for _, t := range u.Types() {
		if t.SourceFile == "" {
			continue
		}
		out[t.SourceFile] = append(out[t.SourceFile], t)
		out[t.SourceFile] = append(out[t.SourceFile], java.Members(t)...)
	}
	for _, elems := range out {
		sort.SliceStable(elems, func(i, j int) bool {
			return lineOf(elems[i]) < lineOf(elems[j])
		})
	}
	return out
}

// ElementAt returns the innermost declaration in effect at line (1-based)
// of path: the last type or member declared at or before it. A doc
// comment above the first declaration belongs to that declaration.
func (s *Snapshot) ElementAt(path string, line int) java.Element {
	elems := s.byFile[path]
	if len(elems) == 0 {
		return nil
	}
	var found java.Element
	for _, e := range elems {
		if lineOf(e) > line {
			break
		}
		found = e
	}
	if found == nil {
		return elems[0]
	}
	return found
}

// Resolve resolves a reference as written in a doc comment at line of
// path.
func (s *Snapshot) Resolve(path string, line int, text string) (java.Element, error) {
	return s.Signatures.Resolve(s.ElementAt(path, line), text)
}

// Summary returns the summary of e, inherited if e has none.
func (s *Snapshot) Summary(e java.Element) (string, error) {
	var sink inherit.TextSink
	if _, err := s.Docs.WriteSummary(e, &sink); err != nil {
		return "", err
	}
	return sink.String(), nil
}

// Describe renders e as markdown: kind and qualified name, deprecation
// and the summary.
func (s *Snapshot) Describe(e java.Element) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** `%s`", e.Kind(), e.QualifiedName())
	if q, ok := s.Classifier.Qualities(e); ok && q.Deprecation.IsDeprecated() {
		fmt.Fprintf(&sb, "\n\n_deprecated (%s)_", q.Deprecation)
		for _, cause := range q.Causes {
			fmt.Fprintf(&sb, " `%s`", cause.QualifiedName())
		}
	}
	summary, err := s.Summary(e)
	if err != nil {
		log.Debugf("summary of %s: %s", e.QualifiedName(), err)
	}
	if summary != "" {
		sb.WriteString("\n\n")
		sb.WriteString(summary)
	}
	return sb.String()
}

// Location returns the file declaring e and its line, or "" when e was
// not loaded from a file.
func (s *Snapshot) Location(e java.Element) (string, int) {
	owner := java.OwnerOf(e)
	if t, ok := e.(*java.Type); ok {
		owner = t
	}
	if owner == nil {
		return "", 0
	}
	return owner.SourceFile, lineOf(e)
}

func lineOf(e java.Element) int {
	switch e := e.(type) {
	case *java.Type:
		return e.Line
	case *java.Field:
		return e.Line
	case *java.Method:
		return e.Line
	case *java.Constructor:
		return e.Line
	}
	return 0
}
