// Package source builds the program model from Java source files. It
// parses each compilation unit with tree-sitter, then qualifies every
// type name once all units are known.
package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/polydoc/java"
	"github.com/dhamidi/polydoc/java/javadoc"
)

var log = commonlog.GetLogger("polydoc.source")

// Loader accumulates compilation units into modules. A Loader is not
// safe for concurrent use; AddRoot parses files in parallel itself.
type Loader struct {
	workers  int
	modules  []*moduleBuild
	byName   map[string]*moduleBuild
	resolved bool
}

type moduleBuild struct {
	module *java.Module
	pkgs   map[string]*java.Package
}

type Option func(*Loader)

// WithWorkers bounds the number of files parsed at once.
func WithWorkers(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		workers: runtime.GOMAXPROCS(0),
		byName:  make(map[string]*moduleBuild),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load parses every root and returns the resulting modules.
func Load(ctx context.Context, roots ...string) ([]*java.Module, error) {
	l := NewLoader()
	for _, root := range roots {
		if err := l.AddRoot(ctx, root); err != nil {
			return nil, err
		}
	}
	return l.Modules(), nil
}

// AddRoot parses the .java files below dir. A module-info.java anywhere
// in the tree names the module the files belong to; without one they
// join the unnamed module.
func (l *Loader) AddRoot(ctx context.Context, dir string) error {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".java") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", dir, err)
	}

	return l.addTree(ctx, dir, paths, os.ReadFile)
}

// AddFiles parses in-memory sources as one tree, the way AddRoot parses
// a directory.
func (l *Loader) AddFiles(ctx context.Context, files map[string][]byte) error {
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return l.addTree(ctx, "memory", paths, func(path string) ([]byte, error) {
		return files[path], nil
	})
}

func (l *Loader) addTree(ctx context.Context, name string, paths []string, read func(string) ([]byte, error)) error {
	units := make([]*unit, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			src, err := read(path)
			if err != nil {
				return err
			}
			u, err := parseUnit(gctx, path, src)
			if err != nil {
				return err
			}
			units[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	module := ""
	for _, u := range units {
		if u.module != nil {
			module = u.module.name
		}
	}
	for _, u := range units {
		l.merge(module, u)
	}
	log.Infof("%s: %d files in module %q", name, len(units), module)
	return nil
}

// AddSource parses one compilation unit into module, which is taken
// from the unit itself when it is a module declaration and module is
// empty.
func (l *Loader) AddSource(ctx context.Context, module, path string, src []byte) error {
	u, err := parseUnit(ctx, path, src)
	if err != nil {
		return err
	}
	if module == "" && u.module != nil {
		module = u.module.name
	}
	l.merge(module, u)
	return nil
}

// Modules qualifies the type names of everything added so far and
// returns the modules in the order they were first seen. Sources added
// afterwards are not qualified.
func (l *Loader) Modules() []*java.Module {
	if !l.resolved {
		newNames(l.modules).resolveAll()
		l.resolved = true
	}
	out := make([]*java.Module, len(l.modules))
	for i, mb := range l.modules {
		out[i] = mb.module
	}
	return out
}

func (l *Loader) merge(module string, u *unit) {
	mb, ok := l.byName[module]
	if !ok {
		mb = &moduleBuild{
			module: &java.Module{Name: module},
			pkgs:   make(map[string]*java.Package),
		}
		l.byName[module] = mb
		l.modules = append(l.modules, mb)
	}
	if u.module != nil {
		mb.module.Doc = u.module.doc
		mb.module.Annotations = u.module.annotations
		return
	}

	pkg, ok := mb.pkgs[u.pkg]
	if !ok {
		pkg = &java.Package{Name: u.pkg}
		mb.pkgs[u.pkg] = pkg
		mb.module.Packages = append(mb.module.Packages, pkg)
		sort.SliceStable(mb.module.Packages, func(i, j int) bool {
			return mb.module.Packages[i].Name < mb.module.Packages[j].Name
		})
	}
	if filepath.Base(u.path) == "package-info.java" {
		pkg.Doc = u.pkgDoc
		pkg.Annotations = u.pkgAnnotations
		pkg.Imports = u.imports
		return
	}
	pkg.Types = append(pkg.Types, u.types...)
}

// unit is what one compilation unit declares.
type unit struct {
	path           string
	pkg            string
	pkgDoc         *javadoc.DocComment
	pkgAnnotations []string
	imports        []java.Import
	types          []*java.Type
	module         *moduleDecl
}

type moduleDecl struct {
	name        string
	doc         *javadoc.DocComment
	annotations []string
}
