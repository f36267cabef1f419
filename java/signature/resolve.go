package signature

import (
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/polydoc/java"
)

var log = commonlog.GetLogger("polydoc.signature")

// Resolver resolves references against a universe. It keeps no state
// of its own and is safe for concurrent use.
type Resolver struct {
	u *java.Universe
}

func NewResolver(u *java.Universe) *Resolver {
	return &Resolver{u: u}
}

func (r *Resolver) Universe() *java.Universe { return r.u }

// Resolve parses text and resolves it from ctx, which may be nil for
// references made outside any element. The element is nil when nothing
// matches; the error is only set for malformed text.
func (r *Resolver) Resolve(ctx java.Element, text string) (java.Element, error) {
	sig, err := Parse(text)
	if err != nil {
		return nil, err
	}
	return r.ResolveSignature(ctx, sig), nil
}

// ResolveSignature resolves a parsed reference from ctx.
func (r *Resolver) ResolveSignature(ctx java.Element, sig Signature) java.Element {
	roots := r.roots(ctx, sig)
	if len(roots) == 0 {
		log.Debugf("%s: no module, package or class", sig)
		return nil
	}
	if sig.Member == "" {
		return roots[0]
	}

	types := make([]*java.Type, 0, len(roots))
	for _, root := range roots {
		t, ok := root.(*java.Type)
		if !ok {
			log.Warningf("%s: %s %s cannot have member %s", contextName(ctx), root.Kind(), root.QualifiedName(), sig.Member)
			return nil
		}
		types = append(types, t)
	}
	path := r.searchPath(types)

	if !sig.Executable {
		for _, t := range path {
			for _, f := range t.Fields {
				if f.Name == sig.Member {
					return f
				}
			}
		}
		return nil
	}

	want := make([]string, len(sig.Params))
	for i, p := range sig.Params {
		dims := p.Dims
		if p.Varargs {
			dims++
		}
		want[i] = r.paramType(ctx, sig, p.Type) + strings.Repeat("[]", dims)
	}

	for _, t := range path {
		if sig.Member == t.Name {
			for _, c := range t.Constructors {
				if sameParams(c.Params, want) {
					return c
				}
			}
		}
		for _, m := range t.Methods {
			if m.Name == sig.Member && sameParams(m.Params, want) {
				return m
			}
		}
	}
	return nil
}

// ResolveType resolves a class name from ctx the way the part of a
// reference before '#' is resolved, and returns nil unless it names a
// type.
func (r *Resolver) ResolveType(ctx java.Element, name string) *java.Type {
	for _, root := range r.roots(ctx, Signature{Path: name}) {
		if t, ok := root.(*java.Type); ok {
			return t
		}
	}
	return nil
}

func sameParams(params []java.Param, want []string) bool {
	if len(params) != len(want) {
		return false
	}
	for i, p := range params {
		if p.Type.Erased() != want[i] {
			return false
		}
	}
	return true
}

// paramType returns the erased qualified name for the parameter type
// text. Names outside the universe are kept as written, except that
// simple names of java.lang types are qualified.
func (r *Resolver) paramType(ctx java.Element, sig Signature, name string) string {
	if java.IsPrimitiveName(name) {
		return name
	}
	if t := r.ResolveType(ctx, name); t != nil {
		return t.QualifiedName()
	}
	log.Warningf("%s: cannot resolve parameter type %s in %s", contextName(ctx), name, sig)
	if !strings.Contains(name, ".") && java.IsLangType(name) {
		return r.u.ImplicitPackage() + "." + name
	}
	return name
}

// searchPath returns roots followed by their supertypes, level by
// level, each type once.
func (r *Resolver) searchPath(roots []*java.Type) []*java.Type {
	seen := make(map[*java.Type]bool, len(roots))
	var path []*java.Type
	for _, t := range roots {
		if !seen[t] {
			seen[t] = true
			path = append(path, t)
		}
	}
	level := path
	for len(level) > 0 {
		var next []*java.Type
		for _, t := range level {
			for _, s := range r.u.DirectSupertypes(t) {
				if !seen[s] {
					seen[s] = true
					next = append(next, s)
				}
			}
		}
		path = append(path, next...)
		level = next
	}
	return path
}

// roots finds the module, package or classes named before '#'. When
// the reference has no such text, the context class and the classes
// enclosing it are the roots.
func (r *Resolver) roots(ctx java.Element, sig Signature) []java.Element {
	text := sig.Path
	if sig.HasModule() {
		m := r.u.FindModule(sig.Module)
		if m == nil {
			return nil
		}
		if text == "" {
			return []java.Element{m}
		}
		if t := r.u.FindTypeIn(m, text); t != nil {
			return []java.Element{t}
		}
		if p := r.u.FindPackageIn(m, text); p != nil {
			return []java.Element{p}
		}
		return nil
	}

	ctx = suitableContext(ctx)
	if text == "" {
		if ctx == nil {
			return nil
		}
		out := []java.Element{ctx}
		for t, ok := ctx.(*java.Type); ok && t.Outer != nil; t = t.Outer {
			out = append(out, t.Outer)
		}
		return out
	}

	var found java.Element
	switch c := ctx.(type) {
	case nil:
		found = r.first(
			func() java.Element { return r.typ(nil, text) },
			func() java.Element { return r.typ(nil, r.implicit(text)) },
			func() java.Element { return r.pkg(nil, text) },
		)
	case *java.Module:
		found = r.first(
			func() java.Element { return asElement(r.u.FindTypeIn(c, text)) },
			func() java.Element {
				if p := r.u.FindPackageIn(c, text); p != nil {
					return p
				}
				return nil
			},
		)
	case *java.Package:
		mod := c.Module
		found = r.first(
			func() java.Element { return r.typ(mod, qualify(c.Name, text)) },
			func() java.Element { return r.typ(mod, text) },
			func() java.Element { return asElement(r.fromImports(mod, c.Imports, text)) },
			func() java.Element { return r.typ(mod, r.implicit(text)) },
			func() java.Element { return r.pkg(mod, text) },
		)
	case *java.Type:
		mod := r.u.ModuleOf(c)
		found = r.first(
			func() java.Element { return r.nested(mod, c, text) },
			func() java.Element {
				if p := c.Package; p != nil {
					return r.typ(mod, qualify(p.Name, text))
				}
				return nil
			},
			func() java.Element { return asElement(r.fromImports(mod, c.TopLevel().Imports, text)) },
			func() java.Element { return r.typ(mod, text) },
			func() java.Element { return r.typ(mod, r.implicit(text)) },
			func() java.Element { return r.pkg(mod, text) },
		)
	}
	if found == nil {
		return nil
	}
	return []java.Element{found}
}

// first returns the result of the first step that finds something.
// Steps run lazily so that lookups after a hit cannot report spurious
// ambiguities.
func (r *Resolver) first(steps ...func() java.Element) java.Element {
	for _, step := range steps {
		if e := step(); e != nil {
			return e
		}
	}
	return nil
}

// nested tries text as a member type of t and of each class enclosing
// t, innermost first.
func (r *Resolver) nested(mod *java.Module, t *java.Type, text string) java.Element {
	for o := t; o != nil; o = o.Outer {
		if found := r.u.FindType(mod, o.QualifiedName()+"."+text); found != nil {
			return found
		}
	}
	return nil
}

// fromImports matches the first segment of text against the
// non-static imports: the last segment of a single-type import, or
// any name in a wildcard-imported package.
func (r *Resolver) fromImports(mod *java.Module, imports []java.Import, text string) *java.Type {
	prefix, suffix := text, ""
	if i := strings.IndexByte(text, '.'); i >= 0 {
		prefix, suffix = text[:i], text[i:]
	}
	for _, imp := range imports {
		if imp.Static {
			continue
		}
		var cand string
		switch {
		case imp.Wildcard:
			cand = imp.Name + "." + prefix
		case imp.Name == prefix || strings.HasSuffix(imp.Name, "."+prefix):
			cand = imp.Name
		default:
			continue
		}
		if t := r.u.FindType(mod, cand+suffix); t != nil {
			return t
		}
	}
	return nil
}

func (r *Resolver) typ(mod *java.Module, name string) java.Element {
	return asElement(r.u.FindType(mod, name))
}

func (r *Resolver) pkg(mod *java.Module, name string) java.Element {
	if p := r.u.FindPackage(mod, name); p != nil {
		return p
	}
	return nil
}

func (r *Resolver) implicit(text string) string {
	return qualify(r.u.ImplicitPackage(), text)
}

func asElement(t *java.Type) java.Element {
	if t == nil {
		return nil
	}
	return t
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}

// suitableContext walks up from ctx to the nearest type, package or
// module.
func suitableContext(ctx java.Element) java.Element {
	for e := ctx; e != nil; e = e.Enclosing() {
		switch e.(type) {
		case *java.Type, *java.Package, *java.Module:
			return e
		}
	}
	return nil
}

func contextName(ctx java.Element) string {
	if ctx == nil {
		return "overview"
	}
	return ctx.QualifiedName()
}
