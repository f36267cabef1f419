package source

import (
	"strings"

	"github.com/dhamidi/polydoc/java"
)

// names qualifies type names against the types declared in all loaded
// units, following the scoping rules of the language: enclosing
// classes, the own package, single-type imports, then on-demand
// imports and java.lang.
type names struct {
	builds []*moduleBuild
	known  map[string]bool
}

func newNames(builds []*moduleBuild) *names {
	n := &names{builds: builds, known: make(map[string]bool)}
	for _, mb := range builds {
		for _, p := range mb.module.Packages {
			for _, t := range p.Types {
				n.collect(qualify(p.Name, t.Name), t)
			}
		}
	}
	return n
}

func (n *names) collect(qn string, t *java.Type) {
	n.known[qn] = true
	for _, nested := range t.Nested {
		n.collect(qn+"."+nested.Name, nested)
	}
}

func (n *names) resolveAll() {
	for _, mb := range n.builds {
		for _, p := range mb.module.Packages {
			for _, t := range p.Types {
				sc := scope{names: n, pkg: p.Name, imports: t.Imports}
				n.resolveType(sc, t, qualify(p.Name, t.Name))
			}
		}
	}
}

func (n *names) resolveType(sc scope, t *java.Type, qn string) {
	sc = sc.enter(qn).withVars(t.TypeParams)
	if t.Superclass != nil {
		ref := sc.ref(*t.Superclass)
		t.Superclass = &ref
	}
	t.Interfaces = sc.refs(t.Interfaces)

	for _, f := range t.Fields {
		f.Type = sc.ref(f.Type)
	}
	for _, m := range t.Methods {
		msc := sc.withVars(m.TypeParams)
		m.Returns = msc.ref(m.Returns)
		m.Params = msc.params(m.Params)
		m.Throws = msc.refs(m.Throws)
	}
	for _, c := range t.Constructors {
		csc := sc.withVars(c.TypeParams)
		c.Params = csc.params(c.Params)
		c.Throws = csc.refs(c.Throws)
	}
	for _, nested := range t.Nested {
		n.resolveType(sc, nested, qn+"."+nested.Name)
	}
}

type scope struct {
	names   *names
	pkg     string
	imports []java.Import
	// enclosing lists the qualified names of the enclosing classes,
	// innermost first.
	enclosing []string
	// vars maps type variables in scope to their first bound.
	vars map[string]*java.TypeRef
}

func (s scope) enter(qn string) scope {
	s.enclosing = append([]string{qn}, s.enclosing...)
	return s
}

// withVars returns s with params in scope. The params are updated with
// qualified bounds.
func (s scope) withVars(params []java.TypeParam) scope {
	if len(params) == 0 {
		return s
	}
	vars := make(map[string]*java.TypeRef, len(s.vars)+len(params))
	for k, v := range s.vars {
		vars[k] = v
	}
	for _, p := range params {
		vars[p.Name] = nil
	}
	s.vars = vars
	for i := range params {
		params[i].Bounds = s.refs(params[i].Bounds)
		if len(params[i].Bounds) > 0 {
			bound := params[i].Bounds[0]
			vars[params[i].Name] = &bound
		}
	}
	return s
}

func (s scope) refs(in []java.TypeRef) []java.TypeRef {
	if in == nil {
		return nil
	}
	out := make([]java.TypeRef, len(in))
	for i, r := range in {
		out[i] = s.ref(r)
	}
	return out
}

func (s scope) params(in []java.Param) []java.Param {
	if in == nil {
		return nil
	}
	out := make([]java.Param, len(in))
	for i, p := range in {
		out[i] = java.Param{Name: p.Name, Type: s.ref(p.Type)}
	}
	return out
}

func (s scope) ref(r java.TypeRef) java.TypeRef {
	if r.Var || r.Name == "" || java.IsPrimitiveName(r.Name) {
		return r
	}
	if bound, ok := s.vars[r.Name]; ok {
		return java.TypeRef{Name: r.Name, Dims: r.Dims, Var: true, Bound: bound}
	}
	out := java.TypeRef{Name: s.qualify(r.Name), Dims: r.Dims}
	out.Args = s.refs(r.Args)
	return out
}

// qualify returns the qualified name name refers to. Names that match
// no loaded type keep their single-type import, or fall back to
// java.lang for its well-known types, or stay as written.
func (s scope) qualify(name string) string {
	known := s.names.known
	head, rest := name, ""
	if i := strings.IndexByte(name, '.'); i >= 0 {
		head, rest = name[:i], name[i:]
	}

	for _, e := range s.enclosing {
		if cand := e + "." + name; known[cand] {
			return cand
		}
	}
	if cand := qualify(s.pkg, name); known[cand] {
		return cand
	}
	for _, imp := range s.imports {
		if imp.Static || imp.Wildcard {
			continue
		}
		if imp.Name == head || strings.HasSuffix(imp.Name, "."+head) {
			return imp.Name + rest
		}
	}
	if known[name] {
		return name
	}
	for _, imp := range s.imports {
		if imp.Wildcard && !imp.Static {
			if cand := imp.Name + "." + name; known[cand] {
				return cand
			}
		}
	}
	if cand := "java.lang." + name; known[cand] || java.IsLangType(head) {
		return cand
	}
	log.Debugf("cannot qualify type name %s in package %s", name, s.pkg)
	return name
}

func qualify(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return pkg + "." + name
}
