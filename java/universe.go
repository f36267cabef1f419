package java

import (
	"errors"
	"fmt"
	"sort"
)

// ErrDuplicate is returned by NewUniverse when a module declares the
// same qualified type or package name twice.
var ErrDuplicate = errors.New("duplicate element")

// DefaultImplicitPackage is the package whose types are visible in every
// compilation unit without an import.
const DefaultImplicitPackage = "java.lang"

// Universe is the closed set of documented elements. It is built once
// by NewUniverse and is read-only afterwards, so every query is safe for
// concurrent use.
type Universe struct {
	modules  []*Module
	byName   map[string]*Module
	types    map[string][]*Type
	packages map[string][]*Package
	all      []*Type

	direct    map[*Type][]*Type
	super     map[*Type]*Type
	ancestors map[*Type][]*Type
	above     map[*Type]map[*Type]struct{}

	implicit string
	diag     *Diagnostics
}

type Option func(*Universe)

// WithImplicitPackage changes the package searched for unqualified names
// after imports have been tried.
func WithImplicitPackage(name string) Option {
	return func(u *Universe) {
		u.implicit = name
	}
}

func WithDiagnostics(d *Diagnostics) Option {
	return func(u *Universe) {
		u.diag = d
	}
}

// NewUniverse links the back-references of every element reachable from
// modules (Package.Module, Type.Package, Type.Outer, member owners) and
// indexes them. Packages outside any named module belong to a module
// whose Name is empty.
func NewUniverse(modules []*Module, opts ...Option) (*Universe, error) {
	u := &Universe{
		byName:    make(map[string]*Module),
		types:     make(map[string][]*Type),
		packages:  make(map[string][]*Package),
		direct:    make(map[*Type][]*Type),
		super:     make(map[*Type]*Type),
		ancestors: make(map[*Type][]*Type),
		above:     make(map[*Type]map[*Type]struct{}),
		implicit:  DefaultImplicitPackage,
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.diag == nil {
		u.diag = NewDiagnostics()
	}

	for _, m := range modules {
		if prev, ok := u.byName[m.Name]; ok && prev != m {
			return nil, fmt.Errorf("module %q: %w", m.Name, ErrDuplicate)
		}
		u.byName[m.Name] = m
		u.modules = append(u.modules, m)

		seenPkg := make(map[string]bool)
		seenType := make(map[string]bool)
		for _, p := range m.Packages {
			if seenPkg[p.Name] {
				return nil, fmt.Errorf("package %s in module %q: %w", p.Name, m.Name, ErrDuplicate)
			}
			seenPkg[p.Name] = true
			p.Module = m
			u.packages[p.Name] = append(u.packages[p.Name], p)
			for _, t := range p.Types {
				if err := u.link(t, p, nil, seenType); err != nil {
					return nil, fmt.Errorf("module %q: %w", m.Name, err)
				}
			}
		}
	}

	for name, cands := range u.types {
		sort.SliceStable(cands, func(i, j int) bool {
			return moduleName(cands[i].Package) < moduleName(cands[j].Package)
		})
		u.types[name] = cands
	}
	for name, cands := range u.packages {
		sort.SliceStable(cands, func(i, j int) bool {
			return moduleName(cands[i]) < moduleName(cands[j])
		})
		u.packages[name] = cands
	}
	sort.SliceStable(u.all, func(i, j int) bool {
		a, b := u.all[i], u.all[j]
		if qa, qb := a.QualifiedName(), b.QualifiedName(); qa != qb {
			return qa < qb
		}
		return moduleName(a.Package) < moduleName(b.Package)
	})

	for _, t := range u.all {
		u.direct[t], u.super[t] = u.resolveSupertypes(t)
	}
	for _, t := range u.all {
		u.computeAncestors(t)
	}
	log.Infof("universe: %d modules, %d packages, %d types", len(u.modules), len(u.packages), len(u.all))
	return u, nil
}

func (u *Universe) link(t *Type, p *Package, outer *Type, seen map[string]bool) error {
	t.Package = p
	t.Outer = outer
	qn := t.QualifiedName()
	if seen[qn] {
		return fmt.Errorf("type %s: %w", qn, ErrDuplicate)
	}
	seen[qn] = true
	u.types[qn] = append(u.types[qn], t)
	u.all = append(u.all, t)

	for _, f := range t.Fields {
		f.Owner = t
	}
	for _, m := range t.Methods {
		m.Owner = t
	}
	for _, c := range t.Constructors {
		c.Owner = t
	}
	for _, n := range t.Nested {
		if err := u.link(n, p, t, seen); err != nil {
			return err
		}
	}
	return nil
}

// resolveSupertypes returns the declared superclass followed by the
// declared interfaces, skipping those outside the universe, and the
// superclass on its own.
func (u *Universe) resolveSupertypes(t *Type) ([]*Type, *Type) {
	mod := u.ModuleOf(t)
	var out []*Type
	add := func(ref TypeRef) *Type {
		if ref.Var || ref.Dims > 0 {
			return nil
		}
		s := u.FindType(mod, ref.Name)
		if s == nil || s == t {
			return nil
		}
		out = append(out, s)
		return s
	}
	var super *Type
	if t.Superclass != nil {
		super = add(*t.Superclass)
	}
	for _, i := range t.Interfaces {
		add(i)
	}
	return out, super
}

// computeAncestors walks the supertype graph breadth first, keeping the
// order in which ancestors are first discovered. Cyclic declarations
// terminate because visited types are skipped.
func (u *Universe) computeAncestors(t *Type) {
	set := map[*Type]struct{}{t: {}}
	var order []*Type
	queue := append([]*Type(nil), u.direct[t]...)
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if _, ok := set[s]; ok {
			continue
		}
		set[s] = struct{}{}
		order = append(order, s)
		queue = append(queue, u.direct[s]...)
	}
	delete(set, t)
	u.ancestors[t] = order
	u.above[t] = set
}

func (u *Universe) Diagnostics() *Diagnostics { return u.diag }

// ImplicitPackage is the package searched after imports, normally java.lang.
func (u *Universe) ImplicitPackage() string { return u.implicit }

func (u *Universe) Modules() []*Module {
	return u.modules
}

// Types returns every type, nested ones included, ordered by qualified
// name and then module name.
func (u *Universe) Types() []*Type {
	return u.all
}

func (u *Universe) Packages() []*Package {
	var out []*Package
	for _, m := range u.modules {
		out = append(out, m.Packages...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return moduleName(out[i]) < moduleName(out[j])
	})
	return out
}

// Elements returns every element of the universe: modules, packages,
// types and their declared members.
func (u *Universe) Elements() []Element {
	var out []Element
	for _, m := range u.modules {
		out = append(out, m)
	}
	for _, p := range u.Packages() {
		out = append(out, p)
	}
	for _, t := range u.all {
		out = append(out, t)
		out = append(out, Members(t)...)
	}
	return out
}

func (u *Universe) FindModule(name string) *Module {
	return u.byName[name]
}

// FindType looks a qualified type name up in mod first, then across all
// modules. A name found in several modules is reported to the
// diagnostics and the candidate from the module sorting first wins.
func (u *Universe) FindType(mod *Module, name string) *Type {
	cands := u.types[name]
	if len(cands) == 0 {
		return nil
	}
	if mod != nil {
		for _, t := range cands {
			if t.Package != nil && t.Package.Module == mod {
				return t
			}
		}
	}
	if len(cands) > 1 {
		names := make([]string, len(cands))
		for i, t := range cands {
			names[i] = moduleName(t.Package) + "/" + name
		}
		u.diag.ReportAmbiguous(name, names)
	}
	return cands[0]
}

// FindPackage follows the same module and ambiguity policy as FindType.
func (u *Universe) FindPackage(mod *Module, name string) *Package {
	cands := u.packages[name]
	if len(cands) == 0 {
		return nil
	}
	if mod != nil {
		for _, p := range cands {
			if p.Module == mod {
				return p
			}
		}
	}
	if len(cands) > 1 {
		names := make([]string, len(cands))
		for i, p := range cands {
			names[i] = moduleName(p) + "/" + name
		}
		u.diag.ReportAmbiguous(name, names)
	}
	return cands[0]
}

// FindTypeIn only considers types declared in mod.
func (u *Universe) FindTypeIn(mod *Module, name string) *Type {
	for _, t := range u.types[name] {
		if t.Package != nil && t.Package.Module == mod {
			return t
		}
	}
	return nil
}

// FindPackageIn only considers packages declared in mod.
func (u *Universe) FindPackageIn(mod *Module, name string) *Package {
	for _, p := range u.packages[name] {
		if p.Module == mod {
			return p
		}
	}
	return nil
}

func (u *Universe) Enclosing(e Element) Element {
	if e == nil {
		return nil
	}
	return e.Enclosing()
}

func (u *Universe) ModuleOf(e Element) *Module {
	for ; e != nil; e = e.Enclosing() {
		if m, ok := e.(*Module); ok {
			return m
		}
	}
	return nil
}

func (u *Universe) PackageOf(e Element) *Package {
	for ; e != nil; e = e.Enclosing() {
		if p, ok := e.(*Package); ok {
			return p
		}
	}
	return nil
}

// DirectSupertypes returns the superclass and interfaces of t that are
// part of the universe, superclass first.
func (u *Universe) DirectSupertypes(t *Type) []*Type {
	return u.direct[t]
}

// DirectSuperclass returns the superclass of t when it is part of the
// universe.
func (u *Universe) DirectSuperclass(t *Type) *Type {
	return u.super[t]
}

// Ancestors returns the transitive supertypes of t in breadth-first
// discovery order, excluding t.
func (u *Universe) Ancestors(t *Type) []*Type {
	return u.ancestors[t]
}

// IsSubtype reports whether a is b or inherits from it.
func (u *Universe) IsSubtype(a, b *Type) bool {
	if a == nil || b == nil {
		return false
	}
	if a == b {
		return true
	}
	_, ok := u.above[a][b]
	return ok
}

// ResolveRef finds the type named by the erasure of ref, looked up from
// the module of from. Primitives and unknown names give nil.
func (u *Universe) ResolveRef(ref TypeRef, from Element) *Type {
	e := ref.Erasure()
	if IsPrimitiveName(e.Name) {
		return nil
	}
	return u.FindType(u.ModuleOf(from), e.Name)
}

// Erasure returns the erased form of ref.
func (u *Universe) Erasure(ref TypeRef) TypeRef {
	return ref.Erasure()
}

func moduleName(e Element) string {
	switch e := e.(type) {
	case *Package:
		if e != nil && e.Module != nil {
			return e.Module.Name
		}
	case *Module:
		if e != nil {
			return e.Name
		}
	}
	return ""
}
