// Package javatest builds small element models for tests.
package javatest

import (
	"strconv"
	"strings"
	"testing"

	"github.com/dhamidi/polydoc/java"
	"github.com/dhamidi/polydoc/java/javadoc"
)

// Option customizes a type built by Class, Interface or Enum.
type Option func(*java.Type)

// Build links modules into a Universe and fails the test on error.
func Build(t testing.TB, modules ...*java.Module) *java.Universe {
	t.Helper()
	u, err := java.NewUniverse(modules)
	if err != nil {
		t.Fatalf("build universe: %v", err)
	}
	return u
}

// Unnamed returns the module holding class-path packages.
func Unnamed(pkgs ...*java.Package) *java.Module {
	return &java.Module{Packages: pkgs}
}

func Module(name string, pkgs ...*java.Package) *java.Module {
	return &java.Module{Name: name, Packages: pkgs}
}

func Package(name string, types ...*java.Type) *java.Package {
	return &java.Package{Name: name, Types: types}
}

func Class(name string, opts ...Option) *java.Type {
	return newType(name, java.ClassKindClass, opts)
}

func Interface(name string, opts ...Option) *java.Type {
	return newType(name, java.ClassKindInterface, opts)
}

func Enum(name string, opts ...Option) *java.Type {
	return newType(name, java.ClassKindEnum, opts)
}

func newType(name string, kind java.ClassKind, opts []Option) *java.Type {
	t := &java.Type{Name: name, TypeKind: kind, Modifiers: java.ModPublic}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Extends sets the superclass, or adds a superinterface when applied to
// an interface.
func Extends(ref string, args ...java.TypeRef) Option {
	return func(t *java.Type) {
		r := Ref(ref)
		r.Args = args
		if t.IsInterface() {
			t.Interfaces = append(t.Interfaces, r)
			return
		}
		t.Superclass = &r
	}
}

func Implements(refs ...string) Option {
	return func(t *java.Type) {
		for _, ref := range refs {
			t.Interfaces = append(t.Interfaces, Ref(ref))
		}
	}
}

// ImplementsRef adds a parameterized superinterface.
func ImplementsRef(ref java.TypeRef) Option {
	return func(t *java.Type) {
		t.Interfaces = append(t.Interfaces, ref)
	}
}

func TypeParams(names ...string) Option {
	return func(t *java.Type) {
		for _, n := range names {
			t.TypeParams = append(t.TypeParams, java.TypeParam{Name: n})
		}
	}
}

func Methods(ms ...*java.Method) Option {
	return func(t *java.Type) {
		t.Methods = append(t.Methods, ms...)
	}
}

func Fields(fs ...*java.Field) Option {
	return func(t *java.Type) {
		t.Fields = append(t.Fields, fs...)
	}
}

func Constructors(cs ...*java.Constructor) Option {
	return func(t *java.Type) {
		t.Constructors = append(t.Constructors, cs...)
	}
}

func Nested(types ...*java.Type) Option {
	return func(t *java.Type) {
		t.Nested = append(t.Nested, types...)
	}
}

func Imports(names ...string) Option {
	return func(t *java.Type) {
		for _, n := range names {
			imp := java.Import{Name: n}
			if strings.HasSuffix(n, ".*") {
				imp = java.Import{Name: strings.TrimSuffix(n, ".*"), Wildcard: true}
			}
			t.Imports = append(t.Imports, imp)
		}
	}
}

// Doc attaches a documentation comment, written with or without its
// delimiters.
func Doc(comment string) Option {
	return func(t *java.Type) {
		t.Doc = javadoc.Parse(comment)
	}
}

func Mods(m java.Modifiers) Option {
	return func(t *java.Type) {
		t.Modifiers = m
	}
}

func Annotated(names ...string) Option {
	return func(t *java.Type) {
		t.Annotations = append(t.Annotations, names...)
	}
}

// Method returns a public instance method. Parameter types use Ref
// syntax; parameters are named p0, p1, ...
func Method(name, returns string, params ...string) *java.Method {
	m := &java.Method{Name: name, Returns: Ref(returns), Modifiers: java.ModPublic}
	m.Params, m.Varargs = makeParams(params)
	return m
}

func Constructor(params ...string) *java.Constructor {
	c := &java.Constructor{Modifiers: java.ModPublic}
	c.Params, c.Varargs = makeParams(params)
	return c
}

func Field(name, typ string) *java.Field {
	return &java.Field{Name: name, Type: Ref(typ), Modifiers: java.ModPublic}
}

// Ref parses "a.B", "int[][]" or "T..." style names. A single upper-case
// letter denotes a type variable, and a trailing "..." adds one array
// dimension.
func Ref(s string) java.TypeRef {
	s = strings.TrimSuffix(s, "...") + strings.Repeat("[]", strings.Count(s, "..."))
	dims := strings.Count(s, "[]")
	name := strings.ReplaceAll(s, "[]", "")
	if len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
		r := java.TypeVar(name, nil)
		r.Dims = dims
		return r
	}
	return java.ArrayOf(name, dims)
}

func makeParams(types []string) ([]java.Param, bool) {
	var params []java.Param
	varargs := false
	for i, typ := range types {
		if strings.HasSuffix(typ, "...") && i == len(types)-1 {
			varargs = true
		}
		params = append(params, java.Param{Name: "p" + strconv.Itoa(i), Type: Ref(typ)})
	}
	return params, varargs
}
