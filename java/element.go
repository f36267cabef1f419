package java

import (
	"strings"

	"github.com/dhamidi/polydoc/java/javadoc"
)

// Kind identifies the variant of an Element.
type Kind int

const (
	KindModule Kind = iota
	KindPackage
	KindType
	KindField
	KindMethod
	KindConstructor
)

func (k Kind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindPackage:
		return "package"
	case KindType:
		return "type"
	case KindField:
		return "field"
	case KindMethod:
		return "method"
	case KindConstructor:
		return "constructor"
	}
	return "unknown"
}

// Element is a declared program construct. The implementations are
// exactly *Module, *Package, *Type, *Field, *Method and *Constructor;
// code switching over them should handle all six.
//
// Elements are linked into a Universe once and never change afterwards.
type Element interface {
	Kind() Kind
	SimpleName() string
	QualifiedName() string
	Enclosing() Element
	Comment() *javadoc.DocComment
	HasAnnotation(name string) bool
	element()
}

type Module struct {
	Name        string
	Doc         *javadoc.DocComment
	Annotations []string
	Packages    []*Package
}

type Package struct {
	Name        string
	Doc         *javadoc.DocComment
	Annotations []string
	Imports     []Import // from package-info.java
	Types       []*Type

	Module *Module
}

type Type struct {
	Name         string
	TypeKind     ClassKind
	Modifiers    Modifiers
	TypeParams   []TypeParam
	Superclass   *TypeRef
	Interfaces   []TypeRef
	Fields       []*Field
	Methods      []*Method
	Constructors []*Constructor
	Nested       []*Type
	Imports      []Import // top-level types only
	Annotations  []string
	Doc          *javadoc.DocComment
	SourceFile   string
	Line         int

	Package *Package
	Outer   *Type
}

type Field struct {
	Name        string
	Type        TypeRef
	Modifiers   Modifiers
	EnumConst   bool
	Constant    any
	Annotations []string
	Doc         *javadoc.DocComment
	Line        int

	Owner *Type
}

type Method struct {
	Name        string
	Returns     TypeRef
	Params      []Param
	Throws      []TypeRef
	Varargs     bool
	Modifiers   Modifiers
	TypeParams  []TypeParam
	Annotations []string
	Doc         *javadoc.DocComment
	Line        int

	Owner *Type
}

type Constructor struct {
	Params      []Param
	Throws      []TypeRef
	Varargs     bool
	Modifiers   Modifiers
	TypeParams  []TypeParam
	Annotations []string
	Doc         *javadoc.DocComment
	Line        int

	Owner *Type
}

func (*Module) element()      {}
func (*Package) element()     {}
func (*Type) element()        {}
func (*Field) element()       {}
func (*Method) element()      {}
func (*Constructor) element() {}

func (m *Module) Kind() Kind                   { return KindModule }
func (m *Module) SimpleName() string           { return m.Name }
func (m *Module) QualifiedName() string        { return m.Name }
func (m *Module) Enclosing() Element           { return nil }
func (m *Module) Comment() *javadoc.DocComment { return m.Doc }
func (m *Module) HasAnnotation(name string) bool {
	return hasAnnotation(m.Annotations, name)
}

// IsUnnamed reports whether m collects the packages of the class path.
func (m *Module) IsUnnamed() bool { return m.Name == "" }

func (p *Package) Kind() Kind { return KindPackage }

func (p *Package) SimpleName() string {
	if i := strings.LastIndexByte(p.Name, '.'); i >= 0 {
		return p.Name[i+1:]
	}
	return p.Name
}

func (p *Package) QualifiedName() string { return p.Name }

func (p *Package) Enclosing() Element {
	if p.Module == nil {
		return nil
	}
	return p.Module
}

func (p *Package) Comment() *javadoc.DocComment { return p.Doc }
func (p *Package) HasAnnotation(name string) bool {
	return hasAnnotation(p.Annotations, name)
}

func (t *Type) Kind() Kind         { return KindType }
func (t *Type) SimpleName() string { return t.Name }

func (t *Type) QualifiedName() string {
	if t.Outer != nil {
		return t.Outer.QualifiedName() + "." + t.Name
	}
	if t.Package == nil || t.Package.Name == "" {
		return t.Name
	}
	return t.Package.Name + "." + t.Name
}

func (t *Type) Enclosing() Element {
	if t.Outer != nil {
		return t.Outer
	}
	if t.Package != nil {
		return t.Package
	}
	return nil
}

func (t *Type) Comment() *javadoc.DocComment { return t.Doc }
func (t *Type) HasAnnotation(name string) bool {
	return hasAnnotation(t.Annotations, name)
}

// TopLevel returns the outermost type enclosing t, or t itself.
func (t *Type) TopLevel() *Type {
	for t.Outer != nil {
		t = t.Outer
	}
	return t
}

func (t *Type) IsInterface() bool {
	return t.TypeKind == ClassKindInterface || t.TypeKind == ClassKindAnnotation
}

func (f *Field) Kind() Kind                   { return KindField }
func (f *Field) SimpleName() string           { return f.Name }
func (f *Field) QualifiedName() string        { return memberName(f.Owner, f.Name) }
func (f *Field) Enclosing() Element           { return ownerElement(f.Owner) }
func (f *Field) Comment() *javadoc.DocComment { return f.Doc }
func (f *Field) HasAnnotation(name string) bool {
	return hasAnnotation(f.Annotations, name)
}

func (m *Method) Kind() Kind                   { return KindMethod }
func (m *Method) SimpleName() string           { return m.Name }
func (m *Method) QualifiedName() string        { return memberName(m.Owner, m.Name) + paramList(m.Params, m.Varargs) }
func (m *Method) Enclosing() Element           { return ownerElement(m.Owner) }
func (m *Method) Comment() *javadoc.DocComment { return m.Doc }
func (m *Method) HasAnnotation(name string) bool {
	return hasAnnotation(m.Annotations, name)
}

func (c *Constructor) Kind() Kind { return KindConstructor }

func (c *Constructor) SimpleName() string {
	if c.Owner == nil {
		return ""
	}
	return c.Owner.Name
}

func (c *Constructor) QualifiedName() string {
	return memberName(c.Owner, c.SimpleName()) + paramList(c.Params, c.Varargs)
}

func (c *Constructor) Enclosing() Element           { return ownerElement(c.Owner) }
func (c *Constructor) Comment() *javadoc.DocComment { return c.Doc }
func (c *Constructor) HasAnnotation(name string) bool {
	return hasAnnotation(c.Annotations, name)
}

// ModifiersOf returns the declared modifiers of a type or member, and
// zero for modules and packages.
func ModifiersOf(e Element) Modifiers {
	switch e := e.(type) {
	case *Type:
		return e.Modifiers
	case *Field:
		return e.Modifiers
	case *Method:
		return e.Modifiers
	case *Constructor:
		return e.Modifiers
	}
	return 0
}

// OwnerOf returns the type declaring a member, or nil for other kinds.
func OwnerOf(e Element) *Type {
	switch e := e.(type) {
	case *Field:
		return e.Owner
	case *Method:
		return e.Owner
	case *Constructor:
		return e.Owner
	}
	return nil
}

// IsEnumValues reports whether m is the implicit values() of an enum.
func IsEnumValues(m *Method) bool {
	return m.Owner != nil && m.Owner.TypeKind == ClassKindEnum &&
		m.Name == "values" && len(m.Params) == 0 && m.Modifiers.IsStatic()
}

// IsEnumValueOf reports whether m is the implicit valueOf(String) of an enum.
func IsEnumValueOf(m *Method) bool {
	return m.Owner != nil && m.Owner.TypeKind == ClassKindEnum &&
		m.Name == "valueOf" && len(m.Params) == 1 &&
		m.Params[0].Type.Erased() == "java.lang.String" && m.Modifiers.IsStatic()
}

// IsDeprecatedAnnotated reports whether e carries @Deprecated.
func IsDeprecatedAnnotated(e Element) bool {
	return e.HasAnnotation("java.lang.Deprecated")
}

func hasAnnotation(annotations []string, name string) bool {
	simple := name
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		simple = name[i+1:]
	}
	for _, a := range annotations {
		if a == name || a == simple {
			return true
		}
	}
	return false
}

func ownerElement(t *Type) Element {
	if t == nil {
		return nil
	}
	return t
}

func memberName(owner *Type, name string) string {
	if owner == nil {
		return name
	}
	return owner.QualifiedName() + "#" + name
}

func paramList(params []Param, varargs bool) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			sb.WriteByte(',')
		}
		e := p.Type.Erasure()
		sb.WriteString(e.Name)
		dims := e.Dims
		if varargs && i == len(params)-1 && dims > 0 {
			dims--
			sb.WriteString(strings.Repeat("[]", dims))
			sb.WriteString("...")
			continue
		}
		sb.WriteString(strings.Repeat("[]", dims))
	}
	sb.WriteByte(')')
	return sb.String()
}
