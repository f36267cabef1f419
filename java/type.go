package java

import (
	"strings"
)

const objectType = "java.lang.Object"

// TypeRef is a use of a type in a declaration: a field type, a
// parameter, a return type, a supertype, or a thrown type. Class names
// are fully qualified once a front end has resolved them.
type TypeRef struct {
	Name  string
	Dims  int
	Args  []TypeRef
	Var   bool     // Name is a type variable
	Bound *TypeRef // first bound of a type variable, nil for Object
}

// Ref returns a reference to a class or primitive with no type arguments.
func Ref(name string) TypeRef {
	return TypeRef{Name: name}
}

func ArrayOf(name string, dims int) TypeRef {
	return TypeRef{Name: name, Dims: dims}
}

func TypeVar(name string, bound *TypeRef) TypeRef {
	return TypeRef{Name: name, Var: true, Bound: bound}
}

func (t TypeRef) String() string {
	var sb strings.Builder
	sb.WriteString(t.Name)
	if len(t.Args) > 0 {
		sb.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(a.String())
		}
		sb.WriteByte('>')
	}
	for i := 0; i < t.Dims; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (t TypeRef) IsPrimitive() bool {
	if t.Dims > 0 || t.Var {
		return false
	}
	return IsPrimitiveName(t.Name)
}

// IsPrimitiveName reports whether name is a primitive keyword, void included.
func IsPrimitiveName(name string) bool {
	switch name {
	case "boolean", "byte", "char", "short", "int", "long", "float", "double", "void":
		return true
	}
	return false
}

func (t TypeRef) IsArray() bool {
	return t.Dims > 0
}

func (t TypeRef) IsVoid() bool {
	return t.Name == "void" && t.Dims == 0
}

func (t TypeRef) ElementType() TypeRef {
	if t.Dims == 0 {
		return t
	}
	t.Dims--
	return t
}

// Component strips every array dimension.
func (t TypeRef) Component() TypeRef {
	t.Dims = 0
	return t
}

// Erasure drops type arguments and replaces a type variable by the
// erasure of its bound. Array dimensions survive.
func (t TypeRef) Erasure() TypeRef {
	if t.Var {
		var base TypeRef
		if t.Bound != nil {
			base = t.Bound.Erasure()
		} else {
			base = Ref(objectType)
		}
		base.Dims += t.Dims
		return base
	}
	return TypeRef{Name: t.Name, Dims: t.Dims}
}

// Erased is the comparison key of the erased type, e.g. "java.lang.String[]".
func (t TypeRef) Erased() string {
	e := t.Erasure()
	return e.Name + strings.Repeat("[]", e.Dims)
}

// Substitute replaces type variables named in bindings. Bindings carry
// their own dimensions, which add to those of the variable use.
func (t TypeRef) Substitute(bindings map[string]TypeRef) TypeRef {
	if len(bindings) == 0 {
		return t
	}
	if t.Var {
		if b, ok := bindings[t.Name]; ok {
			b.Dims += t.Dims
			return b
		}
		return t
	}
	if len(t.Args) == 0 {
		return t
	}
	args := make([]TypeRef, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Substitute(bindings)
	}
	t.Args = args
	return t
}

// SimpleName returns the last dotted segment of the type name.
func (t TypeRef) SimpleName() string {
	if i := strings.LastIndexByte(t.Name, '.'); i >= 0 {
		return t.Name[i+1:]
	}
	return t.Name
}
