package java

import "strconv"

// Properties describes an element as the flat key set used by link
// templates: MODULE, PACKAGE, CLASS, MEMBER, PARAMETER.n and friends.
// CLASS holds the dotted nesting path below the package.
func (u *Universe) Properties(e Element) map[string]string {
	props := make(map[string]string)

	var params []Param
	varargs := false
	switch e := e.(type) {
	case *Method:
		params, varargs = e.Params, e.Varargs
	case *Constructor:
		params, varargs = e.Params, e.Varargs
	}
	last := len(params)
	if varargs {
		last--
	}
	for pos, p := range params {
		erased := p.Type.Erasure()
		key := "PARAMETER." + strconv.Itoa(pos)
		props[key] = erased.Name
		props[key+".SHORT"] = u.shortName(erased.Name, e)
		if erased.Dims > 0 {
			props[key+".DIMS"] = strconv.Itoa(erased.Dims)
		}
		if pos == last {
			props[key+".VARARG"] = strconv.Itoa(erased.Dims - 1)
		}
	}

	if ModifiersOf(e).IsStatic() {
		props["STATIC"] = e.SimpleName()
	}

	switch m := e.(type) {
	case *Constructor:
		props["CONSTR"] = m.SimpleName()
		props["EXEC"] = m.SimpleName()
		props["MEMBER"] = m.SimpleName()
	case *Method:
		props["METHOD"] = m.Name
		props["EXEC"] = m.Name
		props["MEMBER"] = m.Name
	case *Field:
		if m.Modifiers.Has(ModStatic|ModFinal) || m.EnumConst {
			props["CONSTANT"] = m.Name
		}
		props["FIELD"] = m.Name
		props["MEMBER"] = m.Name
	}

	if owner := OwnerOf(e); owner != nil {
		e = owner
	}
	if t, ok := e.(*Type); ok {
		cls := t.Name
		for o := t.Outer; o != nil; o = o.Outer {
			cls = o.Name + "." + cls
		}
		props["CLASS"] = cls
		switch t.TypeKind {
		case ClassKindEnum:
			props["ENUM"] = cls
		case ClassKindInterface:
			props["IFACE"] = cls
		case ClassKindAnnotation:
			props["ANNOT"] = cls
		default:
			u.throwableKind(props, t, cls)
		}
	}

	if p := u.PackageOf(e); p != nil {
		props["PACKAGE"] = p.Name
	}
	if m := u.ModuleOf(e); m != nil && !m.IsUnnamed() {
		props["MODULE"] = m.Name
	}
	return props
}

func (u *Universe) throwableKind(props map[string]string, t *Type, cls string) {
	mod := u.ModuleOf(t)
	switch {
	case u.IsSubtype(t, u.FindType(mod, "java.lang.Error")):
		props["ERROR"] = cls
	case u.IsSubtype(t, u.FindType(mod, "java.lang.RuntimeException")):
		props["RTEXCEPT"] = cls
	case u.IsSubtype(t, u.FindType(mod, "java.lang.Exception")):
		props["EXCEPT"] = cls
	}
}

func (u *Universe) shortName(name string, from Element) string {
	if t := u.FindType(u.ModuleOf(from), name); t != nil {
		return t.Name
	}
	return Ref(name).SimpleName()
}
