package java

// Members returns the fields, constructors and methods declared by t,
// in declaration order within each kind.
func Members(t *Type) []Element {
	out := make([]Element, 0, len(t.Fields)+len(t.Constructors)+len(t.Methods))
	for _, f := range t.Fields {
		out = append(out, f)
	}
	for _, c := range t.Constructors {
		out = append(out, c)
	}
	for _, m := range t.Methods {
		out = append(out, m)
	}
	return out
}

// Visible reports whether e belongs to the documented API. Members of
// interfaces and enum constants are implicitly public.
func Visible(e Element) bool {
	mods := ModifiersOf(e)
	if mods.Visible() {
		return true
	}
	if mods.Has(ModPrivate) {
		return false
	}
	if f, ok := e.(*Field); ok && f.EnumConst {
		return true
	}
	if owner := OwnerOf(e); owner != nil && owner.IsInterface() {
		return true
	}
	if t, ok := e.(*Type); ok && t.Outer != nil && t.Outer.IsInterface() {
		return true
	}
	return false
}

func effectiveVisibility(e Element) Visibility {
	v := ModifiersOf(e).Visibility()
	if v == VisibilityPackage && Visible(e) {
		return VisibilityPublic
	}
	return v
}

// AllMembers lists the members of t followed by the members it inherits:
// non-private fields, methods and nested types of its ancestors that are
// not hidden or overridden by a member already listed. Constructors are
// never inherited.
func (u *Universe) AllMembers(t *Type) []Element {
	out := Members(t)
	for _, n := range t.Nested {
		out = append(out, n)
	}

	fields := make(map[string]bool)
	nested := make(map[string]bool)
	var methods []*Method
	for _, f := range t.Fields {
		fields[f.Name] = true
	}
	for _, n := range t.Nested {
		nested[n.Name] = true
	}
	methods = append(methods, t.Methods...)

	for _, a := range u.Ancestors(t) {
		for _, f := range a.Fields {
			if f.Modifiers.Has(ModPrivate) || fields[f.Name] {
				continue
			}
			fields[f.Name] = true
			out = append(out, f)
		}
		for _, m := range a.Methods {
			if m.Modifiers.Has(ModPrivate) {
				continue
			}
			if a.IsInterface() && m.Modifiers.IsStatic() {
				continue
			}
			if u.shadowed(m, methods) {
				continue
			}
			methods = append(methods, m)
			out = append(out, m)
		}
		for _, n := range a.Nested {
			if n.Modifiers.Has(ModPrivate) || nested[n.Name] {
				continue
			}
			nested[n.Name] = true
			out = append(out, n)
		}
	}
	return out
}

func (u *Universe) shadowed(cand *Method, listed []*Method) bool {
	for _, m := range listed {
		if m.Name != cand.Name {
			continue
		}
		if u.Overrides(m, cand) || sameErasure(m.Params, cand.Params, nil) {
			return true
		}
	}
	return false
}

// Overrides reports whether m overrides cand when both are seen from
// m's declaring type. The parameters of cand are compared after
// substituting the type arguments m's type passes up to cand's type.
func (u *Universe) Overrides(m, cand *Method) bool {
	if m == nil || cand == nil || m == cand || m.Name != cand.Name {
		return false
	}
	if m.Modifiers.IsStatic() || cand.Modifiers.IsStatic() || cand.Modifiers.Has(ModPrivate) {
		return false
	}
	if m.Owner == nil || cand.Owner == nil || m.Owner == cand.Owner {
		return false
	}
	if !u.IsSubtype(m.Owner, cand.Owner) {
		return false
	}
	if effectiveVisibility(cand) == VisibilityPackage && u.PackageOf(m) != u.PackageOf(cand) {
		return false
	}
	if len(m.Params) != len(cand.Params) {
		return false
	}
	return sameErasure(m.Params, cand.Params, u.SuperBindings(m.Owner, cand.Owner))
}

// OverriddenBy returns the methods of ancestor that m overrides.
func (u *Universe) OverriddenBy(m *Method, ancestor *Type) []*Method {
	var out []*Method
	for _, cand := range ancestor.Methods {
		if u.Overrides(m, cand) {
			out = append(out, cand)
		}
	}
	return out
}

func sameErasure(a, b []Param, bindings map[string]TypeRef) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Type.Erased() != b[i].Type.Substitute(bindings).Erased() {
			return false
		}
	}
	return true
}

// SuperBindings returns the type arguments that t supplies, directly or
// through intermediate supertypes, for the type parameters of target.
// Parameters left raw are absent and so erase to their bounds.
func (u *Universe) SuperBindings(t, target *Type) map[string]TypeRef {
	seen := make(map[*Type]bool)
	var walk func(cur *Type, env map[string]TypeRef) (map[string]TypeRef, bool)
	walk = func(cur *Type, env map[string]TypeRef) (map[string]TypeRef, bool) {
		if cur == target {
			return env, true
		}
		if seen[cur] {
			return nil, false
		}
		seen[cur] = true

		refs := make([]TypeRef, 0, len(cur.Interfaces)+1)
		if cur.Superclass != nil {
			refs = append(refs, *cur.Superclass)
		}
		refs = append(refs, cur.Interfaces...)

		mod := u.ModuleOf(cur)
		for _, ref := range refs {
			s := u.FindType(mod, ref.Name)
			if s == nil {
				continue
			}
			next := make(map[string]TypeRef, len(s.TypeParams))
			for i, tp := range s.TypeParams {
				if i < len(ref.Args) {
					next[tp.Name] = ref.Args[i].Substitute(env)
				}
			}
			if b, ok := walk(s, next); ok {
				return b, true
			}
		}
		return nil, false
	}
	b, _ := walk(t, nil)
	return b
}
