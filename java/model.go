package java

import "strings"

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindEnum       ClassKind = "enum"
	ClassKindAnnotation ClassKind = "annotation"
)

// Modifiers is the set of Java modifiers declared on a type or member.
type Modifiers uint16

const (
	ModPublic Modifiers = 1 << iota
	ModProtected
	ModPrivate
	ModStatic
	ModFinal
	ModAbstract
	ModDefault
	ModSynchronized
	ModNative
	ModTransient
	ModVolatile
)

var modifierNames = []struct {
	mod  Modifiers
	name string
}{
	{ModPublic, "public"},
	{ModProtected, "protected"},
	{ModPrivate, "private"},
	{ModAbstract, "abstract"},
	{ModDefault, "default"},
	{ModStatic, "static"},
	{ModFinal, "final"},
	{ModTransient, "transient"},
	{ModVolatile, "volatile"},
	{ModSynchronized, "synchronized"},
	{ModNative, "native"},
}

// ParseModifier maps a modifier keyword to its flag. Unknown keywords
// (sealed, strictfp, ...) map to zero.
func ParseModifier(word string) Modifiers {
	for _, m := range modifierNames {
		if m.name == word {
			return m.mod
		}
	}
	return 0
}

func (m Modifiers) Has(flag Modifiers) bool {
	return m&flag == flag
}

func (m Modifiers) IsStatic() bool { return m.Has(ModStatic) }
func (m Modifiers) IsFinal() bool  { return m.Has(ModFinal) }

func (m Modifiers) Visibility() Visibility {
	switch {
	case m.Has(ModPublic):
		return VisibilityPublic
	case m.Has(ModProtected):
		return VisibilityProtected
	case m.Has(ModPrivate):
		return VisibilityPrivate
	}
	return VisibilityPackage
}

// Visible reports whether the modifiers make an element part of the
// documented API (public or protected).
func (m Modifiers) Visible() bool {
	v := m.Visibility()
	return v == VisibilityPublic || v == VisibilityProtected
}

func (m Modifiers) String() string {
	var words []string
	for _, mn := range modifierNames {
		if m.Has(mn.mod) {
			words = append(words, mn.name)
		}
	}
	return strings.Join(words, " ")
}

// Import is one import declaration of a compilation unit. Name never
// carries the trailing ".*" of a wildcard import.
type Import struct {
	Name     string
	Static   bool
	Wildcard bool
}

func (i Import) String() string {
	s := "import "
	if i.Static {
		s += "static "
	}
	s += i.Name
	if i.Wildcard {
		s += ".*"
	}
	return s + ";"
}

type TypeParam struct {
	Name   string
	Bounds []TypeRef
}

type Param struct {
	Name string
	Type TypeRef
}

func (p Param) String() string {
	if p.Name != "" {
		return p.Type.String() + " " + p.Name
	}
	return p.Type.String()
}
