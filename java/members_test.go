package java_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/polydoc/java"
	jt "github.com/dhamidi/polydoc/java/javatest"
)

func TestOverridesPlainSignature(t *testing.T) {
	t.Parallel()
	baseRun := jt.Method("run", "void", "int")
	baseOther := jt.Method("run", "void", "long")
	subRun := jt.Method("run", "void", "int")
	u := jt.Build(t, jt.Unnamed(jt.Package("p",
		jt.Class("Base", jt.Methods(baseRun, baseOther)),
		jt.Class("Sub", jt.Extends("p.Base"), jt.Methods(subRun)),
	)))

	assert.True(t, u.Overrides(subRun, baseRun))
	assert.False(t, u.Overrides(subRun, baseOther))
	assert.False(t, u.Overrides(baseRun, subRun), "supertype methods never override subtype ones")
	assert.False(t, u.Overrides(subRun, subRun))
	assert.Equal(t, []*java.Method{baseRun}, u.OverriddenBy(subRun, u.FindType(nil, "p.Base")))
}

func TestOverridesRejectsStaticAndPrivate(t *testing.T) {
	t.Parallel()
	static := jt.Method("s", "void")
	static.Modifiers |= java.ModStatic
	private := jt.Method("p", "void")
	private.Modifiers = java.ModPrivate
	subS, subP := jt.Method("s", "void"), jt.Method("p", "void")
	u := jt.Build(t, jt.Unnamed(jt.Package("p",
		jt.Class("Base", jt.Methods(static, private)),
		jt.Class("Sub", jt.Extends("p.Base"), jt.Methods(subS, subP)),
	)))

	assert.False(t, u.Overrides(subS, static))
	assert.False(t, u.Overrides(subP, private))
}

func TestOverridesPackagePrivateNeedsSamePackage(t *testing.T) {
	t.Parallel()
	hidden := jt.Method("m", "void")
	hidden.Modifiers = 0
	same := jt.Method("m", "void")
	other := jt.Method("m", "void")
	u := jt.Build(t, jt.Unnamed(
		jt.Package("a",
			jt.Class("Base", jt.Methods(hidden)),
			jt.Class("Near", jt.Extends("a.Base"), jt.Methods(same)),
		),
		jt.Package("b",
			jt.Class("Far", jt.Extends("a.Base"), jt.Methods(other)),
		),
	))
	require.NotNil(t, u)

	assert.True(t, u.Overrides(same, hidden))
	assert.False(t, u.Overrides(other, hidden))
}

func TestOverridesThroughTypeArguments(t *testing.T) {
	t.Parallel()
	accept := jt.Method("accept", "void", "T")
	consumer := jt.Interface("Consumer", jt.TypeParams("T"), jt.Methods(accept))

	impl := jt.Method("accept", "void", "java.lang.String")
	wrong := jt.Method("accept", "void", "java.lang.Integer")
	u := jt.Build(t, jt.Unnamed(
		jt.Package("java.lang", jt.Class("Object"), jt.Class("String"), jt.Class("Integer")),
		jt.Package("p",
			consumer,
			jt.Class("Mid", jt.TypeParams("X"),
				jt.ImplementsRef(java.TypeRef{Name: "p.Consumer", Args: []java.TypeRef{jt.Ref("X")}})),
			jt.Class("Impl",
				jt.Extends("p.Mid", jt.Ref("java.lang.String")),
				jt.Methods(impl, wrong)),
		),
	))

	assert.True(t, u.Overrides(impl, accept))
	assert.False(t, u.Overrides(wrong, accept))

	bindings := u.SuperBindings(u.FindType(nil, "p.Impl"), consumer)
	assert.Equal(t, "java.lang.String", bindings["T"].Name)
}

func TestOverridesRawSupertypeErasesToBound(t *testing.T) {
	t.Parallel()
	accept := jt.Method("accept", "void", "T")
	impl := jt.Method("accept", "void", "java.lang.Object")
	u := jt.Build(t, jt.Unnamed(jt.Package("p",
		jt.Interface("Consumer", jt.TypeParams("T"), jt.Methods(accept)),
		jt.Class("Raw", jt.Implements("p.Consumer"), jt.Methods(impl)),
	)))
	assert.True(t, u.Overrides(impl, accept))
}

func TestAllMembers(t *testing.T) {
	t.Parallel()
	baseField := jt.Field("size", "int")
	hiddenField := jt.Field("name", "java.lang.String")
	baseRun := jt.Method("run", "void")
	baseStop := jt.Method("stop", "void")
	privateHelper := jt.Method("helper", "void")
	privateHelper.Modifiers = java.ModPrivate
	baseCtor := jt.Constructor()
	ifaceStatic := jt.Method("of", "p.Task")
	ifaceStatic.Modifiers |= java.ModStatic

	subName := jt.Field("name", "java.lang.String")
	subRun := jt.Method("run", "void")
	u := jt.Build(t, jt.Unnamed(jt.Package("p",
		jt.Interface("Task", jt.Methods(ifaceStatic)),
		jt.Class("Base",
			jt.Fields(baseField, hiddenField),
			jt.Methods(baseRun, baseStop, privateHelper),
			jt.Constructors(baseCtor),
			jt.Nested(jt.Class("Config"))),
		jt.Class("Sub",
			jt.Extends("p.Base"), jt.Implements("p.Task"),
			jt.Fields(subName),
			jt.Methods(subRun)),
	)))

	sub := u.FindType(nil, "p.Sub")
	all := u.AllMembers(sub)
	names := make([]string, len(all))
	for i, e := range all {
		names[i] = e.QualifiedName()
	}
	assert.Equal(t, []string{
		"p.Sub#name",
		"p.Sub#run()",
		"p.Base#size",
		"p.Base#stop()",
		"p.Base.Config",
	}, names)
}

func TestVisible(t *testing.T) {
	t.Parallel()
	pkgPrivate := jt.Method("m", "void")
	pkgPrivate.Modifiers = 0
	ifaceMethod := jt.Method("n", "void")
	ifaceMethod.Modifiers = java.ModAbstract
	constant := &java.Field{Name: "RED", Type: jt.Ref("p.Color"), EnumConst: true}
	nestedInIface := jt.Class("Entry", jt.Mods(java.ModStatic))
	protected := jt.Method("q", "void")
	protected.Modifiers = java.ModProtected

	jt.Build(t, jt.Unnamed(jt.Package("p",
		jt.Class("C", jt.Methods(pkgPrivate, protected)),
		jt.Interface("I", jt.Methods(ifaceMethod), jt.Nested(nestedInIface)),
		jt.Enum("Color", jt.Fields(constant)),
	)))

	assert.False(t, java.Visible(pkgPrivate))
	assert.True(t, java.Visible(protected))
	assert.True(t, java.Visible(ifaceMethod))
	assert.True(t, java.Visible(constant))
	assert.True(t, java.Visible(nestedInIface))
}

func TestEnumSyntheticMembers(t *testing.T) {
	t.Parallel()
	values := jt.Method("values", "p.Color[]")
	values.Modifiers |= java.ModStatic
	valueOf := jt.Method("valueOf", "p.Color", "java.lang.String")
	valueOf.Modifiers |= java.ModStatic
	other := jt.Method("values", "int")
	jt.Build(t, jt.Unnamed(jt.Package("p",
		jt.Enum("Color", jt.Methods(values, valueOf)),
		jt.Class("NotEnum", jt.Methods(other)),
	)))

	assert.True(t, java.IsEnumValues(values))
	assert.True(t, java.IsEnumValueOf(valueOf))
	assert.False(t, java.IsEnumValues(other))
}
