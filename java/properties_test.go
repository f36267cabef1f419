package java_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dhamidi/polydoc/java"
	jt "github.com/dhamidi/polydoc/java/javatest"
)

func TestPropertiesOfMethod(t *testing.T) {
	t.Parallel()
	m := jt.Method("format", "java.lang.String", "java.lang.String", "java.lang.Object...")
	m.Modifiers |= java.ModStatic
	u := jt.Build(t, jt.Module("java.base",
		jt.Package("java.lang", jt.Class("Object"), jt.Class("String")),
		jt.Package("java.text", jt.Class("Formats", jt.Nested(jt.Class("Inner", jt.Methods(m))))),
	))

	assert.Equal(t, map[string]string{
		"PARAMETER.0":        "java.lang.String",
		"PARAMETER.0.SHORT":  "String",
		"PARAMETER.1":        "java.lang.Object",
		"PARAMETER.1.SHORT":  "Object",
		"PARAMETER.1.DIMS":   "1",
		"PARAMETER.1.VARARG": "0",
		"STATIC":             "format",
		"METHOD":             "format",
		"EXEC":               "format",
		"MEMBER":             "format",
		"CLASS":              "Formats.Inner",
		"PACKAGE":            "java.text",
		"MODULE":             "java.base",
	}, u.Properties(m))
}

func TestPropertiesOfTypes(t *testing.T) {
	t.Parallel()
	constant := jt.Field("MAX", "int")
	constant.Modifiers |= java.ModStatic | java.ModFinal
	u := jt.Build(t, jt.Unnamed(
		jt.Package("java.lang",
			jt.Class("Object"),
			jt.Class("Throwable", jt.Extends("java.lang.Object")),
			jt.Class("Exception", jt.Extends("java.lang.Throwable")),
			jt.Class("RuntimeException", jt.Extends("java.lang.Exception")),
			jt.Class("Error", jt.Extends("java.lang.Throwable")),
		),
		jt.Package("p",
			jt.Class("Checked", jt.Extends("java.lang.Exception")),
			jt.Class("Unchecked", jt.Extends("java.lang.RuntimeException")),
			jt.Class("Fatal", jt.Extends("java.lang.Error")),
			jt.Interface("Shape"),
			jt.Enum("Color"),
			jt.Class("Limits", jt.Fields(constant)),
		),
	))
	props := func(name string) map[string]string { return u.Properties(u.FindType(nil, name)) }

	assert.Equal(t, "Checked", props("p.Checked")["EXCEPT"])
	assert.Equal(t, "Unchecked", props("p.Unchecked")["RTEXCEPT"])
	assert.NotContains(t, props("p.Unchecked"), "EXCEPT")
	assert.Equal(t, "Fatal", props("p.Fatal")["ERROR"])
	assert.Equal(t, "Shape", props("p.Shape")["IFACE"])
	assert.Equal(t, "Color", props("p.Color")["ENUM"])
	assert.NotContains(t, props("p.Shape"), "MODULE")

	fp := u.Properties(constant)
	assert.Equal(t, "MAX", fp["CONSTANT"])
	assert.Equal(t, "MAX", fp["FIELD"])
	assert.Equal(t, "Limits", fp["CLASS"])
}
