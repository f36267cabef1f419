package format_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/polydoc/format"
	"github.com/dhamidi/polydoc/java"
	"github.com/dhamidi/polydoc/java/javatest"
)

func kennel(t *testing.T) *java.Type {
	t.Helper()
	size := javatest.Field("SIZE", "int")
	size.Modifiers |= java.ModStatic | java.ModFinal
	size.Constant = "3"
	u := javatest.Build(t, javatest.Unnamed(
		javatest.Package("zoo",
			javatest.Class("Kennel",
				javatest.Doc("/** Houses dogs. */"),
				javatest.Implements("java.lang.Runnable"),
				javatest.Fields(size),
				javatest.Constructors(javatest.Constructor("java.lang.String")),
				javatest.Methods(
					javatest.Method("run", "void"),
					javatest.Method("admit", "boolean", "java.lang.String..."),
				),
			),
		),
	))
	typ := u.FindType(nil, "zoo.Kennel")
	require.NotNil(t, typ)
	return typ
}

func TestLineEncoder(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, format.NewLineEncoder(&buf).Encode(kennel(t)))

	want := "class\tzoo.Kennel\tpublic\n" +
		"implements\tjava.lang.Runnable\n" +
		"field\tSIZE\tint\tpublic static final\n" +
		"constructor\tKennel\tjava.lang.String p0\tpublic\n" +
		"method\trun\tvoid\t\tpublic\n" +
		"method\tadmit\tboolean\tjava.lang.String... p0\tpublic\n"
	assert.Equal(t, want, buf.String())
}

func TestJSONEncoder(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, format.NewJSONEncoder(&buf).Encode(kennel(t)))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "zoo.Kennel", got["name"])
	assert.Equal(t, "zoo", got["package"])
	assert.Equal(t, "class", got["kind"])
	assert.Equal(t, "Houses dogs.", got["doc"])
	assert.Equal(t, []any{"java.lang.Runnable"}, got["interfaces"])

	methods := got["methods"].([]any)
	require.Len(t, methods, 2)
	admit := methods[1].(map[string]any)
	assert.Equal(t, "admit", admit["name"])
	assert.Equal(t, true, admit["varargs"])
	param := admit["parameters"].([]any)[0].(map[string]any)
	assert.Equal(t, map[string]any{"name": "java.lang.String", "arrayDepth": float64(1)}, param["type"])

	fields := got["fields"].([]any)
	assert.Equal(t, "3", fields[0].(map[string]any)["constant"])
}
