package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		text string
		want Signature
	}{
		{"java.util.List", Signature{Path: "java.util.List"}},
		{"#size", Signature{Member: "size"}},
		{"#size()", Signature{Member: "size", Executable: true}},
		{"java.base/", Signature{Module: "java.base"}},
		{"java.base/java.lang", Signature{Module: "java.base", Path: "java.lang"}},
		{"Map.Entry#getKey()", Signature{Path: "Map.Entry", Member: "getKey", Executable: true}},
		{
			"module.a/pkg.C#m(int[], String...)",
			Signature{
				Module: "module.a", Path: "pkg.C", Member: "m", Executable: true,
				Params: []Param{{Type: "int", Dims: 1}, {Type: "String", Varargs: true}},
			},
		},
		{
			" #put( java.lang.Object , Object[][] ) ",
			Signature{
				Member: "put", Executable: true,
				Params: []Param{{Type: "java.lang.Object"}, {Type: "Object", Dims: 2}},
			},
		},
		{"C#$init_0", Signature{Path: "C", Member: "$init_0"}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := Parse(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()
	for _, text := range []string{
		"",
		"#",
		"#m(int...,int)",
		"pkg.C(int)",
		"pkg..C",
		"pkg.C#m(int",
		"pkg.C#m(int[)",
		"#m(,)",
		"1abc",
		"a/b/c",
	} {
		_, err := Parse(text)
		assert.ErrorIs(t, err, ErrMalformed, "%q", text)
	}
}

func TestSignatureString(t *testing.T) {
	t.Parallel()
	for _, text := range []string{
		"java.util.List",
		"m.a/p.C#f",
		"p.C#m()",
		"p.C#m(int[],java.lang.String...)",
	} {
		sig, err := Parse(text)
		require.NoError(t, err)
		assert.Equal(t, text, sig.String())
	}
}
