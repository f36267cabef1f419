// Package format writes the declarations of a type as tab-separated
// lines or as JSON.
package format

import (
	"encoding"
	"strings"

	"github.com/dhamidi/polydoc/java"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(t *java.Type) error
}

func typeKind(t *java.Type) string {
	return string(t.TypeKind)
}

func modifierWords(m java.Modifiers) []string {
	if m == 0 {
		return nil
	}
	return strings.Fields(m.String())
}

func paramsStr(params []java.Param, varargs bool) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
		if varargs && i == len(params)-1 && strings.HasSuffix(parts[i], "[] "+p.Name) {
			parts[i] = strings.Replace(parts[i], "[] "+p.Name, "... "+p.Name, 1)
		}
	}
	return strings.Join(parts, ", ")
}
