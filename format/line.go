package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/polydoc/java"
)

type LineEncoder struct {
	w     io.Writer
	class *java.Type
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(t *java.Type) error {
	e.class = t
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.class

	fmt.Fprintf(&sb, "%s\t%s\t%s\n", typeKind(c), c.QualifiedName(), c.Modifiers)

	if c.Superclass != nil {
		fmt.Fprintf(&sb, "extends\t%s\n", c.Superclass)
	}
	for _, i := range c.Interfaces {
		fmt.Fprintf(&sb, "implements\t%s\n", i)
	}

	for _, f := range c.Fields {
		fmt.Fprintf(&sb, "field\t%s\t%s\t%s\n", f.Name, f.Type, f.Modifiers)
	}

	for _, ctor := range c.Constructors {
		fmt.Fprintf(&sb, "constructor\t%s\t%s\t%s\n",
			c.Name,
			paramsStr(ctor.Params, ctor.Varargs),
			ctor.Modifiers,
		)
	}

	for _, m := range c.Methods {
		fmt.Fprintf(&sb, "method\t%s\t%s\t%s\t%s\n",
			m.Name,
			m.Returns,
			paramsStr(m.Params, m.Varargs),
			m.Modifiers,
		)
	}

	for _, n := range c.Nested {
		fmt.Fprintf(&sb, "nested\t%s\t%s\n", typeKind(n), n.QualifiedName())
	}

	return []byte(sb.String()), nil
}
