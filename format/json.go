package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/polydoc/java"
	"github.com/dhamidi/polydoc/java/javadoc"
)

type JSONEncoder struct {
	w     io.Writer
	class *java.Type
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(t *java.Type) error {
	e.class = t
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data := buildTypeData(e.class)
	return json.MarshalIndent(data, "", "  ")
}

type jsonType struct {
	Name         string            `json:"name"`
	SimpleName   string            `json:"simpleName"`
	Package      string            `json:"package"`
	Kind         string            `json:"kind"`
	Modifiers    []string          `json:"modifiers,omitempty"`
	SuperClass   string            `json:"superClass,omitempty"`
	Interfaces   []string          `json:"interfaces,omitempty"`
	Doc          string            `json:"doc,omitempty"`
	Fields       []jsonField       `json:"fields,omitempty"`
	Constructors []jsonConstructor `json:"constructors,omitempty"`
	Methods      []jsonMethod      `json:"methods,omitempty"`
	Nested       []jsonType        `json:"nested,omitempty"`
}

type jsonField struct {
	Name      string   `json:"name"`
	Type      jsonRef  `json:"type"`
	Modifiers []string `json:"modifiers,omitempty"`
	Constant  any      `json:"constant,omitempty"`
	Doc       string   `json:"doc,omitempty"`
}

type jsonConstructor struct {
	Parameters []jsonParameter `json:"parameters,omitempty"`
	Throws     []string        `json:"throws,omitempty"`
	Modifiers  []string        `json:"modifiers,omitempty"`
	Doc        string          `json:"doc,omitempty"`
}

type jsonMethod struct {
	Name       string          `json:"name"`
	ReturnType jsonRef         `json:"returnType"`
	Parameters []jsonParameter `json:"parameters,omitempty"`
	Throws     []string        `json:"throws,omitempty"`
	Varargs    bool            `json:"varargs,omitempty"`
	Modifiers  []string        `json:"modifiers,omitempty"`
	Doc        string          `json:"doc,omitempty"`
}

type jsonParameter struct {
	Name string  `json:"name,omitempty"`
	Type jsonRef `json:"type"`
}

type jsonRef struct {
	Name       string `json:"name"`
	ArrayDepth int    `json:"arrayDepth,omitempty"`
	Generic    string `json:"generic,omitempty"`
}

func buildTypeData(c *java.Type) jsonType {
	data := jsonType{
		Name:       c.QualifiedName(),
		SimpleName: c.Name,
		Kind:       typeKind(c),
		Modifiers:  modifierWords(c.Modifiers),
		Doc:        javadoc.Format(c.Doc),
	}
	if p := c.TopLevel().Package; p != nil {
		data.Package = p.Name
	}
	if c.Superclass != nil {
		data.SuperClass = c.Superclass.String()
	}
	for _, i := range c.Interfaces {
		data.Interfaces = append(data.Interfaces, i.String())
	}

	for _, f := range c.Fields {
		data.Fields = append(data.Fields, jsonField{
			Name:      f.Name,
			Type:      buildRef(f.Type),
			Modifiers: modifierWords(f.Modifiers),
			Constant:  f.Constant,
			Doc:       javadoc.Format(f.Doc),
		})
	}
	for _, ctor := range c.Constructors {
		data.Constructors = append(data.Constructors, jsonConstructor{
			Parameters: buildParams(ctor.Params),
			Throws:     refNames(ctor.Throws),
			Modifiers:  modifierWords(ctor.Modifiers),
			Doc:        javadoc.Format(ctor.Doc),
		})
	}
	for _, m := range c.Methods {
		data.Methods = append(data.Methods, jsonMethod{
			Name:       m.Name,
			ReturnType: buildRef(m.Returns),
			Parameters: buildParams(m.Params),
			Throws:     refNames(m.Throws),
			Varargs:    m.Varargs,
			Modifiers:  modifierWords(m.Modifiers),
			Doc:        javadoc.Format(m.Doc),
		})
	}
	for _, n := range c.Nested {
		data.Nested = append(data.Nested, buildTypeData(n))
	}
	return data
}

func buildRef(r java.TypeRef) jsonRef {
	ref := jsonRef{Name: r.Name, ArrayDepth: r.Dims}
	if len(r.Args) > 0 {
		ref.Generic = r.String()
	}
	return ref
}

func buildParams(params []java.Param) []jsonParameter {
	var out []jsonParameter
	for _, p := range params {
		out = append(out, jsonParameter{Name: p.Name, Type: buildRef(p.Type)})
	}
	return out
}

func refNames(refs []java.TypeRef) []string {
	var out []string
	for _, r := range refs {
		out = append(out, r.String())
	}
	return out
}
