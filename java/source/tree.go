package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	tsjava "github.com/smacker/go-tree-sitter/java"

	"github.com/dhamidi/polydoc/java"
	"github.com/dhamidi/polydoc/java/javadoc"
)

func parseUnit(ctx context.Context, path string, src []byte) (*unit, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(tsjava.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		log.Warningf("%s: syntax errors, declarations may be incomplete", path)
	}

	b := &builder{src: src, path: path}
	u := &unit{path: path}
	for _, n := range children(root) {
		switch n.Type() {
		case "package_declaration":
			u.pkg = b.packageName(n)
			u.pkgDoc = b.docBefore(n)
			u.pkgAnnotations = b.annotationsIn(n)
			b.pkg = u.pkg
		case "import_declaration":
			u.imports = append(u.imports, b.importDecl(n))
		case "module_declaration":
			u.module = &moduleDecl{
				name:        b.text(n.ChildByFieldName("name")),
				doc:         b.docBefore(n),
				annotations: b.annotationsIn(n),
			}
		default:
			if t := b.typeDecl(n, nil); t != nil {
				u.types = append(u.types, t)
			}
		}
	}
	for _, t := range u.types {
		t.Imports = u.imports
	}
	return u, nil
}

// builder turns the syntax tree of one file into elements with type
// names as written.
type builder struct {
	src  []byte
	path string
	pkg  string
}

func (b *builder) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(b.src)
}

func line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

func children(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.ChildCount())
	for i := 0; i < int(n.ChildCount()); i++ {
		out = append(out, n.Child(i))
	}
	return out
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		out = append(out, n.NamedChild(i))
	}
	return out
}

func childOfType(n *sitter.Node, types ...string) *sitter.Node {
	for _, c := range children(n) {
		for _, t := range types {
			if c.Type() == t {
				return c
			}
		}
	}
	return nil
}

// docBefore returns the documentation comment written just before n,
// skipping line comments.
func (b *builder) docBefore(n *sitter.Node) *javadoc.DocComment {
	for p := n.PrevSibling(); p != nil; p = p.PrevSibling() {
		switch p.Type() {
		case "line_comment":
			continue
		case "block_comment", "comment":
			text := b.text(p)
			if strings.HasPrefix(text, "//") {
				continue
			}
			if strings.HasPrefix(text, "/**") && text != "/**/" {
				return javadoc.Parse(text)
			}
			return nil
		default:
			return nil
		}
	}
	return nil
}

func (b *builder) packageName(n *sitter.Node) string {
	return b.text(childOfType(n, "scoped_identifier", "identifier"))
}

func (b *builder) annotationsIn(n *sitter.Node) []string {
	var out []string
	for _, c := range namedChildren(n) {
		if c.Type() == "marker_annotation" || c.Type() == "annotation" {
			out = append(out, b.text(c.ChildByFieldName("name")))
		}
	}
	return out
}

func (b *builder) importDecl(n *sitter.Node) java.Import {
	var imp java.Import
	for _, c := range children(n) {
		switch c.Type() {
		case "static":
			imp.Static = true
		case "asterisk":
			imp.Wildcard = true
		case "scoped_identifier", "identifier":
			imp.Name = b.text(c)
		}
	}
	return imp
}

func (b *builder) modifiers(n *sitter.Node) (java.Modifiers, []string) {
	mods := childOfType(n, "modifiers")
	if mods == nil {
		return 0, nil
	}
	var (
		flags       java.Modifiers
		annotations []string
	)
	for _, c := range children(mods) {
		switch c.Type() {
		case "marker_annotation", "annotation":
			annotations = append(annotations, b.text(c.ChildByFieldName("name")))
		default:
			flags |= java.ParseModifier(c.Type())
		}
	}
	return flags, annotations
}

var typeKinds = map[string]java.ClassKind{
	"class_declaration":           java.ClassKindClass,
	"record_declaration":          java.ClassKindClass,
	"interface_declaration":       java.ClassKindInterface,
	"enum_declaration":            java.ClassKindEnum,
	"annotation_type_declaration": java.ClassKindAnnotation,
}

func (b *builder) typeDecl(n *sitter.Node, outer *java.Type) *java.Type {
	kind, ok := typeKinds[n.Type()]
	if !ok {
		return nil
	}
	t := &java.Type{
		Name:       b.text(n.ChildByFieldName("name")),
		TypeKind:   kind,
		TypeParams: b.typeParams(n.ChildByFieldName("type_parameters")),
		Doc:        b.docBefore(n),
		SourceFile: b.path,
		Line:       line(n),
	}
	t.Modifiers, t.Annotations = b.modifiers(n)
	if outer != nil && (kind != java.ClassKindClass || n.Type() == "record_declaration" || outer.IsInterface()) {
		t.Modifiers |= java.ModStatic
	}

	var components []java.Param
	switch n.Type() {
	case "class_declaration":
		if sc := n.ChildByFieldName("superclass"); sc != nil {
			ref := b.typeRef(firstType(sc))
			t.Superclass = &ref
		} else if !(b.pkg == "java.lang" && t.Name == "Object") {
			ref := java.Ref("java.lang.Object")
			t.Superclass = &ref
		}
		t.Interfaces = b.typeList(n.ChildByFieldName("interfaces"))
	case "interface_declaration":
		t.Interfaces = b.typeList(childOfType(n, "extends_interfaces"))
	case "enum_declaration":
		ref := java.Ref("java.lang.Enum")
		ref.Args = []java.TypeRef{java.Ref(t.Name)}
		t.Superclass = &ref
		t.Interfaces = b.typeList(n.ChildByFieldName("interfaces"))
	case "record_declaration":
		ref := java.Ref("java.lang.Record")
		t.Superclass = &ref
		t.Interfaces = b.typeList(n.ChildByFieldName("interfaces"))
		components, _ = b.params(n.ChildByFieldName("parameters"))
	}

	b.members(t, n.ChildByFieldName("body"), components)

	switch n.Type() {
	case "enum_declaration":
		addEnumMethods(t)
	case "record_declaration":
		addRecordMembers(t, components)
	}
	return t
}

func (b *builder) members(t *java.Type, body *sitter.Node, components []java.Param) {
	for _, c := range children(body) {
		switch c.Type() {
		case "field_declaration", "constant_declaration":
			t.Fields = append(t.Fields, b.fields(c, t)...)
		case "method_declaration", "annotation_type_element_declaration":
			t.Methods = append(t.Methods, b.method(c))
		case "constructor_declaration":
			t.Constructors = append(t.Constructors, b.constructor(c))
		case "compact_constructor_declaration":
			ctor := &java.Constructor{Params: components, Doc: b.docBefore(c), Line: line(c)}
			ctor.Modifiers, ctor.Annotations = b.modifiers(c)
			t.Constructors = append(t.Constructors, ctor)
		case "enum_constant":
			t.Fields = append(t.Fields, b.enumConstant(c, t))
		case "enum_body_declarations":
			b.members(t, c, components)
		default:
			if nested := b.typeDecl(c, t); nested != nil {
				t.Nested = append(t.Nested, nested)
			}
		}
	}
}

func (b *builder) fields(n *sitter.Node, owner *java.Type) []*java.Field {
	mods, annotations := b.modifiers(n)
	if owner.IsInterface() {
		mods |= java.ModStatic | java.ModFinal
	}
	typ := b.typeRef(n.ChildByFieldName("type"))
	doc := b.docBefore(n)

	var out []*java.Field
	for _, d := range children(n) {
		if d.Type() != "variable_declarator" {
			continue
		}
		f := &java.Field{
			Name:        b.text(d.ChildByFieldName("name")),
			Type:        typ,
			Modifiers:   mods,
			Annotations: annotations,
			Doc:         doc,
			Line:        line(d),
		}
		f.Type.Dims += dims(b.text(d.ChildByFieldName("dimensions")))
		if mods.Has(java.ModStatic | java.ModFinal) {
			f.Constant = b.literal(d.ChildByFieldName("value"))
		}
		out = append(out, f)
	}
	return out
}

func (b *builder) enumConstant(n *sitter.Node, owner *java.Type) *java.Field {
	f := &java.Field{
		Name:      b.text(n.ChildByFieldName("name")),
		Type:      java.Ref(owner.Name),
		Modifiers: java.ModPublic | java.ModStatic | java.ModFinal,
		EnumConst: true,
		Doc:       b.docBefore(n),
		Line:      line(n),
	}
	_, f.Annotations = b.modifiers(n)
	return f
}

func (b *builder) method(n *sitter.Node) *java.Method {
	m := &java.Method{
		Name:       b.text(n.ChildByFieldName("name")),
		Returns:    b.typeRef(n.ChildByFieldName("type")),
		TypeParams: b.typeParams(n.ChildByFieldName("type_parameters")),
		Throws:     b.throws(n),
		Doc:        b.docBefore(n),
		Line:       line(n),
	}
	m.Returns.Dims += dims(b.text(n.ChildByFieldName("dimensions")))
	m.Modifiers, m.Annotations = b.modifiers(n)
	m.Params, m.Varargs = b.params(n.ChildByFieldName("parameters"))
	return m
}

func (b *builder) constructor(n *sitter.Node) *java.Constructor {
	c := &java.Constructor{
		TypeParams: b.typeParams(n.ChildByFieldName("type_parameters")),
		Throws:     b.throws(n),
		Doc:        b.docBefore(n),
		Line:       line(n),
	}
	c.Modifiers, c.Annotations = b.modifiers(n)
	c.Params, c.Varargs = b.params(n.ChildByFieldName("parameters"))
	return c
}

func (b *builder) params(n *sitter.Node) ([]java.Param, bool) {
	var (
		out     []java.Param
		varargs bool
	)
	for _, c := range namedChildren(n) {
		switch c.Type() {
		case "formal_parameter":
			p := java.Param{
				Name: b.text(c.ChildByFieldName("name")),
				Type: b.typeRef(c.ChildByFieldName("type")),
			}
			p.Type.Dims += dims(b.text(c.ChildByFieldName("dimensions")))
			out = append(out, p)
		case "spread_parameter":
			var p java.Param
			for _, part := range namedChildren(c) {
				switch part.Type() {
				case "modifiers":
				case "variable_declarator":
					p.Name = b.text(part.ChildByFieldName("name"))
				default:
					p.Type = b.typeRef(part)
				}
			}
			p.Type.Dims++
			out = append(out, p)
			varargs = true
		}
	}
	return out, varargs
}

func (b *builder) throws(n *sitter.Node) []java.TypeRef {
	return b.typeList(childOfType(n, "throws"))
}

// typeList collects the types listed under n, looking through the
// type_list wrapper of extends and implements clauses.
func (b *builder) typeList(n *sitter.Node) []java.TypeRef {
	var out []java.TypeRef
	for _, c := range namedChildren(n) {
		if c.Type() == "type_list" {
			out = append(out, b.typeList(c)...)
			continue
		}
		if isAnnotation(c) {
			continue
		}
		out = append(out, b.typeRef(c))
	}
	return out
}

func (b *builder) typeParams(n *sitter.Node) []java.TypeParam {
	var out []java.TypeParam
	for _, c := range namedChildren(n) {
		if c.Type() != "type_parameter" {
			continue
		}
		var tp java.TypeParam
		for _, part := range namedChildren(c) {
			switch part.Type() {
			case "type_identifier", "identifier":
				tp.Name = b.text(part)
			case "type_bound":
				tp.Bounds = b.typeList(part)
			}
		}
		out = append(out, tp)
	}
	return out
}

func (b *builder) typeRef(n *sitter.Node) java.TypeRef {
	if n == nil {
		return java.TypeRef{}
	}
	switch n.Type() {
	case "array_type":
		r := b.typeRef(n.ChildByFieldName("element"))
		r.Dims += dims(b.text(n.ChildByFieldName("dimensions")))
		return r
	case "generic_type":
		var r java.TypeRef
		for _, c := range namedChildren(n) {
			if c.Type() == "type_arguments" {
				r.Args = b.typeArgs(c)
			} else {
				r.Name = b.typeName(c)
			}
		}
		return r
	case "annotated_type":
		named := namedChildren(n)
		if len(named) == 0 {
			return java.TypeRef{}
		}
		return b.typeRef(named[len(named)-1])
	}
	return java.Ref(b.typeName(n))
}

// typeName returns the dotted name of a type without annotations or
// type arguments.
func (b *builder) typeName(n *sitter.Node) string {
	switch n.Type() {
	case "scoped_type_identifier":
		var parts []string
		for _, c := range namedChildren(n) {
			if isAnnotation(c) || c.Type() == "type_arguments" {
				continue
			}
			parts = append(parts, b.typeName(c))
		}
		return strings.Join(parts, ".")
	case "generic_type":
		for _, c := range namedChildren(n) {
			if c.Type() != "type_arguments" {
				return b.typeName(c)
			}
		}
	}
	return b.text(n)
}

func (b *builder) typeArgs(n *sitter.Node) []java.TypeRef {
	var out []java.TypeRef
	for _, c := range namedChildren(n) {
		if isAnnotation(c) {
			continue
		}
		if c.Type() != "wildcard" {
			out = append(out, b.typeRef(c))
			continue
		}
		// "? extends T" stands for T; "?" and "? super T" for Object.
		bound := java.Ref("java.lang.Object")
		lower := false
		for _, part := range namedChildren(c) {
			switch {
			case part.Type() == "super":
				lower = true
			case isAnnotation(part):
			case !lower:
				bound = b.typeRef(part)
			}
		}
		out = append(out, bound)
	}
	return out
}

func (b *builder) literal(n *sitter.Node) any {
	if n == nil {
		return nil
	}
	text := b.text(n)
	switch n.Type() {
	case "string_literal":
		if s, err := strconv.Unquote(text); err == nil {
			return s
		}
		return strings.Trim(text, `"`)
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal",
		"binary_integer_literal", "decimal_floating_point_literal",
		"hex_floating_point_literal", "character_literal", "true", "false":
		return text
	case "unary_expression":
		if operand := n.ChildByFieldName("operand"); operand != nil && b.literal(operand) != nil {
			return strings.ReplaceAll(text, " ", "")
		}
	}
	return nil
}

func firstType(n *sitter.Node) *sitter.Node {
	for _, c := range namedChildren(n) {
		if !isAnnotation(c) {
			return c
		}
	}
	return nil
}

func isAnnotation(n *sitter.Node) bool {
	return n.Type() == "marker_annotation" || n.Type() == "annotation"
}

func dims(text string) int {
	return strings.Count(text, "[")
}

// addEnumMethods declares the values() and valueOf(String) every enum
// has implicitly.
func addEnumMethods(t *java.Type) {
	has := func(name string, params int) bool {
		for _, m := range t.Methods {
			if m.Name == name && len(m.Params) == params {
				return true
			}
		}
		return false
	}
	mods := java.ModPublic | java.ModStatic
	if !has("values", 0) {
		t.Methods = append(t.Methods, &java.Method{
			Name:      "values",
			Returns:   java.ArrayOf(t.Name, 1),
			Modifiers: mods,
		})
	}
	if !has("valueOf", 1) {
		t.Methods = append(t.Methods, &java.Method{
			Name:      "valueOf",
			Returns:   java.Ref(t.Name),
			Params:    []java.Param{{Name: "name", Type: java.Ref("String")}},
			Modifiers: mods,
		})
	}
}

// addRecordMembers declares the private fields, accessors and canonical
// constructor a record has implicitly.
func addRecordMembers(t *java.Type, components []java.Param) {
	for _, c := range components {
		t.Fields = append(t.Fields, &java.Field{
			Name:      c.Name,
			Type:      c.Type,
			Modifiers: java.ModPrivate | java.ModFinal,
		})
		declared := false
		for _, m := range t.Methods {
			if m.Name == c.Name && len(m.Params) == 0 {
				declared = true
				break
			}
		}
		if !declared {
			t.Methods = append(t.Methods, &java.Method{
				Name:      c.Name,
				Returns:   c.Type,
				Modifiers: java.ModPublic,
			})
		}
	}
	for _, ctor := range t.Constructors {
		if len(ctor.Params) == len(components) {
			return
		}
	}
	t.Constructors = append(t.Constructors, &java.Constructor{
		Params:    components,
		Modifiers: java.ModPublic,
	})
}
