// Package javadoc parses documentation comments into a tree of inline
// content and block tags.
package javadoc

// Node is the interface implemented by all documentation nodes.
type Node interface {
	node()
}

// DocComment is a parsed documentation comment.
type DocComment struct {
	Body      []Node // main description
	BlockTags []Node // @param, @return, ...
}

func (DocComment) node() {}

// Text is plain text content.
type Text struct {
	Content string
}

func (Text) node() {}

// Code is an {@code ...} inline tag.
type Code struct {
	Content string
}

func (Code) node() {}

// Literal is an {@literal ...} inline tag.
type Literal struct {
	Content string
}

func (Literal) node() {}

// Link is an {@link ...} or {@linkplain ...} inline tag. Reference is
// signature text, e.g. "java.util.List#add(Object)".
type Link struct {
	Reference string
	Label     []Node
	Plain     bool
}

func (Link) node() {}

// Value is an {@value ...} inline tag.
type Value struct {
	Reference string
}

func (Value) node() {}

// InheritDoc is an {@inheritDoc} inline tag.
type InheritDoc struct {
	Reference string
}

func (InheritDoc) node() {}

// Summary is an {@summary ...} inline tag.
type Summary struct {
	Content []Node
}

func (Summary) node() {}

// Return is an {@return ...} inline tag or an @return block tag.
type Return struct {
	Description []Node
	Inline      bool
}

func (Return) node() {}

// UnknownInlineTag is any inline tag without a dedicated node.
type UnknownInlineTag struct {
	Name    string
	Content []Node
}

func (UnknownInlineTag) node() {}

// Param is a @param block tag.
type Param struct {
	Name        string
	IsTypeParam bool
	Description []Node
}

func (Param) node() {}

// Throws is a @throws or @exception block tag. Exception is signature
// text naming the thrown class.
type Throws struct {
	Exception   string
	Description []Node
}

func (Throws) node() {}

// See is a @see block tag.
type See struct {
	Reference string // empty for quoted strings and HTML links
	Label     []Node
}

func (See) node() {}

// Since is a @since block tag.
type Since struct {
	Version []Node
}

func (Since) node() {}

// Deprecated is a @deprecated block tag.
type Deprecated struct {
	Description []Node
}

func (Deprecated) node() {}

// Hidden is a @hidden block tag.
type Hidden struct {
	Description []Node
}

func (Hidden) node() {}

// UnknownBlockTag is any block tag without a dedicated node, including
// the project tags @undocumented, @constructor and @resume.
type UnknownBlockTag struct {
	Name    string
	Content []Node
}

func (UnknownBlockTag) node() {}

// StartElement is the start of an HTML element.
type StartElement struct {
	Name       string
	Attributes []Attribute
	SelfClose  bool
}

func (StartElement) node() {}

// EndElement is the end of an HTML element.
type EndElement struct {
	Name string
}

func (EndElement) node() {}

type Attribute struct {
	Name  string
	Value string
}

// Entity is an HTML character reference like &nbsp; or &#160;.
type Entity struct {
	Name string
}

func (Entity) node() {}

// Erroneous is malformed content kept verbatim.
type Erroneous struct {
	Content string
	Message string
}

func (Erroneous) node() {}
