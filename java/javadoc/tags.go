package javadoc

import (
	"strings"
	"unicode"
)

// BlockTagName returns the name a block tag node was written with,
// without the '@'. Non-tag nodes give "".
func BlockTagName(n Node) string {
	switch n := n.(type) {
	case Param:
		return "param"
	case Return:
		return "return"
	case Throws:
		return "throws"
	case See:
		return "see"
	case Since:
		return "since"
	case Deprecated:
		return "deprecated"
	case Hidden:
		return "hidden"
	case UnknownBlockTag:
		return n.Name
	}
	return ""
}

// TagContent returns the description carried by a block tag.
func TagContent(n Node) []Node {
	switch n := n.(type) {
	case Param:
		return n.Description
	case Return:
		return n.Description
	case Throws:
		return n.Description
	case See:
		return n.Label
	case Since:
		return n.Version
	case Deprecated:
		return n.Description
	case Hidden:
		return n.Description
	case UnknownBlockTag:
		return n.Content
	}
	return nil
}

// BlockTagsNamed returns the block tags whose name is one of names, in
// the order they were written.
func (d *DocComment) BlockTagsNamed(names ...string) []Node {
	if d == nil {
		return nil
	}
	var out []Node
	for _, tag := range d.BlockTags {
		name := BlockTagName(tag)
		for _, want := range names {
			if name == want {
				out = append(out, tag)
				break
			}
		}
	}
	return out
}

func (d *DocComment) HasBlockTag(names ...string) bool {
	return len(d.BlockTagsNamed(names...)) > 0
}

func (d *DocComment) HasBody() bool {
	return d != nil && len(d.Body) > 0
}

// ParamDoc returns the description of the @param tag for a value
// parameter called name. Empty descriptions count as absent.
func (d *DocComment) ParamDoc(name string) ([]Node, bool) {
	for _, tag := range d.BlockTagsNamed("param") {
		p, ok := tag.(Param)
		if !ok || p.IsTypeParam || p.Name != name || len(p.Description) == 0 {
			continue
		}
		return p.Description, true
	}
	return nil, false
}

// ReturnDoc returns the first non-empty @return block tag, falling back
// to an inline {@return} in the body.
func (d *DocComment) ReturnDoc() ([]Node, bool) {
	for _, tag := range d.BlockTagsNamed("return") {
		if r, ok := tag.(Return); ok && len(r.Description) > 0 {
			return r.Description, true
		}
	}
	if d == nil {
		return nil, false
	}
	for _, n := range d.Body {
		if r, ok := n.(Return); ok && len(r.Description) > 0 {
			return r.Description, true
		}
	}
	return nil, false
}

func (d *DocComment) ThrowsTags() []Throws {
	var out []Throws
	for _, tag := range d.BlockTagsNamed("throws") {
		if t, ok := tag.(Throws); ok {
			out = append(out, t)
		}
	}
	return out
}

// Deprecation reports whether a @deprecated tag is present and whether
// any such tag carries an explanation.
func (d *DocComment) Deprecation() (marked, explained bool) {
	for _, tag := range d.BlockTagsNamed("deprecated") {
		marked = true
		if len(TagContent(tag)) > 0 {
			explained = true
		}
	}
	return marked, explained
}

// SummaryTag returns the content of the first non-empty block tag named
// in names, such as @resume.
func (d *DocComment) SummaryTag(names ...string) ([]Node, bool) {
	for _, tag := range d.BlockTagsNamed(names...) {
		if c := TagContent(tag); len(c) > 0 {
			return c, true
		}
	}
	return nil, false
}

// blockElements end a first sentence when they open.
var blockElements = map[string]bool{
	"p": true, "pre": true, "ul": true, "ol": true, "dl": true, "table": true,
	"blockquote": true, "hr": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "div": true, "section": true,
}

// FirstSentence returns the body up to the first period followed by
// white space, or up to the first block-level HTML element. A leading
// {@summary} or {@return} supplies the sentence instead.
func (d *DocComment) FirstSentence() []Node {
	if d == nil || len(d.Body) == 0 {
		return nil
	}
	for _, n := range d.Body {
		switch n := n.(type) {
		case Summary:
			return n.Content
		case Return:
			if n.Inline {
				out := []Node{Text{Content: "Returns "}}
				out = append(out, n.Description...)
				return append(out, Text{Content: "."})
			}
		case Text:
			if strings.TrimSpace(n.Content) == "" {
				continue
			}
		}
		break
	}

	var out []Node
	for _, n := range d.Body {
		switch n := n.(type) {
		case Text:
			if end := sentenceEnd(n.Content); end >= 0 {
				out = append(out, Text{Content: n.Content[:end]})
				return trimNodes(out)
			}
		case StartElement:
			if blockElements[strings.ToLower(n.Name)] {
				if hasText(out) {
					return trimNodes(out)
				}
				continue
			}
		case EndElement:
			if blockElements[strings.ToLower(n.Name)] {
				continue
			}
		}
		out = append(out, n)
	}
	return trimNodes(out)
}

// sentenceEnd returns the index just past a sentence-ending period, or -1.
func sentenceEnd(s string) int {
	runes := []rune(s)
	for i, r := range runes {
		if r != '.' {
			continue
		}
		if i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
			return len(string(runes[:i+1]))
		}
	}
	return -1
}

func hasText(nodes []Node) bool {
	for _, n := range nodes {
		if t, ok := n.(Text); ok && strings.TrimSpace(t.Content) == "" {
			continue
		}
		return true
	}
	return false
}
