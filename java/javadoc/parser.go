package javadoc

import (
	"strings"
	"unicode"
)

// parser is a recursive-descent parser over the text of a comment whose
// delimiters and line prefixes have already been removed.
type parser struct {
	src []rune
	pos int
}

// Parse parses a documentation comment. The comment may still carry its
// /** */ delimiters and leading asterisks.
func Parse(comment string) *DocComment {
	p := &parser{src: []rune(stripDelimiters(comment))}
	doc := &DocComment{}
	doc.Body = trimNodes(p.content(false))
	doc.BlockTags = p.blockTags()
	return doc
}

// stripDelimiters removes /**, */ and the " * " prefix of every line.
func stripDelimiters(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "/**")
	s = strings.TrimSuffix(s, "*/")
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmed, "*") {
			trimmed = strings.TrimPrefix(trimmed[1:], " ")
			lines[i] = trimmed
			continue
		}
		if i > 0 {
			lines[i] = trimmed
		}
	}
	return strings.Join(lines, "\n")
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(off int) rune {
	i := p.pos + off
	if i < 0 || i >= len(p.src) {
		return 0
	}
	return p.src[i]
}

func (p *parser) hasPrefix(s string) bool {
	i := p.pos
	for _, r := range s {
		if i >= len(p.src) || p.src[i] != r {
			return false
		}
		i++
	}
	return true
}

func (p *parser) skip(n int) {
	p.pos += n
	if p.pos > len(p.src) {
		p.pos = len(p.src)
	}
}

func (p *parser) skipSpace() {
	for !p.eof() && (p.peek() == ' ' || p.peek() == '\t') {
		p.pos++
	}
}

func (p *parser) skipAllSpace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.pos++
	}
}

// atBlockTag reports whether an '@' at the current position opens a
// block tag, i.e. only blanks precede it on its line.
func (p *parser) atBlockTag() bool {
	if p.peek() != '@' {
		return false
	}
	for i := p.pos - 1; i >= 0; i-- {
		switch p.src[i] {
		case '\n':
			return true
		case ' ', '\t':
			continue
		default:
			return false
		}
	}
	return true
}

// content reads text, inline tags and HTML. Inside an inline tag it
// stops before the '}' that closes the tag; otherwise it stops at the
// next block tag.
func (p *parser) content(inline bool) []Node {
	var nodes []Node
	var buf strings.Builder
	depth := 0
	flush := func() {
		if buf.Len() > 0 {
			nodes = append(nodes, Text{Content: buf.String()})
			buf.Reset()
		}
	}

	for !p.eof() {
		ch := p.peek()
		if !inline && p.atBlockTag() {
			break
		}
		switch {
		case ch == '{' && p.peekAt(1) == '@':
			flush()
			nodes = append(nodes, p.inlineTag())
		case ch == '{':
			depth++
			buf.WriteRune(ch)
			p.pos++
		case ch == '}':
			if inline && depth == 0 {
				flush()
				return nodes
			}
			if depth > 0 {
				depth--
			}
			buf.WriteRune(ch)
			p.pos++
		case ch == '<' && p.startsMarkup():
			flush()
			nodes = append(nodes, p.markup())
		case ch == '&':
			flush()
			nodes = append(nodes, p.entity())
		default:
			buf.WriteRune(ch)
			p.pos++
		}
	}
	flush()
	return nodes
}

func (p *parser) inlineTag() Node {
	p.skip(2) // {@
	name := p.identifier()
	if name == "" {
		return Erroneous{Content: "{@", Message: "missing tag name"}
	}
	p.skipSpace()

	var n Node
	switch name {
	case "code":
		n = Code{Content: p.balanced()}
	case "literal":
		n = Literal{Content: p.balanced()}
	case "link", "linkplain":
		ref := p.reference()
		p.skipAllSpace()
		var label []Node
		if p.peek() != '}' {
			label = trimNodes(p.content(true))
		}
		n = Link{Reference: ref, Label: label, Plain: name == "linkplain"}
	case "value":
		n = Value{Reference: p.reference()}
	case "inheritDoc":
		n = InheritDoc{Reference: p.reference()}
	case "summary":
		n = Summary{Content: trimNodes(p.content(true))}
	case "return":
		n = Return{Description: trimNodes(p.content(true)), Inline: true}
	default:
		n = UnknownInlineTag{Name: name, Content: trimNodes(p.content(true))}
	}
	if p.peek() == '}' {
		p.pos++
	}
	return n
}

// balanced reads raw text up to the '}' matching the enclosing tag.
func (p *parser) balanced() string {
	start := p.pos
	depth := 0
	for !p.eof() {
		switch p.peek() {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return string(p.src[start:p.pos])
			}
			depth--
		}
		p.pos++
	}
	return string(p.src[start:p.pos])
}

// reference reads signature text. Parentheses may contain blanks, as in
// "#m(int, String)".
func (p *parser) reference() string {
	start := p.pos
	parens := 0
	for !p.eof() {
		ch := p.peek()
		if ch == '(' {
			parens++
		} else if ch == ')' && parens > 0 {
			parens--
		} else if parens == 0 && (unicode.IsSpace(ch) || ch == '}') {
			break
		} else if ch == '}' {
			break
		}
		p.pos++
	}
	return strings.Join(strings.Fields(string(p.src[start:p.pos])), "")
}

func (p *parser) identifier() string {
	start := p.pos
	for !p.eof() && isIdentPart(p.peek()) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func (p *parser) startsMarkup() bool {
	next := p.peekAt(1)
	return unicode.IsLetter(next) || next == '/' || next == '!'
}

func (p *parser) markup() Node {
	if p.hasPrefix("<!--") {
		start := p.pos
		p.skip(4)
		for !p.eof() && !p.hasPrefix("-->") {
			p.pos++
		}
		p.skip(3)
		return Text{Content: string(p.src[start:p.pos])}
	}
	p.pos++ // <
	if p.peek() == '/' {
		p.pos++
		name := p.tagName()
		for !p.eof() && p.peek() != '>' {
			p.pos++
		}
		p.skip(1)
		return EndElement{Name: name}
	}
	name := p.tagName()
	if name == "" {
		return Text{Content: "<"}
	}
	var attrs []Attribute
	for {
		p.skipAllSpace()
		if p.eof() || p.peek() == '>' || p.peek() == '/' {
			break
		}
		attr := p.tagName()
		if attr == "" {
			p.pos++
			continue
		}
		p.skipAllSpace()
		var value string
		if p.peek() == '=' {
			p.pos++
			p.skipAllSpace()
			value = p.attrValue()
		}
		attrs = append(attrs, Attribute{Name: attr, Value: value})
	}
	self := false
	if p.peek() == '/' {
		self = true
		p.pos++
	}
	p.skip(1) // >
	return StartElement{Name: name, Attributes: attrs, SelfClose: self}
}

func (p *parser) tagName() string {
	start := p.pos
	for !p.eof() {
		ch := p.peek()
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '-' || ch == '_' || ch == ':' {
			p.pos++
			continue
		}
		break
	}
	return string(p.src[start:p.pos])
}

func (p *parser) attrValue() string {
	if q := p.peek(); q == '"' || q == '\'' {
		p.pos++
		start := p.pos
		for !p.eof() && p.peek() != q {
			p.pos++
		}
		v := string(p.src[start:p.pos])
		p.skip(1)
		return v
	}
	start := p.pos
	for !p.eof() && !unicode.IsSpace(p.peek()) && p.peek() != '>' {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func (p *parser) entity() Node {
	p.pos++ // &
	start := p.pos
	if p.peek() == '#' {
		p.pos++
		for !p.eof() && (unicode.IsDigit(p.peek()) || strings.ContainsRune("xXabcdefABCDEF", p.peek())) {
			p.pos++
		}
	} else {
		for !p.eof() && unicode.IsLetter(p.peek()) {
			p.pos++
		}
	}
	name := string(p.src[start:p.pos])
	if name != "" && p.peek() == ';' {
		p.pos++
		return Entity{Name: name}
	}
	return Text{Content: "&" + name}
}

func (p *parser) blockTags() []Node {
	var tags []Node
	for {
		p.skipAllSpace()
		if p.eof() {
			return tags
		}
		if p.peek() != '@' {
			// stray text between tags belongs to nothing
			p.pos++
			continue
		}
		p.pos++
		name := p.identifier()
		if name == "" {
			continue
		}
		p.skipSpace()
		tags = append(tags, p.blockTag(name))
	}
}

func (p *parser) blockTag(name string) Node {
	switch name {
	case "param":
		typeParam := false
		if p.peek() == '<' {
			typeParam = true
			p.pos++
		}
		pname := p.identifier()
		if typeParam && p.peek() == '>' {
			p.pos++
		}
		return Param{Name: pname, IsTypeParam: typeParam, Description: p.blockContent()}
	case "return":
		return Return{Description: p.blockContent()}
	case "throws", "exception":
		exc := p.reference()
		return Throws{Exception: exc, Description: p.blockContent()}
	case "see":
		switch p.peek() {
		case '"', '<':
			return See{Label: p.blockContent()}
		}
		ref := p.reference()
		return See{Reference: ref, Label: p.blockContent()}
	case "since":
		return Since{Version: p.blockContent()}
	case "deprecated":
		return Deprecated{Description: p.blockContent()}
	case "hidden":
		return Hidden{Description: p.blockContent()}
	}
	return UnknownBlockTag{Name: name, Content: p.blockContent()}
}

func (p *parser) blockContent() []Node {
	return trimNodes(p.content(false))
}

// trimNodes removes leading blanks from the first text node and
// trailing blanks from the last, dropping text nodes left empty.
func trimNodes(nodes []Node) []Node {
	for len(nodes) > 0 {
		t, ok := nodes[0].(Text)
		if !ok {
			break
		}
		t.Content = strings.TrimLeftFunc(t.Content, unicode.IsSpace)
		if t.Content != "" {
			nodes[0] = t
			break
		}
		nodes = nodes[1:]
	}
	for len(nodes) > 0 {
		last := len(nodes) - 1
		t, ok := nodes[last].(Text)
		if !ok {
			break
		}
		t.Content = strings.TrimRightFunc(t.Content, unicode.IsSpace)
		if t.Content != "" {
			nodes[last] = t
			break
		}
		nodes = nodes[:last]
	}
	if len(nodes) == 0 {
		return nil
	}
	return nodes
}

func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '$'
}
