package javadoc

import (
	"strings"
)

// PlainText renders documentation content as plain text: markup is
// dropped, entities are decoded, and links without a label show the
// simple name of their target.
func PlainText(nodes []Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(plainNode(n))
	}
	return strings.TrimSpace(collapseBlankLines(sb.String()))
}

// Format renders a whole comment: the body followed by one line per
// block tag.
func Format(doc *DocComment) string {
	if doc == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(PlainText(doc.Body))
	for i, tag := range doc.BlockTags {
		if i == 0 && sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
		sb.WriteString(formatBlockTag(tag))
	}
	return strings.TrimSpace(sb.String())
}

func plainNode(node Node) string {
	switch n := node.(type) {
	case Text:
		return n.Content
	case Code:
		return n.Content
	case Literal:
		return n.Content
	case Link:
		if len(n.Label) > 0 {
			return PlainText(n.Label)
		}
		return ReferenceLabel(n.Reference)
	case Value:
		return ReferenceLabel(n.Reference)
	case Summary:
		return PlainText(n.Content)
	case Return:
		if n.Inline {
			return PlainText(n.Description)
		}
	case UnknownInlineTag:
		return PlainText(n.Content)
	case StartElement:
		switch strings.ToLower(n.Name) {
		case "p", "pre", "ul", "ol", "dl", "table", "blockquote":
			return "\n\n"
		case "br", "li", "tr", "dt", "dd":
			return "\n"
		}
	case Entity:
		return decodeEntity(n.Name)
	case Erroneous:
		return n.Content
	}
	return ""
}

// ReferenceLabel shortens signature text to what a reader sees: the
// member name for "a.B#m(int)", the simple class name for "a.B".
func ReferenceLabel(ref string) string {
	if i := strings.LastIndex(ref, "#"); i >= 0 {
		member := ref[i+1:]
		if paren := strings.Index(member, "("); paren >= 0 {
			member = member[:paren]
		}
		return member
	}
	if i := strings.LastIndex(ref, "."); i >= 0 {
		return ref[i+1:]
	}
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		return ref[i+1:]
	}
	return ref
}

func formatBlockTag(node Node) string {
	name := BlockTagName(node)
	body := PlainText(TagContent(node))
	switch n := node.(type) {
	case Param:
		if n.IsTypeParam {
			return strings.TrimSpace("@param <" + n.Name + "> " + body)
		}
		return strings.TrimSpace("@param " + n.Name + " " + body)
	case Throws:
		return strings.TrimSpace("@throws " + n.Exception + " " + body)
	case See:
		return strings.TrimSpace("@see " + n.Reference + " " + body)
	}
	return strings.TrimSpace("@" + name + " " + body)
}

func decodeEntity(name string) string {
	switch name {
	case "lt", "#60":
		return "<"
	case "gt", "#62":
		return ">"
	case "amp", "#38":
		return "&"
	case "quot", "#34":
		return "\""
	case "apos", "#39":
		return "'"
	case "nbsp", "#160":
		return " "
	}
	return "&" + name + ";"
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	blank := false
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
