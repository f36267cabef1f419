package codebase

import (
	"strings"

	"github.com/dhamidi/polydoc/java"
)

// referenceTags introduce a reference in a doc comment.
var referenceTags = []string{"{@link ", "{@linkplain ", "{@value ", "@see ", "@throws ", "@exception "}

// ReferenceAt extracts the reference under column col of line. Inside a
// reference tag that is the whole tag argument, parameter list
// included; elsewhere it is the dotted name under the cursor.
func ReferenceAt(line string, col int) string {
	for _, tag := range referenceTags {
		from := 0
		for {
			i := strings.Index(line[from:], tag)
			if i < 0 {
				break
			}
			i += from
			start := i + len(tag)
			for start < len(line) && line[start] == ' ' {
				start++
			}
			end := referenceEnd(line, start)
			if col >= i && col <= end && end > start {
				return line[start:end]
			}
			from = start
		}
	}
	return wordAt(line, col)
}

func referenceEnd(s string, i int) int {
	depth := 0
	for ; i < len(s); i++ {
		switch c := s[i]; {
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth <= 0 {
				return i + 1
			}
		case depth == 0 && (c == ' ' || c == '\t' || c == '}'):
			return i
		}
	}
	return i
}

func wordAt(line string, col int) string {
	if col > len(line) {
		col = len(line)
	}
	start, end := col, col
	for start > 0 && isRefChar(line[start-1]) {
		start--
	}
	for end < len(line) && isRefChar(line[end]) {
		end++
	}
	word := strings.Trim(line[start:end], ".")
	if word == "" || (word[0] >= '0' && word[0] <= '9') {
		return ""
	}
	return word
}

func isRefChar(c byte) bool {
	return c == '_' || c == '$' || c == '.' || c == '#' ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

type CompletionKind int

const (
	CompletionKindMethod CompletionKind = iota
	CompletionKindField
	CompletionKindClass
	CompletionKindConstructor
)

type CompletionItem struct {
	Label      string
	Kind       CompletionKind
	Detail     string
	InsertText string
}

// MemberCompletions proposes the members that can follow the '#' left
// of col in text, which is line of path. The part before '#' names the
// type; an empty one means the type declared around the cursor.
func (s *Snapshot) MemberCompletions(path string, line int, text string, col int) []CompletionItem {
	if col > len(text) {
		col = len(text)
	}
	prefix := text[:col]
	hash := strings.LastIndexByte(prefix, '#')
	if hash < 0 {
		return nil
	}
	partial := prefix[hash+1:]
	if strings.ContainsAny(partial, " (){}") {
		return nil
	}
	start := hash
	for start > 0 && isRefChar(prefix[start-1]) {
		start--
	}

	ctx := s.ElementAt(path, line)
	var owner *java.Type
	if typeText := prefix[start:hash]; typeText == "" {
		owner, _ = ctx.(*java.Type)
		if owner == nil {
			owner = java.OwnerOf(ctx)
		}
	} else if e, err := s.Signatures.Resolve(ctx, typeText); err == nil {
		owner, _ = e.(*java.Type)
	}
	if owner == nil {
		return nil
	}

	var items []CompletionItem
	for _, e := range s.Universe.AllMembers(owner) {
		if !strings.HasPrefix(e.SimpleName(), partial) {
			continue
		}
		if java.OwnerOf(e) != owner && !java.Visible(e) {
			continue
		}
		item := CompletionItem{
			Label:      e.SimpleName(),
			Detail:     e.QualifiedName(),
			InsertText: e.SimpleName(),
		}
		switch e.(type) {
		case *java.Method:
			item.Kind = CompletionKindMethod
			item.InsertText = memberText(e)
			item.Label = item.InsertText
		case *java.Constructor:
			item.Kind = CompletionKindConstructor
			item.InsertText = memberText(e)
			item.Label = item.InsertText
		case *java.Field:
			item.Kind = CompletionKindField
		case *java.Type:
			item.Kind = CompletionKindClass
		}
		items = append(items, item)
	}
	return items
}

// memberText is the part of an executable's qualified name after '#',
// which is also how a link to it is written.
func memberText(e java.Element) string {
	qn := e.QualifiedName()
	return qn[strings.IndexByte(qn, '#')+1:]
}
