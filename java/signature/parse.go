// Package signature parses the reference syntax used by {@link} and
// @see, "[module/][package.Class][#member[(Type, Type[]...)]]", and
// resolves references to elements of a java.Universe.
package signature

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrMalformed is returned for text that is not a reference at all.
// A well-formed reference naming nothing is not an error.
var ErrMalformed = errors.New("malformed signature")

// Param is one parameter type of an executable reference. Dims does
// not count the dimension implied by Varargs.
type Param struct {
	Type    string
	Dims    int
	Varargs bool
}

func (p Param) String() string {
	s := p.Type + strings.Repeat("[]", p.Dims)
	if p.Varargs {
		s += "..."
	}
	return s
}

// Signature is a parsed reference.
type Signature struct {
	Module string
	// Path is the package or class text, possibly empty.
	Path   string
	Member string
	// Executable is set when the member carries a parameter list, even
	// an empty one; Params is meaningful only then.
	Executable bool
	Params     []Param
}

// HasModule reports whether the reference starts with "module/".
func (s Signature) HasModule() bool { return s.Module != "" }

func (s Signature) String() string {
	var sb strings.Builder
	if s.Module != "" {
		sb.WriteString(s.Module)
		sb.WriteByte('/')
	}
	sb.WriteString(s.Path)
	if s.Member != "" {
		sb.WriteByte('#')
		sb.WriteString(s.Member)
	}
	if s.Executable {
		sb.WriteByte('(')
		for i, p := range s.Params {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(p.String())
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

type parser struct {
	src []rune
	pos int
}

// Parse parses reference text. Surrounding blanks are ignored, as are
// blanks around the commas of a parameter list.
func Parse(text string) (Signature, error) {
	p := &parser{src: []rune(strings.TrimSpace(text))}
	sig, err := p.signature()
	if err != nil {
		return Signature{}, fmt.Errorf("%q: %w", text, err)
	}
	return sig, nil
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) fail(what string) error {
	return fmt.Errorf("%s at offset %d: %w", what, p.pos, ErrMalformed)
}

func (p *parser) signature() (Signature, error) {
	var sig Signature
	if p.eof() {
		return sig, p.fail("empty reference")
	}

	if p.peek() != '#' {
		name, err := p.qualified()
		if err != nil {
			return sig, err
		}
		if p.peek() == '/' {
			p.pos++
			sig.Module = name
			if !p.eof() && p.peek() != '#' {
				if sig.Path, err = p.qualified(); err != nil {
					return sig, err
				}
			}
		} else {
			sig.Path = name
		}
	}

	if p.peek() == '#' {
		p.pos++
		member := p.identifier()
		if member == "" {
			return sig, p.fail("expected member name")
		}
		sig.Member = member
		if p.peek() == '(' {
			p.pos++
			params, err := p.params()
			if err != nil {
				return sig, err
			}
			sig.Executable = true
			sig.Params = params
		}
	}

	if !p.eof() {
		return sig, p.fail(fmt.Sprintf("unexpected %q", p.peek()))
	}
	return sig, nil
}

func (p *parser) params() ([]Param, error) {
	var params []Param
	p.skipBlanks()
	if p.peek() == ')' {
		p.pos++
		return params, nil
	}
	for {
		p.skipBlanks()
		param, err := p.param()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		p.skipBlanks()
		switch p.peek() {
		case ',':
			if param.Varargs {
				return nil, p.fail("variable arity parameter must be last")
			}
			p.pos++
		case ')':
			p.pos++
			return params, nil
		default:
			return nil, p.fail("expected ',' or ')'")
		}
	}
}

func (p *parser) param() (Param, error) {
	name, err := p.qualified()
	if err != nil {
		return Param{}, err
	}
	param := Param{Type: name}
	for p.hasPrefix("[]") {
		param.Dims++
		p.pos += 2
	}
	if p.hasPrefix("...") {
		param.Varargs = true
		p.pos += 3
	}
	return param, nil
}

// qualified reads identifiers separated by single dots. A dot that
// starts "..." is left for the caller.
func (p *parser) qualified() (string, error) {
	start := p.pos
	if p.identifier() == "" {
		return "", p.fail("expected identifier")
	}
	for p.peek() == '.' && !p.hasPrefix("...") {
		p.pos++
		if p.identifier() == "" {
			return "", p.fail("expected identifier after '.'")
		}
	}
	return string(p.src[start:p.pos]), nil
}

func (p *parser) identifier() string {
	start := p.pos
	if p.eof() || !isIdentStart(p.peek()) {
		return ""
	}
	p.pos++
	for !p.eof() && isIdentPart(p.peek()) {
		p.pos++
	}
	return string(p.src[start:p.pos])
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

func (p *parser) skipBlanks() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.pos++
	}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '$'
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
