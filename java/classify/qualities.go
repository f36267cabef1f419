// Package classify derives per-element qualities (exclusion and
// deprecation) and the type-keyed API indexes from a java.Universe.
package classify

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/polydoc/java"
)

var log = commonlog.GetLogger("polydoc.classify")

// ErrCycle is returned by Build when the enclosing, supertype or
// override relations of the model form a cycle.
var ErrCycle = errors.New("cyclic declaration")

const (
	DefaultExcludeTag     = "undocumented"
	DefaultConstructorTag = "constructor"
)

// Deprecation orders the deprecation states from weakest to strongest.
type Deprecation int

const (
	NotDeprecated Deprecation = iota
	// Implied deprecation comes from a container, a supertype or an
	// overridden method.
	Implied
	// Marked is an empty @deprecated tag or a @Deprecated annotation.
	Marked
	// Advised is a @deprecated tag that explains itself.
	Advised
)

func (d Deprecation) String() string {
	switch d {
	case Implied:
		return "implied"
	case Marked:
		return "marked"
	case Advised:
		return "advised"
	}
	return "none"
}

func (d Deprecation) IsDeprecated() bool { return d != NotDeprecated }
func (d Deprecation) IsExplicit() bool   { return d >= Marked }

// Qualities are the classifier's conclusions about one element. Causes
// is only set for Implied deprecation and holds explicitly deprecated
// elements, sorted by qualified name.
type Qualities struct {
	Excluded    bool
	Deprecation Deprecation
	Causes      []java.Element
}

type Option func(*Classifier)

// WithExcludeTag names the block tag that hides an element, normally
// @undocumented.
func WithExcludeTag(name string) Option {
	return func(c *Classifier) {
		c.excludeTag = name
	}
}

// WithConstructorTag names the block tag that marks a factory method
// as a pseudo-constructor.
func WithConstructorTag(name string) Option {
	return func(c *Classifier) {
		c.constructorTag = name
	}
}

// Classifier holds the qualities of every documented element and the
// index maps. It is immutable once Build returns.
type Classifier struct {
	u              *java.Universe
	excludeTag     string
	constructorTag string

	qualities map[java.Element]Qualities

	producers          map[*java.Type][]java.Element
	consumers          map[*java.Type][]java.Element
	transformers       map[*java.Type][]java.Element
	pseudoConstructors map[*java.Type][]*java.Method
	subtypes           map[*java.Type][]*java.Type
	directSubtypes     map[*java.Type][]*java.Type
}

// Build computes qualities in two phases. The first orders elements so
// that each comes after its container, its direct supertypes and the
// methods it overrides, failing with ErrCycle if no such order exists.
// The second walks that order once, so every dependency is final when
// it is read.
func Build(u *java.Universe, opts ...Option) (*Classifier, error) {
	c := &Classifier{
		u:              u,
		excludeTag:     DefaultExcludeTag,
		constructorTag: DefaultConstructorTag,
		qualities:      make(map[java.Element]Qualities),
	}
	for _, opt := range opts {
		opt(c)
	}

	order, err := c.order()
	if err != nil {
		return nil, err
	}
	for _, e := range order {
		c.qualities[e] = c.compute(e)
	}
	c.buildIndexes()

	log.Infof("classified %d elements, %d excluded, %d deprecated",
		len(c.qualities), len(c.ExcludedElements()), len(c.DeprecatedElements()))
	return c, nil
}

func (c *Classifier) Universe() *java.Universe { return c.u }

// Qualities returns the qualities of e. Types and members outside the
// public/protected API have none.
func (c *Classifier) Qualities(e java.Element) (Qualities, bool) {
	q, ok := c.qualities[e]
	return q, ok
}

func (c *Classifier) IsExcluded(e java.Element) bool {
	return c.qualities[e].Excluded
}

// Documented reports whether e belongs to the documented API: it has
// qualities and is not excluded.
func (c *Classifier) Documented(e java.Element) bool {
	q, ok := c.qualities[e]
	return ok && !q.Excluded
}

// ExcludedElements lists excluded elements by qualified name.
func (c *Classifier) ExcludedElements() []java.Element {
	return c.collect(func(q Qualities) bool { return q.Excluded })
}

// DeprecatedElements lists deprecated elements that are not excluded.
func (c *Classifier) DeprecatedElements() []java.Element {
	return c.collect(func(q Qualities) bool {
		return !q.Excluded && q.Deprecation.IsDeprecated()
	})
}

func (c *Classifier) collect(keep func(Qualities) bool) []java.Element {
	var out []java.Element
	for e, q := range c.qualities {
		if keep(q) {
			out = append(out, e)
		}
	}
	sortElements(c.u, out)
	return out
}

func hasQualities(e java.Element) bool {
	switch e.(type) {
	case *java.Module, *java.Package:
		return true
	case *java.Type, *java.Field, *java.Method, *java.Constructor:
		return java.Visible(e)
	}
	return false
}

// container returns the nearest enclosing element that has qualities.
func container(e java.Element) java.Element {
	for p := e.Enclosing(); p != nil; p = p.Enclosing() {
		if hasQualities(p) {
			return p
		}
	}
	return nil
}

func (c *Classifier) bases(t *java.Type) []*java.Type {
	var out []*java.Type
	for _, s := range c.u.DirectSupertypes(t) {
		if hasQualities(s) {
			out = append(out, s)
		}
	}
	return out
}

func (c *Classifier) overridden(m *java.Method) []*java.Method {
	if m.Owner == nil || m.Modifiers.IsStatic() {
		return nil
	}
	var out []*java.Method
	for _, a := range c.u.Ancestors(m.Owner) {
		for _, cand := range c.u.OverriddenBy(m, a) {
			if hasQualities(cand) {
				out = append(out, cand)
			}
		}
	}
	return out
}

func (c *Classifier) deps(e java.Element) []java.Element {
	var out []java.Element
	if p := container(e); p != nil {
		out = append(out, p)
	}
	switch e := e.(type) {
	case *java.Type:
		for _, b := range c.bases(e) {
			out = append(out, b)
		}
	case *java.Method:
		for _, m := range c.overridden(e) {
			out = append(out, m)
		}
	}
	return out
}

func (c *Classifier) order() ([]java.Element, error) {
	const (
		visiting = 1
		done     = 2
	)
	state := make(map[java.Element]int)
	var order, stack []java.Element

	var visit func(e java.Element) error
	visit = func(e java.Element) error {
		switch state[e] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("%s: %w", cyclePath(stack, e), ErrCycle)
		}
		state[e] = visiting
		stack = append(stack, e)
		for _, d := range c.deps(e) {
			if err := visit(d); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[e] = done
		order = append(order, e)
		return nil
	}

	for _, e := range c.u.Elements() {
		if !hasQualities(e) {
			continue
		}
		if err := visit(e); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func cyclePath(stack []java.Element, repeat java.Element) string {
	start := 0
	for i, e := range stack {
		if e == repeat {
			start = i
			break
		}
	}
	names := make([]string, 0, len(stack)-start+1)
	for _, e := range stack[start:] {
		names = append(names, e.QualifiedName())
	}
	names = append(names, repeat.QualifiedName())
	return strings.Join(names, " -> ")
}

func (c *Classifier) compute(e java.Element) Qualities {
	q := Qualities{Excluded: c.excluded(e)}
	q.Deprecation, q.Causes = c.deprecation(e)
	return q
}

func (c *Classifier) excluded(e java.Element) bool {
	if e.Comment().HasBlockTag(c.excludeTag) {
		return true
	}
	if p := container(e); p != nil && c.qualities[p].Excluded {
		return true
	}
	switch e := e.(type) {
	case *java.Type:
		for _, b := range c.bases(e) {
			if c.qualities[b].Excluded {
				return true
			}
		}
	case *java.Method:
		for _, m := range c.overridden(e) {
			if c.qualities[m].Excluded {
				return true
			}
		}
	}
	return false
}

func (c *Classifier) deprecation(e java.Element) (Deprecation, []java.Element) {
	marked, explained := e.Comment().Deprecation()
	switch {
	case explained:
		return Advised, nil
	case marked, java.IsDeprecatedAnnotated(e):
		return Marked, nil
	}

	causes := make(map[java.Element]struct{})
	inherit := func(from java.Element) {
		q := c.qualities[from]
		switch {
		case q.Deprecation.IsExplicit():
			causes[from] = struct{}{}
		case q.Deprecation.IsDeprecated():
			for _, cause := range q.Causes {
				causes[cause] = struct{}{}
			}
		}
	}

	if p := container(e); p != nil {
		inherit(p)
	}
	switch e := e.(type) {
	case *java.Type:
		for _, b := range c.bases(e) {
			inherit(b)
		}
	case *java.Method:
		for _, m := range c.overridden(e) {
			inherit(m)
		}
	}

	if len(causes) == 0 {
		return NotDeprecated, nil
	}
	out := make([]java.Element, 0, len(causes))
	for cause := range causes {
		out = append(out, cause)
	}
	sortElements(c.u, out)
	return Implied, out
}

// sortElements orders elements by qualified name, then module name.
func sortElements[E java.Element](u *java.Universe, elems []E) {
	sort.SliceStable(elems, func(i, j int) bool {
		a, b := elems[i], elems[j]
		if qa, qb := a.QualifiedName(), b.QualifiedName(); qa != qb {
			return qa < qb
		}
		return moduleName(u, a) < moduleName(u, b)
	})
}

func moduleName(u *java.Universe, e java.Element) string {
	if m := u.ModuleOf(e); m != nil {
		return m.Name
	}
	return ""
}
