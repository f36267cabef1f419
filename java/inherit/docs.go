package inherit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dhamidi/polydoc/java"
	"github.com/dhamidi/polydoc/java/javadoc"
	"github.com/dhamidi/polydoc/java/signature"
)

// ErrNotInstanceMethod is returned when a fragment is requested for an
// element that cannot inherit it through overriding: a static method,
// a constructor, a field or any non-method.
var ErrNotInstanceMethod = errors.New("not an instance method")

// DefaultSummaryTags name the block tags that state a summary
// explicitly, ahead of the first sentence.
var DefaultSummaryTags = []string{"resume", "summary"}

// Sink receives documentation found by a Resolver. from is the element
// whose comment supplied nodes, and references in nodes resolve
// relative to it.
type Sink interface {
	WriteDoc(from java.Element, nodes []javadoc.Node) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(from java.Element, nodes []javadoc.Node) error

func (f SinkFunc) WriteDoc(from java.Element, nodes []javadoc.Node) error {
	return f(from, nodes)
}

// TextSink collects plain text, one paragraph per write.
type TextSink struct {
	sb   strings.Builder
	From []java.Element
}

func (s *TextSink) WriteDoc(from java.Element, nodes []javadoc.Node) error {
	if s.sb.Len() > 0 {
		s.sb.WriteString("\n\n")
	}
	s.sb.WriteString(javadoc.PlainText(nodes))
	s.From = append(s.From, from)
	return nil
}

func (s *TextSink) String() string { return s.sb.String() }

type Option func(*Resolver)

// WithSummaryTags replaces DefaultSummaryTags.
func WithSummaryTags(names ...string) Option {
	return func(r *Resolver) {
		r.summaryTags = append([]string(nil), names...)
	}
}

// WithUndocumented sets the collector that WriteSummary reports
// elements without any summary to.
func WithUndocumented(c *Undocumented) Option {
	return func(r *Resolver) {
		r.undocumented = c
	}
}

// Resolver finds documentation an element inherits from its
// supertypes or from the methods it overrides. It is safe for
// concurrent use.
type Resolver struct {
	u            *java.Universe
	order        *Engine
	sigs         *signature.Resolver
	summaryTags  []string
	undocumented *Undocumented
}

func NewResolver(order *Engine, sigs *signature.Resolver, opts ...Option) *Resolver {
	r := &Resolver{
		u:           order.Universe(),
		order:       order,
		sigs:        sigs,
		summaryTags: DefaultSummaryTags,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) Order() *Engine { return r.order }

// Undocumented returns the collector set with WithUndocumented, or nil.
func (r *Resolver) Undocumented() *Undocumented { return r.undocumented }

// DirectSummary returns the summary e states itself: an explicit
// summary tag, or else the first sentence of its comment. A sentence
// made only of {@inheritDoc} does not count.
func (r *Resolver) DirectSummary(e java.Element) ([]javadoc.Node, bool) {
	doc := e.Comment()
	if nodes, ok := doc.SummaryTag(r.summaryTags...); ok && !onlyInheritDoc(nodes) {
		return nodes, true
	}
	nodes := doc.FirstSentence()
	if len(nodes) == 0 || onlyInheritDoc(nodes) {
		return nil, false
	}
	return nodes, true
}

// WriteSummary writes the direct summary of e, or else the summary it
// inherits. Elements with neither are recorded as undocumented.
func (r *Resolver) WriteSummary(e java.Element, sink Sink) (bool, error) {
	if nodes, ok := r.DirectSummary(e); ok {
		return true, sink.WriteDoc(e, nodes)
	}
	found, err := r.WriteInheritedSummary(e, sink)
	if errors.Is(err, ErrNotInstanceMethod) {
		found, err = false, nil
	}
	if err != nil || found {
		return found, err
	}
	if r.undocumented != nil {
		r.undocumented.Record(e)
	}
	return false, nil
}

// WriteInheritedSummary writes the first direct summary found among the
// supertypes of a type, or among the methods an instance method
// overrides. Modules and packages inherit nothing.
func (r *Resolver) WriteInheritedSummary(e java.Element, sink Sink) (bool, error) {
	switch e := e.(type) {
	case *java.Type:
		for _, a := range r.order.Order(e) {
			if nodes, ok := r.DirectSummary(a); ok {
				return true, sink.WriteDoc(a, nodes)
			}
		}
		return false, nil
	case *java.Module, *java.Package:
		return false, nil
	}
	m, err := instanceMethod(e)
	if err != nil {
		return false, err
	}
	for _, o := range r.Overridden(m) {
		if nodes, ok := r.DirectSummary(o); ok {
			return true, sink.WriteDoc(o, nodes)
		}
	}
	return false, nil
}

// WriteInheritedBody writes the main description of the first
// supertype of t that has one.
func (r *Resolver) WriteInheritedBody(t *java.Type, sink Sink) (bool, error) {
	for _, a := range r.order.Order(t) {
		if a.Doc.HasBody() {
			return true, sink.WriteDoc(a, a.Doc.Body)
		}
	}
	return false, nil
}

// WriteInheritedParam writes the documentation of the parameter at pos
// from the first overridden method documenting that position. Methods
// are matched by position because overriding methods may rename their
// parameters.
func (r *Resolver) WriteInheritedParam(e java.Element, pos int, sink Sink) (bool, error) {
	m, err := instanceMethod(e)
	if err != nil {
		return false, err
	}
	if pos < 0 || pos >= len(m.Params) {
		return false, fmt.Errorf("%s has no parameter %d", m.QualifiedName(), pos)
	}
	for _, o := range r.Overridden(m) {
		if nodes, ok := ParamDoc(o, pos); ok {
			return true, sink.WriteDoc(o, nodes)
		}
	}
	return false, nil
}

// WriteInheritedReturn writes the return documentation of the first
// overridden method that has some.
func (r *Resolver) WriteInheritedReturn(e java.Element, sink Sink) (bool, error) {
	m, err := instanceMethod(e)
	if err != nil {
		return false, err
	}
	for _, o := range r.Overridden(m) {
		if nodes, ok := o.Doc.ReturnDoc(); ok {
			return true, sink.WriteDoc(o, nodes)
		}
	}
	return false, nil
}

// WriteInheritedThrows writes the documentation for throwing thrown
// from the first overridden method that documents it or a supertype of
// it.
func (r *Resolver) WriteInheritedThrows(e java.Element, thrown *java.Type, sink Sink) (bool, error) {
	m, err := instanceMethod(e)
	if err != nil {
		return false, err
	}
	for _, o := range r.Overridden(m) {
		if tag, ok := r.ThrowsDoc(o, thrown); ok && len(tag.Description) > 0 {
			return true, sink.WriteDoc(o, tag.Description)
		}
	}
	return false, nil
}

// ThrowsDoc returns the @throws tag of m naming the most specific
// supertype of thrown, thrown included. Tags naming classes that do not
// resolve are skipped.
func (r *Resolver) ThrowsDoc(m *java.Method, thrown *java.Type) (javadoc.Throws, bool) {
	var (
		best     javadoc.Throws
		bestType *java.Type
	)
	for _, tag := range m.Doc.ThrowsTags() {
		t := r.sigs.ResolveType(m, tag.Exception)
		if t == nil {
			log.Debugf("%s: cannot resolve thrown type %s", m.QualifiedName(), tag.Exception)
			continue
		}
		if !r.u.IsSubtype(thrown, t) {
			continue
		}
		if bestType == nil || r.u.IsSubtype(t, bestType) {
			best, bestType = tag, t
		}
	}
	return best, bestType != nil
}

// ParamDoc returns the @param documentation of the parameter at pos.
func ParamDoc(m *java.Method, pos int) ([]javadoc.Node, bool) {
	if pos < 0 || pos >= len(m.Params) {
		return nil, false
	}
	return m.Doc.ParamDoc(m.Params[pos].Name)
}

// Overridden lists the methods m overrides, walking the supertypes of
// its owner in inheritance order.
func (r *Resolver) Overridden(m *java.Method) []*java.Method {
	if m.Modifiers.IsStatic() || m.Owner == nil {
		return nil
	}
	var out []*java.Method
	for _, a := range r.order.Order(m.Owner) {
		out = append(out, r.u.OverriddenBy(m, a)...)
	}
	return out
}

func instanceMethod(e java.Element) (*java.Method, error) {
	if e == nil {
		return nil, ErrNotInstanceMethod
	}
	m, ok := e.(*java.Method)
	if !ok || m.Modifiers.IsStatic() {
		return nil, fmt.Errorf("%s %s: %w", e.Kind(), e.QualifiedName(), ErrNotInstanceMethod)
	}
	return m, nil
}

func onlyInheritDoc(nodes []javadoc.Node) bool {
	seen := false
	for _, n := range nodes {
		switch n := n.(type) {
		case javadoc.InheritDoc:
			seen = true
		case javadoc.Text:
			if strings.TrimSpace(n.Content) != "" {
				return false
			}
		default:
			return false
		}
	}
	return seen
}
