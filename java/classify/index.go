package classify

import (
	"github.com/dhamidi/polydoc/java"
)

// Producers returns the fields and methods whose type or return type is
// assignable to t, transformers and pseudo-constructors excepted.
func (c *Classifier) Producers(t *java.Type) []java.Element { return c.producers[t] }

// Consumers returns the methods taking a parameter of type t, or of a
// subtype of t, transformers excepted.
func (c *Classifier) Consumers(t *java.Type) []java.Element { return c.consumers[t] }

// Transformers returns the methods that both produce and consume t.
func (c *Classifier) Transformers(t *java.Type) []java.Element { return c.transformers[t] }

// PseudoConstructors returns the methods tagged as constructors whose
// return type is assignable to t.
func (c *Classifier) PseudoConstructors(t *java.Type) []*java.Method {
	return c.pseudoConstructors[t]
}

// Subtypes returns the documented types that inherit from t.
func (c *Classifier) Subtypes(t *java.Type) []*java.Type { return c.subtypes[t] }

// DirectSubtypes returns the subtypes naming t as superclass or interface.
func (c *Classifier) DirectSubtypes(t *java.Type) []*java.Type { return c.directSubtypes[t] }

type elementIndex map[*java.Type]map[java.Element]struct{}

func (x elementIndex) add(keys []*java.Type, e java.Element) {
	for _, k := range keys {
		set := x[k]
		if set == nil {
			set = make(map[java.Element]struct{})
			x[k] = set
		}
		set[e] = struct{}{}
	}
}

func (c *Classifier) freeze(x elementIndex) map[*java.Type][]java.Element {
	out := make(map[*java.Type][]java.Element, len(x))
	for k, set := range x {
		if len(set) == 0 {
			continue
		}
		elems := make([]java.Element, 0, len(set))
		for e := range set {
			elems = append(elems, e)
		}
		sortElements(c.u, elems)
		out[k] = elems
	}
	return out
}

// assignable returns the class named by the erased component type of
// ref and all of its ancestors, or nil for primitives and unknown types.
func (c *Classifier) assignable(ref java.TypeRef, from java.Element) []*java.Type {
	comp := ref.Erasure().Component()
	if java.IsPrimitiveName(comp.Name) {
		return nil
	}
	t := c.u.ResolveRef(comp, from)
	if t == nil {
		return nil
	}
	return append([]*java.Type{t}, c.u.Ancestors(t)...)
}

func (c *Classifier) buildIndexes() {
	producers := make(elementIndex)
	consumers := make(elementIndex)
	pseudo := make(elementIndex)
	subtypes := make(map[*java.Type][]*java.Type)
	direct := make(map[*java.Type][]*java.Type)

	for _, t := range c.u.Types() {
		if !c.Documented(t) {
			continue
		}

		directSet := make(map[*java.Type]bool)
		for _, s := range c.u.DirectSupertypes(t) {
			directSet[s] = true
		}
		for _, a := range c.u.Ancestors(t) {
			if !c.Documented(a) {
				continue
			}
			subtypes[a] = append(subtypes[a], t)
			if directSet[a] {
				direct[a] = append(direct[a], t)
			}
		}

		for _, f := range t.Fields {
			if !c.Documented(f) {
				continue
			}
			producers.add(c.assignable(f.Type, f), f)
		}
		for _, m := range t.Methods {
			if !c.Documented(m) {
				continue
			}
			if keys := c.assignable(m.Returns, m); len(keys) > 0 {
				if m.Doc.HasBlockTag(c.constructorTag) {
					pseudo.add(keys, m)
				} else {
					producers.add(keys, m)
				}
			}
			for _, p := range m.Params {
				consumers.add(c.assignable(p.Type, m), m)
			}
		}
	}

	transformers := make(elementIndex)
	for key, prods := range producers {
		cons := consumers[key]
		for e := range prods {
			if _, ok := cons[e]; !ok {
				continue
			}
			transformers.add([]*java.Type{key}, e)
			delete(prods, e)
			delete(cons, e)
		}
	}

	c.producers = c.freeze(producers)
	c.consumers = c.freeze(consumers)
	c.transformers = c.freeze(transformers)

	c.pseudoConstructors = make(map[*java.Type][]*java.Method, len(pseudo))
	for key, elems := range c.freeze(pseudo) {
		methods := make([]*java.Method, len(elems))
		for i, e := range elems {
			methods[i] = e.(*java.Method)
		}
		c.pseudoConstructors[key] = methods
	}

	// u.Types() is sorted, so each subtype list already is.
	c.subtypes = subtypes
	c.directSubtypes = direct
}
