package inherit

import (
	"sort"
	"sync"

	"github.com/dhamidi/polydoc/java"
)

// Undocumented collects elements found to have no documentation. Any
// number of goroutines may record into it.
type Undocumented struct {
	mu       sync.Mutex
	elements map[java.Element]struct{}
}

func NewUndocumented() *Undocumented {
	return &Undocumented{elements: make(map[java.Element]struct{})}
}

func (c *Undocumented) Record(e java.Element) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elements[e] = struct{}{}
}

func (c *Undocumented) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.elements)
}

// Elements returns the recorded elements sorted by kind and qualified
// name.
func (c *Undocumented) Elements() []java.Element {
	c.mu.Lock()
	out := make([]java.Element, 0, len(c.elements))
	for e := range c.elements {
		out = append(out, e)
	}
	c.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind() != out[j].Kind() {
			return out[i].Kind() < out[j].Kind()
		}
		return out[i].QualifiedName() < out[j].QualifiedName()
	})
	return out
}

// Names returns the qualified names of Elements.
func (c *Undocumented) Names() []string {
	elems := c.Elements()
	names := make([]string, len(elems))
	for i, e := range elems {
		names[i] = e.QualifiedName()
	}
	return names
}
