package inherit_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/polydoc/java"
	"github.com/dhamidi/polydoc/java/inherit"
	jt "github.com/dhamidi/polydoc/java/javatest"
)

func names(types []*java.Type) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.QualifiedName()
	}
	return out
}

func animals(t *testing.T) *java.Universe {
	return jt.Build(t, jt.Unnamed(jt.Package("zoo",
		jt.Class("Animal"),
		jt.Class("Dog", jt.Extends("zoo.Animal")),
		jt.Class("Cat", jt.Extends("zoo.Animal")),
		jt.Class("Puppy", jt.Extends("zoo.Dog")),
	)))
}

func TestOrderPuppy(t *testing.T) {
	t.Parallel()
	u := animals(t)
	e := inherit.NewEngine(u)

	assert.Equal(t, []string{"zoo.Dog", "zoo.Animal"}, names(e.Order(u.FindType(nil, "zoo.Puppy"))))
	assert.Empty(t, e.Order(u.FindType(nil, "zoo.Animal")))
	assert.Nil(t, e.Order(nil))
}

func TestOrderSubtypeBeforeNearerSupertype(t *testing.T) {
	t.Parallel()
	u := jt.Build(t, jt.Unnamed(jt.Package("p",
		jt.Interface("Animal"),
		jt.Class("Dog", jt.Implements("p.Animal")),
		jt.Class("Puppy", jt.Extends("p.Dog"), jt.Implements("p.Animal")),
	)))
	e := inherit.NewEngine(u)

	assert.Equal(t, []string{"p.Dog", "p.Animal"}, names(e.Order(u.FindType(nil, "p.Puppy"))))
}

func TestOrderByDistanceThenName(t *testing.T) {
	t.Parallel()
	u := jt.Build(t, jt.Unnamed(jt.Package("p",
		jt.Class("A"),
		jt.Class("B", jt.Extends("p.A")),
		jt.Interface("I"),
		jt.Interface("J", jt.Extends("p.I")),
		jt.Class("C", jt.Extends("p.B"), jt.Implements("p.J")),
	)))
	e := inherit.NewEngine(u)

	assert.Equal(t, []string{"p.B", "p.J", "p.I", "p.A"}, names(e.Order(u.FindType(nil, "p.C"))))
}

func TestOrderInterfacesShareTheirClassLevel(t *testing.T) {
	t.Parallel()
	u := jt.Build(t, jt.Unnamed(jt.Package("p",
		jt.Class("A"),
		jt.Class("B", jt.Extends("p.A")),
		jt.Interface("I"),
		jt.Interface("J", jt.Extends("p.I")),
		jt.Interface("K", jt.Extends("p.J")),
		jt.Interface("L"),
		jt.Class("C", jt.Extends("p.B"), jt.Implements("p.K")),
		jt.Class("D", jt.Extends("p.C")),
		jt.Class("E", jt.Extends("p.A"), jt.Implements("p.L")),
	)))
	e := inherit.NewEngine(u)

	assert.Equal(t, []string{"p.B", "p.K", "p.J", "p.I", "p.A"}, names(e.Order(u.FindType(nil, "p.C"))))
	assert.Equal(t, []string{"p.C", "p.K", "p.J", "p.I", "p.B", "p.A"}, names(e.Order(u.FindType(nil, "p.D"))),
		"interfaces of a superclass sit at the superclass's distance")
	assert.Equal(t, []string{"p.A", "p.L"}, names(e.Order(u.FindType(nil, "p.E"))))
}

func TestOrderSubtypesFirstEverywhere(t *testing.T) {
	t.Parallel()
	u := jt.Build(t, jt.Unnamed(jt.Package("p",
		jt.Interface("Root"),
		jt.Interface("Left", jt.Extends("p.Root")),
		jt.Interface("Right", jt.Extends("p.Root")),
		jt.Interface("Both", jt.Extends("p.Left"), jt.Extends("p.Right")),
		jt.Class("Base", jt.Implements("p.Root")),
		jt.Class("Mid", jt.Extends("p.Base"), jt.Implements("p.Both")),
		jt.Class("Leaf", jt.Extends("p.Mid"), jt.Implements("p.Root", "p.Left")),
	)))
	e := inherit.NewEngine(u)

	for _, typ := range u.Types() {
		order := e.Order(typ)
		for i, a := range order {
			for _, b := range order[i+1:] {
				assert.False(t, u.IsSubtype(b, a), "%s: %s listed after its supertype %s",
					typ.QualifiedName(), b.QualifiedName(), a.QualifiedName())
			}
		}
	}
	assert.Equal(t, []string{"p.Mid", "p.Both", "p.Left", "p.Right", "p.Base", "p.Root"},
		names(e.Order(u.FindType(nil, "p.Leaf"))))
}

func TestOrderDeterministic(t *testing.T) {
	t.Parallel()
	u := animals(t)
	puppy := u.FindType(nil, "zoo.Puppy")

	first := inherit.NewEngine(u).Order(puppy)
	second := inherit.NewEngine(u)
	assert.Equal(t, first, second.Order(puppy))
	assert.Equal(t, second.Order(puppy), second.Order(puppy))
}

func TestOrderReturnsCopies(t *testing.T) {
	t.Parallel()
	u := animals(t)
	e := inherit.NewEngine(u)
	puppy := u.FindType(nil, "zoo.Puppy")

	order := e.Order(puppy)
	order[0] = nil
	assert.Equal(t, []string{"zoo.Dog", "zoo.Animal"}, names(e.Order(puppy)))
}

func TestOrderConcurrent(t *testing.T) {
	t.Parallel()
	u := animals(t)
	e := inherit.NewEngine(u)
	puppy := u.FindType(nil, "zoo.Puppy")

	const n = 32
	results := make([][]*java.Type, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.Order(puppy)
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
}

func TestOrderCyclicSupertypes(t *testing.T) {
	t.Parallel()
	u := jt.Build(t, jt.Unnamed(jt.Package("p",
		jt.Class("A", jt.Extends("p.B")),
		jt.Class("B", jt.Extends("p.A")),
		jt.Class("C", jt.Extends("p.A")),
	)))
	e := inherit.NewEngine(u)

	order := e.Order(u.FindType(nil, "p.C"))
	require.Len(t, order, 2)
	assert.Equal(t, []string{"p.A", "p.B"}, names(order))
	assert.Equal(t, []string{"p.B"}, names(e.Order(u.FindType(nil, "p.A"))))
}
