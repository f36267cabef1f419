// Package inherit orders the supertypes of a type for documentation
// inheritance and finds inherited documentation in them.
package inherit

import (
	"sort"
	"sync"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/singleflight"

	"github.com/dhamidi/polydoc/java"
)

var log = commonlog.GetLogger("polydoc.inherit")

// Engine computes inheritance orders and caches them per type. It is
// safe for concurrent use; each order is computed at most once.
type Engine struct {
	u     *java.Universe
	cache sync.Map // *java.Type -> []*java.Type
	group singleflight.Group
}

func NewEngine(u *java.Universe) *Engine {
	return &Engine{u: u}
}

func (e *Engine) Universe() *java.Universe { return e.u }

// Order returns the supertypes of t, excluding t, most specific first.
// A type always precedes its own supertypes; otherwise types nearer to
// t come first, and ties break on qualified name.
func (e *Engine) Order(t *java.Type) []*java.Type {
	if t == nil {
		return nil
	}
	if v, ok := e.cache.Load(t); ok {
		return clone(v.([]*java.Type))
	}
	v, _, _ := e.group.Do(cacheKey(e.u, t), func() (any, error) {
		if v, ok := e.cache.Load(t); ok {
			return v, nil
		}
		order := e.compute(t)
		e.cache.Store(t, order)
		return order, nil
	})
	return clone(v.([]*java.Type))
}

func cacheKey(u *java.Universe, t *java.Type) string {
	if m := u.ModuleOf(t); m != nil {
		return m.Name + "/" + t.QualifiedName()
	}
	return t.QualifiedName()
}

func clone(types []*java.Type) []*java.Type {
	return append([]*java.Type(nil), types...)
}

// distances records how far each ancestor is from start, keeping the
// smallest. A superclass is one step further than its subclass, while
// an interface sits at the distance of the type declaring it, so every
// interface reached from a class level shares that level. The direct
// supertypes of start are all at distance 1.
func (e *Engine) distances(start *java.Type) map[*java.Type]int {
	dist := make(map[*java.Type]int)
	type entry struct {
		t *java.Type
		d int
	}
	var deque []entry
	relax := func(t *java.Type, d int, front bool) {
		if t == start {
			return
		}
		if old, seen := dist[t]; seen && old <= d {
			return
		}
		dist[t] = d
		if front {
			deque = append([]entry{{t, d}}, deque...)
		} else {
			deque = append(deque, entry{t, d})
		}
	}
	for _, s := range e.u.DirectSupertypes(start) {
		relax(s, 1, false)
	}
	for len(deque) > 0 {
		cur := deque[0]
		deque = deque[1:]
		if cur.d != dist[cur.t] {
			continue
		}
		super := e.u.DirectSuperclass(cur.t)
		for _, s := range e.u.DirectSupertypes(cur.t) {
			if s == super {
				relax(s, cur.d+1, false)
			} else {
				relax(s, cur.d, true)
			}
		}
	}
	return dist
}

// compute sorts the ancestors topologically on the subtype relation,
// picking the nearest ready type at each step. Types caught in a
// subtype cycle cannot be ordered that way and go last, by distance.
func (e *Engine) compute(start *java.Type) []*java.Type {
	dist := e.distances(start)
	types := make([]*java.Type, 0, len(dist))
	for t := range dist {
		types = append(types, t)
	}
	less := func(a, b *java.Type) bool {
		if dist[a] != dist[b] {
			return dist[a] < dist[b]
		}
		if qa, qb := a.QualifiedName(), b.QualifiedName(); qa != qb {
			return qa < qb
		}
		return moduleName(e.u, a) < moduleName(e.u, b)
	}
	sort.Slice(types, func(i, j int) bool { return less(types[i], types[j]) })

	// below[y] counts the collected proper subtypes of y.
	below := make(map[*java.Type]int, len(types))
	for _, a := range types {
		for _, b := range types {
			if a != b && e.u.IsSubtype(a, b) {
				below[b]++
			}
		}
	}

	out := make([]*java.Type, 0, len(types))
	placed := make(map[*java.Type]bool, len(types))
	for len(out) < len(types) {
		var pick *java.Type
		for _, t := range types {
			if !placed[t] && below[t] == 0 {
				pick = t
				break
			}
		}
		if pick == nil {
			break
		}
		placed[pick] = true
		out = append(out, pick)
		for _, b := range types {
			if b != pick && e.u.IsSubtype(pick, b) {
				below[b]--
			}
		}
	}
	if len(out) < len(types) {
		log.Warningf("%s: cyclic supertypes, ordering the rest by distance", start.QualifiedName())
		for _, t := range types {
			if !placed[t] {
				out = append(out, t)
			}
		}
	}
	return out
}

func moduleName(u *java.Universe, t *java.Type) string {
	if m := u.ModuleOf(t); m != nil {
		return m.Name
	}
	return ""
}
