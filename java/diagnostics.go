package java

import (
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("polydoc.java")

// Diagnostics collects the non-fatal conditions met while answering
// queries: names that matched in more than one module, and references
// that could not be resolved. Each distinct name is recorded once.
// A Diagnostics is safe for concurrent use.
type Diagnostics struct {
	mu         sync.Mutex
	ambiguous  map[string][]string
	unresolved map[string]struct{}
}

func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		ambiguous:  make(map[string][]string),
		unresolved: make(map[string]struct{}),
	}
}

// ReportAmbiguous records that name matched every one of candidates.
// It returns true and logs a warning only the first time name is seen.
func (d *Diagnostics) ReportAmbiguous(name string, candidates []string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, seen := d.ambiguous[name]; seen {
		return false
	}
	d.ambiguous[name] = append([]string(nil), candidates...)
	log.Warningf("ambiguous name %s: found in %s", name, strings.Join(candidates, ", "))
	return true
}

// ReportUnresolved records a reference that matched nothing.
func (d *Diagnostics) ReportUnresolved(context, ref string) {
	key := ref
	if context != "" {
		key = context + ": " + ref
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.unresolved[key] = struct{}{}
}

// Ambiguous returns the ambiguous names with their candidates.
func (d *Diagnostics) Ambiguous() map[string][]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string][]string, len(d.ambiguous))
	for k, v := range d.ambiguous {
		out[k] = append([]string(nil), v...)
	}
	return out
}

func (d *Diagnostics) AmbiguousNames() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, 0, len(d.ambiguous))
	for k := range d.ambiguous {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (d *Diagnostics) Unresolved() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	refs := make([]string, 0, len(d.unresolved))
	for k := range d.unresolved {
		refs = append(refs, k)
	}
	sort.Strings(refs)
	return refs
}
