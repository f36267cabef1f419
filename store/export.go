package store

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/polydoc/java"
	"github.com/dhamidi/polydoc/java/classify"
	"github.com/dhamidi/polydoc/java/inherit"
)

// Report keys.
const (
	ReportElements     = "elements"
	ReportUndocumented = "undocumented"
	ReportAmbiguous    = "ambiguous"
	ReportUnresolved   = "unresolved"
)

// Report summarises one export.
type Report struct {
	Elements     int
	Undocumented int
	Ambiguous    int
	Unresolved   int
}

// derived is what the export computes per element before writing.
type derived struct {
	summary string
	order   []*java.Type
}

// Export replaces the catalog with the universe behind c. Summaries
// and inheritance orders are computed in parallel, bounded by workers,
// and then written in one transaction.
func (s *Store) Export(ctx context.Context, c *classify.Classifier, docs *inherit.Resolver, workers int) (Report, error) {
	u := c.Universe()
	elems := u.Elements()
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]derived, len(elems))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, e := range elems {
		i, e := i, e
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if m, ok := e.(*java.Module); ok && m.IsUnnamed() {
				return nil
			}
			if !c.Documented(e) {
				return nil
			}
			var sink inherit.TextSink
			if _, err := docs.WriteSummary(e, &sink); err != nil {
				return fmt.Errorf("summary of %s: %w", e.QualifiedName(), err)
			}
			out[i].summary = sink.String()
			if t, ok := e.(*java.Type); ok {
				out[i].order = docs.Order().Order(t)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Report{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	w := &writer{tx: tx, ids: make(map[java.Element]int64, len(elems))}
	rep, err := w.write(u, c, docs, elems, out)
	if err != nil {
		return Report{}, err
	}
	if err := tx.Commit(); err != nil {
		return Report{}, fmt.Errorf("commit: %w", err)
	}
	return rep, nil
}

type writer struct {
	tx  *sql.Tx
	ids map[java.Element]int64
}

func (w *writer) write(u *java.Universe, c *classify.Classifier, docs *inherit.Resolver, elems []java.Element, out []derived) (Report, error) {
	for _, table := range tables {
		if _, err := w.tx.Exec("DELETE FROM " + table); err != nil {
			return Report{}, fmt.Errorf("clear %s: %w", table, err)
		}
	}

	// Elements come enclosing-first from Universe.Elements.
	for i, e := range elems {
		if err := w.insertElement(u, e, out[i].summary); err != nil {
			return Report{}, err
		}
	}
	for _, e := range elems {
		if err := w.insertQualities(c, e); err != nil {
			return Report{}, err
		}
	}
	for i, e := range elems {
		t, ok := e.(*java.Type)
		if !ok {
			continue
		}
		if err := w.insertIndexes(c, t); err != nil {
			return Report{}, err
		}
		for pos, a := range out[i].order {
			if _, err := w.tx.Exec(
				"INSERT INTO inheritance_order (type_id, position, ancestor_id) VALUES (?, ?, ?)",
				w.ids[t], pos, w.ids[a],
			); err != nil {
				return Report{}, fmt.Errorf("insert inheritance order: %w", err)
			}
		}
	}

	rep := Report{Elements: len(elems)}
	if undoc := docs.Undocumented(); undoc != nil {
		for _, e := range undoc.Elements() {
			id, ok := w.ids[e]
			if !ok {
				continue
			}
			if _, err := w.tx.Exec("INSERT OR IGNORE INTO undocumented (element_id) VALUES (?)", id); err != nil {
				return Report{}, fmt.Errorf("insert undocumented: %w", err)
			}
			rep.Undocumented++
		}
	}
	if diag := u.Diagnostics(); diag != nil {
		for name, candidates := range diag.Ambiguous() {
			if _, err := w.tx.Exec(
				"INSERT INTO ambiguities (name, candidates) VALUES (?, ?)",
				name, strings.Join(candidates, ","),
			); err != nil {
				return Report{}, fmt.Errorf("insert ambiguity: %w", err)
			}
			rep.Ambiguous++
		}
		rep.Unresolved = len(diag.Unresolved())
	}

	for key, value := range map[string]int{
		ReportElements:     rep.Elements,
		ReportUndocumented: rep.Undocumented,
		ReportAmbiguous:    rep.Ambiguous,
		ReportUnresolved:   rep.Unresolved,
	} {
		if _, err := w.tx.Exec("INSERT INTO report (key, value) VALUES (?, ?)", key, value); err != nil {
			return Report{}, fmt.Errorf("insert report: %w", err)
		}
	}
	return rep, nil
}

func (w *writer) insertElement(u *java.Universe, e java.Element, summary string) error {
	module := ""
	if m := u.ModuleOf(e); m != nil {
		module = m.Name
	}
	var enclosing *int64
	if p := e.Enclosing(); p != nil {
		if id, ok := w.ids[p]; ok {
			enclosing = &id
		}
	}
	file, line := location(e)

	res, err := w.tx.Exec(
		`INSERT INTO elements (module, qualified_name, simple_name, kind, enclosing_id, source_file, line, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		module, e.QualifiedName(), e.SimpleName(), e.Kind().String(), enclosing, file, line, summary,
	)
	if err != nil {
		return fmt.Errorf("insert element %s: %w", e.QualifiedName(), err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	w.ids[e] = id
	return nil
}

func (w *writer) insertQualities(c *classify.Classifier, e java.Element) error {
	q, ok := c.Qualities(e)
	if !ok {
		return nil
	}
	id := w.ids[e]
	if _, err := w.tx.Exec(
		"INSERT INTO qualities (element_id, excluded, deprecation) VALUES (?, ?, ?)",
		id, q.Excluded, q.Deprecation.String(),
	); err != nil {
		return fmt.Errorf("insert qualities: %w", err)
	}
	for _, cause := range q.Causes {
		if _, err := w.tx.Exec(
			"INSERT INTO deprecation_causes (element_id, cause_id) VALUES (?, ?)",
			id, w.ids[cause],
		); err != nil {
			return fmt.Errorf("insert deprecation cause: %w", err)
		}
	}
	return nil
}

func (w *writer) insertIndexes(c *classify.Classifier, t *java.Type) error {
	entries := map[string][]java.Element{
		RelProducer:    c.Producers(t),
		RelConsumer:    c.Consumers(t),
		RelTransformer: c.Transformers(t),
	}
	for _, m := range c.PseudoConstructors(t) {
		entries[RelPseudoConstructor] = append(entries[RelPseudoConstructor], m)
	}
	for _, s := range c.Subtypes(t) {
		entries[RelSubtype] = append(entries[RelSubtype], s)
	}
	for _, s := range c.DirectSubtypes(t) {
		entries[RelDirectSubtype] = append(entries[RelDirectSubtype], s)
	}

	for rel, elems := range entries {
		for _, e := range elems {
			if _, err := w.tx.Exec(
				"INSERT INTO index_entries (type_id, relation, element_id) VALUES (?, ?, ?)",
				w.ids[t], rel, w.ids[e],
			); err != nil {
				return fmt.Errorf("insert %s of %s: %w", rel, t.QualifiedName(), err)
			}
		}
	}
	return nil
}

func location(e java.Element) (string, int) {
	switch e := e.(type) {
	case *java.Type:
		return e.SourceFile, e.Line
	case *java.Field:
		return e.Owner.SourceFile, e.Line
	case *java.Method:
		return e.Owner.SourceFile, e.Line
	case *java.Constructor:
		return e.Owner.SourceFile, e.Line
	}
	return "", 0
}
