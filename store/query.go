package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// Element is one row of the elements table.
type Element struct {
	ID            int64
	Module        string
	QualifiedName string
	SimpleName    string
	Kind          string
	EnclosingID   *int64
	SourceFile    string
	Line          int
	Summary       string
}

type Qualities struct {
	Excluded    bool
	Deprecation string
	// Causes holds the qualified names of the deprecation causes, sorted.
	Causes []string
}

const elementCols = `id, module, qualified_name, simple_name, kind, enclosing_id,
	COALESCE(source_file, ''), COALESCE(line, 0), COALESCE(summary, '')`

func scanElement(scanner interface{ Scan(...any) error }) (*Element, error) {
	e := &Element{}
	err := scanner.Scan(&e.ID, &e.Module, &e.QualifiedName, &e.SimpleName, &e.Kind,
		&e.EnclosingID, &e.SourceFile, &e.Line, &e.Summary)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// ElementByName finds an element by kind and qualified name. An empty
// module matches any module; the first by module name is returned.
func (s *Store) ElementByName(module, kind, qualifiedName string) (*Element, error) {
	query := "SELECT " + elementCols + " FROM elements WHERE kind = ? AND qualified_name = ?"
	args := []any{kind, qualifiedName}
	if module != "" {
		query += " AND module = ?"
		args = append(args, module)
	}
	query += " ORDER BY module LIMIT 1"

	e, err := scanElement(s.db.QueryRow(query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("element by name: %w", err)
	}
	return e, nil
}

// QualitiesOf returns nil when the element has no qualities, which is
// the case for members outside the documented API.
func (s *Store) QualitiesOf(id int64) (*Qualities, error) {
	q := &Qualities{}
	err := s.db.QueryRow(
		"SELECT excluded, deprecation FROM qualities WHERE element_id = ?", id,
	).Scan(&q.Excluded, &q.Deprecation)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("qualities: %w", err)
	}
	q.Causes, err = s.names(
		`SELECT e.qualified_name FROM deprecation_causes c JOIN elements e ON e.id = c.cause_id
		 WHERE c.element_id = ? ORDER BY e.qualified_name`, id)
	if err != nil {
		return nil, fmt.Errorf("deprecation causes: %w", err)
	}
	return q, nil
}

// Index returns the qualified names related to a type by rel, sorted.
func (s *Store) Index(typeID int64, rel string) ([]string, error) {
	names, err := s.names(
		`SELECT e.qualified_name FROM index_entries x JOIN elements e ON e.id = x.element_id
		 WHERE x.type_id = ? AND x.relation = ? ORDER BY e.qualified_name`, typeID, rel)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", rel, err)
	}
	return names, nil
}

func (s *Store) InheritanceOrder(typeID int64) ([]string, error) {
	names, err := s.names(
		`SELECT e.qualified_name FROM inheritance_order o JOIN elements e ON e.id = o.ancestor_id
		 WHERE o.type_id = ? ORDER BY o.position`, typeID)
	if err != nil {
		return nil, fmt.Errorf("inheritance order: %w", err)
	}
	return names, nil
}

func (s *Store) Undocumented() ([]string, error) {
	names, err := s.names(
		`SELECT e.qualified_name FROM undocumented u JOIN elements e ON e.id = u.element_id
		 ORDER BY e.qualified_name`)
	if err != nil {
		return nil, fmt.Errorf("undocumented: %w", err)
	}
	return names, nil
}

// Ambiguities maps each ambiguous name to the modules declaring it.
func (s *Store) Ambiguities() (map[string][]string, error) {
	rows, err := s.db.Query("SELECT name, candidates FROM ambiguities")
	if err != nil {
		return nil, fmt.Errorf("ambiguities: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]string)
	for rows.Next() {
		var name, candidates string
		if err := rows.Scan(&name, &candidates); err != nil {
			return nil, fmt.Errorf("scan ambiguity: %w", err)
		}
		out[name] = strings.Split(candidates, ",")
	}
	return out, rows.Err()
}

// LoadReport reads back the report written by the last Export.
func (s *Store) LoadReport() (Report, error) {
	rows, err := s.db.Query("SELECT key, value FROM report")
	if err != nil {
		return Report{}, fmt.Errorf("report: %w", err)
	}
	defer rows.Close()
	var rep Report
	for rows.Next() {
		var key string
		var value int
		if err := rows.Scan(&key, &value); err != nil {
			return Report{}, fmt.Errorf("scan report: %w", err)
		}
		switch key {
		case ReportElements:
			rep.Elements = value
		case ReportUndocumented:
			rep.Undocumented = value
		case ReportAmbiguous:
			rep.Ambiguous = value
		case ReportUnresolved:
			rep.Unresolved = value
		}
	}
	return rep, rows.Err()
}

func (s *Store) names(query string, args ...any) ([]string, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
