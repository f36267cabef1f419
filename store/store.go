// Package store persists the classified universe in SQLite so that
// emitters can read elements, qualities, index maps and the run report
// without loading sources again.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Relations stored in index_entries.
const (
	RelProducer          = "producer"
	RelConsumer          = "consumer"
	RelTransformer       = "transformer"
	RelPseudoConstructor = "pseudo_constructor"
	RelSubtype           = "subtype"
	RelDirectSubtype     = "direct_subtype"
)

type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database at dbPath with WAL mode enabled.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) DB() *sql.DB {
	return s.db
}

// Migrate creates the tables and indexes. Idempotent.
func (s *Store) Migrate() error {
	if _, err := s.db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// tables lists every table, children before parents.
var tables = []string{
	"report", "ambiguities", "undocumented", "inheritance_order",
	"index_entries", "deprecation_causes", "qualities", "elements",
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS elements (
  id              INTEGER PRIMARY KEY,
  module          TEXT NOT NULL,
  qualified_name  TEXT NOT NULL,
  simple_name     TEXT NOT NULL,
  kind            TEXT NOT NULL,
  enclosing_id    INTEGER REFERENCES elements(id),
  source_file     TEXT,
  line            INTEGER,
  summary         TEXT,
  UNIQUE (module, kind, qualified_name)
);

CREATE TABLE IF NOT EXISTS qualities (
  element_id      INTEGER PRIMARY KEY REFERENCES elements(id),
  excluded        BOOLEAN NOT NULL,
  deprecation     TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS deprecation_causes (
  element_id      INTEGER NOT NULL REFERENCES elements(id),
  cause_id        INTEGER NOT NULL REFERENCES elements(id),
  PRIMARY KEY (element_id, cause_id)
);

CREATE TABLE IF NOT EXISTS index_entries (
  type_id         INTEGER NOT NULL REFERENCES elements(id),
  relation        TEXT NOT NULL,
  element_id      INTEGER NOT NULL REFERENCES elements(id),
  PRIMARY KEY (type_id, relation, element_id)
);

CREATE TABLE IF NOT EXISTS inheritance_order (
  type_id         INTEGER NOT NULL REFERENCES elements(id),
  position        INTEGER NOT NULL,
  ancestor_id     INTEGER NOT NULL REFERENCES elements(id),
  PRIMARY KEY (type_id, position)
);

CREATE TABLE IF NOT EXISTS undocumented (
  element_id      INTEGER PRIMARY KEY REFERENCES elements(id)
);

CREATE TABLE IF NOT EXISTS ambiguities (
  name            TEXT PRIMARY KEY,
  candidates      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS report (
  key             TEXT PRIMARY KEY,
  value           INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_elements_name ON elements(qualified_name);
CREATE INDEX IF NOT EXISTS idx_index_entries_element ON index_entries(element_id);
`
