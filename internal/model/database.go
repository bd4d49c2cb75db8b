package model

import "memdb/internal/apperrors"

// Database owns every table in the session. It is created empty, mutated
// only through executed commands, and wholesale-replaced by LoadFrom.
type Database struct {
	tables map[string]*Table
	order  []string // table names, in creation order (for deterministic state views)
}

// NewDatabase returns an empty database.
func NewDatabase() *Database {
	return &Database{tables: make(map[string]*Table)}
}

// CreateTable registers t under its own name. Returns TableExists if a
// table with that name is already present.
func (db *Database) CreateTable(t *Table) error {
	if _, exists := db.tables[t.Name]; exists {
		return apperrors.New(apperrors.TableExists, "table already exists").WithTable(t.Name)
	}
	db.tables[t.Name] = t
	db.order = append(db.order, t.Name)
	return nil
}

// Table returns the table named name, if present.
func (db *Database) Table(name string) (*Table, bool) {
	t, ok := db.tables[name]
	return t, ok
}

// MustTable returns the table named name or an UnknownTable error.
func (db *Database) MustTable(name string) (*Table, error) {
	t, ok := db.tables[name]
	if !ok {
		return nil, apperrors.New(apperrors.UnknownTable, "no such table").WithTable(name)
	}
	return t, nil
}

// TableNames returns every table name, in creation order. This is the
// "state view" accessor surface spec.md §6 asks the core to expose.
func (db *Database) TableNames() []string {
	out := make([]string, len(db.order))
	copy(out, db.order)
	return out
}

// Replace atomically swaps db's contents for other's. Used by LoadFrom,
// which must either fully replace the database or leave it untouched.
func (db *Database) Replace(other *Database) {
	db.tables = other.tables
	db.order = other.order
}

// Clone returns a deep-enough copy of db for round-trip comparison in
// tests: tables are distinct *Table values with their own maps, but their
// Schema slices (immutable) are shared.
func (db *Database) Clone() *Database {
	clone := NewDatabase()
	for _, name := range db.order {
		t := db.tables[name]
		nt, _ := NewTable(t.Name, t.Schema, t.KeyColumn)
		for _, r := range t.Records() {
			_ = nt.Insert(r.Clone())
		}
		_ = clone.CreateTable(nt)
	}
	return clone
}
