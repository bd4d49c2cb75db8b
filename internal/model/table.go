package model

import (
	"memdb/internal/apperrors"
	"memdb/internal/value"
)

// Table is a named, schema-typed collection of records keyed by a single
// Int-typed primary key column. Per spec.md §9's Design Notes, a Go map
// has no deterministic iteration order, so the keyed lookup is paired with
// an explicit order slice recording insertion order.
type Table struct {
	Name      string
	Schema    []Column
	KeyColumn string

	byKey map[int64]int // key value -> index into order
	order []int64       // key values, in insertion order
	recs  map[int64]Record
}

// NewTable constructs an empty table. name and every column name must be a
// valid identifier per spec.md §3 (ValidIdentifier); keyColumn must name one
// of schema's columns and that column's declared type must be Int (spec.md
// §9 Open Question, resolved here in favor of rejecting non-Int keys — see
// DESIGN.md).
func NewTable(name string, schema []Column, keyColumn string) (*Table, error) {
	if !ValidIdentifier(name) {
		return nil, apperrors.New(apperrors.InvalidIdentifier, "table name is not a valid identifier").WithTable(name)
	}

	seen := make(map[string]bool, len(schema))
	var keyType value.DataType
	found := false
	for _, c := range schema {
		if !ValidIdentifier(c.Name) {
			return nil, apperrors.New(apperrors.InvalidIdentifier, "column name is not a valid identifier").WithTable(name).WithColumn(c.Name)
		}
		if seen[c.Name] {
			return nil, apperrors.New(apperrors.DuplicateColumn, "duplicate column in schema").WithTable(name).WithColumn(c.Name)
		}
		seen[c.Name] = true
		if c.Name == keyColumn {
			found = true
			keyType = c.Type
		}
	}
	if !found {
		return nil, apperrors.New(apperrors.UnknownKeyColumn, "key column not declared in schema").WithTable(name).WithColumn(keyColumn)
	}
	if keyType.Tag != value.TagInt {
		return nil, apperrors.Newf(apperrors.UnknownKeyColumn, "key column %q must be declared INT", keyColumn).WithTable(name).WithColumn(keyColumn)
	}

	return &Table{
		Name:      name,
		Schema:    schema,
		KeyColumn: keyColumn,
		byKey:     make(map[int64]int),
		recs:      make(map[int64]Record),
	}, nil
}

// ColumnNames returns the schema's column names in declaration order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Schema))
	for i, c := range t.Schema {
		names[i] = c.Name
	}
	return names
}

// Column returns the declared column named name, if present.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Schema {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Len reports the number of stored records. It is always equal to the
// number of distinct key values ever inserted and not yet deleted
// (invariant (iii) of spec.md §3).
func (t *Table) Len() int { return len(t.order) }

// Records returns the table's records in insertion order. The returned
// slice is a fresh copy of the order, but records themselves are shared;
// callers must not mutate them in place.
func (t *Table) Records() []Record {
	out := make([]Record, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.recs[k])
	}
	return out
}

// Lookup returns the record stored under key, if any.
func (t *Table) Lookup(key int64) (Record, bool) {
	r, ok := t.recs[key]
	return r, ok
}

// Insert adds rec, keyed by its value in the key column. Returns
// DuplicateKey if the key is already present. rec.Schema must already
// equal t.Schema (the executor is responsible for building records that
// satisfy this before calling Insert).
func (t *Table) Insert(rec Record) error {
	keyIdx := rec.ColumnIndex(t.KeyColumn)
	key := rec.Values[keyIdx].Int()

	if _, exists := t.recs[key]; exists {
		return apperrors.Newf(apperrors.DuplicateKey, "key %d already exists", key).WithTable(t.Name).WithColumn(t.KeyColumn)
	}

	t.byKey[key] = len(t.order)
	t.order = append(t.order, key)
	t.recs[key] = rec
	return nil
}

// Delete removes the record stored under key. Returns KeyNotFound if no
// such record exists.
func (t *Table) Delete(key int64) error {
	pos, exists := t.byKey[key]
	if !exists {
		return apperrors.Newf(apperrors.KeyNotFound, "key %d not found", key).WithTable(t.Name).WithColumn(t.KeyColumn)
	}

	delete(t.recs, key)
	delete(t.byKey, key)
	t.order = append(t.order[:pos], t.order[pos+1:]...)
	for i := pos; i < len(t.order); i++ {
		t.byKey[t.order[i]] = i
	}
	return nil
}
