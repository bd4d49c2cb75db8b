package model

import "memdb/internal/value"

// Record is an ordered sequence of values matching a table's schema
// exactly, in schema order. Schema points at the owning table's (shared,
// immutable) column slice so every record of a table shares one schema
// allocation; Values holds that record's own payload.
type Record struct {
	Schema []Column
	Values []value.Value
}

// Get returns the value stored under column name and whether it exists.
func (r Record) Get(name string) (value.Value, bool) {
	for i, c := range r.Schema {
		if c.Name == name {
			return r.Values[i], true
		}
	}
	return value.Value{}, false
}

// ColumnIndex returns the schema position of name, or -1 if absent.
func (r Record) ColumnIndex(name string) int {
	for i, c := range r.Schema {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Project returns a new slice of this record's values restricted to (and
// reordered to match) cols, in the order requested.
func (r Record) Project(cols []string) []value.Value {
	out := make([]value.Value, len(cols))
	for i, name := range cols {
		v, _ := r.Get(name)
		out[i] = v
	}
	return out
}

// Clone returns a record with its own Values slice (Schema is shared, as
// schemas are immutable once a table is created).
func (r Record) Clone() Record {
	values := make([]value.Value, len(r.Values))
	copy(values, r.Values)
	return Record{Schema: r.Schema, Values: values}
}
