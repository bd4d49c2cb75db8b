// Package codec implements the MDB1 binary snapshot format: a
// deterministic, version-tagged encoding of a *model.Database used by
// DumpTo and LoadFrom. The layout is fixed byte-for-byte by spec.md §4.4,
// which rules out a general-purpose serialization library (gob, protobuf)
// in favor of direct encoding/binary framing — see DESIGN.md.
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"memdb/internal/apperrors"
	"memdb/internal/model"
	"memdb/internal/value"
)

var magic = [4]byte{'M', 'D', 'B', '1'}

const version = 1

const (
	typeInt    byte = 0
	typeString byte = 1
	typeBool   byte = 2
)

// Encode renders db as an MDB1 snapshot.
func Encode(db *model.Database) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.WriteByte(version)

	names := db.TableNames()
	writeU64(&buf, uint64(len(names)))

	for _, name := range names {
		t, _ := db.Table(name)
		writeString(&buf, t.Name)
		writeString(&buf, t.KeyColumn)

		writeU64(&buf, uint64(len(t.Schema)))
		for _, col := range t.Schema {
			writeString(&buf, col.Name)
			tag, err := typeTag(col.Type)
			if err != nil {
				return nil, err
			}
			buf.WriteByte(tag)
		}

		recs := t.Records()
		writeU64(&buf, uint64(len(recs)))
		for _, rec := range recs {
			for _, v := range rec.Values {
				if err := writeValue(&buf, v); err != nil {
					return nil, err
				}
			}
		}
	}

	return buf.Bytes(), nil
}

// Decode reconstructs a Database from an MDB1 snapshot. It validates the
// header, then every table and record in file order; duplicate keys
// within a table produce DecodeError carrying the byte offset of the
// offending record.
func Decode(data []byte) (*model.Database, error) {
	r := &reader{data: data}

	var hdr [4]byte
	if err := r.read(hdr[:]); err != nil {
		return nil, decodeErr(r.pos, "truncated header")
	}
	if hdr != magic {
		return nil, decodeErr(r.pos, "bad magic %q", hdr[:])
	}
	ver, err := r.readByte()
	if err != nil {
		return nil, decodeErr(r.pos, "truncated version")
	}
	if ver != version {
		return nil, decodeErr(r.pos, "unsupported version %d", ver)
	}

	tableCount, err := r.readU64()
	if err != nil {
		return nil, decodeErr(r.pos, "truncated table count")
	}

	db := model.NewDatabase()
	for i := uint64(0); i < tableCount; i++ {
		name, err := r.readString()
		if err != nil {
			return nil, decodeErr(r.pos, "truncated table name")
		}
		keyColumn, err := r.readString()
		if err != nil {
			return nil, decodeErr(r.pos, "truncated key column name")
		}

		colCount, err := r.readU64()
		if err != nil {
			return nil, decodeErr(r.pos, "truncated column count")
		}
		schema := make([]model.Column, colCount)
		for c := uint64(0); c < colCount; c++ {
			colName, err := r.readString()
			if err != nil {
				return nil, decodeErr(r.pos, "truncated column name")
			}
			tag, err := r.readByte()
			if err != nil {
				return nil, decodeErr(r.pos, "truncated column type")
			}
			dt, ok := typeForTag(tag)
			if !ok {
				return nil, decodeErr(r.pos, "unknown column type tag %d", tag)
			}
			schema[c] = model.Column{Name: colName, Type: dt}
		}

		table, err := model.NewTable(name, schema, keyColumn)
		if err != nil {
			return nil, err
		}

		recCount, err := r.readU64()
		if err != nil {
			return nil, decodeErr(r.pos, "truncated record count")
		}
		for rv := uint64(0); rv < recCount; rv++ {
			offset := r.pos
			values := make([]value.Value, colCount)
			for c := uint64(0); c < colCount; c++ {
				v, err := readValue(r, schema[c].Type)
				if err != nil {
					return nil, decodeErr(r.pos, "truncated record value")
				}
				values[c] = v
			}
			rec := model.Record{Schema: table.Schema, Values: values}
			if err := table.Insert(rec); err != nil {
				return nil, decodeErr(offset, "%s", err.Error())
			}
		}

		if err := db.CreateTable(table); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Equal reports whether a and b hold the same tables, schemas, and
// records in the same order. Used by the DumpTo/LoadFrom round-trip
// property rather than being part of the on-disk contract itself.
func Equal(a, b *model.Database) bool {
	an, bn := a.TableNames(), b.TableNames()
	if len(an) != len(bn) {
		return false
	}
	for i := range an {
		if an[i] != bn[i] {
			return false
		}
		ta, _ := a.Table(an[i])
		tb, _ := b.Table(bn[i])
		if !tableEqual(ta, tb) {
			return false
		}
	}
	return true
}

func tableEqual(a, b *model.Table) bool {
	if a.Name != b.Name || a.KeyColumn != b.KeyColumn {
		return false
	}
	if len(a.Schema) != len(b.Schema) {
		return false
	}
	for i := range a.Schema {
		if a.Schema[i].Name != b.Schema[i].Name || a.Schema[i].Type != b.Schema[i].Type {
			return false
		}
	}
	ra, rb := a.Records(), b.Records()
	if len(ra) != len(rb) {
		return false
	}
	for i := range ra {
		for c := range ra[i].Values {
			cmp, ok := value.Compare(ra[i].Values[c], rb[i].Values[c])
			if !ok || cmp != 0 {
				return false
			}
		}
	}
	return true
}

func typeTag(dt value.DataType) (byte, error) {
	switch dt.Tag {
	case value.TagInt:
		return typeInt, nil
	case value.TagString:
		return typeString, nil
	case value.TagBool:
		return typeBool, nil
	default:
		return 0, fmt.Errorf("codec: unencodable type %s", dt)
	}
}

func typeForTag(tag byte) (value.DataType, bool) {
	switch tag {
	case typeInt:
		return value.Int, true
	case typeString:
		return value.String, true
	case typeBool:
		return value.Bool, true
	default:
		return value.DataType{}, false
	}
}

func writeValue(buf *bytes.Buffer, v value.Value) error {
	switch v.Tag() {
	case value.TagInt:
		writeU64(buf, uint64(v.Int()))
	case value.TagString:
		writeString(buf, v.Str())
	case value.TagBool:
		if v.Bool() {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	default:
		return fmt.Errorf("codec: unencodable value tag %d", v.Tag())
	}
	return nil
}

func readValue(r *reader, dt value.DataType) (value.Value, error) {
	switch dt.Tag {
	case value.TagInt:
		u, err := r.readU64()
		if err != nil {
			return value.Value{}, err
		}
		return value.MakeInt(int64(u)), nil
	case value.TagString:
		s, err := r.readString()
		if err != nil {
			return value.Value{}, err
		}
		return value.MakeString(s), nil
	default:
		b, err := r.readByte()
		if err != nil {
			return value.Value{}, err
		}
		return value.MakeBool(b != 0), nil
	}
}

func writeU64(buf *bytes.Buffer, u uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], u)
	buf.Write(b[:])
}

func writeString(buf *bytes.Buffer, s string) {
	writeU64(buf, uint64(len(s)))
	buf.WriteString(s)
}

// reader walks data as a flat cursor, tracking pos for DecodeError offsets.
type reader struct {
	data []byte
	pos  int64
}

func (r *reader) read(out []byte) error {
	if int64(len(r.data))-r.pos < int64(len(out)) {
		return io.ErrUnexpectedEOF
	}
	copy(out, r.data[r.pos:])
	r.pos += int64(len(out))
	return nil
}

func (r *reader) readByte() (byte, error) {
	var b [1]byte
	if err := r.read(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *reader) readU64() (uint64, error) {
	var b [8]byte
	if err := r.read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func (r *reader) readString() (string, error) {
	n, err := r.readU64()
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	if err := r.read(b); err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeErr(offset int64, format string, args ...any) *apperrors.Error {
	return apperrors.Newf(apperrors.DecodeError, format, args...).WithOffset(offset)
}
