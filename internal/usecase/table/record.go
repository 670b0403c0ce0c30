package table

import "github.com/simaogato/partsdash-backend/internal/domain"

// Record is a loosely-typed display record keyed by field name
type Record map[string]domain.Value

// RecordTable builds a table over Records with one searchable column per key.
// A key absent from a record reads as a missing value.
func RecordTable(keys ...string) (*Table[Record], error) {
	columns := make([]Column[Record], 0, len(keys))
	for _, key := range keys {
		columns = append(columns, Column[Record]{
			Key:        key,
			Header:     key,
			Accessor:   recordField(key),
			Searchable: true,
		})
	}
	return New(columns...)
}

// MustNewRecordTable is RecordTable for package-level tables; it panics on duplicate keys
func MustNewRecordTable(keys ...string) *Table[Record] {
	t, err := RecordTable(keys...)
	if err != nil {
		panic(err)
	}
	return t
}

func recordField(key string) func(Record) domain.Value {
	return func(r Record) domain.Value {
		v, ok := r[key]
		if !ok {
			return domain.Missing()
		}
		return v
	}
}
