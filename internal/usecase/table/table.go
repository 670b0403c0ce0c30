// Package table implements the sort, filter and search behavior shared by
// every tabular dashboard panel.
package table

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/simaogato/partsdash-backend/internal/domain"
)

// ErrUnknownColumn is returned when a sort or search names a column the table does not have
var ErrUnknownColumn = errors.New("unknown column")

// Column describes one field of a record type T
type Column[T any] struct {
	Key        string
	Header     string
	Accessor   func(T) domain.Value
	Searchable bool
}

// Table is an ordered set of columns over records of type T
type Table[T any] struct {
	columns []Column[T]
	byKey   map[string]int
}

// New creates a table from its columns. Keys must be unique.
func New[T any](columns ...Column[T]) (*Table[T], error) {
	byKey := make(map[string]int, len(columns))
	for i, col := range columns {
		if col.Key == "" {
			return nil, errors.New("column key cannot be empty")
		}
		if col.Accessor == nil {
			return nil, fmt.Errorf("column %q has no accessor", col.Key)
		}
		if _, dup := byKey[col.Key]; dup {
			return nil, fmt.Errorf("duplicate column %q", col.Key)
		}
		byKey[col.Key] = i
	}

	return &Table[T]{columns: columns, byKey: byKey}, nil
}

// MustNew is like New but panics on an invalid column set.
// It is meant for package-level panel definitions.
func MustNew[T any](columns ...Column[T]) *Table[T] {
	t, err := New(columns...)
	if err != nil {
		panic(err)
	}
	return t
}

// Columns returns the table's columns in display order
func (t *Table[T]) Columns() []Column[T] {
	return slices.Clone(t.columns)
}

// Column looks up a column by key
func (t *Table[T]) Column(key string) (Column[T], error) {
	i, ok := t.byKey[key]
	if !ok {
		return Column[T]{}, fmt.Errorf("%w: %q", ErrUnknownColumn, key)
	}
	return t.columns[i], nil
}

// Sort returns a copy of rows ordered by the coerced value of the key column.
// The sort is stable: rows with equal keys keep their input order.
// Direction only reverses values of the same kind; invalid and missing
// values stay at the end either way.
func (t *Table[T]) Sort(rows []T, key string, dir domain.SortDirection) ([]T, error) {
	col, err := t.Column(key)
	if err != nil {
		return nil, err
	}

	// Coerce once per row rather than once per comparison
	type keyed struct {
		row T
		key domain.Value
	}
	items := make([]keyed, len(rows))
	for i, row := range rows {
		items[i] = keyed{row: row, key: domain.Coerce(col.Accessor(row))}
	}

	descending := dir == domain.SortDescending
	slices.SortStableFunc(items, func(a, b keyed) int {
		c := domain.Compare(a.key, b.key)
		if descending && a.key.Kind == b.key.Kind {
			return -c
		}
		return c
	})

	out := make([]T, len(items))
	for i, item := range items {
		out[i] = item.row
	}
	return out, nil
}

// Filter returns the rows whose named fields contain query, ignoring case.
// With no fields named, every searchable column is matched. A blank query
// returns a copy of rows; any other query is matched as given, spaces included.
func (t *Table[T]) Filter(rows []T, query string, fields ...string) ([]T, error) {
	if strings.TrimSpace(query) == "" {
		return slices.Clone(nonNil(rows)), nil
	}

	cols, err := t.searchColumns(fields)
	if err != nil {
		return nil, err
	}

	folder := cases.Fold()
	needle := folder.String(query)

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		for _, col := range cols {
			v := col.Accessor(row)
			if v.IsMissing() {
				continue
			}
			if strings.Contains(folder.String(v.String()), needle) {
				out = append(out, row)
				break
			}
		}
	}
	return out, nil
}

// Apply filters then sorts rows according to the view state.
// An empty sort key leaves the filtered rows in input order.
func (t *Table[T]) Apply(rows []T, state domain.ViewState) ([]T, error) {
	if err := state.Validate(); err != nil {
		return nil, err
	}

	filtered, err := t.Filter(rows, state.Query, state.SearchFields...)
	if err != nil {
		return nil, err
	}

	if state.SortKey == "" {
		return filtered, nil
	}
	return t.Sort(filtered, state.SortKey, state.Direction)
}

func (t *Table[T]) searchColumns(fields []string) ([]Column[T], error) {
	if len(fields) == 0 {
		cols := make([]Column[T], 0, len(t.columns))
		for _, col := range t.columns {
			if col.Searchable {
				cols = append(cols, col)
			}
		}
		return cols, nil
	}

	cols := make([]Column[T], 0, len(fields))
	for _, key := range fields {
		col, err := t.Column(key)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func nonNil[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
