package models

import (
	"fmt"
	"strconv"
)

// Kind identifies the type of a single cell.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "null"
	}
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Value is one cell of a Table. The zero Value is null.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
}

// Null returns the missing-value marker.
func Null() Value { return Value{} }

// Number returns a computed numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// NumberText returns a numeric value that renders back as its source text.
func NumberText(f float64, text string) Value {
	return Value{kind: KindNumber, num: f, str: text}
}

// String returns a text value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsFloat reports the numeric value, false for anything that is not a number.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// AsString reports the text value, false for anything that is not a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsBool reports the boolean value, false for anything that is not a bool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Text renders the value the way it is written to CSV.
func (v Value) Text() string {
	switch v.kind {
	case KindNumber:
		if v.str != "" {
			return v.str
		}
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindString:
		return v.str
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	default:
		return ""
	}
}

// Table is an in-memory set of rows sharing one ordered column schema.
type Table struct {
	Name string

	columns []string
	index   map[string]int
	rows    [][]Value
}

// NewTable creates an empty table. Column names must be unique.
func NewTable(name string, columns []string) (*Table, error) {
	t := &Table{
		Name:    name,
		columns: make([]string, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for _, c := range columns {
		if _, dup := t.index[c]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrMalformedInput, c)
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t, nil
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

func (t *Table) Len() int { return len(t.rows) }

// Has reports whether the table carries the named column.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Append adds a row. The row must have exactly one value per column.
func (t *Table) Append(values []Value) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("%w: row has %d values, table %q has %d columns",
			ErrMalformedInput, len(values), t.Name, len(t.columns))
	}
	t.rows = append(t.rows, values)
	return nil
}

// Row returns the i-th row.
func (t *Table) Row(i int) Row {
	return Row{table: t, values: t.rows[i]}
}

// Filter returns a new table holding the rows for which keep returns true.
func (t *Table) Filter(keep func(Row) bool) *Table {
	out := &Table{Name: t.Name, columns: t.columns, index: t.index}
	for _, values := range t.rows {
		if keep(Row{table: t, values: values}) {
			out.rows = append(out.rows, values)
		}
	}
	return out
}

// SetColumn computes a column from every row. A new column is appended after the
// existing ones; an existing column is overwritten in place.
func (t *Table) SetColumn(name string, derive func(Row) Value) {
	if pos, ok := t.index[name]; ok {
		for i, values := range t.rows {
			v := derive(Row{table: t, values: values})
			updated := make([]Value, len(values))
			copy(updated, values)
			updated[pos] = v
			t.rows[i] = updated
		}
		return
	}

	columns := make([]string, len(t.columns), len(t.columns)+1)
	copy(columns, t.columns)
	index := make(map[string]int, len(t.index)+1)
	for k, v := range t.index {
		index[k] = v
	}
	index[name] = len(columns)

	for i, values := range t.rows {
		v := derive(Row{table: t, values: values})
		// full slice expression: rows may be shared with the table this one was filtered from
		t.rows[i] = append(values[:len(values):len(values)], v)
	}
	t.columns = append(columns, name)
	t.index = index
}

// Column returns every value of the named column.
func (t *Table) Column(name string) ([]Value, bool) {
	pos, ok := t.index[name]
	if !ok {
		return nil, false
	}
	out := make([]Value, len(t.rows))
	for i, values := range t.rows {
		out[i] = values[pos]
	}
	return out, true
}

// ColumnKind is the kind of the first non-null value in the column, or KindNull.
func (t *Table) ColumnKind(name string) Kind {
	pos, ok := t.index[name]
	if !ok {
		return KindNull
	}
	for _, values := range t.rows {
		if k := values[pos].kind; k != KindNull {
			return k
		}
	}
	return KindNull
}

// Row is a read-only view of one table row.
type Row struct {
	table  *Table
	values []Value
}

// Get returns the value of the named column; unknown columns read as null.
func (r Row) Get(column string) Value {
	pos, ok := r.table.index[column]
	if !ok {
		return Null()
	}
	return r.values[pos]
}

// Texts renders the row as CSV cells.
func (r Row) Texts() []string {
	out := make([]string, len(r.values))
	for i, v := range r.values {
		out[i] = v.Text()
	}
	return out
}
